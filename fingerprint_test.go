// Copyright 2026 Aaron McKenney
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gotiles

import (
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFingerprints(t *testing.T) {
	img := edgeImage(4, red, green, blue, yellow)
	fp := ComputeFingerprints(img)

	for _, p := range fp[Top].Pixels {
		assert.Equal(t, ConvertRGB(red), p)
	}
	for _, p := range fp[Bottom].Pixels {
		assert.Equal(t, ConvertRGB(blue), p)
	}
	// corners belong to the rows
	assert.Equal(t, []RGB{ConvertRGB(red), ConvertRGB(yellow), ConvertRGB(yellow), ConvertRGB(blue)},
		fp[Left].Pixels)
	assert.Equal(t, []RGB{ConvertRGB(red), ConvertRGB(green), ConvertRGB(green), ConvertRGB(blue)},
		fp[Right].Pixels)
	for _, d := range Directions {
		assert.Equal(t, 4, fp[d].Len(), d.String())
	}
}

func TestFingerprintsOfRotatedTile(t *testing.T) {
	img := gradientImage(5, 3)
	fp := ComputeFingerprints(img)
	rotated := ComputeFingerprints(imaging.Rotate180(img))

	assert.Equal(t, fp[Bottom].Reversed().Hash, rotated[Top].Hash)
	assert.Equal(t, fp[Top].Reversed().Hash, rotated[Bottom].Hash)
	assert.Equal(t, fp[Right].Reversed().Hash, rotated[Left].Hash)
	assert.NotEqual(t, fp[Top].Hash, rotated[Top].Hash)
}

func TestDirection(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.Opposite().Opposite())
		dx, dy := d.Offset()
		ox, oy := d.Opposite().Offset()
		assert.Equal(t, 0, dx+ox)
		assert.Equal(t, 0, dy+oy)
	}
	assert.Equal(t, Bottom, Top.Opposite())
	assert.Equal(t, Left, Right.Opposite())
}

func TestComparators(t *testing.T) {
	line := func(n int, c RGB) *Boundary {
		pixels := make([]RGB, n)
		for i := range pixels {
			pixels[i] = c
		}
		return NewBoundary(pixels)
	}
	base := line(4, NewRGB(100, 100, 100))
	slightlyOff := line(4, NewRGB(101, 100, 100))
	farOff := line(4, NewRGB(200, 40, 100))
	shorter := line(3, NewRGB(100, 100, 100))

	tests := []struct {
		name  string
		a, b  *Boundary
		exact bool
		tol   bool
	}{
		{"same", base, line(4, NewRGB(100, 100, 100)), true, true},
		{"slightly off", base, slightlyOff, false, true},
		{"far off", base, farOff, false, false},
		{"different length", base, shorter, false, false},
	}
	tolerant := NewTolerantComparator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exact, ExactComparator{}.Equal(tt.a, tt.b))
			assert.Equal(t, tt.tol, tolerant.Equal(tt.a, tt.b))
			assert.Equal(t, tt.tol, tolerant.Equal(tt.b, tt.a))
		})
	}
}

func TestParseComparator(t *testing.T) {
	cmp, err := ParseComparator("exact")
	require.NoError(t, err)
	assert.Equal(t, ExactComparator{}, cmp)

	cmp, err = ParseComparator("Tolerant")
	require.NoError(t, err)
	assert.Equal(t, NewTolerantComparator(), cmp)

	_, err = ParseComparator("fuzzy")
	assert.Error(t, err)
}

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
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	gray   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	red    = color.RGBA{R: 255, A: 255}
	green  = color.RGBA{G: 255, A: 255}
	blue   = color.RGBA{B: 255, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black  = color.RGBA{A: 255}
)

// recorder is a Diagnostics that keeps all messages. The loader reports from
// several goroutines.
type recorder struct {
	mutex    sync.Mutex
	warnings []string
	errors   []string
}

func (r *recorder) Warn(msg string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.warnings = append(r.warnings, msg)
}

func (r *recorder) Error(msg string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.errors = append(r.errors, msg)
}

func solidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// edgeImage paints the left and right column and afterwards the top and
// bottom row, so the corners belong to the rows.
func edgeImage(size int, top, right, bottom, left color.RGBA) *image.RGBA {
	img := solidImage(size, size, gray)
	for y := 0; y < size; y++ {
		img.SetRGBA(0, y, left)
		img.SetRGBA(size-1, y, right)
	}
	for x := 0; x < size; x++ {
		img.SetRGBA(x, 0, top)
		img.SetRGBA(x, size-1, bottom)
	}
	return img
}

// sideImage only differs in the left and right column.
func sideImage(size int, left, right color.RGBA) *image.RGBA {
	return edgeImage(size, gray, right, gray, left)
}

// gradientImage has a different color at each pixel, it is not symmetric
// under any rotation or mirroring.
func gradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 40), G: uint8(y * 40), B: uint8(x*y*10 + 5), A: 255})
		}
	}
	return img
}

func catalogOf(t *testing.T, images ...image.Image) *TileCatalog {
	t.Helper()
	catalog := NewTileCatalog()
	for i, img := range images {
		_, added, err := catalog.Add(fmt.Sprintf("tile%d.png", i), "", img)
		require.NoError(t, err)
		require.True(t, added, "tile %d is a duplicate", i)
	}
	return catalog
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

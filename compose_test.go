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
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSingleTile(t *testing.T) {
	catalog := catalogOf(t, solidImage(4, 4, red))
	rec := &recorder{}
	g := NewGrid(3, 3, catalog.IDs())
	newTestSolver(catalog, StrategyExact, rec).Solve(g)
	require.Empty(t, rec.errors)

	img, err := Render(g, catalog)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 12), img.Bounds())
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			require.Equal(t, red, img.RGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestRenderNoResolvedTiles(t *testing.T) {
	catalog := catalogOf(t, solidImage(4, 4, red))
	g := NewGrid(2, 2, catalog.IDs())
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			g.Set(x, y, ErrorCell())
		}
	}
	img, err := Render(g, catalog)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, black, img.RGBAAt(x, y))
		}
	}
	scaled, err := RenderScaled(g, catalog, 2, 2, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), scaled.Bounds())

	// without tiles the size of the picture is unknown
	_, err = Render(g, NewTileCatalog())
	assert.ErrorIs(t, err, ErrNoResolvedTiles)
	_, err = RenderScaled(g, NewTileCatalog(), 2, 2, nil, nil)
	assert.ErrorIs(t, err, ErrNoResolvedTiles)
}

func TestRenderScaled(t *testing.T) {
	catalog := catalogOf(t, solidImage(4, 4, red), solidImage(4, 4, blue))
	g := NewGrid(3, 1, nil)
	g.Set(0, 0, ResolvedCell(0))
	g.Set(1, 0, ResolvedCell(1))
	g.Set(2, 0, ResolvedCell(0))
	cache := NewImageCache(4)

	img, err := RenderScaled(g, catalog, 2, 3, nil, cache)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 3), img.Bounds())
	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, blue, img.RGBAAt(3, 2))
	assert.Equal(t, red, img.RGBAAt(5, 1))
	assert.Equal(t, 2, cache.Len())

	_, err = RenderScaled(g, catalog, 0, 3, nil, cache)
	assert.Error(t, err)
}

func TestImageCacheEviction(t *testing.T) {
	cache := NewImageCache(2)
	img := solidImage(1, 1, red)
	cache.Put(0, 1, 1, img)
	cache.Put(1, 1, 1, img)
	cache.Put(1, 1, 1, img)
	assert.Equal(t, 2, cache.Len())
	cache.Put(2, 1, 1, img)
	assert.Equal(t, 2, cache.Len())
	assert.Nil(t, cache.Get(0, 1, 1))
	assert.NotNil(t, cache.Get(1, 1, 1))
	assert.NotNil(t, cache.Get(2, 1, 1))
	assert.Nil(t, cache.Get(2, 2, 2))
}

func TestGridDivision(t *testing.T) {
	div := GridDivision(3, 2, 8, 4)
	cols, rows := div.Size()
	assert.Equal(t, 3, cols)
	assert.Equal(t, 2, rows)
	assert.Equal(t, image.Rect(16, 4, 24, 8), div.Get(2, 1))

	xs, ys := div.Seams()
	assert.Equal(t, []int{8, 16}, xs)
	assert.Equal(t, []int{4}, ys)

	xs, ys = GridDivision(1, 1, 8, 8).Seams()
	assert.Empty(t, xs)
	assert.Empty(t, ys)
	assert.Nil(t, GridDivision(0, 2, 8, 8))
}

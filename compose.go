// Copyright 2018 Fabian Wenzelmann
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
	"errors"
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// ErrNoResolvedTiles is returned by Render if no cell of the grid is
// resolved and the catalog has no tile size either.
var ErrNoResolvedTiles = errors.New("grid contains no resolved tiles")

var (
	// ImageCacheSize is the size of the cache of scaled tiles used by
	// RenderScaled, it must be a number ≥ 1.
	ImageCacheSize = 32
)

// ResizeStrategy is a function that scales a tile to the given size.
type ResizeStrategy func(resizer ImageResizer, tileWidth, tileHeight uint, img image.Image) image.Image

// ForceResize resizes the image to the given size, ignoring the aspect ratio.
func ForceResize(resizer ImageResizer, tileWidth, tileHeight uint, img image.Image) image.Image {
	return resizer.Resize(tileWidth, tileHeight, img)
}

// KeepSize returns the image if it already has the given size and resizes it
// otherwise.
func KeepSize(resizer ImageResizer, tileWidth, tileHeight uint, img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == int(tileWidth) && bounds.Dy() == int(tileHeight) {
		return img
	}
	return resizer.Resize(tileWidth, tileHeight, img)
}

// ImageCache caches scaled tiles. It is safe for concurrent use.
//
// When the cache is full the element inserted first is removed.
type ImageCache struct {
	m           *sync.Mutex
	size        int
	content     map[string]image.Image
	insertOrder []string
}

// NewImageCache returns a cache with the given capacity (at least 1).
func NewImageCache(size int) *ImageCache {
	if size <= 0 {
		size = 1
	}
	var m sync.Mutex
	return &ImageCache{
		m:           &m,
		size:        size,
		content:     make(map[string]image.Image, size),
		insertOrder: make([]string, 0, size),
	}
}

func (cache *ImageCache) keyFormat(id TileID, width, height int) string {
	return fmt.Sprintf("%d-%d-%d", id, width, height)
}

// Put adds the tile id in the given size to the cache.
func (cache *ImageCache) Put(id TileID, width, height int, img image.Image) {
	cache.m.Lock()
	defer cache.m.Unlock()
	key := cache.keyFormat(id, width, height)
	if _, has := cache.content[key]; has {
		return
	}
	if len(cache.insertOrder) >= cache.size {
		fst := cache.insertOrder[0]
		cache.insertOrder = cache.insertOrder[1:]
		delete(cache.content, fst)
	}
	cache.insertOrder = append(cache.insertOrder, key)
	cache.content[key] = img
}

// Get returns the cached tile or nil.
func (cache *ImageCache) Get(id TileID, width, height int) image.Image {
	cache.m.Lock()
	defer cache.m.Unlock()
	return cache.content[cache.keyFormat(id, width, height)]
}

// Len returns the number of cached images.
func (cache *ImageCache) Len() int {
	cache.m.Lock()
	defer cache.m.Unlock()
	return len(cache.content)
}

// firstResolved returns the first resolved tile in row-major order.
func firstResolved(g *Grid, catalog *TileCatalog) *Tile {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if id, ok := g.Cell(x, y).Tile(); ok {
				return catalog.Get(id)
			}
		}
	}
	return nil
}

// tileSize returns the size of the resolved tiles of g. If no cell is resolved
// the tile size of the catalog is used.
func tileSize(g *Grid, catalog *TileCatalog) (width, height int, err error) {
	if tile := firstResolved(g, catalog); tile != nil {
		return tile.Width(), tile.Height(), nil
	}
	if catalog == nil || catalog.TileWidth <= 0 || catalog.TileHeight <= 0 {
		return 0, 0, ErrNoResolvedTiles
	}
	return catalog.TileWidth, catalog.TileHeight, nil
}

// Render draws the solved grid. The picture has the size of
// tileWidth * g.Width × tileHeight * g.Height where the tile size is taken
// from the resolved tiles. Resolved cells show their tile, all other cells are
// black. A grid without resolved cells renders as a black picture in the
// tile size of the catalog.
func Render(g *Grid, catalog *TileCatalog) (*image.RGBA, error) {
	tileWidth, tileHeight, err := tileSize(g, catalog)
	if err != nil {
		return nil, err
	}
	return render(g, tileWidth, tileHeight, func(id TileID, area image.Rectangle) image.Image {
		return catalog.Get(id).Image
	})
}

// RenderScaled is like Render but draws each tile in the given size, for
// example to create a preview. Scaled tiles are cached in cache (which may be
// nil).
func RenderScaled(g *Grid, catalog *TileCatalog, tileWidth, tileHeight int,
	resizer ImageResizer, cache *ImageCache) (*image.RGBA, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("Invalid tile size %s", FormatDimensions(tileWidth, tileHeight))
	}
	if _, _, err := tileSize(g, catalog); err != nil {
		return nil, err
	}
	if resizer == nil {
		resizer = DefaultResizer
	}
	if cache == nil {
		cache = NewImageCache(ImageCacheSize)
	}
	return render(g, tileWidth, tileHeight, func(id TileID, area image.Rectangle) image.Image {
		img := cache.Get(id, area.Dx(), area.Dy())
		if img == nil {
			img = KeepSize(resizer, uint(area.Dx()), uint(area.Dy()), catalog.Get(id).Image)
			cache.Put(id, area.Dx(), area.Dy(), img)
		}
		return img
	})
}

func render(g *Grid, tileWidth, tileHeight int, lookup func(id TileID, area image.Rectangle) image.Image) (*image.RGBA, error) {
	division := GridDivision(g.Width, g.Height, tileWidth, tileHeight)
	res := image.NewRGBA(image.Rect(0, 0, g.Width*tileWidth, g.Height*tileHeight))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			area := division.Get(x, y)
			id, ok := g.Cell(x, y).Tile()
			if !ok {
				draw.Draw(res, area, image.Black, image.Point{}, draw.Src)
				continue
			}
			img := lookup(id, area)
			draw.Draw(res, area, img, img.Bounds().Min, draw.Src)
		}
	}
	return res, nil
}

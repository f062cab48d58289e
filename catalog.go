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
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/zeebo/blake3"
)

var (
	// ErrTileSizeMismatch is returned if tiles of different sizes are added to
	// a catalog.
	ErrTileSizeMismatch = errors.New("tile size mismatch among pool images")
	// ErrNoTiles is returned if a catalog is empty but tiles are required.
	ErrNoTiles = errors.New("no tiles in pool")
)

// TileCatalog is the pool of tiles used during one run, indexed by TileID.
// All tiles in a catalog have the same size, the size is defined by the first
// tile added.
//
// Tiles with identical pixels are stored only once.
type TileCatalog struct {
	Tiles                 []*Tile
	TileWidth, TileHeight int

	byBasename map[string][]TileID
	byContent  map[[32]byte][]TileID
}

// NewTileCatalog returns an empty catalog.
func NewTileCatalog() *TileCatalog {
	return &TileCatalog{
		byBasename: make(map[string][]TileID),
		byContent:  make(map[[32]byte][]TileID),
	}
}

// NumTiles returns the number of tiles in the catalog.
func (c *TileCatalog) NumTiles() int {
	return len(c.Tiles)
}

// Get returns the tile with the given id, nil if there is no such tile.
func (c *TileCatalog) Get(id TileID) *Tile {
	if id < 0 || int(id) >= len(c.Tiles) {
		return nil
	}
	return c.Tiles[id]
}

// Boundary returns the fingerprint of edge d of the tile with the given id.
func (c *TileCatalog) Boundary(id TileID, d Direction) *Boundary {
	return c.Tiles[id].Boundaries[d]
}

// IDs returns all tile ids in ascending order, that is the initial candidate
// set of a cell without placement restrictions.
func (c *TileCatalog) IDs() []TileID {
	res := make([]TileID, len(c.Tiles))
	for i := range c.Tiles {
		res[i] = TileID(i)
	}
	return res
}

// ByBasename returns all tiles created from a file with the given name
// (including rotated and mirrored variants).
func (c *TileCatalog) ByBasename(name string) []TileID {
	return c.byBasename[name]
}

// Add adds a tile to the catalog. If a tile with exactly the same pixels is
// already present the existing tile is returned and added is false.
// If img has not the size of the tiles already in the catalog an error
// wrapping ErrTileSizeMismatch is returned.
func (c *TileCatalog) Add(path, variant string, img image.Image) (tile *Tile, added bool, err error) {
	bounds := img.Bounds()
	if len(c.Tiles) == 0 {
		c.TileWidth, c.TileHeight = bounds.Dx(), bounds.Dy()
	} else if bounds.Dx() != c.TileWidth || bounds.Dy() != c.TileHeight {
		return nil, false, fmt.Errorf("%w: %s is %s, expected %s", ErrTileSizeMismatch,
			path, FormatDimensions(bounds.Dx(), bounds.Dy()),
			FormatDimensions(c.TileWidth, c.TileHeight))
	}
	id := TileID(len(c.Tiles))
	candidate := NewTile(id, path, variant, img)
	digest := blake3.Sum256(candidate.Image.Pix)
	for _, other := range c.byContent[digest] {
		if bytes.Equal(c.Tiles[other].Image.Pix, candidate.Image.Pix) {
			return c.Tiles[other], false, nil
		}
	}
	c.Tiles = append(c.Tiles, candidate)
	c.byContent[digest] = append(c.byContent[digest], id)
	base := filepath.Base(path)
	c.byBasename[base] = append(c.byBasename[base], id)
	return candidate, true, nil
}

// BoundarySetOf returns the fingerprints of edge d of all given tiles.
func (c *TileCatalog) BoundarySetOf(ids []TileID, d Direction) BoundarySet {
	res := NewBoundarySet()
	for _, id := range ids {
		res.Add(c.Tiles[id].Boundaries[d])
	}
	return res
}

// Filter returns the tiles from candidates whose edges are compatible with
// the expected boundaries in each direction. The order of candidates is
// preserved.
func (c *TileCatalog) Filter(oracle *CompatibilityOracle, candidates []TileID, expected [4]BoundarySet) []TileID {
	res := make([]TileID, 0, len(candidates))
	for _, id := range candidates {
		if oracle.Fits(c.Tiles[id], expected) {
			res = append(res, id)
		}
	}
	return res
}

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
	"path/filepath"
)

// Tile is an image from the tile pool together with the fingerprints of its
// four edges. Tiles are created by a TileCatalog and never change afterwards.
type Tile struct {
	ID TileID
	// Path is the file the tile was read from. Augmented tiles (rotations,
	// mirrors) share the path of their source.
	Path string
	// Variant describes how the tile was derived from the file, for example
	// "rot90" or "rot180-mirror". It is empty for the original image.
	Variant    string
	Image      *image.RGBA
	Boundaries [4]*Boundary
}

// NewTile creates a new tile and computes its fingerprints.
func NewTile(id TileID, path, variant string, img image.Image) *Tile {
	rgba := ToRGBA(img)
	return &Tile{
		ID:         id,
		Path:       path,
		Variant:    variant,
		Image:      rgba,
		Boundaries: ComputeFingerprints(rgba),
	}
}

// Boundary returns the fingerprint of edge d.
func (t *Tile) Boundary(d Direction) *Boundary {
	return t.Boundaries[d]
}

// Width returns the width of the tile in pixels.
func (t *Tile) Width() int {
	return t.Image.Bounds().Dx()
}

// Height returns the height of the tile in pixels.
func (t *Tile) Height() int {
	return t.Image.Bounds().Dy()
}

// Basename returns the file name of the tile without its directory.
func (t *Tile) Basename() string {
	return filepath.Base(t.Path)
}

func (t *Tile) String() string {
	if t.Variant == "" {
		return fmt.Sprintf("Tile(%d, %s)", t.ID, t.Basename())
	}
	return fmt.Sprintf("Tile(%d, %s %s)", t.ID, t.Basename(), t.Variant)
}

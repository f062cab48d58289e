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

	"github.com/disintegration/imaging"
)

// Variant is an image derived from a tile file by rotation and mirroring.
type Variant struct {
	Name  string
	Image image.Image
}

// Augment returns img rotated by 0 and 180 degrees (and additionally 90 and
// 270 degrees if img is square), each rotation also mirrored horizontally.
// Rotations are counter-clockwise. The first variant is img itself with an
// empty name.
//
// Variants may contain identical images (for symmetric tiles), duplicates are
// removed when the variants are added to a TileCatalog.
func Augment(img image.Image) []Variant {
	bounds := img.Bounds()
	rotations := []rotation{{"", imaging.Clone}, {"rot180", imaging.Rotate180}}
	if bounds.Dx() == bounds.Dy() {
		rotations = append(rotations, rotation{"rot90", imaging.Rotate90},
			rotation{"rot270", imaging.Rotate270})
	}
	res := make([]Variant, 0, 2*len(rotations))
	for _, rot := range rotations {
		rotated := rot.f(img)
		mirrorName := "mirror"
		if rot.name != "" {
			mirrorName = rot.name + "-mirror"
		}
		res = append(res,
			Variant{Name: rot.name, Image: rotated},
			Variant{Name: mirrorName, Image: imaging.FlipH(rotated)})
	}
	return res
}

type rotation struct {
	name string
	f    func(image.Image) *image.NRGBA
}

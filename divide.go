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
	"image"
)

// TileDivision is the division of a picture into the rectangles the tiles
// are drawn to.
//
// Rectangles are stored as [y][x], use Get to access them with grid
// coordinates.
type TileDivision [][]image.Rectangle

// Get returns the rectangle in row y and column x.
func (div TileDivision) Get(x, y int) image.Rectangle {
	return div[y][x]
}

// Size returns the number of columns and rows in the division.
func (div TileDivision) Size() (cols, rows int) {
	if len(div) == 0 {
		return 0, 0
	}
	return len(div[0]), len(div)
}

// Seams returns the x coordinates of the vertical seams and the y
// coordinates of the horizontal seams, that is the first pixel column (row)
// of each tile that has a neighbor to its left (above). The outer border of
// the picture is not a seam.
func (div TileDivision) Seams() (xs, ys []int) {
	cols, rows := div.Size()
	for x := 1; x < cols; x++ {
		xs = append(xs, div.Get(x, 0).Min.X)
	}
	for y := 1; y < rows; y++ {
		ys = append(ys, div.Get(0, y).Min.Y)
	}
	return
}

// GridDivision returns the division of a picture of frameWidth × frameHeight
// tiles, each tile of size tileWidth × tileHeight. The result is nil if one
// of the values is not positive.
func GridDivision(frameWidth, frameHeight, tileWidth, tileHeight int) TileDivision {
	if frameWidth <= 0 || frameHeight <= 0 || tileWidth <= 0 || tileHeight <= 0 {
		return nil
	}
	res := make(TileDivision, frameHeight)
	for y := range res {
		res[y] = make([]image.Rectangle, frameWidth)
		for x := range res[y] {
			x0, y0 := x*tileWidth, y*tileHeight
			res[y][x] = image.Rect(x0, y0, x0+tileWidth, y0+tileHeight)
		}
	}
	return res
}

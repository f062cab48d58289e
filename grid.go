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

// Grid is a Width × Height matrix of cells stored in row-major order.
// A grid with a non-positive width or height is empty, all operations on it
// do nothing.
type Grid struct {
	Width, Height int
	cells         []Cell
}

// NewGrid returns a grid in which each cell is open with the given candidates.
func NewGrid(width, height int, candidates []TileID) *Grid {
	return NewGridFunc(width, height, func(x, y int) []TileID {
		return candidates
	})
}

// NewGridFunc returns a grid in which the cell at (x, y) is open with the
// candidates returned by f.
func NewGridFunc(width, height int, f func(x, y int) []TileID) *Grid {
	if width <= 0 || height <= 0 {
		return &Grid{}
	}
	g := &Grid{Width: width, Height: height, cells: make([]Cell, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[y*width+x] = OpenCell(f(x, y))
		}
	}
	return g
}

// Empty returns true if the grid has no cells.
func (g *Grid) Empty() bool {
	return len(g.cells) == 0
}

// NumCells returns the number of cells in the grid.
func (g *Grid) NumCells() int {
	return len(g.cells)
}

// InBounds checks if (x, y) is a position on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Cell returns the cell at (x, y). The position must be in bounds.
func (g *Grid) Cell(x, y int) Cell {
	return g.cells[y*g.Width+x]
}

// Set replaces the cell at (x, y).
func (g *Grid) Set(x, y int, c Cell) {
	g.cells[y*g.Width+x] = c
}

// Neighbor returns the neighbor of (x, y) in direction d, false if the
// neighbor is not on the grid.
func (g *Grid) Neighbor(x, y int, d Direction) (Cell, bool) {
	dx, dy := d.Offset()
	nx, ny := x+dx, y+dy
	if !g.InBounds(nx, ny) {
		return Cell{}, false
	}
	return g.Cell(nx, ny), true
}

// Count returns the number of cells with the given state.
func (g *Grid) Count(state CellState) int {
	res := 0
	for _, c := range g.cells {
		if c.state == state {
			res++
		}
	}
	return res
}

// TileIDs returns the tile of each cell, indexed by [y][x]. Cells that are not
// resolved get NoTileID.
func (g *Grid) TileIDs() [][]TileID {
	res := make([][]TileID, g.Height)
	for y := 0; y < g.Height; y++ {
		res[y] = make([]TileID, g.Width)
		for x := 0; x < g.Width; x++ {
			res[y][x], _ = g.Cell(x, y).Tile()
		}
	}
	return res
}

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
)

// CellState is the state of a cell in a Grid.
type CellState int

const (
	// CellOpen is the state of a cell that still has a set of candidates.
	CellOpen CellState = iota
	// CellResolved is the state of a cell with a tile assigned to it.
	CellResolved
	// CellError is the state of a cell for which no viable tile exists.
	CellError
)

func (state CellState) String() string {
	switch state {
	case CellOpen:
		return "Open"
	case CellResolved:
		return "Resolved"
	case CellError:
		return "Error"
	default:
		return fmt.Sprintf("CellState(%d)", state)
	}
}

// Cell is the content of one grid position: either a set of candidates
// (Open), a single tile (Resolved) or nothing (Error). Resolved and Error are
// terminal.
//
// Use OpenCell, ResolvedCell and ErrorCell to create cells.
type Cell struct {
	state      CellState
	candidates []TileID
	tile       TileID
}

// OpenCell returns an open cell with the given candidates. The slice is
// copied.
func OpenCell(candidates []TileID) Cell {
	cp := make([]TileID, len(candidates))
	copy(cp, candidates)
	return Cell{state: CellOpen, candidates: cp, tile: NoTileID}
}

// ResolvedCell returns a cell resolved to id.
func ResolvedCell(id TileID) Cell {
	return Cell{state: CellResolved, tile: id}
}

// ErrorCell returns a cell marked as error.
func ErrorCell() Cell {
	return Cell{state: CellError, tile: NoTileID}
}

// State returns the state of the cell.
func (c Cell) State() CellState {
	return c.state
}

// Terminal returns true if the cell is resolved or marked as error.
func (c Cell) Terminal() bool {
	return c.state != CellOpen
}

// Candidates returns the tiles still possible in this cell: the candidate set
// of an open cell, the tile of a resolved cell and nil for an error cell.
// The result must not be modified.
func (c Cell) Candidates() []TileID {
	switch c.state {
	case CellOpen:
		return c.candidates
	case CellResolved:
		return []TileID{c.tile}
	case CellError:
		return nil
	default:
		panic(fmt.Sprintf("invalid cell state %d", c.state))
	}
}

// Tile returns the tile of a resolved cell. For all other cells it returns
// NoTileID and false.
func (c Cell) Tile() (TileID, bool) {
	if c.state == CellResolved {
		return c.tile, true
	}
	return NoTileID, false
}

func (c Cell) String() string {
	switch c.state {
	case CellOpen:
		return fmt.Sprintf("Open(%v)", c.candidates)
	case CellResolved:
		return fmt.Sprintf("Resolved(%d)", c.tile)
	default:
		return c.state.String()
	}
}

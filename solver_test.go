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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSolver(catalog *TileCatalog, strategy Strategy, diag Diagnostics) *Solver {
	return NewSolver(catalog, NewCompatibilityOracle(nil), strategy, NewRandomSource(1), diag)
}

func TestSolveSelfCompatibleTiles(t *testing.T) {
	catalog := catalogOf(t, solidImage(4, 4, red), solidImage(4, 4, green), solidImage(4, 4, blue))
	for _, strategy := range []Strategy{StrategyExact, StrategyFast} {
		t.Run(strategy.String(), func(t *testing.T) {
			rec := &recorder{}
			g := NewGrid(4, 3, catalog.IDs())
			res := newTestSolver(catalog, strategy, rec).Solve(g)

			assert.Empty(t, rec.errors)
			assert.True(t, res.Consistent)
			assert.Equal(t, 12, res.Resolved)
			assert.Equal(t, 0, res.Failed)
			// each solid tile only fits next to itself
			ids := g.TileIDs()
			for _, row := range ids {
				for _, id := range row {
					assert.Equal(t, ids[0][0], id)
				}
			}
		})
	}
}

// chainCatalog contains tiles that only constrain each other horizontally:
// 0 (red|green), 1 (green|red), 2 (blue|blue) and 3 (red|yellow). No tile
// has a yellow left edge.
func chainCatalog(t *testing.T) *TileCatalog {
	return catalogOf(t,
		sideImage(4, red, green),
		sideImage(4, green, red),
		sideImage(4, blue, blue),
		sideImage(4, red, yellow))
}

func TestPropagate(t *testing.T) {
	catalog := chainCatalog(t)
	g := NewGrid(3, 3, catalog.IDs())
	solver := newTestSolver(catalog, StrategyExact, &recorder{})

	before := make([][]TileID, 0, g.NumCells())
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			before = append(before, g.Cell(x, y).Candidates())
		}
	}
	require.True(t, solver.Propagate(g))

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			after := g.Cell(x, y).Candidates()
			assert.Subset(t, before[y*g.Width+x], after)
			assert.NotEmpty(t, after)
			assert.Equal(t, after, solver.FilterCandidates(g, x, y), "cell (%d,%d) not at fixed point", x, y)
		}
	}
	for y := 0; y < g.Height; y++ {
		assert.NotContains(t, g.Cell(0, y).Candidates(), TileID(3))
		assert.NotContains(t, g.Cell(1, y).Candidates(), TileID(3))
		assert.Contains(t, g.Cell(2, y).Candidates(), TileID(3))
		assert.Contains(t, g.Cell(1, y).Candidates(), TileID(1))
	}

	cells := make([][]TileID, 0, g.NumCells())
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cells = append(cells, g.Cell(x, y).Candidates())
		}
	}
	require.True(t, solver.Propagate(g))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			assert.Equal(t, cells[y*g.Width+x], g.Cell(x, y).Candidates())
		}
	}
}

func TestSolveChain(t *testing.T) {
	catalog := chainCatalog(t)
	rec := &recorder{}
	g := NewGrid(5, 4, catalog.IDs())
	res := newTestSolver(catalog, StrategyExact, rec).Solve(g)

	require.Empty(t, rec.errors)
	assert.Equal(t, 20, res.Resolved)
	for y := 0; y < g.Height; y++ {
		for x := 0; x+1 < g.Width; x++ {
			left, _ := g.Cell(x, y).Tile()
			right, _ := g.Cell(x+1, y).Tile()
			assert.Equal(t, catalog.Boundary(left, Right).Hash, catalog.Boundary(right, Left).Hash,
				"seam between (%d,%d) and (%d,%d)", x, y, x+1, y)
		}
	}
}

// incompatibleCatalog contains two tiles whose edges match nothing, not even
// their own opposite edge.
func incompatibleCatalog(t *testing.T) *TileCatalog {
	return catalogOf(t,
		edgeImage(4, red, green, blue, yellow),
		edgeImage(4, white, black, green, blue))
}

func TestSolveSingleCell(t *testing.T) {
	catalog := incompatibleCatalog(t)
	rec := &recorder{}
	g := NewGrid(1, 1, catalog.IDs())
	res := newTestSolver(catalog, StrategyExact, rec).Solve(g)

	assert.Empty(t, rec.errors)
	assert.Equal(t, 1, res.Resolved)
}

func TestSolveIncompatiblePair(t *testing.T) {
	catalog := incompatibleCatalog(t)
	rec := &recorder{}
	g := NewGrid(2, 1, catalog.IDs())
	res := newTestSolver(catalog, StrategyExact, rec).Solve(g)

	assert.False(t, res.Consistent)
	assert.Equal(t, 1, res.Resolved)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, CellResolved, g.Cell(0, 0).State())
	assert.Equal(t, CellError, g.Cell(1, 0).State())
	assert.Equal(t, []string{
		"no viable candidate at cell (0,0)",
		"no viable candidate at cell (1,0)",
	}, rec.errors)

	img, err := Render(g, catalog)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
	assert.Equal(t, gray, img.RGBAAt(1, 1))
	assert.Equal(t, black, img.RGBAAt(5, 1))
}

func TestFailurePolicies(t *testing.T) {
	// A (white|green), B1 (green|yellow), B2 (blue|red), C (red|white)
	catalog := catalogOf(t,
		sideImage(4, white, green),
		sideImage(4, green, yellow),
		sideImage(4, blue, red),
		sideImage(4, red, white))
	const A, C = TileID(0), TileID(3)
	newGrid := func() *Grid {
		return NewGridFunc(3, 1, func(x, y int) []TileID {
			switch x {
			case 0:
				return []TileID{0}
			case 1:
				return []TileID{1, 2}
			default:
				return []TileID{3}
			}
		})
	}
	tests := []struct {
		name     string
		strategy Strategy
		policy   FailurePolicy
		want     []TileID
		errors   int
	}{
		{"fast cell", StrategyFast, FailCell, []TileID{A, NoTileID, C}, 1},
		{"fast cascade", StrategyFast, FailCascade, []TileID{A, NoTileID, NoTileID}, 2},
		{"exact cascade", StrategyExact, FailCascade, []TileID{A, NoTileID, NoTileID}, 3},
		{"exact cell", StrategyExact, FailCell, []TileID{A, NoTileID, C}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			g := newGrid()
			solver := newTestSolver(catalog, tt.strategy, rec)
			solver.Policy = tt.policy
			solver.Solve(g)
			assert.Equal(t, tt.want, g.TileIDs()[0])
			assert.Len(t, rec.errors, tt.errors)
			if tt.policy == FailCascade {
				assert.Contains(t, rec.errors, "1 cells after cell (1,0) marked as error")
			}
		})
	}
}

func TestLookahead(t *testing.T) {
	catalog := catalogOf(t,
		edgeImage(4, red, green, gray, gray),   // 0: P, right edge fits U
		edgeImage(4, red, blue, gray, gray),    // 1: Q
		edgeImage(4, red, gray, gray, green),   // 2: U
		edgeImage(4, gray, gray, red, gray),    // 3: upper right, fits above U
		edgeImage(4, gray, gray, yellow, gray), // 4: upper right, fits nothing
	)
	solver := newTestSolver(catalog, StrategyExact, &recorder{})
	newGrid := func(upperRight Cell) *Grid {
		g := NewGrid(2, 2, nil)
		g.Set(0, 0, ResolvedCell(0))
		g.Set(1, 0, upperRight)
		g.Set(0, 1, OpenCell([]TileID{0, 1}))
		g.Set(1, 1, OpenCell([]TileID{2}))
		return g
	}

	g := newGrid(ResolvedCell(3))
	assert.Equal(t, []TileID{0}, solver.lookahead(g, 0, 1, []TileID{0, 1}))

	g = newGrid(ResolvedCell(4))
	assert.Empty(t, solver.lookahead(g, 0, 1, []TileID{0, 1}))

	g = newGrid(OpenCell([]TileID{3, 4}))
	assert.Equal(t, []TileID{0, 1}, solver.lookahead(g, 0, 1, []TileID{0, 1}))

	// last column and first row are never restricted
	assert.Equal(t, []TileID{0, 1}, solver.lookahead(g, 1, 1, []TileID{0, 1}))
	assert.Equal(t, []TileID{0, 1}, solver.lookahead(g, 0, 0, []TileID{0, 1}))
}

func TestSolveTrivial(t *testing.T) {
	catalog := incompatibleCatalog(t)
	rec := &recorder{}
	g := NewGridFunc(3, 3, func(x, y int) []TileID {
		if x == 1 && y == 1 {
			return nil
		}
		return catalog.IDs()
	})
	res := newTestSolver(catalog, StrategyTrivial, rec).Solve(g)

	assert.Equal(t, 8, res.Resolved)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, CellError, g.Cell(1, 1).State())
	assert.Equal(t, []string{"no viable candidate at cell (1,1)"}, rec.errors)
}

func TestSolveDeterministic(t *testing.T) {
	catalog := chainCatalog(t)
	for _, strategy := range []Strategy{StrategyExact, StrategyFast, StrategyTrivial} {
		t.Run(strategy.String(), func(t *testing.T) {
			solve := func() [][]TileID {
				g := NewGrid(6, 4, catalog.IDs())
				solver := NewSolver(catalog, nil, strategy, NewRandomSource(42), NopDiagnostics{})
				solver.Solve(g)
				return g.TileIDs()
			}
			assert.Equal(t, solve(), solve())
		})
	}
}

func TestSolveProgress(t *testing.T) {
	catalog := catalogOf(t, solidImage(4, 4, red))
	g := NewGrid(3, 2, catalog.IDs())
	solver := newTestSolver(catalog, StrategyFast, NopDiagnostics{})
	calls := 0
	solver.Progress = func(num int) {
		calls++
		assert.Equal(t, calls, num)
	}
	solver.Solve(g)
	assert.Equal(t, 6, calls)
}

func TestParseStrategyAndPolicy(t *testing.T) {
	for _, s := range []Strategy{StrategyExact, StrategyFast, StrategyTrivial} {
		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseStrategy("greedy")
	assert.Error(t, err)

	for _, p := range []FailurePolicy{FailCascade, FailCell} {
		parsed, err := ParseFailurePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	assert.Equal(t, FailCascade, StrategyExact.DefaultPolicy())
	assert.Equal(t, FailCell, StrategyFast.DefaultPolicy())
}

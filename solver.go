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
	"strings"

	log "github.com/sirupsen/logrus"
)

// Strategy selects how a grid is solved.
type Strategy int

const (
	// StrategyExact first propagates constraints until a fixed point is
	// reached and then resolves the cells in row-major order with a one step
	// lookahead.
	StrategyExact Strategy = iota
	// StrategyFast skips propagation and the lookahead.
	StrategyFast
	// StrategyTrivial ignores the edges and picks a random candidate for each
	// cell.
	StrategyTrivial
)

func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategyFast:
		return "fast"
	case StrategyTrivial:
		return "trivial"
	default:
		return fmt.Sprintf("Strategy(%d)", s)
	}
}

// DefaultPolicy returns the failure policy used with this strategy unless
// another policy is set explicitly.
func (s Strategy) DefaultPolicy() FailurePolicy {
	if s == StrategyExact {
		return FailCascade
	}
	return FailCell
}

// ParseStrategy parses "exact", "fast" or "trivial".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "exact":
		return StrategyExact, nil
	case "fast":
		return StrategyFast, nil
	case "trivial":
		return StrategyTrivial, nil
	default:
		return StrategyExact, fmt.Errorf("Unknown strategy \"%s\", expected \"exact\", \"fast\" or \"trivial\"", s)
	}
}

// FailurePolicy describes what happens after a cell could not be resolved.
type FailurePolicy int

const (
	// FailCascade marks the failed cell and all cells after it (in
	// row-major order) as error.
	FailCascade FailurePolicy = iota
	// FailCell marks only the failed cell as error and continues.
	FailCell
)

func (p FailurePolicy) String() string {
	switch p {
	case FailCascade:
		return "cascade"
	case FailCell:
		return "cell"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", p)
	}
}

// ParseFailurePolicy parses "cascade" or "cell".
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(s) {
	case "cascade":
		return FailCascade, nil
	case "cell":
		return FailCell, nil
	default:
		return FailCascade, fmt.Errorf("Unknown failure policy \"%s\", expected \"cascade\" or \"cell\"", s)
	}
}

// SolveResult summarizes a call to Solve.
type SolveResult struct {
	Resolved, Failed int
	// Consistent is false if propagation stopped because a cell ran out of
	// candidates.
	Consistent bool
}

// Solver assigns tiles to the cells of a grid.
//
// A solver is not safe for concurrent use (the random source usually isn't).
type Solver struct {
	Catalog  *TileCatalog
	Oracle   *CompatibilityOracle
	Strategy Strategy
	Policy   FailurePolicy
	Random   RandomSource
	Diag     Diagnostics
	// Progress is called with the number of cells processed during
	// resolution.
	Progress ProgressFunc
}

// NewSolver returns a new solver using the default failure policy of
// strategy. If rnd is nil a time based random source is used, if diag is nil
// diagnostics are written to the standard logger.
func NewSolver(catalog *TileCatalog, oracle *CompatibilityOracle, strategy Strategy,
	rnd RandomSource, diag Diagnostics) *Solver {
	if oracle == nil {
		oracle = NewCompatibilityOracle(nil)
	}
	if rnd == nil {
		rnd = NewRandomSource(TimeSeed())
	}
	if diag == nil {
		diag = NewLogrusDiagnostics(nil)
	}
	return &Solver{
		Catalog:  catalog,
		Oracle:   oracle,
		Strategy: strategy,
		Policy:   strategy.DefaultPolicy(),
		Random:   rnd,
		Diag:     diag,
		Progress: ProgressIgnore,
	}
}

// Solve runs the solver's strategy on g. After Solve returns each cell of g is
// either resolved or marked as error.
func (s *Solver) Solve(g *Grid) SolveResult {
	res := SolveResult{Consistent: true}
	if g.Empty() {
		return res
	}
	log.WithFields(log.Fields{
		"strategy": s.Strategy,
		"policy":   s.Policy,
		"grid":     FormatDimensions(g.Width, g.Height),
		"tiles":    s.Catalog.NumTiles(),
	}).Debug("Solving grid")
	switch s.Strategy {
	case StrategyTrivial:
		s.resolveTrivial(g)
	case StrategyFast:
		s.resolve(g, false, false)
	default:
		res.Consistent = s.Propagate(g)
		s.resolve(g, true, true)
	}
	res.Resolved = g.Count(CellResolved)
	res.Failed = g.Count(CellError)
	return res
}

// expected returns the boundaries the neighbor of (x, y) in direction d may
// show on the edge touching (x, y).
func (s *Solver) expected(g *Grid, x, y int, d Direction) BoundarySet {
	neighbor, ok := g.Neighbor(x, y, d)
	if !ok {
		return BoundarySet{}
	}
	switch neighbor.State() {
	case CellResolved:
		id, _ := neighbor.Tile()
		return NewBoundarySet(s.Catalog.Boundary(id, d.Opposite()))
	case CellOpen:
		return s.Catalog.BoundarySetOf(neighbor.Candidates(), d.Opposite())
	default:
		return BoundarySet{}
	}
}

// FilterCandidates returns the candidates of the cell at (x, y) that are
// compatible with the current state of all four neighbors. Off-grid and error
// neighbors impose no constraint, resolved neighbors require a match with
// their tile and open neighbors a match with at least one of their
// candidates.
func (s *Solver) FilterCandidates(g *Grid, x, y int) []TileID {
	c := g.Cell(x, y)
	switch c.State() {
	case CellOpen:
		var expected [4]BoundarySet
		for _, d := range Directions {
			expected[d] = s.expected(g, x, y, d)
		}
		return s.Catalog.Filter(s.Oracle, c.Candidates(), expected)
	case CellResolved:
		return c.Candidates()
	default:
		return nil
	}
}

// Propagate removes candidates that can't match any candidate of a neighbor
// until no more candidates can be removed. It returns false if a cell would
// lose all its candidates, in this case the error is reported and
// propagation stops, the cell keeps its last candidate set.
func (s *Solver) Propagate(g *Grid) bool {
	n := g.NumCells()
	queue := make([]int, 0, n)
	inQueue := make([]bool, n)
	for i := 0; i < n; i++ {
		queue = append(queue, i)
		inQueue[i] = true
	}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		inQueue[next] = false
		x, y := next%g.Width, next/g.Width
		c := g.Cell(x, y)
		if c.State() != CellOpen {
			continue
		}
		filtered := s.FilterCandidates(g, x, y)
		if len(filtered) == len(c.Candidates()) {
			continue
		}
		if len(filtered) == 0 {
			s.Diag.Error(fmt.Sprintf("no viable candidate at cell (%d,%d)", x, y))
			return false
		}
		g.Set(x, y, OpenCell(filtered))
		for _, d := range Directions {
			dx, dy := d.Offset()
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			i := ny*g.Width + nx
			if !inQueue[i] {
				inQueue[i] = true
				queue = append(queue, i)
			}
		}
	}
	return true
}

// lookahead removes the candidates for (x, y) that leave the right neighbor
// without a tile that fits both the candidate and the resolved upper right
// cell.
func (s *Solver) lookahead(g *Grid, x, y int, candidates []TileID) []TileID {
	if x+1 >= g.Width || y == 0 {
		return candidates
	}
	upperRight := g.Cell(x+1, y-1)
	urTile, ok := upperRight.Tile()
	if !ok {
		return candidates
	}
	right := g.Cell(x+1, y)
	if right.State() != CellOpen {
		return candidates
	}
	above := NewBoundarySet(s.Catalog.Boundary(urTile, Bottom))
	res := make([]TileID, 0, len(candidates))
	for _, id := range candidates {
		left := NewBoundarySet(s.Catalog.Boundary(id, Right))
		for _, cont := range right.Candidates() {
			contTile := s.Catalog.Get(cont)
			if s.Oracle.IsCompatible(contTile.Boundary(Left), left) &&
				s.Oracle.IsCompatible(contTile.Boundary(Top), above) {
				res = append(res, id)
				break
			}
		}
	}
	return res
}

func (s *Solver) pick(candidates []TileID) TileID {
	return candidates[s.Random.Intn(len(candidates))]
}

// resolve visits the cells in row-major order and assigns a tile to each open
// cell. If pickFirst is true the first cell takes a random candidate without
// filtering.
func (s *Solver) resolve(g *Grid, pickFirst, withLookahead bool) {
	var failedAt *[2]int
	cascaded := 0
	processed := 0
	first := true
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			processed++
			c := g.Cell(x, y)
			if c.Terminal() {
				s.Progress(processed)
				continue
			}
			if failedAt != nil && s.Policy == FailCascade {
				g.Set(x, y, ErrorCell())
				cascaded++
				s.Progress(processed)
				continue
			}
			var candidates []TileID
			if first && pickFirst {
				candidates = c.Candidates()
			} else {
				candidates = s.FilterCandidates(g, x, y)
				if withLookahead {
					candidates = s.lookahead(g, x, y, candidates)
				}
			}
			first = false
			if len(candidates) == 0 {
				s.Diag.Error(fmt.Sprintf("no viable candidate at cell (%d,%d)", x, y))
				g.Set(x, y, ErrorCell())
				if failedAt == nil {
					failedAt = &[2]int{x, y}
				}
			} else {
				g.Set(x, y, ResolvedCell(s.pick(candidates)))
			}
			s.Progress(processed)
		}
	}
	if cascaded > 0 {
		s.Diag.Error(fmt.Sprintf("%d cells after cell (%d,%d) marked as error",
			cascaded, failedAt[0], failedAt[1]))
	}
}

func (s *Solver) resolveTrivial(g *Grid) {
	processed := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			processed++
			c := g.Cell(x, y)
			if c.Terminal() {
				continue
			}
			candidates := c.Candidates()
			if len(candidates) == 0 {
				s.Diag.Error(fmt.Sprintf("no viable candidate at cell (%d,%d)", x, y))
				g.Set(x, y, ErrorCell())
			} else {
				g.Set(x, y, ResolvedCell(s.pick(candidates)))
			}
			s.Progress(processed)
		}
	}
}

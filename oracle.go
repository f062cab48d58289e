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

// BoundarySet is a set of boundaries, two boundaries with the same hash are
// stored once. The zero value is an empty set that must not be modified, use
// NewBoundarySet for a set that elements can be added to.
type BoundarySet struct {
	entries map[EdgeHash]*Boundary
}

// NewBoundarySet returns a set containing the given boundaries.
func NewBoundarySet(boundaries ...*Boundary) BoundarySet {
	res := BoundarySet{entries: make(map[EdgeHash]*Boundary, len(boundaries))}
	for _, b := range boundaries {
		res.Add(b)
	}
	return res
}

// Add adds b to the set.
func (s BoundarySet) Add(b *Boundary) {
	s.entries[b.Hash] = b
}

// Len returns the number of distinct boundaries in the set.
func (s BoundarySet) Len() int {
	return len(s.entries)
}

// Contains checks if a boundary with hash h is in the set.
func (s BoundarySet) Contains(h EdgeHash) bool {
	_, has := s.entries[h]
	return has
}

// Each calls f for each element in the set until f returns false.
func (s BoundarySet) Each(f func(b *Boundary) bool) {
	for _, b := range s.entries {
		if !f(b) {
			return
		}
	}
}

// CompatibilityOracle decides if an edge may be placed next to a neighbor,
// given the set of boundaries the neighbor may still show.
type CompatibilityOracle struct {
	Comparator EdgeComparator
}

// NewCompatibilityOracle returns a new oracle, a nil comparator means exact
// comparison.
func NewCompatibilityOracle(cmp EdgeComparator) *CompatibilityOracle {
	if cmp == nil {
		cmp = ExactComparator{}
	}
	return &CompatibilityOracle{Comparator: cmp}
}

// IsCompatible checks edge against the expected boundaries.
//
// An empty set imposes no constraint. A set with one element is compared with
// the comparator. For more elements the edge must match at least one of them.
func (o *CompatibilityOracle) IsCompatible(edge *Boundary, expected BoundarySet) bool {
	switch expected.Len() {
	case 0:
		return true
	case 1:
		res := false
		expected.Each(func(b *Boundary) bool {
			res = o.Comparator.Equal(edge, b)
			return false
		})
		return res
	default:
		if _, isExact := o.Comparator.(ExactComparator); isExact {
			return expected.Contains(edge.Hash)
		}
		res := false
		expected.Each(func(b *Boundary) bool {
			res = o.Comparator.Equal(edge, b)
			return !res
		})
		return res
	}
}

// Fits checks all four edges of t against the expected boundaries of the
// neighbors.
func (o *CompatibilityOracle) Fits(t *Tile, expected [4]BoundarySet) bool {
	for _, d := range Directions {
		if !o.IsCompatible(t.Boundaries[d], expected[d]) {
			return false
		}
	}
	return true
}

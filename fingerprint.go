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
	"encoding/hex"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/zeebo/blake3"
)

// Direction is one of the four edges of a tile (or one of the four neighbors
// of a cell).
type Direction int

const (
	Top Direction = iota
	Right
	Bottom
	Left
)

// Directions contains all directions in the order top, right, bottom, left.
var Directions = [4]Direction{Top, Right, Bottom, Left}

// Opposite returns the direction facing d, that is the edge of a neighbor
// that touches edge d.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Offset returns the grid offset of the neighbor in direction d.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Top:
		return 0, -1
	case Right:
		return 1, 0
	case Bottom:
		return 0, 1
	default:
		return -1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Top:
		return "Top"
	case Right:
		return "Right"
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// EdgeHash is the BLAKE3 digest of the pixels along one edge.
type EdgeHash [32]byte

func (h EdgeHash) String() string {
	return hex.EncodeToString(h[:8])
}

// Boundary is the fingerprint of the pixels along one edge of a tile.
//
// It carries two representations: Hash is used for exact comparison, Lab
// (the edge in CIE L*a*b*) for tolerant comparison. Both are computed once by
// NewBoundary, comparators never touch the pixels again.
//
// Two different edges may in theory have the same hash, in that case they are
// considered equal by the ExactComparator. With a 256 bit digest this is not
// a practical concern.
type Boundary struct {
	Pixels []RGB
	Hash   EdgeHash
	Lab    []colorful.Color
}

// NewBoundary computes the fingerprint of the given edge pixels (in order).
func NewBoundary(pixels []RGB) *Boundary {
	buf := make([]byte, 0, 3*len(pixels))
	lab := make([]colorful.Color, len(pixels))
	for i, p := range pixels {
		buf = append(buf, p.R, p.G, p.B)
		c := colorful.Color{
			R: float64(p.R) / 255.0,
			G: float64(p.G) / 255.0,
			B: float64(p.B) / 255.0,
		}
		l, a, b := c.Lab()
		// store L, a, b in the R, G, B fields, that way we don't need another
		// type
		lab[i] = colorful.Color{R: l, G: a, B: b}
	}
	return &Boundary{
		Pixels: pixels,
		Hash:   EdgeHash(blake3.Sum256(buf)),
		Lab:    lab,
	}
}

// Reversed returns the fingerprint of the same edge read in the other
// direction.
func (b *Boundary) Reversed() *Boundary {
	n := len(b.Pixels)
	pixels := make([]RGB, n)
	for i, p := range b.Pixels {
		pixels[n-i-1] = p
	}
	return NewBoundary(pixels)
}

// Len returns the number of pixels on the edge.
func (b *Boundary) Len() int {
	return len(b.Pixels)
}

func (b *Boundary) String() string {
	return fmt.Sprintf("Boundary(%d px, %s)", len(b.Pixels), b.Hash)
}

// ComputeFingerprints returns the four boundaries of img, indexed by
// Direction. Top and Bottom are read left to right, Left and Right top to
// bottom.
func ComputeFingerprints(img image.Image) [4]*Boundary {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	var res [4]*Boundary
	if width <= 0 || height <= 0 {
		for _, d := range Directions {
			res[d] = NewBoundary(nil)
		}
		return res
	}
	row := func(y int) []RGB {
		pixels := make([]RGB, width)
		for x := 0; x < width; x++ {
			pixels[x] = ConvertRGB(img.At(bounds.Min.X+x, y))
		}
		return pixels
	}
	col := func(x int) []RGB {
		pixels := make([]RGB, height)
		for y := 0; y < height; y++ {
			pixels[y] = ConvertRGB(img.At(x, bounds.Min.Y+y))
		}
		return pixels
	}
	res[Top] = NewBoundary(row(bounds.Min.Y))
	res[Bottom] = NewBoundary(row(bounds.Max.Y - 1))
	res[Left] = NewBoundary(col(bounds.Min.X))
	res[Right] = NewBoundary(col(bounds.Max.X - 1))
	return res
}

// EdgeComparator decides if two boundaries are considered equal.
type EdgeComparator interface {
	Equal(a, b *Boundary) bool
	String() string
}

// ExactComparator considers two boundaries equal iff their hashes are equal.
type ExactComparator struct{}

// Equal compares the hashes of a and b.
func (ExactComparator) Equal(a, b *Boundary) bool {
	return a.Hash == b.Hash
}

func (ExactComparator) String() string {
	return "exact"
}

const (
	// DefaultLumaTolerance is the default allowed difference in L* (0 to 1).
	DefaultLumaTolerance = 0.02
	// DefaultChromaTolerance is the default allowed difference in a* and b*.
	DefaultChromaTolerance = 0.05
)

// TolerantComparator considers two boundaries equal if they have the same
// length and each pair of pixels differs at most by LumaTolerance in L* and
// at most by ChromaTolerance in a* and b*.
//
// Luma should be the stricter tolerance, the eye is much more sensitive to
// changes in brightness than to changes in hue.
type TolerantComparator struct {
	LumaTolerance, ChromaTolerance float64
}

// NewTolerantComparator returns a comparator with the default tolerances.
func NewTolerantComparator() TolerantComparator {
	return TolerantComparator{
		LumaTolerance:   DefaultLumaTolerance,
		ChromaTolerance: DefaultChromaTolerance,
	}
}

// Equal compares a and b pixel by pixel in L*a*b*.
func (c TolerantComparator) Equal(a, b *Boundary) bool {
	if a.Hash == b.Hash {
		return true
	}
	if len(a.Lab) != len(b.Lab) {
		return false
	}
	for i, pa := range a.Lab {
		pb := b.Lab[i]
		if math.Abs(pa.R-pb.R) > c.LumaTolerance {
			return false
		}
		if math.Abs(pa.G-pb.G) > c.ChromaTolerance || math.Abs(pa.B-pb.B) > c.ChromaTolerance {
			return false
		}
	}
	return true
}

func (c TolerantComparator) String() string {
	return fmt.Sprintf("tolerant(L=%.3f, ab=%.3f)", c.LumaTolerance, c.ChromaTolerance)
}

// ParseComparator returns the comparator with the given name, "exact" or
// "tolerant" (with default tolerances).
func ParseComparator(s string) (EdgeComparator, error) {
	switch strings.ToLower(s) {
	case "exact", "":
		return ExactComparator{}, nil
	case "tolerant":
		return NewTolerantComparator(), nil
	default:
		return nil, fmt.Errorf("Unknown comparator \"%s\", expected \"exact\" or \"tolerant\"", s)
	}
}

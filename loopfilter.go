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

import "fmt"

const (
	// DefaultQP is the default quantization parameter of the loop filter.
	DefaultQP = 40
	// MaxQP is the largest quantization parameter.
	MaxQP = 51
)

// thresholds of the H.264 in-loop deblocking filter, indexed by QP
var (
	loopAlpha = [MaxQP + 1]int{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		4, 4, 5, 6, 7, 8, 9, 10, 12, 13, 15, 17, 20, 22, 25, 28,
		32, 36, 40, 45, 50, 56, 63, 71, 80, 90, 101, 113, 127, 144, 162, 182,
		203, 226, 255, 255,
	}

	loopBeta = [MaxQP + 1]int{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 6, 6, 7, 7, 8, 8,
		9, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16,
		17, 17, 18, 18,
	}

	// clipping values for boundary strength 1 to 3
	loopTC0 = [MaxQP + 1][3]int{
		{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},
		{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},
		{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 1},
		{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 1, 1}, {0, 1, 1}, {1, 1, 1},
		{1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {1, 1, 2}, {1, 1, 2}, {1, 1, 2},
		{1, 1, 2}, {1, 2, 3}, {1, 2, 3}, {2, 2, 3}, {2, 2, 4}, {2, 3, 4},
		{2, 3, 4}, {3, 3, 5}, {3, 4, 6}, {3, 4, 6}, {4, 5, 7}, {4, 5, 8},
		{4, 6, 9}, {5, 7, 10}, {6, 8, 11}, {6, 8, 13}, {7, 10, 14}, {8, 11, 16},
		{9, 12, 18}, {10, 13, 20}, {11, 15, 23}, {13, 17, 25},
	}
)

// loopBS is the boundary strength used for the normal filter, tile seams are
// treated like edges between two inter coded macroblocks.
const loopBS = 2

// LoopFilterKernel is modelled after the in-loop deblocking filter of H.264.
//
// For each segment the gradients across the edge decide if the segment is
// filtered at all and whether the strong filter (up to three samples on each
// side) or the normal filter (up to two samples) is used. Chroma samples get a
// simpler correction that only changes the samples next to the edge.
type LoopFilterKernel struct {
	// QP is the nominal quantization parameter in [0, 51], higher values
	// filter more aggressively. Values outside the range are clamped.
	QP int
}

// NewLoopFilterKernel returns a new kernel with the given QP.
func NewLoopFilterKernel(qp int) LoopFilterKernel {
	return LoopFilterKernel{QP: clip3(0, MaxQP, qp)}
}

func (k LoopFilterKernel) String() string {
	return fmt.Sprintf("loopfilter(qp=%d)", k.QP)
}

// FilterEdge implements DeblockKernel.
func (k LoopFilterKernel) FilterEdge(plane []int, chroma bool, pos, step, advance int) {
	qp := clip3(0, MaxQP, k.QP)
	alpha, beta := loopAlpha[qp], loopBeta[qp]
	if alpha == 0 || beta == 0 {
		return
	}
	strong := true
	for line := 0; line < deblockLines; line++ {
		q0i := pos + line*advance
		if IntAbs(plane[q0i-step]-plane[q0i]) >= (alpha>>2)+2 {
			strong = false
			break
		}
	}
	tc0 := loopTC0[qp][loopBS-1]
	for line := 0; line < deblockLines; line++ {
		k.filterLine(plane, chroma, pos+line*advance, step, alpha, beta, tc0, strong)
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (k LoopFilterKernel) filterLine(plane []int, chroma bool, q0i, step, alpha, beta, tc0 int, strong bool) {
	p0i, p1i, p2i, p3i := q0i-step, q0i-2*step, q0i-3*step, q0i-4*step
	q1i, q2i, q3i := q0i+step, q0i+2*step, q0i+3*step
	p0, p1, p2, p3 := plane[p0i], plane[p1i], plane[p2i], plane[p3i]
	q0, q1, q2, q3 := plane[q0i], plane[q1i], plane[q2i], plane[q3i]

	if IntAbs(p0-q0) >= alpha || IntAbs(p1-p0) >= beta || IntAbs(q1-q0) >= beta {
		return
	}
	ap, aq := IntAbs(p2-p0), IntAbs(q2-q0)

	switch {
	case strong && chroma:
		plane[p0i] = clipPixel((2*p1 + p0 + q1 + 2) >> 2)
		plane[q0i] = clipPixel((2*q1 + q0 + p1 + 2) >> 2)
	case strong:
		if ap < beta {
			plane[p0i] = clipPixel((p2 + 2*p1 + 2*p0 + 2*q0 + q1 + 4) >> 3)
			plane[p1i] = clipPixel((p2 + p1 + p0 + q0 + 2) >> 2)
			plane[p2i] = clipPixel((2*p3 + 3*p2 + p1 + p0 + q0 + 4) >> 3)
		} else {
			plane[p0i] = clipPixel((2*p1 + p0 + q1 + 2) >> 2)
		}
		if aq < beta {
			plane[q0i] = clipPixel((p1 + 2*p0 + 2*q0 + 2*q1 + q2 + 4) >> 3)
			plane[q1i] = clipPixel((p0 + q0 + q1 + q2 + 2) >> 2)
			plane[q2i] = clipPixel((2*q3 + 3*q2 + q1 + q0 + p0 + 4) >> 3)
		} else {
			plane[q0i] = clipPixel((2*q1 + q0 + p1 + 2) >> 2)
		}
	default:
		tc := tc0 + 1
		if !chroma {
			tc = tc0 + b2i(ap < beta) + b2i(aq < beta)
		}
		delta := clip3(-tc, tc, ((q0-p0)*4+(p1-q1)+4)>>3)
		plane[p0i] = clipPixel(p0 + delta)
		plane[q0i] = clipPixel(q0 - delta)
		if chroma {
			return
		}
		if ap < beta {
			plane[p1i] = clipPixel(p1 + clip3(-tc0, tc0, (p2+((p0+q0+1)>>1)-(p1<<1))>>1))
		}
		if aq < beta {
			plane[q1i] = clipPixel(q1 + clip3(-tc0, tc0, (q2+((p0+q0+1)>>1)-(q1<<1))>>1))
		}
	}
}

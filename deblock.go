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
	"image/color"
	"strings"
)

// DeblockKernel smooths the samples on both sides of a block edge.
//
// FilterEdge filters one segment of four lines crossing an edge. The first
// sample behind the edge (q0) of the first line is plane[pos], the samples in
// front of the edge are plane[pos-step], plane[pos-2*step] and so on (p0, p1,
// ...), behind the edge plane[pos+step] ... (q1, ...). The next line starts at
// pos+advance. Four samples on each side of the edge are always available.
// chroma is true if plane is a chroma (Cb or Cr) plane.
type DeblockKernel interface {
	FilterEdge(plane []int, chroma bool, pos, step, advance int)
	String() string
}

// deblockLines is the number of lines in one filtered segment.
const deblockLines = 4

// AverageKernel blends the two lines next to the edge towards the average of
// the lines on both sides.
type AverageKernel struct{}

// FilterEdge implements DeblockKernel.
func (AverageKernel) FilterEdge(plane []int, chroma bool, pos, step, advance int) {
	for line := 0; line < deblockLines; line++ {
		q0i := pos + line*advance
		p0i, p1i, q1i := q0i-step, q0i-2*step, q0i+step
		p0, q0, p1, q1 := plane[p0i], plane[q0i], plane[p1i], plane[q1i]
		avg := (p0 + q0) / 2
		p0 = (p0 + avg) / 2
		q0 = (q0 + avg) / 2
		left := (p1 + p0) / 2
		right := (q1 + q0) / 2
		p1 = (p1 + left) / 2
		q1 = (q1 + right) / 2
		plane[p0i], plane[q0i] = clipPixel(p0), clipPixel(q0)
		plane[p1i], plane[q1i] = clipPixel(p1), clipPixel(q1)
	}
}

func (AverageKernel) String() string {
	return "average"
}

// ParseKernel returns the kernel with the given name, "average" or
// "loopfilter" (with the given quantization parameter).
func ParseKernel(s string, qp int) (DeblockKernel, error) {
	switch strings.ToLower(s) {
	case "average", "avg":
		return AverageKernel{}, nil
	case "loopfilter", "loop", "h264":
		return NewLoopFilterKernel(qp), nil
	default:
		return nil, fmt.Errorf("Unknown deblocking kernel \"%s\", expected \"average\" or \"loopfilter\"", s)
	}
}

// yCbCrPlanes holds the three planes of an image with one sample per pixel.
type yCbCrPlanes struct {
	width, height int
	planes        [3][]int
}

func newYCbCrPlanes(img *image.RGBA, width, height int) *yCbCrPlanes {
	res := &yCbCrPlanes{width: width, height: height}
	for i := range res.planes {
		res.planes[i] = make([]int, width*height)
	}
	min := img.Bounds().Min
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := img.PixOffset(min.X+x, min.Y+y)
			yy, cb, cr := color.RGBToYCbCr(img.Pix[off], img.Pix[off+1], img.Pix[off+2])
			i := y*width + x
			res.planes[0][i] = int(yy)
			res.planes[1][i] = int(cb)
			res.planes[2][i] = int(cr)
		}
	}
	return res
}

func (p *yCbCrPlanes) clone() *yCbCrPlanes {
	res := &yCbCrPlanes{width: p.width, height: p.height}
	for i, plane := range p.planes {
		res.planes[i] = append([]int(nil), plane...)
	}
	return res
}

// writeChanged writes all pixels back to img for which at least one sample
// differs from orig. Returns the number of pixels written.
func (p *yCbCrPlanes) writeChanged(img *image.RGBA, orig *yCbCrPlanes) int {
	min := img.Bounds().Min
	count := 0
	for i := range p.planes[0] {
		yy, cb, cr := p.planes[0][i], p.planes[1][i], p.planes[2][i]
		if yy == orig.planes[0][i] && cb == orig.planes[1][i] && cr == orig.planes[2][i] {
			continue
		}
		r, g, b := color.YCbCrToRGB(uint8(clipPixel(yy)), uint8(clipPixel(cb)), uint8(clipPixel(cr)))
		off := img.PixOffset(min.X+i%p.width, min.Y+i/p.width)
		img.Pix[off], img.Pix[off+1], img.Pix[off+2] = r, g, b
		count++
	}
	return count
}

// Deblock smooths the seams between the tiles of a rendered picture of
// frameWidth × frameHeight tiles of size tileWidth × tileHeight.
//
// Both tile dimensions must be multiples of 8, otherwise a warning is
// reported and the picture is not changed. The kernel is applied to each
// four line segment crossing a vertical seam and afterwards to each segment
// crossing a horizontal seam, on the luma and both chroma planes. Only pixels
// changed by the kernel are written back.
//
// It returns the number of pixels that changed.
func Deblock(img *image.RGBA, frameWidth, frameHeight, tileWidth, tileHeight int,
	kernel DeblockKernel, diag Diagnostics) int {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	if tileWidth <= 0 || tileHeight <= 0 || tileWidth%8 != 0 || tileHeight%8 != 0 {
		diag.Warn(fmt.Sprintf("deblocking skipped: tile size %s not divisible by 8",
			FormatDimensions(tileWidth, tileHeight)))
		return 0
	}
	if frameWidth <= 0 || frameHeight <= 0 {
		return 0
	}
	if kernel == nil {
		kernel = NewLoopFilterKernel(DefaultQP)
	}
	width, height := frameWidth*tileWidth, frameHeight*tileHeight
	bounds := img.Bounds()
	if bounds.Dx() < width || bounds.Dy() < height {
		diag.Warn(fmt.Sprintf("deblocking skipped: picture %s smaller than %d×%d tiles of %s",
			FormatDimensions(bounds.Dx(), bounds.Dy()), frameWidth, frameHeight,
			FormatDimensions(tileWidth, tileHeight)))
		return 0
	}
	planes := newYCbCrPlanes(img, width, height)
	orig := planes.clone()
	seamsX, seamsY := GridDivision(frameWidth, frameHeight, tileWidth, tileHeight).Seams()
	for i, plane := range planes.planes {
		chroma := i > 0
		// vertical seams, the block to the left belongs to another tile
		for _, x := range seamsX {
			for y := 0; y < height; y += deblockLines {
				kernel.FilterEdge(plane, chroma, y*width+x, 1, width)
			}
		}
		// horizontal seams, the block above belongs to another tile
		for _, y := range seamsY {
			for x := 0; x < width; x += deblockLines {
				kernel.FilterEdge(plane, chroma, y*width+x, width, 1)
			}
		}
	}
	return planes.writeChanged(img, orig)
}

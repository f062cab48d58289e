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
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// SupportedImageFunc is a function that takes a file extension and decides if
// this file extension is supported.
//
// The extension passed to this function could be for example ".txt" or ".jpg".
// TileFormats and AllFiles are implementations.
type SupportedImageFunc func(ext string) bool

// TileFormats accepts every format a tile can be decoded from: jpg, png,
// gif, bmp, tiff and webp. The decoders for bmp, tiff and webp are
// registered by this package.
func TileFormats(ext string) bool {
	ext = strings.ToLower(ext)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	default:
		return false
	}
}

// AllFiles accepts every file. Files that can't be decoded are skipped with a
// warning by LoadTiles.
func AllFiles(ext string) bool {
	return true
}

// RGB is a color containing r, g and b components.
type RGB struct {
	R, G, B uint8
}

// NewRGB returns a new RGB color.
func NewRGB(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b}
}

// ConvertRGB converts a generic color into the internal RGB representation.
func ConvertRGB(c color.Color) RGB {
	// convert to rgba model
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	// convert to internal rgb representation
	return RGB{R: rgba.R, G: rgba.G, B: rgba.B}
}

// RGBA returns the opaque color.RGBA of c.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// TileID is used to unambiguously identify a tile in a TileCatalog.
type TileID int

const (
	// NoTileID is used to signal that a cell has no tile, for example because
	// it is still open or no viable tile was found.
	NoTileID TileID = -1
)

// ToRGBA returns an opaque *image.RGBA with bounds starting at (0, 0) that
// contains the pixels of img. Tiles only carry three channels, so the alpha
// channel is dropped (each pixel is drawn over black).
func ToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	res := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(res, res.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(res, res.Bounds(), img, bounds.Min, draw.Over)
	return res
}

// ImageResizer resizes an image to the given width and height.
type ImageResizer interface {
	Resize(width, height uint, img image.Image) image.Image
}

// NfntResizer uses the nfnt/resize package to resize an image.
type NfntResizer struct {
	// InterP is the interpolation function to use.
	InterP resize.InterpolationFunction
}

// NewNfntResizer returns a new resizer given the interpolation function.
func NewNfntResizer(interP resize.InterpolationFunction) NfntResizer {
	return NfntResizer{interP}
}

// GetInterP returns an interpolation function given a desired quality.
// The higher the quality the better the interpolation should be, but execution
// time is higher. Currently supported are values between 0 and 4, each
// selecting a different interpolation function. Values greater than 4 are
// treated as 4.
func GetInterP(quality uint) resize.InterpolationFunction {
	switch quality {
	case 0:
		return resize.NearestNeighbor
	case 1:
		return resize.Bilinear
	case 2:
		return resize.Bicubic
	case 3:
		return resize.MitchellNetravali
	case 4:
		return resize.Lanczos2
	default:
		return resize.Lanczos3
	}
}

// InterPString returns a human readable name of the interpolation function.
func InterPString(interP resize.InterpolationFunction) string {
	switch interP {
	case resize.NearestNeighbor:
		return "NearestNeighbor"
	case resize.Bilinear:
		return "Bilinear"
	case resize.Bicubic:
		return "Bicubic"
	case resize.MitchellNetravali:
		return "MitchellNetravali"
	case resize.Lanczos2:
		return "Lanczos2"
	case resize.Lanczos3:
		return "Lanczos3"
	default:
		return fmt.Sprintf("InterpolationFunction(%d)", interP)
	}
}

var (
	// DefaultResizer is the resizer that is used by default. Tiles are pixel
	// art more often than not, so nearest neighbor keeps their edges crisp.
	DefaultResizer = NewNfntResizer(resize.NearestNeighbor)
)

// Resize calls nfnt/resize methods.
func (resizer NfntResizer) Resize(width, height uint, img image.Image) image.Image {
	return resize.Resize(width, height, img, resizer.InterP)
}

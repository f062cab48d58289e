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
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// OutputFormats accepts the file extensions SaveImage can write.
func OutputFormats(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}

// EncodeImage writes img to w in the format given by the file extension ext
// (for example ".png"). jpgQuality is only used for jpeg.
func EncodeImage(w io.Writer, ext string, img image.Image, jpgQuality int) error {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpgQuality})
	case ".png":
		return png.Encode(w, img)
	case ".gif":
		return gif.Encode(w, img, nil)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("Unsupported file type: %s, expected .png, .jpg, .gif, .bmp or .tiff", ext)
	}
}

// SaveImage writes img to file, the format is given by the file extension.
func SaveImage(file string, img image.Image, jpgQuality int) error {
	ext := filepath.Ext(file)
	if !OutputFormats(ext) {
		return fmt.Errorf("Unsupported file type: %s, expected .png, .jpg, .gif, .bmp or .tiff", ext)
	}
	outFile, outErr := os.Create(file)
	if outErr != nil {
		return outErr
	}
	encErr := EncodeImage(outFile, ext, img, jpgQuality)
	closeErr := outFile.Close()
	if encErr != nil {
		return encErr
	}
	return closeErr
}

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

package web

import (
	"encoding/base64"
	"image"
	"strings"

	"github.com/AaronMcKenney/gotiles"
)

// EncodeBase64 encodes img in the format given by the file extension ext and
// returns the base64 encoding of the result.
func EncodeBase64(img image.Image, ext string, quality int) (string, error) {
	var w strings.Builder
	encoder := base64.NewEncoder(base64.StdEncoding, &w)
	if err := gotiles.EncodeImage(encoder, ext, img, quality); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return w.String(), nil
}

// EncodePNG returns the base64 encoded png of img.
func EncodePNG(img image.Image) (string, error) {
	return EncodeBase64(img, ".png", 0)
}

// EncodeJPEG returns the base64 encoded jpeg of img.
func EncodeJPEG(img image.Image, quality int) (string, error) {
	return EncodeBase64(img, ".jpg", quality)
}

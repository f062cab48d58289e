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
	// decoders for tile images
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadOptions controls how LoadTiles builds the tile pool.
type LoadOptions struct {
	// Augment adds rotated and mirrored variants of each image, see Augment.
	Augment bool
	// TileWidth and TileHeight force all images to this size if both are
	// positive. Otherwise all images must have the same size.
	TileWidth, TileHeight int
	// Resizer is used if a tile size is forced, nil means DefaultResizer.
	Resizer ImageResizer
	// Filter selects the files by extension, nil means TileFormats.
	Filter SupportedImageFunc
	// NumRoutines is the number of images decoded concurrently.
	NumRoutines int
	// Progress is called after each decoded file.
	Progress ProgressFunc
}

// DefaultLoadOptions returns the options used by the command line tool:
// augmentation on, no forced tile size.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Augment:     true,
		Resizer:     DefaultResizer,
		Filter:      TileFormats,
		NumRoutines: 4,
		Progress:    ProgressIgnore,
	}
}

// LoadTiles reads all images from the directory path into a new catalog.
//
// Files that can't be decoded and entries that are not regular files are
// skipped with a warning. It returns an error wrapping ErrNoDirectory if path
// is not a directory, ErrTileSizeMismatch if two images have different sizes
// and ErrNoTiles if no image was found.
func LoadTiles(path string, opts LoadOptions, diag Diagnostics) (*TileCatalog, error) {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	db, dbErr := GenFSDatabase(path, opts.Filter, diag)
	if dbErr != nil {
		return nil, dbErr
	}
	images := decodeAll(db, opts, diag)
	catalog := NewTileCatalog()
	duplicates := 0
	for i, img := range images {
		if img == nil {
			continue
		}
		if opts.TileWidth > 0 && opts.TileHeight > 0 {
			resizer := opts.Resizer
			if resizer == nil {
				resizer = DefaultResizer
			}
			img = KeepSize(resizer, uint(opts.TileWidth), uint(opts.TileHeight), img)
		}
		variants := []Variant{{Image: img}}
		if opts.Augment {
			variants = Augment(img)
		}
		for _, v := range variants {
			_, added, addErr := catalog.Add(db.GetPath(i), v.Name, v.Image)
			if addErr != nil {
				return nil, addErr
			}
			if !added {
				duplicates++
			}
		}
	}
	if catalog.NumTiles() == 0 {
		return nil, fmt.Errorf("%w: Could not find any image files in %s", ErrNoTiles, db.Root)
	}
	log.WithFields(log.Fields{
		"path":       db.Root,
		"files":      db.NumImages(),
		"tiles":      catalog.NumTiles(),
		"duplicates": duplicates,
		"size":       FormatDimensions(catalog.TileWidth, catalog.TileHeight),
	}).Info("Loaded tile pool")
	return catalog, nil
}

// decodeAll decodes all images of db concurrently. Images that can't be
// decoded are nil in the result.
func decodeAll(db *FSImageDB, opts LoadOptions, diag Diagnostics) []image.Image {
	numRoutines := opts.NumRoutines
	if numRoutines <= 0 {
		numRoutines = 1
	}
	progress := opts.Progress
	if progress == nil {
		progress = ProgressIgnore
	}
	numImages := db.NumImages()
	res := make([]image.Image, numImages)

	jobs := make(chan int, BufferSize)
	done := make(chan struct{}, BufferSize)
	for w := 0; w < numRoutines; w++ {
		go func() {
			for next := range jobs {
				img, err := db.LoadImage(next)
				if err != nil {
					diag.Warn(fmt.Sprintf("Could not decode %s: %s", db.GetPath(next), err))
				} else {
					res[next] = img
				}
				done <- struct{}{}
			}
		}()
	}
	go func() {
		for i := 0; i < numImages; i++ {
			jobs <- i
		}
		close(jobs)
	}()
	for i := 0; i < numImages; i++ {
		<-done
		progress(i + 1)
	}
	return res
}

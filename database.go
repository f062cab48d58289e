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
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoDirectory is returned if the tile path is not a directory.
var ErrNoDirectory = errors.New("no directory at path")

// FSImageDB is a directory of tile images on the filesystem, images are
// opened on demand.
// The paths are stored relative to Root, use GetPath to get the full path.
type FSImageDB struct {
	Root  string
	Paths []string
}

// NewFSImageDB returns an empty database for the directory root.
func NewFSImageDB(root string) *FSImageDB {
	return &FSImageDB{Root: root, Paths: nil}
}

// GetPath returns the path of image i.
func (db *FSImageDB) GetPath(i int) string {
	return filepath.Join(db.Root, db.Paths[i])
}

// NumImages returns the number of images in the database.
func (db *FSImageDB) NumImages() int {
	return len(db.Paths)
}

// LoadImage decodes image i.
func (db *FSImageDB) LoadImage(i int) (image.Image, error) {
	if i < 0 || i >= db.NumImages() {
		return nil, fmt.Errorf("Invalid image index: Not associated with an image %d", i)
	}
	r, openErr := os.Open(db.GetPath(i))
	if openErr != nil {
		return nil, openErr
	}
	defer r.Close()
	img, _, decodeErr := image.Decode(r)
	return img, decodeErr
}

// GenFSDatabase lists the files in root that are accepted by filter, nil
// means TileFormats. Subdirectories are not visited, a warning is reported
// for each entry that is not a regular file.
//
// The paths are sorted by name.
func GenFSDatabase(root string, filter SupportedImageFunc, diag Diagnostics) (*FSImageDB, error) {
	root, absErr := filepath.Abs(root)
	if absErr != nil {
		return nil, absErr
	}
	if filter == nil {
		filter = TileFormats
	}
	if diag == nil {
		diag = NopDiagnostics{}
	}
	info, statErr := os.Stat(root)
	if statErr != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoDirectory, root)
	}
	result := NewFSImageDB(root)
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			diag.Warn(fmt.Sprintf("Could not get image information from %s. File recursion not supported.",
				filepath.Join(root, entry.Name())))
			continue
		}
		if filter(filepath.Ext(entry.Name())) {
			result.Paths = append(result.Paths, entry.Name())
		}
	}
	sort.Strings(result.Paths)
	return result, nil
}

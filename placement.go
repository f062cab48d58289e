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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownGroup is returned if a placement grid refers to a group that
	// is not defined.
	ErrUnknownGroup = errors.New("unknown placement group")
	// ErrNonRectangular is returned if the rows of a placement grid differ in
	// length (or the grid is empty).
	ErrNonRectangular = errors.New("placement grid is not rectangular")
)

// AnyGroup can be used in a placement grid for cells that may take every
// tile. It doesn't have to be defined in the groups.
const AnyGroup = "*"

// Placement restricts the tiles allowed in each cell.
//
// Groups maps a group name to a list of file names (without directory), a
// group contains all tiles created from these files (including rotated and
// mirrored variants). Grid contains a group name for each cell, indexed by
// [y][x], and defines the size of the picture.
//
// Example (yaml):
//
//	groups:
//	  grass: [grass1.png, grass2.png]
//	  water: [water.png]
//	grid:
//	  - [grass, grass, water]
//	  - [grass, water, "*"]
type Placement struct {
	Groups map[string][]string `yaml:"groups" json:"groups"`
	Grid   [][]string          `yaml:"grid" json:"grid"`
}

// ParsePlacement parses a placement in the given format, "yaml" or "json".
// JSON may contain comments and trailing commas.
func ParsePlacement(data []byte, format string) (*Placement, error) {
	var p Placement
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing placement: %w", err)
		}
	case "json", "jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &p); err != nil {
			return nil, fmt.Errorf("parsing placement: %w", err)
		}
	default:
		return nil, fmt.Errorf("Unsupported placement format \"%s\"", format)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPlacement reads a placement file, the format is given by the file
// extension (.yaml, .yml, .json or .jsonc).
func LoadPlacement(path string) (*Placement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	p, err := ParsePlacement(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks that the grid is rectangular and all groups are defined.
func (p *Placement) Validate() error {
	if len(p.Grid) == 0 || len(p.Grid[0]) == 0 {
		return fmt.Errorf("%w: grid is empty", ErrNonRectangular)
	}
	width := len(p.Grid[0])
	for y, row := range p.Grid {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d entries, expected %d", ErrNonRectangular,
				y, len(row), width)
		}
		for x, name := range row {
			if name == AnyGroup {
				continue
			}
			if _, has := p.Groups[name]; !has {
				return fmt.Errorf("%w \"%s\" at cell (%d,%d)", ErrUnknownGroup, name, x, y)
			}
		}
	}
	return nil
}

// Dimensions returns the width and height of the grid.
func (p *Placement) Dimensions() (width, height int) {
	if len(p.Grid) == 0 {
		return 0, 0
	}
	return len(p.Grid[0]), len(p.Grid)
}

// Expand returns the tile ids of each group. File names that don't match a
// tile in catalog are reported as warnings.
func (p *Placement) Expand(catalog *TileCatalog, diag Diagnostics) map[string][]TileID {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	res := make(map[string][]TileID, len(p.Groups)+1)
	for name, files := range p.Groups {
		var ids []TileID
		seen := make(map[TileID]struct{})
		for _, file := range files {
			matches := catalog.ByBasename(file)
			if len(matches) == 0 {
				diag.Warn(fmt.Sprintf("placement group %s: no tile from file %s", name, file))
			}
			for _, id := range matches {
				if _, has := seen[id]; !has {
					seen[id] = struct{}{}
					ids = append(ids, id)
				}
			}
		}
		res[name] = ids
	}
	res[AnyGroup] = catalog.IDs()
	return res
}

// NewGrid returns a grid of the size of the placement in which each cell
// has the tiles of its group as candidates. Cells whose group has no tiles are
// marked as error and reported to diag.
func (p *Placement) NewGrid(catalog *TileCatalog, diag Diagnostics) *Grid {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	groups := p.Expand(catalog, diag)
	width, height := p.Dimensions()
	g := NewGridFunc(width, height, func(x, y int) []TileID {
		return groups[p.Grid[y][x]]
	})
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if len(groups[p.Grid[y][x]]) == 0 {
				diag.Error(fmt.Sprintf("no viable candidate at cell (%d,%d): placement group %s has no tiles",
					x, y, p.Grid[y][x]))
				g.Set(x, y, ErrorCell())
			}
		}
	}
	return g
}

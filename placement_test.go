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
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placementYAML = `
groups:
  land: [grass.png, sand.png]
  water: [water.png]
grid:
  - [land, land, water]
  - [land, water, "*"]
`

const placementJSONC = `{
	// same as the yaml version
	"groups": {
		"land": ["grass.png", "sand.png"],
		"water": ["water.png"],
	},
	"grid": [
		["land", "land", "water"],
		["land", "water", "*"], /* any tile */
	],
}`

func TestParsePlacement(t *testing.T) {
	for _, tt := range []struct{ format, data string }{
		{"yaml", placementYAML},
		{"jsonc", placementJSONC},
	} {
		t.Run(tt.format, func(t *testing.T) {
			p, err := ParsePlacement([]byte(tt.data), tt.format)
			require.NoError(t, err)
			width, height := p.Dimensions()
			assert.Equal(t, 3, width)
			assert.Equal(t, 2, height)
			assert.Equal(t, []string{"grass.png", "sand.png"}, p.Groups["land"])
			assert.Equal(t, AnyGroup, p.Grid[1][2])
		})
	}
}

func TestPlacementValidate(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"unknown group", "groups: {a: [a.png]}\ngrid: [[a, b]]", ErrUnknownGroup},
		{"ragged", "groups: {a: [a.png]}\ngrid: [[a, a], [a]]", ErrNonRectangular},
		{"empty", "groups: {a: [a.png]}\ngrid: []", ErrNonRectangular},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlacement([]byte(tt.data), "yaml")
			assert.ErrorIs(t, err, tt.err)
		})
	}
	_, err := ParsePlacement([]byte(placementYAML), "toml")
	assert.Error(t, err)
}

func TestLoadPlacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.yml")
	require.NoError(t, os.WriteFile(path, []byte(placementYAML), 0o644))
	p, err := LoadPlacement(path)
	require.NoError(t, err)
	assert.Len(t, p.Groups, 2)

	_, err = LoadPlacement(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestPlacementGrid(t *testing.T) {
	catalog := NewTileCatalog()
	add := func(path, variant string, img *image.RGBA) TileID {
		tile, added, err := catalog.Add(path, variant, img)
		require.NoError(t, err)
		require.True(t, added)
		return tile.ID
	}
	grass := add("tiles/grass.png", "", solidImage(4, 4, green))
	grassRot := add("tiles/grass.png", "rot180", sideImage(4, green, yellow))
	water := add("tiles/water.png", "", solidImage(4, 4, blue))

	p, err := ParsePlacement([]byte(placementYAML), "yaml")
	require.NoError(t, err)
	rec := &recorder{}
	g := p.NewGrid(catalog, rec)

	assert.Equal(t, 3, g.Width)
	assert.Equal(t, 2, g.Height)
	assert.Equal(t, []TileID{grass, grassRot}, g.Cell(0, 0).Candidates())
	assert.Equal(t, []TileID{water}, g.Cell(2, 0).Candidates())
	assert.Equal(t, catalog.IDs(), g.Cell(2, 1).Candidates())
	assert.Equal(t, []string{"placement group land: no tile from file sand.png"}, rec.warnings)
}

func TestPlacementGridEmptyGroup(t *testing.T) {
	catalog := catalogOf(t, solidImage(4, 4, blue))
	p, err := ParsePlacement([]byte("groups: {lava: [lava.png]}\ngrid: [[\"*\", lava], [\"*\", \"*\"]]"), "yaml")
	require.NoError(t, err)
	rec := &recorder{}
	g := p.NewGrid(catalog, rec)

	assert.Equal(t, CellError, g.Cell(1, 0).State())
	assert.Equal(t, CellOpen, g.Cell(0, 0).State())
	assert.Equal(t, []string{"placement group lava: no tile from file lava.png"}, rec.warnings)
	assert.Equal(t, []string{"no viable candidate at cell (1,0): placement group lava has no tiles"}, rec.errors)

	// the error cell doesn't constrain its neighbors
	res := newTestSolver(catalog, StrategyExact, rec).Solve(g)
	assert.True(t, res.Consistent)
	assert.Equal(t, 3, res.Resolved)
	assert.Equal(t, 1, res.Failed)
	assert.Len(t, rec.errors, 1)
}

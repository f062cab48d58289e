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
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidFrame)

	cfg.FrameWidth, cfg.FrameHeight = 3, 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidFrame)

	cfg.FrameWidth, cfg.FrameHeight = 3, 2
	assert.NoError(t, cfg.Validate())

	p, err := ParsePlacement([]byte(placementYAML), "yaml")
	require.NoError(t, err)
	cfg.Placement = p
	assert.ErrorIs(t, cfg.Validate(), ErrFrameAndPlacement)
	cfg.FrameWidth, cfg.FrameHeight = 0, 0
	assert.NoError(t, cfg.Validate())
	width, height := cfg.Dimensions()
	assert.Equal(t, 3, width)
	assert.Equal(t, 2, height)
}

func TestConfigEffectivePolicy(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, FailCascade, cfg.EffectivePolicy())
	cfg.Strategy = StrategyFast
	assert.Equal(t, FailCell, cfg.EffectivePolicy())
	policy := FailCascade
	cfg.Policy = &policy
	assert.Equal(t, FailCascade, cfg.EffectivePolicy())
}

func TestAssembleErrors(t *testing.T) {
	cfg := DefaultConfig()
	_, err := Assemble(catalogOf(t, solidImage(4, 4, red)), cfg, &recorder{})
	assert.ErrorIs(t, err, ErrInvalidFrame)

	cfg.FrameWidth, cfg.FrameHeight = 2, 2
	_, err = Assemble(NewTileCatalog(), cfg, &recorder{})
	assert.ErrorIs(t, err, ErrNoTiles)
}

func TestAssembleDeblock(t *testing.T) {
	catalog := catalogOf(t, solidImage(8, 8, gray), solidImage(8, 8, white), sideImage(8, red, blue))
	cfg := DefaultConfig()
	cfg.FrameWidth, cfg.FrameHeight = 4, 3
	cfg.Seed, cfg.FixedSeed = 5, true
	cfg.Deblock = true

	rec := &recorder{}
	res, err := Assemble(catalog, cfg, rec)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Deblocked)
	assert.Equal(t, []string{"deblocking skipped: only applied with the trivial strategy, not exact"}, rec.warnings)

	cfg.Strategy = StrategyTrivial
	rec = &recorder{}
	res, err = Assemble(catalog, cfg, rec)
	require.NoError(t, err)
	assert.Empty(t, rec.warnings)
	assert.Equal(t, 12, res.Solve.Resolved)

	expected, err := Render(res.Grid, catalog)
	require.NoError(t, err)
	changed := Deblock(expected, 4, 3, 8, 8, cfg.Kernel, nil)
	assert.Equal(t, changed, res.Deblocked)
	assert.Equal(t, expected.Pix, res.Image.Pix)
}

func TestAssemblePlacement(t *testing.T) {
	catalog := NewTileCatalog()
	for _, tile := range []struct {
		path string
		img  *image.RGBA
	}{
		{"grass.png", solidImage(4, 4, green)},
		{"sand.png", solidImage(4, 4, yellow)},
		{"water.png", solidImage(4, 4, blue)},
	} {
		_, _, err := catalog.Add(tile.path, "", tile.img)
		require.NoError(t, err)
	}
	p, err := ParsePlacement([]byte("groups: {water: [water.png]}\ngrid: [[water, water], [water, water]]"), "yaml")
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Placement = p

	rec := &recorder{}
	res, err := Assemble(catalog, cfg, rec)
	require.NoError(t, err)
	assert.Empty(t, rec.errors)
	assert.Equal(t, 4, res.Solve.Resolved)
	assert.Equal(t, blue, res.Image.RGBAAt(7, 7))
}

func TestAssembleAllCellsFailed(t *testing.T) {
	catalog := catalogOf(t, solidImage(4, 4, blue))
	p, err := ParsePlacement([]byte("groups: {lava: [lava.png]}\ngrid: [[lava, lava]]"), "yaml")
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Placement = p

	rec := &recorder{}
	res, err := Assemble(catalog, cfg, rec)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Solve.Resolved)
	assert.Equal(t, 2, res.Solve.Failed)
	assert.Len(t, rec.errors, 2)
	require.Equal(t, image.Rect(0, 0, 8, 4), res.Image.Bounds())
	assert.Equal(t, black, res.Image.RGBAAt(0, 0))
	assert.Equal(t, black, res.Image.RGBAAt(7, 3))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "red.png", solidImage(4, 4, red))
	writePNG(t, dir, "blue.png", solidImage(4, 4, blue))
	out := filepath.Join(t.TempDir(), "picture.png")

	cfg := DefaultConfig()
	cfg.FrameWidth, cfg.FrameHeight = 5, 3
	cfg.Out = out
	rec := &recorder{}
	res, err := Run(dir, cfg, rec)
	require.NoError(t, err)
	assert.Empty(t, rec.errors)
	assert.Equal(t, 15, res.Solve.Resolved)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())
}

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
	"time"

	log "github.com/sirupsen/logrus"
)

// RunResult is the outcome of Assemble.
type RunResult struct {
	Image *image.RGBA
	Grid  *Grid
	Solve SolveResult
	// Deblocked is the number of pixels changed by the seam filter.
	Deblocked int
}

// NewGridFor returns the initial grid for the configuration: the placement
// grid if a placement is set and a grid in which each cell may take every
// tile otherwise.
func NewGridFor(catalog *TileCatalog, cfg *Config, diag Diagnostics) *Grid {
	if cfg.Placement != nil {
		return cfg.Placement.NewGrid(catalog, diag)
	}
	return NewGrid(cfg.FrameWidth, cfg.FrameHeight, catalog.IDs())
}

// Assemble solves a grid with the tiles from catalog and renders it.
//
// Configuration errors are returned and no picture is created. Cells without
// a viable tile are reported to diag and rendered black.
func Assemble(catalog *TileCatalog, cfg Config, diag Diagnostics) (*RunResult, error) {
	if diag == nil {
		diag = NewLogrusDiagnostics(nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil || catalog.NumTiles() == 0 {
		return nil, ErrNoTiles
	}
	start := time.Now()
	grid := NewGridFor(catalog, &cfg, diag)
	solver := NewSolver(catalog, NewCompatibilityOracle(cfg.Comparator), cfg.Strategy,
		cfg.Random(), diag)
	solver.Policy = cfg.EffectivePolicy()
	solver.Progress = LoggerProgressFunc("Cells", grid.NumCells(), 1000)
	res := &RunResult{Grid: grid}
	res.Solve = solver.Solve(grid)
	img, renderErr := Render(grid, catalog)
	if renderErr != nil {
		return nil, renderErr
	}
	res.Image = img
	if cfg.Deblock {
		if cfg.Strategy == StrategyTrivial {
			res.Deblocked = Deblock(img, grid.Width, grid.Height, catalog.TileWidth,
				catalog.TileHeight, cfg.Kernel, diag)
		} else {
			diag.Warn(fmt.Sprintf("deblocking skipped: only applied with the trivial strategy, not %s",
				cfg.Strategy))
		}
	}
	log.WithFields(log.Fields{
		"resolved":  res.Solve.Resolved,
		"failed":    res.Solve.Failed,
		"deblocked": res.Deblocked,
		"time":      time.Since(start),
	}).Info("Assembled picture")
	return res, nil
}

// Run loads the tiles from tileDir, assembles the picture and saves it to
// cfg.Out.
func Run(tileDir string, cfg Config, diag Diagnostics) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	catalog, loadErr := LoadTiles(tileDir, cfg.Load, diag)
	if loadErr != nil {
		return nil, loadErr
	}
	res, err := Assemble(catalog, cfg, diag)
	if err != nil {
		return nil, err
	}
	if saveErr := SaveImage(cfg.Out, res.Image, cfg.JPGQuality); saveErr != nil {
		return nil, saveErr
	}
	return res, nil
}

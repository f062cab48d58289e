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

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AaronMcKenney/gotiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() options {
	return options{
		path:       gotiles.DefaultTilePath,
		out:        "out.png",
		add:        true,
		strategy:   "exact",
		comparator: "exact",
		kernel:     "loopfilter",
		qp:         gotiles.DefaultQP,
		jpgQuality: gotiles.DefaultJPGQuality,
	}
}

func TestBuildConfig(t *testing.T) {
	opts := defaultOptions()
	opts.strategy = "trivial"
	opts.seed = "17"
	opts.noAdd = true
	opts.tileSize = "16x16"
	opts.allFiles = true
	cfg, err := buildConfig(opts, []string{"20", "10"})
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.FrameWidth)
	assert.Equal(t, 10, cfg.FrameHeight)
	assert.Equal(t, gotiles.StrategyTrivial, cfg.Strategy)
	assert.Equal(t, gotiles.FailCell, cfg.EffectivePolicy())
	assert.True(t, cfg.FixedSeed)
	assert.Equal(t, int64(17), cfg.Seed)
	assert.False(t, cfg.Load.Augment)
	assert.Equal(t, 16, cfg.Load.TileWidth)
	assert.NotNil(t, cfg.Load.Filter)
}

func TestBuildConfigErrors(t *testing.T) {
	_, err := buildConfig(defaultOptions(), []string{"20"})
	assert.Error(t, err)
	_, err = buildConfig(defaultOptions(), []string{"20", "zero"})
	assert.Error(t, err)
	_, err = buildConfig(defaultOptions(), []string{"0", "10"})
	assert.ErrorIs(t, err, gotiles.ErrInvalidFrame)

	opts := defaultOptions()
	opts.strategy = "greedy"
	_, err = buildConfig(opts, []string{"2", "2"})
	assert.Error(t, err)
}

func TestBuildConfigPlacement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, os.WriteFile(path, []byte("groups: {}\ngrid: [[\"*\", \"*\"]]"), 0o644))
	opts := defaultOptions()
	opts.placement = path

	cfg, err := buildConfig(opts, nil)
	require.NoError(t, err)
	width, height := cfg.Dimensions()
	assert.Equal(t, 2, width)
	assert.Equal(t, 1, height)

	_, err = buildConfig(opts, []string{"2", "1"})
	assert.ErrorIs(t, err, gotiles.ErrFrameAndPlacement)
}

func TestRunErrorReportedOnce(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	out := filepath.Join(t.TempDir(), "out.png")
	err := run([]string{"--path", missing, "--out", out, "2", "2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, gotiles.ErrNoDirectory)

	var stderr bytes.Buffer
	assert.Equal(t, 1, exitCode(err, &stderr))
	assert.Empty(t, stderr.String())
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 0, exitCode(nil, &stderr))
	assert.Empty(t, stderr.String())

	assert.Equal(t, 1, exitCode(errors.New("unknown flag"), &stderr))
	assert.Equal(t, "error: unknown flag\n", stderr.String())
}

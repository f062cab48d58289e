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
	"errors"
	"fmt"
)

var (
	// ErrInvalidFrame is returned if the frame width or height is not
	// positive.
	ErrInvalidFrame = errors.New("frame width and height must be greater than 0")
	// ErrFrameAndPlacement is returned if both frame dimensions and a
	// placement are given, the placement defines the dimensions.
	ErrFrameAndPlacement = errors.New("frame dimensions and placement are mutually exclusive")
)

const (
	// DefaultTilePath is the default directory to read tiles from.
	DefaultTilePath = "./"
	// DefaultOut is the default output file.
	DefaultOut = "out.png"
	// DefaultJPGQuality is the quality used for jpeg output.
	DefaultJPGQuality = 100
)

// Config contains the parameters of a run.
type Config struct {
	// FrameWidth and FrameHeight are the size of the picture in tiles. Must be
	// zero if Placement is set.
	FrameWidth, FrameHeight int
	// Placement restricts the tiles of each cell, optional.
	Placement *Placement

	Strategy Strategy
	// Policy overrides the default failure policy of Strategy if not nil.
	Policy     *FailurePolicy
	Comparator EdgeComparator

	// Deblock enables the seam filter, it is only applied with
	// StrategyTrivial. The other strategies only place matching edges next to
	// each other.
	Deblock bool
	Kernel  DeblockKernel

	// Seed is used for the random source if FixedSeed is true, otherwise a
	// time based seed is used.
	Seed      int64
	FixedSeed bool

	Load       LoadOptions
	Out        string
	JPGQuality int
}

// DefaultConfig returns the default parameters: exact strategy and
// comparison, loop filter with the default QP, augmented tiles and output to
// out.png. The frame size must still be set.
func DefaultConfig() Config {
	return Config{
		Strategy:   StrategyExact,
		Comparator: ExactComparator{},
		Kernel:     NewLoopFilterKernel(DefaultQP),
		Load:       DefaultLoadOptions(),
		Out:        DefaultOut,
		JPGQuality: DefaultJPGQuality,
	}
}

// Validate checks the frame dimensions.
func (c *Config) Validate() error {
	if c.Placement != nil {
		if c.FrameWidth != 0 || c.FrameHeight != 0 {
			return ErrFrameAndPlacement
		}
		return c.Placement.Validate()
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return fmt.Errorf("%w, got %s", ErrInvalidFrame, FormatDimensions(c.FrameWidth, c.FrameHeight))
	}
	return nil
}

// EffectivePolicy returns the failure policy to use.
func (c *Config) EffectivePolicy() FailurePolicy {
	if c.Policy != nil {
		return *c.Policy
	}
	return c.Strategy.DefaultPolicy()
}

// Random returns a new random source for this configuration.
func (c *Config) Random() RandomSource {
	if c.FixedSeed {
		return NewRandomSource(c.Seed)
	}
	return NewRandomSource(TimeSeed())
}

// Dimensions returns the size of the picture in tiles.
func (c *Config) Dimensions() (width, height int) {
	if c.Placement != nil {
		return c.Placement.Dimensions()
	}
	return c.FrameWidth, c.FrameHeight
}

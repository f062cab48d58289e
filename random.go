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
	"math/rand"
	"time"
)

// RandomSource is the source of random choices during solving. *rand.Rand
// implements it.
//
// Note that rand.Rand instances are not safe for concurrent use.
type RandomSource interface {
	// Intn returns a number in [0, n), n > 0.
	Intn(n int) int
}

// NewRandomSource returns a RandomSource with a fixed seed, runs with the same
// seed, tiles and parameters produce the same picture.
func NewRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// TimeSeed returns a seed based on the current time.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

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

// Package gotiles assembles large pictures from a pool of equally sized tile
// images such that the edges of all adjacent tiles match (Wang tiles).
//
// Each tile edge is summarized by a Boundary fingerprint, a
// CompatibilityOracle decides if two edges may touch. The Solver fills a Grid
// of cells, each cell holding the tiles still possible at that position, by
// constraint propagation followed by a randomized resolution in row-major
// order. The result is rendered with Render and can be smoothed along the
// tile seams with Deblock.
//
// It ships with an executable program (cmd/gotiles) that runs either in
// one-shot mode or as an interactive command interpreter, and with an http
// backend (cmd/backend).
package gotiles

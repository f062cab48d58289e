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

// This file contains some predefined scripts that can be executed. This way
// we have some easy way to assemble pictures without requiring the user to
// know the commands.

var (
	// RunSimple loads the tiles from a directory and assembles a picture with
	// the exact strategy.
	// It is parameterized by three parameters: the tile directory, the output
	// file and the size of the picture in tiles.
	//
	// Example usage: RunSimple ~/tiles/ out.png 20x10
	RunSimple = `tiles load $1
assemble $2 $3`

	// RunPlaced is like RunSimple but the size and the tiles of each cell are
	// given by a placement file.
	//
	// Example usage: RunPlaced ~/tiles/ level.yaml out.png
	RunPlaced = `tiles load $1
placement load $2
assemble $3`

	// RunTrivialDeblocked places random tiles without looking at the edges
	// and smooths the seams afterwards.
	//
	// Example usage: RunTrivialDeblocked ~/tiles/ out.png 20x10
	RunTrivialDeblocked = `tiles load $1
set strategy trivial
set deblock true
assemble $2 $3`
)

// PredefinedScripts maps the names of the predefined scripts to their source.
var PredefinedScripts = map[string]string{
	"RunSimple":           RunSimple,
	"RunPlaced":           RunPlaced,
	"RunTrivialDeblocked": RunTrivialDeblocked,
}

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
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	// Debug is true if code should be compiled in debug mode, the command line
	// tool then logs at debug level.
	Debug = false

	// Version is the version of gotiles.
	Version = "0.3.0"

	// BufferSize is the default size of buffered channels.
	BufferSize = 1000
)

// ProgressFunc is a function that is used to inform a caller about the progress
// of a called function.
// For example if we load thousands of tiles we might wish to know
// how far the call is and give feedback to the user.
// The called method calls the process function after each iteration.
type ProgressFunc func(num int)

// ProgressIgnore is a ProgressFunc that does nothing.
func ProgressIgnore(num int) {}

func progressMessage(prefix string, num, max, step int) (string, bool) {
	if step == 0 {
		return "", false
	}
	if !(step < 0 || num%step == 0) {
		return "", false
	}
	if prefix == "" {
		prefix = "Progress"
	}
	if max <= 0 {
		// total unknown
		return fmt.Sprintf("%s: %d", prefix, num), true
	}
	percent := (float64(num) / float64(max)) * 100.0
	if percent > 100.0 {
		percent = 100.0
	}
	return fmt.Sprintf("%s: %d of %d (%.1f%%)", prefix, num, max, percent), true
}

// LoggerProgressFunc is a parameterized ProgressFunc that logs to log.
// The output describes the progress (how many of how many objects processed).
// Log messages may have an addition prefix. max is the total number of elements
// to process and step describes how often to print to the log (for example
// step = 100 every 100 items).
func LoggerProgressFunc(prefix string, max, step int) ProgressFunc {
	return func(num int) {
		if msg, ok := progressMessage(prefix, num, max, step); ok {
			log.Info(msg)
		}
	}
}

// StdProgressFunc is a parameterized ProgressFunc that writes to the
// specified writer, see LoggerProgressFunc for the arguments.
func StdProgressFunc(w io.Writer, prefix string, max, step int) ProgressFunc {
	return func(num int) {
		if msg, ok := progressMessage(prefix, num, max, step); ok {
			fmt.Fprintln(w, msg)
		}
	}
}

// ParseDimensions parses a string of the form "AxB" where A and B are positive
// integers.
func ParseDimensions(s string) (int, int, error) {
	split := strings.Split(s, "x")
	if len(split) != 2 {
		return -1, -1, fmt.Errorf("Invalid dimension format: %s. Expect \"AxB\"", s)
	}
	first, second := strings.TrimSpace(split[0]), strings.TrimSpace(split[1])
	firstInt, firstErr := strconv.Atoi(first)
	if firstErr != nil {
		return -1, -1, firstErr
	}
	secondInt, secondErr := strconv.Atoi(second)
	if secondErr != nil {
		return -1, -1, secondErr
	}
	if firstInt < 0 || secondInt < 0 {
		return -1, -1, fmt.Errorf("Dimensions must be positive, got %d and %d",
			firstInt, secondInt)
	}
	return firstInt, secondInt, nil
}

// FormatDimensions is the inverse of ParseDimensions.
func FormatDimensions(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

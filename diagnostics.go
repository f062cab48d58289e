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
	"sync"

	log "github.com/sirupsen/logrus"
)

// Diagnostics receives warnings and errors that do not abort a run, for
// example a file in the tile directory that could not be decoded or a cell
// without a viable tile.
type Diagnostics interface {
	Warn(msg string)
	Error(msg string)
}

// LogrusDiagnostics writes all diagnostics to a logrus entry.
type LogrusDiagnostics struct {
	Entry *log.Entry
}

// NewLogrusDiagnostics returns a new LogrusDiagnostics, if entry is nil the
// standard logger is used.
func NewLogrusDiagnostics(entry *log.Entry) LogrusDiagnostics {
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}
	return LogrusDiagnostics{Entry: entry}
}

// Warn logs msg on warn level.
func (d LogrusDiagnostics) Warn(msg string) {
	d.Entry.Warn(msg)
}

// Error logs msg on error level.
func (d LogrusDiagnostics) Error(msg string) {
	d.Entry.Error(msg)
}

// NopDiagnostics discards everything.
type NopDiagnostics struct{}

func (NopDiagnostics) Warn(msg string)  {}
func (NopDiagnostics) Error(msg string) {}

// CountingDiagnostics forwards to Inner (if not nil) and counts the number of
// warnings and errors. It is safe for concurrent use.
type CountingDiagnostics struct {
	Inner Diagnostics

	mutex            sync.Mutex
	warnings, errors int
}

// NewCountingDiagnostics returns a new counter forwarding to inner.
func NewCountingDiagnostics(inner Diagnostics) *CountingDiagnostics {
	return &CountingDiagnostics{Inner: inner}
}

func (d *CountingDiagnostics) Warn(msg string) {
	d.mutex.Lock()
	d.warnings++
	d.mutex.Unlock()
	if d.Inner != nil {
		d.Inner.Warn(msg)
	}
}

func (d *CountingDiagnostics) Error(msg string) {
	d.mutex.Lock()
	d.errors++
	d.mutex.Unlock()
	if d.Inner != nil {
		d.Inner.Error(msg)
	}
}

// Counts returns the number of warnings and errors received so far.
func (d *CountingDiagnostics) Counts() (warnings, errors int) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.warnings, d.errors
}

// Summary returns the line printed at the end of a run.
func (d *CountingDiagnostics) Summary(logFile string) string {
	warnings, errors := d.Counts()
	if warnings+errors == 0 {
		return "No errors encountered whatsoever"
	}
	if logFile == "" {
		return fmt.Sprintf("Encountered %d warnings and %d errors", warnings, errors)
	}
	return fmt.Sprintf("Encountered warnings/errors. See %s for details", logFile)
}

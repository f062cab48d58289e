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
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AaronMcKenney/gotiles"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// logName is the file warnings and errors are written to with --log.
const logName = "CreatePictureFromTiles_LOG.txt"

type options struct {
	path, out        string
	add, noAdd       bool
	logFile, noLog   bool
	strategy, policy string
	comparator       string
	deblock          bool
	kernel           string
	qp               int
	seed             string
	placement        string
	tileSize         string
	allFiles         bool
	script, run      string
	jpgQuality       int
}

func main() {
	if len(os.Args) == 1 {
		gotiles.Execute(gotiles.ReplHandler{}, gotiles.DefaultCommands)
		return
	}
	if code := exitCode(run(os.Args[1:]), os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// reportedError is an error that run has already written to the log.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// exitCode returns the exit status for err and prints err to w unless it has
// been logged before.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(w, "error: %v\n", err)
	}
	return 1
}

func run(args []string) error {
	var opts options
	flagSet := pflag.NewFlagSet("gotiles", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.path, "path", "p", gotiles.DefaultTilePath, "directory containing the tiles")
	flagSet.StringVarP(&opts.out, "out", "o", gotiles.DefaultOut, "output file (png, jpg, gif, bmp or tiff)")
	flagSet.BoolVar(&opts.add, "add", true, "add rotated and mirrored versions of each tile")
	flagSet.BoolVar(&opts.noAdd, "no-add", false, "don't add rotated and mirrored tiles")
	flagSet.BoolVarP(&opts.logFile, "log", "l", false, "write warnings and errors to "+logName)
	flagSet.BoolVar(&opts.noLog, "no-log", false, "only print errors")
	flagSet.StringVar(&opts.strategy, "strategy", "exact", "solving strategy: exact, fast or trivial")
	flagSet.StringVar(&opts.policy, "policy", "", "failure policy: cascade or cell (default depends on strategy)")
	flagSet.StringVar(&opts.comparator, "comparator", "exact", "edge comparison: exact or tolerant")
	flagSet.BoolVar(&opts.deblock, "deblock", false, "smooth seams (trivial strategy only)")
	flagSet.StringVar(&opts.kernel, "kernel", "loopfilter", "deblocking kernel: average or loopfilter")
	flagSet.IntVar(&opts.qp, "qp", gotiles.DefaultQP, "quantization parameter of the loop filter (0-51)")
	flagSet.StringVar(&opts.seed, "seed", "", "seed of the random source (default: time based)")
	flagSet.StringVar(&opts.placement, "placement", "", "placement file (yaml or json), replaces frame width and height")
	flagSet.StringVar(&opts.tileSize, "tile-size", "", "resize all tiles to WxH")
	flagSet.BoolVar(&opts.allFiles, "all-files", false, "try to decode every file in the tile directory, not only known image extensions")
	flagSet.IntVar(&opts.jpgQuality, "jpeg-quality", gotiles.DefaultJPGQuality, "quality of jpeg output")
	flagSet.StringVar(&opts.script, "script", "", "execute commands from this file, remaining arguments replace $1, $2, ...")
	flagSet.StringVar(&opts.run, "run", "", "execute a predefined script (RunSimple, RunPlaced, RunTrivialDeblocked)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if opts.script != "" || opts.run != "" {
		return runScript(opts, flagSet.Args())
	}

	counter, closeLog, logErr := setupLogging(opts.logFile && !opts.noLog)
	if logErr != nil {
		return logErr
	}
	cfg, cfgErr := buildConfig(opts, flagSet.Args())
	if cfgErr != nil {
		closeLog()
		return cfgErr
	}
	tileDir, pathErr := homedir.Expand(opts.path)
	if pathErr != nil {
		closeLog()
		return pathErr
	}
	res, runErr := gotiles.Run(tileDir, cfg, counter)
	if runErr != nil {
		counter.Error(runErr.Error())
	} else {
		log.WithFields(log.Fields{
			"out":      cfg.Out,
			"resolved": res.Solve.Resolved,
			"failed":   res.Solve.Failed,
		}).Info("Saved picture")
	}
	closeLog()
	if opts.logFile && !opts.noLog {
		fmt.Println(counter.Summary(logName))
	} else {
		fmt.Println(counter.Summary(""))
	}
	if runErr != nil {
		return reportedError{runErr}
	}
	return nil
}

// setupLogging configures the standard logger. With toFile all messages are
// written to the log file, otherwise only errors are printed to stdout.
func setupLogging(toFile bool) (*gotiles.CountingDiagnostics, func(), error) {
	counter := gotiles.NewCountingDiagnostics(gotiles.NewLogrusDiagnostics(nil))
	if !toFile {
		log.SetOutput(os.Stdout)
		log.SetLevel(log.ErrorLevel)
		return counter, func() {}, nil
	}
	f, err := os.Create(logName)
	if err != nil {
		return nil, nil, fmt.Errorf("creating log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if gotiles.Debug {
		log.SetLevel(log.DebugLevel)
	}
	return counter, func() { f.Close() }, nil
}

func buildConfig(opts options, positional []string) (gotiles.Config, error) {
	cfg := gotiles.DefaultConfig()
	var err error
	if cfg.Strategy, err = gotiles.ParseStrategy(opts.strategy); err != nil {
		return cfg, err
	}
	if opts.policy != "" {
		policy, policyErr := gotiles.ParseFailurePolicy(opts.policy)
		if policyErr != nil {
			return cfg, policyErr
		}
		cfg.Policy = &policy
	}
	if cfg.Comparator, err = gotiles.ParseComparator(opts.comparator); err != nil {
		return cfg, err
	}
	if cfg.Kernel, err = gotiles.ParseKernel(opts.kernel, opts.qp); err != nil {
		return cfg, err
	}
	cfg.Deblock = opts.deblock
	if opts.seed != "" {
		seed, seedErr := strconv.ParseInt(opts.seed, 10, 64)
		if seedErr != nil {
			return cfg, fmt.Errorf("invalid seed %s: %w", opts.seed, seedErr)
		}
		cfg.Seed, cfg.FixedSeed = seed, true
	}
	cfg.Load.Augment = opts.add && !opts.noAdd
	if opts.allFiles {
		cfg.Load.Filter = gotiles.AllFiles
	}
	if opts.tileSize != "" {
		width, height, sizeErr := gotiles.ParseDimensions(opts.tileSize)
		if sizeErr != nil {
			return cfg, sizeErr
		}
		cfg.Load.TileWidth, cfg.Load.TileHeight = width, height
	}
	if cfg.Out, err = homedir.Expand(opts.out); err != nil {
		return cfg, err
	}
	cfg.JPGQuality = opts.jpgQuality

	if opts.placement != "" {
		path, pathErr := homedir.Expand(opts.placement)
		if pathErr != nil {
			return cfg, pathErr
		}
		if cfg.Placement, err = gotiles.LoadPlacement(path); err != nil {
			return cfg, err
		}
	}
	switch {
	case len(positional) == 2:
		width, widthErr := strconv.Atoi(positional[0])
		height, heightErr := strconv.Atoi(positional[1])
		if widthErr != nil || heightErr != nil {
			return cfg, fmt.Errorf("frame width and height must be integers, got %s %s",
				positional[0], positional[1])
		}
		cfg.FrameWidth, cfg.FrameHeight = width, height
	case len(positional) == 0 && cfg.Placement != nil:
	default:
		return cfg, fmt.Errorf("expected frame_width and frame_height, got %d arguments", len(positional))
	}
	return cfg, cfg.Validate()
}

func runScript(opts options, args []string) error {
	var source string
	if opts.run != "" {
		script, ok := gotiles.PredefinedScripts[opts.run]
		if !ok {
			return fmt.Errorf("unknown predefined script %s", opts.run)
		}
		source = script
	} else {
		path, pathErr := homedir.Expand(opts.script)
		if pathErr != nil {
			return pathErr
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		source = string(content)
	}
	handler := gotiles.NewScriptHandler(gotiles.ParameterizedFromStrings(
		strings.Split(source, "\n"), args...))
	gotiles.Execute(handler, gotiles.DefaultCommands)
	return handler.Err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `gotiles assembles a picture from tiles with matching edges.

Usage:
  gotiles [flags] frame_width frame_height
  gotiles [flags] --placement FILE
  gotiles --script FILE [ARG...]
  gotiles            (interactive mode)

Flags:
%s`, flagSet.FlagUsages())
}

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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/nfnt/resize"
)

var (
	// ErrCmdSyntaxErr is returned by a CommandFunc if the syntax for the command
	// is invalid.
	ErrCmdSyntaxErr = errors.New("Invalid command syntax")
)

// ExecutorState is the state of the command interpreter: the working
// directory, the loaded tiles and the parameters of the next run.
type ExecutorState struct {
	// WorkingDir is the current directory, always an absolute path.
	WorkingDir string

	// Catalog is the current tile pool, nil until "tiles load" is used.
	Catalog *TileCatalog
	// TileDir is the directory Catalog was loaded from.
	TileDir string

	// Config contains the run parameters changed with "set". The frame size
	// and the placement are set by the assemble and placement commands.
	Config Config

	// KernelName and QP describe Config.Kernel.
	KernelName string
	QP         int

	// InterP is the interpolation function used if a tile size is forced.
	InterP resize.InterpolationFunction

	// Diag receives warnings and errors during loading and solving.
	Diag Diagnostics

	// Verbose is true if detailed output should be generated.
	Verbose bool

	// In is the source to read commands from (line by line).
	In io.Reader

	// Out is used to write state information.
	Out io.Writer
}

// NewExecutorState returns the initial state with the working directory set
// to the current directory.
// This method might panic if something with filepath is wrong, this should
// however usually not be the case.
func NewExecutorState(in io.Reader, out io.Writer) *ExecutorState {
	dir, err := filepath.Abs(".")
	if err != nil {
		panic(fmt.Errorf("Unable to retrieve path: %s", err.Error()))
	}
	routines := runtime.NumCPU() * 2
	if routines <= 0 {
		routines = 4
	}
	config := DefaultConfig()
	config.Load.NumRoutines = routines
	return &ExecutorState{
		WorkingDir: dir,
		Config:     config,
		KernelName: "loopfilter",
		QP:         DefaultQP,
		InterP:     resize.NearestNeighbor,
		Diag:       NewLogrusDiagnostics(nil),
		Verbose:    true,
		In:         in,
		Out:        out,
	}
}

// GetPath returns the absolute path given some other path.
// Absolute paths are used as they are, relative paths are joined with the
// working directory.
//
// The home directory can be used like on Unix: ~/Pictures is the Pictures
// directory in the home directory of the user.
func (state *ExecutorState) GetPath(path string) (string, error) {
	res, pathErr := homedir.Expand(path)
	if pathErr != nil {
		return "", pathErr
	}
	if !filepath.IsAbs(res) {
		res = filepath.Join(state.WorkingDir, res)
	}
	return filepath.Abs(res)
}

// CommandFunc is a function that is applied to the current states and
// arguments to that command.
type CommandFunc func(state *ExecutorState, args ...string) error

// Command a command consists of a function to actually execute the command
// and some information about the command.
type Command struct {
	Exec        CommandFunc
	Usage       string
	Description string
}

// CommandMap maps command names to Commands.
type CommandMap map[string]Command

// DefaultCommands contains all commands of the interpreter.
var DefaultCommands CommandMap

// CommandHandler together with Execute implements a high-level command
// execution loop. CommandFuncs are applied to the current state until there
// are no more commands to execute (no more input).
//
// A command has the form "COMMAND ARG1 ... ARGN" where COMMAND is the command
// name and ARG1 to ARGN are the arguments for the command.
//
// Execute first creates the state by calling Init and then calls Start.
// Before each line Before is called, after it After. Each line is parsed,
// on a syntax error OnParseErr is called. Unknown commands are reported to
// OnInvalidCmd, failed commands to OnError (commands return ErrCmdSyntaxErr
// if they were called with the wrong arguments) and successful ones to
// OnSuccess. The On* methods that return a bool return true if the execution
// should continue. OnScanErr is called if reading from the state's reader
// fails.
type CommandHandler interface {
	Init() *ExecutorState
	Start(s *ExecutorState)
	Before(s *ExecutorState)
	After(s *ExecutorState)
	OnParseErr(s *ExecutorState, err error) bool
	OnInvalidCmd(s *ExecutorState, cmd string) bool
	OnSuccess(s *ExecutorState, cmd Command)
	OnError(s *ExecutorState, err error, cmd Command) bool
	OnScanErr(s *ExecutorState, err error)
}

// Execute implements the high-level execution loop as described in the
// documentation of CommandHandler. commandMap is used to lookup commands.
// It returns the final state.
func Execute(handler CommandHandler, commandMap CommandMap) *ExecutorState {
	state := handler.Init()
	handler.Start(state)
	scanner := bufio.NewScanner(state.In)
	for scanner.Scan() {
		handler.Before(state)
		if !executeLine(handler, commandMap, state, scanner.Text()) {
			return state
		}
		handler.After(state)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		handler.OnScanErr(state, scanErr)
	}
	return state
}

// executeLine runs a single line, it returns false if execution should stop.
func executeLine(handler CommandHandler, commandMap CommandMap, state *ExecutorState, line string) bool {
	parsedCmd, parseErr := ParseCommand(line)
	if parseErr != nil {
		return handler.OnParseErr(state, parseErr)
	}
	if len(parsedCmd) == 0 || strings.HasPrefix(parsedCmd[0], "#") {
		return true
	}
	cmd := parsedCmd[0]
	nextCmd, ok := commandMap[cmd]
	if !ok {
		return handler.OnInvalidCmd(state, cmd)
	}
	if execErr := nextCmd.Exec(state, parsedCmd[1:]...); execErr != nil {
		return handler.OnError(state, execErr, nextCmd)
	}
	handler.OnSuccess(state, nextCmd)
	return true
}

func isEOF(r []rune, i int) bool {
	return i == len(r)
}

// ParseCommand parses a command of the form "COMMAND ARG1 ... ARGN".
// Examples:
//
// foo bar is the command "foo" with argument "bar". Arguments might also
// be enclosed in quotes, so foo "bar bar" is parsed as command foo with
// argument bar bar (a single argument). Quotes and backslashes are escaped
// with a backslash.
func ParseCommand(s string) ([]string, error) {
	parseErr := errors.New("Error parsing command line")
	res := make([]string, 0)
	// deterministic automaton with five states:
	// 0: between arguments
	// 1: inside an argument without quotes
	// 2: after a backslash in state 1
	// 3: inside an argument enclosed in ""
	// 4: after a backslash in state 3
	r := []rune(s)
	state := 0
	currentArg := make([]rune, 0)
L:
	for i := 0; i <= len(r); i++ {
		switch state {
		case 0:
			if isEOF(r, i) {
				break L
			}
			switch r[i] {
			case ' ', '\t':
			case '\\':
				state = 2
			case '"':
				state = 3
			default:
				currentArg = append(currentArg, r[i])
				state = 1
			}
		case 1:
			if isEOF(r, i) {
				break L
			}
			switch r[i] {
			case ' ', '\t':
				res = append(res, string(currentArg))
				currentArg = nil
				state = 0
			case '\\':
				state = 2
			case '"':
				return nil, parseErr
			default:
				currentArg = append(currentArg, r[i])
			}
		case 2:
			if isEOF(r, i) {
				return nil, parseErr
			}
			switch r[i] {
			case '\\', '"':
				currentArg = append(currentArg, r[i])
				state = 1
			default:
				return nil, parseErr
			}
		case 3:
			if isEOF(r, i) {
				return nil, parseErr
			}
			switch r[i] {
			case '"':
				res = append(res, string(currentArg))
				currentArg = nil
				state = 0
			case '\\':
				state = 4
			default:
				currentArg = append(currentArg, r[i])
			}
		case 4:
			if isEOF(r, i) {
				return nil, parseErr
			}
			switch r[i] {
			case '\\', '"':
				currentArg = append(currentArg, r[i])
				state = 3
			default:
				return nil, parseErr
			}
		}
	}
	if len(currentArg) > 0 {
		res = append(res, string(currentArg))
	}
	return res, nil
}

// PwdCommand is a command that prints the current working directory.
func PwdCommand(state *ExecutorState, args ...string) error {
	fmt.Fprintln(state.Out, state.WorkingDir)
	return nil
}

// Variables returns the current value of each variable that can be changed
// with SetVar.
func (state *ExecutorState) Variables() map[string]interface{} {
	seed := "random"
	if state.Config.FixedSeed {
		seed = strconv.FormatInt(state.Config.Seed, 10)
	}
	policy := "default (" + state.Config.Strategy.DefaultPolicy().String() + ")"
	if state.Config.Policy != nil {
		policy = state.Config.Policy.String()
	}
	tileSize := "none"
	if state.Config.Load.TileWidth > 0 && state.Config.Load.TileHeight > 0 {
		tileSize = FormatDimensions(state.Config.Load.TileWidth, state.Config.Load.TileHeight)
	}
	return map[string]interface{}{
		"strategy":     state.Config.Strategy,
		"policy":       policy,
		"comparator":   state.Config.Comparator,
		"deblock":      state.Config.Deblock,
		"kernel":       state.KernelName,
		"qp":           state.QP,
		"seed":         seed,
		"augment":      state.Config.Load.Augment,
		"tile-size":    tileSize,
		"interp":       InterPString(state.InterP),
		"routines":     state.Config.Load.NumRoutines,
		"jpeg-quality": state.Config.JPGQuality,
		"verbose":      state.Verbose,
	}
}

// StatsCommand is a command that prints variable / value pairs.
func StatsCommand(state *ExecutorState, args ...string) error {
	m := state.Variables()
	if len(args) == 1 {
		if val, has := m[args[0]]; has {
			fmt.Fprintf(state.Out, "%s ==> %v\n", args[0], val)
		} else {
			return fmt.Errorf("Unkown variable %s", args[0])
		}
		return nil
	}
	// keep order deterministic
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, variable := range keys {
		fmt.Fprintf(state.Out, "%s ==> %v\n", variable, m[variable])
	}
	return nil
}

// SetVar sets a variable to a new value, see StatsCommand for the list of
// variables.
func (state *ExecutorState) SetVar(name, valueStr string) error {
	switch name {
	case "strategy":
		val, err := ParseStrategy(valueStr)
		if err != nil {
			return err
		}
		state.Config.Strategy = val
	case "policy":
		if valueStr == "default" {
			state.Config.Policy = nil
			return nil
		}
		val, err := ParseFailurePolicy(valueStr)
		if err != nil {
			return err
		}
		state.Config.Policy = &val
	case "comparator":
		val, err := ParseComparator(valueStr)
		if err != nil {
			return err
		}
		state.Config.Comparator = val
	case "deblock":
		val, parseErr := strconv.ParseBool(valueStr)
		if parseErr != nil {
			return fmt.Errorf("Invalid value for deblock (must be true or false): %s", parseErr.Error())
		}
		state.Config.Deblock = val
	case "kernel":
		val, err := ParseKernel(valueStr, state.QP)
		if err != nil {
			return err
		}
		state.KernelName = valueStr
		state.Config.Kernel = val
	case "qp":
		val, parseErr := strconv.Atoi(valueStr)
		if parseErr != nil || val < 0 || val > MaxQP {
			return fmt.Errorf("Invalid value for qp (must be int between 0 and %d): %s", MaxQP, valueStr)
		}
		state.QP = val
		kernel, err := ParseKernel(state.KernelName, val)
		if err != nil {
			return err
		}
		state.Config.Kernel = kernel
	case "seed":
		if valueStr == "random" {
			state.Config.FixedSeed = false
			return nil
		}
		val, parseErr := strconv.ParseInt(valueStr, 10, 64)
		if parseErr != nil {
			return fmt.Errorf("Invalid value for seed (must be an integer or \"random\"): %s", parseErr.Error())
		}
		state.Config.Seed = val
		state.Config.FixedSeed = true
	case "augment":
		val, parseErr := strconv.ParseBool(valueStr)
		if parseErr != nil {
			return fmt.Errorf("Invalid value for augment (must be true or false): %s", parseErr.Error())
		}
		state.Config.Load.Augment = val
	case "tile-size":
		if valueStr == "none" {
			state.Config.Load.TileWidth, state.Config.Load.TileHeight = 0, 0
			return nil
		}
		width, height, err := ParseDimensions(valueStr)
		if err != nil {
			return err
		}
		state.Config.Load.TileWidth, state.Config.Load.TileHeight = width, height
	case "interp":
		val, parseErr := strconv.Atoi(valueStr)
		if parseErr != nil || val < 0 {
			return fmt.Errorf("Invalid value for interpolation function, must be integer >= 0: %s", valueStr)
		}
		state.InterP = GetInterP(uint(val))
		state.Config.Load.Resizer = NewNfntResizer(state.InterP)
	case "routines":
		val, parseErr := strconv.Atoi(valueStr)
		if parseErr != nil || val <= 0 {
			return fmt.Errorf("Invalid value for routines (must be positive int): %s", valueStr)
		}
		state.Config.Load.NumRoutines = val
	case "jpeg-quality":
		val, parseErr := strconv.Atoi(valueStr)
		if parseErr != nil || val < 1 || val > 100 {
			return fmt.Errorf("Invalid value for jpeg-quality (must be int between 1 and 100): %s", valueStr)
		}
		state.Config.JPGQuality = val
	case "verbose":
		val, parseErr := strconv.ParseBool(valueStr)
		if parseErr != nil {
			return fmt.Errorf("Invalid value for verbose (must be true or false): %s", parseErr.Error())
		}
		state.Verbose = val
	default:
		return fmt.Errorf("Invalid variable \"%s\". For a list use \"stats\"", name)
	}
	return nil
}

// SetVarCommand sets a variable to a new value.
func SetVarCommand(state *ExecutorState, args ...string) error {
	if len(args) != 2 {
		return errors.New("Invalid set syntax: Requires variable and value. For a list of variables use \"stats\"")
	}
	return state.SetVar(args[0], args[1])
}

// CdCommand is a command that changes the current directory.
func CdCommand(state *ExecutorState, args ...string) error {
	if len(args) != 1 {
		return ErrCmdSyntaxErr
	}
	path, pathErr := state.GetPath(args[0])
	if pathErr != nil {
		return fmt.Errorf("Changing directory failed: %s", pathErr.Error())
	}
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("Changing directory failed: %s", err.Error())
	}
	if !fi.IsDir() {
		return fmt.Errorf("Changing directory failed: \"%s\" is not a directory", path)
	}
	state.WorkingDir = path
	return nil
}

// TilesCommand administrates the tile pool.
// Without arguments it prints the number of tiles, with "list" each tile and
// with "load [DIR]" it replaces the pool by the tiles in DIR (the working
// directory if omitted).
func TilesCommand(state *ExecutorState, args ...string) error {
	switch {
	case len(args) == 0:
		if state.Catalog == nil {
			fmt.Fprintln(state.Out, "No tiles loaded")
			return nil
		}
		fmt.Fprintf(state.Out, "%d tiles of size %s from %s\n", state.Catalog.NumTiles(),
			FormatDimensions(state.Catalog.TileWidth, state.Catalog.TileHeight), state.TileDir)
		return nil
	case args[0] == "list" && len(args) == 1:
		if state.Catalog == nil {
			return errors.New("No tiles loaded, use \"tiles load\"")
		}
		for _, t := range state.Catalog.Tiles {
			fmt.Fprintf(state.Out, "  %s\n", t)
		}
		return nil
	case args[0] == "load" && len(args) <= 2:
		dir := state.WorkingDir
		if len(args) == 2 {
			var pathErr error
			if dir, pathErr = state.GetPath(args[1]); pathErr != nil {
				return pathErr
			}
		}
		opts := state.Config.Load
		if state.Verbose {
			fmt.Fprintln(state.Out, "Loading tiles from", dir)
			opts.Progress = StdProgressFunc(state.Out, "Files", -1, 100)
		}
		catalog, err := LoadTiles(dir, opts, state.Diag)
		if err != nil {
			return err
		}
		state.Catalog, state.TileDir = catalog, dir
		if state.Verbose {
			fmt.Fprintf(state.Out, "Loaded %d tiles\n", catalog.NumTiles())
		}
		return nil
	default:
		return ErrCmdSyntaxErr
	}
}

// PlacementCommand loads or removes a placement. Without arguments it prints
// the size of the current placement.
func PlacementCommand(state *ExecutorState, args ...string) error {
	switch {
	case len(args) == 0:
		if state.Config.Placement == nil {
			fmt.Fprintln(state.Out, "No placement")
			return nil
		}
		width, height := state.Config.Placement.Dimensions()
		fmt.Fprintf(state.Out, "Placement with %d groups, grid %s\n",
			len(state.Config.Placement.Groups), FormatDimensions(width, height))
		return nil
	case args[0] == "load" && len(args) == 2:
		path, pathErr := state.GetPath(args[1])
		if pathErr != nil {
			return pathErr
		}
		p, err := LoadPlacement(path)
		if err != nil {
			return err
		}
		state.Config.Placement = p
		return nil
	case args[0] == "clear" && len(args) == 1:
		state.Config.Placement = nil
		return nil
	default:
		return ErrCmdSyntaxErr
	}
}

// AssembleCommand assembles a picture and saves it.
// Usage: assemble <out> [WxH], the frame size must be given unless a
// placement is loaded.
func AssembleCommand(state *ExecutorState, args ...string) error {
	if len(args) == 0 || len(args) > 2 {
		return ErrCmdSyntaxErr
	}
	if state.Catalog == nil {
		return errors.New("No tiles loaded, use \"tiles load\"")
	}
	out, pathErr := state.GetPath(args[0])
	if pathErr != nil {
		return pathErr
	}
	if !OutputFormats(filepath.Ext(out)) {
		return fmt.Errorf("Unsupported output file %s", out)
	}
	cfg := state.Config
	cfg.FrameWidth, cfg.FrameHeight = 0, 0
	if len(args) == 2 {
		width, height, err := ParseDimensions(args[1])
		if err != nil {
			return err
		}
		cfg.FrameWidth, cfg.FrameHeight = width, height
	}
	res, err := Assemble(state.Catalog, cfg, state.Diag)
	if err != nil {
		return err
	}
	if saveErr := SaveImage(out, res.Image, cfg.JPGQuality); saveErr != nil {
		return saveErr
	}
	if state.Verbose {
		fmt.Fprintf(state.Out, "Saved %s: %d cells resolved, %d failed\n", out,
			res.Solve.Resolved, res.Solve.Failed)
	}
	return nil
}

// HelpCommand prints the usage of all commands.
func HelpCommand(state *ExecutorState, args ...string) error {
	names := make([]string, 0, len(DefaultCommands))
	for name := range DefaultCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := DefaultCommands[name]
		fmt.Fprintf(state.Out, "%s\n    %s\n", cmd.Usage, cmd.Description)
	}
	return nil
}

func init() {
	DefaultCommands = make(map[string]Command, 10)
	DefaultCommands["pwd"] = Command{
		Exec:        PwdCommand,
		Usage:       "pwd",
		Description: "Show current working directory.",
	}
	DefaultCommands["stats"] = Command{
		Exec:        StatsCommand,
		Usage:       "stats [var]",
		Description: "Show value of variables that can be changed via set, if var is given only value of that variable",
	}
	DefaultCommands["set"] = Command{
		Exec:  SetVarCommand,
		Usage: "set <variable> <value>",
		Description: "Set value for a variable: strategy (exact, fast, trivial), policy" +
			" (cascade, cell, default), comparator (exact, tolerant), deblock, kernel" +
			" (average, loopfilter), qp, seed (integer or random), augment, tile-size" +
			" (WxH or none), interp, routines, jpeg-quality, verbose.",
	}
	DefaultCommands["cd"] = Command{
		Exec:        CdCommand,
		Usage:       "cd <dir>",
		Description: "Change working directory to the specified directory",
	}
	DefaultCommands["tiles"] = Command{
		Exec:  TilesCommand,
		Usage: "tiles [list] or tiles load [dir]",
		Description: "Controls the tile pool. \"list\" prints all tiles, \"load\" replaces the" +
			" pool with the images from dir (working directory if omitted).",
	}
	DefaultCommands["placement"] = Command{
		Exec:  PlacementCommand,
		Usage: "placement [load <file> | clear]",
		Description: "Loads a placement file (yaml or json) that restricts the tiles of each" +
			" cell and defines the size of the picture, or removes it.",
	}
	DefaultCommands["assemble"] = Command{
		Exec:  AssembleCommand,
		Usage: "assemble <out> [WxH]",
		Description: "Assembles a picture of W times H tiles and saves it to out. The size" +
			" must be omitted if a placement is loaded.",
	}
	DefaultCommands["help"] = Command{
		Exec:        HelpCommand,
		Usage:       "help",
		Description: "Show all commands.",
	}
}

// ReplHandler implements CommandHandler by reading commands from stdin and
// writing output to stdout.
type ReplHandler struct{}

// Init creates the initial ExecutorState.
func (h ReplHandler) Init() *ExecutorState {
	return NewExecutorState(os.Stdin, os.Stdout)
}

func (h ReplHandler) Start(s *ExecutorState) {
	fmt.Println("Welcome to gotiles", Version)
	fmt.Println("Type \"help\" for a list of commands")
	fmt.Print(">>> ")
}

func (h ReplHandler) Before(s *ExecutorState) {}

func (h ReplHandler) After(s *ExecutorState) {
	fmt.Print(">>> ")
}

func (h ReplHandler) OnParseErr(s *ExecutorState, err error) bool {
	fmt.Println("Syntax error", err)
	return true
}

func (h ReplHandler) OnInvalidCmd(s *ExecutorState, cmd string) bool {
	fmt.Printf("Invalid command \"%s\"\n", cmd)
	return true
}

func (h ReplHandler) OnSuccess(s *ExecutorState, cmd Command) {}

func (h ReplHandler) OnError(s *ExecutorState, err error, cmd Command) bool {
	if err == ErrCmdSyntaxErr {
		fmt.Println("Invalid syntax for command.")
		fmt.Println("Usage:", cmd.Usage)
	} else {
		fmt.Println("Error while executing command:", err.Error())
	}
	return true
}

func (h ReplHandler) OnScanErr(s *ExecutorState, err error) {
	fmt.Println("Error while reading:", err.Error())
}

// ScriptHandler implements CommandHandler. It reads from Source, writes the
// output to Out (stdout if nil) and stops whenever an error is enountered.
type ScriptHandler struct {
	Source io.Reader
	Out    io.Writer
	// Err is the first error encountered, if any.
	Err error
}

// NewScriptHandler returns a new script handler that reads input from the given
// source.
func NewScriptHandler(source io.Reader) *ScriptHandler {
	return &ScriptHandler{Source: source}
}

// Init creates the initial ExecutorState.
func (h *ScriptHandler) Init() *ExecutorState {
	out := h.Out
	if out == nil {
		out = os.Stdout
	}
	return NewExecutorState(h.Source, out)
}

func (h *ScriptHandler) Start(s *ExecutorState) {}

func (h *ScriptHandler) Before(s *ExecutorState) {}

func (h *ScriptHandler) After(s *ExecutorState) {}

func (h *ScriptHandler) OnParseErr(s *ExecutorState, err error) bool {
	fmt.Fprintln(os.Stderr, "Syntax error:", err)
	h.Err = err
	return false
}

func (h *ScriptHandler) OnInvalidCmd(s *ExecutorState, cmd string) bool {
	h.Err = fmt.Errorf("Invalid command \"%s\"", cmd)
	fmt.Fprintln(os.Stderr, h.Err)
	return false
}

func (h *ScriptHandler) OnSuccess(s *ExecutorState, cmd Command) {}

func (h *ScriptHandler) OnError(s *ExecutorState, err error, cmd Command) bool {
	if err == ErrCmdSyntaxErr {
		fmt.Fprintln(os.Stderr, "Error: Invalid syntax for command.")
		fmt.Fprintln(os.Stderr, "Usage:", cmd.Usage)
	} else {
		fmt.Fprintln(os.Stderr, "Error while executing command:", err.Error())
	}
	h.Err = err
	return false
}

func (h *ScriptHandler) OnScanErr(s *ExecutorState, err error) {
	fmt.Fprintln(os.Stderr, "Error while reading:", err.Error())
	h.Err = err
}

// ScriptHandlerFromCmds is a function to create a script handler from
// a predefined set of lines. This allows us for easy execution of predefined
// scripts.
func ScriptHandlerFromCmds(lines []string) *ScriptHandler {
	return NewScriptHandler(ReaderFromCmdLines(lines))
}

// ReaderFromCmdLines returns a reader for a script source that reads the
// content of the combined lines.
func ReaderFromCmdLines(lines []string) io.Reader {
	combined := strings.Join(lines, "\n")
	return strings.NewReader(combined)
}

func argsReplacer(args []string) *strings.Replacer {
	// replace from the highest index, otherwise $1 would match the prefix of
	// $10
	replaceArgs := make([]string, 0, 2*len(args))
	for i := len(args) - 1; i >= 0; i-- {
		replaceArgs = append(replaceArgs, fmt.Sprintf("$%d", i+1), args[i])
	}
	return strings.NewReplacer(replaceArgs...)
}

// Parameterized is used to transform parameterized commands into executable
// commands, that means replacing variables $i with the provided argument.
// Example:
// The command "tiles load $1" can be called with one argument that will
// replace the placeholder $1.
//
// The whole reader is read before the lines are transformed, scripts are
// usually short.
func Parameterized(r io.Reader, args ...string) (io.Reader, error) {
	replacer := argsReplacer(args)
	lines := make([]string, 0, 20)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, replacer.Replace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ReaderFromCmdLines(lines), nil
}

// ParameterizedFromStrings returns a reader for the commands (each entry is
// a line) with placeholders replaced by args, see Parameterized.
func ParameterizedFromStrings(commands []string, args ...string) io.Reader {
	replacer := argsReplacer(args)
	lines := make([]string, 0, len(commands))
	for _, line := range commands {
		lines = append(lines, replacer.Replace(line))
	}
	return ReaderFromCmdLines(lines)
}

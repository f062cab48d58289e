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

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/AaronMcKenney/gotiles"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrAlreadyHandled is returned by handlers that already wrote an error
	// response.
	ErrAlreadyHandled = errors.New("Error was already handled")
)

const (
	VarKey   = "var"
	ValueKey = "value"
)

// Context is shared by all handlers.
type Context struct {
	Storage ConnectionStorage
}

// NewContext returns a new context using storage for the sessions.
func NewContext(storage ConnectionStorage) *Context {
	return &Context{Storage: storage}
}

// HandlerFunc handles a request, the returned value is written as JSON.
type HandlerFunc func(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error)

// ToHTTPFunc converts handler to an http.HandlerFunc.
func ToHTTPFunc(context *Context, handler HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonData, err := handler(context, w, r)
		if err != nil {
			if err != ErrAlreadyHandled {
				log.WithError(err).Error("Error in request")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}
		jData, jErr := json.Marshal(jsonData)
		if jErr != nil {
			log.WithError(jErr).Error("Internal error: Can't marshal json")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(jData)
	}
}

// JSONMap is the decoded body of a request.
type JSONMap map[string]interface{}

func (m JSONMap) GetString(key string) (string, error) {
	val, has := m[key]
	if !has {
		return "", fmt.Errorf("Key not found: %s", key)
	}
	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("Entry for %s not of type string", key)
	}
	return str, nil
}

// GetInt returns an integer entry, JSON numbers are decoded as float64 so
// the value must be integral.
func (m JSONMap) GetInt(key string) (int, error) {
	asFloat, err := m.GetFloat(key)
	if err != nil {
		return -1, err
	}
	if asFloat != math.Trunc(asFloat) {
		return -1, fmt.Errorf("Entry for %s not of type int", key)
	}
	return int(asFloat), nil
}

func (m JSONMap) GetFloat(key string) (float64, error) {
	val, has := m[key]
	if !has {
		return -1.0, fmt.Errorf("Key not found: %s", key)
	}
	asFloat, ok := val.(float64)
	if !ok {
		return -1.0, fmt.Errorf("Entry for %s not of type float", key)
	}
	return asFloat, nil
}

func (m JSONMap) GetBool(key string) (bool, error) {
	val, has := m[key]
	if !has {
		return false, fmt.Errorf("Key not found: %s", key)
	}
	asBool, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("Entry for %s not of type bool", key)
	}
	return asBool, nil
}

// GetValueString returns the entry as a string the way it would be typed in
// the command interpreter: strings as they are, numbers without exponent and
// booleans as true / false.
func (m JSONMap) GetValueString(key string) (string, error) {
	val, has := m[key]
	if !has {
		return "", fmt.Errorf("Key not found: %s", key)
	}
	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("Entry for %s must be a string, number or bool", key)
	}
}

func (m JSONMap) GetConnection() (ConnectionID, error) {
	str, lookupErr := m.GetString("connection")
	var id ConnectionID
	if lookupErr != nil {
		return id, lookupErr
	}
	uid, parseErr := uuid.Parse(str)
	if parseErr != nil {
		return id, parseErr
	}
	return ConnectionID(uid), nil
}

// ProcessRequest decodes the JSON body of r.
func ProcessRequest(w http.ResponseWriter, r *http.Request) (JSONMap, error) {
	if r.Body == nil {
		http.Error(w, "No request body given", http.StatusBadRequest)
		return nil, ErrAlreadyHandled
	}
	dec := json.NewDecoder(r.Body)
	m := make(map[string]interface{})
	if err := dec.Decode(&m); err != nil {
		http.Error(w,
			fmt.Sprintf("Invalid request, expected valid JSON, got: %s", err.Error()),
			http.StatusBadRequest)
		return nil, ErrAlreadyHandled
	}
	return m, nil
}

func badRequest(w http.ResponseWriter, err error) (interface{}, error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
	return nil, ErrAlreadyHandled
}

// StateHandlerFunc handles a request for a session, the state is locked
// during the call.
type StateHandlerFunc func(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error)

// StateHandlerToHTTPFunc converts handler to an http.HandlerFunc, the session
// is given by the "connection" entry of the request.
func StateHandlerToHTTPFunc(context *Context, handler StateHandlerFunc) http.HandlerFunc {
	stateHandler := func(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error) {
		json, jsonErr := ProcessRequest(w, r)
		if jsonErr != nil {
			return nil, jsonErr
		}
		connectionID, connectionKeyErr := json.GetConnection()
		if connectionKeyErr != nil {
			return badRequest(w, connectionKeyErr)
		}
		state, connErr := context.Storage.Get(connectionID)
		if connErr != nil {
			return badRequest(w, connErr)
		}
		state.Lock()
		defer state.Unlock()
		state.Touch()
		return handler(state, context, w, json)
	}
	return ToHTTPFunc(context, stateHandler)
}

// collector is a Diagnostics that keeps all messages for the response.
type collector struct {
	mutex    sync.Mutex
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

func newCollector() *collector {
	return &collector{Warnings: []string{}, Errors: []string{}}
}

func (c *collector) Warn(msg string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.Warnings = append(c.Warnings, msg)
}

func (c *collector) Error(msg string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.Errors = append(c.Errors, msg)
}

// InitHandler creates a new session.
func InitHandler(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error) {
	id, idErr := GenConnectionID()
	if idErr != nil {
		return nil, idErr
	}
	if err := context.Storage.Set(id, NewState()); err != nil {
		return nil, err
	}
	return map[string]string{"connection": id.String()}, nil
}

// GetVarHandler returns all variables of the session.
func GetVarHandler(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error) {
	vars := state.exec.Variables()
	res := make(map[string]string, len(vars))
	for name, val := range vars {
		res[name] = fmt.Sprint(val)
	}
	return res, nil
}

// SetVarHandler sets a variable, the variables are the ones of the "set"
// command.
func SetVarHandler(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error) {
	varName, varErr := jsonMap.GetString(VarKey)
	if varErr != nil {
		return badRequest(w, varErr)
	}
	value, valueErr := jsonMap.GetValueString(ValueKey)
	if valueErr != nil {
		return badRequest(w, valueErr)
	}
	if err := state.exec.SetVar(varName, value); err != nil {
		return badRequest(w, err)
	}
	return map[string]bool{"success": true}, nil
}

// TilesHandler loads the tiles from the directory in "path" into the
// session.
func TilesHandler(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error) {
	path, pathErr := jsonMap.GetString("path")
	if pathErr != nil {
		return badRequest(w, pathErr)
	}
	diag := newCollector()
	catalog, err := gotiles.LoadTiles(path, state.exec.Config.Load, diag)
	if err != nil {
		return badRequest(w, err)
	}
	state.exec.Catalog, state.exec.TileDir = catalog, path
	state.cache = gotiles.NewImageCache(gotiles.ImageCacheSize)
	return map[string]interface{}{
		"tiles":    catalog.NumTiles(),
		"size":     gotiles.FormatDimensions(catalog.TileWidth, catalog.TileHeight),
		"warnings": diag.Warnings,
	}, nil
}

// PlacementHandler sets the placement of the session from "data" in the
// given "format" (yaml or json). An empty data string removes the placement.
func PlacementHandler(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error) {
	data, dataErr := jsonMap.GetString("data")
	if dataErr != nil {
		return badRequest(w, dataErr)
	}
	if data == "" {
		state.exec.Config.Placement = nil
		return map[string]bool{"success": true}, nil
	}
	format, formatErr := jsonMap.GetString("format")
	if formatErr != nil {
		format = "yaml"
	}
	p, err := gotiles.ParsePlacement([]byte(data), format)
	if err != nil {
		return badRequest(w, err)
	}
	state.exec.Config.Placement = p
	width, height := p.Dimensions()
	return map[string]interface{}{"success": true, "width": width, "height": height}, nil
}

// AssembleHandler assembles a picture and returns it base64 encoded.
// The request contains "width" and "height" (unless a placement is set),
// optionally "format" ("png" or "jpeg") and "preview", the size of each tile
// in the returned picture.
func AssembleHandler(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error) {
	if state.exec.Catalog == nil {
		return badRequest(w, errors.New("No tiles loaded"))
	}
	cfg := state.exec.Config
	if cfg.Placement == nil {
		width, widthErr := jsonMap.GetInt("width")
		height, heightErr := jsonMap.GetInt("height")
		if widthErr != nil || heightErr != nil {
			return badRequest(w, errors.New("width and height required"))
		}
		cfg.FrameWidth, cfg.FrameHeight = width, height
	}
	ext := ".png"
	if format, formatErr := jsonMap.GetString("format"); formatErr == nil {
		ext = "." + format
	}
	diag := newCollector()
	res, err := gotiles.Assemble(state.exec.Catalog, cfg, diag)
	if err != nil {
		return badRequest(w, err)
	}
	img := res.Image
	if preview, previewErr := jsonMap.GetInt("preview"); previewErr == nil {
		img, err = gotiles.RenderScaled(res.Grid, state.exec.Catalog, preview, preview,
			gotiles.NewNfntResizer(state.exec.InterP), state.cache)
		if err != nil {
			return badRequest(w, err)
		}
	}
	encoded, encErr := EncodeBase64(img, ext, cfg.JPGQuality)
	if encErr != nil {
		return badRequest(w, encErr)
	}
	return map[string]interface{}{
		"image":    encoded,
		"format":   ext[1:],
		"resolved": res.Solve.Resolved,
		"failed":   res.Solve.Failed,
		"warnings": diag.Warnings,
		"errors":   diag.Errors,
	}, nil
}

// Routes maps the paths of the backend to their handlers.
func Routes(context *Context) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/init":      ToHTTPFunc(context, InitHandler),
		"/getvar":    StateHandlerToHTTPFunc(context, GetVarHandler),
		"/setvar":    StateHandlerToHTTPFunc(context, SetVarHandler),
		"/tiles":     StateHandlerToHTTPFunc(context, TilesHandler),
		"/placement": StateHandlerToHTTPFunc(context, PlacementHandler),
		"/assemble":  StateHandlerToHTTPFunc(context, AssembleHandler),
	}
}

// DefaultHandlers registers all routes on mux, nil means
// http.DefaultServeMux.
func DefaultHandlers(context *Context, mux *http.ServeMux) {
	if mux == nil {
		mux = http.DefaultServeMux
	}
	routes := Routes(context)
	paths := make([]string, 0, len(routes))
	for path := range routes {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		mux.HandleFunc(path, routes[path])
		log.WithField("path", path).Debug("Registered handler")
	}
}

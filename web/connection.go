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
	"errors"
	"io"
	"sync"
	"time"

	"github.com/AaronMcKenney/gotiles"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ConnectionID identifies a session.
type ConnectionID uuid.UUID

// GenConnectionID returns a new random id.
func GenConnectionID() (ConnectionID, error) {
	id, idErr := uuid.NewRandom()
	return ConnectionID(id), idErr
}

func (id ConnectionID) String() string {
	return uuid.UUID(id).String()
}

// State is the state of one session: the tile pool and the run parameters.
// Handlers lock the state while they use it.
type State struct {
	sync.Mutex
	created        time.Time
	lastConnection time.Time
	exec           *gotiles.ExecutorState
	cache          *gotiles.ImageCache
}

// NewState returns the initial state of a session.
func NewState() *State {
	now := time.Now().UTC()
	exec := gotiles.NewExecutorState(nil, io.Discard)
	exec.Verbose = false
	return &State{
		created:        now,
		lastConnection: now,
		exec:           exec,
		cache:          gotiles.NewImageCache(gotiles.ImageCacheSize),
	}
}

// Touch marks the session as used now.
func (s *State) Touch() {
	s.lastConnection = time.Now().UTC()
}

// Expired checks if the session wasn't used for maxAge.
func (s *State) Expired(now time.Time, maxAge time.Duration) bool {
	age := now.Sub(s.lastConnection)
	return age >= maxAge
}

var (
	// ErrConnNotFound is returned if there is no session with the given id.
	ErrConnNotFound = errors.New("Connection not found")
)

// ConnectionStorage stores the sessions.
type ConnectionStorage interface {
	Get(conn ConnectionID) (*State, error)
	Set(conn ConnectionID, state *State) error
	Delete(conn ConnectionID) error
	Filter(maxAge time.Duration) error
}

// MemStorage keeps all sessions in memory, it is safe for concurrent use.
type MemStorage struct {
	mutex   *sync.RWMutex
	connMap map[ConnectionID]*State
}

// NewMemStorage returns an empty storage.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		mutex:   new(sync.RWMutex),
		connMap: make(map[ConnectionID]*State, 100),
	}
}

func (s *MemStorage) Get(conn ConnectionID) (*State, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	state, has := s.connMap[conn]
	if has {
		return state, nil
	}
	return nil, ErrConnNotFound
}

func (s *MemStorage) Set(conn ConnectionID, state *State) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.connMap[conn] = state
	return nil
}

func (s *MemStorage) Delete(conn ConnectionID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.connMap, conn)
	return nil
}

// Len returns the number of sessions.
func (s *MemStorage) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.connMap)
}

// Filter removes all sessions that expired. Sessions currently locked by a
// handler are kept.
func (s *MemStorage) Filter(maxAge time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	now := time.Now().UTC()
	for id, state := range s.connMap {
		if !state.TryLock() {
			continue
		}
		expired := state.Expired(now, maxAge)
		state.Unlock()
		if expired {
			delete(s.connMap, id)
		}
	}
	return nil
}

// RunFilter calls Filter on storage every interval until the returned
// channel is closed.
func RunFilter(storage ConnectionStorage, maxAge, interval time.Duration) chan<- struct{} {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := storage.Filter(maxAge); err != nil {
					log.WithError(err).Error("Filtering sessions failed")
				}
			}
		}
	}()
	return done
}

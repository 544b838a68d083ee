package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/patentscout/patentscout/internal/models"
)

// ErrNotFound is returned when a session ID is unknown to the store.
var ErrNotFound = fmt.Errorf("session not found")

type entry struct {
	mu    sync.Mutex
	state State
}

// Store keeps session states in memory, keyed by UUID. Update runs
// under a per-session lock, so at most one pipeline invocation
// mutates a given session at a time.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

// Create registers a fresh session and returns its ID.
func (s *Store) Create(weights models.SimilarityWeights) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &entry{state: NewState(weights)}
	s.mu.Unlock()

	return id
}

// Get returns a copy of the session state.
func (s *Store) Get(id string) (State, error) {
	e, err := s.lookup(id)
	if err != nil {
		return State{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone(), nil
}

// Update passes a copy of the current state to fn and commits the
// returned state. The session stays locked for the duration of fn.
func (s *Store) Update(id string, fn func(State) State) (State, error) {
	e, err := s.lookup(id)
	if err != nil {
		return State{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next := fn(e.state.Clone())
	e.state = next
	return next.Clone(), nil
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) lookup(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

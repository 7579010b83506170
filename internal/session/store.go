package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long an untouched session is kept in memory.
const DefaultIdleTTL = 2 * time.Hour

type entry struct {
	controller *Controller
	lastSeen   time.Time
}

// Store keeps controllers in memory, keyed by session ID. Nothing is persisted.
type Store struct {
	mu         sync.Mutex
	sessions   map[uuid.UUID]*entry
	newControl func() *Controller
	idleTTL    time.Duration
	now        func() time.Time
}

// NewStore creates a Store that builds new controllers with newControl.
func NewStore(newControl func() *Controller, idleTTL time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Store{
		sessions:   make(map[uuid.UUID]*entry),
		newControl: newControl,
		idleTTL:    idleTTL,
		now:        time.Now,
	}
}

// Get returns the controller for id, creating a new session when id is empty,
// unknown or expired. The returned ID is the one the caller should keep using.
func (s *Store) Get(id string) (uuid.UUID, *Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if parsed, err := uuid.Parse(id); err == nil {
		if e, ok := s.sessions[parsed]; ok && now.Sub(e.lastSeen) < s.idleTTL {
			e.lastSeen = now
			return parsed, e.controller
		}
	}

	newID := uuid.New()
	c := s.newControl()
	s.sessions[newID] = &entry{controller: c, lastSeen: now}
	return newID, c
}

// Prune drops sessions idle for longer than the TTL and returns how many were removed.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) >= s.idleTTL {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

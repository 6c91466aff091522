package server

import (
	"sync"
	"time"

	"github.com/zaid5678/gandalf/internal/game"
)

// SessionStore is the registry of live game sessions. Referencing an
// unknown game ID creates it, so the first client to connect to a fresh
// URL implicitly opens the game.
type SessionStore interface {
	Get(id string) *game.GandalfSession
	Remove(id string)
	Count() int
}

// SessionOptions are applied to every session the store creates.
type SessionOptions struct {
	UseJokers    bool
	BotTurnDelay time.Duration
}

type inMemorySessionStore struct {
	mu       sync.Mutex
	opts     SessionOptions
	sessions map[string]*game.GandalfSession
}

// NewInMemorySessionStore returns an empty in-process registry.
func NewInMemorySessionStore(opts SessionOptions) SessionStore {
	return &inMemorySessionStore{
		opts:     opts,
		sessions: make(map[string]*game.GandalfSession),
	}
}

func (s *inMemorySessionStore) Get(id string) *game.GandalfSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := game.NewSession(id)
	sess.UseJokers = s.opts.UseJokers
	sess.BotTurnDelay = s.opts.BotTurnDelay
	s.sessions[id] = sess
	return sess
}

func (s *inMemorySessionStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *inMemorySessionStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

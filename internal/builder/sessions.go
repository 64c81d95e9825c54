package builder

import (
	"errors"
	"sync"

	"github.com/tri-kkk/football-prediction-sub000/internal/catalog"
	"github.com/tri-kkk/football-prediction-sub000/internal/market"
)

// ErrSaveInFlight rejects a second save issued while one is outstanding.
var ErrSaveInFlight = errors.New("a save is already in flight")

// Session is one user's builder state. Mutations are serialized by the
// mutex; the set stays interactive while a save round-trip is in flight,
// but only one save may be outstanding at a time.
type Session struct {
	mu     sync.Mutex
	set    Set
	saving bool
}

func (s *Session) Toggle(f catalog.Fixture, a market.Action) (ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Toggle(f, a)
}

// Snapshot returns the current legs and combined odds as one consistent view.
func (s *Session) Snapshot() ([]Selection, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Selections(), s.set.CombinedOdds()
}

func (s *Session) SelectedPairs() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.SelectedPairs()
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Clear()
}

// BeginSave marks a save as outstanding. The caller must EndSave regardless
// of the save's result; the set itself is not blocked in between.
func (s *Session) BeginSave() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return ErrSaveInFlight
	}
	s.saving = true
	return nil
}

func (s *Session) EndSave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
}

// Sessions holds per-user builder sessions, created lazily.
type Sessions struct {
	mu     sync.RWMutex
	byUser map[string]*Session
}

func NewSessions() *Sessions {
	return &Sessions{byUser: make(map[string]*Session)}
}

func (s *Sessions) Get(userID string) *Session {
	s.mu.RLock()
	sess, ok := s.byUser[userID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.byUser[userID]; ok {
		return sess
	}
	sess = &Session{}
	s.byUser[userID] = sess
	return sess
}

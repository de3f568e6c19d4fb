// Package session holds per-session engagement state in memory. State lives
// for the process lifetime only; entries are never evicted, which is an
// accepted resource-growth tradeoff for short-lived deployments.
package session

import "sync"

// Store maps session IDs to turn state. Access to a session is serialized:
// Acquire blocks while another handle for the same ID is live, so concurrent
// deliveries for one session cannot lose turn increments. Distinct sessions
// never contend with each other beyond the brief map lookup.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*state
}

type state struct {
	mu    sync.Mutex
	turns int
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*state)}
}

// Acquire looks up or creates the session and takes its per-key lock. The
// returned handle must be released exactly once.
func (s *Store) Acquire(id string) *Handle {
	s.mu.Lock()
	st, ok := s.sessions[id]
	if !ok {
		st = &state{}
		s.sessions[id] = st
	}
	s.mu.Unlock()

	st.mu.Lock()
	return &Handle{st: st}
}

// Len reports how many sessions have been seen so far.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Handle is exclusive access to one session's state.
type Handle struct {
	st   *state
	done bool
}

// Turns returns the number of inbound messages processed so far.
func (h *Handle) Turns() int {
	return h.st.turns
}

// Advance records one more processed turn and returns the new count.
func (h *Handle) Advance() int {
	h.st.turns++
	return h.st.turns
}

// Release gives up exclusive access. Safe to call once; subsequent calls are
// no-ops so it can sit in a defer alongside early returns.
func (h *Handle) Release() {
	if h.done {
		return
	}
	h.done = true
	h.st.mu.Unlock()
}

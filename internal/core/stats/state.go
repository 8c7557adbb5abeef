package stats

import "sync"

// State is the poll state shared between the updater and its readers: the
// last count fetched and the handle of the running loop. The composition root
// creates one per process and hands it to the Updater.
type State struct {
	mu     sync.Mutex
	count   int64
	known   bool
	updated string
	handle  *Handle
}

// NewState returns a state with an unknown count.
func NewState() *State {
	return &State{}
}

// Count returns the last fetched count and whether one has been fetched.
func (s *State) Count() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, s.known
}

// Running reports whether a poll loop is attached.
func (s *State) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// LastUpdated returns the server's last_updated value from the most recent
// fetch, or "" when the server did not report one.
func (s *State) LastUpdated() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updated
}

func (s *State) record(n int64, lastUpdated string) {
	s.mu.Lock()
	s.count = n
	s.known = true
	s.updated = lastUpdated
	s.mu.Unlock()
}

// swapHandle installs h and returns the previous handle, if any.
func (s *State) swapHandle(h *Handle) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.handle
	s.handle = h
	return prev
}

// clearHandle detaches h if it is still the current handle.
func (s *State) clearHandle(h *Handle) {
	s.mu.Lock()
	if s.handle == h {
		s.handle = nil
	}
	s.mu.Unlock()
}

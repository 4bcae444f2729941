package session

import (
	"maps"
	"sync"
	"sync/atomic"

	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

// State is the mutable session of one orchestrator.
type State struct {
	inFlight atomic.Bool

	mu          sync.RWMutex
	active      wallpaper.Type
	cursors     map[wallpaper.Type]int
	accumulated []wallpaper.Record
}

// Snapshot is a point-in-time copy of a State.
type Snapshot struct {
	Active      wallpaper.Type         `json:"active,omitempty"`
	Cursors     map[wallpaper.Type]int `json:"cursors"`
	Accumulated int                    `json:"accumulated"`
	InFlight    bool                   `json:"in_flight"`
}

// New creates a State with the given starting cursors. Only providers
// present in cursors are paged.
func New(cursors map[wallpaper.Type]int) *State {
	c := make(map[wallpaper.Type]int, len(cursors))
	maps.Copy(c, cursors)
	return &State{cursors: c}
}

// TryAcquire sets the in-flight guard. It reports false if it was already set.
func (s *State) TryAcquire() bool {
	return s.inFlight.CompareAndSwap(false, true)
}

// Release clears the in-flight guard.
func (s *State) Release() {
	s.inFlight.Store(false)
}

// InFlight reports whether a fetch is in progress.
func (s *State) InFlight() bool {
	return s.inFlight.Load()
}

// Active returns the sticky provider, if one has been selected.
func (s *State) Active() (wallpaper.Type, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.active != ""
}

// SetActive makes t the sticky provider.
func (s *State) SetActive(t wallpaper.Type) {
	s.mu.Lock()
	s.active = t
	s.mu.Unlock()
}

// Cursor returns the paging cursor for t. ok is false for providers that
// are not paged.
func (s *State) Cursor(t wallpaper.Type) (cursor int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cursor, ok = s.cursors[t]
	return cursor, ok
}

// Advance moves the cursor for t forward by n. Unpaged providers and
// non-positive n are ignored; cursors never move backwards.
func (s *State) Advance(t wallpaper.Type, n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cursors[t]; ok {
		s.cursors[t] = c + n
	}
}

// Append adds records to the accumulated history.
func (s *State) Append(records ...wallpaper.Record) {
	if len(records) == 0 {
		return
	}
	s.mu.Lock()
	s.accumulated = append(s.accumulated, records...)
	s.mu.Unlock()
}

// Len returns the number of accumulated records.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accumulated)
}

// History returns a copy of the most recent limit records, oldest first.
// limit <= 0 returns everything.
func (s *State) History(limit int) []wallpaper.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	from := 0
	if limit > 0 && limit < len(s.accumulated) {
		from = len(s.accumulated) - limit
	}
	return append([]wallpaper.Record{}, s.accumulated[from:]...)
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Active:      s.active,
		Cursors:     maps.Clone(s.cursors),
		Accumulated: len(s.accumulated),
		InFlight:    s.inFlight.Load(),
	}
}

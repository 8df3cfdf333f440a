// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"sync"
	"time"

	"github.com/pdiddy/mdconvert/internal/convert"
)

// Snapshot is the app state as seen by one request: the last result set and
// the last built archive. A published ResultSet is never mutated again, so
// holding the pointer is safe; each conversion run replaces it wholesale.
type Snapshot struct {
	Results   *convert.ResultSet
	Archive   []byte
	UpdatedAt time.Time
}

// State owns the two process-lifetime slots the UI depends on across
// refreshes. All access goes through snapshots; handlers never see the
// mutable interior.
type State struct {
	mu   sync.RWMutex
	snap Snapshot
}

// Snapshot returns the current state for rendering.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// SetResults replaces both slots after a conversion run. archive may be nil
// when building it failed; the download handler rebuilds lazily.
func (s *State) SetResults(rs *convert.ResultSet, archive []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot{Results: rs, Archive: archive, UpdatedAt: time.Now()}
}

// SetArchive fills the archive slot for the current results, if they are
// still the ones the archive was built from.
func (s *State) SetArchive(rs *convert.ResultSet, archive []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Results == rs {
		s.snap.Archive = archive
	}
}

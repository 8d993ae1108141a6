package snapshot

import (
	"sync/atomic"

	"github.com/pgEdge/pgedge-salesview/internal/logging"
)

// Store publishes the current snapshot. Readers always see either the old
// or the new snapshot in full, never a mix; a failed refresh leaves the
// prior snapshot in place.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the published snapshot, or nil before the first refresh.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Refresh runs load and, on success, swaps its result in. On error the
// prior snapshot is retained and the error returned.
func (s *Store) Refresh(load func() (*Snapshot, error)) error {
	next, err := load()
	if err != nil {
		logging.Warn().Err(err).Msg("Refresh failed, keeping prior snapshot")
		return err
	}

	prior := s.current.Swap(next)
	ev := logging.Info().
		Int("facts", len(next.facts)).
		Int("weeks", next.weeks.Len())
	if prior != nil {
		ev = ev.Int("replaced_facts", len(prior.facts))
	}
	ev.Msg("Snapshot refreshed")
	return nil
}

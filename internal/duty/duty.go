// Package duty wires the rotation engine to the store and the notifier. It
// hosts the three entry points of the system: the weekly tick, the read-only
// schedule query, and the missed-duty report. All three share one mutation
// discipline: decide-and-persist inside a single store transaction, strictly
// before any notification content is composed.
package duty

import (
	"time"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/notify"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/rotation"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/store"
)

// Service bundles the collaborators the handlers need. Tests inject a fake
// store and a recording registry.
type Service struct {
	Store    store.Store
	Registry *notify.Registry
	Mirror   string           // optional broadcast mirror name, e.g. "slack"
	Now      func() time.Time // injectable clock; nil means time.Now
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// load reads the three records through tx and validates them into a State.
func load(tx store.Tx) (rotation.State, error) {
	roster, err := tx.Roster()
	if err != nil {
		return rotation.State{}, err
	}
	pointer, err := tx.Pointer()
	if err != nil {
		return rotation.State{}, err
	}
	penalty, err := tx.Penalty()
	if err != nil {
		return rotation.State{}, err
	}
	return rotation.NewState(roster, pointer, penalty)
}

// persist writes the post-transition pointer and penalty. Deleting an absent
// penalty record is a no-op, which also sweeps stale records.
func persist(tx store.Tx, st rotation.State) error {
	if err := tx.SetPointer(st.Pointer); err != nil {
		return err
	}
	if st.Penalty != nil {
		return tx.SetPenalty(*st.Penalty)
	}
	return tx.DeletePenalty()
}

package store

import (
	"context"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/rotation"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/models"
)

// Store is the persistence interface for the three rotation state records:
// roster, pointer, and the optional penalty record.
// Implementations: the SQLite store in this package and *postgres.Store.
//
// Reads outside Mutate see the latest committed state. Mutate runs its
// function inside a single-writer transaction, so a read-decide-write
// sequence (tick, report) cannot interleave with another mutation — the
// guard the original read-modify-write KV code lacked.
type Store interface {
	Roster(ctx context.Context) ([]models.Member, error)
	PutRoster(ctx context.Context, roster []models.Member) error
	Pointer(ctx context.Context) (int, error)
	Penalty(ctx context.Context) (*rotation.Penalty, error)

	// Mutate invokes fn within one exclusive transaction; the mutation is
	// committed iff fn returns nil.
	Mutate(ctx context.Context, fn func(tx Tx) error) error

	Close() error
}

// Tx is the view handed to Mutate callbacks.
type Tx interface {
	Roster() ([]models.Member, error)
	Pointer() (int, error)
	SetPointer(p int) error
	Penalty() (*rotation.Penalty, error)
	SetPenalty(p rotation.Penalty) error
	DeletePenalty() error
}

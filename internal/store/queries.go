package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/rotation"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/models"
)

// ErrNoRoster is returned when the roster record has never been provisioned.
var ErrNoRoster = errors.New("roster not provisioned")

func (s *sqliteStore) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.stmtGet.QueryRowContext(ctx, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *sqliteStore) put(ctx context.Context, key, value string) error {
	_, err := s.stmtPut.ExecContext(ctx, key, value, time.Now().UTC().Unix())
	return err
}

func (s *sqliteStore) Roster(ctx context.Context) ([]models.Member, error) {
	raw, ok, err := s.get(ctx, KeyRoster)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoRoster
	}
	return DecodeRoster(raw)
}

func (s *sqliteStore) PutRoster(ctx context.Context, roster []models.Member) error {
	if len(roster) == 0 {
		return errors.New("roster must not be empty")
	}
	raw, err := EncodeRoster(roster)
	if err != nil {
		return err
	}
	return s.put(ctx, KeyRoster, raw)
}

func (s *sqliteStore) Pointer(ctx context.Context) (int, error) {
	raw, ok, err := s.get(ctx, KeyPointer)
	if err != nil || !ok {
		return 0, err
	}
	return DecodePointer(raw)
}

func (s *sqliteStore) Penalty(ctx context.Context) (*rotation.Penalty, error) {
	raw, ok, err := s.get(ctx, KeyPenalty)
	if err != nil || !ok {
		return nil, err
	}
	return DecodePenalty(raw)
}

// Mutate runs fn inside one transaction. The DSN opens transactions with
// _txlock=immediate, so the write lock is held for the whole read-decide-write
// sequence and overlapping mutations serialize.
func (s *sqliteStore) Mutate(ctx context.Context, fn func(tx Tx) error) error {
	dbtx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = dbtx.Rollback() }()

	if err := fn(&sqliteTx{ctx: ctx, tx: dbtx}); err != nil {
		return err
	}
	return dbtx.Commit()
}

type sqliteTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *sqliteTx) get(key string) (string, bool, error) {
	var value string
	err := t.tx.QueryRowContext(t.ctx, `SELECT value FROM state WHERE name = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (t *sqliteTx) put(key, value string) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO state(name, value, updated_at) VALUES(?, ?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Unix())
	return err
}

func (t *sqliteTx) Roster() ([]models.Member, error) {
	raw, ok, err := t.get(KeyRoster)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoRoster
	}
	return DecodeRoster(raw)
}

func (t *sqliteTx) Pointer() (int, error) {
	raw, ok, err := t.get(KeyPointer)
	if err != nil || !ok {
		return 0, err
	}
	return DecodePointer(raw)
}

func (t *sqliteTx) SetPointer(p int) error {
	return t.put(KeyPointer, EncodePointer(p))
}

func (t *sqliteTx) Penalty() (*rotation.Penalty, error) {
	raw, ok, err := t.get(KeyPenalty)
	if err != nil || !ok {
		return nil, err
	}
	return DecodePenalty(raw)
}

func (t *sqliteTx) SetPenalty(p rotation.Penalty) error {
	raw, err := EncodePenalty(p)
	if err != nil {
		return err
	}
	return t.put(KeyPenalty, raw)
}

func (t *sqliteTx) DeletePenalty() error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM state WHERE name = ?`, KeyPenalty)
	return err
}

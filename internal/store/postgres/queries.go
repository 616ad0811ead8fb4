package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/rotation"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/store"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/models"
)

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.Pool.QueryRow(ctx, `SELECT value FROM state WHERE name = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO state(name, value, updated_at) VALUES($1, $2, NOW()) ON CONFLICT(name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	return err
}

func (s *Store) Roster(ctx context.Context) ([]models.Member, error) {
	raw, ok, err := s.get(ctx, store.KeyRoster)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, store.ErrNoRoster
	}
	return store.DecodeRoster(raw)
}

func (s *Store) PutRoster(ctx context.Context, roster []models.Member) error {
	if len(roster) == 0 {
		return errors.New("roster must not be empty")
	}
	raw, err := store.EncodeRoster(roster)
	if err != nil {
		return err
	}
	return s.put(ctx, store.KeyRoster, raw)
}

func (s *Store) Pointer(ctx context.Context) (int, error) {
	raw, ok, err := s.get(ctx, store.KeyPointer)
	if err != nil || !ok {
		return 0, err
	}
	return store.DecodePointer(raw)
}

func (s *Store) Penalty(ctx context.Context) (*rotation.Penalty, error) {
	raw, ok, err := s.get(ctx, store.KeyPenalty)
	if err != nil || !ok {
		return nil, err
	}
	return store.DecodePenalty(raw)
}

func (t *pgTx) get(key string) (string, bool, error) {
	var value string
	err := t.tx.QueryRow(t.ctx, `SELECT value FROM state WHERE name = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (t *pgTx) put(key, value string) error {
	_, err := t.tx.Exec(t.ctx,
		`INSERT INTO state(name, value, updated_at) VALUES($1, $2, NOW()) ON CONFLICT(name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	return err
}

func (t *pgTx) Roster() ([]models.Member, error) {
	raw, ok, err := t.get(store.KeyRoster)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, store.ErrNoRoster
	}
	return store.DecodeRoster(raw)
}

func (t *pgTx) Pointer() (int, error) {
	raw, ok, err := t.get(store.KeyPointer)
	if err != nil || !ok {
		return 0, err
	}
	return store.DecodePointer(raw)
}

func (t *pgTx) SetPointer(p int) error {
	return t.put(store.KeyPointer, store.EncodePointer(p))
}

func (t *pgTx) Penalty() (*rotation.Penalty, error) {
	raw, ok, err := t.get(store.KeyPenalty)
	if err != nil || !ok {
		return nil, err
	}
	return store.DecodePenalty(raw)
}

func (t *pgTx) SetPenalty(p rotation.Penalty) error {
	raw, err := store.EncodePenalty(p)
	if err != nil {
		return err
	}
	return t.put(store.KeyPenalty, raw)
}

func (t *pgTx) DeletePenalty() error {
	_, err := t.tx.Exec(t.ctx, `DELETE FROM state WHERE name = $1`, store.KeyPenalty)
	return err
}

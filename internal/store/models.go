package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/rotation"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/models"
)

// Logical record names. Values round-trip through JSON except the pointer,
// which is stored as a base-10 integer string. An absent pointer reads as 0
// and an absent penalty record is the valid "no penalty" state.
const (
	KeyRoster  = "roster"
	KeyPointer = "pointer"
	KeyPenalty = "penalty-record"
)

func EncodeRoster(roster []models.Member) (string, error) {
	b, err := json.Marshal(roster)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeRoster(raw string) ([]models.Member, error) {
	var out []models.Member
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("corrupt roster record: %w", err)
	}
	return out, nil
}

func EncodePointer(p int) string {
	return strconv.Itoa(p)
}

func DecodePointer(raw string) (int, error) {
	p, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("corrupt pointer record %q: %w", raw, err)
	}
	return p, nil
}

func EncodePenalty(p rotation.Penalty) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodePenalty(raw string) (*rotation.Penalty, error) {
	var p rotation.Penalty
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("corrupt penalty record: %w", err)
	}
	return &p, nil
}

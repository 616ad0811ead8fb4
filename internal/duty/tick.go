package duty

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/notify"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/otel"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/rotation"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/store"
)

// TickResult reports what one weekly tick did.
type TickResult struct {
	State   rotation.State
	Results []notify.Result
}

// Tick applies one weekly advance. The state transition commits first; only
// then are the per-member messages composed from the new state and dispatched.
// If the transition fails nothing is sent — a half-notified week is worse
// than a silent one. Delivery failures are collected per recipient and never
// roll the advance back.
func (s *Service) Tick(ctx context.Context) (*TickResult, error) {
	var after rotation.State
	err := s.Store.Mutate(ctx, func(tx store.Tx) error {
		st, err := load(tx)
		if err != nil {
			return err
		}
		after = st.Tick()
		return persist(tx, after)
	})
	if err != nil {
		return nil, fmt.Errorf("tick aborted: %w", err)
	}

	phase := "normal"
	if after.Phase() == rotation.Penalized {
		phase = "penalized"
	}
	otel.RecordTick(ctx, phase)
	slog.Info("tick applied",
		"on_duty", after.OnDuty().Name,
		"pointer", after.Pointer,
		"phase", phase)

	msgs := rotation.TickMessages(after, s.now())
	batch := make([]notify.Message, len(msgs))
	for i, m := range msgs {
		batch[i] = notify.Message{To: m.Member.Phone, Body: m.Body}
	}
	results := notify.Batch(ctx, s.Registry.Primary(), batch)
	otel.RecordNotifications(ctx, results)

	if s.Mirror != "" {
		summary := fmt.Sprintf("Trash duty this week: %s.", after.OnDuty().Name)
		if err := s.Registry.Mirror(ctx, s.Mirror, summary); err != nil {
			slog.Error("mirror broadcast failed", "mirror", s.Mirror, "err", err)
		}
	}

	return &TickResult{State: after, Results: results}, nil
}

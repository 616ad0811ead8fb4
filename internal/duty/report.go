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

// ReportResult describes a processed missed-duty report.
type ReportResult struct {
	Message string
	Applied bool
	Results []notify.Result
}

// Report applies a missed-duty report: the offender is whoever held the slot
// for the week just ending; a fresh penalty is recorded and the pointer
// retargeted to the offender. A report while any penalty is in place is a
// no-op that only returns an informational message. An applied report
// triggers an immediate team-wide broadcast, independent of the tick cycle.
func (s *Service) Report(ctx context.Context) (*ReportResult, error) {
	var (
		after   rotation.State
		outcome rotation.ReportOutcome
	)
	err := s.Store.Mutate(ctx, func(tx store.Tx) error {
		st, err := load(tx)
		if err != nil {
			return err
		}
		after, outcome = st.Report()
		if !outcome.Applied {
			return nil
		}
		return persist(tx, after)
	})
	if err != nil {
		return nil, fmt.Errorf("report failed: %w", err)
	}

	otel.RecordReport(ctx, outcome.Applied)
	res := &ReportResult{Message: rotation.ReportMessage(outcome), Applied: outcome.Applied}
	if !outcome.Applied {
		slog.Info("report ignored", "offender", outcome.Offender.Name)
		return res, nil
	}

	slog.Info("penalty recorded",
		"offender", outcome.Offender.Name,
		"weeks", rotation.PenaltyLength)

	msgs := rotation.ReportBroadcast(after, outcome.Offender)
	batch := make([]notify.Message, len(msgs))
	for i, m := range msgs {
		batch[i] = notify.Message{To: m.Member.Phone, Body: m.Body}
	}
	res.Results = notify.Batch(ctx, s.Registry.Primary(), batch)
	otel.RecordNotifications(ctx, res.Results)

	if s.Mirror != "" {
		if err := s.Registry.Mirror(ctx, s.Mirror, msgs[0].Body); err != nil {
			slog.Error("mirror broadcast failed", "mirror", s.Mirror, "err", err)
		}
	}
	return res, nil
}

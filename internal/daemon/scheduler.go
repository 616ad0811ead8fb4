package daemon

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/httpapi"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/store"
)

const weeklyInterval = 7 * 24 * time.Hour

// runScheduler advances the rotation on a fixed interval, weekly unless
// overridden. Each firing applies exactly one tick; a tick that cannot load
// state (no roster yet) is logged and retried on the next firing.
func runScheduler(ctx context.Context, opts StartOptions, app *httpapi.App) {
	interval := time.Duration(opts.IntervalSec * float64(time.Second))
	if interval <= 0 {
		interval = weeklyInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("scheduler started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := app.Service.Tick(ctx)
			if err != nil {
				if errors.Is(err, store.ErrNoRoster) {
					slog.Warn("tick skipped, roster not provisioned")
					continue
				}
				slog.Error("scheduled tick failed", "err", err)
				continue
			}
			delivered := 0
			for _, r := range res.Results {
				if r.Delivered {
					delivered++
				}
			}
			slog.Info("scheduled tick applied",
				"on_duty", res.State.OnDuty().Name,
				"pointer", res.State.Pointer,
				"notified", delivered,
				"recipients", len(res.Results))
		}
	}
}

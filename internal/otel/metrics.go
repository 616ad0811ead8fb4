// Package otel wires OpenTelemetry metrics with a Prometheus exporter for the
// trashduty daemon. All record helpers are nil-safe so callers work whether or
// not metrics were initialized.
package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/metric"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/notify"
)

var (
	initMetricsOnce      sync.Once
	ticksCounter         metric.Int64Counter
	reportsCounter       metric.Int64Counter
	notificationsCounter metric.Int64Counter
)

// InitMetrics creates the meter instruments. Safe to call multiple times; only runs once.
// Call after InitMeterProvider.
func InitMetrics(ctx context.Context) error {
	var err error
	initMetricsOnce.Do(func() {
		m := Meter()
		ticksCounter, err = m.Int64Counter("trashduty_ticks_total", metric.WithDescription("Total weekly ticks applied, by rotation phase"))
		if err != nil {
			return
		}
		reportsCounter, err = m.Int64Counter("trashduty_reports_total", metric.WithDescription("Total missed-duty reports received"))
		if err != nil {
			return
		}
		notificationsCounter, err = m.Int64Counter("trashduty_notifications_total", metric.WithDescription("Total notification sends, by delivery status"))
		if err != nil {
			return
		}
	})
	return err
}

// PenaltyActiveFunc reports whether a penalty is currently in effect.
type PenaltyActiveFunc func() bool

// InitMetricsWithPenaltyGauge creates instruments and registers an observable
// gauge exposing penalty state. Call after InitMeterProvider. If active is
// nil, the gauge is not reported.
func InitMetricsWithPenaltyGauge(ctx context.Context, active PenaltyActiveFunc) error {
	if err := InitMetrics(ctx); err != nil {
		return err
	}
	if active == nil {
		return nil
	}
	m := Meter()
	gauge, err := m.Int64ObservableGauge("trashduty_penalty_active", metric.WithDescription("1 while a penalty is in effect"))
	if err != nil {
		return err
	}
	_, err = m.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		var v int64
		if active() {
			v = 1
		}
		o.ObserveInt64(gauge, v)
		return nil
	}, gauge)
	return err
}

// RecordTick records one applied tick with its phase ("normal" or "penalized").
func RecordTick(ctx context.Context, phase string) {
	if ticksCounter == nil {
		return
	}
	ticksCounter.Add(ctx, 1, metric.WithAttributes(AttrPhase.String(phase)))
}

// RecordReport records one missed-duty report and whether it applied.
func RecordReport(ctx context.Context, applied bool) {
	if reportsCounter == nil {
		return
	}
	reportsCounter.Add(ctx, 1, metric.WithAttributes(AttrApplied.Bool(applied)))
}

// RecordNotifications records a batch of delivery results by status.
func RecordNotifications(ctx context.Context, results []notify.Result) {
	if notificationsCounter == nil {
		return
	}
	for _, r := range results {
		status := "delivered"
		if !r.Delivered {
			status = "failed"
		}
		notificationsCounter.Add(ctx, 1, metric.WithAttributes(AttrStatus.String(status)))
	}
}

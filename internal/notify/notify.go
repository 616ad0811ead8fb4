// Package notify delivers per-member SMS (and optional Slack mirror)
// notifications. Senders are independent integrations registered by name;
// Batch fans a set of messages out in parallel and collects per-recipient
// results without letting one failure block or cancel the siblings.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/models"
)

// Sender delivers one message to one address.
type Sender interface {
	Name() string
	Send(ctx context.Context, to, body string) error
}

// Message is one (recipient, body) pair queued for delivery.
type Message struct {
	To   string
	Body string
}

// Result reports one recipient's delivery outcome.
type Result struct {
	To        string `json:"to"`
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

// Registry holds loaded senders by name.
type Registry struct {
	mu      sync.RWMutex
	senders map[string]Sender
}

func NewRegistry() *Registry {
	return &Registry{senders: make(map[string]Sender)}
}

func (r *Registry) Register(s Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senders[s.Name()] = s
}

func (r *Registry) Get(name string) Sender {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.senders[name]
}

// Primary returns the sender used for member SMS: twilio when configured,
// else the log sender.
func (r *Registry) Primary() Sender {
	if s := r.Get("twilio"); s != nil {
		return s
	}
	if s := r.Get("log"); s != nil {
		return s
	}
	return LogSender{}
}

// Mirror sends body to the named broadcast sender (e.g. the house Slack
// channel) if one is registered; missing mirrors are not an error.
func (r *Registry) Mirror(ctx context.Context, name, body string) error {
	s := r.Get(name)
	if s == nil {
		return nil
	}
	return s.Send(ctx, "", body)
}

// Batch dispatches all messages through sender with bounded parallelism.
// Results come back in input order; a failed send is recorded and logged but
// never cancels, retries, or blocks the rest of the batch.
func Batch(ctx context.Context, sender Sender, msgs []Message) []Result {
	results := make([]Result, len(msgs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(models.DefaultNotifyConcurrency)
	for i, m := range msgs {
		g.Go(func() error {
			if err := sender.Send(ctx, m.To, m.Body); err != nil {
				slog.Error("notification failed", "sender", sender.Name(), "to", m.To, "err", err)
				results[i] = Result{To: m.To, Delivered: false, Error: err.Error()}
				return nil // collected, not propagated
			}
			results[i] = Result{To: m.To, Delivered: true}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// LogSender writes messages to the log instead of sending them; the default
// in dev and tests.
type LogSender struct{}

func (LogSender) Name() string { return "log" }

func (LogSender) Send(_ context.Context, to, body string) error {
	slog.Info("notification", "to", to, "body", body)
	return nil
}

// FromEnv builds the registry from environment configuration: Twilio when the
// account credentials are set, an optional Slack mirror, and always the log
// sender.
func FromEnv(getenv func(string) string) *Registry {
	reg := NewRegistry()
	reg.Register(LogSender{})
	if sid := getenv("TWILIO_ACCOUNT_SID"); sid != "" {
		reg.Register(&TwilioSender{
			AccountSID: sid,
			AuthToken:  getenv("TWILIO_AUTH_TOKEN"),
			From:       getenv("TWILIO_FROM_NUMBER"),
		})
	}
	if u := getenv("SLACK_WEBHOOK_URL"); u != "" {
		reg.Register(SlackWebhook{WebhookURL: u})
	}
	return reg
}

// errMissingConfig standardizes sender misconfiguration errors.
func errMissingConfig(sender, field string) error {
	return fmt.Errorf("%s: %s not set", sender, field)
}

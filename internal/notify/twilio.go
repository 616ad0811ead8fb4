package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TwilioSender delivers SMS through the Twilio Messages REST endpoint.
type TwilioSender struct {
	AccountSID string
	AuthToken  string
	From       string       // E.164 sending number
	BaseURL    string       // override for tests; default Twilio API
	HTTPClient *http.Client // optional; nil uses a 10s-timeout client
}

func (t *TwilioSender) Name() string { return "twilio" }

func (t *TwilioSender) client() *http.Client {
	if t.HTTPClient != nil {
		return t.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (t *TwilioSender) endpoint() string {
	base := t.BaseURL
	if base == "" {
		base = "https://api.twilio.com"
	}
	return base + "/2010-04-01/Accounts/" + url.PathEscape(t.AccountSID) + "/Messages.json"
}

func (t *TwilioSender) Send(ctx context.Context, to, body string) error {
	if t.AccountSID == "" || t.AuthToken == "" {
		return errMissingConfig("twilio", "account credentials")
	}
	if t.From == "" {
		return errMissingConfig("twilio", "from number")
	}
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.From)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.AccountSID, t.AuthToken)

	resp, err := t.client().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("twilio returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}

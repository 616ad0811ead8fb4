package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNew(t *testing.T) {
	c := New("http://localhost:3917", "")
	if c.BaseURL != "http://localhost:3917" || c.APIKey != "" {
		t.Errorf("New: %+v", c)
	}
	c2 := New("http://localhost:3917", "secret")
	if c2.APIKey != "secret" {
		t.Errorf("New with key: %+v", c2)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	ok, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if !ok {
		t.Fatal("Health: expected ok true")
	}
}

func TestSchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedule" || r.Method != http.MethodGet {
			t.Errorf("request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"onDuty":{"name":"Alice","phone":"+1"},"lastWeek":{"name":"Carol","phone":"+3"},"team":[],"pointer":0,"penaltyInfo":{"status":"none"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	sched, err := c.Schedule(context.Background())
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if sched.OnDuty.Name != "Alice" || sched.PenaltyInfo.Status != "none" {
		t.Errorf("Schedule: %+v", sched)
	}
}

func TestSchedule_error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"roster not provisioned"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.Schedule(context.Background())
	if err == nil {
		t.Fatal("expected error from 500")
	}
}

func TestReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/report" || r.Method != http.MethodPost {
			t.Errorf("request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Recorded missed duty"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	rep, err := c.Report(context.Background())
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.Message == "" {
		t.Fatal("Report: expected message")
	}
}

func TestClient_setsAPIKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "mykey")
	_, _ = c.Health(context.Background())
	if gotKey != "mykey" {
		t.Errorf("X-API-Key: got %q", gotKey)
	}
}

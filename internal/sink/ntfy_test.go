package sink_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"beacon/internal/config"
	"beacon/internal/notify"
	"beacon/internal/sink"
)

type captured struct {
	body     string
	title    string
	tags     string
	priority string
}

func newNtfyTestServer(t *testing.T, out *[]captured) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		*out = append(*out, captured{
			body:     string(body),
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
		})
		w.WriteHeader(http.StatusOK)
	}))
}

func ntfyConfig(topic string) *config.Config {
	cfg := config.Default()
	cfg.Ntfy.Topic = topic
	cfg.Ntfy.Info = true
	cfg.Ntfy.Errors = true
	return &cfg
}

func TestNewNtfyNilWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	if s := sink.NewNtfy(&cfg); s != nil {
		t.Fatal("expected nil sink without topic")
	}
}

func TestNtfyDeliverSetsHeaders(t *testing.T) {
	var requests []captured
	server := newNtfyTestServer(t, &requests)
	defer server.Close()

	s := sink.NewNtfy(ntfyConfig(server.URL))
	if s == nil {
		t.Fatal("expected sink")
	}

	record, err := notify.Resolve(notify.Notification{
		Level: notify.LevelError,
		Title: "Disk failure",
		Body:  "disconnected",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if err := s.Deliver(context.Background(), "uid-1", record); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}
	got := requests[0]
	if got.body != "disconnected" {
		t.Fatalf("unexpected body %q", got.body)
	}
	if got.title != "Disk failure" {
		t.Fatalf("unexpected title %q", got.title)
	}
	if got.tags != "beacon,error" {
		t.Fatalf("unexpected tags %q", got.tags)
	}
	if got.priority != "high" {
		t.Fatalf("expected high priority for error level, got %q", got.priority)
	}
}

func TestNtfyDeliverSkipsDisabledLevel(t *testing.T) {
	var requests []captured
	server := newNtfyTestServer(t, &requests)
	defer server.Close()

	cfg := ntfyConfig(server.URL)
	cfg.Ntfy.Success = false
	s := sink.NewNtfy(cfg)

	record, err := notify.Resolve(notify.Notification{Level: notify.LevelSuccess, Body: "done"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if err := s.Deliver(context.Background(), "uid-1", record); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("expected no requests for disabled level, got %d", len(requests))
	}
}

func TestNtfyDeliverReportsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic over quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := sink.NewNtfy(ntfyConfig(server.URL))
	record, err := notify.Resolve(notify.Notification{Level: notify.LevelInfo, Body: "hello"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if err := s.Deliver(context.Background(), "uid-1", record); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

package center_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"beacon/internal/center"
	"beacon/internal/notify"
	"beacon/internal/testsupport"
)

type recordingSink struct {
	mu        sync.Mutex
	delivered []string
	fail      bool
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Deliver(_ context.Context, uid string, _ notify.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("delivery refused")
	}
	s.delivered = append(s.delivered, uid)
	return nil
}

func mustCenter(t *testing.T, opts ...center.Option) *center.Center {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	c, err := center.New(store, nil, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestShowAssignsUIDAndDeliversToSinks(t *testing.T) {
	snk := &recordingSink{}
	c := mustCenter(t, center.WithSinks(snk))
	ctx := context.Background()

	record, err := notify.Resolve(notify.Notification{Level: notify.LevelSuccess, Body: "done"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	uid, err := c.Show(ctx, record)
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if uid == "" {
		t.Fatal("expected assigned uid")
	}
	if len(snk.delivered) != 1 || snk.delivered[0] != uid {
		t.Fatalf("expected sink delivery for %q, got %v", uid, snk.delivered)
	}

	active, err := c.Active(ctx)
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if len(active) != 1 || active[0].UID != uid {
		t.Fatalf("expected one active record: %#v", active)
	}
}

func TestShowSucceedsWhenSinkFails(t *testing.T) {
	snk := &recordingSink{fail: true}
	c := mustCenter(t, center.WithSinks(snk))

	record, err := notify.Resolve(notify.Notification{Level: notify.LevelInfo, Body: "hi"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, err := c.Show(context.Background(), record); err != nil {
		t.Fatalf("Show must not fail on sink error, got %v", err)
	}
}

func TestCloseUnknownUIDIsNoop(t *testing.T) {
	c := mustCenter(t)
	if err := c.Close(context.Background(), "never-issued"); err != nil {
		t.Fatalf("expected benign no-op, got %v", err)
	}
}

func TestManualCloseBeatsAutoDismiss(t *testing.T) {
	c := mustCenter(t)
	ctx := context.Background()

	record, err := notify.Resolve(notify.Notification{
		Level:       notify.LevelInfo,
		AutoDismiss: notify.After(50 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	uid, err := c.Show(ctx, record)
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}

	if err := c.Close(ctx, uid); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	c.Start(ctx)
	defer c.Stop()
	time.Sleep(1200 * time.Millisecond)

	history, err := c.History(ctx, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one terminal record, got %d", len(history))
	}
	if history[0].Status != center.StatusDismissed {
		t.Fatalf("manual dismissal must not be overwritten by the sweep, got %q", history[0].Status)
	}
}

func TestSweepExpiresOverdueNotifications(t *testing.T) {
	c := mustCenter(t)
	ctx := context.Background()

	record, err := notify.Resolve(notify.Notification{
		Level:       notify.LevelInfo,
		AutoDismiss: notify.After(10 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	uid, err := c.Show(ctx, record)
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}

	c.Start(ctx)
	defer c.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		active, err := c.Active(ctx)
		if err != nil {
			t.Fatalf("Active failed: %v", err)
		}
		if len(active) == 0 {
			history, err := c.History(ctx, 0)
			if err != nil {
				t.Fatalf("History failed: %v", err)
			}
			if len(history) != 1 || history[0].UID != uid || history[0].Status != center.StatusExpired {
				t.Fatalf("unexpected history: %#v", history)
			}
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatal("notification never expired")
}

func TestStickyNotificationSurvivesSweep(t *testing.T) {
	c := mustCenter(t)
	ctx := context.Background()

	record, err := notify.Resolve(notify.Notification{
		Level:       notify.LevelError,
		AutoDismiss: notify.Sticky(),
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, err := c.Show(ctx, record); err != nil {
		t.Fatalf("Show failed: %v", err)
	}

	c.Start(ctx)
	defer c.Stop()
	time.Sleep(1200 * time.Millisecond)

	active, err := c.Active(ctx)
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected sticky record to stay active, got %d active", len(active))
	}
}

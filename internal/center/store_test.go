package center_test

import (
	"context"
	"testing"
	"time"

	"beacon/internal/center"
	"beacon/internal/notify"
	"beacon/internal/testsupport"
)

func newRecord(uid string, autoDismiss time.Duration) *center.Record {
	now := time.Now().UTC()
	record := &center.Record{
		UID:         uid,
		Level:       notify.LevelInfo,
		Body:        "hello",
		Position:    notify.PositionBottomRight,
		Dismissible: true,
		AutoDismiss: autoDismiss,
		Status:      center.StatusActive,
		CreatedAt:   now,
	}
	if autoDismiss > 0 {
		expires := now.Add(autoDismiss)
		record.ExpiresAt = &expires
	}
	return record
}

func TestInsertAndGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	record := newRecord("uid-1", 2*time.Second)
	record.Title = "Greeting"
	if err := store.Insert(ctx, record); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	fetched, err := store.Get(ctx, "uid-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected record")
	}
	if fetched.Level != notify.LevelInfo || fetched.Title != "Greeting" || fetched.Body != "hello" {
		t.Fatalf("unexpected record: %#v", fetched)
	}
	if fetched.AutoDismiss != 2*time.Second {
		t.Fatalf("unexpected auto-dismiss: %s", fetched.AutoDismiss)
	}
	if fetched.ExpiresAt == nil {
		t.Fatal("expected expiry for non-sticky record")
	}
	if !fetched.Active() {
		t.Fatalf("expected active status, got %q", fetched.Status)
	}
}

func TestGetUnknownUIDReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	record, err := store.Get(context.Background(), "no-such-uid")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil for unknown uid, got %#v", record)
	}
}

func TestTransitionOnlyOnce(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.Insert(ctx, newRecord("uid-1", 0)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	ok, err := store.Transition(ctx, "uid-1", center.StatusDismissed, time.Now())
	if err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	if !ok {
		t.Fatal("expected first transition to apply")
	}

	ok, err = store.Transition(ctx, "uid-1", center.StatusExpired, time.Now())
	if err != nil {
		t.Fatalf("second Transition failed: %v", err)
	}
	if ok {
		t.Fatal("expected second transition to be a no-op")
	}

	fetched, err := store.Get(ctx, "uid-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched.Status != center.StatusDismissed {
		t.Fatalf("expected dismissed to stick, got %q", fetched.Status)
	}
	if fetched.DismissedAt == nil {
		t.Fatal("expected dismissed_at to be recorded")
	}
}

func TestTransitionUnknownUIDIsNoop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ok, err := store.Transition(context.Background(), "ghost", center.StatusDismissed, time.Now())
	if err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	if ok {
		t.Fatal("expected no-op for unknown uid")
	}
}

func TestExpireOverdue(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	overdue := newRecord("uid-overdue", time.Second)
	past := time.Now().UTC().Add(-time.Minute)
	overdue.ExpiresAt = &past
	if err := store.Insert(ctx, overdue); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, newRecord("uid-sticky", 0)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, newRecord("uid-fresh", time.Hour)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	expired, err := store.ExpireOverdue(ctx, time.Now())
	if err != nil {
		t.Fatalf("ExpireOverdue failed: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected 1 expired record, got %d", expired)
	}

	active, err := store.Active(ctx)
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected two active records, got %d", len(active))
	}
}

func TestHistoryAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for _, uid := range []string{"uid-1", "uid-2", "uid-3"} {
		if err := store.Insert(ctx, newRecord(uid, 0)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	for _, uid := range []string{"uid-1", "uid-2"} {
		if _, err := store.Transition(ctx, uid, center.StatusDismissed, time.Now()); err != nil {
			t.Fatalf("Transition failed: %v", err)
		}
	}

	history, err := store.History(ctx, 1)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected limit to apply, got %d records", len(history))
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Active != 1 || stats.Dismissed != 2 || stats.Total != 3 {
		t.Fatalf("unexpected stats: %#v", stats)
	}

	removed, err := store.ClearHistory(ctx)
	if err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
}

func TestPruneHistoryKeepsRecent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	old := newRecord("uid-old", 0)
	old.CreatedAt = time.Now().UTC().AddDate(0, 0, -30)
	if err := store.Insert(ctx, old); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := store.Transition(ctx, "uid-old", center.StatusDismissed, time.Now()); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}

	recent := newRecord("uid-recent", 0)
	if err := store.Insert(ctx, recent); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := store.Transition(ctx, "uid-recent", center.StatusDismissed, time.Now()); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}

	removed, err := store.PruneHistory(ctx, time.Now().UTC().AddDate(0, 0, -14))
	if err != nil {
		t.Fatalf("PruneHistory failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 pruned, got %d", removed)
	}
}

package notify_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"beacon/internal/notify"
)

type fakeSurface struct {
	shown   []notify.Record
	closed  []string
	showErr error
	next    int
}

func (s *fakeSurface) Show(_ context.Context, record notify.Record) (string, error) {
	if s.showErr != nil {
		return "", s.showErr
	}
	s.next++
	s.shown = append(s.shown, record)
	return fmt.Sprintf("uid-%d", s.next), nil
}

func (s *fakeSurface) Close(_ context.Context, uid string) error {
	s.closed = append(s.closed, uid)
	return nil
}

func TestNotifyForwardsResolvedRecord(t *testing.T) {
	surface := &fakeSurface{}
	notifier, err := notify.New(surface, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	uid, err := notifier.Notify(context.Background(), notify.Notification{
		Level: notify.LevelError,
		Body:  "disconnected",
	})
	if err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if uid != "uid-1" {
		t.Fatalf("expected surface-assigned uid, got %q", uid)
	}
	if len(surface.shown) != 1 {
		t.Fatalf("expected one shown record, got %d", len(surface.shown))
	}
	record := surface.shown[0]
	if record.AutoDismiss != 4*time.Second || record.Position != notify.PositionBottomRight || !record.Dismissible {
		t.Fatalf("unexpected resolved record: %#v", record)
	}
}

func TestNotifyRejectsInvalidLevelBeforeSurface(t *testing.T) {
	surface := &fakeSurface{}
	notifier, err := notify.New(surface, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = notifier.Notify(context.Background(), notify.Notification{Level: "warning"})
	if !errors.Is(err, notify.ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if len(surface.shown) != 0 {
		t.Fatal("invalid level must not reach the surface")
	}
}

func TestHideForwardsUID(t *testing.T) {
	surface := &fakeSurface{}
	notifier, err := notify.New(surface, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := notifier.Hide(context.Background(), "uid-42"); err != nil {
		t.Fatalf("Hide failed: %v", err)
	}
	if len(surface.closed) != 1 || surface.closed[0] != "uid-42" {
		t.Fatalf("unexpected closed uids: %v", surface.closed)
	}
}

func TestHideEmptyUIDIsNoop(t *testing.T) {
	surface := &fakeSurface{}
	notifier, err := notify.New(surface, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := notifier.Hide(context.Background(), "  "); err != nil {
		t.Fatalf("expected no-op for empty uid, got %v", err)
	}
	if len(surface.closed) != 0 {
		t.Fatal("empty uid must not reach the surface")
	}
}

func TestNewRequiresSurface(t *testing.T) {
	if _, err := notify.New(nil, nil); err == nil {
		t.Fatal("expected error when surface is nil")
	}
}

package ipc_test

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"beacon/internal/center"
	"beacon/internal/daemon"
	"beacon/internal/ipc"
	"beacon/internal/logging"
	"beacon/internal/testsupport"
)

func startServer(t *testing.T) (*ipc.Client, func() bool) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	logger := logging.NewNop()
	ctr, err := center.New(store, logger)
	if err != nil {
		t.Fatalf("center.New: %v", err)
	}

	d, err := daemon.New(cfg, store, ctr, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	var stopped atomic.Bool
	socket := filepath.Join(cfg.Paths.DataDir, "beacond.sock")
	server, err := ipc.NewServer(context.Background(), socket, d, func() { stopped.Store(true) }, logger)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	server.Serve()
	t.Cleanup(server.Close)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return client, stopped.Load
}

func TestPostAndList(t *testing.T) {
	client, _ := startServer(t)

	uid, err := client.Post(ipc.PostRequest{
		Level: "success",
		Title: "Encode complete",
		Body:  "movie.mkv finished",
	})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if uid == "" {
		t.Fatal("expected non-empty uid")
	}

	active, err := client.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active notification, got %d", len(active))
	}
	got := active[0]
	if got.UID != uid {
		t.Errorf("uid = %q, want %q", got.UID, uid)
	}
	if got.Level != "success" {
		t.Errorf("level = %q, want success", got.Level)
	}
	if got.Position != "bottom-right" {
		t.Errorf("position = %q, want bottom-right", got.Position)
	}
	if !got.Dismissible {
		t.Error("expected notification to be dismissible")
	}
	if got.AutoDismissMS != 2000 {
		t.Errorf("autoDismissMS = %d, want 2000", got.AutoDismissMS)
	}
}

func TestPostInvalidLevel(t *testing.T) {
	client, _ := startServer(t)

	if _, err := client.Post(ipc.PostRequest{Level: "warning", Title: "nope"}); err == nil {
		t.Fatal("expected error for invalid level")
	}

	active, err := client.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no notifications after failed post, got %d", len(active))
	}
}

func TestPostNormalizesLevel(t *testing.T) {
	client, _ := startServer(t)

	for _, raw := range []string{"INFO", " error ", "Success"} {
		if _, err := client.Post(ipc.PostRequest{Level: raw, Title: "Disc detected"}); err != nil {
			t.Errorf("Post(level=%q): %v", raw, err)
		}
	}

	active, err := client.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 3 {
		t.Fatalf("expected 3 active notifications, got %d", len(active))
	}
	for _, notification := range active {
		switch notification.Level {
		case "info", "error", "success":
		default:
			t.Errorf("stored level = %q, want normalized form", notification.Level)
		}
	}
}

func TestHide(t *testing.T) {
	client, _ := startServer(t)

	uid, err := client.Post(ipc.PostRequest{Level: "info", Title: "Ripping disc"})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	hidden, err := client.Hide(uid)
	if err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if !hidden {
		t.Error("expected hide of active notification to report true")
	}

	// Unknown uids are a benign no-op.
	hidden, err = client.Hide("no-such-uid")
	if err != nil {
		t.Fatalf("Hide unknown uid: %v", err)
	}
	if hidden {
		t.Error("expected hide of unknown uid to report false")
	}

	active, err := client.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active notifications, got %d", len(active))
	}
}

func TestHistoryAndClear(t *testing.T) {
	client, _ := startServer(t)

	uid, err := client.Post(ipc.PostRequest{Level: "error", Title: "Encode failed"})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if _, err := client.Hide(uid); err != nil {
		t.Fatalf("Hide: %v", err)
	}

	history, err := client.History(10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].Status != "dismissed" {
		t.Errorf("status = %q, want dismissed", history[0].Status)
	}
	if history[0].DismissedAt == "" {
		t.Error("expected dismissed_at timestamp")
	}

	removed, err := client.ClearHistory()
	if err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	history, err = client.History(10)
	if err != nil {
		t.Fatalf("History after clear: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(history))
	}
}

func TestStatusAndStop(t *testing.T) {
	client, stopped := startServer(t)

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Running {
		t.Error("expected daemon to report running")
	}
	if status.SocketPath == "" || status.DatabasePath == "" {
		t.Error("expected status to include socket and database paths")
	}
	if status.Total != 0 {
		t.Errorf("total = %d, want 0", status.Total)
	}

	ok, err := client.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if !ok {
		t.Error("expected stop to be acknowledged")
	}
	deadline := time.Now().Add(time.Second)
	for !stopped() {
		if time.Now().After(deadline) {
			t.Fatal("stop callback was not invoked")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestNotificationRPC(t *testing.T) {
	client, _ := startServer(t)

	uid, err := client.TestNotification()
	if err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if uid == "" {
		t.Fatal("expected non-empty uid")
	}

	active, err := client.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active notification, got %d", len(active))
	}
	if active[0].Level != "info" {
		t.Errorf("level = %q, want info", active[0].Level)
	}
}

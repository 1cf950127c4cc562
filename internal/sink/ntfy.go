package sink

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"beacon/internal/config"
	"beacon/internal/notify"
)

const userAgent = "Beacon/0.1.0"

// Ntfy forwards selected notification levels to an ntfy topic.
type Ntfy struct {
	endpoint string
	client   *http.Client
	levels   map[notify.Level]bool
}

// NewNtfy builds an ntfy sink from configuration. Returns nil when no topic
// is configured.
func NewNtfy(cfg *config.Config) *Ntfy {
	topic := strings.TrimSpace(cfg.Ntfy.Topic)
	if topic == "" {
		return nil
	}

	timeout := time.Duration(cfg.Ntfy.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Ntfy{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		levels: map[notify.Level]bool{
			notify.LevelInfo:    cfg.Ntfy.Info,
			notify.LevelSuccess: cfg.Ntfy.Success,
			notify.LevelError:   cfg.Ntfy.Errors,
		},
	}
}

func (n *Ntfy) Name() string { return "ntfy" }

// Deliver posts the notification body with ntfy's header wire format. Levels
// not enabled in configuration are skipped silently.
func (n *Ntfy) Deliver(ctx context.Context, _ string, record notify.Record) error {
	if n == nil || n.client == nil {
		return nil
	}
	if !n.levels[record.Level] {
		return nil
	}

	title := strings.TrimSpace(record.Title)
	if title == "" {
		title = "Beacon - " + strings.ToUpper(string(record.Level)[:1]) + string(record.Level)[1:]
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(record.Body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Title", title)
	req.Header.Set("Tags", "beacon,"+string(record.Level))
	if record.Level == notify.LevelError {
		req.Header.Set("Priority", "high")
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

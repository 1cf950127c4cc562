package center

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"beacon/internal/logging"
	"beacon/internal/notify"
	"beacon/internal/sink"
)

const sweepInterval = time.Second

// Center implements notify.Surface: it assigns uids, persists notifications,
// expires them when their auto-dismiss elapses, and forwards shown records to
// delivery sinks.
type Center struct {
	store         *Store
	sinks         []sink.Sink
	logger        *slog.Logger
	retentionDays int

	mu      sync.Mutex
	quit    chan struct{}
	done    chan struct{}
	running bool
}

// Option configures a Center.
type Option func(*Center)

// WithSinks attaches delivery sinks.
func WithSinks(sinks ...sink.Sink) Option {
	return func(c *Center) {
		c.sinks = append(c.sinks, sinks...)
	}
}

// WithRetentionDays bounds how long terminal notifications are kept. Zero
// keeps them forever.
func WithRetentionDays(days int) Option {
	return func(c *Center) {
		c.retentionDays = days
	}
}

// New constructs a Center over the given store.
func New(store *Store, logger *slog.Logger, opts ...Option) (*Center, error) {
	if store == nil {
		return nil, errors.New("center requires a store")
	}
	c := &Center{
		store:  store,
		logger: logging.NewComponentLogger(logger, "center"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Show persists the record under a fresh uid and forwards it to the sinks.
// Sink failures are logged; the show succeeds once the record is stored.
func (c *Center) Show(ctx context.Context, record notify.Record) (string, error) {
	uid := uuid.NewString()
	now := time.Now().UTC()

	stored := &Record{
		UID:         uid,
		Level:       record.Level,
		Title:       record.Title,
		Body:        record.Body,
		Action:      record.Action,
		Position:    record.Position,
		Dismissible: record.Dismissible,
		AutoDismiss: record.AutoDismiss,
		Status:      StatusActive,
		CreatedAt:   now,
	}
	if !record.Sticky() {
		expires := now.Add(record.AutoDismiss)
		stored.ExpiresAt = &expires
	}

	if err := c.store.Insert(ctx, stored); err != nil {
		return "", err
	}

	for _, s := range c.sinks {
		if err := s.Deliver(ctx, uid, record); err != nil {
			logging.WarnWithContext(c.logger, "sink delivery failed", "sink_delivery_failed",
				logging.Error(err),
				logging.String("sink", s.Name()),
				logging.String(logging.FieldUID, uid),
				logging.String(logging.FieldImpact, "notification stored but not forwarded"),
				logging.String(logging.FieldErrorHint, "check the sink's configuration"))
		}
	}

	return uid, nil
}

// Close dismisses the notification shown under uid. Unknown or already
// terminal uids are a no-op.
func (c *Center) Close(ctx context.Context, uid string) error {
	dismissed, err := c.store.Transition(ctx, uid, StatusDismissed, time.Now().UTC())
	if err != nil {
		return err
	}
	if dismissed {
		c.logger.Debug("notification dismissed", logging.String(logging.FieldUID, uid))
	}
	return nil
}

// Dismiss is Close returning whether a record actually transitioned, for
// callers that report the distinction.
func (c *Center) Dismiss(ctx context.Context, uid string) (bool, error) {
	return c.store.Transition(ctx, uid, StatusDismissed, time.Now().UTC())
}

// Start launches the expiry sweep. Safe to call once per Center.
func (c *Center) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.quit = make(chan struct{})
	c.done = make(chan struct{})
	c.running = true
	go c.sweepLoop(ctx, c.quit, c.done)
	c.logger.Debug("expiry sweep started")
}

// Stop halts the expiry sweep and waits for it to exit.
func (c *Center) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	close(c.quit)
	done := c.done
	c.quit = nil
	c.done = nil
	c.running = false
	c.mu.Unlock()
	<-done
}

func (c *Center) sweepLoop(ctx context.Context, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	var lastPrune time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-quit:
			return
		case now := <-ticker.C:
			expired, err := c.store.ExpireOverdue(ctx, now.UTC())
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logging.WarnWithContext(c.logger, "expiry sweep failed", "expiry_sweep_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "auto-dismiss delayed until next sweep"),
					logging.String(logging.FieldErrorHint, "check database health"))
				continue
			}
			if expired > 0 {
				c.logger.Debug("notifications expired", logging.Int64("count", expired))
			}
			if c.retentionDays > 0 && now.Sub(lastPrune) >= time.Hour {
				lastPrune = now
				cutoff := now.UTC().AddDate(0, 0, -c.retentionDays)
				if _, err := c.store.PruneHistory(ctx, cutoff); err != nil && ctx.Err() == nil {
					logging.WarnWithContext(c.logger, "history prune failed", "history_prune_failed",
						logging.Error(err),
						logging.String(logging.FieldImpact, "old notifications accumulate"),
						logging.String(logging.FieldErrorHint, "check database health"))
				}
			}
		}
	}
}

// Active returns shown notifications ordered by creation time.
func (c *Center) Active(ctx context.Context) ([]*Record, error) {
	return c.store.Active(ctx)
}

// History returns terminal notifications, newest first.
func (c *Center) History(ctx context.Context, limit int) ([]*Record, error) {
	return c.store.History(ctx, limit)
}

// ClearHistory removes terminal notifications.
func (c *Center) ClearHistory(ctx context.Context) (int64, error) {
	return c.store.ClearHistory(ctx)
}

// Stats aggregates stored notification counts.
func (c *Center) Stats(ctx context.Context) (Stats, error) {
	return c.store.Stats(ctx)
}

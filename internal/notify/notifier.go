package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"beacon/internal/logging"
)

// Surface is the display layer a Notifier forwards resolved records to. It
// owns notification storage, uid assignment, and auto-dismiss timers.
//
// Close with an unknown or already-dismissed uid must return nil: removal
// requests may race with auto-dismissal.
type Surface interface {
	Show(ctx context.Context, record Record) (string, error)
	Close(ctx context.Context, uid string) error
}

// Notifier presents leveled transient notifications on a Surface.
type Notifier struct {
	surface Surface
	logger  *slog.Logger
}

// New constructs a Notifier over the given surface.
func New(surface Surface, logger *slog.Logger) (*Notifier, error) {
	if surface == nil {
		return nil, errors.New("notifier requires a surface")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Notifier{
		surface: surface,
		logger:  logging.NewComponentLogger(logger, "notifier"),
	}, nil
}

// Notify resolves the notification against its level defaults and shows it on
// the surface. It fails immediately with an InvalidLevelError for any level
// outside {info, success, error}. The returned uid addresses the
// notification for a later Hide.
func (n *Notifier) Notify(ctx context.Context, data Notification) (string, error) {
	record, err := Resolve(data)
	if err != nil {
		return "", err
	}

	uid, err := n.surface.Show(ctx, record)
	if err != nil {
		return "", fmt.Errorf("show notification: %w", err)
	}

	n.logger.Debug("notification shown",
		logging.String(logging.FieldUID, uid),
		logging.String("level", string(record.Level)),
		logging.Duration("auto_dismiss", record.AutoDismiss))
	return uid, nil
}

// Hide removes the notification previously shown under uid. Unknown, stale,
// or empty uids are a no-op, never an error.
func (n *Notifier) Hide(ctx context.Context, uid string) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil
	}
	if err := n.surface.Close(ctx, uid); err != nil {
		return fmt.Errorf("hide notification: %w", err)
	}
	return nil
}

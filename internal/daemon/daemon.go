package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/gofrs/flock"

	"beacon/internal/center"
	"beacon/internal/config"
	"beacon/internal/logging"
	"beacon/internal/notify"
)

// Daemon owns the notification center runtime and enforces single-instance
// execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *center.Store
	center   *center.Center
	notifier *notify.Notifier
	monitor  *deviceMonitor

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running          bool
	PID              int
	SocketPath       string
	DatabasePath     string
	LockPath         string
	DeviceMonitor    bool
	NotificationData center.Stats
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *center.Store, ctr *center.Center, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || ctr == nil {
		return nil, errors.New("daemon requires config, store, and center")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	notifier, err := notify.New(ctr, logger)
	if err != nil {
		return nil, err
	}

	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		center:   ctr,
		notifier: notifier,
		lockPath: cfg.LockPath(),
		lock:     flock.New(cfg.LockPath()),
	}
	if cfg.Devices.Enabled {
		d.monitor = newDeviceMonitor(logger, d.postDeviceNotification)
	}
	return d, nil
}

// Start acquires the daemon lock and launches the expiry sweep and device
// monitor.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another beacon daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	d.center.Start(d.ctx)
	if d.monitor != nil {
		if err := d.monitor.Start(d.ctx); err != nil {
			logging.WarnWithContext(d.logger, "device monitor unavailable", "device_monitor_unavailable",
				logging.Error(err),
				logging.String(logging.FieldImpact, "device attach notifications disabled"),
				logging.String(logging.FieldErrorHint, "check netlink socket permissions"))
		}
	}

	d.running.Store(true)
	d.logger.Info("beacon daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop halts background processing and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.monitor != nil {
		d.monitor.Stop()
	}
	d.center.Stop()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("beacon daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Post shows a notification and returns its uid.
func (d *Daemon) Post(ctx context.Context, data notify.Notification) (string, error) {
	return d.notifier.Notify(ctx, data)
}

// Hide removes the notification shown under uid. Reports whether a record
// actually transitioned; unknown uids return (false, nil).
func (d *Daemon) Hide(ctx context.Context, uid string) (bool, error) {
	return d.center.Dismiss(ctx, uid)
}

// Active lists shown notifications.
func (d *Daemon) Active(ctx context.Context) ([]*center.Record, error) {
	return d.center.Active(ctx)
}

// History lists terminal notifications, newest first.
func (d *Daemon) History(ctx context.Context, limit int) ([]*center.Record, error) {
	return d.center.History(ctx, limit)
}

// ClearHistory removes terminal notifications.
func (d *Daemon) ClearHistory(ctx context.Context) (int64, error) {
	return d.center.ClearHistory(ctx)
}

// TestNotification posts a test notification through the full pipeline.
func (d *Daemon) TestNotification(ctx context.Context) (string, error) {
	return d.Post(ctx, notify.Notification{
		Level: notify.LevelInfo,
		Title: "Beacon - Test",
		Body:  "Notification system test",
	})
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	stats, err := d.center.Stats(ctx)
	if err != nil {
		d.logger.Warn("stats unavailable", logging.Error(err))
	}
	return Status{
		Running:          d.running.Load(),
		PID:              os.Getpid(),
		SocketPath:       d.cfg.SocketPath(),
		DatabasePath:     d.cfg.DatabasePath(),
		LockPath:         d.lockPath,
		DeviceMonitor:    d.monitor.Running(),
		NotificationData: stats,
	}
}

func (d *Daemon) postDeviceNotification(ctx context.Context, device string) {
	uid, err := d.Post(ctx, notify.Notification{
		Level: notify.LevelInfo,
		Title: "Device attached",
		Body:  device,
	})
	if err != nil {
		logging.WarnWithContext(d.logger, "device notification failed", "device_notification_failed",
			logging.Error(err),
			logging.String("device", device),
			logging.String(logging.FieldImpact, "device attach not announced"),
			logging.String(logging.FieldErrorHint, "check database health"))
		return
	}
	d.logger.Info("device attach announced",
		logging.String(logging.FieldUID, uid),
		logging.String("device", device))
}

// Package daemonrun wires together the beacond runtime: logging, the
// notification store, delivery sinks, the daemon, and the IPC server.
package daemonrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"beacon/internal/center"
	"beacon/internal/config"
	"beacon/internal/daemon"
	"beacon/internal/ipc"
	"beacon/internal/logging"
	"beacon/internal/preflight"
	"beacon/internal/sink"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
}

// Run starts the beacond runtime loop and blocks until shutdown.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logPath := filepath.Join(cfg.Paths.LogDir, "beacond.log")
	level := opts.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		Development:      opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	for _, result := range preflight.RunAll(signalCtx, cfg) {
		if result.Passed {
			continue
		}
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldImpact, "some notifications may not be delivered"),
			logging.String(logging.FieldErrorHint, "fix the reported issue and restart the daemon"))
	}

	pidPath := filepath.Join(cfg.Paths.LogDir, "beacond.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := center.OpenStore(cfg)
	if err != nil {
		logger.Error("open notification store", logging.Error(err))
		return err
	}
	defer store.Close()

	ctr, err := center.New(store, logger,
		center.WithSinks(sink.FromConfig(cfg)...),
		center.WithRetentionDays(cfg.History.RetentionDays))
	if err != nil {
		return fmt.Errorf("create notification center: %w", err)
	}

	d, err := daemon.New(cfg, store, ctr, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(signalCtx, cfg.SocketPath(), d, cancel, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		logger.Error("daemon start failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "daemon_start_failed"),
			logging.String(logging.FieldErrorHint, "check that no other beacond instance is running"),
			logging.String(logging.FieldImpact, "notifications will not be accepted"))
		return err
	}

	logger.Info("beacond ready",
		logging.String(logging.FieldEventType, "daemon_started"),
		logging.String("socket", cfg.SocketPath()),
		logging.String("database", cfg.DatabasePath()))

	<-signalCtx.Done()
	logger.Info("beacond shutting down")
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

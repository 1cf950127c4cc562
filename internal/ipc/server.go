package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"
	"time"

	"beacon/internal/center"
	"beacon/internal/daemon"
	"beacon/internal/logging"
	"beacon/internal/notify"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path. The stop
// callback is invoked when a client requests daemon shutdown.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, stop func(), logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, stop: stop, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Beacon", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				logging.WarnWithContext(s.logger, "accept failed", "ipc_accept_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "IPC clients may fail to connect"),
					logging.String(logging.FieldErrorHint, "check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		logging.WarnWithContext(s.logger, "failed to remove socket", "ipc_socket_cleanup_failed",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "stale IPC socket may block future starts"),
			logging.String(logging.FieldErrorHint, "remove the socket file manually"))
	}
}

type service struct {
	daemon *daemon.Daemon
	stop   func()
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func convertRecord(record *center.Record) Notification {
	if record == nil {
		return Notification{}
	}
	n := Notification{
		UID:           record.UID,
		Level:         string(record.Level),
		Title:         record.Title,
		Body:          record.Body,
		Action:        record.Action,
		Position:      string(record.Position),
		Dismissible:   record.Dismissible,
		AutoDismissMS: record.AutoDismiss.Milliseconds(),
		Status:        string(record.Status),
		CreatedAt:     record.CreatedAt.Format(time.RFC3339),
	}
	if record.DismissedAt != nil {
		n.DismissedAt = record.DismissedAt.Format(time.RFC3339)
	}
	return n
}

func convertRecords(records []*center.Record) []Notification {
	out := make([]Notification, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		out = append(out, convertRecord(record))
	}
	return out
}

func (s *service) Post(req PostRequest, resp *PostResponse) error {
	level, ok := notify.ParseLevel(req.Level)
	if !ok {
		// Let the notifier reject it so the caller sees the typed error
		// carrying the original input.
		level = notify.Level(req.Level)
	}
	data := notify.Notification{
		Level:  level,
		Title:  req.Title,
		Body:   req.Body,
		Action: req.Action,
	}
	if req.Position != "" {
		position, ok := notify.ParsePosition(req.Position)
		if !ok {
			return fmt.Errorf("invalid position %q", req.Position)
		}
		data.Position = position
	}
	if req.Dismissible != nil {
		data.Dismissible = req.Dismissible
	}
	if req.AutoDismissMS != nil {
		data.AutoDismiss = notify.After(time.Duration(*req.AutoDismissMS) * time.Millisecond)
	}

	uid, err := s.daemon.Post(s.ctx, data)
	if err != nil {
		return err
	}
	resp.UID = uid
	s.log().Debug("notification posted via IPC",
		logging.String(logging.FieldUID, uid),
		logging.String("level", req.Level))
	return nil
}

func (s *service) Hide(req HideRequest, resp *HideResponse) error {
	hidden, err := s.daemon.Hide(s.ctx, req.UID)
	if err != nil {
		return err
	}
	resp.Hidden = hidden
	return nil
}

func (s *service) List(_ ListRequest, resp *ListResponse) error {
	records, err := s.daemon.Active(s.ctx)
	if err != nil {
		return err
	}
	resp.Notifications = convertRecords(records)
	return nil
}

func (s *service) History(req HistoryRequest, resp *HistoryResponse) error {
	records, err := s.daemon.History(s.ctx, req.Limit)
	if err != nil {
		return err
	}
	resp.Notifications = convertRecords(records)
	return nil
}

func (s *service) ClearHistory(_ ClearHistoryRequest, resp *ClearHistoryResponse) error {
	removed, err := s.daemon.ClearHistory(s.ctx)
	if err != nil {
		return err
	}
	resp.Removed = removed
	s.log().Info("notification history cleared",
		logging.String(logging.FieldEventType, "history_clear"),
		logging.Int64("removed_count", removed))
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.SocketPath = status.SocketPath
	resp.DatabasePath = status.DatabasePath
	resp.LockPath = status.LockPath
	resp.DeviceMonitor = status.DeviceMonitor
	resp.Active = status.NotificationData.Active
	resp.Dismissed = status.NotificationData.Dismissed
	resp.Expired = status.NotificationData.Expired
	resp.Total = status.NotificationData.Total
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.log().Info("daemon stop requested via IPC",
		logging.String(logging.FieldEventType, "daemon_stop"))
	if s.stop != nil {
		s.stop()
	}
	resp.Stopped = true
	return nil
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	uid, err := s.daemon.TestNotification(s.ctx)
	if err != nil {
		return err
	}
	resp.UID = uid
	return nil
}

package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"sift/internal/api"
	"sift/internal/daemon"
	"sift/internal/gallery"
	"sift/internal/logging"
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
// function is invoked when a client requests daemon shutdown.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, stop context.CancelFunc, logger *slog.Logger) (*Server, error) {
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
	svc := &service{daemon: d, stop: stop, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Sift", svc); err != nil {
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
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"),
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
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldEventType, "ipc_socket_cleanup_failed"),
			logging.String(logging.FieldErrorHint, "remove the socket file manually before restarting"))
	}
}

type service struct {
	daemon *daemon.Daemon
	stop   context.CancelFunc
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Scan(_ ScanRequest, resp *ScanResponse) error {
	s.log().Debug("scan requested")
	ingested, err := s.daemon.Scan(s.ctx)
	if err != nil {
		return codedError(CodeScan, err)
	}
	resp.Ingested = ingested
	s.log().Info("scan completed via IPC",
		logging.String(logging.FieldEventType, "scan"),
		logging.Int("ingested", ingested))
	return nil
}

func (s *service) Pending(req PendingRequest, resp *PendingResponse) error {
	if req.Limit < 0 {
		return invalidArgs(fmt.Sprintf("invalid limit %d", req.Limit))
	}
	photos, err := s.daemon.Pending(s.ctx, req.Limit)
	if err != nil {
		return codedError(CodeGetPhotos, err)
	}
	resp.Photos = api.NewPhotoViews(photos)
	return nil
}

func (s *service) Swipe(req SwipeRequest, resp *SwipeResponse) error {
	if req.PhotoID == "" {
		return invalidArgs("photo id required")
	}
	if req.Decision == "" {
		return invalidArgs("decision required")
	}
	decision, ok := gallery.ParseStatus(req.Decision)
	if !ok {
		return invalidArgs("unknown decision " + req.Decision)
	}
	if err := s.daemon.Swipe(s.ctx, req.PhotoID, decision); err != nil {
		return swipeError(err)
	}
	resp.Applied = true
	s.log().Info("decision applied via IPC",
		logging.String(logging.FieldEventType, "swipe"),
		logging.String(logging.FieldPhotoID, req.PhotoID),
		logging.String("decision", string(decision)))
	return nil
}

func (s *service) Gallery(req GalleryRequest, resp *GalleryResponse) error {
	if req.Status == "" {
		return invalidArgs("status required")
	}
	status, ok := gallery.ParseStatus(req.Status)
	if !ok {
		return invalidArgs("unknown status " + req.Status)
	}
	photos, err := s.daemon.Gallery(s.ctx, status)
	if err != nil {
		return codedError(CodeGetPhotos, err)
	}
	resp.Photos = api.NewPhotoViews(photos)
	return nil
}

func (s *service) Categories(_ CategoriesRequest, resp *CategoriesResponse) error {
	categories, err := s.daemon.Categories(s.ctx)
	if err != nil {
		return codedError(CodeGetPhotos, err)
	}
	resp.Categories = api.NewCategoryViews(categories)
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.DBPath = status.DBPath
	resp.LockPath = status.LockFilePath
	resp.LibraryDirs = status.LibraryDirs
	resp.PhotoStats = make(map[string]int, len(status.PhotoStats))
	for k, v := range status.PhotoStats {
		resp.PhotoStats[string(k)] = v
	}
	return nil
}

func (s *service) DatabaseHealth(_ DatabaseHealthRequest, resp *DatabaseHealthResponse) error {
	health, err := s.daemon.DatabaseHealth(s.ctx)
	resp.DBPath = health.DBPath
	resp.DatabaseExists = health.DatabaseExists
	resp.DatabaseReadable = health.DatabaseReadable
	resp.SchemaVersion = health.SchemaVersion
	resp.TablesPresent = append(resp.TablesPresent, health.TablesPresent...)
	resp.MissingTables = append(resp.MissingTables, health.MissingTables...)
	resp.IntegrityCheck = health.IntegrityCheck
	resp.TotalPhotos = health.TotalPhotos
	resp.Error = health.Error
	return err
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.log().Debug("daemon stop requested")
	if s.stop != nil {
		s.stop()
	}
	resp.Stopped = true
	s.log().Info("daemon stopped via IPC",
		logging.String(logging.FieldEventType, "daemon_stop"))
	return nil
}

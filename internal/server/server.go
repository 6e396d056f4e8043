package server

import (
  "context"
  "errors"
  "fmt"
  "log"
  "net"
  "net/http"
  "time"

  "game-agent/internal/config"
  "game-agent/internal/launch"
  "game-agent/internal/system"
)

const (
  serviceName = "game-agent"
  shutdownTimeout = 10 * time.Second
)

type Server struct {
  cfg    *config.Config
  logger *log.Logger
  launcher *launch.Service
  shutdownTimeout time.Duration
}

func New(cfg *config.Config, logger *log.Logger) *Server {
  return NewWithSpawner(cfg, logger, launch.SystemSpawner{})
}

func NewWithSpawner(cfg *config.Config, logger *log.Logger, spawner launch.Spawner) *Server {
  return &Server{
    cfg:    cfg,
    logger: logger,
    launcher: launch.NewService(cfg.Launcher, spawner, logger),
    shutdownTimeout: shutdownTimeout,
  }
}

func (s *Server) Handler() http.Handler {
  return s.routes()
}

// Run serves HTTP (and the gRPC health service when configured) until ctx is
// cancelled or a listener fails.
func (s *Server) Run(ctx context.Context) error {
  addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

  if err := system.CheckExecutable(s.cfg.Launcher.Path); err != nil {
    s.logger.Printf("warning: launcher not usable yet, launches will fail: %v", err)
  }
  if s.cfg.AllowsAnyOrigin() {
    s.logger.Printf("warning: CORS allows any origin; any web page reachable from this network can trigger launches")
  }

  httpServer := &http.Server{
    Addr:              addr,
    Handler:           s.routes(),
    ReadHeaderTimeout: 10 * time.Second,
  }

  errCh := make(chan error, 2)

  var grpcHealth *healthServer
  if s.cfg.GRPCHealth.Port > 0 {
    grpcAddr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.GRPCHealth.Port)
    lis, err := net.Listen("tcp", grpcAddr)
    if err != nil {
      return fmt.Errorf("grpc health listen: %w", err)
    }
    grpcHealth = newHealthServer()
    s.logger.Printf("grpc health listening on %s", grpcAddr)
    go func() {
      if err := grpcHealth.Serve(lis); err != nil {
        errCh <- fmt.Errorf("grpc health: %w", err)
      }
    }()
  }

  s.logger.Printf("listening on http://%s", addr)
  go func() {
    if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
      errCh <- err
    }
  }()

  var runErr error
  select {
  case <-ctx.Done():
    s.logger.Printf("shutting down")
  case runErr = <-errCh:
  }

  if grpcHealth != nil {
    grpcCtx, grpcCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
    grpcHealth.Stop(grpcCtx)
    grpcCancel()
  }
  shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
  defer cancel()
  if err := httpServer.Shutdown(shutdownCtx); err != nil && runErr == nil {
    runErr = err
  }
  return runErr
}

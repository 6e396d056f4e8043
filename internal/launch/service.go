package launch

import (
  "fmt"
  "io"
  "log"
  "time"

  "github.com/google/uuid"

  "game-agent/internal/config"
  "game-agent/internal/metrics"
  "game-agent/internal/system"
)

// MaxBodyBytes caps how much of a launch request body is read.
const MaxBodyBytes = 64 << 10

// Spawner starts a process and returns without waiting for it.
type Spawner interface {
  Spawn(path string, args []string) (int, error)
}

// SystemSpawner spawns detached children that inherit the agent's
// environment, so the launcher sees the same display and session.
type SystemSpawner struct{}

func (SystemSpawner) Spawn(path string, args []string) (int, error) {
  return system.SpawnDetached(path, args, nil)
}

type Service struct {
  launcherPath string
  scheme string
  maxAppIDLength int
  spawner Spawner
  logger *log.Logger
}

func NewService(cfg config.LauncherConfig, spawner Spawner, logger *log.Logger) *Service {
  if spawner == nil {
    spawner = SystemSpawner{}
  }
  return &Service{
    launcherPath: cfg.Path,
    scheme: cfg.Scheme,
    maxAppIDLength: cfg.MaxAppIDLength,
    spawner: spawner,
    logger: logger,
  }
}

// HandleRequest reads and validates a request body and, when it is valid,
// issues the launch. The returned app_id is empty on validation failure.
func (s *Service) HandleRequest(body io.Reader) (string, error) {
  launchID := uuid.NewString()

  raw, err := readBody(body)
  var appID string
  if err == nil {
    appID, err = ParseRequest(raw, s.maxAppIDLength)
  }
  if err != nil {
    s.logger.Printf("launch: rejected launch_id=%s reason=%s err=%q", launchID, ErrorKind(err), err.Error())
    return "", err
  }
  return appID, s.launch(launchID, appID)
}

// LaunchAppID validates appID and issues the launch.
func (s *Service) LaunchAppID(appID string) error {
  launchID := uuid.NewString()
  if err := ValidateAppID(appID, s.maxAppIDLength); err != nil {
    s.logger.Printf("launch: rejected launch_id=%s reason=%s err=%q", launchID, ErrorKind(err), err.Error())
    return err
  }
  return s.launch(launchID, appID)
}

func (s *Service) launch(launchID string, appID string) error {
  s.logger.Printf("launch: received launch_id=%s app_id=%s", launchID, appID)

  cmd := BuildCommand(s.launcherPath, s.scheme, appID)

  start := time.Now()
  pid, err := s.spawner.Spawn(cmd.Path, cmd.Args)
  metrics.SpawnDuration.Observe(time.Since(start).Seconds())
  if err != nil {
    s.logger.Printf("launch: spawn failed launch_id=%s app_id=%s err=%v", launchID, appID, err)
    return fmt.Errorf("%w: %w", ErrSpawnFailure, err)
  }

  s.logger.Printf("launch: issued launch_id=%s command=%q pid=%d", launchID, cmd.String(), pid)
  return nil
}

func readBody(body io.Reader) ([]byte, error) {
  if body == nil {
    return nil, ErrMissingBody
  }
  raw, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes+1))
  if err != nil {
    return nil, fmt.Errorf("%w: %v", ErrMissingBody, err)
  }
  if len(raw) > MaxBodyBytes {
    return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMissingBody, MaxBodyBytes)
  }
  return raw, nil
}

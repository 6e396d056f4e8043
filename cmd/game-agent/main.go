package main

import (
  "context"
  "flag"
  "fmt"
  "io"
  "log"
  "os"
  "os/signal"
  "syscall"

  "game-agent/internal/config"
  "game-agent/internal/launch"
  "game-agent/internal/server"
)

const defaultConfigPath = "/etc/game-agent/config.yaml"

func main() {
  if len(os.Args) > 1 {
    switch os.Args[1] {
    case "launch":
      os.Exit(runLaunch(os.Args[2:], os.Stdout, os.Stderr, launch.SystemSpawner{}))
    case "serve":
      runServer(os.Args[2:])
      return
    }
  }

  runServer(os.Args[1:])
}

func runServer(args []string) {
  fs := flag.NewFlagSet("game-agent", flag.ExitOnError)
  configPath := fs.String("config", defaultConfigPath, "Path to config.yaml")
  _ = fs.Parse(args)

  cfg, err := config.Load(*configPath)
  if err != nil {
    log.Fatalf("config load failed: %v", err)
  }

  logger := log.New(os.Stdout, "", log.LstdFlags)
  srv := server.New(cfg, logger)

  ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
  defer stop()

  if err := srv.Run(ctx); err != nil {
    logger.Fatalf("server exited: %v", err)
  }
}

// runLaunch issues one launch through the same validation and spawn path the
// HTTP handler uses. It returns the process exit code: 2 for usage errors, 1
// for config or launch failures.
func runLaunch(args []string, stdout io.Writer, stderr io.Writer, spawner launch.Spawner) int {
  fs := flag.NewFlagSet("launch", flag.ContinueOnError)
  fs.SetOutput(stderr)
  configPath := fs.String("config", defaultConfigPath, "Path to config.yaml")
  fs.Usage = func() {
    fmt.Fprintf(fs.Output(), "usage: game-agent launch [-config path] <app_id>\n")
    fs.PrintDefaults()
  }
  if err := fs.Parse(args); err != nil {
    return 2
  }

  if fs.NArg() != 1 {
    fs.Usage()
    return 2
  }

  cfg, err := config.Load(*configPath)
  if err != nil {
    fmt.Fprintf(stderr, "config load failed: %v\n", err)
    return 1
  }

  logger := log.New(stdout, "", log.LstdFlags)
  svc := launch.NewService(cfg.Launcher, spawner, logger)
  if err := svc.LaunchAppID(fs.Arg(0)); err != nil {
    fmt.Fprintln(stderr, launch.ErrorMessage(err))
    return 1
  }
  fmt.Fprintf(stdout, "Launch command issued for app_id %s.\n", fs.Arg(0))
  return 0
}

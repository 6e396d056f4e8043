package config

import (
  "errors"
  "fmt"
  "os"
  "strings"

  "github.com/joho/godotenv"
  "go-simpler.org/env"
  "gopkg.in/yaml.v3"
)

const (
  DefaultHost = "0.0.0.0"
  DefaultPort = 5001
  DefaultScheme = "steam://"
  DefaultMaxAppIDLength = 32
)

type Config struct {
  Server ServerConfig `yaml:"server"`
  Launcher LauncherConfig `yaml:"launcher"`
  CORS CORSConfig `yaml:"cors"`
  GRPCHealth GRPCHealthConfig `yaml:"grpc_health"`
}

type ServerConfig struct {
  Host string `yaml:"host"`
  Port int    `yaml:"port"`
}

type LauncherConfig struct {
  Path string `yaml:"path"`
  Scheme string `yaml:"scheme"`
  MaxAppIDLength int `yaml:"max_app_id_length"`
}

// CORSConfig controls which browser origins may call the agent. A "*" entry
// lets any page the operator's browser loads trigger launches, so it only
// belongs on a trusted local network.
type CORSConfig struct {
  AllowedOrigins []string `yaml:"allowed_origins"`
}

type GRPCHealthConfig struct {
  Port int `yaml:"port"`
}

type envOverrides struct {
  Host string `env:"GAME_AGENT_HOST"`
  Port int `env:"GAME_AGENT_PORT"`
  LauncherPath string `env:"GAME_AGENT_LAUNCHER_PATH"`
  LauncherScheme string `env:"GAME_AGENT_LAUNCHER_SCHEME"`
  AllowedOrigins []string `env:"GAME_AGENT_ALLOWED_ORIGINS"`
  GRPCHealthPort int `env:"GAME_AGENT_GRPC_HEALTH_PORT"`
}

// Load reads the YAML file at path (a missing file is not an error), applies
// .env and GAME_AGENT_* environment overrides and fills in defaults. A .env
// file that exists but cannot be read is an error.
func Load(path string) (*Config, error) {
  if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
    return nil, fmt.Errorf("load .env: %w", err)
  }

  var cfg Config
  if path != "" {
    b, err := os.ReadFile(path)
    switch {
    case err == nil:
      if err := yaml.Unmarshal(b, &cfg); err != nil {
        return nil, fmt.Errorf("parse %s: %w", path, err)
      }
    case errors.Is(err, os.ErrNotExist):
    default:
      return nil, err
    }
  }

  if err := applyEnv(&cfg); err != nil {
    return nil, err
  }
  applyDefaults(&cfg)

  if err := cfg.Validate(); err != nil {
    return nil, err
  }
  return &cfg, nil
}

func applyEnv(cfg *Config) error {
  var o envOverrides
  if err := env.Load(&o, &env.Options{SliceSep: ","}); err != nil {
    return fmt.Errorf("load environment: %w", err)
  }
  if o.Host != "" {
    cfg.Server.Host = o.Host
  }
  if o.Port != 0 {
    cfg.Server.Port = o.Port
  }
  if o.LauncherPath != "" {
    cfg.Launcher.Path = o.LauncherPath
  }
  if o.LauncherScheme != "" {
    cfg.Launcher.Scheme = o.LauncherScheme
  }
  if o.AllowedOrigins != nil {
    origins := []string{}
    for _, origin := range o.AllowedOrigins {
      if trimmed := strings.TrimSpace(origin); trimmed != "" {
        origins = append(origins, trimmed)
      }
    }
    cfg.CORS.AllowedOrigins = origins
  }
  if o.GRPCHealthPort != 0 {
    cfg.GRPCHealth.Port = o.GRPCHealthPort
  }
  return nil
}

func applyDefaults(cfg *Config) {
  if cfg.Server.Host == "" {
    cfg.Server.Host = DefaultHost
  }
  if cfg.Server.Port == 0 {
    cfg.Server.Port = DefaultPort
  }
  cfg.Launcher.Path = strings.TrimSpace(cfg.Launcher.Path)
  if cfg.Launcher.Scheme == "" {
    cfg.Launcher.Scheme = DefaultScheme
  }
  if !strings.HasSuffix(cfg.Launcher.Scheme, "/") {
    cfg.Launcher.Scheme += "/"
  }
  if cfg.Launcher.MaxAppIDLength == 0 {
    cfg.Launcher.MaxAppIDLength = DefaultMaxAppIDLength
  }
  // nil means unset; an explicit empty list turns CORS off.
  if cfg.CORS.AllowedOrigins == nil {
    cfg.CORS.AllowedOrigins = []string{"*"}
  }
}

func (c *Config) Validate() error {
  if c.Launcher.Path == "" {
    return errors.New("launcher path required (launcher.path or GAME_AGENT_LAUNCHER_PATH)")
  }
  if c.Server.Port < 1 || c.Server.Port > 65535 {
    return fmt.Errorf("invalid server port %d", c.Server.Port)
  }
  if c.Launcher.MaxAppIDLength < 1 {
    return fmt.Errorf("invalid launcher max_app_id_length %d", c.Launcher.MaxAppIDLength)
  }
  if c.GRPCHealth.Port < 0 || c.GRPCHealth.Port > 65535 {
    return fmt.Errorf("invalid grpc_health port %d", c.GRPCHealth.Port)
  }
  if c.GRPCHealth.Port != 0 && c.GRPCHealth.Port == c.Server.Port {
    return fmt.Errorf("grpc_health port %d collides with server port", c.GRPCHealth.Port)
  }
  return nil
}

// AllowsAnyOrigin reports whether the CORS policy is fully permissive.
func (c *Config) AllowsAnyOrigin() bool {
  for _, origin := range c.CORS.AllowedOrigins {
    if origin == "*" {
      return true
    }
  }
  return false
}

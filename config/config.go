// Package config loads the optional settings file.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Backends.
const (
	BackendMusic = "music"
	BackendMPD   = "mpd"
)

type Config struct {
	Debug        bool   `toml:"debug"`
	Backend      string `toml:"backend"`
	QueryTimeout int    `toml:"query_timeout"` // seconds

	MPD struct {
		Network  string `toml:"network"`
		Host     string `toml:"host"`
		Port     string `toml:"port"`
		Password string `toml:"password"`
	} `toml:"mpd"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	var cfg Config
	cfg.Backend = BackendMusic
	cfg.QueryTimeout = 10
	cfg.MPD.Network = "tcp"
	cfg.MPD.Host = "localhost"
	cfg.MPD.Port = "6600"
	return cfg
}

// DefaultPath is $HOME/.config/music-notify/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "music-notify", "config.toml")
}

// Load reads the file at path over the defaults, then applies the DEBUG,
// MPD_HOST and MPD_PORT environment variables. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config: %v", err)
			}
		}
	}

	if os.Getenv("DEBUG") == "1" {
		cfg.Debug = true
	}
	cfg.MPD.Host = getEnvOrDefault("MPD_HOST", cfg.MPD.Host)
	cfg.MPD.Port = getEnvOrDefault("MPD_PORT", cfg.MPD.Port)

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendMusic, BackendMPD:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("query_timeout must be positive, got %d", c.QueryTimeout)
	}
	return nil
}

// Timeout is the fallback query bound.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.QueryTimeout) * time.Second
}

// MPDAddr is the dial address of the MPD server. For unix sockets the host
// is the socket path.
func (c Config) MPDAddr() string {
	if c.MPD.Network == "unix" {
		return c.MPD.Host
	}
	return net.JoinHostPort(c.MPD.Host, c.MPD.Port)
}

func getEnvOrDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

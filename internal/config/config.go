package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hostops/hostctl/internal/logging"
)

// Environment variable names consumed by hostctl. The secret has a
// legacy alias kept for compatibility with early releases; it is always
// checked after the primary name.
const (
	EnvConfig   = "HOSTCTL_CONFIG"
	EnvProfile  = "HOSTCTL_PROFILE"
	EnvLogin    = "HOSTCTL_LOGIN"
	EnvPassword = "HOSTCTL_PASSWORD"
	EnvSecret   = "HOSTCTL_SECRET" // legacy alias for HOSTCTL_PASSWORD
	EnvEndpoint = "HOSTCTL_ENDPOINT"
)

// configSubpath is the store location relative to the config home.
const configSubpath = "hostctl/profiles.json"

// Config holds the runtime configuration shared by all commands.
// It is populated once from global flags in the root command's
// PersistentPreRun and passed to every command constructor.
type Config struct {
	Path           string // profile store path; empty means resolve via StorePath
	Logger         *logging.Logger
	NonInteractive bool
	JSON           bool
	DryRun         bool
	AssumeYes      bool
	Profile        string // --profile override
	Login          string // --login override
	Endpoint       string // --endpoint override
	Timeout        time.Duration
	Out            io.Writer // result stream; os.Stdout outside tests
}

// Stdout returns the result stream, defaulting to os.Stdout.
func (c *Config) Stdout() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

// StorePath resolves the profile store location:
// explicit flag > HOSTCTL_CONFIG > $XDG_CONFIG_HOME/hostctl/profiles.json
// > $HOME/.config/hostctl/profiles.json.
func (c *Config) StorePath() string {
	if c.Path != "" {
		return c.Path
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configSubpath)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory; Load will surface any
		// real I/O problem as a ConfigError.
		return filepath.Join(".config", configSubpath)
	}
	return filepath.Join(home, ".config", configSubpath)
}

package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
	"github.com/hostops/hostctl/internal/logging"
)

func testConfig(t *testing.T) (*config.Config, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg := &config.Config{
		Path:           filepath.Join(t.TempDir(), "profiles.json"),
		Logger:         logging.NewWithWriter(io.Discard, false, true),
		NonInteractive: true,
		Out:            out,
	}
	return cfg, out
}

func runProfile(t *testing.T, cfg *config.Config, args ...string) error {
	t.Helper()
	cmd := NewProfileCommand(cfg)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func TestProfileAddAndList(t *testing.T) {
	cfg, out := testConfig(t)
	t.Setenv(config.EnvPassword, "env-secret")

	require.NoError(t, runProfile(t, cfg, "add", "main", "--login", "alice"))

	store, err := config.Load(cfg.StorePath())
	require.NoError(t, err)
	assert.Equal(t, "main", store.ActiveProfile)
	assert.Equal(t, config.Profile{Login: "alice", Secret: "env-secret"}, store.Profiles["main"])

	require.NoError(t, runProfile(t, cfg, "list"))
	assert.Contains(t, out.String(), "* main (alice)")
}

func TestProfileAddRequiresLogin(t *testing.T) {
	cfg, _ := testConfig(t)
	err := runProfile(t, cfg, "add", "main")
	require.Error(t, err)
	assert.Equal(t, hcerrors.ExitUsage, hcerrors.ExitCode(err))
}

func TestProfileAddNonInteractiveWithoutSecretFails(t *testing.T) {
	cfg, _ := testConfig(t)
	// NonInteractive is set and no HOSTCTL_PASSWORD/HOSTCTL_SECRET in env.
	err := runProfile(t, cfg, "add", "main", "--login", "alice")
	require.Error(t, err)
	assert.Equal(t, hcerrors.ExitUsage, hcerrors.ExitCode(err))
}

func TestProfileRemoveReassignsActive(t *testing.T) {
	cfg, _ := testConfig(t)
	t.Setenv(config.EnvPassword, "s")

	require.NoError(t, runProfile(t, cfg, "add", "first", "--login", "a"))
	require.NoError(t, runProfile(t, cfg, "add", "second", "--login", "b"))
	require.NoError(t, runProfile(t, cfg, "remove", "first"))

	store, err := config.Load(cfg.StorePath())
	require.NoError(t, err)
	assert.Equal(t, "second", store.ActiveProfile)

	require.NoError(t, runProfile(t, cfg, "remove", "second"))
	store, err = config.Load(cfg.StorePath())
	require.NoError(t, err)
	assert.Empty(t, store.ActiveProfile)
	assert.Empty(t, store.Profiles)
}

func TestProfileUseUnknownIsConfigError(t *testing.T) {
	cfg, _ := testConfig(t)
	err := runProfile(t, cfg, "use", "ghost")
	require.Error(t, err)
	assert.Equal(t, hcerrors.ExitConfig, hcerrors.ExitCode(err))
}

func TestProfileUseSwitchesActive(t *testing.T) {
	cfg, _ := testConfig(t)
	t.Setenv(config.EnvPassword, "s")

	require.NoError(t, runProfile(t, cfg, "add", "a", "--login", "x"))
	require.NoError(t, runProfile(t, cfg, "add", "b", "--login", "y"))
	require.NoError(t, runProfile(t, cfg, "use", "b"))

	store, err := config.Load(cfg.StorePath())
	require.NoError(t, err)
	assert.Equal(t, "b", store.ActiveProfile)
}

func TestProfileShowRedactsSecret(t *testing.T) {
	cfg, out := testConfig(t)
	cfg.JSON = true
	t.Setenv(config.EnvPassword, "super-secret")

	require.NoError(t, runProfile(t, cfg, "add", "main", "--login", "alice"))
	require.NoError(t, runProfile(t, cfg, "show"))

	var shown map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &shown))
	assert.Equal(t, "main", shown["name"])
	assert.Equal(t, "alice", shown["login"])
	assert.Equal(t, "[REDACTED]", shown["secret"])
	assert.NotContains(t, out.String(), "super-secret")
}

func TestProfileShowWithoutActiveFails(t *testing.T) {
	cfg, _ := testConfig(t)
	err := runProfile(t, cfg, "show")
	require.Error(t, err)
	assert.Equal(t, hcerrors.ExitConfig, hcerrors.ExitCode(err))
}

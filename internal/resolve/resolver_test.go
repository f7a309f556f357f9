package resolve

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
)

func storeWith(active string, profiles map[string]config.Profile) *config.Store {
	store := config.NewStore()
	for name, p := range profiles {
		store.Profiles[name] = p
	}
	store.ActiveProfile = active
	return store
}

func revealed(t *testing.T, c *Credentials) string {
	t.Helper()
	var out string
	require.NoError(t, c.Secret.Reveal(func(plaintext string) error {
		out = plaintext
		return nil
	}))
	return out
}

func TestPrecedencePerField(t *testing.T) {
	store := storeWith("main", map[string]config.Profile{
		"main": {Login: "profile-login", Secret: "profile-secret"},
	})

	t.Run("flag login beats env and profile", func(t *testing.T) {
		creds, err := Resolve(Inputs{FlagLogin: "flag-login", EnvLogin: "env-login"}, store)
		require.NoError(t, err)
		assert.Equal(t, "flag-login", creds.Login)
	})

	t.Run("env login beats profile", func(t *testing.T) {
		creds, err := Resolve(Inputs{EnvLogin: "env-login"}, store)
		require.NoError(t, err)
		assert.Equal(t, "env-login", creds.Login)
	})

	t.Run("profile supplies remaining fields", func(t *testing.T) {
		creds, err := Resolve(Inputs{}, store)
		require.NoError(t, err)
		assert.Equal(t, "profile-login", creds.Login)
		assert.Equal(t, "profile-secret", revealed(t, creds))
		assert.Equal(t, "main", creds.ProfileName)
	})

	t.Run("env secret beats profile secret while login comes from profile", func(t *testing.T) {
		creds, err := Resolve(Inputs{EnvSecret: "env-secret"}, store)
		require.NoError(t, err)
		assert.Equal(t, "profile-login", creds.Login)
		assert.Equal(t, "env-secret", revealed(t, creds))
	})

	t.Run("flag endpoint beats env endpoint", func(t *testing.T) {
		creds, err := Resolve(Inputs{
			FlagEndpoint: "https://flag.example/api",
			EnvEndpoint:  "https://env.example/api",
		}, store)
		require.NoError(t, err)
		assert.Equal(t, "https://flag.example/api", creds.Endpoint)
	})

	t.Run("endpoint defaults when absent everywhere", func(t *testing.T) {
		creds, err := Resolve(Inputs{}, store)
		require.NoError(t, err)
		assert.Equal(t, DefaultEndpoint, creds.Endpoint)
	})
}

func TestProfileSelectionPrecedence(t *testing.T) {
	store := storeWith("active", map[string]config.Profile{
		"active":   {Login: "active-login", Secret: "s"},
		"flagged":  {Login: "flagged-login", Secret: "s"},
		"fromenv":  {Login: "env-login", Secret: "s"},
	})

	t.Run("flag profile wins", func(t *testing.T) {
		creds, err := Resolve(Inputs{FlagProfile: "flagged", EnvProfile: "fromenv"}, store)
		require.NoError(t, err)
		assert.Equal(t, "flagged-login", creds.Login)
	})

	t.Run("env profile beats active", func(t *testing.T) {
		creds, err := Resolve(Inputs{EnvProfile: "fromenv"}, store)
		require.NoError(t, err)
		assert.Equal(t, "env-login", creds.Login)
	})

	t.Run("active profile is the fallback", func(t *testing.T) {
		creds, err := Resolve(Inputs{}, store)
		require.NoError(t, err)
		assert.Equal(t, "active-login", creds.Login)
	})
}

func TestExplicitUnknownProfileIsConfigError(t *testing.T) {
	store := storeWith("", nil)

	_, err := Resolve(Inputs{FlagProfile: "ghost"}, store)
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindConfig))

	_, err = Resolve(Inputs{EnvProfile: "ghost"}, store)
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindConfig))
}

func TestMissingCredentialsIsAuthError(t *testing.T) {
	tests := []struct {
		name  string
		in    Inputs
		store *config.Store
	}{
		{"empty store, no overrides", Inputs{}, config.NewStore()},
		{"login only", Inputs{EnvLogin: "u"}, config.NewStore()},
		{"secret only", Inputs{EnvSecret: "s"}, config.NewStore()},
		{
			"profile with empty secret field",
			Inputs{},
			storeWith("main", map[string]config.Profile{"main": {Login: "u", Secret: ""}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.in, tt.store)
			require.Error(t, err)
			assert.True(t, hcerrors.IsKind(err, hcerrors.KindAuth))
		})
	}
}

func TestEnvOnlyCredentialsNeedNoProfile(t *testing.T) {
	creds, err := Resolve(Inputs{EnvLogin: "u", EnvSecret: "s"}, config.NewStore())
	require.NoError(t, err)
	assert.Equal(t, "u", creds.Login)
	assert.Empty(t, creds.ProfileName)
}

func TestFromEnvironmentLegacyAlias(t *testing.T) {
	t.Run("primary wins over legacy", func(t *testing.T) {
		t.Setenv(config.EnvPassword, "primary")
		t.Setenv(config.EnvSecret, "legacy")
		in := FromEnvironment(&config.Config{})
		assert.Equal(t, "primary", in.EnvSecret)
	})

	t.Run("legacy used when primary unset", func(t *testing.T) {
		t.Setenv(config.EnvPassword, "")
		os.Unsetenv(config.EnvPassword)
		t.Setenv(config.EnvSecret, "legacy")
		in := FromEnvironment(&config.Config{})
		assert.Equal(t, "legacy", in.EnvSecret)
	})
}

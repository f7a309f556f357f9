// Package resolve computes the effective credentials for one
// invocation from three precedence-ordered sources: explicit flags,
// environment variables, and the selected stored profile.
package resolve

import (
	"os"

	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
	"github.com/hostops/hostctl/internal/secure"
)

// DefaultEndpoint is used when no tier supplies a base endpoint.
const DefaultEndpoint = "https://api.hostops.dev/api"

// Inputs carries the per-invocation override values. Flag fields come
// from the command line; Env fields are a snapshot of the process
// environment taken by FromEnvironment. Tests populate both directly.
type Inputs struct {
	FlagLogin    string
	FlagEndpoint string
	FlagProfile  string

	EnvLogin    string
	EnvSecret   string
	EnvProfile  string
	EnvEndpoint string
}

// FromEnvironment snapshots the hostctl environment variables into
// Inputs, applying the legacy secret alias (HOSTCTL_SECRET is only
// consulted when HOSTCTL_PASSWORD is unset).
func FromEnvironment(cfg *config.Config) Inputs {
	secret := os.Getenv(config.EnvPassword)
	if secret == "" {
		secret = os.Getenv(config.EnvSecret)
	}
	return Inputs{
		FlagLogin:    cfg.Login,
		FlagEndpoint: cfg.Endpoint,
		FlagProfile:  cfg.Profile,
		EnvLogin:     os.Getenv(config.EnvLogin),
		EnvSecret:    secret,
		EnvProfile:   os.Getenv(config.EnvProfile),
		EnvEndpoint:  os.Getenv(config.EnvEndpoint),
	}
}

// Credentials is the transient per-invocation result. The secret lives
// in an encrypted enclave until the invoker builds the request body.
// Never persisted.
type Credentials struct {
	Login       string
	Secret      *secure.String
	Endpoint    string
	ProfileName string // source profile, empty when fully overridden
}

// Resolve applies the precedence rules. Profile selection follows
// flag > env > store active; each credential field then independently
// follows flag > env > profile. A profile explicitly named by flag or
// environment must exist (ConfigError); missing login or secret after
// all tiers is the single AuthError condition.
func Resolve(in Inputs, store *config.Store) (*Credentials, error) {
	var profile config.Profile
	profileName := ""

	switch {
	case in.FlagProfile != "":
		profileName = in.FlagProfile
	case in.EnvProfile != "":
		profileName = in.EnvProfile
	case store.ActiveProfile != "":
		profileName = store.ActiveProfile
	}

	if profileName != "" {
		p, ok := store.Lookup(profileName)
		if !ok {
			return nil, &hcerrors.Error{
				Kind:       hcerrors.KindConfig,
				Message:    "profile \"" + profileName + "\" not found",
				Suggestion: "Run 'hostctl profile list' to see stored profiles",
			}
		}
		profile = p
	}

	login := firstNonEmpty(in.FlagLogin, in.EnvLogin, profile.Login)
	secret := firstNonEmpty(in.EnvSecret, profile.Secret)
	endpoint := firstNonEmpty(in.FlagEndpoint, in.EnvEndpoint, DefaultEndpoint)

	if login == "" || secret == "" {
		return nil, &hcerrors.Error{
			Kind:       hcerrors.KindAuth,
			Message:    "no credentials available",
			Details:    "login and secret must both be set after applying flags, environment and the selected profile",
			Suggestion: "Run 'hostctl profile add <name>' or set " + config.EnvLogin + " and " + config.EnvPassword,
		}
	}

	return &Credentials{
		Login:       login,
		Secret:      secure.NewString(secret),
		Endpoint:    endpoint,
		ProfileName: profileName,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

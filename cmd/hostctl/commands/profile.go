package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
	"github.com/hostops/hostctl/internal/secrets"
)

// NewProfileCommand creates the profile management command family.
// Profile commands touch only the local store; they never reach the
// network.
func NewProfileCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage stored credential profiles",
		Long: `Manage the named (login, secret) profiles hostctl authenticates with.

Profiles live in a local JSON store with owner-only permissions. The
active profile is used for every call unless --profile, --login or the
HOSTCTL_* environment variables override it.

Examples:
  hostctl profile add main --login alice
  hostctl profile use main
  hostctl profile list
  hostctl profile remove old-account`,
	}

	cmd.AddCommand(
		newProfileAddCommand(cfg),
		newProfileRemoveCommand(cfg),
		newProfileListCommand(cfg),
		newProfileUseCommand(cfg),
		newProfileShowCommand(cfg),
	)
	return cmd
}

func newProfileAddCommand(cfg *config.Config) *cobra.Command {
	var login string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or replace a profile",
		Long: `Store a named profile. The secret is read from HOSTCTL_PASSWORD
(or the legacy HOSTCTL_SECRET), the OS keyring, or a masked prompt, in
that order. The first profile added becomes the active one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if login == "" {
				return hcerrors.Usagef("--login is required")
			}

			secret, err := secrets.New(cfg.Logger).Acquire(secrets.Options{
				EnvVars:          []string{config.EnvPassword, config.EnvSecret},
				KeyringKey:       "profile:" + name,
				Prompt:           fmt.Sprintf("Secret for profile %q: ", name),
				AllowInteractive: !cfg.NonInteractive,
			})
			if err != nil {
				return err
			}

			store, err := config.Load(cfg.StorePath())
			if err != nil {
				return err
			}
			store.Add(name, config.Profile{Login: login, Secret: secret})
			if err := config.Save(cfg.StorePath(), store); err != nil {
				return err
			}
			cfg.Logger.Info("profile %q saved (active: %s)", name, store.ActiveProfile)
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "account login stored in the profile")
	return cmd
}

func newProfileRemoveCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a profile",
		Long: `Delete a stored profile. Removing the active profile promotes
another stored profile to active, or leaves no active profile when the
store becomes empty. The store is rewritten before the command reports
success.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Load(cfg.StorePath())
			if err != nil {
				return err
			}
			if err := store.Remove(args[0]); err != nil {
				return err
			}
			if err := config.Save(cfg.StorePath(), store); err != nil {
				return err
			}
			if store.ActiveProfile != "" {
				cfg.Logger.Info("profile %q removed (active: %s)", args[0], store.ActiveProfile)
			} else {
				cfg.Logger.Info("profile %q removed (no active profile)", args[0])
			}
			return nil
		},
	}
}

func newProfileListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Load(cfg.StorePath())
			if err != nil {
				return err
			}

			if cfg.JSON {
				type entry struct {
					Name   string `json:"name"`
					Login  string `json:"login"`
					Active bool   `json:"active"`
				}
				entries := make([]entry, 0, len(store.Profiles))
				for _, name := range store.Names() {
					entries = append(entries, entry{
						Name:   name,
						Login:  store.Profiles[name].Login,
						Active: name == store.ActiveProfile,
					})
				}
				enc := json.NewEncoder(cfg.Stdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(store.Profiles) == 0 {
				fmt.Fprintln(cfg.Stdout(), "no profiles stored")
				return nil
			}
			for _, name := range store.Names() {
				marker := " "
				if name == store.ActiveProfile {
					marker = "*"
				}
				fmt.Fprintf(cfg.Stdout(), "%s %s (%s)\n", marker, name, store.Profiles[name].Login)
			}
			return nil
		},
	}
}

func newProfileUseCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Load(cfg.StorePath())
			if err != nil {
				return err
			}
			if err := store.SetActive(args[0]); err != nil {
				return err
			}
			if err := config.Save(cfg.StorePath(), store); err != nil {
				return err
			}
			cfg.Logger.Info("active profile is now %q", args[0])
			return nil
		},
	}
}

func newProfileShowCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active profile (secret redacted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Load(cfg.StorePath())
			if err != nil {
				return err
			}
			if store.ActiveProfile == "" {
				return hcerrors.Configf("no active profile")
			}
			p := store.Profiles[store.ActiveProfile]

			if cfg.JSON {
				out := map[string]string{
					"name":   store.ActiveProfile,
					"login":  p.Login,
					"secret": "[REDACTED]",
				}
				enc := json.NewEncoder(cfg.Stdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			fmt.Fprintf(cfg.Stdout(), "name:   %s\nlogin:  %s\nsecret: [REDACTED]\n", store.ActiveProfile, p.Login)
			return nil
		},
	}
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/internal/catalog"
	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
)

// NewAccountCommand creates the account command family (the provider's
// "user" section).
func NewAccountCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account information and settings",
	}
	cmd.AddCommand(
		newAccountInfoCommand(cfg),
		newAccountSSHCommand(cfg),
	)
	return cmd
}

func newAccountInfoCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show account plan, quotas and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, cfg, catalog.MustGet("user", "getAccountInfo"), nil, nil, nil)
		},
	}
}

func newAccountSSHCommand(cfg *config.Config) *cobra.Command {
	var enable, disable bool

	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Enable or disable SSH access for the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if enable == disable {
				return hcerrors.Usagef("exactly one of --enable or --disable is required")
			}
			status := 0
			if enable {
				status = 1
			}
			input := map[string]any{"status": status}
			return runOperation(cmd, cfg, catalog.MustGet("user", "toggleSsh"), input, nil, nil)
		},
	}

	cmd.Flags().BoolVar(&enable, "enable", false, "turn SSH access on")
	cmd.Flags().BoolVar(&disable, "disable", false, "turn SSH access off")
	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/internal/catalog"
	"github.com/hostops/hostctl/internal/config"
	"github.com/hostops/hostctl/internal/pipeline"
)

// NewFTPCommand creates the FTP account command family.
func NewFTPCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ftp",
		Short: "Manage additional FTP accounts",
	}
	cmd.AddCommand(
		newFTPListCommand(cfg),
		newFTPAddCommand(cfg),
		newFTPRemoveCommand(cfg),
		newFTPPasswordCommand(cfg),
	)
	return cmd
}

func newFTPListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List FTP accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, cfg, catalog.MustGet("ftp", "getList"), nil, nil, nil)
		},
	}
}

func newFTPAddCommand(cfg *config.Config) *cobra.Command {
	var homedir string

	cmd := &cobra.Command{
		Use:   "add <suffix>",
		Short: "Create an FTP account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := map[string]any{"suffix": args[0]}
			if homedir != "" {
				input["homedir"] = homedir
			}
			sec := &pipeline.SecretInput{
				Field:      "password",
				Prompt:     "Password for the new FTP account: ",
				KeyringKey: "ftp:" + args[0],
			}
			return runOperation(cmd, cfg, catalog.MustGet("ftp", "add"), input, nil, sec)
		},
	}

	cmd.Flags().StringVar(&homedir, "homedir", "", "home directory for the account")
	return cmd
}

func newFTPRemoveCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <suffix>",
		Short: "Remove an FTP account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := map[string]any{"suffix": args[0]}
			return runOperation(cmd, cfg, catalog.MustGet("ftp", "delete"), input, nil, nil)
		},
	}
}

func newFTPPasswordCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "password <suffix>",
		Short: "Change an FTP account's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := map[string]any{"suffix": args[0]}
			sec := &pipeline.SecretInput{
				Field:      "password",
				Prompt:     "New FTP password: ",
				KeyringKey: "ftp:" + args[0],
			}
			return runOperation(cmd, cfg, catalog.MustGet("ftp", "changePassword"), input, nil, sec)
		},
	}
}

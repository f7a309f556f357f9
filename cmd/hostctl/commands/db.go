package commands

import (
	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/internal/catalog"
	"github.com/hostops/hostctl/internal/config"
	"github.com/hostops/hostctl/internal/pipeline"
)

// NewDBCommand creates the database command family. The add and
// password operations carry their own secret, acquired from
// HOSTCTL_DB_PASSWORD, the OS keyring, or a masked prompt.
func NewDBCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage MySQL databases",
		Long: `Manage the MySQL databases provisioned for the account.

Examples:
  hostctl db list
  hostctl db add blog
  hostctl db drop blog --yes
  HOSTCTL_DB_PASSWORD=... hostctl db password blog --non-interactive`,
	}
	cmd.AddCommand(
		newDBListCommand(cfg),
		newDBAddCommand(cfg),
		newDBDropCommand(cfg),
		newDBPasswordCommand(cfg),
	)
	return cmd
}

func newDBListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List databases and their sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, cfg, catalog.MustGet("db", "getList"), nil, nil, nil)
		},
	}
}

func newDBAddCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "add <suffix>",
		Short: "Create a database and its access user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := map[string]any{"suffix": args[0]}
			sec := &pipeline.SecretInput{
				Field:      "password",
				Prompt:     "Password for the new database user: ",
				KeyringKey: "db:" + args[0],
			}
			return runOperation(cmd, cfg, catalog.MustGet("db", "addDb"), input, nil, sec)
		},
	}
}

func newDBDropCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <name>",
		Short: "Drop a database and all its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := map[string]any{"name": args[0]}
			return runOperation(cmd, cfg, catalog.MustGet("db", "dropDb"), input, nil, nil)
		},
	}
}

func newDBPasswordCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "password <name>",
		Short: "Change a database user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := map[string]any{"name": args[0]}
			sec := &pipeline.SecretInput{
				Field:      "password",
				Prompt:     "New database password: ",
				KeyringKey: "db:" + args[0],
			}
			return runOperation(cmd, cfg, catalog.MustGet("db", "changePassword"), input, nil, sec)
		},
	}
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/internal/catalog"
	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
)

// NewSiteCommand creates the site command family.
func NewSiteCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage sites (document roots)",
	}
	cmd.AddCommand(
		newSiteListCommand(cfg),
		newSiteAddCommand(cfg),
		newSiteDeleteCommand(cfg),
		newSiteFreezeCommand(cfg, "freeze", "Make a site read-only", "freeze"),
		newSiteFreezeCommand(cfg, "unfreeze", "Make a frozen site writable again", "unfreeze"),
	)
	return cmd
}

func newSiteListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sites and their linked domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, cfg, catalog.MustGet("site", "getList"), nil, nil, nil)
		},
	}
}

func newSiteAddCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := map[string]any{"name": args[0]}
			return runOperation(cmd, cfg, catalog.MustGet("site", "add"), input, nil, nil)
		},
	}
}

func newSiteDeleteCommand(cfg *config.Config) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a site",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return hcerrors.Usagef("--id is required")
			}
			input := map[string]any{"id": id}
			return runOperation(cmd, cfg, catalog.MustGet("site", "delete"), input, nil, nil)
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "site id (see 'hostctl site list')")
	return cmd
}

func newSiteFreezeCommand(cfg *config.Config, use, short, method string) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return hcerrors.Usagef("--id is required")
			}
			input := map[string]any{"id": id}
			return runOperation(cmd, cfg, catalog.MustGet("site", method), input, nil, nil)
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "site id")
	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/internal/catalog"
	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
)

// NewDomainCommand creates the domain command family.
func NewDomainCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain",
		Short: "Manage domains and subdomains",
		Long: `Manage the domains linked to the account.

Examples:
  hostctl domain list
  hostctl domain add example.org
  hostctl domain remove example.org --yes
  hostctl domain subdomain add blog --domain-id 1042`,
	}
	cmd.AddCommand(
		newDomainListCommand(cfg),
		newDomainZonesCommand(cfg),
		newDomainAddCommand(cfg),
		newDomainRemoveCommand(cfg),
		newSubdomainCommand(cfg),
	)
	return cmd
}

func newDomainListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List domains linked to the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, cfg, catalog.MustGet("domain", "getList"), nil, nil, nil)
		},
	}
}

func newDomainZonesCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List available registration zones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, cfg, catalog.MustGet("domain", "getZoneList"), nil, nil, nil)
		},
	}
}

func newDomainAddCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "add <fqdn>",
		Short: "Link a domain to the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := map[string]any{"fqdn": args[0]}
			return runOperation(cmd, cfg, catalog.MustGet("domain", "addVirtual"), input, nil, nil)
		},
	}
}

func newDomainRemoveCommand(cfg *config.Config) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a domain and its DNS records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return hcerrors.Usagef("--id is required")
			}
			input := map[string]any{"id": id}
			return runOperation(cmd, cfg, catalog.MustGet("domain", "delete"), input, nil, nil)
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "domain id (see 'hostctl domain list')")
	return cmd
}

func newSubdomainCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subdomain",
		Short: "Manage subdomains",
	}

	var addDomainID int
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a subdomain under a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addDomainID == 0 {
				return hcerrors.Usagef("--domain-id is required")
			}
			input := map[string]any{"subdomain": args[0], "domain_id": addDomainID}
			return runOperation(cmd, cfg, catalog.MustGet("domain", "addSubdomain"), input, nil, nil)
		},
	}
	add.Flags().IntVar(&addDomainID, "domain-id", 0, "parent domain id")

	var removeID int
	remove := &cobra.Command{
		Use:   "remove",
		Short: "Remove a subdomain and its DNS records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if removeID == 0 {
				return hcerrors.Usagef("--id is required")
			}
			input := map[string]any{"id": removeID}
			return runOperation(cmd, cfg, catalog.MustGet("domain", "deleteSubdomain"), input, nil, nil)
		},
	}
	remove.Flags().IntVar(&removeID, "id", 0, "subdomain id")

	cmd.AddCommand(add, remove)
	return cmd
}

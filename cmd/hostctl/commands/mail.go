package commands

import (
	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/internal/catalog"
	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
	"github.com/hostops/hostctl/internal/pipeline"
)

// NewMailCommand creates the mailbox command family.
func NewMailCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Manage mailboxes",
	}
	cmd.AddCommand(
		newMailListCommand(cfg),
		newMailCreateCommand(cfg),
		newMailDropCommand(cfg),
		newMailPasswordCommand(cfg),
	)
	return cmd
}

func newMailListCommand(cfg *config.Config) *cobra.Command {
	var domainID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mailboxes on a domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			if domainID == 0 {
				return hcerrors.Usagef("--domain-id is required")
			}
			input := map[string]any{"domain_id": domainID}
			return runOperation(cmd, cfg, catalog.MustGet("mail", "getMailboxList"), input, nil, nil)
		},
	}

	cmd.Flags().IntVar(&domainID, "domain-id", 0, "domain id (see 'hostctl domain list')")
	return cmd
}

func newMailCreateCommand(cfg *config.Config) *cobra.Command {
	var domainID int

	cmd := &cobra.Command{
		Use:   "create <mailbox>",
		Short: "Create a mailbox on a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if domainID == 0 {
				return hcerrors.Usagef("--domain-id is required")
			}
			input := map[string]any{"mailbox": args[0], "domain_id": domainID}
			sec := &pipeline.SecretInput{
				Field:      "mailbox_password",
				Prompt:     "Password for the new mailbox: ",
				KeyringKey: "mail:" + args[0],
			}
			return runOperation(cmd, cfg, catalog.MustGet("mail", "createMailbox"), input, nil, sec)
		},
	}

	cmd.Flags().IntVar(&domainID, "domain-id", 0, "domain id")
	return cmd
}

func newMailDropCommand(cfg *config.Config) *cobra.Command {
	var domainID int

	cmd := &cobra.Command{
		Use:   "drop <mailbox>",
		Short: "Delete a mailbox and all stored mail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if domainID == 0 {
				return hcerrors.Usagef("--domain-id is required")
			}
			input := map[string]any{"mailbox": args[0], "domain_id": domainID}
			return runOperation(cmd, cfg, catalog.MustGet("mail", "dropMailbox"), input, nil, nil)
		},
	}

	cmd.Flags().IntVar(&domainID, "domain-id", 0, "domain id")
	return cmd
}

func newMailPasswordCommand(cfg *config.Config) *cobra.Command {
	var domainID int

	cmd := &cobra.Command{
		Use:   "password <mailbox>",
		Short: "Change a mailbox password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if domainID == 0 {
				return hcerrors.Usagef("--domain-id is required")
			}
			input := map[string]any{"mailbox": args[0], "domain_id": domainID}
			sec := &pipeline.SecretInput{
				Field:      "mailbox_password",
				Prompt:     "New mailbox password: ",
				KeyringKey: "mail:" + args[0],
			}
			return runOperation(cmd, cfg, catalog.MustGet("mail", "changeMailboxPassword"), input, nil, sec)
		},
	}

	cmd.Flags().IntVar(&domainID, "domain-id", 0, "domain id")
	return cmd
}

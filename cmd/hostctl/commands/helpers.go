package commands

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/internal/api"
	"github.com/hostops/hostctl/internal/catalog"
	"github.com/hostops/hostctl/internal/config"
	"github.com/hostops/hostctl/internal/confirm"
	"github.com/hostops/hostctl/internal/pipeline"
	"github.com/hostops/hostctl/internal/resolve"
	"github.com/hostops/hostctl/internal/secrets"
)

// runOperation loads the store and drives one operation through the
// execution pipeline with the real invoker, confirmer and acquirer.
// All remote commands funnel through here; only the catalog record and
// the payload differ.
func runOperation(cmd *cobra.Command, cfg *config.Config, op catalog.Operation, input map[string]any, query url.Values, sec *pipeline.SecretInput) error {
	store, err := config.Load(cfg.StorePath())
	if err != nil {
		return err
	}

	runner := &pipeline.Runner{
		Store:      store,
		Inputs:     resolve.FromEnvironment(cfg),
		Invoker:    api.NewClient(nil),
		Confirmer:  confirm.NewTerminal(),
		Acquirer:   secrets.New(cfg.Logger),
		Logger:     cfg.Logger,
		Stdout:     cfg.Stdout(),
		IsTerminal: secrets.StdioIsTerminal,
		Opts: pipeline.Options{
			DryRun:         cfg.DryRun,
			AssumeYes:      cfg.AssumeYes,
			NonInteractive: cfg.NonInteractive,
			JSON:           cfg.JSON,
			Timeout:        cfg.Timeout,
		},
	}
	return runner.Run(cmd.Context(), op, input, query, sec)
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/cmd/hostctl/commands"
	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
	"github.com/hostops/hostctl/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cfg := &config.Config{}
	if err := run(cfg, os.Args[1:]); err != nil {
		reportError(cfg, err)
		os.Exit(hcerrors.ExitCode(err))
	}
}

func run(cfg *config.Config, args []string) error {
	// Global flags
	var (
		configFile     string
		profileName    string
		login          string
		endpoint       string
		jsonOutput     bool
		dryRun         bool
		assumeYes      bool
		nonInteractive bool
		timeout        time.Duration
		noColor        bool
		debug          bool
	)

	// Set once argument and flag parsing succeeded and control reached
	// a command body. Errors surfaced before that point are bad
	// invocations, not internal faults.
	parsed := false

	rootCmd := &cobra.Command{
		Use:   "hostctl",
		Short: "Command-line client for the hosting management API",
		Long: `hostctl issues authenticated calls against the hosting management API
and manages the local credential profiles needed to do so.

Credentials resolve per field with flag > environment > active profile
precedence. Mutating operations support --dry-run; destructive ones ask
for confirmation unless --yes is given.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			parsed = true
			cfg.Path = configFile
			cfg.Logger = logging.New(debug, noColor)
			cfg.Profile = profileName
			cfg.Login = login
			cfg.Endpoint = endpoint
			cfg.JSON = jsonOutput
			cfg.DryRun = dryRun
			cfg.AssumeYes = assumeYes
			cfg.NonInteractive = nonInteractive
			cfg.Timeout = timeout
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "profile store path (default: $XDG_CONFIG_HOME/hostctl/profiles.json)")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "use a named profile instead of the active one")
	rootCmd.PersistentFlags().StringVar(&login, "login", "", "override the account login")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "override the API base endpoint")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "machine-readable output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "describe mutating calls without performing them")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts for destructive operations")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; fail when input would be required")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "remote call timeout")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		commands.NewProfileCommand(cfg),
		commands.NewAccountCommand(cfg),
		commands.NewDomainCommand(cfg),
		commands.NewSiteCommand(cfg),
		commands.NewDBCommand(cfg),
		commands.NewFTPCommand(cfg),
		commands.NewMailCommand(cfg),
		commands.NewBackupCommand(cfg),
		commands.NewCallCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil || parsed {
		return err
	}
	var classified *hcerrors.Error
	if errors.As(err, &classified) {
		return err
	}
	return hcerrors.Wrap(err, hcerrors.KindUsage, err.Error())
}

// reportError renders the failure exactly once on the diagnostic
// stream: a structured object in machine mode, a logger line otherwise.
func reportError(cfg *config.Config, err error) {
	if cfg.JSON {
		detail := map[string]string{
			"kind":    hcerrors.KindOf(err).String(),
			"message": err.Error(),
		}
		if code := hcerrors.ProviderCode(err); code != "" {
			detail["code"] = code
		}
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{"error": detail})
		return
	}
	if cfg.Logger != nil {
		cfg.Logger.Error("%v", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
	"github.com/hostops/hostctl/internal/permissions"
	"github.com/hostops/hostctl/internal/resolve"
)

type doctorReport struct {
	StorePath   string                `json:"store_path"`
	StoreValid  bool                  `json:"store_valid"`
	StoreError  string                `json:"store_error,omitempty"`
	Profiles    int                   `json:"profiles"`
	Active      string                `json:"active_profile,omitempty"`
	Permissions []permissions.Finding `json:"permissions,omitempty"`
	Credentials string                `json:"credentials"`
	Endpoint    string                `json:"endpoint,omitempty"`
}

// NewDoctorCommand checks the local setup: store file validity and
// permissions, plus whether credentials resolve from the current
// environment. It never contacts the remote endpoint.
func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check profile store health and credential resolution",
		Long: `Verify the local configuration without calling the remote endpoint.

This command checks:
- Profile store validity against the schema
- File and directory permissions on the store
- Whether credentials resolve from flags, environment and profiles`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := doctorReport{
				StorePath:  cfg.StorePath(),
				StoreValid: true,
			}

			report.Permissions = permissions.Check(report.StorePath)

			store, err := config.Load(report.StorePath)
			if err != nil {
				report.StoreValid = false
				report.StoreError = err.Error()
				store = config.NewStore()
			} else {
				report.Profiles = len(store.Profiles)
				report.Active = store.ActiveProfile
			}

			creds, err := resolve.Resolve(resolve.FromEnvironment(cfg), store)
			switch {
			case err != nil:
				report.Credentials = err.Error()
			default:
				report.Credentials = "ok"
				report.Endpoint = creds.Endpoint
			}

			if cfg.JSON {
				enc := json.NewEncoder(cfg.Stdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			if report.StoreValid {
				cfg.Logger.Info("Profile store valid (%d profiles)", report.Profiles)
			} else {
				cfg.Logger.Error("Profile store: %s", report.StoreError)
			}
			for _, f := range report.Permissions {
				if f.Severity == permissions.SeverityError {
					cfg.Logger.Error("%s: %s", f.Path, f.Message)
				} else {
					cfg.Logger.Warn("%s: %s", f.Path, f.Message)
				}
				if f.Suggestion != "" {
					cfg.Logger.Info("  %s", f.Suggestion)
				}
			}
			if report.Credentials == "ok" {
				cfg.Logger.Info("Credentials resolve (endpoint %s)", report.Endpoint)
			} else {
				cfg.Logger.Warn("Credentials: %s", report.Credentials)
			}

			if !report.StoreValid {
				return hcerrors.Configf("profile store is unhealthy")
			}
			for _, f := range report.Permissions {
				if f.Severity == permissions.SeverityError {
					return hcerrors.Configf("insecure store permissions: %s", f.Message)
				}
			}
			return nil
		},
	}
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/internal/catalog"
	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
)

// NewBackupCommand creates the backup command family.
func NewBackupCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "List and restore file backups",
		Long: `Work with the provider's automatic file backups.

Examples:
  hostctl backup list
  hostctl backup restore --backup-id 17 --path /public_html --yes`,
	}
	cmd.AddCommand(
		newBackupListCommand(cfg),
		newBackupRestoreCommand(cfg),
	)
	return cmd
}

func newBackupListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available file backup snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, cfg, catalog.MustGet("backup", "getFileBackupList"), nil, nil, nil)
		},
	}
}

func newBackupRestoreCommand(cfg *config.Config) *cobra.Command {
	var (
		backupID int
		paths    []string
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore paths from a backup snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if backupID == 0 {
				return hcerrors.Usagef("--backup-id is required")
			}
			if len(paths) == 0 {
				return hcerrors.Usagef("at least one --path is required")
			}
			input := map[string]any{"backup_id": backupID, "paths": paths}
			return runOperation(cmd, cfg, catalog.MustGet("backup", "restoreFile"), input, nil, nil)
		},
	}

	cmd.Flags().IntVar(&backupID, "backup-id", 0, "snapshot id (see 'hostctl backup list')")
	cmd.Flags().StringArrayVar(&paths, "path", nil, "path to restore (repeatable)")
	return cmd
}

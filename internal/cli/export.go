package cli

import (
	"context"

	"github.com/cperrin88/rpmsnap/internal/logger"
	"github.com/cperrin88/rpmsnap/pkg/export"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export ARCHIVE",
		Short: "Archive the snapshot cache and summary",
		Long:  "Write a tar.gz archive holding the snapshot tree under snapshots/ and the summary file at its root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args[0])
		},
	}

	return cmd
}

func runExport(ctx context.Context, out string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := export.Archive(ctx, out, cfg.Settings.SnapshotsDir, cfg.Settings.SummaryPath); err != nil {
		return err
	}

	logger.Success("Archive written", logger.Fields{"path": out})
	return nil
}

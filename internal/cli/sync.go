package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/cperrin88/rpmsnap/internal/logger"
	"github.com/cperrin88/rpmsnap/pkg/config"
	"github.com/cperrin88/rpmsnap/pkg/definition"
	"github.com/cperrin88/rpmsnap/pkg/fetcher"
	"github.com/cperrin88/rpmsnap/pkg/hooks"
	"github.com/cperrin88/rpmsnap/pkg/snapshot"
	"github.com/cperrin88/rpmsnap/pkg/summary"
	"github.com/spf13/cobra"
)

// syncOptions holds flag overrides for the configured paths.
type syncOptions struct {
	definitionsDir string
	repoList       string
	mirrorURL      string
	snapshotsDir   string
	summaryPath    string
}

func (o syncOptions) apply(s *config.Settings) {
	if o.definitionsDir != "" {
		s.DefinitionsDir = o.definitionsDir
	}
	if o.repoList != "" {
		s.RepoList = o.repoList
	}
	if o.mirrorURL != "" {
		s.MirrorBaseURL = strings.TrimSuffix(o.mirrorURL, "/")
	}
	if o.snapshotsDir != "" {
		s.SnapshotsDir = o.snapshotsDir
	}
	if o.summaryPath != "" {
		s.SummaryPath = o.summaryPath
	}
}

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	var opts syncOptions

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch repomd.xml for every known snapshot",
		Long: `Load the repository definitions and the remote snapshot list, fetch the
repomd.xml of every snapshot that is not cached yet and write the summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.definitionsDir, "definitions", "", "directory of repository definitions")
	cmd.Flags().StringVar(&opts.repoList, "repo-list", "", "snapshot list file or URL")
	cmd.Flags().StringVar(&opts.mirrorURL, "mirror", "", "mirror base URL")
	cmd.Flags().StringVar(&opts.snapshotsDir, "snapshots", "", "snapshot cache directory")
	cmd.Flags().StringVar(&opts.summaryPath, "summary", "", "summary output file")

	return cmd
}

func runSync(ctx context.Context, opts syncOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts.apply(&cfg.Settings)
	if err := cfg.Validate(); err != nil {
		return err
	}
	settings := cfg.Settings
	client := newHTTPClient(cfg)

	reg, err := definition.LoadDir(settings.DefinitionsDir)
	if err != nil {
		return err
	}

	ids, err := snapshot.LoadList(ctx, settings.RepoList, client)
	if err != nil {
		return err
	}
	resolved := snapshot.Resolve(reg, ids, settings.MirrorBaseURL)
	logger.Info("Resolved snapshots", logger.Fields{
		"identifiers":  len(ids),
		"resolved":     resolved,
		"repositories": len(reg.Entries),
	})

	if empty := snapshot.SelectLatest(reg); len(empty) > 0 {
		logger.Warn("Repositories without snapshots", logger.Fields{"repos": strings.Join(empty, ",")})
	}

	scripts, err := loadHooks(settings.HooksDir)
	if err != nil {
		return err
	}

	f := fetcher.New(client, fetcher.Options{Dir: settings.SnapshotsDir, Scripts: scripts})
	result, err := f.Sync(ctx, reg)
	if err != nil {
		return fmt.Errorf("sync aborted: %w", err)
	}

	if err := summary.Write(settings.SummaryPath, reg); err != nil {
		return err
	}

	if scripts != nil {
		hookCtx := hooks.HookContext{Vars: map[string]interface{}{
			"summaryPath": settings.SummaryPath,
			"fetched":     len(result.Fetched),
			"skipped":     len(result.Skipped),
			"failed":      len(result.Failed),
		}}
		if err := scripts.Execute(hooks.PostSync, hookCtx); err != nil {
			return err
		}
	}

	logger.Success("Sync completed", logger.Fields{
		"summary": settings.SummaryPath,
		"fetched": len(result.Fetched),
		"skipped": len(result.Skipped),
		"failed":  len(result.Failed),
	})
	return nil
}

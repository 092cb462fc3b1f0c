package cli

import (
	"fmt"
	"io"

	"github.com/cperrin88/rpmsnap/internal/logger"
	"github.com/cperrin88/rpmsnap/pkg/cache"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command with subcommands
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the snapshot cache",
		Long:  "Clean, show information about, and locate the cached repomd.xml files",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [KEY...]",
		Short: "Clean the snapshot cache",
		Long:  "Remove the cached snapshots of the given repositories, or of all repositories when none are given",
		RunE: func(_ *cobra.Command, args []string) error {
			return runCacheClean(args)
		},
	}

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display the size and contents of the snapshot cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheInfo(cmd.OutOrStdout())
		},
	}

	return cmd
}

func newCacheDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory path",
		Long:  "Display the path to the snapshot cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheDir(cmd.OutOrStdout())
		},
	}

	return cmd
}

func newCacheManager() (cache.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return cache.NewManager(cfg.Settings.SnapshotsDir), nil
}

func runCacheClean(repos []string) error {
	manager, err := newCacheManager()
	if err != nil {
		return err
	}

	result, err := manager.Clean(cache.CleanOptions{Repos: repos})
	if err != nil {
		return err
	}

	for _, repo := range result.ReposRemoved {
		logger.Debug("Removed cached repository", logger.Fields{"repo": repo})
	}
	logger.Success("Cache cleaning completed", logger.Fields{
		"repos":       len(result.ReposRemoved),
		"files":       result.FilesRemoved,
		"total_freed": cache.FormatBytes(result.TotalFreed),
	})
	return nil
}

func runCacheInfo(out io.Writer) error {
	manager, err := newCacheManager()
	if err != nil {
		return err
	}

	info, err := manager.GetInfo()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprint(out, cache.Describe(info))
	return nil
}

func runCacheDir(out io.Writer) error {
	manager, err := newCacheManager()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, manager.GetDirectory())
	return nil
}

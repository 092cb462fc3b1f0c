package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/cperrin88/rpmsnap/pkg/fetcher"
	"github.com/cperrin88/rpmsnap/pkg/fsutil"
	"github.com/cperrin88/rpmsnap/pkg/repomd"
	"github.com/cperrin88/rpmsnap/pkg/summary"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show KEY",
		Short: "Show the snapshots of one repository",
		Long: `Show the snapshots recorded for a repository in the summary. For every
snapshot cached on disk the repomd.xml revision and data types are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), args[0])
		},
	}

	return cmd
}

func runShow(out io.Writer, key string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dump, err := summary.Load(cfg.Settings.SummaryPath)
	if err != nil {
		return err
	}
	entry, err := dump.Get(key)
	if err != nil {
		return err
	}

	title := color.New(color.Bold)
	_, _ = title.Fprintln(out, key)
	_, _ = fmt.Fprintf(out, "  Platform:     %s\n", entry.Platform)
	_, _ = fmt.Fprintf(out, "  Arch:         %s\n", entry.Arch)
	_, _ = fmt.Fprintf(out, "  Repository:   %s\n", entry.Repo)
	_, _ = fmt.Fprintf(out, "  Snapshot ID:  %s\n", entry.SnapshotID)
	_, _ = fmt.Fprintf(out, "  Base URL:     %s\n", entry.BaseURL)
	latest := entry.LatestSnapshot
	if latest == "" {
		latest = NoSnapshot
	}
	_, _ = fmt.Fprintf(out, "  Latest:       %s\n", latest)

	if len(entry.Snapshots) == 0 {
		_, _ = fmt.Fprintln(out, "\nNo snapshots")
		return nil
	}

	_, _ = fmt.Fprintf(out, "\nSnapshots (%d):\n", len(entry.Timestamps()))
	for _, ts := range entry.SnapshotKeys() {
		_, _ = fmt.Fprintf(out, "  %s  %s\n", ts, entry.Snapshots[ts])
		_, _ = fmt.Fprintf(out, "    %s\n", describeCached(cfg.Settings.SnapshotsDir, key, ts))
	}
	return nil
}

// describeCached summarizes the cached repomd.xml of one snapshot.
func describeCached(dir, key, ts string) string {
	path := fetcher.RepomdPath(dir, key, ts)
	if !fsutil.FileExists(path) {
		return color.YellowString("not cached")
	}
	md, err := repomd.ParseFile(path)
	if err != nil {
		return color.RedString("unreadable: %v", err)
	}
	return fmt.Sprintf("%s revision %s, data: %s", color.GreenString("cached"), md.Revision, strings.Join(md.Types(), ", "))
}

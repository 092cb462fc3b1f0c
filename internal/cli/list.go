package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cperrin88/rpmsnap/pkg/cache"
	"github.com/cperrin88/rpmsnap/pkg/summary"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		nameFilter string
		cached     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List repositories from the summary",
		Long: `List every repository of the last sync with its snapshot count and the
latest snapshot. Use --cached to add the number of snapshots on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.OutOrStdout(), nameFilter, cached)
		},
	}

	cmd.Flags().StringVar(&nameFilter, "name", "", "Filter repositories by key (partial match)")
	cmd.Flags().BoolVar(&cached, "cached", false, "Show the number of cached snapshots")

	return cmd
}

func runList(out io.Writer, nameFilter string, cached bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dump, err := summary.Load(cfg.Settings.SummaryPath)
	if err != nil {
		return err
	}
	reg := dump.Registry()
	keys := reg.Filter(nameFilter)

	if len(keys) == 0 {
		_, _ = fmt.Fprintln(out, "No repositories found")
		return nil
	}

	manager := cache.NewManager(cfg.Settings.SnapshotsDir)
	// Both colors emit escape sequences of equal length, keeping the columns aligned.
	latestColor := color.New(color.FgGreen)
	missingColor := color.New(color.FgYellow)

	tw := tabwriter.NewWriter(out, 0, 0, TabWidth, ' ', 0)
	if cached {
		_, _ = fmt.Fprintln(tw, "REPOSITORY\tSNAPSHOTS\tLATEST\tCACHED")
	} else {
		_, _ = fmt.Fprintln(tw, "REPOSITORY\tSNAPSHOTS\tLATEST")
	}

	for _, key := range keys {
		entry := reg.Entries[key]
		latest := missingColor.Sprint(NoSnapshot)
		if entry.LatestSnapshot != "" {
			latest = latestColor.Sprint(entry.LatestSnapshot)
		}
		row := fmt.Sprintf("%s\t%d\t%s", key, len(entry.Timestamps()), latest)
		if cached {
			onDisk, err := manager.ListCached(key)
			if err != nil {
				return err
			}
			row += "\t" + strconv.Itoa(len(onDisk))
		}
		_, _ = fmt.Fprintln(tw, row)
	}

	return tw.Flush()
}

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/zygboom-max/tv-rename-tool/internal/history"
	"github.com/zygboom-max/tv-rename-tool/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently executed renames",
		Long: `List the most recent renames from the local history journal.

Every executed rename is recorded with its backend, directory, and both
names. Dry runs are not recorded.

Examples:
  tvrename history
  tvrename history --limit 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")

	return cmd
}

func runHistory(limit int) error {
	db, err := history.Open()
	if err != nil {
		return fmt.Errorf("unable to open history: %w", err)
	}
	defer db.Close()

	entries, err := db.Recent(limit)
	if err != nil {
		return fmt.Errorf("unable to read history: %w", err)
	}

	if len(entries) == 0 {
		ui.InfoMsg("No renames recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			humanize.Time(e.ExecutedAt),
			e.Backend,
			ui.Truncate(e.Directory, 28),
			fmt.Sprintf("%s → %s", ui.Truncate(e.OldName, 32), e.NewName),
		})
	}
	ui.CompactTable([]string{"When", "Backend", "Directory", "Rename"}, rows)

	counts, err := db.CountByBackend()
	if err != nil {
		return nil
	}
	total := 0
	names := make([]string, 0, len(counts))
	for name, n := range counts {
		total += n
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %d", name, counts[name]))
	}
	fmt.Printf("\nTotal recorded: %d (%s)\n", total, strings.Join(parts, ", "))

	return nil
}

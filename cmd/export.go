package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/report"
	"github.com/pable/go-ff-stats/internal/view"
)

var (
	exportTab      string
	exportSplit    string
	exportTeamOnly bool
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a tab's merged leaderboard as CSV",
	Long: `Write the leaderboard of a tab with the same columns the table shows. Every
cell is double-quoted and numbers are written without thousands separators, so
the file reads back through the same parser as the source sheets.

An --out path ending in .zst is zstd-compressed.

Example:
  ffstats export --tab wb2025 --out wb2025.csv
  ffstats export --out all.csv.zst`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportTab, "tab", "general", "general|profile|wb2024|wb2025")
	exportCmd.Flags().StringVar(&exportSplit, "split", "", "split filter offered by the tab")
	exportCmd.Flags().BoolVar(&exportTeamOnly, "team-only", false, "skip players without a team")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	st, err := resolveView(exportTab, exportSplit)
	if err != nil {
		return err
	}
	players, _, err := loadView(cmd.Context(), st)
	if err != nil {
		return err
	}
	if exportTeamOnly {
		players = aggregator.FilterTeam(players)
	}

	if exportOut == "" {
		return report.WriteCSV(os.Stdout, players, report.LeaderboardColumns(st.Tab))
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOut, err)
	}
	defer f.Close()

	if err := writeExport(f, exportOut, players, st.Tab); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", exportOut, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d players to %s\n", len(players), exportOut)
	return nil
}

func writeExport(w io.Writer, path string, players []model.MergedPlayer, tab view.Tab) error {
	cols := report.LeaderboardColumns(tab)
	if !strings.HasSuffix(path, ".zst") {
		return report.WriteCSV(w, players, cols)
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := report.WriteCSV(enc, players, cols); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

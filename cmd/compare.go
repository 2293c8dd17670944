package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/report"
)

var (
	compareTab   string
	compareSplit string
)

var compareCmd = &cobra.Command{
	Use:   "compare <player-a> <player-b>",
	Short: "Head-to-head comparison of two players",
	Long: `Compare two players row by row. With a split filter the kill, match and KPG
rows only count that split; without one the merged totals are used and a kill
row is added for every split either player appeared in.

Example:
  ffstats compare nickz7 xtrap7 --tab wb2024 --split s2`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareTab, "tab", "general", "general|wb2024|wb2025")
	compareCmd.Flags().StringVar(&compareSplit, "split", "", "split filter offered by the tab")
}

func runCompare(cmd *cobra.Command, args []string) error {
	st, err := resolveView(compareTab, compareSplit)
	if err != nil {
		return err
	}
	players, _, err := loadView(cmd.Context(), st)
	if err != nil {
		return err
	}
	a, err := findPlayer(players, args[0], st)
	if err != nil {
		return err
	}
	b, err := findPlayer(players, args[1], st)
	if err != nil {
		return err
	}
	report.PrintComparison(os.Stdout, aggregator.Compare(a, b, st.ComparisonSplits()))
	return nil
}

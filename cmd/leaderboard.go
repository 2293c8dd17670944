package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/identity"
	"github.com/pable/go-ff-stats/internal/report"
)

var (
	lbTab      string
	lbSplit    string
	lbTop      int
	lbTeamOnly bool
	lbPlayer   string
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"lb"},
	Short:   "Print the merged kill leaderboard of a tab",
	Long: `Download the leaderboard sheets of a tab, merge them per player and print the
ranking.

Tabs and split filters:
  general   all, wb24s1, wb24s2, wb25s1, wb25s2
  profile   all
  wb2024    all, s1, s2
  wb2025    all, s1, s2

Example:
  ffstats leaderboard --tab wb2025 --split s1 --top 20 --player nickz7`,
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().StringVar(&lbTab, "tab", "general", "general|profile|wb2024|wb2025")
	leaderboardCmd.Flags().StringVar(&lbSplit, "split", "", "split filter offered by the tab (default all)")
	leaderboardCmd.Flags().IntVar(&lbTop, "top", 0, "only print the N best players (0 = all)")
	leaderboardCmd.Flags().BoolVar(&lbTeamOnly, "team-only", false, "hide players without a team")
	leaderboardCmd.Flags().StringVar(&lbPlayer, "player", "", "highlight a player's row")
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	st, err := resolveView(lbTab, lbSplit)
	if err != nil {
		return err
	}
	players, b, err := loadView(cmd.Context(), st)
	if err != nil {
		return err
	}
	if lbTeamOnly {
		players = aggregator.FilterTeam(players)
	}

	var focusKey string
	if lbPlayer != "" {
		focusKey = identity.Key(lbPlayer)
		if _, ok := aggregator.Find(players, lbPlayer); !ok {
			fmt.Fprintf(os.Stderr, "warning: %q is not in %s\n", lbPlayer, st)
			focusKey = ""
		}
	}

	shown := aggregator.Top(players, lbTop)
	report.PrintViewHeader(os.Stdout, st.Events(), len(players), loadedSheets(st, b), b.Failed)
	report.PrintLeaderboard(os.Stdout, shown, report.LeaderboardColumns(st.Tab), focusKey)

	if focusKey != "" {
		if p, _ := aggregator.Find(players, lbPlayer); p.Rank > len(shown) {
			fmt.Fprintf(os.Stdout, "\n> %s is ranked #%d with %d kills\n", p.Player, p.Rank, p.TotalKills)
		}
	}
	return nil
}

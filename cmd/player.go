package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/report"
)

var (
	playerTab   string
	playerSplit string
)

var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Show one player's merged profile with the per-split breakdown",
	Long: `Print a player's totals over the selected view and the kills/matches of every
split they appeared in. Names are matched case-insensitively and through the
alias table, so "xtrap7" finds TRAP7.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().StringVar(&playerTab, "tab", "profile", "general|profile|wb2024|wb2025")
	playerCmd.Flags().StringVar(&playerSplit, "split", "", "split filter offered by the tab")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	st, err := resolveView(playerTab, playerSplit)
	if err != nil {
		return err
	}
	players, _, err := loadView(cmd.Context(), st)
	if err != nil {
		return err
	}
	p, err := findPlayer(players, args[0], st)
	if err != nil {
		return err
	}
	report.PrintPlayerProfile(os.Stdout, p)
	return nil
}

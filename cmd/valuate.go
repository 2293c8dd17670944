package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/report"
	"github.com/pable/go-ff-stats/internal/valuation"
	"github.com/pable/go-ff-stats/internal/view"
)

var (
	valuateForm   string
	valuatePlayer string
	valuateJSON   bool
)

var valuateCmd = &cobra.Command{
	Use:   "valuate",
	Short: "Estimate a player's market value from a YAML form",
	Long: `Score a player 0-100 from role, official kills, social reach, titles and
recent results, and map the score to a tier and salary band.

With --player the official kills (and the name, when the form has none) are
taken from the merged general leaderboard.

Form example:
  player: Nickz7
  role: rush1            # rush1|rush2|grandeiro|sniper|flex
  captain: true
  kills: 1402
  booyahs: 12
  followers: 250000
  engagement: 4.5        # percent
  competitions: [{id: lbff, type: PRESENCIAL, tier: A}]
  titles: [{name: ffws_br, count: 1}]
  participations: [{name: lbff, count: 3}]
  recent: [{name: WB 2025 S2, type: ONLINE, position: 2}]`,
	Args: cobra.NoArgs,
	RunE: runValuate,
}

func init() {
	valuateCmd.Flags().StringVarP(&valuateForm, "form", "f", "", "path to the YAML form (required)")
	valuateCmd.Flags().StringVar(&valuatePlayer, "player", "", "fill kills from the merged leaderboard")
	valuateCmd.Flags().BoolVar(&valuateJSON, "json", false, "print the result as JSON")
	valuateCmd.MarkFlagRequired("form")
}

func runValuate(cmd *cobra.Command, _ []string) error {
	f, err := os.Open(valuateForm)
	if err != nil {
		return fmt.Errorf("open form: %w", err)
	}
	defer f.Close()

	form, err := valuation.DecodeForm(f)
	if err != nil {
		return fmt.Errorf("%s: %w", valuateForm, err)
	}

	if valuatePlayer != "" {
		st := view.Initial()
		players, _, err := loadView(cmd.Context(), st)
		if err != nil {
			return err
		}
		p, err := findPlayer(players, valuatePlayer, st)
		if err != nil {
			return err
		}
		form.OfficialKills = p.TotalKills
		if form.PlayerName == "" {
			form.PlayerName = p.Player
		}
	}

	res, err := valuation.Evaluate(form)
	if err != nil {
		return err
	}
	if valuateJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	report.PrintValuation(os.Stdout, res)
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/report"
	"github.com/pable/go-ff-stats/internal/source"
)

var (
	standingsStage  string
	standingsMVP    bool
	standingsStages bool
)

var standingsCmd = &cobra.Command{
	Use:   "standings <season>",
	Short: "Print the team standings (and MVP rankings) of a season stage",
	Long: `Download a season's team standings sheet and print it ordered by rank.
Seasons are split keys: wb2024s1, wb2024s2, wb2025s1, wb2025s2.

Example:
  ffstats standings wb2025s2 --stage pointrush
  ffstats standings wb2024s1 --mvp`,
	Args: cobra.ExactArgs(1),
	RunE: runStandings,
}

func init() {
	standingsCmd.Flags().StringVar(&standingsStage, "stage", "", "main|general|pointrush|final (default: the season's first stage)")
	standingsCmd.Flags().BoolVar(&standingsMVP, "mvp", false, "also print the MVP rankings")
	standingsCmd.Flags().BoolVar(&standingsStages, "stages", false, "list the season's stages and exit")
}

func runStandings(cmd *cobra.Command, args []string) error {
	season, err := model.ParseSplit(args[0])
	if err != nil {
		return err
	}
	if standingsStages {
		for _, s := range source.Stages(season) {
			fmt.Fprintf(os.Stdout, "%-10s  %s  (%d MVP sheet(s))\n", s.Stage, s.Label, len(s.MVPs))
		}
		return nil
	}

	src, err := source.Standings(season, source.Stage(standingsStage))
	if err != nil {
		return err
	}

	client, release := newClient()
	defer release()

	fmt.Fprintf(os.Stderr, "Fetching %s standings...\n", src.Label)
	st, err := client.FetchStandings(cmd.Context(), src)
	if err != nil {
		return err
	}

	report.PrintTeamStandings(os.Stdout, fmt.Sprintf("WB %s: %s", season.Label(), src.Label), st.Teams)
	if !standingsMVP {
		return nil
	}
	if len(st.MVPs) == 0 {
		fmt.Fprintln(os.Stdout, "\n(no MVP sheets for this stage)")
		return nil
	}
	for i, mvps := range st.MVPs {
		report.PrintMVPs(os.Stdout, fmt.Sprintf("MVP %d/%d", i+1, len(st.MVPs)), mvps)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/source"
	"github.com/pable/go-ff-stats/internal/storage"
	"github.com/pable/go-ff-stats/internal/view"
)

var (
	sqlTab       string
	sqlSplit     string
	sqlStandings string
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a SQL query over a merged view",
	Long: `Load a tab's merged leaderboard into an in-memory SQLite database and run an
arbitrary query against it. Nothing is written to disk.

Schema overview:
  players(identity_key, rank, player, team, events, total_kills, matches, kpg,
    headshots, knockdowns, gloowalls, gloowalls_destroyed, revives,
    allies_revived, sources)
  split_stats(identity_key, split, kills, matches, kpg, display)
  source_rows(split, row_num, player, identity_key, team, kills, matches,
    headshots, knockdowns)
  team_standings(season, stage, rank, team, points, booyahs, kills, matches)
    (only with --standings)

Example:
  ffstats sql "SELECT team, SUM(total_kills) k FROM players GROUP BY team ORDER BY k DESC LIMIT 10"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func init() {
	sqlCmd.Flags().StringVar(&sqlTab, "tab", "general", "general|profile|wb2024|wb2025")
	sqlCmd.Flags().StringVar(&sqlSplit, "split", "", "split filter offered by the tab")
	sqlCmd.Flags().StringVar(&sqlStandings, "standings", "", "also load a season's default-stage team standings (e.g. wb2025s1)")
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	st, err := resolveView(sqlTab, sqlSplit)
	if err != nil {
		return err
	}

	db, err := storage.Open(storage.Memory)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := loadWorkbench(cmd, db, st); err != nil {
		return err
	}

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}

// loadWorkbench fills db with the merged view, the raw rows behind it and,
// with --standings, one season's team table.
func loadWorkbench(cmd *cobra.Command, db *storage.DB, st view.State) error {
	players, b, err := loadView(cmd.Context(), st)
	if err != nil {
		return err
	}
	if err := db.InsertPlayers(players); err != nil {
		return fmt.Errorf("load players: %w", err)
	}
	for _, s := range st.Splits() {
		if err := db.InsertSourceRows(s, b.Datasets[s]); err != nil {
			return fmt.Errorf("load %s rows: %w", s, err)
		}
	}

	if sqlStandings == "" {
		return nil
	}
	season, err := model.ParseSplit(sqlStandings)
	if err != nil {
		return err
	}
	src, err := source.Standings(season, "")
	if err != nil {
		return err
	}
	client, release := newClient()
	defer release()
	standings, err := client.FetchStandings(cmd.Context(), src)
	if err != nil {
		return err
	}
	return db.InsertTeamStandings(season.Key(), string(src.Stage), standings.Teams)
}

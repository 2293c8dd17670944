// Package report renders merged leaderboards, profiles, comparisons,
// standings and valuations as terminal tables and CSV.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/sheet"
	"github.com/pable/go-ff-stats/internal/valuation"
)

// num formats numbers the way the source sheets do ("1.402", "1,50").
var num = message.NewPrinter(language.BrazilianPortuguese)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

func headers(cols []Column) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = c.Label
	}
	return out
}

// PrintViewHeader prints a one-line summary of the view above a table.
func PrintViewHeader(w io.Writer, events string, players, sources int, failed []model.Split) {
	fmt.Fprintf(w, "\nView: %s  |  Players: %s  |  Sheets: %d", events, num.Sprintf("%d", players), sources)
	if len(failed) > 0 {
		fmt.Fprintf(w, "  |  Unavailable: %v", failed)
	}
	fmt.Fprint(w, "\n\n")
}

// PrintLeaderboard prints players with the given columns. The row of the
// player whose identity key is focusKey is marked with ">".
func PrintLeaderboard(w io.Writer, players []model.MergedPlayer, cols []Column, focusKey string) {
	table := newTable(w)
	table.Header(append([]any{" "}, headers(cols)...)...)

	for _, p := range players {
		marker := " "
		if focusKey != "" && p.Key == focusKey {
			marker = ">"
		}
		row := []any{marker}
		for _, c := range cols {
			row = append(row, displayValue(c.Value(p)))
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintPlayerProfile prints a player's totals followed by the per-split
// breakdown recovered from the split snapshots.
func PrintPlayerProfile(w io.Writer, p model.MergedPlayer) {
	fmt.Fprintf(w, "\n%s  |  Team: %s  |  Rank: #%d  |  Sheets: %d\n\n", p.Player, p.Team, p.Rank, p.Sources)

	table := newTable(w)
	table.Header("KILLS", "MATCHES", "KPG", "HS", "HS%", "KNOCKS", "GLOO", "GLOO_DEST", "REVIVES", "ALLIES_REV")
	table.Append(
		num.Sprintf("%d", p.TotalKills),
		num.Sprintf("%d", p.Matches),
		num.Sprintf("%.2f", p.KPG),
		num.Sprintf("%d", p.Headshots),
		fmt.Sprintf("%.0f%%", p.HeadshotPct()),
		num.Sprintf("%d", p.Knockdowns),
		num.Sprintf("%d", p.Gloowalls),
		num.Sprintf("%d", p.GloowallsDestroyed),
		num.Sprintf("%d", p.Revives),
		num.Sprintf("%d", p.AlliesRevived),
	)
	table.Render()

	fmt.Fprintln(w)
	splits := newTable(w)
	splits.Header("SPLIT", "KILLS", "MATCHES", "KPG")
	var total sheet.SplitStat
	for _, s := range model.AllSplits {
		st, ok := sheet.ParseStatString(p.SplitDisplay.Get(s))
		if !ok {
			splits.Append(s.Label(), "—", "—", "—")
			continue
		}
		total = total.Add(st)
		splits.Append(s.Label(), num.Sprintf("%d", st.Kills), num.Sprintf("%d", st.Matches), num.Sprintf("%.2f", st.KPG()))
	}
	splits.Append("WB TOTAL", num.Sprintf("%d", total.Kills), num.Sprintf("%d", total.Matches), num.Sprintf("%.2f", total.KPG()))
	splits.Render()
}

// PrintComparison prints a head-to-head with the better value of each row
// marked with "*".
func PrintComparison(w io.Writer, c aggregator.Comparison) {
	fmt.Fprintf(w, "\n%s (%s)  vs  %s (%s)\n\n", c.A.Player, c.A.Team, c.B.Player, c.B.Team)

	table := newTable(w)
	table.Header("STAT", c.A.Player, c.B.Player)
	for _, r := range c.Rows {
		a, b := compareValue(r.Label, r.A), compareValue(r.Label, r.B)
		switch r.Winner {
		case 1:
			a = "*" + a
		case 2:
			b = "*" + b
		}
		table.Append(r.Label, a, b)
	}
	table.Append("PLACAR", strconv.Itoa(c.ScoreA), strconv.Itoa(c.ScoreB))
	table.Render()
}

func compareValue(label string, v float64) string {
	switch label {
	case "Média (KPG)":
		return num.Sprintf("%.2f", v)
	case "Ranking Geral":
		return fmt.Sprintf("#%d", int(v))
	default:
		return num.Sprintf("%d", int(v))
	}
}

// PrintTeamStandings prints a team standings table ordered by rank.
func PrintTeamStandings(w io.Writer, title string, teams []model.TeamStanding) {
	fmt.Fprintf(w, "\n%s\n\n", title)
	if len(teams) == 0 {
		fmt.Fprintln(w, "  (no data)")
		return
	}
	sorted := append([]model.TeamStanding(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	table := newTable(w)
	table.Header("#", "TEAM", "PTS", "BOOYAHS", "KILLS", "MATCHES")
	for _, t := range sorted {
		table.Append(
			strconv.Itoa(t.Rank),
			t.Team,
			num.Sprintf("%d", t.Points),
			strconv.Itoa(t.Booyahs),
			num.Sprintf("%d", t.Kills),
			strconv.Itoa(t.Matches),
		)
	}
	table.Render()
}

// PrintMVPs prints an MVP ranking.
func PrintMVPs(w io.Writer, title string, mvps []model.MVPStanding) {
	fmt.Fprintf(w, "\n%s\n\n", title)
	if len(mvps) == 0 {
		fmt.Fprintln(w, "  (no data)")
		return
	}
	table := newTable(w)
	table.Header("#", "PLAYER", "TEAM", "KILLS", "DAMAGE", "ASSISTS", "MVP")
	for _, m := range mvps {
		table.Append(
			strconv.Itoa(m.Rank),
			m.Player,
			m.Team,
			num.Sprintf("%d", m.Kills),
			m.Damage,
			strconv.Itoa(m.Assists),
			strconv.Itoa(m.MVPCount),
		)
	}
	table.Render()
}

// PrintValuation prints a valuation result and its breakdown.
func PrintValuation(w io.Writer, r valuation.Result) {
	fmt.Fprintf(w, "\n%s  |  Score: %d/100  |  %s  |  %s\n\n", r.Player, r.Score, r.Tier, r.Salary)

	b := r.Breakdown
	table := newTable(w)
	table.Header("COMPONENT", "POINTS", "MAX")
	table.Append("Role / captain", num.Sprintf("%.1f", b.Role), "~20")
	table.Append("Official kills", num.Sprintf("%.1f", b.Kills), "20")
	table.Append("Social", num.Sprintf("%.1f", b.Social), "10")
	table.Append("Titles / competitions", num.Sprintf("%.1f", b.Competition), "30")
	table.Append("Recent results", num.Sprintf("%.1f", b.Recent), "20")
	table.Render()
}

// PrintDiagnostics prints how each leaderboard sheet was interpreted.
func PrintDiagnostics(w io.Writer, diags map[model.Split]sheet.Diagnostics, failed []model.Split) {
	table := newTable(w)
	table.Header("SPLIT", "DELIM", "HEADER", "ROWS", "UNKNOWN", "MALFORMED", "ABSENT")
	for _, s := range model.AllSplits {
		d, ok := diags[s]
		if !ok {
			continue
		}
		header := strconv.Itoa(d.HeaderIndex)
		if !d.HeaderFound {
			header += " (fallback)"
		}
		table.Append(
			s.Key(),
			string(d.Delimiter),
			header,
			strconv.Itoa(d.DataRows),
			strconv.Itoa(d.UnknownNames),
			strconv.Itoa(d.MalformedRows),
			fmt.Sprint(d.Absent),
		)
	}
	for _, s := range failed {
		table.Append(s.Key(), "—", "—", "0", "—", "—", "fetch failed")
	}
	table.Render()
}

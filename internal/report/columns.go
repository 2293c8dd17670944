package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/view"
)

// Column is one leaderboard column. Value returns an int, a float64 or a
// string; numbers are formatted per output.
type Column struct {
	Key   string
	Label string
	Value func(p model.MergedPlayer) any
}

func intCol(key, label string, f func(p model.MergedPlayer) int) Column {
	return Column{Key: key, Label: label, Value: func(p model.MergedPlayer) any { return f(p) }}
}

// LeaderboardColumns returns the columns of a tab's leaderboard. Year tabs
// only show their own per-split kill columns.
func LeaderboardColumns(tab view.Tab) []Column {
	cols := []Column{
		intCol("rank", "#", func(p model.MergedPlayer) int { return p.Rank }),
		{Key: "player", Label: "Jogador", Value: func(p model.MergedPlayer) any { return p.Player }},
		{Key: "team", Label: "Time", Value: func(p model.MergedPlayer) any { return p.Team }},
		intCol("totalKills", "Total Abates", func(p model.MergedPlayer) int { return p.TotalKills }),
		intCol("matches", "Quedas", func(p model.MergedPlayer) int { return p.Matches }),
		{Key: "kpg", Label: "KPG", Value: func(p model.MergedPlayer) any { return p.KPG }},
	}

	for _, s := range tabSplits(tab) {
		key := "kills" + strings.ToLower(strings.ReplaceAll(s.Short(), " ", ""))
		cols = append(cols, intCol(key, "Abates "+s.Short(), func(p model.MergedPlayer) int {
			return p.SplitKills.Get(s)
		}))
	}

	cols = append(cols,
		intCol("headshots", "Capas", func(p model.MergedPlayer) int { return p.Headshots }),
		intCol("knockdowns", "Derrubados", func(p model.MergedPlayer) int { return p.Knockdowns }),
		intCol("gloowalls", "Gelos", func(p model.MergedPlayer) int { return p.Gloowalls }),
		intCol("gloowallsDestroyed", "Gelos Destruídos", func(p model.MergedPlayer) int { return p.GloowallsDestroyed }),
		intCol("revives", "Reviveu", func(p model.MergedPlayer) int { return p.Revives }),
		intCol("alliesRevived", "Aliados Revividos", func(p model.MergedPlayer) int { return p.AlliesRevived }),
		Column{Key: "wbTotal", Label: "WB Total", Value: func(p model.MergedPlayer) any {
			t := aggregator.SplitTotals(p.PlayerRecord)
			return model.FormatSplitStat(t.Kills, t.Matches)
		}},
	)
	return cols
}

func tabSplits(tab view.Tab) []model.Split {
	switch tab {
	case view.TabWB2024:
		return []model.Split{model.Split24S1, model.Split24S2}
	case view.TabWB2025:
		return []model.Split{model.Split25S1, model.Split25S2}
	default:
		return model.AllSplits
	}
}

// rawValue formats v for machine-readable output.
func rawValue(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// displayValue formats v for a terminal table, with pt-BR digit grouping.
func displayValue(v any) string {
	switch x := v.(type) {
	case int:
		return num.Sprintf("%d", x)
	case float64:
		return num.Sprintf("%.2f", x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

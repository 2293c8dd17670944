package aggregator

import (
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/sheet"
)

// CompareRow is one line of a head-to-head comparison. Winner is 0 for a
// tie, 1 or 2 for the better player.
type CompareRow struct {
	Label  string  `json:"label"`
	A      float64 `json:"a"`
	B      float64 `json:"b"`
	Winner int     `json:"winner"`
}

// Comparison is the head-to-head between two merged players.
type Comparison struct {
	A      model.MergedPlayer `json:"a"`
	B      model.MergedPlayer `json:"b"`
	Rows   []CompareRow       `json:"rows"`
	ScoreA int                `json:"scoreA"`
	ScoreB int                `json:"scoreB"`
}

// Compare builds the head-to-head between a and b. With splits the kill,
// match and KPG rows are summed from the per-split display strings of those
// splits only; without, the merged totals are used and per-split kill rows
// are added.
func Compare(a, b model.MergedPlayer, splits []model.Split) Comparison {
	sa, sb := filtered(a, splits), filtered(b, splits)

	c := Comparison{A: a, B: b}
	c.add("Ranking Geral", float64(a.Rank), float64(b.Rank), true)
	c.add("Total Abates (Filtrado)", float64(sa.Kills), float64(sb.Kills), false)
	c.add("Partidas (Filtrado)", float64(sa.Matches), float64(sb.Matches), false)
	c.add("Média (KPG)", sa.KPG(), sb.KPG(), false)

	if len(splits) == 0 {
		for i := len(model.AllSplits) - 1; i >= 0; i-- {
			s := model.AllSplits[i]
			ka, kb := a.SplitKills.Get(s), b.SplitKills.Get(s)
			if ka > 0 || kb > 0 {
				c.add("Abates "+s.Label(), float64(ka), float64(kb), false)
			}
		}
	}

	c.add("Capas (Total)", float64(a.Headshots), float64(b.Headshots), false)
	c.add("Derrubados (Total)", float64(a.Knockdowns), float64(b.Knockdowns), false)
	c.add("Gelos (Total)", float64(a.Gloowalls), float64(b.Gloowalls), false)
	return c
}

func (c *Comparison) add(label string, a, b float64, lowerWins bool) {
	w := winner(a, b, lowerWins)
	switch w {
	case 1:
		c.ScoreA++
	case 2:
		c.ScoreB++
	}
	c.Rows = append(c.Rows, CompareRow{Label: label, A: a, B: b, Winner: w})
}

func winner(a, b float64, lowerWins bool) int {
	switch {
	case a == b:
		return 0
	case (a > b) != lowerWins:
		return 1
	default:
		return 2
	}
}

// filtered returns the kills/matches of p restricted to splits, or its
// merged totals when splits is empty.
func filtered(p model.MergedPlayer, splits []model.Split) sheet.SplitStat {
	if len(splits) == 0 {
		return sheet.SplitStat{Kills: p.TotalKills, Matches: p.Matches}
	}
	return SplitTotals(p.PlayerRecord, splits...)
}

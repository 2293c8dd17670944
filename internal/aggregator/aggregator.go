package aggregator

import (
	"sort"
	"strings"

	"github.com/pable/go-ff-stats/internal/identity"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/sheet"
)

const noTeam = "-"

// Merge folds the per-split datasets into one record per player identity.
// Datasets are folded in the order given; a nil or empty dataset (a failed
// fetch) simply contributes nothing. events is stamped on every merged record
// as the provenance label of the view.
//
// Ranking is by TotalKills desc, then KPG desc, then identity key asc.
func Merge(datasets [][]model.PlayerRecord, events string) []model.MergedPlayer {
	// ---- Pass 1: fold every record into its identity slot. ----

	byKey := make(map[string]int)
	var merged []model.MergedPlayer

	for _, ds := range datasets {
		for _, rec := range ds {
			name := identity.Canonicalize(rec.Player)
			key := strings.ToLower(name)

			i, seen := byKey[key]
			if !seen {
				seed := rec
				seed.Player = name
				byKey[key] = len(merged)
				merged = append(merged, model.MergedPlayer{PlayerRecord: seed, Key: key, Sources: 1})
				continue
			}
			fold(&merged[i], rec, name)
		}
	}

	// ---- Pass 2: derived fields, ordering and rank. ----

	for i := range merged {
		merged[i].RefreshKPG()
		merged[i].Events = events
	}
	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.TotalKills != b.TotalKills {
			return a.TotalKills > b.TotalKills
		}
		if a.KPG != b.KPG {
			return a.KPG > b.KPG
		}
		return a.Key < b.Key
	})
	for i := range merged {
		merged[i].Rank = i + 1
	}
	return merged
}

// fold adds rec into an existing merged record. name is rec's canonical name.
func fold(m *model.MergedPlayer, rec model.PlayerRecord, name string) {
	// Mixed case beats an all-caps spelling of the same identity.
	if m.Player != name && identity.IsAllCaps(m.Player) && !identity.IsAllCaps(name) {
		m.Player = name
	}
	if t := strings.TrimSpace(rec.Team); t != "" && t != noTeam && t != m.Team {
		m.Team = t
	}

	m.TotalKills += rec.TotalKills
	m.Matches += rec.Matches
	m.Headshots += rec.Headshots
	m.Knockdowns += rec.Knockdowns
	m.Gloowalls += rec.Gloowalls
	m.GloowallsDestroyed += rec.GloowallsDestroyed
	m.Revives += rec.Revives
	m.AlliesRevived += rec.AlliesRevived

	m.SplitKills.Add(rec.SplitKills)
	m.SplitDisplay.Overlay(rec.SplitDisplay)
	m.Sources++
}

// Select returns the datasets of the given splits in the given order. Splits
// missing from all yield an empty dataset.
func Select(all map[model.Split][]model.PlayerRecord, splits []model.Split) [][]model.PlayerRecord {
	out := make([][]model.PlayerRecord, 0, len(splits))
	for _, s := range splits {
		out = append(out, all[s])
	}
	return out
}

// SplitTotals sums kills and matches from p's per-split display strings.
// With no splits every split is counted. Absent splits contribute nothing.
func SplitTotals(p model.PlayerRecord, splits ...model.Split) sheet.SplitStat {
	if len(splits) == 0 {
		splits = model.AllSplits
	}
	var total sheet.SplitStat
	for _, s := range splits {
		if st, ok := sheet.ParseStatString(p.SplitDisplay.Get(s)); ok {
			total = total.Add(st)
		}
	}
	return total
}

// Find returns the merged player whose identity matches name, resolving
// aliases ("trap" finds TRAP7).
func Find(players []model.MergedPlayer, name string) (model.MergedPlayer, bool) {
	key := identity.Key(name)
	for _, p := range players {
		if p.Key == key {
			return p, true
		}
	}
	return model.MergedPlayer{}, false
}

// FilterTeam keeps players that have a team, preserving order and rank.
func FilterTeam(players []model.MergedPlayer) []model.MergedPlayer {
	var out []model.MergedPlayer
	for _, p := range players {
		if t := strings.TrimSpace(p.Team); t != "" && t != noTeam {
			out = append(out, p)
		}
	}
	return out
}

// Top returns at most n players; n <= 0 returns all of them.
func Top(players []model.MergedPlayer, n int) []model.MergedPlayer {
	if n <= 0 || n >= len(players) {
		return players
	}
	return players[:n]
}

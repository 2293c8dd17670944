package model

import (
	"fmt"
	"math"
	"strings"
)

// Split identifies one published split spreadsheet of the WB circuit.
type Split int

const (
	Split24S1 Split = iota
	Split24S2
	Split25S1
	Split25S2
)

// AllSplits lists every split in publication order.
var AllSplits = []Split{Split24S1, Split24S2, Split25S1, Split25S2}

// Key returns the stable identifier used in flags, JSON and SQL ("wb2024s1").
func (s Split) Key() string {
	switch s {
	case Split24S1:
		return "wb2024s1"
	case Split24S2:
		return "wb2024s2"
	case Split25S1:
		return "wb2025s1"
	case Split25S2:
		return "wb2025s2"
	default:
		return "?"
	}
}

// Events returns the provenance label stamped on records from this split.
func (s Split) Events() string {
	switch s {
	case Split24S1:
		return "WB 24 S1"
	case Split24S2:
		return "WB 24 S2"
	case Split25S1:
		return "WB 25 S1"
	case Split25S2:
		return "WB 25 S2"
	default:
		return "?"
	}
}

// Label is the short human label used in table headers.
func (s Split) Label() string {
	switch s {
	case Split24S1:
		return "24 Split 1"
	case Split24S2:
		return "24 Split 2"
	case Split25S1:
		return "25 Split 1"
	case Split25S2:
		return "25 Split 2"
	default:
		return "?"
	}
}

// Short is the compact label used in column names ("24 S1").
func (s Split) Short() string {
	return strings.TrimPrefix(s.Events(), "WB ")
}

func (s Split) String() string { return s.Key() }

// ParseSplit resolves a split key such as "wb2025s1" (case-insensitive).
func ParseSplit(key string) (Split, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, s := range AllSplits {
		if s.Key() == k {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown split %q", key)
}

// ---- Per-split optional fields ----

// SplitKills holds the per-split kill counters. Zero means the player had no
// row in that split (or the split was not part of the merge).
type SplitKills struct {
	WB24S1 int `json:"kills24s1"`
	WB24S2 int `json:"kills24s2"`
	WB25S1 int `json:"kills25s1"`
	WB25S2 int `json:"kills25s2"`
}

// Get returns the counter for s.
func (k SplitKills) Get(s Split) int {
	switch s {
	case Split24S1:
		return k.WB24S1
	case Split24S2:
		return k.WB24S2
	case Split25S1:
		return k.WB25S1
	case Split25S2:
		return k.WB25S2
	}
	return 0
}

// Set stores v as the counter for s.
func (k *SplitKills) Set(s Split, v int) {
	switch s {
	case Split24S1:
		k.WB24S1 = v
	case Split24S2:
		k.WB24S2 = v
	case Split25S1:
		k.WB25S1 = v
	case Split25S2:
		k.WB25S2 = v
	}
}

// Add sums o into k field by field.
func (k *SplitKills) Add(o SplitKills) {
	k.WB24S1 += o.WB24S1
	k.WB24S2 += o.WB24S2
	k.WB25S1 += o.WB25S1
	k.WB25S2 += o.WB25S2
}

// SplitDisplay holds the per-split "<kills> (<matches>)" snapshots.
// An empty string means absent.
type SplitDisplay struct {
	WB24S1 string `json:"wb2024s1,omitempty"`
	WB24S2 string `json:"wb2024s2,omitempty"`
	WB25S1 string `json:"wb2025s1,omitempty"`
	WB25S2 string `json:"wb2025s2,omitempty"`
}

// Get returns the display string for s, or "" when absent.
func (d SplitDisplay) Get(s Split) string {
	switch s {
	case Split24S1:
		return d.WB24S1
	case Split24S2:
		return d.WB24S2
	case Split25S1:
		return d.WB25S1
	case Split25S2:
		return d.WB25S2
	}
	return ""
}

// Set stores v as the display string for s.
func (d *SplitDisplay) Set(s Split, v string) {
	switch s {
	case Split24S1:
		d.WB24S1 = v
	case Split24S2:
		d.WB24S2 = v
	case Split25S1:
		d.WB25S1 = v
	case Split25S2:
		d.WB25S2 = v
	}
}

// Overlay copies every non-empty field of o over d (last write wins).
func (d *SplitDisplay) Overlay(o SplitDisplay) {
	for _, s := range AllSplits {
		if v := o.Get(s); v != "" {
			d.Set(s, v)
		}
	}
}

// FormatSplitStat renders the historical "<kills> (<matches>)" format.
func FormatSplitStat(kills, matches int) string {
	return fmt.Sprintf("%d (%d)", kills, matches)
}

// ---- Player records ----

// PlayerRecord is one player's line from one split spreadsheet. After merging
// the same shape carries the summed totals.
type PlayerRecord struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Team   string `json:"team"`
	Events string `json:"events"`

	TotalKills int     `json:"totalKills"`
	Matches    int     `json:"matches"`
	KPG        float64 `json:"kpg"`

	Headshots          int `json:"headshots"`
	Knockdowns         int `json:"knockdowns"`
	Gloowalls          int `json:"gloowalls"`
	GloowallsDestroyed int `json:"gloowallsDestroyed"`
	Revives            int `json:"revives"`
	AlliesRevived      int `json:"alliesRevived"`

	SplitKills   SplitKills   `json:"splitKills"`
	SplitDisplay SplitDisplay `json:"splitDisplay"`
}

// HeadshotPct is headshots as a percentage of kills.
func (p *PlayerRecord) HeadshotPct() float64 {
	if p.TotalKills == 0 {
		return 0
	}
	return float64(p.Headshots) / float64(p.TotalKills) * 100
}

// RefreshKPG recomputes KPG from TotalKills and Matches.
func (p *PlayerRecord) RefreshKPG() {
	p.KPG = KillsPerGame(p.TotalKills, p.Matches)
}

// KillsPerGame returns kills/matches rounded to 2 decimals, or 0 without matches.
func KillsPerGame(kills, matches int) float64 {
	if matches <= 0 {
		return 0
	}
	return Round2(float64(kills) / float64(matches))
}

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MergedPlayer is the aggregate of every PlayerRecord sharing one identity key.
type MergedPlayer struct {
	PlayerRecord
	Key     string `json:"key"`
	Sources int    `json:"sources"`
}

// ---- Standings ----

// TeamStanding is one row of a team standings sheet.
type TeamStanding struct {
	Rank    int    `json:"rank"`
	Team    string `json:"team"`
	Points  int    `json:"points"`
	Booyahs int    `json:"booyahs"`
	Kills   int    `json:"kills"`
	Matches int    `json:"matches"`
}

// MVPStanding is one row of an MVP ranking sheet. Damage keeps the raw
// spreadsheet text (e.g. "73.515").
type MVPStanding struct {
	Rank     int    `json:"rank"`
	Player   string `json:"player"`
	Team     string `json:"team"`
	Kills    int    `json:"kills"`
	Damage   string `json:"damage"`
	Assists  int    `json:"assists"`
	MVPCount int    `json:"mvpCount"`
}

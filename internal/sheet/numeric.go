package sheet

import (
	"math"
	"strings"

	"github.com/pable/go-ff-stats/internal/model"
)

// ParseCount converts a locale-formatted counter cell into a non-negative
// integer. Dots are thousand separators ("1.402" is 1402); empty cells, the
// "-" placeholder and anything without leading digits become 0.
func ParseCount(cell string) int {
	n, _ := parseCount(cell)
	return n
}

// parseCount also reports whether the cell was a well-formed count (or an
// empty/placeholder cell). A cell that only yields a value through the
// leading-digits fallback, or yields nothing, is not clean.
func parseCount(cell string) (int, bool) {
	v := cleanCell(cell)
	if v == "" || v == "-" {
		return 0, true
	}
	v = strings.ReplaceAll(v, ".", "")

	n, digits := 0, 0
	for _, r := range v {
		if r < '0' || r > '9' {
			break
		}
		if n > (math.MaxInt32-9)/10 {
			return 0, false
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	return n, digits == len(v)
}

// SplitStat is the kills and matches recovered from a "<kills> (<matches>)"
// display string.
type SplitStat struct {
	Kills   int `json:"kills"`
	Matches int `json:"matches"`
}

// KPG returns kills per game rounded to two decimals.
func (s SplitStat) KPG() float64 {
	return model.KillsPerGame(s.Kills, s.Matches)
}

// Add returns the field-wise sum of s and o.
func (s SplitStat) Add(o SplitStat) SplitStat {
	return SplitStat{Kills: s.Kills + o.Kills, Matches: s.Matches + o.Matches}
}

// ParseStatString parses the historical "<kills> (<matches>)" format. It
// returns false for empty input and the "- (-)" placeholder.
func ParseStatString(val string) (SplitStat, bool) {
	v := strings.TrimSpace(val)
	if v == "" || v == "- (-)" {
		return SplitStat{}, false
	}
	kills, matches, _ := strings.Cut(v, " (")
	matches = strings.TrimSuffix(strings.TrimSpace(matches), ")")
	return SplitStat{Kills: ParseCount(kills), Matches: ParseCount(matches)}, true
}

// LeadingInt parses a rank-like cell: thousand separators are removed and the
// leading digits are read. ok is false when the cell does not start with a
// digit, so callers can fall back to row order.
func LeadingInt(cell string) (int, bool) {
	v := strings.ReplaceAll(cleanCell(cell), ".", "")
	if v == "" || v[0] < '0' || v[0] > '9' {
		return 0, false
	}
	n, _ := parseCount(v)
	return n, true
}

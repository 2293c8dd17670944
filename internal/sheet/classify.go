package sheet

import "strings"

// HeaderLookahead is how many non-blank rows are inspected for a header.
const HeaderLookahead = 20

var (
	rankWords   = []string{"rank"}
	rankExact   = []string{"#", "pos"}
	nameWords   = []string{"team", "time", "equipe", "player", "jogador", "nome"}
	pointsWords = []string{"pts", "pontos", "points", "total", "score"}
	killsWords  = []string{"kill", "abates"}
)

// ClassifyHeader returns the index of the first row, among the first
// HeaderLookahead rows, that looks like a header: it has a name-like column
// together with a points-like, kills-like or rank-like column. When no row
// qualifies it returns (0, false).
func ClassifyHeader(rows [][]string) (int, bool) {
	n := len(rows)
	if n > HeaderLookahead {
		n = HeaderLookahead
	}
	for i := 0; i < n; i++ {
		if IsHeader(rows[i]) {
			return i, true
		}
	}
	return 0, false
}

// IsHeader reports whether a single row satisfies the header predicates.
func IsHeader(row []string) bool {
	var hasRank, hasName, hasPoints, hasKills bool
	for _, raw := range row {
		c := normalizeCell(raw)
		if c == "" {
			continue
		}
		if containsAny(c, rankWords) || equalsAny(c, rankExact) {
			hasRank = true
		}
		if containsAny(c, nameWords) {
			hasName = true
		}
		if containsAny(c, pointsWords) {
			hasPoints = true
		}
		if containsAny(c, killsWords) {
			hasKills = true
		}
	}
	return (hasName && hasPoints) || (hasName && hasKills) || (hasRank && hasName)
}

func containsAny(cell string, words []string) bool {
	for _, w := range words {
		if strings.Contains(cell, w) {
			return true
		}
	}
	return false
}

func equalsAny(cell string, words []string) bool {
	for _, w := range words {
		if cell == w {
			return true
		}
	}
	return false
}

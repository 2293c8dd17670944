// Package standings parses team standings and MVP ranking sheets.
package standings

import (
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/sheet"
)

// rows locates the header with the shared classifier and returns the column
// map and data rows. Sources with fewer than two lines yield nothing.
func rows(text string) (sheet.ColumnMap, [][]string, bool) {
	t := sheet.Parse(text)
	if len(t.Rows) < 2 {
		return sheet.ColumnMap{}, nil, false
	}
	return sheet.Standings.Columns(t.Header()), t.Data(), true
}

// rank returns the explicit rank of the row when the sheet has a numeric
// rank cell, else its 1-based position among the data rows.
func rank(cols sheet.ColumnMap, row []string, pos int) int {
	if cols.Has(sheet.FieldRank) {
		if n, ok := sheet.LeadingInt(cols.Cell(row, sheet.FieldRank)); ok {
			return n
		}
	}
	return pos + 1
}

// ParseTeams parses a team standings sheet. Rows with fewer than two cells or
// without a team name are skipped; positional ranks still count them.
func ParseTeams(text string) []model.TeamStanding {
	cols, data, ok := rows(text)
	if !ok {
		return nil
	}
	var out []model.TeamStanding
	for i, row := range data {
		if len(row) < 2 {
			continue
		}
		team := cols.Cell(row, sheet.FieldPlayer)
		if team == "" {
			continue
		}
		out = append(out, model.TeamStanding{
			Rank:    rank(cols, row, i),
			Team:    team,
			Points:  cols.Int(row, sheet.FieldPoints),
			Booyahs: cols.Int(row, sheet.FieldBooyahs),
			Kills:   cols.Int(row, sheet.FieldKills),
			Matches: cols.Int(row, sheet.FieldMatches),
		})
	}
	return out
}

// ParseMVPs parses an MVP ranking sheet. Damage is kept as the sheet text.
func ParseMVPs(text string) []model.MVPStanding {
	cols, data, ok := rows(text)
	if !ok {
		return nil
	}
	var out []model.MVPStanding
	for i, row := range data {
		if len(row) < 2 {
			continue
		}
		player := cols.Cell(row, sheet.FieldPlayer)
		if player == "" {
			continue
		}
		out = append(out, model.MVPStanding{
			Rank:     rank(cols, row, i),
			Player:   player,
			Team:     cols.String(row, sheet.FieldTeam, "-"),
			Kills:    cols.Int(row, sheet.FieldKills),
			Damage:   cols.String(row, sheet.FieldDamage, "-"),
			Assists:  cols.Int(row, sheet.FieldAssists),
			MVPCount: cols.Int(row, sheet.FieldMVPCount),
		})
	}
	return out
}

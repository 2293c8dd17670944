package sheet

import (
	"strings"

	"github.com/pable/go-ff-stats/internal/model"
)

const (
	unknownPlayer = "Unknown"
	noTeam        = "-"
)

// counterFields are the numeric leaderboard fields checked by Diagnostics.
var counterFields = []Field{
	FieldKills, FieldMatches, FieldHeadshots, FieldKnockdowns, FieldGloowalls,
	FieldGloowallsDestroyed, FieldRevives, FieldAlliesRevived,
}

// Diagnostics describes how a source was interpreted. Collecting it never
// changes the records.
type Diagnostics struct {
	Delimiter     rune
	HeaderIndex   int
	HeaderFound   bool
	Columns       ColumnMap
	Absent        []Field
	DataRows      int
	UnknownNames  int // rows emitted with the "Unknown" placeholder name
	MalformedRows int // rows with at least one present counter that did not parse cleanly
}

// AbsentField reports whether f had no column in the source.
func (d Diagnostics) AbsentField(f Field) bool {
	for _, a := range d.Absent {
		if a == f {
			return true
		}
	}
	return false
}

// BuildRecords builds one PlayerRecord per data row. Every row is emitted:
// absent or empty names become "Unknown", absent teams "-", and counters
// default to 0. The split stamps the provenance label and the per-split
// fields.
func BuildRecords(rows [][]string, cols ColumnMap, split model.Split) []model.PlayerRecord {
	out := make([]model.PlayerRecord, 0, len(rows))
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		kills := cols.Int(row, FieldKills)
		matches := cols.Int(row, FieldMatches)

		rec := model.PlayerRecord{
			Rank:               len(out) + 1,
			Player:             cols.String(row, FieldPlayer, unknownPlayer),
			Team:               cols.String(row, FieldTeam, noTeam),
			Events:             split.Events(),
			TotalKills:         kills,
			Matches:            matches,
			KPG:                model.KillsPerGame(kills, matches),
			Headshots:          cols.Int(row, FieldHeadshots),
			Knockdowns:         cols.Int(row, FieldKnockdowns),
			Gloowalls:          cols.Int(row, FieldGloowalls),
			GloowallsDestroyed: cols.Int(row, FieldGloowallsDestroyed),
			Revives:            cols.Int(row, FieldRevives),
			AlliesRevived:      cols.Int(row, FieldAlliesRevived),
		}
		rec.SplitKills.Set(split, kills)
		rec.SplitDisplay.Set(split, model.FormatSplitStat(kills, matches))
		out = append(out, rec)
	}
	return out
}

// ParseLeaderboard runs the whole ingestion pipeline over one split's CSV
// text: delimiter detection, header classification, column mapping and
// record building.
func ParseLeaderboard(text string, split model.Split) ([]model.PlayerRecord, Diagnostics) {
	t := Parse(text)
	cols := Leaderboard.Columns(t.Header())
	data := t.Data()

	diag := Diagnostics{
		Delimiter:   t.Delimiter,
		HeaderIndex: t.HeaderIndex,
		HeaderFound: t.HeaderFound,
		Columns:     cols,
		Absent:      cols.Absent(),
	}
	for _, row := range data {
		if blankRow(row) {
			continue
		}
		diag.DataRows++
		if cols.Cell(row, FieldPlayer) == "" {
			diag.UnknownNames++
		}
		for _, f := range counterFields {
			if _, ok := cols.Index(f); !ok {
				continue
			}
			if _, clean := parseCount(cols.Cell(row, f)); !clean {
				diag.MalformedRows++
				break
			}
		}
	}
	return BuildRecords(data, cols, split), diag
}

// blankRow reports whether every cell is empty after trimming. Lines that are
// entirely blank never reach here, but ",,," rows do.
func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

package sheet

import (
	"strconv"
	"strings"
)

// Field is a semantic column looked up by keyword in a header row.
type Field int

const (
	FieldPlayer Field = iota
	FieldTeam
	FieldKills
	FieldMatches
	FieldHeadshots
	FieldKnockdowns
	FieldGloowalls
	FieldGloowallsDestroyed
	FieldRevives
	FieldAlliesRevived
	FieldRank
	FieldDamage
	FieldAssists
	FieldMVPCount
	FieldPoints
	FieldBooyahs
	numFields
)

var fieldNames = [numFields]string{
	"player", "team", "kills", "matches", "headshots", "knockdowns",
	"gloowalls", "gloowallsDestroyed", "revives", "alliesRevived",
	"rank", "damage", "assists", "mvpCount", "points", "booyahs",
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "?"
	}
	return fieldNames[f]
}

// rule matches a normalised header cell by exact value or by substring.
type rule struct {
	exact    []string
	contains []string
}

func (r rule) match(cell string) bool {
	return equalsAny(cell, r.exact) || containsAny(cell, r.contains)
}

func (r rule) empty() bool {
	return len(r.exact) == 0 && len(r.contains) == 0
}

// Schema is a fixed synonym table mapping fields to header keywords.
type Schema struct {
	name  string
	rules [numFields]rule
}

// Leaderboard is the schema of the per-split kill leaderboards.
var Leaderboard = Schema{
	name: "leaderboard",
	rules: [numFields]rule{
		FieldPlayer:  {contains: []string{"player", "jogador", "nome"}},
		FieldTeam:    {contains: []string{"team", "time", "equipe"}},
		FieldKills:   {contains: []string{"kills", "abates"}},
		FieldMatches: {contains: []string{"matches", "partidas", "jogos", "quedas"}},

		FieldHeadshots:  {contains: []string{"capas", "headshots"}},
		FieldKnockdowns: {contains: []string{"derrubados", "knockdowns", "knocks"}},
		// Exact only: "gelos destruídos" is a different counter.
		FieldGloowalls:          {exact: []string{"gelos", "walls"}},
		FieldGloowallsDestroyed: {contains: []string{"destruído", "destruido", "destroyed"}},
		FieldRevives:            {contains: []string{"reviveu", "resurrections"}},
		FieldAlliesRevived:      {contains: []string{"aliados revividos", "allies revived"}},

		FieldRank:     {exact: []string{"#", "pos"}, contains: []string{"rank"}},
		FieldDamage:   {contains: []string{"dano", "damage"}},
		FieldAssists:  {contains: []string{"assist", "asist"}},
		FieldMVPCount: {contains: []string{"mvp", "qtdade"}},
	},
}

// Standings is the schema of team standings and MVP sheets.
var Standings = Schema{
	name: "standings",
	rules: [numFields]rule{
		FieldPlayer: {
			exact:    []string{"team", "time", "equipe", "player", "jogador", "nome"},
			contains: []string{"team", "time", "player"},
		},
		FieldTeam:     {exact: []string{"team", "time", "equipe"}},
		FieldRank:     {exact: []string{"#", "pos"}, contains: []string{"rank"}},
		FieldPoints:   {exact: []string{"p"}, contains: []string{"pts", "pontos", "points", "total"}},
		FieldBooyahs:  {exact: []string{"b"}, contains: []string{"booyah", "win", "vitoria"}},
		FieldKills:    {exact: []string{"k"}, contains: []string{"kill", "abates", "abate"}},
		FieldMatches:  {exact: []string{"j", "q"}, contains: []string{"match", "queda", "jogo"}},
		FieldDamage:   {contains: []string{"dano", "damage"}},
		FieldAssists:  {contains: []string{"assist", "asist"}},
		FieldMVPCount: {contains: []string{"mvp", "qtdade"}},
	},
}

// Name returns the schema name.
func (s Schema) Name() string { return s.name }

// Columns builds the column map for a header row. Cells are normalised here,
// so raw header cells may be passed.
func (s Schema) Columns(header []string) ColumnMap {
	var m ColumnMap
	cells := normalizeRow(header)
	for f := Field(0); f < numFields; f++ {
		m.idx[f] = -1
		r := s.rules[f]
		if r.empty() {
			continue
		}
		for i, c := range cells {
			if r.match(c) {
				m.idx[f] = i
				break
			}
		}
	}
	return m
}

// BuildColumnMap is Leaderboard.Columns.
func BuildColumnMap(header []string) ColumnMap {
	return Leaderboard.Columns(header)
}

// ColumnMap maps each Field to a zero-based column index or absent.
// The zero value has every field at column 0; build one with Schema.Columns.
type ColumnMap struct {
	idx [numFields]int
}

// Index returns the column of f and whether it is present.
func (m ColumnMap) Index(f Field) (int, bool) {
	i := m.idx[f]
	return i, i >= 0
}

// Has reports whether f has a column.
func (m ColumnMap) Has(f Field) bool {
	return m.idx[f] >= 0
}

// Absent lists the fields with no column, in declaration order.
func (m ColumnMap) Absent() []Field {
	var out []Field
	for f := Field(0); f < numFields; f++ {
		if m.idx[f] < 0 {
			out = append(out, f)
		}
	}
	return out
}

// Cell returns the cleaned cell for f, or "" when the field is absent or the
// row is too short.
func (m ColumnMap) Cell(row []string, f Field) string {
	i := m.idx[f]
	if i < 0 || i >= len(row) {
		return ""
	}
	return cleanCell(row[i])
}

// String returns the cell for f or def when it is empty.
func (m ColumnMap) String(row []string, f Field, def string) string {
	if v := m.Cell(row, f); v != "" {
		return v
	}
	return def
}

// Int returns the cell for f through ParseCount.
func (m ColumnMap) Int(row []string, f Field) int {
	return ParseCount(m.Cell(row, f))
}

// Describe renders the present columns, e.g. "player=0 kills=2".
func (m ColumnMap) Describe() string {
	var b strings.Builder
	for f := Field(0); f < numFields; f++ {
		if m.idx[f] < 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.String())
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(m.idx[f]))
	}
	return b.String()
}

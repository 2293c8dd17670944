package sheet

import (
	"strconv"
	"strings"
	"testing"

	"github.com/pable/go-ff-stats/internal/model"
)

// ---- Row classifier ----

func TestClassifyHeader_SkipsTitleRows(t *testing.T) {
	text := "WB 2025 - Split 1\n,,,\nClassificação Geral\n#,Jogador,Time,Abates,Partidas\n1,Ana,TeamX,10,5\n"
	tbl := Parse(text)
	if !tbl.HeaderFound {
		t.Fatal("expected header to be found")
	}
	if tbl.HeaderIndex != 3 {
		// ",,," is not blank text, so it still occupies row 1.
		t.Errorf("expected header at row 3, got %d", tbl.HeaderIndex)
	}
	if len(tbl.Data()) != 1 {
		t.Errorf("expected 1 data row, got %d", len(tbl.Data()))
	}
}

// TestClassifyHeader_FirstQualifyingRowWins: name+points on row 3 and again on
// row 5 → row 3.
func TestClassifyHeader_FirstQualifyingRowWins(t *testing.T) {
	rows := [][]string{
		{"Tabela"},
		{"rodada 1"},
		{"", ""},
		{"Equipe", "Pts"},
		{"LOUD", "120"},
		{"Team", "Points"},
	}
	idx, found := ClassifyHeader(rows)
	if !found || idx != 3 {
		t.Errorf("expected (3, true), got (%d, %v)", idx, found)
	}
}

func TestClassifyHeader_Combinations(t *testing.T) {
	cases := []struct {
		name string
		row  []string
		want bool
	}{
		{"name+points", []string{"Nome", "Total"}, true},
		{"name+kills", []string{"Player", "Kills"}, true},
		{"rank+name", []string{"#", "Jogador"}, true},
		{"pos exact", []string{"Pos", "Equipe"}, true},
		{"ranking contains", []string{"Ranking", "Time"}, true},
		{"name only", []string{"Jogador", "Capas"}, false},
		{"points+kills no name", []string{"Pts", "Abates"}, false},
		{"position is not pos", []string{"position", "jogador"}, false},
		{"empty", []string{"", ""}, false},
	}
	for _, c := range cases {
		if got := IsHeader(c.row); got != c.want {
			t.Errorf("%s: IsHeader(%v) = %v, want %v", c.name, c.row, got, c.want)
		}
	}
}

func TestClassifyHeader_FallbackToRowZero(t *testing.T) {
	rows := [][]string{{"a", "b"}, {"1", "2"}}
	idx, found := ClassifyHeader(rows)
	if found || idx != 0 {
		t.Errorf("expected (0, false), got (%d, %v)", idx, found)
	}
}

func TestClassifyHeader_LookaheadLimit(t *testing.T) {
	var rows [][]string
	for i := 0; i < HeaderLookahead; i++ {
		rows = append(rows, []string{"x"})
	}
	rows = append(rows, []string{"Player", "Kills"})
	idx, found := ClassifyHeader(rows)
	if found || idx != 0 {
		t.Errorf("header beyond lookahead must not be found, got (%d, %v)", idx, found)
	}
}

func TestDetectDelimiter(t *testing.T) {
	if d := DetectDelimiter("player;team;kills"); d != ';' {
		t.Errorf("expected ';', got %q", d)
	}
	if d := DetectDelimiter("player,team;kills"); d != ',' {
		t.Errorf("expected ',' when both present, got %q", d)
	}
	if d := DetectDelimiter("player"); d != ',' {
		t.Errorf("expected ',' default, got %q", d)
	}
}

func TestParse_StripsBOMAndCarriageReturns(t *testing.T) {
	tbl := Parse("\uFEFFplayer,kills\r\nAna,3\r\n\r\n")
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	if got := tbl.Header()[0]; got != "player" {
		t.Errorf("expected BOM stripped header 'player', got %q", got)
	}
	if got := tbl.Rows[1][1]; got != "3" {
		t.Errorf("expected '3' without \\r, got %q", got)
	}
}

func TestSplitLine_QuotedCells(t *testing.T) {
	cells := SplitLine(`Ana,"1,402",TeamX`, ',')
	if len(cells) != 3 || cells[1] != "1,402" {
		t.Errorf("unexpected cells %q", cells)
	}
}

func TestSplitLine_UnterminatedQuote(t *testing.T) {
	cells := SplitLine(`"Ana,TeamX,10,5`, ',')
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %q", cells)
	}
	if cells[2] != "10" || cells[3] != "5" {
		t.Errorf("unexpected cells %q", cells)
	}
}

func TestParseLeaderboard_UnterminatedQuote(t *testing.T) {
	text := "Jogador,Time,Abates,Partidas\n\"Ana,TeamX,10,5\n"
	recs, _ := ParseLeaderboard(text, model.Split24S1)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.Player != "Ana" || r.Team != "TeamX" || r.TotalKills != 10 || r.Matches != 5 {
		t.Errorf("unexpected record %+v", r)
	}
}

// ---- Field extractor ----

func TestBuildColumnMap_Synonyms(t *testing.T) {
	header := []string{"Jogador", "Equipe", "Abates", "Quedas", "Capas", "Derrubados",
		"Gelos", "Gelos Destruídos", "Reviveu", "Aliados Revividos"}
	m := BuildColumnMap(header)

	want := map[Field]int{
		FieldPlayer: 0, FieldTeam: 1, FieldKills: 2, FieldMatches: 3,
		FieldHeadshots: 4, FieldKnockdowns: 5, FieldGloowalls: 6,
		FieldGloowallsDestroyed: 7, FieldRevives: 8, FieldAlliesRevived: 9,
	}
	for f, idx := range want {
		got, ok := m.Index(f)
		if !ok || got != idx {
			t.Errorf("%s: expected column %d, got (%d, %v)", f, idx, got, ok)
		}
	}
	if m.Has(FieldRank) {
		t.Error("expected rank to be absent")
	}
}

// TestBuildColumnMap_GloowallsExactOnly: "gelos destruídos" must not be taken
// as the gloowalls-used column.
func TestBuildColumnMap_GloowallsExactOnly(t *testing.T) {
	m := BuildColumnMap([]string{"player", "gelos destruídos", "kills"})
	if m.Has(FieldGloowalls) {
		t.Error("gloowalls must match only an exact 'gelos'/'walls' cell")
	}
	if idx, ok := m.Index(FieldGloowallsDestroyed); !ok || idx != 1 {
		t.Errorf("expected destroyed at column 1, got (%d, %v)", idx, ok)
	}
}

func TestBuildColumnMap_FirstMatchWins(t *testing.T) {
	m := BuildColumnMap([]string{"kills s1", "kills s2"})
	if idx, _ := m.Index(FieldKills); idx != 0 {
		t.Errorf("expected first kills column, got %d", idx)
	}
}

func TestColumnMap_AbsentDefaults(t *testing.T) {
	m := BuildColumnMap([]string{"kills"})
	row := []string{"7"}
	if got := m.String(row, FieldPlayer, "Unknown"); got != "Unknown" {
		t.Errorf("expected Unknown, got %q", got)
	}
	if got := m.Int(row, FieldMatches); got != 0 {
		t.Errorf("expected 0 matches, got %d", got)
	}
	if got := m.Int(row, FieldKills); got != 7 {
		t.Errorf("expected 7 kills, got %d", got)
	}
	// Short row: index present but out of range.
	m2 := BuildColumnMap([]string{"player", "team", "kills"})
	if got := m2.Int([]string{"Ana"}, FieldKills); got != 0 {
		t.Errorf("expected 0 for short row, got %d", got)
	}
}

// ---- Numeric normalizer ----

func TestParseCount(t *testing.T) {
	cases := map[string]int{
		"":          0,
		"-":         0,
		"  ":        0,
		"42":        42,
		" 42 ":      42,
		"1.402":     1402,
		"1.402.000": 1402000,
		`"73.515"`:  73515,
		"abc":       0,
		"12abc":     12,
		"-5":        0,
	}
	for in, want := range cases {
		if got := ParseCount(in); got != want {
			t.Errorf("ParseCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseCount_ThousandGroups(t *testing.T) {
	for _, in := range []string{"1.000", "12.345", "12.345.678", "1.402.000"} {
		want, _ := strconv.Atoi(strings.ReplaceAll(in, ".", ""))
		if got := ParseCount(in); got != want {
			t.Errorf("ParseCount(%q) = %d, want %d", in, got, want)
		}
	}
	// Beyond any real counter: degrades to 0 instead of overflowing.
	if got := ParseCount("9.999.999.999"); got != 0 {
		t.Errorf("expected overflow to degrade to 0, got %d", got)
	}
}

func TestParseStatString(t *testing.T) {
	s, ok := ParseStatString("45 (30)")
	if !ok || s.Kills != 45 || s.Matches != 30 {
		t.Fatalf("unexpected %+v, %v", s, ok)
	}
	if s.KPG() != 1.5 {
		t.Errorf("expected kpg 1.50, got %.2f", s.KPG())
	}
	if _, ok := ParseStatString("- (-)"); ok {
		t.Error("expected placeholder to be absent")
	}
	if _, ok := ParseStatString(""); ok {
		t.Error("expected empty to be absent")
	}
	if s, ok := ParseStatString("x (y)"); !ok || s.Kills != 0 || s.Matches != 0 {
		t.Errorf("expected zero fallback, got %+v, %v", s, ok)
	}
}

// ---- Record builder ----

func TestParseLeaderboard_Defaults(t *testing.T) {
	text := "kills,matches\n10,4\n"
	recs, diag := ParseLeaderboard(text, model.Split25S1)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.Player != "Unknown" || r.Team != "-" {
		t.Errorf("expected placeholders, got player=%q team=%q", r.Player, r.Team)
	}
	if r.KPG != 2.5 {
		t.Errorf("expected kpg 2.5, got %v", r.KPG)
	}
	if r.Events != "WB 25 S1" {
		t.Errorf("unexpected events %q", r.Events)
	}
	if r.SplitKills.WB25S1 != 10 || r.SplitDisplay.WB25S1 != "10 (4)" {
		t.Errorf("unexpected split fields %+v %+v", r.SplitKills, r.SplitDisplay)
	}
	if r.SplitDisplay.WB24S1 != "" {
		t.Error("other splits' display must stay absent")
	}
	// Header "kills,matches" has no name column, so the row-0 fallback is used.
	if diag.HeaderFound {
		t.Error("expected header fallback")
	}
	if !diag.AbsentField(FieldPlayer) || diag.UnknownNames != 1 {
		t.Errorf("expected absent player diagnostics, got %+v", diag)
	}
}

func TestParseLeaderboard_SemicolonAndLocaleNumbers(t *testing.T) {
	text := "Jogador;Time;Abates;Partidas;Capas\nAna;LOUD;1.402;300;-\nBia;-;x;0;12\n"
	recs, diag := ParseLeaderboard(text, model.Split24S2)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].TotalKills != 1402 || recs[0].Matches != 300 || recs[0].Headshots != 0 {
		t.Errorf("unexpected first record %+v", recs[0])
	}
	if recs[0].KPG != 4.67 {
		t.Errorf("expected kpg 4.67, got %v", recs[0].KPG)
	}
	if recs[1].TotalKills != 0 || recs[1].KPG != 0 {
		t.Errorf("malformed kills must degrade to 0, got %+v", recs[1])
	}
	if diag.Delimiter != ';' || diag.MalformedRows != 1 || diag.DataRows != 2 {
		t.Errorf("unexpected diagnostics %+v", diag)
	}
}

func TestParseLeaderboard_EmptyInput(t *testing.T) {
	recs, diag := ParseLeaderboard("", model.Split24S1)
	if len(recs) != 0 || diag.DataRows != 0 {
		t.Errorf("expected no records, got %d", len(recs))
	}
}

func TestLeadingInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3", 3, true},
		{" 12º ", 12, true},
		{"1.000", 1000, true},
		{"-", 0, false},
		{"", 0, false},
		{"#", 0, false},
	}
	for _, c := range cases {
		got, ok := LeadingInt(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("LeadingInt(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

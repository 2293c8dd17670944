package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/sheet"
	"github.com/pable/go-ff-stats/internal/valuation"
	"github.com/pable/go-ff-stats/internal/view"
)

func samplePlayers(t *testing.T) []model.MergedPlayer {
	t.Helper()
	ds1, _ := sheet.ParseLeaderboard("Jogador,Time,Abates,Partidas,Capas\nAna,TeamX,1402,300,200\nBia,LOUD,90,30,10\n", model.Split24S1)
	ds2, _ := sheet.ParseLeaderboard("player,team,kills,matches\nana,TeamX,5,5\n", model.Split25S1)
	return aggregator.Merge([][]model.PlayerRecord{ds1, ds2}, "WB Geral")
}

func TestLeaderboardColumns_PerTab(t *testing.T) {
	count := func(cols []Column, prefix string) int {
		n := 0
		for _, c := range cols {
			if strings.HasPrefix(c.Label, prefix) {
				n++
			}
		}
		return n
	}
	if n := count(LeaderboardColumns(view.TabGeneral), "Abates "); n != 4 {
		t.Errorf("general: expected 4 split columns, got %d", n)
	}
	cols := LeaderboardColumns(view.TabWB2025)
	if n := count(cols, "Abates "); n != 2 {
		t.Errorf("wb2025: expected 2 split columns, got %d", n)
	}
	for _, c := range cols {
		if c.Key == "kills24s1" {
			t.Error("wb2025 must not show 2024 columns")
		}
	}
}

func TestPrintLeaderboard_PTBRNumbers(t *testing.T) {
	var buf bytes.Buffer
	players := samplePlayers(t)
	PrintLeaderboard(&buf, players, LeaderboardColumns(view.TabGeneral), "ana")
	out := buf.String()
	for _, want := range []string{"1.407", "Ana", "TeamX", ">", "1407 (305)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteCSV_QuotesAndRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	players := samplePlayers(t)
	if err := WriteCSV(&buf, players, LeaderboardColumns(view.TabGeneral)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if strings.Contains(lines[0], `"`) {
		t.Errorf("header must not be quoted: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"1","Ana","TeamX","1407","305","4.61"`) {
		t.Errorf("unexpected first row %s", lines[1])
	}

	// The export is itself a valid leaderboard source.
	recs, diag := sheet.ParseLeaderboard(buf.String(), model.Split25S2)
	if !diag.HeaderFound || len(recs) != 2 {
		t.Fatalf("expected 2 records from export, got %d (%+v)", len(recs), diag)
	}
	if recs[0].Player != "Ana" || recs[0].TotalKills != 1407 || recs[0].Matches != 305 || recs[0].Headshots != 200 {
		t.Errorf("unexpected round-tripped record %+v", recs[0])
	}
}

func TestQuote(t *testing.T) {
	if got := quote(`a"b`); got != `"a""b"` {
		t.Errorf("unexpected %s", got)
	}
}

func TestPrintPlayerProfile(t *testing.T) {
	var buf bytes.Buffer
	p, _ := aggregator.Find(samplePlayers(t), "ana")
	PrintPlayerProfile(&buf, p)
	out := buf.String()
	for _, want := range []string{"Ana", "24 Split 1", "1.402", "WB TOTAL", "4,61"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintComparison(t *testing.T) {
	players := samplePlayers(t)
	var buf bytes.Buffer
	PrintComparison(&buf, aggregator.Compare(players[0], players[1], nil))
	if !strings.Contains(buf.String(), "*1.407") {
		t.Errorf("expected marked winner:\n%s", buf.String())
	}
}

func TestPrintStandingsAndValuation(t *testing.T) {
	var buf bytes.Buffer
	PrintTeamStandings(&buf, "WB 2024 S1", []model.TeamStanding{
		{Rank: 2, Team: "Fluxo", Points: 100},
		{Rank: 1, Team: "LOUD", Points: 1402},
	})
	out := buf.String()
	if strings.Index(out, "LOUD") > strings.Index(out, "Fluxo") {
		t.Errorf("expected rank order:\n%s", out)
	}
	if !strings.Contains(out, "1.402") {
		t.Errorf("expected pt-BR points:\n%s", out)
	}

	buf.Reset()
	PrintTeamStandings(&buf, "empty", nil)
	if !strings.Contains(buf.String(), "no data") {
		t.Error("expected placeholder for empty standings")
	}

	buf.Reset()
	r, _ := valuation.Evaluate(valuation.Form{PlayerName: "Ana", Role: "rush1"})
	PrintValuation(&buf, r)
	if !strings.Contains(buf.String(), "TIER D") {
		t.Errorf("expected tier in output:\n%s", buf.String())
	}
}

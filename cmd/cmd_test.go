package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/sheet"
	"github.com/pable/go-ff-stats/internal/view"
)

func mergedFixture(t *testing.T) []model.MergedPlayer {
	t.Helper()
	a, _ := sheet.ParseLeaderboard("Jogador,Time,Abates,Partidas,Capas\nAna,TeamX,1402,300,20\nBia,-,10,5,1\n", model.Split24S1)
	b, _ := sheet.ParseLeaderboard("player,team,kills,matches\nana,TeamX,5,5\n", model.Split25S1)
	return aggregator.Merge([][]model.PlayerRecord{a, b}, "WB Geral")
}

func TestWriteExport_Plain(t *testing.T) {
	var buf bytes.Buffer
	if err := writeExport(&buf, "out.csv", mergedFixture(t), view.TabGeneral); err != nil {
		t.Fatalf("writeExport: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "#,Jogador,Time,Total Abates") {
		t.Errorf("unexpected header %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
	if !strings.Contains(buf.String(), `"1407"`) {
		t.Error("expected raw merged kills without separators")
	}
}

func TestWriteExport_Zstd(t *testing.T) {
	var buf bytes.Buffer
	players := mergedFixture(t)
	if err := writeExport(&buf, "out.csv.zst", players, view.TabGeneral); err != nil {
		t.Fatalf("writeExport: %v", err)
	}

	dec, err := zstd.NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	raw, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}

	recs, _ := sheet.ParseLeaderboard(string(raw), model.Split24S1)
	if len(recs) != len(players) {
		t.Fatalf("expected %d rows back, got %d", len(players), len(recs))
	}
	if recs[0].Player != "Ana" || recs[0].TotalKills != 1407 || recs[0].Matches != 305 {
		t.Errorf("unexpected first row %+v", recs[0])
	}
}

func TestBuildPlayerContext(t *testing.T) {
	players := mergedFixture(t)
	out, err := buildPlayerContext(players[0], players, view.Initial())
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Player string `json:"player"`
		Rank   int    `json:"rank"`
		Of     int    `json:"of"`
		Splits []struct {
			Split string `json:"split"`
			Kills int    `json:"kills"`
		} `json:"splits"`
		WBTotal map[string]int `json:"wb_total"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("context is not JSON: %v", err)
	}
	if doc.Player != "Ana" || doc.Rank != 1 || doc.Of != 2 {
		t.Errorf("unexpected header fields %+v", doc)
	}
	if len(doc.Splits) != 2 || doc.Splits[0].Kills != 1402 || doc.Splits[1].Kills != 5 {
		t.Errorf("unexpected splits %+v", doc.Splits)
	}
	if doc.WBTotal["kills"] != 1407 || doc.WBTotal["matches"] != 305 {
		t.Errorf("unexpected wb total %v", doc.WBTotal)
	}
}

func TestResolveView_NamesFlags(t *testing.T) {
	if _, err := resolveView("wb2024", "wb25s1"); err == nil || !strings.Contains(err.Error(), "--split") {
		t.Errorf("expected flag-qualified error, got %v", err)
	}
}

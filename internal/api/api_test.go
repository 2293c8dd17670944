package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/sheet"
	"github.com/pable/go-ff-stats/internal/source"
	"github.com/pable/go-ff-stats/internal/valuation"
)

var fixtures = map[model.Split]string{
	model.Split24S1: "Jogador,Time,Abates,Partidas\nAna,TeamX,10,5\nxtrap7,LOUD,8,4\n",
	model.Split24S2: "Jogador,Time,Abates,Partidas\nTRAP7,LOUD,13,6\n",
	model.Split25S1: "player,team,kills,matches\nana,TeamX,5,5\nBia,-,20,10\n",
}

// fakeBackend parses the fixtures instead of downloading; splits without a
// fixture are reported as failed.
type fakeBackend struct {
	standingsErr error
	lastSplits   []model.Split
}

func (f *fakeBackend) Fetch(_ context.Context, splits []model.Split) source.Batch {
	f.lastSplits = splits
	b := source.Batch{Datasets: make(map[model.Split][]model.PlayerRecord)}
	for _, s := range splits {
		text, ok := fixtures[s]
		if !ok {
			b.Datasets[s] = nil
			b.Failed = append(b.Failed, s)
			continue
		}
		b.Datasets[s], _ = sheet.ParseLeaderboard(text, s)
	}
	return b
}

func (f *fakeBackend) FetchStandings(_ context.Context, src source.StandingsSource) (source.StageStandings, error) {
	if f.standingsErr != nil {
		return source.StageStandings{Source: src}, f.standingsErr
	}
	return source.StageStandings{
		Source: src,
		Teams:  []model.TeamStanding{{Rank: 1, Team: "LOUD", Points: 120}},
	}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *fakeBackend, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	backend := &fakeBackend{}
	return NewRouter(NewHandler(backend, logger), logger), backend, hook
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	h, _, hook := newTestRouter(t)
	rec := do(t, h, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}
	if e := hook.LastEntry(); e == nil || e.Data["path"] != "/health" || e.Data["status"] != http.StatusOK {
		t.Errorf("expected request log line, got %+v", e)
	}
}

func TestGetLeaderboard_General(t *testing.T) {
	h, backend, _ := newTestRouter(t)
	rec := do(t, h, "GET", "/api/v1/leaderboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var resp LeaderboardResponse
	decode(t, rec, &resp)

	if len(backend.lastSplits) != 4 {
		t.Errorf("general view must fetch every split, got %v", backend.lastSplits)
	}
	if resp.View != "general/all" || resp.Events != "WB Geral" {
		t.Errorf("unexpected view %q events %q", resp.View, resp.Events)
	}
	if len(resp.Failed) != 1 || resp.Failed[0] != "wb2025s2" {
		t.Errorf("unexpected failed %v", resp.Failed)
	}
	// TRAP7: 8 + 13; Bia: 20; Ana: 10 + 5.
	if resp.Count != 3 || len(resp.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", resp.Count)
	}
	if resp.Players[0].Player != "TRAP7" || resp.Players[0].TotalKills != 21 || resp.Players[0].Matches != 10 {
		t.Errorf("unexpected leader %+v", resp.Players[0])
	}
	if resp.Players[2].Player != "Ana" || resp.Players[2].TotalKills != 15 {
		t.Errorf("unexpected third %+v", resp.Players[2])
	}
}

func TestGetLeaderboard_FilterTeamAndTop(t *testing.T) {
	h, backend, _ := newTestRouter(t)
	rec := do(t, h, "GET", "/api/v1/leaderboard?tab=wb2025&split=s1&team=1&top=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp LeaderboardResponse
	decode(t, rec, &resp)
	if len(backend.lastSplits) != 1 || backend.lastSplits[0] != model.Split25S1 {
		t.Errorf("unexpected fetched splits %v", backend.lastSplits)
	}
	if resp.Count != 1 || resp.Players[0].Player != "ana" {
		t.Errorf("expected only ana (Bia has no team), got %+v", resp.Players)
	}
	if resp.Players[0].Events != "WB 2025" {
		t.Errorf("unexpected events %q", resp.Players[0].Events)
	}
}

func TestGetLeaderboard_BadRequests(t *testing.T) {
	h, _, _ := newTestRouter(t)
	for _, target := range []string{
		"/api/v1/leaderboard?tab=lbff",
		"/api/v1/leaderboard?tab=wb2024&split=wb25s1",
		"/api/v1/leaderboard?top=-1",
	} {
		if rec := do(t, h, "GET", target, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestGetPlayer(t *testing.T) {
	h, _, _ := newTestRouter(t)
	rec := do(t, h, "GET", "/api/v1/players/xtrap7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var resp PlayerResponse
	decode(t, rec, &resp)
	if resp.Player.Player != "TRAP7" || resp.Player.Sources != 2 {
		t.Errorf("unexpected player %+v", resp.Player)
	}
	if got := resp.Splits["wb2024s2"]; got.Kills != 13 || got.Matches != 6 || got.KPG != 2.17 || got.Display != "13 (6)" {
		t.Errorf("unexpected split entry %+v", got)
	}
	if _, ok := resp.Splits["wb2025s1"]; ok {
		t.Error("absent split must be omitted")
	}
	if resp.WBTotal.Kills != 21 || resp.WBTotal.Matches != 10 {
		t.Errorf("unexpected WB total %+v", resp.WBTotal)
	}
	if len(resp.Aliases) == 0 {
		t.Error("expected aliases for TRAP7")
	}

	if rec := do(t, h, "GET", "/api/v1/players/nobody", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetComparison(t *testing.T) {
	h, _, _ := newTestRouter(t)
	rec := do(t, h, "GET", "/api/v1/compare?a=Ana&b=Bia", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var c aggregator.Comparison
	decode(t, rec, &c)
	if c.A.Player != "Ana" || c.B.Player != "Bia" {
		t.Errorf("unexpected sides %s vs %s", c.A.Player, c.B.Player)
	}
	if len(c.Rows) == 0 || c.Rows[0].Label != "Ranking Geral" {
		t.Errorf("unexpected rows %+v", c.Rows)
	}

	if rec := do(t, h, "GET", "/api/v1/compare?a=Ana", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without b, got %d", rec.Code)
	}
	rec = do(t, h, "GET", "/api/v1/compare?a=Ana&b=ghost", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "ghost") {
		t.Errorf("expected 404 naming ghost, got %d %s", rec.Code, rec.Body)
	}
}

func TestGetStandings(t *testing.T) {
	h, backend, _ := newTestRouter(t)
	rec := do(t, h, "GET", "/api/v1/standings/wb2025s2?stage=final", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var resp StandingsResponse
	decode(t, rec, &resp)
	if resp.Season != "wb2025s2" || resp.Stage != "final" || len(resp.Teams) != 1 {
		t.Errorf("unexpected standings %+v", resp)
	}

	if rec := do(t, h, "GET", "/api/v1/standings/wb2030s1", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad season, got %d", rec.Code)
	}
	if rec := do(t, h, "GET", "/api/v1/standings/wb2024s1?stage=final", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown stage, got %d", rec.Code)
	}

	backend.standingsErr = fmt.Errorf("%w: boom", source.ErrNoStandings)
	if rec := do(t, h, "GET", "/api/v1/standings/wb2024s1", ""); rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestPostValuation(t *testing.T) {
	h, _, _ := newTestRouter(t)
	rec := do(t, h, "POST", "/api/v1/valuation", "player: Nickz7\nrole: flex\nkills: 1000\n")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var res valuation.Result
	decode(t, rec, &res)
	if res.Player != "Nickz7" || res.Tier == "" {
		t.Errorf("unexpected result %+v", res)
	}

	rec = do(t, h, "POST", "/api/v1/valuation", `{"player": "Nickz7", "role": "flex", "captain": true, "kills": 1000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a JSON form, got %d: %s", rec.Code, rec.Body)
	}

	if rec := do(t, h, "POST", "/api/v1/valuation", "kills: 10\n"); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 without a name, got %d", rec.Code)
	}
	if rec := do(t, h, "POST", "/api/v1/valuation", "salary: 10\n"); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))
	rec := do(t, h, "GET", "/x", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if e := hook.LastEntry(); e == nil || e.Message != "handler panic" {
		t.Errorf("expected panic log, got %+v", e)
	}
}

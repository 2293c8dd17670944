package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/identity"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/sheet"
	"github.com/pable/go-ff-stats/internal/source"
	"github.com/pable/go-ff-stats/internal/valuation"
	"github.com/pable/go-ff-stats/internal/view"
)

// maxFormBody caps a valuation form upload.
const maxFormBody = 64 << 10

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	backend Backend
	log     logrus.FieldLogger
}

// NewHandler creates a new handler.
func NewHandler(backend Backend, log logrus.FieldLogger) *Handler {
	return &Handler{backend: backend, log: log}
}

// LeaderboardResponse is the body of GET /leaderboard.
type LeaderboardResponse struct {
	View    string               `json:"view"`
	Events  string               `json:"events"`
	Count   int                  `json:"count"`
	Players []model.MergedPlayer `json:"players"`
	Failed  []string             `json:"failed,omitempty"`
}

// SplitEntry is one split of a player profile.
type SplitEntry struct {
	Kills   int     `json:"kills"`
	Matches int     `json:"matches"`
	KPG     float64 `json:"kpg"`
	Display string  `json:"display"`
}

// PlayerResponse is the body of GET /players/{name}.
type PlayerResponse struct {
	Player  model.MergedPlayer    `json:"player"`
	Splits  map[string]SplitEntry `json:"splits"`
	WBTotal sheet.SplitStat       `json:"wbTotal"`
	Aliases []string              `json:"aliases,omitempty"`
}

// StandingsResponse is the body of GET /standings/{season}.
type StandingsResponse struct {
	Season string                `json:"season"`
	Stage  string                `json:"stage"`
	Label  string                `json:"label"`
	Teams  []model.TeamStanding  `json:"teams"`
	MVPs   [][]model.MVPStanding `json:"mvps,omitempty"`
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "ffstats",
	})
}

// load resolves the tab/split query parameters and merges the view.
func (h *Handler) load(r *http.Request) (view.State, []model.MergedPlayer, source.Batch, error) {
	q := r.URL.Query()
	st, err := view.Resolve(q.Get("tab"), q.Get("split"))
	if err != nil {
		return st, nil, source.Batch{}, err
	}
	splits := st.Splits()
	b := h.backend.Fetch(r.Context(), splits)
	return st, aggregator.Merge(aggregator.Select(b.Datasets, splits), st.Events()), b, nil
}

// GetLeaderboard returns the merged leaderboard of a tab and filter.
// Query: tab, split, top, team=1.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	st, players, b, err := h.load(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid view", err)
		return
	}

	q := r.URL.Query()
	if team, _ := strconv.ParseBool(q.Get("team")); team {
		players = aggregator.FilterTeam(players)
	}
	if topStr := q.Get("top"); topStr != "" {
		top, err := strconv.Atoi(topStr)
		if err != nil || top < 0 {
			respondError(w, http.StatusBadRequest, "Invalid top (use a non-negative integer)", err)
			return
		}
		players = aggregator.Top(players, top)
	}
	if players == nil {
		players = []model.MergedPlayer{}
	}

	respondJSON(w, http.StatusOK, LeaderboardResponse{
		View:    st.String(),
		Events:  st.Events(),
		Count:   len(players),
		Players: players,
		Failed:  splitKeys(b.Failed),
	})
}

// GetPlayer returns one player's merged profile with the per-split breakdown.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	_, players, _, err := h.load(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid view", err)
		return
	}
	p, ok := aggregator.Find(players, name)
	if !ok {
		respondError(w, http.StatusNotFound, "Player not found", nil)
		return
	}

	resp := PlayerResponse{
		Player:  p,
		Splits:  make(map[string]SplitEntry),
		WBTotal: aggregator.SplitTotals(p.PlayerRecord),
		Aliases: identity.Aliases(p.Player),
	}
	for _, s := range model.AllSplits {
		display := p.SplitDisplay.Get(s)
		stat, ok := sheet.ParseStatString(display)
		if !ok {
			continue
		}
		resp.Splits[s.Key()] = SplitEntry{Kills: stat.Kills, Matches: stat.Matches, KPG: stat.KPG(), Display: display}
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetComparison compares two players. Query: a, b, tab, split.
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	nameA, nameB := q.Get("a"), q.Get("b")
	if nameA == "" || nameB == "" {
		respondError(w, http.StatusBadRequest, "Both a and b are required", nil)
		return
	}
	st, players, _, err := h.load(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid view", err)
		return
	}
	a, okA := aggregator.Find(players, nameA)
	b, okB := aggregator.Find(players, nameB)
	if !okA || !okB {
		missing := nameA
		if okA {
			missing = nameB
		}
		respondError(w, http.StatusNotFound, "Player not found: "+missing, nil)
		return
	}
	respondJSON(w, http.StatusOK, aggregator.Compare(a, b, st.ComparisonSplits()))
}

// GetStandings returns a season stage's team table and MVP lists.
// Path: season key (wb2025s1). Query: stage.
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	season, err := model.ParseSplit(mux.Vars(r)["season"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}
	src, err := source.Standings(season, source.Stage(r.URL.Query().Get("stage")))
	if err != nil {
		respondError(w, http.StatusNotFound, "Unknown stage", err)
		return
	}
	st, err := h.backend.FetchStandings(r.Context(), src)
	if err != nil {
		if errors.Is(err, source.ErrNoStandings) {
			respondError(w, http.StatusBadGateway, "Standings unavailable", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch standings", err)
		return
	}
	teams := st.Teams
	if teams == nil {
		teams = []model.TeamStanding{}
	}
	respondJSON(w, http.StatusOK, StandingsResponse{
		Season: season.Key(),
		Stage:  string(src.Stage),
		Label:  src.Label,
		Teams:  teams,
		MVPs:   st.MVPs,
	})
}

// PostValuation scores a valuation form. The body is YAML; JSON with the same
// keys also decodes.
func (h *Handler) PostValuation(w http.ResponseWriter, r *http.Request) {
	form, err := valuation.DecodeForm(io.LimitReader(r.Body, maxFormBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form", err)
		return
	}
	res, err := valuation.Evaluate(form)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, valuation.ErrMissingName) {
			status = http.StatusUnprocessableEntity
		}
		respondError(w, status, "Cannot evaluate form", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func splitKeys(splits []model.Split) []string {
	if len(splits) == 0 {
		return nil
	}
	out := make([]string, len(splits))
	for i, s := range splits {
		out[i] = s.Key()
	}
	return out
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}

// Package valuation scores a player's market value from role, kills, social
// reach and competitive record, and maps the score to a tier and salary band.
package valuation

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingName is returned when the form has no player name.
var ErrMissingName = errors.New("player name is required")

// Competition types.
const (
	Online     = "ONLINE"
	Presencial = "PRESENCIAL"
)

// Competition is a known event with its format and tier.
type Competition struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
	Tier string `yaml:"tier" json:"tier"`
}

// Competitions is the list of events titles are weighted against. Titles
// match by name or ID.
var Competitions = []Competition{
	{ID: "ewc", Name: "Esports World Cup (EWC)", Type: Presencial, Tier: "S"},
	{ID: "ffws_world", Name: "FFWS Mundial", Type: Presencial, Tier: "S"},
	{ID: "ffws_br", Name: "FFWS Brasil", Type: Presencial, Tier: "A"},
	{ID: "copa_ff", Name: "Copa FF", Type: Online, Tier: "A"},
	{ID: "laff", Name: "Liga Amadora (LAFF)", Type: Online, Tier: "B"},
	{ID: "lbff", Name: "LBFF (Histórico)", Type: Presencial, Tier: "A"},
	{ID: "nfa", Name: "Liga NFA", Type: Online, Tier: "B"},
}

// Role is an in-game role and its weight.
type Role struct {
	ID     string
	Label  string
	Weight float64
}

// Roles lists the known roles.
var Roles = []Role{
	{"rush1", "RUSH 1", 1.2},
	{"rush2", "RUSH 2", 1.1},
	{"grandeiro", "GRANDEIRO", 1.0},
	{"sniper", "SNIPER", 1.0},
	{"flex", "FLEX", 1.15},
}

// Count is a named counter (titles or participations in an event).
type Count struct {
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"count" json:"count"`
}

// Placement is a recent result.
type Placement struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Position int    `yaml:"position" json:"position"`
}

// Form is the valuation input.
type Form struct {
	PlayerName    string  `yaml:"player" json:"player"`
	Role          string  `yaml:"role" json:"role"`
	IsCaptain     bool    `yaml:"captain" json:"captain"`
	OfficialKills int     `yaml:"kills" json:"kills"`
	Booyahs       int     `yaml:"booyahs" json:"booyahs"`
	Followers     int     `yaml:"followers" json:"followers"`
	Engagement    float64 `yaml:"engagement" json:"engagement"`

	CompetitionsDisputed []Competition `yaml:"competitions" json:"competitions"`
	Titles               []Count       `yaml:"titles" json:"titles"`
	Participations       []Count       `yaml:"participations" json:"participations"`
	Recent               []Placement   `yaml:"recent" json:"recent"`
}

// DecodeForm reads a YAML form. JSON, being a subset of YAML, decodes too.
func DecodeForm(r io.Reader) (Form, error) {
	var f Form
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return f, fmt.Errorf("decode form: %w", err)
	}
	if f.Role == "" {
		f.Role = "rush1"
	}
	return f, nil
}

// Breakdown holds the clamped score of each component.
type Breakdown struct {
	Role        float64 `json:"role"`
	Kills       float64 `json:"kills"`
	Social      float64 `json:"social"`
	Competition float64 `json:"competition"`
	Recent      float64 `json:"recent"`
}

// Total is the sum of the components before rounding.
func (b Breakdown) Total() float64 {
	return b.Role + b.Kills + b.Social + b.Competition + b.Recent
}

// Result is a computed valuation.
type Result struct {
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Tier      string    `json:"tier"`
	Salary    string    `json:"salary"`
	Breakdown Breakdown `json:"breakdown"`
}

// Evaluate scores f.
func Evaluate(f Form) (Result, error) {
	name := strings.TrimSpace(f.PlayerName)
	if name == "" {
		return Result{}, ErrMissingName
	}
	b := Breakdown{
		Role:        roleScore(f),
		Kills:       killsScore(f.OfficialKills),
		Social:      socialScore(f.Followers, f.Engagement),
		Competition: competitionScore(f),
		Recent:      recentScore(f.Recent),
	}
	score := int(math.Min(100, math.Round(b.Total())))
	tier, salary := TierFor(score)
	return Result{Player: name, Score: score, Tier: tier, Salary: salary, Breakdown: b}, nil
}

func roleScore(f Form) float64 {
	weight := 1.0
	for _, r := range Roles {
		if r.ID == f.Role {
			weight = r.Weight
			break
		}
	}
	s := 10 * weight
	if f.IsCaptain {
		s += 5
		s += math.Min(3, float64(f.Booyahs)*0.2)
	}
	return s
}

// killsScore is log-scaled: 100 kills score 10, 10000 score 20.
func killsScore(kills int) float64 {
	if kills <= 0 {
		return 0
	}
	return math.Min(20, math.Log10(float64(kills))*5)
}

func socialScore(followers int, engagement float64) float64 {
	var s float64
	switch {
	case followers > 1_000_000:
		s += 7
	case followers > 100_000:
		s += 5
	case followers > 10_000:
		s += 2
	}
	switch {
	case engagement > 10:
		s += 3
	case engagement > 5:
		s += 1.5
	}
	return math.Min(10, s)
}

func competitionScore(f Form) float64 {
	var s float64
	for _, t := range f.Titles {
		switch tierOf(t.Name) {
		case "S":
			s += float64(t.Count) * 5
		case "A":
			s += float64(t.Count) * 3
		default:
			s += float64(t.Count)
		}
	}
	for _, p := range f.Participations {
		s += float64(p.Count) * 0.5
	}
	for _, c := range f.CompetitionsDisputed {
		switch c.Tier {
		case "S":
			s += 2
		case "A":
			s += 1
		}
	}
	return math.Min(30, s)
}

// recentScore ignores unnamed entries and positions below 1.
func recentScore(recent []Placement) float64 {
	var s float64
	for _, rc := range recent {
		if strings.TrimSpace(rc.Name) == "" || rc.Position <= 0 {
			continue
		}
		var p float64
		switch {
		case rc.Position == 1:
			p = 7
		case rc.Position <= 3:
			p = 5
		case rc.Position <= 12:
			p = 2
		}
		if strings.EqualFold(rc.Type, Presencial) {
			p *= 1.2
		}
		s += p
	}
	return math.Min(20, s)
}

func tierOf(name string) string {
	for _, c := range Competitions {
		if c.Name == name || c.ID == name {
			return c.Tier
		}
	}
	return ""
}

// TierFor maps a 0-100 score to its tier and salary band.
func TierFor(score int) (tier, salary string) {
	switch {
	case score >= 80:
		return "TIER S", "R$ 8.000 a R$ 20.000+"
	case score >= 60:
		return "TIER A", "R$ 5.000 a R$ 7.999"
	case score >= 40:
		return "TIER B", "R$ 3.000 a R$ 4.999"
	case score >= 20:
		return "TIER C", "R$ 1.500 a R$ 2.999"
	default:
		return "TIER D", "Até R$ 1.499"
	}
}

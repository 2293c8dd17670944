package source

import (
	"fmt"
	"strings"

	"github.com/pable/go-ff-stats/internal/model"
)

const (
	sheetBase   = "https://docs.google.com/spreadsheets/d/e/"
	sheetSuffix = "/pub?output=csv"
)

func published(id string) string { return sheetBase + id + sheetSuffix }

var leaderboards = map[model.Split]string{
	model.Split24S1: published("2PACX-1vQYc8m8JZnDeFr3FeN97I4NJwwuc0P1uN8v6JEv06_OflL5QCr_4t75yOe-xkqC9TnS3Cf-tRLT4aDZ"),
	model.Split24S2: published("2PACX-1vSNiiD9Bc1WutM_N1_R5bVnml85Y2sL3WqoRkmWYM3nvoqAMR5qXt2lEhhs6m_I9r-qQmvUvWX6Z7a6"),
	model.Split25S1: published("2PACX-1vSuAwNL2Ua0wcDHioiHDxxdNajprbptsOm1UdUNo4EoK-XyVzFYPrVYT_3WjMt2xZykLlaDh93L7TkR"),
	model.Split25S2: published("2PACX-1vRoO1Pp7JVxMOkf29n3_A4LYISkXrkqglqsL9ajgw68igKnk_7TtUXaLFJuJZ4whzaRpWD2akh8YeK9"),
}

// LeaderboardURL returns the published CSV of a split's kill leaderboard.
func LeaderboardURL(s model.Split) string {
	return leaderboards[s]
}

// Stage is a phase of a season with its own standings sheet.
type Stage string

const (
	StageMain      Stage = "main"
	StageGeneral   Stage = "general"
	StagePointRush Stage = "pointrush"
	StageFinal     Stage = "final"
)

// StandingsSource is the set of sheets behind one season stage.
type StandingsSource struct {
	Season model.Split
	Stage  Stage
	Label  string
	Teams  string
	MVPs   []string
}

var standingsCatalog = map[model.Split][]StandingsSource{
	model.Split24S1: {{
		Stage: StageMain,
		Label: "WB 2024 S1",
		Teams: published("2PACX-1vRJjpnym14zy_V08qtJL1ylXFwhTBLBlF2lo6-3i_tpD0ub-K4T4gL-lIkLsXNjBXjpNPMPsM7jQJRE"),
		MVPs: []string{
			published("2PACX-1vQNx0l_6FLYnBfpKKmQU94X0QuZNam_dE2PHeb2GPGnR7EwDknvCdgL3NYiEci_UPf9E2R1jEHfem6v"),
			published("2PACX-1vSEE-PoWksCodxZtskMVH049oDXIXbgZYXAaUs1y8N63Md8xR9QgWV7AHKHOobrgCuDpTrj7eyBKUJA"),
		},
	}},
	model.Split24S2: {{
		Stage: StageMain,
		Label: "WB 2024 S2",
		Teams: published("2PACX-1vSxEcCXVyZVl-5ueEYQFiLR9F_pE8k5cMGI3TP_LknjSOq8bAC-1_YjhtUQ72FdHaO0GI34UgWhzbbA"),
	}},
	model.Split25S1: {
		{
			Stage: StageGeneral,
			Label: "Classificação Geral",
			Teams: published("2PACX-1vRIGjevwYKHJQTfXCIhUhPM3UqIpg1ve5Bb_EBfNhI_2-cJGfAHGF6CED2GhG3djr6v41IpZdNKC--o"),
		},
		{
			Stage: StageFinal,
			Label: "Final WB 2025 S1",
			Teams: published("2PACX-1vSPUjSwdLlVq2-_Dt7ySCurkOS9ANILFjTEYXaLD6ny85Cbf2oGJBvMWHKE7e8uNZt5dExJxQlCWmq0"),
		},
	},
	model.Split25S2: {
		{
			Stage: StageGeneral,
			Label: "Sem Final Sem CS",
			Teams: published("2PACX-1vS0Yh4_LWRP3rasD8M0yOJa9THXTG3gBLnM8le1_1GksEXzE0-lSo-mlj8K2r27y9xL65lyhE-JiKYr"),
		},
		{
			Stage: StagePointRush,
			Label: "Point Rush WB 2025 S2",
			Teams: published("2PACX-1vSPuPK419r-L_oufjyZzK4olB6UL3l-qPI0FTHOEIlBDi2OBP_KjGloh87IESg54-etLHvORsQ6rzSr"),
		},
		{
			Stage: StageFinal,
			Label: "Final WB 2025 S2",
			Teams: published("2PACX-1vT21jScCfL_hKDmalL1BcU0OLlBQZcx-ldyMP9Y79OWDkWDYM_AogB-BafJ_FXXQcKp3IO99vwImCqP"),
		},
	},
}

// Stages lists the standings stages of a season; the first is the default.
func Stages(season model.Split) []StandingsSource {
	out := make([]StandingsSource, len(standingsCatalog[season]))
	for i, s := range standingsCatalog[season] {
		s.Season = season
		out[i] = s
	}
	return out
}

// Standings resolves the sheets of a season stage. An empty stage selects
// the season's default ("main" for 2024, "general" for 2025).
func Standings(season model.Split, stage Stage) (StandingsSource, error) {
	stages := Stages(season)
	if len(stages) == 0 {
		return StandingsSource{}, fmt.Errorf("no standings for %s", season)
	}
	if stage == "" {
		return stages[0], nil
	}
	var names []string
	for _, s := range stages {
		if s.Stage == stage {
			return s, nil
		}
		names = append(names, string(s.Stage))
	}
	return StandingsSource{}, fmt.Errorf("season %s has no stage %q (want one of %s)",
		season, stage, strings.Join(names, ", "))
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/config"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/sheet"
	"github.com/pable/go-ff-stats/internal/view"
)

const analyzeSystemPrompt = `You are a Free Fire esports scout. You are given a player's statistics
merged from the official WB circuit leaderboards and a question about the player.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise. Compare against the field averages included in the data.

Metrics glossary:
- kills / matches: official kills and matches ("quedas") over the selected splits.
- kpg: kills per game, rounded to 2 decimals.
- headshots ("capas"), knockdowns ("derrubados"), gloowalls used ("gelos"),
  gloowalls destroyed, revives ("reviveu") and allies revived.
- splits: per-split kills/matches; a missing split means no row in that sheet.
- rank: position in the merged ranking (kills, then kpg).`

var (
	analyzeModel  string
	analyzeAPIKey string
	analyzeTab    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <player> <question>",
	Short: "AI scouting note over a player's merged stats (requires ANTHROPIC_API_KEY)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().StringVar(&analyzeTab, "tab", "general", "general|wb2024|wb2025")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("model") {
		analyzeModel = config.String(cfg.Analyze.Model, analyzeModel)
	}
	st, err := resolveView(analyzeTab, "")
	if err != nil {
		return err
	}
	players, _, err := loadView(cmd.Context(), st)
	if err != nil {
		return err
	}
	p, err := findPlayer(players, args[0], st)
	if err != nil {
		return err
	}

	contextJSON, err := buildPlayerContext(p, players, st)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, args[1])
}

// buildPlayerContext serialises a merged player, their per-split lines and
// the field averages into compact JSON.
func buildPlayerContext(p model.MergedPlayer, field []model.MergedPlayer, st view.State) (string, error) {
	type splitEntry struct {
		Split   string  `json:"split"`
		Kills   int     `json:"kills"`
		Matches int     `json:"matches"`
		KPG     float64 `json:"kpg"`
	}
	splits := make([]splitEntry, 0, len(model.AllSplits))
	for _, s := range model.AllSplits {
		stat, ok := sheet.ParseStatString(p.SplitDisplay.Get(s))
		if !ok {
			continue
		}
		splits = append(splits, splitEntry{Split: s.Events(), Kills: stat.Kills, Matches: stat.Matches, KPG: stat.KPG()})
	}

	var kills, matches int
	for _, f := range field {
		kills += f.TotalKills
		matches += f.Matches
	}
	avgKills := 0.0
	if len(field) > 0 {
		avgKills = model.Round2(float64(kills) / float64(len(field)))
	}
	wb := aggregator.SplitTotals(p.PlayerRecord)

	doc := map[string]interface{}{
		"subject": "player",
		"view":    st.Events(),
		"player":  p.Player,
		"team":    p.Team,
		"rank":    p.Rank,
		"of":      len(field),
		"overview": map[string]interface{}{
			"kills":   p.TotalKills,
			"matches": p.Matches,
			"kpg":     p.KPG,
			"hs_pct":  model.Round2(p.HeadshotPct()),
		},
		"utility": map[string]interface{}{
			"headshots":           p.Headshots,
			"knockdowns":          p.Knockdowns,
			"gloowalls":           p.Gloowalls,
			"gloowalls_destroyed": p.GloowallsDestroyed,
			"revives":             p.Revives,
			"allies_revived":      p.AlliesRevived,
		},
		"splits":   splits,
		"wb_total": map[string]int{"kills": wb.Kills, "matches": wb.Matches},
		"field": map[string]interface{}{
			"players":   len(field),
			"avg_kills": avgKills,
			"kpg":       model.KillsPerGame(kills, matches),
		},
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── Scouting note ───────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed: check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}

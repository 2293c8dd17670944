package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/identity"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/report"
	"github.com/pable/go-ff-stats/internal/source"
	"github.com/pable/go-ff-stats/internal/view"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session over the leaderboards",
	Long:  "Switch tabs and split filters and inspect players without re-downloading on every command. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// session is the REPL state: the selected view and the players merged for it.
type session struct {
	ctx      context.Context
	loader   *source.Loader
	state    view.State
	players  []model.MergedPlayer
	batch    source.Batch
	teamOnly bool
}

func runShell(cmd *cobra.Command, _ []string) error {
	client, release := newClient()
	defer release()

	s := &session{ctx: cmd.Context(), loader: source.NewLoader(client), state: view.Initial()}

	cGreeting.Println("ffstats shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()
	s.reload()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("ffstats")
		cMuted.Printf(" [%s]> ", s.state)
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "state":
			s.printState()
		case "tab":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: tab <general|profile|wb2024|wb2025>")
				continue
			}
			tab, err := view.ParseTab(args[0])
			if err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			s.dispatch(view.SelectTab{Tab: tab})
		case "filter":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: filter <name> (see 'state')")
				continue
			}
			s.dispatch(view.SelectFilter{Filter: view.Filter(strings.ToLower(args[0]))})
		case "team":
			s.teamOnly = !s.teamOnly
			cMuted.Printf("team-only: %v\n", s.teamOnly)
		case "top":
			n := 20
			if len(args) > 0 {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					cError.Fprintf(os.Stderr, "invalid count %q\n", args[0])
					continue
				}
				n = v
			}
			s.printTop(n, "")
		case "find":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: find <name>")
				continue
			}
			s.printTop(0, strings.Join(args, " "))
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <name>")
				continue
			}
			s.printPlayer(strings.Join(args, " "))
		case "compare":
			if len(args) != 2 {
				cError.Fprintln(os.Stderr, "usage: compare <player-a> <player-b>")
				continue
			}
			s.printCompare(args[0], args[1])
		case "diag":
			report.PrintDiagnostics(os.Stdout, s.batch.Diagnostics, s.batch.Failed)
		case "reload":
			s.reload()
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"state", "show the current tab, filter and the filters it offers"},
		{"tab <name>", "switch tab (resets the filter to all)"},
		{"filter <name>", "apply one of the tab's split filters"},
		{"top [n]", "print the n best players (default 20, 0 = all)"},
		{"find <name>", "print the leaderboard highlighting a player"},
		{"player <name>", "profile with per-split breakdown"},
		{"compare <a> <b>", "head-to-head under the current filter"},
		{"team", "toggle hiding players without a team"},
		{"diag", "show how each sheet was parsed"},
		{"reload", "download the current view again"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-20s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

// dispatch applies a view action and reloads when the state changed.
func (s *session) dispatch(a view.Action) {
	next, err := view.Reduce(s.state, a)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if next == s.state {
		return
	}
	s.state = next
	s.reload()
}

func (s *session) reload() {
	cMuted.Fprintf(os.Stderr, "loading %d sheet(s)...\n", len(s.state.Splits()))
	players, b, err := s.loader.LoadView(s.ctx, s.state)
	if errors.Is(err, source.ErrSuperseded) {
		return
	}
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	s.players, s.batch = players, b
	if len(b.Failed) > 0 {
		cWarn.Fprintf(os.Stderr, "unavailable: %v\n", b.Failed)
	}
	cMuted.Printf("%d players in %s\n", len(players), s.state.Events())
}

func (s *session) visible() []model.MergedPlayer {
	if s.teamOnly {
		return aggregator.FilterTeam(s.players)
	}
	return s.players
}

func (s *session) printState() {
	cHeader.Printf("tab %s, filter %s (%s)\n", s.state.Tab, s.state.Filter, s.state.Filter.Label())
	var offered []string
	for _, f := range s.state.Tab.Filters() {
		offered = append(offered, string(f))
	}
	cMuted.Printf("filters: %s\n", strings.Join(offered, ", "))
}

func (s *session) printTop(n int, focus string) {
	players := s.visible()
	var focusKey string
	if focus != "" {
		focusKey = identity.Key(focus)
		at := -1
		for i, p := range players {
			if p.Key == focusKey {
				at = i
				break
			}
		}
		if at < 0 {
			cWarn.Fprintf(os.Stderr, "no player %q in %s\n", focus, s.state)
			return
		}
		// Window of rows around the player.
		lo := max(0, at-5)
		players = players[lo:min(len(players), lo+11)]
	} else {
		players = aggregator.Top(players, n)
	}
	report.PrintLeaderboard(os.Stdout, players, report.LeaderboardColumns(s.state.Tab), focusKey)
}

func (s *session) printPlayer(name string) {
	p, ok := aggregator.Find(s.players, name)
	if !ok {
		cWarn.Fprintf(os.Stderr, "no player %q in %s\n", name, s.state)
		return
	}
	report.PrintPlayerProfile(os.Stdout, p)
}

func (s *session) printCompare(nameA, nameB string) {
	a, okA := aggregator.Find(s.players, nameA)
	b, okB := aggregator.Find(s.players, nameB)
	if !okA || !okB {
		cWarn.Fprintf(os.Stderr, "both players must be in %s\n", s.state)
		return
	}
	report.PrintComparison(os.Stdout, aggregator.Compare(a, b, s.state.ComparisonSplits()))
}

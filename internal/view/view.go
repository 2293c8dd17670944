// Package view holds the dashboard selection state (tab and split filter) and
// maps it to the datasets a merge should include.
package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pable/go-ff-stats/internal/model"
)

// Tab is a top-level leaderboard view.
type Tab int

const (
	TabGeneral Tab = iota // every split
	TabProfile            // per-player profile over every split
	TabWB2024
	TabWB2025
)

var tabNames = []string{"general", "profile", "wb2024", "wb2025"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "?"
	}
	return tabNames[t]
}

// Events returns the provenance label stamped on merged records of the tab.
func (t Tab) Events() string {
	switch t {
	case TabWB2024:
		return "WB 2024"
	case TabWB2025:
		return "WB 2025"
	default:
		return "WB Geral"
	}
}

// Filters lists the split filters the tab offers, "all" first.
func (t Tab) Filters() []Filter {
	switch t {
	case TabGeneral:
		return []Filter{FilterAll, FilterWB24S1, FilterWB24S2, FilterWB25S1, FilterWB25S2}
	case TabWB2024, TabWB2025:
		return []Filter{FilterAll, FilterS1, FilterS2}
	default:
		return []Filter{FilterAll}
	}
}

// ParseTab resolves a tab name (case-insensitive).
func ParseTab(s string) (Tab, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tabNames {
		if n == k {
			return Tab(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tab %q (want one of %s)", s, strings.Join(tabNames, ", "))
}

// Filter narrows a tab to one split. Year tabs use s1/s2; the general tab
// names the split outright.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterS1     Filter = "s1"
	FilterS2     Filter = "s2"
	FilterWB24S1 Filter = "wb24s1"
	FilterWB24S2 Filter = "wb24s2"
	FilterWB25S1 Filter = "wb25s1"
	FilterWB25S2 Filter = "wb25s2"
)

// Label is the button text of the filter in the given tab.
func (f Filter) Label() string {
	switch f {
	case FilterAll:
		return "Todos"
	case FilterS1:
		return "Split 1"
	case FilterS2:
		return "Split 2"
	case FilterWB24S1:
		return model.Split24S1.Label()
	case FilterWB24S2:
		return model.Split24S2.Label()
	case FilterWB25S1:
		return model.Split25S1.Label()
	case FilterWB25S2:
		return model.Split25S2.Label()
	}
	return string(f)
}

// ErrFilterNotOffered is returned when a filter is selected on a tab that
// does not offer it.
var ErrFilterNotOffered = errors.New("filter not offered by tab")

// State is the current selection. The zero value is the general tab with no
// filter.
type State struct {
	Tab    Tab
	Filter Filter
}

// Initial returns the state the dashboard opens with.
func Initial() State {
	return State{Tab: TabGeneral, Filter: FilterAll}
}

// Action is a state transition.
type Action interface {
	apply(State) (State, error)
}

// SelectTab switches tab and resets the filter to "all".
type SelectTab struct{ Tab Tab }

func (a SelectTab) apply(s State) (State, error) {
	if a.Tab < TabGeneral || a.Tab > TabWB2025 {
		return s, fmt.Errorf("unknown tab %d", a.Tab)
	}
	return State{Tab: a.Tab, Filter: FilterAll}, nil
}

// SelectFilter picks one of the current tab's filters.
type SelectFilter struct{ Filter Filter }

func (a SelectFilter) apply(s State) (State, error) {
	for _, f := range s.Tab.Filters() {
		if f == a.Filter {
			s.Filter = a.Filter
			return s, nil
		}
	}
	return s, fmt.Errorf("%w: %q on %s", ErrFilterNotOffered, a.Filter, s.Tab)
}

// Reduce applies a to s. On error the returned state is s unchanged.
func Reduce(s State, a Action) (State, error) {
	next, err := a.apply(s.normalized())
	if err != nil {
		return s, err
	}
	return next, nil
}

func (s State) normalized() State {
	if s.Filter == "" {
		s.Filter = FilterAll
	}
	return s
}

// Splits returns the datasets the state merges, in fold order.
func (s State) Splits() []model.Split {
	s = s.normalized()
	switch s.Tab {
	case TabGeneral, TabProfile:
		switch s.Filter {
		case FilterAll:
			return model.AllSplits
		case FilterWB24S1:
			return []model.Split{model.Split24S1}
		case FilterWB24S2:
			return []model.Split{model.Split24S2}
		case FilterWB25S1:
			return []model.Split{model.Split25S1}
		case FilterWB25S2:
			return []model.Split{model.Split25S2}
		}
	case TabWB2024:
		return yearSplits(s.Filter, model.Split24S1, model.Split24S2)
	case TabWB2025:
		return yearSplits(s.Filter, model.Split25S1, model.Split25S2)
	}
	return nil
}

func yearSplits(f Filter, s1, s2 model.Split) []model.Split {
	switch f {
	case FilterAll:
		return []model.Split{s1, s2}
	case FilterS1:
		return []model.Split{s1}
	case FilterS2:
		return []model.Split{s2}
	}
	return nil
}

// Events is the provenance label of the state's tab.
func (s State) Events() string { return s.Tab.Events() }

// ComparisonSplits returns the splits whose display strings a head-to-head
// comparison sums. Nil means "use the merged totals".
func (s State) ComparisonSplits() []model.Split {
	if s.normalized().Filter == FilterAll {
		return nil
	}
	return s.Splits()
}

func (s State) String() string {
	return fmt.Sprintf("%s/%s", s.Tab, s.normalized().Filter)
}

// Resolve builds a state from a tab name and a filter name, the way the
// dashboard would reach it: select the tab, then the filter. Empty names
// select the general tab and "all".
func Resolve(tab, filter string) (State, error) {
	s := Initial()
	if tab != "" {
		t, err := ParseTab(tab)
		if err != nil {
			return s, err
		}
		if s, err = Reduce(s, SelectTab{Tab: t}); err != nil {
			return s, err
		}
	}
	if filter == "" {
		return s, nil
	}
	return Reduce(s, SelectFilter{Filter: Filter(strings.ToLower(strings.TrimSpace(filter)))})
}

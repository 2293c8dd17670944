package view

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pable/go-ff-stats/internal/model"
)

func TestInitial(t *testing.T) {
	s := Initial()
	if s.Tab != TabGeneral || s.Filter != FilterAll {
		t.Errorf("unexpected initial state %v", s)
	}
	if !reflect.DeepEqual(s.Splits(), model.AllSplits) {
		t.Errorf("expected every split, got %v", s.Splits())
	}
	if s.Events() != "WB Geral" {
		t.Errorf("unexpected events %q", s.Events())
	}
}

func TestReduce_TabChangeResetsFilter(t *testing.T) {
	s, err := Reduce(Initial(), SelectFilter{FilterWB25S2})
	if err != nil {
		t.Fatal(err)
	}
	s, err = Reduce(s, SelectTab{TabWB2024})
	if err != nil {
		t.Fatal(err)
	}
	if s.Filter != FilterAll {
		t.Errorf("expected filter reset to all, got %q", s.Filter)
	}
	want := []model.Split{model.Split24S1, model.Split24S2}
	if !reflect.DeepEqual(s.Splits(), want) {
		t.Errorf("expected %v, got %v", want, s.Splits())
	}
}

func TestReduce_FilterNotOffered(t *testing.T) {
	s, _ := Reduce(Initial(), SelectTab{TabWB2025})
	got, err := Reduce(s, SelectFilter{FilterWB24S1})
	if !errors.Is(err, ErrFilterNotOffered) {
		t.Fatalf("expected ErrFilterNotOffered, got %v", err)
	}
	if got != s {
		t.Errorf("state must be unchanged on error, got %v", got)
	}
	if _, err := Reduce(Initial(), SelectFilter{FilterS1}); err == nil {
		t.Error("general tab must not offer s1")
	}
	if _, err := Reduce(State{Tab: TabProfile}, SelectFilter{FilterWB24S1}); err == nil {
		t.Error("profile tab must only offer all")
	}
}

func TestState_Splits(t *testing.T) {
	cases := []struct {
		state State
		want  []model.Split
	}{
		{State{TabGeneral, FilterWB24S2}, []model.Split{model.Split24S2}},
		{State{TabProfile, FilterAll}, model.AllSplits},
		{State{TabWB2025, FilterS1}, []model.Split{model.Split25S1}},
		{State{TabWB2025, FilterS2}, []model.Split{model.Split25S2}},
		{State{TabWB2024, FilterWB25S1}, nil},
		{State{Tab: TabWB2024}, []model.Split{model.Split24S1, model.Split24S2}},
	}
	for _, c := range cases {
		if got := c.state.Splits(); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%v: expected %v, got %v", c.state, c.want, got)
		}
	}
}

func TestState_ComparisonSplits(t *testing.T) {
	if got := Initial().ComparisonSplits(); got != nil {
		t.Errorf("expected nil for all, got %v", got)
	}
	s := State{TabWB2024, FilterS2}
	if got := s.ComparisonSplits(); !reflect.DeepEqual(got, []model.Split{model.Split24S2}) {
		t.Errorf("unexpected %v", got)
	}
}

func TestParseTab(t *testing.T) {
	if tab, err := ParseTab(" WB2025 "); err != nil || tab != TabWB2025 {
		t.Errorf("unexpected (%v, %v)", tab, err)
	}
	if _, err := ParseTab("lbff"); err == nil {
		t.Error("expected error for unknown tab")
	}
	if TabWB2024.Events() != "WB 2024" || TabProfile.Events() != "WB Geral" {
		t.Error("unexpected events labels")
	}
}

func TestResolve(t *testing.T) {
	s, err := Resolve("", "")
	if err != nil || s != Initial() {
		t.Errorf("expected initial state, got (%v, %v)", s, err)
	}
	s, err = Resolve("wb2025", "S1")
	if err != nil || s != (State{TabWB2025, FilterS1}) {
		t.Errorf("unexpected (%v, %v)", s, err)
	}
	if _, err := Resolve("wb2024", "wb25s1"); !errors.Is(err, ErrFilterNotOffered) {
		t.Errorf("expected ErrFilterNotOffered, got %v", err)
	}
	if _, err := Resolve("nope", ""); err == nil {
		t.Error("expected unknown tab error")
	}
}

package identity

import (
	"reflect"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"but", "BuTziN"},
		{"Butzin", "BuTziN"},
		{" BUTZIN ", "BuTziN"},
		{"xtrap7", "TRAP7"},
		{"Trap", "TRAP7"},
		{"yago.exe", "Yago"},
		{"Italo7", "ITALO$$"},
		{"guaxa", "GUAXA7"},
		{"  Ana  ", "Ana"},
		{"NoAlias", "NoAlias"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Canonicalize(c.in); got != c.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestKey(t *testing.T) {
	for _, in := range []string{"but", "Butzin", "BUTZIN"} {
		if got := Key(in); got != "butzin" {
			t.Errorf("Key(%q) = %q, want butzin", in, got)
		}
	}
	if Key("Ana") != Key(" ana") {
		t.Error("expected case and whitespace to be ignored")
	}
}

func TestIsAllCaps(t *testing.T) {
	cases := map[string]bool{
		"TRAP7":   true,
		"ITALO$$": true,
		"Italo7":  false,
		"7777":    false,
		"":        false,
	}
	for in, want := range cases {
		if got := IsAllCaps(in); got != want {
			t.Errorf("IsAllCaps(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAliases(t *testing.T) {
	got := Aliases("TRAP7")
	want := []string{"trap", "trap7", "xtrap7"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aliases(TRAP7) = %v, want %v", got, want)
	}
}

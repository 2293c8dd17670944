// Package identity resolves the many spellings of a player's nickname to one
// canonical display name and merge key.
package identity

import (
	"sort"
	"strings"
)

// aliases maps a lower-cased, trimmed nickname to its canonical display form.
// The list is maintained by hand as new spellings show up in the sheets.
var aliases = map[string]string{
	"nickz7": "Nickz7",

	"but":    "BuTziN",
	"butzin": "BuTziN",

	"motovea":  "Motovea",
	"motovea7": "Motovea",

	"rigby":    "Rigby245",
	"rigby245": "Rigby245",

	"lost":   "Lost21",
	"lost21": "Lost21",

	"honey":   "HoneyZL",
	"honeyzl": "HoneyZL",

	"pitbull": "Pitbull",
	"bops":    "Bops",
	"bahiaz7": "BahiaZ7",
	"nando9":  "NANDO9",

	"xtrap7": "TRAP7",
	"trap":   "TRAP7",
	"trap7":  "TRAP7",

	"yago.exe": "Yago",
	"yago":     "Yago",

	"cauan7": "Cauan",
	"cauan":  "Cauan",

	"italo7": "ITALO$$",
	"italo":  "ITALO$$",

	"xguaxa7": "GUAXA7",
	"guaxa":   "GUAXA7",
	"guaxa7":  "GUAXA7",

	"bombom7": "BOMBOM",
	"bombom":  "BOMBOM",
}

// Canonicalize returns the canonical display form of name. Names without an
// alias come back trimmed with their original casing.
func Canonicalize(name string) string {
	n := strings.TrimSpace(name)
	if c, ok := aliases[strings.ToLower(n)]; ok {
		return c
	}
	return n
}

// Key is the merge key of name: its canonical form lower-cased.
func Key(name string) string {
	return strings.ToLower(Canonicalize(name))
}

// IsAllCaps reports whether s is written entirely in upper case and has at
// least one cased letter ("TRAP7" yes, "7777" no).
func IsAllCaps(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}

// Aliases returns the spellings that resolve to canonical, sorted.
func Aliases(canonical string) []string {
	var out []string
	for k, v := range aliases {
		if v == canonical {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}


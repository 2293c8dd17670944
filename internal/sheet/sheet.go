// Package sheet turns published spreadsheet CSV exports into typed records.
//
// The sources are edited by hand, so every step is best-effort: the header row
// is sniffed rather than assumed, columns are located by keyword, and numeric
// cells that do not parse become zero. Nothing in this package returns a parse
// error.
package sheet

import (
	"encoding/csv"
	"strings"
)

const bom = "\uFEFF"

// Table is a delimited text source split into non-blank rows with its header
// row located.
type Table struct {
	Rows        [][]string
	Delimiter   rune
	HeaderIndex int
	HeaderFound bool // false when HeaderIndex is the row-0 fallback
}

// Parse splits text into rows, detects the delimiter from the first non-blank
// line and classifies the header row.
func Parse(text string) Table {
	lines := Lines(text)
	if len(lines) == 0 {
		return Table{Delimiter: ','}
	}
	delim := DetectDelimiter(lines[0])
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, SplitLine(line, delim))
	}
	idx, found := ClassifyHeader(rows)
	return Table{Rows: rows, Delimiter: delim, HeaderIndex: idx, HeaderFound: found}
}

// Header returns the header row lower-cased and trimmed.
func (t Table) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return normalizeRow(t.Rows[t.HeaderIndex])
}

// Data returns every row after the header.
func (t Table) Data() [][]string {
	if len(t.Rows) <= t.HeaderIndex+1 {
		return nil
	}
	return t.Rows[t.HeaderIndex+1:]
}

// Lines strips a byte-order mark, normalises line endings and drops lines that
// are blank after trimming.
func Lines(text string) []string {
	text = strings.TrimPrefix(text, bom)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// DetectDelimiter returns ';' when the line has semicolons and no commas,
// otherwise ','.
func DetectDelimiter(firstLine string) rune {
	if !strings.Contains(firstLine, ",") && strings.Contains(firstLine, ";") {
		return ';'
	}
	return ','
}

// SplitLine splits one line on delim, honouring double-quoted cells such as
// "1,402". Lines with an unbalanced quote, or that the CSV reader rejects,
// fall back to a plain split.
func SplitLine(line string, delim rune) []string {
	if strings.Count(line, `"`)%2 != 0 {
		return strings.Split(line, string(delim))
	}
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	rec, err := r.Read()
	if err != nil {
		return strings.Split(line, string(delim))
	}
	return rec
}

func normalizeRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = normalizeCell(c)
	}
	return out
}

func normalizeCell(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

// cleanCell trims whitespace and a pair of stray surrounding quotes.
func cleanCell(c string) string {
	c = strings.TrimSpace(c)
	c = strings.TrimPrefix(c, `"`)
	c = strings.TrimSuffix(c, `"`)
	return strings.TrimSpace(c)
}

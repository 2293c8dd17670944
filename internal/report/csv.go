package report

import (
	"bufio"
	"io"
	"strings"

	"github.com/pable/go-ff-stats/internal/model"
)

// WriteCSV writes players as comma-separated text: a plain header line of
// column labels, then one line per player with every cell double-quoted.
// The output reads back through the sheet parser.
func WriteCSV(w io.Writer, players []model.MergedPlayer, cols []Column) error {
	bw := bufio.NewWriter(w)

	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Label
	}
	bw.WriteString(strings.Join(labels, ","))
	bw.WriteByte('\n')

	for _, p := range players {
		for i, c := range cols {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quote(rawValue(c.Value(p))))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

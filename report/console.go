/*
Package report writes the summarized enrichment result to its three sinks: an aligned
console table for eyeballing, CSV for further scripting and an Excel workbook for the
people who asked for the analysis in the first place.
*/
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/flowlens/flowlens/record"
)

const (
	colWidth  = 18
	ruleWidth = 130
)

// WriteConsole prints the summary as fixed-width columns. Long values overflow their
// column rather than being truncated - losing an address or a hostname to alignment
// would defeat the point of the report.
func WriteConsole(w io.Writer, rows []record.SummaryRow) {
	cols := record.Columns()
	rule := strings.Repeat("-", ruleWidth)

	fmt.Fprintln(w, "Distinct records and their occurrence counts:")
	fmt.Fprintln(w, rule)

	var b strings.Builder
	for _, col := range cols[:len(cols)-1] {
		fmt.Fprintf(&b, "%-*s  ", colWidth, col)
	}
	b.WriteString("Count")
	fmt.Fprintln(w, b.String())
	fmt.Fprintln(w, rule)

	total := 0
	for _, row := range rows {
		b.Reset()
		for _, v := range row.Values() {
			fmt.Fprintf(&b, "%-*s  ", colWidth, v)
		}
		fmt.Fprintf(&b, "%d", row.Count)
		fmt.Fprintln(w, b.String())
		total += row.Count
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Distinct combinations:", len(rows))
	fmt.Fprintln(w, "Records processed:", total)
}

package record

import (
	"sort"
)

// SummaryRow is one distinct enriched record with the number of times it occurred in
// the input.
type SummaryRow struct {
	Traffic
	Count int
}

// Columns returns the summary header: the input columns, the enrichment columns and
// the trailing Count.
func Columns() []string {
	cols := append([]string{}, NeededColumns...)

	return append(cols, "SrcPrefix", "SrcDescription", "DstHost", "Count")
}

// Values flattens a row in Columns() order.
func (t *SummaryRow) Values() []string {
	return []string{t.SrcAddr, t.DstAddr, t.DstPort, t.Protocol,
		t.SrcPrefix, t.SrcDescription, t.DstHost}
}

// Summarize groups identical records (all fields, enrichment included), counts each
// group and returns the groups sorted by source address. The sort is stable so groups
// sharing a source address keep their first-seen order.
func Summarize(recs []Traffic) []SummaryRow {
	counts := make(map[Traffic]int, len(recs))
	order := make([]Traffic, 0, len(recs))
	for _, rec := range recs {
		if counts[rec] == 0 {
			order = append(order, rec)
		}
		counts[rec]++
	}

	rows := make([]SummaryRow, 0, len(order))
	for _, rec := range order {
		rows = append(rows, SummaryRow{Traffic: rec, Count: counts[rec]})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SrcAddr < rows[j].SrcAddr
	})

	return rows
}

package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/flowlens/flowlens/record"
)

// WriteCSV emits the summary with a header row in record.Columns() order.
func WriteCSV(w io.Writer, rows []record.SummaryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(record.Columns()); err != nil {
		return err
	}
	for _, row := range rows {
		line := append(row.Values(), strconv.Itoa(row.Count))
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

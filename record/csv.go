package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads a Huawei USG policy log exported as CSV. The header row must contain
// all of NeededColumns; extra columns are ignored. Column order in the file is
// irrelevant as fields are located by header name. All values are kept as strings,
// trimmed of surrounding space.
func ParseCSV(r io.Reader) ([]Traffic, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // Huawei pads some rows short

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("CSV header: %w", err)
	}

	colIx := make(map[string]int, len(header))
	for ix, name := range header {
		colIx[strings.TrimSpace(name)] = ix
	}

	var missing []string
	for _, name := range NeededColumns {
		if _, ok := colIx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV is missing required columns: %s",
			strings.Join(missing, ", "))
	}

	var recs []Traffic
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", len(recs)+2, err)
		}

		recs = append(recs, Traffic{
			SrcAddr:  field(row, colIx["Source Address"]),
			DstAddr:  field(row, colIx["Destination Address"]),
			DstPort:  field(row, colIx["Destination Port"]),
			Protocol: field(row, colIx["Protocol"]),
		})
	}

	return recs, nil
}

func field(row []string, ix int) string {
	if ix >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[ix])
}

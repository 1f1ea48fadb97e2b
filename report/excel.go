package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/flowlens/flowlens/record"
)

const sheetName = "Result"

// TimestampedPath builds the workbook path the analysis will be saved under, e.g.
// parse_log_result/traffic_analysis_2026-08-14_09-15-02.xlsx.
func TimestampedPath(dir, base string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx",
		base, now.Format("2006-01-02_15-04-05")))
}

// WriteExcel saves the summary as a single-sheet workbook at path, creating the
// directory if needed. The header row is bold and columns are widened enough that
// addresses and prefixes show without resizing.
func WriteExcel(path string, rows []record.SummaryRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	cols := record.Columns()
	for ix, col := range cols {
		cell, err := excelize.CoordinatesToCellName(ix+1, 1)
		if err != nil {
			return err
		}
		if err = f.SetCellValue(sheetName, cell, col); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	endCol, _ := excelize.ColumnNumberToName(len(cols))
	if err = f.SetCellStyle(sheetName, "A1", endCol+"1", bold); err != nil {
		return err
	}
	if err = f.SetColWidth(sheetName, "A", endCol, 22); err != nil {
		return err
	}

	for rx, row := range rows {
		for cx, v := range row.Values() {
			cell, err := excelize.CoordinatesToCellName(cx+1, rx+2)
			if err != nil {
				return err
			}
			if err = f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
		cell, err := excelize.CoordinatesToCellName(len(cols), rx+2)
		if err != nil {
			return err
		}
		if err = f.SetCellValue(sheetName, cell, row.Count); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

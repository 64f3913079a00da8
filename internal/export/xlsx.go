// Package export renders scan history as an Excel workbook for download.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"scanstation/internal/domain"
)

const sheetName = "最近の読取"

var columns = []string{"種別", "名称", "読取日時"}

// WriteRecentScans writes the recent-scan history to w as an xlsx workbook,
// newest first.
func WriteRecentScans(w io.Writer, entries []domain.RecentScanEntry) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for row, e := range entries {
		values := []string{
			e.Icon + " " + e.DisplayType,
			e.Name,
			e.TimestampLabel,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

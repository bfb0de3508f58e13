package tabular

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Excel caps sheet names at 31 characters.
const maxSheetNameLen = 31

// RenderWorkbook emits the filtered/sorted records as an xlsx workbook with
// the same header/cell contract as RenderCSV.
func RenderWorkbook[T any](records []T, keys []string, table *Table[T], sheetName string) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoRows
	}
	keys = knownKeys(keys, table)

	if sheetName == "" {
		sheetName = "Export"
	}
	if len(sheetName) > maxSheetNameLen {
		sheetName = sheetName[:maxSheetNameLen]
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, errors.Wrap(err, "failed to name sheet")
	}

	for col, key := range keys {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve header cell")
		}
		if err := f.SetCellValue(sheetName, cell, table.Label(key)); err != nil {
			return nil, errors.Wrap(err, "failed to write header cell")
		}
	}

	for row, record := range records {
		for col, key := range keys {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, errors.Wrap(err, "failed to resolve cell")
			}
			if err := f.SetCellValue(sheetName, cell, table.ExportValue(key, record)); err != nil {
				return nil, errors.Wrap(err, "failed to write cell")
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize workbook")
	}
	return buf.Bytes(), nil
}

// WorkbookFilename stamps the export moment into the download name.
func WorkbookFilename(base string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", base, now.Format("2006-01-02_150405"))
}

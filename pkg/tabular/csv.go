package tabular

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoRows is returned when an export is attempted over an empty result
// set; hosts surface it to the user instead of producing an empty document.
var ErrNoRows = errors.New("no rows to export")

// RenderCSV emits the filtered/sorted records as CSV text: a label header
// row followed by one row per record. Every cell is double-quoted with
// internal quotes doubled, which keeps addresses and free-form notes safe.
// Cells resolve through the same descriptor table as the on-screen view.
func RenderCSV[T any](records []T, keys []string, table *Table[T]) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRows
	}
	keys = knownKeys(keys, table)

	rows := make([]string, 0, len(records)+1)

	header := make([]string, len(keys))
	for i, key := range keys {
		header[i] = quoteCSV(table.Label(key))
	}
	rows = append(rows, strings.Join(header, ","))

	for _, record := range records {
		cells := make([]string, len(keys))
		for i, key := range keys {
			cells[i] = quoteCSV(table.ExportValue(key, record))
		}
		rows = append(rows, strings.Join(cells, ","))
	}
	return strings.Join(rows, "\n"), nil
}

// CSVFilename stamps the export moment into the download name.
func CSVFilename(base string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", base, now.Format("2006-01-02_150405"))
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func knownKeys[T any](keys []string, table *Table[T]) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := table.Describe(key); ok {
			out = append(out, key)
		}
	}
	return out
}

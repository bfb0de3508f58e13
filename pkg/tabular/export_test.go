package tabular_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/meterdesk/meterdesk/pkg/tabular"
)

func TestRenderCSV(t *testing.T) {
	table := testTable()
	records := []row{
		{ID: "1", Status: "Open", Address: `5 "A" Elm`},
		{ID: "2", Status: "Closed", Address: "1 Oak"},
	}

	got, err := tabular.RenderCSV(records, []string{"id", "status", "address"}, table)
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, `"ID","Status","Address"`, lines[0])
	require.Equal(t, `"1","Open","5 ""A"" Elm"`, lines[1])
	require.Equal(t, `"2","Closed","1 Oak"`, lines[2])
}

func TestRenderCSV_UnknownKeysSkipped(t *testing.T) {
	table := testTable()
	got, err := tabular.RenderCSV([]row{{ID: "1"}}, []string{"id", "bogus"}, table)
	require.NoError(t, err)
	require.Equal(t, "\"ID\"\n\"1\"", got)
}

func TestRenderCSV_NoRows(t *testing.T) {
	_, err := tabular.RenderCSV(nil, []string{"id"}, testTable())
	require.ErrorIs(t, err, tabular.ErrNoRows)
}

func TestCSVFilename(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 5, 0, time.UTC)
	require.Equal(t, "work_orders_2024-03-15_093005.csv", tabular.CSVFilename("work_orders", now))
	require.Equal(t, "work_orders_2024-03-15_093005.xlsx", tabular.WorkbookFilename("work_orders", now))
}

func TestRenderWorkbook(t *testing.T) {
	table := testTable()
	records := []row{
		{ID: "1", Status: "Open", Codes: `["A","B"]`},
	}

	data, err := tabular.RenderWorkbook(records, []string{"id", "status", "codes"}, table, "Work Orders")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()

	require.Equal(t, []string{"Work Orders"}, f.GetSheetList())

	header, err := f.GetCellValue("Work Orders", "B1")
	require.NoError(t, err)
	require.Equal(t, "Status", header)

	cell, err := f.GetCellValue("Work Orders", "C2")
	require.NoError(t, err)
	require.Equal(t, "A, B", cell)
}

func TestRenderWorkbook_NoRows(t *testing.T) {
	_, err := tabular.RenderWorkbook(nil, []string{"id"}, testTable(), "")
	require.ErrorIs(t, err, tabular.ErrNoRows)
}

func TestRenderPrintDocument(t *testing.T) {
	table := testTable()
	records := []row{
		{ID: "1", Status: "Open"},
		{ID: "2", Status: "Closed"},
	}
	generatedAt := time.Date(2024, 3, 15, 9, 30, 5, 0, time.UTC)

	got, err := tabular.RenderPrintDocument(records, []string{"id", "status"}, table, "Work Orders", generatedAt)
	require.NoError(t, err)
	require.Contains(t, got, "<title>Work Orders</title>")
	require.Contains(t, got, "Generated at 2024-03-15 09:30:05")
	require.Contains(t, got, "2 records")
	require.Contains(t, got, "<th>Status</th>")
	require.Contains(t, got, "<td>Closed</td>")
}

func TestRenderPrintDocument_NoRows(t *testing.T) {
	_, err := tabular.RenderPrintDocument(nil, []string{"id"}, testTable(), "x", time.Now())
	require.ErrorIs(t, err, tabular.ErrNoRows)
}

// The three projections must agree cell-for-cell for the same records and
// columns.
func TestProjectionConsistency(t *testing.T) {
	table := testTable()
	records := []row{
		{ID: "1", Status: "Open", Codes: `["A","B"]`, Address: "5 Elm"},
		{ID: "2", Status: "", Codes: "C", Address: "1 Oak"},
	}
	keys := []string{"id", "status", "codes", "address"}

	csvText, err := tabular.RenderCSV(records, keys, table)
	require.NoError(t, err)
	csvRows := strings.Split(csvText, "\n")[1:]

	data, err := tabular.RenderWorkbook(records, keys, table, "Export")
	require.NoError(t, err)
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, wb.Close())
	}()

	for i, record := range records {
		csvCells := strings.Split(csvRows[i], ",")
		for j, key := range keys {
			want := table.ExportValue(key, record)

			require.Equal(t, `"`+strings.ReplaceAll(want, `"`, `""`)+`"`, csvCells[j])

			cellName, err := excelize.CoordinatesToCellName(j+1, i+2)
			require.NoError(t, err)
			got, err := wb.GetCellValue("Export", cellName)
			require.NoError(t, err)
			require.Equal(t, want, got)

			display := table.DisplayValue(key, record, "-")
			if want == "" {
				require.Equal(t, "-", display, "screen shows placeholder where exports show empty")
			} else {
				require.Equal(t, want, display)
			}
		}
	}
}

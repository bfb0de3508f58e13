package tabular_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meterdesk/meterdesk/pkg/tabular"
)

func TestTable_Describe(t *testing.T) {
	table := testTable()

	d, ok := table.Describe("status")
	require.True(t, ok)
	require.Equal(t, "Status", d.Label)

	_, ok = table.Describe("no-such-column")
	require.False(t, ok)
}

func TestTable_DuplicateAndInvalidDescriptorsSkipped(t *testing.T) {
	table := tabular.NewTable(
		tabular.Descriptor[row]{Key: "id", Label: "First", Value: func(r row) any { return r.ID }},
		tabular.Descriptor[row]{Key: "id", Label: "Second", Value: func(r row) any { return r.Status }},
		tabular.Descriptor[row]{Key: "", Label: "Blank", Value: func(r row) any { return r.ID }},
		tabular.Descriptor[row]{Key: "broken", Label: "NoValue"},
	)
	require.Equal(t, []string{"id"}, table.Keys())

	d, ok := table.Describe("id")
	require.True(t, ok)
	require.Equal(t, "First", d.Label)
}

func TestTable_RequiredKeys(t *testing.T) {
	table := testTable()
	require.Equal(t, []string{"id"}, table.RequiredKeys())
}

func TestTable_ExportValue(t *testing.T) {
	table := testTable()
	r := row{ID: "1", Codes: `["A","B"]`}

	require.Equal(t, "1", table.ExportValue("id", r))
	require.Equal(t, "A, B", table.ExportValue("codes", r))
	require.Equal(t, "", table.ExportValue("assignee", r), "nil pointer must not render as <nil>")
	require.Equal(t, "", table.ExportValue("unknown", r))
}

func TestTable_DisplayValue(t *testing.T) {
	table := testTable()
	name := "J. Reyes"
	r := row{ID: "1", Assignee: &name}

	require.Equal(t, "J. Reyes", table.DisplayValue("assignee", r, "-"))
	require.Equal(t, "-", table.DisplayValue("status", r, "-"))
	require.Equal(t, "-", table.DisplayValue("unknown", r, "-"))
}

func TestTable_SortKeyOf(t *testing.T) {
	table := testTable()
	r := row{Status: "Open"}

	require.Equal(t, "Open", table.SortKeyOf("status", r))
	require.Equal(t, "", table.SortKeyOf("assignee", r))
	require.Equal(t, "", table.SortKeyOf("unknown", r))
}

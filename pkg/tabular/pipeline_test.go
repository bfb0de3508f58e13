package tabular_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/meterdesk/meterdesk/pkg/tabular"
)

func testPipeline() *tabular.Pipeline[row] {
	return tabular.NewPipeline(testTable(), language.English)
}

func sampleRows() []row {
	return []row{
		{ID: "1", Status: "Open", Address: "5 Elm"},
		{ID: "2", Status: "Open", Address: "1 Oak"},
		{ID: "3", Status: "Closed", Address: "9 Pine"},
	}
}

func TestPipeline_FilterThenSort(t *testing.T) {
	p := testPipeline()

	predicates := []tabular.Predicate[row]{
		tabular.Equals("Open", func(r row) string { return r.Status }),
	}
	criteria := tabular.Criteria{{Key: "address"}}

	got := p.Run(sampleRows(), predicates, criteria)
	require.Equal(t, []string{"2", "1"}, ids(got))
}

func TestPipeline_InactiveFiltersAreSortOnly(t *testing.T) {
	p := testPipeline()
	criteria := tabular.Criteria{{Key: "address"}}

	predicates := []tabular.Predicate[row]{
		tabular.Equals("all", func(r row) string { return r.Status }),
		tabular.SearchText("", func(r row) string { return r.Address }),
	}

	withFilters := p.Run(sampleRows(), predicates, criteria)
	sortOnly := p.Run(sampleRows(), nil, criteria)
	require.Equal(t, sortOnly, withFilters)
}

func TestPipeline_ExactMatchYieldsExactSubset(t *testing.T) {
	p := testPipeline()
	records := sampleRows()

	got := p.Run(records, []tabular.Predicate[row]{
		tabular.Equals("Closed", func(r row) string { return r.Status }),
	}, nil)

	var want []row
	for _, r := range records {
		if r.Status == "Closed" {
			want = append(want, r)
		}
	}
	require.Equal(t, want, got)
}

func TestPipeline_Idempotent(t *testing.T) {
	p := testPipeline()
	predicates := []tabular.Predicate[row]{
		tabular.Equals("Open", func(r row) string { return r.Status }),
	}
	criteria := tabular.Criteria{{Key: "address", Desc: true}}

	first := p.Run(sampleRows(), predicates, criteria)
	second := p.Run(sampleRows(), predicates, criteria)
	require.Equal(t, first, second)
}

func TestPipeline_DoesNotMutateInput(t *testing.T) {
	p := testPipeline()
	records := sampleRows()

	_ = p.Run(records, nil, tabular.Criteria{{Key: "address"}})
	require.Equal(t, sampleRows(), records)
}

func TestPipeline_SortStability(t *testing.T) {
	p := testPipeline()
	records := []row{
		{ID: "1", Status: "Open", Route: "R1"},
		{ID: "2", Status: "Open", Route: "R2"},
		{ID: "3", Status: "Open", Route: "R3"},
	}

	got := p.Run(records, nil, tabular.Criteria{{Key: "status"}})
	require.Equal(t, []string{"1", "2", "3"}, ids(got),
		"records equal under all criteria keep their input order")
}

func TestPipeline_MultiKeySort(t *testing.T) {
	p := testPipeline()
	records := []row{
		{ID: "1", Status: "Open", Address: "5 Elm"},
		{ID: "2", Status: "Closed", Address: "9 Pine"},
		{ID: "3", Status: "Open", Address: "1 Oak"},
	}

	byStatusThenAddress := p.Run(records, nil, tabular.Criteria{{Key: "status"}, {Key: "address"}})
	require.Equal(t, []string{"2", "3", "1"}, ids(byStatusThenAddress))

	byAddressThenStatus := p.Run(records, nil, tabular.Criteria{{Key: "address"}, {Key: "status"}})
	require.Equal(t, []string{"3", "1", "2"}, ids(byAddressThenStatus),
		"reversed priority changes the ordering when ties exist")
}

func TestPipeline_EmptyCriteriaPreserveFilterOrder(t *testing.T) {
	p := testPipeline()
	records := sampleRows()

	got := p.Run(records, nil, nil)
	require.Equal(t, ids(records), ids(got))
}

package tabular_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meterdesk/meterdesk/pkg/tabular"
)

func TestIsActive(t *testing.T) {
	require.False(t, tabular.IsActive(""))
	require.False(t, tabular.IsActive("   "))
	require.False(t, tabular.IsActive("all"))
	require.False(t, tabular.IsActive("All"))
	require.True(t, tabular.IsActive("Open"))
	require.True(t, tabular.IsActive("0"))
}

func TestEquals(t *testing.T) {
	get := func(r row) string { return r.Status }

	require.Nil(t, tabular.Equals("all", get), "sentinel must deactivate the filter")
	require.Nil(t, tabular.Equals("  ", get))

	p := tabular.Equals(" open ", get)
	require.NotNil(t, p)
	require.True(t, p(row{Status: "Open"}))
	require.False(t, p(row{Status: "Closed"}))
}

func TestEquals_IDsCompareAsStrings(t *testing.T) {
	p := tabular.Equals("12", func(r row) string { return r.ID })
	require.True(t, p(row{ID: "12"}))
	require.False(t, p(row{ID: "120"}))
}

func TestSearchText(t *testing.T) {
	fields := []func(row) string{
		func(r row) string { return r.Address },
		func(r row) string { return r.Route },
	}

	require.Nil(t, tabular.SearchText("  ", fields...))

	p := tabular.SearchText("ELM", fields...)
	require.True(t, p(row{Address: "5 Elm St"}))
	require.True(t, p(row{Route: "elm-north"}))
	require.False(t, p(row{Address: "1 Oak Ave"}))

	// "all" is a literal query for search, not a sentinel.
	require.NotNil(t, tabular.SearchText("all", fields...))
}

func TestContains(t *testing.T) {
	p := tabular.Contains("oak", func(r row) string { return r.Address })
	require.True(t, p(row{Address: "1 OAK Ave"}))
	require.False(t, p(row{Address: "5 Elm St"}))
}

func TestAndOr(t *testing.T) {
	open := tabular.Equals("Open", func(r row) string { return r.Status })
	elm := tabular.Contains("elm", func(r row) string { return r.Address })

	require.Nil(t, tabular.And[row](nil, nil))
	require.Nil(t, tabular.Or[row](nil, nil))

	and := tabular.And(open, nil, elm)
	require.True(t, and(row{Status: "Open", Address: "5 Elm"}))
	require.False(t, and(row{Status: "Open", Address: "1 Oak"}))

	or := tabular.Or(open, elm)
	require.True(t, or(row{Status: "Closed", Address: "5 Elm"}))
	require.False(t, or(row{Status: "Closed", Address: "1 Oak"}))
}

func TestParseCodeList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"null literal", "null", nil},
		{"empty array", "[]", nil},
		{"json array", `["A","B"]`, []string{"A", "B"}},
		{"json array with blanks", `["A",""," B "]`, []string{"A", "B"}},
		{"json array of numbers", `[7,9]`, []string{"7", "9"}},
		{"comma list", "A,B , C", []string{"A", "B", "C"}},
		{"scalar", "A", []string{"A"}},
		{"malformed json falls back to comma split", `["A",`, []string{`["A"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tabular.ParseCodeList(tt.raw))
		})
	}
}

func TestHasCode(t *testing.T) {
	get := func(r row) string { return r.Codes }

	require.Nil(t, tabular.HasCode("all", get))

	r := row{Codes: `["A","B"]`}
	require.True(t, tabular.HasCode("B", get)(r))
	require.False(t, tabular.HasCode("C", get)(r))
	require.False(t, tabular.HasCode("none", get)(r), "non-empty list must not match none")

	for _, raw := range []string{"", "null", "[]"} {
		require.True(t, tabular.HasCode("none", get)(row{Codes: raw}), "raw=%q", raw)
	}

	require.True(t, tabular.HasCode("A", get)(row{Codes: "A, B"}))
	require.True(t, tabular.HasCode("A", get)(row{Codes: "A"}))
}

func TestEqualsOneOf(t *testing.T) {
	get := func(r row) string { return r.MeterType }

	require.Nil(t, tabular.EqualsOneOf([]string{"", "all"}, get))

	// A meter type stored as either the product id or its legacy label.
	p := tabular.EqualsOneOf([]string{"MTR-1", "Standard Meter"}, get)
	require.True(t, p(row{MeterType: "MTR-1"}))
	require.True(t, p(row{MeterType: "Standard Meter"}))
	require.False(t, p(row{MeterType: "MTR-2"}))
}

func TestEqualsWithFallback(t *testing.T) {
	getID := func(r row) string { return r.ID }
	getName := func(r row) string { return r.Address }

	require.Nil(t, tabular.EqualsWithFallback("all", "Label", getID, getName))

	p := tabular.EqualsWithFallback("42", "Jane Smith", getID, getName)
	require.True(t, p(row{ID: "42"}))
	require.False(t, p(row{ID: "7", Address: "Jane Smith"}), "id wins when present")
	require.True(t, p(row{ID: "", Address: "Jane Smith"}))
	require.False(t, p(row{ID: "", Address: "John Doe"}))
}

func TestDateWithin(t *testing.T) {
	loc := time.UTC
	get := func(r row) string { return r.CreatedAt }

	require.Nil(t, tabular.DateWithin("", "", loc, get))
	require.Nil(t, tabular.DateWithin("not-a-date", "also-bad", loc, get), "unparseable bounds are unset")

	p := tabular.DateWithin("2024-03-01", "2024-03-31", loc, get)
	require.True(t, p(row{CreatedAt: "2024-03-01T00:00:00Z"}))
	require.True(t, p(row{CreatedAt: "2024-03-31T23:59:59Z"}), "end bound extends to end of day")
	require.True(t, p(row{CreatedAt: "2024-03-15"}))
	require.False(t, p(row{CreatedAt: "2024-02-29T23:59:59Z"}))
	require.False(t, p(row{CreatedAt: "2024-04-01T00:00:00Z"}))

	require.False(t, p(row{CreatedAt: ""}), "missing date is rejected by an active range")
	require.False(t, p(row{CreatedAt: "garbage"}), "malformed date degrades to no-match")

	from := tabular.DateWithin("2024-03-01", "", loc, get)
	require.True(t, from(row{CreatedAt: "2030-01-01"}))
	require.False(t, from(row{CreatedAt: "2020-01-01"}))
}

package tabular_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/meterdesk/meterdesk/pkg/tabular"
)

func TestCriteria_Toggle(t *testing.T) {
	t.Run("plain click activates ascending", func(t *testing.T) {
		got := tabular.Criteria{}.Toggle("status", false)
		require.Equal(t, tabular.Criteria{{Key: "status"}}, got)
	})

	t.Run("plain click on sole criterion flips direction", func(t *testing.T) {
		c := tabular.Criteria{{Key: "status"}}
		got := c.Toggle("status", false)
		require.Equal(t, tabular.Criteria{{Key: "status", Desc: true}}, got)
		got = got.Toggle("status", false)
		require.Equal(t, tabular.Criteria{{Key: "status"}}, got)
	})

	t.Run("plain click on an unsorted key replaces a multi-key list", func(t *testing.T) {
		c := tabular.Criteria{{Key: "status"}, {Key: "route"}}
		got := c.Toggle("address", false)
		require.Equal(t, tabular.Criteria{{Key: "address"}}, got)
	})

	t.Run("plain click on a sorted key collapses and flips", func(t *testing.T) {
		c := tabular.Criteria{{Key: "status"}, {Key: "route", Desc: true}}
		got := c.Toggle("route", false)
		require.Equal(t, tabular.Criteria{{Key: "route"}}, got)
	})

	t.Run("modifier click appends lower-priority key", func(t *testing.T) {
		c := tabular.Criteria{{Key: "status"}}
		got := c.Toggle("route", true)
		require.Equal(t, tabular.Criteria{{Key: "status"}, {Key: "route"}}, got)
	})

	t.Run("modifier click flips direction in place", func(t *testing.T) {
		c := tabular.Criteria{{Key: "status"}, {Key: "route"}}
		got := c.Toggle("status", true)
		require.Equal(t, tabular.Criteria{{Key: "status", Desc: true}, {Key: "route"}}, got)
	})

	t.Run("click status, shift-click route, then plain click status", func(t *testing.T) {
		var c tabular.Criteria
		c = c.Toggle("status", false)
		c = c.Toggle("route", true)
		require.Equal(t, tabular.Criteria{{Key: "status"}, {Key: "route"}}, c)

		c = c.Toggle("status", false)
		require.Equal(t, tabular.Criteria{{Key: "status", Desc: true}}, c,
			"a plain click on the primary key collapses to that key with flipped direction")
	})

	t.Run("toggle does not mutate the receiver", func(t *testing.T) {
		c := tabular.Criteria{{Key: "status"}, {Key: "route"}}
		_ = c.Toggle("status", true)
		require.Equal(t, tabular.Criteria{{Key: "status"}, {Key: "route"}}, c)
	})

	t.Run("clear empties the list", func(t *testing.T) {
		c := tabular.Criteria{{Key: "status"}}
		require.Empty(t, c.Clear())
	})
}

func TestParseCriteria(t *testing.T) {
	require.Empty(t, tabular.ParseCriteria(""))
	require.Equal(t,
		tabular.Criteria{{Key: "status"}, {Key: "route", Desc: true}},
		tabular.ParseCriteria("status:asc, route:desc"),
	)
	require.Equal(t,
		tabular.Criteria{{Key: "status"}},
		tabular.ParseCriteria("status,,status:desc"),
		"duplicates keep their first occurrence",
	)
}

func TestCriteria_String(t *testing.T) {
	c := tabular.Criteria{{Key: "status"}, {Key: "route", Desc: true}}
	require.Equal(t, "status:asc,route:desc", c.String())
	require.Equal(t, c, tabular.ParseCriteria(c.String()))
}

func TestComparator_Compare(t *testing.T) {
	table := testTable()
	cmp := tabular.NewComparator(table, language.English)

	a := row{Status: "Closed", Address: "1 Oak"}
	b := row{Status: "Open", Address: "1 Oak"}

	asc := tabular.Criteria{{Key: "status"}}
	require.Negative(t, cmp.Compare(a, b, asc))
	require.Positive(t, cmp.Compare(b, a, asc))

	desc := tabular.Criteria{{Key: "status", Desc: true}}
	require.Positive(t, cmp.Compare(a, b, desc))

	tie := tabular.Criteria{{Key: "address"}}
	require.Zero(t, cmp.Compare(a, b, tie))

	multi := tabular.Criteria{{Key: "address"}, {Key: "status"}}
	require.Negative(t, cmp.Compare(a, b, multi), "second key breaks the tie")

	require.Zero(t, cmp.Compare(a, b, nil))
}

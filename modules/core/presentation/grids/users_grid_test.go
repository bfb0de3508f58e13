package grids_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/meterdesk/meterdesk/modules/core/presentation/grids"
	"github.com/meterdesk/meterdesk/modules/core/presentation/viewmodels"
	"github.com/meterdesk/meterdesk/pkg/tabular"
)

func testLookups() *grids.UserLookups {
	return &grids.UserLookups{
		AccessLevelNames: map[string]string{"1": "Admin", "2": "Technician"},
		GroupNames:       map[string]string{"10": "Field Crew", "11": "Office"},
		ProjectNames:     map[string]string{"3": "North District"},
	}
}

func testUsers() []*viewmodels.User {
	return []*viewmodels.User{
		{ID: "1", FirstName: "Ann", LastName: "Baker", FullName: "Ann Baker", Email: "ann@example.com",
			AccessLevelID: "1", GroupIDs: "10,11", ProjectIDs: "3", CreatedAt: "2024-02-01 08:00:00"},
		{ID: "2", FirstName: "Bo", LastName: "Adams", FullName: "Bo Adams", Email: "bo@example.com",
			AccessLevelID: "2", GroupIDs: "10", CreatedAt: "2024-02-05 08:00:00"},
		{ID: "3", FirstName: "Cy", LastName: "Cole", FullName: "Cy Cole",
			AccessLevelID: "2", CreatedAt: "2024-03-01 08:00:00"},
	}
}

func run(t *testing.T, f viewmodels.UserFilters, sort string) []*viewmodels.User {
	t.Helper()
	lk := testLookups()
	table := grids.UserFields(lk)
	pipeline := tabular.NewPipeline(table, language.English)
	return pipeline.Run(testUsers(), grids.UserPredicates(&f, lk, time.UTC), tabular.ParseCriteria(sort))
}

func TestUserPredicates(t *testing.T) {
	t.Run("group membership matches the comma-joined id list", func(t *testing.T) {
		out := run(t, viewmodels.UserFilters{Group: "11"}, "")
		require.Len(t, out, 1)
		require.Equal(t, "1", out[0].ID)
	})

	t.Run("none selects users without groups", func(t *testing.T) {
		out := run(t, viewmodels.UserFilters{Group: "none"}, "")
		require.Len(t, out, 1)
		require.Equal(t, "3", out[0].ID)
	})

	t.Run("access level and date range combine", func(t *testing.T) {
		out := run(t, viewmodels.UserFilters{AccessLevel: "2", DateTo: "2024-02-28"}, "")
		require.Len(t, out, 1)
		require.Equal(t, "2", out[0].ID)
	})

	t.Run("search hits name and email", func(t *testing.T) {
		out := run(t, viewmodels.UserFilters{Search: "bo@"}, "")
		require.Len(t, out, 1)
		require.Equal(t, "2", out[0].ID)
	})
}

func TestUserFields_Sort(t *testing.T) {
	out := run(t, viewmodels.UserFilters{}, "name:asc")
	// Name sorts by last name first.
	require.Equal(t, []string{"2", "1", "3"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestUserFields_MembershipLabels(t *testing.T) {
	lk := testLookups()
	table := grids.UserFields(lk)
	require.Equal(t, "Field Crew, Office", table.ExportValue("groups", testUsers()[0]))
	require.Equal(t, "North District", table.ExportValue("projects", testUsers()[0]))
	require.Equal(t, "", table.ExportValue("groups", testUsers()[2]))
}

package grids

import (
	"strings"
	"time"

	"github.com/meterdesk/meterdesk/modules/core/presentation/viewmodels"
	"github.com/meterdesk/meterdesk/pkg/tabular"
)

// UsersTableID identifies the users grid in preference storage.
const UsersTableID = "users"

type UserLookups struct {
	AccessLevelNames map[string]string
	GroupNames       map[string]string
	ProjectNames     map[string]string
}

func lookup(m map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if name, ok := m[key]; ok {
		return name
	}
	return key
}

func joinNames(m map[string]string, ids string) string {
	codes := tabular.ParseCodeList(ids)
	if len(codes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(codes))
	for _, id := range codes {
		parts = append(parts, lookup(m, id))
	}
	return strings.Join(parts, ", ")
}

// UserFields declares the users grid columns; id and name can never be
// hidden.
func UserFields(lk *UserLookups) *tabular.Table[*viewmodels.User] {
	return tabular.NewTable([]tabular.Descriptor[*viewmodels.User]{
		{Key: "id", Label: "ID", Required: true, Value: func(r *viewmodels.User) any { return r.ID }},
		{
			Key: "name", Label: "Name", Required: true,
			Value:   func(r *viewmodels.User) any { return r.FullName },
			SortKey: func(r *viewmodels.User) string { return r.LastName + " " + r.FirstName },
		},
		{Key: "email", Label: "Email", Value: func(r *viewmodels.User) any { return r.Email }},
		{Key: "phone", Label: "Phone", Value: func(r *viewmodels.User) any { return r.Phone }},
		{
			Key: "accessLevel", Label: "Access Level",
			Value: func(r *viewmodels.User) any { return lookup(lk.AccessLevelNames, r.AccessLevelID) },
		},
		{
			Key: "groups", Label: "Groups",
			Value: func(r *viewmodels.User) any { return joinNames(lk.GroupNames, r.GroupIDs) },
		},
		{
			Key: "projects", Label: "Projects",
			Value: func(r *viewmodels.User) any { return joinNames(lk.ProjectNames, r.ProjectIDs) },
		},
		{Key: "createdAt", Label: "Created", Value: func(r *viewmodels.User) any { return r.CreatedAt }},
		{Key: "updatedAt", Label: "Updated", Value: func(r *viewmodels.User) any { return r.UpdatedAt }},
	}...)
}

// UserPredicates translates the users filter state into predicates. Group
// and project membership reuse the code-list matcher over the comma-joined
// id fields.
func UserPredicates(f *viewmodels.UserFilters, lk *UserLookups, loc *time.Location) []tabular.Predicate[*viewmodels.User] {
	return []tabular.Predicate[*viewmodels.User]{
		tabular.SearchText(f.Search,
			func(r *viewmodels.User) string { return r.FullName },
			func(r *viewmodels.User) string { return r.Email },
			func(r *viewmodels.User) string { return r.Phone },
		),
		tabular.Equals(f.AccessLevel, func(r *viewmodels.User) string { return r.AccessLevelID }),
		tabular.HasCode(f.Group, func(r *viewmodels.User) string { return r.GroupIDs }),
		tabular.HasCode(f.Project, func(r *viewmodels.User) string { return r.ProjectIDs }),
		tabular.DateWithin(f.DateFrom, f.DateTo, loc,
			func(r *viewmodels.User) string { return r.CreatedAt },
		),
	}
}

// UserFilterKeys lists the filter controls of the users screen.
func UserFilterKeys() (declared, required []string) {
	declared = []string{"search", "accessLevel", "group", "project", "dateRange"}
	required = []string{"search"}
	return declared, required
}

package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"github.com/meterdesk/meterdesk/modules/core/presentation/grids"
	"github.com/meterdesk/meterdesk/modules/core/presentation/mappers"
	"github.com/meterdesk/meterdesk/modules/core/presentation/viewmodels"
	"github.com/meterdesk/meterdesk/pkg/tabular"
)

const displayPlaceholder = "-"

// UserListQuery is the state of one users-list request.
type UserListQuery struct {
	UserID  int
	Filters viewmodels.UserFilters
	Sort    string
}

// UserQueryService drives the users list screen on the same engine as the
// work-order grid.
type UserQueryService struct {
	users *UserService
	org   *OrgService
	prefs tabular.PreferenceStore
	loc   *time.Location
	tag   language.Tag
}

func NewUserQueryService(users *UserService, org *OrgService, prefs tabular.PreferenceStore, loc *time.Location, tag language.Tag) *UserQueryService {
	if loc == nil {
		loc = time.Local
	}
	return &UserQueryService{
		users: users,
		org:   org,
		prefs: prefs,
		loc:   loc,
		tag:   tag,
	}
}

func (s *UserQueryService) lookups(ctx context.Context) (*grids.UserLookups, error) {
	lk := &grids.UserLookups{
		AccessLevelNames: map[string]string{},
		GroupNames:       map[string]string{},
		ProjectNames:     map[string]string{},
	}

	levels, err := s.org.AccessLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load access levels: %w", err)
	}
	for _, al := range levels {
		lk.AccessLevelNames[strconv.Itoa(al.ID)] = al.Name
	}

	groups, err := s.org.Groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	for _, g := range groups {
		lk.GroupNames[strconv.Itoa(g.ID)] = g.Name
	}

	projects, err := s.org.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	for _, p := range projects {
		lk.ProjectNames[strconv.Itoa(p.ID)] = p.Name
	}
	return lk, nil
}

type preparedUsers struct {
	table    *tabular.Table[*viewmodels.User]
	all      []*viewmodels.User
	filtered []*viewmodels.User
}

func (s *UserQueryService) prepare(ctx context.Context, q *UserListQuery) (*preparedUsers, error) {
	lk, err := s.lookups(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	records := make([]*viewmodels.User, 0, len(users))
	for _, u := range users {
		records = append(records, mappers.UserToViewModel(u, s.loc))
	}

	table := grids.UserFields(lk)
	pipeline := tabular.NewPipeline(table, s.tag)
	filtered := pipeline.Run(
		records,
		grids.UserPredicates(&q.Filters, lk, s.loc),
		tabular.ParseCriteria(q.Sort),
	)
	return &preparedUsers{table: table, all: records, filtered: filtered}, nil
}

func (s *UserQueryService) visibleColumns(ctx context.Context, userID int, table *tabular.Table[*viewmodels.User]) ([]string, error) {
	stored, err := s.prefs.Get(ctx, userID, grids.UsersTableID, tabular.KindColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to load column preferences: %w", err)
	}
	return tabular.Resolve(stored, table), nil
}

func (s *UserQueryService) visibleFilters(ctx context.Context, userID int) ([]string, error) {
	stored, err := s.prefs.Get(ctx, userID, grids.UsersTableID, tabular.KindFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to load filter preferences: %w", err)
	}
	declared, required := grids.UserFilterKeys()
	return tabular.ResolveKeys(stored, declared, required), nil
}

func (s *UserQueryService) List(ctx context.Context, q *UserListQuery) (*viewmodels.UserListView, error) {
	prepared, err := s.prepare(ctx, q)
	if err != nil {
		return nil, err
	}
	keys, err := s.visibleColumns(ctx, q.UserID, prepared.table)
	if err != nil {
		return nil, err
	}
	filterKeys, err := s.visibleFilters(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	columns := make([]viewmodels.Column, 0, len(keys))
	for _, key := range keys {
		d, ok := prepared.table.Describe(key)
		if !ok {
			continue
		}
		columns = append(columns, viewmodels.Column{Key: d.Key, Label: d.Label, Required: d.Required})
	}

	rows := make([][]string, 0, len(prepared.filtered))
	for _, record := range prepared.filtered {
		row := make([]string, len(keys))
		for i, key := range keys {
			row[i] = prepared.table.DisplayValue(key, record, displayPlaceholder)
		}
		rows = append(rows, row)
	}

	return &viewmodels.UserListView{
		Columns:        columns,
		Rows:           rows,
		Total:          len(prepared.all),
		Matched:        len(prepared.filtered),
		Filters:        q.Filters,
		VisibleFilters: filterKeys,
		Sort:           tabular.ParseCriteria(q.Sort).String(),
		Records:        prepared.filtered,
	}, nil
}

func (s *UserQueryService) ExportCSV(ctx context.Context, q *UserListQuery) (filename, body string, err error) {
	prepared, err := s.prepare(ctx, q)
	if err != nil {
		return "", "", err
	}
	keys, err := s.visibleColumns(ctx, q.UserID, prepared.table)
	if err != nil {
		return "", "", err
	}
	body, err = tabular.RenderCSV(prepared.filtered, keys, prepared.table)
	if err != nil {
		return "", "", err
	}
	return tabular.CSVFilename("users", time.Now().In(s.loc)), body, nil
}

func (s *UserQueryService) ExportWorkbook(ctx context.Context, q *UserListQuery) (filename string, body []byte, err error) {
	prepared, err := s.prepare(ctx, q)
	if err != nil {
		return "", nil, err
	}
	keys, err := s.visibleColumns(ctx, q.UserID, prepared.table)
	if err != nil {
		return "", nil, err
	}
	body, err = tabular.RenderWorkbook(prepared.filtered, keys, prepared.table, "Users")
	if err != nil {
		return "", nil, err
	}
	return tabular.WorkbookFilename("users", time.Now().In(s.loc)), body, nil
}

// PrintDocument renders the current view as a printable HTML page.
func (s *UserQueryService) PrintDocument(ctx context.Context, q *UserListQuery) (string, error) {
	prepared, err := s.prepare(ctx, q)
	if err != nil {
		return "", err
	}
	keys, err := s.visibleColumns(ctx, q.UserID, prepared.table)
	if err != nil {
		return "", err
	}
	return tabular.RenderPrintDocument(prepared.filtered, keys, prepared.table, "Users", time.Now().In(s.loc))
}

func (s *UserQueryService) ColumnSettings(ctx context.Context, userID int) (available []viewmodels.Column, visible []string, err error) {
	lk, err := s.lookups(ctx)
	if err != nil {
		return nil, nil, err
	}
	table := grids.UserFields(lk)
	for _, key := range table.Keys() {
		d, _ := table.Describe(key)
		available = append(available, viewmodels.Column{Key: d.Key, Label: d.Label, Required: d.Required})
	}
	visible, err = s.visibleColumns(ctx, userID, table)
	if err != nil {
		return nil, nil, err
	}
	return available, visible, nil
}

func (s *UserQueryService) SaveColumns(ctx context.Context, userID int, keys []string) ([]string, error) {
	lk, err := s.lookups(ctx)
	if err != nil {
		return nil, err
	}
	resolved := tabular.Resolve(keys, grids.UserFields(lk))
	if err := s.prefs.Set(ctx, userID, grids.UsersTableID, tabular.KindColumns, resolved); err != nil {
		return nil, fmt.Errorf("failed to save column preferences: %w", err)
	}
	return resolved, nil
}

func (s *UserQueryService) FilterSettings(ctx context.Context, userID int) (declared, visible []string, err error) {
	declared, _ = grids.UserFilterKeys()
	visible, err = s.visibleFilters(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return declared, visible, nil
}

func (s *UserQueryService) SaveFilters(ctx context.Context, userID int, keys []string) ([]string, error) {
	declared, required := grids.UserFilterKeys()
	resolved := tabular.ResolveKeys(keys, declared, required)
	if err := s.prefs.Set(ctx, userID, grids.UsersTableID, tabular.KindFilters, resolved); err != nil {
		return nil, fmt.Errorf("failed to save filter preferences: %w", err)
	}
	return resolved, nil
}

package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/workorder"
	"github.com/meterdesk/meterdesk/modules/workorders/presentation/grids"
	"github.com/meterdesk/meterdesk/modules/workorders/presentation/mappers"
	"github.com/meterdesk/meterdesk/modules/workorders/presentation/viewmodels"
	"github.com/meterdesk/meterdesk/pkg/tabular"
)

const displayPlaceholder = "-"

// Directory resolves people, groups, and projects to display names. The core
// module provides the production implementation; keeping it behind an
// interface keeps this module from importing core persistence.
type Directory interface {
	UserNames(ctx context.Context) (map[string]string, error)
	GroupNames(ctx context.Context) (map[string]string, error)
	ProjectNames(ctx context.Context) (map[string]string, error)
}

// ListQuery is the full state of one list request: who is asking, what they
// filtered on, and how they sorted.
type ListQuery struct {
	UserID    int
	ProjectID *int
	Filters   viewmodels.WorkOrderFilters
	Sort      string
}

// WorkOrderQueryService drives the work-order list screen and its three
// export projections. All filtering and sorting happens here over the full
// record set, not in SQL, so every projection sees the same rows in the same
// order.
type WorkOrderQueryService struct {
	repo      workorder.Repository
	refs      *ReferenceService
	directory Directory
	prefs     tabular.PreferenceStore
	loc       *time.Location
	tag       language.Tag
}

func NewWorkOrderQueryService(
	repo workorder.Repository,
	refs *ReferenceService,
	directory Directory,
	prefs tabular.PreferenceStore,
	loc *time.Location,
	tag language.Tag,
) *WorkOrderQueryService {
	if loc == nil {
		loc = time.Local
	}
	return &WorkOrderQueryService{
		repo:      repo,
		refs:      refs,
		directory: directory,
		prefs:     prefs,
		loc:       loc,
		tag:       tag,
	}
}

type preparedList struct {
	table    *tabular.Table[*viewmodels.WorkOrder]
	lookups  *grids.Lookups
	all      []*viewmodels.WorkOrder
	filtered []*viewmodels.WorkOrder
}

func (s *WorkOrderQueryService) lookups(ctx context.Context) (*grids.Lookups, error) {
	lk := &grids.Lookups{
		StatusLabels:      map[string]string{},
		StatusColors:      map[string]string{},
		ServiceTypeLabels: map[string]string{},
		MeterTypeLabels:   map[string]string{},
		TroubleCodeNames:  map[string]string{},
	}

	statuses, err := s.refs.Statuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}
	for _, st := range statuses {
		id := strconv.Itoa(st.ID)
		lk.StatusLabels[id] = st.Label
		lk.StatusColors[id] = st.Color
	}

	serviceTypes, err := s.refs.ServiceTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load service types: %w", err)
	}
	for _, st := range serviceTypes {
		lk.ServiceTypeLabels[strconv.Itoa(st.ID)] = st.Label
	}

	meterTypes, err := s.refs.MeterTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load meter types: %w", err)
	}
	for _, mt := range meterTypes {
		lk.MeterTypeLabels[strconv.Itoa(mt.ID)] = mt.Label
		if mt.ProductID != "" {
			lk.MeterTypeLabels[mt.ProductID] = mt.Label
		}
	}

	troubleCodes, err := s.refs.TroubleCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trouble codes: %w", err)
	}
	for _, tc := range troubleCodes {
		lk.TroubleCodeNames[tc.Code] = tc.Label
	}

	if lk.UserNames, err = s.directory.UserNames(ctx); err != nil {
		return nil, fmt.Errorf("failed to load user directory: %w", err)
	}
	if lk.GroupNames, err = s.directory.GroupNames(ctx); err != nil {
		return nil, fmt.Errorf("failed to load group directory: %w", err)
	}
	if lk.ProjectNames, err = s.directory.ProjectNames(ctx); err != nil {
		return nil, fmt.Errorf("failed to load project directory: %w", err)
	}
	return lk, nil
}

func (s *WorkOrderQueryService) prepare(ctx context.Context, q *ListQuery) (*preparedList, error) {
	lk, err := s.lookups(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.GetAll(ctx, &workorder.FindParams{ProjectID: q.ProjectID})
	if err != nil {
		return nil, fmt.Errorf("failed to load work orders: %w", err)
	}

	records := make([]*viewmodels.WorkOrder, 0, len(orders))
	for _, wo := range orders {
		projectName := ""
		if wo.ProjectID != nil {
			projectName = lk.ProjectNames[strconv.Itoa(*wo.ProjectID)]
		}
		records = append(records, mappers.WorkOrderToViewModel(wo, projectName, s.loc))
	}

	table := grids.WorkOrderFields(lk)
	pipeline := tabular.NewPipeline(table, s.tag)
	filtered := pipeline.Run(
		records,
		grids.WorkOrderPredicates(&q.Filters, lk, s.loc),
		tabular.ParseCriteria(q.Sort),
	)

	return &preparedList{table: table, lookups: lk, all: records, filtered: filtered}, nil
}

func (s *WorkOrderQueryService) visibleColumns(ctx context.Context, userID int, table *tabular.Table[*viewmodels.WorkOrder]) ([]string, error) {
	stored, err := s.prefs.Get(ctx, userID, grids.WorkOrdersTableID, tabular.KindColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to load column preferences: %w", err)
	}
	return tabular.Resolve(stored, table), nil
}

func (s *WorkOrderQueryService) visibleFilters(ctx context.Context, userID int) ([]string, error) {
	stored, err := s.prefs.Get(ctx, userID, grids.WorkOrdersTableID, tabular.KindFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to load filter preferences: %w", err)
	}
	declared, required := grids.WorkOrderFilterKeys()
	return tabular.ResolveKeys(stored, declared, required), nil
}

// List builds the table projection: the resolved visible columns and one
// display row per admitted record.
func (s *WorkOrderQueryService) List(ctx context.Context, q *ListQuery) (*viewmodels.WorkOrderListView, error) {
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
	rowColors := make([]string, 0, len(prepared.filtered))
	for _, record := range prepared.filtered {
		row := make([]string, len(keys))
		for i, key := range keys {
			row[i] = prepared.table.DisplayValue(key, record, displayPlaceholder)
		}
		rows = append(rows, row)
		rowColors = append(rowColors, prepared.lookups.StatusColors[record.StatusID])
	}

	return &viewmodels.WorkOrderListView{
		Columns:        columns,
		Rows:           rows,
		RowColors:      rowColors,
		Total:          len(prepared.all),
		Matched:        len(prepared.filtered),
		Filters:        q.Filters,
		VisibleFilters: filterKeys,
		Sort:           tabular.ParseCriteria(q.Sort).String(),
		Records:        prepared.filtered,
	}, nil
}

// ExportCSV renders the current view as CSV. Returns tabular.ErrNoRows when
// the filter set admits nothing.
func (s *WorkOrderQueryService) ExportCSV(ctx context.Context, q *ListQuery) (filename, body string, err error) {
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
	return tabular.CSVFilename("work_orders", time.Now().In(s.loc)), body, nil
}

// ExportWorkbook renders the current view as an xlsx workbook.
func (s *WorkOrderQueryService) ExportWorkbook(ctx context.Context, q *ListQuery) (filename string, body []byte, err error) {
	prepared, err := s.prepare(ctx, q)
	if err != nil {
		return "", nil, err
	}
	keys, err := s.visibleColumns(ctx, q.UserID, prepared.table)
	if err != nil {
		return "", nil, err
	}
	body, err = tabular.RenderWorkbook(prepared.filtered, keys, prepared.table, "Work Orders")
	if err != nil {
		return "", nil, err
	}
	return tabular.WorkbookFilename("work_orders", time.Now().In(s.loc)), body, nil
}

// PrintDocument renders the current view as a printable HTML page.
func (s *WorkOrderQueryService) PrintDocument(ctx context.Context, q *ListQuery) (string, error) {
	prepared, err := s.prepare(ctx, q)
	if err != nil {
		return "", err
	}
	keys, err := s.visibleColumns(ctx, q.UserID, prepared.table)
	if err != nil {
		return "", err
	}
	return tabular.RenderPrintDocument(prepared.filtered, keys, prepared.table, "Work Orders", time.Now().In(s.loc))
}

// ColumnSettings returns the declared column set alongside the user's
// resolved visible list.
func (s *WorkOrderQueryService) ColumnSettings(ctx context.Context, userID int) (available []viewmodels.Column, visible []string, err error) {
	lk, err := s.lookups(ctx)
	if err != nil {
		return nil, nil, err
	}
	table := grids.WorkOrderFields(lk)
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

// SaveColumns persists the visible-column selection. The stored value is
// resolved on the way in so stale or hostile keys never reach storage.
func (s *WorkOrderQueryService) SaveColumns(ctx context.Context, userID int, keys []string) ([]string, error) {
	lk, err := s.lookups(ctx)
	if err != nil {
		return nil, err
	}
	resolved := tabular.Resolve(keys, grids.WorkOrderFields(lk))
	if err := s.prefs.Set(ctx, userID, grids.WorkOrdersTableID, tabular.KindColumns, resolved); err != nil {
		return nil, fmt.Errorf("failed to save column preferences: %w", err)
	}
	return resolved, nil
}

// FilterSettings returns the declared filter controls alongside the user's
// resolved visible list.
func (s *WorkOrderQueryService) FilterSettings(ctx context.Context, userID int) (declared, visible []string, err error) {
	declared, _ = grids.WorkOrderFilterKeys()
	visible, err = s.visibleFilters(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return declared, visible, nil
}

// SaveFilters persists the visible-filter selection.
func (s *WorkOrderQueryService) SaveFilters(ctx context.Context, userID int, keys []string) ([]string, error) {
	declared, required := grids.WorkOrderFilterKeys()
	resolved := tabular.ResolveKeys(keys, declared, required)
	if err := s.prefs.Set(ctx, userID, grids.WorkOrdersTableID, tabular.KindFilters, resolved); err != nil {
		return nil, fmt.Errorf("failed to save filter preferences: %w", err)
	}
	return resolved, nil
}

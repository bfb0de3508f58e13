package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/reference"
	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/workorder"
	"github.com/meterdesk/meterdesk/modules/workorders/services"
	"github.com/meterdesk/meterdesk/pkg/tabular"
)

type stubWorkOrderRepo struct {
	orders []*workorder.WorkOrder
}

func (s *stubWorkOrderRepo) GetAll(_ context.Context, _ *workorder.FindParams) ([]*workorder.WorkOrder, error) {
	return s.orders, nil
}

func (s *stubWorkOrderRepo) GetByID(_ context.Context, id int) (*workorder.WorkOrder, error) {
	for _, wo := range s.orders {
		if wo.ID == id {
			return wo, nil
		}
	}
	return nil, workorder.ErrNotFound
}

func (s *stubWorkOrderRepo) Count(_ context.Context, _ *workorder.FindParams) (int64, error) {
	return int64(len(s.orders)), nil
}

func (s *stubWorkOrderRepo) Create(_ context.Context, _ int, _ *workorder.CreateDTO) (*workorder.WorkOrder, error) {
	panic("not used")
}

func (s *stubWorkOrderRepo) Update(_ context.Context, _, _ int, _ *workorder.UpdateDTO) (*workorder.WorkOrder, error) {
	panic("not used")
}

func (s *stubWorkOrderRepo) Delete(_ context.Context, _ int) error { panic("not used") }

type stubStatusRepo struct{ items []*reference.Status }

func (s *stubStatusRepo) List(_ context.Context) ([]*reference.Status, error) { return s.items, nil }
func (s *stubStatusRepo) Create(_ context.Context, _ *reference.StatusDTO) (*reference.Status, error) {
	panic("not used")
}
func (s *stubStatusRepo) Update(_ context.Context, _ int, _ *reference.StatusDTO) (*reference.Status, error) {
	panic("not used")
}
func (s *stubStatusRepo) Delete(_ context.Context, _ int) error { panic("not used") }

type stubServiceTypeRepo struct{}

func (s *stubServiceTypeRepo) List(_ context.Context) ([]*reference.ServiceType, error) {
	return nil, nil
}
func (s *stubServiceTypeRepo) Create(_ context.Context, _ *reference.ServiceTypeDTO) (*reference.ServiceType, error) {
	panic("not used")
}
func (s *stubServiceTypeRepo) Update(_ context.Context, _ int, _ *reference.ServiceTypeDTO) (*reference.ServiceType, error) {
	panic("not used")
}
func (s *stubServiceTypeRepo) Delete(_ context.Context, _ int) error { panic("not used") }

type stubMeterTypeRepo struct{}

func (s *stubMeterTypeRepo) List(_ context.Context) ([]*reference.MeterType, error) {
	return nil, nil
}
func (s *stubMeterTypeRepo) Create(_ context.Context, _ *reference.MeterTypeDTO) (*reference.MeterType, error) {
	panic("not used")
}
func (s *stubMeterTypeRepo) Update(_ context.Context, _ int, _ *reference.MeterTypeDTO) (*reference.MeterType, error) {
	panic("not used")
}
func (s *stubMeterTypeRepo) Delete(_ context.Context, _ int) error { panic("not used") }

type stubTroubleCodeRepo struct{}

func (s *stubTroubleCodeRepo) List(_ context.Context) ([]*reference.TroubleCode, error) {
	return nil, nil
}
func (s *stubTroubleCodeRepo) Create(_ context.Context, _ *reference.TroubleCodeDTO) (*reference.TroubleCode, error) {
	panic("not used")
}
func (s *stubTroubleCodeRepo) Update(_ context.Context, _ int, _ *reference.TroubleCodeDTO) (*reference.TroubleCode, error) {
	panic("not used")
}
func (s *stubTroubleCodeRepo) Delete(_ context.Context, _ int) error { panic("not used") }

type stubDirectory struct{}

func (s *stubDirectory) UserNames(_ context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}
func (s *stubDirectory) GroupNames(_ context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}
func (s *stubDirectory) ProjectNames(_ context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	statusID := 1
	created := time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC)
	repo := &stubWorkOrderRepo{
		orders: []*workorder.WorkOrder{
			{ID: 1, Number: "WO-500", StatusID: &statusID, Address: "1 Elm St", CreatedAt: &created},
		},
	}
	refs := services.NewReferenceService(
		&stubStatusRepo{items: []*reference.Status{{ID: 1, Label: "Open", Color: "#0a0"}}},
		&stubServiceTypeRepo{},
		&stubMeterTypeRepo{},
		&stubTroubleCodeRepo{},
	)
	query := services.NewWorkOrderQueryService(
		repo, refs, &stubDirectory{},
		tabular.NewInMemoryPreferenceStore(),
		time.UTC, language.English,
	)

	router := mux.NewRouter()
	NewWorkOrdersController(nil, query).Register(router)
	return router
}

func TestWorkOrdersController_List(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/work-orders?search=elm", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var view struct {
		Columns []struct {
			Key string `json:"key"`
		} `json:"columns"`
		Rows    [][]string `json:"rows"`
		Total   int        `json:"total"`
		Matched int        `json:"matched"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, 1, view.Total)
	require.Equal(t, 1, view.Matched)
	require.Len(t, view.Columns, 3)
	require.Equal(t, []string{"1", "WO-500", "Open"}, view.Rows[0])
}

func TestWorkOrdersController_List_NoMatchesIsOK(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/work-orders?search=zzz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"matched":0`)
}

func TestWorkOrdersController_ExportEmptyConflicts(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/work-orders/export/csv?search=zzz",
		"/api/work-orders/export/xlsx?search=zzz",
		"/api/work-orders/print?search=zzz",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code, path)
		require.Contains(t, rec.Body.String(), "EXPORT_EMPTY", path)
	}
}

func TestWorkOrdersController_ExportCSV(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/work-orders/export/csv", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	require.True(t, strings.HasPrefix(rec.Body.String(), `"ID","Work Order #","Status"`))
}

func TestWorkOrdersController_ColumnSettings(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/work-orders/columns",
		strings.NewReader(`{"visible":["address","bogus"]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Visible []string `json:"visible"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, []string{"address", "id", "number", "status"}, resp.Visible)

	req = httptest.NewRequest(http.MethodGet, "/api/work-orders/columns", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"visible":["address","id","number","status"]`)
}

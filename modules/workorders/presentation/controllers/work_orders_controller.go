package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/workorder"
	"github.com/meterdesk/meterdesk/modules/workorders/presentation/viewmodels"
	"github.com/meterdesk/meterdesk/modules/workorders/services"
	"github.com/meterdesk/meterdesk/pkg/composables"
	"github.com/meterdesk/meterdesk/pkg/httpapi"
	"github.com/meterdesk/meterdesk/pkg/tabular"
)

// WorkOrdersController is the REST surface of the work-order list screen:
// CRUD, the three export projections, and per-user column/filter visibility.
type WorkOrdersController struct {
	basePath string
	crud     *services.WorkOrderService
	query    *services.WorkOrderQueryService
}

func NewWorkOrdersController(crud *services.WorkOrderService, query *services.WorkOrderQueryService) *WorkOrdersController {
	return &WorkOrdersController{
		basePath: "/api/work-orders",
		crud:     crud,
		query:    query,
	}
}

func (c *WorkOrdersController) Key() string {
	return c.basePath
}

func (c *WorkOrdersController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()

	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("/export/csv", c.exportCSV).Methods(http.MethodGet)
	router.HandleFunc("/export/xlsx", c.exportWorkbook).Methods(http.MethodGet)
	router.HandleFunc("/print", c.printDocument).Methods(http.MethodGet)
	router.HandleFunc("/columns", c.getColumns).Methods(http.MethodGet)
	router.HandleFunc("/columns", c.putColumns).Methods(http.MethodPut)
	router.HandleFunc("/filters", c.getFilters).Methods(http.MethodGet)
	router.HandleFunc("/filters", c.putFilters).Methods(http.MethodPut)
	router.HandleFunc("/{id:[0-9]+}", c.get).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.update).Methods(http.MethodPut)
	router.HandleFunc("/{id:[0-9]+}", c.delete).Methods(http.MethodDelete)
}

func (c *WorkOrdersController) listQuery(r *http.Request) *services.ListQuery {
	userID, _ := composables.UseUserID(r.Context())
	q := &services.ListQuery{
		UserID: userID,
		Filters: viewmodels.WorkOrderFilters{
			Search:          composables.GetLastQueryParam(r, "search"),
			Status:          composables.GetLastQueryParam(r, "status"),
			ServiceType:     composables.GetLastQueryParam(r, "serviceType"),
			MeterType:       composables.GetLastQueryParam(r, "meterType"),
			TroubleCode:     composables.GetLastQueryParam(r, "troubleCode"),
			AssignedUserID:  composables.GetLastQueryParam(r, "assignedUser"),
			AssignedGroupID: composables.GetLastQueryParam(r, "assignedGroup"),
			CreatedBy:       composables.GetLastQueryParam(r, "createdBy"),
			UpdatedBy:       composables.GetLastQueryParam(r, "updatedBy"),
			DateFrom:        composables.GetLastQueryParam(r, "dateFrom"),
			DateTo:          composables.GetLastQueryParam(r, "dateTo"),
		},
		Sort: composables.GetLastQueryParam(r, "sort"),
	}
	if raw := composables.GetLastQueryParam(r, "projectId"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			q.ProjectID = &id
		}
	}
	return q
}

func (c *WorkOrdersController) list(w http.ResponseWriter, r *http.Request) {
	view, err := c.query.List(r.Context(), c.listQuery(r))
	if err != nil {
		c.internalError(w, r, "failed to list work orders", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, view)
}

func (c *WorkOrdersController) exportCSV(w http.ResponseWriter, r *http.Request) {
	filename, body, err := c.query.ExportCSV(r.Context(), c.listQuery(r))
	if err != nil {
		c.exportError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(body))
}

func (c *WorkOrdersController) exportWorkbook(w http.ResponseWriter, r *http.Request) {
	filename, body, err := c.query.ExportWorkbook(r.Context(), c.listQuery(r))
	if err != nil {
		c.exportError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(body)
}

func (c *WorkOrdersController) printDocument(w http.ResponseWriter, r *http.Request) {
	html, err := c.query.PrintDocument(r.Context(), c.listQuery(r))
	if err != nil {
		c.exportError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// An empty list view is a normal response; an empty export is a conflict the
// user should see, not a blank file download.
func (c *WorkOrdersController) exportError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, tabular.ErrNoRows) {
		_ = httpapi.WriteError(w, http.StatusConflict, "EXPORT_EMPTY", "no records match the current filters", nil)
		return
	}
	c.internalError(w, r, "failed to export work orders", err)
}

func (c *WorkOrdersController) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	composables.UseLogger(r.Context()).WithError(err).Error(msg)
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", msg, nil)
}

type columnSettingsResponse struct {
	Available []viewmodels.Column `json:"available"`
	Visible   []string            `json:"visible"`
}

func (c *WorkOrdersController) getColumns(w http.ResponseWriter, r *http.Request) {
	userID, _ := composables.UseUserID(r.Context())
	available, visible, err := c.query.ColumnSettings(r.Context(), userID)
	if err != nil {
		c.internalError(w, r, "failed to load column settings", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &columnSettingsResponse{Available: available, Visible: visible})
}

type visibleKeysRequest struct {
	Visible []string `json:"visible"`
}

func (c *WorkOrdersController) putColumns(w http.ResponseWriter, r *http.Request) {
	userID, _ := composables.UseUserID(r.Context())
	var req visibleKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body", nil)
		return
	}
	visible, err := c.query.SaveColumns(r.Context(), userID, req.Visible)
	if err != nil {
		c.internalError(w, r, "failed to save column settings", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string][]string{"visible": visible})
}

type filterSettingsResponse struct {
	Available []string `json:"available"`
	Visible   []string `json:"visible"`
}

func (c *WorkOrdersController) getFilters(w http.ResponseWriter, r *http.Request) {
	userID, _ := composables.UseUserID(r.Context())
	available, visible, err := c.query.FilterSettings(r.Context(), userID)
	if err != nil {
		c.internalError(w, r, "failed to load filter settings", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &filterSettingsResponse{Available: available, Visible: visible})
}

func (c *WorkOrdersController) putFilters(w http.ResponseWriter, r *http.Request) {
	userID, _ := composables.UseUserID(r.Context())
	var req visibleKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body", nil)
		return
	}
	visible, err := c.query.SaveFilters(r.Context(), userID, req.Visible)
	if err != nil {
		c.internalError(w, r, "failed to save filter settings", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string][]string{"visible": visible})
}

// workOrderRequest is the write payload shared by create and update.
type workOrderRequest struct {
	Number    string `json:"number"`
	ProjectID *int   `json:"projectId"`

	StatusID      *int   `json:"statusId"`
	ServiceTypeID *int   `json:"serviceTypeId"`
	MeterType     string `json:"meterType"`
	TroubleCodes  string `json:"troubleCodes"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Route   string `json:"route"`
	Zone    string `json:"zone"`

	OldMeterID      string   `json:"oldMeterId"`
	NewMeterID      string   `json:"newMeterId"`
	OldMeterReading *string  `json:"oldMeterReading"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`

	AssignedUserID  *int `json:"assignedUserId"`
	AssignedGroupID *int `json:"assignedGroupId"`

	CompletedAt *string `json:"completedAt"`

	Notes string `json:"notes"`
}

func (req *workOrderRequest) reading() (*decimal.Decimal, error) {
	if req.OldMeterReading == nil || *req.OldMeterReading == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*req.OldMeterReading)
	if err != nil {
		return nil, fmt.Errorf("invalid oldMeterReading: %w", err)
	}
	return &d, nil
}

func (req *workOrderRequest) completedAt() (*time.Time, error) {
	if req.CompletedAt == nil || *req.CompletedAt == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, *req.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid completedAt: %w", err)
	}
	return &ts, nil
}

func (c *WorkOrdersController) create(w http.ResponseWriter, r *http.Request) {
	var req workOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body", nil)
		return
	}
	if req.Number == "" {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION", "number is required", nil)
		return
	}
	reading, err := req.reading()
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	created, err := c.crud.Create(r.Context(), &workorder.CreateDTO{
		Number:          req.Number,
		ProjectID:       req.ProjectID,
		StatusID:        req.StatusID,
		ServiceTypeID:   req.ServiceTypeID,
		MeterType:       req.MeterType,
		TroubleCodes:    req.TroubleCodes,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		Zip:             req.Zip,
		Route:           req.Route,
		Zone:            req.Zone,
		OldMeterID:      req.OldMeterID,
		NewMeterID:      req.NewMeterID,
		OldMeterReading: reading,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		AssignedUserID:  req.AssignedUserID,
		AssignedGroupID: req.AssignedGroupID,
		Notes:           req.Notes,
	})
	if err != nil {
		c.internalError(w, r, "failed to create work order", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, created)
}

func (c *WorkOrdersController) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid work order id", nil)
		return
	}
	wo, err := c.crud.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, workorder.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "work order not found", nil)
			return
		}
		c.internalError(w, r, "failed to load work order", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, wo)
}

func (c *WorkOrdersController) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid work order id", nil)
		return
	}
	var req workOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body", nil)
		return
	}
	reading, err := req.reading()
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	completedAt, err := req.completedAt()
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	updated, err := c.crud.Update(r.Context(), id, &workorder.UpdateDTO{
		Number:          req.Number,
		ProjectID:       req.ProjectID,
		StatusID:        req.StatusID,
		ServiceTypeID:   req.ServiceTypeID,
		MeterType:       req.MeterType,
		TroubleCodes:    req.TroubleCodes,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		Zip:             req.Zip,
		Route:           req.Route,
		Zone:            req.Zone,
		OldMeterID:      req.OldMeterID,
		NewMeterID:      req.NewMeterID,
		OldMeterReading: reading,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		AssignedUserID:  req.AssignedUserID,
		AssignedGroupID: req.AssignedGroupID,
		CompletedAt:     completedAt,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, workorder.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "work order not found", nil)
			return
		}
		c.internalError(w, r, "failed to update work order", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, updated)
}

func (c *WorkOrdersController) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid work order id", nil)
		return
	}
	if err := c.crud.Delete(r.Context(), id); err != nil {
		if errors.Is(err, workorder.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "work order not found", nil)
			return
		}
		c.internalError(w, r, "failed to delete work order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

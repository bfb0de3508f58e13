package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/meterdesk/meterdesk/modules/core/domain/entities/user"
	"github.com/meterdesk/meterdesk/modules/core/presentation/viewmodels"
	"github.com/meterdesk/meterdesk/modules/core/services"
	"github.com/meterdesk/meterdesk/pkg/composables"
	"github.com/meterdesk/meterdesk/pkg/httpapi"
	"github.com/meterdesk/meterdesk/pkg/tabular"
)

// UsersController is the REST surface of the users list screen and user
// CRUD.
type UsersController struct {
	basePath string
	crud     *services.UserService
	query    *services.UserQueryService
}

func NewUsersController(crud *services.UserService, query *services.UserQueryService) *UsersController {
	return &UsersController{
		basePath: "/api/users",
		crud:     crud,
		query:    query,
	}
}

func (c *UsersController) Key() string {
	return c.basePath
}

func (c *UsersController) Register(r *mux.Router) {
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

func (c *UsersController) listQuery(r *http.Request) *services.UserListQuery {
	userID, _ := composables.UseUserID(r.Context())
	return &services.UserListQuery{
		UserID: userID,
		Filters: viewmodels.UserFilters{
			Search:      composables.GetLastQueryParam(r, "search"),
			AccessLevel: composables.GetLastQueryParam(r, "accessLevel"),
			Group:       composables.GetLastQueryParam(r, "group"),
			Project:     composables.GetLastQueryParam(r, "project"),
			DateFrom:    composables.GetLastQueryParam(r, "dateFrom"),
			DateTo:      composables.GetLastQueryParam(r, "dateTo"),
		},
		Sort: composables.GetLastQueryParam(r, "sort"),
	}
}

func (c *UsersController) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	composables.UseLogger(r.Context()).WithError(err).Error(msg)
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", msg, nil)
}

func (c *UsersController) exportError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, tabular.ErrNoRows) {
		_ = httpapi.WriteError(w, http.StatusConflict, "EXPORT_EMPTY", "no records match the current filters", nil)
		return
	}
	c.internalError(w, r, "failed to export users", err)
}

func (c *UsersController) list(w http.ResponseWriter, r *http.Request) {
	view, err := c.query.List(r.Context(), c.listQuery(r))
	if err != nil {
		c.internalError(w, r, "failed to list users", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, view)
}

func (c *UsersController) exportCSV(w http.ResponseWriter, r *http.Request) {
	filename, body, err := c.query.ExportCSV(r.Context(), c.listQuery(r))
	if err != nil {
		c.exportError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(body))
}

func (c *UsersController) exportWorkbook(w http.ResponseWriter, r *http.Request) {
	filename, body, err := c.query.ExportWorkbook(r.Context(), c.listQuery(r))
	if err != nil {
		c.exportError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(body)
}

func (c *UsersController) printDocument(w http.ResponseWriter, r *http.Request) {
	html, err := c.query.PrintDocument(r.Context(), c.listQuery(r))
	if err != nil {
		c.exportError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

type columnSettingsResponse struct {
	Available []viewmodels.Column `json:"available"`
	Visible   []string            `json:"visible"`
}

type visibleKeysRequest struct {
	Visible []string `json:"visible"`
}

func (c *UsersController) getColumns(w http.ResponseWriter, r *http.Request) {
	userID, _ := composables.UseUserID(r.Context())
	available, visible, err := c.query.ColumnSettings(r.Context(), userID)
	if err != nil {
		c.internalError(w, r, "failed to load column settings", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &columnSettingsResponse{Available: available, Visible: visible})
}

func (c *UsersController) putColumns(w http.ResponseWriter, r *http.Request) {
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

func (c *UsersController) getFilters(w http.ResponseWriter, r *http.Request) {
	userID, _ := composables.UseUserID(r.Context())
	available, visible, err := c.query.FilterSettings(r.Context(), userID)
	if err != nil {
		c.internalError(w, r, "failed to load filter settings", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string][]string{"available": available, "visible": visible})
}

func (c *UsersController) putFilters(w http.ResponseWriter, r *http.Request) {
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

type userRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	AccessLevelID *int   `json:"accessLevelId"`
	GroupIDs      []int  `json:"groupIds"`
	ProjectIDs    []int  `json:"projectIds"`
}

func (c *UsersController) create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body", nil)
		return
	}
	if req.FirstName == "" && req.LastName == "" {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION", "a name is required", nil)
		return
	}
	created, err := c.crud.Create(r.Context(), &user.CreateDTO{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		AccessLevelID: req.AccessLevelID,
		GroupIDs:      req.GroupIDs,
		ProjectIDs:    req.ProjectIDs,
	})
	if err != nil {
		c.internalError(w, r, "failed to create user", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, created)
}

func (c *UsersController) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid user id", nil)
		return
	}
	u, err := c.crud.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
			return
		}
		c.internalError(w, r, "failed to load user", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, u)
}

func (c *UsersController) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid user id", nil)
		return
	}
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body", nil)
		return
	}
	updated, err := c.crud.Update(r.Context(), id, &user.UpdateDTO{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		AccessLevelID: req.AccessLevelID,
		GroupIDs:      req.GroupIDs,
		ProjectIDs:    req.ProjectIDs,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
			return
		}
		c.internalError(w, r, "failed to update user", err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, updated)
}

func (c *UsersController) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid user id", nil)
		return
	}
	if err := c.crud.Delete(r.Context(), id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
			return
		}
		c.internalError(w, r, "failed to delete user", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

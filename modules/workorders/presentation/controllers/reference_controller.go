package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/reference"
	"github.com/meterdesk/meterdesk/modules/workorders/services"
	"github.com/meterdesk/meterdesk/pkg/composables"
	"github.com/meterdesk/meterdesk/pkg/httpapi"
)

// ReferenceController manages the lookup tables behind the work-order form.
type ReferenceController struct {
	basePath string
	refs     *services.ReferenceService
}

func NewReferenceController(refs *services.ReferenceService) *ReferenceController {
	return &ReferenceController{
		basePath: "/api/reference",
		refs:     refs,
	}
}

func (c *ReferenceController) Key() string {
	return c.basePath
}

func (c *ReferenceController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()

	router.HandleFunc("/statuses", c.listStatuses).Methods(http.MethodGet)
	router.HandleFunc("/statuses", c.createStatus).Methods(http.MethodPost)
	router.HandleFunc("/statuses/{id:[0-9]+}", c.updateStatus).Methods(http.MethodPut)
	router.HandleFunc("/statuses/{id:[0-9]+}", c.deleteStatus).Methods(http.MethodDelete)

	router.HandleFunc("/service-types", c.listServiceTypes).Methods(http.MethodGet)
	router.HandleFunc("/service-types", c.createServiceType).Methods(http.MethodPost)
	router.HandleFunc("/service-types/{id:[0-9]+}", c.updateServiceType).Methods(http.MethodPut)
	router.HandleFunc("/service-types/{id:[0-9]+}", c.deleteServiceType).Methods(http.MethodDelete)

	router.HandleFunc("/meter-types", c.listMeterTypes).Methods(http.MethodGet)
	router.HandleFunc("/meter-types", c.createMeterType).Methods(http.MethodPost)
	router.HandleFunc("/meter-types/{id:[0-9]+}", c.updateMeterType).Methods(http.MethodPut)
	router.HandleFunc("/meter-types/{id:[0-9]+}", c.deleteMeterType).Methods(http.MethodDelete)

	router.HandleFunc("/trouble-codes", c.listTroubleCodes).Methods(http.MethodGet)
	router.HandleFunc("/trouble-codes", c.createTroubleCode).Methods(http.MethodPost)
	router.HandleFunc("/trouble-codes/{id:[0-9]+}", c.updateTroubleCode).Methods(http.MethodPut)
	router.HandleFunc("/trouble-codes/{id:[0-9]+}", c.deleteTroubleCode).Methods(http.MethodDelete)
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body", nil)
		return false
	}
	return true
}

func (c *ReferenceController) respond(w http.ResponseWriter, r *http.Request, status int, payload any, err error, msg string) {
	if err != nil {
		if errors.Is(err, reference.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "reference entry not found", nil)
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error(msg)
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", msg, nil)
		return
	}
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	_ = httpapi.WriteJSON(w, status, payload)
}

func (c *ReferenceController) listStatuses(w http.ResponseWriter, r *http.Request) {
	items, err := c.refs.Statuses(r.Context())
	c.respond(w, r, http.StatusOK, items, err, "failed to list statuses")
}

func (c *ReferenceController) createStatus(w http.ResponseWriter, r *http.Request) {
	var dto reference.StatusDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	created, err := c.refs.CreateStatus(r.Context(), &dto)
	c.respond(w, r, http.StatusCreated, created, err, "failed to create status")
}

func (c *ReferenceController) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	var dto reference.StatusDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	updated, err := c.refs.UpdateStatus(r.Context(), id, &dto)
	c.respond(w, r, http.StatusOK, updated, err, "failed to update status")
}

func (c *ReferenceController) deleteStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	err := c.refs.DeleteStatus(r.Context(), id)
	c.respond(w, r, http.StatusNoContent, nil, err, "failed to delete status")
}

func (c *ReferenceController) listServiceTypes(w http.ResponseWriter, r *http.Request) {
	items, err := c.refs.ServiceTypes(r.Context())
	c.respond(w, r, http.StatusOK, items, err, "failed to list service types")
}

func (c *ReferenceController) createServiceType(w http.ResponseWriter, r *http.Request) {
	var dto reference.ServiceTypeDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	created, err := c.refs.CreateServiceType(r.Context(), &dto)
	c.respond(w, r, http.StatusCreated, created, err, "failed to create service type")
}

func (c *ReferenceController) updateServiceType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	var dto reference.ServiceTypeDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	updated, err := c.refs.UpdateServiceType(r.Context(), id, &dto)
	c.respond(w, r, http.StatusOK, updated, err, "failed to update service type")
}

func (c *ReferenceController) deleteServiceType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	err := c.refs.DeleteServiceType(r.Context(), id)
	c.respond(w, r, http.StatusNoContent, nil, err, "failed to delete service type")
}

func (c *ReferenceController) listMeterTypes(w http.ResponseWriter, r *http.Request) {
	items, err := c.refs.MeterTypes(r.Context())
	c.respond(w, r, http.StatusOK, items, err, "failed to list meter types")
}

func (c *ReferenceController) createMeterType(w http.ResponseWriter, r *http.Request) {
	var dto reference.MeterTypeDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	created, err := c.refs.CreateMeterType(r.Context(), &dto)
	c.respond(w, r, http.StatusCreated, created, err, "failed to create meter type")
}

func (c *ReferenceController) updateMeterType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	var dto reference.MeterTypeDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	updated, err := c.refs.UpdateMeterType(r.Context(), id, &dto)
	c.respond(w, r, http.StatusOK, updated, err, "failed to update meter type")
}

func (c *ReferenceController) deleteMeterType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	err := c.refs.DeleteMeterType(r.Context(), id)
	c.respond(w, r, http.StatusNoContent, nil, err, "failed to delete meter type")
}

func (c *ReferenceController) listTroubleCodes(w http.ResponseWriter, r *http.Request) {
	items, err := c.refs.TroubleCodes(r.Context())
	c.respond(w, r, http.StatusOK, items, err, "failed to list trouble codes")
}

func (c *ReferenceController) createTroubleCode(w http.ResponseWriter, r *http.Request) {
	var dto reference.TroubleCodeDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	created, err := c.refs.CreateTroubleCode(r.Context(), &dto)
	c.respond(w, r, http.StatusCreated, created, err, "failed to create trouble code")
}

func (c *ReferenceController) updateTroubleCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	var dto reference.TroubleCodeDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	updated, err := c.refs.UpdateTroubleCode(r.Context(), id, &dto)
	c.respond(w, r, http.StatusOK, updated, err, "failed to update trouble code")
}

func (c *ReferenceController) deleteTroubleCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	err := c.refs.DeleteTroubleCode(r.Context(), id)
	c.respond(w, r, http.StatusNoContent, nil, err, "failed to delete trouble code")
}

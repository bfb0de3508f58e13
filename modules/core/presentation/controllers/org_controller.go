package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/meterdesk/meterdesk/modules/core/domain/entities/accesslevel"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/group"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/project"
	"github.com/meterdesk/meterdesk/modules/core/services"
	"github.com/meterdesk/meterdesk/pkg/composables"
	"github.com/meterdesk/meterdesk/pkg/httpapi"
)

// OrgController manages groups, projects, and access levels.
type OrgController struct {
	basePath string
	org      *services.OrgService
}

func NewOrgController(org *services.OrgService) *OrgController {
	return &OrgController{
		basePath: "/api/org",
		org:      org,
	}
}

func (c *OrgController) Key() string {
	return c.basePath
}

func (c *OrgController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()

	router.HandleFunc("/groups", c.listGroups).Methods(http.MethodGet)
	router.HandleFunc("/groups", c.createGroup).Methods(http.MethodPost)
	router.HandleFunc("/groups/{id:[0-9]+}", c.updateGroup).Methods(http.MethodPut)
	router.HandleFunc("/groups/{id:[0-9]+}", c.deleteGroup).Methods(http.MethodDelete)

	router.HandleFunc("/projects", c.listProjects).Methods(http.MethodGet)
	router.HandleFunc("/projects", c.createProject).Methods(http.MethodPost)
	router.HandleFunc("/projects/{id:[0-9]+}", c.updateProject).Methods(http.MethodPut)
	router.HandleFunc("/projects/{id:[0-9]+}", c.deleteProject).Methods(http.MethodDelete)

	router.HandleFunc("/access-levels", c.listAccessLevels).Methods(http.MethodGet)
	router.HandleFunc("/access-levels", c.createAccessLevel).Methods(http.MethodPost)
	router.HandleFunc("/access-levels/{id:[0-9]+}", c.updateAccessLevel).Methods(http.MethodPut)
	router.HandleFunc("/access-levels/{id:[0-9]+}", c.deleteAccessLevel).Methods(http.MethodDelete)
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

func (c *OrgController) respond(w http.ResponseWriter, r *http.Request, status int, payload any, err error, msg string) {
	if err != nil {
		if errors.Is(err, group.ErrNotFound) || errors.Is(err, project.ErrNotFound) || errors.Is(err, accesslevel.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "entry not found", nil)
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

func (c *OrgController) listGroups(w http.ResponseWriter, r *http.Request) {
	items, err := c.org.Groups(r.Context())
	c.respond(w, r, http.StatusOK, items, err, "failed to list groups")
}

func (c *OrgController) createGroup(w http.ResponseWriter, r *http.Request) {
	var dto group.GroupDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	created, err := c.org.CreateGroup(r.Context(), &dto)
	c.respond(w, r, http.StatusCreated, created, err, "failed to create group")
}

func (c *OrgController) updateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	var dto group.GroupDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	updated, err := c.org.UpdateGroup(r.Context(), id, &dto)
	c.respond(w, r, http.StatusOK, updated, err, "failed to update group")
}

func (c *OrgController) deleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	err := c.org.DeleteGroup(r.Context(), id)
	c.respond(w, r, http.StatusNoContent, nil, err, "failed to delete group")
}

func (c *OrgController) listProjects(w http.ResponseWriter, r *http.Request) {
	items, err := c.org.Projects(r.Context())
	c.respond(w, r, http.StatusOK, items, err, "failed to list projects")
}

func (c *OrgController) createProject(w http.ResponseWriter, r *http.Request) {
	var dto project.ProjectDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	created, err := c.org.CreateProject(r.Context(), &dto)
	c.respond(w, r, http.StatusCreated, created, err, "failed to create project")
}

func (c *OrgController) updateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	var dto project.ProjectDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	updated, err := c.org.UpdateProject(r.Context(), id, &dto)
	c.respond(w, r, http.StatusOK, updated, err, "failed to update project")
}

func (c *OrgController) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	err := c.org.DeleteProject(r.Context(), id)
	c.respond(w, r, http.StatusNoContent, nil, err, "failed to delete project")
}

func (c *OrgController) listAccessLevels(w http.ResponseWriter, r *http.Request) {
	items, err := c.org.AccessLevels(r.Context())
	c.respond(w, r, http.StatusOK, items, err, "failed to list access levels")
}

func (c *OrgController) createAccessLevel(w http.ResponseWriter, r *http.Request) {
	var dto accesslevel.AccessLevelDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	created, err := c.org.CreateAccessLevel(r.Context(), &dto)
	c.respond(w, r, http.StatusCreated, created, err, "failed to create access level")
}

func (c *OrgController) updateAccessLevel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	var dto accesslevel.AccessLevelDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	updated, err := c.org.UpdateAccessLevel(r.Context(), id, &dto)
	c.respond(w, r, http.StatusOK, updated, err, "failed to update access level")
}

func (c *OrgController) deleteAccessLevel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid id", nil)
		return
	}
	err := c.org.DeleteAccessLevel(r.Context(), id)
	c.respond(w, r, http.StatusNoContent, nil, err, "failed to delete access level")
}

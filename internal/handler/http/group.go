package http

import (
	"net/http"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/response"
)

type GroupHandler interface {
	ListGroups(w http.ResponseWriter, r *http.Request)
	ListActiveGroups(w http.ResponseWriter, r *http.Request)
	GetGroup(w http.ResponseWriter, r *http.Request)
	CreateGroup(w http.ResponseWriter, r *http.Request)
	UpdateGroup(w http.ResponseWriter, r *http.Request)
	DeleteGroup(w http.ResponseWriter, r *http.Request)
}

type groupHandlerImpl struct {
	groups group.GroupRepository
}

func NewGroupHandler(groups group.GroupRepository) GroupHandler {
	return &groupHandlerImpl{groups: groups}
}

// ListGroups implements GroupHandler
func (h *groupHandlerImpl) ListGroups(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, group.Query{})
}

// ListActiveGroups implements GroupHandler
func (h *groupHandlerImpl) ListActiveGroups(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, group.Query{ActiveOnly: true})
}

func (h *groupHandlerImpl) list(w http.ResponseWriter, r *http.Request, q group.Query) {
	result, err := h.groups.List(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetGroup implements GroupHandler
func (h *groupHandlerImpl) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.groups.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateGroup implements GroupHandler
func (h *groupHandlerImpl) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req group.SaveRequest
	if !decodeJSON(w, r, "CreateGroup", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.groups.Create(r.Context(), groupFrom(req))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

// UpdateGroup implements GroupHandler
func (h *groupHandlerImpl) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req group.SaveRequest
	if !decodeJSON(w, r, "UpdateGroup", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	g := groupFrom(req)
	g.ID = &id
	updated, err := h.groups.Update(r.Context(), g)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// DeleteGroup implements GroupHandler
func (h *groupHandlerImpl) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.groups.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

func groupFrom(req group.SaveRequest) group.Group {
	return group.Group{
		Name:                req.Name,
		WhatsappGroupName:   req.WhatsappGroupName,
		EmailSubjectPattern: req.EmailSubjectPattern,
		GoogleSheetID:       req.GoogleSheetID,
		IsActive:            req.IsActive,
	}
}

package http

import (
	"net/http"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	ListActiveEmployees(w http.ResponseWriter, r *http.Request)
	ListGroupEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employees employee.EmployeeRepository
}

func NewEmployeeHandler(employees employee.EmployeeRepository) EmployeeHandler {
	return &employeeHandlerImpl{employees: employees}
}

func (h *employeeHandlerImpl) list(w http.ResponseWriter, r *http.Request, q employee.Query) {
	result, err := h.employees.List(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, employee.Query{})
}

// ListActiveEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListActiveEmployees(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, employee.Query{ActiveOnly: true})
}

// ListGroupEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListGroupEmployees(w http.ResponseWriter, r *http.Request) {
	groupID, ok := idParam(w, r, "groupId")
	if !ok {
		return
	}
	h.list(w, r, employee.Query{GroupID: &groupID})
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.employees.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.SaveRequest
	if !decodeJSON(w, r, "CreateEmployee", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.employees.Create(r.Context(), employeeFrom(req))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req employee.SaveRequest
	if !decodeJSON(w, r, "UpdateEmployee", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	e := employeeFrom(req)
	e.ID = &id
	updated, err := h.employees.Update(r.Context(), e)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

func employeeFrom(req employee.SaveRequest) employee.Employee {
	return employee.Employee{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		WhatsappName: req.WhatsappName,
		EmployeeCode: req.EmployeeCode,
		GroupID:      req.GroupID,
		IsActive:     req.IsActive,
	}
}

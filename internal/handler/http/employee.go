package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/employee"
	"github.com/stafftrail/stafftrail-backend-go/internal/handler/http/response"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/qrcode"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/validator"
)

type EmployeeHandler interface {
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeactivateEmployee(w http.ResponseWriter, r *http.Request)
	GetQRToken(w http.ResponseWriter, r *http.Request)
	RenderQRBadge(w http.ResponseWriter, r *http.Request)
	ResolveQRToken(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

func parseEmployeeID(r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	if !validator.IsNumeric(idParam) {
		return 0, false
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(r)
	if !ok {
		response.BadRequest(w, "Employee ID must be a positive integer", nil)
		return
	}

	result, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := employee.ListFilter{}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		filter.Limit = l
	}

	result, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Employees, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(r)
	if !ok {
		response.BadRequest(w, "Employee ID must be a positive integer", nil)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", result)
}

// DeactivateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(r)
	if !ok {
		response.BadRequest(w, "Employee ID must be a positive integer", nil)
		return
	}

	if err := h.employeeService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deactivated", nil)
}

// GetQRToken implements EmployeeHandler
func (h *employeeHandlerImpl) GetQRToken(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(r)
	if !ok {
		response.BadRequest(w, "Employee ID must be a positive integer", nil)
		return
	}

	result, err := h.employeeService.GetQRToken(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RenderQRBadge implements EmployeeHandler. Serves the printable badge image
// for a token. Only tokens of active employees render; anything else looks
// like an unknown token.
func (h *employeeHandlerImpl) RenderQRBadge(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if !validator.IsValidToken(token) {
		response.HandleError(w, employee.ErrTokenNotFound)
		return
	}

	if _, err := h.employeeService.ResolveToken(r.Context(), token); err != nil {
		response.HandleError(w, err)
		return
	}

	size := 0
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && s > 0 && s <= 1000 {
		size = s
	}

	png, err := qrcode.RenderPNG(token, size)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	_, _ = w.Write(png)
}

// ResolveQRToken implements EmployeeHandler. Returns the profile behind a
// scanned token without touching the attendance ledger.
func (h *employeeHandlerImpl) ResolveQRToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if !validator.IsValidToken(token) {
		response.HandleError(w, employee.ErrTokenNotFound)
		return
	}

	result, err := h.employeeService.ResolveToken(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

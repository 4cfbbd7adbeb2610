package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/attendance"
	"github.com/stafftrail/stafftrail-backend-go/internal/handler/http/response"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	ListEmployeeRecords(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func parseListFilter(r *http.Request) attendance.ListFilter {
	filter := attendance.ListFilter{}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		filter.Limit = l
	}

	// from/to are calendar dates; to covers the whole named day
	if from, ok := validator.IsValidDate(r.URL.Query().Get("from")); ok {
		filter.From = &from
	}
	if to, ok := validator.IsValidDate(r.URL.Query().Get("to")); ok {
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	return filter
}

// GetRecord implements AttendanceHandler
func (h *attendanceHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	if !validator.IsNumeric(idParam) {
		response.BadRequest(w, "Record ID must be a positive integer", nil)
		return
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		response.BadRequest(w, "Record ID must be a positive integer", nil)
		return
	}

	result, err := h.attendanceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListRecords implements AttendanceHandler
func (h *attendanceHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.List(r.Context(), parseListFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ListEmployeeRecords implements AttendanceHandler
func (h *attendanceHandlerImpl) ListEmployeeRecords(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Employee ID must be a positive integer", nil)
		return
	}

	result, err := h.attendanceService.ListByEmployee(r.Context(), id, parseListFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

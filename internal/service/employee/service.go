package employee

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
	}
}

// Create implements employee.EmployeeService.
//
// The QR token is issued here, once, for the lifetime of the employee.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	newEmployee := employee.Employee{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Department: req.Department,
		Status:     employee.StatusActive,
		QRToken:    uuid.NewString(),
	}

	created, err := s.EmployeeRepository.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return MapEmployeeToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return MapEmployeeToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) (employee.ListEmployeesResponse, error) {
	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, MapEmployeeToResponse(emp))
	}

	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Employees:  responses,
	}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	current, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	current.Name = strings.TrimSpace(req.Name)
	current.Email = strings.ToLower(strings.TrimSpace(req.Email))
	current.Department = req.Department
	if req.Status != nil {
		current.Status = employee.Status(*req.Status)
	}

	updated, err := s.EmployeeRepository.Update(ctx, current)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return MapEmployeeToResponse(updated), nil
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id int64) error {
	return s.EmployeeRepository.Deactivate(ctx, id)
}

// GetQRToken implements employee.EmployeeService.
//
// Deactivated employees keep their token row, but it is never handed out.
func (s *EmployeeServiceImpl) GetQRToken(ctx context.Context, id int64) (employee.QRTokenResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.QRTokenResponse{}, err
	}

	if !emp.IsActive() {
		return employee.QRTokenResponse{}, employee.ErrEmployeeNotFound
	}

	return employee.QRTokenResponse{QRToken: emp.QRToken}, nil
}

// ResolveToken implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ResolveToken(ctx context.Context, token string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByToken(ctx, strings.ToLower(strings.TrimSpace(token)))
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return MapEmployeeToResponse(emp), nil
}

// MapEmployeeToResponse converts an Employee entity to EmployeeResponse. The
// QR token is deliberately not part of the response shape.
func MapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:         emp.ID,
		Name:       emp.Name,
		Email:      emp.Email,
		Department: emp.Department,
		Status:     string(emp.Status),
		CreatedAt:  emp.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

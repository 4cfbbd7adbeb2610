package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stafftrail/stafftrail-backend-go/internal/domain/attendance"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/employee"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/verification"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/facematch"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/validator"
	attendanceservice "github.com/stafftrail/stafftrail-backend-go/internal/service/attendance"
)

type VerificationServiceImpl struct {
	employeeRepo      employee.EmployeeRepository
	attendanceRepo    attendance.AttendanceRepository
	attendanceService attendance.AttendanceService
	matcher           verification.FaceMatcher
}

func NewVerificationService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	attendanceService attendance.AttendanceService,
	matcher verification.FaceMatcher,
) verification.VerificationService {
	return &VerificationServiceImpl{
		employeeRepo:      employeeRepo,
		attendanceRepo:    attendanceRepo,
		attendanceService: attendanceService,
		matcher:           matcher,
	}
}

// resolve turns the scanned token into an active employee. A malformed token
// never reaches the store and reports the exact error an unknown one would,
// so callers cannot probe token syntax separately from token existence.
func (s *VerificationServiceImpl) resolve(ctx context.Context, req verification.VerifyRequest) (employee.Employee, error) {
	token := strings.ToLower(strings.TrimSpace(req.Token))
	if !validator.IsValidToken(token) {
		return employee.Employee{}, employee.ErrTokenNotFound
	}

	emp, err := s.employeeRepo.GetByToken(ctx, token)
	if err != nil {
		return employee.Employee{}, err
	}

	return emp, nil
}

// corroborate runs the face match. Nothing has been written at this point, so
// an unavailable matcher leaves the ledger exactly as it was.
func (s *VerificationServiceImpl) corroborate(ctx context.Context, employeeID int64, imageB64 string) error {
	verified, err := s.matcher.Verify(ctx, employeeID, imageB64)
	if err != nil {
		if errors.Is(err, facematch.ErrUnavailable) {
			return fmt.Errorf("%w: %v", verification.ErrFaceServiceUnavailable, err)
		}
		return err
	}

	if !verified {
		return verification.ErrFaceRejected
	}

	return nil
}

// VerifyCheckIn implements verification.VerificationService.
func (s *VerificationServiceImpl) VerifyCheckIn(ctx context.Context, req verification.VerifyRequest) (verification.VerifyResult, error) {
	emp, err := s.resolve(ctx, req)
	if err != nil {
		return verification.VerifyResult{}, err
	}

	if req.ImageB64 != "" {
		if err := s.corroborate(ctx, emp.ID, req.ImageB64); err != nil {
			return verification.VerifyResult{}, err
		}
	}

	rec, err := s.attendanceService.CheckIn(ctx, emp.ID)
	if err != nil {
		return verification.VerifyResult{}, err
	}

	return checkedInResult(emp, rec), nil
}

// VerifyCheckOut implements verification.VerificationService.
func (s *VerificationServiceImpl) VerifyCheckOut(ctx context.Context, req verification.VerifyRequest) (verification.VerifyResult, error) {
	emp, err := s.resolve(ctx, req)
	if err != nil {
		return verification.VerifyResult{}, err
	}

	if req.ImageB64 != "" {
		if err := s.corroborate(ctx, emp.ID, req.ImageB64); err != nil {
			return verification.VerifyResult{}, err
		}
	}

	rec, err := s.attendanceService.CheckOut(ctx, emp.ID, req.Notes)
	if err != nil {
		return verification.VerifyResult{}, err
	}

	return checkedOutResult(emp, rec), nil
}

// VerifyScan implements verification.VerificationService.
//
// The transition is derived from the current ledger state. The peek here is
// advisory only; the authoritative state check happens inside the attendance
// service transaction, so a race between two scans still settles correctly.
func (s *VerificationServiceImpl) VerifyScan(ctx context.Context, req verification.VerifyRequest) (verification.VerifyResult, error) {
	if err := req.ValidateImage(); err != nil {
		return verification.VerifyResult{}, err
	}

	emp, err := s.resolve(ctx, req)
	if err != nil {
		return verification.VerifyResult{}, err
	}

	if err := s.corroborate(ctx, emp.ID, req.ImageB64); err != nil {
		return verification.VerifyResult{}, err
	}

	open, err := s.attendanceRepo.GetOpenByEmployee(ctx, emp.ID)
	if err != nil {
		return verification.VerifyResult{}, err
	}

	if open != nil {
		rec, err := s.attendanceService.CheckOut(ctx, emp.ID, req.Notes)
		if err != nil {
			return verification.VerifyResult{}, err
		}
		return checkedOutResult(emp, rec), nil
	}

	rec, err := s.attendanceService.CheckIn(ctx, emp.ID)
	if err != nil {
		return verification.VerifyResult{}, err
	}

	return checkedInResult(emp, rec), nil
}

func checkedInResult(emp employee.Employee, rec attendance.Record) verification.VerifyResult {
	resp := attendanceservice.MapRecordToResponse(rec)
	return verification.VerifyResult{
		Outcome: verification.OutcomeSuccess,
		Message: fmt.Sprintf("%s checked in", emp.Name),
		Record:  &resp,
	}
}

func checkedOutResult(emp employee.Employee, rec attendance.Record) verification.VerifyResult {
	resp := attendanceservice.MapRecordToResponse(rec)
	return verification.VerifyResult{
		Outcome: verification.OutcomeSuccess,
		Message: fmt.Sprintf("%s checked out", emp.Name),
		Record:  &resp,
	}
}

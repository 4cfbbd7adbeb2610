package attendance

import (
	"context"
	"math"
	"time"

	"github.com/stafftrail/stafftrail-backend-go/internal/domain/attendance"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/database"
	"github.com/stafftrail/stafftrail-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
}

func NewAttendanceService(db *database.DB, attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format("2006-01-02 15:04:05")
	return &format
}

// CheckIn implements attendance.AttendanceService.
//
// The read-then-insert runs in one transaction. Locking the open record covers
// the common race; when no row exists to lock the insert is still guarded by
// the partial unique index, which the repository maps to ErrAlreadyCheckedIn.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID int64) (attendance.Record, error) {
	var rec attendance.Record

	err := postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		open, err := a.AttendanceRepository.GetOpenByEmployeeForUpdate(txCtx, employeeID)
		if err != nil {
			return err
		}
		if open != nil {
			return attendance.ErrAlreadyCheckedIn
		}

		rec, err = a.AttendanceRepository.Create(txCtx, employeeID, time.Now().UTC())
		return err
	})
	if err != nil {
		return attendance.Record{}, err
	}

	return rec, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID int64, notes *string) (attendance.Record, error) {
	var rec attendance.Record

	err := postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		open, err := a.AttendanceRepository.GetOpenByEmployeeForUpdate(txCtx, employeeID)
		if err != nil {
			return err
		}
		if open == nil {
			return attendance.ErrNoOpenCheckIn
		}

		rec, err = a.AttendanceRepository.Close(txCtx, open.ID, time.Now().UTC(), notes)
		return err
	})
	if err != nil {
		return attendance.Record{}, err
	}

	return rec, nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id int64) (attendance.RecordResponse, error) {
	rec, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return MapRecordToResponse(rec), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListRecordsResponse, error) {
	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	return buildListResponse(records, total, filter), nil
}

// ListByEmployee implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID int64, filter attendance.ListFilter) (attendance.ListRecordsResponse, error) {
	records, total, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	return buildListResponse(records, total, filter), nil
}

func buildListResponse(records []attendance.Record, total int64, filter attendance.ListFilter) attendance.ListRecordsResponse {
	limit := filter.Limit
	if limit == 0 {
		limit = 25
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, MapRecordToResponse(rec))
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Records:    responses,
	}
}

// MapRecordToResponse converts a Record entity to RecordResponse
func MapRecordToResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		EmployeeName:  rec.EmployeeName,
		EmployeeEmail: rec.EmployeeEmail,
		CheckInTime:   rec.CheckInTime.UTC().Format("2006-01-02 15:04:05"),
		CheckOutTime:  timePtrToString(rec.CheckOutTime),
		Status:        string(rec.Status),
		Notes:         rec.Notes,
	}
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/attendance"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
//
// The partial unique index on open records is the cross-instance guard: when
// two first check-ins race, one insert fails with a unique violation, which is
// reported as ErrAlreadyCheckedIn.
func (r *attendanceRepository) Create(ctx context.Context, employeeID int64, checkIn time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, check_in_time, status)
		VALUES ($1, $2, 'checked-in')
		RETURNING id, employee_id, check_in_time, check_out_time, status, notes, created_at
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, employeeID, checkIn).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.Status, &rec.Notes, &rec.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

func (r *attendanceRepository) getOpen(ctx context.Context, employeeID int64, forUpdate bool) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, check_in_time, check_out_time, status, notes, created_at
		FROM attendance_records
		WHERE employee_id = $1
		  AND status = 'checked-in'
		ORDER BY check_in_time DESC
		LIMIT 1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var rec attendance.Record
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.Status, &rec.Notes, &rec.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open attendance record: %w", err)
	}

	return &rec, nil
}

// GetOpenByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenByEmployee(ctx context.Context, employeeID int64) (*attendance.Record, error) {
	return r.getOpen(ctx, employeeID, false)
}

// GetOpenByEmployeeForUpdate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenByEmployeeForUpdate(ctx context.Context, employeeID int64) (*attendance.Record, error) {
	return r.getOpen(ctx, employeeID, true)
}

// Close implements attendance.AttendanceRepository.
//
// The status predicate makes the close idempotence-safe: a record that was
// already closed is not matched, so a stale close attempt fails instead of
// rewriting a finished cycle.
func (r *attendanceRepository) Close(ctx context.Context, recordID int64, checkOut time.Time, notes *string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out_time = $1, status = 'checked-out', notes = $2
		WHERE id = $3
		  AND status = 'checked-in'
		RETURNING id, employee_id, check_in_time, check_out_time, status, notes, created_at
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, checkOut, notes, recordID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.Status, &rec.Notes, &rec.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNoOpenCheckIn
		}
		return attendance.Record{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.check_in_time, a.check_out_time, a.status, a.notes, a.created_at,
			   e.name AS employee_name,
			   e.email AS employee_email
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.Status, &rec.Notes, &rec.CreatedAt,
		&rec.EmployeeName, &rec.EmployeeEmail,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}

	return rec, nil
}

// timeWindowClause appends check-in window predicates to an existing WHERE.
func timeWindowClause(filter attendance.ListFilter, args []interface{}) (string, []interface{}) {
	clause := ""
	if filter.From != nil {
		args = append(args, *filter.From)
		clause += fmt.Sprintf(" AND check_in_time >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clause += fmt.Sprintf(" AND check_in_time < $%d", len(args))
	}
	return clause, args
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID int64, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE employee_id = $1`
	args := []interface{}{employeeID}
	windowClause, args := timeWindowClause(filter, args)
	where += windowClause

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_records ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 25
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT id, employee_id, check_in_time, check_out_time, status, notes, created_at
		FROM attendance_records
		%s
		ORDER BY check_in_time DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CheckInTime, &rec.CheckOutTime,
			&rec.Status, &rec.Notes, &rec.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE TRUE`
	var args []interface{}
	windowClause, args := timeWindowClause(filter, args)
	where += windowClause

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_records ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 25
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.check_in_time, a.check_out_time, a.status, a.notes, a.created_at,
			   e.name AS employee_name,
			   e.email AS employee_email
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY a.check_in_time DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CheckInTime, &rec.CheckOutTime,
			&rec.Status, &rec.Notes, &rec.CreatedAt,
			&rec.EmployeeName, &rec.EmployeeEmail,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

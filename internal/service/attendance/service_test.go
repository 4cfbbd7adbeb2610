package attendance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrail/stafftrail-backend-go/internal/domain/attendance"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/database"
	"github.com/stafftrail/stafftrail-backend-go/internal/repository/postgresql"
)

func setupTestService(t *testing.T) (attendance.AttendanceService, *database.DB) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, 10, 2)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	return NewAttendanceService(db, postgresql.NewAttendanceRepository(db)), db
}

func createTestEmployee(t *testing.T, db *database.DB) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO employees (name, email, status, qr_token)
		VALUES ($1, $2, 'active', $3)
		RETURNING id
	`, "Test Employee", fmt.Sprintf("test-%s@example.com", uuid.NewString()), uuid.NewString()).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM attendance_records WHERE employee_id = $1`, id)
		_, _ = db.Exec(context.Background(), `DELETE FROM employees WHERE id = $1`, id)
	})

	return id
}

func TestCheckInCheckOutRoundTrip(t *testing.T) {
	svc, db := setupTestService(t)
	employeeID := createTestEmployee(t, db)
	ctx := context.Background()

	rec, err := svc.CheckIn(ctx, employeeID)
	require.NoError(t, err)
	assert.Equal(t, employeeID, rec.EmployeeID)
	assert.Equal(t, attendance.StatusCheckedIn, rec.Status)
	assert.Nil(t, rec.CheckOutTime)

	notes := "left early"
	closed, err := svc.CheckOut(ctx, employeeID, &notes)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, closed.ID)
	assert.Equal(t, attendance.StatusCheckedOut, closed.Status)
	require.NotNil(t, closed.CheckOutTime)
	assert.False(t, closed.CheckOutTime.Before(closed.CheckInTime))
	require.NotNil(t, closed.Notes)
	assert.Equal(t, "left early", *closed.Notes)
}

func TestCheckInTwiceFails(t *testing.T) {
	svc, db := setupTestService(t)
	employeeID := createTestEmployee(t, db)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, employeeID)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, employeeID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOutWithoutCheckInFails(t *testing.T) {
	svc, db := setupTestService(t)
	employeeID := createTestEmployee(t, db)

	_, err := svc.CheckOut(context.Background(), employeeID, nil)
	assert.ErrorIs(t, err, attendance.ErrNoOpenCheckIn)
}

func TestCheckOutOnClosedCycleFails(t *testing.T) {
	svc, db := setupTestService(t)
	employeeID := createTestEmployee(t, db)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, employeeID)
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, employeeID, nil)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, employeeID, nil)
	assert.ErrorIs(t, err, attendance.ErrNoOpenCheckIn)

	// A new cycle can begin once the previous one is closed.
	rec, err := svc.CheckIn(ctx, employeeID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedIn, rec.Status)
}

// Concurrent first check-ins must produce exactly one open record; the losers
// all see ErrAlreadyCheckedIn.
func TestConcurrentCheckInsOpenExactlyOneRecord(t *testing.T) {
	svc, db := setupTestService(t)
	employeeID := createTestEmployee(t, db)
	ctx := context.Background()

	const attempts = 8

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(ctx, employeeID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, attendance.ErrAlreadyCheckedIn):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)

	var open int64
	err := db.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendance_records
		WHERE employee_id = $1 AND status = 'checked-in'
	`, employeeID).Scan(&open)
	require.NoError(t, err)
	assert.Equal(t, int64(1), open)
}

func TestGetRecord(t *testing.T) {
	svc, db := setupTestService(t)
	employeeID := createTestEmployee(t, db)
	ctx := context.Background()

	rec, err := svc.CheckIn(ctx, employeeID)
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, employeeID, nil)
	require.NoError(t, err)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, string(attendance.StatusCheckedOut), got.Status)
	require.NotNil(t, got.EmployeeName)
	assert.Equal(t, "Test Employee", *got.EmployeeName)

	_, err = svc.Get(ctx, rec.ID+1000000)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestListByEmployeeTimeWindow(t *testing.T) {
	svc, db := setupTestService(t)
	employeeID := createTestEmployee(t, db)
	ctx := context.Background()

	// One closed cycle from last week, one from now.
	lastWeek := time.Now().UTC().AddDate(0, 0, -7)
	_, err := db.Exec(ctx, `
		INSERT INTO attendance_records (employee_id, check_in_time, check_out_time, status)
		VALUES ($1, $2, $2, 'checked-out')
	`, employeeID, lastWeek)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, employeeID)
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, employeeID, nil)
	require.NoError(t, err)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)

	resp, err := svc.ListByEmployee(ctx, employeeID, attendance.ListFilter{
		From: &yesterday,
		To:   &tomorrow,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.Records, 1)

	// No window: both cycles visible.
	resp, err = svc.ListByEmployee(ctx, employeeID, attendance.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalCount)
}

func TestListByEmployeePagination(t *testing.T) {
	svc, db := setupTestService(t)
	employeeID := createTestEmployee(t, db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CheckIn(ctx, employeeID)
		require.NoError(t, err)
		_, err = svc.CheckOut(ctx, employeeID, nil)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	}

	resp, err := svc.ListByEmployee(ctx, employeeID, attendance.ListFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Records, 2)

	// Most recent cycle first.
	assert.True(t, resp.Records[0].CheckInTime >= resp.Records[1].CheckInTime)
}

package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrail/stafftrail-backend-go/internal/domain/attendance"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/employee"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/verification"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/facematch"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/validator"
)

const testToken = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

// fakeEmployeeRepo resolves tokens the way the real repository does: only
// active employees are visible, everything else is ErrTokenNotFound.
type fakeEmployeeRepo struct {
	employee.EmployeeRepository

	byToken map[string]employee.Employee
	lookups int
}

func (f *fakeEmployeeRepo) GetByToken(ctx context.Context, token string) (employee.Employee, error) {
	f.lookups++
	emp, ok := f.byToken[token]
	if !ok || !emp.IsActive() {
		return employee.Employee{}, employee.ErrTokenNotFound
	}
	return emp, nil
}

// fakeLedger keeps at most one open record per employee in memory. The repo
// and service adapters below expose slices of it to the orchestrator.
type fakeLedger struct {
	nextID int64
	open   map[int64]*attendance.Record
	closed []attendance.Record
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{open: make(map[int64]*attendance.Record)}
}

type fakeLedgerRepo struct {
	attendance.AttendanceRepository
	ledger *fakeLedger
}

func (f *fakeLedgerRepo) GetOpenByEmployee(ctx context.Context, employeeID int64) (*attendance.Record, error) {
	return f.ledger.open[employeeID], nil
}

type fakeLedgerService struct {
	attendance.AttendanceService
	ledger *fakeLedger
}

func (f *fakeLedgerService) CheckIn(ctx context.Context, employeeID int64) (attendance.Record, error) {
	l := f.ledger
	if l.open[employeeID] != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}
	l.nextID++
	rec := attendance.Record{
		ID:          l.nextID,
		EmployeeID:  employeeID,
		CheckInTime: time.Now().UTC(),
		Status:      attendance.StatusCheckedIn,
	}
	l.open[employeeID] = &rec
	return rec, nil
}

func (f *fakeLedgerService) CheckOut(ctx context.Context, employeeID int64, notes *string) (attendance.Record, error) {
	l := f.ledger
	rec := l.open[employeeID]
	if rec == nil {
		return attendance.Record{}, attendance.ErrNoOpenCheckIn
	}
	now := time.Now().UTC()
	rec.CheckOutTime = &now
	rec.Status = attendance.StatusCheckedOut
	rec.Notes = notes
	delete(l.open, employeeID)
	l.closed = append(l.closed, *rec)
	return *rec, nil
}

type fakeMatcher struct {
	calls  int
	result bool
	err    error
}

func (f *fakeMatcher) Verify(ctx context.Context, employeeID int64, imageB64 string) (bool, error) {
	f.calls++
	return f.result, f.err
}

func setupService(matcher verification.FaceMatcher) (verification.VerificationService, *fakeEmployeeRepo, *fakeLedger) {
	empRepo := &fakeEmployeeRepo{
		byToken: map[string]employee.Employee{
			testToken: {ID: 7, Name: "Dina Lestari", Email: "dina@example.com", Status: employee.StatusActive, QRToken: testToken},
		},
	}
	ledger := newFakeLedger()
	svc := NewVerificationService(
		empRepo,
		&fakeLedgerRepo{ledger: ledger},
		&fakeLedgerService{ledger: ledger},
		matcher,
	)
	return svc, empRepo, ledger
}

func TestVerifyScanRoundTrip(t *testing.T) {
	matcher := &fakeMatcher{result: true}
	svc, _, ledger := setupService(matcher)

	req := verification.VerifyRequest{Token: testToken, ImageB64: "aGVsbG8="}

	result, err := svc.VerifyScan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeSuccess, result.Outcome)
	assert.Equal(t, "Dina Lestari checked in", result.Message)
	require.NotNil(t, result.Record)
	assert.Equal(t, string(attendance.StatusCheckedIn), result.Record.Status)

	notes := "left early"
	req.Notes = &notes

	result, err = svc.VerifyScan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeSuccess, result.Outcome)
	assert.Equal(t, "Dina Lestari checked out", result.Message)
	require.NotNil(t, result.Record)
	assert.Equal(t, string(attendance.StatusCheckedOut), result.Record.Status)
	require.NotNil(t, result.Record.Notes)
	assert.Equal(t, "left early", *result.Record.Notes)

	require.Len(t, ledger.closed, 1)
	assert.Empty(t, ledger.open)
	assert.Equal(t, 2, matcher.calls)
}

func TestVerifyScanUnknownToken(t *testing.T) {
	matcher := &fakeMatcher{result: true}
	svc, _, ledger := setupService(matcher)

	req := verification.VerifyRequest{
		Token:    "11111111-2222-3333-4444-555555555555",
		ImageB64: "aGVsbG8=",
	}

	_, err := svc.VerifyScan(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrTokenNotFound)
	assert.Zero(t, matcher.calls)
	assert.Empty(t, ledger.open)
}

func TestVerifyScanInactiveEmployeeLooksUnknown(t *testing.T) {
	matcher := &fakeMatcher{result: true}
	svc, empRepo, _ := setupService(matcher)

	inactiveToken := "99999999-9dad-11d1-80b4-00c04fd430c8"
	empRepo.byToken[inactiveToken] = employee.Employee{
		ID: 8, Name: "Former Staff", Status: employee.StatusInactive, QRToken: inactiveToken,
	}

	_, err := svc.VerifyScan(context.Background(), verification.VerifyRequest{
		Token:    inactiveToken,
		ImageB64: "aGVsbG8=",
	})
	assert.ErrorIs(t, err, employee.ErrTokenNotFound)
}

func TestVerifyScanMalformedTokenSkipsLookup(t *testing.T) {
	matcher := &fakeMatcher{result: true}
	svc, empRepo, _ := setupService(matcher)

	_, err := svc.VerifyScan(context.Background(), verification.VerifyRequest{
		Token:    "not-a-token'; DROP TABLE employees;--",
		ImageB64: "aGVsbG8=",
	})

	assert.ErrorIs(t, err, employee.ErrTokenNotFound)
	assert.Zero(t, empRepo.lookups)
	assert.Zero(t, matcher.calls)
}

// Malformed and unknown tokens must be indistinguishable: same sentinel error,
// on every entry point.
func TestMalformedAndUnknownTokensLookAlike(t *testing.T) {
	svc, _, _ := setupService(&fakeMatcher{result: true})
	ctx := context.Background()

	malformed := verification.VerifyRequest{Token: "not-a-token", ImageB64: "aGVsbG8="}
	unknown := verification.VerifyRequest{Token: "11111111-2222-3333-4444-555555555555", ImageB64: "aGVsbG8="}

	_, errMalformed := svc.VerifyCheckIn(ctx, malformed)
	_, errUnknown := svc.VerifyCheckIn(ctx, unknown)
	assert.ErrorIs(t, errMalformed, employee.ErrTokenNotFound)
	assert.ErrorIs(t, errUnknown, employee.ErrTokenNotFound)

	_, errMalformed = svc.VerifyCheckOut(ctx, malformed)
	_, errUnknown = svc.VerifyCheckOut(ctx, unknown)
	assert.ErrorIs(t, errMalformed, employee.ErrTokenNotFound)
	assert.ErrorIs(t, errUnknown, employee.ErrTokenNotFound)

	_, errMalformed = svc.VerifyScan(ctx, malformed)
	_, errUnknown = svc.VerifyScan(ctx, unknown)
	assert.ErrorIs(t, errMalformed, employee.ErrTokenNotFound)
	assert.ErrorIs(t, errUnknown, employee.ErrTokenNotFound)
}

func TestVerifyScanMissingImage(t *testing.T) {
	svc, _, _ := setupService(&fakeMatcher{result: true})

	_, err := svc.VerifyScan(context.Background(), verification.VerifyRequest{Token: testToken})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "image_b64", verrs[0].Field)
}

func TestVerifyScanMatcherUnavailableThenRetry(t *testing.T) {
	matcher := &fakeMatcher{err: facematch.ErrUnavailable}
	svc, _, ledger := setupService(matcher)

	req := verification.VerifyRequest{Token: testToken, ImageB64: "aGVsbG8="}

	_, err := svc.VerifyScan(context.Background(), req)
	assert.ErrorIs(t, err, verification.ErrFaceServiceUnavailable)
	assert.Empty(t, ledger.open)

	// The matcher recovers and the same scan is retried. Exactly one open
	// record must come out of the pair of attempts.
	matcher.err = nil
	matcher.result = true

	result, err := svc.VerifyScan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeSuccess, result.Outcome)
	assert.Len(t, ledger.open, 1)
}

func TestVerifyScanFaceRejected(t *testing.T) {
	matcher := &fakeMatcher{result: false}
	svc, _, ledger := setupService(matcher)

	_, err := svc.VerifyScan(context.Background(), verification.VerifyRequest{
		Token:    testToken,
		ImageB64: "aGVsbG8=",
	})

	assert.ErrorIs(t, err, verification.ErrFaceRejected)
	assert.Empty(t, ledger.open)
	assert.Empty(t, ledger.closed)
}

func TestVerifyCheckInWithoutImageSkipsMatcher(t *testing.T) {
	matcher := &fakeMatcher{result: false}
	svc, _, ledger := setupService(matcher)

	result, err := svc.VerifyCheckIn(context.Background(), verification.VerifyRequest{Token: testToken})
	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeSuccess, result.Outcome)
	assert.Zero(t, matcher.calls)
	assert.Len(t, ledger.open, 1)
}

func TestVerifyCheckInTwiceFails(t *testing.T) {
	svc, _, _ := setupService(&fakeMatcher{result: true})

	req := verification.VerifyRequest{Token: testToken}

	_, err := svc.VerifyCheckIn(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.VerifyCheckIn(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestVerifyCheckOutWithoutOpenRecord(t *testing.T) {
	svc, _, _ := setupService(&fakeMatcher{result: true})

	_, err := svc.VerifyCheckOut(context.Background(), verification.VerifyRequest{Token: testToken})
	assert.ErrorIs(t, err, attendance.ErrNoOpenCheckIn)
}

func TestVerifyCheckOutAfterClosedCycleFails(t *testing.T) {
	svc, _, _ := setupService(&fakeMatcher{result: true})

	req := verification.VerifyRequest{Token: testToken}

	_, err := svc.VerifyCheckIn(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.VerifyCheckOut(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.VerifyCheckOut(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrNoOpenCheckIn)

	// A fresh cycle can start after the previous one closed.
	result, err := svc.VerifyCheckIn(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeSuccess, result.Outcome)
}

func TestVerifyCheckInUnexpectedMatcherError(t *testing.T) {
	boom := errors.New("boom")
	matcher := &fakeMatcher{err: boom}
	svc, _, ledger := setupService(matcher)

	_, err := svc.VerifyCheckIn(context.Background(), verification.VerifyRequest{
		Token:    testToken,
		ImageB64: "aGVsbG8=",
	})

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, verification.ErrFaceServiceUnavailable)
	assert.Empty(t, ledger.open)
}

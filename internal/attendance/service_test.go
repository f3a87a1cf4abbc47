package attendance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structhr/structhr/internal/employee"
	"github.com/structhr/structhr/internal/errors"
	"github.com/structhr/structhr/internal/eventstore"
	"github.com/structhr/structhr/internal/storage"
)

type fixture struct {
	svc       *Service
	employees *employee.Service
	events    eventstore.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	events := eventstore.NewSQLiteStore(db)
	empRepo := employee.NewRepository(db)
	empSvc := employee.NewService(empRepo, events, nil)
	svc := NewService(NewRepository(db), empRepo, empSvc, events, nil)
	return &fixture{svc: svc, employees: empSvc, events: events}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func (f *fixture) createEmployee(t *testing.T, name, joining, today string) *employee.Employee {
	t.Helper()
	e, err := f.employees.Create(t.Context(), employee.CreateInput{
		Name:        name,
		JoiningDate: day(t, joining),
	}, day(t, today))
	require.NoError(t, err)
	return e
}

func TestRowsRejectsMismatchedDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Rows(t.Context(), day(t, "2025-12-02"), day(t, "2025-12-01"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestRowsDefaultsToPresent(t *testing.T) {
	f := newFixture(t)
	today := day(t, "2025-12-02")
	f.createEmployee(t, "Ada", "2025-01-01", "2025-12-02")

	rows, err := f.svc.Rows(t.Context(), today, today)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, StatusPresent, rows[0].Status)
	assert.Equal(t, "EMP01", rows[0].EmpCode)
}

func TestRowsExcludesNonActive(t *testing.T) {
	f := newFixture(t)
	today := day(t, "2025-12-02")
	f.createEmployee(t, "Ada", "2025-01-01", "2025-12-02")
	// Joins in the future, stays Inactive for this today
	f.createEmployee(t, "Grace", "2026-06-01", "2025-12-02")

	rows, err := f.svc.Rows(t.Context(), today, today)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRowsRefreshesStatusesFirst(t *testing.T) {
	f := newFixture(t)
	// Inactive at creation, but the joining date arrives with this today,
	// so the refresh inside Rows activates them.
	f.createEmployee(t, "Grace", "2025-12-02", "2025-12-01")

	today := day(t, "2025-12-02")
	rows, err := f.svc.Rows(t.Context(), today, today)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSaveAndReadBack(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	today := day(t, "2025-12-02")
	e := f.createEmployee(t, "Ada", "2025-01-01", "2025-12-02")

	count, err := f.svc.Save(ctx, []Item{
		{EmployeeID: e.ID, AttendanceDate: today, Status: StatusPaidLeave},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rows, err := f.svc.Rows(ctx, today, today)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, StatusPaidLeave, rows[0].Status)
}

func TestSaveUpsertsLastWriteWins(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	today := day(t, "2025-12-02")
	e := f.createEmployee(t, "Ada", "2025-01-01", "2025-12-02")

	_, err := f.svc.Save(ctx, []Item{{EmployeeID: e.ID, AttendanceDate: today, Status: StatusPaidLeave}})
	require.NoError(t, err)
	_, err = f.svc.Save(ctx, []Item{{EmployeeID: e.ID, AttendanceDate: today, Status: StatusUnpaidLeave}})
	require.NoError(t, err)

	rows, err := f.svc.Rows(ctx, today, today)
	require.NoError(t, err)
	assert.Equal(t, StatusUnpaidLeave, rows[0].Status)
}

func TestSaveRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	e := f.createEmployee(t, "Ada", "2025-01-01", "2025-12-02")

	_, err := f.svc.Save(t.Context(), []Item{
		{EmployeeID: e.ID, AttendanceDate: day(t, "2025-12-02"), Status: Status("Golfing")},
	})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestSaveRecordsEvent(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	e := f.createEmployee(t, "Ada", "2025-01-01", "2025-12-02")

	_, err := f.svc.Save(ctx, []Item{
		{EmployeeID: e.ID, AttendanceDate: day(t, "2025-12-02"), Status: StatusPresent},
	})
	require.NoError(t, err)

	events, err := f.events.GetByStreamID(ctx, eventstore.StreamSystem)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, eventstore.TypeAttendanceSaved, events[0].Type())
}

func TestSaveRecordsPerDateCounts(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	e := f.createEmployee(t, "Ada", "2025-01-01", "2025-12-02")
	e2 := f.createEmployee(t, "Ben", "2025-01-01", "2025-12-02")

	_, err := f.svc.Save(ctx, []Item{
		{EmployeeID: e.ID, AttendanceDate: day(t, "2025-12-01"), Status: StatusPresent},
		{EmployeeID: e2.ID, AttendanceDate: day(t, "2025-12-01"), Status: StatusPaidLeave},
		{EmployeeID: e.ID, AttendanceDate: day(t, "2025-12-02"), Status: StatusPresent},
	})
	require.NoError(t, err)

	events, err := f.events.GetByStreamID(ctx, eventstore.StreamSystem)
	require.NoError(t, err)
	require.Len(t, events, 1)

	var payload eventstore.AttendanceSavedPayload
	require.NoError(t, json.Unmarshal(events[0].Payload(), &payload))
	assert.Equal(t, 3, payload.Total)
	assert.Equal(t, map[string]int{"2025-12-01": 2, "2025-12-02": 1}, payload.Counts)
}

func TestSummaryMarksDays(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	e := f.createEmployee(t, "Ada", "2025-01-01", "2025-12-02")

	_, err := f.svc.Save(ctx, []Item{
		{EmployeeID: e.ID, AttendanceDate: day(t, "2025-12-02"), Status: StatusPresent},
	})
	require.NoError(t, err)

	summary, err := f.svc.Summary(ctx, "2025-12")
	require.NoError(t, err)
	assert.Equal(t, "2025-12", summary.Month)
	require.Len(t, summary.Days, 31)

	assert.False(t, summary.Days[0].Marked) // 2025-12-01
	assert.True(t, summary.Days[1].Marked)  // 2025-12-02
}

func TestSummaryRejectsBadMonth(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Summary(t.Context(), "December 2025")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

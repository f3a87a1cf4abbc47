package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/structhr/structhr/internal/server/responses"
)

func TestHandleAttendance_RowsDefaultPresent(t *testing.T) {
	fx := newFixture(t)
	postToday(t, fx, "2025-03-10")
	eh := NewEmployeeHandlers(fx.employees, fx.today)
	createEmployee(t, eh, `{"name":"Asha","joining_date":"2025-03-01"}`)

	h := NewAttendanceHandlers(fx.attendance)
	rec := httptest.NewRecorder()
	h.HandleAttendance(rec, httptest.NewRequest(http.MethodGet,
		"/attendance?today=2025-03-10&attendance_date=2025-03-10", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rows []responses.AttendanceRowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	require.Equal(t, "EMP01", rows[0].EmpCode)
	require.Equal(t, "Present", rows[0].Status)
}

func TestHandleAttendance_RowsRejectDateMismatch(t *testing.T) {
	fx := newFixture(t)
	h := NewAttendanceHandlers(fx.attendance)

	rec := httptest.NewRecorder()
	h.HandleAttendance(rec, httptest.NewRequest(http.MethodGet,
		"/attendance?today=2025-03-10&attendance_date=2025-03-09", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAttendance_RowsRequireQueryParams(t *testing.T) {
	fx := newFixture(t)
	h := NewAttendanceHandlers(fx.attendance)

	rec := httptest.NewRecorder()
	h.HandleAttendance(rec, httptest.NewRequest(http.MethodGet, "/attendance", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAttendance_SaveAndReadBack(t *testing.T) {
	fx := newFixture(t)
	postToday(t, fx, "2025-03-10")
	eh := NewEmployeeHandlers(fx.employees, fx.today)
	created := createEmployee(t, eh, `{"name":"Asha","joining_date":"2025-03-01"}`)

	h := NewAttendanceHandlers(fx.attendance)
	rec := httptest.NewRecorder()
	body := `{"items":[{"employee_id":` + jsonID(created.ID) + `,"attendance_date":"2025-03-10","status":"PaidLeave"}]}`
	h.HandleAttendance(rec, httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved responses.AttendanceSaveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.Equal(t, 1, saved.Updated)

	rec = httptest.NewRecorder()
	h.HandleAttendance(rec, httptest.NewRequest(http.MethodGet,
		"/attendance?today=2025-03-10&attendance_date=2025-03-10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []responses.AttendanceRowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	require.Equal(t, "PaidLeave", rows[0].Status)
}

func TestHandleAttendance_SaveRejectsUnknownStatus(t *testing.T) {
	fx := newFixture(t)
	h := NewAttendanceHandlers(fx.attendance)

	rec := httptest.NewRecorder()
	body := `{"items":[{"employee_id":1,"attendance_date":"2025-03-10","status":"Absent"}]}`
	h.HandleAttendance(rec, httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSummary_MarksSavedDays(t *testing.T) {
	fx := newFixture(t)
	postToday(t, fx, "2025-03-10")
	eh := NewEmployeeHandlers(fx.employees, fx.today)
	created := createEmployee(t, eh, `{"name":"Asha","joining_date":"2025-03-01"}`)

	h := NewAttendanceHandlers(fx.attendance)
	rec := httptest.NewRecorder()
	body := `{"items":[{"employee_id":` + jsonID(created.ID) + `,"attendance_date":"2025-03-10","status":"Present"}]}`
	h.HandleAttendance(rec, httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleSummary(rec, httptest.NewRequest(http.MethodGet, "/attendance/summary?month=2025-03", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary responses.MonthSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, "2025-03", summary.Month)
	require.Len(t, summary.Days, 31)
	for _, d := range summary.Days {
		if d.Date == "2025-03-10" {
			require.True(t, d.Marked)
		} else {
			require.False(t, d.Marked, d.Date)
		}
	}
}

func TestHandleSummary_RejectsBadMonth(t *testing.T) {
	fx := newFixture(t)
	h := NewAttendanceHandlers(fx.attendance)

	rec := httptest.NewRecorder()
	h.HandleSummary(rec, httptest.NewRequest(http.MethodGet, "/attendance/summary?month=March", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

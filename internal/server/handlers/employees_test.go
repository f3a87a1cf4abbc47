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

func postToday(t *testing.T, fx *fixture, date string) {
	t.Helper()
	h := NewSystemHandlers(fx.today, fx.todayStore)
	rec := httptest.NewRecorder()
	h.HandleToday(rec, httptest.NewRequest(http.MethodPost, "/system/today",
		strings.NewReader(`{"today":"`+date+`"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
}

func createEmployee(t *testing.T, h *EmployeeHandlers, body string) responses.EmployeeResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	h.HandleEmployees(rec, httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp responses.EmployeeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleEmployees_CreateAssignsCodeAndSalary(t *testing.T) {
	fx := newFixture(t)
	postToday(t, fx, "2025-03-10")
	h := NewEmployeeHandlers(fx.employees, fx.today)

	resp := createEmployee(t, h, `{
		"name": "Asha",
		"joining_date": "2025-03-01",
		"basic_pay_monthly": 1000,
		"transport_monthly": 100,
		"accommodation_monthly": 200,
		"other_monthly": 50
	}`)

	require.Equal(t, "EMP01", resp.EmpCode)
	require.Equal(t, "Active", resp.CurrentStatus)
	require.InDelta(t, 1350.0, resp.TotalSalaryMonthly, 0.001)
}

func TestHandleEmployees_FutureJoinerStartsInactive(t *testing.T) {
	fx := newFixture(t)
	postToday(t, fx, "2025-03-10")
	h := NewEmployeeHandlers(fx.employees, fx.today)

	resp := createEmployee(t, h, `{"name":"Ben","joining_date":"2025-04-01"}`)
	require.Equal(t, "Inactive", resp.CurrentStatus)
}

func TestHandleEmployees_CreateRejectsMissingName(t *testing.T) {
	fx := newFixture(t)
	postToday(t, fx, "2025-03-10")
	h := NewEmployeeHandlers(fx.employees, fx.today)

	rec := httptest.NewRecorder()
	h.HandleEmployees(rec, httptest.NewRequest(http.MethodPost, "/employees",
		strings.NewReader(`{"name":"","joining_date":"2025-03-01"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleEmployees_ListReturnsAll(t *testing.T) {
	fx := newFixture(t)
	postToday(t, fx, "2025-03-10")
	h := NewEmployeeHandlers(fx.employees, fx.today)

	createEmployee(t, h, `{"name":"Zoe","joining_date":"2025-03-01"}`)
	createEmployee(t, h, `{"name":"adam","joining_date":"2025-03-01"}`)

	rec := httptest.NewRecorder()
	h.HandleEmployees(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []responses.EmployeeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	// Name order is case-insensitive.
	require.Equal(t, "adam", resp[0].Name)
	require.Equal(t, "Zoe", resp[1].Name)
}

func TestHandleStatus_ScheduleChange(t *testing.T) {
	fx := newFixture(t)
	postToday(t, fx, "2025-03-10")
	h := NewEmployeeHandlers(fx.employees, fx.today)

	created := createEmployee(t, h, `{"name":"Asha","joining_date":"2025-03-01"}`)

	req := httptest.NewRequest(http.MethodPatch, "/employees/"+created.EmpCode+"/status",
		strings.NewReader(`{"upcoming_status":"Vacation","status_change_date":"2025-03-15"}`))
	req.SetPathValue("emp_code", created.EmpCode)
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp responses.EmployeeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.UpcomingStatus)
	require.Equal(t, "Vacation", *resp.UpcomingStatus)
	require.NotNil(t, resp.StatusChangeDate)
	require.Equal(t, "2025-03-15", *resp.StatusChangeDate)
}

func TestHandleStatus_UnknownEmployee(t *testing.T) {
	fx := newFixture(t)
	h := NewEmployeeHandlers(fx.employees, fx.today)

	req := httptest.NewRequest(http.MethodPatch, "/employees/EMP99/status",
		strings.NewReader(`{"upcoming_status":"Vacation"}`))
	req.SetPathValue("emp_code", "EMP99")
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStatus_RejectsUnknownStatus(t *testing.T) {
	fx := newFixture(t)
	postToday(t, fx, "2025-03-10")
	h := NewEmployeeHandlers(fx.employees, fx.today)

	created := createEmployee(t, h, `{"name":"Asha","joining_date":"2025-03-01"}`)

	req := httptest.NewRequest(http.MethodPatch, "/employees/"+created.EmpCode+"/status",
		strings.NewReader(`{"upcoming_status":"Sabbatical"}`))
	req.SetPathValue("emp_code", created.EmpCode)
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

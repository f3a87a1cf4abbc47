package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/structhr/structhr/internal/employee"
	"github.com/structhr/structhr/internal/errors"
	"github.com/structhr/structhr/internal/server/responses"
	"github.com/structhr/structhr/internal/today"
)

// EmployeeHandlers serves the employee roster endpoints.
type EmployeeHandlers struct {
	employees    *employee.Service
	today        *today.Service
	errorAdapter *errors.HTTPErrorAdapter
}

// NewEmployeeHandlers creates a new employee handlers instance.
func NewEmployeeHandlers(employees *employee.Service, todaySvc *today.Service) *EmployeeHandlers {
	return &EmployeeHandlers{
		employees:    employees,
		today:        todaySvc,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// employeeCreateRequest is the POST /employees body.
type employeeCreateRequest struct {
	Name        string `json:"name"`
	JoiningDate string `json:"joining_date"`

	BasicPayMonthly      float64 `json:"basic_pay_monthly"`
	TransportMonthly     float64 `json:"transport_monthly"`
	AccommodationMonthly float64 `json:"accommodation_monthly"`
	OtherMonthly         float64 `json:"other_monthly"`
	PaidLeaveDaily       float64 `json:"paid_leave_daily"`
	VacationPayDaily     float64 `json:"vacation_pay_daily"`
}

// employeeStatusRequest is the PATCH /employees/{emp_code}/status body.
type employeeStatusRequest struct {
	UpcomingStatus   *string `json:"upcoming_status"`
	StatusChangeDate *string `json:"status_change_date"`
}

// HandleEmployees dispatches GET and POST for /employees.
func (h *EmployeeHandlers) HandleEmployees(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		err := errors.MethodNotAllowedError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_methods", "GET, POST")
		h.errorAdapter.WriteErrorResponse(w, r, err)
	}
}

func (h *EmployeeHandlers) list(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.List(r.Context())
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	resp := make([]responses.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, toEmployeeResponse(e))
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write employees response"))
	}
}

func (h *EmployeeHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req employeeCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.ValidationError("invalid request body").WithContext("cause", err.Error()))
		return
	}

	joining, err := time.Parse(today.DateFormat, req.JoiningDate)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.ValidationError("joining_date must be formatted YYYY-MM-DD").
				WithContext("joining_date", req.JoiningDate))
		return
	}

	created, err := h.employees.Create(r.Context(), employee.CreateInput{
		Name:                 req.Name,
		JoiningDate:          joining,
		BasicPayMonthly:      req.BasicPayMonthly,
		TransportMonthly:     req.TransportMonthly,
		AccommodationMonthly: req.AccommodationMonthly,
		OtherMonthly:         req.OtherMonthly,
		PaidLeaveDaily:       req.PaidLeaveDaily,
		VacationPayDaily:     req.VacationPayDaily,
	}, h.resolveToday(r.Context()))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, toEmployeeResponse(created)); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write employee response"))
	}
}

// HandleStatus serves PATCH /employees/{emp_code}/status.
func (h *EmployeeHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		err := errors.MethodNotAllowedError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "PATCH")
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	code := r.PathValue("emp_code")

	var req employeeStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.ValidationError("invalid request body").WithContext("cause", err.Error()))
		return
	}

	var upcoming *employee.Status
	if req.UpcomingStatus != nil {
		s := employee.Status(*req.UpcomingStatus)
		upcoming = &s
	}
	var changeDate *time.Time
	if req.StatusChangeDate != nil {
		d, err := time.Parse(today.DateFormat, *req.StatusChangeDate)
		if err != nil {
			h.errorAdapter.WriteErrorResponse(w, r,
				errors.ValidationError("status_change_date must be formatted YYYY-MM-DD").
					WithContext("status_change_date", *req.StatusChangeDate))
			return
		}
		changeDate = &d
	}

	updated, err := h.employees.UpdateStatus(r.Context(), code, upcoming, changeDate)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, toEmployeeResponse(updated)); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write employee response"))
	}
}

// resolveToday uses the locked today date when set, falling back to the
// wall clock so employees can be created before the date is first locked.
func (h *EmployeeHandlers) resolveToday(ctx context.Context) time.Time {
	if h.today != nil {
		if current, ok, err := h.today.Current(ctx); err == nil && ok {
			return current
		}
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func toEmployeeResponse(e *employee.Employee) responses.EmployeeResponse {
	resp := responses.EmployeeResponse{
		ID:                   e.ID,
		EmpCode:              e.EmpCode,
		Name:                 e.Name,
		JoiningDate:          e.JoiningDate.Format(today.DateFormat),
		CurrentStatus:        string(e.CurrentStatus),
		BasicPayMonthly:      e.BasicPayMonthly,
		TransportMonthly:     e.TransportMonthly,
		AccommodationMonthly: e.AccommodationMonthly,
		OtherMonthly:         e.OtherMonthly,
		PaidLeaveDaily:       e.PaidLeaveDaily,
		VacationPayDaily:     e.VacationPayDaily,
		TotalSalaryMonthly:   e.TotalSalaryMonthly,
	}
	if e.StatusChangeDate != nil {
		d := e.StatusChangeDate.Format(today.DateFormat)
		resp.StatusChangeDate = &d
	}
	if e.UpcomingStatus != nil {
		s := string(*e.UpcomingStatus)
		resp.UpcomingStatus = &s
	}
	return resp
}

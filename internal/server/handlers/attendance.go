package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/structhr/structhr/internal/attendance"
	"github.com/structhr/structhr/internal/errors"
	"github.com/structhr/structhr/internal/server/responses"
	"github.com/structhr/structhr/internal/today"
)

// AttendanceHandlers serves the attendance endpoints.
type AttendanceHandlers struct {
	attendance   *attendance.Service
	errorAdapter *errors.HTTPErrorAdapter
}

// NewAttendanceHandlers creates a new attendance handlers instance.
func NewAttendanceHandlers(svc *attendance.Service) *AttendanceHandlers {
	return &AttendanceHandlers{
		attendance:   svc,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// attendanceItemRequest is one row in the POST /attendance body.
type attendanceItemRequest struct {
	EmployeeID     int64  `json:"employee_id"`
	AttendanceDate string `json:"attendance_date"`
	Status         string `json:"status"`
}

// attendanceSaveRequest wraps the bulk save payload.
type attendanceSaveRequest struct {
	Items []attendanceItemRequest `json:"items"`
}

// HandleAttendance dispatches GET and POST for /attendance.
func (h *AttendanceHandlers) HandleAttendance(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.rows(w, r)
	case http.MethodPost:
		h.save(w, r)
	default:
		err := errors.MethodNotAllowedError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_methods", "GET, POST")
		h.errorAdapter.WriteErrorResponse(w, r, err)
	}
}

func (h *AttendanceHandlers) rows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	todayDate, err := h.parseDateParam(q.Get("today"), "today")
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	attendanceDate, err := h.parseDateParam(q.Get("attendance_date"), "attendance_date")
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	rows, rerr := h.attendance.Rows(r.Context(), todayDate, attendanceDate)
	if rerr != nil {
		h.errorAdapter.WriteErrorResponse(w, r, rerr)
		return
	}

	resp := make([]responses.AttendanceRowResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, responses.AttendanceRowResponse{
			EmployeeID:     row.EmployeeID,
			EmpCode:        row.EmpCode,
			Name:           row.Name,
			AttendanceDate: attendance.FormatDate(row.AttendanceDate),
			Status:         string(row.Status),
		})
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write attendance response"))
	}
}

func (h *AttendanceHandlers) save(w http.ResponseWriter, r *http.Request) {
	var req attendanceSaveRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.ValidationError("invalid request body").WithContext("cause", err.Error()))
		return
	}

	items := make([]attendance.Item, 0, len(req.Items))
	for _, item := range req.Items {
		d, err := attendance.ParseDate(item.AttendanceDate)
		if err != nil {
			h.errorAdapter.WriteErrorResponse(w, r,
				errors.ValidationError("attendance_date must be formatted YYYY-MM-DD").
					WithContext("attendance_date", item.AttendanceDate))
			return
		}
		items = append(items, attendance.Item{
			EmployeeID:     item.EmployeeID,
			AttendanceDate: d,
			Status:         attendance.Status(item.Status),
		})
	}

	count, err := h.attendance.Save(r.Context(), items)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, responses.AttendanceSaveResponse{Updated: count}); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write save response"))
	}
}

// HandleSummary serves GET /attendance/summary?month=YYYY-MM.
func (h *AttendanceHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := errors.MethodNotAllowedError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET")
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	summary, err := h.attendance.Summary(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	resp := responses.MonthSummaryResponse{Month: summary.Month}
	for _, d := range summary.Days {
		resp.Days = append(resp.Days, responses.DaySummaryResponse{
			Date:   attendance.FormatDate(d.Date),
			Marked: d.Marked,
		})
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write summary response"))
	}
}

func (h *AttendanceHandlers) parseDateParam(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.ValidationError("missing required query parameter").
			WithContext("parameter", name)
	}
	d, err := time.Parse(today.DateFormat, value)
	if err != nil {
		return time.Time{}, errors.ValidationError("query parameter must be formatted YYYY-MM-DD").
			WithContext("parameter", name).
			WithContext("value", value)
	}
	return d, nil
}

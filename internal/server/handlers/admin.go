package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/structhr/structhr/internal/attendance"
	"github.com/structhr/structhr/internal/employee"
	"github.com/structhr/structhr/internal/errors"
	"github.com/structhr/structhr/internal/logfields"
	"github.com/structhr/structhr/internal/server/responses"
	"github.com/structhr/structhr/internal/version"
)

// Runtime exposes the daemon state the admin handlers report on.
type Runtime interface {
	GetStatus() string
	GetStartTime() time.Time
}

// AdminHandlers serves reset, health, and status endpoints.
type AdminHandlers struct {
	runtime      Runtime
	employees    *employee.Repository
	attendance   *attendance.Repository
	errorAdapter *errors.HTTPErrorAdapter
}

// NewAdminHandlers creates a new admin handlers instance.
func NewAdminHandlers(runtime Runtime, employees *employee.Repository, att *attendance.Repository) *AdminHandlers {
	return &AdminHandlers{
		runtime:      runtime,
		employees:    employees,
		attendance:   att,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleReset wipes all employee and attendance data. There is no
// password; the frontend confirms before calling.
func (h *AdminHandlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		err := errors.MethodNotAllowedError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "POST")
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	ctx := r.Context()

	// Attendance references employees; delete it first.
	if err := h.attendance.DeleteAll(ctx); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryStorage, "Reset failed"))
		return
	}
	if err := h.employees.DeleteAll(ctx); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryStorage, "Reset failed"))
		return
	}

	slog.Warn("Database reset", logfields.RemoteAddr(r.RemoteAddr))
	if err := writeJSON(w, http.StatusOK, responses.ResetResponse{
		Message: "Database reset successfully.",
	}); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write reset response"))
	}
}

// HandleHealth serves the health check endpoint.
func (h *AdminHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := errors.MethodNotAllowedError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET")
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	resp := responses.HealthResponse{
		Status:    h.runtime.GetStatus(),
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.runtime.GetStartTime()).Seconds(),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write health response"))
	}
}

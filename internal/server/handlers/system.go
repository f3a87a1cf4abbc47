package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/structhr/structhr/internal/errors"
	"github.com/structhr/structhr/internal/server/responses"
	"github.com/structhr/structhr/internal/today"
	"github.com/structhr/structhr/internal/widget"
)

// SystemHandlers serves the locked today date and the server-rendered
// today bar fragment.
type SystemHandlers struct {
	today        *today.Service
	store        *today.Store
	errorAdapter *errors.HTTPErrorAdapter
}

// NewSystemHandlers creates a new system handlers instance.
func NewSystemHandlers(svc *today.Service, store *today.Store) *SystemHandlers {
	return &SystemHandlers{
		today:        svc,
		store:        store,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleRoot responds with the service banner.
func (h *SystemHandlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	_ = writeJSON(w, http.StatusOK, responses.ServiceStatusResponse{
		Message: "Struct HR Attendance API running",
	})
}

// systemTodayRequest is the POST /system/today body.
type systemTodayRequest struct {
	Today string `json:"today"`
}

// HandleToday dispatches GET and POST for /system/today.
func (h *SystemHandlers) HandleToday(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getToday(w, r)
	case http.MethodPost:
		h.setToday(w, r)
	default:
		err := errors.MethodNotAllowedError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_methods", "GET, POST")
		h.errorAdapter.WriteErrorResponse(w, r, err)
	}
}

// getToday returns the locked today date, null when unset.
func (h *SystemHandlers) getToday(w http.ResponseWriter, r *http.Request) {
	current, ok, err := h.today.Current(r.Context())
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	resp := responses.SystemTodayResponse{}
	if ok {
		formatted := current.Format(today.DateFormat)
		resp.Today = &formatted
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write today response"))
	}
}

// setToday updates the locked today date; moving backwards is rejected.
func (h *SystemHandlers) setToday(w http.ResponseWriter, r *http.Request) {
	var req systemTodayRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.ValidationError("invalid request body").WithContext("cause", err.Error()))
		return
	}

	newToday, err := time.Parse(today.DateFormat, req.Today)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.ValidationError("today must be formatted YYYY-MM-DD").WithContext("today", req.Today))
		return
	}

	if err := h.today.Set(r.Context(), newToday); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	formatted := newToday.Format(today.DateFormat)
	if err := writeJSON(w, http.StatusOK, responses.SystemTodayResponse{Today: &formatted}); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write today response"))
	}
}

// todayBarShell is the document the fragment handler mounts into.
const todayBarShell = `<div id="today-bar"></div>`

// HandleTodayBar serves the rendered today bar fragment, pre-populated
// with the current stored value.
func (h *SystemHandlers) HandleTodayBar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := errors.MethodNotAllowedError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET")
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	doc, err := widget.Parse(strings.NewReader(todayBarShell))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to build today bar"))
		return
	}

	bar := widget.NewTodayBar(h.store, today.NewNotifier())
	if _, err := bar.Mount(r.Context(), doc); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to mount today bar"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := widget.Render(w, doc); err != nil {
		slog.Error("failed rendering today bar", "error", err)
	}
}

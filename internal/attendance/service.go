package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/structhr/structhr/internal/employee"
	"github.com/structhr/structhr/internal/errors"
	"github.com/structhr/structhr/internal/eventstore"
	"github.com/structhr/structhr/internal/logfields"
	"github.com/structhr/structhr/internal/metrics"
)

// Refresher applies employee status transitions before a sheet is built.
type Refresher interface {
	Refresh(ctx context.Context, today time.Time) (int, error)
}

// ActiveLister returns employees whose attendance is tracked.
type ActiveLister interface {
	ListByStatus(ctx context.Context, status employee.Status) ([]*employee.Employee, error)
}

// Service builds marking sheets and saves markings.
type Service struct {
	repo      *Repository
	employees ActiveLister
	refresher Refresher
	events    eventstore.Store
	recorder  metrics.Recorder
}

// NewService wires a Service. events and recorder may be nil.
func NewService(repo *Repository, employees ActiveLister, refresher Refresher, events eventstore.Store, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Service{
		repo:      repo,
		employees: employees,
		refresher: refresher,
		events:    events,
		recorder:  recorder,
	}
}

// Rows builds the marking sheet for attendanceDate. Attendance can only be
// taken for the locked today date; other dates are rejected. Employee
// statuses are refreshed first, then one row per Active employee is
// returned, defaulting to Present when the day is unmarked.
func (s *Service) Rows(ctx context.Context, today, attendanceDate time.Time) ([]Row, error) {
	if !attendanceDate.Equal(today) {
		return nil, errors.ValidationError("Attendance date must be equal to today.").
			WithContext("today", today.Format(dateFormat)).
			WithContext("attendance_date", attendanceDate.Format(dateFormat))
	}

	if s.refresher != nil {
		if _, err := s.refresher.Refresh(ctx, today); err != nil {
			return nil, err
		}
	}

	active, err := s.employees.ListByStatus(ctx, employee.StatusActive)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "failed to list active employees")
	}

	rows := make([]Row, 0, len(active))
	for _, emp := range active {
		status, marked, err := s.repo.Get(ctx, emp.ID, attendanceDate)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryStorage, "failed to read attendance")
		}
		if !marked {
			status = StatusPresent
		}
		rows = append(rows, Row{
			EmployeeID:     emp.ID,
			EmpCode:        emp.EmpCode,
			Name:           emp.Name,
			AttendanceDate: attendanceDate,
			Status:         status,
		})
	}
	return rows, nil
}

// Save upserts the given markings and returns the number written.
func (s *Service) Save(ctx context.Context, items []Item) (int, error) {
	for _, item := range items {
		if !ValidStatus(item.Status) {
			return 0, errors.ValidationError("unknown attendance status").
				WithContext("status", string(item.Status))
		}
	}

	for _, item := range items {
		if err := s.repo.Upsert(ctx, item); err != nil {
			return 0, errors.WrapError(err, errors.CategoryStorage, "failed to save attendance")
		}
	}

	if s.events != nil && len(items) > 0 {
		counts := make(map[string]int, len(items))
		for _, item := range items {
			counts[item.AttendanceDate.Format(dateFormat)]++
		}
		err := eventstore.AppendAttendanceSaved(ctx, s.events, eventstore.AttendanceSavedPayload{
			Counts: counts,
			Total:  len(items),
		})
		if err != nil {
			slog.Error("Failed to record AttendanceSaved event", logfields.Error(err))
		}
	}

	s.recorder.IncAttendanceSaved(len(items))
	slog.Info("Attendance saved", slog.Int("rows", len(items)))
	return len(items), nil
}

// Summary reports, for every day of month (YYYY-MM), whether any
// attendance row exists.
func (s *Service) Summary(ctx context.Context, month string) (*MonthSummary, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, errors.ValidationError("month must be formatted YYYY-MM").
			WithContext("month", month)
	}
	last := first.AddDate(0, 1, -1)

	marked, err := s.repo.MarkedDates(ctx, first, last)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "failed to query marked dates")
	}

	summary := &MonthSummary{Month: month}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		summary.Days = append(summary.Days, DaySummary{
			Date:   d,
			Marked: marked[d.Format(dateFormat)],
		})
	}
	return summary, nil
}

// FormatDate renders a date in the wire format used by the API.
func FormatDate(d time.Time) string {
	return d.Format(dateFormat)
}

// ParseDate parses a wire-format date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

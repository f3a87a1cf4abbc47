package employee

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/structhr/structhr/internal/errors"
	"github.com/structhr/structhr/internal/eventstore"
	"github.com/structhr/structhr/internal/logfields"
	"github.com/structhr/structhr/internal/metrics"
)

// Service applies roster business rules over the Repository.
type Service struct {
	repo     *Repository
	events   eventstore.Store
	recorder metrics.Recorder
	collator *collate.Collator
}

// NewService wires a Service. events and recorder may be nil.
func NewService(repo *Repository, events eventstore.Store, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Service{
		repo:     repo,
		events:   events,
		recorder: recorder,
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// Create adds an employee. The code is generated (EMP01, ...), the monthly
// total is computed server-side, and the initial status follows the joining
// date: Active when it has arrived relative to today, Inactive otherwise.
func (s *Service) Create(ctx context.Context, in CreateInput, today time.Time) (*Employee, error) {
	if in.Name == "" {
		return nil, errors.ValidationError("employee name is required")
	}
	if in.JoiningDate.IsZero() {
		return nil, errors.ValidationError("joining date is required")
	}

	code, err := s.repo.NextCode(ctx)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "failed to generate employee code")
	}

	status := StatusActive
	if in.JoiningDate.After(today) {
		status = StatusInactive
	}

	e := &Employee{
		EmpCode:              code,
		Name:                 in.Name,
		JoiningDate:          in.JoiningDate,
		CurrentStatus:        status,
		BasicPayMonthly:      in.BasicPayMonthly,
		TransportMonthly:     in.TransportMonthly,
		AccommodationMonthly: in.AccommodationMonthly,
		OtherMonthly:         in.OtherMonthly,
		PaidLeaveDaily:       in.PaidLeaveDaily,
		VacationPayDaily:     in.VacationPayDaily,
		TotalSalaryMonthly:   in.BasicPayMonthly + in.TransportMonthly + in.AccommodationMonthly + in.OtherMonthly,
	}

	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "failed to insert employee")
	}

	if s.events != nil {
		err := eventstore.AppendEmployeeCreated(ctx, s.events, eventstore.EmployeeCreatedPayload{
			EmpCode:       e.EmpCode,
			Name:          e.Name,
			JoiningDate:   e.JoiningDate.Format(dateFormat),
			InitialStatus: string(e.CurrentStatus),
		})
		if err != nil {
			slog.Error("Failed to record EmployeeCreated event", logfields.Error(err))
		}
	}

	s.recorder.IncEmployeeCreated()
	slog.Info("Employee created", logfields.EmpCode(e.EmpCode), logfields.Status(string(e.CurrentStatus)))
	return e, nil
}

// List returns all employees collated by name.
func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "failed to list employees")
	}
	sort.SliceStable(employees, func(i, j int) bool {
		return s.collator.CompareString(employees[i].Name, employees[j].Name) < 0
	})
	return employees, nil
}

// UpdateStatus schedules a future status change for the employee with the
// given code.
func (s *Service) UpdateStatus(ctx context.Context, code string, upcoming *Status, changeDate *time.Time) (*Employee, error) {
	if upcoming != nil && !ValidStatus(*upcoming) {
		return nil, errors.ValidationError("unknown status").WithContext("status", string(*upcoming))
	}

	e, err := s.repo.GetByCode(ctx, code)
	if err == ErrNotFound {
		return nil, errors.NotFoundError("Employee not found").WithContext("emp_code", code)
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "failed to load employee")
	}

	e.UpcomingStatus = upcoming
	e.StatusChangeDate = changeDate

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "failed to update employee")
	}
	return e, nil
}

// Refresh applies status transitions for the given today date:
//
//  1. scheduled changes whose change date equals today move the upcoming
//     status into the current status and clear the future fields;
//  2. Inactive employees whose joining date has arrived become Active.
//
// Returns the number of employees changed.
func (s *Service) Refresh(ctx context.Context, today time.Time) (int, error) {
	start := time.Now()
	changed := 0

	due, err := s.repo.DueStatusChanges(ctx, today)
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryStorage, "failed to query due status changes")
	}
	for _, e := range due {
		from := e.CurrentStatus
		e.CurrentStatus = *e.UpcomingStatus
		e.UpcomingStatus = nil
		e.StatusChangeDate = nil
		if err := s.repo.Update(ctx, e); err != nil {
			return changed, errors.WrapError(err, errors.CategoryStorage, "failed to apply status change")
		}
		s.recordStatusChange(ctx, e, from, today)
		changed++
	}

	joiners, err := s.repo.InactiveJoinedBy(ctx, today)
	if err != nil {
		return changed, errors.WrapError(err, errors.CategoryStorage, "failed to query inactive joiners")
	}
	for _, e := range joiners {
		from := e.CurrentStatus
		e.CurrentStatus = StatusActive
		if err := s.repo.Update(ctx, e); err != nil {
			return changed, errors.WrapError(err, errors.CategoryStorage, "failed to activate employee")
		}
		s.recordStatusChange(ctx, e, from, today)
		changed++
	}

	active, err := s.repo.ListByStatus(ctx, StatusActive)
	if err == nil {
		s.recorder.SetActiveEmployees(len(active))
	}

	s.recorder.ObserveRefreshDuration(time.Since(start))
	if changed > 0 {
		slog.Info("Employee statuses refreshed", slog.Int("changed", changed), logfields.Today(today.Format(dateFormat)))
	}
	return changed, nil
}

func (s *Service) recordStatusChange(ctx context.Context, e *Employee, from Status, today time.Time) {
	if s.events == nil {
		return
	}
	err := eventstore.AppendEmployeeStatusChanged(ctx, s.events, eventstore.EmployeeStatusChangedPayload{
		EmpCode: e.EmpCode,
		From:    string(from),
		To:      string(e.CurrentStatus),
		Date:    today.Format(dateFormat),
	})
	if err != nil {
		slog.Error("Failed to record EmployeeStatusChanged event", logfields.Error(err))
	}
}

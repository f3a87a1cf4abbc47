package today

import (
	"context"
	"log/slog"
	"time"

	"github.com/structhr/structhr/internal/errors"
	"github.com/structhr/structhr/internal/eventstore"
	"github.com/structhr/structhr/internal/logfields"
	"github.com/structhr/structhr/internal/metrics"
)

// DateFormat is the calendar date layout used throughout the service.
const DateFormat = "2006-01-02"

// Broadcaster publishes a change notification to external subscribers.
type Broadcaster interface {
	Publish(ctx context.Context) error
}

// Service applies the business rules on top of the raw Store: the locked
// today date never moves backwards, and every accepted change is recorded
// and broadcast. Malformed stored values are treated as absent here, so
// date logic never sees them.
type Service struct {
	store       *Store
	notifier    *Notifier
	events      eventstore.Store
	broadcaster Broadcaster
	recorder    metrics.Recorder
}

// NewService wires a Service. events, broadcaster and recorder may be nil.
func NewService(store *Store, notifier *Notifier, events eventstore.Store, broadcaster Broadcaster, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Service{
		store:       store,
		notifier:    notifier,
		events:      events,
		broadcaster: broadcaster,
		recorder:    recorder,
	}
}

// Notifier exposes the observer registration API.
func (s *Service) Notifier() *Notifier {
	return s.notifier
}

// Current returns the locked today date, or ok=false when unset or when
// the stored value does not parse as a calendar date.
func (s *Service) Current(ctx context.Context) (time.Time, bool, error) {
	raw, ok, err := s.store.GetToday(ctx)
	if err != nil {
		return time.Time{}, false, errors.WrapError(err, errors.CategoryStorage, "failed to read today")
	}
	if !ok {
		return time.Time{}, false, nil
	}
	d, perr := time.Parse(DateFormat, raw)
	if perr != nil {
		slog.Warn("Stored today value is not a date, treating as absent", logfields.Today(raw))
		return time.Time{}, false, nil
	}
	return d, true, nil
}

// Set updates the locked today date.
//
// Rules (matching the system contract):
//   - unset -> accept any date
//   - moving backwards -> reject
//   - otherwise -> persist, record a TodayChanged event, broadcast
func (s *Service) Set(ctx context.Context, newToday time.Time) error {
	current, ok, err := s.Current(ctx)
	if err != nil {
		return err
	}

	if ok && newToday.Before(current) {
		s.recorder.IncTodayChangeRejected()
		return errors.ValidationError("Today cannot be earlier than existing system date").
			WithContext("existing", current.Format(DateFormat)).
			WithContext("requested", newToday.Format(DateFormat))
	}

	previous := ""
	if ok {
		previous = current.Format(DateFormat)
	}
	value := newToday.Format(DateFormat)

	if err := s.store.SetToday(ctx, value); err != nil {
		return errors.WrapError(err, errors.CategoryStorage, "failed to persist today")
	}

	if s.events != nil {
		if err := eventstore.AppendTodayChanged(ctx, s.events, previous, value); err != nil {
			slog.Error("Failed to record TodayChanged event", logfields.Error(err))
		}
	}

	s.recorder.IncTodayChange()
	s.broadcast(ctx)

	slog.Info("Locked today date updated", logfields.Today(value))
	return nil
}

// broadcast fires the in-process observers and, when configured, the
// external notification. Both are fire-and-forget.
func (s *Service) broadcast(ctx context.Context) {
	if s.notifier != nil {
		s.notifier.Broadcast()
	}
	if s.broadcaster != nil {
		if err := s.broadcaster.Publish(ctx); err != nil {
			slog.Warn("Change notification publish failed", logfields.Error(err))
		}
	}
}

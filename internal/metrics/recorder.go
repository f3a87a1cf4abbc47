package metrics

import "time"

// Recorder defines observability hooks for the HR service. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe on
// the NoopRecorder (allowing optional injection).
type Recorder interface {
	IncTodayChange()
	IncTodayChangeRejected()
	IncEmployeeCreated()
	IncAttendanceSaved(rows int)
	ObserveRequestDuration(path string, d time.Duration)
	ObserveRefreshDuration(d time.Duration)
	SetActiveEmployees(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncTodayChange()                               {}
func (NoopRecorder) IncTodayChangeRejected()                       {}
func (NoopRecorder) IncEmployeeCreated()                           {}
func (NoopRecorder) IncAttendanceSaved(int)                        {}
func (NoopRecorder) ObserveRequestDuration(string, time.Duration)  {}
func (NoopRecorder) ObserveRefreshDuration(time.Duration)          {}
func (NoopRecorder) SetActiveEmployees(int)                        {}

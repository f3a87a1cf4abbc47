package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once                 sync.Once
	todayChanges         prom.Counter
	todayChangesRejected prom.Counter
	employeesCreated     prom.Counter
	attendanceRows       prom.Counter
	requestDuration      *prom.HistogramVec
	refreshDuration      prom.Histogram
	activeEmployees      prom.Gauge
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.todayChanges = prom.NewCounter(prom.CounterOpts{
			Namespace: "structhr",
			Name:      "today_changes_total",
			Help:      "Accepted changes of the locked today date",
		})
		pr.todayChangesRejected = prom.NewCounter(prom.CounterOpts{
			Namespace: "structhr",
			Name:      "today_changes_rejected_total",
			Help:      "Rejected attempts to move the locked today date backwards",
		})
		pr.employeesCreated = prom.NewCounter(prom.CounterOpts{
			Namespace: "structhr",
			Name:      "employees_created_total",
			Help:      "Employees created",
		})
		pr.attendanceRows = prom.NewCounter(prom.CounterOpts{
			Namespace: "structhr",
			Name:      "attendance_rows_saved_total",
			Help:      "Attendance rows upserted",
		})
		pr.requestDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "structhr",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by path",
			Buckets:   prom.DefBuckets,
		}, []string{"path"})
		pr.refreshDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "structhr",
			Name:      "status_refresh_duration_seconds",
			Help:      "Duration of employee status refresh runs",
			Buckets:   prom.DefBuckets,
		})
		pr.activeEmployees = prom.NewGauge(prom.GaugeOpts{
			Namespace: "structhr",
			Name:      "active_employees",
			Help:      "Number of employees currently Active",
		})
		reg.MustRegister(pr.todayChanges, pr.todayChangesRejected, pr.employeesCreated,
			pr.attendanceRows, pr.requestDuration, pr.refreshDuration, pr.activeEmployees)
	})
	return pr
}

func (p *PrometheusRecorder) IncTodayChange() {
	if p == nil || p.todayChanges == nil {
		return
	}
	p.todayChanges.Inc()
}

func (p *PrometheusRecorder) IncTodayChangeRejected() {
	if p == nil || p.todayChangesRejected == nil {
		return
	}
	p.todayChangesRejected.Inc()
}

func (p *PrometheusRecorder) IncEmployeeCreated() {
	if p == nil || p.employeesCreated == nil {
		return
	}
	p.employeesCreated.Inc()
}

func (p *PrometheusRecorder) IncAttendanceSaved(rows int) {
	if p == nil || p.attendanceRows == nil {
		return
	}
	p.attendanceRows.Add(float64(rows))
}

func (p *PrometheusRecorder) ObserveRequestDuration(path string, d time.Duration) {
	if p == nil || p.requestDuration == nil {
		return
	}
	p.requestDuration.WithLabelValues(path).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRefreshDuration(d time.Duration) {
	if p == nil || p.refreshDuration == nil {
		return
	}
	p.refreshDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetActiveEmployees(n int) {
	if p == nil || p.activeEmployees == nil {
		return
	}
	p.activeEmployees.Set(float64(n))
}

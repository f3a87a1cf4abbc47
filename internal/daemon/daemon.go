// Package daemon wires the service stack into a long-running process:
// storage, event recording, the HTTP servers, the refresh scheduler, and
// optional NATS change broadcasting.
package daemon

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/structhr/structhr/internal/attendance"
	"github.com/structhr/structhr/internal/config"
	"github.com/structhr/structhr/internal/employee"
	"github.com/structhr/structhr/internal/eventstore"
	"github.com/structhr/structhr/internal/kv"
	"github.com/structhr/structhr/internal/logfields"
	"github.com/structhr/structhr/internal/metrics"
	"github.com/structhr/structhr/internal/server/httpserver"
	"github.com/structhr/structhr/internal/storage"
	"github.com/structhr/structhr/internal/today"
	"github.com/structhr/structhr/internal/web"
)

// Status represents the current state of the daemon.
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
	StatusError    Status = "error"
)

// Daemon is the main long-running service.
type Daemon struct {
	config         *config.Config
	configFilePath string
	status         atomic.Value // Status
	startTime      time.Time
	stopChan       chan struct{}
	mu             sync.RWMutex

	// Core components
	db            *sql.DB
	eventStore    eventstore.Store
	todayService  *today.Service
	employeeSvc   *employee.Service
	attendanceSvc *attendance.Service
	natsPublisher *today.NATSPublisher
	httpServer    *httpserver.Server
	scheduler     *Scheduler
	configWatcher *ConfigWatcher
	recorder      metrics.Recorder
}

// New creates a daemon instance from the given configuration.
func New(cfg *config.Config) (*Daemon, error) {
	return NewWithConfigFile(cfg, "")
}

// NewWithConfigFile creates a daemon instance that also watches the given
// configuration file for changes.
func NewWithConfigFile(cfg *config.Config, configFilePath string) (*Daemon, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	d := &Daemon{
		config:         cfg,
		configFilePath: configFilePath,
		stopChan:       make(chan struct{}),
	}
	d.status.Store(StatusStopped)

	// Storage
	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	d.db = db
	d.eventStore = eventstore.NewSQLiteStore(db)

	// Metrics
	registry := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)
	d.recorder = recorder

	// Optional external change broadcasting
	var broadcaster today.Broadcaster
	if cfg.NATS.Enabled() {
		pub, err := today.NewNATSPublisher(cfg.NATS)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set up NATS publisher: %w", err)
		}
		d.natsPublisher = pub
		broadcaster = pub
	}

	// Service stack
	todayStore := today.NewStore(kv.NewSQLiteStore(db))
	d.todayService = today.NewService(todayStore, today.NewNotifier(), d.eventStore, broadcaster, recorder)

	empRepo := employee.NewRepository(db)
	d.employeeSvc = employee.NewService(empRepo, d.eventStore, recorder)

	attRepo := attendance.NewRepository(db)
	d.attendanceSvc = attendance.NewService(attRepo, empRepo, d.employeeSvc, d.eventStore, recorder)

	// HTTP servers
	d.httpServer = httpserver.New(cfg, d, httpserver.Deps{
		Today:          d.todayService,
		TodayStore:     todayStore,
		Employees:      d.employeeSvc,
		EmployeeRepo:   empRepo,
		Attendance:     d.attendanceSvc,
		AttendanceRepo: attRepo,
		Recorder:       recorder,
	}, httpserver.Options{
		PrometheusHandler: metrics.HTTPHandler(registry),
		StaticAssets:      http.FS(web.Static()),
	})

	// Refresh scheduler
	scheduler, err := NewScheduler(d.employeeSvc, d.todayService)
	if err != nil {
		db.Close()
		return nil, err
	}
	d.scheduler = scheduler

	// Config watcher (only when a config file path is known)
	if configFilePath != "" {
		watcher, err := NewConfigWatcher(configFilePath, d)
		if err != nil {
			slog.Warn("Config watching disabled", logfields.Error(err))
		} else {
			d.configWatcher = watcher
		}
	}

	return d, nil
}

// Start brings the daemon up and blocks until the context is cancelled
// or Stop is called.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.GetStatus() != string(StatusStopped) {
		d.mu.Unlock()
		return fmt.Errorf("daemon is not in stopped state: %s", d.GetStatus())
	}

	d.status.Store(StatusStarting)
	d.startTime = time.Now()

	slog.Info("Starting Struct HR daemon")

	if _, err := d.scheduler.ScheduleRefresh(d.config.Refresh.Schedule); err != nil {
		d.status.Store(StatusError)
		d.mu.Unlock()
		return fmt.Errorf("failed to schedule status refresh: %w", err)
	}

	if err := d.httpServer.Start(ctx); err != nil {
		d.status.Store(StatusError)
		d.mu.Unlock()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	d.scheduler.Start(ctx)

	if d.configWatcher != nil {
		if err := d.configWatcher.Start(ctx); err != nil {
			slog.Error("Failed to start config watcher", logfields.Error(err))
		}
	}

	d.status.Store(StatusRunning)
	slog.Info("Struct HR daemon started",
		slog.Int("api_port", d.config.Server.APIPort),
		slog.Int("admin_port", d.config.Server.AdminPort),
		slog.String("database", d.config.Database.Path),
		slog.Bool("nats", d.config.NATS.Enabled()))

	// Release lock before blocking so status queries stay responsive.
	d.mu.Unlock()

	select {
	case <-ctx.Done():
	case <-d.stopChan:
	}

	d.status.Store(StatusStopping)
	slog.Info("Daemon stopping")
	return nil
}

// Stop gracefully shuts down the daemon.
func (d *Daemon) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	current := Status(d.GetStatus())
	if current == StatusStopped || current == StatusStopping {
		return nil
	}

	d.status.Store(StatusStopping)
	slog.Info("Stopping Struct HR daemon")

	select {
	case <-d.stopChan:
	default:
		close(d.stopChan)
	}

	// Stop components in reverse order
	if d.configWatcher != nil {
		if err := d.configWatcher.Stop(ctx); err != nil {
			slog.Error("Failed to stop config watcher", logfields.Error(err))
		}
	}

	if d.scheduler != nil {
		if err := d.scheduler.Stop(ctx); err != nil {
			slog.Error("Failed to stop scheduler", logfields.Error(err))
		}
	}

	if d.httpServer != nil {
		if err := d.httpServer.Stop(ctx); err != nil {
			slog.Error("Failed to stop HTTP server", logfields.Error(err))
		}
	}

	if d.natsPublisher != nil {
		d.natsPublisher.Close()
	}

	if d.db != nil {
		if err := d.db.Close(); err != nil {
			slog.Error("Failed to close database", logfields.Error(err))
		}
	}

	d.status.Store(StatusStopped)
	slog.Info("Struct HR daemon stopped", slog.Duration("uptime", time.Since(d.startTime)))
	return nil
}

// GetStatus returns the current daemon status string.
func (d *Daemon) GetStatus() string {
	status, ok := d.status.Load().(Status)
	if !ok {
		return string(StatusError)
	}
	return string(status)
}

// GetStartTime returns the daemon start time.
func (d *Daemon) GetStartTime() time.Time {
	return d.startTime
}

// TodayService exposes the today service, mainly for tests.
func (d *Daemon) TodayService() *today.Service {
	return d.todayService
}

// ReloadConfig applies a changed configuration. Only logging settings are
// hot-applied; port or storage changes require a restart and are logged.
func (d *Daemon) ReloadConfig(ctx context.Context, newConfig *config.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	old := d.config
	d.config = newConfig

	if old.Server != newConfig.Server || old.Database != newConfig.Database {
		slog.Warn("Server or database configuration changed, restart required to apply")
	}

	if old.Logging != newConfig.Logging {
		ApplyLogging(newConfig.Logging)
		slog.Info("Logging configuration applied",
			slog.String("level", newConfig.Logging.Level),
			slog.String("format", newConfig.Logging.Format))
	}

	return nil
}

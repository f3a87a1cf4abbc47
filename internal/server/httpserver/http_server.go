package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/structhr/structhr/internal/attendance"
	"github.com/structhr/structhr/internal/config"
	"github.com/structhr/structhr/internal/employee"
	herrors "github.com/structhr/structhr/internal/errors"
	"github.com/structhr/structhr/internal/metrics"
	handlers "github.com/structhr/structhr/internal/server/handlers"
	smw "github.com/structhr/structhr/internal/server/middleware"
	"github.com/structhr/structhr/internal/today"
)

// Deps carries the service layer the HTTP handlers are built on.
type Deps struct {
	Today          *today.Service
	TodayStore     *today.Store
	Employees      *employee.Service
	EmployeeRepo   *employee.Repository
	Attendance     *attendance.Service
	AttendanceRepo *attendance.Repository
	Recorder       metrics.Recorder
}

// Server manages the API and admin HTTP endpoints.
type Server struct {
	apiServer    *http.Server
	adminServer  *http.Server
	cfg          *config.Config
	opts         Options
	errorAdapter *herrors.HTTPErrorAdapter

	// Handler modules
	systemHandlers     *handlers.SystemHandlers
	employeeHandlers   *handlers.EmployeeHandlers
	attendanceHandlers *handlers.AttendanceHandlers
	adminHandlers      *handlers.AdminHandlers

	// middleware chain
	mchain func(http.Handler) http.Handler
}

// New constructs a new HTTP server wiring instance.
func New(cfg *config.Config, runtime Runtime, deps Deps, opts Options) *Server {
	if deps.Recorder == nil {
		deps.Recorder = metrics.NoopRecorder{}
	}

	s := &Server{
		cfg:          cfg,
		opts:         opts,
		errorAdapter: herrors.NewHTTPErrorAdapter(slog.Default()),
	}

	// Initialize handler modules
	s.systemHandlers = handlers.NewSystemHandlers(deps.Today, deps.TodayStore)
	s.employeeHandlers = handlers.NewEmployeeHandlers(deps.Employees, deps.Today)
	s.attendanceHandlers = handlers.NewAttendanceHandlers(deps.Attendance)
	s.adminHandlers = handlers.NewAdminHandlers(runtime, deps.EmployeeRepo, deps.AttendanceRepo)

	// Initialize middleware chain
	s.mchain = smw.Chain(slog.Default(), s.errorAdapter, deps.Recorder)

	return s
}

// Start initializes and starts both HTTP servers.
func (s *Server) Start(ctx context.Context) error {
	// Pre-bind both required ports so we can fail fast and surface aggregate errors
	// instead of logging independent 'address already in use' lines after partial
	// initialization.
	type preBind struct {
		name string
		port int
		ln   net.Listener
	}
	binds := []preBind{
		{name: "api", port: s.cfg.Server.APIPort},
		{name: "admin", port: s.cfg.Server.AdminPort},
	}
	var bindErrs []error
	lc := net.ListenConfig{}
	for i := range binds {
		addr := fmt.Sprintf(":%d", binds[i].port)
		ln, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			bindErrs = append(bindErrs, fmt.Errorf("%s port %d: %w", binds[i].name, binds[i].port, err))
			continue
		}
		binds[i].ln = ln
	}
	if len(bindErrs) > 0 {
		// Close any successful listeners before returning
		for _, b := range binds {
			if b.ln != nil {
				_ = b.ln.Close()
			}
		}
		return fmt.Errorf("http startup failed: %w", errors.Join(bindErrs...))
	}

	// Both ports bound successfully – now start servers handing them their pre-bound listeners.
	if err := s.startAPIServerWithListener(ctx, binds[0].ln); err != nil {
		return fmt.Errorf("failed to start api server: %w", err)
	}
	if err := s.startAdminServerWithListener(ctx, binds[1].ln); err != nil {
		return fmt.Errorf("failed to start admin server: %w", err)
	}

	slog.Info("HTTP servers started",
		slog.Int("api_port", s.cfg.Server.APIPort),
		slog.Int("admin_port", s.cfg.Server.AdminPort))
	return nil
}

// Stop gracefully shuts down both HTTP servers.
func (s *Server) Stop(ctx context.Context) error {
	var errs []error

	// Stop servers in reverse order
	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("admin server shutdown: %w", err))
		}
	}

	if s.apiServer != nil {
		if err := s.apiServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("api server shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	slog.Info("HTTP servers stopped")
	return nil
}

func (s *Server) startAPIServerWithListener(_ context.Context, ln net.Listener) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.systemHandlers.HandleRoot)
	mux.HandleFunc("/system/today", s.systemHandlers.HandleToday)
	mux.HandleFunc("/employees", s.employeeHandlers.HandleEmployees)
	mux.HandleFunc("/employees/{emp_code}/status", s.employeeHandlers.HandleStatus)
	mux.HandleFunc("/attendance", s.attendanceHandlers.HandleAttendance)
	mux.HandleFunc("/attendance/summary", s.attendanceHandlers.HandleSummary)
	mux.HandleFunc("/ui/today-bar", s.systemHandlers.HandleTodayBar)

	s.apiServer = &http.Server{Handler: s.mchain(mux), ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second, IdleTimeout: 120 * time.Second}
	return s.startServerWithListener("api", s.apiServer, ln)
}

func (s *Server) startAdminServerWithListener(_ context.Context, ln net.Listener) error {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", s.adminHandlers.HandleHealth)
	mux.HandleFunc("/healthz", s.adminHandlers.HandleHealth) // Kubernetes-style alias

	// Metrics scrape endpoint
	if s.opts.PrometheusHandler != nil {
		mux.Handle("/metrics", s.opts.PrometheusHandler)
	}

	// Administrative endpoints
	mux.HandleFunc("/admin/reset", s.adminHandlers.HandleReset)

	// Static assets (today bar page and script)
	if s.opts.StaticAssets != nil {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(s.opts.StaticAssets)))
	}

	s.adminServer = &http.Server{Handler: s.mchain(mux), ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second, IdleTimeout: 120 * time.Second}
	return s.startServerWithListener("admin", s.adminServer, ln)
}

// startServerWithListener launches an http.Server on a pre-bound listener or binds itself.
// It standardizes goroutine startup and error logging across server types.
func (s *Server) startServerWithListener(kind string, srv *http.Server, ln net.Listener) error {
	go func() {
		var err error
		if ln != nil {
			err = srv.Serve(ln)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			slog.Error(fmt.Sprintf("%s server error", kind), "error", err)
		}
	}()
	return nil
}

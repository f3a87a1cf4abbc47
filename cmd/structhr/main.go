package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/structhr/structhr/internal/attendance"
	"github.com/structhr/structhr/internal/config"
	"github.com/structhr/structhr/internal/daemon"
	"github.com/structhr/structhr/internal/employee"
	herrors "github.com/structhr/structhr/internal/errors"
	"github.com/structhr/structhr/internal/eventstore"
	"github.com/structhr/structhr/internal/kv"
	"github.com/structhr/structhr/internal/storage"
	"github.com/structhr/structhr/internal/today"
	"github.com/structhr/structhr/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Serve struct{} `cmd:"" help:"Run the attendance service daemon"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Today struct {
		Get struct{} `cmd:"" help:"Print the locked today date"`
		Set struct {
			Date string `arg:"" help:"New today date (YYYY-MM-DD)"`
		} `cmd:"" help:"Lock the today date"`
	} `cmd:"" help:"Inspect or change the locked today date"`

	Reset struct {
		Yes bool `help:"Skip the confirmation prompt"`
	} `cmd:"" help:"Wipe all employee and attendance data"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging before anything else; the config file can refine it later.
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	adapter := herrors.NewCLIErrorAdapter(CLI.Verbose, slog.Default())

	switch ctx.Command() {
	case "serve":
		if err := runServe(CLI.Config); err != nil {
			os.Exit(adapter.HandleError(err))
		}
	case "init":
		if err := config.WriteDefault(CLI.Config, CLI.Init.Force); err != nil {
			os.Exit(adapter.HandleError(err))
		}
		fmt.Printf("Configuration written to %s\n", CLI.Config)
	case "today get":
		if err := runTodayGet(CLI.Config); err != nil {
			os.Exit(adapter.HandleError(err))
		}
	case "today set <date>":
		if err := runTodaySet(CLI.Config, CLI.Today.Set.Date); err != nil {
			os.Exit(adapter.HandleError(err))
		}
	case "reset":
		if err := runReset(CLI.Config, CLI.Reset.Yes); err != nil {
			os.Exit(adapter.HandleError(err))
		}
	case "version":
		fmt.Printf("structhr %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	}
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if !CLI.Verbose {
		daemon.ApplyLogging(cfg.Logging)
	}

	d, err := daemon.NewWithConfigFile(cfg, configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		slog.Info("Received shutdown signal", slog.String("signal", sig.String()))
		cancel()
	}()

	if err := d.Start(ctx); err != nil {
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	return d.Stop(shutdownCtx)
}

// openTodayService builds a today service over the configured database for
// the one-shot CLI commands.
func openTodayService(configPath string) (*today.Service, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}

	store := today.NewStore(kv.NewSQLiteStore(db))
	svc := today.NewService(store, today.NewNotifier(), eventstore.NewSQLiteStore(db), nil, nil)
	return svc, func() { _ = db.Close() }, nil
}

func runReset(configPath string, yes bool) error {
	if !yes {
		fmt.Print("This deletes all employees and attendance. Continue? [y/N] ")
		var answer string
		if _, err := fmt.Scanln(&answer); err != nil || (answer != "y" && answer != "Y") {
			fmt.Println("aborted")
			return nil
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	// Attendance references employees; delete it first.
	if err := attendance.NewRepository(db).DeleteAll(ctx); err != nil {
		return err
	}
	if err := employee.NewRepository(db).DeleteAll(ctx); err != nil {
		return err
	}
	fmt.Println("database reset")
	return nil
}

func runTodayGet(configPath string) error {
	svc, closeDB, err := openTodayService(configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	current, ok, err := svc.Current(context.Background())
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("today is not set")
		return nil
	}
	fmt.Println(current.Format(today.DateFormat))
	return nil
}

func runTodaySet(configPath, date string) error {
	newToday, err := time.Parse(today.DateFormat, date)
	if err != nil {
		return herrors.ValidationError("date must be formatted YYYY-MM-DD").
			WithContext("date", date)
	}

	svc, closeDB, err := openTodayService(configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := svc.Set(context.Background(), newToday); err != nil {
		return err
	}
	fmt.Printf("today locked to %s\n", date)
	return nil
}

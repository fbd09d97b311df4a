package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/taskdash/internal/app"
	"github.com/agalitsyn/taskdash/internal/config"
	"github.com/agalitsyn/taskdash/internal/ingest"
	"github.com/agalitsyn/taskdash/internal/model"
	"github.com/agalitsyn/taskdash/internal/report"
	"github.com/agalitsyn/taskdash/internal/schedule"
	"github.com/agalitsyn/taskdash/internal/storage/memory"
	"github.com/agalitsyn/taskdash/internal/storage/sqlite"
	"github.com/agalitsyn/taskdash/internal/tui"
	"github.com/agalitsyn/taskdash/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := ParseFlags()
	logFile, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	lgr.Printf("[INFO] taskdash %s", version.String())
	if cfg.Debug {
		lgr.Printf("[DEBUG] running with config")
		lgr.Printf("[DEBUG] %s", cfg.String())
	}

	if err := run(ctx, cfg); err != nil {
		lgr.Printf("[ERROR] %v", err)
		// the log may be discarded under the terminal ui
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// setupLogger sends logs to stderr when printing and to -log-file (or
// nowhere) while the terminal UI owns the screen.
func setupLogger(cfg Config) (io.Closer, error) {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer
	)
	if cfg.Interactive() {
		out = io.Discard
		if cfg.Log.File != "" {
			f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return nil, fmt.Errorf("could not open log file: %w", err)
			}
			out, closer = f, f
		}
	}

	opts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.Out(out), lgr.Err(out)}
	if cfg.Debug {
		opts = append(opts, lgr.Debug, lgr.CallerFile)
	}
	lgr.Setup(opts...)
	// migrations log through the standard logger
	lgr.SetupStdLogger(opts...)
	return closer, nil
}

func run(ctx context.Context, cfg Config) error {
	viewCfg, err := config.Load(cfg.ConfigFile)
	if err != nil {
		return err
	}
	if cfg.View != "" {
		viewCfg.View = cfg.View
	}
	view, err := app.ParseViewMode(viewCfg.View)
	if err != nil {
		return err
	}
	sortCfg, err := viewCfg.SortConfig()
	if err != nil {
		return err
	}
	interval, err := viewCfg.Schedule.Interval()
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepo(cfg.DB)
	if err != nil {
		return err
	}
	defer closeRepo()

	logger := lgr.Default()
	dash := app.New(app.Config{
		View:          view,
		Selection:     viewCfg.Selection(),
		Sort:          sortCfg,
		Schedule:      schedule.Config{PixelsPerSlot: viewCfg.Schedule.PixelsPerSlot},
		ClockInterval: interval,
	}, repo, logger)
	defer dash.Close()

	var tasks []model.Task
	if cfg.File != "" {
		tasks = ingest.NewReader(ingest.Options{Delimiter: cfg.DelimiterRune()}, logger).Load(cfg.File)
	}
	if err := dash.Import(ctx, tasks); err != nil {
		return err
	}

	if !cfg.Interactive() {
		printView, err := app.ParseViewMode(cfg.Print)
		if err != nil {
			return err
		}
		return report.Render(os.Stdout, dash, printView)
	}

	dash.Start(ctx)
	m := tui.New(ctx, dash, viewCfg.Schedule.PixelsPerSlot, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("could not run terminal ui: %w", err)
	}
	return nil
}

func openRepo(dsn string) (model.TaskRepository, func(), error) {
	if dsn == "" {
		return memory.NewTaskStorage(), func() {}, nil
	}
	db, err := sqlite.Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	return sqlite.NewTaskStorage(db), func() {
		if err := db.Close(); err != nil {
			lgr.Printf("[WARN] could not close database: %v", err)
		}
	}, nil
}

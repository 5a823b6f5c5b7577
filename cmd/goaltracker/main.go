package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/nhle/goal-tracker/internal/app"
	"github.com/nhle/goal-tracker/internal/goals"
	"github.com/nhle/goal-tracker/internal/logging"
	"github.com/nhle/goal-tracker/internal/model"
	"github.com/nhle/goal-tracker/internal/store"
	appsync "github.com/nhle/goal-tracker/internal/sync"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	// If a CLI subcommand is provided, handle it and exit.
	if len(os.Args) > 1 {
		if handled, code := runCLI(os.Args[1:]); handled {
			os.Exit(code)
		}
	}

	if err := runTUI(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalOpts are the flags shared by the TUI and every subcommand.
type globalOpts struct {
	configPath string
	dataDir    string
	driver     string
}

func bindGlobalFlags(fs *flag.FlagSet) *globalOpts {
	o := &globalOpts{}
	fs.StringVar(&o.configPath, "config", model.DefaultConfigPath(), "path to config.yaml")
	fs.StringVar(&o.dataDir, "data-dir", "", "override data directory")
	fs.StringVar(&o.driver, "driver", "", "storage driver: file|sqlite")
	return o
}

// loadConfig reads the config file and applies flag overrides.
func (o *globalOpts) loadConfig() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.Storage.Path = o.dataDir
	}
	if o.driver != "" {
		cfg.Storage.Driver = o.driver
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.SetDebug(cfg.Log.Debug || os.Getenv("DEBUG") == "true")
	return cfg, nil
}

// openStore opens the persistence backend selected by cfg.
func openStore(cfg *model.AppConfig) (store.Store, error) {
	dir := cfg.Storage.Path
	if dir == "" {
		var err error
		dir, err = store.ResolveDataDir()
		if err != nil {
			return nil, fmt.Errorf("resolving data dir: %w", err)
		}
	}

	switch cfg.Storage.Driver {
	case model.DriverSQLite:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
		}
		return store.NewSQLiteStore(filepath.Join(dir, store.DatabaseFilename))
	default:
		return store.NewFileStore(dir)
	}
}

// openEngine opens the store and loads the goals, running the daily reset.
func openEngine(cfg *model.AppConfig) (*goals.Store, store.Store, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	engine := goals.New(st, goals.Options{KeepCompleted: cfg.Reset.KeepCompleted})
	engine.Open(context.Background())
	return engine, st, nil
}

func runTUI(args []string) error {
	fs := flag.NewFlagSet("goaltracker", flag.ContinueOnError)
	opts := bindGlobalFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so log lines go to a file.
	logFile, err := tea.LogToFile(cfg.Log.File, "goaltracker")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	engine, st, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	logging.Info("main", "goals stored at %s (%s)", store.Location(st), cfg.Storage.Driver)

	watcher := appsync.New(engine, time.Duration(cfg.Reset.CheckIntervalSec)*time.Second)
	defer watcher.Stop()

	p := tea.NewProgram(app.New(engine, watcher), tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

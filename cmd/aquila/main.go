package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aquilahq/aquila/internal/backend"
	"github.com/aquilahq/aquila/internal/cli"
	"github.com/aquilahq/aquila/internal/config"
	"github.com/aquilahq/aquila/internal/db"
	"github.com/aquilahq/aquila/internal/repository"
	"github.com/aquilahq/aquila/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Determine DB path: env var or default ~/.aquila/aquila.db
	dbPath := os.Getenv("AQUILA_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".aquila", "aquila.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var apiObserver backend.Observer
	if cfg.LogCalls {
		apiObserver = backend.NewLogObserver(os.Stderr)
	}
	client := backend.NewClient(backend.Config{
		BaseURL:    cfg.APIURL,
		Token:      cfg.APIToken,
		TimeoutMs:  cfg.TimeoutMs,
		MaxRetries: cfg.MaxRetries,
	}, apiObserver)

	planRepo := repository.NewSQLitePlanRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Plans:  service.NewPlanService(client, planRepo, uow, cfg.Window(), cfg.CalendarID, observers...),
		Window: cfg.Window(),
	}

	// Detect interactive terminal; batch output otherwise.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

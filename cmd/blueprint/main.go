package main

import (
	"fmt"
	"os"

	"github.com/dogeja/blueprint/internal/cli"
	"github.com/dogeja/blueprint/internal/config"
	"github.com/dogeja/blueprint/internal/db"
	"github.com/dogeja/blueprint/internal/httpapi"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/dogeja/blueprint/internal/service"
	"github.com/dogeja/blueprint/internal/store"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("BLUEPRINT_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	reportRepo := repository.NewSQLiteReportRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	goalRepo := repository.NewSQLiteGoalRepo(database)
	callRepo := repository.NewSQLitePhoneCallRepo(database)
	reflectionRepo := repository.NewSQLiteReflectionRepo(database)
	resolutionRepo := repository.NewSQLiteResolutionRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	reportSvc := service.NewReportService(reportRepo, taskRepo)
	taskSvc := service.NewTaskService(taskRepo, uow)
	carrySvc := service.NewCarryOverService(reportRepo, taskRepo, resolutionRepo, uow, log)

	svcs := httpapi.Services{
		Reports:     reportSvc,
		Tasks:       taskSvc,
		Goals:       service.NewGoalService(goalRepo),
		PhoneCalls:  service.NewPhoneCallService(callRepo),
		Reflections: service.NewReflectionService(reflectionRepo),
		CarryOver:   carrySvc,
		Summary:     service.NewSummaryService(taskRepo, resolutionRepo),
	}

	app := &cli.App{
		Store:       store.New(reportSvc, taskSvc, carrySvc, log),
		Reports:     svcs.Reports,
		Tasks:       svcs.Tasks,
		Goals:       svcs.Goals,
		PhoneCalls:  svcs.PhoneCalls,
		Reflections: svcs.Reflections,
		CarryOver:   svcs.CarryOver,
		Summary:     svcs.Summary,
		HTTP: httpapi.NewServer(svcs, log, httpapi.Config{
			Addr:            cfg.Server.Addr(),
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		}),
		Log: log,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

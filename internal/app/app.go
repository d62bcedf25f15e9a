package app

import (
	"context"

	"betsmith/config"
	"betsmith/internal/database"
	"betsmith/internal/events"
	"betsmith/internal/handlers/middleware"
	"betsmith/internal/jobs"
	"betsmith/internal/repositories"
	"betsmith/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	DB         database.DB
	Middleware middleware.Middleware
	EventBus   *events.EventBus
	Config     config.Config
	Services   services.Service
	Repos      repositories.Repository
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	repos := repositories.New(db)

	appServices, err := services.New(db, config, eventBus, repos)
	if err != nil {
		return &App{}, log.Err("failed to initialize services", err)
	}

	middleware := middleware.New(db, config, repos)

	if config.SchedulerEnabled {
		regenerationJob := jobs.NewDailyRegenerationJob(
			appServices.Regeneration,
			services.Daily,
		)
		if err := appServices.Scheduler.AddJob(regenerationJob); err != nil {
			return &App{}, log.Err("failed to register daily regeneration job", err)
		}
		log.Info("Registered daily regeneration job with scheduler")

		if err := appServices.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		DB:         db,
		Config:     config,
		Middleware: middleware,
		EventBus:   eventBus,
		Services:   appServices,
		Repos:      repos,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.DB.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.EventBus,
		a.Services.Scheduler,
		a.Services.SportsData,
		a.Services.Normalizer,
		a.Services.Synthesizer,
		a.Services.Regeneration,
		a.Services.Quota,
		a.Services.Picks,
		a.Services.AIClient,
		a.Services.Prompt,
		a.Repos.User,
		a.Repos.Recommendation,
		a.Repos.SavedPick,
		a.Repos.Quota,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.DB.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}

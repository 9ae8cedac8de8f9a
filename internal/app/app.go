package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"healthvoice/internal/api/server"
	v1routes "healthvoice/internal/api/v1/routes"
	"healthvoice/internal/api/v1/services"
	"healthvoice/internal/app/lifecycle"
	"healthvoice/internal/config"
)

// Application bundles the HTTP server and the background transcription
// worker behind one start/stop pair.
type Application struct {
	Config config.Config
	Server *server.Server
	Worker *lifecycle.Worker
	Logger *zap.Logger
}

// NewApplication creates the application shell.
func NewApplication(cfg config.Config, srv *server.Server, worker *lifecycle.Worker, logger *zap.Logger) *Application {
	return &Application{
		Config: cfg,
		Server: srv,
		Worker: worker,
		Logger: logger,
	}
}

// Start launches the worker and then the HTTP server.
func (a *Application) Start() error {
	a.Worker.Start()
	return a.Server.Start()
}

// Shutdown stops the HTTP server first so no new work arrives, then waits
// for the worker to record any in-flight transcription.
func (a *Application) Shutdown(ctx context.Context) error {
	err := a.Server.Shutdown(ctx)
	a.Worker.Stop()
	return err
}

func provideServerConfig(cfg config.Config) server.Config {
	return server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		IdleTimeout:  cfg.Server.IdleTimeout.Std(),
		Environment:  cfg.Server.Environment,
	}
}

func provideSweepInterval(cfg config.Config) time.Duration {
	return cfg.Worker.SweepInterval.Std()
}

func provideContainer(
	transcripts services.TranscriptService,
	qa services.QAService,
	export services.ExportService,
) *v1routes.ServiceContainer {
	return &v1routes.ServiceContainer{
		TranscriptService: transcripts,
		QAService:         qa,
		ExportService:     export,
	}
}

//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"healthvoice/internal/api/server"
	"healthvoice/internal/api/v1/services"
	"healthvoice/internal/app/converter"
	"healthvoice/internal/app/gate"
	"healthvoice/internal/app/lifecycle"
	"healthvoice/internal/app/metrics"
	"healthvoice/internal/app/qa"
	"healthvoice/internal/config"
)

var coreSet = wire.NewSet(
	provideZapLogger,
	provideStores,
	wire.FieldsOf(new(*Stores), "Transcripts", "Entries"),
	provideAudioStore,
	provideTranscriber,
	provideSweepInterval,
	gate.New,
	provideRegistry,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	metrics.New,
	lifecycle.NewManager,
	lifecycle.NewWorker,
)

// InitializeApplication wires the full HTTP service: record stores, audio
// storage, transcription worker, QA engine and the API server.
func InitializeApplication(cfg config.Config) (*Application, func(), error) {
	wire.Build(
		coreSet,
		provideSlogLogger,
		provideEmbedder,
		provideGenerator,
		provideEmbeddingCache,
		provideQAConfig,
		qa.NewEngine,
		services.NewTranscriptService,
		services.NewQAService,
		services.NewExportService,
		provideContainer,
		provideServerConfig,
		server.NewServer,
		NewApplication,
	)
	return nil, nil, nil
}

// InitializeConverter wires the offline batch importer.
func InitializeConverter(cfg config.Config) (*converter.Converter, func(), error) {
	wire.Build(
		coreSet,
		converter.NewConverter,
	)
	return nil, nil, nil
}

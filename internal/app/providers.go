package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"healthvoice/internal/app/api/embed"
	"healthvoice/internal/app/api/llm"
	openaiclient "healthvoice/internal/app/api/openai"
	"healthvoice/internal/app/api/stt"
	"healthvoice/internal/app/api/stt/whisperapi"
	"healthvoice/internal/app/api/stt/whispercpp"
	"healthvoice/internal/app/qa"
	"healthvoice/internal/app/repository"
	"healthvoice/internal/app/repository/pg"
	"healthvoice/internal/app/repository/sqlite"
	"healthvoice/internal/app/storage"
	"healthvoice/internal/config"
)

// Stores bundles the two record stores so one database handle backs both.
type Stores struct {
	Transcripts repository.TranscriptDAO
	Entries     repository.QAEntryDAO
}

func provideZapLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Server.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func provideSlogLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func provideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func provideStores(cfg config.Config) (*Stores, func(), error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := pg.Open(cfg.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		return &Stores{Transcripts: db.Transcripts(), Entries: db.Entries()},
			func() { db.Close() }, nil
	case "sqlite", "":
		if dir := filepath.Dir(cfg.Store.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := sqlite.Open(cfg.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		return &Stores{Transcripts: db.Transcripts(), Entries: db.Entries()},
			func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func provideAudioStore(cfg config.Config) (storage.AudioStore, error) {
	switch cfg.Audio.Backend {
	case "minio":
		return storage.NewMinioStoreFromEnv(context.Background())
	case "local", "":
		return storage.NewLocalStore(cfg.Audio.Dir)
	default:
		return nil, fmt.Errorf("unknown audio backend %q", cfg.Audio.Backend)
	}
}

func provideTranscriber(cfg config.Config, logger *zap.Logger) (stt.Transcriber, error) {
	switch cfg.Engines.Transcriber {
	case "openai":
		return whisperapi.NewRemoteTranscriber(openaiclient.GetClient(), cfg.Engines.InitialPrompt), nil
	case "whisper_cpp", "":
		binary := cfg.Engines.WhisperCppBinary
		if binary == "" {
			binary = os.Getenv("WHISPER_CPP_BINARY")
		}
		model := cfg.Engines.WhisperCppModel
		if model == "" {
			model = os.Getenv("WHISPER_CPP_MODEL")
		}
		if binary == "" || model == "" {
			return nil, fmt.Errorf("whisper_cpp transcriber needs binary and model paths")
		}
		return whispercpp.NewLocalTranscriber(binary, model, cfg.Engines.Language, cfg.Engines.InitialPrompt, logger), nil
	default:
		return nil, fmt.Errorf("unknown transcriber %q", cfg.Engines.Transcriber)
	}
}

func provideEmbedder(cfg config.Config) (embed.Embedder, error) {
	switch cfg.Engines.Embedder {
	case "gemini":
		return embed.NewGeminiEmbedder(context.Background(), cfg.Engines.EmbeddingModel)
	case "openai", "":
		return embed.NewOpenAIEmbedder(openaiclient.GetClient(), cfg.Engines.EmbeddingModel), nil
	default:
		return nil, fmt.Errorf("unknown embedder %q", cfg.Engines.Embedder)
	}
}

func provideGenerator(cfg config.Config) llm.Generator {
	return llm.NewOpenAIGenerator(openaiclient.GetClient(), cfg.Engines.ChatModel)
}

func provideEmbeddingCache(cfg config.Config, logger *zap.Logger) qa.EmbeddingCache {
	if cfg.QA.Cache == "redis" {
		return qa.NewRedisCache(cfg.QA.RedisAddr, cfg.QA.RedisTTL.Std(), logger)
	}
	return qa.NewMemoryCache()
}

func provideQAConfig(cfg config.Config) qa.Config {
	return qa.Config{
		SentencesPerChunk: cfg.QA.SentencesPerChunk,
		ChunkOverlap:      cfg.QA.ChunkOverlap,
		TopK:              cfg.QA.TopK,
		MaxAttempts:       cfg.QA.MaxAttempts,
		MaxAnswerTokens:   cfg.QA.MaxAnswerTokens,
	}
}

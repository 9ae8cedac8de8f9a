package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML application configuration. Every field has a working
// default so the service starts with an empty file: SQLite store, local
// audio directory, whisper.cpp transcription, OpenAI embeddings and
// generation, in-process embedding cache.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Audio   AudioConfig   `yaml:"audio"`
	Engines EnginesConfig `yaml:"engines"`
	QA      QAConfig      `yaml:"qa"`
	Worker  WorkerConfig  `yaml:"worker"`
}

// Duration accepts "30s" style YAML values, which yaml.v3 does not decode
// into a bare time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type ServerConfig struct {
	Host         string   `yaml:"host"`
	Port         string   `yaml:"port"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	IdleTimeout  Duration `yaml:"idle_timeout"`
	Environment  string   `yaml:"environment"`
}

type StoreConfig struct {
	// Driver is sqlite or postgres.
	Driver string `yaml:"driver"`
	// DSN is the database file path for sqlite, a lib/pq connection
	// string for postgres.
	DSN string `yaml:"dsn"`
}

type AudioConfig struct {
	// Backend is local or minio (minio reads MINIO_* from the environment).
	Backend string `yaml:"backend"`
	// Dir is the upload directory for the local backend.
	Dir string `yaml:"dir"`
}

type EnginesConfig struct {
	// Transcriber is whisper_cpp or openai.
	Transcriber       string `yaml:"transcriber"`
	WhisperCppBinary  string `yaml:"whisper_cpp_binary"`
	WhisperCppModel   string `yaml:"whisper_cpp_model"`
	Language          string `yaml:"language"`
	// InitialPrompt seeds the decoder with domain vocabulary so drug and
	// exam names survive transcription.
	InitialPrompt string `yaml:"initial_prompt"`
	// Embedder is openai or gemini.
	Embedder       string `yaml:"embedder"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
}

type QAConfig struct {
	SentencesPerChunk int `yaml:"sentences_per_chunk"`
	ChunkOverlap      int `yaml:"chunk_overlap"`
	TopK              int `yaml:"top_k"`
	MaxAttempts       int `yaml:"max_attempts"`
	MaxAnswerTokens   int `yaml:"max_answer_tokens"`
	// Cache is memory or redis.
	Cache     string   `yaml:"cache"`
	RedisAddr string   `yaml:"redis_addr"`
	RedisTTL  Duration `yaml:"redis_ttl"`
}

type WorkerConfig struct {
	SweepInterval Duration `yaml:"sweep_interval"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         "8080",
			ReadTimeout:  Duration(30 * time.Second),
			WriteTimeout: Duration(10 * time.Minute),
			IdleTimeout:  Duration(2 * time.Minute),
			Environment:  "development",
		},
		Store: StoreConfig{
			Driver: "sqlite",
			DSN:    "data/healthvoice.db",
		},
		Audio: AudioConfig{
			Backend: "local",
			Dir:     "data/uploads",
		},
		Engines: EnginesConfig{
			Transcriber: "whisper_cpp",
			Embedder:    "openai",
		},
		QA: QAConfig{
			Cache: "memory",
		},
		Worker: WorkerConfig{
			SweepInterval: Duration(time.Second),
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "local", cfg.Audio.Backend)
	assert.Equal(t, "whisper_cpp", cfg.Engines.Transcriber)
	assert.Equal(t, "memory", cfg.QA.Cache)
	assert.Equal(t, time.Second, cfg.Worker.SweepInterval.Std())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthvoice.yaml")
	yaml := `
server:
  port: "9090"
store:
  driver: postgres
  dsn: "host=localhost dbname=healthvoice sslmode=disable"
qa:
  top_k: 12
worker:
  sweep_interval: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 12, cfg.QA.TopK)
	assert.Equal(t, 5*time.Second, cfg.Worker.SweepInterval.Std())

	// untouched sections keep their defaults
	assert.Equal(t, "local", cfg.Audio.Backend)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthvoice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

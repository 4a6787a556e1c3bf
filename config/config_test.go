package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, "127.0.0.1:5555", cfg.ListenAddr)
	assert.Equal(t, time.Minute, cfg.HTTPTimeout)
	assert.Equal(t, "file", cfg.Sim.Kind)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend:9000")
	t.Setenv("SIM_STORE", "sqlite")
	t.Setenv("SIM_STORE_PATH", "/tmp/sim.db")
	t.Setenv("HTTP_TIMEOUT", "15s")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000", cfg.BackendURL)
	assert.Equal(t, "sqlite", cfg.Sim.Kind)
	assert.Equal(t, "/tmp/sim.db", cfg.Sim.Path)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}

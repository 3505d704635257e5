package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.json")
	cfg := Default()
	cfg.Server.Addr = ":9090"
	cfg.Logging.Level = "debug"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":{"addr":":7070"}}`), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level, "unset fields keep defaults")
}

func TestGetSet(t *testing.T) {
	old := Get()
	defer Set(old)

	cfg := Default()
	cfg.ScenarioDir = "/tmp/scenarios"
	Set(cfg)

	assert.Equal(t, "/tmp/scenarios", Get().ScenarioDir)
}

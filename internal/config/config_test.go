package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vigilo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "hallway", cfg.MainDoorZone)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, "earliest", cfg.FaultActor)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
mainDoorZone: entrance
outputFormat: json
faultActor: nearest
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "entrance", cfg.MainDoorZone)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "nearest", cfg.FaultActor)
	assert.Equal(t, "info", cfg.LogLevel, "unset fields keep their defaults")
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "mainDoorZone: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("bad output format", func(t *testing.T) {
		_, err := Load(writeConfig(t, "outputFormat: xml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "xml")
	})

	t.Run("bad fault actor", func(t *testing.T) {
		_, err := Load(writeConfig(t, "faultActor: psychic"))
		assert.Error(t, err)
	})

	t.Run("empty main door zone", func(t *testing.T) {
		_, err := Load(writeConfig(t, `mainDoorZone: ""`))
		assert.Error(t, err)
	})
}

package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/cubana/engine/core"
)

func TestClampDeltaTime(t *testing.T) {
	// A stalled 50ms frame steps by the cap.
	assert.InDelta(t, 1.0/30.0, ClampDeltaTime(0.050), 1e-9)
	// Normal frame times pass through untouched.
	assert.InDelta(t, 0.016, ClampDeltaTime(0.016), 1e-9)
	assert.Zero(t, ClampDeltaTime(0))
}

func TestLoadApplicationConfigDefaultsWhenMissing(t *testing.T) {
	config, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultApplicationConfig(), config)
	assert.EqualValues(t, 1024, config.MaxObjects)
	assert.NotEmpty(t, config.TextureNames)
}

func TestLoadApplicationConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubana.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "Test Sandbox"
start_width = 640
start_height = 480
log_level = "debug"
max_objects = 16
texture_names = ["wood"]
`), 0o644))

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Sandbox", config.Name)
	assert.EqualValues(t, 640, config.StartWidth)
	assert.EqualValues(t, 480, config.StartHeight)
	assert.EqualValues(t, 16, config.MaxObjects)
	assert.Equal(t, []string{"wood"}, config.TextureNames)
	// Untouched keys keep their defaults.
	assert.EqualValues(t, 100, config.StartPosX)
	assert.EqualValues(t, 15.0, config.CameraMoveSpeed)
}

func TestApplicationConfigLevel(t *testing.T) {
	config := DefaultApplicationConfig()

	config.LogLevel = "debug"
	assert.Equal(t, core.DebugLevel, config.Level())
	config.LogLevel = "error"
	assert.Equal(t, core.ErrorLevel, config.Level())
	// Unknown names fall back to info.
	config.LogLevel = "nonsense"
	assert.Equal(t, core.InfoLevel, config.Level())
}

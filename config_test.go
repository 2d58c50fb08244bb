package dumpy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/brother79/dumpy/sanitize"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dumpy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DUMPY_MAX_DEPTH", "3")
	t.Setenv("DUMPY_HTML", "true")
	t.Setenv("DUMPY_LOG_LEVEL", "debug")
	t.Setenv("DUMPY_MAX_DEPTH_LIMIT", "6")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	want := DefaultConfig()
	want.MaxDepth = 3
	want.MaxDepthLimit = 6
	want.HTML = true
	want.LogLevel = "debug"
	assert.Equal(t, want, cfg)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level())
}

func TestConfigFromEnvInvalid(t *testing.T) {
	t.Setenv("DUMPY_MAX_DEPTH", "deep")
	_, err := ConfigFromEnv()
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrConfig))

	t.Setenv("DUMPY_MAX_DEPTH", "-1")
	_, err = ConfigFromEnv()
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrConfig))
}

func TestLoadConfigPrecedence(t *testing.T) {
	t.Setenv("DUMPY_MAX_DEPTH", "3")
	t.Setenv("DUMPY_INDENT", "4")

	path := writeConfig(t, "max_depth: 5\ncontainer_cap: 10\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxDepth, "file wins over environment")
	assert.Equal(t, 4, cfg.Indent, "environment wins over defaults")
	assert.Equal(t, 10, cfg.ContainerCap)
	assert.Equal(t, sanitize.DefaultCountLimit, cfg.CountLimit)
	assert.True(t, cfg.IncludeFields)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.yaml")},
		{name: "unknown key", content: "max_dept: 2\n"},
		{name: "bad type", content: "max_depth: [1]\n"},
		{name: "invalid value", content: "indent: 12\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = writeConfig(t, tt.content)
			}
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.True(t, IsKind(err, ErrConfig), "got %v", err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"zero depth limit", func(c *Config) { c.MaxDepthLimit = 0 }},
		{"depth above limit", func(c *Config) { c.MaxDepth = c.MaxDepthLimit + 1 }},
		{"zero cap", func(c *Config) { c.ContainerCap = 0 }},
		{"count below cap", func(c *Config) { c.CountLimit = c.ContainerCap - 1 }},
		{"indent too small", func(c *Config) { c.Indent = 1 }},
		{"indent too large", func(c *Config) { c.Indent = 10 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, IsKind(err, ErrConfig))
		})
	}
}

func TestConfigPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContainerCap = 5
	cfg.CountLimit = 50
	cfg.IncludeFields = false

	p := cfg.Policy()
	assert.Equal(t, 5, p.ContainerCap)
	assert.Equal(t, 50, p.CountLimit)
	assert.False(t, p.IncludeFields)
	assert.Equal(t, sanitize.DefaultTimeLayout, p.TimeLayout)
}

func TestConfigLevelFallback(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, zapcore.WarnLevel, cfg.Level())
	cfg.LogLevel = "nonsense"
	assert.Equal(t, zapcore.WarnLevel, cfg.Level())
}

package mcpserver

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearOASDELTAEnv clears all OASDELTA_* env vars to isolate tests from the ambient environment.
func clearOASDELTAEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASDELTA_CACHE_ENABLED", "OASDELTA_CACHE_MAX_SIZE",
		"OASDELTA_CACHE_FILE_TTL", "OASDELTA_CACHE_CONTENT_TTL",
		"OASDELTA_CACHE_SWEEP_INTERVAL", "OASDELTA_MAX_INLINE_SIZE",
		"OASDELTA_DETECT_RENAMES",
	} {
		t.Setenv(key, "")
	}
}

// captureWarnings redirects the default slog logger for the duration of the test.
func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOASDELTAEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.True(t, c.DetectRenames)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOASDELTAEnv(t)
	t.Setenv("OASDELTA_CACHE_ENABLED", "false")
	t.Setenv("OASDELTA_CACHE_MAX_SIZE", "50")
	t.Setenv("OASDELTA_CACHE_FILE_TTL", "30m")
	t.Setenv("OASDELTA_CACHE_CONTENT_TTL", "10m")
	t.Setenv("OASDELTA_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("OASDELTA_MAX_INLINE_SIZE", "5242880")
	t.Setenv("OASDELTA_DETECT_RENAMES", "false")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.False(t, c.DetectRenames)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, c *serverConfig)
	}{
		{
			name:  "bool",
			key:   "OASDELTA_CACHE_ENABLED",
			value: "maybe",
			check: func(t *testing.T, c *serverConfig) { assert.True(t, c.CacheEnabled) },
		},
		{
			name:  "int",
			key:   "OASDELTA_CACHE_MAX_SIZE",
			value: "-3",
			check: func(t *testing.T, c *serverConfig) { assert.Equal(t, 10, c.CacheMaxSize) },
		},
		{
			name:  "int64",
			key:   "OASDELTA_MAX_INLINE_SIZE",
			value: "lots",
			check: func(t *testing.T, c *serverConfig) { assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize) },
		},
		{
			name:  "duration",
			key:   "OASDELTA_CACHE_FILE_TTL",
			value: "0s",
			check: func(t *testing.T, c *serverConfig) { assert.Equal(t, 15*time.Minute, c.CacheFileTTL) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearOASDELTAEnv(t)
			t.Setenv(tt.key, tt.value)
			warnings := captureWarnings(t)

			tt.check(t, loadConfig())
			assert.Contains(t, warnings.String(), "key="+tt.key)
		})
	}
}

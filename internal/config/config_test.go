package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/elasticstat/internal/engine"
)

func newTestViper(t *testing.T, flags ...string) *viper.Viper {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(flags))
	v, err := NewViper(fs)
	require.NoError(t, err)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newTestViper(t), []string{"localhost"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9200", cfg.BaseURL)
	assert.Equal(t, DefaultInterval, cfg.Interval)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, engine.RegressionPassThrough, cfg.Regression)
	assert.Equal(t, 0, cfg.EvictAfter)
	assert.False(t, cfg.Plain)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_Flags(t *testing.T) {
	v := newTestViper(t,
		"--interval", "30s",
		"--username", "flaguser",
		"--on-regression", "clamp",
		"--evict-after", "3",
		"--plain",
	)
	cfg, err := Load(v, []string{"https://elastic:pw@es.example.com:9243"})
	require.NoError(t, err)

	assert.Equal(t, "https://es.example.com:9243", cfg.BaseURL)
	assert.Equal(t, "flaguser", cfg.Username)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, engine.RegressionClamp, cfg.Regression)
	assert.Equal(t, 3, cfg.EvictAfter)
	assert.True(t, cfg.Plain)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("ELASTICSTAT_URI", "es-env:9201")
	t.Setenv("ELASTICSTAT_PASSWORD", "envpass")
	t.Setenv("ELASTICSTAT_EVICT_AFTER", "5")

	cfg, err := Load(newTestViper(t), nil)
	require.NoError(t, err)

	assert.Equal(t, "http://es-env:9201", cfg.BaseURL)
	assert.Equal(t, "envpass", cfg.Password)
	assert.Equal(t, 5, cfg.EvictAfter)
}

func TestLoad_ArgumentBeatsEnvironment(t *testing.T) {
	t.Setenv("ELASTICSTAT_URI", "es-env")

	cfg, err := Load(newTestViper(t), []string{"es-arg"})
	require.NoError(t, err)
	assert.Equal(t, "http://es-arg:9200", cfg.BaseURL)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elasticstat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("uri: https://es.file:9200\ninterval: 15s\non-regression: rebaseline\n"), 0o600))

	cfg, err := Load(newTestViper(t, "--config", path), nil)
	require.NoError(t, err)

	assert.Equal(t, "https://es.file:9200", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Interval)
	assert.Equal(t, engine.RegressionRebaseline, cfg.Regression)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		args  []string
		want  string
	}{
		{name: "missing URI", want: "URI is required"},
		{name: "extra argument", args: []string{"a", "b"}, want: `unexpected argument "b"`},
		{name: "zero interval", flags: []string{"--interval", "0s"}, args: []string{"localhost"}, want: "--interval must be positive"},
		{name: "negative eviction", flags: []string{"--evict-after=-1"}, args: []string{"localhost"}, want: "--evict-after"},
		{name: "bad policy", flags: []string{"--on-regression", "ignore"}, args: []string{"localhost"}, want: "unknown regression policy"},
		{name: "bad log level", flags: []string{"--log-level", "loud"}, args: []string{"localhost"}, want: "invalid log level"},
		{name: "bad scheme", args: []string{"ftp://localhost"}, want: "unsupported scheme"},
		{name: "missing config file", flags: []string{"--config", "/nonexistent/elasticstat.yaml"}, args: []string{"localhost"}, want: "read config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(newTestViper(t, tc.flags...), tc.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("no file disables logging", func(t *testing.T) {
		logger, err := Config{}.NewLogger()
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(-1))
	})

	t.Run("file receives JSON lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "elasticstat.log")
		logger, err := Config{LogFile: path, LogLevel: "warn"}.NewLogger()
		require.NoError(t, err)

		logger.Info("dropped")
		logger.Warn("kept")
		_ = logger.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"kept"`)
		assert.NotContains(t, string(data), "dropped")
	})
}

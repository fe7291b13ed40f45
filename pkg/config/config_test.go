package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join("api", "public.md"), cfg.APIPath())
	assert.Len(t, cfg.EventPaths(), 4)
	assert.Equal(t, filepath.Join("message", "segment.md"), cfg.SegmentPath())
}

func TestLoad_NoFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), withEmptyNames(cfg))
}

func TestLoad_FileAndFlags(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "obmg.yaml")
	content := "input_dir: docs\n" +
		"package: onebot\n" +
		"event_files:\n  - event/message.md\n" +
		"event_names:\n  私聊消息: PrivateMessageEvent\n" +
		"logging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("input", "", "")
	flags.String("output", "", "")
	flags.String("package", "", "")
	require.NoError(t, flags.Set("output", "out"))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "docs", cfg.InputDir)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "onebot", cfg.Package)
	assert.Equal(t, []string{filepath.Join("docs", "event", "message.md")}, cfg.EventPaths())
	assert.Equal(t, filepath.Join("docs", "api", "public.md"), cfg.APIPath())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	name, ok := cfg.EventName("私聊消息")
	assert.True(t, ok)
	assert.Equal(t, "PrivateMessageEvent", name)
	_, ok = cfg.EventName("群消息")
	assert.False(t, ok)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("OBMG_PACKAGE", "fromenv")
	t.Setenv("OBMG_LOGGING_LEVEL", "warn")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Package)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "empty input", modify: func(c *Config) { c.InputDir = " " }},
		{name: "empty output", modify: func(c *Config) { c.OutputDir = "" }},
		{name: "bad package", modify: func(c *Config) { c.Package = "one-bot" }},
		{name: "no workers", modify: func(c *Config) { c.MaxWorkers = 0 }},
		{name: "bad level", modify: func(c *Config) { c.Logging.Level = "loud" }},
		{name: "empty level", modify: func(c *Config) { c.Logging.Level = "" }},
		{name: "bad format", modify: func(c *Config) { c.Logging.Format = "xml" }},
		{name: "unexported event name", modify: func(c *Config) { c.EventNames = map[string]string{"心跳": "heartbeat"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "obmg.yaml")
	cfg := Default()
	cfg.Package = "onebot"
	require.NoError(t, cfg.WriteFile(path))
	require.Error(t, cfg.WriteFile(path), "existing files are not overwritten")

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, withEmptyNames(loaded))
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewLogger(LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("path", "api/public.md").Msg("parsed")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"path":"api/public.md"`)

	_, err = NewLogger(LoggingConfig{Level: "nope"}, &buf)
	assert.Error(t, err)
}

// withEmptyNames normalizes the empty event name map viper produces so configs compare
// equal to Default().
func withEmptyNames(cfg *Config) *Config {
	if len(cfg.EventNames) == 0 {
		cfg.EventNames = nil
	}
	return cfg
}

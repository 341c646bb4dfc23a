package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/sift/internal/filter"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ".sift/logs", cfg.LogDir)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 100, cfg.History.KeepRuns)
}

func TestLoadConfigParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `log_level: trace
max_concurrency: 4
filter:
  ignore_dirs: [node_modules, .git]
  ignore_exts: .log
  ignore_files_by_default: true
history:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "trace", cfg.LogLevel)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, filter.StringList{"node_modules", ".git"}, cfg.Filter.IgnoreDirs)
	assert.Equal(t, filter.StringList{".log"}, cfg.Filter.IgnoreExts)
	assert.True(t, cfg.Filter.IgnoreFilesByDefault)
	assert.False(t, cfg.History.Enabled)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ".sift/logs", cfg.LogDir, "unset keys keep their defaults")
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [unclosed\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigNonTextRuleEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `filter:
  ignore_dirs: [node_modules, 42]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, filter.ErrTypeMismatch)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfigs creates a temporary directory structure for testing.
// It returns the "configs" directory and a cleanup function.
func setupTestConfigs(t *testing.T) (string, func()) {
	configDir, err := os.MkdirTemp("", "config_test_")
	assert.NoError(t, err)

	// Viper requires a "configs" subdirectory to be present.
	actualConfigPath := filepath.Join(configDir, "configs")
	err = os.Mkdir(actualConfigPath, 0755)
	assert.NoError(t, err)

	// Change working directory to the parent of "configs"
	oldWd, err := os.Getwd()
	assert.NoError(t, err)
	err = os.Chdir(configDir)
	assert.NoError(t, err)

	cleanup := func() {
		os.Chdir(oldWd)
		os.RemoveAll(configDir)
	}

	return actualConfigPath, cleanup
}

func TestLoadConfig_SearchPath(t *testing.T) {
	actualConfigPath, cleanup := setupTestConfigs(t)
	defer cleanup()

	configContent := `
vcover:
  path: "/opt/questa/bin/vcover"
  design_unit: "fifo"
coverage:
  dir: "sim/coverage"
`
	err := os.WriteFile(filepath.Join(actualConfigPath, "config.yaml"), []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/opt/questa/bin/vcover", cfg.Vcover.Path)
	assert.Equal(t, "fifo", cfg.Vcover.DesignUnit)
	assert.Equal(t, "sim/coverage", cfg.Coverage.Dir)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	actualConfigPath, cleanup := setupTestConfigs(t)
	defer cleanup()

	malformedContent := "vcover: test\n  path: oops" // Bad indentation
	err := os.WriteFile(filepath.Join(actualConfigPath, "config.yaml"), []byte(malformedContent), 0644)
	require.NoError(t, err)

	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_Defaults(t *testing.T) {
	_, cleanup := setupTestConfigs(t)
	defer cleanup()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "vcover", cfg.Vcover.Path)
	assert.Equal(t, "cpm", cfg.Vcover.DesignUnit)
	assert.Equal(t, 120, cfg.Vcover.Timeout)
	assert.Equal(t, 4, cfg.Vcover.Concurrency)
	assert.Equal(t, "coverage", cfg.Coverage.Dir)
	assert.Equal(t, []string{"merged.ucdb", "CpmMainTest.ucdb"}, cfg.Coverage.Databases)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Empty(t, cfg.Output.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	actualConfigPath, cleanup := setupTestConfigs(t)
	defer cleanup()

	configContent := `
vcover:
  timeout: 30
coverage:
  databases: ["run1.ucdb"]
output:
  format: yaml
`
	err := os.WriteFile(filepath.Join(actualConfigPath, "config.yaml"), []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Vcover.Timeout)
	assert.Equal(t, "vcover", cfg.Vcover.Path)
	assert.Equal(t, []string{"run1.ucdb"}, cfg.Coverage.Databases)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	_, cleanup := setupTestConfigs(t)
	defer cleanup()

	t.Setenv("COVMODEL_VCOVER_PATH", "/tools/vcover")
	t.Setenv("COVMODEL_VCOVER_DESIGN_UNIT", "top")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tools/vcover", cfg.Vcover.Path)
	assert.Equal(t, "top", cfg.Vcover.DesignUnit)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_OutputFormats(t *testing.T) {
	for _, format := range OutputFormats {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte("output:\n  format: "+format+"\n"), 0644))

			cfg, err := LoadConfigFile(path)
			require.NoError(t, err)
			assert.Equal(t, format, cfg.Output.Format)
		})
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "unknown format", content: "output:\n  format: xml\n", errMsg: "unsupported output format"},
		{name: "zero concurrency", content: "vcover:\n  concurrency: 0\n", errMsg: "concurrency"},
		{name: "negative timeout", content: "vcover:\n  timeout: -1\n", errMsg: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfigFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

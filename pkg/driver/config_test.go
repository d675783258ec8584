package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "$$ ", cfg.Prompt)
	assert.Equal(t, ColorAuto, cfg.Color)
}

func TestLoadConfigYAML(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "config.yml"))
	require.NoError(t, err)
	want := &Config{
		Prompt:             "> ",
		ContinuationPrompt: "... ",
		Debug:              true,
		LogLevel:           "info",
		HistoryFile:        "",
		MaxCallDepth:       500,
		Color:              ColorNever,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigTOMLKeepsUnsetDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "config.toml"))
	require.NoError(t, err)
	want := DefaultConfig()
	want.Prompt = "> "
	want.LogLevel = "debug"
	want.MaxCallDepth = 250
	want.Color = ColorAlways
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	_, err := LoadConfig(filepath.Join("testdata", "unknown.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")

	_, err = LoadConfig(filepath.Join("testdata", "unknown.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Colour")
}

func TestLoadConfigReportsEveryIssue(t *testing.T) {
	_, err := LoadConfig(filepath.Join("testdata", "invalid.yml"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 4)
	assert.Contains(t, err.Error(), "prompt must not be empty")
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "max_call_depth")
	assert.Contains(t, err.Error(), `"sometimes"`)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join("testdata", "empty.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")

	_, err = LoadConfig(filepath.Join("testdata", "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(filepath.Join("testdata", "fixtures"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestResolveConfigUsesEnvironment(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	cfg, err := ResolveConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	t.Setenv(ConfigEnv, filepath.Join("testdata", "config.toml"))
	cfg, err = ResolveConfig("")
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.MaxCallDepth)

	cfg, err = ResolveConfig(filepath.Join("testdata", "config.yml"))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxCallDepth)
}

func TestHistoryPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/home/tester", ".tdop_history"), cfg.HistoryPath())

	cfg.HistoryFile = "/tmp/hist"
	assert.Equal(t, "/tmp/hist", cfg.HistoryPath())

	cfg.HistoryFile = ""
	assert.Empty(t, cfg.HistoryPath())
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "tdop.example.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

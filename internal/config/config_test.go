// ABOUTME: Tests for diary configuration loading and path expansion.
// ABOUTME: Covers defaults, YAML parsing, env and flag overrides, and destinations.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/diary/internal/models"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"absolute", "/tmp/foo", "/tmp/foo"},
		{"relative", "foo/bar", "foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, cfg.Journal.Title)
	assert.Equal(t, DefaultFilename, cfg.Journal.Filename)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
}

func writeConfig(t *testing.T, dir, data string) string {
	t.Helper()
	configDir := filepath.Join(dir, "diary")
	require.NoError(t, os.MkdirAll(configDir, 0750))
	path := filepath.Join(configDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
	return path
}

func TestLoadYAMLConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	writeConfig(t, tmpDir, `journal:
  title: "Captain's Log"
  output_dir: "~/logs"
  filename: "stardate.txt"
log:
  level: debug
  format: json
`)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "Captain's Log", cfg.Journal.Title)
	assert.Equal(t, "stardate.txt", cfg.Journal.Filename)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	home, _ := os.UserHomeDir()
	got, err := cfg.GetOutputDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs"), got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	writeConfig(t, tmpDir, "log:\n  level: warn\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, cfg.Journal.Title)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	writeConfig(t, tmpDir, "journal:\n  title: from-file\n")

	t.Setenv("DIARY_JOURNAL_TITLE", "from-env")
	t.Setenv("DIARY_JOURNAL_OUTPUT_DIR", "/tmp/diaries")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Journal.Title)
	assert.Equal(t, "/tmp/diaries", cfg.Journal.OutputDir)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DIARY_JOURNAL_TITLE", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("title", "", "")
	flags.String("log-level", "", "")
	flags.String("unrelated", "", "")
	require.NoError(t, flags.Parse([]string{"--title", "from-flag", "--unrelated", "x"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Journal.Title)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level, "unset flag should not override level")
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := Default()
	cfg.Journal.Title = "saved"
	cfg.Journal.OutputDir = "~/saved-journals"
	require.NoError(t, cfg.Save())

	loaded, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.Journal.Title)
	assert.Equal(t, "~/saved-journals", loaded.Journal.OutputDir)
}

func TestDestination(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Journal.OutputDir = dir

	got, err := cfg.Destination(models.NewJournal("t"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFilename), got)
}

func TestDestinationGeneratedName(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Journal.OutputDir = dir
	cfg.Journal.Filename = ""
	j := models.NewJournal("t")

	got, err := cfg.Destination(j)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(got))
	assert.Equal(t, time.Now().Format("2006-01-02")+"-"+j.ShortID()+".txt", filepath.Base(got))
}

func TestDefaultOutputDirIsCwd(t *testing.T) {
	cfg := Default()
	got, err := cfg.GetOutputDir()
	require.NoError(t, err)

	cwd, _ := os.Getwd()
	assert.Equal(t, cwd, got)
}

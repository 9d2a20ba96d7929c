// ABOUTME: Configuration management for diary with layered YAML, env, and flag loading.
// ABOUTME: Resolves journal titles, destination paths, logging settings, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/2389-research/diary/internal/models"
)

// Defaults applied before the config file, environment, and flags.
const (
	DefaultTitle     = "Dear Diary"
	DefaultFilename  = "diary.txt"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// EnvPrefix prefixes environment overrides, e.g. DIARY_JOURNAL_TITLE.
const EnvPrefix = "DIARY_"

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"title":      "journal.title",
	"out-dir":    "journal.output_dir",
	"filename":   "journal.filename",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// Config stores diary configuration loaded from ~/.config/diary/config.yaml.
type Config struct {
	Journal JournalConfig `koanf:"journal" yaml:"journal"`
	Log     LogConfig     `koanf:"log" yaml:"log"`
}

// JournalConfig holds defaults for new journals and where they are saved.
type JournalConfig struct {
	Title     string `koanf:"title" yaml:"title"`
	OutputDir string `koanf:"output_dir" yaml:"output_dir,omitempty"`
	Filename  string `koanf:"filename" yaml:"filename"` // empty generates <date>-<short-id>.txt
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Title:    DefaultTitle,
			Filename: DefaultFilename,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// GetOutputDir returns the directory journals are saved to, defaulting to cwd.
func (c *Config) GetOutputDir() (string, error) {
	if c.Journal.OutputDir != "" {
		return ExpandPath(c.Journal.OutputDir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return cwd, nil
}

// Destination returns the default save path for a journal.
func (c *Config) Destination(j *models.Journal) (string, error) {
	dir, err := c.GetOutputDir()
	if err != nil {
		return "", err
	}
	name := c.Journal.Filename
	if name == "" {
		name = time.Now().Format("2006-01-02") + "-" + j.ShortID() + ".txt"
	}
	return filepath.Join(dir, name), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "diary", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load builds the configuration from defaults, the config file, DIARY_* environment
// variables, and explicitly set flags, in increasing priority.
// cfgFile overrides the default path; a missing default file is not an error.
// flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	def := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"journal.title":    def.Journal.Title,
		"journal.filename": def.Journal.Filename,
		"log.level":        def.Log.Level,
		"log.format":       def.Log.Format,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, err
		}
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), koanfyaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) || cfgFile != "" {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// envKey maps DIARY_JOURNAL_OUTPUT_DIR to journal.output_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// flagKey only passes through flags that were set and have a config key.
func flagKey(flags *pflag.FlagSet) func(*pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	}
}

// Save writes config to the default config path.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

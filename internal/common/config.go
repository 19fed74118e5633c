package common

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/obi-eke/pdfgrid/constants"
)

// Config holds all application configuration.
type Config struct {
	Dirs    DirsConfig    `toml:"dirs"`
	Tabula  TabulaConfig  `toml:"tabula"`
	Camelot CamelotConfig `toml:"camelot"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// DirsConfig holds the input/output folder layout.
type DirsConfig struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
}

// TabulaConfig holds the Java-backed extractor's invocation settings.
type TabulaConfig struct {
	Java    string        `toml:"java"`    // binary name or absolute path; if empty -> "java"
	JarPath string        `toml:"jar"`     // path to tabula jar; if empty -> "tabula.jar"
	Timeout time.Duration `toml:"timeout"` // 0 = no timeout
}

// CamelotConfig holds the Python-backed extractor's invocation settings.
type CamelotConfig struct {
	Python  string        `toml:"python"` // binary name or absolute path; if empty -> "python3"
	Timeout time.Duration `toml:"timeout"`
}

// HistoryConfig holds the run-history store settings.
type HistoryConfig struct {
	Path    string `toml:"path"` // SQLite file; if empty -> "pdfgrid-history.db"
	Enabled bool   `toml:"enabled"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
}

// ConfigFile is the optional TOML file looked up in the working directory.
const ConfigFile = "pdfgrid.toml"

// LoadConfig builds configuration from defaults, the optional TOML file,
// and environment variables, in that order of precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Dirs: DirsConfig{
			Input:  constants.DefaultInputDir,
			Output: constants.DefaultOutputDir,
		},
		Tabula: TabulaConfig{
			Java:    "java",
			JarPath: "tabula.jar",
			Timeout: 2 * time.Minute,
		},
		Camelot: CamelotConfig{
			Python:  "python3",
			Timeout: 2 * time.Minute,
		},
		History: HistoryConfig{
			Path:    "pdfgrid-history.db",
			Enabled: true,
		},
		Log: LogConfig{Level: "info"},
	}

	if _, err := toml.DecodeFile(ConfigFile, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, WrapError(err, "decode "+ConfigFile)
		}
	}

	cfg.Dirs.Input = getEnv("PDFGRID_INPUT_DIR", cfg.Dirs.Input)
	cfg.Dirs.Output = getEnv("PDFGRID_OUTPUT_DIR", cfg.Dirs.Output)
	cfg.Tabula.Java = getEnv("PDFGRID_JAVA", cfg.Tabula.Java)
	cfg.Tabula.JarPath = getEnv("PDFGRID_TABULA_JAR", cfg.Tabula.JarPath)
	cfg.Tabula.Timeout = getEnvAsDuration("PDFGRID_TABULA_TIMEOUT", cfg.Tabula.Timeout)
	cfg.Camelot.Python = getEnv("PDFGRID_PYTHON", cfg.Camelot.Python)
	cfg.Camelot.Timeout = getEnvAsDuration("PDFGRID_CAMELOT_TIMEOUT", cfg.Camelot.Timeout)
	cfg.History.Path = getEnv("PDFGRID_HISTORY_DB", cfg.History.Path)
	cfg.History.Enabled = getEnvAsBool("PDFGRID_HISTORY", cfg.History.Enabled)
	cfg.Log.Level = getEnv("PDFGRID_LOG_LEVEL", cfg.Log.Level)

	return cfg, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

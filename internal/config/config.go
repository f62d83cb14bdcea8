package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains the listener and browser-facing settings.
type Server struct {
	Bind           string   `toml:"bind"`
	AllowedOrigins []string `toml:"allowed_origins"`
	OutputURL      string   `toml:"output_url"`
}

// Paths contains the process-lifetime directories. Empty per-kind dirs are
// derived from DataDir.
type Paths struct {
	DataDir     string `toml:"data_dir"`
	DownloadDir string `toml:"download_dir"`
	OutputDir   string `toml:"output_dir"`
	SubsDir     string `toml:"subs_dir"`
}

// Tools contains the external binaries and their parameters.
type Tools struct {
	YtDlp              string   `toml:"ytdlp"`
	DownloadFormat     string   `toml:"download_format"`
	AllowedSourceHosts []string `toml:"allowed_source_hosts"`
	FFmpeg             string   `toml:"ffmpeg"`
	Transcriber        string   `toml:"transcriber"`
	Whisper            string   `toml:"whisper"`
	WhisperModel       string   `toml:"whisper_model"`
	WhisperLanguage    string   `toml:"whisper_language"`
	WhisperCpp         string   `toml:"whispercpp"`
	WhisperCppModel    string   `toml:"whispercpp_model"`
}

// Captions contains caption layout and style.
type Captions struct {
	MaxLineLength  int    `toml:"max_line_length"`
	SecondsPerLine int    `toml:"seconds_per_line"`
	Font           string `toml:"font"`
	FontSize       int    `toml:"font_size"`
	MarginV        int    `toml:"margin_v"`
}

// Jobs contains admission control and per-job limits.
type Jobs struct {
	MaxConcurrent        int  `toml:"max_concurrent"`
	TimeoutSeconds       int  `toml:"timeout_seconds"`
	TrimFromSectionStart bool `toml:"trim_from_section_start"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for ytshorts.
type Config struct {
	Server   Server   `toml:"server"`
	Paths    Paths    `toml:"paths"`
	Tools    Tools    `toml:"tools"`
	Captions Captions `toml:"captions"`
	Jobs     Jobs     `toml:"jobs"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error: defaults plus environment overrides apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("ytshorts.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the download, output and subtitle directories.
// It is safe to call repeatedly.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.DownloadDir, c.Paths.OutputDir, c.Paths.SubsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath is the advisory lock guarding the data dir against a second server.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "ytshorts.lock")
}

// JobTimeout converts Jobs.TimeoutSeconds; zero disables the limit.
func (c *Config) JobTimeout() time.Duration {
	return time.Duration(c.Jobs.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

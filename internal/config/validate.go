package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/forPelevin/ytshorts/internal/logging"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateCaptions(); err != nil {
		return err
	}
	if err := c.validateJobs(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if _, _, err := net.SplitHostPort(c.Server.Bind); err != nil {
		return fmt.Errorf("server.bind %q: %w", c.Server.Bind, err)
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.YtDlp == "" {
		return errors.New("tools.ytdlp must be set")
	}
	if c.Tools.FFmpeg == "" {
		return errors.New("tools.ffmpeg must be set")
	}
	switch c.Tools.Transcriber {
	case "whisper":
		if c.Tools.Whisper == "" {
			return errors.New("tools.whisper must be set when tools.transcriber is whisper")
		}
	case "whispercpp":
		if c.Tools.WhisperCppModel == "" {
			return errors.New("tools.whispercpp_model must be set when tools.transcriber is whispercpp")
		}
	default:
		return fmt.Errorf("tools.transcriber must be whisper or whispercpp, got %q", c.Tools.Transcriber)
	}
	return nil
}

func (c *Config) validateCaptions() error {
	if c.Captions.MaxLineLength <= 0 {
		return errors.New("captions.max_line_length must be positive")
	}
	if c.Captions.SecondsPerLine <= 0 {
		return errors.New("captions.seconds_per_line must be positive")
	}
	if c.Captions.FontSize < 0 || c.Captions.MarginV < 0 {
		return errors.New("captions.font_size and captions.margin_v must be >= 0")
	}
	return nil
}

func (c *Config) validateJobs() error {
	if c.Jobs.MaxConcurrent <= 0 {
		return errors.New("jobs.max_concurrent must be positive")
	}
	if c.Jobs.TimeoutSeconds < 0 {
		return errors.New("jobs.timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("logging.format must be console, json or auto, got %q", c.Logging.Format)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not recognised", c.Logging.Level)
	}
	return nil
}

package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeServer()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	dirs := []struct {
		key   string
		value *string
		sub   string
	}{
		{"paths.download_dir", &c.Paths.DownloadDir, "downloads"},
		{"paths.output_dir", &c.Paths.OutputDir, "output"},
		{"paths.subs_dir", &c.Paths.SubsDir, "subs"},
	}
	for _, d := range dirs {
		if strings.TrimSpace(*d.value) == "" {
			*d.value = filepath.Join(c.Paths.DataDir, d.sub)
		}
		if *d.value, err = expandPath(*d.value); err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
	}
	return nil
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}
	c.Server.OutputURL = strings.TrimSpace(c.Server.OutputURL)
	if c.Server.OutputURL == "" {
		c.Server.OutputURL = defaultOutputURL
	}
	if !strings.HasPrefix(c.Server.OutputURL, "/") {
		c.Server.OutputURL = "/" + c.Server.OutputURL
	}
	if !strings.HasSuffix(c.Server.OutputURL, "/") {
		c.Server.OutputURL += "/"
	}
}

func (c *Config) normalizeTools() {
	c.Tools.Transcriber = strings.ToLower(strings.TrimSpace(c.Tools.Transcriber))
	if c.Tools.Transcriber == "" {
		c.Tools.Transcriber = defaultTranscriber
	}
	hosts := c.Tools.AllowedSourceHosts[:0]
	for _, h := range c.Tools.AllowedSourceHosts {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	c.Tools.AllowedSourceHosts = hosts
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variables that override file values.
const (
	EnvBind          = "YTSHORTS_BIND"
	EnvDataDir       = "YTSHORTS_DATA_DIR"
	EnvLogLevel      = "YTSHORTS_LOG_LEVEL"
	EnvLogFormat     = "YTSHORTS_LOG_FORMAT"
	EnvMaxConcurrent = "YTSHORTS_MAX_CONCURRENT"
)

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	if v, ok := lookup(EnvBind); ok && strings.TrimSpace(v) != "" {
		c.Server.Bind = v
	}
	if v, ok := lookup(EnvDataDir); ok && strings.TrimSpace(v) != "" {
		c.Paths.DataDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && strings.TrimSpace(v) != "" {
		c.Logging.Format = v
	}
	if v, ok := lookup(EnvMaxConcurrent); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxConcurrent, err)
		}
		c.Jobs.MaxConcurrent = n
	}
	return nil
}

package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/forPelevin/ytshorts/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logging.Component(logger, "pipeline").Info("clip started", logging.String(logging.FieldJobID, "clip_1"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single info line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["level"] != "info" || rec["msg"] != "clip started" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec["component"] != "pipeline" || rec["job_id"] != "clip_1" {
		t.Fatalf("expected component and job id fields, got %v", rec)
	}
	if _, ok := rec["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", rec)
	}
}

func TestNew_AutoFallsBackToJSONForBuffers(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "auto", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected json output, got %q", buf.String())
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("probe", logging.String(logging.FieldTool, "ffmpeg"))
	out := buf.String()
	if !strings.Contains(out, "level=debug") || !strings.Contains(out, "tool=ffmpeg") {
		t.Fatalf("unexpected console output: %q", out)
	}
	if !strings.Contains(out, "logger_test.go:") {
		t.Fatalf("expected source location at debug level, got %q", out)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestValidators(t *testing.T) {
	if !logging.ValidLevel("WARN") || logging.ValidLevel("verbose") {
		t.Fatal("unexpected level validation")
	}
	if !logging.ValidFormat("json") || logging.ValidFormat("xml") {
		t.Fatal("unexpected format validation")
	}
}

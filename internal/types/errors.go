package types

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrNonPositiveDuration = errors.New("clip duration must be positive")
	ErrFilesystem          = errors.New("filesystem failure")
	ErrBusy                = errors.New("server busy: too many clips in progress")
)

// ToolError reports an external tool that exited non-zero or left no usable output.
type ToolError struct {
	Stage  Stage
	Tool   string
	Err    error
	Output string
}

func (e *ToolError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed", e.Tool)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString("\n")
		b.WriteString(out)
	}
	return b.String()
}

func (e *ToolError) Unwrap() error { return e.Err }

// maxToolOutput caps how much combined tool output is kept on a ToolError.
const maxToolOutput = 2048

// NewToolError builds a ToolError keeping only the tail of the tool output,
// where ffmpeg and yt-dlp put the actual diagnostic.
func NewToolError(stage Stage, tool string, err error, output []byte) *ToolError {
	out := string(output)
	if len(out) > maxToolOutput {
		out = out[len(out)-maxToolOutput:]
	}
	return &ToolError{Stage: stage, Tool: tool, Err: err, Output: out}
}

var errEmptyArtifact = errors.New("output file is empty")

// StatArtifact confirms that a tool left a non-empty file at path.
func StatArtifact(kind ArtifactKind, path string) (Artifact, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("missing %s output: %w", kind, err)
	}
	if fi.IsDir() || fi.Size() == 0 {
		return Artifact{}, fmt.Errorf("%s output %s: %w", kind, path, errEmptyArtifact)
	}
	return Artifact{Kind: kind, Path: path}, nil
}

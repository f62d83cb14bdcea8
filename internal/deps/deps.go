package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/forPelevin/ytshorts/internal/config"
)

// Requirement is an external binary the pipeline shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the binaries the configured pipeline will invoke.
func Requirements(cfg *config.Config) []Requirement {
	reqs := []Requirement{
		{Name: "yt-dlp", Command: cfg.Tools.YtDlp, Description: "downloads the requested section"},
		{Name: "ffmpeg", Command: cfg.Tools.FFmpeg, Description: "trims, extracts audio and burns captions"},
	}
	switch cfg.Tools.Transcriber {
	case "whispercpp":
		reqs = append(reqs, Requirement{Name: "whisper.cpp", Command: cfg.Tools.WhisperCpp, Description: "transcribes audio"})
	default:
		reqs = append(reqs, Requirement{Name: "whisper", Command: cfg.Tools.Whisper, Description: "transcribes audio"})
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Command = resolved
		results = append(results, status)
	}
	return results
}

// CheckFile reports whether a model or data file exists and is non-empty.
func CheckFile(name, path, description string) Status {
	status := Status{Name: name, Command: path, Description: description}
	info, err := os.Stat(path)
	switch {
	case strings.TrimSpace(path) == "":
		status.Detail = "path not configured"
	case err != nil:
		status.Detail = fmt.Sprintf("file %q not found", path)
	case info.IsDir() || info.Size() == 0:
		status.Detail = fmt.Sprintf("file %q is empty or a directory", path)
	default:
		status.Available = true
	}
	return status
}

// Missing returns the names of required dependencies that are unavailable.
func Missing(statuses []Status) []string {
	var out []string
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			out = append(out, s.Name)
		}
	}
	return out
}

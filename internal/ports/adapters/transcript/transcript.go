// Package transcript holds the output-file conventions shared by the
// whisper-family transcribers.
package transcript

import (
	"os"
	"path/filepath"
	"strings"
)

// FileName is the txt file whisper tools derive from an input audio path:
// the input's base name with its extension replaced by .txt.
func FileName(audioPath string) string {
	base := filepath.Base(audioPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".txt"
}

// Read loads a transcript file and collapses whisper's per-segment lines into
// one space-separated text.
func Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(string(b)), " "), nil
}

package remap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Remapping substitutes an import alias for a path prefix during
// compilation. Path is always absolute: the right-hand side of the
// source line is resolved against the remapping file's directory,
// never against the working directory.
type Remapping struct {
	Name string
	Path string
}

// String renders the compiler's name=path form.
func (r Remapping) String() string {
	return r.Name + "=" + r.Path
}

// Parse reads a remappings file. Each line has the form
// alias=relative/path; blank lines and lines without exactly one "="
// contribute nothing. Order is preserved and duplicate aliases are kept
// distinct; their precedence is the compiler's concern.
func Parse(path string) ([]Remapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read remapping file: %w", err)
	}

	dir := filepath.Dir(path) + "/"

	var remappings []Remapping
	dropped := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			dropped++
			continue
		}
		remappings = append(remappings, Remapping{
			Name: parts[0],
			Path: dir + parts[1],
		})
	}
	if dropped > 0 {
		slog.Warn("ignored malformed remapping lines", "file", path, "count", dropped)
	}
	return remappings, nil
}

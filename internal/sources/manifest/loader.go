// Package manifest reads the asset manifest produced by the ingestion
// collaborator and maps it onto registry assets.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/splice/internal/utils"
)

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Loader handles loading and parsing of the assets manifest
type Loader struct {
	filePath string
}

// NewLoader creates a new manifest loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the manifest location
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the manifest file
func (l *Loader) Load() (File, error) {
	f, err := os.Open(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer utils.Close(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return File{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	return Parse(expandPlaceholders(data))
}

// Parse decodes manifest YAML. Unknown fields are rejected so typos in the
// ingestion output surface instead of silently dropping media.
func Parse(data []byte) (File, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to parse manifest yaml: %w", err)
	}
	return file, nil
}

// expandPlaceholders replaces {{NAME}} with the NAME environment variable
// Example: src: {{MEDIA_ROOT}}/intro.mp4
func expandPlaceholders(data []byte) []byte {
	return placeholder.ReplaceAllFunc(data, func(m []byte) []byte {
		name := placeholder.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}

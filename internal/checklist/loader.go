package checklist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadRubric reads a rubric file. The format follows the extension: .yaml, .yml or .toml.
func LoadRubric(path string) (*Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rubric: %w", err)
	}
	spec, err := ParseSpec(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse rubric %s: %w", path, err)
	}
	return NewRubric(spec)
}

// ParseSpec decodes a rubric spec in the format named by ext.
func ParseSpec(data []byte, ext string) (Spec, error) {
	var spec Spec
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return Spec{}, err
		}
	case "toml":
		if err := toml.Unmarshal(data, &spec); err != nil {
			return Spec{}, err
		}
	default:
		return Spec{}, fmt.Errorf("unsupported rubric format %q", ext)
	}
	return spec, nil
}

// Resolve picks the rubric file when one is given, otherwise the named built-in revision.
func Resolve(revision, rubricFile string) (*Rubric, error) {
	if rubricFile != "" {
		return LoadRubric(rubricFile)
	}
	if revision == "" {
		revision = DefaultRevision
	}
	return Revision(revision)
}

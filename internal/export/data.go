// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-digest/pkg/types"
)

// Document is the structured export of one run.
type Document struct {
	Scientist    string              `yaml:"scientist" json:"scientist"`
	Publications []types.Publication `yaml:"publications" json:"publications"`
}

func newDocument(scientist string, pubs []types.Publication) Document {
	if pubs == nil {
		pubs = []types.Publication{}
	}
	return Document{Scientist: scientist, Publications: pubs}
}

// YAML writes <name>_papers.yaml.
type YAML struct {
	Dir string
}

// Name implements Exporter.
func (y *YAML) Name() string { return "yaml" }

// Export implements Exporter.
func (y *YAML) Export(_ context.Context, scientist string, pubs []types.Publication) (string, error) {
	path, err := outputPath(y.Dir, FileStem(scientist)+"_papers.yaml")
	if err != nil {
		return "", err
	}
	err = writeFileAtomic(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(scientist, pubs)); err != nil {
			return fmt.Errorf("marshaling yaml: %w", err)
		}
		return enc.Close()
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// JSON writes <name>_papers.json.
type JSON struct {
	Dir string
}

// Name implements Exporter.
func (j *JSON) Name() string { return "json" }

// Export implements Exporter.
func (j *JSON) Export(_ context.Context, scientist string, pubs []types.Publication) (string, error) {
	path, err := outputPath(j.Dir, FileStem(scientist)+"_papers.json")
	if err != nil {
		return "", err
	}
	err = writeFileAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newDocument(scientist, pubs)); err != nil {
			return fmt.Errorf("marshaling json: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

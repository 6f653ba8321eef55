// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the publications kept by a run to files: a
// spreadsheet, a summaries document, and optional YAML, JSON and SQLite
// outputs. File names are derived from the scientist's name.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pdiddy/scholar-digest/pkg/types"
)

// Exporter writes publications to one output file.
type Exporter interface {
	// Name identifies the format in progress output.
	Name() string

	// Export writes pubs and returns the path written.
	Export(ctx context.Context, scientist string, pubs []types.Publication) (string, error)
}

// New returns one exporter per format in cfg, in order. Repeated formats
// are written once.
func New(cfg types.ExportConfig) ([]Exporter, error) {
	formats := cfg.Formats
	if len(formats) == 0 {
		formats = types.DefaultConfig().Export.Formats
	}

	seen := make(map[types.ExportFormat]bool, len(formats))
	var out []Exporter
	for _, f := range formats {
		f = types.ExportFormat(strings.ToLower(strings.TrimSpace(string(f))))
		if seen[f] {
			continue
		}
		seen[f] = true

		switch f {
		case types.FormatXLSX:
			out = append(out, &XLSX{Dir: cfg.OutputDir, IncludeAbstract: cfg.IncludeAbstract})
		case types.FormatMarkdown, "md":
			out = append(out, &Markdown{Dir: cfg.OutputDir})
		case types.FormatYAML, "yml":
			out = append(out, &YAML{Dir: cfg.OutputDir})
		case types.FormatJSON:
			out = append(out, &JSON{Dir: cfg.OutputDir})
		case types.FormatSQLite, "db":
			out = append(out, &SQLite{Dir: cfg.OutputDir})
		default:
			return nil, fmt.Errorf("unknown export format %q", f)
		}
	}
	return out, nil
}

// BatchResult holds the outcome of writing every configured format.
type BatchResult struct {
	Written []string
	Failed  int
}

// HasFailures reports whether any exporter failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ExportAll runs every exporter, printing one status line each. A failing
// exporter does not stop the others.
func ExportAll(ctx context.Context, exporters []Exporter, scientist string, pubs []types.Publication, w io.Writer) BatchResult {
	var result BatchResult
	for _, e := range exporters {
		if ctx.Err() != nil {
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (%v)\n", e.Name(), ctx.Err())
			continue
		}
		path, err := e.Export(ctx, scientist, pubs)
		if err != nil {
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (%v)\n", e.Name(), err)
			continue
		}
		result.Written = append(result.Written, path)
		fmt.Fprintf(w, "wrote:   %s\n", path)
	}
	return result
}

// FileStem turns a scientist's name into a file name prefix. Path
// separators and control characters become underscores; an empty name
// becomes "scientist".
func FileStem(scientist string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			return '_'
		case unicode.IsControl(r):
			return '_'
		}
		return r
	}, strings.TrimSpace(scientist))
	stem = strings.Trim(stem, ". ")
	if stem == "" {
		return "scientist"
	}
	return stem
}

// outputPath joins dir and name, creating dir when needed.
func outputPath(dir, name string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return filepath.Join(dir, name), nil
}

// writeFileAtomic writes through a temporary file in the destination
// directory and renames it into place once write succeeds.
func writeFileAtomic(destPath string, write func(io.Writer) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writeErr := write(tmpFile)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"fmt"
	"io"

	"github.com/nao1215/markdown"

	"github.com/pdiddy/scholar-digest/pkg/types"
)

const markdownSuffix = "_summaries.md"

// Markdown writes the summaries document <name>_summaries.md: a title with
// the scientist's name and one section per publication.
type Markdown struct {
	Dir string
}

// Name implements Exporter.
func (m *Markdown) Name() string { return "markdown" }

// Export implements Exporter.
func (m *Markdown) Export(_ context.Context, scientist string, pubs []types.Publication) (string, error) {
	path, err := outputPath(m.Dir, FileStem(scientist)+markdownSuffix)
	if err != nil {
		return "", err
	}

	err = writeFileAtomic(path, func(w io.Writer) error {
		return WriteSummaries(w, scientist, pubs)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteSummaries renders the summaries document to w.
func WriteSummaries(w io.Writer, scientist string, pubs []types.Publication) error {
	md := markdown.NewMarkdown(w)
	md.H1(fmt.Sprintf("Publications of %s", scientist))
	md.PlainText("")

	for _, p := range pubs {
		md.H2(fmt.Sprintf("%d - %s", p.Year, p.Title))
		md.PlainText("")
		md.PlainText(p.Summary)
		md.PlainText("")
	}

	if err := md.Build(); err != nil {
		return fmt.Errorf("writing summaries: %w", err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-digest/pkg/types"
)

func samplePubs() []types.Publication {
	return []types.Publication{
		{Scientist: "Jane Doe", Title: "Graphene Growth", Year: 2024, Abstract: "Full abstract one.", Summary: "Summary one.", URL: "https://scholar.example/1"},
		{Scientist: "Jane Doe", Title: "Laser Arrays", Year: 2022, Abstract: "Full abstract two.", Summary: "Summary two."},
	}
}

// --- factory ---

func TestNew(t *testing.T) {
	exps, err := New(types.ExportConfig{
		OutputDir: "out",
		Formats:   []types.ExportFormat{"xlsx", "MD", "markdown", "yaml", "json", "sqlite"},
	})
	require.NoError(t, err)

	var names []string
	for _, e := range exps {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"xlsx", "markdown", "yaml", "json", "sqlite"}, names)
}

func TestNewDefaults(t *testing.T) {
	exps, err := New(types.ExportConfig{})
	require.NoError(t, err)
	require.Len(t, exps, 2)
	assert.Equal(t, "xlsx", exps[0].Name())
	assert.Equal(t, "markdown", exps[1].Name())
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New(types.ExportConfig{Formats: []types.ExportFormat{"docx"}})
	assert.ErrorContains(t, err, `unknown export format "docx"`)
}

func TestFileStem(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Jane Doe", "Jane Doe"},
		{"  Jane Doe  ", "Jane Doe"},
		{"A/B\\C", "A_B_C"},
		{"..", "scientist"},
		{"", "scientist"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileStem(tt.in), tt.in)
	}
}

// --- xlsx ---

func TestXLSXExport(t *testing.T) {
	dir := t.TempDir()
	x := &XLSX{Dir: dir}

	path, err := x.Export(context.Background(), "Jane Doe", samplePubs())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Jane Doe_papers.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Publications")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Scientist Name", "Title", "Publication Date", "Abstract Summary"}, rows[0])
	assert.Equal(t, []string{"Jane Doe", "Graphene Growth", "2024", "Summary one."}, rows[1])
	assert.Equal(t, []string{"Jane Doe", "Laser Arrays", "2022", "Summary two."}, rows[2])
}

func TestXLSXIncludeAbstract(t *testing.T) {
	dir := t.TempDir()
	path, err := (&XLSX{Dir: dir, IncludeAbstract: true}).Export(context.Background(), "Jane", samplePubs())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Publications")
	require.NoError(t, err)
	assert.Equal(t, "Abstract", rows[0][4])
	assert.Equal(t, "Full abstract one.", rows[1][4])
}

func TestXLSXEmpty(t *testing.T) {
	path, err := (&XLSX{Dir: t.TempDir()}).Export(context.Background(), "Nobody", nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Publications")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// --- markdown ---

func TestMarkdownExport(t *testing.T) {
	dir := t.TempDir()
	path, err := (&Markdown{Dir: dir}).Export(context.Background(), "Jane Doe", samplePubs())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Jane Doe_summaries.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "# Publications of Jane Doe")
	assert.Contains(t, text, "## 2024 - Graphene Growth")
	assert.Contains(t, text, "## 2022 - Laser Arrays")
	assert.Less(t, strings.Index(text, "Graphene Growth"), strings.Index(text, "Summary one."))
	assert.Less(t, strings.Index(text, "Summary one."), strings.Index(text, "Laser Arrays"))
}

func TestMarkdownLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := (&Markdown{Dir: dir}).Export(context.Background(), "Jane", samplePubs())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Jane_summaries.md", entries[0].Name())
}

// --- yaml / json ---

func TestYAMLExport(t *testing.T) {
	path, err := (&YAML{Dir: t.TempDir()}).Export(context.Background(), "Jane", samplePubs())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "Jane_papers.yaml"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "Jane", doc.Scientist)
	assert.Equal(t, samplePubs(), doc.Publications)
}

func TestJSONExportEmpty(t *testing.T) {
	path, err := (&JSON{Dir: t.TempDir()}).Export(context.Background(), "Jane", nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"publications": []`)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Empty(t, doc.Publications)
}

// --- sqlite ---

func TestSQLiteUpsert(t *testing.T) {
	dir := t.TempDir()
	s := &SQLite{Dir: dir}
	ctx := context.Background()

	path, err := s.Export(ctx, "Jane", samplePubs())
	require.NoError(t, err)

	updated := samplePubs()[:1]
	updated[0].Summary = "Revised."
	_, err = s.Export(ctx, "Jane", updated)
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM publications`).Scan(&count))
	assert.Equal(t, 2, count)

	var summary string
	var year int
	require.NoError(t, db.QueryRow(
		`SELECT summary, year FROM publications WHERE scientist = ? AND title = ?`,
		"Jane", "Graphene Growth",
	).Scan(&summary, &year))
	assert.Equal(t, "Revised.", summary)
	assert.Equal(t, 2024, year)
}

// --- batch and table ---

type failingExporter struct{}

func (failingExporter) Name() string { return "broken" }

func (failingExporter) Export(context.Context, string, []types.Publication) (string, error) {
	return "", errors.New("disk full")
}

func TestExportAllContinuesAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	exps := []Exporter{failingExporter{}, &JSON{Dir: t.TempDir()}}

	res := ExportAll(context.Background(), exps, "Jane", samplePubs(), &buf)

	assert.True(t, res.HasFailures())
	assert.Len(t, res.Written, 1)
	assert.Contains(t, buf.String(), "failed:  broken (disk full)")
	assert.Contains(t, buf.String(), "wrote:   ")
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	pubs := samplePubs()
	pubs[0].Title = strings.Repeat("x", 80)

	FormatTable(&buf, pubs)
	out := buf.String()

	assert.Contains(t, out, strings.Repeat("x", 57)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 58))
	assert.Contains(t, out, "Laser Arrays")
	assert.Contains(t, out, "2 publications")
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(&buf, nil)
	assert.Equal(t, "No matching papers found.\n", buf.String())
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-digest/pkg/types"
)

// SQLite upserts publications into <name>_papers.db. Unlike the other
// formats the database accumulates across runs; a publication is keyed by
// scientist and title.
type SQLite struct {
	Dir string
}

// Name implements Exporter.
func (s *SQLite) Name() string { return "sqlite" }

// Export implements Exporter. All rows are written in one transaction.
func (s *SQLite) Export(ctx context.Context, scientist string, pubs []types.Publication) (string, error) {
	path, err := outputPath(s.Dir, FileStem(scientist)+"_papers.db")
	if err != nil {
		return "", err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := createSchema(ctx, db); err != nil {
		return "", fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO publications
		(scientist, title, year, summary, abstract, url)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(scientist, title) DO UPDATE SET
			year = excluded.year,
			summary = excluded.summary,
			abstract = excluded.abstract,
			url = excluded.url`)
	if err != nil {
		return "", fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pubs {
		if _, err := stmt.ExecContext(ctx, scientist, p.Title, p.Year, p.Summary, p.Abstract, p.URL); err != nil {
			return "", fmt.Errorf("upserting %q: %w", p.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return path, nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			scientist TEXT NOT NULL,
			title TEXT NOT NULL,
			year INTEGER,
			summary TEXT,
			abstract TEXT,
			url TEXT,
			PRIMARY KEY (scientist, title)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

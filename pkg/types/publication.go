// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-digest pipeline.
package types

// Publication is one scraped publication that passed the recency and keyword
// filters. Records are held in memory for a single run and only persisted
// through the export writers.
type Publication struct {
	// Scientist is the name the run was started with.
	Scientist string `json:"scientist" yaml:"scientist"`

	// Title is the publication title as shown on the detail page.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year parsed from the publication info row.
	Year int `json:"year" yaml:"year"`

	// Abstract is the full description text.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Summary is the extractive summary of Abstract.
	Summary string `json:"summary" yaml:"summary"`

	// URL is the detail page the record was read from.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

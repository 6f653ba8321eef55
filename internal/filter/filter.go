// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter decides which scraped publications are kept: a recency
// window on the publication year and an optional keyword match.
package filter

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
)

// Criteria holds the filter for one run.
type Criteria struct {
	// MinYear is the oldest publication year kept.
	MinYear int

	// Keywords are case-folded terms; empty means no keyword filter.
	Keywords []string
}

// NewCriteria keeps publications from now.Year()-years onward that match
// any of keywords.
func NewCriteria(now time.Time, years int, keywords []string) Criteria {
	folded := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = fold(strings.TrimSpace(k)); k != "" {
			folded = append(folded, k)
		}
	}
	return Criteria{
		MinYear:  now.Year() - years,
		Keywords: folded,
	}
}

// Match reports whether a publication passes both the year window and the
// keyword filter. A keyword matches when it is a case-insensitive substring
// of the title or the abstract.
func (c Criteria) Match(title, abstract string, year int) bool {
	if year < c.MinYear {
		return false
	}
	return c.MatchKeywords(title, abstract)
}

// MatchKeywords applies only the keyword part of the filter.
func (c Criteria) MatchKeywords(title, abstract string) bool {
	if len(c.Keywords) == 0 {
		return true
	}
	t, a := fold(title), fold(abstract)
	for _, k := range c.Keywords {
		if strings.Contains(t, k) || strings.Contains(a, k) {
			return true
		}
	}
	return false
}

// ParseKeywords splits a comma-separated list into trimmed, case-folded
// keywords. Empty entries are dropped, so "" and " , " both mean no filter.
func ParseKeywords(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if k := fold(strings.TrimSpace(part)); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// NormalizeTitle returns a lowercased, punctuation-stripped title with
// collapsed whitespace. Two profile entries with the same normalized title
// are the same publication.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range fold(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Seen tracks normalized titles already accepted in a run.
type Seen map[string]struct{}

// Add records title and reports whether it was new. Titles that normalize
// to the empty string are never treated as duplicates.
func (s Seen) Add(title string) bool {
	key := NormalizeTitle(title)
	if key == "" {
		return true
	}
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}

func fold(s string) string {
	return cases.Fold().String(s)
}

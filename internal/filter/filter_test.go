// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"only separators", " , ,", nil},
		{"single", "Graphene", []string{"graphene"}},
		{"trimmed and lowered", " Deep Learning ,  CRISPR", []string{"deep learning", "crispr"}},
		{"drops empty entries", "a,,b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKeywords(tt.raw))
		})
	}
}

func TestNewCriteria(t *testing.T) {
	c := NewCriteria(now, 5, []string{" Graphene ", ""})
	assert.Equal(t, 2021, c.MinYear)
	assert.Equal(t, []string{"graphene"}, c.Keywords)

	c = NewCriteria(now, 0, nil)
	assert.Equal(t, 2026, c.MinYear)
	assert.Empty(t, c.Keywords)
}

func TestCriteriaMatch(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		title    string
		abstract string
		year     int
		want     bool
	}{
		{"inside window no keywords", nil, "Anything", "", 2023, true},
		{"boundary year kept", nil, "Anything", "", 2021, true},
		{"older than window", nil, "Anything", "", 2020, false},
		{"keyword in title", []string{"graphene"}, "Graphene Oxide Films", "", 2024, true},
		{"keyword in abstract", []string{"graphene"}, "Films", "We study GRAPHENE sheets.", 2024, true},
		{"any keyword suffices", []string{"crispr", "graphene"}, "Graphene", "", 2024, true},
		{"no keyword matches", []string{"crispr"}, "Graphene", "Carbon.", 2024, false},
		{"keyword match but too old", []string{"graphene"}, "Graphene", "", 2019, false},
		{"substring match", []string{"learn"}, "Deep Learning", "", 2024, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCriteria(now, 5, tt.keywords)
			assert.Equal(t, tt.want, c.Match(tt.title, tt.abstract, tt.year))
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "attention is all you need", NormalizeTitle("Attention Is All You Need!"))
	assert.Equal(t, "attention is all you need", NormalizeTitle("  attention   is all you need "))
	assert.Equal(t, "", NormalizeTitle("?!"))
}

func TestSeenAdd(t *testing.T) {
	seen := make(Seen)
	assert.True(t, seen.Add("Attention Is All You Need"))
	assert.False(t, seen.Add("attention is all you need."))
	assert.True(t, seen.Add("Another Paper"))
	assert.True(t, seen.Add("..."))
	assert.True(t, seen.Add("..."))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-digest/internal/prompt"
	"github.com/pdiddy/scholar-digest/internal/scholar"
)

// --- fakes ---

type fakePrompter struct {
	texts    []string
	textErrs []error
	ints     []int
	intErrs  []error
	notes    []string
}

func (f *fakePrompter) AskText(string) (string, error) {
	var s string
	var err error
	if len(f.texts) > 0 {
		s, f.texts = f.texts[0], f.texts[1:]
	}
	if len(f.textErrs) > 0 {
		err, f.textErrs = f.textErrs[0], f.textErrs[1:]
	}
	return s, err
}

func (f *fakePrompter) AskInt(string) (int, error) {
	var n int
	var err error
	if len(f.ints) > 0 {
		n, f.ints = f.ints[0], f.ints[1:]
	}
	if len(f.intErrs) > 0 {
		err, f.intErrs = f.intErrs[0], f.intErrs[1:]
	}
	return n, err
}

func (f *fakePrompter) Notify(title, message string) {
	f.notes = append(f.notes, title+": "+message)
}

type fakeSource struct {
	articles []scholar.Article
	err      error
}

func (f *fakeSource) Fetch(_ context.Context, _ string, fn func(scholar.Article) error) (scholar.FetchResult, error) {
	res := scholar.FetchResult{Listed: len(f.articles)}
	for _, a := range f.articles {
		res.Extracted++
		if err := fn(a); err != nil {
			return res, err
		}
	}
	return res, f.err
}

type upperSummarizer struct{}

func (upperSummarizer) Summarize(text string) string { return strings.ToUpper(text) }

var fixedNow = func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) }

// --- CollectInput ---

func TestCollectInput(t *testing.T) {
	p := &fakePrompter{texts: []string{"Jane Doe", " Graphene, , Lasers "}, ints: []int{5}}

	in, err := CollectInput(p, Preset{})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", in.Scientist)
	assert.Equal(t, 5, in.Years)
	assert.Equal(t, []string{"graphene", "lasers"}, in.Keywords)
	assert.Empty(t, p.notes)
}

func TestCollectInputMissing(t *testing.T) {
	tests := []struct {
		name string
		p    *fakePrompter
	}{
		{"empty name", &fakePrompter{texts: []string{""}}},
		{"cancelled name", &fakePrompter{textErrs: []error{prompt.ErrCancelled}}},
		{"cancelled years", &fakePrompter{texts: []string{"Jane"}, intErrs: []error{prompt.ErrCancelled}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CollectInput(tt.p, Preset{})
			assert.ErrorIs(t, err, ErrMissingInput)
			assert.Equal(t, []string{"Error: Scientist name and years are required!"}, tt.p.notes)
		})
	}
}

func TestCollectInputNegativeYears(t *testing.T) {
	p := &fakePrompter{texts: []string{"Jane"}, ints: []int{-1}}
	_, err := CollectInput(p, Preset{})
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Len(t, p.notes, 1)
}

func TestCollectInputCancelledKeywords(t *testing.T) {
	p := &fakePrompter{texts: []string{"Jane", ""}, textErrs: []error{nil, prompt.ErrCancelled}, ints: []int{0}}

	in, err := CollectInput(p, Preset{})
	require.NoError(t, err)
	assert.Equal(t, 0, in.Years)
	assert.Empty(t, in.Keywords)
}

func TestCollectInputTerminalError(t *testing.T) {
	boom := errors.New("tty gone")
	p := &fakePrompter{textErrs: []error{boom}}
	_, err := CollectInput(p, Preset{})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, p.notes)
}

func TestCollectInputPreset(t *testing.T) {
	name, years, keywords := " Jane ", 3, "optics"
	p := &fakePrompter{}

	in, err := CollectInput(p, Preset{Scientist: &name, Years: &years, Keywords: &keywords})
	require.NoError(t, err)
	assert.Equal(t, Input{Scientist: "Jane", Years: 3, Keywords: []string{"optics"}}, in)
}

func TestCollectInputPartialPreset(t *testing.T) {
	years := 2
	p := &fakePrompter{texts: []string{"Jane", "Lasers"}}

	in, err := CollectInput(p, Preset{Years: &years})
	require.NoError(t, err)
	assert.Equal(t, "Jane", in.Scientist)
	assert.Equal(t, 2, in.Years)
	assert.Equal(t, []string{"lasers"}, in.Keywords)
}

func TestCollectInputEmptyPresetName(t *testing.T) {
	name, years := "  ", 2
	p := &fakePrompter{}

	_, err := CollectInput(p, Preset{Scientist: &name, Years: &years})
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Len(t, p.notes, 1)
}

// --- Runner ---

func TestRunFiltersAndSummarizes(t *testing.T) {
	src := &fakeSource{articles: []scholar.Article{
		{URL: "u1", Title: "Graphene Growth", Year: 2024, Abstract: "graphene grows."},
		{URL: "u2", Title: "Old Graphene", Year: 2019, Abstract: "graphene was."},
		{URL: "u3", Title: "Protein Folding", Year: 2025, Abstract: "proteins fold."},
		{URL: "u4", Title: "Lasers", Year: 2021, Abstract: "GRAPHENE lasers."},
	}}
	var buf bytes.Buffer
	r := &Runner{Source: src, Summarizer: upperSummarizer{}, Now: fixedNow, W: &buf}

	res, err := r.Run(context.Background(), Input{Scientist: "Jane", Years: 5, Keywords: []string{"graphene"}})
	require.NoError(t, err)

	require.Len(t, res.Publications, 2)
	assert.Equal(t, "Graphene Growth", res.Publications[0].Title)
	assert.Equal(t, "GRAPHENE GROWS.", res.Publications[0].Summary)
	assert.Equal(t, "Jane", res.Publications[0].Scientist)
	assert.Equal(t, "u1", res.Publications[0].URL)
	assert.Equal(t, "Lasers", res.Publications[1].Title)
	assert.Equal(t, 2, res.Filtered)
	assert.Equal(t, 4, res.Fetch.Listed)
	assert.Contains(t, buf.String(), "2 kept, 2 filtered")
}

func TestRunYearBoundaryInclusive(t *testing.T) {
	src := &fakeSource{articles: []scholar.Article{
		{Title: "Edge", Year: 2021},
		{Title: "Before", Year: 2020},
	}}
	r := &Runner{Source: src, Summarizer: upperSummarizer{}, Now: fixedNow}

	res, err := r.Run(context.Background(), Input{Scientist: "Jane", Years: 5})
	require.NoError(t, err)
	require.Len(t, res.Publications, 1)
	assert.Equal(t, "Edge", res.Publications[0].Title)
}

func TestRunDropsDuplicates(t *testing.T) {
	src := &fakeSource{articles: []scholar.Article{
		{Title: "Deep Learning: A Review", Year: 2025},
		{Title: "deep learning a review", Year: 2025},
	}}
	r := &Runner{Source: src, Summarizer: upperSummarizer{}, Now: fixedNow}

	res, err := r.Run(context.Background(), Input{Scientist: "Jane", Years: 1})
	require.NoError(t, err)
	assert.Len(t, res.Publications, 1)
	assert.Equal(t, 1, res.Duplicates)
}

func TestRunKeepsPartialOnFetchError(t *testing.T) {
	src := &fakeSource{
		articles: []scholar.Article{{Title: "Kept", Year: 2026}},
		err:      context.Canceled,
	}
	r := &Runner{Source: src, Summarizer: upperSummarizer{}, Now: fixedNow}

	res, err := r.Run(context.Background(), Input{Scientist: "Jane", Years: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, res.Publications, 1)
}

func TestRunNoMatches(t *testing.T) {
	r := &Runner{Source: &fakeSource{}, Summarizer: upperSummarizer{}, Now: fixedNow}

	res, err := r.Run(context.Background(), Input{Scientist: "Jane", Years: 3})
	require.NoError(t, err)
	assert.Empty(t, res.Publications)
}

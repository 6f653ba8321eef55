// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest ties the pipeline together: it collects the run inputs,
// walks the scraped articles, filters them and summarizes the abstracts of
// the ones that are kept.
package digest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/scholar-digest/internal/filter"
	"github.com/pdiddy/scholar-digest/internal/prompt"
	"github.com/pdiddy/scholar-digest/internal/scholar"
	"github.com/pdiddy/scholar-digest/pkg/types"
)

// ErrMissingInput is returned when the scientist name or the year window
// was not provided.
var ErrMissingInput = errors.New("scientist name and years are required")

// Input holds what the user asked for.
type Input struct {
	Scientist string
	Years     int
	Keywords  []string
}

// Preset holds inputs already known, typically from flags. A nil field is
// asked for interactively.
type Preset struct {
	Scientist *string
	Years     *int
	Keywords  *string
}

// CollectInput asks p for the scientist name, the year window and the
// keywords, in that order, skipping what preset already provides. The name
// and the window are required; a cancelled keyword prompt means no keyword
// filter.
func CollectInput(p prompt.Prompter, preset Preset) (Input, error) {
	var name string
	if preset.Scientist != nil {
		name = strings.TrimSpace(*preset.Scientist)
	} else {
		var err error
		name, err = p.AskText("Enter the scientist's name:")
		if err != nil && !errors.Is(err, prompt.ErrCancelled) {
			return Input{}, err
		}
	}
	if name == "" {
		return Input{}, missing(p)
	}

	var years int
	if preset.Years != nil {
		years = *preset.Years
	} else {
		var err error
		years, err = p.AskInt("Enter the number of years to look back:")
		switch {
		case errors.Is(err, prompt.ErrCancelled):
			return Input{}, missing(p)
		case err != nil:
			return Input{}, err
		}
	}
	if years < 0 {
		p.Notify("Error", "The number of years cannot be negative.")
		return Input{}, fmt.Errorf("%w: negative year window %d", ErrMissingInput, years)
	}

	var raw string
	if preset.Keywords != nil {
		raw = *preset.Keywords
	} else {
		var err error
		raw, err = p.AskText("Enter keywords separated by commas (optional):")
		if err != nil && !errors.Is(err, prompt.ErrCancelled) {
			return Input{}, err
		}
	}

	return Input{
		Scientist: name,
		Years:     years,
		Keywords:  filter.ParseKeywords(raw),
	}, nil
}

func missing(p prompt.Prompter) error {
	p.Notify("Error", "Scientist name and years are required!")
	return ErrMissingInput
}

// ArticleSource yields the articles of a scientist one at a time.
type ArticleSource interface {
	Fetch(ctx context.Context, scientist string, fn func(scholar.Article) error) (scholar.FetchResult, error)
}

// Summarizer condenses an abstract.
type Summarizer interface {
	Summarize(text string) string
}

// Result holds the kept publications and the run counters.
type Result struct {
	Publications []types.Publication
	Fetch        scholar.FetchResult
	Filtered     int
	Duplicates   int
}

// Runner runs one digest.
type Runner struct {
	Source     ArticleSource
	Summarizer Summarizer

	// Now anchors the year window. Defaults to time.Now.
	Now func() time.Time

	// W receives progress lines. Defaults to io.Discard.
	W io.Writer

	Logger *slog.Logger
}

// Run fetches the articles of in.Scientist and returns the ones inside the
// year window that match the keywords, in scrape order, each with its
// summary. A fetch error still returns what was collected before it.
func (r *Runner) Run(ctx context.Context, in Input) (Result, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	w := r.W
	if w == nil {
		w = io.Discard
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	criteria := filter.NewCriteria(now(), in.Years, in.Keywords)
	logger.Debug("filter criteria", "min_year", criteria.MinYear, "keywords", strings.Join(criteria.Keywords, ","))

	seen := filter.Seen{}
	var result Result

	fetched, err := r.Source.Fetch(ctx, in.Scientist, func(art scholar.Article) error {
		if !seen.Add(art.Title) {
			result.Duplicates++
			logger.Debug("duplicate publication", "title", art.Title)
			return nil
		}
		if !criteria.Match(art.Title, art.Abstract, art.Year) {
			result.Filtered++
			logger.Debug("publication filtered out", "title", art.Title, "year", art.Year)
			return nil
		}

		fmt.Fprintf(w, "kept:    %s (%d)\n", art.Title, art.Year)
		result.Publications = append(result.Publications, types.Publication{
			Scientist: in.Scientist,
			Title:     art.Title,
			Year:      art.Year,
			Abstract:  art.Abstract,
			Summary:   r.Summarizer.Summarize(art.Abstract),
			URL:       art.URL,
		})
		return nil
	})
	result.Fetch = fetched

	fmt.Fprintf(w, "\nRun summary: %d listed, %d kept, %d filtered, %d duplicates, %d skipped, %d failed\n",
		fetched.Listed, len(result.Publications), result.Filtered, result.Duplicates, fetched.Skipped, fetched.Failed)

	if err != nil {
		return result, fmt.Errorf("fetching publications of %s: %w", in.Scientist, err)
	}
	return result, nil
}

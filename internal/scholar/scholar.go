// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar scrapes a scientist's publications from Google Scholar
// through a browser.Browser. All knowledge of the site's markup is confined
// to Locators; the flow is strictly sequential with one article tab open at
// a time.
package scholar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/scholar-digest/internal/browser"
	"github.com/pdiddy/scholar-digest/pkg/types"
)

// ErrNoYear is returned for a publication page whose info row has no year.
var ErrNoYear = errors.New("no valid year found")

// Article is the raw data read from one publication page.
type Article struct {
	URL      string
	Title    string
	Year     int
	Abstract string
}

// FetchResult holds the outcome of a scraping run.
type FetchResult struct {
	Listed    int
	Extracted int
	Skipped   int
	Failed    int
}

// HasFailures reports whether any article page failed extraction.
func (r FetchResult) HasFailures() bool {
	return r.Failed > 0
}

// Scraper walks a scientist's profile and reads each publication page.
type Scraper struct {
	browser  browser.Browser
	cfg      types.ScrapeConfig
	locators Locators
	logger   *slog.Logger
	w        io.Writer
}

// NewScraper returns a Scraper using b. Progress lines go to w and
// per-article diagnostics to logger.
func NewScraper(b browser.Browser, cfg types.ScrapeConfig, locators Locators, logger *slog.Logger, w io.Writer) *Scraper {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if w == nil {
		w = io.Discard
	}
	return &Scraper{
		browser:  b,
		cfg:      cfg,
		locators: locators.Merge(DefaultLocators()),
		logger:   logger,
		w:        w,
	}
}

// Fetch opens the scientist's profile, lists their publications by year
// and calls fn with each article that could be read. Failing to reach the
// publication list aborts the run. A failing article is logged and counted,
// and the loop moves on; an error from fn stops the run.
func (s *Scraper) Fetch(ctx context.Context, scientist string, fn func(Article) error) (FetchResult, error) {
	links, err := s.listArticles(ctx, scientist)
	if err != nil {
		return FetchResult{}, err
	}

	result := FetchResult{Listed: len(links)}
	fmt.Fprintf(s.w, "found %d publications for %s\n", len(links), scientist)

	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		art, err := s.fetchArticle(ctx, link)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return result, ctx.Err()
		case errors.Is(err, ErrNoYear):
			fmt.Fprintf(s.w, "No valid year found for %s. Skipping...\n", art.Title)
			s.logger.Info("article skipped", "index", i+1, "url", link, "title", art.Title)
			result.Skipped++
			continue
		default:
			fmt.Fprintf(s.w, "failed:  %s (%v)\n", link, err)
			s.logger.Warn("article extraction failed", "index", i+1, "url", link, "error", err)
			result.Failed++
			continue
		}

		result.Extracted++
		s.logger.Debug("article extracted", "index", i+1, "title", art.Title, "year", art.Year)
		if err := fn(art); err != nil {
			return result, err
		}
	}

	return result, nil
}

// listArticles searches for the scientist, opens the first profile, sorts
// the publication list by year and returns the publication links.
func (s *Scraper) listArticles(ctx context.Context, scientist string) ([]string, error) {
	searchURL, err := url.Parse(s.cfg.SearchURL)
	if err != nil {
		return nil, fmt.Errorf("parsing search URL: %w", err)
	}
	q := searchURL.Query()
	q.Set("q", scientist)
	searchURL.RawQuery = q.Encode()

	b := s.browser
	if err := b.Navigate(ctx, searchURL.String()); err != nil {
		return nil, err
	}

	if err := b.WaitVisible(ctx, s.locators.ProfileLink, s.cfg.ElementTimeout); err != nil {
		return nil, fmt.Errorf("locating profile for %q: %w", scientist, err)
	}
	if err := b.Click(ctx, s.locators.ProfileLink); err != nil {
		return nil, fmt.Errorf("opening profile: %w", err)
	}

	if err := b.WaitVisible(ctx, s.locators.SortByYear, s.cfg.ElementTimeout); err != nil {
		return nil, fmt.Errorf("locating year ordering: %w", err)
	}
	if err := b.Click(ctx, s.locators.SortByYear); err != nil {
		return nil, fmt.Errorf("sorting by year: %w", err)
	}

	if err := sleep(ctx, s.cfg.SettleDelay); err != nil {
		return nil, err
	}

	if err := b.WaitVisible(ctx, s.locators.ArticleRows, s.cfg.ListTimeout); err != nil {
		return nil, fmt.Errorf("waiting for publication list: %w", err)
	}
	table, err := b.HTML(ctx, s.locators.ArticleTable, s.cfg.ElementTimeout)
	if err != nil {
		return nil, fmt.Errorf("reading publication list: %w", err)
	}

	loc, err := b.Location(ctx)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(loc)
	if err != nil {
		return nil, fmt.Errorf("parsing profile URL: %w", err)
	}

	return ParseArticleLinks(table, base, s.locators.ArticleAnchor)
}

// fetchArticle reads one publication page in its own tab. The tab is
// closed and the list tab re-activated on every path. On ErrNoYear the
// returned Article carries the title for reporting.
func (s *Scraper) fetchArticle(ctx context.Context, link string) (art Article, err error) {
	b := s.browser
	if err := b.OpenTab(ctx, link); err != nil {
		return Article{}, err
	}
	defer func() {
		closeErr := b.CloseTab()
		switchErr := b.SwitchTab(0)
		if err == nil {
			err = errors.Join(closeErr, switchErr)
		}
	}()

	if err := b.WaitReady(ctx, s.cfg.PageLoadTimeout); err != nil {
		return Article{}, err
	}

	title, err := b.Text(ctx, s.locators.Title, s.cfg.ElementTimeout)
	if err != nil {
		return Article{}, fmt.Errorf("reading title: %w", err)
	}
	art = Article{URL: link, Title: strings.TrimSpace(title)}

	info, err := b.Text(ctx, s.locators.PubInfo, s.cfg.ElementTimeout)
	if err != nil {
		return art, fmt.Errorf("reading publication info: %w", err)
	}
	year, ok := ParseYear(info)
	if !ok {
		return art, fmt.Errorf("%w in %q", ErrNoYear, info)
	}
	art.Year = year

	abstract, err := b.Text(ctx, s.locators.Abstract, s.cfg.ElementTimeout)
	if err != nil {
		return art, fmt.Errorf("reading abstract: %w", err)
	}
	art.Abstract = strings.TrimSpace(abstract)

	return art, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

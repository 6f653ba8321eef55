// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize builds short extractive summaries of abstracts by
// keeping the sentences whose words are most frequent in the passage.
package summarize

import (
	"sort"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSentences is the number of sentences kept in a summary.
const DefaultSentences = 3

// Summarizer scores sentences by word frequency and keeps the top N in
// their original order. A Summarizer is immutable after New and may be
// reused across calls.
type Summarizer struct {
	stopWords StopWords
	sentences int
	lang      language.Tag
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithSentences sets the number of sentences kept. Values below 1 are ignored.
func WithSentences(n int) Option {
	return func(s *Summarizer) {
		if n > 0 {
			s.sentences = n
		}
	}
}

// WithStopWords replaces the stop-word set.
func WithStopWords(set StopWords) Option {
	return func(s *Summarizer) {
		if set != nil {
			s.stopWords = set
		}
	}
}

// WithLanguage sets the language used for lowercasing tokens.
func WithLanguage(tag language.Tag) Option {
	return func(s *Summarizer) {
		s.lang = tag
	}
}

// New returns a Summarizer using the built-in English stop words and
// DefaultSentences unless overridden by opts.
func New(opts ...Option) *Summarizer {
	s := &Summarizer{
		stopWords: EnglishStopWords(),
		sentences: DefaultSentences,
		lang:      language.English,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type scoredSentence struct {
	index int
	score int
}

// Summarize returns the highest-scoring sentences of text joined by single
// spaces, in the order they appear in text. Equal scores keep the earlier
// sentence. Text with no more sentences than the limit comes back whole.
func (s *Summarizer) Summarize(text string) string {
	sents := SplitSentences(text)
	if len(sents) <= s.sentences {
		return strings.Join(sents, " ")
	}

	caser := cases.Lower(s.lang)
	freq := make(map[string]int)
	for _, tok := range s.tokens(caser, text) {
		freq[tok]++
	}

	ranked := make([]scoredSentence, len(sents))
	for i, sent := range sents {
		score := 0
		for _, tok := range s.tokens(caser, sent) {
			score += freq[tok]
		}
		ranked[i] = scoredSentence{index: i, score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	top := ranked[:s.sentences]
	sort.Slice(top, func(i, j int) bool {
		return top[i].index < top[j].index
	})

	picked := make([]string, len(top))
	for i, r := range top {
		picked[i] = sents[r.index]
	}
	return strings.Join(picked, " ")
}

// tokens returns the lowercased alphanumeric words of text that are not
// stop words.
func (s *Summarizer) tokens(caser cases.Caser, text string) []string {
	var out []string
	seg := words.FromString(text)
	for seg.Next() {
		tok := caser.String(seg.Value())
		if !isAlphanumeric(tok) || s.stopWords.Contains(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// SplitSentences segments text into trimmed, non-empty sentences.
func SplitSentences(text string) []string {
	var out []string
	seg := sentences.FromString(text)
	for seg.Next() {
		if sent := strings.TrimSpace(seg.Value()); sent != "" {
			out = append(out, sent)
		}
	}
	return out
}

func isAlphanumeric(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed stopwords_en.txt
var englishStopWords string

// StopWords is a set of lowercase words ignored when scoring sentences.
type StopWords map[string]struct{}

// Contains reports whether word is in the set.
func (s StopWords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Merge adds every word of other to s.
func (s StopWords) Merge(other StopWords) {
	for w := range other {
		s[w] = struct{}{}
	}
}

// EnglishStopWords returns a fresh copy of the built-in English list.
func EnglishStopWords() StopWords {
	set, _ := ParseStopWords(strings.NewReader(englishStopWords))
	return set
}

// ParseStopWords reads one word per line. Blank lines and lines starting
// with '#' are ignored; words are lowercased.
func ParseStopWords(r io.Reader) (StopWords, error) {
	set := make(StopWords)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[strings.ToLower(line)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading stop words: %w", err)
	}
	return set, nil
}

// LoadStopWords returns the built-in English list merged with the words
// in path. An empty path returns the built-in list alone.
func LoadStopWords(path string) (StopWords, error) {
	set := EnglishStopWords()
	if path == "" {
		return set, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stop-word file: %w", err)
	}
	defer f.Close()

	extra, err := ParseStopWords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	set.Merge(extra)
	return set, nil
}

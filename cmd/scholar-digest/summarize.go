// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/pdiddy/scholar-digest/internal/summarize"
	"github.com/pdiddy/scholar-digest/pkg/types"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a text file or standard input",
	Long: `Summarize prints the highest-scoring sentences of a passage in their
original order, using the same summarizer as fetch. With no file argument
the passage is read from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

var summarizeFlagKeys = map[string]string{
	"sentences":  keySentences,
	"language":   keyLanguage,
	"stop-words": keyStopWordsFile,
}

func init() {
	summarizeCmd.Flags().Int("sentences", 3, "sentences kept")
	summarizeCmd.Flags().String("language", "en", "BCP 47 language tag used for case folding")
	summarizeCmd.Flags().String("stop-words", "", "file with extra stop words, one per line")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd, summarizeFlagKeys); err != nil {
		return err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	sum, err := newSummarizer(cfg.Summary)
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), sum.Summarize(string(data)))
	return nil
}

// newSummarizer builds the summarizer described by cfg.
func newSummarizer(cfg types.SummaryConfig) (*summarize.Summarizer, error) {
	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("parsing summary language %q: %w", cfg.Language, err)
	}
	stop, err := summarize.LoadStopWords(cfg.StopWordsFile)
	if err != nil {
		return nil, err
	}
	return summarize.New(
		summarize.WithSentences(cfg.Sentences),
		summarize.WithStopWords(stop),
		summarize.WithLanguage(tag),
	), nil
}

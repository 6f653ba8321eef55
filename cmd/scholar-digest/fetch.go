// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-digest/internal/browser"
	"github.com/pdiddy/scholar-digest/internal/container"
	"github.com/pdiddy/scholar-digest/internal/digest"
	"github.com/pdiddy/scholar-digest/internal/export"
	"github.com/pdiddy/scholar-digest/internal/log"
	"github.com/pdiddy/scholar-digest/internal/prompt"
	"github.com/pdiddy/scholar-digest/internal/scholar"
	"github.com/pdiddy/scholar-digest/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Scrape, filter and summarize a scientist's publications",
	Long: `Fetch asks for a scientist's name, a number of years to look back and
optional keywords, then walks the scientist's Google Scholar profile in a
browser. Publications inside the year window whose title or abstract
contains a keyword are summarized and written to <name>_papers.xlsx and
<name>_summaries.md. Flags skip the matching prompts.`,
	RunE: runFetch,
}

var fetchFlagKeys = map[string]string{
	"headless":         keyHeadless,
	"remote-url":       keyRemoteURL,
	"container":        keyContainer,
	"sentences":        keySentences,
	"format":           keyFormats,
	"output-dir":       keyOutputDir,
	"include-abstract": keyIncludeAbstract,
}

func init() {
	fetchCmd.Flags().String("name", "", "scientist name (skips the prompt)")
	fetchCmd.Flags().Int("years", 0, "number of years to look back (skips the prompt)")
	fetchCmd.Flags().String("keywords", "", "comma-separated keywords (skips the prompt)")
	fetchCmd.Flags().Bool("headless", false, "run the browser without a window")
	fetchCmd.Flags().String("remote-url", "", "connect to a running browser's DevTools endpoint")
	fetchCmd.Flags().Bool("container", false, "run the browser in a docker or podman container")
	fetchCmd.Flags().Int("sentences", 3, "sentences kept per summary")
	fetchCmd.Flags().StringSlice("format", []string{"xlsx", "markdown"}, "export formats: xlsx, markdown, yaml, json, sqlite")
	fetchCmd.Flags().String("output-dir", ".", "directory for export files")
	fetchCmd.Flags().Bool("include-abstract", false, "add the full abstract to the spreadsheet")

	rootCmd.AddCommand(fetchCmd)
}

// newPrompter opens the interactive prompt; replaced in tests.
var newPrompter = func() (promptCloser, error) {
	return prompt.NewTerminal(nil, nil)
}

type promptCloser interface {
	prompt.Prompter
	Close() error
}

func runFetch(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd, fetchFlagKeys); err != nil {
		return err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	loadedSecrets.ApplyBrowser(&cfg.Browser)

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(os.Stderr, verbose)
	out := cmd.OutOrStdout()

	exporters, err := export.New(cfg.Export)
	if err != nil {
		return err
	}
	sum, err := newSummarizer(cfg.Summary)
	if err != nil {
		return err
	}
	locators, err := scholar.LoadLocators(cfg.Scrape.LocatorsFile)
	if err != nil {
		return err
	}

	term, err := newPrompter()
	if err != nil {
		return err
	}
	defer term.Close()

	in, err := digest.CollectInput(term, presetFromFlags(cmd))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, cleanup, err := openBrowser(ctx, cfg.Browser, logger, out)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Fprintf(out, "Searching publications of %s...\n", in.Scientist)
	runner := &digest.Runner{
		Source:     scholar.NewScraper(b, cfg.Scrape, locators, logger, out),
		Summarizer: sum,
		W:          out,
		Logger:     logger,
	}
	res, err := runner.Run(ctx, in)
	if err != nil {
		term.Notify("Error", err.Error())
		return err
	}

	return finish(ctx, term, exporters, in.Scientist, res, out)
}

// finish writes the exports and reports the outcome. Nothing is written
// when no publication matched.
func finish(ctx context.Context, p prompt.Prompter, exporters []export.Exporter, scientist string, res digest.Result, out io.Writer) error {
	if len(res.Publications) == 0 {
		p.Notify("No Results", "No matching papers found.")
		return nil
	}

	export.FormatTable(out, res.Publications)
	fmt.Fprintln(out)

	batch := export.ExportAll(ctx, exporters, scientist, res.Publications, out)
	if batch.HasFailures() {
		p.Notify("Error", fmt.Sprintf("%d export(s) failed.", batch.Failed))
		return fmt.Errorf("%d export(s) failed", batch.Failed)
	}

	names := make([]string, len(exporters))
	for i, e := range exporters {
		names[i] = e.Name()
	}
	p.Notify("Success", fmt.Sprintf("Data written to %s.", strings.Join(names, ", ")))
	return nil
}

func presetFromFlags(cmd *cobra.Command) digest.Preset {
	var preset digest.Preset
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		preset.Scientist = &name
	}
	if cmd.Flags().Changed("years") {
		years, _ := cmd.Flags().GetInt("years")
		preset.Years = &years
	}
	if cmd.Flags().Changed("keywords") {
		keywords, _ := cmd.Flags().GetString("keywords")
		preset.Keywords = &keywords
	}
	return preset
}

// openBrowser starts the browser, inside a container when configured. The
// returned cleanup closes the browser and stops the container.
func openBrowser(ctx context.Context, cfg types.BrowserConfig, logger *slog.Logger, out io.Writer) (browser.Browser, func(), error) {
	var stopContainer func()
	if cfg.Container && cfg.RemoteURL == "" {
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, nil, err
		}
		cb, err := container.StartBrowser(ctx, rt, cfg.ContainerImage, cfg.ContainerPort, out)
		if err != nil {
			return nil, nil, err
		}
		cfg.RemoteURL = cb.RemoteURL
		stopContainer = func() {
			if err := cb.Stop(ctx); err != nil {
				logger.Warn("stopping browser container", "error", err)
			}
		}
	}

	b, err := browser.NewChrome(ctx, cfg)
	if err != nil {
		if stopContainer != nil {
			stopContainer()
		}
		if errors.Is(err, context.Canceled) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w (use --container or --remote-url when Chrome is not installed)", err)
	}
	logger.Debug("browser started", "remote", cfg.RemoteURL != "", "headless", cfg.Headless)

	return b, func() {
		if err := b.Close(); err != nil {
			logger.Warn("closing browser", "error", err)
		}
		if stopContainer != nil {
			stopContainer()
		}
	}, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-digest/pkg/types"
)

// Config keys. Nested keys map to sections of scholar-digest.yaml and to
// SCHOLAR_DIGEST_<SECTION>_<KEY> environment variables.
const (
	keyHeadless       = "browser.headless"
	keyUserAgent      = "browser.user_agent"
	keyProxyServer    = "browser.proxy_server"
	keyRemoteURL      = "browser.remote_url"
	keyContainer      = "browser.container"
	keyContainerImage = "browser.container_image"
	keyContainerPort  = "browser.container_port"
	keyWindowWidth    = "browser.window_width"
	keyWindowHeight   = "browser.window_height"

	keySearchURL       = "scrape.search_url"
	keyElementTimeout  = "scrape.element_timeout"
	keyListTimeout     = "scrape.list_timeout"
	keyPageLoadTimeout = "scrape.page_load_timeout"
	keySettleDelay     = "scrape.settle_delay"
	keyLocatorsFile    = "scrape.locators_file"

	keySentences     = "summary.sentences"
	keyLanguage      = "summary.language"
	keyStopWordsFile = "summary.stop_words_file"

	keyOutputDir       = "export.output_dir"
	keyFormats         = "export.formats"
	keyIncludeAbstract = "export.include_abstract"
)

func setConfigDefaults(v *viper.Viper) {
	d := types.DefaultConfig()

	v.SetDefault(keyHeadless, d.Browser.Headless)
	v.SetDefault(keyContainer, d.Browser.Container)
	v.SetDefault(keyContainerImage, d.Browser.ContainerImage)
	v.SetDefault(keyContainerPort, d.Browser.ContainerPort)
	v.SetDefault(keyWindowWidth, d.Browser.WindowWidth)
	v.SetDefault(keyWindowHeight, d.Browser.WindowHeight)

	v.SetDefault(keySearchURL, d.Scrape.SearchURL)
	v.SetDefault(keyElementTimeout, d.Scrape.ElementTimeout)
	v.SetDefault(keyListTimeout, d.Scrape.ListTimeout)
	v.SetDefault(keyPageLoadTimeout, d.Scrape.PageLoadTimeout)
	v.SetDefault(keySettleDelay, d.Scrape.SettleDelay)

	v.SetDefault(keySentences, d.Summary.Sentences)
	v.SetDefault(keyLanguage, d.Summary.Language)

	formats := make([]string, len(d.Export.Formats))
	for i, f := range d.Export.Formats {
		formats[i] = string(f)
	}
	v.SetDefault(keyOutputDir, d.Export.OutputDir)
	v.SetDefault(keyFormats, formats)
	v.SetDefault(keyIncludeAbstract, d.Export.IncludeAbstract)
}

// bindFlags binds the named flags of cmd to config keys. Binding happens
// when a command runs, so commands sharing a key do not override each
// other's flags.
func bindFlags(v *viper.Viper, cmd *cobra.Command, flags map[string]string) error {
	for flag, key := range flags {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag --%s", flag)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// loadConfig assembles the run configuration from v.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.Config{
		Browser: types.BrowserConfig{
			Headless:       v.GetBool(keyHeadless),
			UserAgent:      v.GetString(keyUserAgent),
			ProxyServer:    v.GetString(keyProxyServer),
			RemoteURL:      v.GetString(keyRemoteURL),
			Container:      v.GetBool(keyContainer),
			ContainerImage: v.GetString(keyContainerImage),
			ContainerPort:  v.GetInt(keyContainerPort),
			WindowWidth:    v.GetInt(keyWindowWidth),
			WindowHeight:   v.GetInt(keyWindowHeight),
		},
		Scrape: types.ScrapeConfig{
			SearchURL:       v.GetString(keySearchURL),
			ElementTimeout:  v.GetDuration(keyElementTimeout),
			ListTimeout:     v.GetDuration(keyListTimeout),
			PageLoadTimeout: v.GetDuration(keyPageLoadTimeout),
			SettleDelay:     v.GetDuration(keySettleDelay),
			LocatorsFile:    v.GetString(keyLocatorsFile),
		},
		Summary: types.SummaryConfig{
			Sentences:     v.GetInt(keySentences),
			Language:      v.GetString(keyLanguage),
			StopWordsFile: v.GetString(keyStopWordsFile),
		},
		Export: types.ExportConfig{
			OutputDir:       v.GetString(keyOutputDir),
			IncludeAbstract: v.GetBool(keyIncludeAbstract),
		},
	}

	for _, f := range v.GetStringSlice(keyFormats) {
		for _, part := range strings.Split(f, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cfg.Export.Formats = append(cfg.Export.Formats, types.ExportFormat(part))
			}
		}
	}

	if cfg.Summary.Sentences <= 0 {
		return cfg, fmt.Errorf("%s must be positive, got %d", keySentences, cfg.Summary.Sentences)
	}
	if cfg.Browser.Container && cfg.Browser.ContainerPort <= 0 {
		return cfg, fmt.Errorf("%s must be positive, got %d", keyContainerPort, cfg.Browser.ContainerPort)
	}
	return cfg, nil
}

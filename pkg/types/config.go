package types

import "time"

// BrowserConfig holds settings for the browser session.
type BrowserConfig struct {
	// Headless runs Chrome without a window (default false).
	Headless bool `json:"headless" yaml:"headless"`

	// UserAgent overrides the browser User-Agent when set.
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`

	// ProxyServer is passed to Chrome as --proxy-server when set.
	ProxyServer string `json:"proxy_server,omitempty" yaml:"proxy_server,omitempty"`

	// RemoteURL connects to an already running DevTools endpoint
	// (e.g. "ws://127.0.0.1:9222") instead of launching Chrome.
	RemoteURL string `json:"remote_url,omitempty" yaml:"remote_url,omitempty"`

	// Container starts a headless browser container and connects to it.
	Container bool `json:"container" yaml:"container"`

	// ContainerImage is the image started when Container is set.
	ContainerImage string `json:"container_image" yaml:"container_image"`

	// ContainerPort is the DevTools port published by the container.
	ContainerPort int `json:"container_port" yaml:"container_port"`

	// WindowWidth and WindowHeight size the browser window.
	WindowWidth  int `json:"window_width" yaml:"window_width"`
	WindowHeight int `json:"window_height" yaml:"window_height"`
}

// ScrapeConfig holds the wait limits and entry point for the scraper.
type ScrapeConfig struct {
	// SearchURL is the search page queried with the scientist name.
	SearchURL string `json:"search_url" yaml:"search_url"`

	// ElementTimeout bounds waits for top-level controls and field reads (default 10s).
	ElementTimeout time.Duration `json:"element_timeout" yaml:"element_timeout"`

	// ListTimeout bounds the wait for the publication list (default 20s).
	ListTimeout time.Duration `json:"list_timeout" yaml:"list_timeout"`

	// PageLoadTimeout bounds the wait for each publication page (default 20s).
	PageLoadTimeout time.Duration `json:"page_load_timeout" yaml:"page_load_timeout"`

	// SettleDelay is a fixed pause after re-sorting the list (default 5s).
	SettleDelay time.Duration `json:"settle_delay" yaml:"settle_delay"`

	// LocatorsFile names a YAML file overriding element locators.
	LocatorsFile string `json:"locators_file,omitempty" yaml:"locators_file,omitempty"`
}

// SummaryConfig holds settings for the extractive summarizer.
type SummaryConfig struct {
	// Sentences is the number of sentences kept (default 3).
	Sentences int `json:"sentences" yaml:"sentences"`

	// Language is a BCP 47 tag used for case folding (default "en").
	Language string `json:"language" yaml:"language"`

	// StopWordsFile names an extra stop-word list merged into the built-in one.
	StopWordsFile string `json:"stop_words_file,omitempty" yaml:"stop_words_file,omitempty"`
}

// ExportFormat names one output writer.
type ExportFormat string

const (
	FormatXLSX     ExportFormat = "xlsx"
	FormatMarkdown ExportFormat = "markdown"
	FormatYAML     ExportFormat = "yaml"
	FormatJSON     ExportFormat = "json"
	FormatSQLite   ExportFormat = "sqlite"
)

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// OutputDir is where export files are written (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Formats selects the writers (default xlsx and markdown).
	Formats []ExportFormat `json:"formats" yaml:"formats"`

	// IncludeAbstract adds the full abstract as an extra spreadsheet column.
	IncludeAbstract bool `json:"include_abstract" yaml:"include_abstract"`
}

// Config groups all settings for one run.
type Config struct {
	Browser BrowserConfig `json:"browser" yaml:"browser"`
	Scrape  ScrapeConfig  `json:"scrape" yaml:"scrape"`
	Summary SummaryConfig `json:"summary" yaml:"summary"`
	Export  ExportConfig  `json:"export" yaml:"export"`
}

// DefaultConfig returns the settings used when no config file, environment
// variable or flag overrides them.
func DefaultConfig() Config {
	return Config{
		Browser: BrowserConfig{
			ContainerImage: "chromedp/headless-shell:latest",
			ContainerPort:  9222,
			WindowWidth:    1280,
			WindowHeight:   900,
		},
		Scrape: ScrapeConfig{
			SearchURL:       "https://scholar.google.com/scholar",
			ElementTimeout:  10 * time.Second,
			ListTimeout:     20 * time.Second,
			PageLoadTimeout: 20 * time.Second,
			SettleDelay:     5 * time.Second,
		},
		Summary: SummaryConfig{
			Sentences: 3,
			Language:  "en",
		},
		Export: ExportConfig{
			OutputDir: ".",
			Formats:   []ExportFormat{FormatXLSX, FormatMarkdown},
		},
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads browser settings that should stay out of the config
// file from a directory of plain-text files. The file name is the key and
// the trimmed contents are the value.
//
// Known keys: proxy-server, user-agent.
package secrets

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scholar-digest/pkg/types"
)

// Key files read by ApplyBrowser.
const (
	KeyProxyServer = "proxy-server"
	KeyUserAgent   = "user-agent"
)

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error. Unreadable files are logged and skipped.
func Load(dir string, logger *slog.Logger) (Secrets, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := Secrets{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "key", name, "error", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// ApplyBrowser fills the proxy server and user agent of cfg from s. Values
// already set in cfg win.
func (s Secrets) ApplyBrowser(cfg *types.BrowserConfig) {
	if v, ok := s[KeyProxyServer]; ok && cfg.ProxyServer == "" {
		cfg.ProxyServer = v
	}
	if v, ok := s[KeyUserAgent]; ok && cfg.UserAgent == "" {
		cfg.UserAgent = v
	}
}

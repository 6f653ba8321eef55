// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/pdiddy/scholar-digest/pkg/types"
)

// actionTimeout bounds the actions that take no explicit timeout. For
// Navigate it includes the wait for the load event.
const actionTimeout = 60 * time.Second

type tab struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Chrome implements Browser on a Chrome DevTools session.
type Chrome struct {
	allocCancel context.CancelFunc
	tabs        []tab
	active      int
}

var _ Browser = (*Chrome)(nil)

// NewChrome starts (or, with cfg.RemoteURL, connects to) a browser and
// opens its first tab. The returned Chrome must be closed.
func NewChrome(ctx context.Context, cfg types.BrowserConfig) (*Chrome, error) {
	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if cfg.RemoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(ctx, cfg.RemoteURL)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, AllocatorOptions(cfg)...)
	}

	first, cancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(first); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	return &Chrome{
		allocCancel: allocCancel,
		tabs:        []tab{{ctx: first, cancel: cancel}},
	}, nil
}

// AllocatorOptions builds the Chrome launch flags for cfg on top of the
// chromedp defaults.
func AllocatorOptions(cfg types.BrowserConfig) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", cfg.Headless))
	if cfg.WindowWidth > 0 && cfg.WindowHeight > 0 {
		opts = append(opts, chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	if cfg.ProxyServer != "" {
		opts = append(opts, chromedp.ProxyServer(cfg.ProxyServer))
	}
	return opts
}

// run executes actions in the active tab. The tab context carries the
// DevTools target; ctx only contributes cancellation.
func (c *Chrome) run(ctx context.Context, timeout time.Duration, what string, actions ...chromedp.Action) error {
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(c.tabs[c.active].ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(c.tabs[c.active].ctx)
	}
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return waitError(ctx, chromedp.Run(runCtx, actions...), what, timeout)
}

func (c *Chrome) Navigate(ctx context.Context, url string) error {
	return c.run(ctx, actionTimeout, "navigating to "+url, chromedp.Navigate(url))
}

func (c *Chrome) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return c.run(ctx, timeout, selector, chromedp.WaitVisible(selector, chromedp.BySearch))
}

func (c *Chrome) WaitReady(ctx context.Context, timeout time.Duration) error {
	var complete bool
	return c.run(ctx, timeout, "page load",
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Poll(`document.readyState === "complete"`, &complete),
	)
}

func (c *Chrome) Click(ctx context.Context, selector string) error {
	return c.run(ctx, actionTimeout, "clicking "+selector, chromedp.Click(selector, chromedp.BySearch))
}

func (c *Chrome) Text(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	var text string
	err := c.run(ctx, timeout, selector, chromedp.Text(selector, &text, chromedp.BySearch))
	return text, err
}

func (c *Chrome) HTML(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	var html string
	err := c.run(ctx, timeout, selector, chromedp.OuterHTML(selector, &html, chromedp.BySearch))
	return html, err
}

func (c *Chrome) Location(ctx context.Context) (string, error) {
	var loc string
	err := c.run(ctx, actionTimeout, "location", chromedp.Location(&loc))
	return loc, err
}

// OpenTab creates a new target in the same browser. A tab that fails to
// load is closed again before returning.
func (c *Chrome) OpenTab(ctx context.Context, url string) error {
	tabCtx, cancel := chromedp.NewContext(c.tabs[0].ctx)
	// The first Run on a context creates its target and ties the target's
	// lifetime to that context, so it must not be a short-lived child.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return fmt.Errorf("opening tab: %w", err)
	}
	c.tabs = append(c.tabs, tab{ctx: tabCtx, cancel: cancel})
	prev := c.active
	c.active = len(c.tabs) - 1

	if err := c.Navigate(ctx, url); err != nil {
		c.tabs = c.tabs[:len(c.tabs)-1]
		c.active = prev
		cancel()
		return fmt.Errorf("opening tab: %w", err)
	}
	return nil
}

func (c *Chrome) SwitchTab(index int) error {
	if index < 0 || index >= len(c.tabs) {
		return fmt.Errorf("%w: %d (have %d)", ErrNoTab, index, len(c.tabs))
	}
	c.active = index
	return nil
}

func (c *Chrome) CloseTab() error {
	if c.active == 0 {
		return fmt.Errorf("%w: the first tab cannot be closed", ErrNoTab)
	}
	c.tabs[c.active].cancel()
	c.tabs = append(c.tabs[:c.active], c.tabs[c.active+1:]...)
	c.active--
	return nil
}

// Close cancels every tab, then the browser allocator. It is safe to call
// more than once.
func (c *Chrome) Close() error {
	for i := len(c.tabs) - 1; i >= 0; i-- {
		c.tabs[i].cancel()
	}
	c.tabs = c.tabs[:0]
	if c.allocCancel != nil {
		c.allocCancel()
		c.allocCancel = nil
	}
	return nil
}

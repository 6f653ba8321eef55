// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browser wraps a single browser session behind the small set of
// operations the scraper needs: navigation, bounded waits, clicks, tab
// handling and reading element text. Everything site-specific lives in the
// caller; this package only knows selectors.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when a bounded wait expires before the element or
// page state appears.
var ErrTimeout = errors.New("timed out")

// ErrNoTab is returned for tab operations on an index that does not exist.
var ErrNoTab = errors.New("no such tab")

// Browser is one browser session with an ordered list of tabs. Tab 0 is the
// tab the session started with; OpenTab appends and activates a new tab.
// Selectors are DevTools search queries, so both CSS selectors and XPath
// expressions are accepted.
type Browser interface {
	// Navigate loads url in the active tab.
	Navigate(ctx context.Context, url string) error

	// WaitVisible blocks until selector matches a visible element or the
	// timeout expires (ErrTimeout).
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// WaitReady blocks until the active document has finished loading.
	WaitReady(ctx context.Context, timeout time.Duration) error

	// Click clicks the first element matching selector.
	Click(ctx context.Context, selector string) error

	// OpenTab opens url in a new tab and makes it active.
	OpenTab(ctx context.Context, url string) error

	// SwitchTab makes the tab at index active.
	SwitchTab(index int) error

	// Text returns the visible text of the first element matching selector.
	Text(ctx context.Context, selector string, timeout time.Duration) (string, error)

	// HTML returns the outer HTML of the first element matching selector.
	HTML(ctx context.Context, selector string, timeout time.Duration) (string, error)

	// Location returns the URL of the active tab.
	Location(ctx context.Context) (string, error)

	// CloseTab closes the active tab and activates the one before it.
	// The first tab cannot be closed.
	CloseTab() error

	// Close ends the session and releases the browser process.
	Close() error
}

// waitError converts the error of a bounded browser action into the
// package's error vocabulary. A deadline hit while the caller's context is
// still live is the action's own timeout; a done caller context wins over
// everything else.
func waitError(ctx context.Context, err error, what string, timeout time.Duration) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w after %s waiting for %s", ErrTimeout, timeout, what)
	}
	return fmt.Errorf("%s: %w", what, err)
}

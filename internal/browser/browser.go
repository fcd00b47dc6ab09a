// Package browser wraps the automated-browser engine behind small Page
// and Element interfaces so the retrieval strategies can be exercised
// against fakes.
package browser

import (
	"context"
	"errors"
	"time"
)

// ErrSessionUnavailable is returned when a browser session cannot be
// acquired at all (no Chrome binary, browser failed to start). It is the
// one fatal condition in the downloader.
var ErrSessionUnavailable = errors.New("browser session unavailable")

// ErrNotFound is returned when a locator pattern matched nothing within
// its wait budget. Callers treat it as "pattern did not match", never as
// a hard failure.
var ErrNotFound = errors.New("element not found")

// Element is a handle to a single located page element.
type Element interface {
	// Click dispatches a click on the element.
	Click(ctx context.Context) error

	// ScrollIntoView scrolls the element into the viewport.
	ScrollIntoView(ctx context.Context) error

	// Screenshot captures the element region as a PNG image.
	Screenshot(ctx context.Context) ([]byte, error)

	// Text returns the element's text content.
	Text(ctx context.Context) (string, error)
}

// Page is the surface the strategies operate on.
type Page interface {
	// Navigate loads the given URL in the page.
	Navigate(ctx context.Context, url string) error

	// WaitReady blocks until the page body is visible or the timeout
	// elapses.
	WaitReady(ctx context.Context, timeout time.Duration) error

	// FindClickable waits up to timeout for a visible element matching
	// the selector. Returns ErrNotFound on timeout.
	FindClickable(ctx context.Context, selector string, timeout time.Duration) (Element, error)

	// FindAll returns all elements currently matching the selector,
	// without waiting. An empty slice is not an error.
	FindAll(ctx context.Context, selector string) ([]Element, error)
}

// Session is a Page plus its lifecycle. Close is idempotent and must be
// callable on every exit path.
type Session interface {
	Page
	Close() error
}

// Options configures a new browser session.
type Options struct {
	Headless  bool
	UserAgent string
}

// DefaultUserAgent mimics a desktop Chrome build; Scribd serves reduced
// pages to obvious bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultOptions returns the standard headless configuration.
func DefaultOptions() Options {
	return Options{
		Headless:  true,
		UserAgent: DefaultUserAgent,
	}
}

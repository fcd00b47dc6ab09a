package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/scribdl/scribdl/internal/logger"
)

// startupTimeout bounds the initial browser launch.
const startupTimeout = 15 * time.Second

// chromeSession drives a single Chrome tab through chromedp.
type chromeSession struct {
	tabCtx      context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	closeOnce   sync.Once
}

// NewSession launches a Chrome instance and returns a Session bound to
// one tab. A missing Chrome binary or a failed launch is reported as
// ErrSessionUnavailable. Cancelling ctx tears the browser down, so an
// interrupted process still releases the session.
func NewSession(ctx context.Context, opts Options) (Session, error) {
	execPath := FindChromePath()
	if execPath == "" {
		return nil, fmt.Errorf("%w: no Chrome binary found in PATH or common locations", ErrSessionUnavailable)
	}

	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(opts.UserAgent),
		chromedp.ExecPath(execPath),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	s := &chromeSession{
		tabCtx:      tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}

	// First Run starts the browser process. Failing here means no
	// session at all, which is fatal for the whole call.
	startCtx, cancel := context.WithTimeout(tabCtx, startupTimeout)
	defer cancel()
	err := chromedp.Run(startCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "en-US,en;q=0.9",
		}),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}

	logger.Debug("browser session started",
		"exec_path", execPath,
		"headless", opts.Headless)
	return s, nil
}

// Navigate loads the given URL.
func (s *chromeSession) Navigate(_ context.Context, url string) error {
	logger.Debug("navigating", "url", url)
	if err := chromedp.Run(s.tabCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// WaitReady waits for the page body to become visible.
func (s *chromeSession) WaitReady(_ context.Context, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(s.tabCtx, timeout)
	defer cancel()
	if err := chromedp.Run(tctx, chromedp.WaitVisible("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("page load wait: %w", err)
	}
	return nil
}

// FindClickable waits up to timeout for a visible match of selector.
func (s *chromeSession) FindClickable(_ context.Context, selector string, timeout time.Duration) (Element, error) {
	tctx, cancel := context.WithTimeout(s.tabCtx, timeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
		}
		return nil, err
	}
	return &chromeElement{tabCtx: s.tabCtx, sel: selector, byQuery: true}, nil
}

// FindAll resolves every current match of selector without waiting.
func (s *chromeSession) FindAll(_ context.Context, selector string) ([]Element, error) {
	tctx, cancel := context.WithTimeout(s.tabCtx, 5*time.Second)
	defer cancel()

	var nodes []*cdp.Node
	err := chromedp.Run(tctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}

	els := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		els = append(els, &chromeElement{tabCtx: s.tabCtx, sel: n.FullXPath()})
	}
	return els, nil
}

// Close tears down the tab and the browser process. Safe to call more
// than once.
func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		logger.Debug("closing browser session")
		s.cancelTab()
		s.cancelAlloc()
	})
	return nil
}

// chromeElement addresses one element either by its original CSS
// selector (clickables) or by the full XPath chromedp resolved for it.
type chromeElement struct {
	tabCtx  context.Context
	sel     string
	byQuery bool
}

func (e *chromeElement) queryOption() chromedp.QueryOption {
	if e.byQuery {
		return chromedp.ByQuery
	}
	return chromedp.BySearch
}

func (e *chromeElement) Click(_ context.Context) error {
	return chromedp.Run(e.tabCtx, chromedp.Click(e.sel, e.queryOption()))
}

func (e *chromeElement) ScrollIntoView(_ context.Context) error {
	return chromedp.Run(e.tabCtx, chromedp.ScrollIntoView(e.sel, e.queryOption()))
}

func (e *chromeElement) Screenshot(_ context.Context) ([]byte, error) {
	var buf []byte
	if err := chromedp.Run(e.tabCtx, chromedp.Screenshot(e.sel, &buf, e.queryOption())); err != nil {
		return nil, fmt.Errorf("screenshot %s: %w", e.sel, err)
	}
	return buf, nil
}

func (e *chromeElement) Text(_ context.Context) (string, error) {
	var text string
	if err := chromedp.Run(e.tabCtx, chromedp.TextContent(e.sel, &text, e.queryOption())); err != nil {
		return "", fmt.Errorf("text content %s: %w", e.sel, err)
	}
	return text, nil
}

package strategy

import (
	"context"
	"errors"

	"github.com/scribdl/scribdl/internal/browser"
	"github.com/scribdl/scribdl/internal/docinfo"
	"github.com/scribdl/scribdl/internal/logger"
)

// DownloadButton probes a fixed list of locator patterns for a clickable
// download control and clicks the first one that appears.
type DownloadButton struct {
	selectors []string
	cfg       Config
}

// NewDownloadButton creates the download-button strategy over the given
// ordered locator patterns.
func NewDownloadButton(selectors []string, cfg Config) *DownloadButton {
	return &DownloadButton{selectors: selectors, cfg: cfg}
}

func (s *DownloadButton) Kind() Kind { return KindDownloadButton }

// Attempt waits up to the per-pattern budget for each locator in turn.
// A successful click counts as success even though nothing confirms a
// file actually materialized; that matches the site's own download flow,
// which hands the file to the browser.
func (s *DownloadButton) Attempt(ctx context.Context, page browser.Page, _ docinfo.DocumentInfo, _ string) (Outcome, error) {
	for _, sel := range s.selectors {
		el, err := page.FindClickable(ctx, sel, s.cfg.ClickWaitTimeout)
		if err != nil {
			if !errors.Is(err, browser.ErrNotFound) {
				logger.Debug("download button lookup failed", "selector", sel, "error", err)
			}
			continue
		}

		if err := el.Click(ctx); err != nil {
			logger.Debug("download button click failed", "selector", sel, "error", err)
			continue
		}

		logger.Info("download initiated", "selector", sel)
		settle(ctx, s.cfg.ClickSettleDelay)
		return Success(""), nil
	}

	return Deferred(ReasonNoMatch), nil
}

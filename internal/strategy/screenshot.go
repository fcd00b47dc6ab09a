package strategy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scribdl/scribdl/internal/browser"
	"github.com/scribdl/scribdl/internal/docinfo"
	"github.com/scribdl/scribdl/internal/fsutil"
	"github.com/scribdl/scribdl/internal/logger"
)

// Screenshot captures the rendered document page regions as PNG images
// into a per-document subdirectory named after the sanitized title.
type Screenshot struct {
	selectors []string
	cfg       Config
}

// NewScreenshot creates the screenshot strategy over the given ordered
// container locator patterns.
func NewScreenshot(selectors []string, cfg Config) *Screenshot {
	return &Screenshot{selectors: selectors, cfg: cfg}
}

func (s *Screenshot) Kind() Kind { return KindScreenshot }

// Attempt uses the first pattern that matches any elements; later
// patterns are not consulted even when individual captures fail.
// Per-region failures are logged and skipped, and the strategy succeeds
// once the output directory exists regardless of how many captures
// landed.
func (s *Screenshot) Attempt(ctx context.Context, page browser.Page, doc docinfo.DocumentInfo, outDir string) (Outcome, error) {
	var regions []browser.Element
	for _, sel := range s.selectors {
		found, err := page.FindAll(ctx, sel)
		if err != nil {
			logger.Debug("page region lookup failed", "selector", sel, "error", err)
			continue
		}
		if len(found) > 0 {
			logger.Debug("page regions located", "selector", sel, "count", len(found))
			regions = found
			break
		}
	}

	if len(regions) == 0 {
		return Deferred(ReasonNoMatch), nil
	}

	docDir := filepath.Join(outDir, doc.Title)
	if err := fsutil.EnsureDir(docDir); err != nil {
		logger.Warn("could not create document directory", "dir", docDir, "error", err)
		return Deferred(ReasonIO), nil
	}

	limit := s.cfg.MaxPages
	if limit <= 0 {
		limit = DefaultConfig().MaxPages
	}
	if len(regions) > limit {
		regions = regions[:limit]
	}

	captured := 0
	for i, region := range regions {
		if err := region.ScrollIntoView(ctx); err != nil {
			logger.Warn("could not scroll page into view", "page", i+1, "error", err)
			continue
		}
		settle(ctx, s.cfg.PageSettleDelay)

		img, err := region.Screenshot(ctx)
		if err != nil {
			logger.Warn("could not capture page", "page", i+1, "error", err)
			continue
		}

		path := filepath.Join(docDir, fmt.Sprintf("page_%d.png", i+1))
		if err := os.WriteFile(path, img, 0o644); err != nil {
			logger.Warn("could not write page image", "path", path, "error", err)
			continue
		}

		captured++
		logger.Info("saved page", "page", i+1, "path", path)
	}

	logger.Info("screenshots saved", "dir", docDir, "captured", captured, "regions", len(regions))
	return Success(docDir), nil
}

package strategy

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/scribdl/scribdl/internal/browser"
	"github.com/scribdl/scribdl/internal/docinfo"
	"github.com/scribdl/scribdl/internal/logger"
)

// TextExtract scrapes the visible text content of the document into a
// single text file named after the sanitized title.
type TextExtract struct {
	selectors []string
}

// NewTextExtract creates the text-extraction strategy over the given
// ordered text-bearing locator patterns.
func NewTextExtract(selectors []string) *TextExtract {
	return &TextExtract{selectors: selectors}
}

func (s *TextExtract) Kind() Kind { return KindTextExtract }

// Attempt accumulates trimmed, non-empty text across ALL patterns and
// all their matched elements, in pattern then element order. This is
// cumulative on purpose, unlike the other strategies which stop at the
// first matching pattern. Fails only when nothing was found anywhere.
func (s *TextExtract) Attempt(ctx context.Context, page browser.Page, doc docinfo.DocumentInfo, outDir string) (Outcome, error) {
	var parts []string

	for _, sel := range s.selectors {
		els, err := page.FindAll(ctx, sel)
		if err != nil {
			logger.Debug("text lookup failed", "selector", sel, "error", err)
			continue
		}
		for _, el := range els {
			text, err := el.Text(ctx)
			if err != nil {
				logger.Debug("text read failed", "selector", sel, "error", err)
				continue
			}
			if text = strings.TrimSpace(text); text != "" {
				parts = append(parts, text)
			}
		}
	}

	if len(parts) == 0 {
		return Deferred(ReasonNoText), nil
	}

	path := filepath.Join(outDir, doc.Title+".txt")
	if err := os.WriteFile(path, []byte(strings.Join(parts, "\n\n")), 0o644); err != nil {
		logger.Warn("could not write text file", "path", path, "error", err)
		return Deferred(ReasonIO), nil
	}

	logger.Info("text content saved", "path", path, "fragments", len(parts))
	return Success(path), nil
}

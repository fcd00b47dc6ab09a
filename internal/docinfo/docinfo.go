// Package docinfo resolves a document's title and numeric identifier
// from its Scribd page with a single static HTTP fetch.
package docinfo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/scribdl/scribdl/internal/logger"
	"github.com/scribdl/scribdl/internal/sanitize"
	"github.com/scribdl/scribdl/internal/scribd"
)

// PlaceholderTitle is used when the page has no recognizable title.
const PlaceholderTitle = "Unknown Document"

// DocumentInfo describes the document being retrieved. Created once per
// retrieval attempt and immutable thereafter. Title is already
// filesystem-safe.
type DocumentInfo struct {
	Title     string
	DocID     string
	SourceURL string
}

// Extractor performs the info fetch.
type Extractor struct {
	userAgent string
	timeout   time.Duration
}

// NewExtractor creates an extractor with the given user agent and
// request timeout; empty/zero values get defaults.
func NewExtractor(userAgent string, timeout time.Duration) *Extractor {
	if userAgent == "" {
		userAgent = "scribdl/1.0"
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Extractor{userAgent: userAgent, timeout: timeout}
}

// Extract fetches the page at rawURL and derives the document info. A
// failed fetch returns an error sentinel; callers degrade to Fallback
// rather than aborting.
func (e *Extractor) Extract(_ context.Context, rawURL string) (*DocumentInfo, error) {
	c := colly.NewCollector(colly.UserAgent(e.userAgent))
	c.SetRequestTimeout(e.timeout)

	var body []byte
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(rawURL); err != nil {
		return nil, fmt.Errorf("fetch document page: %w", err)
	}
	if fetchErr != nil {
		return nil, fmt.Errorf("fetch document page: %w", fetchErr)
	}

	title := PlaceholderTitle
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err == nil {
		if t := queryFirst(doc, scribd.TitleSelectors); t != "" {
			title = t
		}
	} else {
		logger.Debug("could not parse document page", "url", rawURL, "error", err)
	}

	info := &DocumentInfo{
		Title:     sanitize.Filename(title),
		DocID:     scribd.DocumentID(rawURL),
		SourceURL: rawURL,
	}
	logger.Debug("document info extracted",
		"title", info.Title,
		"doc_id", info.DocID)
	return info, nil
}

// Fallback builds a placeholder DocumentInfo for when the info fetch
// fails; the ID can still come from the URL itself.
func Fallback(rawURL string) DocumentInfo {
	return DocumentInfo{
		Title:     sanitize.Filename(PlaceholderTitle),
		DocID:     scribd.DocumentID(rawURL),
		SourceURL: rawURL,
	}
}

// queryFirst returns the trimmed text of the first selector in the list
// that matches an element with non-empty text.
func queryFirst(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// Package strategy implements the retrieval fallback pipeline: a fixed
// priority-ordered list of extraction strategies, each independently able
// to declare success or defer to the next.
package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/scribdl/scribdl/internal/browser"
	"github.com/scribdl/scribdl/internal/docinfo"
	"github.com/scribdl/scribdl/internal/logger"
	"github.com/scribdl/scribdl/internal/scribd"
)

// Kind identifies a retrieval strategy.
type Kind int

const (
	KindNone Kind = iota
	KindDownloadButton
	KindScreenshot
	KindTextExtract
)

func (k Kind) String() string {
	switch k {
	case KindDownloadButton:
		return "download-button"
	case KindScreenshot:
		return "screenshot"
	case KindTextExtract:
		return "text-extract"
	default:
		return "none"
	}
}

// Status is the coarse result of one strategy attempt.
type Status int

const (
	// StatusSuccess means the strategy produced output; the pipeline
	// stops here.
	StatusSuccess Status = iota

	// StatusDeferred means the strategy could not apply and hands over
	// to the next one.
	StatusDeferred
)

// Reason records why an attempt deferred. The pipeline keeps it per
// attempt; the outermost boundary still collapses everything to a
// boolean.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoMatch
	ReasonNoText
	ReasonIO
)

func (r Reason) String() string {
	switch r {
	case ReasonNoMatch:
		return "no matching elements"
	case ReasonNoText:
		return "no text content found"
	case ReasonIO:
		return "filesystem error"
	default:
		return ""
	}
}

// Outcome is the tagged result of a single strategy attempt.
type Outcome struct {
	Status Status
	Path   string // output location, may be empty for download clicks
	Reason Reason
}

// Success builds a successful outcome pointing at path.
func Success(path string) Outcome {
	return Outcome{Status: StatusSuccess, Path: path}
}

// Deferred builds a hand-over outcome with the given reason.
func Deferred(reason Reason) Outcome {
	return Outcome{Status: StatusDeferred, Reason: reason}
}

// Strategy is one self-contained method of obtaining document content
// from a loaded page. A non-nil error from Attempt is an unexpected
// failure and aborts the whole pipeline; everything expected is an
// Outcome.
type Strategy interface {
	Kind() Kind
	Attempt(ctx context.Context, page browser.Page, doc docinfo.DocumentInfo, outDir string) (Outcome, error)
}

// Attempt records one strategy's try for the enriched result.
type Attempt struct {
	Strategy Kind
	Status   Status
	Reason   Reason
}

// Result is the terminal value of a pipeline run. At most one per
// invocation.
type Result struct {
	Succeeded  bool
	Strategy   Kind // strategy that produced the output, KindNone on failure
	OutputPath string
	Attempts   []Attempt
}

// Config carries the tunable wait bounds shared by the strategies.
type Config struct {
	ClickWaitTimeout time.Duration // per-pattern wait for a clickable match
	ClickSettleDelay time.Duration // pause after a download click
	PageSettleDelay  time.Duration // pause after scrolling a page region into view
	MaxPages         int           // screenshot region cap
}

// DefaultConfig returns the production wait bounds.
func DefaultConfig() Config {
	return Config{
		ClickWaitTimeout: 5 * time.Second,
		ClickSettleDelay: 5 * time.Second,
		PageSettleDelay:  time.Second,
		MaxPages:         10,
	}
}

// Pipeline tries its strategies in fixed order and stops at the first
// success. No branching back, no scoring.
type Pipeline struct {
	strategies []Strategy
}

// NewPipeline builds a pipeline over the given strategies, tried in
// argument order.
func NewPipeline(strategies ...Strategy) *Pipeline {
	return &Pipeline{strategies: strategies}
}

// NewDefaultPipeline wires the standard chain: download button, then
// page screenshots, then text extraction.
func NewDefaultPipeline(cfg Config) *Pipeline {
	return NewPipeline(
		NewDownloadButton(scribd.DownloadButtonSelectors, cfg),
		NewScreenshot(scribd.PageSelectors, cfg),
		NewTextExtract(scribd.TextSelectors),
	)
}

// Run executes the pipeline against a loaded page. The returned error is
// only non-nil for unexpected strategy failures; strategy exhaustion is
// a Result with Succeeded=false.
func (p *Pipeline) Run(ctx context.Context, page browser.Page, doc docinfo.DocumentInfo, outDir string) (Result, error) {
	res := Result{Strategy: KindNone}

	for _, s := range p.strategies {
		logger.Debug("attempting strategy", "strategy", s.Kind().String())

		out, err := s.Attempt(ctx, page, doc, outDir)
		if err != nil {
			return res, fmt.Errorf("strategy %s: %w", s.Kind(), err)
		}

		res.Attempts = append(res.Attempts, Attempt{Strategy: s.Kind(), Status: out.Status, Reason: out.Reason})

		if out.Status == StatusSuccess {
			res.Succeeded = true
			res.Strategy = s.Kind()
			res.OutputPath = out.Path
			return res, nil
		}

		logger.Debug("strategy deferred",
			"strategy", s.Kind().String(),
			"reason", out.Reason.String())
	}

	return res, nil
}

// settle pauses for d, returning early when ctx is cancelled.
func settle(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// Package downloader orchestrates one document retrieval: it owns the
// browser session lifecycle and sequences info extraction, the strategy
// pipeline and the metadata sidecar.
package downloader

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/scribdl/scribdl/internal/browser"
	"github.com/scribdl/scribdl/internal/docinfo"
	"github.com/scribdl/scribdl/internal/fsutil"
	"github.com/scribdl/scribdl/internal/logger"
	"github.com/scribdl/scribdl/internal/metadata"
	"github.com/scribdl/scribdl/internal/retry"
	"github.com/scribdl/scribdl/internal/strategy"
)

// Config controls a Downloader. Validated on construction.
type Config struct {
	OutputDir       string `validate:"required"`
	Headless        bool
	UserAgent       string        `validate:"required"`
	PageLoadTimeout time.Duration `validate:"gt=0"`
	MaxPages        int           `validate:"gte=1,lte=50"`

	// FetchRetry is applied to the document-info fetch. SessionRetry is
	// applied to session acquisition and defaults to a single attempt:
	// a missing browser is not a transient condition.
	FetchRetry   retry.Policy
	SessionRetry retry.Policy
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		OutputDir:       "downloads",
		Headless:        true,
		UserAgent:       browser.DefaultUserAgent,
		PageLoadTimeout: 10 * time.Second,
		MaxPages:        10,
		FetchRetry:      retry.Default,
		SessionRetry:    retry.None,
	}
}

// SessionFactory acquires a browser session. Swappable for tests.
type SessionFactory func(ctx context.Context, opts browser.Options) (browser.Session, error)

// InfoFunc resolves document info for a URL. Swappable for tests.
type InfoFunc func(ctx context.Context, url string) (*docinfo.DocumentInfo, error)

// Result is what a retrieval call reports. The Succeeded flag is the
// contract with callers; Strategy, OutputPath and Attempts carry the
// enriched detail.
type Result struct {
	Succeeded  bool
	Strategy   strategy.Kind
	OutputPath string
	Info       docinfo.DocumentInfo
	Attempts   []strategy.Attempt
}

// Downloader retrieves documents one at a time, opening and closing a
// browser session per call.
type Downloader struct {
	cfg        Config
	pipeline   *strategy.Pipeline
	newSession SessionFactory
	info       InfoFunc
}

// Option customizes a Downloader.
type Option func(*Downloader)

// WithSessionFactory replaces how browser sessions are acquired.
func WithSessionFactory(f SessionFactory) Option {
	return func(d *Downloader) { d.newSession = f }
}

// WithPipeline replaces the strategy pipeline.
func WithPipeline(p *strategy.Pipeline) Option {
	return func(d *Downloader) { d.pipeline = p }
}

// WithInfoFunc replaces the document-info fetch.
func WithInfoFunc(f InfoFunc) Option {
	return func(d *Downloader) { d.info = f }
}

// New validates cfg and builds a Downloader.
func New(cfg Config, opts ...Option) (*Downloader, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid downloader configuration: %w", err)
	}

	extractor := docinfo.NewExtractor(cfg.UserAgent, 30*time.Second)
	d := &Downloader{
		cfg: cfg,
		pipeline: strategy.NewDefaultPipeline(strategy.Config{
			ClickWaitTimeout: 5 * time.Second,
			ClickSettleDelay: 5 * time.Second,
			PageSettleDelay:  time.Second,
			MaxPages:         cfg.MaxPages,
		}),
		newSession: browser.NewSession,
		info:       extractor.Extract,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Retrieve fetches one document. The returned error is non-nil only for
// fatal conditions (no browser session, pipeline abort); strategy
// exhaustion and page-load timeouts come back as a Result with
// Succeeded=false.
func (d *Downloader) Retrieve(ctx context.Context, url string) (Result, error) {
	sess, err := d.acquireSession(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("acquire browser session: %w", err)
	}
	defer func() { _ = sess.Close() }()

	logger.Info("loading page", "url", url)
	if err := sess.Navigate(ctx, url); err != nil {
		logger.Error("could not load page", "url", url, "error", err)
		return Result{Info: docinfo.Fallback(url)}, nil
	}
	if err := sess.WaitReady(ctx, d.cfg.PageLoadTimeout); err != nil {
		logger.Error("page did not become ready", "url", url, "error", err)
		return Result{Info: docinfo.Fallback(url)}, nil
	}

	info := d.resolveInfo(ctx, url)
	logger.Info("document resolved", "title", info.Title, "doc_id", info.DocID)

	if err := fsutil.EnsureDir(d.cfg.OutputDir); err != nil {
		return Result{Info: info}, fmt.Errorf("create output directory: %w", err)
	}

	pres, perr := d.pipeline.Run(ctx, sess, info, d.cfg.OutputDir)

	// The sidecar records the attempt whether or not anything was
	// retrieved; it is overwritten wholesale each run.
	rec := metadata.NewRecord(info.Title, info.DocID, info.SourceURL)
	if merr := metadata.Save(d.cfg.OutputDir, rec); merr != nil {
		logger.Warn("could not save metadata", "error", merr)
	}

	res := Result{
		Succeeded:  pres.Succeeded,
		Strategy:   pres.Strategy,
		OutputPath: pres.OutputPath,
		Info:       info,
		Attempts:   pres.Attempts,
	}

	if perr != nil {
		return res, fmt.Errorf("retrieval pipeline: %w", perr)
	}

	if res.Succeeded {
		logger.Info("retrieval complete",
			"strategy", res.Strategy.String(),
			"output", res.OutputPath,
			"total_size", fsutil.HumanSize(fsutil.DirSize(d.cfg.OutputDir)))
	} else {
		logger.Warn("all strategies exhausted", "url", url, "attempts", len(res.Attempts))
	}
	return res, nil
}

// acquireSession opens the browser session under the configured retry
// policy. Failure here is the one fatal condition in the downloader.
func (d *Downloader) acquireSession(ctx context.Context) (browser.Session, error) {
	var sess browser.Session
	err := d.cfg.SessionRetry.Do(ctx, "session acquisition", func() error {
		s, err := d.newSession(ctx, browser.Options{
			Headless:  d.cfg.Headless,
			UserAgent: d.cfg.UserAgent,
		})
		if err != nil {
			return err
		}
		sess = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// resolveInfo runs the static info fetch under the retry policy and
// degrades to a placeholder rather than failing the call.
func (d *Downloader) resolveInfo(ctx context.Context, url string) docinfo.DocumentInfo {
	var info *docinfo.DocumentInfo
	err := d.cfg.FetchRetry.Do(ctx, "document info fetch", func() error {
		i, err := d.info(ctx, url)
		if err != nil {
			return err
		}
		info = i
		return nil
	})
	if err != nil || info == nil {
		logger.Warn("could not extract document info, using placeholder", "url", url, "error", err)
		return docinfo.Fallback(url)
	}
	return *info
}

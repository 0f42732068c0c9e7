package ingestion

import (
	"context"
	"time"

	"github.com/jonathan/jobpilot/internal/fetch"
	"go.uber.org/zap"
)

// URLOptions configures job posting ingestion.
type URLOptions struct {
	Fetch          *fetch.Options
	UseBrowser     bool
	BrowserTimeout time.Duration
	Logger         *zap.Logger
	Now            func() time.Time
}

// IngestFromURL fetches a job posting, extracts its description with
// platform-specific selectors and returns it cleaned. When UseBrowser is set and
// the HTTP response carries too little text, the page is rendered in a headless
// browser and extraction is retried.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Provenance, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("fetching job posting", zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, err
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)
	html := result.HTML

	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, &fetch.Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		timeout := opts.BrowserTimeout
		if timeout <= 0 {
			timeout = fetch.DefaultTimeout
		}
		logger.Debug("content too short, rendering in browser", zap.Int("chars", len(text)))

		rendered, browserErr := fetch.WithBrowser(ctx, urlStr, timeout, logger)
		if browserErr != nil {
			logger.Warn("browser rendering failed, keeping HTTP content", zap.Error(browserErr))
		} else if browserText, extractErr := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); extractErr == nil {
			text = browserText
			html = rendered
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, &fetch.Error{URL: urlStr, Message: "no job description text found"}
	}

	prov := newProvenance(cleaned, urlStr, result.ContentType, now())
	prov.Platform = string(platform)
	prov.Title = fetch.Title(html)
	logger.Debug("job posting ingested",
		zap.String("url", urlStr),
		zap.Int("chars", prov.Chars),
		zap.String("fingerprint", prov.Fingerprint()),
	)

	return cleaned, prov, nil
}

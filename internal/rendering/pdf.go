package rendering

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/jobpilot/internal/fetch"
	"go.uber.org/zap"
)

// DefaultPDFTimeout bounds a single PDF print.
const DefaultPDFTimeout = 30 * time.Second

// PrintPDF loads html into a headless browser and prints it to A4 PDF.
// Requires Chrome/Chromium to be installed on the system.
func PrintPDF(ctx context.Context, html string, timeout time.Duration, logger *zap.Logger) ([]byte, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, fetch.AllocatorOptions()...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches.
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Stage: StagePDF, Message: "failed to print PDF", Cause: err}
	}

	logger.Debug("printed PDF", zap.Int("bytes", len(pdf)))
	return pdf, nil
}

// Package pdf turns a canonical export document into a printable PDF by
// rendering an HTML template and printing it through headless Chrome.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/export"
)

// detectChromePath checks CHROME_PATH first, then common installation
// paths. An empty result lets chromedp auto-detect.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

type Renderer struct {
	chromePath string
}

// NewRenderer builds a renderer. An empty chromePath falls back to
// CHROME_PATH and the usual installation locations.
func NewRenderer(chromePath string) *Renderer {
	if chromePath == "" {
		chromePath = detectChromePath()
	}

	return &Renderer{chromePath: chromePath}
}

// Render prints the document to PDF bytes. Renderer failures surface as
// UpstreamUnavailableError; callers exporting JSON never depend on this.
func (r *Renderer) Render(ctx context.Context, doc export.Document) ([]byte, error) {
	html, err := renderHTML(doc)
	if err != nil {
		return nil, fmt.Errorf("renderHTML -> %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tmpFile, err := os.CreateTemp("", "stand-export-*.html")
	if err != nil {
		return nil, fmt.Errorf("os.CreateTemp -> %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err = tmpFile.Write(html); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("tmpFile.Write -> %w", err)
	}
	if err = tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("tmpFile.Close -> %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	fileURL := "file://" + filepath.ToSlash(tmpFile.Name())

	var pdfBytes []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate(fileURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			pdfBytes, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4
				WithPaperHeight(11.7). // A4
				Do(ctx)

			return printErr
		}),
	)
	if err != nil {
		return nil, &domain.UpstreamUnavailableError{Upstream: "pdf renderer", Err: err}
	}

	return pdfBytes, nil
}

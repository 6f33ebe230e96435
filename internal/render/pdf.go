// Package render turns playbook markdown into styled HTML and PDF. PDF
// output goes through headless Chromium so the print CSS matches what users
// see in the browser.
package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/growthphysics/consulting-os/internal/playbook"
)

type ChromiumPDFRenderer struct {
	chromePath string
}

func NewChromiumPDFRenderer() *ChromiumPDFRenderer {
	return &ChromiumPDFRenderer{chromePath: detectChromePath()}
}

// Render produces a PDF of the playbook. The markdown is converted to HTML,
// loaded into Chromium via a data URL, and printed to A4.
func (r *ChromiumPDFRenderer) Render(ctx context.Context, p *playbook.Playbook) ([]byte, error) {
	htmlDoc, err := BuildHTML(p)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;padding-right:8px;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

// BuildHTML converts the playbook to a standalone print-ready HTML document.
func BuildHTML(p *playbook.Playbook) (string, error) {
	markdown := playbook.FormatMarkdown(p)

	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>" +
		html.EscapeString(p.Title) + "</title>" +
		"<style>" + playbookCSS + "</style></head><body>" +
		"<div class='pb-wrap'><section class='pb-viewer'>" +
		"<div class='pb-badge'>" + html.EscapeString(string(p.Constraint)) + " constraint</div>" +
		"<div class='pb-html'>" + content.String() + "</div>" +
		"</section></div></body></html>", nil
}

const playbookCSS = `
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
body{background:#fff;padding:0.6rem;font-family:Georgia,serif;color:#1c1917;line-height:1.5;}
.pb-wrap{max-width:1000px;margin:0 auto;}
.pb-viewer{background:#f9f7f3;padding:1rem 1.25rem;}
.pb-badge{display:inline-block;background:#fef3c7;color:#78350f;border:1px solid #fcd34d;border-radius:4px;padding:0.15rem 0.6rem;font-size:0.8rem;text-transform:uppercase;letter-spacing:0.05em;margin-bottom:0.75rem;}
.pb-html h1{font-size:1.6rem;margin:0 0 0.75rem;}
.pb-html h2{font-size:1.2rem;border-bottom:2px solid #92400e;padding-bottom:0.2rem;margin-top:1.4rem;}
.pb-html h3{font-size:1rem;margin-top:1.1rem;}
.pb-html table{width:100%;border-collapse:collapse;border:1px solid #a8a29e;font-size:0.8rem;}
.pb-html th,.pb-html td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;}
.pb-html thead th{background:#f1f5f9;font-weight:700;}
.pb-html h2{break-after:avoid;}
@media print{ @page{size:auto;margin:12mm;} body{padding:0;} .pb-wrap{max-width:none;} }
`

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

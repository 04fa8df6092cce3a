package receipt

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"mostrador-pos/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

//go:embed templates/receipt.html
var templatesFS embed.FS

const (
	paperWidthInches = 3.15 // 80mm
	mmPerInch        = 25.4
	pdfTimeout       = 30 * time.Second
)

// Renderer turns recorded sales into printable receipts.
type Renderer struct {
	tmpl       *template.Template
	store      StoreInfo
	logo       string
	loc        *time.Location
	chromePath string
	log        *zap.SugaredLogger
}

// NewRenderer parses the receipt template. logo is a data URI from LoadLogo
// and may be empty. chromePath may be empty to auto-detect the browser.
func NewRenderer(store StoreInfo, logo string, loc *time.Location, chromePath string, logger *zap.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/receipt.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		tmpl:       tmpl,
		store:      store,
		logo:       logo,
		loc:        loc,
		chromePath: chromePath,
		log:        logger.Sugar(),
	}, nil
}

// HTML writes the receipt of sale to w.
func (r *Renderer) HTML(w io.Writer, sale *models.SaleDetail) error {
	rec := Build(r.store, sale, r.loc)
	// data URIs are not URLs html/template trusts on its own
	rec.LogoDataURI = template.URL(r.logo)

	if err := r.tmpl.Execute(w, rec); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// PDF prints the receipt of sale on an 80mm roll using headless Chrome.
func (r *Renderer) PDF(ctx context.Context, sale *models.SaleDetail) ([]byte, error) {
	var html bytes.Buffer
	if err := r.HTML(&html, sale); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, pdfTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if path := detectChromePath(r.chromePath); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html.String()).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches(sale)).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		r.log.Errorf("❌ Receipt PDF: sale %d: %v", sale.ID, err)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	r.log.Infof("🧾 Receipt PDF: sale %d, %d bytes", sale.ID, len(pdfBuf))
	return pdfBuf, nil
}

// paperHeightInches sizes the roll cut to the receipt content.
func paperHeightInches(sale *models.SaleDetail) float64 {
	mm := 120.0 + 10.0*float64(len(sale.Lines)) + 6.0*float64(len(sale.Payments))
	if sale.Notes != "" {
		mm += 12
	}
	return mm / mmPerInch
}

// detectChromePath returns configured if it exists, then the first common
// Chrome/Chromium install found. Empty lets chromedp search $PATH.
func detectChromePath(configured string) string {
	paths := []string{
		configured,
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Parcel Report {{.AccountNum}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 32px; }
h1 { font-size: 20px; border-bottom: 2px solid #2a4d69; padding-bottom: 6px; }
table { border-collapse: collapse; width: 100%; margin-bottom: 18px; }
td, th { border: 1px solid #ccc; padding: 5px 8px; font-size: 12px; text-align: left; }
th { background: #eef2f6; }
.notfound { color: #a33; font-weight: bold; }
</style>
</head>
<body>
<h1>Parcel Report — {{.AccountNum}}</h1>
{{if .NotFound}}<p class="notfound">No attribute record found for this parcel.</p>{{else}}
<table>
{{range .Rows}}<tr><th>{{index . 0}}</th><td>{{index . 1}}</td></tr>
{{end}}
</table>
{{end}}
</body>
</html>`))

type reportData struct {
	AccountNum string
	NotFound   bool
	Rows       [][]string
}

// PDFRenderer rasterizes a styled HTML report with a headless browser.
// Rendering is long-running; Busy exposes the transient indicator state so
// callers never block on a second export.
type PDFRenderer struct {
	chromeBin string
	busy      atomic.Bool
}

func NewPDFRenderer(chromeBin string) *PDFRenderer {
	return &PDFRenderer{chromeBin: chromeBin}
}

func (r *PDFRenderer) Busy() bool {
	return r.busy.Load()
}

// RenderHTML produces the report document fed to the rasterizer.
func RenderHTML(d *models.ParcelDetail) (string, error) {
	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, reportData{
		AccountNum: d.AccountNum,
		NotFound:   d.NotFound,
		Rows:       DetailRows(d),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SavePDF renders the detail to a PDF artifact under dir and returns its
// path. Only one render runs at a time.
func (r *PDFRenderer) SavePDF(dir string, d *models.ParcelDetail) (string, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return "", fmt.Errorf("a report export is already running")
	}
	defer r.busy.Store(false)

	html, err := RenderHTML(d)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	l := launcher.New().Headless(true)
	if r.chromeBin != "" {
		l = l.Bin(r.chromeBin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return "", err
	}
	if err := page.SetDocumentContent(html); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
	})
	if err != nil {
		return "", fmt.Errorf("rasterize report: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("parcel_%s_%s.pdf", safeName(d.AccountNum), uuid.New().String()[:8])
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

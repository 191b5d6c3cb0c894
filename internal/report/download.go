package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mmynk/dahira/internal/models"
)

// Download is a rendered report ready to be sent to a client.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

type document interface {
	historyRecord() *models.ReportRecord
}

// Renderer turns assembled documents into downloads. Each successful
// download is appended to the report history.
type Renderer struct {
	assembler *Assembler
	pdf       PDFRenderer
}

// NewRenderer creates a Renderer. pdf may be nil, in which case PDF requests
// fail with ErrPDFDisabled.
func NewRenderer(assembler *Assembler, pdf PDFRenderer) *Renderer {
	return &Renderer{assembler: assembler, pdf: pdf}
}

// Event renders the report of one event.
func (r *Renderer) Event(ctx context.Context, eventID string, format Format) (*Download, error) {
	if err := r.checkFormat(format); err != nil {
		return nil, err
	}
	doc, err := r.assembler.EventReport(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return r.render(ctx, doc, Filename(doc.Event.Name, doc.GeneratedAt, format), format)
}

// Annual renders the report of a calendar year.
func (r *Renderer) Annual(ctx context.Context, year int, format Format) (*Download, error) {
	if err := r.checkFormat(format); err != nil {
		return nil, err
	}
	doc, err := r.assembler.AnnualReport(ctx, year)
	if err != nil {
		return nil, err
	}
	return r.render(ctx, doc, Filename("annuel-"+strconv.Itoa(year), doc.GeneratedAt, format), format)
}

// checkFormat fails before assembly so an unusable request leaves no history entry.
func (r *Renderer) checkFormat(format Format) error {
	if format == FormatPDF && r.pdf == nil {
		return ErrPDFDisabled
	}
	return nil
}

func (r *Renderer) render(ctx context.Context, doc document, filename string, format Format) (*Download, error) {
	dl, err := r.encode(ctx, doc, filename, format)
	if err != nil {
		return nil, err
	}
	r.assembler.record(ctx, doc.historyRecord())
	return dl, nil
}

func (r *Renderer) encode(ctx context.Context, doc any, filename string, format Format) (*Download, error) {
	switch format {
	case FormatJSON:
		body, err := RenderJSON(doc)
		if err != nil {
			return nil, err
		}
		return &Download{Filename: filename, ContentType: "application/json", Body: body}, nil
	case FormatPDF:
		html, err := RenderHTML(doc)
		if err != nil {
			return nil, err
		}
		body, err := r.pdf.RenderHTML(ctx, html)
		if err != nil {
			return nil, fmt.Errorf("failed to render pdf: %w", err)
		}
		return &Download{Filename: filename, ContentType: "application/pdf", Body: body}, nil
	}
	return nil, fmt.Errorf("unsupported report format %q", format)
}

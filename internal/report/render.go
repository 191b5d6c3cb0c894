package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format is an output format for a report download.
type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "json" and "pdf"; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported report format %q", s)
}

//go:embed templates/*.html
var templateFS embed.FS

var (
	printer   = message.NewPrinter(language.French)
	templates = template.Must(template.New("").Funcs(template.FuncMap{
		"money":   Money,
		"date":    frenchDate,
		"percent": func(v int) string { return fmt.Sprintf("%d %%", v) },
		"status":  statusLabel,
	}).ParseFS(templateFS, "templates/*.html"))
)

// Money formats an amount the way the association writes it, e.g. "12 500 F CFA".
func Money(amount int64) string {
	return printer.Sprintf("%d F CFA", amount)
}

func frenchDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func statusLabel(s string) string {
	switch s {
	case "upcoming":
		return "À venir"
	case "ongoing":
		return "En cours"
	case "completed":
		return "Terminé"
	}
	return s
}

// RenderJSON encodes a report document as indented JSON.
func RenderJSON(doc any) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return b, nil
}

// RenderHTML renders a report document into a standalone HTML page.
func RenderHTML(doc any) (string, error) {
	var name string
	switch doc.(type) {
	case *EventReport:
		name = "event"
	case *AnnualReport:
		name = "annual"
	default:
		return "", fmt.Errorf("unsupported report document %T", doc)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, doc); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

var unsafeFilename = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Filename builds the download name, e.g. "rapport-gamou-2024-2024-09-20.json".
func Filename(subject string, generatedAt time.Time, format Format) string {
	slug := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(subject), "-"), "-")
	if slug == "" {
		slug = "dahira"
	}
	return fmt.Sprintf("rapport-%s-%s.%s", slug, generatedAt.Format("2006-01-02"), format)
}

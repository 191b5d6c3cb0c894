package server

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/dahira/internal/metrics"
	"github.com/mmynk/dahira/internal/middleware"
	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/report"
)

type reportHandler struct {
	renderer *report.Renderer
	metrics  *metrics.Metrics
}

func (h *reportHandler) handleEvent(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		problem(w, http.StatusBadRequest, "Invalid format", err.Error())
		return
	}
	id := chi.URLParam(r, "id")

	download, err := h.renderer.Event(r.Context(), id, format)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.send(w, r, models.ReportEvent, format, download)
}

func (h *reportHandler) handleAnnual(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		problem(w, http.StatusBadRequest, "Invalid format", err.Error())
		return
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		problem(w, http.StatusBadRequest, "Invalid year", fmt.Sprintf("%q is not a calendar year", chi.URLParam(r, "year")))
		return
	}

	download, err := h.renderer.Annual(r.Context(), year, format)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.send(w, r, models.ReportAnnual, format, download)
}

func (h *reportHandler) send(w http.ResponseWriter, r *http.Request, typ models.ReportType, format report.Format, d *report.Download) {
	h.metrics.ReportGenerated(string(typ), string(format))
	slog.Info("Report generated",
		"type", typ,
		"format", format,
		"filename", d.Filename,
		"user_id", middleware.GetUserID(r.Context()),
	)
	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(d.Body)))
	_, _ = w.Write(d.Body)
}

func (h *reportHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, report.ErrEventNotFound):
		problem(w, http.StatusNotFound, "Event not found", err.Error())
	case errors.Is(err, report.ErrPDFDisabled):
		problem(w, http.StatusServiceUnavailable, "PDF unavailable", err.Error())
	default:
		slog.Error("Report generation failed", "path", r.URL.Path, "error", err)
		problem(w, http.StatusInternalServerError, "Report generation failed", "")
	}
}

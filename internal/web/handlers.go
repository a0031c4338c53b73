package web

import (
	"database/sql"
	"net/http"

	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/report"
)

// Handlers contains HTTP route handlers for the dashboard.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleDashboard handles GET / — the progress report rendered as HTML.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := report.BuildMarkdown(h.db, h.cfg, report.MarkdownInput{})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, http.StatusOK, PageData{
		Title: "Writing progress, " + result.Day,
		Body:  renderMarkdown(result.Text),
	})
}

// HandleReportMarkdown handles GET /report.md — the raw markdown report.
func (h *Handlers) HandleReportMarkdown(w http.ResponseWriter, r *http.Request) {
	result, err := report.BuildMarkdown(h.db, h.cfg, report.MarkdownInput{})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.Text))
}

// HandleReportJSON handles GET /report.json — the outline report as JSON.
func (h *Handlers) HandleReportJSON(w http.ResponseWriter, r *http.Request) {
	result, err := report.Outline(h.db, h.cfg, report.OutlineInput{})
	if err != nil {
		h.renderer.renderErrorJSON(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/hpungsan/texpulse/internal/errors"
)

// PageData carries the fields the layout template renders.
type PageData struct {
	Title   string
	Version string
	Body    template.HTML
}

// Renderer holds the parsed layout template.
type Renderer struct {
	layout  *template.Template
	version string
}

// NewRenderer creates a Renderer by parsing the layout from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	layout := template.Must(template.New("layout").ParseFS(templateFS, "layout.html"))
	return &Renderer{layout: layout, version: version}
}

// renderPage executes the layout with the given data and status code.
func (r *Renderer) renderPage(w http.ResponseWriter, status int, data PageData) {
	data.Version = r.version

	var buf bytes.Buffer
	if err := r.layout.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation: a JSON
// payload when the client asks for it, a full error page otherwise.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		r.renderErrorJSON(w, err)
		return
	}

	opErr := coerce(err)
	status := httpStatus(opErr.Code)
	body := fmt.Sprintf(`<p class="error">%s</p>`, template.HTMLEscapeString(opErr.Message))
	r.renderPage(w, status, PageData{
		Title: fmt.Sprintf("Error %d", status),
		Body:  template.HTML(body),
	})
}

// renderErrorJSON renders an error as JSON regardless of the Accept header.
func (r *Renderer) renderErrorJSON(w http.ResponseWriter, err error) {
	opErr := coerce(err)
	status := httpStatus(opErr.Code)
	renderJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    string(opErr.Code),
			"message": opErr.Message,
			"status":  status,
		},
	})
}

// coerce turns any error into a coded one; unknown errors become INTERNAL.
func coerce(err error) *errors.Error {
	var opErr *errors.Error
	if stderrors.As(err, &opErr) {
		return opErr
	}
	return errors.NewInternal(err)
}

// httpStatus maps error codes onto HTTP status codes.
func httpStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ErrInvalidRequest, errors.ErrUnknownCommand:
		return http.StatusBadRequest
	case errors.ErrFileMissing, errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrBaselineDrift:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

package report

import (
	"bytes"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"

	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/errors"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path string // optional, default: <state dir>/exports/report-<day>.md
	HTML bool   // convert the markdown report into a standalone HTML page
	Now  time.Time
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Bytes      int    `json:"bytes"`
	ExportedAt int64  `json:"exported_at"`
}

const htmlPage = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { max-width: 46rem; margin: 2rem auto; padding: 0 1rem;
       font: 16px/1.5 system-ui, sans-serif; color: #1a1a1a; }
h1, h2 { border-bottom: 1px solid #ddd; padding-bottom: .3rem; }
code { background: #f4f4f4; padding: .1rem .3rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`

var htmlTemplate = template.Must(template.New("page").Parse(htmlPage))

// Export writes the markdown progress report to a file, optionally
// converted to a standalone HTML page. The write goes to a temp file first
// and is renamed into place, so a failure never clobbers a previous export.
func Export(database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	md, err := BuildMarkdown(database, cfg, MarkdownInput{Now: now})
	if err != nil {
		return nil, err
	}

	body := []byte(md.Text)
	if input.HTML {
		body, err = renderHTMLPage(md)
		if err != nil {
			return nil, err
		}
	}

	exportPath := input.Path
	if exportPath == "" {
		exportPath, err = defaultExportPath(md.Day, input.HTML)
		if err != nil {
			return nil, err
		}
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	// Write to temp file first, then atomic rename to preserve any existing
	// file on failure.
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(body); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlinked destination.
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}
	if err := os.Rename(tempPath, exportPath); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       exportPath,
		Bytes:      len(body),
		ExportedAt: now.Unix(),
	}, nil
}

// renderHTMLPage converts the markdown report to HTML and wraps it in the
// standalone page template.
func renderHTMLPage(md *MarkdownOutput) ([]byte, error) {
	var converted bytes.Buffer
	if err := goldmark.Convert([]byte(md.Text), &converted); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("markdown conversion failed: %w", err))
	}

	var page bytes.Buffer
	data := struct {
		Title string
		Body  template.HTML
	}{
		Title: "Writing progress, " + md.Day,
		Body:  template.HTML(converted.String()),
	}
	if err := htmlTemplate.Execute(&page, data); err != nil {
		return nil, errors.NewInternal(err)
	}
	return page.Bytes(), nil
}

// defaultExportPath places the export under the state directory.
// Format: <state dir>/exports/report-<day>.md (or .html).
func defaultExportPath(day string, html bool) (string, error) {
	base := os.Getenv("TEXPULSE_HOME")
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", errors.NewInternal(fmt.Errorf("failed to get home directory: %w", err))
		}
		base = filepath.Join(homeDir, ".texpulse")
	}

	ext := "md"
	if html {
		ext = "html"
	}
	return filepath.Join(base, "exports", fmt.Sprintf("report-%s.%s", day, ext)), nil
}

package report

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/errors"
	"github.com/hpungsan/texpulse/internal/snapshot"
)

// SummaryInput contains parameters for the Summary operation.
type SummaryInput struct {
	Now time.Time // zero means time.Now()
}

// SummaryOutput contains the result of the Summary operation.
type SummaryOutput struct {
	Day         string `json:"day"`
	HasBaseline bool   `json:"has_baseline"`
	Chapters    int    `json:"chapters"`
	Sections    int    `json:"sections"`
	Subsections int    `json:"subsections"`
	TotalWords  int    `json:"total_words"`
	MaxWords    int    `json:"max_words"`
	LargestUnit string `json:"largest_unit,omitempty"`
	Figures     int    `json:"figures"`
	Tables      int    `json:"tables"`
	Pages       int    `json:"pages"`
	Warnings    int    `json:"warnings"`
}

// Summary condenses the project state into counts: outline units per level,
// word totals, float counts, build warnings, typeset pages, and whether
// today's baseline exists. The PDF is the one optional artifact; when it is
// absent the page count is zero.
func Summary(database *sql.DB, cfg *config.Config, input SummaryInput) (*SummaryOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	day := snapshot.Day(now)

	tree, idx, err := buildTree(cfg)
	if err != nil {
		return nil, err
	}

	out := &SummaryOutput{
		Day:        day,
		TotalWords: idx.TotalWords(),
		MaxWords:   idx.MaxWords,
	}

	for _, n := range tree.Nodes() {
		switch n.Level {
		case 0:
			out.Chapters++
		case 1:
			out.Sections++
		default:
			out.Subsections++
		}
		if n.Words == idx.MaxWords && idx.MaxWords > 0 && out.LargestUnit == "" {
			out.LargestUnit = n.Caption
		}
	}

	figures, err := Figures(cfg)
	if err != nil {
		return nil, err
	}
	out.Figures = figures.Total

	tables, err := Tables(cfg)
	if err != nil {
		return nil, err
	}
	out.Tables = tables.Total

	warnings, err := Warnings(cfg)
	if err != nil {
		return nil, err
	}
	out.Warnings = warnings.Total

	art := cfg.Artifacts()
	out.Pages, err = pdfPageCount(art.PDF)
	if err != nil {
		return nil, err
	}

	if database != nil {
		out.HasBaseline, err = snapshot.Exists(database, day)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// pdfPageCount reads the page count of the compiled PDF. A missing file
// yields zero pages; an unreadable one is an error.
func pdfPageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.NewFileMissing(path, err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return 0, errors.NewInternal(fmt.Errorf("pdfcpu read %s: %w", path, err))
	}
	return ctx.PageCount, nil
}

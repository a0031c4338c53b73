package report

import (
	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/latex"
)

// WarningsOutput contains the result of the Warnings operation.
type WarningsOutput struct {
	Items []latex.Warning `json:"items"`
	Total int             `json:"total"`
}

// Warnings digests the compiler and bibliography logs: main-log lines
// mentioning warnings or errors first, then the BibTeX WARN entries.
func Warnings(cfg *config.Config) (*WarningsOutput, error) {
	art := cfg.Artifacts()

	main, err := latex.ParseMainLogWarnings(art.MainLog)
	if err != nil {
		return nil, err
	}
	bib, err := latex.ParseBibLogWarnings(art.BibLog)
	if err != nil {
		return nil, err
	}

	items := make([]latex.Warning, 0, len(main)+len(bib))
	items = append(items, main...)
	items = append(items, bib...)
	return &WarningsOutput{Items: items, Total: len(items)}, nil
}

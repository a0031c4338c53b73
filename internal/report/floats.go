package report

import (
	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/latex"
)

// FloatsOutput contains the result of the Figures and Tables operations.
type FloatsOutput struct {
	Items []latex.FloatRecord `json:"items"`
	Total int                 `json:"total"`
}

// Figures lists the figures of the list-of-figures artifact in document order.
func Figures(cfg *config.Config) (*FloatsOutput, error) {
	art := cfg.Artifacts()
	return floats(art.LOF, latex.FloatFigure)
}

// Tables lists the tables of the list-of-tables artifact in document order.
func Tables(cfg *config.Config) (*FloatsOutput, error) {
	art := cfg.Artifacts()
	return floats(art.LOT, latex.FloatTable)
}

func floats(path string, kind latex.FloatKind) (*FloatsOutput, error) {
	items, err := latex.ParseFloats(path, kind)
	if err != nil {
		return nil, err
	}
	return &FloatsOutput{Items: items, Total: len(items)}, nil
}

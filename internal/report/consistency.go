package report

import (
	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/xref"
)

// KeysOutput contains the result of the consistency operations: a sorted
// list of offending keys.
type KeysOutput struct {
	Keys  []string `json:"keys"`
	Total int      `json:"total"`
}

func keysOutput(s xref.Set) *KeysOutput {
	keys := s.Sorted()
	return &KeysOutput{Keys: keys, Total: len(keys)}
}

// UnusedFigures reports figure files on disk that no chapter source embeds.
func UnusedFigures(cfg *config.Config) (*KeysOutput, error) {
	avail, err := availFigureKeys(cfg)
	if err != nil {
		return nil, err
	}
	used, err := usedFigureKeys(cfg)
	if err != nil {
		return nil, err
	}
	return keysOutput(xref.UnusedFigures(xref.NewSet(avail...), xref.NewSet(used...))), nil
}

// UnusedReferences reports bibliography keys that are never cited.
func UnusedReferences(cfg *config.Config) (*KeysOutput, error) {
	declared, cited, err := referenceKeys(cfg)
	if err != nil {
		return nil, err
	}
	return keysOutput(xref.UnusedReferences(xref.NewSet(declared...), xref.NewSet(cited...))), nil
}

// UndefinedReferences reports cited keys that the bibliography never declares.
func UndefinedReferences(cfg *config.Config) (*KeysOutput, error) {
	declared, cited, err := referenceKeys(cfg)
	if err != nil {
		return nil, err
	}
	return keysOutput(xref.UndefinedReferences(xref.NewSet(declared...), xref.NewSet(cited...))), nil
}

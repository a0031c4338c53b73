package report

import (
	"database/sql"
	"time"

	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/outline"
	"github.com/hpungsan/texpulse/internal/snapshot"
)

// OutlineInput contains parameters for the Outline operation.
type OutlineInput struct {
	Now time.Time // zero means time.Now()
}

// OutlineEntry is one outline unit in document order, with word statistics
// and, when a baseline exists for the day, the baseline's numbers.
type OutlineEntry struct {
	Level        int    `json:"level"`
	Number       string `json:"number"`
	Caption      string `json:"caption"`
	Page         int    `json:"page"`
	Words        int    `json:"words"`
	Percent      int    `json:"percent"`
	PriorWords   int    `json:"prior_words"`
	PriorPercent int    `json:"prior_percent"`
	NewWords     int    `json:"new_words"`
}

// OutlineOutput contains the result of the Outline operation. The prior
// and new-word fields of the entries are meaningful only when HasBaseline
// is true.
type OutlineOutput struct {
	Day           string         `json:"day"`
	HasBaseline   bool           `json:"has_baseline"`
	Entries       []OutlineEntry `json:"entries"`
	TotalWords    int            `json:"total_words"`
	MaxWords      int            `json:"max_words"`
	MissingCounts []string       `json:"missing_counts,omitempty"`
}

// Outline builds the annotated table of contents. When a snapshot exists
// for the current day it becomes the baseline and every entry additionally
// reports its progress since that baseline. A nil database skips the
// baseline lookup entirely.
func Outline(database *sql.DB, cfg *config.Config, input OutlineInput) (*OutlineOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	day := snapshot.Day(now)

	tree, idx, err := buildTree(cfg)
	if err != nil {
		return nil, err
	}

	out := &OutlineOutput{
		Day:           day,
		Entries:       make([]OutlineEntry, 0, tree.Len()),
		TotalWords:    idx.TotalWords(),
		MaxWords:      idx.MaxWords,
		MissingCounts: tree.Missing(),
	}

	var baseline *outline.Tree
	if database != nil {
		ok, err := snapshot.Exists(database, day)
		if err != nil {
			return nil, err
		}
		if ok {
			payload, err := snapshot.Load(database, day)
			if err != nil {
				return nil, err
			}
			baseline, err = outline.FromNodes(payload.Outline)
			if err != nil {
				return nil, err
			}
		}
	}

	if baseline == nil {
		for _, n := range tree.Nodes() {
			out.Entries = append(out.Entries, OutlineEntry{
				Level:   n.Level,
				Number:  n.Number,
				Caption: n.Caption,
				Page:    n.Page,
				Words:   n.Words,
				Percent: n.Percent,
			})
		}
		return out, nil
	}

	diffs, err := outline.Diff(tree, baseline)
	if err != nil {
		return nil, err
	}
	out.HasBaseline = true
	for _, d := range diffs {
		out.Entries = append(out.Entries, OutlineEntry{
			Level:        d.Level,
			Number:       d.Number,
			Caption:      d.Caption,
			Page:         d.Page,
			Words:        d.Words,
			Percent:      d.Percent,
			PriorWords:   d.PriorWords,
			PriorPercent: d.PriorPercent,
			NewWords:     d.NewWords(),
		})
	}
	return out, nil
}

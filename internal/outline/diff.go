package outline

import "github.com/hpungsan/texpulse/internal/errors"

// DiffNode pairs a current node with its counters from the day's baseline.
type DiffNode struct {
	Node
	PriorWords   int `json:"prior_words"`
	PriorPercent int `json:"prior_percent"`
}

// NewWords returns the words added since the baseline. Negative when text
// was removed.
func (d DiffNode) NewWords() int {
	return d.Words - d.PriorWords
}

// Diff walks the current tree in document order and joins each unit with
// the same-numbered unit of the baseline. A unit absent from the baseline
// is BASELINE_DRIFT: restructuring during the day is surfaced, not papered
// over.
func Diff(current, baseline *Tree) ([]DiffNode, error) {
	out := make([]DiffNode, 0, current.Len())
	for _, node := range current.Nodes() {
		prior, ok := baseline.Lookup(node.Number)
		if !ok {
			return nil, errors.NewBaselineDrift(node.Number)
		}
		out = append(out, DiffNode{
			Node:         node,
			PriorWords:   prior.Words,
			PriorPercent: prior.Percent,
		})
	}
	return out, nil
}

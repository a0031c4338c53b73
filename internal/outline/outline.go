// Package outline assembles the document tree from table-of-contents
// records and diffs it against a day's baseline.
//
// The tree is arena-backed: nodes live in a flat slice indexed by integer
// id, with a parent id and an ordered child-id list per node, plus a
// number->id index. Hierarchy is derived once from the dotted numbers when
// the tree is built; traversal never re-derives it from string prefixes.
package outline

import (
	"fmt"
	"strings"

	"github.com/hpungsan/texpulse/internal/errors"
	"github.com/hpungsan/texpulse/internal/latex"
	"github.com/hpungsan/texpulse/internal/wordcount"
)

// barScale expresses the largest unit's word count in progress ticks: the
// unit holding MaxWords renders a full bar.
const barScale = 50

// Node is one outline unit with its derived statistics.
type Node struct {
	Level   int    `json:"level"`
	Number  string `json:"number"`
	Caption string `json:"caption"`
	Page    int    `json:"page"`
	Words   int    `json:"words"`
	Percent int    `json:"percent"`
}

// Tree is the arena-backed outline.
type Tree struct {
	nodes    []Node
	parent   []int
	children [][]int
	roots    []int
	byNumber map[string]int
	order    []int    // node ids in document traversal order
	missing  []string // captions with no word-count entry, record order
}

// Depth returns the nesting depth of a dotted number: "2" is 0, "2.1" is 1.
func Depth(number string) int {
	return strings.Count(number, ".")
}

// parentNumber strips the last dotted segment: "1.2.3" -> "1.2".
// Empty for an undotted number.
func parentNumber(number string) string {
	i := strings.LastIndex(number, ".")
	if i < 0 {
		return ""
	}
	return number[:i]
}

// Build assembles the tree from toc records, resolving word counts by
// caption. Every record becomes exactly one node: a duplicate number, a
// depth-0 record that is not a chapter, or a non-root without a parent
// entry is a structural inconsistency and fails the build rather than
// dropping the record. Captions absent from the index count zero words and
// are reported by Missing.
func Build(records []latex.OutlineRecord, idx *wordcount.Index) (*Tree, error) {
	t := newTree(len(records))

	for _, rec := range records {
		if _, dup := t.byNumber[rec.Number]; dup {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("duplicate outline number %s", rec.Number))
		}

		node := Node{
			Level:   Depth(rec.Number),
			Number:  rec.Number,
			Caption: rec.Caption,
			Page:    rec.Page,
		}
		if node.Level == 0 && rec.Kind != latex.KindChapter {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("top-level unit %s is a %s, expected a chapter", rec.Number, rec.Kind))
		}
		if idx != nil {
			if entry, ok := idx.Lookup(rec.Caption); ok {
				node.Words = entry.Words
				if idx.MaxWords > 0 {
					node.Percent = node.Words * barScale / idx.MaxWords
				}
			} else {
				t.missing = append(t.missing, rec.Caption)
			}
		}

		t.byNumber[rec.Number] = len(t.nodes)
		t.nodes = append(t.nodes, node)
		t.parent = append(t.parent, -1)
	}

	if err := t.link(); err != nil {
		return nil, err
	}
	return t, nil
}

// FromNodes rebuilds a tree from a persisted node list, linking by the
// dotted numbers. Word counts and percentages are taken as stored. Used to
// revive snapshot baselines.
func FromNodes(nodes []Node) (*Tree, error) {
	t := newTree(len(nodes))

	for _, n := range nodes {
		if _, dup := t.byNumber[n.Number]; dup {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("duplicate outline number %s", n.Number))
		}
		n.Level = Depth(n.Number)
		t.byNumber[n.Number] = len(t.nodes)
		t.nodes = append(t.nodes, n)
		t.parent = append(t.parent, -1)
	}

	if err := t.link(); err != nil {
		return nil, err
	}
	return t, nil
}

func newTree(capacity int) *Tree {
	return &Tree{
		nodes:    make([]Node, 0, capacity),
		parent:   make([]int, 0, capacity),
		children: make([][]int, capacity),
		byNumber: make(map[string]int, capacity),
	}
}

// link resolves parents and children and precomputes the traversal order.
// Sibling order and root order follow insertion order, which is the
// document's reading order. Input order does not have to be hierarchical:
// a child listed before its parent still links up.
func (t *Tree) link() error {
	for id := range t.nodes {
		if t.nodes[id].Level == 0 {
			t.roots = append(t.roots, id)
			continue
		}
		pid, ok := t.byNumber[parentNumber(t.nodes[id].Number)]
		if !ok {
			return errors.NewInvalidRequest(fmt.Sprintf("outline unit %s has no parent entry", t.nodes[id].Number))
		}
		t.parent[id] = pid
		t.children[pid] = append(t.children[pid], id)
	}

	t.order = make([]int, 0, len(t.nodes))
	var walk func(id int)
	walk = func(id int) {
		t.order = append(t.order, id)
		for _, child := range t.children[id] {
			walk(child)
		}
	}
	for _, root := range t.roots {
		walk(root)
	}
	return nil
}

// Len returns the node count.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Nodes returns the nodes in document traversal order: roots in reading
// order, each unit's children before the next sibling's subtree.
func (t *Tree) Nodes() []Node {
	out := make([]Node, len(t.order))
	for i, id := range t.order {
		out[i] = t.nodes[id]
	}
	return out
}

// Lookup returns the node with the given dotted number.
func (t *Tree) Lookup(number string) (Node, bool) {
	id, ok := t.byNumber[number]
	if !ok {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Parent returns the parent of a unit. ok is false for roots and unknown
// numbers.
func (t *Tree) Parent(number string) (Node, bool) {
	id, ok := t.byNumber[number]
	if !ok || t.parent[id] < 0 {
		return Node{}, false
	}
	return t.nodes[t.parent[id]], true
}

// Children returns the direct children of a unit, in document order.
func (t *Tree) Children(number string) []Node {
	id, ok := t.byNumber[number]
	if !ok {
		return nil
	}
	out := make([]Node, len(t.children[id]))
	for i, child := range t.children[id] {
		out[i] = t.nodes[child]
	}
	return out
}

// Missing returns the captions that had no word-count entry, in record
// order.
func (t *Tree) Missing() []string {
	return t.missing
}

// Package latex extracts structural and bibliographic metadata from the
// compiled artifacts of a LaTeX project: .toc/.lof/.lot listings, .aux
// citations, .bib declarations, \includegraphics embeds in chapter sources,
// and warning lines from the BibTeX and LaTeX build logs.
//
// Extraction is line-oriented: anchored patterns are applied to each line
// and lines matching no pattern are silently dropped. The grammars target
// the standard \contentsline format and the layout conventions of the
// projects this tool is pointed at; validating them is out of scope.
package latex

// OutlineKind classifies a sectioning unit found in the table of contents.
type OutlineKind int

const (
	KindChapter OutlineKind = iota
	KindSection
	KindSubsection
)

func (k OutlineKind) String() string {
	switch k {
	case KindChapter:
		return "chapter"
	case KindSection:
		return "section"
	case KindSubsection:
		return "subsection"
	default:
		return "unknown"
	}
}

// FloatKind selects which float listing a file holds.
type FloatKind int

const (
	FloatFigure FloatKind = iota
	FloatTable
)

// OutlineRecord is one sectioning entry from the .toc file. Record order is
// the document's linear reading order.
type OutlineRecord struct {
	Kind    OutlineKind `json:"kind"`
	Number  string      `json:"number"`
	Caption string      `json:"caption"`
	Page    int         `json:"page"`
}

// FloatRecord is one entry from the list of figures or list of tables.
type FloatRecord struct {
	Number  string `json:"number"`
	Caption string `json:"caption"`
	Page    int    `json:"page"`
}

// Warning is one digested warning line from a build log.
type Warning struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

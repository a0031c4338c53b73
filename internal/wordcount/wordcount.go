// Package wordcount computes per-unit word counts from LaTeX chapter
// sources. Each source file is keyed by its first heading caption, which is
// how outline entries find their counts. Captions are assumed unique across
// the chapters directory; on a collision the file scanned later wins.
package wordcount

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/texpulse/internal/errors"
	"github.com/hpungsan/texpulse/internal/latex"
)

// excludedMarkers flip the exclusion state when one appears anywhere in a
// line. A marker left open at end of file keeps the remainder excluded;
// that is the intended toggle semantics, not a special case.
var excludedMarkers = []string{"$$", "{align", "{equation}", "{figure}", "{table}"}

// Entry records the word count of one indexed source file.
type Entry struct {
	Source string `json:"source"`
	Words  int    `json:"words"`
}

// Index maps first heading captions to word-count entries. MaxWords is the
// largest count among the indexed files and anchors progress normalization.
type Index struct {
	entries  map[string]Entry
	MaxWords int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]Entry)}
}

// Add records an entry under a caption, replacing any previous holder.
// MaxWords never decreases.
func (ix *Index) Add(caption string, e Entry) {
	if e.Words > ix.MaxWords {
		ix.MaxWords = e.Words
	}
	ix.entries[caption] = e
}

// CountWords counts the whitespace-separated words of one source file,
// excluding display math and float environments via the marker toggle.
// The state flips before the count test, so an opening marker line is not
// counted while a closing marker line is.
func CountWords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.NewFileMissing(path, err)
	}
	defer f.Close()

	words, excluded := 0, false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		for _, marker := range excludedMarkers {
			if strings.Contains(line, marker) {
				excluded = !excluded
				break
			}
		}
		if !excluded {
			words += len(strings.Fields(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, errors.NewFileMissing(path, err)
	}
	return words, nil
}

// Scan indexes every regular file of dir by its first heading caption.
// Files without a heading line are skipped entirely: they are neither
// indexed nor considered for MaxWords. os.ReadDir returns sorted names,
// which makes duplicate-caption resolution deterministic.
func Scan(dir string) (*Index, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewFileMissing(dir, err)
	}

	idx := NewIndex()
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		path := filepath.Join(dir, de.Name())
		caption, ok, err := latex.FirstHeading(path)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		words, err := CountWords(path)
		if err != nil {
			return nil, err
		}
		idx.Add(caption, Entry{Source: de.Name(), Words: words})
	}
	return idx, nil
}

// Lookup returns the entry recorded for a heading caption.
func (ix *Index) Lookup(caption string) (Entry, bool) {
	e, ok := ix.entries[caption]
	return e, ok
}

// Len returns the number of indexed source files.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// TotalWords sums the counts of all indexed source files.
func (ix *Index) TotalWords() int {
	total := 0
	for _, e := range ix.entries {
		total += e.Words
	}
	return total
}

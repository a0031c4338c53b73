// Package report implements the user-facing operations: the annotated
// outline, the float lists, the consistency checks, the warning digests,
// the daily backup, and the exportable progress report. Each operation
// recomputes its inputs from the project artifacts on every call; the only
// persistent state is the once-per-day snapshot.
package report

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/errors"
	"github.com/hpungsan/texpulse/internal/latex"
	"github.com/hpungsan/texpulse/internal/outline"
	"github.com/hpungsan/texpulse/internal/wordcount"
)

// buildTree parses the table of contents and the chapter sources and
// assembles the outline tree with word statistics.
func buildTree(cfg *config.Config) (*outline.Tree, *wordcount.Index, error) {
	art := cfg.Artifacts()

	records, err := latex.ParseOutline(art.TOC)
	if err != nil {
		return nil, nil, err
	}
	idx, err := wordcount.Scan(art.ChaptersDir)
	if err != nil {
		return nil, nil, err
	}
	tree, err := outline.Build(records, idx)
	if err != nil {
		return nil, nil, err
	}
	return tree, idx, nil
}

// chapterSources lists the regular files of the chapters directory in
// sorted name order, as absolute-ish paths ready to open.
func chapterSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewFileMissing(dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// usedFigureKeys collects every \includegraphics argument across the
// chapter sources, with the configured path prefix trimmed so the keys
// compare against bare figure filenames.
func usedFigureKeys(cfg *config.Config) ([]string, error) {
	art := cfg.Artifacts()
	sources, err := chapterSources(art.ChaptersDir)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, src := range sources {
		args, err := latex.ParseGraphics(src)
		if err != nil {
			return nil, err
		}
		for _, arg := range args {
			keys = append(keys, strings.TrimPrefix(arg, cfg.FigurePrefix))
		}
	}
	return keys, nil
}

// availFigureKeys lists the figure files on disk, keyed by filename
// truncated at the first dot.
func availFigureKeys(cfg *config.Config) ([]string, error) {
	art := cfg.Artifacts()
	entries, err := os.ReadDir(art.FiguresDir)
	if err != nil {
		return nil, errors.NewFileMissing(art.FiguresDir, err)
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if before, _, found := strings.Cut(name, "."); found {
			name = before
		}
		keys = append(keys, name)
	}
	return keys, nil
}

// referenceKeys parses the declared keys of the bibliography and the cited
// keys of the aux file.
func referenceKeys(cfg *config.Config) (declared, cited []string, err error) {
	art := cfg.Artifacts()

	declared, err = latex.ParseBibKeys(art.Bib)
	if err != nil {
		return nil, nil, err
	}
	cited, err = latex.ParseCitations(art.Aux)
	if err != nil {
		return nil, nil, err
	}
	return declared, cited, nil
}

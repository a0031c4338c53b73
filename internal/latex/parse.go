package latex

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/hpungsan/texpulse/internal/errors"
)

// Artifact grammars. Outline and float patterns capture
// {number, caption, page}; the trailing page group binds to the last
// {digits} brace pair on the line, so trailing material such as the
// \protected@file@percent marker is tolerated.
var (
	chapterPattern    = regexp.MustCompile(`^\\contentsline \{chapter\}\{\\numberline \{(\d+)\}(.*)\}\{(\d+)\}`)
	sectionPattern    = regexp.MustCompile(`^\\contentsline \{section\}\{\\numberline \{(\d+\.\d+)\}(.*)\}\{(\d+)\}`)
	subsectionPattern = regexp.MustCompile(`^\\contentsline \{subsection\}\{\\numberline \{(\d+\.\d+\.\d+)\}(.*)\}\{(\d+)\}`)

	figurePattern = regexp.MustCompile(`^\\contentsline \{figure\}\{\\numberline \{(\d+\.\d+)\}\{\\ignorespaces (.*)\}\}\{(\d+)\}`)
	tablePattern  = regexp.MustCompile(`^\\contentsline \{table\}\{\\numberline \{(\d+\.\d+)\}\{\\ignorespaces (.*)\}\}\{(\d+)\}`)

	referencePattern = regexp.MustCompile(`^@.*\{(.*),`)
	citationPattern  = regexp.MustCompile(`@cite\{(.*)\}`)

	headingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\\chapter\{(.*)\}`),
		regexp.MustCompile(`^\\section\{(.*)\}`),
		regexp.MustCompile(`^\\subsection\{(.*)\}`),
	}

	graphicsPattern = regexp.MustCompile(`\\includegraphics.*\{(.*)\}`)

	bibLogWarnPattern = regexp.MustCompile(`WARN - (.*) -`)

	// Checked in order; the first match wins, so a line is digested once.
	mainLogPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(.*)Warning(.*)`),
		regexp.MustCompile(`^(.*)warning(.*)`),
		regexp.MustCompile(`^(.*)Error(.*)`),
	}
)

// scanLines opens path and calls fn for every line. Open and read failures
// surface as FILE_MISSING with the underlying cause preserved.
func scanLines(path string, fn func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewFileMissing(path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Build logs carry very long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return errors.NewFileMissing(path, err)
	}
	return nil
}

// pageNumber converts a digits-only capture group.
func pageNumber(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ParseOutline extracts the chapter, section, and subsection entries of a
// .toc file, in reading order.
func ParseOutline(path string) ([]OutlineRecord, error) {
	rules := []struct {
		kind OutlineKind
		re   *regexp.Regexp
	}{
		{KindChapter, chapterPattern},
		{KindSection, sectionPattern},
		{KindSubsection, subsectionPattern},
	}

	var records []OutlineRecord
	err := scanLines(path, func(line string) {
		for _, r := range rules {
			m := r.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			records = append(records, OutlineRecord{
				Kind:    r.kind,
				Number:  m[1],
				Caption: m[2],
				Page:    pageNumber(m[3]),
			})
			return
		}
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ParseFloats extracts the entries of a .lof or .lot file.
func ParseFloats(path string, kind FloatKind) ([]FloatRecord, error) {
	re := figurePattern
	if kind == FloatTable {
		re = tablePattern
	}

	var records []FloatRecord
	err := scanLines(path, func(line string) {
		if m := re.FindStringSubmatch(line); m != nil {
			records = append(records, FloatRecord{
				Number:  m[1],
				Caption: m[2],
				Page:    pageNumber(m[3]),
			})
		}
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ParseBibKeys extracts the declared reference keys of a .bib file, in file
// order, duplicates preserved.
func ParseBibKeys(path string) ([]string, error) {
	var keys []string
	err := scanLines(path, func(line string) {
		if m := referencePattern.FindStringSubmatch(line); m != nil {
			keys = append(keys, m[1])
		}
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// ParseCitations extracts the cited reference keys of a .aux file.
func ParseCitations(path string) ([]string, error) {
	var keys []string
	err := scanLines(path, func(line string) {
		if m := citationPattern.FindStringSubmatch(line); m != nil {
			keys = append(keys, m[1])
		}
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// ParseGraphics extracts the \includegraphics arguments of one source file.
func ParseGraphics(path string) ([]string, error) {
	var args []string
	err := scanLines(path, func(line string) {
		if m := graphicsPattern.FindStringSubmatch(line); m != nil {
			args = append(args, m[1])
		}
	})
	if err != nil {
		return nil, err
	}
	return args, nil
}

// ParseBibLogWarnings extracts the WARN entries of a BibTeX/biber log.
func ParseBibLogWarnings(path string) ([]Warning, error) {
	var warnings []Warning
	err := scanLines(path, func(line string) {
		if m := bibLogWarnPattern.FindStringSubmatch(line); m != nil {
			warnings = append(warnings, Warning{Source: "BibTex", Message: m[1]})
		}
	})
	if err != nil {
		return nil, err
	}
	return warnings, nil
}

// ParseMainLogWarnings extracts Warning/warning/Error lines from the main
// LaTeX log. Lines whose source segment contains "Package:" are package
// banners, not warnings, and are excluded. The source is reduced to the
// package or engine name; a leading ": " separator is removed from the
// message.
func ParseMainLogWarnings(path string) ([]Warning, error) {
	var warnings []Warning
	err := scanLines(path, func(line string) {
		for _, re := range mainLogPatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			source, message := m[1], m[2]
			if strings.Contains(source, "Package:") {
				return
			}
			source = strings.TrimSpace(strings.ReplaceAll(source, "Package ", ""))
			message = strings.TrimPrefix(message, ": ")
			warnings = append(warnings, Warning{Source: source, Message: message})
			return
		}
	})
	if err != nil {
		return nil, err
	}
	return warnings, nil
}

// FirstHeading returns the first chapter, section, or subsection caption of
// a source file. ok is false when the file contains no heading line.
func FirstHeading(path string) (caption string, ok bool, err error) {
	err = scanLines(path, func(line string) {
		if ok {
			return
		}
		for _, re := range headingPatterns {
			if m := re.FindStringSubmatch(line); m != nil {
				caption, ok = m[1], true
				return
			}
		}
	})
	if err != nil {
		return "", false, err
	}
	return caption, ok, nil
}

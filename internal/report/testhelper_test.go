package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hpungsan/texpulse/internal/config"
)

// writeProjectFile writes content to projectDir/rel, creating parent dirs.
func writeProjectFile(t *testing.T, projectDir, rel, content string) {
	t.Helper()
	path := filepath.Join(projectDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeProject builds a small compiled LaTeX project and returns a config
// pointing at it. The numbers below are referenced throughout the package
// tests:
//
//	Introduction  19 words  (chapter 1, page 1)
//	Motivation    21 words  (section 1.1, page 2)
//	max 21, total 40
//	figures on disk: architecture, pipeline; embedded: architecture
//	bib keys: knuth84, lamport94; cited: knuth84, doesnotexist
//	warnings: LaTeX + hyperref from the main log, one BibTex entry
func writeProject(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	writeProjectFile(t, dir, "auxil/main.toc",
		`\contentsline {chapter}{\numberline {1}Introduction}{1}{chapter.1}%
\contentsline {section}{\numberline {1.1}Motivation}{2}{section.1.1}%
`)

	writeProjectFile(t, dir, "auxil/main.lof",
		`\contentsline {figure}{\numberline {1.1}{\ignorespaces System architecture}}{3}{figure.1.1}%
`)

	writeProjectFile(t, dir, "auxil/main.lot",
		`\contentsline {table}{\numberline {1.1}{\ignorespaces Symbol glossary}}{4}{table.1.1}%
`)

	writeProjectFile(t, dir, "chapters/100-introduction.tex",
		`\chapter{Introduction}
This chapter introduces the system and its aims in plain prose.
\begin{figure}
\includegraphics[width=\textwidth]{figures/architecture}
\caption{System architecture}
\end{figure}
Closing remarks follow the figure block.
`)

	writeProjectFile(t, dir, "chapters/110-motivation.tex",
		`\section{Motivation}
We are motivated by the daily need to see progress at a glance.
As cited in \cite{knuth84}, typesetting rewards patience.
`)

	writeProjectFile(t, dir, "figures/architecture.png", "png")
	writeProjectFile(t, dir, "figures/pipeline.png", "png")

	writeProjectFile(t, dir, "bibliography/refs.bib",
		`@book{knuth84,
  author = {Donald E. Knuth},
  title = {The TeXbook}
}

@article{lamport94,
  author = {Leslie Lamport},
  title = {A Document Preparation System}
}
`)

	writeProjectFile(t, dir, "auxil/main.aux",
		`\relax
\abx@aux@cite{knuth84}
\abx@aux@cite{doesnotexist}
`)

	writeProjectFile(t, dir, "auxil/main.blg",
		`[0] Config.pm:312> INFO - This is Biber 2.19
[1] Utils.pm:410> WARN - I didn't find a database entry for 'missing2019' -
`)

	writeProjectFile(t, dir, "auxil/main.log",
		`This is pdfTeX, Version 3.141592653
Package: hyperref 2021/02/04 v7.00g Hypertext links for LaTeX
LaTeX Warning: Label(s) may have changed. Rerun to get cross-references right.
Package hyperref Warning: Token not allowed in a PDF string.
`)

	cfg := config.DefaultConfig()
	cfg.ProjectDir = dir
	return cfg
}

// appendToChapter appends a line to a chapter source file.
func appendToChapter(t *testing.T, cfg *config.Config, name, line string) {
	t.Helper()
	path := filepath.Join(cfg.ProjectDir, "chapters", name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		t.Fatalf("append %s: %v", path, err)
	}
}

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildMarkdown(t *testing.T) {
	cfg := writeProject(t)

	out, err := BuildMarkdown(nil, cfg, MarkdownInput{Now: testNow})
	if err != nil {
		t.Fatalf("BuildMarkdown() error = %v", err)
	}
	if out.Day != "2024-03-07" {
		t.Errorf("Day = %q, want 2024-03-07", out.Day)
	}

	for _, want := range []string{
		"# Writing progress, 2024-03-07",
		"40 words across 1 chapters.",
		"- **1 Introduction** (p. 1): 19 words",
		"  - **1.1 Motivation** (p. 2): 21 words",
		"## Unused figures (1)",
		"- pipeline",
		"## Unused references (1)",
		"- lamport94",
		"## Undefined references (1)",
		"- doesnotexist",
		"## Build warnings (3)",
		"- **BibTex**: I didn't find a database entry for 'missing2019'",
	} {
		if !strings.Contains(out.Text, want) {
			t.Errorf("markdown missing %q\n%s", want, out.Text)
		}
	}

	// No baseline, so no delta annotations.
	if strings.Contains(out.Text, "today") {
		t.Errorf("markdown has delta annotations without a baseline\n%s", out.Text)
	}
}

func TestBuildMarkdown_WithBaseline(t *testing.T) {
	cfg := writeProject(t)
	db := testDB(t)

	if _, err := Backup(db, cfg, BackupInput{Now: testNow}); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	appendToChapter(t, cfg, "110-motivation.tex",
		"Ten more words appended here now making progress visible today.")

	out, err := BuildMarkdown(db, cfg, MarkdownInput{Now: testNow})
	if err != nil {
		t.Fatalf("BuildMarkdown() error = %v", err)
	}
	if !strings.Contains(out.Text, "31 words, +10 today") {
		t.Errorf("markdown missing the motivation delta\n%s", out.Text)
	}
	if !strings.Contains(out.Text, "19 words, +0 today") {
		t.Errorf("markdown missing the zero delta\n%s", out.Text)
	}
}

func TestExport_Markdown(t *testing.T) {
	cfg := writeProject(t)
	path := filepath.Join(t.TempDir(), "report.md")

	out, err := Export(nil, cfg, ExportInput{Path: path, Now: testNow})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if out.Path != path {
		t.Errorf("Path = %q, want %q", out.Path, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if out.Bytes != len(data) {
		t.Errorf("Bytes = %d, file has %d", out.Bytes, len(data))
	}
	if !strings.Contains(string(data), "# Writing progress, 2024-03-07") {
		t.Errorf("export content unexpected:\n%s", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestExport_HTML(t *testing.T) {
	cfg := writeProject(t)
	path := filepath.Join(t.TempDir(), "report.html")

	if _, err := Export(nil, cfg, ExportInput{Path: path, HTML: true, Now: testNow}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "<!doctype html>") {
		t.Error("export is not a standalone HTML page")
	}
	if !strings.Contains(content, "<h1") || !strings.Contains(content, "Writing progress") {
		t.Errorf("converted markdown missing from page:\n%s", content)
	}
	if !strings.Contains(content, "<title>Writing progress, 2024-03-07</title>") {
		t.Error("page title missing")
	}
}

func TestExport_DefaultPath(t *testing.T) {
	cfg := writeProject(t)
	home := t.TempDir()
	t.Setenv("TEXPULSE_HOME", home)

	out, err := Export(nil, cfg, ExportInput{Now: testNow})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := filepath.Join(home, "exports", "report-2024-03-07.md")
	if out.Path != want {
		t.Errorf("Path = %q, want %q", out.Path, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("default export not written: %v", err)
	}
}

func TestExport_OverwritesPrevious(t *testing.T) {
	cfg := writeProject(t)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := os.WriteFile(path, []byte("stale"), 0600); err != nil {
		t.Fatalf("seeding stale file: %v", err)
	}
	if _, err := Export(nil, cfg, ExportInput{Path: path, Now: testNow}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) == "stale" {
		t.Error("export did not replace the previous file")
	}
}

package report

import (
	"reflect"
	"testing"

	"github.com/hpungsan/texpulse/internal/errors"
)

func TestUnusedFigures(t *testing.T) {
	cfg := writeProject(t)

	out, err := UnusedFigures(cfg)
	if err != nil {
		t.Fatalf("UnusedFigures() error = %v", err)
	}
	if !reflect.DeepEqual(out.Keys, []string{"pipeline"}) {
		t.Errorf("Keys = %v, want [pipeline]", out.Keys)
	}
	if out.Total != 1 {
		t.Errorf("Total = %d, want 1", out.Total)
	}
}

func TestUnusedFigures_AllUsed(t *testing.T) {
	cfg := writeProject(t)
	appendToChapter(t, cfg, "110-motivation.tex",
		`\includegraphics{figures/pipeline}`)

	out, err := UnusedFigures(cfg)
	if err != nil {
		t.Fatalf("UnusedFigures() error = %v", err)
	}
	if out.Total != 0 {
		t.Errorf("Total = %d, want 0 (keys %v)", out.Total, out.Keys)
	}
}

func TestUnusedFigures_MissingDir(t *testing.T) {
	cfg := writeProject(t)
	cfg.FiguresDir = "/nonexistent/figures"

	_, err := UnusedFigures(cfg)
	if err == nil {
		t.Fatal("UnusedFigures() expected error for missing directory")
	}
	if !errors.Is(err, errors.ErrFileMissing) {
		t.Errorf("error code = %v, want FILE_MISSING", err)
	}
}

func TestUnusedReferences(t *testing.T) {
	cfg := writeProject(t)

	out, err := UnusedReferences(cfg)
	if err != nil {
		t.Fatalf("UnusedReferences() error = %v", err)
	}
	if !reflect.DeepEqual(out.Keys, []string{"lamport94"}) {
		t.Errorf("Keys = %v, want [lamport94]", out.Keys)
	}
}

func TestUndefinedReferences(t *testing.T) {
	cfg := writeProject(t)

	out, err := UndefinedReferences(cfg)
	if err != nil {
		t.Fatalf("UndefinedReferences() error = %v", err)
	}
	if !reflect.DeepEqual(out.Keys, []string{"doesnotexist"}) {
		t.Errorf("Keys = %v, want [doesnotexist]", out.Keys)
	}
}

func TestFigures(t *testing.T) {
	cfg := writeProject(t)

	out, err := Figures(cfg)
	if err != nil {
		t.Fatalf("Figures() error = %v", err)
	}
	if out.Total != 1 {
		t.Fatalf("Total = %d, want 1", out.Total)
	}
	item := out.Items[0]
	if item.Number != "1.1" || item.Caption != "System architecture" || item.Page != 3 {
		t.Errorf("item = %+v, want 1.1 System architecture p.3", item)
	}
}

func TestTables(t *testing.T) {
	cfg := writeProject(t)

	out, err := Tables(cfg)
	if err != nil {
		t.Fatalf("Tables() error = %v", err)
	}
	if out.Total != 1 {
		t.Fatalf("Total = %d, want 1", out.Total)
	}
	if out.Items[0].Caption != "Symbol glossary" {
		t.Errorf("caption = %q, want Symbol glossary", out.Items[0].Caption)
	}
}

func TestWarnings(t *testing.T) {
	cfg := writeProject(t)

	out, err := Warnings(cfg)
	if err != nil {
		t.Fatalf("Warnings() error = %v", err)
	}
	if out.Total != 3 {
		t.Fatalf("Total = %d, want 3 (items %+v)", out.Total, out.Items)
	}

	// Main log entries come first, then BibTex.
	if out.Items[0].Source != "LaTeX" {
		t.Errorf("items[0].Source = %q, want LaTeX", out.Items[0].Source)
	}
	if out.Items[1].Source != "hyperref" {
		t.Errorf("items[1].Source = %q, want hyperref", out.Items[1].Source)
	}
	if out.Items[2].Source != "BibTex" {
		t.Errorf("items[2].Source = %q, want BibTex", out.Items[2].Source)
	}
	if out.Items[0].Message != "Label(s) may have changed. Rerun to get cross-references right." {
		t.Errorf("items[0].Message = %q", out.Items[0].Message)
	}
}

package report

import (
	"testing"

	"github.com/hpungsan/texpulse/internal/errors"
)

func TestSummary(t *testing.T) {
	cfg := writeProject(t)

	out, err := Summary(nil, cfg, SummaryInput{Now: testNow})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if out.Chapters != 1 || out.Sections != 1 || out.Subsections != 0 {
		t.Errorf("units = %d/%d/%d, want 1/1/0", out.Chapters, out.Sections, out.Subsections)
	}
	if out.TotalWords != 40 || out.MaxWords != 21 {
		t.Errorf("words = %d total / %d max, want 40/21", out.TotalWords, out.MaxWords)
	}
	if out.LargestUnit != "Motivation" {
		t.Errorf("LargestUnit = %q, want Motivation", out.LargestUnit)
	}
	if out.Figures != 1 || out.Tables != 1 {
		t.Errorf("floats = %d figures / %d tables, want 1/1", out.Figures, out.Tables)
	}
	if out.Warnings != 3 {
		t.Errorf("Warnings = %d, want 3", out.Warnings)
	}
	// No compiled PDF in the fixture.
	if out.Pages != 0 {
		t.Errorf("Pages = %d, want 0", out.Pages)
	}
	if out.HasBaseline {
		t.Error("HasBaseline = true without a database")
	}
}

func TestSummary_WithBaseline(t *testing.T) {
	cfg := writeProject(t)
	db := testDB(t)

	if _, err := Backup(db, cfg, BackupInput{Now: testNow}); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	out, err := Summary(db, cfg, SummaryInput{Now: testNow})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if !out.HasBaseline {
		t.Error("HasBaseline = false after Backup")
	}
}

func TestSummary_MalformedPDF(t *testing.T) {
	cfg := writeProject(t)
	writeProjectFile(t, cfg.ProjectDir, "auxil/main.pdf", "this is not a pdf")

	_, err := Summary(nil, cfg, SummaryInput{Now: testNow})
	if err == nil {
		t.Fatal("Summary() expected error for malformed PDF")
	}
	if !errors.Is(err, errors.ErrInternal) {
		t.Errorf("error code = %v, want INTERNAL", err)
	}
}

package report

import (
	"database/sql"
	"testing"
	"time"

	"github.com/hpungsan/texpulse/internal/errors"
	"github.com/hpungsan/texpulse/internal/snapshot"
)

var testNow = time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)

func TestOutline_NoBaseline(t *testing.T) {
	cfg := writeProject(t)

	out, err := Outline(nil, cfg, OutlineInput{Now: testNow})
	if err != nil {
		t.Fatalf("Outline() error = %v", err)
	}

	if out.Day != "2024-03-07" {
		t.Errorf("Day = %q, want 2024-03-07", out.Day)
	}
	if out.HasBaseline {
		t.Error("HasBaseline = true without a database")
	}
	if len(out.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(out.Entries))
	}

	intro := out.Entries[0]
	if intro.Number != "1" || intro.Caption != "Introduction" || intro.Page != 1 {
		t.Errorf("entry 0 = %+v, want chapter 1 Introduction p.1", intro)
	}
	if intro.Level != 0 || intro.Words != 19 {
		t.Errorf("entry 0 level/words = %d/%d, want 0/19", intro.Level, intro.Words)
	}
	// 19 words against a max of 21: floor(19*50/21) = 45.
	if intro.Percent != 45 {
		t.Errorf("entry 0 percent = %d, want 45", intro.Percent)
	}

	motivation := out.Entries[1]
	if motivation.Number != "1.1" || motivation.Level != 1 {
		t.Errorf("entry 1 = %+v, want section 1.1", motivation)
	}
	if motivation.Words != 21 || motivation.Percent != 50 {
		t.Errorf("entry 1 words/percent = %d/%d, want 21/50", motivation.Words, motivation.Percent)
	}

	if out.TotalWords != 40 {
		t.Errorf("TotalWords = %d, want 40", out.TotalWords)
	}
	if out.MaxWords != 21 {
		t.Errorf("MaxWords = %d, want 21", out.MaxWords)
	}
	if len(out.MissingCounts) != 0 {
		t.Errorf("MissingCounts = %v, want none", out.MissingCounts)
	}
}

func TestOutline_WithBaseline(t *testing.T) {
	cfg := writeProject(t)
	db := testDB(t)

	backup, err := Backup(db, cfg, BackupInput{Now: testNow})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if !backup.Created {
		t.Fatal("Backup() did not create the baseline")
	}

	// Write ten more words into the motivation section.
	appendToChapter(t, cfg, "110-motivation.tex",
		"Ten more words appended here now making progress visible today.")

	out, err := Outline(db, cfg, OutlineInput{Now: testNow})
	if err != nil {
		t.Fatalf("Outline() error = %v", err)
	}
	if !out.HasBaseline {
		t.Fatal("HasBaseline = false after Backup")
	}

	motivation := out.Entries[1]
	if motivation.Words != 31 || motivation.PriorWords != 21 || motivation.NewWords != 10 {
		t.Errorf("motivation words/prior/new = %d/%d/%d, want 31/21/10",
			motivation.Words, motivation.PriorWords, motivation.NewWords)
	}
	if motivation.Percent != 50 {
		t.Errorf("motivation percent = %d, want 50", motivation.Percent)
	}
	// The baseline was taken when the maximum was 21, so its percent scale differs.
	if motivation.PriorPercent != 50 {
		t.Errorf("motivation prior percent = %d, want 50", motivation.PriorPercent)
	}

	intro := out.Entries[0]
	if intro.Words != 19 || intro.PriorWords != 19 || intro.NewWords != 0 {
		t.Errorf("intro words/prior/new = %d/%d/%d, want 19/19/0",
			intro.Words, intro.PriorWords, intro.NewWords)
	}
	// 19 of max 31 now: floor(19*50/31) = 30; the baseline scale had 45.
	if intro.Percent != 30 || intro.PriorPercent != 45 {
		t.Errorf("intro percent/prior = %d/%d, want 30/45", intro.Percent, intro.PriorPercent)
	}
}

func TestOutline_BaselineOtherDayIgnored(t *testing.T) {
	cfg := writeProject(t)
	db := testDB(t)

	if _, err := Backup(db, cfg, BackupInput{Now: testNow}); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	nextDay := testNow.Add(24 * time.Hour)
	out, err := Outline(db, cfg, OutlineInput{Now: nextDay})
	if err != nil {
		t.Fatalf("Outline() error = %v", err)
	}
	if out.HasBaseline {
		t.Error("HasBaseline = true for a day with no snapshot")
	}
	if out.Day != "2024-03-08" {
		t.Errorf("Day = %q, want 2024-03-08", out.Day)
	}
}

func TestOutline_MissingTOC(t *testing.T) {
	cfg := writeProject(t)
	cfg.TOCPath = "/nonexistent/main.toc"

	_, err := Outline(nil, cfg, OutlineInput{Now: testNow})
	if err == nil {
		t.Fatal("Outline() expected error for missing toc")
	}
	if !errors.Is(err, errors.ErrFileMissing) {
		t.Errorf("error code = %v, want FILE_MISSING", err)
	}
}

func TestOutline_MissingCaptionSurfaced(t *testing.T) {
	cfg := writeProject(t)
	writeProjectFile(t, cfg.ProjectDir, "auxil/main.toc",
		`\contentsline {chapter}{\numberline {1}Introduction}{1}{chapter.1}%
\contentsline {section}{\numberline {1.1}Motivation}{2}{section.1.1}%
\contentsline {chapter}{\numberline {2}Unwritten}{5}{chapter.2}%
`)

	out, err := Outline(nil, cfg, OutlineInput{Now: testNow})
	if err != nil {
		t.Fatalf("Outline() error = %v", err)
	}
	if len(out.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(out.Entries))
	}
	last := out.Entries[2]
	if last.Words != 0 || last.Percent != 0 {
		t.Errorf("unwritten chapter words/percent = %d/%d, want 0/0", last.Words, last.Percent)
	}
	if len(out.MissingCounts) != 1 || out.MissingCounts[0] != "Unwritten" {
		t.Errorf("MissingCounts = %v, want [Unwritten]", out.MissingCounts)
	}
}

// testDB builds an isolated snapshot database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := snapshot.Init(t.TempDir())
	if err != nil {
		t.Fatalf("snapshot.Init() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

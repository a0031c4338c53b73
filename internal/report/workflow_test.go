package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/texpulse/internal/snapshot"
)

// TestFullDayWorkflow exercises a writing day end to end:
// plain outline → first backup → writing → diffed outline →
// redundant backup → consistency checks → export.
func TestFullDayWorkflow(t *testing.T) {
	cfg := writeProject(t)
	database, err := snapshot.Init(t.TempDir())
	require.NoError(t, err)
	defer database.Close()

	morning := time.Date(2024, 3, 7, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 7, 21, 15, 0, 0, time.UTC)

	// 1. First look of the day: no baseline yet.
	out, err := Outline(database, cfg, OutlineInput{Now: morning})
	require.NoError(t, err)
	require.False(t, out.HasBaseline)
	require.Len(t, out.Entries, 2)
	require.Equal(t, 40, out.TotalWords)

	// 2. Take the day's baseline.
	backup, err := Backup(database, cfg, BackupInput{Now: morning})
	require.NoError(t, err)
	require.True(t, backup.Created)

	// 3. A day of writing happens.
	appendToChapter(t, cfg, "110-motivation.tex",
		"Ten more words appended here now making progress visible today.")

	// 4. Evening outline shows the delta against the morning baseline.
	out, err = Outline(database, cfg, OutlineInput{Now: evening})
	require.NoError(t, err)
	require.True(t, out.HasBaseline)
	require.Equal(t, 10, out.Entries[1].NewWords)
	require.Equal(t, 0, out.Entries[0].NewWords)

	// 5. A second backup the same day must not move the baseline.
	backup, err = Backup(database, cfg, BackupInput{Now: evening})
	require.NoError(t, err)
	require.False(t, backup.Created)

	out, err = Outline(database, cfg, OutlineInput{Now: evening})
	require.NoError(t, err)
	require.Equal(t, 10, out.Entries[1].NewWords)

	// 6. Consistency reports stay independent of the snapshot.
	unused, err := UnusedFigures(cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"pipeline"}, unused.Keys)

	undefined, err := UndefinedReferences(cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"doesnotexist"}, undefined.Keys)

	// 7. Export the day's report.
	exportPath := filepath.Join(t.TempDir(), "progress.md")
	exported, err := Export(database, cfg, ExportInput{Path: exportPath, Now: evening})
	require.NoError(t, err)
	require.FileExists(t, exported.Path)
	require.Greater(t, exported.Bytes, 0)

	// 8. Summary reflects the day's state.
	summary, err := Summary(database, cfg, SummaryInput{Now: evening})
	require.NoError(t, err)
	require.True(t, summary.HasBaseline)
	require.Equal(t, 50, summary.TotalWords)
	require.Equal(t, 31, summary.MaxWords)
	require.Equal(t, "Motivation", summary.LargestUnit)
}

package report

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hpungsan/texpulse/internal/config"
)

// MarkdownInput contains parameters for the BuildMarkdown operation.
type MarkdownInput struct {
	Now time.Time // zero means time.Now()
}

// MarkdownOutput contains the assembled progress report.
type MarkdownOutput struct {
	Day  string `json:"day"`
	Text string `json:"text"`
}

// BuildMarkdown assembles the shareable progress report: the outline with
// word statistics (and deltas when today's baseline exists), the
// consistency findings, and the build warnings.
func BuildMarkdown(database *sql.DB, cfg *config.Config, input MarkdownInput) (*MarkdownOutput, error) {
	out, err := Outline(database, cfg, OutlineInput{Now: input.Now})
	if err != nil {
		return nil, err
	}
	unusedFigs, err := UnusedFigures(cfg)
	if err != nil {
		return nil, err
	}
	unusedRefs, err := UnusedReferences(cfg)
	if err != nil {
		return nil, err
	}
	undefined, err := UndefinedReferences(cfg)
	if err != nil {
		return nil, err
	}
	warnings, err := Warnings(cfg)
	if err != nil {
		return nil, err
	}

	chapters := 0
	for _, e := range out.Entries {
		if e.Level == 0 {
			chapters++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Writing progress, %s\n\n", out.Day)
	fmt.Fprintf(&b, "%d words across %d chapters.\n\n", out.TotalWords, chapters)

	b.WriteString("## Outline\n\n")
	for _, e := range out.Entries {
		indent := strings.Repeat("  ", e.Level)
		fmt.Fprintf(&b, "%s- **%s %s** (p. %d): %d words", indent, e.Number, e.Caption, e.Page, e.Words)
		if out.HasBaseline {
			fmt.Fprintf(&b, ", %+d today", e.NewWords)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(out.MissingCounts) > 0 {
		fmt.Fprintf(&b, "Unwritten units: %s.\n\n", strings.Join(out.MissingCounts, ", "))
	}

	keysSection(&b, "Unused figures", unusedFigs.Keys)
	keysSection(&b, "Unused references", unusedRefs.Keys)
	keysSection(&b, "Undefined references", undefined.Keys)

	fmt.Fprintf(&b, "## Build warnings (%d)\n\n", warnings.Total)
	if warnings.Total == 0 {
		b.WriteString("None.\n")
	}
	for _, w := range warnings.Items {
		fmt.Fprintf(&b, "- **%s**: %s\n", w.Source, w.Message)
	}

	return &MarkdownOutput{Day: out.Day, Text: b.String()}, nil
}

func keysSection(b *strings.Builder, title string, keys []string) {
	fmt.Fprintf(b, "## %s (%d)\n\n", title, len(keys))
	if len(keys) == 0 {
		b.WriteString("None.\n\n")
		return
	}
	for _, k := range keys {
		fmt.Fprintf(b, "- %s\n", k)
	}
	b.WriteString("\n")
}

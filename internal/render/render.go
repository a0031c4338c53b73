// Package render turns report outputs into the terminal presentation:
// dotted-leader rows at a constant width, per-level indentation, and
// progress bars scaled against the largest unit.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hpungsan/texpulse/internal/latex"
	"github.com/hpungsan/texpulse/internal/report"
)

const (
	width    = 100
	barWidth = 50

	// Units at or below this word count render without statistics.
	wordsThreshold = 10

	// Source labels in warning digests are padded to this width.
	sourceWidth = 30
)

// Per-level indentation: chapter, section, subsection.
var indents = []int{0, 3, 8}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	fillStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFCC00"))
	priorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#997700"))
)

func indentFor(level int) int {
	if level >= len(indents) {
		return indents[len(indents)-1]
	}
	return indents[level]
}

// row lays out one dotted-leader line. The leader length is computed from
// the unstyled widths of left and right; extend carries its own leading
// space and is excluded from the width budget.
func row(indent int, left, right, extend string) string {
	dots := width - indent - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if dots < 0 {
		dots = 0
	}
	return fmt.Sprintf("%s %s %s %s %s",
		strings.Repeat(" ", indent),
		left,
		dimStyle.Render(strings.Repeat(".", dots)),
		right,
		extend)
}

func header(b *strings.Builder, title string) {
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")
}

// Toc renders the outline: one dotted-leader row per unit, and for units
// above the word threshold a word count and progress bar. When the output
// carries a baseline the statistics split into prior and new parts.
func Toc(out *report.OutlineOutput) string {
	if len(out.Entries) == 0 {
		return ""
	}

	var b strings.Builder
	header(&b, "Table of contents")
	for _, e := range out.Entries {
		left := fmt.Sprintf("%s. %s", e.Number, e.Caption)
		right := strconv.Itoa(e.Page)

		extend := ""
		if e.Words > wordsThreshold {
			if out.HasBaseline {
				extend = diffWords(e) + diffBar(e)
			} else {
				extend = words(e.Words) + bar(e.Percent)
			}
		}

		b.WriteString(row(indentFor(e.Level), left, right, extend))
		b.WriteByte('\n')
	}
	return b.String()
}

func words(n int) string {
	return dimStyle.Render(fmt.Sprintf(" (%5d words)", n))
}

func bar(percent int) string {
	return dimStyle.Render(" [") +
		fillStyle.Render(strings.Repeat("=", percent)) +
		strings.Repeat(" ", barWidth-percent) +
		dimStyle.Render("]")
}

func diffWords(e report.OutlineEntry) string {
	style := dimStyle
	if e.NewWords > 0 {
		style = fillStyle
	}
	return dimStyle.Render(fmt.Sprintf(" (%5d words, ", e.Words)) +
		style.Render(fmt.Sprintf("%5d new", e.NewWords)) +
		dimStyle.Render(")")
}

// diffBar draws the prior progress dim and the growth bright. A unit that
// shrank keeps its prior bar; the growth segment never goes negative.
func diffBar(e report.OutlineEntry) string {
	grown := e.Percent - e.PriorPercent
	if grown < 0 {
		grown = 0
	}
	pad := barWidth - e.PriorPercent - grown
	if pad < 0 {
		pad = 0
	}
	return dimStyle.Render(" [") +
		priorStyle.Render(strings.Repeat("=", e.PriorPercent)) +
		fillStyle.Render(strings.Repeat("=", grown)) +
		strings.Repeat(" ", pad) +
		dimStyle.Render("]")
}

// Floats renders a list of figures or tables as dotted-leader rows.
func Floats(title string, items []latex.FloatRecord) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	header(&b, title)
	for _, item := range items {
		left := fmt.Sprintf("%-5s %s", item.Number+".", item.Caption)
		b.WriteString(row(0, left, strconv.Itoa(item.Page), ""))
		b.WriteByte('\n')
	}
	return b.String()
}

// Enumeration renders a numbered key list under a "Title (count):" header.
func Enumeration(title string, keys []string) string {
	if len(keys) == 0 {
		return ""
	}

	var b strings.Builder
	header(&b, fmt.Sprintf("%s (%d):", title, len(keys)))
	for i, key := range keys {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%4d. %s", i+1, key)))
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary renders the project counters as dotted-leader rows.
func Summary(out *report.SummaryOutput) string {
	var b strings.Builder
	header(&b, "Summary, "+out.Day)

	type line struct{ label, value string }
	lines := []line{
		{"Chapters", strconv.Itoa(out.Chapters)},
		{"Sections", strconv.Itoa(out.Sections)},
		{"Subsections", strconv.Itoa(out.Subsections)},
		{"Total words", strconv.Itoa(out.TotalWords)},
	}
	if out.LargestUnit != "" {
		lines = append(lines, line{"Largest unit", fmt.Sprintf("%s (%d words)", out.LargestUnit, out.MaxWords)})
	}
	lines = append(lines,
		line{"Figures", strconv.Itoa(out.Figures)},
		line{"Tables", strconv.Itoa(out.Tables)},
		line{"Typeset pages", strconv.Itoa(out.Pages)},
		line{"Build warnings", strconv.Itoa(out.Warnings)},
	)

	for _, l := range lines {
		b.WriteString(row(0, l.label, l.value, ""))
		b.WriteByte('\n')
	}
	if out.HasBaseline {
		b.WriteByte('\n')
		b.WriteString(dimStyle.Render("Baseline snapshot exists for today."))
		b.WriteByte('\n')
	}
	return b.String()
}

// Warnings renders a warning digest: enumerated rows with the source label
// padded to a fixed column so the messages align.
func Warnings(title string, items []latex.Warning) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	header(&b, fmt.Sprintf("%s (%d):", title, len(items)))
	for i, w := range items {
		src := "[" + w.Source + "]"
		pad := sourceWidth - lipgloss.Width(src)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(&b, "%s %s%s %s\n",
			dimStyle.Render(fmt.Sprintf("%4d.", i+1)),
			dimStyle.Render(src),
			strings.Repeat(" ", pad),
			w.Message)
	}
	return b.String()
}

package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Every tool reads the configured project as it stands on
// disk at call time; none of them takes arguments.

var outlineToolDef = mcp.NewTool("report_outline",
	mcp.WithDescription("Table of contents with per-unit word counts and writing progress. When today's baseline snapshot exists, each entry also reports the words added since the snapshot."),
)

var figuresToolDef = mcp.NewTool("report_figures",
	mcp.WithDescription("List of figures in document order, with captions and page numbers."),
)

var tablesToolDef = mcp.NewTool("report_tables",
	mcp.WithDescription("List of tables in document order, with captions and page numbers."),
)

var unusedFiguresToolDef = mcp.NewTool("report_unused_figures",
	mcp.WithDescription("Figure files present in the figures directory that no chapter source embeds."),
)

var unusedReferencesToolDef = mcp.NewTool("report_unused_references",
	mcp.WithDescription("Bibliography entries that the document never cites."),
)

var undefinedReferencesToolDef = mcp.NewTool("report_undefined_references",
	mcp.WithDescription("Citation keys used in the document that no bibliography entry defines."),
)

var warningsToolDef = mcp.NewTool("report_warnings",
	mcp.WithDescription("Warnings from the latest compiler and bibliography runs."),
)

var summaryToolDef = mcp.NewTool("report_summary",
	mcp.WithDescription("Project counters: outline units per level, word totals, the largest unit, floats, typeset pages, and build warnings."),
)

var backupToolDef = mcp.NewTool("snapshot_backup",
	mcp.WithDescription("Store today's baseline snapshot unless one already exists. The first call of a day freezes the state that progress is measured against."),
)

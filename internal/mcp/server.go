// Package mcp exposes the report operations as tools over the Model
// Context Protocol's stdio transport.
package mcp

import (
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/texpulse/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"report_outline": {
		def:     outlineToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleOutline },
	},
	"report_figures": {
		def:     figuresToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFigures },
	},
	"report_tables": {
		def:     tablesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTables },
	},
	"report_unused_figures": {
		def:     unusedFiguresToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUnusedFigures },
	},
	"report_unused_references": {
		def:     unusedReferencesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUnusedReferences },
	},
	"report_undefined_references": {
		def:     undefinedReferencesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUndefinedReferences },
	},
	"report_warnings": {
		def:     warningsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWarnings },
	},
	"report_summary": {
		def:     summaryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSummary },
	},
	"snapshot_backup": {
		def:     backupToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBackup },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the texpulse tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(db *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"texpulse",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(db, cfg, version)
	return server.ServeStdio(s)
}

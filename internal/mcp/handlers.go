package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/errors"
	"github.com/hpungsan/texpulse/internal/report"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// HandleOutline handles the report_outline tool call.
func (h *Handlers) HandleOutline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := report.Outline(h.db, h.cfg, report.OutlineInput{})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFigures handles the report_figures tool call.
func (h *Handlers) HandleFigures(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := report.Figures(h.cfg)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTables handles the report_tables tool call.
func (h *Handlers) HandleTables(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := report.Tables(h.cfg)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUnusedFigures handles the report_unused_figures tool call.
func (h *Handlers) HandleUnusedFigures(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := report.UnusedFigures(h.cfg)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUnusedReferences handles the report_unused_references tool call.
func (h *Handlers) HandleUnusedReferences(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := report.UnusedReferences(h.cfg)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUndefinedReferences handles the report_undefined_references tool call.
func (h *Handlers) HandleUndefinedReferences(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := report.UndefinedReferences(h.cfg)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleWarnings handles the report_warnings tool call.
func (h *Handlers) HandleWarnings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := report.Warnings(h.cfg)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSummary handles the report_summary tool call.
func (h *Handlers) HandleSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := report.Summary(h.db, h.cfg, report.SummaryInput{})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleBackup handles the snapshot_backup tool call.
func (h *Handlers) HandleBackup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := report.Backup(h.db, h.cfg, report.BackupInput{})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult builds a coded error payload with IsError set. INTERNAL
// errors keep their generic message and carry no details, so storage and
// encoding faults never leak paths or SQL text to the client.
func errorResult(err error) *mcp.CallToolResult {
	errorObj := map[string]any{
		"code":    errors.ErrInternal,
		"message": "an internal error occurred",
	}

	var opErr *errors.Error
	if stderrors.As(err, &opErr) {
		errorObj["code"] = opErr.Code
		errorObj["message"] = opErr.Message
		if opErr.Code != errors.ErrInternal && opErr.Details != nil {
			errorObj["details"] = opErr.Details
		}
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

// ABOUTME: MCP tool implementations for journal operations.
// ABOUTME: Registers new_journal, add_entry, list_entries, and save_journal.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/diary/internal/models"
)

func (s *Server) registerJournalTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "new_journal",
		Description: "Start a new journal with the given title. The current session journal is discarded and numbering restarts at 1.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Title of the new journal"}
			}
		}`),
	}, s.handleNewJournal)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_entry",
		Description: "Append an entry to the journal. Entries are numbered automatically in the order they are added.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"entry": {"type": "string", "description": "Entry text"}
			},
			"required": ["entry"]
		}`),
	}, s.handleAddEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_entries",
		Description: "List every entry in the journal in order.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleListEntries)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "save_journal",
		Description: "Write the journal to a file, one entry per line, replacing the file's content.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Destination file path (default: configured destination)"}
			}
		}`),
	}, s.handleSaveJournal)
}

func (s *Server) handleNewJournal(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Title string `json:"title"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	s.mu.Lock()
	s.journal = models.NewJournal(args.Title)
	id := s.journal.ID
	s.mu.Unlock()

	s.logger.Info("journal created", "journal_id", id, "title", args.Title)
	return toolText("New journal started: %q", args.Title), nil
}

func (s *Server) handleAddEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Entry *string `json:"entry"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Entry == nil {
		return toolError("entry is required"), nil
	}

	s.mu.Lock()
	s.journal.AddEntry(*args.Entry)
	entries := s.journal.Entries()
	id := s.journal.ID
	s.mu.Unlock()

	added := entries[len(entries)-1]
	s.logger.Debug("entry added", "journal_id", id, "number", len(entries))
	return toolText("Entry added: %s", added), nil
}

func (s *Server) handleListEntries(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	s.mu.Lock()
	title := s.journal.Title()
	entries := s.journal.Entries()
	s.mu.Unlock()

	if len(entries) == 0 {
		return toolText("Journal %q has no entries.", title), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Journal: %s\n", title))
	for _, e := range entries {
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	return toolText("%s", sb.String()), nil
}

func (s *Server) handleSaveJournal(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Path string `json:"path"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	path := strings.TrimSpace(args.Path)
	if path == "" {
		path = s.destination
	}
	if path == "" {
		return toolError("path is required (no default destination configured)"), nil
	}

	s.mu.Lock()
	entries := s.journal.Entries()
	id := s.journal.ID
	s.mu.Unlock()

	if err := s.save(entries, path); err != nil {
		s.logger.Error("journal save failed", "journal_id", id, "destination", path, "error", err)
		return toolError("failed to save journal: %v", err), nil
	}

	s.logger.Info("journal saved", "journal_id", id, "destination", path, "entries", len(entries))
	return toolText("Journal saved: %d entries written to %s", len(entries), path), nil
}

// unmarshalArgs decodes tool arguments, treating absent arguments as an empty object.
func unmarshalArgs(req *gomcp.CallToolRequest, v any) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

// toolText creates a successful text result for MCP tool responses.
func toolText(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// ABOUTME: MCP server initialization and configuration for diary.
// ABOUTME: Exposes a session journal to AI agents with add, list, and save tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/diary/internal/logging"
	"github.com/2389-research/diary/internal/models"
	"github.com/2389-research/diary/internal/storage"
)

// Server wraps the MCP server around a single session journal.
type Server struct {
	mcp *gomcp.Server

	mu          sync.Mutex // guards journal; tool calls may arrive concurrently
	journal     *models.Journal
	save        storage.SaveFunc
	destination string
	logger      *slog.Logger
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithSaveFunc replaces storage.Save as the persistence function.
func WithSaveFunc(fn storage.SaveFunc) ServerOption {
	return func(s *Server) {
		s.save = fn
	}
}

// WithDefaultDestination sets the path used when save_journal gets no path.
func WithDefaultDestination(path string) ServerOption {
	return func(s *Server) {
		s.destination = path
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates an MCP server operating on the given journal.
func NewServer(journal *models.Journal, opts ...ServerOption) (*Server, error) {
	if journal == nil {
		return nil, fmt.Errorf("journal is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "diary",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:     mcpServer,
		journal: journal,
		save:    storage.Save,
		logger:  logging.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerJournalTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", "journal_id", s.journal.ID, "title", s.journal.Title())
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}

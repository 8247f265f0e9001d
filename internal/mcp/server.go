// Package mcp exposes the movie catalog and recommender to AI agents over
// the Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes catalog tools.
type Server struct {
	movies *catalog.Service
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server backed by the catalog service.
func NewServer(movies *catalog.Service) *Server {
	s := &Server{movies: movies}

	s.mcp = server.NewMCPServer(
		"moviedb",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchMoviesTool, s.handleSearchMovies)
	s.mcp.AddTool(getMovieTool, s.handleGetMovie)
	s.mcp.AddTool(relatedMoviesTool, s.handleRelatedMovies)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
)

const defaultSearchLimit = 20

func (s *Server) handleSearchMovies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", defaultSearchLimit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	filter := catalog.Filter{
		Search:   request.GetString("query", ""),
		Language: request.GetString("language", ""),
		Genre:    request.GetString("genre", ""),
		Year:     request.GetInt("year", 0),
		Limit:    limit,
	}

	movies, err := s.movies.Store().List(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(movies) == 0 {
		return mcp.NewToolResultText("No movies found. The catalog may be empty. Run `moviedb import` to load a dataset."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d movie(s):\n", len(movies))
	for _, m := range movies {
		sb.WriteString(formatSummary(m))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleGetMovie(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil || id <= 0 {
		return mcp.NewToolResultError("missing or invalid parameter: id"), nil
	}

	m, err := s.movies.Store().GetByID(ctx, int64(id))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	if m == nil {
		return mcp.NewToolResultError(fmt.Sprintf("movie %d not found", id)), nil
	}
	return mcp.NewToolResultText(formatMovie(*m)), nil
}

func (s *Server) handleRelatedMovies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil || id <= 0 {
		return mcp.NewToolResultError("missing or invalid parameter: id"), nil
	}
	watched, err := catalog.ParseIDSet(request.GetString("watched", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m, err := s.movies.Store().GetByID(ctx, int64(id))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	if m == nil {
		return mcp.NewToolResultError(fmt.Sprintf("movie %d not found", id)), nil
	}

	related, err := s.movies.Related(ctx, m.ID, watched)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}
	if len(related) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No recommendations available for %q.", m.Title)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Movies related to %q (%d):\n", m.Title, m.ReleaseYear)
	for _, r := range related {
		sb.WriteString(formatSummary(r))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatSummary(m catalog.Movie) string {
	return fmt.Sprintf("- [%d] %s (%d) · %s · %s\n", m.ID, m.Title, m.ReleaseYear, m.Language, m.Genre)
}

// formatMovie renders a movie as Markdown for agent consumption.
func formatMovie(m catalog.Movie) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s (%d)\n\n", m.Title, m.ReleaseYear)
	fmt.Fprintf(&sb, "- ID: %d\n", m.ID)
	fmt.Fprintf(&sb, "- Language: %s\n", m.Language)
	fmt.Fprintf(&sb, "- Genre: %s\n", m.Genre)
	fmt.Fprintf(&sb, "- Director: %s\n", m.Director)
	fmt.Fprintf(&sb, "- Cast: %s\n", m.Cast)
	fmt.Fprintf(&sb, "- Keywords: %s\n", m.Keywords)
	if m.Poster != "" {
		fmt.Fprintf(&sb, "- Poster: %s\n", m.Poster)
	}
	if m.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(m.Description)
		sb.WriteString("\n")
	}
	return sb.String()
}

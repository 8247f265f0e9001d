package mcp

import "github.com/mark3labs/mcp-go/mcp"

var searchMoviesTool = mcp.NewTool("search_movies",
	mcp.WithDescription("Search the movie catalog by title with optional language, genre and release year filters."),
	mcp.WithString("query",
		mcp.Description("Case-insensitive title substring; empty matches every title"),
	),
	mcp.WithString("language",
		mcp.Description("Exact language, e.g. Tamil"),
	),
	mcp.WithString("genre",
		mcp.Description("Genre substring, e.g. Thriller"),
	),
	mcp.WithNumber("year",
		mcp.Description("Release year"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 20)"),
	),
)

var getMovieTool = mcp.NewTool("get_movie",
	mcp.WithDescription("Get the full record of one movie: cast, director, keywords and description."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Movie ID"),
	),
)

var relatedMoviesTool = mcp.NewTool("related_movies",
	mcp.WithDescription("List up to five movies most similar to the given one by genre, language, cast, director and keywords."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Movie ID to find related titles for"),
	),
	mcp.WithString("watched",
		mcp.Description("Comma-separated IDs the viewer has already watched; these get a small ranking boost"),
	),
)

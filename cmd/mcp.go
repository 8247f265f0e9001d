package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/sivahkrishna/indian-movie-recommender/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing movie search, lookup and related-movie tools to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		movies := newMovieService(cfg, database)
		count, err := movies.Store().Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("counting movies: %w", err)
		}
		if count == 0 {
			fmt.Fprintf(os.Stderr, "Warning: the catalog is empty. Run `moviedb import` first.\n")
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "moviedb MCP server started on stdio (movies=%d)\n", count)

		return mcpserver.NewServer(movies).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

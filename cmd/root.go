package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sivahkrishna/indian-movie-recommender/internal/config"
	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "moviedb",
	Short: "Movie catalog with content-based related-movie recommendations",
	Long: `moviedb serves a movie catalog website where users register, keep
wishlists and watched lists, rate movies, and see related titles ranked by
how similar their genre, language, cast, director and keywords are.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads and validates the config and configures logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `moviedb init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logging.Init(logging.Config{Level: level, Format: cfg.Log.Format})
	return cfg, nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sivahkrishna/indian-movie-recommender/internal/audit"
	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
	"github.com/sivahkrishna/indian-movie-recommender/internal/dataset"
	"github.com/sivahkrishna/indian-movie-recommender/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import <pattern>...",
	Short: "Load movies from CSV files into the catalog",
	Long: `Imports movies from one or more CSV files. Patterns may use ** globs,
e.g. "datasets/**/*.csv". The header must name the columns title, language,
genre, keywords, cast, director, description, release_year and poster in any
order. Each file is imported in a single transaction: a bad row aborts that
file and nothing from it is kept.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		paths, err := dataset.ExpandPatterns(args)
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		store := catalog.NewStore(database)
		importer := dataset.NewImporter(store, progress.NewReporter())

		res, err := importer.Import(cmd.Context(), paths)
		if err != nil {
			return err
		}
		audit.NewStore(database).Record(cmd.Context(), audit.Entry{
			Actor:   audit.ActorCLI,
			Action:  audit.ActionDatasetImported,
			Subject: strings.Join(args, " "),
			Detail:  fmt.Sprintf("%d movies from %d file(s)", res.Movies, res.Files),
		})

		total, err := store.Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("counting movies: %w", err)
		}
		fmt.Printf("Imported %d movie(s) from %d file(s). Catalog now holds %d movie(s).\n", res.Movies, res.Files, total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

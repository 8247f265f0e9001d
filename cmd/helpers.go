package cmd

import (
	"fmt"

	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
	"github.com/sivahkrishna/indian-movie-recommender/internal/config"
	"github.com/sivahkrishna/indian-movie-recommender/internal/db"
	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
	"github.com/sivahkrishna/indian-movie-recommender/internal/recommender"
)

// openDatabase opens the SQLite database under the configured data dir.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logging.Debug().Str("path", database.Path()).Msg("database opened")
	return database, nil
}

// newMovieService builds the catalog service with the configured ranking options.
func newMovieService(cfg *config.Config, database *db.DB) *catalog.Service {
	rec := recommender.New(recommender.Options{
		Limit:              cfg.Recommender.Limit,
		WatchedBoost:       cfg.Recommender.WatchedBoost,
		IncludeDescription: cfg.Recommender.IncludeDescription,
	})
	return catalog.NewService(catalog.NewStore(database), rec)
}

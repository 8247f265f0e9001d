package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/sivahkrishna/indian-movie-recommender/internal/audit"
	"github.com/sivahkrishna/indian-movie-recommender/internal/auth"
	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
	"github.com/sivahkrishna/indian-movie-recommender/internal/ratings"
	"github.com/sivahkrishna/indian-movie-recommender/internal/server"
	"github.com/sivahkrishna/indian-movie-recommender/internal/users"
	"github.com/sivahkrishna/indian-movie-recommender/internal/web"
	"github.com/sivahkrishna/indian-movie-recommender/internal/wishlist"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the moviedb web server",
	Long:  `Starts the HTTP server with the catalog website, the JSON API under /api, /healthz and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.ValidateServer(); err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			return fmt.Errorf("creating upload dir: %w", err)
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		movies := newMovieService(cfg, database)
		userStore := users.NewStore(database)
		lists := wishlist.NewStore(database)
		trail := audit.NewStore(database)
		sessions := auth.NewSessions(cfg.Server.SessionSecret, cfg.Server.SessionTTL, cfg.Server.SecureCookies)

		site, err := web.New(web.Deps{
			Movies:       movies,
			Users:        userStore,
			Lists:        lists,
			Ratings:      ratings.NewStore(database),
			Sessions:     sessions,
			Audit:        trail,
			UploadDir:    cfg.UploadDir,
			LoginLimiter: server.LoginLimiter(cfg.Server.LoginRateLimit),
		})
		if err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, database)

		srv.Router().Group(func(r chi.Router) {
			r.Use(sessions.Load(userStore))
			catalog.RegisterRoutes(r, movies, catalog.RouteOptions{
				Watched:   watchedLookup(lists),
				AdminOnly: auth.RequireAdmin,
				Audit:     trail,
			})
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				audit.RegisterRoutes(r, trail)
			})
			site.RegisterRoutes(r)
		})

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logging.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logging.Error().Err(err).Msg("shutdown")
			}
		}()

		count, err := movies.Store().Count(ctx)
		if err != nil {
			return fmt.Errorf("counting movies: %w", err)
		}
		logging.Info().
			Str("version", Version).
			Str("database", database.Path()).
			Int("movies", count).
			Msg("moviedb starting")

		return srv.Start()
	},
}

// watchedLookup returns the signed-in user's watched set for the JSON API.
// Anonymous callers get no boost.
func watchedLookup(lists *wishlist.Store) catalog.WatchedLookup {
	return func(r *http.Request) (map[int64]struct{}, error) {
		u := auth.CurrentUser(r.Context())
		if u == nil {
			return nil, nil
		}
		return lists.MovieIDs(r.Context(), u.ID, wishlist.KindWatched)
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

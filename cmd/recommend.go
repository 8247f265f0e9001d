package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
)

var recommendWatched string

var recommendCmd = &cobra.Command{
	Use:   "recommend <movie-id>",
	Short: "Print the movies most related to a movie",
	Long: `Ranks the catalog against one movie and prints the closest matches with
their scores. Pass --watched with a comma-separated list of movie IDs to apply
the watched-list boost a signed-in user would get.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid movie id %q", args[0])
		}
		watched, err := catalog.ParseIDSet(recommendWatched)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		svc := newMovieService(cfg, database)
		target, err := svc.Store().GetByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("movie %d not found", id)
		}

		scored, err := svc.RelatedIDs(cmd.Context(), id, watched)
		if err != nil {
			return err
		}
		fmt.Printf("Related to %s (%d):\n", target.Title, target.ReleaseYear)
		if len(scored) == 0 {
			fmt.Println("No recommendations available.")
			return nil
		}

		ids := make([]int64, len(scored))
		for i, s := range scored {
			ids[i] = s.ID
		}
		movies, err := svc.Store().GetByIDs(cmd.Context(), ids)
		if err != nil {
			return err
		}
		titles := make(map[int64]catalog.Movie, len(movies))
		for _, m := range movies {
			titles[m.ID] = m
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tID\tSCORE\tTITLE\tLANGUAGE\tWATCHED")
		for i, s := range scored {
			m := titles[s.ID]
			_, seen := watched[s.ID]
			mark := ""
			if seen {
				mark = "yes"
			}
			fmt.Fprintf(w, "%d\t%d\t%.4f\t%s\t%s\t%s\n", i+1, s.ID, s.Score, m.Title, m.Language, mark)
		}
		return w.Flush()
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recommendWatched, "watched", "", "Comma-separated movie IDs already watched")
	rootCmd.AddCommand(recommendCmd)
}

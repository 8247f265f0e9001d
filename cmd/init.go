package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sivahkrishna/indian-movie-recommender/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a moviedb configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that picks the data directory, port and log format, generates a session secret, and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

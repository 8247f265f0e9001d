package main

import (
	"os"

	"github.com/sivahkrishna/indian-movie-recommender/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Normalize a personal book collection into a JSON database",
}

func execute() error {
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newEnrichCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newCoversCmd())
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/src/internal/config"
	"bookshelf/src/internal/stats"
	"bookshelf/src/internal/store"
)

func newStatsCmd() *cobra.Command {
	var cfgPath, dbPath string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print collection statistics for the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			path := dbPath
			if path == "" {
				path = cfg.Output
			}
			records, err := store.Read(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stats.Summarize(records).Render())
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultFile, "config file")
	cmd.Flags().StringVar(&dbPath, "database", "", "database file (default from config)")
	return cmd
}

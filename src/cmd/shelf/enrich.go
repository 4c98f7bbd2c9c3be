package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/src/internal/config"
	"bookshelf/src/internal/store"
)

func newEnrichCmd() *cobra.Command {
	var cfgPath, dbPath string
	var limit int
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fetch missing metadata for an existing database",
		Long: "Re-runs the Google Books lookup over an existing database file. " +
			"Records that already have a description and cover are skipped, so " +
			"reruns only fetch what is still missing.",
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
			subset := records
			if limit > 0 && limit < len(records) {
				subset = records[:limit]
			}
			n := enrichRecords(cmd, newEnricher(cfg.EnrichDelay()), subset)
			if err := store.Write(path, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enriched %d of %d records in %s\n", n, len(subset), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultFile, "config file")
	cmd.Flags().StringVar(&dbPath, "database", "", "database file (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "enrich only the first N records")
	return cmd
}

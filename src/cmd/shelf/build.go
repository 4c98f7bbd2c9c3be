package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bookshelf/src/internal/bookfile"
	"bookshelf/src/internal/config"
	"bookshelf/src/internal/googlebooks"
	"bookshelf/src/internal/normalize"
	"bookshelf/src/internal/schema"
	"bookshelf/src/internal/stats"
	"bookshelf/src/internal/store"
)

// indirection for testability
var newEnricher = func(delay time.Duration) *googlebooks.Enricher {
	return googlebooks.New(delay)
}

func newBuildCmd() *cobra.Command {
	var cfgPath, output string
	var enrich bool
	var limit int
	cmd := &cobra.Command{
		Use:   "build [input files...]",
		Short: "Parse the book lists and write the sorted JSON database",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			inputs := cfg.Inputs
			if len(args) > 0 {
				inputs = args
			}
			raws, err := bookfile.LoadAll(inputs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d entries\n", len(raws))

			records := normalize.New(cfg.Locations).All(raws)

			if enrich {
				subset := records
				if limit > 0 && limit < len(records) {
					subset = records[:limit]
				}
				n := enrichRecords(cmd, newEnricher(cfg.EnrichDelay()), subset)
				fmt.Fprintf(cmd.OutOrStdout(), "enriched %d of %d records\n", n, len(subset))
			}

			out := output
			if out == "" {
				out = cfg.Output
			}
			if err := store.Write(out, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(records), out)
			fmt.Fprintln(cmd.OutOrStdout(), stats.Summarize(records).Render())
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultFile, "config file")
	cmd.Flags().StringVar(&output, "output", "", "database file (default from config)")
	cmd.Flags().BoolVar(&enrich, "enrich", false, "fetch missing metadata from Google Books")
	cmd.Flags().IntVar(&limit, "limit", 0, "enrich only the first N records")
	return cmd
}

// enrichRecords runs the best-effort metadata lookup over the given
// records. A failed lookup leaves its record untouched and never
// aborts the batch.
func enrichRecords(cmd *cobra.Command, e *googlebooks.Enricher, records []schema.Record) int {
	enriched := 0
	for i := range records {
		r := &records[i]
		if !googlebooks.NeedsLookup(r) {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s: %s\n", i+1, len(records), r.Author, r.Title)
		if err := e.Enrich(cmd.Context(), r); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: lookup failed for %q: %v\n", r.Title, err)
			continue
		}
		enriched++
	}
	return enriched
}

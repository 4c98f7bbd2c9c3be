package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/src/internal/config"
	"bookshelf/src/internal/googlebooks"
	"bookshelf/src/internal/store"
)

func newCoversCmd() *cobra.Command {
	var cfgPath, dbPath string
	cmd := &cobra.Command{
		Use:   "covers",
		Short: "Upgrade stored cover URLs to the high-resolution variant",
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
			upgraded := 0
			for i := range records {
				r := &records[i]
				if !r.HasCover() {
					continue
				}
				if up := googlebooks.UpgradeCoverURL(*r.CoverURL); up != *r.CoverURL {
					r.CoverURL = &up
					upgraded++
				}
			}
			if err := store.Write(path, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "upgraded %d cover URLs in %s\n", upgraded, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultFile, "config file")
	cmd.Flags().StringVar(&dbPath, "database", "", "database file (default from config)")
	return cmd
}

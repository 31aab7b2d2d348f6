package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/titlefill"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			// NewStore migrates on open.
			store, err := titlefill.NewStore(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", cfg.DatabasePath)
			return nil
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/titlefill"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := titlefill.New(loadConfig())
			defer app.Close()
			return app.Start()
		},
	}
}

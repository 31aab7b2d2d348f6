package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/titlefill"
)

func newTitleCmd() *cobra.Command {
	var (
		id    int64
		title string
		admin bool
	)
	cmd := &cobra.Command{
		Use:   "title",
		Short: "Print the title a post would be rendered with",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			store, plugin, err := openPlugin(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			priority := cfg.TitleFilterPriority
			if priority == 0 {
				priority = titlefill.DefaultTitleFilterPriority
			}
			filters := &titlefill.Filters{}
			filters.Add(titlefill.TitleFilterName, priority, plugin.FillTitle)
			out := filters.Apply(cmd.Context(), title, titlefill.TitleRequest{PostID: id, Admin: admin})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "post id")
	cmd.Flags().StringVar(&title, "title", "", "current title")
	cmd.Flags().BoolVar(&admin, "admin", false, "render as the admin surface would")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eringen/titlefill"
)

func newOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Inspect and change the title filler options",
	}
	cmd.AddCommand(newOptionsShowCmd(), newOptionsSetCmd(), newOptionsResetCmd())
	return cmd
}

func newOptionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current options as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, plugin, err := openPlugin(loadConfig())
			if err != nil {
				return err
			}
			defer store.Close()
			out := map[string]titlefill.Options{
				plugin.OptionKey: plugin.PluginOptions(cmd.Context()).Editable(),
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(out)
		},
	}
}

func newOptionsSetCmd() *cobra.Command {
	var (
		format   string
		notEmpty bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Validate and store new options",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, plugin, err := openPlugin(loadConfig())
			if err != nil {
				return err
			}
			defer store.Close()

			settings := titlefill.NewSettings(store)
			plugin.OptionsInit(cmd.Context(), settings)
			raw := titlefill.RawInput{"title_format": format}
			if notEmpty {
				raw["not_empty_titles"] = "on"
			}
			opts, err := settings.Save(cmd.Context(), plugin.OptionKey, raw)
			if err != nil {
				return err
			}
			opts = opts.Editable()
			fmt.Fprintf(cmd.OutOrStdout(), "title_format: %q\nnot_empty_titles: %t\n", opts.TitleFormat, opts.NotEmptyTitles)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "title format; %d date, %f format, %n id, %c first category")
	cmd.Flags().BoolVar(&notEmpty, "not-empty-titles", false, "apply the format to non-empty titles too")
	_ = cmd.MarkFlagRequired("format")
	return cmd
}

func newOptionsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete stored options so the defaults apply",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, plugin, err := openPlugin(loadConfig())
			if err != nil {
				return err
			}
			defer store.Close()
			return store.DeleteOptions(cmd.Context(), plugin.OptionKey)
		},
	}
}

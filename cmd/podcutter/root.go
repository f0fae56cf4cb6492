package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/podcutter/internal/app"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var apiFlag string
	var prefsFlag string

	ctx := newCommandContext(&configFlag, &apiFlag, &prefsFlag)

	rootCmd := &cobra.Command{
		Use:           "podcutter",
		Short:         "Analyze podcasts for ads and cut them out",
		Long:          "podcutter lists the podcast files known to the ad-removal server and triggers analysis and ad removal.\nWith no subcommand it starts the interactive list.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), ctx.options())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "", "Podcast server URL (overrides api_url)")
	rootCmd.Flags().StringVar(&prefsFlag, "prefs", "", "Preferences file path")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newSpliceCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}

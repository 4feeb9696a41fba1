package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var localeFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag, &localeFlag)

	rootCmd := &cobra.Command{
		Use:   "sorter [path]",
		Short: "Sort a directory into category folders",
		Long: "Sort the files of a directory tree into Videos, Music, Documents, Images,\n" +
			"Archives and Others, transliterating names to ASCII, expanding zip, gz and\n" +
			"tar archives into archives/ and removing directories left empty.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The root command validates its target before touching config.
			if shouldSkipConfig(cmd) || !cmd.HasParent() {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, ctx, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "Transliteration locale override (uk, ru)")

	rootCmd.AddCommand(newCategoriesCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}

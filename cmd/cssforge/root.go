package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "cssforge",
		Short:         "cssforge lays out elements visually and keeps them in sync with their CSS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to editor configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newNewCmd(flags))
	cmd.AddCommand(newAddCmd(flags))
	cmd.AddCommand(newCSSCmd(flags))
	cmd.AddCommand(newApplyCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newHistoryCmd(flags))
	cmd.AddCommand(newUndoCmd(flags))
	cmd.AddCommand(newRedoCmd(flags))
	cmd.AddCommand(newTemplateCmd(flags))
	cmd.AddCommand(newValidateHTMLCmd())
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newEditCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

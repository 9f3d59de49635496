package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/cssforge/internal/preview"
)

func newValidateHTMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-html <file|->",
		Short: "Report unclosed and unexpected tags in an HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return newCommandError("validate html", fmt.Sprintf("reading %q", args[0]), err, "Pass a readable HTML file, or - to read from stdin.")
			}

			problems := preview.ValidateHTML(string(data))
			if len(problems) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ No structural problems found")
				return nil
			}
			for _, p := range problems {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", p)
			}
			return newCommandError("validate html", args[0], fmt.Errorf("%d problem(s) found", len(problems)),
				"Close every opened tag and remove stray closing tags.")
		},
	}
}

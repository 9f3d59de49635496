package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
	"github.com/alexisbeaulieu97/cssforge/internal/cssgen"
)

type cssOptions struct {
	format string
	output string
	copy   bool
}

func newCSSCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &cssOptions{}

	cmd := &cobra.Command{
		Use:   "css <project-file>",
		Short: "Print the generated stylesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			return runCSS(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(cssgen.FormatCSS), "Output format: css, scss, less or sass")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the CSS to the system clipboard")

	return cmd
}

func runCSS(cmd *cobra.Command, app *appContext, path string, opts *cssOptions) error {
	log := app.commandLogger("css")

	format, err := cssgen.ParseFormat(opts.format)
	if err != nil {
		return newCommandError("export css", "selecting format", err, "Use one of css, scss, less or sass.")
	}

	clip := clipboard.Clipboard(&clipboard.Memory{})
	if opts.copy {
		clip = clipboard.System{}
	}

	sess, absPath, err := app.openProject("export css", path, clip)
	if err != nil {
		return err
	}

	out, err := sess.Export(string(format))
	if err != nil {
		return newCommandError("export css", "converting stylesheet", err, "Use one of css, scss, less or sass.")
	}

	if opts.copy {
		if err := sess.CopyCSS(); err != nil {
			return newCommandError("export css", "copying to clipboard", err, "Install xclip, xsel or wl-clipboard, or use --output.")
		}
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "✓ CSS copied to clipboard")
	}

	if err := writeOutput(cmd, opts.output, out); err != nil {
		return newCommandError("export css", "writing output", err, "Check that the output directory exists and is writable.")
	}

	log.Debug("stylesheet exported", "path", absPath, "format", string(format), "bytes", len(out))
	return nil
}

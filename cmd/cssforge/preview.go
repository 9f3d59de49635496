package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
)

type previewOptions struct {
	output     string
	background string
	document   string
	save       bool
}

func newPreviewCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <project-file>",
		Short: "Render the preview HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			return runPreview(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&opts.background, "background", "", "Preview background color")
	cmd.Flags().StringVar(&opts.document, "html", "", "HTML document to splice the stylesheet into")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Store the --html document in the project")

	return cmd
}

func runPreview(cmd *cobra.Command, app *appContext, path string, opts *previewOptions) error {
	log := app.commandLogger("preview")

	sess, absPath, err := app.openProject("render preview", path, &clipboard.Memory{})
	if err != nil {
		return err
	}

	if opts.background != "" {
		sess.SetPreviewBackground(opts.background)
	}
	if opts.document != "" {
		data, err := readInput(cmd, opts.document)
		if err != nil {
			return newCommandError("render preview", fmt.Sprintf("reading %q", opts.document), err, "Pass a readable HTML file.")
		}
		for _, problem := range sess.SetHTML(string(data)) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", problem)
		}
	}
	sess.Flush()

	if err := writeOutput(cmd, opts.output, sess.Preview()); err != nil {
		return newCommandError("render preview", "writing output", err, "Check that the output directory exists and is writable.")
	}
	log.Debug("preview rendered", "path", absPath, "elements", sess.Store().Len())

	if opts.save && opts.document != "" {
		return saveProject("render preview", sess, absPath)
	}
	return nil
}

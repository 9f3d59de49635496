package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
	"github.com/alexisbeaulieu97/cssforge/pkg/diff"
)

type applyOptions struct {
	showDiff bool
	dryRun   bool
}

func newApplyCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <project-file> <css-file|->",
		Short: "Apply hand-edited CSS to a project's elements",
		Long: `Apply reconciles edited CSS into the project the same way typing in the editor does:
rules bind to existing elements by index or type, changed declarations are updated, and
unmatched rules create new elements. The stylesheet is then regenerated in normalized form.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			return runApply(cmd, app, args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.showDiff, "diff", "d", false, "Show how the applied CSS was normalized")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Do not write the project file")

	return cmd
}

func runApply(cmd *cobra.Command, app *appContext, projectPath, cssPath string, opts *applyOptions) error {
	log := app.commandLogger("apply")

	input, err := readInput(cmd, cssPath)
	if err != nil {
		return newCommandError("apply css", fmt.Sprintf("reading %q", cssPath), err, "Pass a readable CSS file, or - to read from stdin.")
	}

	sess, absPath, err := app.openProject("apply css", projectPath, &clipboard.Memory{})
	if err != nil {
		return err
	}

	res, _ := sess.EditCSS(string(input))
	sess.Flush()
	normalized := sess.CSS()

	log.Info("css applied", "path", absPath, "rules", res.Rules, "created", res.Created, "updated", res.Updated, "moved", res.Moved)

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "✓ Applied %d rule(s): %d created, %d declaration(s) updated, %d moved\n",
		res.Rules, res.Created, res.Updated, res.Moved)

	if opts.showDiff {
		d := diff.GenerateUnifiedDiff(string(input), normalized, cssPath, "normalized")
		if d == "" {
			_, _ = fmt.Fprintln(out, "\nNo normalization changes.")
		} else {
			added, removed := diff.Stat(string(input), normalized)
			_, _ = fmt.Fprintf(out, "\n%s\n%d insertion(s), %d deletion(s)\n", d, added, removed)
		}
	}

	if opts.dryRun {
		_, _ = fmt.Fprintln(out, "Dry run: project not saved.")
		return nil
	}
	return saveProject("apply css", sess, absPath)
}

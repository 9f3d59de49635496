package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
	"github.com/alexisbeaulieu97/cssforge/internal/history"
	"github.com/alexisbeaulieu97/cssforge/internal/session"
)

type historyOptions struct {
	jsonOutput bool
}

func newHistoryCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history <project-file>",
		Short: "List the undo history stored in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			return runHistory(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")

	return cmd
}

type historyRow struct {
	Index    int          `json:"index"`
	Kind     history.Kind `json:"type"`
	Base     *int         `json:"base_index,omitempty"`
	Changes  int          `json:"changes"`
	Elements int          `json:"elements"`
	Current  bool         `json:"current"`
	Error    string       `json:"error,omitempty"`
}

func runHistory(cmd *cobra.Command, app *appContext, path string, opts *historyOptions) error {
	sess, _, err := app.openProject("list history", path, &clipboard.Memory{})
	if err != nil {
		return err
	}

	hist := sess.History()
	rows := make([]historyRow, 0, hist.Len())
	for i, entry := range hist.Entries() {
		row := historyRow{Index: i, Kind: entry.Kind, Current: i == hist.Index()}
		if entry.Kind == history.KindDiff {
			base := entry.Base
			row.Base = &base
			row.Changes = len(entry.Changes)
		}
		if snap, err := hist.Resolve(i); err != nil {
			row.Error = err.Error()
		} else {
			row.Elements = len(snap.Elements)
		}
		rows = append(rows, row)
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No history recorded yet.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "\tINDEX\tTYPE\tBASE\tCHANGES\tELEMENTS")
	for _, r := range rows {
		marker := ""
		if r.Current {
			marker = "→"
		}
		base, changes := "-", "-"
		if r.Base != nil {
			base = fmt.Sprint(*r.Base)
			changes = fmt.Sprint(r.Changes)
		}
		elements := fmt.Sprint(r.Elements)
		if r.Error != "" {
			elements = "error: " + r.Error
		}
		fmt.Fprintf(writer, "%s\t%d\t%s\t%s\t%s\t%s\n", marker, r.Index, r.Kind, base, changes, elements)
	}
	return writer.Flush()
}

type stepOptions struct {
	steps int
}

func newUndoCmd(rootFlags *rootFlags) *cobra.Command {
	return newStepCmd(rootFlags, "undo", "Step the project back through its history", (*session.Session).Undo)
}

func newRedoCmd(rootFlags *rootFlags) *cobra.Command {
	return newStepCmd(rootFlags, "redo", "Step the project forward through its history", (*session.Session).Redo)
}

func newStepCmd(rootFlags *rootFlags, name, short string, move func(*session.Session) (bool, error)) *cobra.Command {
	opts := &stepOptions{}

	cmd := &cobra.Command{
		Use:   name + " <project-file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			return runStep(cmd, app, name, args[0], opts, move)
		},
	}

	cmd.Flags().IntVarP(&opts.steps, "steps", "n", 1, "Number of steps")

	return cmd
}

func runStep(cmd *cobra.Command, app *appContext, name, path string, opts *stepOptions, move func(*session.Session) (bool, error)) error {
	log := app.commandLogger(name)

	sess, absPath, err := app.openProject(name, path, &clipboard.Memory{})
	if err != nil {
		return err
	}

	moved := 0
	for moved < opts.steps {
		ok, err := move(sess)
		if err != nil {
			return newCommandError(name, "restoring history entry", err, "The history in the project file is inconsistent; restore it from a backup.")
		}
		if !ok {
			break
		}
		moved++
	}

	hist := sess.History()
	if moved == 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Nothing to %s (history at %d/%d)\n", name, hist.Index()+1, hist.Len())
		return nil
	}

	if err := saveProject(name, sess, absPath); err != nil {
		return err
	}

	log.Info("history moved", "path", absPath, "steps", moved, "index", hist.Index())
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %d step(s): history at %d/%d, %d element(s)\n",
		name, moved, hist.Index()+1, hist.Len(), sess.Store().Len())
	return nil
}

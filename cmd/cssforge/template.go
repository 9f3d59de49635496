package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
	"github.com/alexisbeaulieu97/cssforge/internal/project"
)

func newTemplateCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable element templates",
	}

	cmd.AddCommand(newTemplateListCmd(rootFlags))
	cmd.AddCommand(newTemplateSaveCmd(rootFlags))
	cmd.AddCommand(newTemplateApplyCmd(rootFlags))

	return cmd
}

func newTemplateListCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-file>",
		Short: "List project templates and built-in presets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			sess, _, err := app.openProject("list templates", args[0], &clipboard.Memory{})
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "NAME\tKEY\tTYPE\tSIZE\tSOURCE")
			for _, t := range sess.Templates() {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%gx%g\tproject\n", t.Name, t.Key(), t.ElementType, t.Width, t.Height)
			}
			for _, key := range project.PresetKeys() {
				t, _ := project.Preset(key)
				fmt.Fprintf(writer, "%s\t%s\t%s\t%gx%g\tpreset\n", t.Name, key, t.ElementType, t.Width, t.Height)
			}
			return writer.Flush()
		},
	}
}

func newTemplateSaveCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "save <project-file> <element-index> <name>",
		Short: "Save an element as a named template",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}

			index, err := strconv.Atoi(args[1])
			if err != nil {
				return newCommandError("save template", fmt.Sprintf("parsing element index %q", args[1]), err, "Pass the element's index as shown by 'cssforge css'.")
			}

			sess, absPath, err := app.openProject("save template", args[0], &clipboard.Memory{})
			if err != nil {
				return err
			}
			if !sess.Select(index) {
				return newCommandError("save template", fmt.Sprintf("selecting element %d", index),
					fmt.Errorf("project has %d element(s)", sess.Store().Len()), "Pass an index between 0 and the element count minus one.")
			}
			if !sess.SaveTemplate(args[2]) {
				return newCommandError("save template", "storing template", errors.New("template name is empty"), "Pass a non-empty template name.")
			}
			if err := saveProject("save template", sess, absPath); err != nil {
				return err
			}

			app.commandLogger("template").Info("template saved", "path", absPath, "name", args[2], "index", index)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved template '%s' from element %d\n", args[2], index)
			return nil
		},
	}
}

func newTemplateApplyCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <project-file> <name>",
		Short: "Add an element from a template or preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			sess, absPath, err := app.openProject("apply template", args[0], &clipboard.Memory{})
			if err != nil {
				return err
			}

			e, ok := sess.ApplyTemplate(args[1])
			if !ok {
				e, ok = sess.ApplyPreset(args[1])
			}
			if !ok {
				return newCommandError("apply template", fmt.Sprintf("finding template %q", args[1]), errors.New("no such template or preset"),
					"Run 'cssforge template list' to see available names.")
			}
			if err := saveProject("apply template", sess, absPath); err != nil {
				return err
			}

			index := sess.Store().IndexOf(e)
			app.commandLogger("template").Info("template applied", "path", absPath, "name", args[1], "index", index)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s at index %d from '%s'\n", e.Type(), index, args[1])
			return nil
		},
	}
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
)

type newOptions struct {
	name  string
	force bool
}

func newNewCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &newOptions{}

	cmd := &cobra.Command{
		Use:   "new <project-file>",
		Short: "Create an empty project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			return runNew(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Project name (defaults to filename)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func runNew(cmd *cobra.Command, app *appContext, path string, opts *newOptions) error {
	log := app.commandLogger("new")

	absPath, err := expandPath(path)
	if err != nil {
		return newCommandError("create project", fmt.Sprintf("resolving path %q", path), err, "Pass a file path such as layout.json.")
	}

	if !opts.force {
		if _, err := os.Stat(absPath); err == nil {
			return newCommandError("create project", fmt.Sprintf("writing %s", absPath), errors.New("file already exists"),
				"Pass --force to overwrite it, or choose another path.")
		}
	}

	name := opts.name
	if name == "" {
		name = deriveNameFromPath(absPath)
	}

	sess := app.newSession(&clipboard.Memory{})
	sess.NewProject(name)
	if err := saveProject("create project", sess, absPath); err != nil {
		return err
	}

	log.Info("project created", "path", absPath, "name", name)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Created project '%s'\n", name)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Path: %s\n", absPath)
	return nil
}

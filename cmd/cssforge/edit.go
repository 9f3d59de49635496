package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
	"github.com/alexisbeaulieu97/cssforge/internal/project"
	"github.com/alexisbeaulieu97/cssforge/internal/session"
	"github.com/alexisbeaulieu97/cssforge/internal/tui"
)

var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newEditCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <project-file>",
		Short: "Open a project in the interactive terminal editor",
		Long:  "Open a project in the interactive terminal editor. The file is created on first save when it does not exist.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return newCommandError("start editor", "checking terminal", errors.New("stdin and stdout must be a terminal"),
					"Run the editor from an interactive shell, or use the css/apply commands in scripts.")
			}
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			return runEdit(app, args[0])
		},
	}
}

func runEdit(app *appContext, path string) error {
	log := app.commandLogger("edit")
	clip := clipboard.Default()

	sess, absPath, err := openOrCreate(app, path, clip)
	if err != nil {
		return err
	}

	model := tui.NewModel(sess, tui.Options{
		Title: sess.ProjectName(),
		Save:  func(p *project.Project) error { return p.Save(absPath) },
	})
	defer model.Close()

	log.Info("launching editor", "path", absPath, "elements", sess.Store().Len())
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return newCommandError("start editor", "running terminal UI", err, "Check that your terminal supports full-screen applications.")
	}
	log.Info("editor closed", "path", absPath)
	return nil
}

func openOrCreate(app *appContext, path string, clip clipboard.Clipboard) (*session.Session, string, error) {
	absPath, err := expandPath(path)
	if err != nil {
		return nil, "", newCommandError("start editor", fmt.Sprintf("resolving path %q", path), err, "Pass a file path such as layout.json.")
	}
	if _, err := os.Stat(absPath); errors.Is(err, fs.ErrNotExist) {
		sess := app.newSession(clip)
		sess.NewProject(deriveNameFromPath(absPath))
		return sess, absPath, nil
	}
	return app.openProject("start editor", absPath, clip)
}

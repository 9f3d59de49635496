package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
	"github.com/alexisbeaulieu97/cssforge/internal/cssgen"
)

type addOptions struct {
	x, y          float64
	width, height float64
	text          string
	styles        []string
}

func newAddCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <project-file> [element-type]",
		Short: "Add an element to a project",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			kind := "div"
			if len(args) == 2 {
				kind = args[1]
			}
			return runAdd(cmd, app, args[0], kind, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.x, "x", canvas.DefaultX, "Left position in pixels")
	cmd.Flags().Float64Var(&opts.y, "y", canvas.DefaultY, "Top position in pixels")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "Width in pixels (defaults to editor.default_width)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "Height in pixels (defaults to editor.default_height)")
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Element text")
	cmd.Flags().StringArrayVarP(&opts.styles, "style", "s", nil, "Declaration as name=value or name:value (repeatable)")

	return cmd
}

func runAdd(cmd *cobra.Command, app *appContext, path, kind string, opts *addOptions) error {
	log := app.commandLogger("add")

	declarations, err := parseDeclarations(opts.styles)
	if err != nil {
		return newCommandError("add element", "parsing --style", err, "Write declarations as --style color=red.")
	}

	sess, absPath, err := app.openProject("add element", path, &clipboard.Memory{})
	if err != nil {
		return err
	}

	width, height := opts.width, opts.height
	if width <= 0 {
		width = app.cfg.Editor.DefaultWidth
	}
	if height <= 0 {
		height = app.cfg.Editor.DefaultHeight
	}

	e := sess.AddElementAt(kind, opts.x, opts.y, width, height)
	for _, d := range declarations {
		sess.SetStyle(d[0], d[1])
	}
	if opts.text != "" {
		sess.SetText(opts.text)
	}

	if err := saveProject("add element", sess, absPath); err != nil {
		return err
	}

	index := sess.Store().IndexOf(e)
	log.Info("element added", "path", absPath, "type", e.Type(), "index", index)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s at index %d\n\n%s", e.Type(), index, cssgen.Rule(e, index))
	return nil
}

// parseDeclarations splits name=value or name:value pairs.
func parseDeclarations(raw []string) ([][2]string, error) {
	out := make([][2]string, 0, len(raw))
	for _, r := range raw {
		sep := strings.IndexAny(r, "=:")
		if sep <= 0 {
			return nil, fmt.Errorf("invalid declaration %q", r)
		}
		name := strings.TrimSpace(r[:sep])
		value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(r[sep+1:]), ";"))
		if name == "" || value == "" {
			return nil, errors.New("declarations need a name and a value")
		}
		out = append(out, [2]string{name, value})
	}
	return out, nil
}

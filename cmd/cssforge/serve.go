package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
	"github.com/alexisbeaulieu97/cssforge/internal/project"
	"github.com/alexisbeaulieu97/cssforge/internal/server"
)

type serveOptions struct {
	addr     string
	readOnly bool
}

func newServeCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve <project-file>",
		Short: "Serve a live preview of a project over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (defaults to server.addr)")
	cmd.Flags().BoolVar(&opts.readOnly, "read-only", false, "Keep API changes in memory instead of saving them")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, app *appContext, path string, opts *serveOptions) error {
	sess, absPath, err := app.openProject("serve preview", path, &clipboard.Memory{})
	if err != nil {
		return err
	}

	addr := opts.addr
	if addr == "" {
		addr = app.cfg.Server.Addr
	}

	srvOpts := server.Options{Logger: app.log}
	if !opts.readOnly {
		srvOpts.Save = func(p *project.Project) error { return p.Save(absPath) }
	}
	srv := server.New(sess, srvOpts)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s (Ctrl+C to stop)\n", absPath, addr)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return newCommandError("serve preview", fmt.Sprintf("listening on %s", addr), err,
			"Choose a free address with --addr or server.addr in the configuration.")
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
	"github.com/alexisbeaulieu97/cssforge/internal/config"
	"github.com/alexisbeaulieu97/cssforge/internal/logger"
	"github.com/alexisbeaulieu97/cssforge/internal/project"
	"github.com/alexisbeaulieu97/cssforge/internal/session"
)

// appContext bundles what every command needs: the loaded configuration
// and the root logger.
type appContext struct {
	cfg *config.Config
	log *logger.Logger
}

func loadApp(cmd *cobra.Command, flags *rootFlags) (*appContext, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, newCommandError("load configuration", fmt.Sprintf("reading %q", flags.configPath), err,
			"Fix the configuration file or pass --config with a valid path.")
	}

	level := cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: cfg.Log.HumanReadable, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return nil, newCommandError("load configuration", "creating logger", err, "Use one of debug, info, warn or error for log.level.")
	}

	return &appContext{cfg: cfg, log: log}, nil
}

func (a *appContext) commandLogger(name string) *logger.Logger {
	return a.log.Component("command." + name)
}

func (a *appContext) newSession(clip clipboard.Clipboard) *session.Session {
	return session.New(session.Options{Config: a.cfg, Logger: a.log, Clipboard: clip})
}

// openProject loads the project at path into a fresh session.
func (a *appContext) openProject(operation, path string, clip clipboard.Clipboard) (*session.Session, string, error) {
	absPath, err := validateAndNormalizePath(path)
	if err != nil {
		return nil, "", newCommandError(operation, fmt.Sprintf("resolving project path %q", path), err,
			"Check that the file exists, or create it with 'cssforge new'.")
	}

	p, err := project.Load(absPath)
	if err != nil {
		return nil, "", newCommandError(operation, "loading project", err, "Fix the project file or restore it from a backup.")
	}

	sess := a.newSession(clip)
	if err := sess.Open(p); err != nil {
		return nil, "", newCommandError(operation, "restoring project state", err,
			"The history in the project file is inconsistent; restore it from a backup.")
	}
	return sess, absPath, nil
}

func saveProject(operation string, sess *session.Session, path string) error {
	if err := sess.Project().Save(path); err != nil {
		return newCommandError(operation, "saving project", err, "Check disk space and file permissions, then retry.")
	}
	return nil
}

func expandPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("path cannot be empty")
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	return filepath.Abs(path)
}

func validateAndNormalizePath(path string) (string, error) {
	absPath, err := expandPath(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory, not a file", absPath)
	}

	return absPath, nil
}

func deriveNameFromPath(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return strings.TrimSpace(base)
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	absPath, err := validateAndNormalizePath(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(absPath)
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path, data string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), data)
		return err
	}
	absPath, err := expandPath(path)
	if err != nil {
		return err
	}
	return os.WriteFile(absPath, []byte(data), 0o644)
}

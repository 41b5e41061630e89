// pattern: Imperative Shell

package viewer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"gt/internal/logging"
)

// Runner executes an external program with the given output streams.
type Runner interface {
	Run(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error
	Start(name string, args ...string) error
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run waits for the program to finish.
func (ExecRunner) Run(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Start launches the program without waiting for it, as a desktop opener would.
func (ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Viewer prints directory trees and opens reports with external tools.
type Viewer struct {
	TreeCommand string
	OpenCommand string
	Runner      Runner
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *logging.ScopedLogger
}

// New creates a Viewer using the given commands and the process's streams.
func New(treeCommand, openCommand string, logger *logging.ScopedLogger) *Viewer {
	return &Viewer{
		TreeCommand: treeCommand,
		OpenCommand: openCommand,
		Runner:      ExecRunner{},
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Logger:      logger,
	}
}

// Tree prints rel, relative to base, with the tree command so the listing is
// headed by the short path. With dirsOnly only directories are listed, which
// for a source set root is the package hierarchy.
func (v *Viewer) Tree(ctx context.Context, base, rel string, dirsOnly bool) error {
	args := []string{"--noreport"}
	if dirsOnly {
		args = append(args, "-d")
	}
	args = append(args, rel)

	v.Logger.Debug("printing tree", "command", v.TreeCommand, "dir", base, "path", rel)
	if err := v.Runner.Run(ctx, base, v.Stdout, v.Stderr, v.TreeCommand, args...); err != nil {
		return fmt.Errorf("%s %s: %w", v.TreeCommand, rel, err)
	}
	return nil
}

// Open hands path to the desktop opener and returns immediately.
func (v *Viewer) Open(path string) error {
	v.Logger.Debug("opening report", "command", v.OpenCommand, "path", path)
	if err := v.Runner.Start(v.OpenCommand, path); err != nil {
		return fmt.Errorf("%s %s: %w", v.OpenCommand, path, err)
	}
	return nil
}

// pattern: Imperative Shell

package generator

import (
	"context"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// Result is the outcome of generating one subproject.
type Result struct {
	Name string
	Err  error
}

// Generator creates new subproject trees under a build root.
type Generator interface {
	// Generate creates <root>/<name> for each name. Per-subproject failures
	// are reported in the results. On cancellation the results cover the
	// subprojects finished so far; any other returned error means nothing
	// was generated.
	Generate(ctx context.Context, root string, names []string) ([]Result, error)
	// Describe names the kind of subproject created, for outcome messages.
	Describe(name string) string
}

// Runner executes an external program in a working directory.
type Runner interface {
	Run(ctx context.Context, dir string, stdin io.Reader, stdout, stderr io.Writer, name string, args ...string) error
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, stdin io.Reader, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// removeGenerated deletes files and directories a standalone template ships
// with that only make sense at a build root.
func removeGenerated(dir string, names ...string) error {
	for _, name := range names {
		if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// copyFile copies src to dst, creating dst's parent directories.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// copyTree copies the directory src to dst, which must not exist yet.
func copyTree(src, dst string) error {
	if exists(dst) {
		return &fs.PathError{Op: "copy", Path: dst, Err: fs.ErrExist}
	}
	return os.CopyFS(dst, os.DirFS(src))
}

// pattern: Imperative Shell

package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"gt/internal/logging"
	"gt/internal/project"
)

// ErrNoTemplate is returned when gradle init produced no subproject to copy.
var ErrNoTemplate = errors.New("gradle init did not produce a subproject")

// GradleInit generates subprojects by running gradle init once in a scratch
// build and copying its application subproject under the root for each name.
type GradleInit struct {
	Type    string
	Gradle  string
	TempDir string
	Runner  Runner
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *logging.ScopedLogger
}

// NewGradleInit creates a generator for the given gradle init project type.
func NewGradleInit(projectType string, logger *logging.ScopedLogger) *GradleInit {
	return &GradleInit{
		Type:    projectType,
		Gradle:  "gradle",
		TempDir: os.TempDir(),
		Runner:  ExecRunner{},
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Logger:  logger,
	}
}

func (g *GradleInit) Describe(name string) string {
	return fmt.Sprintf("subproject '%s' of type '%s'", name, g.Type)
}

func (g *GradleInit) Generate(ctx context.Context, root string, names []string) ([]Result, error) {
	if len(names) == 0 {
		return nil, nil
	}

	scratch := filepath.Join(g.TempDir, "gt-gradle-init-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch build: %w", err)
	}
	defer os.RemoveAll(scratch)

	rootName := filepath.Base(root)
	args := []string{
		"init",
		"--no-split-project",
		"--package", rootName,
		"--project-name", rootName,
		"--type", g.Type,
	}
	g.Logger.Info("running gradle init", "dir", scratch, "type", g.Type)
	if err := g.Runner.Run(ctx, scratch, g.Stdin, g.Stdout, g.Stderr, g.Gradle, args...); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("gradle init: %w", err)
	}

	template, err := findTemplate(scratch)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		dest := filepath.Join(root, name)
		err := copyTree(template, dest)
		if err != nil {
			g.Logger.Error("failed to copy subproject", "name", name, "error", err)
			err = fmt.Errorf("copy %s: %w", dest, err)
		} else {
			g.Logger.Info("created subproject", "name", name, "path", dest)
		}
		results = append(results, Result{Name: name, Err: err})
	}

	catalog := filepath.Join("gradle", "libs.versions.toml")
	if src := filepath.Join(scratch, catalog); exists(src) && !exists(filepath.Join(root, catalog)) {
		if err := copyFile(src, filepath.Join(root, catalog)); err != nil {
			g.Logger.Warn("failed to copy version catalog", "error", err)
		}
	}
	return results, nil
}

// findTemplate returns the first child of a generated build that has a build script.
func findTemplate(scratch string) (string, error) {
	entries, err := os.ReadDir(scratch)
	if err != nil {
		return "", fmt.Errorf("failed to read scratch build: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(scratch, entry.Name())
		if project.HasBuildScript(dir) {
			return dir, nil
		}
	}
	return "", ErrNoTemplate
}

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gt/internal/config"
	"gt/internal/generator"
	"gt/internal/logging"
	"gt/internal/project"
	"gt/internal/report"
	"gt/internal/viewer"
)

// testEnv runs commands against a build rooted at <tmp>/demo.
type testEnv struct {
	*Env
	t      *testing.T
	root   string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	runner *fakeRunner
	gen    *fakeGenerator
	logs   *logging.TestLogManager
}

func newTestEnv(t *testing.T, paths ...string) *testEnv {
	t.Helper()
	home := t.TempDir()
	root := filepath.Join(home, "demo")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	writeTree(t, root, paths...)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	runner := &fakeRunner{}
	gen := &fakeGenerator{}
	logs := logging.NewTestLogManager()
	cfg := config.DefaultConfig()

	env := &Env{
		Config:  cfg,
		Logs:    logs,
		Out:     report.New(stdout, cfg.Theme, true),
		Stdout:  stdout,
		Stderr:  stderr,
		Stdin:   strings.NewReader(""),
		DataDir: t.TempDir(),
		Discover: func() (*project.Registry, error) {
			return project.Discover(project.Options{Dir: root, Home: home})
		},
		Viewer: &viewer.Viewer{
			TreeCommand: "tree",
			OpenCommand: "xdg-open",
			Runner:      runner,
			Stdout:      stdout,
			Stderr:      stderr,
			Logger:      logging.NopLogger(),
		},
	}
	env.GradleInit = func(projectType string) generator.Generator {
		gen.kind = projectType
		return gen
	}
	env.SpringInitializr = func(params map[string]string, notify func(string)) generator.Generator {
		gen.kind = "springboot"
		gen.params = params
		return gen
	}

	return &testEnv{Env: env, t: t, root: root, stdout: stdout, stderr: stderr, runner: runner, gen: gen, logs: logs}
}

func (e *testEnv) run(args ...string) int {
	e.t.Helper()
	return BuildApp("test", e.Env).Execute(context.Background(), args)
}

func (e *testEnv) path(rel string) string {
	return filepath.Join(e.root, filepath.FromSlash(rel))
}

func (e *testEnv) exists(rel string) bool {
	_, err := os.Stat(e.path(rel))
	return err == nil
}

func (e *testEnv) write(rel, content string) {
	e.t.Helper()
	full := e.path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		e.t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		e.t.Fatal(err)
	}
}

func (e *testEnv) read(rel string) string {
	e.t.Helper()
	data, err := os.ReadFile(e.path(rel))
	if err != nil {
		e.t.Fatal(err)
	}
	return string(data)
}

// writeTree creates empty files, or directories for paths ending in "/".
func writeTree(t *testing.T, base string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(base, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

type fakeRunner struct {
	runs   [][]string
	dirs   []string
	starts [][]string
}

func (r *fakeRunner) Run(_ context.Context, dir string, _, _ io.Writer, name string, args ...string) error {
	r.dirs = append(r.dirs, dir)
	r.runs = append(r.runs, append([]string{name}, args...))
	return nil
}

func (r *fakeRunner) Start(name string, args ...string) error {
	r.starts = append(r.starts, append([]string{name}, args...))
	return nil
}

// fakeGenerator creates a bare subproject directory for each name.
type fakeGenerator struct {
	kind   string
	params map[string]string
	names  []string
	failOn string
	err    error
}

func (g *fakeGenerator) Generate(ctx context.Context, root string, names []string) ([]generator.Result, error) {
	g.names = append(g.names, names...)
	if g.err != nil {
		return nil, g.err
	}
	var results []generator.Result
	for _, name := range names {
		if name == g.failOn {
			results = append(results, generator.Result{Name: name, Err: os.ErrPermission})
			continue
		}
		dir := filepath.Join(root, name)
		err := os.MkdirAll(dir, 0755)
		if err == nil {
			err = os.WriteFile(filepath.Join(dir, "build.gradle.kts"), nil, 0644)
		}
		results = append(results, generator.Result{Name: name, Err: err})
	}
	return results, nil
}

func (g *fakeGenerator) Describe(name string) string {
	return "subproject '" + name + "'"
}

// lines splits output into non-empty lines.
func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

package viewer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gt/internal/logging"
)

type recordingRunner struct {
	dirs   []string
	runs   [][]string
	starts [][]string
	err    error
}

func (r *recordingRunner) Run(_ context.Context, dir string, stdout, _ io.Writer, name string, args ...string) error {
	r.dirs = append(r.dirs, dir)
	r.runs = append(r.runs, append([]string{name}, args...))
	_, _ = io.WriteString(stdout, "tree output\n")
	return r.err
}

func (r *recordingRunner) Start(name string, args ...string) error {
	r.starts = append(r.starts, append([]string{name}, args...))
	return r.err
}

func TestViewer_Tree(t *testing.T) {
	runner := &recordingRunner{}
	var out bytes.Buffer
	v := &Viewer{TreeCommand: "tree", Runner: runner, Stdout: &out, Stderr: io.Discard, Logger: logging.NopLogger()}

	if err := v.Tree(context.Background(), "/r/app/src", "main/java", true); err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if err := v.Tree(context.Background(), "/r/app/src", "test", false); err != nil {
		t.Fatalf("Tree() error = %v", err)
	}

	want := [][]string{
		{"tree", "--noreport", "-d", "main/java"},
		{"tree", "--noreport", "test"},
	}
	if diff := cmp.Diff(want, runner.runs); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/r/app/src", "/r/app/src"}, runner.dirs); diff != "" {
		t.Errorf("working dirs mismatch (-want +got):\n%s", diff)
	}
	if out.String() != "tree output\ntree output\n" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestViewer_Open(t *testing.T) {
	runner := &recordingRunner{}
	v := &Viewer{OpenCommand: "xdg-open", Runner: runner, Logger: logging.NopLogger()}

	if err := v.Open("/r/app/build/reports/tests/test/index.html"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	want := [][]string{{"xdg-open", "/r/app/build/reports/tests/test/index.html"}}
	if diff := cmp.Diff(want, runner.starts); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestViewer_ErrorsAreWrapped(t *testing.T) {
	boom := errors.New("not installed")
	v := &Viewer{TreeCommand: "tree", OpenCommand: "open", Runner: &recordingRunner{err: boom}, Stdout: io.Discard, Stderr: io.Discard, Logger: logging.NopLogger()}

	if err := v.Tree(context.Background(), "/x", "main", false); !errors.Is(err, boom) {
		t.Errorf("Tree() error = %v, want wrapped boom", err)
	}
	if err := v.Open("/x"); !errors.Is(err, boom) {
		t.Errorf("Open() error = %v, want wrapped boom", err)
	}
}

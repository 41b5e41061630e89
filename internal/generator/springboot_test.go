package generator

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gt/internal/logging"
)

type tarEntry struct {
	name string
	body string
	dir  bool
}

func tarGz(t *testing.T, entries []tarEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0o644, Size: int64(len(e.body)), Typeflag: tar.TypeReg}
		if e.dir {
			hdr = &tar.Header{Name: e.name, Mode: 0o755, Typeflag: tar.TypeDir}
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if !e.dir {
			if _, err := tw.Write([]byte(e.body)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func starterServer(t *testing.T, queries *[]url.Values) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		*queries = append(*queries, q)
		base := q.Get("baseDir")
		w.Header().Set("Content-Type", "application/x-compress")
		_, _ = w.Write(tarGz(t, []tarEntry{
			{name: base + "/", dir: true},
			{name: base + "/build.gradle.kts", body: "plugins { java }\n"},
			{name: base + "/settings.gradle.kts", body: "rootProject.name = \"x\"\n"},
			{name: base + "/gradlew", body: "#!/bin/sh\n"},
			{name: base + "/gradle/wrapper/gradle-wrapper.properties", body: "\n"},
			{name: base + "/src/main/java/" + base + "/" + q.Get("applicationName") + ".java", body: "class A {}\n"},
		}))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestApplicationName(t *testing.T) {
	tests := map[string]string{
		"demo":      "DemoApplication",
		"myService": "MyServiceApplication",
		"api2":      "Api2Application",
	}
	for in, want := range tests {
		if got := ApplicationName(in); got != want {
			t.Errorf("ApplicationName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		got, notices := Params("demo", "gradle-project-kotlin", nil)
		want := url.Values{
			"applicationName": {"DemoApplication"},
			"artifactId":      {"demo"},
			"baseDir":         {"demo"},
			"name":            {"demo"},
			"packageName":     {"demo"},
			"type":            {"gradle-project-kotlin"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Params mismatch (-want +got):\n%s", diff)
		}
		if len(notices) != 0 {
			t.Errorf("notices = %v", notices)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		got, notices := Params("demo", "gradle-project-kotlin", map[string]string{
			"packageName":  "com.example.demo",
			"dependencies": "web",
			"type":         "gradle-project",
		})
		if got.Get("packageName") != "com.example.demo" || got.Get("dependencies") != "web" || got.Get("type") != "gradle-project" {
			t.Errorf("overrides not applied: %v", got)
		}
		if len(notices) != 0 {
			t.Errorf("notices = %v", notices)
		}
	})

	t.Run("ignored", func(t *testing.T) {
		got, notices := Params("demo", "gradle-project-kotlin", map[string]string{
			"baseDir": "elsewhere",
			"type":    "maven-project",
		})
		if got.Get("baseDir") != "demo" || got.Get("type") != "gradle-project-kotlin" {
			t.Errorf("ignored parameters leaked: %v", got)
		}
		if len(notices) != 2 {
			t.Errorf("got %d notices, want 2: %v", len(notices), notices)
		}
	})
}

func TestSpringInitializr_Generate(t *testing.T) {
	var queries []url.Values
	srv := starterServer(t, &queries)
	root := t.TempDir()

	var notices []string
	s := NewSpringInitializr(srv.URL+"/starter.tgz", "gradle-project-kotlin", map[string]string{"baseDir": "x"}, logging.NopLogger())
	s.Client = srv.Client()
	s.Notify = func(msg string) { notices = append(notices, msg) }

	results, err := s.Generate(context.Background(), root, []string{"demo"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results = %+v", results)
	}
	if len(queries) != 1 || queries[0].Get("baseDir") != "demo" {
		t.Errorf("queries = %v", queries)
	}
	if len(notices) != 1 {
		t.Errorf("notices = %v", notices)
	}

	dir := filepath.Join(root, "demo")
	for _, rel := range []string{"build.gradle.kts", "src/main/java/demo/DemoApplication.java"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("%s missing: %v", rel, err)
		}
	}
	for _, rel := range []string{"settings.gradle.kts", "gradlew", "gradle"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); !os.IsNotExist(err) {
			t.Errorf("%s should have been removed", rel)
		}
	}
}

func TestSpringInitializr_Failures(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad dependency", http.StatusBadRequest)
		}))
		defer srv.Close()

		root := t.TempDir()
		s := NewSpringInitializr(srv.URL, "gradle-project", nil, logging.NopLogger())
		results, err := s.Generate(context.Background(), root, []string{"a", "b"})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		for _, res := range results {
			if res.Err == nil {
				t.Errorf("%s: expected error", res.Name)
			}
		}
		if _, err := os.Stat(filepath.Join(root, "a")); !os.IsNotExist(err) {
			t.Errorf("failed subproject left behind")
		}
	})

	t.Run("unsafe archive", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(tarGz(t, []tarEntry{
				{name: "demo/build.gradle", body: "\n"},
				{name: "../escape.txt", body: "x"},
			}))
		}))
		defer srv.Close()

		root := t.TempDir()
		s := NewSpringInitializr(srv.URL, "gradle-project", nil, logging.NopLogger())
		results, _ := s.Generate(context.Background(), root, []string{"demo"})
		if len(results) != 1 || !errors.Is(results[0].Err, errUnsafePath) {
			t.Fatalf("results = %+v, want errUnsafePath", results)
		}
		if _, err := os.Stat(filepath.Join(root, "demo")); !os.IsNotExist(err) {
			t.Errorf("partial subproject left behind")
		}
	})

	t.Run("existing directory", func(t *testing.T) {
		root := t.TempDir()
		if err := os.Mkdir(filepath.Join(root, "demo"), 0o755); err != nil {
			t.Fatal(err)
		}
		s := NewSpringInitializr("http://127.0.0.1:0", "gradle-project", nil, logging.NopLogger())
		results, _ := s.Generate(context.Background(), root, []string{"demo"})
		if len(results) != 1 || !errors.Is(results[0].Err, os.ErrExist) {
			t.Errorf("results = %+v, want ErrExist", results)
		}
	})
}

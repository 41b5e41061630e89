package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gt/internal/naming"
	"gt/internal/project"
)

func testProject(t *testing.T) project.Project {
	t.Helper()
	dir := t.TempDir()
	return project.Project{Name: "app", Path: dir}
}

func TestExtension(t *testing.T) {
	tests := map[Language]string{Java: "java", Kotlin: "kt", Cpp: "cpp"}
	for lang, want := range tests {
		got, err := Extension(lang)
		if err != nil || got != want {
			t.Errorf("Extension(%s) = %q, %v; want %q", lang, got, err, want)
		}
	}

	_, err := Extension("scala")
	var unsupported *UnsupportedLanguageError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedLanguageError, got %v", err)
	}
	if unsupported.Language != "scala" {
		t.Errorf("Language = %q", unsupported.Language)
	}
}

func TestNewFile_Paths(t *testing.T) {
	p := project.Project{Name: "app", Path: filepath.FromSlash("/work/app")}

	f, err := NewFile(Java, "com.example.Main", p, Main)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	want := filepath.FromSlash("/work/app/src/main/java/com/example/Main.java")
	if f.Path() != want {
		t.Errorf("Path() = %q, want %q", f.Path(), want)
	}
	if f.Package == nil || f.Package.Name != "com.example" {
		t.Errorf("Package = %+v, want com.example", f.Package)
	}
	if f.QualifiedName() != "com.example.Main" {
		t.Errorf("QualifiedName() = %q", f.QualifiedName())
	}

	f, err = NewFile(Kotlin, "Util", p, Test)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	want = filepath.FromSlash("/work/app/src/test/kotlin/Util.kt")
	if f.Path() != want {
		t.Errorf("default package Path() = %q, want %q", f.Path(), want)
	}
	if f.Package != nil {
		t.Error("default package should have nil Package")
	}
}

func TestNewFile_RejectsInvalidNames(t *testing.T) {
	p := project.Project{Name: "app", Path: "/work/app"}
	for _, name := range []string{"2Foo", "com.example.", "com-x.Foo", "a/b"} {
		_, err := NewFile(Java, name, p, Main)
		var invalid *naming.InvalidNameError
		if !errors.As(err, &invalid) {
			t.Errorf("NewFile(%q) error = %v, want *InvalidNameError", name, err)
		}
	}

	_, err := NewFile("scala", "Foo", p, Main)
	var unsupported *UnsupportedLanguageError
	if !errors.As(err, &unsupported) {
		t.Errorf("unsupported language error = %v", err)
	}
}

func TestNewPackage_Path(t *testing.T) {
	p := project.Project{Name: "app", Path: filepath.FromSlash("/work/app")}
	pkg, err := NewPackage(Java, "com.example", p, Test)
	if err != nil {
		t.Fatalf("NewPackage() error = %v", err)
	}
	want := filepath.FromSlash("/work/app/src/test/java/com/example")
	if pkg.Path() != want {
		t.Errorf("Path() = %q, want %q", pkg.Path(), want)
	}
	if pkg.Describe() != "package 'com.example' in the test source tree of 'app'" {
		t.Errorf("Describe() = %q", pkg.Describe())
	}

	if _, err := NewPackage(Java, "", p, Main); err == nil {
		t.Error("empty package name should be rejected")
	}
}

func TestPathsAreInjective(t *testing.T) {
	a := project.Project{Name: "a", Path: filepath.FromSlash("/r/a")}
	b := project.Project{Name: "b", Path: filepath.FromSlash("/r/b")}

	seen := make(map[string]string)
	for _, p := range []project.Project{a, b} {
		for _, set := range []Set{Main, Test} {
			for _, lang := range []Language{Java, Kotlin, Cpp} {
				for _, q := range []string{"Foo", "x.Foo", "x.y.Foo", "xy.Foo", "Bar"} {
					f, err := NewFile(lang, q, p, set)
					if err != nil {
						t.Fatal(err)
					}
					key := p.Name + "|" + string(set) + "|" + string(lang) + "|" + q
					if prev, dup := seen[f.Path()]; dup {
						t.Fatalf("path %q produced by %s and %s", f.Path(), prev, key)
					}
					seen[f.Path()] = key
				}
			}
		}
	}
}

func TestFile_CreateIsIdempotent(t *testing.T) {
	p := testProject(t)
	f, err := NewFile(Java, "com.example.Main", p, Main)
	if err != nil {
		t.Fatal(err)
	}

	status, err := f.Create()
	if err != nil || status != Created {
		t.Fatalf("first Create() = %v, %v; want created", status, err)
	}
	if !f.Exists() {
		t.Fatal("file should exist after Create()")
	}

	// Content written between calls must survive the second Create
	if err := os.WriteFile(f.Path(), []byte("class Main {}"), 0644); err != nil {
		t.Fatal(err)
	}
	status, err = f.Create()
	if err != nil || status != Skipped {
		t.Fatalf("second Create() = %v, %v; want skipped", status, err)
	}
	data, _ := os.ReadFile(f.Path())
	if string(data) != "class Main {}" {
		t.Error("Create() must not overwrite an existing file")
	}

	entries, err := os.ReadDir(f.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one file, found %d", len(entries))
	}
}

func TestFile_RemoveCreateRemoveLeavesNothing(t *testing.T) {
	p := testProject(t)
	f, err := NewFile(Kotlin, "pkg.Thing", p, Test)
	if err != nil {
		t.Fatal(err)
	}

	if status, _ := f.Remove(); status != Skipped {
		t.Errorf("Remove() on missing file = %v, want skipped", status)
	}
	if status, _ := f.Create(); status != Created {
		t.Errorf("Create() = %v, want created", status)
	}
	if status, _ := f.Remove(); status != Removed {
		t.Errorf("Remove() = %v, want removed", status)
	}
	if _, err := os.Stat(f.Path()); !os.IsNotExist(err) {
		t.Error("file should be gone")
	}
}

func TestPackage_CreateAndRecursiveRemove(t *testing.T) {
	p := testProject(t)
	pkg, err := NewPackage(Java, "com.example", p, Main)
	if err != nil {
		t.Fatal(err)
	}

	if status, err := pkg.Create(); err != nil || status != Created {
		t.Fatalf("Create() = %v, %v", status, err)
	}
	if status, _ := pkg.Create(); status != Skipped {
		t.Errorf("second Create() = %v, want skipped", status)
	}

	// Unrelated nested content is removed along with the package
	nested := filepath.Join(pkg.Path(), "inner", "notes.txt")
	if err := os.MkdirAll(filepath.Dir(nested), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(nested, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if status, err := pkg.Remove(); err != nil || status != Removed {
		t.Fatalf("Remove() = %v, %v", status, err)
	}
	if pkg.Exists() {
		t.Error("package directory should be gone")
	}
	if _, err := os.Stat(filepath.Join(p.Path, "src", "main", "java", "com")); err != nil {
		t.Error("parent package directory should remain")
	}
	if status, _ := pkg.Remove(); status != Skipped {
		t.Errorf("Remove() on missing package = %v, want skipped", status)
	}
}

func TestCreateAll_MixedNewAndExisting(t *testing.T) {
	p := testProject(t)
	fileA, _ := NewFile(Java, "A", p, Main)
	fileB, _ := NewFile(Java, "B", p, Main)
	if _, err := fileB.Create(); err != nil {
		t.Fatal(err)
	}

	results := CreateAll([]*File{fileA, fileB})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Entity != Entity(fileA) || results[0].Status != Created {
		t.Errorf("results[0] = %+v, want fileA created", results[0])
	}
	if results[1].Entity != Entity(fileB) || results[1].Status != Skipped || results[1].Err != nil {
		t.Errorf("results[1] = %+v, want fileB skipped without error", results[1])
	}
	if AnyFailed(results) {
		t.Error("skip must not count as failure")
	}
}

func TestBatch_FailureDoesNotAbortRemaining(t *testing.T) {
	p := testProject(t)

	// A regular file where the package directory should be blocks creation
	blocker := filepath.Join(p.Path, "src", "main", "java", "blocked")
	if err := os.MkdirAll(filepath.Dir(blocker), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	bad, _ := NewFile(Java, "blocked.Foo", p, Main)
	good, _ := NewFile(Java, "ok.Bar", p, Main)

	results := CreateAll([]Entity{bad, good})
	if results[0].Status != Failed || results[0].Err == nil {
		t.Errorf("results[0] = %+v, want failed with error", results[0])
	}
	if results[1].Status != Created {
		t.Errorf("results[1] = %+v, want created", results[1])
	}
	if !AnyFailed(results) {
		t.Error("AnyFailed() should be true")
	}

	removed := RemoveAll([]Entity{good, bad})
	if removed[0].Status != Removed || removed[1].Status != Skipped {
		t.Errorf("RemoveAll statuses = %v, %v", removed[0].Status, removed[1].Status)
	}
	if removed[0].Action != Remove {
		t.Error("RemoveAll results should carry the Remove action")
	}
}

// pattern: Imperative Shell

package source

import (
	"fmt"
	"os"
	"path/filepath"

	"gt/internal/naming"
	"gt/internal/project"
)

// Package is a (possibly nested) package directory inside a source set.
//
// Remove deletes the directory recursively and unconditionally: any nested
// content, including files that are not sources, is deleted with it.
type Package struct {
	Name     string // Dotted package name, e.g. com.example.app
	Project  project.Project
	Set      Set
	Language Language
}

// NewPackage validates a dotted package name and builds the entity.
func NewPackage(lang Language, name string, p project.Project, set Set) (*Package, error) {
	if _, err := Extension(lang); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &naming.InvalidNameError{Kind: naming.Package, Reason: "cannot be empty"}
	}
	if err := naming.ValidatePackageName(name); err != nil {
		return nil, err
	}
	return &Package{Name: name, Project: p, Set: set, Language: lang}, nil
}

// Path returns <project>/src/<set>/<language>/<package dirs>.
func (p *Package) Path() string {
	return filepath.Join(setDir(p.Project, p.Set, p.Language), naming.ToPath(p.Name))
}

func (p *Package) Exists() bool {
	info, err := os.Stat(p.Path())
	return err == nil && info.IsDir()
}

// Create makes the package directory and any missing parents.
func (p *Package) Create() (Status, error) {
	if _, err := os.Lstat(p.Path()); err == nil {
		return Skipped, nil
	}
	if err := os.MkdirAll(p.Path(), 0755); err != nil {
		return Failed, fmt.Errorf("creating package %s: %w", p.Name, err)
	}
	return Created, nil
}

// Remove deletes the package directory and everything below it.
func (p *Package) Remove() (Status, error) {
	if !p.Exists() {
		return Skipped, nil
	}
	if err := os.RemoveAll(p.Path()); err != nil {
		return Failed, fmt.Errorf("removing package %s: %w", p.Name, err)
	}
	return Removed, nil
}

func (p *Package) Describe() string {
	return fmt.Sprintf("package '%s' in the %s source tree of '%s'", p.Name, p.Set, p.Project.Name)
}

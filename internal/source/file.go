// pattern: Imperative Shell

package source

import (
	"fmt"
	"os"
	"path/filepath"

	"gt/internal/naming"
	"gt/internal/project"
)

// File is a source file holding one top-level class.
type File struct {
	Name     string          // Simple class name
	Project  project.Project // Owning project
	Set      Set
	Language Language
	Package  *Package // Nil for the default package

	ext string
}

// NewFile builds a source file from a possibly qualified class name. The name
// is validated before any path is computed.
func NewFile(lang Language, qualified string, p project.Project, set Set) (*File, error) {
	ext, err := Extension(lang)
	if err != nil {
		return nil, err
	}

	pkgName, className := naming.Split(qualified)
	if err := naming.ValidateSimpleName(className, naming.Class); err != nil {
		return nil, err
	}

	f := &File{
		Name:     className,
		Project:  p,
		Set:      set,
		Language: lang,
		ext:      ext,
	}
	if pkgName != "" {
		pkg, err := NewPackage(lang, pkgName, p, set)
		if err != nil {
			return nil, err
		}
		f.Package = pkg
	}
	return f, nil
}

// Dir returns the directory that holds the file.
func (f *File) Dir() string {
	if f.Package != nil {
		return f.Package.Path()
	}
	return setDir(f.Project, f.Set, f.Language)
}

// Path returns <project>/src/<set>/<language>/<package dirs>/<Name>.<ext>.
func (f *File) Path() string {
	return filepath.Join(f.Dir(), f.Name+"."+f.ext)
}

// QualifiedName returns the dotted class name.
func (f *File) QualifiedName() string {
	if f.Package == nil {
		return f.Name
	}
	return naming.Join(f.Package.Name, f.Name)
}

func (f *File) Exists() bool {
	info, err := os.Stat(f.Path())
	return err == nil && info.Mode().IsRegular()
}

// Create writes an empty file, creating parent directories as needed.
func (f *File) Create() (Status, error) {
	path := f.Path()
	if _, err := os.Lstat(path); err == nil {
		return Skipped, nil
	}
	if err := os.MkdirAll(f.Dir(), 0755); err != nil {
		return Failed, fmt.Errorf("creating %s: %w", f.Dir(), err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return Skipped, nil
		}
		return Failed, fmt.Errorf("creating %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return Failed, err
	}
	return Created, nil
}

// Remove deletes the file. Empty parent directories are left in place.
func (f *File) Remove() (Status, error) {
	if !f.Exists() {
		return Skipped, nil
	}
	if err := os.Remove(f.Path()); err != nil {
		return Failed, fmt.Errorf("removing %s: %w", f.Path(), err)
	}
	return Removed, nil
}

func (f *File) Describe() string {
	return f.Path()
}

// setDir returns <project>/src/<set>/<language>.
func setDir(p project.Project, set Set, lang Language) string {
	return filepath.Join(p.Path, "src", string(set), string(lang))
}

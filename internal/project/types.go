// pattern: Functional Core

package project

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Project is one buildable unit of the discovered build.
type Project struct {
	Name string // Directory name, used as the lookup key
	Path string // Absolute path to the project directory
}

// Registry holds the result of root discovery and subproject enumeration.
// It is computed once per invocation and never refreshed.
type Registry struct {
	Root          string // Absolute path of the root project
	SettingsFile  string // Path to settings.gradle(.kts), empty if none was found
	SingleProject bool   // No settings file and no subprojects: the root is the only project

	projects []Project
}

// ErrEmptyRegistry is returned by lookups against a multi-project build in
// which neither a subproject nor the root qualified.
var ErrEmptyRegistry = errors.New("no projects found in this build: add a subproject or a src directory to the root project")

// RootNotFoundError reports that no settings file or build script was found
// between the start directory and the search endpoint.
type RootNotFoundError struct {
	Start string
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("not a gradle project: no settings or build script found above %s", e.Start)
}

// UnknownProjectError reports a project name that is not in the registry.
type UnknownProjectError struct {
	Name string
}

func (e *UnknownProjectError) Error() string {
	return fmt.Sprintf("'%s' is not a valid subproject", e.Name)
}

// NewRegistry builds a registry from already-discovered values.
func NewRegistry(root, settingsFile string, single bool, projects []Project) *Registry {
	return &Registry{
		Root:          root,
		SettingsFile:  settingsFile,
		SingleProject: single,
		projects:      projects,
	}
}

// RootName returns the base name of the root directory.
func (r *Registry) RootName() string {
	return filepath.Base(r.Root)
}

// Projects returns the registered projects in discovery order.
func (r *Registry) Projects() []Project {
	out := make([]Project, len(r.projects))
	copy(out, r.projects)
	return out
}

// Names returns the registered project names in discovery order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.projects))
	for _, p := range r.projects {
		names = append(names, p.Name)
	}
	return names
}

// Has reports whether name is a registered project.
func (r *Registry) Has(name string) bool {
	_, ok := r.find(name)
	return ok
}

// Lookup returns the project registered under name.
func (r *Registry) Lookup(name string) (Project, error) {
	if len(r.projects) == 0 {
		return Project{}, ErrEmptyRegistry
	}
	p, ok := r.find(name)
	if !ok {
		return Project{}, &UnknownProjectError{Name: name}
	}
	return p, nil
}

// Resolve picks the target project for a project-scoped command. Single-project
// builds always target the root and consume no argument; otherwise the first
// argument names the project. The remaining arguments are returned.
func (r *Registry) Resolve(args []string) (Project, []string, error) {
	if len(r.projects) == 0 {
		return Project{}, args, ErrEmptyRegistry
	}
	if r.SingleProject {
		return r.projects[0], args, nil
	}
	if len(args) == 0 {
		return Project{}, args, fmt.Errorf("a subproject must be specified")
	}
	p, err := r.Lookup(args[0])
	if err != nil {
		return Project{}, args, err
	}
	return p, args[1:], nil
}

func (r *Registry) find(name string) (Project, bool) {
	for _, p := range r.projects {
		if p.Name == name {
			return p, true
		}
	}
	return Project{}, false
}

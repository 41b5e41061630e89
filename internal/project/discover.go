// pattern: Imperative Shell

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// SettingsFiles mark the root of a multi-project build.
	SettingsFiles = []string{"settings.gradle", "settings.gradle.kts"}
	// BuildScripts mark a buildable project directory.
	BuildScripts = []string{"build.gradle", "build.gradle.kts"}
)

// reservedDirs are build-tooling directories that never hold subprojects.
var reservedDirs = map[string]bool{
	"buildSrc": true,
	"gradle":   true,
}

// Options controls root discovery.
type Options struct {
	Dir     string   // Directory to start the upward walk from
	Home    string   // Home directory; the walk stops before it when Dir is inside it
	Exclude []string // doublestar patterns matched against child directory names
}

// Discover locates the root project above opts.Dir and enumerates its
// subprojects. It returns *RootNotFoundError when no marker file is found.
func Discover(opts Options) (*Registry, error) {
	start, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving start directory: %w", err)
	}
	endpoint := searchEndpoint(start, opts.Home)

	root, settings := walkUp(start, endpoint, SettingsFiles)
	if root == "" {
		root, _ = walkUp(start, endpoint, BuildScripts)
		if root == "" {
			return nil, &RootNotFoundError{Start: start}
		}
	}

	subprojects, err := scanSubprojects(root, opts.Exclude)
	if err != nil {
		return nil, err
	}

	rootProject := Project{Name: filepath.Base(root), Path: root}

	if len(subprojects) == 0 && settings == "" {
		return NewRegistry(root, settings, true, []Project{rootProject}), nil
	}

	// The root joins a multi-project build only when it has its own source set
	if isDir(filepath.Join(root, "src")) {
		subprojects = append(subprojects, rootProject)
	}
	return NewRegistry(root, settings, false, subprojects), nil
}

// searchEndpoint returns the directory the upward walk must stop before:
// home when start lies inside it, otherwise the filesystem root.
func searchEndpoint(start, home string) string {
	if home != "" {
		home = filepath.Clean(home)
		if rel, err := filepath.Rel(home, start); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return home
		}
	}
	return filepath.VolumeName(start) + string(filepath.Separator)
}

// walkUp checks each directory from start upward, excluding endpoint, for any
// of the marker files. It returns the first matching directory and marker path.
func walkUp(start, endpoint string, markers []string) (dir, marker string) {
	for dir = start; dir != endpoint; {
		for _, name := range markers {
			candidate := filepath.Join(dir, name)
			if isFile(candidate) {
				return dir, candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// scanSubprojects reads the immediate children of root, one level deep, and
// returns those that hold a build script.
func scanSubprojects(root string, exclude []string) ([]Project, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading root project: %w", err)
	}

	var projects []Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || reservedDirs[name] || excluded(name, exclude) {
			continue
		}
		dir := filepath.Join(root, name)
		if HasBuildScript(dir) {
			projects = append(projects, Project{Name: name, Path: dir})
		}
	}
	return projects, nil
}

// HasBuildScript reports whether dir directly contains a build script.
func HasBuildScript(dir string) bool {
	for _, name := range BuildScripts {
		if isFile(filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if match, _ := doublestar.Match(pattern, name); match {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// pattern: Imperative Shell

package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
)

// includePatterns recognise include declarations in both quoting styles.
var includePatterns = []*regexp.Regexp{
	regexp.MustCompile(`include\("(.+)"\)`),
	regexp.MustCompile(`include\('(.+)'\)`),
}

// IncludedSubprojects returns the subproject names declared in a settings
// file, in file order. An empty path or a missing file yields no names.
func IncludedSubprojects(settingsFile string) ([]string, error) {
	if settingsFile == "" {
		return nil, nil
	}
	f, err := os.Open(settingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		for _, re := range includePatterns {
			if m := re.FindStringSubmatch(line); m != nil {
				names = append(names, m[1])
				break
			}
		}
	}
	return names, scanner.Err()
}

// IncludeSubproject appends an include declaration for name unless the
// settings file already declares it. It reports whether the file changed.
func IncludeSubproject(settingsFile, name string) (bool, error) {
	included, err := IncludedSubprojects(settingsFile)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", settingsFile, err)
	}
	if slices.Contains(included, name) {
		return false, nil
	}

	f, err := os.OpenFile(settingsFile, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	line := fmt.Sprintf("include(\"%s\")\n", name)
	terminated, err := endsWithNewline(f)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", settingsFile, err)
	}
	if !terminated {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		return false, err
	}
	return true, nil
}

// endsWithNewline reports whether f is empty or its last byte is a newline.
func endsWithNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] == '\n', nil
}

// EnsureSettingsFile returns the registry's settings file, creating one at the
// root when the build has none. The Kotlin DSL is used unless the root build
// script is Groovy.
func (r *Registry) EnsureSettingsFile() (string, error) {
	if r.SettingsFile != "" {
		return r.SettingsFile, nil
	}
	name := "settings.gradle.kts"
	if isFile(filepath.Join(r.Root, "build.gradle")) {
		name = "settings.gradle"
	}
	path := filepath.Join(r.Root, name)
	content := fmt.Sprintf("rootProject.name = \"%s\"\n", r.RootName())
	if name == "settings.gradle" {
		content = fmt.Sprintf("rootProject.name = '%s'\n", r.RootName())
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("creating settings file: %w", err)
	}
	r.SettingsFile = path
	return path, nil
}

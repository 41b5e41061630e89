// pattern: Functional Core

package naming

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind identifies what sort of identifier is being validated.
type Kind int

const (
	Class   Kind = iota // Simple class (source file) name
	Package             // One component of a dotted package name
	Project             // Subproject directory name
)

func (k Kind) String() string {
	switch k {
	case Class:
		return "class"
	case Package:
		return "package"
	case Project:
		return "project"
	default:
		return "name"
	}
}

// InvalidNameError reports an identifier rejected before any filesystem access.
type InvalidNameError struct {
	Kind   Kind
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s names %s", capitalize(e.Kind.String()), e.Reason)
	}
	return fmt.Sprintf("invalid %s name %q: %s names %s", e.Kind, e.Name, e.Kind, e.Reason)
}

// ValidateSimpleName checks a single identifier. Package components are
// additionally rejected when they contain a hyphen.
func ValidateSimpleName(name string, kind Kind) error {
	if name == "" {
		return &InvalidNameError{Kind: kind, Name: name, Reason: "cannot be empty"}
	}
	if containsSeparator(name) {
		return &InvalidNameError{Kind: kind, Name: name, Reason: "cannot contain path separators"}
	}
	if kind == Package && strings.Contains(name, "-") {
		return &InvalidNameError{Kind: kind, Name: name, Reason: "cannot contain hyphens"}
	}
	if first, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(first) {
		return &InvalidNameError{Kind: kind, Name: name, Reason: "cannot begin with a digit"}
	}
	return nil
}

// ValidatePackageName validates every dot-separated component of a qualified
// package name. The empty string denotes the default package and is valid.
func ValidatePackageName(qualified string) error {
	if qualified == "" {
		return nil
	}
	for _, component := range strings.Split(qualified, ".") {
		if err := ValidateSimpleName(component, Package); err != nil {
			// Report the full name so "com..x" is recognisable to the user
			return &InvalidNameError{Kind: Package, Name: qualified, Reason: err.(*InvalidNameError).Reason}
		}
	}
	return nil
}

// ValidateProjectName checks a subproject name before generation. Dots are
// rejected because Gradle uses them in project paths.
func ValidateProjectName(name string) error {
	switch {
	case name == "":
		return &InvalidNameError{Kind: Project, Name: name, Reason: "cannot be empty"}
	case containsSeparator(name):
		return &InvalidNameError{Kind: Project, Name: name, Reason: "cannot contain path separators"}
	case strings.Contains(name, "."):
		return &InvalidNameError{Kind: Project, Name: name, Reason: "cannot contain dots"}
	case strings.HasPrefix(name, "-"):
		return &InvalidNameError{Kind: Project, Name: name, Reason: "cannot begin with a hyphen"}
	}
	return nil
}

// Split separates a qualified name on its last dot.
// "p1.p2.Name" yields ("p1.p2", "Name"); "Name" yields ("", "Name").
func Split(qualified string) (pkg, simple string) {
	i := strings.LastIndex(qualified, ".")
	if i < 0 {
		return "", qualified
	}
	return qualified[:i], qualified[i+1:]
}

// Join prefixes name with a package. An empty prefix leaves name unchanged.
func Join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// ToPath converts a dotted package name into slash-separated path segments.
// The default package maps to the empty string.
func ToPath(pkg string) string {
	if pkg == "" {
		return ""
	}
	return strings.ReplaceAll(pkg, ".", string(os.PathSeparator))
}

func containsSeparator(name string) bool {
	return strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

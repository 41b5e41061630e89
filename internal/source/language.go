// pattern: Functional Core

package source

import "fmt"

// Language selects the source directory and file extension of an entity.
type Language string

const (
	Java   Language = "java"
	Kotlin Language = "kotlin"
	Cpp    Language = "cpp"
)

// extensions is the closed table of supported languages.
var extensions = map[Language]string{
	Java:   "java",
	Kotlin: "kt",
	Cpp:    "cpp",
}

// UnsupportedLanguageError reports a language with no extension mapping.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("'%s' is not a supported language", e.Language)
}

// Extension returns the file extension (without the dot) for lang.
func Extension(lang Language) (string, error) {
	ext, ok := extensions[lang]
	if !ok {
		return "", &UnsupportedLanguageError{Language: string(lang)}
	}
	return ext, nil
}

// Set is a source set partition.
type Set string

const (
	Main Set = "main"
	Test Set = "test"
)

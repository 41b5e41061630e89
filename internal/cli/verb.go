// pattern: Functional Core
package cli

// Verb is one of the closed set of gt commands. Groups map verbs to handlers,
// so adding a command means adding a Verb.
type Verb int

const (
	AddClass Verb = iota
	AddTestClass
	AddPkg
	AddTestPkg
	AddProject
	LsCmd
	LsPkg
	Projects
	Reports
	Root
	RmClass
	RmPkg
	RmTestClass
	RmTestPkg
	Tree
)

var verbNames = [...]string{
	AddClass:     "add-class",
	AddTestClass: "add-testclass",
	AddPkg:       "add-pkg",
	AddTestPkg:   "add-testpkg",
	AddProject:   "add-project",
	LsCmd:        "ls-cmd",
	LsPkg:        "ls-pkg",
	Projects:     "projects",
	Reports:      "reports",
	Root:         "root",
	RmClass:      "rm-class",
	RmPkg:        "rm-pkg",
	RmTestClass:  "rm-testclass",
	RmTestPkg:    "rm-testpkg",
	Tree:         "tree",
}

func (v Verb) String() string {
	if v < 0 || int(v) >= len(verbNames) {
		return "unknown"
	}
	return verbNames[v]
}

// ParseVerb returns the verb spelled s.
func ParseVerb(s string) (Verb, bool) {
	for v, name := range verbNames {
		if name == s {
			return Verb(v), true
		}
	}
	return 0, false
}

// Language group names.
const (
	GroupAll    = "all"
	GroupJava   = "java"
	GroupKotlin = "kotlin"
)

var languageAliases = map[string][]string{
	GroupAll:    {"-", "all", "-a", "--all"},
	GroupJava:   {"java", "jav", "ja", "-j", "-jv", "-ja", "-java", "-jav", "-jva"},
	GroupKotlin: {"kotlin", "kt", "kot", "ktl", "-k", "-kt", "-kot", "-ktl", "-kotlin"},
}

// ResolveLanguage maps a language argument or one of its aliases to a group
// name. Unknown arguments are returned unchanged.
func ResolveLanguage(arg string) string {
	for group, aliases := range languageAliases {
		for _, alias := range aliases {
			if alias == arg {
				return group
			}
		}
	}
	return arg
}

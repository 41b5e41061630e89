// pattern: Functional Core
package cli

import (
	"fmt"
	"io"
	"strings"
)

// PrintUsage prints the overview shown by `gt` with no arguments. It combines
// static prose with a command reference pulled from the registered groups.
func (a *App) PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gt [options] <language> <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "gt scaffolds sources and subprojects in a Gradle build. It locates the root")
	fmt.Fprintln(w, "project by walking up from the current directory to the nearest settings file,")
	fmt.Fprintln(w, "or failing that the nearest build script, and treats every child directory")
	fmt.Fprintln(w, "with its own build script as a subproject.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "In a multi-project build, commands that change sources take the subproject")
	fmt.Fprintln(w, "name as their first argument. In a single-project build it is omitted:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  gt java add-class app -t -p com.example Greeter Printer")
	fmt.Fprintln(w, "  gt kotlin rm-pkg app com.example.legacy")
	fmt.Fprintln(w, "  gt - projects")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Existing files are skipped on create and missing files are skipped on remove.")
	fmt.Fprintln(w, "Removing a package removes everything beneath it.")
	fmt.Fprintln(w)

	a.printCommandReference(w)

	fmt.Fprintln(w, "LANGUAGES")
	fmt.Fprintln(w, "---------")
	for _, group := range []string{GroupAll, GroupJava, GroupKotlin} {
		fmt.Fprintf(w, "  %-8s %s\n", group, strings.Join(languageAliases[group], ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OPTIONS")
	fmt.Fprintln(w, "-------")
	fmt.Fprintln(w, "  -c, --config-dir  config directory (default: ~/.config/gt)")
	fmt.Fprintln(w, "      --verbose     also log to stderr")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "EXIT CODES")
	fmt.Fprintln(w, "----------")
	fmt.Fprintln(w, "  0  Success")
	fmt.Fprintln(w, "  1  Error (not a gradle project, invalid arguments, an entity failed, etc.)")
}

// printCommandReference prints every group's commands with their usage lines.
func (a *App) printCommandReference(w io.Writer) {
	fmt.Fprintln(w, "COMMAND REFERENCE")
	fmt.Fprintln(w, "-----------------")
	fmt.Fprintln(w)

	for _, groupName := range []string{GroupAll, GroupJava, GroupKotlin} {
		group, ok := a.groups[groupName]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s commands: %s\n", group.Name, group.Summary)
		for _, verb := range group.Verbs() {
			cmd := group.Commands[verb]
			fmt.Fprintf(w, "  %-14s %s\n", verb, cmd.Summary)
			fmt.Fprintf(w, "                 %s\n", cmd.Usage)
		}
		fmt.Fprintln(w)
	}
}

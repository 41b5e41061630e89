// pattern: Functional Core
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gt/internal/project"
)

// Command represents a single CLI command with its metadata and handler.
type Command struct {
	Verb    Verb
	Summary string
	Usage   string
	Run     func(ctx context.Context, args []string) error
}

// Group holds the commands applicable to one language.
type Group struct {
	Name     string
	Summary  string
	Commands map[Verb]*Command
}

// App represents the top-level CLI application: one group per language.
type App struct {
	groups  map[string]*Group
	version string
	stdout  io.Writer
	stderr  io.Writer
}

// NewApp creates a new CLI application writing help and errors to the given streams.
func NewApp(version string, stdout, stderr io.Writer) *App {
	return &App{
		groups:  make(map[string]*Group),
		version: version,
		stdout:  stdout,
		stderr:  stderr,
	}
}

// AddGroup creates and registers a new command group.
func (a *App) AddGroup(name, summary string) *Group {
	g := &Group{
		Name:     name,
		Summary:  summary,
		Commands: make(map[Verb]*Command),
	}
	a.groups[name] = g
	return g
}

// AddCommand registers a command in the group.
func (g *Group) AddCommand(cmd *Command) {
	g.Commands[cmd.Verb] = cmd
}

// Verbs returns the group's verbs in declaration order.
func (g *Group) Verbs() []Verb {
	return slices.Sorted(maps.Keys(g.Commands))
}

// UsageError carries a message meant for the user as is, without an error prefix.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// errReported signals that the command already printed its problems and only
// the exit status remains.
var errReported = errors.New("reported")

// Execute dispatches `<language> <verb> [args...]` and returns the exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.PrintUsage(a.stdout)
		return 0
	}
	if args[0] == "version" {
		fmt.Fprintln(a.stdout, a.version)
		return 0
	}

	language := ResolveLanguage(args[0])
	group, ok := a.groups[language]
	if !ok {
		fmt.Fprintf(a.stderr, "'%s' is not a supported language.\n", args[0])
		return 1
	}

	// Group with no subcommand, "help", or --help/-h
	if len(args) < 2 || args[1] == "help" || args[1] == "--help" || args[1] == "-h" {
		group.PrintHelp(a.stdout)
		return 0
	}

	verb, ok := ParseVerb(args[1])
	cmd := group.Commands[verb]
	if !ok || cmd == nil {
		fmt.Fprintf(a.stderr, "Invalid command: '%s'\n", args[1])
		fmt.Fprintf(a.stderr, "To get a list of all available commands, run 'gt %s' without providing any arguments.\n", group.Name)
		return 1
	}

	for _, arg := range args[2:] {
		if arg == "--help" || arg == "-h" {
			fmt.Fprintf(a.stdout, "%s\n", cmd.Usage)
			return 0
		}
	}

	return a.exitCode(cmd.Run(ctx, args[2:]))
}

func (a *App) exitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *UsageError
	var notFound *project.RootNotFoundError
	switch {
	case errors.Is(err, errReported):
	case errors.As(err, &usage):
		fmt.Fprintln(a.stderr, usage.Message)
	case errors.As(err, &notFound):
		fmt.Fprintln(a.stderr, "Not a gradle project.")
	default:
		fmt.Fprintf(a.stderr, "error: %v\n", err)
	}
	return 1
}

// PrintHelp lists the commands applicable to the group's language.
func (g *Group) PrintHelp(w io.Writer) {
	if g.Name == GroupAll {
		fmt.Fprintf(w, "Commands applicable to all languages:\n")
	} else {
		fmt.Fprintf(w, "Commands applicable to %s:\n", g.Name)
	}
	for _, verb := range g.Verbs() {
		fmt.Fprintf(w, "• %-14s %s\n", verb, g.Commands[verb].Summary)
	}
	fmt.Fprintf(w, "\nUse \"gt %s <command> --help\" for command details.\n", g.Name)
}

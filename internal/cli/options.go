// pattern: Functional Core
package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	"gt/internal/report"
)

// InvalidOptionsError lists options a command does not recognise.
type InvalidOptionsError struct {
	Options []string
	Command string
}

func (e *InvalidOptionsError) Error() string {
	quoted := report.Quote(e.Options)
	if len(e.Options) == 1 {
		return fmt.Sprintf("%s is not a valid option for '%s'", quoted, e.Command)
	}
	return fmt.Sprintf("%s are not valid options for '%s'", quoted, e.Command)
}

// newFlagSet creates a quiet FlagSet named after the full command line, e.g.
// "gt java add-class".
func newFlagSet(group string, verb Verb) *flag.FlagSet {
	fs := flag.NewFlagSet(fmt.Sprintf("gt %s %s", group, verb), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseOptions rejects every unknown option at once, then parses args and
// returns the positional arguments.
func parseOptions(fs *flag.FlagSet, args []string, usage string) ([]string, error) {
	if unknown := unknownOptions(fs, args); len(unknown) > 0 {
		return nil, &UsageError{Message: (&InvalidOptionsError{Options: unknown, Command: fs.Name()}).Error()}
	}
	if err := fs.Parse(args); err != nil {
		return nil, usagef("%v\n%s", err, usage)
	}
	return fs.Args(), nil
}

// unknownOptions returns, in order and without duplicates, the options in
// args that fs does not define.
func unknownOptions(fs *flag.FlagSet, args []string) []string {
	var unknown []string
	add := func(opt string) {
		if !slices.Contains(unknown, opt) {
			unknown = append(unknown, opt)
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return unknown
		case strings.HasPrefix(arg, "--"):
			name, _, hasValue := strings.Cut(arg[2:], "=")
			f := fs.Lookup(name)
			if f == nil {
				add("--" + name)
				continue
			}
			if !hasValue && f.NoOptDefVal == "" {
				i++
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			shorts := arg[1:]
			for j := 0; j < len(shorts); j++ {
				f := fs.ShorthandLookup(shorts[j : j+1])
				if f == nil {
					add("-" + shorts[j:j+1])
					continue
				}
				if f.NoOptDefVal == "" {
					if j == len(shorts)-1 {
						i++
					}
					break
				}
			}
		}
	}
	return unknown
}

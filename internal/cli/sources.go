// pattern: Imperative Shell
package cli

import (
	"context"
	"fmt"

	"gt/internal/naming"
	"gt/internal/project"
	"gt/internal/source"
)

// testSuffix is appended to class names derived for the test source set.
const testSuffix = "Test"

// sourceCommand describes one of the add/rm class/package verbs.
type sourceCommand struct {
	verb   Verb
	action source.Action
	kind   naming.Kind
	set    source.Set
	// withTest accepts -t, which also targets the test set.
	withTest bool
}

var sourceCommands = []sourceCommand{
	{verb: AddClass, action: source.Create, kind: naming.Class, set: source.Main, withTest: true},
	{verb: AddTestClass, action: source.Create, kind: naming.Class, set: source.Test},
	{verb: AddPkg, action: source.Create, kind: naming.Package, set: source.Main, withTest: true},
	{verb: AddTestPkg, action: source.Create, kind: naming.Package, set: source.Test},
	{verb: RmClass, action: source.Remove, kind: naming.Class, set: source.Main, withTest: true},
	{verb: RmTestClass, action: source.Remove, kind: naming.Class, set: source.Test},
	{verb: RmPkg, action: source.Remove, kind: naming.Package, set: source.Main, withTest: true},
	{verb: RmTestPkg, action: source.Remove, kind: naming.Package, set: source.Test},
}

// noun names what the command operates on, e.g. "test class".
func (c sourceCommand) noun() string {
	noun := "class"
	if c.kind == naming.Package {
		noun = "package"
	}
	if c.set == source.Test {
		noun = "test " + noun
	}
	return noun
}

func (c sourceCommand) summary() string {
	verb := "Create"
	if c.action == source.Remove {
		verb = "Remove"
	}
	if c.kind == naming.Class {
		return fmt.Sprintf("%s %s files", verb, c.noun())
	}
	return fmt.Sprintf("%s %ss", verb, c.noun())
}

func (c sourceCommand) usage(group string) string {
	args := fmt.Sprintf("<%ss>", c.noun())
	if c.kind == naming.Class {
		args = fmt.Sprintf("<%ses>", c.noun())
	}
	test := ""
	if c.withTest {
		test = "[-t] "
	}
	return fmt.Sprintf("Usage: gt %s %s [project] %s[-p <package_prefix>] %s", group, c.verb, test, args)
}

// registerSourceCommands adds the class and package verbs for lang to group.
func registerSourceCommands(group *Group, lang source.Language, env *Env) {
	for _, sc := range sourceCommands {
		usage := sc.usage(group.Name)
		group.AddCommand(&Command{
			Verb:    sc.verb,
			Summary: sc.summary(),
			Usage:   usage,
			Run: func(_ context.Context, args []string) error {
				return runSourceCommand(env, group.Name, lang, sc, usage, args)
			},
		})
	}
}

func runSourceCommand(env *Env, group string, lang source.Language, sc sourceCommand, usage string, args []string) error {
	if len(args) == 0 {
		return &UsageError{Message: usage}
	}

	fs := newFlagSet(group, sc.verb)
	withTest := false
	if sc.withTest {
		fs.BoolVarP(&withTest, "test", "t", false, "also target the test source set")
	}
	prefix := fs.StringP("package", "p", "", "package prefix for every name")

	positional, err := parseOptions(fs, args, usage)
	if err != nil {
		return err
	}

	reg, err := env.Registry()
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return &UsageError{Message: usage}
	}
	p, names, err := reg.Resolve(positional)
	if err != nil {
		return err
	}

	verb := "create"
	if sc.action == source.Remove {
		verb = "remove"
	}
	if len(names) == 0 {
		return usagef("Please specify at least one %s to %s.", sc.noun(), verb)
	}
	if fs.Changed("package") {
		if *prefix == "" {
			return usagef("The '-p' option must be followed by a package name.")
		}
		for i, name := range names {
			names[i] = naming.Join(*prefix, name)
		}
	}

	entities, err := buildEntities(lang, p, sc, names, withTest)
	if err != nil {
		return err
	}

	var results []source.Result
	if sc.action == source.Create {
		results = source.CreateAll(entities)
	} else {
		results = source.RemoveAll(entities)
	}
	env.logger().Info("applied source command",
		"command", fs.Name(),
		"project", p.Name,
		"entities", len(entities))
	env.Out.Results(results)

	if source.AnyFailed(results) {
		return errReported
	}
	return nil
}

// buildEntities constructs every entity before any of them touches the disk,
// so an invalid name aborts the command without side effects. Entities for
// the primary set come first, followed by the derived test set.
func buildEntities(lang source.Language, p project.Project, sc sourceCommand, names []string, withTest bool) ([]source.Entity, error) {
	type target struct {
		set    source.Set
		suffix string
	}
	targets := []target{{set: sc.set}}
	if withTest {
		suffix := ""
		if sc.kind == naming.Class {
			suffix = testSuffix
		}
		targets = append(targets, target{set: source.Test, suffix: suffix})
	}

	entities := make([]source.Entity, 0, len(names)*len(targets))
	for _, t := range targets {
		for _, name := range names {
			var (
				e   source.Entity
				err error
			)
			if sc.kind == naming.Class {
				e, err = source.NewFile(lang, name+t.suffix, p, t.set)
			} else {
				e, err = source.NewPackage(lang, name, p, t.set)
			}
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		}
	}
	return entities, nil
}

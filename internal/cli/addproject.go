// pattern: Imperative Shell
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gt/internal/generator"
	"gt/internal/lock"
	"gt/internal/naming"
	"gt/internal/project"
)

// Gradle init project types used when the config does not say otherwise.
const (
	kotlinProjectType = "kotlin-application"
	basicProjectType  = "basic"
)

// registerAddProject adds the add-project verb. Only groups with springboot
// set accept the --springboot option.
func registerAddProject(group *Group, projectType string, springboot bool, env *Env) {
	usage := fmt.Sprintf("Usage: gt %s add-project <project_names>", group.Name)
	if springboot {
		usage = fmt.Sprintf("Usage: gt %s add-project [--springboot [springboot options]] <project_names>\n\n"+
			"For a full list of available springboot options, run 'curl https://start.spring.io'", group.Name)
	}
	group.AddCommand(&Command{
		Verb:    AddProject,
		Summary: "Generate new subprojects",
		Usage:   usage,
		Run: func(ctx context.Context, args []string) error {
			return runAddProject(ctx, env, group.Name, projectType, springboot, usage, args)
		},
	})
}

func runAddProject(ctx context.Context, env *Env, group, projectType string, allowSpring bool, usage string, args []string) error {
	if len(args) == 0 {
		return &UsageError{Message: usage}
	}

	var (
		useSpring bool
		params    map[string]string
		err       error
	)
	if allowSpring {
		args, params, useSpring, err = splitSpringBootOptions(args)
		if err != nil {
			return err
		}
	}
	fs := newFlagSet(group, AddProject)
	names, err := parseOptions(fs, args, usage)
	if err != nil {
		return err
	}
	names = dedupe(names)
	if len(names) == 0 {
		return usagef("Please specify the name of the subproject(s) to create.")
	}

	reg, err := env.Registry()
	if err != nil {
		return err
	}
	if reg.SingleProject {
		ok, err := confirm(env, "The current build is a single-project build. Do you still wish to add a new subproject? (y/n): ")
		if err != nil || !ok {
			return err
		}
	}

	l, err := lock.Acquire(env.DataDir)
	if err != nil {
		return err
	}
	defer l.Release()

	var valid, invalid []string
	for _, name := range names {
		switch {
		case reg.Has(name):
			env.Out.Skip("Skipped existing subproject '%s'", name)
		case naming.ValidateProjectName(name) != nil:
			invalid = append(invalid, name)
		default:
			valid = append(valid, name)
		}
	}

	failed := false
	if len(valid) > 0 {
		var gen generator.Generator
		if useSpring {
			gen = env.SpringInitializr(params, env.Out.Println)
		} else {
			gen = env.GradleInit(projectType)
		}
		failed, err = generate(ctx, env, reg, gen, valid)
		if err != nil {
			return err
		}
	}

	if len(invalid) > 0 {
		env.Out.Println("The following are not valid subproject names: " + strings.Join(invalid, ", "))
		failed = true
	}
	if failed {
		return errReported
	}
	return nil
}

// generate runs gen and registers each created subproject in the settings
// file. It reports whether any subproject failed.
func generate(ctx context.Context, env *Env, reg *project.Registry, gen generator.Generator, names []string) (bool, error) {
	results, err := gen.Generate(ctx, reg.Root, names)
	if errors.Is(err, context.Canceled) {
		env.Out.Println("")
		env.Out.Println("Interrupt signal received.")
		if len(results) == 0 {
			env.Out.Println("No subprojects were created.")
		}
	} else if err != nil {
		return false, fmt.Errorf("failed to generate subprojects: %w", err)
	}

	failed := err != nil
	for _, res := range results {
		if res.Err != nil {
			env.Out.Fail("Failed to create %s: %v", gen.Describe(res.Name), res.Err)
			failed = true
			continue
		}
		env.Out.Success("Created %s", gen.Describe(res.Name))

		settings, err := reg.EnsureSettingsFile()
		if err != nil {
			return true, err
		}
		if _, err := project.IncludeSubproject(settings, res.Name); err != nil {
			return true, fmt.Errorf("failed to include '%s' in %s: %w", res.Name, settings, err)
		}
	}
	return failed, nil
}

// splitSpringBootOptions extracts --springboot and the --key=value
// parameters that follow it. Parameters end at the first argument that does
// not start with "--".
func splitSpringBootOptions(args []string) (rest []string, params map[string]string, springboot bool, err error) {
	for i := 0; i < len(args); i++ {
		if args[i] != "--springboot" {
			rest = append(rest, args[i])
			continue
		}
		springboot = true
		if params == nil {
			params = make(map[string]string)
		}
		for i+1 < len(args) && strings.HasPrefix(args[i+1], "--") {
			i++
			key, value, ok := strings.Cut(strings.TrimPrefix(args[i], "--"), "=")
			if !ok || key == "" || value == "" {
				return nil, nil, false, usagef("'%s' is not a valid springboot option; expected --<parameter>=<value>", args[i])
			}
			params[key] = value
		}
	}
	return rest, params, springboot, nil
}

// confirm asks a yes/no question on stdin.
func confirm(env *Env, question string) (bool, error) {
	fmt.Fprint(env.Stdout, question)
	line, err := bufio.NewReader(env.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return false, usagef("No response received.")
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, usagef("Not a valid response")
	}
}

func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// pattern: Imperative Shell
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gt/internal/project"
	"gt/internal/report"
)

// reportIndex is the HTML test report written by Gradle's test task.
var reportIndex = filepath.Join("build", "reports", "tests", "test", "index.html")

// registerLsCmd adds the ls-cmd verb, which lists the group's verbs.
func registerLsCmd(group *Group, env *Env) {
	usage := fmt.Sprintf("Usage: gt %s ls-cmd", group.Name)
	group.AddCommand(&Command{
		Verb:    LsCmd,
		Summary: "List the available commands",
		Usage:   usage,
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return usagef("'gt %s ls-cmd' does not take any arguments.", group.Name)
			}
			for _, verb := range group.Verbs() {
				fmt.Fprintln(env.Stdout, verb)
			}
			return nil
		},
	})
}

// registerTree adds the tree verb. lang is empty for the all group, which
// prints whole source sets; otherwise only that language's directories are
// shown. With dirsOnly (ls-pkg) only the package hierarchy is printed.
func registerTree(group *Group, verb Verb, lang string, dirsOnly bool, env *Env) {
	usage := fmt.Sprintf("Usage: gt %s %s [projects] [-m] [-t]", group.Name, verb)
	summary := "Print the source tree of projects"
	if dirsOnly {
		summary = "Print the package hierarchy of projects"
	}
	group.AddCommand(&Command{
		Verb:    verb,
		Summary: summary,
		Usage:   usage,
		Run: func(ctx context.Context, args []string) error {
			return runTree(ctx, env, group.Name, verb, lang, dirsOnly, usage, args)
		},
	})
}

func runTree(ctx context.Context, env *Env, group string, verb Verb, lang string, dirsOnly bool, usage string, args []string) error {
	fs := newFlagSet(group, verb)
	mainOnly := fs.BoolP("main", "m", false, "only the main source set")
	testOnly := fs.BoolP("test", "t", false, "only the test source set")
	names, err := parseOptions(fs, args, usage)
	if err != nil {
		return err
	}

	reg, err := listableRegistry(env)
	if err != nil {
		return err
	}
	selected := selectProjects(env, reg, names)

	var sets []string
	if *mainOnly {
		sets = append(sets, "main")
	}
	if *testOnly {
		sets = append(sets, "test")
	}
	if len(sets) == 0 {
		sets = []string{"main", "test"}
	}

	var unknown, incomplete []string
	for _, name := range selected {
		p, err := reg.Lookup(name)
		if err != nil {
			unknown = append(unknown, name)
			continue
		}
		srcRoot := filepath.Join(p.Path, "src")
		dirs := make([]string, len(sets))
		complete := true
		for i, set := range sets {
			dirs[i] = filepath.Join(set, lang)
			if !isDir(filepath.Join(srcRoot, dirs[i])) {
				complete = false
			}
		}
		if !complete {
			incomplete = append(incomplete, name)
			continue
		}

		env.Out.Heading(name + ":")
		for _, dir := range dirs {
			if err := env.Viewer.Tree(ctx, srcRoot, dir, dirsOnly); err != nil {
				return err
			}
		}
		env.Out.Println("")
	}

	if len(unknown) > 0 {
		env.Out.Println(report.NotValid(unknown, "subproject"))
	}
	if len(incomplete) > 0 {
		env.Out.Println(report.IncompleteSourceSets(incomplete, lang))
	}
	if len(unknown) > 0 {
		return errReported
	}
	return nil
}

// listableRegistry returns the discovered build, failing with
// project.ErrEmptyRegistry when it has no projects to list.
func listableRegistry(env *Env) (*project.Registry, error) {
	reg, err := env.Registry()
	if err != nil {
		return nil, err
	}
	if len(reg.Names()) == 0 {
		return nil, project.ErrEmptyRegistry
	}
	return reg, nil
}

// selectProjects returns the projects a listing command applies to: the named
// ones, or every project when none are named. Single-project builds always
// list the root.
func selectProjects(env *Env, reg *project.Registry, names []string) []string {
	if reg.SingleProject {
		if len(names) > 0 {
			env.Out.Println("All non-option arguments will be ignored for single-project builds.")
			env.Out.Println("")
		}
		return []string{reg.RootName()}
	}
	if len(names) == 0 {
		return reg.Names()
	}
	return names
}

func registerProjects(group *Group, env *Env) {
	usage := fmt.Sprintf("Usage: gt %s projects [--plain-format]", group.Name)
	group.AddCommand(&Command{
		Verb:    Projects,
		Summary: "List the projects of the build",
		Usage:   usage,
		Run: func(_ context.Context, args []string) error {
			fs := newFlagSet(group.Name, Projects)
			plain := fs.Bool("plain-format", false, "print project names only")
			rest, err := parseOptions(fs, args, usage)
			if err != nil {
				return err
			}
			if len(rest) > 0 {
				return usagef("'gt %s projects' does not take any arguments.", group.Name)
			}

			reg, err := listableRegistry(env)
			if err != nil {
				return err
			}
			if *plain {
				for _, name := range reg.Names() {
					fmt.Fprintln(env.Stdout, name)
				}
				return nil
			}
			if reg.SingleProject {
				return usagef("A single-project build does not contain any subprojects.")
			}

			included, err := project.IncludedSubprojects(reg.SettingsFile)
			if err != nil {
				return fmt.Errorf("reading %s: %w", reg.SettingsFile, err)
			}
			env.Out.Heading("Projects list:")
			for _, name := range reg.Names() {
				switch {
				case slices.Contains(included, name):
					env.Out.Marked("+", name)
				case name == reg.RootName():
					env.Out.Marked("∗", name)
				default:
					env.Out.Marked("-", name)
				}
			}
			return nil
		},
	})
}

func registerReports(group *Group, env *Env) {
	usage := fmt.Sprintf("Usage: gt %s reports [projects]", group.Name)
	group.AddCommand(&Command{
		Verb:    Reports,
		Summary: "Open the test reports of projects",
		Usage:   usage,
		Run: func(_ context.Context, args []string) error {
			fs := newFlagSet(group.Name, Reports)
			names, err := parseOptions(fs, args, usage)
			if err != nil {
				return err
			}

			reg, err := listableRegistry(env)
			if err != nil {
				return err
			}
			switch {
			case reg.SingleProject:
				names = []string{reg.RootName()}
			case len(names) == 0:
				names, err = project.IncludedSubprojects(reg.SettingsFile)
				if err != nil {
					return fmt.Errorf("reading %s: %w", reg.SettingsFile, err)
				}
			}

			var unknown, missing []string
			for _, name := range names {
				p, err := reg.Lookup(name)
				if err != nil {
					unknown = append(unknown, name)
					continue
				}
				index := filepath.Join(p.Path, reportIndex)
				if !isFile(index) {
					missing = append(missing, name)
					continue
				}
				if err := env.Viewer.Open(index); err != nil {
					return err
				}
			}

			for _, name := range missing {
				env.Out.Skip("No test reports are available for '%s'", name)
			}
			for _, name := range unknown {
				env.Out.Fail("Invalid subproject '%s'", name)
			}
			if len(unknown) > 0 {
				return errReported
			}
			return nil
		},
	})
}

func registerRoot(group *Group, env *Env) {
	group.AddCommand(&Command{
		Verb:    Root,
		Summary: "Print the path of the root project",
		Usage:   fmt.Sprintf("Usage: gt %s root", group.Name),
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return usagef("'gt %s root' does not take any arguments.", group.Name)
			}
			reg, err := env.Registry()
			if err != nil {
				return err
			}
			fmt.Fprintln(env.Stdout, reg.Root)
			return nil
		},
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

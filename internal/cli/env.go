// pattern: Imperative Shell
package cli

import (
	"io"
	"os"

	"gt/internal/config"
	"gt/internal/generator"
	"gt/internal/logging"
	"gt/internal/project"
	"gt/internal/report"
	"gt/internal/viewer"
)

// Env carries everything a command handler touches outside its arguments.
// Tests build one over temp directories and stubbed collaborators.
type Env struct {
	Config  config.Config
	Logs    logging.LoggerProvider
	Out     *report.Reporter
	Stdout  io.Writer
	Stderr  io.Writer
	Stdin   io.Reader
	DataDir string

	// Discover locates the build on first use by a project-scoped command.
	Discover func() (*project.Registry, error)
	Viewer   *viewer.Viewer

	// GradleInit and SpringInitializr construct subproject generators.
	GradleInit       func(projectType string) generator.Generator
	SpringInitializr func(params map[string]string, notify func(string)) generator.Generator

	registry *project.Registry
}

// NewEnv wires the production collaborators from cfg.
func NewEnv(cfg config.Config, logs logging.LoggerProvider, dataDir string) *Env {
	env := &Env{
		Config:  cfg,
		Logs:    logs,
		Out:     report.New(os.Stdout, cfg.Theme, cfg.NoColor),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		DataDir: dataDir,
		Viewer:  viewer.New(cfg.TreeCommand, cfg.OpenCommand, logs.For("viewer")),
	}
	env.Discover = func() (*project.Registry, error) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		home, _ := os.UserHomeDir()
		return project.Discover(project.Options{Dir: cwd, Home: home, Exclude: cfg.Exclude})
	}
	env.GradleInit = func(projectType string) generator.Generator {
		return generator.NewGradleInit(projectType, logs.For("generator"))
	}
	env.SpringInitializr = func(params map[string]string, notify func(string)) generator.Generator {
		merged := make(map[string]string, len(cfg.SpringBoot.Params)+len(params))
		for k, v := range cfg.SpringBoot.Params {
			merged[k] = v
		}
		for k, v := range params {
			merged[k] = v
		}
		s := generator.NewSpringInitializr(cfg.SpringBoot.URL, cfg.SpringBoot.Type, merged, logs.For("generator"))
		s.Notify = notify
		return s
	}
	return env
}

// Registry returns the discovered build, running discovery once.
func (e *Env) Registry() (*project.Registry, error) {
	if e.registry != nil {
		return e.registry, nil
	}
	reg, err := e.Discover()
	if err != nil {
		return nil, err
	}
	e.logger().Debug("discovered build",
		"root", reg.Root,
		"settings", reg.SettingsFile,
		"single_project", reg.SingleProject,
		"projects", reg.Names())
	e.registry = reg
	return reg, nil
}

func (e *Env) logger() *logging.ScopedLogger {
	if e.Logs == nil {
		return logging.NopLogger()
	}
	return e.Logs.For("app")
}

// ResolveDataDir returns the directory for the log file and the lock.
// If configDir is specified, uses that; otherwise uses ~/.config/gt.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	return config.Dir()
}

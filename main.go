// pattern: Imperative Shell
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"gt/internal/cli"
	"gt/internal/config"
	"gt/internal/logging"
)

var version = "dev"

func main() {
	configDir := flag.StringP("config-dir", "c", "", "config directory (default: ~/.config/gt)")
	verbose := flag.Bool("verbose", false, "also log to stderr")

	// Language aliases such as -j and --all look like flags, so only the
	// leading global flags go through pflag.
	global, args := splitGlobalArgs(os.Args[1:])
	if err := flag.CommandLine.Parse(global); err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, *configDir, *verbose, args)
	stop()
	os.Exit(code)
}

// splitGlobalArgs separates the leading -c/--config-dir and --verbose flags
// from the command line that follows them.
func splitGlobalArgs(args []string) (global, rest []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--verbose":
			global = append(global, arg)
		case arg == "-c" || arg == "--config-dir":
			global = append(global, arg)
			if i+1 < len(args) {
				i++
				global = append(global, args[i])
			}
		case strings.HasPrefix(arg, "--config-dir=") || (strings.HasPrefix(arg, "-c") && !strings.HasPrefix(arg, "--")):
			global = append(global, arg)
		default:
			return global, args[i:]
		}
	}
	return global, nil
}

// loadConfig loads the configuration from the specified directory or default location.
func loadConfig(configDir string) (config.Config, error) {
	if configDir != "" {
		return config.LoadFromDir(configDir)
	}
	return config.Load()
}

func run(ctx context.Context, configDir string, verbose bool, args []string) int {
	cfg, err := loadConfig(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	dataDir := cli.ResolveDataDir(configDir)
	logCfg := logging.Config{
		FilePath:   filepath.Join(dataDir, "gt.log"),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      cfg.LogLevel,
	}
	if verbose {
		logCfg.Console = os.Stderr
	}
	logManager, err := logging.NewManager(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		return 1
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("invocation", "version", version, "args", args)

	env := cli.NewEnv(cfg, logManager, dataDir)
	code := cli.BuildApp(version, env).Execute(ctx, args)
	appLogger.Debug("finished", "exit_code", code)
	return code
}

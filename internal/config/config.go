package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTheme          = "mocha"
	DefaultLogLevel       = "info"
	DefaultTreeCommand    = "tree"
	DefaultOpenCommand    = "xdg-open"
	DefaultProjectType    = "java-application"
	DefaultSpringBootType = "gradle-project-kotlin"
	DefaultSpringBootURL  = "https://start.spring.io/starter.tgz"
)

var themes = map[string]bool{"latte": true, "frappe": true, "macchiato": true, "mocha": true}

type Config struct {
	Theme       string           `yaml:"theme"`
	LogLevel    string           `yaml:"log_level"`
	NoColor     bool             `yaml:"no_color"`
	Exclude     []string         `yaml:"exclude"`
	TreeCommand string           `yaml:"tree_command"`
	OpenCommand string           `yaml:"open_command"`
	ProjectType string           `yaml:"project_type"`
	SpringBoot  SpringBootConfig `yaml:"springboot"`
}

// SpringBootConfig controls subprojects generated through Spring Initializr.
type SpringBootConfig struct {
	Type   string            `yaml:"type"`
	URL    string            `yaml:"url"`
	Params map[string]string `yaml:"params"`
}

func DefaultConfig() Config {
	return Config{
		Theme:       DefaultTheme,
		LogLevel:    DefaultLogLevel,
		TreeCommand: DefaultTreeCommand,
		OpenCommand: DefaultOpenCommand,
		ProjectType: DefaultProjectType,
		SpringBoot: SpringBootConfig{
			Type: DefaultSpringBootType,
			URL:  DefaultSpringBootURL,
		},
	}
}

// Load reads the config from the default location.
func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFromDir reads config.yaml from dir.
func LoadFromDir(dir string) (Config, error) {
	return LoadFrom(filepath.Join(dir, "config.yaml"))
}

// LoadFrom reads the config at configPath. A missing file yields defaults.
func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("parsing %s: %w", configPath, err)
		}
		cfg.applyDefaults()
	}

	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	return cfg, nil
}

// applyDefaults fills fields left empty by a partial config file.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.TreeCommand == "" {
		c.TreeCommand = d.TreeCommand
	}
	if c.OpenCommand == "" {
		c.OpenCommand = d.OpenCommand
	}
	if c.ProjectType == "" {
		c.ProjectType = d.ProjectType
	}
	if c.SpringBoot.Type == "" {
		c.SpringBoot.Type = d.SpringBoot.Type
	}
	if c.SpringBoot.URL == "" {
		c.SpringBoot.URL = d.SpringBoot.URL
	}
}

// Validate reports settings that would make commands misbehave.
func (c *Config) Validate() error {
	if !themes[c.Theme] {
		return fmt.Errorf("unknown theme %q (expected latte, frappe, macchiato or mocha)", c.Theme)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	if c.TreeCommand == "" || c.OpenCommand == "" {
		return fmt.Errorf("tree_command and open_command must not be empty")
	}
	if c.SpringBoot.Type != "gradle-project" && c.SpringBoot.Type != "gradle-project-kotlin" {
		return fmt.Errorf("springboot.type must be gradle-project or gradle-project-kotlin, got %q", c.SpringBoot.Type)
	}
	return nil
}

// Dir returns the directory holding config.yaml, the log file and the lock.
func Dir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gt")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "gt")
	}
	return filepath.Join(home, ".config", "gt")
}

func getConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Package config loads reach's configuration: the resolve options passed to
// internal/resolver plus output/analysis-scope settings, discovered and
// parsed the way the teacher's config.go loads ModuleAnalysisConfig — viper
// against a project-local file, falling back to built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/reach/domain"
)

// Config is the top-level configuration record: resolver behavior plus
// output/file-scoping settings. The CLI commands read only ResolveOptions;
// Output and Analysis are loaded and validated but not otherwise consulted.
type Config struct {
	ResolveOptions domain.ResolveOptions `json:"resolve_options" mapstructure:"resolve_options" yaml:"resolve_options"`
	Output         OutputConfig          `json:"output" mapstructure:"output" yaml:"output"`
	Analysis       AnalysisConfig        `json:"analysis" mapstructure:"analysis" yaml:"analysis"`
}

// OutputConfig holds configuration for result formatting.
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml.
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// Directory names a report directory; no command reads it.
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// AnalysisConfig holds include/exclude glob patterns for candidate files.
// The CLI's glob expansion does not read them, and they never affect the
// engine's own traversal (which only ever visits files reachable from test
// roots).
type AnalysisConfig struct {
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ResolveOptions: domain.DefaultResolveOptions(),
		Output: OutputConfig{
			Format: "text",
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx",
				"**/*.mjs", "**/*.cjs", "**/*.mts", "**/*.cts",
			},
			ExcludePatterns: []string{
				"node_modules",
				"dist",
				"build",
				"out",
				".next",
				".nuxt",
				".turbo",
				"coverage",
				".git",
				"*.min.js",
				"*.bundle.js",
			},
		},
	}
}

// LoadConfig loads configuration from file or returns the default config.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration, discovering a project-local
// file from targetPath when configPath is empty.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = discoverConfigFile(targetPath)
	}
	return loadConfigFromFile(configPath)
}

func discoverConfigFile(targetPath string) string {
	return findDefaultConfig(targetPath)
}

func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	v := viper.New()
	cfg := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for a config file in common locations: walking
// up from targetPath to the filesystem root when targetPath is given, then
// the current directory alone (its parents are not searched), then
// XDG/home locations and REACH_CONFIG.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"reach.yaml",
		"reach.yml",
		".reach.yaml",
		".reach.yml",
		"reach.json",
		".reach.json",
	}

	if targetPath != "" {
		if absPath, err := filepath.Abs(targetPath); err == nil {
			if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "reach"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "reach")
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}
		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv("REACH_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	validFormats := map[string]bool{"text": true, "json": true, "yaml": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format %q, must be one of: text, json, yaml", c.Output.Format)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	switch c.ResolveOptions.TSConfigRefs {
	case "", domain.TSConfigRefsAuto, domain.TSConfigRefsDisabled, domain.TSConfigRefsManual:
	default:
		return fmt.Errorf("invalid resolve_options.tsconfig_refs %q, must be one of: auto, disabled, manual", c.ResolveOptions.TSConfigRefs)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("resolve_options", cfg.ResolveOptions)
	v.Set("output", cfg.Output)
	v.Set("analysis", cfg.Analysis)

	return v.WriteConfig()
}

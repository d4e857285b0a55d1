// Package config loads importgraph settings from defaults, an optional YAML
// file, IMPORTGRAPH_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"importgraph/internal/depgraph"
	"importgraph/internal/graph"
	"importgraph/internal/logging"
	"importgraph/internal/resolver"
	"importgraph/internal/scanner"
)

// Config is the full importgraph configuration.
type Config struct {
	Root       string         `mapstructure:"root"`
	MaxDepth   int            `mapstructure:"max_depth"`
	CyclesOnly bool           `mapstructure:"cycles_only"`
	Output     string         `mapstructure:"output"`
	Marker     string         `mapstructure:"marker"`
	Suffix     string         `mapstructure:"suffix"`
	Gitignore  bool           `mapstructure:"gitignore"`
	Workers    int            `mapstructure:"workers"`
	Log        logging.Config `mapstructure:"log"`
	DOT        DOTConfig      `mapstructure:"dot"`
}

// DOTConfig holds cosmetic settings for DOT export.
type DOTConfig struct {
	LabelPrefix     string            `mapstructure:"label_prefix"`
	PruneIsolated   bool              `mapstructure:"prune_isolated"`
	GraphAttributes map[string]string `mapstructure:"graph_attributes"`
}

// DefaultGraphAttributes spread nodes out for large import graphs.
var DefaultGraphAttributes = map[string]string{
	"ranksep":  "2.0",
	"nodesep":  "1.0",
	"splines":  "spline",
	"overlap":  "false",
	"fontsize": "10",
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"max-depth":      "max_depth",
	"cycles-only":    "cycles_only",
	"output":         "output",
	"marker":         "marker",
	"suffix":         "suffix",
	"gitignore":      "gitignore",
	"workers":        "workers",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"label-prefix":   "dot.label_prefix",
	"prune-isolated": "dot.prune_isolated",
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	attrs := make(map[string]string, len(DefaultGraphAttributes))
	for k, v := range DefaultGraphAttributes {
		attrs[k] = v
	}
	return &Config{
		Root:     ".",
		MaxDepth: scanner.NoDepthLimit,
		Output:   "dependency_graph.dot",
		Marker:   resolver.DefaultMarker,
		Suffix:   resolver.DefaultSuffix,
		Log: logging.Config{
			Level:  "warn",
			Format: "text",
		},
		DOT: DOTConfig{
			GraphAttributes: attrs,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("root", d.Root)
	v.SetDefault("max_depth", d.MaxDepth)
	v.SetDefault("cycles_only", d.CyclesOnly)
	v.SetDefault("output", d.Output)
	v.SetDefault("marker", d.Marker)
	v.SetDefault("suffix", d.Suffix)
	v.SetDefault("gitignore", d.Gitignore)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("dot.label_prefix", d.DOT.LabelPrefix)
	v.SetDefault("dot.prune_isolated", d.DOT.PruneIsolated)
	v.SetDefault("dot.graph_attributes", d.DOT.GraphAttributes)
}

// Load builds a Config. configFile may be empty, in which case
// .importgraph.yaml in the working directory is used if present.
// flags may be nil; only flags named in flagKeys are bound.
// Precedence: flag > environment > file > default.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("IMPORTGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".importgraph")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxDepth < scanner.NoDepthLimit {
		return &ConfigError{Field: "max_depth", Message: "must be -1 (unbounded) or a non-negative integer"}
	}
	if c.Marker == "" {
		return &ConfigError{Field: "marker", Message: "must not be empty"}
	}
	if !strings.HasPrefix(c.Suffix, ".") || len(c.Suffix) < 2 {
		return &ConfigError{Field: "suffix", Message: "must start with a dot, e.g. .py"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "workers", Message: "must not be negative"}
	}
	return nil
}

// BuildOptions converts c into depgraph build options.
func (c *Config) BuildOptions(logger *slog.Logger) depgraph.Options {
	return depgraph.Options{
		Root:       c.Root,
		MaxDepth:   c.MaxDepth,
		CyclesOnly: c.CyclesOnly,
		Marker:     c.Marker,
		Suffix:     c.Suffix,
		Gitignore:  c.Gitignore,
		Workers:    c.Workers,
		Logger:     logger,
	}
}

// DOTOptions converts the dot section into export options.
func (c *Config) DOTOptions() graph.DOTOptions {
	return graph.DOTOptions{
		LabelPrefix:     c.DOT.LabelPrefix,
		PruneIsolated:   c.DOT.PruneIsolated,
		GraphAttributes: c.DOT.GraphAttributes,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

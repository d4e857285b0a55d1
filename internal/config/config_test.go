package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.MaxDepth)
	assert.Equal(t, "__init__", cfg.Marker)
	assert.Equal(t, ".py", cfg.Suffix)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "2.0", cfg.DOT.GraphAttributes["ranksep"])
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "importgraph.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
max_depth: 2
cycles_only: true
marker: package
dot:
  label_prefix: helpers/
log:
  level: info
`), 0644))

	t.Setenv("IMPORTGRAPH_MARKER", "pkg_marker")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-depth", -1, "")
	flags.Bool("cycles-only", false, "")
	require.NoError(t, flags.Parse([]string{"--max-depth=4"}))

	cfg, err := Load(file, flags)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxDepth, "flag beats file")
	assert.True(t, cfg.CyclesOnly, "unset flag falls through to file")
	assert.Equal(t, "pkg_marker", cfg.Marker, "env beats file")
	assert.Equal(t, "helpers/", cfg.DOT.LabelPrefix)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"depth too small", func(c *Config) { c.MaxDepth = -2 }, "max_depth"},
		{"empty marker", func(c *Config) { c.Marker = "" }, "marker"},
		{"suffix without dot", func(c *Config) { c.Suffix = "py" }, "suffix"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestBuildOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = "helpers"
	cfg.MaxDepth = 3
	cfg.CyclesOnly = true

	opts := cfg.BuildOptions(nil)
	assert.Equal(t, "helpers", opts.Root)
	assert.Equal(t, 3, opts.MaxDepth)
	assert.True(t, opts.CyclesOnly)
	assert.Equal(t, "__init__", opts.Marker)
}

package resolver

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMarker is the file name that makes a directory an importable package.
const DefaultMarker = "__init__"

// DefaultSuffix is the source file suffix.
const DefaultSuffix = ".py"

// Resolver maps dotted import names onto files under a root directory.
// Resolution probes the filesystem on every call; nothing is cached.
type Resolver struct {
	root   string
	base   string
	name   string
	marker string
	suffix string
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMarker sets the package marker file name, without suffix.
func WithMarker(marker string) Option {
	return func(r *Resolver) { r.marker = marker }
}

// WithSuffix sets the source file suffix, including the dot.
func WithSuffix(suffix string) Option {
	return func(r *Resolver) { r.suffix = suffix }
}

// WithLogger sets the logger used for per-step debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// New creates a Resolver for root, which must be an absolute, cleaned path.
func New(root string, opts ...Option) *Resolver {
	r := &Resolver{
		root:   root,
		base:   filepath.Dir(root),
		name:   filepath.Base(root),
		marker: DefaultMarker,
		suffix: DefaultSuffix,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps a dotted import name to a path relative to the parent of the
// root, slash separated. The boolean is false when the name does not
// resolve to an existing file; that is an ordinary outcome, not an error.
//
// At each segment a package directory (one holding the marker file) is
// preferred over a plain source file of the same name. A plain file cannot
// be descended into, so a plain file on an intermediate segment fails.
func (r *Resolver) Resolve(name string) (string, bool) {
	parts := strings.Split(name, ".")
	if parts[0] == r.name {
		parts = parts[1:]
		if len(parts) == 0 {
			return r.probe(name, filepath.Join(r.root, r.marker+r.suffix))
		}
	}

	dir := r.root
	for i, part := range parts {
		if part == "" {
			return "", false
		}
		last := i == len(parts)-1

		pkg := filepath.Join(dir, part, r.marker+r.suffix)
		if exists(pkg) {
			if last {
				return r.rel(name, pkg)
			}
			dir = filepath.Join(dir, part)
			continue
		}

		module := filepath.Join(dir, part+r.suffix)
		if exists(module) {
			if last {
				return r.rel(name, module)
			}
			r.logger.Debug("import descends into a plain module", "import", name, "module", module)
			return "", false
		}

		r.logger.Debug("import segment not found", "import", name, "segment", part)
		return "", false
	}
	return "", false
}

func (r *Resolver) probe(name, path string) (string, bool) {
	if !exists(path) {
		r.logger.Debug("package marker missing", "import", name, "path", path)
		return "", false
	}
	return r.rel(name, path)
}

func (r *Resolver) rel(name, path string) (string, bool) {
	rel, err := filepath.Rel(r.base, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	r.logger.Debug("import resolved", "import", name, "path", rel)
	return rel, true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

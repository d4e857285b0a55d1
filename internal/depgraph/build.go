// Package depgraph builds intra-directory import graphs for a source tree.
package depgraph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"importgraph/internal/graph"
	"importgraph/internal/resolver"
	"importgraph/internal/scanner"
)

// ErrRootNotDirectory is returned when the analyzed root is not a directory.
var ErrRootNotDirectory = errors.New("root is not a directory")

// Options configures a single build.
type Options struct {
	// Root is the directory to analyze.
	Root string
	// MaxDepth bounds scanning; scanner.NoDepthLimit scans the whole tree.
	MaxDepth int
	// CyclesOnly reduces the result to nodes and edges inside import cycles.
	CyclesOnly bool
	// Marker is the package marker file name without suffix.
	Marker string
	// Suffix is the source file suffix including the dot.
	Suffix string
	// Gitignore skips files matched by Root/.gitignore.
	Gitignore bool
	// Workers bounds concurrent file processing. Zero uses GOMAXPROCS.
	Workers int
	// Logger receives progress and per-file warnings. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns options for an unbounded scan of root.
func DefaultOptions(root string) Options {
	return Options{
		Root:     root,
		MaxDepth: scanner.NoDepthLimit,
		Marker:   resolver.DefaultMarker,
		Suffix:   resolver.DefaultSuffix,
	}
}

// fileResult is what one worker learns about one scanned file.
type fileResult struct {
	node    string
	targets []string
}

// Build scans opts.Root, extracts and resolves every import, and returns the
// finished graph. Every scanned file becomes a node even if it fails to
// parse. Unreadable files and a missing root abort the build.
func Build(ctx context.Context, opts Options) (*graph.Graph, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Marker == "" {
		opts.Marker = resolver.DefaultMarker
	}
	if opts.Suffix == "" {
		opts.Suffix = resolver.DefaultSuffix
	}

	root, err := resolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}
	logger.Info("building dependency graph", "root", root, "max_depth", opts.MaxDepth)

	files, err := scanner.Scan(ctx, root, scanner.Options{
		Suffix:    opts.Suffix,
		MaxDepth:  opts.MaxDepth,
		Gitignore: opts.Gitignore,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("found source files", "count", len(files))

	extractor, err := scanner.NewExtractor()
	if err != nil {
		return nil, err
	}
	defer extractor.Close()

	res := resolver.New(root,
		resolver.WithMarker(opts.Marker),
		resolver.WithSuffix(opts.Suffix),
		resolver.WithLogger(logger),
	)
	base := filepath.Dir(root)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := processFile(file, base, extractor, res, logger)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Insert in scan order so node and successor order are reproducible.
	b := graph.NewBuilder()
	for _, r := range results {
		b.AddNode(r.node)
		for _, target := range r.targets {
			b.AddEdge(r.node, target)
		}
	}
	out := b.Graph()
	logger.Info("dependency graph built", "nodes", out.NodeCount(), "edges", out.EdgeCount())

	if opts.CyclesOnly {
		out = graph.FilterCycles(out)
		logger.Info("graph filtered to cycles", "nodes", out.NodeCount(), "edges", out.EdgeCount())
	}
	return out, nil
}

func processFile(file, base string, extractor *scanner.Extractor, res *resolver.Resolver, logger *slog.Logger) (fileResult, error) {
	rel, err := filepath.Rel(base, file)
	if err != nil {
		return fileResult{}, fmt.Errorf("failed to relativize %s: %w", file, err)
	}
	r := fileResult{node: filepath.ToSlash(rel)}

	src, err := os.ReadFile(file)
	if err != nil {
		return fileResult{}, fmt.Errorf("failed to read %s: %w", file, err)
	}

	imports, err := extractor.Extract(src)
	if err != nil {
		var syn *scanner.SyntaxError
		if errors.As(err, &syn) {
			logger.Warn("skipping file due to syntax error", "file", r.node, "line", syn.Line, "column", syn.Column)
			return r, nil
		}
		return fileResult{}, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	for _, imp := range imports {
		target, ok := res.Resolve(imp)
		if !ok {
			continue
		}
		r.targets = append(r.targets, target)
	}
	return r, nil
}

// resolveRoot returns the absolute, symlink-free root directory.
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("failed to stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}
	return abs, nil
}

package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// NoDepthLimit disables the directory depth bound.
const NoDepthLimit = -1

// Options controls which files Scan collects.
type Options struct {
	// Suffix is the source file suffix, including the dot.
	Suffix string
	// MaxDepth bounds how many directory levels below root are scanned.
	// Files directly in root are at depth 0. NoDepthLimit scans everything.
	MaxDepth int
	// Gitignore skips paths matched by root/.gitignore.
	Gitignore bool
}

// Scan walks root and returns the absolute paths of all source files within
// the depth bound, in lexical walk order.
func Scan(ctx context.Context, root string, opts Options) ([]string, error) {
	var matcher *ignore.GitIgnore
	if opts.Gitignore {
		m, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read .gitignore: %w", err)
		}
		matcher = m
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if matcher != nil && matcher.MatchesPath(filepath.ToSlash(rel)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			// Files inside rel sit at depth equal to its segment count.
			if opts.MaxDepth != NoDepthLimit && segments(rel) > opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), opts.Suffix) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return files, nil
}

func segments(rel string) int {
	return len(strings.Split(filepath.ToSlash(rel), "/"))
}

// Package ancestry discovers the files that a leaf JSON document inherits from:
// same-named files in the directories above it.
package ancestry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
)

// Chain lists model files from the topmost ancestor down to the leaf.
type Chain []string

// Root returns the topmost file of the chain.
func (c Chain) Root() string { return c[0] }

// Leaf returns the most specific file of the chain.
func (c Chain) Leaf() string { return c[len(c)-1] }

// Options controls how far Locate looks.
type Options struct {
	// SkipEmpty keeps walking past directories that lack the file instead of
	// stopping at the first one.
	SkipEmpty bool
	// MaxDepth caps the number of ancestor directories visited. Zero means no limit.
	MaxDepth int
	// Logger, when set, receives one entry per model found.
	Logger *log.Logger
}

// StatError reports a candidate whose presence could not be determined.
type StatError struct {
	Path string
	Err  error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("checking %s: %v", e.Path, e.Err)
}

func (e *StatError) Unwrap() error { return e.Err }

// Locate returns the chain of files named like leaf, starting at the parent of
// the leaf's directory and walking up to the filesystem root. leaf must be an
// existing regular file; it always ends the chain.
func Locate(leaf string, opts Options) (Chain, error) {
	abs, err := filepath.Abs(leaf)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", leaf, err)
	}
	leaf = abs
	filename := filepath.Base(leaf)

	found := Chain{leaf}
	opts.trace(leaf)

	prev := filepath.Dir(leaf)
	dir := filepath.Dir(prev)
	// filepath.Dir is a fixed point at the root, which ends the walk.
	for depth := 0; dir != prev; depth++ {
		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			break
		}
		candidate := filepath.Join(dir, filename)
		exists, err := isFile(candidate)
		if err != nil {
			return nil, err
		}
		if exists {
			opts.trace(candidate)
			found = append(found, candidate)
		} else if !opts.SkipEmpty {
			break
		}
		prev, dir = dir, filepath.Dir(dir)
	}

	// Ancestors first, so that descendants override them.
	slices.Reverse(found)
	return found, nil
}

func (o Options) trace(path string) {
	if o.Logger != nil {
		o.Logger.Info("Found model", "path", path)
	}
}

// isFile reports whether path names a regular file. A missing path, or one
// that is not a regular file, is simply absent.
func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return info.Mode().IsRegular(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, &StatError{Path: path, Err: err}
	}
}

// Package deathgate inventories the asset files of Death Gate, Legend
// Entertainment's 1994 graphic adventure.
//
// The game ships a fixed set of files next to its executable: 8-bit
// screens (.SCR), FLIC animations (.FLC), XMIDI music and WAV speech, and
// Huffman compressed string tables (.TXT). A Root classifies the files of a
// game directory by name and parses the header of each one it recognizes.
package deathgate

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/32bitkid/deathgate/resource"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var ErrDirectoryNotFound = errors.New("directory not found")

// DefaultConcurrency bounds the number of files read at once.
const DefaultConcurrency = 4

// Root is a reference to the directory of an installed game.
type Root struct {
	Path string

	logger      *slog.Logger
	concurrency int
	skip        []string
}

type Option func(*Root)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(root *Root) {
		if logger != nil {
			root.logger = logger
		}
	}
}

// WithConcurrency sets how many files are read in parallel.
func WithConcurrency(n int) Option {
	return func(root *Root) {
		if n > 0 {
			root.concurrency = n
		}
	}
}

// WithSkip excludes files whose names match any of the glob patterns, even
// when they are known resources.
func WithSkip(patterns ...string) Option {
	return func(root *Root) { root.skip = append(root.skip, patterns...) }
}

func NewRoot(path string, opts ...Option) Root {
	root := Root{
		Path:        path,
		logger:      slog.Default(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(&root)
	}
	return root
}

func (root Root) skipped(name string) bool {
	for _, pattern := range root.skip {
		ok, err := doublestar.Match(strings.ToUpper(pattern), strings.ToUpper(name))
		if err != nil {
			root.logger.Warn("badSkipPattern", "pattern", pattern, "err", err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

func (root Root) readDir() ([]fs.DirEntry, error) {
	info, err := os.Stat(root.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrDirectoryNotFound, "%s", root.Path)
		}
		return nil, errors.WithStack(err)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrDirectoryNotFound, "%s is not a directory", root.Path)
	}

	entries, err := os.ReadDir(root.Path)
	return entries, errors.WithStack(err)
}

// mappings classifies the direct children of the directory. Unknown and
// skipped names are left out.
func (root Root) mappings() ([]diskMapping, error) {
	entries, err := root.readDir()
	if err != nil {
		return nil, err
	}

	var mapping []diskMapping
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		kind, ok := resource.Classify(name)
		if !ok || root.skipped(name) {
			continue
		}
		mapping = append(mapping, diskMapping{
			name: name,
			path: filepath.Join(root.Path, name),
			kind: kind,
		})
	}
	return mapping, nil
}

// Scan parses every known resource in the directory. Only a missing
// directory, or ctx ending, fails the scan; a file that can not be read or
// parsed still yields a descriptor with its Err set.
func (root Root) Scan(ctx context.Context) ([]resource.Descriptor, error) {
	start := time.Now()

	mapping, err := root.mappings()
	if err != nil {
		return nil, err
	}

	descriptors := make([]resource.Descriptor, len(mapping))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(root.concurrency)
	for i := range mapping {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			descriptors[i] = mapping[i].Descriptor()
			if err := descriptors[i].Err; err != nil {
				root.logger.Warn("resourceError", "path", mapping[i].path, "kind", mapping[i].kind.Label(), "err", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	root.logger.Debug("scanDone", "path", root.Path, "resources", len(descriptors), "duration", time.Since(start).String())
	return descriptors, nil
}

// IsValid reports whether the directory holds at least one known resource.
// No file is opened.
func (root Root) IsValid() bool {
	entries, err := root.readDir()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := resource.Classify(entry.Name()); ok {
			return true
		}
	}
	return false
}

// IsValidResourceDirectory is a cheap check for a user chosen directory.
func IsValidResourceDirectory(path string) bool {
	return NewRoot(path).IsValid()
}

// Scan is a shorthand for NewRoot(path, opts...).Scan(ctx).
func Scan(ctx context.Context, path string, opts ...Option) ([]resource.Descriptor, error) {
	return NewRoot(path, opts...).Scan(ctx)
}

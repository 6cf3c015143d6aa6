package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fuzzyhash/internal/config"
	"fuzzyhash/internal/filehash"
	"fuzzyhash/internal/logging"
)

// Options controls traversal and hashing.
type Options struct {
	Workers        int
	FollowSymlinks bool
	Hidden         bool
	MinSize        int64
	MaxSize        int64 // 0 disables the limit
	Exclude        []string
	Hash           filehash.Options
	Logger         *slog.Logger
}

// OptionsFromConfig derives scan options from configuration.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		Workers:        cfg.Hashing.Workers,
		FollowSymlinks: cfg.Scan.FollowSymlinks,
		Hidden:         cfg.Scan.Hidden,
		MinSize:        cfg.Scan.MinSize,
		MaxSize:        cfg.Scan.MaxSize,
		Exclude:        append([]string(nil), cfg.Scan.Exclude...),
		Hash: filehash.Options{
			BufferSize:  cfg.Hashing.ReadBufferSize,
			DeclareSize: cfg.Hashing.DeclareSize,
		},
		Logger: logger,
	}
}

// Entry is a file selected for hashing.
type Entry struct {
	Path string
	Size int64
}

// Walk reports every regular file under roots that passes the filters, in
// lexical order per root. Roots may also name files directly. Unreadable
// directories are logged and skipped.
func Walk(ctx context.Context, roots []string, opts Options, fn func(Entry) error) error {
	logger := logging.NewComponentLogger(opts.Logger, "walk")
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("scan root %s: %w", root, err)
		}
		if !info.IsDir() {
			if entry, ok := opts.accept(root, info); ok {
				if err := fn(entry); err != nil {
					return err
				}
			}
			continue
		}
		if err := walkDir(ctx, root, opts, logger, map[string]struct{}{}, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkDir(ctx context.Context, root string, opts Options, logger *slog.Logger, visited map[string]struct{}, fn func(Entry) error) error {
	// WalkDir does not descend into a symlinked root, so walk the resolved
	// directory and report paths relative to the name we were given.
	base := root
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, seen := visited[real]; seen {
			return nil
		}
		visited[real] = struct{}{}
		base = real
	}

	return filepath.WalkDir(base, func(walked string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		path := root
		if rel, relErr := filepath.Rel(base, walked); relErr == nil && rel != "." {
			path = filepath.Join(root, rel)
		}
		if err != nil {
			if walked == base {
				return err
			}
			logger.Warn("skipping unreadable entry", slog.String(logging.FieldPath, path), logging.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if walked != base && opts.excluded(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			// base is resolved, so every directory WalkDir enters below it is
			// named by its real path.
			if walked != base {
				if _, seen := visited[walked]; seen {
					return fs.SkipDir
				}
				visited[walked] = struct{}{}
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if !opts.FollowSymlinks {
				return nil
			}
			info, statErr := os.Stat(path)
			if statErr != nil {
				logger.Warn("skipping dangling symlink", slog.String(logging.FieldPath, path), logging.Error(statErr))
				return nil
			}
			if info.IsDir() {
				return walkDir(ctx, path, opts, logger, visited, fn)
			}
			if entry, ok := opts.accept(path, info); ok {
				return fn(entry)
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if entry, ok := opts.accept(path, info); ok {
			return fn(entry)
		}
		return nil
	})
}

func (o Options) accept(path string, info fs.FileInfo) (Entry, bool) {
	if !info.Mode().IsRegular() {
		return Entry{}, false
	}
	size := info.Size()
	if size < o.MinSize {
		return Entry{}, false
	}
	if o.MaxSize > 0 && size > o.MaxSize {
		return Entry{}, false
	}
	return Entry{Path: path, Size: size}, true
}

func (o Options) excluded(name string) bool {
	if !o.Hidden && strings.HasPrefix(name, ".") {
		return true
	}
	for _, pattern := range o.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

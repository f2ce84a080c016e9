// Package source provides the filesystem-backed DocumentSource.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"theoremdex/internal/core/errors"
	"theoremdex/internal/core/ports"
)

// FSSource serves documents from a set of root directories, filtered by
// extension and exclude globs.
type FSSource struct {
	roots        []string
	extensions   map[string]bool
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

func New(roots, extensions, excludeDirs, excludeFiles []string) (*FSSource, error) {
	if len(roots) == 0 {
		return nil, errors.New(errors.CodeValidationError, "at least one scan root is required")
	}

	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}
	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	extFilter := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extFilter[strings.ToLower(ext)] = true
	}

	return &FSSource{
		roots:        roots,
		extensions:   extFilter,
		excludeDirs:  dirGlobs,
		excludeFiles: fileGlobs,
	}, nil
}

var _ ports.DocumentSource = (*FSSource)(nil)

// Load reads one document by path. The path doubles as the attribution
// identifier in results.
func (s *FSSource) Load(ctx context.Context, id string) (ports.Document, error) {
	if err := ctx.Err(); err != nil {
		return ports.Document{}, errors.Cancelled(err, "document load cancelled")
	}
	if !s.Accepts(id) {
		err := errors.New(errors.CodeValidationError, "unsupported document path")
		return ports.Document{}, errors.AddContext(err, errors.CtxDocument, id)
	}
	data, err := os.ReadFile(id)
	if err != nil {
		if os.IsNotExist(err) {
			return ports.Document{}, errors.Wrap(err, errors.CodeNotFound, "document not found")
		}
		return ports.Document{}, errors.Wrap(err, errors.CodeInternal, "read document")
	}
	return ports.Document{Path: id, Text: string(data)}, nil
}

// List walks the roots and returns every accepted document path, sorted.
func (s *FSSource) List(ctx context.Context) ([]string, error) {
	var docs []string
	for _, root := range s.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if cerr := ctx.Err(); cerr != nil {
				return errors.Cancelled(cerr, "document listing cancelled")
			}
			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range s.excludeDirs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}
			if s.Accepts(path) {
				docs = append(docs, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(docs)
	return docs, nil
}

// Accepts reports whether the path passes the extension and exclude filters.
func (s *FSSource) Accepts(path string) bool {
	if !s.extensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	base := filepath.Base(path)
	for _, g := range s.excludeFiles {
		if g.Match(base) {
			return false
		}
	}
	return true
}

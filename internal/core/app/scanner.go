package app

import (
	"context"
	"fixturecheck/internal/core/errors"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/shared/util"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

type discoveryFilter struct {
	include      []glob.Glob
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

func newDiscoveryFilter(include, excludeDirs, excludeFiles []string) (*discoveryFilter, error) {
	inc, err := compileGlobs(include, "include")
	if err != nil {
		return nil, err
	}
	dirs, err := compileGlobs(excludeDirs, "exclude dir")
	if err != nil {
		return nil, err
	}
	files, err := compileGlobs(excludeFiles, "exclude file")
	if err != nil {
		return nil, err
	}
	return &discoveryFilter{include: inc, excludeDirs: dirs, excludeFiles: files}, nil
}

func compileGlobs(patterns []string, label string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid %s pattern %q", label, p))
		}
		out = append(out, g)
	}
	return out, nil
}

// matchAny tests the base name and the slash separated path relative to the
// walk root, so "generated/*.py" works alongside "*_pb2.py".
func matchAny(globs []glob.Glob, name, rel string) bool {
	for _, g := range globs {
		if g.Match(name) || (rel != "" && g.Match(rel)) {
			return true
		}
	}
	return false
}

func (f *discoveryFilter) skipDir(name, rel string) bool {
	return matchAny(f.excludeDirs, name, rel)
}

// acceptFile applies include and exclude globs to a walked file.
func (f *discoveryFilter) acceptFile(name, rel string) bool {
	if len(f.include) > 0 && !matchAny(f.include, name, rel) {
		return false
	}
	return !matchAny(f.excludeFiles, name, rel)
}

func relativePattern(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return ""
	}
	return util.NormalizePatternPath(rel)
}

// Discover expands req.Paths into the files to check. Explicit files are kept
// as given; directories are walked only when recursive, otherwise they produce
// a warning. The returned files are unique and sorted.
func (a *App) Discover(ctx context.Context, req ports.CheckRequest) ([]string, []string, error) {
	filter, err := newDiscoveryFilter(a.Config.Discovery.Include, a.Config.Discovery.ExcludeDirs, a.Config.Discovery.ExcludeFiles)
	if err != nil {
		return nil, nil, err
	}

	paths := req.Paths
	if len(paths) == 0 {
		paths = a.Config.Paths
	}
	recursive := req.Recursive || a.Config.Discovery.Recursive

	seen := make(map[string]bool)
	files := make([]string, 0)
	warnings := make([]string, 0)
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, root := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, errors.AddContext(errors.New(errors.CodeNotFound, "path does not exist"), errors.CtxPath, root)
			}
			return nil, nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "stat path"), errors.CtxPath, root)
		}

		if !info.IsDir() {
			add(root)
			continue
		}
		if !recursive {
			warnings = append(warnings, fmt.Sprintf("skipping directory %s (use --recursive to descend)", root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			rel := relativePattern(root, path)
			if d.IsDir() {
				if path != root && filter.skipDir(d.Name(), rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if filter.acceptFile(d.Name(), rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "walk directory"), errors.CtxPath, root)
		}
	}

	sort.Strings(files)
	return files, warnings, nil
}

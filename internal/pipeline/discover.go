package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverOptions controls how directory and glob inputs expand.
type DiscoverOptions struct {
	Extensions []string // Lowercase, with leading dot. Applied to directories only.
	Recursive  bool
	Suffix     string // Files whose stem ends with it are treated as outputs and excluded.
}

// Resolution is the flat result of expanding input specifications.
type Resolution struct {
	Files    []string     // Existing files to process, deduplicated, in argument order.
	Missing  []string     // Literal inputs that do not exist; each counts as an error.
	Failed   []InputError // Inputs that exist but could not be examined; each counts as an error.
	Warnings []string     // Arguments that expanded to nothing; informational only.
}

// InputError is an input argument whose status could not be read.
type InputError struct {
	Path string
	Err  error
}

// Resolve expands each input argument: a glob pattern into its matching
// files, a directory into its files with a matching extension, a literal
// path into itself. An argument that names an existing path is taken
// literally even when it contains glob metacharacters ("board[1].brd").
// Outputs of earlier runs (stem ending in Suffix) are excluded from glob
// and directory expansion but not from literal paths.
func Resolve(args []string, opts DiscoverOptions) Resolution {
	var res Resolution
	seen := make(map[string]bool)
	add := func(path string) {
		key := path
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if seen[key] {
			return
		}
		seen[key] = true
		res.Files = append(res.Files, path)
	}

	for _, arg := range args {
		fi, statErr := os.Stat(arg)
		if statErr != nil && isGlob(arg) {
			matches, err := Glob(arg, opts.Suffix)
			if err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("Bad pattern %q: %v", arg, err))
				continue
			}
			if len(matches) == 0 {
				res.Warnings = append(res.Warnings, "No files found matching pattern: "+arg)
				continue
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}

		if statErr != nil {
			if errors.Is(statErr, fs.ErrNotExist) {
				res.Missing = append(res.Missing, arg)
			} else {
				res.Failed = append(res.Failed, InputError{Path: arg, Err: statErr})
			}
			continue
		}
		if !fi.IsDir() {
			add(arg)
			continue
		}

		files, err := Discover(arg, opts)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Cannot read directory %s: %v", arg, err))
		}
		if len(files) == 0 && err == nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("No %s files found in: %s", strings.Join(opts.Extensions, "/"), arg))
		}
		for _, f := range files {
			add(f)
		}
	}
	return res
}

func isGlob(arg string) bool {
	return strings.ContainsAny(arg, "*?[")
}

// Glob returns the regular files matching pattern, sorted, excluding
// previous outputs.
func Glob(pattern, suffix string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		if IsOutputName(m, suffix) {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// Discover lists files under dir whose extension (case-insensitive) is in
// opts.Extensions, skipping previous outputs. Subdirectories are walked
// only when opts.Recursive is set. Paths are sorted lexicographically for
// deterministic processing order. Files found before a walk error are
// still returned alongside it.
func Discover(dir string, opts DiscoverOptions) ([]string, error) {
	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if path != dir && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !isRegularEntry(path, d) {
			return nil
		}
		if !exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if IsOutputName(path, opts.Suffix) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	sort.Strings(files)
	return files, err
}

// isRegularEntry accepts regular files and symlinks that resolve to one.
func isRegularEntry(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

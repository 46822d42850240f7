package walker

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches YAML dataset files anywhere under the root.
var DefaultInclude = []string{"**/*.yaml", "**/*.yml"}

// skippedDirs are directory names never descended into.
var skippedDirs = []string{
	".git",
	"node_modules",
	"vendor",
	"out",
	".famtree",
}

// DataFile is a dataset file found during traversal.
type DataFile struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash-separated path relative to the root directory.
	Size    int64
}

// Config controls the behaviour of Walk.
type Config struct {
	RootDir string   // Directory holding dataset files.
	Include []string // Glob patterns; empty means DefaultInclude.
	Exclude []string // Glob patterns; matching files are skipped.
}

// Walk returns every dataset file under cfg.RootDir that passes the
// include/exclude filters, sorted by relative path so that loading order is
// stable between runs.
func Walk(cfg Config) ([]DataFile, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	include := cfg.Include
	if len(include) == 0 {
		include = DefaultInclude
	}

	var files []DataFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !MatchesAny(rel, include) || MatchesAny(rel, cfg.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, DataFile{Path: path, RelPath: rel, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

func skipDir(name string) bool {
	for _, s := range skippedDirs {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}

// MatchesAny reports whether relPath, or its base name, matches one of the
// doublestar patterns.
func MatchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

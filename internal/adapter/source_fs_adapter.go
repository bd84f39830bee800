// Package adapter contains filesystem and parsing adapters for the perlver
// CLI. It hides direct os access so the workflow logic can be tested without
// touching the disk.
package adapter

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	m "perlver.dev/pkg/perlver/internal/model"
)

// perlExtensions are the file suffixes treated as Perl sources outright.
var perlExtensions = map[string]bool{
	".pl":   true,
	".pm":   true,
	".t":    true,
	".psgi": true,
}

// SourceFSAdapter abstracts the filesystem operations the workflow relies on
// when scanning user projects.
type SourceFSAdapter interface {
	// FindPerlFiles resolves root paths ("./..." recurses) to the Perl files
	// beneath them, minus anything matching an exclude glob.
	FindPerlFiles(roots []m.Path, exclude []string) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)
}

// LocalSourceFSAdapter is the disk-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter ready to be wired
// into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// FindPerlFiles walks each root and collects Perl files, deduplicated and
// sorted. A root given as a plain file is accepted when it looks like Perl.
func (a *LocalSourceFSAdapter) FindPerlFiles(roots []m.Path, exclude []string) ([]m.Path, error) {
	if len(roots) == 0 {
		roots = []m.Path{"./..."}
	}

	seen := make(map[string]struct{})

	var files []m.Path

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, m.Path(path))
	}

	for _, root := range roots {
		rootStr, recursive := splitRecursive(string(root))

		info, err := os.Stat(rootStr)
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			add(rootStr)
			continue
		}

		err = filepath.WalkDir(rootStr, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path == rootStr {
					return nil
				}

				if !recursive || skipDir(d.Name()) {
					return fs.SkipDir
				}

				return nil
			}

			rel, err := filepath.Rel(rootStr, path)
			if err != nil {
				return err
			}

			skip, err := matchesAny(exclude, filepath.ToSlash(rel))
			if err != nil {
				return err
			}

			if skip || !a.isPerlFile(path) {
				return nil
			}

			add(path)

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", rootStr, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// isPerlFile accepts known extensions and extensionless scripts with a perl
// shebang.
func (a *LocalSourceFSAdapter) isPerlFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if perlExtensions[ext] {
		return true
	}

	if ext != "" {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}

	defer func() { _ = f.Close() }()

	head := make([]byte, 64)

	n, err := f.Read(head)
	if err != nil || n < 2 || head[0] != '#' || head[1] != '!' {
		return false
	}

	firstLine := head[:n]
	if i := bytes.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}

	return bytes.Contains(firstLine, []byte("perl"))
}

func splitRecursive(root string) (string, bool) {
	if root == "..." {
		return ".", true
	}

	if strings.HasSuffix(root, "/...") {
		trimmed := strings.TrimSuffix(root, "/...")
		if trimmed == "" {
			trimmed = "."
		}

		return trimmed, true
	}

	return root, false
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	return name == "blib" || name == "node_modules" || name == "vendor"
}

func matchesAny(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}

		if ok {
			return true, nil
		}

		// Also match against the bare file name so "*.t" excludes tests in
		// any directory.
		ok, err = doublestar.Match(pattern, filepath.Base(rel))
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}

package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrTestPathNotFound is returned when the scan root does not exist
var ErrTestPathNotFound = errors.New("test path does not exist")

// testSuffixes are the file endings the orchestrator treats as test files
var testSuffixes = []string{".test.ts", ".spec.ts", ".test.tsx", ".spec.tsx"}

// Scanner scans for test files in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// IsTestFile reports whether name carries a test suffix
func IsTestFile(name string) bool {
	for _, suffix := range testSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Skip reports whether a directory with the given name is never scanned
func (s *Scanner) Skip(name string) bool {
	// Skip hidden directories (starting with .)
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	return s.skipDirs[name]
}

// Scan finds all test files in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	return s.walk(root, func(path, name string) bool {
		return IsTestFile(name)
	})
}

// ScanStories finds catalog story files under root matching any of patterns,
// which are relative to root
func (s *Scanner) ScanStories(root string, patterns []string) ([]string, error) {
	root = filepath.Clean(root)
	return s.walk(root, func(path, name string) bool {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return false
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range patterns {
			if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
				return true
			}
		}
		return false
	})
}

func (s *Scanner) walk(root string, keep func(path, name string) bool) ([]string, error) {
	var files []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTestPathNotFound, root)
	}
	if err != nil {
		return nil, fmt.Errorf("stat test path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && s.Skip(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if keep(path, d.Name()) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

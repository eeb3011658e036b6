// Package bundle walks a local directory of FHIR bundle files and
// prepares them for upload.
package bundle

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Extension recognized as a serialized FHIR bundle.
const Extension = ".json"

// File is one bundle found during a scan. Key is the path relative to
// the scan root with separators normalized to forward slashes, so it is
// usable as an object key on any host.
type File struct {
	Path string
	Key  string
}

// Scanner walks a directory tree for bundle files. Each call to Walk
// restarts the scan from the root; the file list is never held in memory.
type Scanner struct {
	root string
}

// NewScanner creates a scanner rooted at dir.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// CheckRoot verifies the scan root is an existing directory. Called
// before any network work so a bad path fails fast.
func (s *Scanner) CheckRoot() error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("path %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", s.root)
	}
	return nil
}

// Walk streams every bundle file under the root to fn, in directory walk
// order. Files without the bundle extension are skipped. Returning an
// error from fn stops the walk.
func (s *Scanner) Walk(fn func(File) error) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), Extension) {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		return fn(File{
			Path: path,
			Key:  filepath.ToSlash(rel),
		})
	})
}

package services

import (
	"io/fs"
	"path/filepath"

	"github.com/custodia-labs/corpusforge/internal/logger"
)

// DiscoverCorpora returns the absolute path of every file named filename
// beneath root, depth-first in directory-listing order.
//
// Discovery is best effort: it never fails. A missing root yields an empty
// result, and an unreadable directory contributes nothing while its
// siblings are still visited.
func DiscoverCorpora(root, filename string) []string {
	abs, err := filepath.Abs(root)
	if err != nil {
		logger.Debug("discovery: resolving %s: %v", root, err)
		return []string{}
	}

	found := []string{}
	//nolint:errcheck // the walk function never returns an error
	_ = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("discovery: skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && d.Name() == filename {
			found = append(found, path)
		}
		return nil
	})
	return found
}

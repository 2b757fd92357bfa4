package driver

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"sealscan/internal/project"
)

// ListSources returns every file under root whose extension is in exts,
// sorted for a deterministic order. Hidden directories are skipped.
func ListSources(root string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = project.DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

package verify

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// listFiles returns the sorted relative paths of all regular files under root.
func listFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// DiffTrees compares two directory trees by content: same relative file set
// and byte-identical content per file. It returns the relative paths that
// differ, empty when the trees are equal.
func DiffTrees(original, reconstructed string) ([]string, error) {
	origFiles, err := listFiles(original)
	if err != nil {
		return nil, err
	}
	reconFiles, err := listFiles(reconstructed)
	if err != nil {
		return nil, err
	}

	reconSet := make(map[string]bool, len(reconFiles))
	for _, f := range reconFiles {
		reconSet[f] = true
	}

	var diffs []string
	for _, f := range origFiles {
		if !reconSet[f] {
			diffs = append(diffs, f)
			continue
		}
		delete(reconSet, f)

		a, err := os.ReadFile(filepath.Join(original, f))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Join(original, f), err)
		}
		b, err := os.ReadFile(filepath.Join(reconstructed, f))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Join(reconstructed, f), err)
		}
		if !bytes.Equal(a, b) {
			diffs = append(diffs, f)
		}
	}
	for f := range reconSet {
		diffs = append(diffs, f)
	}

	sort.Strings(diffs)
	return diffs, nil
}

// ClearDirectory removes everything under path, creating the directory if it
// does not exist. Used to keep the scratch decompression directory free of
// stale files between verifications.
func ClearDirectory(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("clear directory %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("recreate directory %s: %w", path, err)
	}
	return nil
}

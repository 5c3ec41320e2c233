// Package subst patches template token markers in generated files. Tokens
// follow the double-underscore convention (__NAME__); replacement is literal,
// never pattern-based. A file is a valid target only when its markers are
// unambiguous; the caller guarantees that no key is a substring of any value.
package subst

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReplaceAll rewrites the file at path, replacing every occurrence of each
// mapping key with its value. Keys are applied in sorted order so the result
// is deterministic. Returns ErrNotFound when the file does not exist.
func ReplaceAll(path string, mapping map[string]string) error {
	contents, err := readFile(path)
	if err != nil {
		return err
	}

	for _, key := range sortedKeys(mapping) {
		contents = strings.ReplaceAll(contents, key, mapping[key])
	}

	return writeFile(path, contents)
}

// ReplaceThroughLineEnd rewrites the file at path, replacing for every key
// all text from the end of each key occurrence through the next line break
// (or end of file) with the mapped value. The scan restarts after each
// replacement, so every occurrence of a key gets patched. Used for sparse
// "key: value" single-line patches.
func ReplaceThroughLineEnd(path string, mapping map[string]string) error {
	contents, err := readFile(path)
	if err != nil {
		return err
	}

	for _, key := range sortedKeys(mapping) {
		value := mapping[key]
		from := 0
		for {
			pos := strings.Index(contents[from:], key)
			if pos < 0 {
				break
			}
			start := from + pos + len(key)
			end := strings.IndexByte(contents[start:], '\n')
			if end < 0 {
				end = len(contents)
			} else {
				end += start
			}
			contents = contents[:start] + value + contents[end:]
			from = start + len(value)
		}
	}

	return writeFile(path, contents)
}

// Predicate selects files for DirectoryReplace. It receives the directory
// holding the file and the file's local name.
type Predicate func(dir, name string) bool

// DirectoryReplace recursively patches files under root. Files matching the
// predicate (every regular file when the predicate is nil) are rewritten
// with ReplaceAll; non-matching directories recurse. Symbolic links are not
// followed, so link cycles cannot occur.
//
// The primary use is Android makefiles, which are arranged in a tree; the
// predicate there is func(_, name string) bool { return name == "Android.mk" }.
func DirectoryReplace(root string, mapping map[string]string, match Predicate) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, root)
		}
		return fmt.Errorf("subst: read dir %s: %w", root, err)
	}

	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		switch {
		case match == nil && !entry.IsDir():
			if err := ReplaceAll(path, mapping); err != nil {
				return err
			}
		case match != nil && match(root, entry.Name()):
			if err := ReplaceAll(path, mapping); err != nil {
				return err
			}
		case entry.IsDir():
			if err := DirectoryReplace(path, mapping, match); err != nil {
				return err
			}
		}
	}
	return nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("subst: read %s: %w", path, err)
	}
	return string(data), nil
}

func writeFile(path, contents string) error {
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(contents), perm); err != nil {
		return fmt.Errorf("subst: write %s: %w", path, err)
	}
	return nil
}

func sortedKeys(mapping map[string]string) []string {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

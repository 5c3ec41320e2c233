package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// RemakeDir creates the directory at the joined path, deleting whatever was
// there before. The per-target build directories are owned by the tool and
// recreated from scratch on every run.
func RemakeDir(parts ...string) (string, error) {
	path := filepath.Join(parts...)
	if err := os.RemoveAll(path); err != nil {
		return "", fmt.Errorf("generator: clear %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0o777); err != nil {
		return "", fmt.Errorf("generator: create %s: %w", path, err)
	}
	return path, nil
}

// CopyTree copies a directory tree. Destination directories are created as
// needed, so copying into an existing directory merges with its contents.
func CopyTree(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("generator: read %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, 0o777); err != nil {
		return fmt.Errorf("generator: create %s: %w", dst, err)
	}
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := CopyTree(from, to); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(from, to); err != nil {
			return err
		}
	}
	return nil
}

// MergeCopy copies src to dst, merging directories and overwriting files.
// Missing sources are ignored; missing destination parents are created.
func MergeCopy(src, dst string) error {
	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("generator: stat %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
		return fmt.Errorf("generator: create %s: %w", filepath.Dir(dst), err)
	}
	if info.IsDir() {
		return CopyTree(src, dst)
	}
	return copyFile(src, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("generator: open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("generator: stat %s: %w", src, err)
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("generator: create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("generator: copy %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("generator: close %s: %w", dst, err)
	}
	return nil
}

// toPosix converts a native path to slash-separated form.
func toPosix(path string) string {
	return filepath.ToSlash(path)
}

// toWindows converts a native path to backslash-separated form.
func toWindows(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "/", `\`)
}

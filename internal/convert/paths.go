// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

// pdfExt replaces the source extension in mirrored output paths.
const pdfExt = ".pdf"

// supportedExts are the convertible extensions, compared case-insensitively.
var supportedExts = []string{".docx", ".xlsx"}

// ErrPathRelation means a file handed to the path mapper is not inside the
// input root. Discovery never produces such a file, so it is treated as a
// fatal precondition failure.
var ErrPathRelation = errors.New("file is not under the input root")

// Supported reports whether path has a convertible extension.
func Supported(path string) bool {
	return slices.Contains(supportedExts, strings.ToLower(suffix(path)))
}

// suffix returns the final extension of the last path element. A leading
// dot alone does not start an extension, so ".docx" has none.
func suffix(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// OutputPath maps file under inputRoot to the mirrored PDF path under
// outputRoot and creates the missing parent directories of the result.
func OutputPath(file, inputRoot, outputRoot string) (string, error) {
	rel, err := filepath.Rel(inputRoot, file)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is not under %s", ErrPathRelation, file, inputRoot)
	}

	rel = strings.TrimSuffix(rel, suffix(rel)) + pdfExt
	out := filepath.Join(outputRoot, rel)

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory for %s: %w", out, err)
	}
	return out, nil
}

// Discover returns every .docx and .xlsx file under root, recursively, in
// path order. Directories are never listed even when their names match, and
// a root that is a file yields nothing. Extensions match case-insensitively
// only on Windows. Unreadable subdirectories are skipped; an unreadable root
// is an error.
func Discover(root string) ([]string, error) {
	return discover(root, runtime.GOOS)
}

func discover(root, goos string) ([]string, error) {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() || !discoverable(path, goos) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering files under %s: %w", root, err)
	}

	slices.SortFunc(files, comparePaths)
	return files, nil
}

func discoverable(path, goos string) bool {
	if goos == "windows" {
		return Supported(path)
	}
	return slices.Contains(supportedExts, suffix(path))
}

// comparePaths orders paths element by element, so "a/b" sorts before
// "a-c" even though '-' sorts before '/' bytewise.
func comparePaths(a, b string) int {
	return slices.Compare(splitPath(a), splitPath(b))
}

func splitPath(p string) []string {
	return strings.Split(filepath.ToSlash(filepath.Clean(p)), "/")
}

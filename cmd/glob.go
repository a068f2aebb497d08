// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// sourceExt is the file extension of term source files.
const sourceExt = ".ep"

// expandArgs expands arguments, resolving patterns ending with "/..." to all
// source files found recursively under the given directory.  Files and
// directories whose base name matches an exclude pattern are skipped.
// Non-pattern arguments pass through unchanged.
func expandArgs(args []string, excludes []string) ([]string, error) {
	for _, pattern := range excludes {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	var out []string
	for _, arg := range args {
		if dir, ok := strings.CutSuffix(arg, "/..."); ok {
			if dir == "" {
				dir = "."
			}
			files, err := findSourceFiles(dir, excludes)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", arg, err)
			}
			out = append(out, files...)
		} else if !excluded(arg, excludes) {
			out = append(out, arg)
		}
	}
	return out, nil
}

func findSourceFiles(root string, excludes []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && excluded(path, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && filepath.Ext(path) == sourceExt {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func excluded(path string, excludes []string) bool {
	base := filepath.Base(path)
	for _, pattern := range excludes {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

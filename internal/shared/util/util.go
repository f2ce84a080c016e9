package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SortedStringKeys returns the map's keys in sorted order.
func SortedStringKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// AppendUnique appends value when it is non-blank and not yet seen.
func AppendUnique(values []string, seen map[string]bool, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return values
	}
	if seen[value] {
		return values
	}
	seen[value] = true
	return append(values, value)
}

// TrimBlankLines strips leading and trailing blank lines while leaving
// interior formatting untouched.
func TrimBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// WriteFileWithDirs creates parent directories (0755) and writes the file with perm.
func WriteFileWithDirs(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, perm)
}

package project

import (
	"path"
	"strings"
)

// File is one source file of a generated component project. Paths are
// project-relative; content is raw source text.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// CleanPath normalizes a project-relative path: forward slashes only, no
// leading "./" or "/", "." and ".." segments collapsed.
func CleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	cleaned := path.Clean(p)
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// Find returns the file whose cleaned path equals pathKey, if any.
func Find(files []File, pathKey string) (File, bool) {
	want := CleanPath(pathKey)
	for _, f := range files {
		if CleanPath(f.Path) == want {
			return f, true
		}
	}
	return File{}, false
}

// Index builds a cleaned-path lookup over the file set. Later duplicates do
// not displace earlier entries; duplicate paths are a provider error that
// surfaces at bundle time.
func Index(files []File) map[string]File {
	idx := make(map[string]File, len(files))
	for _, f := range files {
		key := CleanPath(f.Path)
		if _, exists := idx[key]; !exists {
			idx[key] = f
		}
	}
	return idx
}

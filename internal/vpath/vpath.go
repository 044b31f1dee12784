package vpath

import (
	"path"
	"strings"
)

// Clean normalizes a virtual filesystem path to a rooted, slash-separated form.
// Backslashes are treated as separators, a leading slash is added if missing,
// and redundant elements (".", "..", doubled slashes) are resolved.
// Examples:
//   - "cfg.json" → "/cfg.json"
//   - "/a//b/./c" → "/a/b/c"
//   - `dir\file.txt` → "/dir/file.txt"
//   - "" → "/"
func Clean(name string) string {
	normalized := strings.ReplaceAll(name, `\`, "/")
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return path.Clean(normalized)
}

// Dir returns the parent directory of a cleaned path.
// Examples:
//   - "/a/b/c.txt" → "/a/b"
//   - "/cfg.json" → "/"
//   - "/" → "/"
func Dir(name string) string {
	return path.Dir(Clean(name))
}

// Parents returns every ancestor directory of a cleaned path, outermost
// first, excluding the root itself.
// Examples:
//   - Parents("/a/b/c.txt") → ["/a", "/a/b"]
//   - Parents("/cfg.json") → []
//   - Parents("/") → []
func Parents(name string) []string {
	cleaned := Clean(name)
	if cleaned == "/" {
		return nil
	}

	var parents []string
	for dir := path.Dir(cleaned); dir != "/"; dir = path.Dir(dir) {
		parents = append(parents, dir)
	}

	// Walk produced innermost-first; reverse to outermost-first.
	for i, j := 0, len(parents)-1; i < j; i, j = i+1, j-1 {
		parents[i], parents[j] = parents[j], parents[i]
	}
	return parents
}

// HasPrefix reports whether a cleaned path starts with the cleaned prefix.
// Matching is a plain string prefix on the normalized forms, so "/" matches
// everything and "/a" matches both "/a/x" and "/ab".
func HasPrefix(name, prefix string) bool {
	return strings.HasPrefix(Clean(name), Clean(prefix))
}

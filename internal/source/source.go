// Package source finds and loads template files and writes their outputs.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gubarz/t4go/internal/template"
)

// Ext is the template file extension
const Ext = ".tt"

// Template is a template file read from disk
type Template struct {
	Path string // Absolute path
	Text string
}

// Find expands patterns relative to root. A pattern naming a directory
// matches every template below it.
func Find(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"**/*" + Ext}
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if info, err := os.Stat(filepath.Join(root, pattern)); err == nil && info.IsDir() {
			if pattern = strings.TrimSuffix(pattern, "/"); pattern == "." || pattern == "" {
				pattern = "**/*" + Ext
			} else {
				pattern += "/**/*" + Ext
			}
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern: %s", pattern)
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching %s: %w", pattern, err)
		}
		for _, m := range matches {
			full := filepath.Join(root, filepath.FromSlash(m))
			if !seen[full] {
				seen[full] = true
				files = append(files, full)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// Load reads a template file
func Load(path string) (*Template, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving path: %w", err)
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	return &Template{Path: abs, Text: string(raw)}, nil
}

// OutputPath returns the generated file path for a template:
// "views/page.tt" with suffix "_tt.go" becomes "views/page_tt.go".
func OutputPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

// DumpPath returns the debug dump path for a template
func DumpPath(path string) string {
	return path + ".out"
}

// WriteDump writes the segment dump of a template next to it
func WriteDump(path string, segs []template.Segment) error {
	f, err := os.Create(DumpPath(path))
	if err != nil {
		return err
	}
	if err := template.Dump(f, segs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// TypeName derives an exported Go/Rust type name from a template path:
// "user_list.tt" becomes "UserList".
func TypeName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var b strings.Builder
	upper := true
	for _, r := range base {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "T" + name
	}
	return name
}

// PackageName derives a Go package name from the template's directory
func PackageName(path string) string {
	dir := filepath.Base(filepath.Dir(path))
	var b strings.Builder
	for _, r := range strings.ToLower(dir) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		return "main"
	}
	return name
}

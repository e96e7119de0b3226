package template

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	identPattern = `[A-Za-z_][A-Za-z0-9_]*`
	paramPattern = `\s*(` + identPattern + `)\s*=\s*"((?:[^"\\]|\\.)*)"\s*`
)

var (
	directiveRegex = regexp.MustCompile(`(?s)^\s*(` + identPattern + `)(?:\s+((?:` + paramPattern + `)*))?\s*$`)
	paramRegex     = regexp.MustCompile(`(?s)` + paramPattern)
)

// ParseDirective parses the content of a <#@ ... #> block
func ParseDirective(content string) (Directive, error) {
	matches := directiveRegex.FindStringSubmatch(content)
	if matches == nil {
		return Directive{}, fmt.Errorf("malformed directive %q", content)
	}

	dir := Directive{Name: matches[1]}
	for _, p := range paramRegex.FindAllStringSubmatch(matches[2], -1) {
		dir.Params = append(dir.Params, Param{Key: p[1], Value: unescapeValue(p[2])})
	}
	return dir, nil
}

// unescapeValue resolves \" and \\. Any other backslash is kept as is.
func unescapeValue(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

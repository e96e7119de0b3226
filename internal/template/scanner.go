package template

import "strings"

// Structural markers
const (
	CodeOpen      = "<#"
	ExprOpen      = "<#="
	DirectiveOpen = "<#@"
	BlockClose    = "#>"
)

// matchPrefix consumes tok from the front of s
func matchPrefix(s, tok string) (string, bool) {
	if strings.HasPrefix(s, tok) {
		return s[len(tok):], true
	}
	return s, false
}

// matchOpen matches a real code-open marker. An open immediately followed by
// another open is the escaped form and does not match.
func matchOpen(s string) (string, bool) {
	rest, ok := matchPrefix(s, CodeOpen)
	if !ok || strings.HasPrefix(rest, CodeOpen) {
		return s, false
	}
	return rest, true
}

// matchDoubleOpen matches the escaped "<#<#"
func matchDoubleOpen(s string) (string, bool) {
	return matchPrefix(s, CodeOpen+CodeOpen)
}

// matchClose matches a real block-close marker
func matchClose(s string) (string, bool) {
	rest, ok := matchPrefix(s, BlockClose)
	if !ok || strings.HasPrefix(rest, BlockClose) {
		return s, false
	}
	return rest, true
}

// matchDoubleClose matches the escaped "#>#>"
func matchDoubleClose(s string) (string, bool) {
	return matchPrefix(s, BlockClose+BlockClose)
}

// readText takes everything before the next code-open marker.
// ok is false when no marker follows.
func readText(s string) (done, rest string, ok bool) {
	i := strings.Index(s, CodeOpen)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i:], true
}

// readCode takes everything before the next close marker.
// ok is false when the block never closes.
func readCode(s string) (done, rest string, ok bool) {
	i := strings.Index(s, BlockClose)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i:], true
}

// Package emit turns compiled template segments into host source code.
package emit

import (
	"fmt"
	"strings"

	"github.com/gubarz/t4go/internal/template"
)

// Backend renders individual segments in a host language
type Backend interface {
	// Name identifies the backend on the command line
	Name() string
	// Text writes s verbatim
	Text(s string) string
	// Code splices a code block into the body
	Code(s string) string
	// Expr writes the formatted value of expr, passed through the function
	// named escape when it is not empty. The name is never validated.
	Expr(expr, escape string) string
	// Frame wraps a generated body into a complete source unit
	Frame(body string, f Frame) (string, error)
}

// Frame describes the type a template is attached to
type Frame struct {
	Package string // Go only
	Type    string
	Source  string   // Template path, recorded in the generated header
	Imports []string // Extra Go imports used by code blocks
}

// Emit walks segs once with a fresh state and returns the body code.
// Directives produce nothing.
func Emit(segs []template.Segment, b Backend, opts template.Options) (string, error) {
	state := opts.Initial()
	var out strings.Builder

	for _, s := range segs {
		switch s.Kind {
		case template.KindText:
			out.WriteString(b.Text(s.Content))
		case template.KindCode:
			out.WriteString(b.Code(s.Content))
		case template.KindExpr:
			out.WriteString(b.Expr(s.Content, state.Escape))
		case template.KindDirective:
			if _, err := state.Apply(s.Directive); err != nil {
				return "", err
			}
		default:
			return "", fmt.Errorf("unknown segment kind %v", s.Kind)
		}
	}

	if state.Debug || opts.Debug {
		opts.Diagnostics().Trace("generated code:\n%s", out.String())
	}
	return out.String(), nil
}

// Generate emits the program body and wraps it in its frame
func Generate(p *template.Program, b Backend, f Frame) (string, error) {
	body, err := Emit(p.Segments, b, p.Options)
	if err != nil {
		return "", err
	}
	return b.Frame(body, f)
}

// Lookup returns the backend registered under name
func Lookup(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "", "go", "golang":
		return Go{}, nil
	case "rust", "rs":
		return Rust{}, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s (supported: go, rust)", name)
	}
}

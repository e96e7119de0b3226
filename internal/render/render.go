// Package render interprets a compiled program directly, without handing the
// generated code to a host compiler. Text is written verbatim, code blocks are
// skipped and expressions are resolved by an Evaluator.
package render

import (
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/gubarz/t4go/internal/template"
)

// Evaluator resolves the value of an expression block
type Evaluator interface {
	Eval(expr string) (any, error)
}

// EvaluatorFunc adapts a function to Evaluator
type EvaluatorFunc func(expr string) (any, error)

func (f EvaluatorFunc) Eval(expr string) (any, error) { return f(expr) }

// Registry maps escape function names to implementations
type Registry map[string]func(string) string

// DefaultRegistry returns the built-in escape functions
func DefaultRegistry() Registry {
	return Registry{
		"html":        html.EscapeString,
		"escape_html": html.EscapeString,
		"url":         url.QueryEscape,
		"upper":       strings.ToUpper,
		"lower":       strings.ToLower,
		"trim":        strings.TrimSpace,
	}
}

// Register adds or replaces an escape function
func (r Registry) Register(name string, fn func(string) string) {
	r[name] = fn
}

// Renderer writes a program's output
type Renderer struct {
	eval    Evaluator
	escapes Registry
}

// NewRenderer creates a renderer using the default escape functions
func NewRenderer(eval Evaluator) *Renderer {
	return &Renderer{
		eval:    eval,
		escapes: DefaultRegistry(),
	}
}

// WithRegistry sets a custom escape registry
func (r *Renderer) WithRegistry(reg Registry) *Renderer {
	r.escapes = reg
	return r
}

// Render walks the program once with a fresh state and writes the output to w
func (r *Renderer) Render(w io.Writer, p *template.Program) error {
	state := p.Options.Initial()

	for _, s := range p.Segments {
		switch s.Kind {
		case template.KindText:
			if _, err := io.WriteString(w, s.Content); err != nil {
				return err
			}
		case template.KindExpr:
			v, err := r.eval.Eval(strings.TrimSpace(s.Content))
			if err != nil {
				return fmt.Errorf("expression %q: %w", s.Content, err)
			}
			out := fmt.Sprint(v)
			if state.Escape != "" {
				fn, ok := r.escapes[state.Escape]
				if !ok {
					return fmt.Errorf("unknown escape function %q", state.Escape)
				}
				out = fn(out)
			}
			if _, err := io.WriteString(w, out); err != nil {
				return err
			}
		case template.KindDirective:
			if _, err := state.Apply(s.Directive); err != nil {
				return err
			}
		}
	}
	return nil
}

// String renders the program into a string
func (r *Renderer) String(p *template.Program) (string, error) {
	var b strings.Builder
	if err := r.Render(&b, p); err != nil {
		return "", err
	}
	return b.String(), nil
}

package template

import (
	"fmt"
	"strings"
)

// Kind classifies a Segment
type Kind int

const (
	KindText      Kind = iota // Literal template text
	KindCode                  // <# ... #>
	KindExpr                  // <#= ... #>
	KindDirective             // <#@ ... #>
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindCode:
		return "Code"
	case KindExpr:
		return "Expr"
	case KindDirective:
		return "Dir"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Param is a single key="value" pair of a directive
type Param struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// Directive is a parsed <#@ name key="value" ... #> block.
// Params keep insertion order and keys may repeat.
type Directive struct {
	Name   string  `yaml:"name"`
	Params []Param `yaml:"params,omitempty"`
}

func (d Directive) String() string {
	var b strings.Builder
	b.WriteString(d.Name)
	for _, p := range d.Params {
		fmt.Fprintf(&b, " %s=%q", p.Key, p.Value)
	}
	return b.String()
}

// Segment is one classified unit of a parsed template.
// Content holds the text for Text, Code and Expr segments and the raw block
// source for Directive segments.
type Segment struct {
	Kind      Kind
	Content   string
	Directive Directive
}

// Text returns a literal text segment
func Text(s string) Segment { return Segment{Kind: KindText, Content: s} }

// Code returns a code segment
func Code(s string) Segment { return Segment{Kind: KindCode, Content: s} }

// Expr returns an expression segment
func Expr(s string) Segment { return Segment{Kind: KindExpr, Content: s} }

// Dir returns a directive segment
func Dir(raw string, d Directive) Segment {
	return Segment{Kind: KindDirective, Content: raw, Directive: d}
}

func (s Segment) isText() bool { return s.Kind == KindText }

// trimsWhitespace reports whether a block on its own line should swallow
// the surrounding blank line. Expressions keep their whitespace.
func (s Segment) trimsWhitespace() bool {
	return s.Kind == KindCode || s.Kind == KindDirective
}

// TemplateError is a fatal compilation error.
// Index is the byte offset of the offending block when known.
type TemplateError struct {
	Reason string
	Index  int
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Index, e.Reason)
}

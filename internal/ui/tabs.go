package ui

import (
	"fmt"
	"strings"

	"github.com/gubarz/t4go/internal/emit"
	"github.com/gubarz/t4go/internal/render"
	"github.com/gubarz/t4go/internal/source"
	"github.com/gubarz/t4go/internal/template"
)

// Preview describes what the preview shows for one template
type Preview struct {
	Path    string
	Options template.Options
	Backend emit.Backend
	Frame   emit.Frame
	Eval    render.Evaluator // nil renders expressions as placeholders
}

// tab is one page of the preview
type tab struct {
	title   string
	content string
}

// placeholderEval shows the expression itself instead of a value
var placeholderEval = render.EvaluatorFunc(func(expr string) (any, error) {
	return "«" + expr + "»", nil
})

// buildTabs loads, compiles and renders the template into preview pages.
// A compile error replaces every page but the source.
func buildTabs(p Preview) ([]tab, error) {
	tmpl, err := source.Load(p.Path)
	if err != nil {
		return nil, err
	}

	tabs := []tab{{title: "Source", content: tmpl.Text}}

	prog, err := template.Compile(tmpl.Text, p.Options)
	if err != nil {
		msg := styles.Error.Render(fmt.Sprintf("compile error: %v", err))
		for _, title := range []string{"Segments", "Code", "Output"} {
			tabs = append(tabs, tab{title: title, content: msg})
		}
		return tabs, nil
	}

	tabs = append(tabs, tab{title: "Segments", content: renderSegments(prog.Segments)})

	code, err := emit.Generate(prog, p.Backend, p.Frame)
	if err != nil {
		code = styles.Error.Render(err.Error())
	}
	tabs = append(tabs, tab{title: "Code", content: code})

	eval := p.Eval
	if eval == nil {
		eval = placeholderEval
	}
	out, err := render.NewRenderer(eval).String(prog)
	if err != nil {
		out = styles.Error.Render(err.Error())
	}
	tabs = append(tabs, tab{title: "Output", content: out})

	return tabs, nil
}

// renderSegments lists segments one per line, colored by kind
func renderSegments(segs []template.Segment) string {
	b := getBuilder()
	defer putBuilder(b)
	for i, s := range segs {
		body := fmt.Sprintf("%q", s.Content)
		if s.Kind == template.KindDirective {
			body = s.Directive.String()
		}
		line := fmt.Sprintf("%3d %-4s %s", i, s.Kind, body)
		b.WriteString(styles.ForKind(s.Kind).Render(line))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

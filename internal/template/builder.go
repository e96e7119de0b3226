package template

import (
	"errors"
	"fmt"
	"strings"
)

// builder turns raw template text into segments in a single left-to-right pass
type builder struct {
	src   string
	state State
	sink  Sink
	trace tracer
	segs  []Segment
}

// Build splits src into Text, Code, Expr and Directive segments. Directives
// are applied to a build-time state as they are read so the debug flag takes
// effect immediately. Any error aborts the whole build.
func Build(src string, opts Options) ([]Segment, error) {
	b := &builder{
		src:   src,
		state: opts.Initial(),
		sink:  opts.Diagnostics(),
	}
	b.trace = tracer{sink: b.sink, state: &b.state}
	return b.run()
}

func (b *builder) offset(cur string) int {
	return len(b.src) - len(cur)
}

func (b *builder) run() ([]Segment, error) {
	cur := b.src
	b.trace.printf("reading template")

	for cur != "" {
		rest, text := b.readText(cur)
		b.segs = append(b.segs, Text(text))
		cur = rest

		start := b.offset(cur)
		var err error
		if rest, ok := matchPrefix(cur, ExprOpen); ok {
			b.trace.printf("expression start at %d", start)
			cur, err = b.readBlock(rest, start, KindExpr)
		} else if rest, ok := matchPrefix(cur, DirectiveOpen); ok {
			b.trace.printf("directive start at %d", start)
			cur, err = b.readBlock(rest, start, KindDirective)
		} else if rest, ok := matchOpen(cur); ok {
			b.trace.printf("code start at %d", start)
			cur, err = b.readBlock(rest, start, KindCode)
		}
		if err != nil {
			return nil, err
		}
		b.trace.printf("rest: %q", cur)
	}

	b.trace.printf("template ok")
	return b.segs, nil
}

// readText accumulates literal text up to the next real block start,
// resolving "<#<#" to a literal "<#".
func (b *builder) readText(input string) (string, string) {
	var content strings.Builder
	cur := input

	for {
		done, rest, ok := readText(cur)
		content.WriteString(done)
		if !ok {
			return rest, content.String()
		}
		cur = rest
		b.trace.printf("take text: %q", done)

		if rest, ok := matchDoubleOpen(cur); ok {
			b.trace.printf("double-escape")
			content.WriteString(CodeOpen)
			cur = rest
			if cur == "" {
				return cur, content.String()
			}
		} else if done == "" {
			return cur, content.String()
		}
	}
}

// readBlock reads block content up to a real close marker, resolving
// "#>#>" to a literal "#>", and records the segment.
func (b *builder) readBlock(input string, start int, kind Kind) (string, error) {
	rest, content, err := b.readCode(input, start)
	if err != nil {
		return "", err
	}

	switch kind {
	case KindDirective:
		dir, perr := ParseDirective(content)
		if perr != nil {
			b.sink.Warn("malformed directive: %s", content)
			return "", &TemplateError{
				Reason: fmt.Sprintf("could not understand the directive: `%s`", content),
				Index:  start,
			}
		}
		b.trace.printf("directive: %s", dir)
		unknown, aerr := b.state.Apply(dir)
		if aerr != nil {
			var te *TemplateError
			if errors.As(aerr, &te) {
				te.Index = start
			}
			return "", aerr
		}
		for _, p := range unknown {
			b.sink.Warn("unrecognized template parameter %q in %q", p.Key, dir.Name)
		}
		b.segs = append(b.segs, Dir(content, dir))
	case KindExpr:
		b.segs = append(b.segs, Expr(content))
	default:
		b.segs = append(b.segs, Code(content))
	}
	return rest, nil
}

func (b *builder) readCode(input string, start int) (string, string, error) {
	var content strings.Builder
	cur := input

	for {
		done, rest, ok := readCode(cur)
		if !ok {
			b.trace.printf("no close marker after offset %d", start)
			return "", "", &TemplateError{Reason: "unclosed code or expression block", Index: start}
		}
		b.trace.printf("take code: %q", done)
		content.WriteString(done)
		cur = rest

		if rest, ok := matchClose(cur); ok {
			b.trace.printf("code end")
			return rest, content.String(), nil
		}
		// readCode stopped at "#>", so the only other possibility is "#>#>"
		rest, _ = matchDoubleClose(cur)
		b.trace.printf("double-escape")
		content.WriteString(BlockClose)
		cur = rest
	}
}

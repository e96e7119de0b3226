package emit

import (
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Go emits the body of a WriteTemplate(_w io.Writer) error method
type Go struct {
	// Raw skips gofmt on the framed output
	Raw bool
}

func (Go) Name() string { return "go" }

func (Go) Text(s string) string {
	return fmt.Sprintf("if _, err := io.WriteString(_w, %s); err != nil {\nreturn err\n}\n", goLiteral(s))
}

// Code ends the block with a newline so the next statement starts on its own
// line. The block itself is unchanged.
func (Go) Code(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func (Go) Expr(expr, escape string) string {
	if escape == "" {
		return fmt.Sprintf("if _, err := fmt.Fprint(_w, %s); err != nil {\nreturn err\n}\n", expr)
	}
	return fmt.Sprintf("{\n_s := fmt.Sprint(%s)\nif _, err := io.WriteString(_w, %s(_s)); err != nil {\nreturn err\n}\n}\n",
		expr, escape)
}

func (g Go) Frame(body string, f Frame) (string, error) {
	if f.Type == "" {
		return "", fmt.Errorf("go backend needs a type name")
	}
	pkg := f.Package
	if pkg == "" {
		pkg = "main"
	}

	var b strings.Builder
	if f.Source != "" {
		fmt.Fprintf(&b, "// Code generated by t4go from %s. DO NOT EDIT.\n\n", f.Source)
	}
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("import (\n\"fmt\"\n\"io\"\n\"strings\"\n")
	for _, imp := range f.Imports {
		if imp != "fmt" && imp != "io" && imp != "strings" {
			fmt.Fprintf(&b, "%q\n", imp)
		}
	}
	b.WriteString(")\n\n")
	b.WriteString("var _ = fmt.Fprint\n\n")
	fmt.Fprintf(&b, "// WriteTemplate writes the rendered template to _w.\n")
	fmt.Fprintf(&b, "func (t *%s) WriteTemplate(_w io.Writer) error {\n", f.Type)
	b.WriteString(body)
	b.WriteString("return nil\n}\n\n")
	fmt.Fprintf(&b, "// String renders the template.\n")
	fmt.Fprintf(&b, "func (t *%s) String() string {\n", f.Type)
	b.WriteString("var sb strings.Builder\n_ = t.WriteTemplate(&sb)\nreturn sb.String()\n}\n")

	if g.Raw {
		return b.String(), nil
	}
	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return "", fmt.Errorf("generated code does not parse: %w", err)
	}
	return string(src), nil
}

// goLiteral quotes s as a Go string expression. Raw strings cannot hold a
// backtick, drop carriage returns and reject NUL, a byte order mark and
// invalid UTF-8, so runs of those are quoted instead.
func goLiteral(s string) string {
	if s == "" {
		return `""`
	}
	var parts []string
	start, quoted := 0, false
	flush := func(end int) {
		if end == start {
			return
		}
		if quoted {
			parts = append(parts, strconv.Quote(s[start:end]))
		} else {
			parts = append(parts, "`"+s[start:end]+"`")
		}
		start = end
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		unsafe := !rawSafe(r, size)
		if unsafe != quoted {
			flush(i)
			quoted = unsafe
		}
		i += size
	}
	flush(len(s))
	return strings.Join(parts, " + ")
}

// rawSafe reports whether a decoded rune may appear inside a raw string
func rawSafe(r rune, size int) bool {
	switch {
	case r == utf8.RuneError && size == 1:
		return false
	case r == '`', r == '\r', r == 0, r == '\uFEFF':
		return false
	}
	return true
}

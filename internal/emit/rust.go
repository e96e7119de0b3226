package emit

import (
	"fmt"
	"strings"
)

// Fence returns a run of ch one longer than the longest run of ch in text,
// so a raw literal fenced with it can never end early.
func Fence(text string, ch byte) string {
	longest, run := 0, 0
	for i := 0; i < len(text); i++ {
		if text[i] == ch {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat(string(ch), longest+1)
}

// Rust emits a body for a std::fmt::Display implementation writing to _fmt
type Rust struct{}

func (Rust) Name() string { return "rust" }

func (Rust) Text(s string) string {
	fence := Fence(s, '#')
	return fmt.Sprintf("_fmt.write_str(r%s\"%s\"%s)?;\n", fence, s, fence)
}

func (Rust) Code(s string) string { return s }

func (Rust) Expr(expr, escape string) string {
	if escape == "" {
		return fmt.Sprintf("write!(_fmt, \"{}\", %s)?;\n", expr)
	}
	return fmt.Sprintf("{\nlet _s = format!(\"{}\", %s);\nlet _s_transformed = %s(&_s);\n_fmt.write_str(&_s_transformed)?;\n}\n",
		expr, escape)
}

func (Rust) Frame(body string, f Frame) (string, error) {
	if f.Type == "" {
		return "", fmt.Errorf("rust backend needs a type name")
	}
	var b strings.Builder
	if f.Source != "" {
		fmt.Fprintf(&b, "// Generated by t4go from %s. DO NOT EDIT.\n", f.Source)
	}
	fmt.Fprintf(&b, "impl ::std::fmt::Display for %s {\n", f.Type)
	b.WriteString("fn fmt(&self, _fmt: &mut ::std::fmt::Formatter) -> ::std::fmt::Result {\n")
	b.WriteString(body)
	b.WriteString("Ok(())\n}\n}\n")
	return b.String(), nil
}

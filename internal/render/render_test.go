package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/t4go/internal/template"
)

func compile(t *testing.T, src string, opts template.Options) *template.Program {
	t.Helper()
	prog, err := template.Compile(src, opts)
	require.NoError(t, err)
	return prog
}

var upperEval = EvaluatorFunc(func(expr string) (any, error) {
	return strings.ToUpper(expr), nil
})

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts template.Options
		want string
	}{
		{
			name: "text only",
			src:  "plain",
			want: "plain",
		},
		{
			name: "expressions are trimmed before evaluation",
			src:  "Hello <#= name #>!",
			want: "Hello NAME!",
		},
		{
			name: "code is skipped",
			src:  "a<# x := 1 #>b",
			want: "ab",
		},
		{
			name: "whitespace cleaning",
			src:  "A\n<# code #>\nB",
			opts: template.Options{CleanWhitespace: true},
			want: "A\nB",
		},
		{
			name: "no cleaning",
			src:  "A\n<# code #>\nB",
			want: "A\n\nB",
		},
		{
			name: "escape scoped between directives",
			src:  `<#= a&b #>|<#@ escape function="html" #><#= a&b #>|<#@ escape function="" #><#= a&b #>`,
			want: "A&B|A&amp;B|A&B",
		},
		{
			name: "initial escape from options",
			src:  "<#= x #>",
			opts: template.Options{Escape: "lower"},
			want: "x",
		},
		{
			name: "escaped delimiters",
			src:  "a <#<# b <#= \"#>#>\" #>",
			want: "a <# b \"#>\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRenderer(upperEval).String(compile(t, tt.src, tt.opts))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderUnknownEscape(t *testing.T) {
	prog := compile(t, `<#@ escape function="nope" #><#= x #>`, template.Options{})
	_, err := NewRenderer(upperEval).String(prog)
	assert.EqualError(t, err, `unknown escape function "nope"`)
}

func TestRenderCustomRegistry(t *testing.T) {
	reg := DefaultRegistry()
	reg.Register("stars", func(s string) string { return "*" + s + "*" })

	prog := compile(t, `<#@ escape function="stars" #><#= x #>`, template.Options{})
	got, err := NewRenderer(upperEval).WithRegistry(reg).String(prog)
	require.NoError(t, err)
	assert.Equal(t, "*X*", got)
}

func TestRenderEvalError(t *testing.T) {
	failing := EvaluatorFunc(func(expr string) (any, error) {
		return nil, fmt.Errorf("boom")
	})
	_, err := NewRenderer(failing).String(compile(t, "<#= x #>", template.Options{}))
	assert.EqualError(t, err, `expression " x ": boom`)
}

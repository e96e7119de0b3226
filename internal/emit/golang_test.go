package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/t4go/internal/template"
)

func TestGoLiteral(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", `""`},
		{"plain", "abc", "`abc`"},
		{"newlines stay raw", "a\nb", "`a\nb`"},
		{"backtick", "a`b", "`a` + \"`\" + `b`"},
		{"leading backticks", "``x", "\"``\" + `x`"},
		{"only backtick", "`", "\"`\""},
		{"carriage return", "x\r\ny", "`x` + \"\\r\" + `\ny`"},
		{"quotes and backslashes", `say "hi" \n`, "`say \"hi\" \\n`"},
		{"byte order mark", "\ufeffHello", "\"\\ufeff\" + `Hello`"},
		{"invalid utf-8", "caf\xe9 ok", "`caf` + \"\\xe9\" + ` ok`"},
		{"nul", "a\x00b", "`a` + \"\\x00\" + `b`"},
		{"mixed unsafe run", "a\x00`\r", "`a` + \"\\x00`\\r\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, goLiteral(tt.text))
		})
	}
}

func TestGoExpr(t *testing.T) {
	assert.Equal(t, "if _, err := fmt.Fprint(_w, t.Name); err != nil {\nreturn err\n}\n", Go{}.Expr("t.Name", ""))
	assert.Equal(t,
		"{\n_s := fmt.Sprint(t.Name)\nif _, err := io.WriteString(_w, html.EscapeString(_s)); err != nil {\nreturn err\n}\n}\n",
		Go{}.Expr("t.Name", "html.EscapeString"))
}

func TestGenerateGo(t *testing.T) {
	src := "<#@ template cleanws=\"true\" #>\nHello <#= t.Name #>!\n<# for _, item := range t.Items { #>\n- <#= item #>\n<# } #>\n"
	prog, err := template.Compile(src, template.Options{})
	require.NoError(t, err)

	got, err := Generate(prog, Go{}, Frame{
		Package: "views",
		Type:    "Page",
		Source:  "page.tt",
		Imports: []string{"html", "fmt"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "// Code generated by t4go from page.tt. DO NOT EDIT.\n\npackage views\n"))
	assert.Contains(t, got, "\t\"html\"\n")
	assert.Equal(t, 1, strings.Count(got, "\"fmt\""))
	assert.Contains(t, got, "func (t *Page) WriteTemplate(_w io.Writer) error {")
	assert.Contains(t, got, "func (t *Page) String() string {")
	assert.Contains(t, got, "io.WriteString(_w, `Hello `)")
	assert.Contains(t, got, "fmt.Fprint(_w, t.Name)")
	assert.Contains(t, got, "for _, item := range t.Items {")
	assert.Contains(t, got, "io.WriteString(_w, `- `)")
}

func TestGenerateGoAnyText(t *testing.T) {
	for _, src := range []string{
		"\ufeffHello <#= t.Name #>",
		"caf\xe9 <#= t.Name #>",
		"a\x00b",
		"`tick`\r\n",
	} {
		prog, err := template.Compile(src, template.Options{})
		require.NoError(t, err)

		_, err = Generate(prog, Go{}, Frame{Type: "T"})
		assert.NoError(t, err, "source %q", src)
	}
}

func TestGenerateGoRejectsBrokenCode(t *testing.T) {
	prog, err := template.Compile("<# if { #>", template.Options{})
	require.NoError(t, err)

	_, err = Generate(prog, Go{}, Frame{Type: "Broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generated code does not parse")

	// Raw output skips gofmt and so does not check the code
	_, err = Generate(prog, Go{Raw: true}, Frame{Type: "Broken"})
	assert.NoError(t, err)
}

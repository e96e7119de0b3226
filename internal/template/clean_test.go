package template

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textOf concatenates the Text segments, which is what the template prints
// when code and expressions produce nothing.
func textOf(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Kind == KindText {
			b.WriteString(s.Content)
		}
	}
	return b.String()
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		clean bool
		want  string
	}{
		{
			name:  "disabled keeps blank line",
			input: "A\n<# code #>\nB",
			want:  "A\n\nB",
		},
		{
			name:  "block alone on its line",
			input: "A\n<# code #>\nB",
			clean: true,
			want:  "A\nB",
		},
		{
			name:  "enabled by directive",
			input: "<#@ template cleanws=\"true\" #>A\n<# code #>\nB",
			want:  "A\nB",
		},
		{
			name:  "clean_whitespace alias",
			input: "<#@ template clean_whitespace=\"true\" #>A\n<# code #>\nB",
			want:  "A\nB",
		},
		{
			name:  "indented block with trailing spaces",
			input: "A\n    <# code #>  \t\nB",
			clean: true,
			want:  "A\nB",
		},
		{
			name:  "directive on first line",
			input: "<#@ template cleanws=\"true\" #>\nA\n  <# x #>  \nB\n",
			want:  "A\nB\n",
		},
		{
			name:  "stacked blocks",
			input: "A\n<# x #>\n<# y #>\nB",
			clean: true,
			want:  "A\nB",
		},
		{
			name:  "stacked blocks with indentation",
			input: "A\n<# x #> \n  <# y #>\nB",
			clean: true,
			want:  "A\nB",
		},
		{
			name:  "block sharing a line with text",
			input: "A <# x #>\nB",
			clean: true,
			want:  "A \nB",
		},
		{
			name:  "text after block on same line",
			input: "A\n<# x #> B\nC",
			clean: true,
			want:  "A\n B\nC",
		},
		{
			name:  "expressions keep their line",
			input: "A\n<#= v #>\nB",
			clean: true,
			want:  "A\n\nB",
		},
		{
			name:  "crlf line endings",
			input: "A\r\n<# x #>\r\nB",
			clean: true,
			want:  "A\r\nB",
		},
		{
			name:  "block at start of file",
			input: "<# x #>\nA",
			clean: true,
			want:  "A",
		},
		{
			name:  "disabled mid template",
			input: "<#@ template cleanws=\"true\" #>A\n<# x #>\nB\n<#@ template cleanws=\"false\" #>\nC",
			want:  "A\nB\n\nC",
		},
		{
			name:  "too few segments",
			input: "<# x #>",
			clean: true,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{CleanWhitespace: tt.clean}
			segs, err := Build(tt.input, opts)
			require.NoError(t, err)

			require.NoError(t, Clean(segs, opts))
			assert.Equal(t, tt.want, textOf(segs))
		})
	}
}

func TestCleanOnlyShortensText(t *testing.T) {
	input := "A\n<# x #>\n<#@ template debug=\"false\" #>\n<#= y #>\nB"
	opts := Options{CleanWhitespace: true}

	before, err := Build(input, opts)
	require.NoError(t, err)
	after, err := Build(input, opts)
	require.NoError(t, err)
	require.NoError(t, Clean(after, opts))

	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Kind, after[i].Kind)
		if before[i].Kind != KindText {
			if diff := cmp.Diff(before[i], after[i]); diff != "" {
				t.Errorf("segment %d changed (-want +got):\n%s", i, diff)
			}
			continue
		}
		assert.Contains(t, before[i].Content, after[i].Content)
	}
}

func TestCleanBadBoolean(t *testing.T) {
	segs := []Segment{
		Text("a\n"),
		Dir("", Directive{Name: "template", Params: []Param{{Key: "cleanws", Value: "1"}}}),
		Text("\nb"),
	}
	err := Clean(segs, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid boolean")
}

func TestLineMatch(t *testing.T) {
	m, ok := wsTillNewline(" \t\r\nx")
	require.True(t, ok)
	assert.Equal(t, lineMatch{ws: 2, newline: 2}, m)

	_, ok = wsTillNewline("  x\n")
	assert.False(t, ok)

	m, ok = wsTillNewlineReverse("x\r\n \t")
	require.True(t, ok)
	assert.Equal(t, lineMatch{ws: 2, newline: 1}, m)

	_, ok = wsTillNewlineReverse("x  ")
	assert.False(t, ok)
}

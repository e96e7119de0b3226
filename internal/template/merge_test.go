package template

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge(t *testing.T) {
	escape := Directive{Name: "escape", Params: []Param{{Key: "function", Value: "f"}}}

	tests := []struct {
		name  string
		input []Segment
		want  []Segment
	}{
		{
			name:  "empty",
			input: nil,
			want:  nil,
		},
		{
			name:  "runs of text and code",
			input: []Segment{Text("a"), Text("b"), Code("c"), Code("d"), Text("e")},
			want:  []Segment{Text("ab"), Code("cd"), Text("e")},
		},
		{
			name:  "empty text and code dropped",
			input: []Segment{Text(""), Code("x"), Text(""), Code(""), Code("y"), Text("")},
			want:  []Segment{Code("xy")},
		},
		{
			name:  "expressions stand alone",
			input: []Segment{Expr("a"), Text(""), Expr("b"), Text("c")},
			want:  []Segment{Expr("a"), Expr("b"), Text("c")},
		},
		{
			name:  "empty expression kept",
			input: []Segment{Text("a"), Expr(""), Text("b")},
			want:  []Segment{Text("a"), Expr(""), Text("b")},
		},
		{
			name:  "directive flushes pending run",
			input: []Segment{Text("a"), Dir("", escape), Text("b")},
			want:  []Segment{Text("a"), Dir("", escape), Text("b")},
		},
		{
			name:  "directive between expressions keeps order",
			input: []Segment{Expr("a"), Dir("", escape), Expr("b")},
			want:  []Segment{Expr("a"), Dir("", escape), Expr("b")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	inputs := []string{
		"Hello <#= name #>!\n<# for i := range 3 { #>x<# } #>",
		"<#@ escape function=\"html\" #><#= a #><#= b #>tail",
		"a<#<#b<# c #>#>d #>e",
	}

	for _, input := range inputs {
		segs, err := Build(input, Options{})
		if err != nil {
			t.Fatalf("build %q: %v", input, err)
		}
		once := Merge(segs)
		twice := Merge(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("merge not idempotent for %q (-once +twice):\n%s", input, diff)
		}
	}
}

package template

import (
	"fmt"
	"io"
)

// Program is a compiled template ready for emission
type Program struct {
	Source   string
	Raw      []Segment // Segments as built, before cleaning and merging
	Segments []Segment
	Options  Options
}

// Compile runs the build, clean and merge passes over src
func Compile(src string, opts Options) (*Program, error) {
	raw, err := Build(src, opts)
	if err != nil {
		return nil, err
	}

	segs := make([]Segment, len(raw))
	copy(segs, raw)
	if err := Clean(segs, opts); err != nil {
		return nil, err
	}

	return &Program{
		Source:   src,
		Raw:      raw,
		Segments: Merge(segs),
		Options:  opts,
	}, nil
}

// Dump writes one "<Kind>:<content>" line per segment. Content is written
// raw, directives included, so a segment spanning lines spans lines here too.
func Dump(w io.Writer, segs []Segment) error {
	for _, s := range segs {
		if _, err := fmt.Fprintf(w, "%s:%s\n", s.Kind, s.Content); err != nil {
			return err
		}
	}
	return nil
}

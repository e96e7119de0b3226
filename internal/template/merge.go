package template

import "strings"

// Merge coalesces runs of Text and runs of Code into single segments so the
// emitter produces as few write statements as possible. Empty Text and Code
// fragments are dropped. Directives and expressions always stand alone; a
// directive flushes the pending run so ordering is preserved.
func Merge(segs []Segment) []Segment {
	var (
		merged  []Segment
		pending strings.Builder
		kind    Kind
		open    bool // pending holds a Text or Code run of kind
	)

	flush := func() {
		if open {
			merged = append(merged, Segment{Kind: kind, Content: pending.String()})
			pending.Reset()
			open = false
		}
	}

	for _, s := range segs {
		switch s.Kind {
		case KindText, KindCode:
			if s.Content == "" {
				continue
			}
			if open && kind != s.Kind {
				flush()
			}
			kind, open = s.Kind, true
			pending.WriteString(s.Content)
		default:
			flush()
			merged = append(merged, s)
		}
	}
	flush()
	return merged
}

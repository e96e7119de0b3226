package template

// lineMatch is a "horizontal whitespace then one newline" match
type lineMatch struct {
	ws      int // bytes of spaces/tabs
	newline int // 1 for "\n", 2 for "\r\n"
}

// wsTillNewline matches spaces/tabs followed by one line ending at the
// start of s.
func wsTillNewline(s string) (lineMatch, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	switch {
	case i < len(s) && s[i] == '\n':
		return lineMatch{ws: i, newline: 1}, true
	case i+1 < len(s) && s[i] == '\r' && s[i+1] == '\n':
		return lineMatch{ws: i, newline: 2}, true
	}
	return lineMatch{}, false
}

// wsTillNewlineReverse is wsTillNewline measured backwards from the end of s.
// Only the "\n" of a trailing "\r\n" is counted.
func wsTillNewlineReverse(s string) (lineMatch, bool) {
	i := len(s) - 1
	for i >= 0 && (s[i] == ' ' || s[i] == '\t') {
		i--
	}
	if i >= 0 && s[i] == '\n' {
		return lineMatch{ws: len(s) - 1 - i, newline: 1}, true
	}
	return lineMatch{}, false
}

// Clean removes the blank line left behind by a code or directive block that
// sits alone on its line, while whitespace cleaning is enabled. It walks
// windows of three segments [a, b, c] and only ever shortens Text content.
func Clean(segs []Segment, opts Options) error {
	if len(segs) < 3 {
		return nil
	}

	state := opts.Initial()
	var (
		carried    lineMatch // left match computed for the window at carryIndex
		hasCarried bool
		carryIndex int
	)

	for i := 0; i < len(segs)-2; i++ {
		a, b, c := &segs[i], &segs[i+1], &segs[i+2]
		if b.Kind == KindDirective {
			if _, err := state.Apply(b.Directive); err != nil {
				return err
			}
		}

		if !state.CleanWhitespace || !a.isText() || !b.trimsWhitespace() || !c.isText() {
			continue
		}

		var left lineMatch
		if hasCarried && carryIndex == i {
			left = carried
		} else if m, ok := wsTillNewlineReverse(a.Content); ok {
			left = m
		} else if i == 0 && a.Content == "" {
			// start of file
			left = lineMatch{}
		} else {
			continue
		}

		right, ok := wsTillNewline(c.Content)
		if !ok {
			continue
		}

		a.Content = a.Content[:len(a.Content)-left.ws]

		// The whitespace after c's last newline is the indentation of the
		// block two windows on, so it is measured before c's front is cut.
		if m, ok := wsTillNewlineReverse(c.Content); ok {
			carried, hasCarried, carryIndex = m, true, i+2
		}
		c.Content = c.Content[right.ws+right.newline:]
	}
	return nil
}

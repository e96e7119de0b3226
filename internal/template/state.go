package template

import "fmt"

// Options seed the compiler state of every pass
type Options struct {
	Debug           bool
	CleanWhitespace bool
	Escape          string
	Sink            Sink
}

// Initial returns the state every pass starts from
func (o Options) Initial() State {
	return State{
		Debug:           o.Debug,
		CleanWhitespace: o.CleanWhitespace,
		Escape:          o.Escape,
	}
}

// Diagnostics returns the configured sink, or one that discards everything
func (o Options) Diagnostics() Sink {
	if o.Sink == nil {
		return nopSink{}
	}
	return o.Sink
}

// State is the mutable directive state. A directive's effect lasts until a
// later directive of the same kind overrides it; there is no nesting.
type State struct {
	Debug           bool
	CleanWhitespace bool
	Escape          string // Name of the function applied to rendered expressions
}

// Apply applies a directive to the state. Parameters without a known effect
// are returned as unknown so the caller can report them.
func (s *State) Apply(d Directive) (unknown []Param, err error) {
	for _, p := range d.Params {
		switch d.Name + "." + p.Key {
		case "template.debug":
			if s.Debug, err = parseBool(d, p); err != nil {
				return unknown, err
			}
		case "template.cleanws", "template.clean_whitespace":
			if s.CleanWhitespace, err = parseBool(d, p); err != nil {
				return unknown, err
			}
		case "escape.function":
			s.Escape = p.Value
		default:
			unknown = append(unknown, p)
		}
	}
	return unknown, nil
}

func parseBool(d Directive, p Param) (bool, error) {
	switch p.Value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &TemplateError{
		Reason: fmt.Sprintf("invalid boolean %q for %q in %q directive", p.Value, p.Key, d.Name),
	}
}

package template

// Sink receives diagnostics produced while compiling. Trace output is only
// sent while the debug flag is on; warnings are always sent.
type Sink interface {
	Trace(format string, args ...any)
	Warn(format string, args ...any)
}

type nopSink struct{}

func (nopSink) Trace(string, ...any) {}
func (nopSink) Warn(string, ...any)  {}

// tracer gates trace output on the current debug flag
type tracer struct {
	sink  Sink
	state *State
}

func (t tracer) printf(format string, args ...any) {
	if t.state.Debug {
		t.sink.Trace(format, args...)
	}
}

package executor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records what it was asked to run
type fakeRunner struct {
	command, input string
	out            string
	err            error
}

func (f *fakeRunner) Filter(command, input string) (string, error) {
	f.command, f.input = command, input
	return f.out, f.err
}

func TestPostProcess(t *testing.T) {
	t.Run("empty command leaves code alone", func(t *testing.T) {
		r := &fakeRunner{}
		got, err := PostProcess(r, "  ", "code")
		require.NoError(t, err)
		assert.Equal(t, "code", got)
		assert.Empty(t, r.command)
	})

	t.Run("output replaces code", func(t *testing.T) {
		r := &fakeRunner{out: "formatted"}
		got, err := PostProcess(r, "rustfmt", "code")
		require.NoError(t, err)
		assert.Equal(t, "formatted", got)
		assert.Equal(t, "rustfmt", r.command)
		assert.Equal(t, "code", r.input)
	})

	t.Run("errors name the command", func(t *testing.T) {
		r := &fakeRunner{err: errors.New("exit status 1")}
		_, err := PostProcess(r, "rustfmt", "code")
		assert.EqualError(t, err, `post-process "rustfmt": exit status 1`)
	})
}

func TestFilter(t *testing.T) {
	if !CommandExists("sh") || !CommandExists("tr") {
		t.Skip("sh and tr are required")
	}
	e := NewExecutor("")
	assert.Equal(t, "sh", e.Shell())

	got, err := e.Filter("tr a-z A-Z", "fn main() {}\n")
	require.NoError(t, err)
	assert.Equal(t, "FN MAIN() {}\n", got)

	_, err = e.Filter("echo oops >&2; exit 3", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oops")
}

func TestDefaultCommand(t *testing.T) {
	assert.Equal(t, "rustfmt --edition 2021", DefaultCommand("rust"))
	assert.Empty(t, DefaultCommand("go"))
	assert.False(t, CommandExists(""))
	assert.False(t, CommandExists("t4go-no-such-command --flag"))
}

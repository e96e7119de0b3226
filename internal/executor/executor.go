// Package executor runs external commands over generated code.
package executor

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ============================================================================
// Shell Runner Interface
// ============================================================================

// ShellRunner pipes text through a shell command
type ShellRunner interface {
	Filter(command, input string) (string, error)
}

// Executor runs post-processing commands through the configured shell
type Executor struct {
	shell string
}

// NewExecutor creates an executor using the given shell, "sh" if empty
func NewExecutor(shell string) *Executor {
	if shell == "" {
		shell = "sh"
	}
	return &Executor{shell: shell}
}

// Shell returns the configured shell
func (e *Executor) Shell() string {
	return e.shell
}

// Filter runs command with input on stdin and returns its stdout
func (e *Executor) Filter(command, input string) (string, error) {
	cmd := exec.Command(e.shell, "-c", command)
	cmd.Env = os.Environ()
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("shell error: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// ============================================================================
// Post-processing
// ============================================================================

// DefaultCommand returns the formatter run over a backend's output when
// none is configured
func DefaultCommand(backend string) string {
	if backend == "rust" {
		return "rustfmt --edition 2021"
	}
	return ""
}

// CommandExists checks if the first word of a command is available in PATH
func CommandExists(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}
	_, err := exec.LookPath(fields[0])
	return err == nil
}

// PostProcess pipes generated code through command. An empty command
// returns the code unchanged.
func PostProcess(r ShellRunner, command, code string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return code, nil
	}
	out, err := r.Filter(command, code)
	if err != nil {
		return "", fmt.Errorf("post-process %q: %w", command, err)
	}
	return out, nil
}

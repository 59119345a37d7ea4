// Package spawn holds the plumbing shared by the daemonize and execute
// protocols: argument-vector splitting, environment merging, and the
// stdio redirection contract.
package spawn

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/shlex"
)

// ErrEmptyCommand reports a command string with no words.
var ErrEmptyCommand = errors.New("empty command")

// SplitCommand turns a command string into an argument vector using
// shell word-splitting rules, quoting and escaping respected. The
// result is executed directly, never handed to a shell, so the command
// string cannot smuggle shell syntax.
func SplitCommand(command string) ([]string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("split command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}

// MergeEnv appends overrides to the current process environment. The
// configured variables merge into the inherited environment rather than
// replacing it.
func MergeEnv(overrides map[string]string) []string {
	env := os.Environ()
	for k, v := range overrides {
		env = append(env, k+"="+v)
	}
	return env
}

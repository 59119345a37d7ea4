package spawn

import (
	"fmt"
	"os"
)

// Redirections names optional stdio targets. Empty fields leave the
// stream inherited from the parent generation.
type Redirections struct {
	Stdin  string `yaml:"stdin" json:"stdin,omitempty"`
	Stdout string `yaml:"stdout" json:"stdout,omitempty"`
	Stderr string `yaml:"stderr" json:"stderr,omitempty"`
}

// StdioFiles holds the opened redirection targets. Nil fields inherit.
// When stdout and stderr name the same destination they share one file
// so interleaving is preserved.
type StdioFiles struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// Open opens each configured target: stdin read-only, stdout and stderr
// create-append.
func (r Redirections) Open() (*StdioFiles, error) {
	s := &StdioFiles{}

	if r.Stdin != "" {
		f, err := os.Open(r.Stdin)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open stdin source: %w", err)
		}
		s.Stdin = f
	}

	if r.Stdout != "" && r.Stdout == r.Stderr {
		f, err := openAppend(r.Stdout)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Stdout = f
		s.Stderr = f
		return s, nil
	}

	if r.Stdout != "" {
		f, err := openAppend(r.Stdout)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Stdout = f
	}
	if r.Stderr != "" {
		f, err := openAppend(r.Stderr)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Stderr = f
	}

	return s, nil
}

// Close releases whatever Open opened.
func (s *StdioFiles) Close() {
	if s.Stdin != nil {
		s.Stdin.Close()
	}
	if s.Stdout != nil {
		s.Stdout.Close()
	}
	if s.Stderr != nil && s.Stderr != s.Stdout {
		s.Stderr.Close()
	}
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open redirection target: %w", err)
	}
	return f, nil
}

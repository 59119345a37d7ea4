package config

import (
	"fmt"
	"sort"

	"github.com/zerogee00/bluepill/internal/privdrop"
	"github.com/zerogee00/bluepill/internal/spawn"
)

// File mirrors the bluepill.yaml document structure.
type File struct {
	Programs map[string]*Program `yaml:"programs"`
}

// Program declares one supervised command and the identity and
// environment it runs under.
type Program struct {
	Command string            `yaml:"command"`
	Dir     string            `yaml:"dir"`
	Env     map[string]string `yaml:"env"`
	PIDFile string            `yaml:"pidFile"`

	Privilege privdrop.Spec      `yaml:",inline"`
	Stdio     spawn.Redirections `yaml:",inline"`
}

// Names returns the program names in stable order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Programs))
	for name := range f.Programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Program looks up a declared program by name.
func (f *File) Program(name string) (*Program, error) {
	p, ok := f.Programs[name]
	if !ok || p == nil {
		return nil, fmt.Errorf("program %q not declared", name)
	}
	return p, nil
}

// Validate checks every declared program.
func (f *File) Validate() error {
	if len(f.Programs) == 0 {
		return fmt.Errorf("no programs declared")
	}
	for _, name := range f.Names() {
		p := f.Programs[name]
		if p == nil {
			return fmt.Errorf("program %q: empty declaration", name)
		}
		if p.Command == "" {
			return fmt.Errorf("program %q: command is required", name)
		}
		if _, err := spawn.SplitCommand(p.Command); err != nil {
			return fmt.Errorf("program %q: %w", name, err)
		}
	}
	return nil
}

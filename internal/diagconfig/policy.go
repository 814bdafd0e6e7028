// Package diagconfig supplies the YAML-backed diagnostic promotion
// policy that resolves the validator's check_stdarg Open Question
// (spec §4.1, §9): whether a given WARN kind should behave like an
// ERR is caller-supplied data, never hardcoded in internal/mdoc.
package diagconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mdocgo/mdocgo/internal/mdoc"
)

// Policy lists which diagnostic kinds are promoted from WARN to ERR,
// plus a list of default search-index paths. DefaultPaths is only
// decoded from the YAML; no command in this module reads it (there is no
// path-discovery logic — this is only the config shape).
type Policy struct {
	PromoteWarnings []string `yaml:"promote_warnings"`
	DefaultPaths    []string `yaml:"default_paths"`

	promoted map[mdoc.Kind]bool
}

// Load reads a Policy from a YAML file at path.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("diagconfig: read %s: %w", path, err)
	}
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("diagconfig: parse %s: %w", path, err)
	}
	p.index()
	return &p, nil
}

func (p *Policy) index() {
	p.promoted = make(map[mdoc.Kind]bool, len(p.PromoteWarnings))
	for _, k := range p.PromoteWarnings {
		p.promoted[mdoc.Kind(k)] = true
	}
}

// Promote implements the predicate shape mdoc.DefaultSink.Promote
// expects.
func (p *Policy) Promote(kind mdoc.Kind) bool {
	if p == nil {
		return false
	}
	if p.promoted == nil {
		p.index()
	}
	return p.promoted[kind]
}

// NewSink returns an mdoc.DefaultSink wired to this policy's promotion
// rules.
func (p *Policy) NewSink() *mdoc.DefaultSink {
	return &mdoc.DefaultSink{Promote: p.Promote}
}

package ai

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Registry is an immutable map from AI code to Spec. Build one with
// NewBuilder or take the standard table from Default.
type Registry struct {
	specs map[string]Spec
}

// Find returns the spec registered for code
func (r *Registry) Find(code string) (Spec, bool) {
	if r == nil {
		return Spec{}, false
	}
	s, ok := r.specs[code]
	return s, ok
}

// Len returns the number of registered AIs
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.specs)
}

// Codes returns the registered codes in ascending order
func (r *Registry) Codes() []string {
	if r == nil {
		return nil
	}
	codes := make([]string, 0, len(r.specs))
	for code := range r.specs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Specs returns a copy of the registered specs ordered by code
func (r *Registry) Specs() []Spec {
	codes := r.Codes()
	specs := make([]Spec, 0, len(codes))
	for _, code := range codes {
		specs = append(specs, r.specs[code])
	}
	return specs
}

// MarshalYAML renders the registry as a list of specs ordered by code
func (r *Registry) MarshalYAML() (interface{}, error) {
	return r.Specs(), nil
}

// Default returns a new registry holding the standard AI table. Each call
// builds a fresh registry; callers that parse often should keep one.
func Default() *Registry {
	table := standardTable()
	specs := make(map[string]Spec, len(table))
	for _, s := range table {
		specs[s.Code] = s
	}
	return &Registry{specs: specs}
}

// Builder assembles a Registry from the standard table and caller overrides
type Builder struct {
	defaults  bool
	overrides []Spec
}

// NewBuilder returns a builder that starts from the standard table
func NewBuilder() *Builder {
	return &Builder{defaults: true}
}

// WithoutDefaults makes the builder start from an empty table
func (b *Builder) WithoutDefaults() *Builder {
	b.defaults = false
	return b
}

// WithDefaults makes the builder start from the standard table
func (b *Builder) WithDefaults() *Builder {
	b.defaults = true
	return b
}

// Register adds spec, replacing any standard or earlier spec with the same code
func (b *Builder) Register(specs ...Spec) *Builder {
	b.overrides = append(b.overrides, specs...)
	return b
}

// Build validates every spec and returns the registry
func (b *Builder) Build() (*Registry, error) {
	specs := make(map[string]Spec)
	if b.defaults {
		for _, s := range standardTable() {
			specs[s.Code] = s
		}
	}
	for _, s := range b.overrides {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("failed to register AI: %w", err)
		}
		specs[s.Code] = s
	}
	return &Registry{specs: specs}, nil
}

// LoadSpecs decodes a YAML list of specs, as written by Registry.MarshalYAML
func LoadSpecs(data []byte) ([]Spec, error) {
	var specs []Spec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to parse AI specs: %w", err)
	}
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return specs, nil
}

package oasis

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed elements.yaml
var defaultElementsYAML []byte

// Registry validation errors.
var (
	ErrEmptyID              = errors.New("element id is empty")
	ErrDuplicateID          = errors.New("duplicate element id")
	ErrUnknownDependency    = errors.New("unknown dependency")
	ErrForwardDependency    = errors.New("dependency declared after dependent")
	ErrSelfDependency       = errors.New("element depends on itself")
	ErrMissingDisplayFormat = errors.New("missing display format")
	ErrMissingShape         = errors.New("missing output shape contract")
)

// Registry is the ordered, read-only element catalogue. Order is extraction
// order and every dependency points backwards.
type Registry struct {
	elements []Element
	index    map[string]int
}

// NewRegistry validates elements and builds a registry. The first problem
// found is returned.
func NewRegistry(elements []Element) (*Registry, error) {
	r := &Registry{
		elements: make([]Element, 0, len(elements)),
		index:    make(map[string]int, len(elements)),
	}

	all := make(map[string]int, len(elements))
	for i, el := range elements {
		if _, seen := all[el.ID]; !seen {
			all[el.ID] = i
		}
	}

	for i, el := range elements {
		if el.ID == "" {
			return nil, fmt.Errorf("element %d: %w", i, ErrEmptyID)
		}
		if _, dup := r.index[el.ID]; dup {
			return nil, fmt.Errorf("element %q: %w", el.ID, ErrDuplicateID)
		}
		for _, dep := range el.DependsOn {
			switch pos, ok := all[dep]; {
			case dep == el.ID:
				return nil, fmt.Errorf("element %q: %w", el.ID, ErrSelfDependency)
			case !ok:
				return nil, fmt.Errorf("element %q depends on %q: %w", el.ID, dep, ErrUnknownDependency)
			case pos > i:
				return nil, fmt.Errorf("element %q depends on %q: %w", el.ID, dep, ErrForwardDependency)
			}
		}
		if el.Display.Type == "" || len(el.Display.Keys()) == 0 {
			return nil, fmt.Errorf("element %q: %w", el.ID, ErrMissingDisplayFormat)
		}
		if el.Shape.Contract == "" {
			return nil, fmt.Errorf("element %q: %w", el.ID, ErrMissingShape)
		}

		r.index[el.ID] = len(r.elements)
		r.elements = append(r.elements, el.clone())
	}
	return r, nil
}

type catalogue struct {
	Elements []Element `yaml:"elements"`
}

// ParseRegistry decodes a YAML catalogue and validates it. Unknown keys are
// rejected.
func ParseRegistry(data []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c catalogue
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode element catalogue: %w", err)
	}
	return NewRegistry(c.Elements)
}

// DefaultRegistry returns the five built-in OASIS-E1 elements.
func DefaultRegistry() (*Registry, error) {
	return ParseRegistry(defaultElementsYAML)
}

// Elements returns a copy of the elements in order.
func (r *Registry) Elements() []Element {
	out := make([]Element, len(r.elements))
	for i, el := range r.elements {
		out[i] = el.clone()
	}
	return out
}

// Get returns the element with the given id.
func (r *Registry) Get(id string) (Element, bool) {
	i, ok := r.index[id]
	if !ok {
		return Element{}, false
	}
	return r.elements[i].clone(), true
}

// Len returns the number of elements.
func (r *Registry) Len() int { return len(r.elements) }

// IDs returns the element ids in order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.elements))
	for i, el := range r.elements {
		ids[i] = el.ID
	}
	return ids
}

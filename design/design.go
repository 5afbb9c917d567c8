// Package design models the finalized-design view of a build: the signal
// constraints produced by platform resolution and the source/IP inventory the
// build script is generated from. The elaboration step that produces net
// lists is an external collaborator; this package only carries its results.
package design

import (
	"fmt"
)

// Constraint is a directive attached to a signal controlling its physical
// site, electrical behavior, or synthesis attributes.
type Constraint interface {
	// IsConstraint marks the constraint variants. It has no behavior.
	IsConstraint()
}

// Location pins a signal to one or more physical sites. More than one site
// means the signal is a vector with one site per bit.
type Location struct {
	Sites []string
}

// IOStandard selects the electrical standard of a signal.
type IOStandard struct {
	Name string
}

// Drive sets the output drive strength of a signal.
type Drive struct {
	Strength int
}

// Attribute is a free-form property applied to a signal.
type Attribute struct {
	Key   string
	Value string
}

// Inverted marks a signal as polarity-inverted. Inversion is consumed during
// elaboration and has no constraint-file representation.
type Inverted struct {
	Invert bool
}

func (Location) IsConstraint()   {}
func (IOStandard) IsConstraint() {}
func (Drive) IsConstraint()      {}
func (Attribute) IsConstraint()  {}
func (Inverted) IsConstraint()   {}

// ResourceName locates a signal within the pin/bank taxonomy of the target
// device.
type ResourceName struct {
	Group string
	Index int
	Sub   string
}

func (r ResourceName) String() string {
	if r.Sub != "" {
		return fmt.Sprintf("%s:%d.%s", r.Group, r.Index, r.Sub)
	}
	return fmt.Sprintf("%s:%d", r.Group, r.Index)
}

// NamedSignal is the resolved constraint set of one signal: its display name,
// the physical sites it is bound to, and the non-location constraints shared
// by all its bits.
type NamedSignal struct {
	Name     string
	Sites    []string
	Others   []Constraint
	Resource ResourceName
}

// Signal is a named net of the design. Constraint registration marks signals
// with elaboration attributes, e.g. "keep" for nets that must survive
// optimization.
type Signal struct {
	Name  string
	attrs []string
}

// NewSignal creates a signal with the given display name.
func NewSignal(name string) *Signal {
	return &Signal{Name: name}
}

// AddAttr adds an elaboration attribute to the signal. Adding an attribute
// twice is a no-op; attribute order is the order of first addition.
func (s *Signal) AddAttr(attr string) {
	for _, a := range s.attrs {
		if a == attr {
			return
		}
	}
	s.attrs = append(s.attrs, attr)
}

// HasAttr reports whether the signal carries the given attribute.
func (s *Signal) HasAttr(attr string) bool {
	for _, a := range s.attrs {
		if a == attr {
			return true
		}
	}
	return false
}

// Attrs returns the attributes of the signal in the order they were added.
func (s *Signal) Attrs() []string {
	return s.attrs
}

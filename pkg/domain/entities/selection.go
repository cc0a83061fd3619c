package entities

import (
	"fmt"
	"sort"
)

// ComponentKind identifies the class of component being configured
type ComponentKind int

const (
	KindCrossarm ComponentKind = iota
	KindPole
)

// String method for ComponentKind enum
func (k ComponentKind) String() string {
	switch k {
	case KindCrossarm:
		return "crossarm"
	case KindPole:
		return "pole"
	default:
		return "unknown"
	}
}

// Prefix returns the class prefix used in build identifiers
func (k ComponentKind) Prefix() string {
	switch k {
	case KindCrossarm:
		return "XARM"
	case KindPole:
		return "POLE"
	default:
		return "UNKNOWN"
	}
}

// ParseComponentKind maps "crossarm"/"xarm" and "pole" to a ComponentKind
func ParseComponentKind(s string) (ComponentKind, error) {
	switch s {
	case "crossarm", "xarm", "XARM":
		return KindCrossarm, nil
	case "pole", "POLE":
		return KindPole, nil
	default:
		return 0, fmt.Errorf("unknown component kind: %q", s)
	}
}

// Attribute names a configurable property of a component
type Attribute string

const (
	AttrVoltage       Attribute = "Voltage"
	AttrDimension     Attribute = "Dimension"
	AttrLength        Attribute = "Length"
	AttrNumber        Attribute = "Number"
	AttrConfiguration Attribute = "Configuration"
	AttrMaterial      Attribute = "Material"
	AttrWires         Attribute = "Wires"
	AttrManufacturer  Attribute = "Manufacturer"
)

// AttributeSelection maps attributes to their chosen codes.
// Values are snapshots: With returns a copy and never touches the receiver.
type AttributeSelection map[Attribute]string

// NewAttributeSelection builds a selection from attribute/code pairs
func NewAttributeSelection(pairs map[Attribute]string) AttributeSelection {
	s := make(AttributeSelection, len(pairs))
	for k, v := range pairs {
		if v != "" {
			s[k] = v
		}
	}
	return s
}

// Get returns the chosen code and whether it is set
func (s AttributeSelection) Get(attr Attribute) (string, bool) {
	code, ok := s[attr]
	return code, ok && code != ""
}

// Code returns the chosen code, or "" when unset
func (s AttributeSelection) Code(attr Attribute) string {
	return s[attr]
}

// Has reports whether an attribute has a non-empty code
func (s AttributeSelection) Has(attr Attribute) bool {
	_, ok := s.Get(attr)
	return ok
}

// With returns a copy of the selection with attr set to code
func (s AttributeSelection) With(attr Attribute, code string) AttributeSelection {
	next := s.Clone()
	if code == "" {
		delete(next, attr)
	} else {
		next[attr] = code
	}
	return next
}

// Without returns a copy of the selection with attr cleared
func (s AttributeSelection) Without(attr Attribute) AttributeSelection {
	return s.With(attr, "")
}

// Clone returns an independent copy
func (s AttributeSelection) Clone() AttributeSelection {
	next := make(AttributeSelection, len(s))
	for k, v := range s {
		next[k] = v
	}
	return next
}

// Attributes returns the set attribute names in lexical order
func (s AttributeSelection) Attributes() []Attribute {
	attrs := make([]Attribute, 0, len(s))
	for k, v := range s {
		if v != "" {
			attrs = append(attrs, k)
		}
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i] < attrs[j] })
	return attrs
}

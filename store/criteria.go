package store

import (
	"fmt"
	"strings"
)

// FilterField identifies which criterion is active
type FilterField int

const (
	// FieldNone means no filter is active
	FieldNone FilterField = iota
	// FieldName filters by a name fragment
	FieldName
	// FieldType filters by Pokémon type
	FieldType
	// FieldGeneration filters by generation
	FieldGeneration
)

func (f FilterField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldType:
		return "type"
	case FieldGeneration:
		return "generation"
	default:
		return "none"
	}
}

// ParseFilterField parses "name", "type" or "generation"
func ParseFilterField(s string) (FilterField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "type":
		return FieldType, nil
	case "generation":
		return FieldGeneration, nil
	default:
		return FieldNone, fmt.Errorf("unknown filter field: %q", s)
	}
}

// Criteria holds at most one active filter. The zero value is NoFilter.
type Criteria struct {
	field FilterField
	value string
}

// NoFilter returns empty criteria
func NoFilter() Criteria {
	return Criteria{}
}

// NewCriteria builds criteria for a single field. An empty value or
// FieldNone yields NoFilter.
func NewCriteria(field FilterField, value string) Criteria {
	if value == "" || field == FieldNone {
		return NoFilter()
	}
	return Criteria{field: field, value: value}
}

// NameFilter matches Pokémon whose name contains fragment
func NameFilter(fragment string) Criteria {
	return NewCriteria(FieldName, fragment)
}

// TypeFilter matches Pokémon of the given type
func TypeFilter(typeName string) Criteria {
	return NewCriteria(FieldType, typeName)
}

// GenerationFilter matches Pokémon introduced in the given generation
func GenerationFilter(generation string) Criteria {
	return NewCriteria(FieldGeneration, generation)
}

func (c Criteria) Field() FilterField { return c.field }
func (c Criteria) Value() string      { return c.value }
func (c Criteria) IsEmpty() bool      { return c.field == FieldNone }

// Name returns the name fragment, or "" when another field is active
func (c Criteria) Name() string { return c.get(FieldName) }

// Type returns the type name, or "" when another field is active
func (c Criteria) Type() string { return c.get(FieldType) }

// Generation returns the generation name, or "" when another field is active
func (c Criteria) Generation() string { return c.get(FieldGeneration) }

func (c Criteria) get(field FilterField) string {
	if c.field != field {
		return ""
	}
	return c.value
}

func (c Criteria) String() string {
	if c.IsEmpty() {
		return "none"
	}
	return fmt.Sprintf("%s=%s", c.field, c.value)
}

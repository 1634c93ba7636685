// Package model defines the entity types the analysis and layout engines
// operate on: struct definitions, placed instances, and the pointer
// connections between them.
//
// All types are plain value snapshots. The analysis and layout packages treat
// them as immutable input; the only thing the engine ever produces is a fresh
// id → position mapping that callers apply themselves.
package model

import (
	"strconv"
	"strings"
)

// =============================================================================
// Position
// =============================================================================

// Position is a 2D canvas coordinate. X grows rightward, Y grows downward.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// IsZero reports whether the position is unset (the zero value).
func (p Position) IsZero() bool { return p.X == 0 && p.Y == 0 }

// =============================================================================
// Struct Definitions
// =============================================================================

// FieldDefinition describes one field of a struct definition.
type FieldDefinition struct {
	Name      string `json:"name" bson:"name"`
	Type      string `json:"type" bson:"type"`
	IsPointer bool   `json:"is_pointer,omitempty" bson:"is_pointer,omitempty"`
	IsArray   bool   `json:"is_array,omitempty" bson:"is_array,omitempty"`
	ArraySize int    `json:"array_size,omitempty" bson:"array_size,omitempty"`
}

// StructDefinition is a user-modeled C-style struct type. Field order matters:
// the tree layout orders children by the declaration order of the pointer
// field that produced each edge.
type StructDefinition struct {
	Name   string            `json:"name" bson:"name"`
	Fields []FieldDefinition `json:"fields" bson:"fields"`
}

// FieldIndex returns the declaration index of the named field, or -1 if the
// struct has no such field.
func (d StructDefinition) FieldIndex(name string) int {
	for i, f := range d.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// PointerFields returns the fields that hold pointers, in declaration order.
func (d StructDefinition) PointerFields() []FieldDefinition {
	var out []FieldDefinition
	for _, f := range d.Fields {
		if f.IsPointer {
			out = append(out, f)
		}
	}
	return out
}

// HasField reports whether the struct declares a field with the given name.
func (d StructDefinition) HasField(name string) bool {
	return d.FieldIndex(name) >= 0
}

// DefinitionIndex builds a name → definition lookup from a definition list.
func DefinitionIndex(defs []StructDefinition) map[string]StructDefinition {
	m := make(map[string]StructDefinition, len(defs))
	for _, d := range defs {
		m[d.Name] = d
	}
	return m
}

// =============================================================================
// Instances
// =============================================================================

// StructInstance is one placed node in the diagram. The ID is immutable once
// created; Position is the only attribute the layout engine ever recomputes,
// and even then indirectly via the returned position map.
type StructInstance struct {
	ID           string         `json:"id" bson:"id"`
	StructName   string         `json:"struct_name" bson:"struct_name"`
	InstanceName string         `json:"instance_name,omitempty" bson:"instance_name,omitempty"`
	Position     Position       `json:"position" bson:"position"`
	FieldValues  map[string]any `json:"field_values,omitempty" bson:"field_values,omitempty"`
}

// DisplayLabel returns the user-facing label, falling back to the ID.
func (i StructInstance) DisplayLabel() string {
	if i.InstanceName != "" {
		return i.InstanceName
	}
	return i.ID
}

// InstanceIndex builds an id → instance lookup from an instance list.
func InstanceIndex(instances []StructInstance) map[string]StructInstance {
	m := make(map[string]StructInstance, len(instances))
	for _, inst := range instances {
		m[inst.ID] = inst
	}
	return m
}

// =============================================================================
// Connections
// =============================================================================

// PointerConnection is one directed edge: a pointer-typed field on the source
// instance referencing the target instance. Self-loops (source == target) are
// legal and meaningful. For pointer-array fields the field name carries an
// index suffix, e.g. "edges[0]".
type PointerConnection struct {
	ID               string `json:"id" bson:"id"`
	SourceInstanceID string `json:"source_instance_id" bson:"source_instance_id"`
	TargetInstanceID string `json:"target_instance_id" bson:"target_instance_id"`
	SourceFieldName  string `json:"source_field_name" bson:"source_field_name"`
}

// IsSelfLoop reports whether the connection points back at its own source.
func (c PointerConnection) IsSelfLoop() bool {
	return c.SourceInstanceID == c.TargetInstanceID
}

// BaseFieldName strips any array-index suffix: "edges[0]" → "edges".
func (c PointerConnection) BaseFieldName() string {
	if i := strings.IndexByte(c.SourceFieldName, '['); i >= 0 {
		return c.SourceFieldName[:i]
	}
	return c.SourceFieldName
}

// ArrayIndex returns the index suffix of an array field name, or -1 when the
// field is not indexed (or the suffix is malformed).
func (c PointerConnection) ArrayIndex() int {
	open := strings.IndexByte(c.SourceFieldName, '[')
	close := strings.IndexByte(c.SourceFieldName, ']')
	if open < 0 || close <= open+1 {
		return -1
	}
	n, err := strconv.Atoi(c.SourceFieldName[open+1 : close])
	if err != nil {
		return -1
	}
	return n
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ValueType is the type tag stored next to every encoded setting value.
// It records the original kind of the value so that decoding restores
// booleans, integers and floats instead of plain strings.
type ValueType string

const (
	// TypeBoolean marks values encoded as "1" / "0".
	TypeBoolean ValueType = "boolean"

	// TypeInteger marks values encoded as base-10 integers.
	TypeInteger ValueType = "integer"

	// TypeDouble marks floating point values.
	TypeDouble ValueType = "double"

	// TypeString marks values stored verbatim. It is also the column default.
	TypeString ValueType = "string"

	// TypeNull marks a stored nil. The encoded value is NULL.
	TypeNull ValueType = "NULL"

	// TypeArray marks maps, slices and arrays serialized as JSON.
	TypeArray ValueType = "array"

	// TypeObject marks structs serialized as JSON.
	TypeObject ValueType = "object"
)

// Valid reports whether t is one of the known type tags.
func (t ValueType) Valid() bool {
	switch t {
	case TypeBoolean, TypeInteger, TypeDouble, TypeString, TypeNull, TypeArray, TypeObject:
		return true
	}
	return false
}

// StoredValue is the encoded form of a setting value: the raw representation
// and the type tag needed to decode it losslessly.
// Raw is nil when the stored value is NULL.
type StoredValue struct {
	Raw  *string   `json:"value" cbor:"value"`
	Type ValueType `json:"type" cbor:"type"`
}

// SettingKey identifies a setting by its namespace (the owning configuration
// section) and property (the field inside it).
type SettingKey struct {
	Namespace string `json:"namespace"`
	Property  string `json:"property"`
}

// String returns the dotted "Namespace.property" form of the key.
func (k SettingKey) String() string {
	return k.Namespace + "." + k.Property
}

// SettingRecord is the persistent form of a single override.
// At most one record exists per (namespace, property, context) tuple.
type SettingRecord struct {
	Namespace string      `cbor:"namespace"`
	Property  string      `cbor:"property"`
	Context   *string     `cbor:"context"`
	Value     StoredValue `cbor:"stored"`
	CreatedAt time.Time   `cbor:"created_at"`
	UpdatedAt time.Time   `cbor:"updated_at"`
}

// Scope returns the scope the record belongs to.
func (r SettingRecord) Scope() Scope {
	if r.Context == nil {
		return GlobalScope
	}
	return InScope(*r.Context)
}

// SettingTarget addresses one setting from outside the engine: a dotted key
// and a context name, empty for the global scope.
type SettingTarget struct {
	Key     string
	Context string
}

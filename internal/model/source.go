// Package model defines the data structures for the variant usage audit.
package model

// Path represents a file system path.
type Path string

// DeclKind identifies what sort of declaration an inventory item records.
// Only enums are extracted today; the field is persisted so the artifact
// stays self-describing if other tagged declarations are added later.
type DeclKind string

const (
	// KindEnum represents a tagged-union (enum) declaration.
	KindEnum DeclKind = "enum"
)

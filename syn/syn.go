// Copyright © 2020 The Pea Authors under an MIT-style license.

// Package syn is the untyped syntax tree consumed by the semantic checker.
// Trees are built by a parser outside of this repository;
// every node carries the source span it was parsed from.
package syn

import "github.com/eaburns/sema/loc"

// A Node is a node of the syntax tree with location information.
type Node interface {
	GetSpan() loc.Span
}

// A Module is the unit of compilation.
type Module struct {
	loc.Span
	Name      string
	Imports   []Import
	Namespace Namespace
}

// An Import names another module whose namespace
// becomes reachable from this module's root scope.
type Import struct {
	loc.Span
	Name string
}

// A Namespace groups declarations.
// The root namespace of a module has an empty Name.
type Namespace struct {
	loc.Span
	Name       string
	Functions  []*Function
	Structs    []*Struct
	Enums      []*Enum
	Namespaces []*Namespace
}

// Linkage is whether a declaration is defined in the program
// or is supplied externally.
type Linkage int

const (
	Internal Linkage = iota
	External
)

// A Function is a function or method declaration.
type Function struct {
	loc.Span
	Name          string
	NameSpan      loc.Span
	GenericParams []GenericParam
	Params        []Param
	Throws        bool
	// ReturnType is *Empty if not specified,
	// in which case the function returns void.
	ReturnType Type
	// Block is nil for External functions.
	Block   *Block
	Linkage Linkage
}

// A Param is a function parameter.
// A parameter named "this" with an *Empty type
// is the receiver of a method.
type Param struct {
	Var VarDecl
	// Anon is whether the argument label may be omitted at call sites.
	Anon bool
}

// A GenericParam is a generic type parameter of
// a function, struct, or enum.
type GenericParam struct {
	loc.Span
	Name string
}

// A VarDecl declares a variable, parameter, or field.
type VarDecl struct {
	loc.Span
	Name    string
	Type    Type
	Mutable bool
}

// DefinitionType is whether a Struct was declared
// with value or reference semantics.
type DefinitionType int

const (
	StructDef DefinitionType = iota
	ClassDef
)

// A Struct is a struct or class declaration.
type Struct struct {
	loc.Span
	Name           string
	GenericParams  []GenericParam
	Fields         []VarDecl
	Methods        []*Function
	DefinitionType DefinitionType
	Linkage        Linkage
}

// An Enum is an enum declaration.
type Enum struct {
	loc.Span
	Name          string
	GenericParams []GenericParam
	// UnderlyingType is *Empty if not specified.
	UnderlyingType Type
	Variants       []EnumVariant
	IsRecursive    bool
}

// An EnumVariant is one case of an Enum.
// At most one of Value, Type, and Fields is set.
type EnumVariant struct {
	loc.Span
	Name string
	// Value is an explicit value for the variant.
	Value Expr
	// Type is the type of a single unnamed payload.
	Type Type
	// Fields are the named payload fields of a struct-like variant.
	Fields []VarDecl
}

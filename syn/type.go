// Copyright © 2020 The Pea Authors under an MIT-style license.

package syn

import (
	"strings"

	"github.com/eaburns/sema/loc"
)

// A Type is a syntactic type form.
type Type interface {
	Node
	String() string
	isType()
}

// A Name is a plain type name: i32, String, Foo.
type Name struct {
	loc.Span
	Name string
}

// A NamespacedName is a type name qualified by namespaces: a::b::Foo<T>.
type NamespacedName struct {
	loc.Span
	Name       string
	Namespaces []string
	Params     []Type
}

// A GenericType is a user generic type applied to arguments: Foo<i32>.
type GenericType struct {
	loc.Span
	Name   string
	Params []Type
}

// An Array is the form [T].
type Array struct {
	loc.Span
	Elem Type
}

// A Dictionary is the form [K: V].
type Dictionary struct {
	loc.Span
	Key   Type
	Value Type
}

// A Tuple is the form (T, U, ...).
type Tuple struct {
	loc.Span
	Elems []Type
}

// A Set is the form {T}.
type Set struct {
	loc.Span
	Elem Type
}

// An Optional is the form T?.
type Optional struct {
	loc.Span
	Elem Type
}

// A WeakPtr is the form weak T?.
type WeakPtr struct {
	loc.Span
	Elem Type
}

// A RawPtr is the form raw T.
type RawPtr struct {
	loc.Span
	Elem Type
}

// An Empty is an elided type.
type Empty struct {
	loc.Span
}

func (*Name) isType()           {}
func (*NamespacedName) isType() {}
func (*GenericType) isType()    {}
func (*Array) isType()          {}
func (*Dictionary) isType()     {}
func (*Tuple) isType()          {}
func (*Set) isType()            {}
func (*Optional) isType()       {}
func (*WeakPtr) isType()        {}
func (*RawPtr) isType()         {}
func (*Empty) isType()          {}

func (t *Name) String() string { return t.Name }

func (t *NamespacedName) String() string {
	var s strings.Builder
	for _, ns := range t.Namespaces {
		s.WriteString(ns)
		s.WriteString("::")
	}
	s.WriteString(t.Name)
	writeParams(&s, t.Params)
	return s.String()
}

func (t *GenericType) String() string {
	var s strings.Builder
	s.WriteString(t.Name)
	writeParams(&s, t.Params)
	return s.String()
}

func writeParams(s *strings.Builder, params []Type) {
	if len(params) == 0 {
		return
	}
	s.WriteRune('<')
	for i, p := range params {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(p.String())
	}
	s.WriteRune('>')
}

func (t *Array) String() string { return "[" + t.Elem.String() + "]" }

func (t *Dictionary) String() string {
	return "[" + t.Key.String() + ": " + t.Value.String() + "]"
}

func (t *Tuple) String() string {
	var s strings.Builder
	s.WriteRune('(')
	for i, e := range t.Elems {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(e.String())
	}
	s.WriteRune(')')
	return s.String()
}

func (t *Set) String() string      { return "{" + t.Elem.String() + "}" }
func (t *Optional) String() string { return t.Elem.String() + "?" }
func (t *WeakPtr) String() string  { return "weak " + t.Elem.String() + "?" }
func (t *RawPtr) String() string   { return "raw " + t.Elem.String() }
func (t *Empty) String() string    { return "_" }

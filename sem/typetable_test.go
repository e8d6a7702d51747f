// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"testing"

	"github.com/nalgeon/be"
)

func newTestChecker(t *testing.T) *Typechecker {
	t.Helper()
	tc := NewTypechecker(Config{})
	tc.TypecheckModule(module("test"))
	return tc
}

func TestPrelude(t *testing.T) {
	tc := NewTypechecker(Config{})
	prelude := tc.Program().GetModule(PreludeModule)
	be.Equal(t, prelude.Name, "prelude")
	for b := Void; b < numBuiltins; b++ {
		be.Equal(t, prelude.Types[b.ID().Index], Type(b))
	}
	for _, name := range []string{"Tuple", "Array", "Dictionary", "Set", "Optional", "WeakPtr", "Error"} {
		_, ok := tc.Program().FindStructInScope(ScopeID{Module: PreludeModule}, name)
		be.True(t, ok)
	}
	be.Equal(t, len(tc.Errors()), 0)
}

func TestFindOrAddTypeID(t *testing.T) {
	tc := newTestChecker(t)
	a := tc.FindOrAddTypeID(&RawPtr{Elem: I32.ID()})
	b := tc.FindOrAddTypeID(&RawPtr{Elem: I32.ID()})
	c := tc.FindOrAddTypeID(&RawPtr{Elem: I64.ID()})
	be.Equal(t, a, b)
	be.True(t, a != c)
	be.Equal(t, a.Module, tc.CurrentModule())
}

func TestFindOrAddTypeIDEqualStructure(t *testing.T) {
	tc := newTestChecker(t)
	tests := []struct {
		name string
		a, b Type
	}{
		{name: "builtin", a: I32, b: I32},
		{name: "type variable", a: &TypeVariable{Name: "T"}, b: &TypeVariable{Name: "T"}},
		{
			name: "generic instance",
			a:    &GenericInstance{Struct: tc.preludeStruct("Optional"), Args: []TypeID{String.ID()}},
			b:    &GenericInstance{Struct: tc.preludeStruct("Optional"), Args: []TypeID{String.ID()}},
		},
		{
			name: "struct",
			a:    &StructType{Struct: tc.preludeStruct("Error")},
			b:    &StructType{Struct: tc.preludeStruct("Error")},
		},
		{name: "raw pointer", a: &RawPtr{Elem: U8.ID()}, b: &RawPtr{Elem: U8.ID()}},
		{name: "inference", a: &Inference{ID: 100}, b: &Inference{ID: 100}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			be.Equal(t, tc.FindOrAddTypeID(test.a), tc.FindOrAddTypeID(test.b))
		})
	}
}

func TestFindOrAddTypeIDPrelude(t *testing.T) {
	tc := newTestChecker(t)
	be.Equal(t, tc.FindOrAddTypeID(Bool), Bool.ID())
	be.Equal(t, tc.FindOrAddTypeID(CString), CString.ID())
	// The struct type of Error is interned in the prelude.
	id := tc.FindOrAddTypeID(&StructType{Struct: tc.preludeStruct("Error")})
	be.Equal(t, id.Module, PreludeModule)
}

func TestFindOrAddTypeIDDistinct(t *testing.T) {
	tc := newTestChecker(t)
	types := []Type{
		I32,
		I64,
		&RawPtr{Elem: I32.ID()},
		&RawPtr{Elem: I64.ID()},
		&TypeVariable{Name: "X"},
		&TypeVariable{Name: "Y"},
		&GenericInstance{Struct: tc.preludeStruct("Array"), Args: []TypeID{I32.ID()}},
		&GenericInstance{Struct: tc.preludeStruct("Set"), Args: []TypeID{I32.ID()}},
		&GenericInstance{Struct: tc.preludeStruct("Tuple"), Args: []TypeID{I32.ID(), I32.ID()}},
		&GenericInstance{Struct: tc.preludeStruct("Tuple"), Args: []TypeID{I32.ID()}},
		&Inference{ID: 1000},
	}
	seen := make(map[TypeID]int)
	for i, typ := range types {
		id := tc.FindOrAddTypeID(typ)
		if j, ok := seen[id]; ok {
			t.Errorf("types %d and %d have the same ID %s", j, i, id)
		}
		seen[id] = i
	}
}

func TestNewInference(t *testing.T) {
	tc := newTestChecker(t)
	n := tc.Inferences()
	a := tc.NewInference()
	b := tc.NewInference()
	be.True(t, a != b)
	be.Equal(t, tc.Inferences(), n+2)
	be.Equal(t, tc.Program().TypeName(a), "_")
	_, ok := tc.Program().GetType(a).(*Inference)
	be.True(t, ok)
}

func TestUnify(t *testing.T) {
	tc := newTestChecker(t)
	got, conflict := tc.Unify(I32.ID(), span(1, 2), I32.ID(), span(3, 4))
	be.Equal(t, got, I32.ID())
	be.True(t, !conflict)

	got, conflict = tc.Unify(I32.ID(), span(1, 2), I64.ID(), span(3, 4))
	be.Equal(t, got, I32.ID())
	be.True(t, conflict)

	// Unify never reports errors itself.
	be.Equal(t, len(tc.Errors()), 0)
}

func TestTypeName(t *testing.T) {
	tc := newTestChecker(t)
	tests := []struct {
		id   TypeID
		want string
	}{
		{id: I32.ID(), want: "i32"},
		{id: String.ID(), want: "String"},
		{id: CInt.ID(), want: "c_int"},
		{id: tc.instance("Optional", I32.ID()), want: "Optional<i32>"},
		{id: tc.instance("Tuple", I32.ID(), String.ID()), want: "Tuple<i32, String>"},
		{id: tc.instance("Dictionary", String.ID(), tc.instance("Array", U8.ID())), want: "Dictionary<String, Array<u8>>"},
		{id: tc.FindOrAddTypeID(&RawPtr{Elem: Bool.ID()}), want: "raw bool"},
		{id: tc.FindOrAddTypeID(&TypeVariable{Name: "Q"}), want: "Q"},
		{id: tc.errorType(), want: "Error"},
	}
	for _, test := range tests {
		t.Run(test.want, func(t *testing.T) {
			be.Equal(t, tc.Program().TypeName(test.id), test.want)
		})
	}
}

func TestMissingPreludeStruct(t *testing.T) {
	tc := newTestChecker(t)
	expectInternalError(t, "prelude struct Frob not found", func() {
		tc.instance("Frob", I32.ID())
	})
}

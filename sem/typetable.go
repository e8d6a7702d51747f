// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"fmt"

	"github.com/eaburns/sema/loc"
)

// FindOrAddTypeID returns the ID of a type equal to t,
// adding t to the current module's type table if there is none.
// The current module is searched first, then the prelude.
func (tc *Typechecker) FindOrAddTypeID(t Type) TypeID {
	m := tc.module()
	for i, u := range m.Types {
		if typesEqual(t, u) {
			return TypeID{Module: m.ID, Index: uint32(i)}
		}
	}
	prelude := tc.program.GetModule(PreludeModule)
	for i, u := range prelude.Types {
		if typesEqual(t, u) {
			return TypeID{Module: PreludeModule, Index: uint32(i)}
		}
	}
	id := TypeID{Module: m.ID, Index: nextIndex(len(m.Types))}
	m.Types = append(m.Types, t)
	return id
}

// NewInference returns a new inference placeholder type.
// The placeholder is distinct from every other type, and it is never solved.
func (tc *Typechecker) NewInference() TypeID {
	id := InferenceID(nextIndex(len(tc.inferences)))
	tc.inferences = append(tc.inferences, fmt.Sprintf("T%d", id))
	return tc.FindOrAddTypeID(&Inference{ID: id})
}

// Inferences returns the number of inference placeholders created.
func (tc *Typechecker) Inferences() int { return len(tc.inferences) }

// Unify returns the type resulting from using a value of type lhs
// where a value of type rhs is expected, and whether the types conflict.
// Types unify only if their IDs are equal; on conflict lhs is returned.
// Unify never reports an error; the caller reports conflicts.
func (tc *Typechecker) Unify(lhs TypeID, lhsSpan loc.Span, rhs TypeID, rhsSpan loc.Span) (TypeID, bool) {
	if tc.cfg.Trace {
		defer tc.tr("Unify(%s at %s, %s at %s)",
			tc.program.TypeName(lhs), lhsSpan, tc.program.TypeName(rhs), rhsSpan)()
	}
	if lhs != rhs {
		return lhs, true
	}
	return lhs, false
}

// preludeStruct returns the prelude struct with the given name.
// The prelude must define it.
func (tc *Typechecker) preludeStruct(name string) StructID {
	root := tc.program.GetScope(ScopeID{Module: PreludeModule, Index: 0})
	id, ok := root.Structs[name]
	if !ok {
		panic(internalErrorf(nil, "prelude struct %s not found", name))
	}
	return id
}

// instance returns the ID of the prelude generic struct applied to args.
func (tc *Typechecker) instance(name string, args ...TypeID) TypeID {
	return tc.FindOrAddTypeID(&GenericInstance{Struct: tc.preludeStruct(name), Args: args})
}

// instanceArgs returns the type arguments of t
// if it is an instance of the named prelude struct.
func (tc *Typechecker) instanceArgs(t TypeID, name string) ([]TypeID, bool) {
	inst, ok := tc.program.GetType(t).(*GenericInstance)
	if !ok || inst.Struct != tc.preludeStruct(name) {
		return nil, false
	}
	return inst.Args, true
}

// optionalElem returns the element type of an Optional instance.
func (tc *Typechecker) optionalElem(t TypeID) (TypeID, bool) {
	args, ok := tc.instanceArgs(t, "Optional")
	if !ok || len(args) != 1 {
		return TypeID{}, false
	}
	return args[0], true
}

func (tc *Typechecker) isInteger(t TypeID) bool {
	b, ok := tc.program.GetType(t).(Builtin)
	return ok && b.IsInteger()
}

func (tc *Typechecker) typeName(t TypeID) string { return tc.program.TypeName(t) }

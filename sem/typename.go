// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import "github.com/eaburns/sema/syn"

var typeKeywords = map[string]Builtin{
	"void":     Void,
	"bool":     Bool,
	"u8":       U8,
	"u16":      U16,
	"u32":      U32,
	"u64":      U64,
	"i8":       I8,
	"i16":      I16,
	"i32":      I32,
	"i64":      I64,
	"f32":      F32,
	"f64":      F64,
	"usize":    Usize,
	"String":   String,
	"c_char":   CChar,
	"c_int":    CInt,
	"c_string": CString,
}

// TypecheckTypename returns the type named by a type form in the given scope.
// If the type cannot be resolved, an error is reported
// and the result is a new inference placeholder.
func (tc *Typechecker) TypecheckTypename(t syn.Type, scope ScopeID) (res TypeID) {
	defer tc.tr("TypecheckTypename(%s)", t)(&res)

	switch t := t.(type) {
	case *syn.Name:
		if b, ok := typeKeywords[t.Name]; ok {
			return b.ID()
		}
		if id, ok := tc.program.FindTypeInScope(scope, t.Name); ok {
			return id
		}
		tc.err(t.Span, "unknown type %s", t.Name)
		return tc.NewInference()

	case *syn.NamespacedName:
		ns := scope
		for _, name := range t.Namespaces {
			id, ok := tc.program.FindNamespaceInScope(ns, name)
			if !ok {
				tc.err(t.Span, "unknown namespace %s", name)
				return tc.NewInference()
			}
			ns = tc.namespaceChild(id, name)
		}
		var params []TypeID
		for _, p := range t.Params {
			params = append(params, tc.TypecheckTypename(p, scope))
		}
		if len(params) > 0 {
			// TODO: instantiate user generic types.
			return tc.NewInference()
		}
		return tc.TypecheckTypename(&syn.Name{Span: t.Span, Name: t.Name}, ns)

	case *syn.GenericType:
		for _, p := range t.Params {
			tc.TypecheckTypename(p, scope)
		}
		return tc.NewInference()

	case *syn.Array:
		return tc.instance("Array", tc.TypecheckTypename(t.Elem, scope))

	case *syn.Dictionary:
		k := tc.TypecheckTypename(t.Key, scope)
		v := tc.TypecheckTypename(t.Value, scope)
		return tc.instance("Dictionary", k, v)

	case *syn.Tuple:
		var elems []TypeID
		for _, e := range t.Elems {
			elems = append(elems, tc.TypecheckTypename(e, scope))
		}
		return tc.instance("Tuple", elems...)

	case *syn.Set:
		return tc.instance("Set", tc.TypecheckTypename(t.Elem, scope))

	case *syn.Optional:
		return tc.instance("Optional", tc.TypecheckTypename(t.Elem, scope))

	case *syn.WeakPtr:
		return tc.instance("WeakPtr", tc.TypecheckTypename(t.Elem, scope))

	case *syn.RawPtr:
		return tc.FindOrAddTypeID(&RawPtr{Elem: tc.TypecheckTypename(t.Elem, scope)})

	case *syn.Empty:
		return tc.NewInference()
	}
	unreachable(t)
	return TypeID{}
}

// namespaceChild returns the child namespace of scope with the given name.
// FindNamespaceInScope resolves to the scope holding the namespace,
// or to the root of an imported module; in the latter case
// there is no child, and scope itself is returned.
func (tc *Typechecker) namespaceChild(scope ScopeID, name string) ScopeID {
	for _, child := range tc.program.GetScope(scope).Children {
		if tc.program.GetScope(child).Namespace == name {
			return child
		}
	}
	return scope
}

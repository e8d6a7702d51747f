// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import "github.com/eaburns/sema/syn"

// preludeStructs are the structs of the prelude module
// and the names of their type parameters.
// Type names for tuples, arrays, dictionaries, sets, optionals,
// and weak pointers are instances of these structs.
// Error is the type of thrown values.
var preludeStructs = []struct {
	name   string
	params []string
}{
	{name: "Tuple"},
	{name: "Array", params: []string{"T"}},
	{name: "Dictionary", params: []string{"K", "V"}},
	{name: "Set", params: []string{"T"}},
	{name: "Optional", params: []string{"T"}},
	{name: "WeakPtr", params: []string{"T"}},
	{name: "Error"},
}

func preludeSyntax() *syn.Module {
	m := &syn.Module{Name: "prelude"}
	for _, s := range preludeStructs {
		st := &syn.Struct{Name: s.name, Linkage: syn.External}
		for _, p := range s.params {
			st.GenericParams = append(st.GenericParams, syn.GenericParam{Name: p})
		}
		m.Namespace.Structs = append(m.Namespace.Structs, st)
	}
	return m
}

// newPrelude adds module 0, the prelude, to the program.
// Its type table begins with the builtin types, in Builtin order.
func newPrelude(tc *Typechecker) {
	defer tc.tr("newPrelude")()
	if id := tc.addModule("prelude"); id != PreludeModule {
		panic(internalErrorf(nil, "prelude is module %d", id))
	}
	m := tc.module()
	for b := Void; b < numBuiltins; b++ {
		m.Types = append(m.Types, b)
	}
	tc.checkModule(preludeSyntax())
}

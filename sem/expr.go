// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"math/big"

	"github.com/eaburns/sema/syn"
)

// TypecheckExpression checks an expression in the given scope.
// Errors are recorded and checking continues;
// an expression whose type cannot be determined
// is given a new inference placeholder type.
func (tc *Typechecker) TypecheckExpression(e syn.Expr, scope ScopeID) (res Expr) {
	defer tc.tr("TypecheckExpression(%T)", e)(&res)

	switch e := e.(type) {
	case *syn.Bool:
		return &BoolLit{Span: e.Span, Val: e.Val, T: Bool.ID()}

	case *syn.NumericConstant:
		return &NumericConst{
			Span:  e.Span,
			Kind:  e.Kind,
			Int:   e.Int,
			Float: e.Float,
			T:     numericType(e.Kind).ID(),
		}

	case *syn.QuotedString:
		return &QuotedString{Span: e.Span, Val: e.Val, T: String.ID()}

	case *syn.Char:
		return &CharLit{Span: e.Span, Val: e.Val, T: CChar.ID()}

	case *syn.Byte:
		return &ByteLit{Span: e.Span, Val: e.Val, T: U8.ID()}

	case *syn.Var:
		return tc.checkVar(e, scope)

	case *syn.Unary:
		return tc.checkUnary(e, scope)

	case *syn.Binary:
		return tc.checkBinary(e, scope)

	case *syn.TupleLit:
		lit := &TupleLit{Span: e.Span}
		var types []TypeID
		for _, elem := range e.Elems {
			x := tc.TypecheckExpression(elem, scope)
			lit.Elems = append(lit.Elems, x)
			types = append(types, x.Type())
		}
		lit.T = tc.instance("Tuple", types...)
		return lit

	case *syn.Range:
		return tc.checkRange(e, scope)

	case *syn.ArrayLit:
		lit := &ArrayLit{Span: e.Span}
		var elem TypeID
		lit.Elems, elem = tc.checkElems(e.Elems, scope, "array")
		lit.T = tc.instance("Array", elem)
		return lit

	case *syn.SetLit:
		lit := &SetLit{Span: e.Span}
		var elem TypeID
		lit.Elems, elem = tc.checkElems(e.Elems, scope, "set")
		lit.T = tc.instance("Set", elem)
		return lit

	case *syn.DictionaryLit:
		return tc.checkDictionaryLit(e, scope)

	case *syn.Index:
		return tc.checkIndex(e, scope)

	case *syn.IndexedTuple:
		return tc.checkIndexedTuple(e, scope)

	case *syn.IndexedStruct:
		return tc.checkIndexedStruct(e, scope)

	case *syn.CallExpr:
		call := tc.checkCall(&e.Call, scope)
		return &Call{Span: e.Span, Call: call, T: call.ReturnType}

	case *syn.MethodCall:
		recv := tc.TypecheckExpression(e.Expr, scope)
		call := tc.checkCall(&e.Call, scope)
		return &MethodCall{Span: e.Span, Expr: recv, Call: call, T: call.ReturnType}

	case *syn.None:
		return &OptionalNone{Span: e.Span, T: tc.NewInference()}

	case *syn.Some:
		x := tc.TypecheckExpression(e.Expr, scope)
		return &OptionalSome{Span: e.Span, Expr: x, T: tc.instance("Optional", x.Type())}

	case *syn.ForcedUnwrap:
		x := tc.TypecheckExpression(e.Expr, scope)
		t, ok := tc.optionalElem(x.Type())
		if !ok {
			if args, weak := tc.instanceArgs(x.Type(), "WeakPtr"); weak && len(args) == 1 {
				t, ok = args[0], true
			}
		}
		if !ok {
			tc.err(e.Span, "forced unwrap only works on Optional or WeakPtr, found '%s'", tc.typeName(x.Type()))
			t = tc.NewInference()
		}
		return &ForcedUnwrap{Span: e.Span, Expr: x, T: t}

	case *syn.Match, *syn.Operator, *syn.Garbage:
		notSupported(e)
	}
	unreachable(e)
	return nil
}

// numericType returns the type of a numeric literal of the given kind.
// Usize literals are typed u64.
func numericType(k syn.NumericKind) Builtin {
	switch k {
	case syn.I8:
		return I8
	case syn.I16:
		return I16
	case syn.I32:
		return I32
	case syn.I64:
		return I64
	case syn.U8:
		return U8
	case syn.U16:
		return U16
	case syn.U32:
		return U32
	case syn.U64, syn.Usize:
		return U64
	case syn.F32:
		return F32
	case syn.F64:
		return F64
	}
	panic(internalErrorf(nil, "impossible numeric kind %d", k))
}

func (tc *Typechecker) checkVar(e *syn.Var, scope ScopeID) *Var {
	if id, ok := tc.program.FindVarInScope(scope, e.Name); ok {
		v := tc.program.GetVariable(id)
		return &Var{Span: e.Span, Var: v, ID: &id, T: v.Type}
	}
	tc.err(e.Span, "variable '%s' not found", e.Name)
	t := tc.NewInference()
	return &Var{
		Span: e.Span,
		Var:  CheckedVariable{Name: e.Name, Type: t, DefinitionSpan: e.Span},
		T:    t,
	}
}

func (tc *Typechecker) checkUnary(e *syn.Unary, scope ScopeID) *Unary {
	x := tc.TypecheckExpression(e.Expr, scope)
	u := &Unary{Span: e.Span, Expr: x, Op: CheckedUnaryOp{Kind: e.Op.Kind, Fallible: e.Op.Fallible}}
	switch e.Op.Kind {
	case syn.PreIncrement, syn.PostIncrement, syn.PreDecrement, syn.PostDecrement:
		switch {
		case !tc.isInteger(x.Type()):
			tc.err(e.Span, "operator %s requires an integer, found '%s'", e.Op.Kind, tc.typeName(x.Type()))
		case !ExpressionIsMutable(x):
			tc.err(e.Span, "operator %s requires a mutable operand", e.Op.Kind)
		}
		u.T = x.Type()

	case syn.Negate, syn.BitwiseNot:
		u.T = x.Type()

	case syn.LogicalNot:
		if x.Type() != Bool.ID() {
			tc.err(e.Span, "logical not of a non-boolean value of type '%s'", tc.typeName(x.Type()))
		}
		u.T = Bool.ID()

	case syn.Dereference:
		if p, ok := tc.program.GetType(x.Type()).(*RawPtr); ok {
			u.T = p.Elem
		} else {
			tc.err(e.Span, "dereference of a non-pointer value of type '%s'", tc.typeName(x.Type()))
			u.T = tc.NewInference()
		}

	case syn.RawAddress:
		u.T = tc.FindOrAddTypeID(&RawPtr{Elem: x.Type()})

	case syn.TypeCast:
		u.Op.Type = tc.TypecheckTypename(e.Op.Type, scope)
		u.T = u.Op.Type
		if e.Op.Fallible {
			u.T = tc.instance("Optional", u.Op.Type)
		}

	case syn.Is:
		u.Op.Type = tc.TypecheckTypename(e.Op.Type, scope)
		u.T = Bool.ID()

	default:
		unreachable(e)
	}
	return u
}

func (tc *Typechecker) checkRange(e *syn.Range, scope ScopeID) *Range {
	from := tc.TypecheckExpression(e.From, scope)
	to := tc.TypecheckExpression(e.To, scope)
	to = tc.promoteConstant(from.Type(), to)
	from = tc.promoteConstant(to.Type(), from)
	if _, conflict := tc.Unify(from.Type(), from.GetSpan(), to.Type(), to.GetSpan()); conflict {
		tc.err(e.Span, "range endpoints have incompatible types ('%s' and '%s')",
			tc.typeName(from.Type()), tc.typeName(to.Type()))
	}
	return &Range{Span: e.Span, From: from, To: to, T: from.Type()}
}

// checkElems checks the elements of an array or set literal.
// The element type is the type of the first element,
// or a new inference placeholder if there are no elements.
func (tc *Typechecker) checkElems(elems []syn.Expr, scope ScopeID, what string) ([]Expr, TypeID) {
	var xs []Expr
	for _, elem := range elems {
		xs = append(xs, tc.TypecheckExpression(elem, scope))
	}
	if len(xs) == 0 {
		return nil, tc.NewInference()
	}
	t := xs[0].Type()
	for i := 1; i < len(xs); i++ {
		xs[i] = tc.promoteConstant(t, xs[i])
		if _, conflict := tc.Unify(xs[i].Type(), xs[i].GetSpan(), t, xs[0].GetSpan()); conflict {
			tc.err(xs[i].GetSpan(), "type '%s' does not match type '%s' of previous values in %s",
				tc.typeName(xs[i].Type()), tc.typeName(t), what)
		}
	}
	return xs, t
}

func (tc *Typechecker) checkDictionaryLit(e *syn.DictionaryLit, scope ScopeID) *DictionaryLit {
	lit := &DictionaryLit{Span: e.Span}
	for _, ent := range e.Entries {
		lit.Entries = append(lit.Entries, DictionaryEntry{
			Key:   tc.TypecheckExpression(ent.Key, scope),
			Value: tc.TypecheckExpression(ent.Value, scope),
		})
	}
	if len(lit.Entries) == 0 {
		lit.T = tc.instance("Dictionary", tc.NewInference(), tc.NewInference())
		return lit
	}
	first := lit.Entries[0]
	k, v := first.Key.Type(), first.Value.Type()
	for i := 1; i < len(lit.Entries); i++ {
		ent := &lit.Entries[i]
		ent.Key = tc.promoteConstant(k, ent.Key)
		if _, conflict := tc.Unify(ent.Key.Type(), ent.Key.GetSpan(), k, first.Key.GetSpan()); conflict {
			tc.err(ent.Key.GetSpan(), "type '%s' does not match type '%s' of previous keys in dictionary",
				tc.typeName(ent.Key.Type()), tc.typeName(k))
		}
		ent.Value = tc.promoteConstant(v, ent.Value)
		if _, conflict := tc.Unify(ent.Value.Type(), ent.Value.GetSpan(), v, first.Value.GetSpan()); conflict {
			tc.err(ent.Value.GetSpan(), "type '%s' does not match type '%s' of previous values in dictionary",
				tc.typeName(ent.Value.Type()), tc.typeName(v))
		}
	}
	lit.T = tc.instance("Dictionary", k, v)
	return lit
}

func (tc *Typechecker) checkIndex(e *syn.Index, scope ScopeID) Expr {
	x := tc.TypecheckExpression(e.Expr, scope)
	idx := tc.TypecheckExpression(e.Index, scope)
	if args, ok := tc.instanceArgs(x.Type(), "Array"); ok && len(args) == 1 {
		if !tc.isInteger(idx.Type()) {
			tc.err(idx.GetSpan(), "array index must be an integer, found '%s'", tc.typeName(idx.Type()))
		}
		return &IndexedExpr{Span: e.Span, Expr: x, Index: idx, T: args[0]}
	}
	if args, ok := tc.instanceArgs(x.Type(), "Dictionary"); ok && len(args) == 2 {
		idx = tc.promoteConstant(args[0], idx)
		if _, conflict := tc.Unify(idx.Type(), idx.GetSpan(), args[0], x.GetSpan()); conflict {
			tc.err(idx.GetSpan(), "dictionary key type mismatch: expected '%s', found '%s'",
				tc.typeName(args[0]), tc.typeName(idx.Type()))
		}
		return &IndexedDictionary{Span: e.Span, Expr: x, Index: idx, T: args[1]}
	}
	tc.err(e.Span, "index used on value of type '%s' that cannot be indexed", tc.typeName(x.Type()))
	return &IndexedExpr{Span: e.Span, Expr: x, Index: idx, T: tc.NewInference()}
}

func (tc *Typechecker) checkIndexedTuple(e *syn.IndexedTuple, scope ScopeID) *IndexedTuple {
	x := tc.TypecheckExpression(e.Expr, scope)
	it := &IndexedTuple{Span: e.Span, Expr: x, Index: e.Index}
	args, ok := tc.instanceArgs(x.Type(), "Tuple")
	switch {
	case !ok:
		tc.err(e.Span, "tuple index used on non-tuple value of type '%s'", tc.typeName(x.Type()))
		it.T = tc.NewInference()
	case e.Index < 0 || e.Index >= len(args):
		tc.err(e.Span, "tuple index %d past the end of tuple of %d elements", e.Index, len(args))
		it.T = tc.NewInference()
	default:
		it.T = args[e.Index]
	}
	return it
}

func (tc *Typechecker) checkIndexedStruct(e *syn.IndexedStruct, scope ScopeID) *IndexedStruct {
	x := tc.TypecheckExpression(e.Expr, scope)
	is := &IndexedStruct{Span: e.Span, Expr: x, Field: e.Field}
	var id StructID
	var args []TypeID
	switch t := tc.program.GetType(x.Type()).(type) {
	case *StructType:
		id = t.Struct
	case *GenericInstance:
		id, args = t.Struct, t.Args
	default:
		tc.err(e.Span, "member access of non-struct value of type '%s'", tc.typeName(x.Type()))
		is.T = tc.NewInference()
		return is
	}
	st := tc.program.GetStruct(id)
	for _, f := range st.Fields {
		v := tc.program.GetVariable(f)
		if v.Name != e.Field {
			continue
		}
		is.T = v.Type
		for i, p := range st.GenericParams {
			if p == v.Type && i < len(args) {
				is.T = args[i]
			}
		}
		return is
	}
	tc.err(e.Span, "unknown member of struct %s: %s", st.Name, e.Field)
	is.T = tc.NewInference()
	return is
}

// promoteConstant returns e, retyped to the integer type want
// if e is an integer constant whose value is representable in want.
// Otherwise e is returned unchanged.
func (tc *Typechecker) promoteConstant(want TypeID, e Expr) Expr {
	c, ok := e.(*NumericConst)
	if !ok || c.Int == nil || c.T == want {
		return e
	}
	b, ok := tc.program.GetType(want).(Builtin)
	if !ok {
		return e
	}
	kind, ok := integerKind(b)
	if !ok || !fits(c.Int, kind) {
		return e
	}
	return &NumericConst{Span: c.Span, Kind: kind, Int: c.Int, T: want}
}

func integerKind(b Builtin) (syn.NumericKind, bool) {
	switch b {
	case I8:
		return syn.I8, true
	case I16:
		return syn.I16, true
	case I32:
		return syn.I32, true
	case I64:
		return syn.I64, true
	case U8:
		return syn.U8, true
	case U16:
		return syn.U16, true
	case U32:
		return syn.U32, true
	case U64:
		return syn.U64, true
	case Usize:
		return syn.Usize, true
	}
	return 0, false
}

// fits returns whether x is representable by an integer of the given kind.
func fits(x *big.Int, k syn.NumericKind) bool {
	var bits uint
	signed := false
	switch k {
	case syn.I8:
		bits, signed = 8, true
	case syn.I16:
		bits, signed = 16, true
	case syn.I32:
		bits, signed = 32, true
	case syn.I64:
		bits, signed = 64, true
	case syn.U8:
		bits = 8
	case syn.U16:
		bits = 16
	case syn.U32:
		bits = 32
	case syn.U64, syn.Usize:
		bits = 64
	default:
		return false
	}
	var min, max big.Int
	if signed {
		min.Lsh(big.NewInt(1), bits-1)
		min.Neg(&min)
		max.Lsh(big.NewInt(1), bits-1)
	} else {
		max.Lsh(big.NewInt(1), bits)
	}
	max.Sub(&max, big.NewInt(1))
	return x.Cmp(&min) >= 0 && x.Cmp(&max) <= 0
}

// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"math/big"
	"regexp"
	"testing"

	"github.com/eaburns/pretty"
	"github.com/eaburns/sema/syn"
	"github.com/nalgeon/be"
)

// exprTestDecls declares:
// 	c, an immutable i32
// 	m, a mutable i32
// 	b, a bool
// 	s, a String
// 	opt, an i32?
// 	arr, an [i32]
// 	dict, a [String: i32]
// 	tup, an (i32, String)
func exprTestDecls() []syn.Stmt {
	return []syn.Stmt{
		let("c", nil, i32(1)),
		mut("m", nil, i32(1)),
		let("b", nil, boolean(true)),
		let("s", nil, str("x")),
		mut("opt", optional(tname("i32")), some(i32(1))),
		mut("arr", nil, &syn.ArrayLit{Elems: []syn.Expr{i32(1)}}),
		let("dict", nil, &syn.DictionaryLit{Entries: []syn.DictionaryEntry{{Key: str("a"), Value: i32(1)}}}),
		let("tup", nil, &syn.TupleLit{Elems: []syn.Expr{i32(1), str("x")}}),
	}
}

type exprTest struct {
	name string
	expr syn.Expr
	// want is the TypeName of the expression's type.
	want string
	err  string // regexp, "" means no error
}

func (test exprTest) run(t *testing.T) {
	tc, e := checkExpr(t, test.expr, exprTestDecls()...)
	s := errorString(tc.Errors())
	switch {
	case test.err == "" && s != "":
		t.Errorf("got %s, expected nil", s)
	case test.err != "" && s == "":
		t.Errorf("got nil, expected matching %s", test.err)
	case test.err != "" && !regexp.MustCompile(test.err).MatchString(s):
		t.Errorf("got %s, expected matching %s", s, test.err)
	}
	if got := tc.Program().TypeName(e.Type()); got != test.want {
		t.Logf("%s", pretty.String(e))
		t.Errorf("got type %s, want %s", got, test.want)
	}
}

func TestLiteralTypes(t *testing.T) {
	tests := []exprTest{
		{name: "i8", expr: num(syn.I8, 1), want: "i8"},
		{name: "i16", expr: num(syn.I16, 1), want: "i16"},
		{name: "i32", expr: i32(5), want: "i32"},
		{name: "i64", expr: i64(5), want: "i64"},
		{name: "u8", expr: num(syn.U8, 1), want: "u8"},
		{name: "u16", expr: num(syn.U16, 1), want: "u16"},
		{name: "u32", expr: num(syn.U32, 1), want: "u32"},
		{name: "u64", expr: num(syn.U64, 1), want: "u64"},
		{name: "usize", expr: num(syn.Usize, 1), want: "u64"},
		{name: "f32", expr: &syn.NumericConstant{Kind: syn.F32, Float: big.NewFloat(1.5)}, want: "f32"},
		{name: "f64", expr: &syn.NumericConstant{Kind: syn.F64, Float: big.NewFloat(1.5)}, want: "f64"},
		{name: "bool", expr: boolean(false), want: "bool"},
		{name: "string", expr: str("hello"), want: "String"},
		{name: "char", expr: &syn.Char{Val: 'x'}, want: "c_char"},
		{name: "byte", expr: &syn.Byte{Val: 'x'}, want: "u8"},
		{name: "none", expr: &syn.None{}, want: "_"},
		{name: "some", expr: some(i32(5)), want: "Optional<i32>"},
		{name: "some some", expr: some(some(str("x"))), want: "Optional<Optional<String>>"},
	}
	for _, test := range tests {
		t.Run(test.name, test.run)
	}
}

func TestNumericLiteral(t *testing.T) {
	_, e := checkExpr(t, &syn.NumericConstant{Span: span(1, 5), Kind: syn.I32, Int: big.NewInt(5)})
	c, ok := e.(*NumericConst)
	if !ok {
		t.Fatalf("got %T, expected *NumericConst", e)
	}
	be.Equal(t, c.T, I32.ID())
	be.Equal(t, c.Kind, syn.I32)
	be.Equal(t, c.Int.Int64(), int64(5))
	be.Equal(t, c.GetSpan(), span(1, 5))
}

func TestSomeType(t *testing.T) {
	tc, e := checkExpr(t, some(i32(5)))
	inst, ok := tc.Program().GetType(e.Type()).(*GenericInstance)
	if !ok {
		t.Fatalf("got %s, expected a generic instance", tc.Program().TypeName(e.Type()))
	}
	be.Equal(t, inst.Struct, tc.preludeStruct("Optional"))
	be.Equal(t, len(inst.Args), 1)
	be.Equal(t, inst.Args[0], I32.ID())
}

func TestNoneIsDistinctPlaceholder(t *testing.T) {
	tc, fn := checkBody(t, exprStmt(&syn.None{}), exprStmt(&syn.None{}))
	a := fn.Block.Stmts[0].(*ExprStmt).Expr.Type()
	b := fn.Block.Stmts[1].(*ExprStmt).Expr.Type()
	be.True(t, a != b)
	be.Equal(t, len(tc.Errors()), 0)
}

func TestVar(t *testing.T) {
	tests := []exprTest{
		{name: "found", expr: ref("c"), want: "i32"},
		{name: "optional", expr: ref("opt"), want: "Optional<i32>"},
		{name: "not found", expr: ref("nope"), want: "_", err: "variable 'nope' not found"},
	}
	for _, test := range tests {
		t.Run(test.name, test.run)
	}
}

func TestVarNotFound(t *testing.T) {
	tc, e := checkExpr(t, &syn.Var{Span: span(4, 8), Name: "nope"})
	v, ok := e.(*Var)
	if !ok {
		t.Fatalf("got %T, expected *Var", e)
	}
	be.True(t, v.ID == nil)
	be.Equal(t, v.Var.Name, "nope")
	be.True(t, !v.Var.Mutable)
	errs := tc.Errors()
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Span, span(4, 8))
}

func TestVarFound(t *testing.T) {
	tc, e := checkExpr(t, ref("m"), mut("m", tname("i64"), i64(1)))
	v, ok := e.(*Var)
	if !ok {
		t.Fatalf("got %T, expected *Var", e)
	}
	be.True(t, v.ID != nil)
	be.Equal(t, tc.Program().GetVariable(*v.ID).Name, "m")
	be.True(t, v.Var.Mutable)
	be.Equal(t, v.T, I64.ID())
}

func TestUnary(t *testing.T) {
	cast := func(fallible bool) *syn.Unary {
		return &syn.Unary{
			Expr: ref("c"),
			Op:   syn.UnaryOp{Kind: syn.TypeCast, Type: tname("i64"), Fallible: fallible},
		}
	}
	tests := []exprTest{
		{name: "pre-increment", expr: unary(syn.PreIncrement, ref("m")), want: "i32"},
		{name: "post-decrement", expr: unary(syn.PostDecrement, ref("m")), want: "i32"},
		{
			name: "increment immutable",
			expr: unary(syn.PreIncrement, ref("c")),
			want: "i32",
			err:  `operator \+\+x requires a mutable operand`,
		},
		{
			name: "increment non-integer",
			expr: unary(syn.PostIncrement, ref("s")),
			want: "String",
			err:  `operator x\+\+ requires an integer, found 'String'`,
		},
		{name: "negate", expr: unary(syn.Negate, ref("c")), want: "i32"},
		{name: "bitwise not", expr: unary(syn.BitwiseNot, ref("c")), want: "i32"},
		{name: "not", expr: unary(syn.LogicalNot, ref("b")), want: "bool"},
		{
			name: "not non-bool",
			expr: unary(syn.LogicalNot, ref("c")),
			want: "bool",
			err:  "logical not of a non-boolean value of type 'i32'",
		},
		{name: "address", expr: unary(syn.RawAddress, ref("c")), want: "raw i32"},
		{name: "dereference", expr: unary(syn.Dereference, unary(syn.RawAddress, ref("s"))), want: "String"},
		{
			name: "dereference non-pointer",
			expr: unary(syn.Dereference, ref("c")),
			want: "_",
			err:  "dereference of a non-pointer value of type 'i32'",
		},
		{name: "cast", expr: cast(false), want: "i64"},
		{name: "fallible cast", expr: cast(true), want: "Optional<i64>"},
		{
			name: "is",
			expr: &syn.Unary{Expr: ref("c"), Op: syn.UnaryOp{Kind: syn.Is, Type: tname("i64")}},
			want: "bool",
		},
	}
	for _, test := range tests {
		t.Run(test.name, test.run)
	}
}

func TestCollectionLiterals(t *testing.T) {
	array := func(es ...syn.Expr) *syn.ArrayLit { return &syn.ArrayLit{Elems: es} }
	dict := func(kvs ...syn.Expr) *syn.DictionaryLit {
		d := &syn.DictionaryLit{}
		for i := 0; i < len(kvs); i += 2 {
			d.Entries = append(d.Entries, syn.DictionaryEntry{Key: kvs[i], Value: kvs[i+1]})
		}
		return d
	}
	tests := []exprTest{
		{name: "tuple", expr: &syn.TupleLit{Elems: []syn.Expr{i32(1), str("x")}}, want: "Tuple<i32, String>"},
		{name: "array", expr: array(i32(1), i32(2)), want: "Array<i32>"},
		{name: "empty array", expr: array(), want: "Array<_>"},
		{name: "array promotes constants", expr: array(i32(1), i64(2)), want: "Array<i32>"},
		{
			name: "array mismatch",
			expr: array(i32(1), str("x")),
			want: "Array<i32>",
			err:  "type 'String' does not match type 'i32' of previous values in array",
		},
		{name: "set", expr: &syn.SetLit{Elems: []syn.Expr{boolean(true), boolean(false)}}, want: "Set<bool>"},
		{
			name: "set mismatch",
			expr: &syn.SetLit{Elems: []syn.Expr{boolean(true), i32(1)}},
			want: "Set<bool>",
			err:  "type 'i32' does not match type 'bool' of previous values in set",
		},
		{name: "dictionary", expr: dict(str("a"), i32(1), str("b"), i32(2)), want: "Dictionary<String, i32>"},
		{name: "empty dictionary", expr: dict(), want: "Dictionary<_, _>"},
		{
			name: "dictionary key mismatch",
			expr: dict(str("a"), i32(1), boolean(true), i32(2)),
			want: "Dictionary<String, i32>",
			err:  "type 'bool' does not match type 'String' of previous keys in dictionary",
		},
		{
			name: "dictionary value mismatch",
			expr: dict(str("a"), i32(1), str("b"), str("c")),
			want: "Dictionary<String, i32>",
			err:  "type 'String' does not match type 'i32' of previous values in dictionary",
		},
		{name: "range", expr: &syn.Range{From: i32(1), To: ref("c")}, want: "i32"},
		{name: "range promotes constants", expr: &syn.Range{From: i64(1), To: ref("c")}, want: "i32"},
		{
			name: "range mismatch",
			expr: &syn.Range{From: ref("c"), To: str("x")},
			want: "i32",
			err:  `range endpoints have incompatible types \('i32' and 'String'\)`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, test.run)
	}
}

func TestAccess(t *testing.T) {
	index := func(e, i syn.Expr) *syn.Index { return &syn.Index{Expr: e, Index: i} }
	tests := []exprTest{
		{name: "array index", expr: index(ref("arr"), i64(0)), want: "i32"},
		{
			name: "array non-integer index",
			expr: index(ref("arr"), str("x")),
			want: "i32",
			err:  "array index must be an integer, found 'String'",
		},
		{name: "dictionary index", expr: index(ref("dict"), str("a")), want: "i32"},
		{
			name: "dictionary key mismatch",
			expr: index(ref("dict"), ref("c")),
			want: "i32",
			err:  "dictionary key type mismatch: expected 'String', found 'i32'",
		},
		{
			name: "index non-indexable",
			expr: index(ref("c"), i32(0)),
			want: "_",
			err:  "index used on value of type 'i32' that cannot be indexed",
		},
		{name: "tuple index 0", expr: &syn.IndexedTuple{Expr: ref("tup"), Index: 0}, want: "i32"},
		{name: "tuple index 1", expr: &syn.IndexedTuple{Expr: ref("tup"), Index: 1}, want: "String"},
		{
			name: "tuple index out of range",
			expr: &syn.IndexedTuple{Expr: ref("tup"), Index: 2},
			want: "_",
			err:  "tuple index 2 past the end of tuple of 2 elements",
		},
		{
			name: "tuple index non-tuple",
			expr: &syn.IndexedTuple{Expr: ref("c"), Index: 0},
			want: "_",
			err:  "tuple index used on non-tuple value of type 'i32'",
		},
		{name: "forced unwrap", expr: &syn.ForcedUnwrap{Expr: ref("opt")}, want: "i32"},
		{
			name: "forced unwrap non-optional",
			expr: &syn.ForcedUnwrap{Expr: ref("c")},
			want: "_",
			err:  "forced unwrap only works on Optional or WeakPtr, found 'i32'",
		},
		{
			name: "member of non-struct",
			expr: &syn.IndexedStruct{Expr: ref("c"), Field: "x"},
			want: "_",
			err:  "member access of non-struct value of type 'i32'",
		},
	}
	for _, test := range tests {
		t.Run(test.name, test.run)
	}
}

// structModule returns a module with
// 	struct Point { x: i32, y: i32 }
// 	struct Box<T> { value: T }
// and a function test with the given body.
func structModule(stmts ...syn.Stmt) *syn.Module {
	m := module("test", function("test", nil, stmts...))
	m.Namespace.Structs = []*syn.Struct{
		{
			Name: "Point",
			Fields: []syn.VarDecl{
				{Name: "x", Type: tname("i32"), Mutable: true},
				{Name: "y", Type: tname("i32"), Mutable: true},
			},
		},
		{
			Name:          "Box",
			GenericParams: []syn.GenericParam{{Name: "T"}},
			Fields: []syn.VarDecl{
				{Name: "value", Type: tname("T")},
			},
		},
	}
	return m
}

func TestIndexedStruct(t *testing.T) {
	tests := []struct {
		name string
		typ  syn.Type
		expr syn.Expr
		want string
		err  string
	}{
		{
			name: "field",
			typ:  tname("Point"),
			expr: &syn.IndexedStruct{Expr: ref("p"), Field: "y"},
			want: "i32",
		},
		{
			name: "unknown field",
			typ:  tname("Point"),
			expr: &syn.IndexedStruct{Expr: ref("p"), Field: "z"},
			want: "_",
			err:  "unknown member of struct Point: z",
		},
		{
			name: "generic field",
			typ:  &syn.GenericType{Name: "Box", Params: []syn.Type{tname("i32")}},
			expr: &syn.IndexedStruct{Expr: ref("p"), Field: "value"},
			// User generic types are not instantiated.
			want: "_",
			err:  "member access of non-struct value of type '_'",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// The struct value comes from a parameter,
			// since there are no struct literals.
			m := structModule(exprStmt(test.expr))
			fn := m.Namespace.Functions[0]
			fn.Params = []syn.Param{param("p", test.typ)}
			tc := NewTypechecker(Config{})
			id := tc.TypecheckModule(m)
			s := errorString(tc.Errors())
			switch {
			case test.err == "" && s != "":
				t.Errorf("got %s, expected nil", s)
			case test.err != "" && !regexp.MustCompile(test.err).MatchString(s):
				t.Errorf("got %s, expected matching %s", s, test.err)
			}
			checked := tc.Program().GetModule(id).Functions[0]
			e := checked.Block.Stmts[0].(*ExprStmt).Expr
			be.Equal(t, tc.Program().TypeName(e.Type()), test.want)
		})
	}
}

func TestCalls(t *testing.T) {
	tests := []exprTest{
		{name: "println", expr: call("println", str("x"), ref("c")), want: "void"},
		{name: "print", expr: call("print"), want: "void"},
		{name: "eprint", expr: call("eprint", ref("c")), want: "void"},
		{name: "eprintln", expr: call("eprintln", ref("c")), want: "void"},
		{name: "format", expr: call("format", str("{}"), ref("c")), want: "String"},
		{
			name: "print checks arguments",
			expr: call("println", ref("nope")),
			want: "void",
			err:  "variable 'nope' not found",
		},
		// Other calls are unresolved; their arguments are not checked.
		{name: "unresolved", expr: call("frob", ref("nope")), want: "void"},
		{
			name: "method call receiver",
			expr: &syn.MethodCall{Expr: ref("nope"), Call: syn.Call{Name: "frob"}},
			want: "void",
			err:  "variable 'nope' not found",
		},
	}
	for _, test := range tests {
		t.Run(test.name, test.run)
	}
}

func TestUnresolvedCall(t *testing.T) {
	tc, e := checkExpr(t, call("frob", ref("nope")))
	c, ok := e.(*Call)
	if !ok {
		t.Fatalf("got %T, expected *Call", e)
	}
	be.Equal(t, c.Call.Name, "frob")
	be.True(t, c.Call.Function == nil)
	be.Equal(t, len(c.Call.Namespace), 0)
	be.Equal(t, len(c.Call.Args), 0)
	be.Equal(t, c.Call.ReturnType, Void.ID())
	be.True(t, !c.Call.Throws)
	be.Equal(t, len(tc.Errors()), 0)
}

func TestPrintCallArgs(t *testing.T) {
	_, e := checkExpr(t, &syn.CallExpr{Call: syn.Call{
		Name: "println",
		Args: []syn.Arg{{Expr: str("x")}, {Name: "label", Expr: i32(1)}},
	}})
	c := e.(*Call)
	be.Equal(t, len(c.Call.Args), 2)
	be.Equal(t, c.Call.Args[0].Name, "")
	be.Equal(t, c.Call.Args[0].Expr.Type(), String.ID())
	be.Equal(t, c.Call.Args[1].Name, "label")
	be.Equal(t, c.Call.Args[1].Expr.Type(), I32.ID())
}

func TestConfiguredPrintCalls(t *testing.T) {
	tc := NewTypechecker(Config{PrintCalls: []string{"log"}})
	id := tc.TypecheckModule(module("test", function("test", nil,
		exprStmt(call("log", ref("nope"))),
		exprStmt(call("println", ref("nope"))),
	)))
	// Only log checks its arguments.
	errs := tc.Errors()
	be.Equal(t, len(errs), 1)
	stmts := tc.Program().GetModule(id).Functions[0].Block.Stmts
	be.Equal(t, len(stmts[0].(*ExprStmt).Expr.(*Call).Call.Args), 1)
	be.Equal(t, len(stmts[1].(*ExprStmt).Expr.(*Call).Call.Args), 0)
}

func TestNotSupported(t *testing.T) {
	tests := []struct {
		name string
		expr syn.Expr
	}{
		{name: "match", expr: &syn.Match{Expr: i32(1)}},
		{name: "operator", expr: &syn.Operator{Op: syn.Add}},
		{name: "garbage", expr: &syn.Garbage{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			expectInternalError(t, "not yet supported", func() {
				checkExpr(t, test.expr)
			})
		})
	}
}

func TestExpressionIsMutable(t *testing.T) {
	tests := []struct {
		name string
		expr syn.Expr
		want bool
	}{
		{name: "immutable var", expr: ref("c"), want: false},
		{name: "mutable var", expr: ref("m"), want: true},
		{name: "unknown var", expr: ref("nope"), want: false},
		{name: "index mutable", expr: &syn.Index{Expr: ref("arr"), Index: i64(0)}, want: true},
		{name: "index immutable", expr: &syn.Index{Expr: ref("dict"), Index: str("a")}, want: false},
		{name: "tuple index", expr: &syn.IndexedTuple{Expr: ref("tup"), Index: 0}, want: false},
		{name: "forced unwrap", expr: &syn.ForcedUnwrap{Expr: ref("opt")}, want: true},
		{name: "literal", expr: i32(1), want: false},
		{name: "binary", expr: binary(ref("m"), syn.Add, ref("m")), want: false},
		{name: "call", expr: call("format"), want: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, e := checkExpr(t, test.expr, exprTestDecls()...)
			be.Equal(t, ExpressionIsMutable(e), test.want)
		})
	}
}

func TestPromoteConstant(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		val  *syn.NumericConstant
		want string
		err  string
	}{
		{name: "i64 to u8", typ: "u8", val: i64(255), want: "u8"},
		{name: "i64 to i8 min", typ: "i8", val: i64(-128), want: "i8"},
		{name: "i64 to usize", typ: "usize", val: i64(7), want: "usize"},
		{name: "i32 to u64", typ: "u64", val: i32(7), want: "u64"},
		{
			name: "overflow",
			typ:  "u8",
			val:  i64(256),
			want: "u8",
			err:  "expected 'u8', found 'i64'",
		},
		{
			name: "negative unsigned",
			typ:  "u32",
			val:  i64(-1),
			want: "u32",
			err:  "expected 'u32', found 'i64'",
		},
		{
			name: "float target",
			typ:  "f64",
			val:  i64(1),
			want: "f64",
			err:  "expected 'f64', found 'i64'",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tc, fn := checkBody(t, let("x", tname(test.typ), test.val))
			s := errorString(tc.Errors())
			switch {
			case test.err == "" && s != "":
				t.Errorf("got %s, expected nil", s)
			case test.err != "" && !regexp.MustCompile(test.err).MatchString(s):
				t.Errorf("got %s, expected matching %s", s, test.err)
			}
			d := fn.Block.Stmts[0].(*VarDecl)
			be.Equal(t, tc.Program().TypeName(tc.Program().GetVariable(d.Var).Type), test.want)
			if test.err == "" {
				be.Equal(t, tc.Program().TypeName(d.Init.Type()), test.want)
			}
		})
	}
}

func TestFits(t *testing.T) {
	max := func(bits uint) *big.Int {
		var x big.Int
		x.Lsh(big.NewInt(1), bits)
		return x.Sub(&x, big.NewInt(1))
	}
	tests := []struct {
		x    *big.Int
		k    syn.NumericKind
		want bool
	}{
		{x: big.NewInt(127), k: syn.I8, want: true},
		{x: big.NewInt(128), k: syn.I8, want: false},
		{x: big.NewInt(-128), k: syn.I8, want: true},
		{x: big.NewInt(-129), k: syn.I8, want: false},
		{x: big.NewInt(0), k: syn.U8, want: true},
		{x: big.NewInt(-1), k: syn.U8, want: false},
		{x: max(64), k: syn.U64, want: true},
		{x: max(64), k: syn.Usize, want: true},
		{x: max(64), k: syn.I64, want: false},
		{x: max(63), k: syn.I64, want: true},
		{x: big.NewInt(1), k: syn.F64, want: false},
	}
	for _, test := range tests {
		if got := fits(test.x, test.k); got != test.want {
			t.Errorf("fits(%s, %d)=%v, want %v", test.x, test.k, got, test.want)
		}
	}
}

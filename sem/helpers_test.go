// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"math/big"
	"regexp"
	"strings"
	"testing"

	"github.com/eaburns/pretty"
	"github.com/eaburns/sema/loc"
	"github.com/eaburns/sema/syn"
)

func span(start, end int) loc.Span { return loc.Span{Start: start, End: end} }

func num(k syn.NumericKind, v int64) *syn.NumericConstant {
	return &syn.NumericConstant{Kind: k, Int: big.NewInt(v)}
}

func i32(v int64) *syn.NumericConstant { return num(syn.I32, v) }

func i64(v int64) *syn.NumericConstant { return num(syn.I64, v) }

func str(s string) *syn.QuotedString { return &syn.QuotedString{Val: s} }

func boolean(b bool) *syn.Bool { return &syn.Bool{Val: b} }

func ref(name string) *syn.Var { return &syn.Var{Name: name} }

func binary(l syn.Expr, op syn.BinaryOp, r syn.Expr) *syn.Binary {
	return &syn.Binary{Lhs: l, Op: op, Rhs: r}
}

func unary(kind syn.UnaryOpKind, e syn.Expr) *syn.Unary {
	return &syn.Unary{Expr: e, Op: syn.UnaryOp{Kind: kind}}
}

func tname(name string) *syn.Name { return &syn.Name{Name: name} }

func optional(t syn.Type) *syn.Optional { return &syn.Optional{Elem: t} }

func some(e syn.Expr) *syn.Some { return &syn.Some{Expr: e} }

func call(name string, args ...syn.Expr) *syn.CallExpr {
	c := &syn.CallExpr{Call: syn.Call{Name: name}}
	for _, a := range args {
		c.Call.Args = append(c.Call.Args, syn.Arg{Expr: a})
	}
	return c
}

func decl(name string, mutable bool, t syn.Type, init syn.Expr) *syn.VarDeclStmt {
	if t == nil {
		t = &syn.Empty{}
	}
	return &syn.VarDeclStmt{
		Var:  syn.VarDecl{Name: name, Type: t, Mutable: mutable},
		Init: init,
	}
}

// let declares an immutable variable.
func let(name string, t syn.Type, init syn.Expr) *syn.VarDeclStmt {
	return decl(name, false, t, init)
}

// mut declares a mutable variable.
func mut(name string, t syn.Type, init syn.Expr) *syn.VarDeclStmt {
	return decl(name, true, t, init)
}

func exprStmt(e syn.Expr) *syn.ExprStmt { return &syn.ExprStmt{Expr: e} }

func ret(e syn.Expr) *syn.Return { return &syn.Return{Expr: e} }

func block(stmts ...syn.Stmt) *syn.Block { return &syn.Block{Stmts: stmts} }

// function returns a function declaration; a nil ret means void.
func function(name string, ret syn.Type, stmts ...syn.Stmt) *syn.Function {
	if ret == nil {
		ret = &syn.Empty{}
	}
	return &syn.Function{
		Name:       name,
		ReturnType: ret,
		Block:      block(stmts...),
	}
}

func param(name string, t syn.Type) syn.Param {
	return syn.Param{Var: syn.VarDecl{Name: name, Type: t}}
}

func module(name string, fns ...*syn.Function) *syn.Module {
	return &syn.Module{Name: name, Namespace: syn.Namespace{Functions: fns}}
}

// checkBody checks a module with a single void function, test,
// with the given body.
func checkBody(t *testing.T, stmts ...syn.Stmt) (*Typechecker, *CheckedFunction) {
	t.Helper()
	tc := NewTypechecker(Config{})
	id := tc.TypecheckModule(module("test", function("test", nil, stmts...)))
	return tc, tc.Program().GetModule(id).Functions[0]
}

// checkExpr checks e as the last statement of a function
// whose body begins with decls.
func checkExpr(t *testing.T, e syn.Expr, decls ...syn.Stmt) (*Typechecker, Expr) {
	t.Helper()
	stmts := append(append([]syn.Stmt{}, decls...), exprStmt(e))
	tc, fn := checkBody(t, stmts...)
	last := fn.Block.Stmts[len(fn.Block.Stmts)-1]
	es, ok := last.(*ExprStmt)
	if !ok {
		t.Fatalf("last statement is %T, expected *ExprStmt", last)
	}
	return tc, es.Expr
}

func errorString(errs []Error) string {
	var ss []string
	for i := range errs {
		ss = append(ss, errs[i].Error())
	}
	return strings.Join(ss, "\n")
}

type errorTest struct {
	name string
	mods []*syn.Module
	err  string // regexp, "" means no error
	// n is the number of errors expected, if err is non-empty.
	// Zero means any number.
	n     int
	trace bool
}

func (test errorTest) run(t *testing.T) {
	if strings.HasPrefix(test.name, "SKIP:") {
		t.Skip()
	}
	_, errs, err := Check(test.mods, Config{Trace: test.trace})
	if err != nil {
		t.Fatalf("Check failed: %s", err)
	}
	switch s := errorString(errs); {
	case test.err == "" && len(errs) == 0:
		return
	case test.err == "" && len(errs) > 0:
		t.Errorf("got %s, expected nil", s)
	case test.err != "" && len(errs) == 0:
		t.Errorf("got nil, expected matching %s", test.err)
	default:
		if !regexp.MustCompile(test.err).MatchString(s) {
			t.Errorf("got %s, expected matching %s", s, test.err)
		}
		if test.n > 0 && len(errs) != test.n {
			t.Errorf("got %d errors (%s), expected %d", len(errs), s, test.n)
		}
	}
}

// expectInternalError calls f and checks that it panics
// with an *InternalError whose message matches re.
func expectInternalError(t *testing.T, re string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(*InternalError)
		if !ok {
			t.Fatalf("got panic %s, expected *InternalError", pretty.String(r))
		}
		if !regexp.MustCompile(re).MatchString(err.Msg) {
			t.Errorf("got %s, expected matching %s", err.Msg, re)
		}
	}()
	f()
}

// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import "github.com/eaburns/sema/syn"

// checkBlock checks a block in a new child scope of parent.
func (tc *Typechecker) checkBlock(b *syn.Block, parent ScopeID) *Block {
	scope := tc.addScope(&parent, tc.program.GetScope(parent).CanThrow, "")
	block := &Block{}
	for _, s := range b.Stmts {
		stmt := tc.TypecheckStatement(s, scope)
		if definitelyReturns(stmt) {
			block.DefinitelyReturns = true
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	return block
}

func definitelyReturns(s Stmt) bool {
	switch s := s.(type) {
	case *Return, *Throw:
		return true
	case *BlockStmt:
		return s.Block.DefinitelyReturns
	case *If:
		return s.Else != nil && s.Block.DefinitelyReturns && definitelyReturns(s.Else)
	case *Try:
		return definitelyReturns(s.Stmt) && s.Catch.DefinitelyReturns
	default:
		return false
	}
}

// TypecheckStatement checks a statement in the given scope.
func (tc *Typechecker) TypecheckStatement(s syn.Stmt, scope ScopeID) (res Stmt) {
	defer tc.tr("TypecheckStatement(%T)", s)(&res)

	switch s := s.(type) {
	case *syn.ExprStmt:
		return &ExprStmt{Span: s.Span, Expr: tc.TypecheckExpression(s.Expr, scope)}

	case *syn.Defer:
		return &Defer{Span: s.Span, Stmt: tc.TypecheckStatement(s.Stmt, scope)}

	case *syn.VarDeclStmt:
		return tc.checkVarDecl(s, scope)

	case *syn.If:
		return tc.checkIf(s, scope)

	case *syn.BlockStmt:
		return &BlockStmt{Span: s.Span, Block: tc.checkBlock(s.Block, scope)}

	case *syn.Loop:
		return &Loop{Span: s.Span, Block: tc.checkBlock(s.Block, scope)}

	case *syn.While:
		return &While{
			Span:  s.Span,
			Cond:  tc.checkCond(s.Cond, scope),
			Block: tc.checkBlock(s.Block, scope),
		}

	case *syn.Return:
		return tc.checkReturn(s, scope)

	case *syn.Break:
		return &Break{Span: s.Span}

	case *syn.Continue:
		return &Continue{Span: s.Span}

	case *syn.Throw:
		e := tc.TypecheckExpression(s.Expr, scope)
		if !tc.program.GetScope(scope).CanThrow {
			tc.err(s.Span, "throw statement needs to be in a try statement or a function marked as throws")
		}
		if errType := tc.errorType(); e.Type() != errType {
			tc.err(e.GetSpan(), "throw expression must have type '%s', found '%s'",
				tc.typeName(errType), tc.typeName(e.Type()))
		}
		return &Throw{Span: s.Span, Expr: e}

	case *syn.Try:
		tryScope := tc.addScope(&scope, true, "")
		stmt := tc.TypecheckStatement(s.Stmt, tryScope)
		catchScope := tc.addScope(&scope, tc.program.GetScope(scope).CanThrow, "")
		errVar := tc.addVar(catchScope, CheckedVariable{
			Name:           s.ErrorName,
			Type:           tc.errorType(),
			DefinitionSpan: s.ErrorSpan,
		})
		return &Try{
			Span:  s.Span,
			Stmt:  stmt,
			Error: errVar,
			Catch: tc.checkBlock(s.Catch, catchScope),
		}
	}
	unreachable(s)
	return nil
}

// errorType returns the type of thrown values.
func (tc *Typechecker) errorType() TypeID {
	return tc.FindOrAddTypeID(&StructType{Struct: tc.preludeStruct("Error")})
}

func (tc *Typechecker) checkCond(cond syn.Expr, scope ScopeID) Expr {
	e := tc.TypecheckExpression(cond, scope)
	if e.Type() != Bool.ID() {
		tc.err(e.GetSpan(), "condition must be a boolean expression, found '%s'", tc.typeName(e.Type()))
	}
	return e
}

func (tc *Typechecker) checkIf(s *syn.If, scope ScopeID) *If {
	checked := &If{
		Span:  s.Span,
		Cond:  tc.checkCond(s.Cond, scope),
		Block: tc.checkBlock(s.Block, scope),
	}
	if s.Else != nil {
		checked.Else = tc.TypecheckStatement(s.Else, scope)
	}
	return checked
}

func (tc *Typechecker) checkVarDecl(s *syn.VarDeclStmt, scope ScopeID) *VarDecl {
	init := tc.TypecheckExpression(s.Init, scope)
	t := init.Type()
	if _, ok := s.Var.Type.(*syn.Empty); !ok && s.Var.Type != nil {
		declared := tc.TypecheckTypename(s.Var.Type, scope)
		init = tc.promoteConstant(declared, init)
		_, unknown := tc.program.GetType(declared).(*Inference)
		_, none := init.(*OptionalNone)
		_, optional := tc.optionalElem(declared)
		switch {
		case unknown:
			// The type name was reported; use the initializer's type.
		case none && optional:
			t = declared
		default:
			if _, conflict := tc.Unify(init.Type(), init.GetSpan(), declared, s.Var.Span); conflict {
				tc.err(init.GetSpan(), "type mismatch in declaration of %s: expected '%s', found '%s'",
					s.Var.Name, tc.typeName(declared), tc.typeName(init.Type()))
			}
			t = declared
		}
	}
	v := tc.addVar(scope, CheckedVariable{
		Name:           s.Var.Name,
		Type:           t,
		Mutable:        s.Var.Mutable,
		DefinitionSpan: s.Var.Span,
	})
	return &VarDecl{Span: s.Span, Var: v, Init: init}
}

func (tc *Typechecker) checkReturn(s *syn.Return, scope ScopeID) *Return {
	if tc.fn == nil {
		unreachable(s)
	}
	want := tc.fn.ReturnType
	if s.Expr == nil {
		if want != Void.ID() {
			tc.err(s.Span, "return without a value in function returning '%s'", tc.typeName(want))
		}
		return &Return{Span: s.Span}
	}
	e := tc.TypecheckExpression(s.Expr, scope)
	e = tc.promoteConstant(want, e)
	if _, none := e.(*OptionalNone); none {
		if _, ok := tc.optionalElem(want); ok {
			return &Return{Span: s.Span, Expr: e}
		}
	}
	if _, conflict := tc.Unify(e.Type(), e.GetSpan(), want, tc.fn.NameSpan); conflict {
		tc.err(e.GetSpan(), "type mismatch in return: expected '%s', found '%s'",
			tc.typeName(want), tc.typeName(e.Type()))
	}
	return &Return{Span: s.Span, Expr: e}
}

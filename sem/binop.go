// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"github.com/eaburns/sema/loc"
	"github.com/eaburns/sema/syn"
)

func (tc *Typechecker) checkBinary(e *syn.Binary, scope ScopeID) *Binary {
	lhs := tc.TypecheckExpression(e.Lhs, scope)
	rhs := tc.TypecheckExpression(e.Rhs, scope)
	rhs = tc.promoteConstant(lhs.Type(), rhs)
	return &Binary{
		Span: e.Span,
		Lhs:  lhs,
		Op:   e.Op,
		Rhs:  rhs,
		T:    tc.TypecheckBinaryOperation(lhs, e.Op, rhs, e.Span),
	}
}

// TypecheckBinaryOperation returns the result type of
// applying op to checked operands lhs and rhs.
// Errors are recorded and a best-effort type is returned.
func (tc *Typechecker) TypecheckBinaryOperation(lhs Expr, op syn.BinaryOp, rhs Expr, span loc.Span) (res TypeID) {
	defer tc.tr("TypecheckBinaryOperation(%s)", op)(&res)
	lt, rt := lhs.Type(), rhs.Type()

	switch op {
	case syn.NoneCoalescing, syn.NoneCoalescingAssign:
		return tc.checkCoalescing(lhs, op, rhs, span)

	case syn.LessThan, syn.LessThanOrEqual, syn.GreaterThan, syn.GreaterThanOrEqual,
		syn.Equal, syn.NotEqual:
		if lt != rt {
			tc.err(span, "binary comparison between incompatible types ('%s' and '%s')",
				tc.typeName(lt), tc.typeName(rt))
		}
		return Bool.ID()

	case syn.LogicalAnd, syn.LogicalOr:
		if lt != Bool.ID() {
			tc.err(lhs.GetSpan(), "left side of logical binary operation is not a boolean")
		}
		if rt != Bool.ID() {
			tc.err(rhs.GetSpan(), "right side of logical binary operation is not a boolean")
		}
		return Bool.ID()

	case syn.Assign:
		if !ExpressionIsMutable(lhs) {
			tc.err(span, "assignment to immutable variable")
			return lt
		}
		if _, none := rhs.(*OptionalNone); none {
			if _, ok := tc.optionalElem(lt); ok {
				return lt
			}
		}
		t, conflict := tc.Unify(rt, rhs.GetSpan(), lt, lhs.GetSpan())
		if conflict {
			tc.err(span, "assignment between incompatible types ('%s' and '%s')",
				tc.typeName(lt), tc.typeName(rt))
		}
		return t

	case syn.AddAssign, syn.SubtractAssign, syn.MultiplyAssign, syn.DivideAssign, syn.ModuloAssign,
		syn.BitwiseAndAssign, syn.BitwiseOrAssign, syn.BitwiseXorAssign,
		syn.BitwiseLeftShiftAssign, syn.BitwiseRightShiftAssign:
		if tc.weakPtrOfStruct(lt, rt) {
			return lt
		}
		if lt != rt {
			tc.err(span, "compound assignment between incompatible types ('%s' and '%s')",
				tc.typeName(lt), tc.typeName(rt))
		}
		if !ExpressionIsMutable(lhs) {
			tc.err(span, "assignment to immutable variable")
		}
		return lt

	case syn.Add, syn.Subtract, syn.Multiply, syn.Divide, syn.Modulo:
		if lt != rt {
			tc.err(span, "binary arithmetic operation between incompatible types ('%s' and '%s')",
				tc.typeName(lt), tc.typeName(rt))
		}
		return lt

	default:
		return lt
	}
}

// weakPtrOfStruct returns whether lt is a WeakPtr to the struct type rt.
func (tc *Typechecker) weakPtrOfStruct(lt, rt TypeID) bool {
	args, ok := tc.instanceArgs(lt, "WeakPtr")
	if !ok || len(args) != 1 {
		return false
	}
	want, ok := tc.program.GetType(args[0]).(*StructType)
	if !ok {
		return false
	}
	got, ok := tc.program.GetType(rt).(*StructType)
	return ok && got.Struct == want.Struct
}

// checkCoalescing checks ?? and ??=.
// The target of ??= is checked first; a bad target yields a placeholder.
func (tc *Typechecker) checkCoalescing(lhs Expr, op syn.BinaryOp, rhs Expr, span loc.Span) TypeID {
	if op == syn.NoneCoalescingAssign {
		v, ok := lhs.(*Var)
		switch {
		case !ok:
			tc.err(lhs.GetSpan(), "left side of ??= must be a mutable variable")
			return tc.NewInference()
		case !v.Var.Mutable:
			tc.errHint(lhs.GetSpan(), v.Var.DefinitionSpan, "This variable isn't marked as mutable",
				"left side of ??= must be a mutable variable")
			return tc.NewInference()
		}
	}
	lt, rt := lhs.Type(), rhs.Type()
	elem, ok := tc.optionalElem(lt)
	if !ok {
		tc.errHint(span, lhs.GetSpan(), "Left side of ?? must be an Optional but isn't",
			"None coalescing (??) with incompatible types ('%s' and '%s')",
			tc.typeName(lt), tc.typeName(rt))
		return lt
	}
	switch rt {
	case lt:
		return lt
	case elem:
		return elem
	default:
		tc.err(span, "None coalescing (??) with incompatible types ('%s' and '%s')",
			tc.typeName(lt), tc.typeName(rt))
		return lt
	}
}

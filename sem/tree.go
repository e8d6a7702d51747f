// Copyright © 2020 The Pea Authors under an MIT-style license.

// Package sem contains a semantic checker and
// a type-checked, linked representation of the source.
package sem

import (
	"math/big"

	"github.com/eaburns/sema/loc"
	"github.com/eaburns/sema/syn"
)

// A CheckedFunction is a function or method definition.
type CheckedFunction struct {
	Name     string
	NameSpan loc.Span
	// GenericParams are the TypeVariable types of the type parameters.
	GenericParams []TypeID
	Params        []CheckedParam
	ReturnType    TypeID
	Throws        bool
	// Block is nil for functions with external linkage.
	Block *Block
	// Scope is the scope holding the parameters.
	Scope   ScopeID
	Linkage syn.Linkage
	// Struct is the struct of a method, or nil.
	Struct *StructID
}

// A CheckedParam is a function parameter.
type CheckedParam struct {
	Var  VarID
	Anon bool
}

// A CheckedVariable is a variable, parameter, or field.
type CheckedVariable struct {
	Name           string
	Type           TypeID
	Mutable        bool
	DefinitionSpan loc.Span
}

// A CheckedStruct is a struct or class definition.
type CheckedStruct struct {
	Name          string
	Span          loc.Span
	GenericParams []TypeID
	Fields        []VarID
	Methods       []FunctionID
	// Scope is the scope holding the generic parameters and methods.
	Scope          ScopeID
	DefinitionType syn.DefinitionType
	Linkage        syn.Linkage
	// Type is the type of the struct: a *StructType,
	// or a *GenericInstance over its own GenericParams.
	Type TypeID
}

// A CheckedEnum is an enum definition.
type CheckedEnum struct {
	Name          string
	Span          loc.Span
	GenericParams []TypeID
	Variants      []CheckedEnumVariant
	Scope         ScopeID
	// UnderlyingType is the type of explicit variant values;
	// it is void if not specified.
	UnderlyingType TypeID
	IsRecursive    bool
	// Type is the type of the enum: an *EnumType,
	// or a *GenericEnumInstance over its own GenericParams.
	Type TypeID
}

// VariantKind is the shape of an enum variant.
type VariantKind int

// The following are the variant kinds.
const (
	UntypedVariant VariantKind = iota
	WithValueVariant
	TypedVariant
	StructLikeVariant
)

// A CheckedEnumVariant is one case of an enum.
type CheckedEnumVariant struct {
	Name string
	Span loc.Span
	Kind VariantKind
	// Value is set for WithValueVariant.
	Value Expr
	// Type is set for TypedVariant.
	Type TypeID
	// Fields is set for StructLikeVariant.
	Fields []VarID
}

// A Block is a checked sequence of statements.
type Block struct {
	Stmts []Stmt
	// DefinitelyReturns is whether every path through the block
	// ends in a return or throw.
	DefinitelyReturns bool
}

// A Stmt is a checked statement.
type Stmt interface {
	GetSpan() loc.Span
	isStmt()
}

// An ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	loc.Span
	Expr Expr
}

// A Defer runs Stmt at the end of the enclosing block.
type Defer struct {
	loc.Span
	Stmt Stmt
}

// A VarDecl declares a local variable.
type VarDecl struct {
	loc.Span
	Var  VarID
	Init Expr
}

// An If is an if statement.
// Else is nil, a *BlockStmt, or an *If.
type If struct {
	loc.Span
	Cond  Expr
	Block *Block
	Else  Stmt
}

// A BlockStmt is a nested block.
type BlockStmt struct {
	loc.Span
	Block *Block
}

// A Loop is an unconditional loop.
type Loop struct {
	loc.Span
	Block *Block
}

// A While is a conditional loop.
type While struct {
	loc.Span
	Cond  Expr
	Block *Block
}

// A Return returns from the function.
// Expr is nil for a bare return.
type Return struct {
	loc.Span
	Expr Expr
}

// A Break exits the innermost loop.
type Break struct{ loc.Span }

// A Continue starts the next iteration of the innermost loop.
type Continue struct{ loc.Span }

// A Throw throws an error.
type Throw struct {
	loc.Span
	Expr Expr
}

// A Try runs Stmt and on error binds Error and runs Catch.
type Try struct {
	loc.Span
	Stmt  Stmt
	Error VarID
	Catch *Block
}

func (*ExprStmt) isStmt()  {}
func (*Defer) isStmt()     {}
func (*VarDecl) isStmt()   {}
func (*If) isStmt()        {}
func (*BlockStmt) isStmt() {}
func (*Loop) isStmt()      {}
func (*While) isStmt()     {}
func (*Return) isStmt()    {}
func (*Break) isStmt()     {}
func (*Continue) isStmt()  {}
func (*Throw) isStmt()     {}
func (*Try) isStmt()       {}

// An Expr is a checked expression.
// Every expression records its type and its source span.
type Expr interface {
	// Type returns the type of the expression.
	Type() TypeID
	// GetSpan returns the source span of the expression.
	GetSpan() loc.Span
}

// A BoolLit is a boolean literal.
type BoolLit struct {
	loc.Span
	Val bool
	T   TypeID
}

// A NumericConst is a numeric literal.
// Int is set for integer kinds and Float for floating kinds.
type NumericConst struct {
	loc.Span
	Kind  syn.NumericKind
	Int   *big.Int
	Float *big.Float
	T     TypeID
}

// A QuotedString is a string literal.
type QuotedString struct {
	loc.Span
	Val string
	T   TypeID
}

// A CharLit is a character literal.
type CharLit struct {
	loc.Span
	Val rune
	T   TypeID
}

// A ByteLit is a byte literal.
type ByteLit struct {
	loc.Span
	Val byte
	T   TypeID
}

// A Var is a reference to a variable.
type Var struct {
	loc.Span
	Var CheckedVariable
	// ID is nil if the variable was not found.
	ID *VarID
	T  TypeID
}

// A CheckedUnaryOp is a unary operator.
// Type is the target type of TypeCast and Is.
type CheckedUnaryOp struct {
	Kind     syn.UnaryOpKind
	Type     TypeID
	Fallible bool
}

// A Unary is a unary operation.
type Unary struct {
	loc.Span
	Expr Expr
	Op   CheckedUnaryOp
	T    TypeID
}

// A Binary is a binary operation.
type Binary struct {
	loc.Span
	Lhs Expr
	Op  syn.BinaryOp
	Rhs Expr
	T   TypeID
}

// A TupleLit is a tuple literal.
type TupleLit struct {
	loc.Span
	Elems []Expr
	T     TypeID
}

// A Range is a range expression.
type Range struct {
	loc.Span
	From Expr
	To   Expr
	T    TypeID
}

// An ArrayLit is an array literal.
type ArrayLit struct {
	loc.Span
	Elems []Expr
	T     TypeID
}

// A DictionaryLit is a dictionary literal.
type DictionaryLit struct {
	loc.Span
	Entries []DictionaryEntry
	T       TypeID
}

// A DictionaryEntry is a key and value of a DictionaryLit.
type DictionaryEntry struct {
	Key   Expr
	Value Expr
}

// A SetLit is a set literal.
type SetLit struct {
	loc.Span
	Elems []Expr
	T     TypeID
}

// An IndexedExpr indexes an array.
type IndexedExpr struct {
	loc.Span
	Expr  Expr
	Index Expr
	T     TypeID
}

// An IndexedDictionary indexes a dictionary by key.
type IndexedDictionary struct {
	loc.Span
	Expr  Expr
	Index Expr
	T     TypeID
}

// An IndexedTuple is a tuple element access.
type IndexedTuple struct {
	loc.Span
	Expr  Expr
	Index int
	T     TypeID
}

// An IndexedStruct is a struct field access.
type IndexedStruct struct {
	loc.Span
	Expr  Expr
	Field string
	T     TypeID
}

// A CheckedCall is a function call.
type CheckedCall struct {
	Namespace []ResolvedNamespace
	Name      string
	Args      []CheckedArg
	TypeArgs  []TypeID
	// Function is the called function, or nil if unresolved.
	Function   *FunctionID
	ReturnType TypeID
	Throws     bool
}

// A ResolvedNamespace is one namespace segment of a call.
type ResolvedNamespace struct {
	Name          string
	GenericParams []TypeID
}

// A CheckedArg is a labeled call argument.
type CheckedArg struct {
	Name string
	Expr Expr
}

// A Call is a function call expression.
type Call struct {
	loc.Span
	Call CheckedCall
	T    TypeID
}

// A MethodCall is a method call expression.
type MethodCall struct {
	loc.Span
	Expr Expr
	Call CheckedCall
	T    TypeID
}

// An OptionalNone is the none literal.
type OptionalNone struct {
	loc.Span
	T TypeID
}

// An OptionalSome wraps a value in an Optional.
type OptionalSome struct {
	loc.Span
	Expr Expr
	T    TypeID
}

// A ForcedUnwrap unwraps an Optional or WeakPtr.
type ForcedUnwrap struct {
	loc.Span
	Expr Expr
	T    TypeID
}

func (n *BoolLit) Type() TypeID           { return n.T }
func (n *NumericConst) Type() TypeID      { return n.T }
func (n *QuotedString) Type() TypeID      { return n.T }
func (n *CharLit) Type() TypeID           { return n.T }
func (n *ByteLit) Type() TypeID           { return n.T }
func (n *Var) Type() TypeID               { return n.T }
func (n *Unary) Type() TypeID             { return n.T }
func (n *Binary) Type() TypeID            { return n.T }
func (n *TupleLit) Type() TypeID          { return n.T }
func (n *Range) Type() TypeID             { return n.T }
func (n *ArrayLit) Type() TypeID          { return n.T }
func (n *DictionaryLit) Type() TypeID     { return n.T }
func (n *SetLit) Type() TypeID            { return n.T }
func (n *IndexedExpr) Type() TypeID       { return n.T }
func (n *IndexedDictionary) Type() TypeID { return n.T }
func (n *IndexedTuple) Type() TypeID      { return n.T }
func (n *IndexedStruct) Type() TypeID     { return n.T }
func (n *Call) Type() TypeID              { return n.T }
func (n *MethodCall) Type() TypeID        { return n.T }
func (n *OptionalNone) Type() TypeID      { return n.T }
func (n *OptionalSome) Type() TypeID      { return n.T }
func (n *ForcedUnwrap) Type() TypeID      { return n.T }

// ExpressionIsMutable returns whether the expression may be assigned to.
// A variable is mutable if it was declared mutable;
// field, index, tuple-index, and unwrap expressions
// are mutable if their base expression is mutable.
func ExpressionIsMutable(e Expr) bool {
	switch e := e.(type) {
	case *Var:
		return e.Var.Mutable
	case *IndexedStruct:
		return ExpressionIsMutable(e.Expr)
	case *IndexedExpr:
		return ExpressionIsMutable(e.Expr)
	case *IndexedDictionary:
		return ExpressionIsMutable(e.Expr)
	case *IndexedTuple:
		return ExpressionIsMutable(e.Expr)
	case *ForcedUnwrap:
		return ExpressionIsMutable(e.Expr)
	default:
		return false
	}
}

// Copyright © 2020 The Pea Authors under an MIT-style license.

package syn

import (
	"math/big"

	"github.com/eaburns/sema/loc"
)

// A Stmt is a statement.
type Stmt interface {
	Node
	isStmt()
}

// A Block is a sequence of statements.
type Block struct {
	loc.Span
	Stmts []Stmt
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

// A VarDeclStmt declares a local variable with an initializer.
type VarDeclStmt struct {
	loc.Span
	Var  VarDecl
	Init Expr
}

// An If is an if statement.
// Else is nil, a *BlockStmt, or another *If.
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

// A Return returns from the enclosing function.
// Expr is nil for a bare return.
type Return struct {
	loc.Span
	Expr Expr
}

// A Break exits the innermost loop.
type Break struct {
	loc.Span
}

// A Continue starts the next iteration of the innermost loop.
type Continue struct {
	loc.Span
}

// A Throw throws an error value.
type Throw struct {
	loc.Span
	Expr Expr
}

// A Try runs Stmt and, if it throws, binds the error to ErrorName
// and runs Catch.
type Try struct {
	loc.Span
	Stmt      Stmt
	ErrorName string
	ErrorSpan loc.Span
	Catch     *Block
}

func (*ExprStmt) isStmt()    {}
func (*Defer) isStmt()       {}
func (*VarDeclStmt) isStmt() {}
func (*If) isStmt()          {}
func (*BlockStmt) isStmt()   {}
func (*Loop) isStmt()        {}
func (*While) isStmt()       {}
func (*Return) isStmt()      {}
func (*Break) isStmt()       {}
func (*Continue) isStmt()    {}
func (*Throw) isStmt()       {}
func (*Try) isStmt()         {}

// An Expr is an expression.
type Expr interface {
	Node
	isExpr()
}

// A Bool is a boolean literal.
type Bool struct {
	loc.Span
	Val bool
}

// NumericKind is the width and signedness tag of a numeric literal.
type NumericKind int

// The following are the numeric literal kinds.
const (
	I8 NumericKind = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	Usize
	F32
	F64
)

// IsFloat returns whether the kind is a floating point kind.
func (k NumericKind) IsFloat() bool { return k == F32 || k == F64 }

// A NumericConstant is a numeric literal: 5i32, 1.5f64.
// Int is set for integer kinds and Float for floating kinds.
type NumericConstant struct {
	loc.Span
	Kind  NumericKind
	Int   *big.Int
	Float *big.Float
}

// A QuotedString is a string literal.
type QuotedString struct {
	loc.Span
	Val string
}

// A Char is a character literal: 'c'.
type Char struct {
	loc.Span
	Val rune
}

// A Byte is a byte literal: b'c'.
type Byte struct {
	loc.Span
	Val byte
}

// A Var is a reference to a variable by name.
type Var struct {
	loc.Span
	Name string
}

// A Unary is a unary operation.
type Unary struct {
	loc.Span
	Expr Expr
	Op   UnaryOp
}

// A Binary is a binary operation.
type Binary struct {
	loc.Span
	Lhs Expr
	Op  BinaryOp
	Rhs Expr
}

// A TupleLit is a tuple literal: (a, b).
type TupleLit struct {
	loc.Span
	Elems []Expr
}

// A Range is the expression from..to.
type Range struct {
	loc.Span
	From Expr
	To   Expr
}

// An ArrayLit is an array literal: [a, b, c].
type ArrayLit struct {
	loc.Span
	Elems []Expr
}

// A DictionaryLit is a dictionary literal: [k: v, ...].
type DictionaryLit struct {
	loc.Span
	Entries []DictionaryEntry
}

// A DictionaryEntry is a key and value of a DictionaryLit.
type DictionaryEntry struct {
	Key   Expr
	Value Expr
}

// A SetLit is a set literal: {a, b}.
type SetLit struct {
	loc.Span
	Elems []Expr
}

// An Index is the expression Expr[Index].
type Index struct {
	loc.Span
	Expr  Expr
	Index Expr
}

// An IndexedTuple is the expression Expr.N.
type IndexedTuple struct {
	loc.Span
	Expr  Expr
	Index int
}

// An IndexedStruct is the expression Expr.Field.
type IndexedStruct struct {
	loc.Span
	Expr  Expr
	Field string
}

// A Call is a function call.
type Call struct {
	loc.Span
	Namespace []string
	Name      string
	Args      []Arg
	TypeArgs  []Type
}

// An Arg is a call argument with an optional label.
type Arg struct {
	Name string
	Expr Expr
}

// A CallExpr is a function call expression.
type CallExpr struct {
	loc.Span
	Call Call
}

// A MethodCall is the call Expr.Call.
type MethodCall struct {
	loc.Span
	Expr Expr
	Call Call
}

// A None is the none literal.
type None struct {
	loc.Span
}

// A Some is the expression some(Expr).
type Some struct {
	loc.Span
	Expr Expr
}

// A ForcedUnwrap is the expression Expr!.
type ForcedUnwrap struct {
	loc.Span
	Expr Expr
}

// A Match is a match expression.
type Match struct {
	loc.Span
	Expr  Expr
	Cases []MatchCase
}

// A MatchCase is one arm of a Match.
type MatchCase struct {
	loc.Span
	Pattern Expr
	Body    Expr
}

// An Operator is a bare operator left by the parser
// while building a binary expression.
type Operator struct {
	loc.Span
	Op BinaryOp
}

// A Garbage is an expression that failed to parse.
type Garbage struct {
	loc.Span
}

func (*Bool) isExpr()            {}
func (*NumericConstant) isExpr() {}
func (*QuotedString) isExpr()    {}
func (*Char) isExpr()            {}
func (*Byte) isExpr()            {}
func (*Var) isExpr()             {}
func (*Unary) isExpr()           {}
func (*Binary) isExpr()          {}
func (*TupleLit) isExpr()        {}
func (*Range) isExpr()           {}
func (*ArrayLit) isExpr()        {}
func (*DictionaryLit) isExpr()   {}
func (*SetLit) isExpr()          {}
func (*Index) isExpr()           {}
func (*IndexedTuple) isExpr()    {}
func (*IndexedStruct) isExpr()   {}
func (*CallExpr) isExpr()        {}
func (*MethodCall) isExpr()      {}
func (*None) isExpr()            {}
func (*Some) isExpr()            {}
func (*ForcedUnwrap) isExpr()    {}
func (*Match) isExpr()           {}
func (*Operator) isExpr()        {}
func (*Garbage) isExpr()         {}

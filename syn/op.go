// Copyright © 2020 The Pea Authors under an MIT-style license.

package syn

// A BinaryOp is a binary operator.
type BinaryOp int

// The following are the binary operators.
const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Modulo
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	Equal
	NotEqual
	BitwiseAnd
	BitwiseXor
	BitwiseOr
	BitwiseLeftShift
	BitwiseRightShift
	ArithmeticLeftShift
	ArithmeticRightShift
	LogicalAnd
	LogicalOr
	NoneCoalescing
	Assign
	BitwiseAndAssign
	BitwiseOrAssign
	BitwiseXorAssign
	BitwiseLeftShiftAssign
	BitwiseRightShiftAssign
	AddAssign
	SubtractAssign
	MultiplyAssign
	DivideAssign
	ModuloAssign
	NoneCoalescingAssign
)

var binaryOpStrings = [...]string{
	Add:                     "+",
	Subtract:                "-",
	Multiply:                "*",
	Divide:                  "/",
	Modulo:                  "%",
	LessThan:                "<",
	LessThanOrEqual:         "<=",
	GreaterThan:             ">",
	GreaterThanOrEqual:      ">=",
	Equal:                   "==",
	NotEqual:                "!=",
	BitwiseAnd:              "&",
	BitwiseXor:              "^",
	BitwiseOr:               "|",
	BitwiseLeftShift:        "<<",
	BitwiseRightShift:       ">>",
	ArithmeticLeftShift:     "<<<",
	ArithmeticRightShift:    ">>>",
	LogicalAnd:              "and",
	LogicalOr:               "or",
	NoneCoalescing:          "??",
	Assign:                  "=",
	BitwiseAndAssign:        "&=",
	BitwiseOrAssign:         "|=",
	BitwiseXorAssign:        "^=",
	BitwiseLeftShiftAssign:  "<<=",
	BitwiseRightShiftAssign: ">>=",
	AddAssign:               "+=",
	SubtractAssign:          "-=",
	MultiplyAssign:          "*=",
	DivideAssign:            "/=",
	ModuloAssign:            "%=",
	NoneCoalescingAssign:    "??=",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpStrings) {
		return "BinaryOp(?)"
	}
	return binaryOpStrings[op]
}

// A UnaryOpKind is the kind of a unary operator.
type UnaryOpKind int

// The following are the unary operators.
const (
	PreIncrement UnaryOpKind = iota
	PostIncrement
	PreDecrement
	PostDecrement
	Negate
	Dereference
	RawAddress
	LogicalNot
	BitwiseNot
	// TypeCast is as! when Fallible is false, and as? when it is true.
	TypeCast
	// Is tests whether a value has a type.
	Is
)

var unaryOpStrings = [...]string{
	PreIncrement:  "++x",
	PostIncrement: "x++",
	PreDecrement:  "--x",
	PostDecrement: "x--",
	Negate:        "-",
	Dereference:   "*",
	RawAddress:    "&raw",
	LogicalNot:    "not",
	BitwiseNot:    "~",
	TypeCast:      "as",
	Is:            "is",
}

func (k UnaryOpKind) String() string {
	if k < 0 || int(k) >= len(unaryOpStrings) {
		return "UnaryOpKind(?)"
	}
	return unaryOpStrings[k]
}

// A UnaryOp is a unary operator.
// Type is set only for TypeCast and Is.
type UnaryOp struct {
	Kind     UnaryOpKind
	Type     Type
	Fallible bool
}

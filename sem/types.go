// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

// A Type is an entry in a module's type table.
// It is one of:
// 	Builtin
// 	*TypeVariable
// 	*GenericInstance
// 	*GenericEnumInstance
// 	*StructType
// 	*EnumType
// 	*Inference
// 	*RawPtr
type Type interface {
	isType()
}

// A Builtin is a primitive type.
type Builtin int

// The following are the builtin types.
// The order is the order of the prelude's type table,
// so a Builtin is also the Index of its TypeID.
const (
	Void Builtin = iota
	Bool
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	Usize
	String
	CChar
	CInt
	CString
	numBuiltins
)

var builtinNames = [...]string{
	Void:    "void",
	Bool:    "bool",
	U8:      "u8",
	U16:     "u16",
	U32:     "u32",
	U64:     "u64",
	I8:      "i8",
	I16:     "i16",
	I32:     "i32",
	I64:     "i64",
	F32:     "f32",
	F64:     "f64",
	Usize:   "usize",
	String:  "String",
	CChar:   "c_char",
	CInt:    "c_int",
	CString: "c_string",
}

func (b Builtin) String() string {
	if b < 0 || b >= numBuiltins {
		return "Builtin(?)"
	}
	return builtinNames[b]
}

// ID returns the TypeID of the builtin in the prelude's type table.
func (b Builtin) ID() TypeID {
	return TypeID{Module: PreludeModule, Index: uint32(b)}
}

// IsInteger returns whether the builtin is an integer type.
func (b Builtin) IsInteger() bool {
	switch b {
	case U8, U16, U32, U64, I8, I16, I32, I64, Usize, CChar, CInt:
		return true
	default:
		return false
	}
}

// A TypeVariable is a named generic parameter.
// Parameters of different declarations are different types,
// even if they share a name.
type TypeVariable struct {
	Name string
	// Scope is the scope of the declaring struct, enum, or function.
	Scope ScopeID
}

// A GenericInstance is a struct applied to type arguments.
// The order of Args is significant.
type GenericInstance struct {
	Struct StructID
	Args   []TypeID
}

// A GenericEnumInstance is an enum applied to type arguments.
type GenericEnumInstance struct {
	Enum EnumID
	Args []TypeID
}

// A StructType is a non-generic reference to a struct.
type StructType struct {
	Struct StructID
}

// An EnumType is a non-generic reference to an enum.
type EnumType struct {
	Enum EnumID
}

// An Inference is a placeholder for a type that could not be determined.
// Placeholders are never solved; each one is distinct.
type Inference struct {
	ID InferenceID
}

// A RawPtr is a raw pointer to Elem.
type RawPtr struct {
	Elem TypeID
}

func (Builtin) isType()              {}
func (*TypeVariable) isType()        {}
func (*GenericInstance) isType()     {}
func (*GenericEnumInstance) isType() {}
func (*StructType) isType()          {}
func (*EnumType) isType()            {}
func (*Inference) isType()           {}
func (*RawPtr) isType()              {}

// typesEqual is the structural equality used for interning.
// Handles inside the types (struct, enum, argument, and element IDs)
// are compared by identity.
func typesEqual(a, b Type) bool {
	switch a := a.(type) {
	case Builtin:
		b, ok := b.(Builtin)
		return ok && a == b
	case *TypeVariable:
		b, ok := b.(*TypeVariable)
		return ok && a.Name == b.Name && a.Scope == b.Scope
	case *GenericInstance:
		b, ok := b.(*GenericInstance)
		return ok && a.Struct == b.Struct && idsEqual(a.Args, b.Args)
	case *GenericEnumInstance:
		b, ok := b.(*GenericEnumInstance)
		return ok && a.Enum == b.Enum && idsEqual(a.Args, b.Args)
	case *StructType:
		b, ok := b.(*StructType)
		return ok && a.Struct == b.Struct
	case *EnumType:
		b, ok := b.(*EnumType)
		return ok && a.Enum == b.Enum
	case *Inference:
		b, ok := b.(*Inference)
		return ok && a.ID == b.ID
	case *RawPtr:
		b, ok := b.(*RawPtr)
		return ok && a.Elem == b.Elem
	default:
		panic(internalErrorf(a, "impossible type"))
	}
}

func idsEqual(as, bs []TypeID) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"fmt"

	"fortio.org/safecast"
)

// A ModuleID identifies a Module within a CheckedProgram.
// Module 0 is the prelude.
type ModuleID uint32

// PreludeModule is the ID of the prelude module.
const PreludeModule ModuleID = 0

// A TypeID identifies a Type in the type table of a Module.
type TypeID struct {
	Module ModuleID
	Index  uint32
}

// A FunctionID identifies a CheckedFunction.
type FunctionID struct {
	Module ModuleID
	Index  uint32
}

// A VarID identifies a CheckedVariable.
type VarID struct {
	Module ModuleID
	Index  uint32
}

// A StructID identifies a CheckedStruct.
type StructID struct {
	Module ModuleID
	Index  uint32
}

// An EnumID identifies a CheckedEnum.
type EnumID struct {
	Module ModuleID
	Index  uint32
}

// A ScopeID identifies a Scope.
type ScopeID struct {
	Module ModuleID
	Index  uint32
}

// An InferenceID identifies an inference placeholder.
// Unlike the other IDs, it is not relative to a module.
type InferenceID uint32

func (id TypeID) String() string     { return fmt.Sprintf("type(%d.%d)", id.Module, id.Index) }
func (id FunctionID) String() string { return fmt.Sprintf("func(%d.%d)", id.Module, id.Index) }
func (id VarID) String() string      { return fmt.Sprintf("var(%d.%d)", id.Module, id.Index) }
func (id StructID) String() string   { return fmt.Sprintf("struct(%d.%d)", id.Module, id.Index) }
func (id EnumID) String() string     { return fmt.Sprintf("enum(%d.%d)", id.Module, id.Index) }
func (id ScopeID) String() string    { return fmt.Sprintf("scope(%d.%d)", id.Module, id.Index) }

// nextIndex returns the index of the next element appended to a slice of length n.
func nextIndex(n int) uint32 {
	i, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(internalErrorf(nil, "index overflow: %v", err))
	}
	return i
}

// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"strings"

	"github.com/eaburns/sema/loc"
)

// A CheckedProgram is the result of checking: all modules,
// with the prelude as module 0.
// It must not be modified once checking is finished.
type CheckedProgram struct {
	Modules []*Module
}

// A Module owns every checked entity declared in it.
// All of the slices are append-only;
// entities are referred to by their index.
type Module struct {
	ID        ModuleID
	Name      string
	Functions []*CheckedFunction
	Structs   []*CheckedStruct
	Enums     []*CheckedEnum
	Scopes    []*Scope
	Types     []Type
	Variables []CheckedVariable
	Imports   []ModuleID
}

// A Scope is a node of a module's scope tree.
// Scope 0 of each module is the root namespace,
// and holds the module's imports.
type Scope struct {
	Vars      map[string]VarID
	Structs   map[string]StructID
	Functions map[string]FunctionID
	Enums     map[string]EnumID
	Types     map[string]TypeID
	Imports   map[string]Import
	// Parent is nil for the root scope.
	Parent   *ScopeID
	Children []ScopeID
	// Namespace is the name of the namespace, or "" if none.
	Namespace string
	// CanThrow is whether code in this scope may throw.
	CanThrow bool
}

// An Import is an imported module, recorded in the root scope.
type Import struct {
	Module ModuleID
	Span   loc.Span
}

func newScope(parent *ScopeID, canThrow bool) *Scope {
	if parent != nil {
		p := *parent
		parent = &p
	}
	return &Scope{
		Vars:      make(map[string]VarID),
		Structs:   make(map[string]StructID),
		Functions: make(map[string]FunctionID),
		Enums:     make(map[string]EnumID),
		Types:     make(map[string]TypeID),
		Imports:   make(map[string]Import),
		Parent:    parent,
		CanThrow:  canThrow,
	}
}

// GetModule returns the module with the given ID.
func (p *CheckedProgram) GetModule(id ModuleID) *Module {
	if int(id) >= len(p.Modules) {
		panic(internalErrorf(nil, "dangling module %d", id))
	}
	return p.Modules[id]
}

// GetType returns the type with the given ID.
func (p *CheckedProgram) GetType(id TypeID) Type {
	m := p.GetModule(id.Module)
	if int(id.Index) >= len(m.Types) {
		panic(internalErrorf(nil, "dangling %s", id))
	}
	return m.Types[id.Index]
}

// GetFunction returns the function with the given ID.
func (p *CheckedProgram) GetFunction(id FunctionID) *CheckedFunction {
	m := p.GetModule(id.Module)
	if int(id.Index) >= len(m.Functions) {
		panic(internalErrorf(nil, "dangling %s", id))
	}
	return m.Functions[id.Index]
}

// GetVariable returns the variable with the given ID.
func (p *CheckedProgram) GetVariable(id VarID) CheckedVariable {
	m := p.GetModule(id.Module)
	if int(id.Index) >= len(m.Variables) {
		panic(internalErrorf(nil, "dangling %s", id))
	}
	return m.Variables[id.Index]
}

// GetStruct returns the struct with the given ID.
func (p *CheckedProgram) GetStruct(id StructID) *CheckedStruct {
	m := p.GetModule(id.Module)
	if int(id.Index) >= len(m.Structs) {
		panic(internalErrorf(nil, "dangling %s", id))
	}
	return m.Structs[id.Index]
}

// GetEnum returns the enum with the given ID.
func (p *CheckedProgram) GetEnum(id EnumID) *CheckedEnum {
	m := p.GetModule(id.Module)
	if int(id.Index) >= len(m.Enums) {
		panic(internalErrorf(nil, "dangling %s", id))
	}
	return m.Enums[id.Index]
}

// GetScope returns the scope with the given ID.
func (p *CheckedProgram) GetScope(id ScopeID) *Scope {
	m := p.GetModule(id.Module)
	if int(id.Index) >= len(m.Scopes) {
		panic(internalErrorf(nil, "dangling %s", id))
	}
	return m.Scopes[id.Index]
}

// FindModule returns the ID of the module with the given name.
func (p *CheckedProgram) FindModule(name string) (ModuleID, bool) {
	for _, m := range p.Modules {
		if m.Name == name {
			return m.ID, true
		}
	}
	return 0, false
}

// TypeName returns a human-readable name for a type,
// for use in error messages.
func (p *CheckedProgram) TypeName(id TypeID) string {
	var s strings.Builder
	p.buildTypeName(&s, id)
	return s.String()
}

func (p *CheckedProgram) buildTypeName(s *strings.Builder, id TypeID) {
	switch t := p.GetType(id).(type) {
	case Builtin:
		s.WriteString(t.String())
	case *TypeVariable:
		s.WriteString(t.Name)
	case *GenericInstance:
		s.WriteString(p.GetStruct(t.Struct).Name)
		p.buildTypeArgs(s, t.Args)
	case *GenericEnumInstance:
		s.WriteString(p.GetEnum(t.Enum).Name)
		p.buildTypeArgs(s, t.Args)
	case *StructType:
		s.WriteString(p.GetStruct(t.Struct).Name)
	case *EnumType:
		s.WriteString(p.GetEnum(t.Enum).Name)
	case *Inference:
		s.WriteString("_")
	case *RawPtr:
		s.WriteString("raw ")
		p.buildTypeName(s, t.Elem)
	default:
		panic(internalErrorf(t, "impossible type"))
	}
}

func (p *CheckedProgram) buildTypeArgs(s *strings.Builder, args []TypeID) {
	s.WriteRune('<')
	for i, a := range args {
		if i > 0 {
			s.WriteString(", ")
		}
		p.buildTypeName(s, a)
	}
	s.WriteRune('>')
}

// walkScopes calls f on scope id and each of its ancestors, innermost first,
// until f returns true.
// It returns the scope for which f returned true.
func (p *CheckedProgram) walkScopes(id ScopeID, f func(ScopeID, *Scope) bool) (ScopeID, bool) {
	for {
		scope := p.GetScope(id)
		if f(id, scope) {
			return id, true
		}
		if scope.Parent == nil {
			return ScopeID{}, false
		}
		id = *scope.Parent
	}
}

// FindTypeInScope looks up a type name in the scope and its ancestors.
func (p *CheckedProgram) FindTypeInScope(id ScopeID, name string) (TypeID, bool) {
	var t TypeID
	_, ok := p.walkScopes(id, func(_ ScopeID, s *Scope) bool {
		var ok bool
		t, ok = s.Types[name]
		return ok
	})
	return t, ok
}

// FindVarInScope looks up a variable in the scope and its ancestors.
func (p *CheckedProgram) FindVarInScope(id ScopeID, name string) (VarID, bool) {
	var v VarID
	_, ok := p.walkScopes(id, func(_ ScopeID, s *Scope) bool {
		var ok bool
		v, ok = s.Vars[name]
		return ok
	})
	return v, ok
}

// FindStructInScope looks up a struct in the scope and its ancestors.
func (p *CheckedProgram) FindStructInScope(id ScopeID, name string) (StructID, bool) {
	var st StructID
	_, ok := p.walkScopes(id, func(_ ScopeID, s *Scope) bool {
		var ok bool
		st, ok = s.Structs[name]
		return ok
	})
	return st, ok
}

// FindFunctionInScope looks up a function in the scope and its ancestors.
func (p *CheckedProgram) FindFunctionInScope(id ScopeID, name string) (FunctionID, bool) {
	var fn FunctionID
	_, ok := p.walkScopes(id, func(_ ScopeID, s *Scope) bool {
		var ok bool
		fn, ok = s.Functions[name]
		return ok
	})
	return fn, ok
}

// FindEnumInScope looks up an enum in the scope and its ancestors.
func (p *CheckedProgram) FindEnumInScope(id ScopeID, name string) (EnumID, bool) {
	var e EnumID
	_, ok := p.walkScopes(id, func(_ ScopeID, s *Scope) bool {
		var ok bool
		e, ok = s.Enums[name]
		return ok
	})
	return e, ok
}

// FindNamespaceInScope looks for a child namespace with the given name
// in the scope and its ancestors.
// When found, the result is the ancestor whose child matched,
// not the namespace scope itself.
// Otherwise, if name is a module imported into the root scope
// of id's module, the result is the root scope of that module.
func (p *CheckedProgram) FindNamespaceInScope(id ScopeID, name string) (ScopeID, bool) {
	if found, ok := p.walkScopes(id, func(_ ScopeID, s *Scope) bool {
		for _, child := range s.Children {
			if ns := p.GetScope(child).Namespace; ns != "" && ns == name {
				return true
			}
		}
		return false
	}); ok {
		return found, true
	}
	root := p.GetScope(ScopeID{Module: id.Module, Index: 0})
	if imp, ok := root.Imports[name]; ok {
		return ScopeID{Module: imp.Module, Index: 0}, true
	}
	return ScopeID{}, false
}

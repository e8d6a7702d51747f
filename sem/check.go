// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"strings"

	"github.com/eaburns/sema/loc"
	"github.com/eaburns/sema/syn"
	"github.com/pkg/errors"
)

// Check type-checks modules into a new program.
// Modules are checked after the modules they import.
//
// The returned error is non-nil only if the modules
// cannot be ordered: duplicate module names or an import cycle.
// Otherwise, the errors in the checked program are returned
// as the []Error slice, and the program is always returned.
func Check(mods []*syn.Module, cfg Config) (*CheckedProgram, []Error, error) {
	order, err := sortModules(mods)
	if err != nil {
		return nil, nil, err
	}
	tc := NewTypechecker(cfg)
	for _, m := range order {
		tc.TypecheckModule(m)
	}
	return tc.Program(), tc.Errors(), nil
}

// sortModules returns the modules in dependency order,
// keeping the input order where imports allow.
// Imports of unknown modules and self-imports are ignored here;
// they are reported when the importing module is checked.
func sortModules(mods []*syn.Module) ([]*syn.Module, error) {
	byName := make(map[string]*syn.Module)
	for _, m := range mods {
		if m.Name == "prelude" {
			return nil, errors.Errorf("%s: module name prelude is reserved", m.Span)
		}
		if prev, ok := byName[m.Name]; ok {
			return nil, errors.Errorf("%s: module %s defined more than once (previous at %s)",
				m.Span, m.Name, prev.Span)
		}
		byName[m.Name] = m
	}

	const (
		visiting = 1
		done     = 2
	)
	state := make(map[*syn.Module]int)
	var order []*syn.Module
	var path []string
	var visit func(*syn.Module) error
	visit = func(m *syn.Module) error {
		switch state[m] {
		case done:
			return nil
		case visiting:
			return errors.Errorf("%s: import cycle: %s -> %s",
				m.Span, strings.Join(path, " -> "), m.Name)
		}
		state[m] = visiting
		path = append(path, m.Name)
		for _, imp := range m.Imports {
			dep, ok := byName[imp.Name]
			if !ok || dep == m {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[m] = done
		order = append(order, m)
		return nil
	}
	for _, m := range mods {
		if err := visit(m); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// declState maps the declarations of the module being checked
// to their checked counterparts, between checking passes.
type declState struct {
	namespaces map[*syn.Namespace]ScopeID
	structs    map[*syn.Struct]StructID
	enums      map[*syn.Enum]EnumID
	functions  map[*syn.Function]FunctionID
}

// TypecheckModule checks a module, adding it to the program.
// Errors in the module are recorded and checking continues.
func (tc *Typechecker) TypecheckModule(m *syn.Module) ModuleID {
	defer tc.tr("TypecheckModule(%s)", m.Name)()
	id := tc.addModule(m.Name)
	tc.checkImports(m)
	tc.checkModule(m)
	return id
}

// addModule adds a new, empty module with a root scope
// and makes it the current module.
func (tc *Typechecker) addModule(name string) ModuleID {
	id := ModuleID(nextIndex(len(tc.program.Modules)))
	tc.program.Modules = append(tc.program.Modules, &Module{ID: id, Name: name})
	tc.current = id
	tc.addScope(nil, false, "")
	return id
}

// checkModule checks the declarations of m into the current module.
// Declarations are checked in passes, so that they may refer to each other
// regardless of order:
// first types are gathered, then signatures, then function bodies.
func (tc *Typechecker) checkModule(m *syn.Module) {
	s := &declState{
		namespaces: make(map[*syn.Namespace]ScopeID),
		structs:    make(map[*syn.Struct]StructID),
		enums:      make(map[*syn.Enum]EnumID),
		functions:  make(map[*syn.Function]FunctionID),
	}
	root := ScopeID{Module: tc.current, Index: 0}
	s.namespaces[&m.Namespace] = root
	tc.gatherTypes(s, &m.Namespace, root)
	tc.checkSignatures(s, &m.Namespace)
	tc.checkBodies(s, &m.Namespace)
}

func (tc *Typechecker) checkImports(m *syn.Module) {
	defer tc.tr("checkImports(%s)", m.Name)()
	mod := tc.module()
	root := tc.program.GetScope(ScopeID{Module: mod.ID, Index: 0})
	for _, imp := range m.Imports {
		if imp.Name == m.Name {
			tc.err(imp.Span, "module %s imports itself", imp.Name)
			continue
		}
		id, ok := tc.program.FindModule(imp.Name)
		if !ok || id == PreludeModule {
			tc.err(imp.Span, "unknown module %s", imp.Name)
			continue
		}
		if prev, ok := root.Imports[imp.Name]; ok {
			tc.errHint(imp.Span, prev.Span, "previous import", "module %s imported more than once", imp.Name)
			continue
		}
		root.Imports[imp.Name] = Import{Module: id, Span: imp.Span}
		mod.Imports = append(mod.Imports, id)
	}
}

// addScope adds a new scope to the current module.
// The scope is a child of parent, if parent is non-nil.
func (tc *Typechecker) addScope(parent *ScopeID, canThrow bool, namespace string) ScopeID {
	m := tc.module()
	id := ScopeID{Module: m.ID, Index: nextIndex(len(m.Scopes))}
	s := newScope(parent, canThrow)
	s.Namespace = namespace
	m.Scopes = append(m.Scopes, s)
	if parent != nil {
		p := tc.program.GetScope(*parent)
		p.Children = append(p.Children, id)
	}
	return id
}

// addVar adds a variable to the current module
// and binds its name in scope.
func (tc *Typechecker) addVar(scope ScopeID, v CheckedVariable) VarID {
	m := tc.module()
	id := VarID{Module: m.ID, Index: nextIndex(len(m.Variables))}
	m.Variables = append(m.Variables, v)
	s := tc.program.GetScope(scope)
	if prev, ok := s.Vars[v.Name]; ok {
		prevSpan := tc.program.GetVariable(prev).DefinitionSpan
		tc.errHint(v.DefinitionSpan, prevSpan, "previous definition", "redefinition of variable %s", v.Name)
		return id
	}
	s.Vars[v.Name] = id
	return id
}

func (tc *Typechecker) bindType(scope ScopeID, name string, span loc.Span, t TypeID) bool {
	s := tc.program.GetScope(scope)
	if _, ok := typeKeywords[name]; ok {
		tc.err(span, "redefinition of builtin type %s", name)
		return false
	}
	if _, ok := s.Types[name]; ok {
		tc.err(span, "redefinition of type %s", name)
		return false
	}
	s.Types[name] = t
	return true
}

func (tc *Typechecker) genericParams(scope ScopeID, params []syn.GenericParam) []TypeID {
	var ids []TypeID
	for _, p := range params {
		t := tc.FindOrAddTypeID(&TypeVariable{Name: p.Name, Scope: scope})
		tc.bindType(scope, p.Name, p.Span, t)
		ids = append(ids, t)
	}
	return ids
}

// gatherTypes adds scopes for namespaces, structs, and enums,
// and binds the struct and enum types,
// so that they can be referenced by any type name in the module.
func (tc *Typechecker) gatherTypes(s *declState, ns *syn.Namespace, scope ScopeID) {
	defer tc.tr("gatherTypes(%s)", ns.Name)()
	for _, child := range ns.Namespaces {
		if child.Name == "" {
			tc.err(child.Span, "namespace must have a name")
		}
		id := tc.addScope(&scope, false, child.Name)
		s.namespaces[child] = id
		tc.gatherTypes(s, child, id)
	}
	m := tc.module()
	for _, st := range ns.Structs {
		id := StructID{Module: m.ID, Index: nextIndex(len(m.Structs))}
		checked := &CheckedStruct{
			Name:           st.Name,
			Span:           st.Span,
			Scope:          tc.addScope(&scope, false, ""),
			DefinitionType: st.DefinitionType,
			Linkage:        st.Linkage,
		}
		m.Structs = append(m.Structs, checked)
		s.structs[st] = id
		checked.GenericParams = tc.genericParams(checked.Scope, st.GenericParams)
		if len(checked.GenericParams) > 0 {
			checked.Type = tc.FindOrAddTypeID(&GenericInstance{Struct: id, Args: checked.GenericParams})
		} else {
			checked.Type = tc.FindOrAddTypeID(&StructType{Struct: id})
		}
		if tc.bindType(scope, st.Name, st.Span, checked.Type) {
			tc.program.GetScope(scope).Structs[st.Name] = id
		}
	}
	for _, en := range ns.Enums {
		id := EnumID{Module: m.ID, Index: nextIndex(len(m.Enums))}
		checked := &CheckedEnum{
			Name:        en.Name,
			Span:        en.Span,
			Scope:       tc.addScope(&scope, false, ""),
			IsRecursive: en.IsRecursive,
		}
		m.Enums = append(m.Enums, checked)
		s.enums[en] = id
		checked.GenericParams = tc.genericParams(checked.Scope, en.GenericParams)
		if len(checked.GenericParams) > 0 {
			checked.Type = tc.FindOrAddTypeID(&GenericEnumInstance{Enum: id, Args: checked.GenericParams})
		} else {
			checked.Type = tc.FindOrAddTypeID(&EnumType{Enum: id})
		}
		if tc.bindType(scope, en.Name, en.Span, checked.Type) {
			tc.program.GetScope(scope).Enums[en.Name] = id
		}
	}
}

// checkSignatures checks struct fields, enum variants,
// and function and method signatures.
func (tc *Typechecker) checkSignatures(s *declState, ns *syn.Namespace) {
	defer tc.tr("checkSignatures(%s)", ns.Name)()
	for _, child := range ns.Namespaces {
		tc.checkSignatures(s, child)
	}
	for _, st := range ns.Structs {
		tc.checkStructSignature(s, st)
	}
	for _, en := range ns.Enums {
		tc.checkEnum(s, en)
	}
	scope := s.namespaces[ns]
	for _, fn := range ns.Functions {
		tc.checkFunctionSignature(s, fn, scope, nil)
	}
}

func (tc *Typechecker) checkStructSignature(s *declState, st *syn.Struct) {
	defer tc.tr("checkStructSignature(%s)", st.Name)()
	id := s.structs[st]
	checked := tc.program.GetStruct(id)
	for _, f := range st.Fields {
		v := CheckedVariable{
			Name:           f.Name,
			Type:           tc.TypecheckTypename(f.Type, checked.Scope),
			Mutable:        f.Mutable,
			DefinitionSpan: f.Span,
		}
		checked.Fields = append(checked.Fields, tc.addVar(checked.Scope, v))
	}
	for _, fn := range st.Methods {
		checked.Methods = append(checked.Methods, tc.checkFunctionSignature(s, fn, checked.Scope, &id))
	}
}

func (tc *Typechecker) checkEnum(s *declState, en *syn.Enum) {
	defer tc.tr("checkEnum(%s)", en.Name)()
	checked := tc.program.GetEnum(s.enums[en])
	checked.UnderlyingType = Void.ID()
	if _, ok := en.UnderlyingType.(*syn.Empty); !ok && en.UnderlyingType != nil {
		checked.UnderlyingType = tc.TypecheckTypename(en.UnderlyingType, checked.Scope)
	}
	seen := make(map[string]loc.Span)
	for _, v := range en.Variants {
		if prev, ok := seen[v.Name]; ok {
			tc.errHint(v.Span, prev, "previous definition", "redefinition of enum variant %s", v.Name)
		}
		seen[v.Name] = v.Span
		variant := CheckedEnumVariant{Name: v.Name, Span: v.Span}
		switch {
		case v.Value != nil:
			variant.Kind = WithValueVariant
			value := tc.TypecheckExpression(v.Value, checked.Scope)
			value = tc.promoteConstant(checked.UnderlyingType, value)
			if checked.UnderlyingType == Void.ID() {
				tc.err(v.Span, "enum variant %s has a value but enum %s has no underlying type", v.Name, en.Name)
			} else if _, conflict := tc.Unify(value.Type(), value.GetSpan(), checked.UnderlyingType, en.Span); conflict {
				tc.err(value.GetSpan(), "enum variant value of type '%s' does not match underlying type '%s'",
					tc.typeName(value.Type()), tc.typeName(checked.UnderlyingType))
			}
			variant.Value = value
		case v.Type != nil:
			variant.Kind = TypedVariant
			variant.Type = tc.TypecheckTypename(v.Type, checked.Scope)
		case len(v.Fields) > 0:
			variant.Kind = StructLikeVariant
			scope := tc.addScope(&checked.Scope, false, "")
			for _, f := range v.Fields {
				field := CheckedVariable{
					Name:           f.Name,
					Type:           tc.TypecheckTypename(f.Type, checked.Scope),
					Mutable:        f.Mutable,
					DefinitionSpan: f.Span,
				}
				variant.Fields = append(variant.Fields, tc.addVar(scope, field))
			}
		default:
			variant.Kind = UntypedVariant
		}
		checked.Variants = append(checked.Variants, variant)
	}
}

// checkFunctionSignature checks a function's parameters and return type,
// and binds the function name in scope.
// owner is the struct of a method, or nil.
func (tc *Typechecker) checkFunctionSignature(s *declState, fn *syn.Function, scope ScopeID, owner *StructID) FunctionID {
	defer tc.tr("checkFunctionSignature(%s)", fn.Name)()
	m := tc.module()
	id := FunctionID{Module: m.ID, Index: nextIndex(len(m.Functions))}
	checked := &CheckedFunction{
		Name:     fn.Name,
		NameSpan: fn.NameSpan,
		Throws:   fn.Throws,
		Scope:    tc.addScope(&scope, fn.Throws, ""),
		Linkage:  fn.Linkage,
		Struct:   owner,
	}
	m.Functions = append(m.Functions, checked)
	s.functions[fn] = id

	checked.GenericParams = tc.genericParams(checked.Scope, fn.GenericParams)
	for _, p := range fn.Params {
		var t TypeID
		_, empty := p.Var.Type.(*syn.Empty)
		if p.Var.Name == "this" && empty && owner != nil {
			t = tc.program.GetStruct(*owner).Type
		} else {
			t = tc.TypecheckTypename(p.Var.Type, checked.Scope)
		}
		v := CheckedVariable{
			Name:           p.Var.Name,
			Type:           t,
			Mutable:        p.Var.Mutable,
			DefinitionSpan: p.Var.Span,
		}
		checked.Params = append(checked.Params, CheckedParam{
			Var:  tc.addVar(checked.Scope, v),
			Anon: p.Anon,
		})
	}
	if _, ok := fn.ReturnType.(*syn.Empty); ok || fn.ReturnType == nil {
		checked.ReturnType = Void.ID()
	} else {
		checked.ReturnType = tc.TypecheckTypename(fn.ReturnType, checked.Scope)
	}

	sc := tc.program.GetScope(scope)
	if prev, ok := sc.Functions[fn.Name]; ok {
		prevSpan := tc.program.GetFunction(prev).NameSpan
		tc.errHint(fn.NameSpan, prevSpan, "previous definition", "redefinition of function %s", fn.Name)
	} else {
		sc.Functions[fn.Name] = id
	}
	return id
}

// checkBodies checks the bodies of all functions and methods.
func (tc *Typechecker) checkBodies(s *declState, ns *syn.Namespace) {
	for _, child := range ns.Namespaces {
		tc.checkBodies(s, child)
	}
	for _, st := range ns.Structs {
		for _, fn := range st.Methods {
			tc.checkFunctionBody(s, fn)
		}
	}
	for _, fn := range ns.Functions {
		tc.checkFunctionBody(s, fn)
	}
}

func (tc *Typechecker) checkFunctionBody(s *declState, fn *syn.Function) {
	defer tc.tr("checkFunctionBody(%s)", fn.Name)()
	checked := tc.program.GetFunction(s.functions[fn])
	if fn.Block == nil {
		if fn.Linkage != syn.External {
			tc.err(fn.NameSpan, "function %s has no body", fn.Name)
		}
		return
	}
	tc.fn = checked
	defer func() { tc.fn = nil }()
	checked.Block = tc.checkBlock(fn.Block, checked.Scope)
	if checked.ReturnType != Void.ID() && !checked.Block.DefinitelyReturns {
		tc.err(fn.NameSpan, "control reaches end of non-void function")
	}
}

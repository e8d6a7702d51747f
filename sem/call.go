// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import "github.com/eaburns/sema/syn"

// checkCall checks a call.
// Only print calls are checked:
// their arguments are checked, and they return void,
// or String for the format call.
// Other calls are left unresolved with unchecked arguments.
func (tc *Typechecker) checkCall(c *syn.Call, scope ScopeID) CheckedCall {
	defer tc.tr("checkCall(%s)", c.Name)()
	if !tc.isPrintCall(c.Name) {
		// TODO: resolve calls to declared functions.
		return CheckedCall{Name: c.Name, ReturnType: Void.ID()}
	}
	call := CheckedCall{Name: c.Name, ReturnType: Void.ID()}
	if c.Name == FormatCall {
		call.ReturnType = String.ID()
	}
	for _, arg := range c.Args {
		call.Args = append(call.Args, CheckedArg{
			Name: arg.Name,
			Expr: tc.TypecheckExpression(arg.Expr, scope),
		})
	}
	return call
}

func (tc *Typechecker) isPrintCall(name string) bool {
	for _, p := range tc.cfg.PrintCalls {
		if p == name {
			return true
		}
	}
	return false
}

// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"fmt"
	"reflect"

	"github.com/eaburns/pretty"
)

// A Typechecker checks modules into a CheckedProgram.
// A Typechecker is not safe for concurrent use.
type Typechecker struct {
	cfg     Config
	program *CheckedProgram
	current ModuleID
	// inferences are the names of the inference placeholders,
	// indexed by InferenceID.
	inferences []string
	errs       []Error

	// fn is the function whose body is being checked, or nil.
	fn *CheckedFunction

	indent string
}

// NewTypechecker returns a Typechecker for a new program
// containing only the prelude module.
func NewTypechecker(cfg Config) *Typechecker {
	setConfigDefaults(&cfg)
	tc := &Typechecker{
		cfg:     cfg,
		program: &CheckedProgram{},
	}
	newPrelude(tc)
	return tc
}

// Program returns the program being checked.
func (tc *Typechecker) Program() *CheckedProgram { return tc.program }

// Errors returns all diagnostics reported so far, in the order reported.
func (tc *Typechecker) Errors() []Error { return tc.errs }

// CurrentModule returns the ID of the module being checked.
func (tc *Typechecker) CurrentModule() ModuleID { return tc.current }

func (tc *Typechecker) module() *Module { return tc.program.GetModule(tc.current) }

// The argument to the returned function, if non-empty,
// only the first element of vs is used.
// It must be a pointer to the result to log.
func (tc *Typechecker) tr(f string, vs ...interface{}) func(...interface{}) {
	if !tc.cfg.Trace {
		return func(...interface{}) {}
	}
	tc.log(f, vs...)
	olddent := tc.indent
	tc.indent += "---"
	return func(res ...interface{}) {
		defer func() { tc.indent = olddent }()
		if len(res) == 0 {
			return
		}
		v := reflect.ValueOf(res[0])
		if v.Kind() != reflect.Ptr || v.IsNil() {
			return
		}
		switch r := v.Elem().Interface().(type) {
		case Expr, Stmt:
			tc.log("%s", pretty.String(r))
		case TypeID:
			tc.log("%s", tc.program.TypeName(r))
		default:
			tc.log("%v", r)
		}
	}
}

func (tc *Typechecker) log(f string, vs ...interface{}) {
	if !tc.cfg.Trace {
		return
	}
	fmt.Fprint(tc.cfg.TraceOut, tc.indent)
	fmt.Fprintf(tc.cfg.TraceOut, f, vs...)
	fmt.Fprintln(tc.cfg.TraceOut, "")
}

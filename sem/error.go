// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/eaburns/sema/loc"
)

// An Error is a diagnostic about the checked program.
type Error struct {
	Msg  string
	Span loc.Span
	// Hint is an optional secondary message
	// pointing at a related location.
	Hint *Hint
}

// A Hint is a secondary message attached to an Error.
type Hint struct {
	Msg  string
	Span loc.Span
}

func (err *Error) Error() string {
	var s strings.Builder
	s.WriteString(err.Span.String())
	s.WriteString(": ")
	s.WriteString(err.Msg)
	if err.Hint != nil {
		s.WriteString("\n\t")
		s.WriteString(err.Hint.Span.String())
		s.WriteString(": ")
		s.WriteString(err.Hint.Msg)
	}
	return s.String()
}

func (tc *Typechecker) err(span loc.Span, f string, vs ...interface{}) {
	err := Error{Msg: fmt.Sprintf(f, vs...), Span: span}
	tc.log("error: %s", err.Msg)
	tc.errs = append(tc.errs, err)
}

func (tc *Typechecker) errHint(span loc.Span, hintSpan loc.Span, hint string, f string, vs ...interface{}) {
	err := Error{
		Msg:  fmt.Sprintf(f, vs...),
		Span: span,
		Hint: &Hint{Msg: hint, Span: hintSpan},
	}
	tc.log("error: %s (hint: %s)", err.Msg, hint)
	tc.errs = append(tc.errs, err)
}

// An InternalError is a defect in the checker itself,
// as opposed to an error in the checked program.
// InternalErrors are raised with panic and are never recovered.
type InternalError struct {
	Msg string
	// Dump is a dump of the node being checked, if any.
	Dump string
}

func (err *InternalError) Error() string {
	if err.Dump == "" {
		return "internal error: " + err.Msg
	}
	return "internal error: " + err.Msg + "\n" + err.Dump
}

func internalErrorf(n interface{}, f string, vs ...interface{}) *InternalError {
	err := &InternalError{Msg: fmt.Sprintf(f, vs...)}
	if n != nil {
		err.Dump = spew.Sdump(n)
	}
	return err
}

// notSupported panics on a construct that the checker does not handle yet.
func notSupported(n interface{}) {
	panic(internalErrorf(n, "not yet supported: %T", n))
}

// unreachable panics on a path that must never execute.
func unreachable(n interface{}) {
	panic(internalErrorf(n, "unreachable: %T", n))
}

// Copyright © 2020 The Pea Authors under an MIT-style license.

// Package loc has routines for tracking source locations.
package loc

import "fmt"

// A Span is a start and end byte offset within a source file.
// File identifies the file; its meaning is up to the parser
// that produced the span.
type Span struct {
	File  int
	Start int
	End   int
}

// GetSpan returns itself.
// This is useful so that Span can be embedded in a struct
// and that struct can implement interface{GetSpan() Span}.
func (s Span) GetSpan() Span { return s }

// Join returns the smallest Span covering both s and t.
// The spans must be in the same file.
func (s Span) Join(t Span) Span {
	if s.File != t.File {
		panic("impossible")
	}
	j := s
	if t.Start < j.Start {
		j.Start = t.Start
	}
	if t.End > j.End {
		j.End = t.End
	}
	return j
}

func (s Span) String() string {
	if s.Start == s.End {
		return fmt.Sprintf("%d:%d", s.File, s.Start)
	}
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

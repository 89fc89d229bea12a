// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package diag collects front-end diagnostics instead of aborting on the
// first error, mirroring the teacher's grammar.Builder/Diagnostic pattern
// (internal/grammar/builder.go's error/warn/Diagnostics/HasErrors) adapted
// to carry a phase and an ldplerr.Kind alongside the message and position.
package diag

import (
	"fmt"
	"sort"

	"github.com/mdhender/ldplc/internal/ldplerr"
	"github.com/mdhender/ldplc/internal/token"
)

// Phase identifies which stage of the pipeline raised a diagnostic.
type Phase uint8

const (
	PhaseLex Phase = iota
	PhaseParse
	PhaseSema
)

func (p Phase) String() string {
	switch p {
	case PhaseLex:
		return "lex"
	case PhaseParse:
		return "parse"
	case PhaseSema:
		return "sema"
	default:
		return "?"
	}
}

// Severity distinguishes a hard error from a warning.
type Severity uint8

const (
	SevError Severity = iota
	SevWarning
)

// Diagnostic is one front-end error or warning.
type Diagnostic struct {
	Phase Phase
	Kind  ldplerr.Kind
	Sev   Severity
	Pos   token.Position
	Msg   string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Msg)
}

// Bag accumulates diagnostics across a phase (or a whole compilation) and
// reports whether any are fatal.
type Bag struct {
	items []Diagnostic
}

func (b *Bag) Errorf(phase Phase, kind ldplerr.Kind, pos token.Position, format string, args ...any) {
	b.items = append(b.items, Diagnostic{Phase: phase, Kind: kind, Sev: SevError, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (b *Bag) Warnf(phase Phase, kind ldplerr.Kind, pos token.Position, format string, args ...any) {
	b.items = append(b.items, Diagnostic{Phase: phase, Kind: kind, Sev: SevWarning, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any SevError-level diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Sev == SevError {
			return true
		}
	}
	return false
}

// All returns the collected diagnostics sorted by file, line, column —
// stable regardless of the order the passes that produced them ran in.
func (b *Bag) All() []Diagnostic {
	out := append([]Diagnostic(nil), b.items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, c := out[i].Pos, out[j].Pos
		if a.File != c.File {
			return a.File < c.File
		}
		if a.Line != c.Line {
			return a.Line < c.Line
		}
		return a.Column < c.Column
	})
	return out
}

// Merge appends another bag's diagnostics into this one.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

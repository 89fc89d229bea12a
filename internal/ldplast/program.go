// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package ldplast

import (
	"github.com/mdhender/ldplc/internal/runtime"
	"github.com/mdhender/ldplc/internal/token"
)

// ScopeKind distinguishes where a Variable was declared.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeParam
	ScopeLocal
)

// Variable is a resolved LDPL variable: name, type, declaring scope, and
// (once internal/emit runs) a stable mangled C++ identifier.
type Variable struct {
	Name       string // original casing, preserved for diagnostics
	Key        string // token.Upper(Name), the scope-table lookup key
	Type       Type
	Scope      ScopeKind
	External   bool // referenced by its exact (unmangled) C++ name
	Mangled    string
	DeclaredAt token.Position
}

// TemplatePart is one element of a CREATE STATEMENT surface pattern: a
// literal keyword, or (when Slot is true) an expression placeholder.
type TemplatePart struct {
	Literal string
	Slot    bool
}

// Template is a registered CREATE STATEMENT user-defined statement.
type Template struct {
	Pattern    []TemplatePart
	Sub        string // target sub-procedure name, as written
	Arity      int    // number of slots == number of CALL arguments
	DeclaredAt token.Position
}

// Sub is a sub-procedure: name, parameters, locals, and lowered body.
// The top-level PROCEDURE: body is modeled as a synthetic sub named
// "main" with no parameters, per spec.md §3.
type Sub struct {
	Name       string
	Key        string
	Params     []*Variable
	Locals     []*Variable
	Body       []*Stmt
	External   bool
	IsMain     bool
	DeclaredAt token.Position

	paramsByKey map[string]*Variable
	localsByKey map[string]*Variable
}

func (s *Sub) Arity() int { return len(s.Params) }

// Lookup resolves name within this sub's parameter/local scope only
// (locals shadow parameters, both shadow nothing wider — the caller is
// expected to fall back to Program.Globals).
func (s *Sub) Lookup(name string) (*Variable, bool) {
	key := token.Upper(name)
	if v, ok := s.localsByKey[key]; ok {
		return v, true
	}
	if v, ok := s.paramsByKey[key]; ok {
		return v, true
	}
	return nil, false
}

// AddParam registers a parameter, reporting false if the name collides
// with an existing parameter or local in this sub (spec.md §3's "no two
// declarations in the same scope share a name" invariant).
func (s *Sub) AddParam(v *Variable) bool {
	if s.paramsByKey == nil {
		s.paramsByKey = map[string]*Variable{}
	}
	if s.localsByKey == nil {
		s.localsByKey = map[string]*Variable{}
	}
	if _, exists := s.paramsByKey[v.Key]; exists {
		return false
	}
	if _, exists := s.localsByKey[v.Key]; exists {
		return false
	}
	s.paramsByKey[v.Key] = v
	s.Params = append(s.Params, v)
	return true
}

// AddLocal registers a local variable, same collision rule as AddParam.
func (s *Sub) AddLocal(v *Variable) bool {
	if s.paramsByKey == nil {
		s.paramsByKey = map[string]*Variable{}
	}
	if s.localsByKey == nil {
		s.localsByKey = map[string]*Variable{}
	}
	if _, exists := s.paramsByKey[v.Key]; exists {
		return false
	}
	if _, exists := s.localsByKey[v.Key]; exists {
		return false
	}
	s.localsByKey[v.Key] = v
	s.Locals = append(s.Locals, v)
	return true
}

// Program is the whole-translation-unit annotated AST produced by
// internal/sema: the global variable table, the ordered sub table (with
// "main" synthesized for the top-level PROCEDURE: body), the templates
// registered by CREATE STATEMENT, and the header-level pass-throughs
// (spec.md §6's header_stmt alternatives beyond INCLUDE, which is fully
// resolved before parsing and leaves no AST trace).
type Program struct {
	Globals      []*Variable
	globalsByKey map[string]*Variable

	Subs      []*Sub
	subsByKey map[string]*Sub

	Templates []*Template

	Extensions []string // EXTENSION "..."
	Packages   []string // USING PACKAGE "..."
	Flags      []string // FLAG "..."
}

// NewProgram creates an empty Program with the three predeclared globals
// (ARGV, ERRORTEXT, ERRORCODE) already installed, per spec.md §3.
func NewProgram() *Program {
	p := &Program{
		globalsByKey: map[string]*Variable{},
		subsByKey:    map[string]*Sub{},
	}
	p.AddGlobal(&Variable{Name: runtime.GlobalARGV, Key: token.Upper(runtime.GlobalARGV), Type: TextList, Scope: ScopeGlobal})
	p.AddGlobal(&Variable{Name: runtime.GlobalErrorText, Key: token.Upper(runtime.GlobalErrorText), Type: Text, Scope: ScopeGlobal})
	p.AddGlobal(&Variable{Name: runtime.GlobalErrorCode, Key: token.Upper(runtime.GlobalErrorCode), Type: Number, Scope: ScopeGlobal})
	return p
}

// AddGlobal registers a global, reporting false on a case-insensitive
// name collision.
func (p *Program) AddGlobal(v *Variable) bool {
	if _, exists := p.globalsByKey[v.Key]; exists {
		return false
	}
	p.globalsByKey[v.Key] = v
	p.Globals = append(p.Globals, v)
	return true
}

// LookupGlobal resolves a global by (case-insensitive) name.
func (p *Program) LookupGlobal(name string) (*Variable, bool) {
	v, ok := p.globalsByKey[token.Upper(name)]
	return v, ok
}

// AddSub registers a sub-procedure, reporting false on a name collision.
func (p *Program) AddSub(s *Sub) bool {
	if _, exists := p.subsByKey[s.Key]; exists {
		return false
	}
	p.subsByKey[s.Key] = s
	p.Subs = append(p.Subs, s)
	return true
}

// LookupSub resolves a sub-procedure by (case-insensitive) name.
func (p *Program) LookupSub(name string) (*Sub, bool) {
	s, ok := p.subsByKey[token.Upper(name)]
	return s, ok
}

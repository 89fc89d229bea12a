// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package sema lowers a internal/cst tree to an annotated internal/ldplast
// Program: it resolves every identifier to a scope (spec.md §4.3's scope
// stack [globals, (params, locals) per sub]), classifies types, and
// validates statement operand arities/types, collecting diag.Diagnostic
// values into a bag rather than halting on the first error — the same
// "validate everything, then decide" shape as the teacher's
// Builder.Finalize (internal/grammar/builder_finalize.go).
package sema

import (
	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/diag"
	"github.com/mdhender/ldplc/internal/ldplast"
	"github.com/mdhender/ldplc/internal/ldplerr"
	"github.com/mdhender/ldplc/internal/parser"
	"github.com/mdhender/ldplc/internal/token"
)

type scope struct {
	prog *ldplast.Program
	sub  *ldplast.Sub // nil while lowering header/data declarations
}

func (s *scope) lookup(name string) (*ldplast.Variable, bool) {
	if s.sub != nil {
		if v, ok := s.sub.Lookup(name); ok {
			return v, true
		}
	}
	return s.prog.LookupGlobal(name)
}

// Lower converts file (the root cst.KindFile node from internal/parser)
// plus its CREATE STATEMENT templates into an ldplast.Program, along with
// every diagnostic raised while doing so.
func Lower(file *cst.Node, templates []parser.Template) (*ldplast.Program, *diag.Bag) {
	bag := &diag.Bag{}
	prog := ldplast.NewProgram()

	main := &ldplast.Sub{Name: "main", Key: "MAIN", IsMain: true}
	prog.AddSub(main)

	for _, child := range file.Children {
		switch child.Kind {
		case cst.KindHeaderUsingPackage:
			prog.Packages = append(prog.Packages, child.Text)
		case cst.KindHeaderExtension:
			prog.Extensions = append(prog.Extensions, child.Text)
		case cst.KindHeaderFlag:
			prog.Flags = append(prog.Flags, child.Text)
		case cst.KindDataSection:
			lowerDataSection(child, prog, bag)
		case cst.KindProcedureSection:
			lowerProcedureSection(child, prog, main, bag)
		}
	}

	lowerTemplates(templates, prog, bag)

	return prog, bag
}

func declType(typeName string) ldplast.Type {
	switch typeName {
	case "NUMBER":
		return ldplast.Number
	case "TEXT":
		return ldplast.Text
	case "NUMBER LIST":
		return ldplast.NumberList
	case "TEXT LIST":
		return ldplast.TextList
	case "NUMBER MAP":
		return ldplast.NumberMap
	case "TEXT MAP":
		return ldplast.TextMap
	default:
		return ldplast.TypeInvalid
	}
}

// splitDeclText recovers the name/type-name pair packed into a
// KindTypeDef/KindExternalTypeDef/KindParam/KindLocalVar node's Text by
// internal/parser's parseTypeDef (see decl.go: "name\x00typeName").
func splitDeclText(text string) (name, typeName string) {
	for i := 0; i < len(text); i++ {
		if text[i] == 0 {
			return text[:i], text[i+1:]
		}
	}
	return text, ""
}

func lowerDataSection(sec *cst.Node, prog *ldplast.Program, bag *diag.Bag) {
	for _, n := range sec.Children {
		name, typeName := splitDeclText(n.Text)
		t := declType(typeName)
		if t == ldplast.TypeInvalid {
			bag.Errorf(diag.PhaseSema, ldplerr.KindType, n.Span.Start(), "unrecognized type for %q", name)
			continue
		}
		v := &ldplast.Variable{
			Name:       name,
			Key:        token.Upper(name),
			Type:       t,
			Scope:      ldplast.ScopeGlobal,
			External:   n.Kind == cst.KindExternalTypeDef,
			DeclaredAt: n.Span.Start(),
		}
		if !prog.AddGlobal(v) {
			bag.Errorf(diag.PhaseSema, ldplerr.KindName, n.Span.Start(), "%q is already declared", name)
		}
	}
}

func lowerProcedureSection(sec *cst.Node, prog *ldplast.Program, main *ldplast.Sub, bag *diag.Bag) {
	for _, n := range sec.Children {
		if n.Kind == cst.KindSubDef {
			lowerSubDef(n, prog, bag)
			continue
		}
		sc := &scope{prog: prog, sub: main}
		if st := lowerStmt(n, sc, bag); st != nil {
			main.Body = append(main.Body, st)
		}
	}
}

func lowerSubDef(n *cst.Node, prog *ldplast.Program, bag *diag.Bag) {
	name, marker := splitDeclText(n.Text)
	sub := &ldplast.Sub{
		Name:       name,
		Key:        token.Upper(name),
		External:   marker == "EXTERNAL",
		DeclaredAt: n.Span.Start(),
	}

	sc := &scope{prog: prog, sub: sub}
	for _, child := range n.Children {
		switch child.Kind {
		case cst.KindParametersBlock:
			for _, pd := range child.Children {
				pname, ptypeName := splitDeclText(pd.Text)
				v := &ldplast.Variable{Name: pname, Key: token.Upper(pname), Type: declType(ptypeName), Scope: ldplast.ScopeParam, DeclaredAt: pd.Span.Start()}
				if !sub.AddParam(v) {
					bag.Errorf(diag.PhaseSema, ldplerr.KindName, pd.Span.Start(), "%q is already declared in %q", pname, name)
				}
			}
		case cst.KindLocalDataBlock:
			for _, ld := range child.Children {
				lname, ltypeName := splitDeclText(ld.Text)
				v := &ldplast.Variable{Name: lname, Key: token.Upper(lname), Type: declType(ltypeName), Scope: ldplast.ScopeLocal, DeclaredAt: ld.Span.Start()}
				if !sub.AddLocal(v) {
					bag.Errorf(diag.PhaseSema, ldplerr.KindName, ld.Span.Start(), "%q is already declared in %q", lname, name)
				}
			}
		default:
			if st := lowerStmt(child, sc, bag); st != nil {
				sub.Body = append(sub.Body, st)
			}
		}
	}

	if !prog.AddSub(sub) {
		bag.Errorf(diag.PhaseSema, ldplerr.KindName, n.Span.Start(), "sub-procedure %q is already declared", name)
	}
}

func lowerTemplates(templates []parser.Template, prog *ldplast.Program, bag *diag.Bag) {
	seen := map[string]bool{}
	for _, t := range templates {
		arity := 0
		var pat []ldplast.TemplatePart
		var key string
		for _, part := range t.Pattern {
			pat = append(pat, ldplast.TemplatePart{Literal: part.Literal, Slot: part.Slot})
			if part.Slot {
				arity++
				key += "$"
			} else {
				key += token.Upper(part.Literal) + " "
			}
		}
		if _, ok := prog.LookupSub(t.Sub); !ok {
			bag.Errorf(diag.PhaseSema, ldplerr.KindUserStmt, t.DeclaredAt, "CREATE STATEMENT executing undeclared sub-procedure %q", t.Sub)
		}
		if seen[key] {
			bag.Errorf(diag.PhaseSema, ldplerr.KindUserStmt, t.DeclaredAt, "duplicate CREATE STATEMENT pattern")
		}
		seen[key] = true
		prog.Templates = append(prog.Templates, &ldplast.Template{Pattern: pat, Sub: t.Sub, Arity: arity, DeclaredAt: t.DeclaredAt})
	}
}

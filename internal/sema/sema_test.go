// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package sema_test

import (
	"strings"
	"testing"

	"github.com/mdhender/ldplc/internal/ldplast"
	"github.com/mdhender/ldplc/internal/parser"
	"github.com/mdhender/ldplc/internal/scanner"
	"github.com/mdhender/ldplc/internal/sema"
)

func lower(t *testing.T, src string) *ldplast.Program {
	t.Helper()
	toks, errs := scanner.Lex("<test>", []byte(src))
	if len(errs) != 0 {
		t.Fatalf("Lex: unexpected errors: %v", errs)
	}
	file, templates, parseBag := parser.Parse("<test>", toks)
	if parseBag.HasErrors() {
		t.Fatalf("Parse: unexpected errors: %v", parseBag.All())
	}
	prog, semaBag := sema.Lower(file, templates)
	if semaBag.HasErrors() {
		t.Fatalf("Lower: unexpected errors: %v", semaBag.All())
	}
	return prog
}

// TestLower_StoreAndDisplay exercises spec.md's first literal end-to-end
// scenario: DATA:/x IS NUMBER, PROCEDURE:/STORE 42 IN x, DISPLAY x CRLF.
func TestLower_StoreAndDisplay(t *testing.T) {
	src := "DATA:\n  x IS NUMBER\nPROCEDURE:\n  STORE 42 IN x\n  DISPLAY x CRLF\n"
	prog := lower(t, src)

	x, ok := prog.LookupGlobal("x")
	if !ok {
		t.Fatalf("global %q not declared", "x")
	}
	if x.Type != ldplast.Number {
		t.Fatalf("x.Type: want NUMBER, got %s", x.Type)
	}

	main, ok := prog.LookupSub("main")
	if !ok {
		t.Fatalf("synthetic main sub not found")
	}
	if len(main.Body) != 2 {
		t.Fatalf("main.Body: want 2 statements, got %d", len(main.Body))
	}

	store := main.Body[0]
	if store.Kind != ldplast.StmtStore {
		t.Fatalf("main.Body[0].Kind: want StmtStore, got %v", store.Kind)
	}
	if store.Target.Var != x {
		t.Fatalf("STORE target: want %q, got a different variable", x.Name)
	}
	if store.Source.Kind != ldplast.ExprNumber || store.Source.NumberValue != 42 {
		t.Fatalf("STORE source: want the number literal 42, got %#v", store.Source)
	}

	display := main.Body[1]
	if display.Kind != ldplast.StmtDisplay {
		t.Fatalf("main.Body[1].Kind: want StmtDisplay, got %v", display.Kind)
	}
	if len(display.Args) != 2 {
		t.Fatalf("DISPLAY args: want 2 (x, CRLF), got %d", len(display.Args))
	}
	if display.Args[0].Var != x {
		t.Fatalf("DISPLAY first arg: want %q", x.Name)
	}
	if display.Args[1].Kind != ldplast.ExprLinefeed || display.Args[1].TextValue != "\r\n" {
		t.Fatalf("DISPLAY second arg: want a CRLF literal, got %#v", display.Args[1])
	}
}

// TestLower_ForLoop exercises spec.md's FOR literal scenario: FOR i FROM 1
// TO 3 STEP 1 DO ... REPEAT.
func TestLower_ForLoop(t *testing.T) {
	src := "DATA:\n  i IS NUMBER\nPROCEDURE:\n  FOR i FROM 1 TO 3 STEP 1 DO\n    DISPLAY i\n  REPEAT\n"
	prog := lower(t, src)

	main, _ := prog.LookupSub("main")
	if len(main.Body) != 1 {
		t.Fatalf("main.Body: want 1 statement, got %d", len(main.Body))
	}
	forStmt := main.Body[0]
	if forStmt.Kind != ldplast.StmtFor {
		t.Fatalf("main.Body[0].Kind: want StmtFor, got %v", forStmt.Kind)
	}
	if forStmt.ForVar == nil || forStmt.ForVar.Name != "i" {
		t.Fatalf("FOR loop variable: want %q", "i")
	}
	if forStmt.From.NumberValue != 1 || forStmt.To.NumberValue != 3 {
		t.Fatalf("FOR bounds: want 1..3, got %v..%v", forStmt.From.NumberValue, forStmt.To.NumberValue)
	}
	if len(forStmt.Body) != 1 || forStmt.Body[0].Kind != ldplast.StmtDisplay {
		t.Fatalf("FOR body: want a single DISPLAY statement")
	}
}

// TestLower_UndeclaredIdentifier confirms sema reports an error (rather
// than halting the whole pipeline) for an identifier never declared in
// DATA:, matching spec.md §7's "collect everything" policy.
func TestLower_UndeclaredIdentifier(t *testing.T) {
	src := "PROCEDURE:\n  STORE 1 IN x\n"
	toks, errs := scanner.Lex("<test>", []byte(src))
	if len(errs) != 0 {
		t.Fatalf("Lex: unexpected errors: %v", errs)
	}
	file, templates, parseBag := parser.Parse("<test>", toks)
	if parseBag.HasErrors() {
		t.Fatalf("Parse: unexpected errors: %v", parseBag.All())
	}
	_, semaBag := sema.Lower(file, templates)
	if !semaBag.HasErrors() {
		t.Fatalf("Lower: expected an undeclared-identifier error, got none")
	}
	found := false
	for _, d := range semaBag.All() {
		if strings.Contains(d.Msg, "undeclared identifier") {
			found = true
		}
	}
	if !found {
		t.Fatalf("Lower: expected an 'undeclared identifier' diagnostic, got %v", semaBag.All())
	}
}

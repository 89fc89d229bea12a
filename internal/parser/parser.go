// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package parser is a packrat-style recognizer over the spliced LDPL
// token stream. It mirrors the teacher's Builder/Sink split
// (internal/grammar/builder.go, builder_sink.go): Parse walks tokens and
// emits cst.Node values, collecting diag.Diagnostic values into a bag
// instead of failing on the first error, the same "construction API
// separate from recognition" shape.
package parser

import (
	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/diag"
	"github.com/mdhender/ldplc/internal/ldplerr"
	"github.com/mdhender/ldplc/internal/token"
)

// Parser consumes a line-oriented view of the token stream: one []token.Token
// per EOL-delimited statement, with the EOL marker itself stripped. Blank
// lines are never produced by internal/scanner/lex.go, so every line here
// holds at least one token.
type Parser struct {
	lines [][]token.Token
	li    int // index of the current line

	bag *diag.Bag

	// Templates registers CREATE STATEMENT patterns in declaration order,
	// consulted (longest literal-prefix first) once built-in dispatch
	// fails on a PROCEDURE: line, per spec.md §4.1's "built-ins tried
	// first" rule.
	Templates []Template
}

// Template is a registered CREATE STATEMENT user-defined statement,
// recognized by parser.Parse and handed to internal/sema for validation
// (undefined sub, literal/slot collisions) once the whole file is seen.
type Template struct {
	Pattern    []TemplatePart
	Sub        string
	DeclaredAt token.Position
}

// TemplatePart is one element of a tokenized CREATE STATEMENT pattern
// string: either a literal word or (Slot == true) an expression slot,
// denoted '$' in the pattern's surface syntax (spec.md §4.2).
type TemplatePart struct {
	Literal string
	Slot    bool
}

// Parse splits tokens into statement lines and recognizes the top-level
// program := header_stmt* data_section? procedure_section? grammar
// (spec.md §6). It never returns a nil *cst.Node: on unrecoverable input
// (e.g. no PROCEDURE: section at all) it still returns the partial file
// node alongside whatever diagnostics were collected.
func Parse(filename string, tokens []token.Token) (*cst.Node, []Template, *diag.Bag) {
	p := &Parser{bag: &diag.Bag{}}
	p.lines = splitLines(tokens)

	file := &cst.Node{Kind: cst.KindFile, Span: cst.Span{File: filename}}

	for p.more() && p.atHeaderStmt() {
		if n := p.parseHeaderStmt(); n != nil {
			file.Children = append(file.Children, n)
		}
	}

	if p.more() && p.peekIs(0, "DATA:") {
		file.Children = append(file.Children, p.parseDataSection())
	}

	if p.more() && p.peekIs(0, "PROCEDURE:") {
		file.Children = append(file.Children, p.parseProcedureSection())
	}

	for p.more() {
		ln := p.line()
		p.errf(ln[0].Pos, ldplerr.KindParse, "unexpected input at top level: %s", ln[0].Text)
		p.li++
	}

	return file, p.Templates, p.bag
}

// --- line cursor ---

func splitLines(tokens []token.Token) [][]token.Token {
	var lines [][]token.Token
	var cur []token.Token
	for _, t := range tokens {
		switch t.Kind {
		case token.EOF:
			if len(cur) > 0 {
				lines = append(lines, cur)
			}
			return lines
		case token.EOL:
			if len(cur) > 0 {
				lines = append(lines, cur)
				cur = nil
			}
		default:
			cur = append(cur, t)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func (p *Parser) more() bool { return p.li < len(p.lines) }

func (p *Parser) line() []token.Token {
	if !p.more() {
		return nil
	}
	return p.lines[p.li]
}

// peekIs reports whether the token at index idx of the current line is an
// IDENT case-insensitively equal to word, tolerating a trailing ':' fused
// onto section headers like "DATA:" (the scanner lexes the colon as its
// own COLON token, so "DATA:" arrives as IDENT("DATA") COLON).
func (p *Parser) peekIs(idx int, word string) bool {
	ln := p.line()
	if ln == nil {
		return false
	}
	if len(word) > 0 && word[len(word)-1] == ':' {
		base := word[:len(word)-1]
		return idx+1 < len(ln) && ln[idx].Kind == token.IDENT && token.EqualFold(ln[idx].Text, base) && ln[idx+1].Kind == token.COLON
	}
	return idx < len(ln) && ln[idx].Kind == token.IDENT && token.EqualFold(ln[idx].Text, word)
}

// matchWords reports whether the current line's leading tokens spell out
// words (case-insensitively, one IDENT per word) and, if so, advances past
// them and returns true.
func (p *Parser) matchWords(words ...string) bool {
	ln := p.line()
	if len(ln) < len(words) {
		return false
	}
	for i, w := range words {
		if ln[i].Kind != token.IDENT || !token.EqualFold(ln[i].Text, w) {
			return false
		}
	}
	p.lines[p.li] = ln[len(words):]
	return true
}

// matchHyphenated matches a fixed hyphenated keyword spelling like
// "SUB-PROCEDURE" or "END-IF" against the current line. The scanner lexes
// '-' as its own MINUS token regardless of context (spec.md §4.1 gives
// identifiers and arithmetic operators overlapping character classes;
// this reimplementation resolves the ambiguity by always tokenizing '-'
// standalone and re-fusing known hyphenated keywords here, at the one
// layer that knows which spellings are reserved), so "SUB-PROCEDURE"
// arrives as IDENT("SUB") MINUS IDENT("PROCEDURE").
func (p *Parser) matchHyphenated(words ...string) bool {
	ln := p.line()
	need := len(words)*2 - 1
	if len(ln) < need {
		return false
	}
	for i, w := range words {
		idx := i * 2
		if ln[idx].Kind != token.IDENT || !token.EqualFold(ln[idx].Text, w) {
			return false
		}
		if i < len(words)-1 && ln[idx+1].Kind != token.MINUS {
			return false
		}
	}
	p.lines[p.li] = ln[need:]
	return true
}

func (p *Parser) peekHyphenated(words ...string) bool {
	save := p.lines[p.li]
	ok := p.matchHyphenated(words...)
	p.lines[p.li] = save
	return ok
}

func (p *Parser) errf(pos token.Position, kind ldplerr.Kind, format string, args ...any) {
	p.bag.Errorf(diag.PhaseParse, kind, pos, format, args...)
}

// consumeSection matches a (possibly multi-word) section header like
// "DATA:", "PROCEDURE:", "PARAMETERS:", or "LOCAL DATA:" at the start of
// the current line and advances past it, or leaves the cursor untouched
// and returns false.
func (p *Parser) consumeSection(words ...string) bool {
	ln := p.line()
	need := len(words) + 1 // words..., then COLON
	if len(ln) < need {
		return false
	}
	for i, w := range words {
		if ln[i].Kind != token.IDENT || !token.EqualFold(ln[i].Text, w) {
			return false
		}
	}
	if ln[len(words)].Kind != token.COLON {
		return false
	}
	p.lines[p.li] = ln[need:]
	if len(p.lines[p.li]) == 0 {
		p.li++
	}
	return true
}

func (p *Parser) atHeaderStmt() bool {
	return p.peekIs(0, "INCLUDE") || p.peekIs(0, "USING") || p.peekIs(0, "EXTENSION") || p.peekIs(0, "FLAG")
}

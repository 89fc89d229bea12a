// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/ldplerr"
	"github.com/mdhender/ldplc/internal/token"
)

// parseHeaderStmt recognizes one of INCLUDE / USING PACKAGE / EXTENSION /
// FLAG, per spec.md §6's header_stmt alternatives. INCLUDE itself never
// reaches here: internal/source splices it away before tokenizing, so the
// only survivors are the three pass-through forms.
func (p *Parser) parseHeaderStmt() *cst.Node {
	ln := p.line()
	pos := ln[0].Pos

	switch {
	case p.matchWords("USING", "PACKAGE"):
		return p.finishHeaderStmt(cst.KindHeaderUsingPackage, pos)
	case p.matchWords("EXTENSION"):
		return p.finishHeaderStmt(cst.KindHeaderExtension, pos)
	case p.matchWords("FLAG"):
		return p.finishHeaderStmt(cst.KindHeaderFlag, pos)
	case p.matchWords("INCLUDE"):
		// Already spliced away; a literal INCLUDE surviving to here means
		// internal/source failed to resolve it silently. Treat it as a
		// pass-through no-op rather than a hard error: sema never looks at it.
		p.li++
		return nil
	default:
		p.errf(pos, ldplerr.KindParse, "malformed header statement")
		p.li++
		return nil
	}
}

func (p *Parser) finishHeaderStmt(kind cst.Kind, pos token.Position) *cst.Node {
	ln := p.line()
	var text string
	if len(ln) > 0 && ln[0].Kind == token.TEXT {
		text = ln[0].Text
	} else {
		p.errf(pos, ldplerr.KindParse, "expected a quoted string")
	}
	p.li++
	return &cst.Node{Kind: kind, Span: cst.Span{File: pos.File, StartLine: pos.Line, StartColumn: pos.Column}, Text: text}
}

// parseDataSection recognizes "DATA:" followed by a run of type_def /
// external_type_def lines, each "<name> IS [EXTERNAL] <type>".
func (p *Parser) parseDataSection() *cst.Node {
	pos := p.line()[0].Pos
	p.consumeSection("DATA")
	sec := &cst.Node{Kind: cst.KindDataSection, Span: cst.Span{File: pos.File, StartLine: pos.Line, StartColumn: pos.Column}}
	for p.more() && !p.peekIs(0, "PROCEDURE:") {
		if n := p.parseTypeDef(); n != nil {
			sec.Children = append(sec.Children, n)
		}
	}
	return sec
}

// parseTypeDef parses one "<name> IS [EXTERNAL] <type>" line, rejecting
// "LIST OF"/"MAP OF" nested-collection forms per spec.md §9's open
// question: this dialect defers them and must reject with a diagnostic
// rather than silently accept.
func (p *Parser) parseTypeDef() *cst.Node {
	ln := p.line()
	if len(ln) < 1 || ln[0].Kind != token.IDENT {
		p.errf(ln[0].Pos, ldplerr.KindParse, "expected a variable declaration")
		p.li++
		return nil
	}
	name := ln[0].Text
	pos := ln[0].Pos
	p.lines[p.li] = ln[1:]

	if !p.matchWords("IS") {
		p.errf(pos, ldplerr.KindParse, "expected IS after %q", name)
		p.li++
		return nil
	}

	external := p.matchWords("EXTERNAL")

	typeName, rest, ok := p.parseTypeName()
	if !ok {
		p.errf(pos, ldplerr.KindParse, "expected a type after IS")
		p.li++
		return nil
	}
	if len(rest) != 0 {
		p.errf(rest[0].Pos, ldplerr.KindParse, "unexpected trailing tokens in variable declaration")
	}
	p.li++

	kind := cst.KindTypeDef
	if external {
		kind = cst.KindExternalTypeDef
	}
	return &cst.Node{
		Kind: kind,
		Span: cst.Span{File: pos.File, StartLine: pos.Line, StartColumn: pos.Column},
		Text: name + "\x00" + typeName, // name and type-name packed; sema splits on NUL
	}
}

// parseTypeName consumes a type expression from the front of the current
// line and returns its canonical spelling ("NUMBER", "TEXT", "NUMBER LIST",
// "TEXT MAP", ...) plus whatever tokens remain. "NUMBER VECTOR"/"TEXT
// VECTOR" are accepted and normalized to the LIST spelling (spec.md §3's
// deprecated-alias rule). "LIST OF"/"MAP OF" is rejected outright.
func (p *Parser) parseTypeName() (string, []token.Token, bool) {
	ln := p.line()
	if len(ln) == 0 || ln[0].Kind != token.IDENT {
		return "", ln, false
	}
	base := ln[0].Text
	switch {
	case token.EqualFold(base, "NUMBER"):
		if len(ln) >= 2 && ln[1].Kind == token.IDENT {
			switch {
			case token.EqualFold(ln[1].Text, "LIST"), token.EqualFold(ln[1].Text, "VECTOR"):
				return "NUMBER LIST", ln[2:], true
			case token.EqualFold(ln[1].Text, "MAP"):
				return "NUMBER MAP", ln[2:], true
			case token.EqualFold(ln[1].Text, "OF"):
				p.errf(ln[0].Pos, ldplerr.KindParse, "nested collection types (\"NUMBER OF ...\") are not supported")
				return "", ln, false
			}
		}
		return "NUMBER", ln[1:], true
	case token.EqualFold(base, "TEXT"):
		if len(ln) >= 2 && ln[1].Kind == token.IDENT {
			switch {
			case token.EqualFold(ln[1].Text, "LIST"), token.EqualFold(ln[1].Text, "VECTOR"):
				return "TEXT LIST", ln[2:], true
			case token.EqualFold(ln[1].Text, "MAP"):
				return "TEXT MAP", ln[2:], true
			case token.EqualFold(ln[1].Text, "OF"):
				p.errf(ln[0].Pos, ldplerr.KindParse, "nested collection types (\"TEXT OF ...\") are not supported")
				return "", ln, false
			}
		}
		return "TEXT", ln[1:], true
	case token.EqualFold(base, "LIST"), token.EqualFold(base, "MAP"):
		p.errf(ln[0].Pos, ldplerr.KindParse, "%q OF ... nested collection types are not supported", base)
		return "", ln, false
	default:
		return "", ln, false
	}
}

// parseProcedureSection recognizes "PROCEDURE:" followed by a run of
// proc_stmt (sub-procedure definitions and plain statements).
func (p *Parser) parseProcedureSection() *cst.Node {
	pos := p.line()[0].Pos
	p.consumeSection("PROCEDURE")
	sec := &cst.Node{Kind: cst.KindProcedureSection, Span: cst.Span{File: pos.File, StartLine: pos.Line, StartColumn: pos.Column}}

	for p.more() {
		if p.peekHyphenated("SUB", "PROCEDURE") || p.peekIs(0, "SUB") {
			sec.Children = append(sec.Children, p.parseSubDef())
			continue
		}
		if n := p.parseStmt(); n != nil {
			sec.Children = append(sec.Children, n)
		}
	}
	return sec
}

// parseSubDef recognizes:
//
//	SUB-PROCEDURE <name> [EXTERNAL]
//	[PARAMETERS: (<name> IS <type>)*]
//	[LOCAL DATA: (<name> IS <type>)*]
//	<statements>
//	END SUB-PROCEDURE | END SUB
func (p *Parser) parseSubDef() *cst.Node {
	ln := p.line()
	pos := ln[0].Pos
	if !p.matchHyphenated("SUB", "PROCEDURE") {
		p.matchWords("SUB")
	}
	ln = p.line()
	if len(ln) == 0 || ln[0].Kind != token.IDENT {
		p.errf(pos, ldplerr.KindParse, "expected a sub-procedure name")
		p.li++
		return &cst.Node{Kind: cst.KindSubDef, Span: cst.Span{File: pos.File, StartLine: pos.Line}}
	}
	name := ln[0].Text
	p.lines[p.li] = ln[1:]
	external := p.matchWords("EXTERNAL")
	p.li++

	def := &cst.Node{Kind: cst.KindSubDef, Span: cst.Span{File: pos.File, StartLine: pos.Line, StartColumn: pos.Column}, Text: name}
	if external {
		def.Text = name + "\x00EXTERNAL"
	}

	if p.more() && p.peekIs(0, "PARAMETERS:") {
		def.Children = append(def.Children, p.parseParamOrLocalBlock(cst.KindParametersBlock, "PARAMETERS"))
	}
	if p.more() && p.peekIs(0, "LOCAL") {
		def.Children = append(def.Children, p.parseParamOrLocalBlock(cst.KindLocalDataBlock, "LOCAL", "DATA"))
	}

	for p.more() && !p.atSubTerminator() {
		if p.peekHyphenated("SUB", "PROCEDURE") || p.peekIs(0, "SUB") {
			// Nested sub defs are not part of the grammar; stop here and
			// let the enclosing PROCEDURE: loop pick it up, rather than
			// silently nesting.
			break
		}
		if n := p.parseStmt(); n != nil {
			def.Children = append(def.Children, n)
		}
	}
	if p.more() && p.atSubTerminator() {
		p.li++
	} else {
		p.errf(pos, ldplerr.KindParse, "unterminated sub-procedure %q", name)
	}
	return def
}

func (p *Parser) atSubTerminator() bool {
	ln := p.line()
	if len(ln) < 2 || ln[0].Kind != token.IDENT || !token.EqualFold(ln[0].Text, "END") {
		return false
	}
	if token.EqualFold(ln[1].Text, "SUB") {
		return true
	}
	return p.peekHyphenatedAt(1, "SUB", "PROCEDURE")
}

// peekHyphenatedAt checks a hyphenated keyword starting at line offset
// off without disturbing the cursor.
func (p *Parser) peekHyphenatedAt(off int, words ...string) bool {
	ln := p.line()
	need := off + len(words)*2 - 1
	if len(ln) < need {
		return false
	}
	for i, w := range words {
		idx := off + i*2
		if ln[idx].Kind != token.IDENT || !token.EqualFold(ln[idx].Text, w) {
			return false
		}
		if i < len(words)-1 && ln[idx+1].Kind != token.MINUS {
			return false
		}
	}
	return true
}

func (p *Parser) parseParamOrLocalBlock(kind cst.Kind, headerWords ...string) *cst.Node {
	pos := p.line()[0].Pos
	p.consumeSection(headerWords...)
	blk := &cst.Node{Kind: kind, Span: cst.Span{File: pos.File, StartLine: pos.Line, StartColumn: pos.Column}}
	for p.more() && p.looksLikeVarDecl() {
		if n := p.parseTypeDef(); n != nil {
			n.Kind = cst.KindParam
			if kind == cst.KindLocalDataBlock {
				n.Kind = cst.KindLocalVar
			}
			blk.Children = append(blk.Children, n)
		}
	}
	return blk
}

// looksLikeVarDecl reports whether the current line has the shape
// "<ident> IS ...", distinguishing a PARAMETERS:/LOCAL DATA: entry from
// whatever follows the block (PROCEDURE: or the first statement).
func (p *Parser) looksLikeVarDecl() bool {
	ln := p.line()
	return len(ln) >= 2 && ln[0].Kind == token.IDENT && ln[1].Kind == token.IDENT && token.EqualFold(ln[1].Text, "IS") && !p.peekIs(0, "PROCEDURE:")
}

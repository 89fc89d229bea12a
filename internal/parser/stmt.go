// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/ldplerr"
	"github.com/mdhender/ldplc/internal/token"
)

// parseStmt recognizes one proc_stmt: a built-in statement tried first
// (longest-keyword-prefix wins among built-ins), then a registered
// CREATE STATEMENT template, per spec.md §4.1's dispatch rule. Always
// advances at least one line, so callers looping on p.more() terminate.
func (p *Parser) parseStmt() *cst.Node {
	ln := p.line()
	if len(ln) == 0 {
		p.li++
		return nil
	}
	pos := ln[0].Pos

	if ln[0].Kind == token.IDENT {
		switch {
		case token.EqualFold(ln[0].Text, "STORE"):
			return p.parseStore()
		case token.EqualFold(ln[0].Text, "IN"):
			return p.parseSolveStmt()
		case token.EqualFold(ln[0].Text, "FLOOR"):
			return p.parseFloor()
		case token.EqualFold(ln[0].Text, "IF"):
			return p.parseIf()
		case token.EqualFold(ln[0].Text, "WHILE"):
			return p.parseWhile()
		case token.EqualFold(ln[0].Text, "FOR"):
			return p.parseForOrForEach()
		case token.EqualFold(ln[0].Text, "BREAK"):
			p.matchWords("BREAK")
			p.li++
			return &cst.Node{Kind: cst.KindBreak, Span: posSpan(pos)}
		case token.EqualFold(ln[0].Text, "CONTINUE"):
			p.matchWords("CONTINUE")
			p.li++
			return &cst.Node{Kind: cst.KindContinue, Span: posSpan(pos)}
		case token.EqualFold(ln[0].Text, "RETURN"):
			p.matchWords("RETURN")
			p.li++
			return &cst.Node{Kind: cst.KindReturn, Span: posSpan(pos)}
		case token.EqualFold(ln[0].Text, "EXIT"):
			p.matchWords("EXIT")
			p.li++
			return &cst.Node{Kind: cst.KindExit, Span: posSpan(pos)}
		case token.EqualFold(ln[0].Text, "GOTO"):
			return p.parseLabelRef(cst.KindGoto, "GOTO")
		case token.EqualFold(ln[0].Text, "LABEL"):
			return p.parseLabelRef(cst.KindLabel, "LABEL")
		case token.EqualFold(ln[0].Text, "WAIT"):
			return p.parseWait()
		case token.EqualFold(ln[0].Text, "CALL"):
			return p.parseCall()
		case token.EqualFold(ln[0].Text, "DISPLAY"):
			return p.parseDisplay()
		case token.EqualFold(ln[0].Text, "ACCEPT"):
			return p.parseAccept()
		case token.EqualFold(ln[0].Text, "LOAD"):
			return p.parseLoadFile()
		case token.EqualFold(ln[0].Text, "WRITE"):
			return p.parseFileIO(cst.KindWriteFile, "WRITE")
		case token.EqualFold(ln[0].Text, "APPEND"):
			return p.parseFileIO(cst.KindAppendFile, "APPEND")
		case token.EqualFold(ln[0].Text, "EXECUTE"):
			return p.parseExecute()
		case token.EqualFold(ln[0].Text, "JOIN"):
			return p.parseJoin()
		case token.EqualFold(ln[0].Text, "REPLACE"):
			return p.parseReplace()
		case token.EqualFold(ln[0].Text, "SPLIT"):
			return p.parseSplit()
		case token.EqualFold(ln[0].Text, "GET"):
			return p.parseGet()
		case token.EqualFold(ln[0].Text, "COUNT"):
			return p.parseCount()
		case token.EqualFold(ln[0].Text, "SUBSTRING"):
			return p.parseSubstring()
		case token.EqualFold(ln[0].Text, "TRIM"):
			return p.parseTrim()
		case token.EqualFold(ln[0].Text, "PUSH"):
			return p.parsePush()
		case token.EqualFold(ln[0].Text, "DELETE"):
			return p.parseDeleteLast()
		case token.EqualFold(ln[0].Text, "CLEAR"):
			return p.parseClear()
		case token.EqualFold(ln[0].Text, "COPY"):
			return p.parseCopy()
		case token.EqualFold(ln[0].Text, "CREATE"):
			return p.parseCreateStatement()
		}
	}

	if n, ok := p.tryTemplate(); ok {
		return n
	}

	p.errf(pos, ldplerr.KindUserStmt, "unrecognized statement")
	p.li++
	return nil
}

func posSpan(pos token.Position) cst.Span {
	return cst.Span{File: pos.File, StartLine: pos.Line, StartColumn: pos.Column}
}

// expectExpr parses one value expression or records a parse error and
// returns a placeholder invalid node, so callers can keep building a
// well-formed (if semantically empty) CST node.
func (p *Parser) expectExpr(pos token.Position, what string) *cst.Node {
	n, ok := p.parseExpr()
	if !ok {
		p.errf(pos, ldplerr.KindParse, "expected %s", what)
		return &cst.Node{Kind: cst.KindInvalid, Span: posSpan(pos)}
	}
	return n
}

func (p *Parser) parseStore() *cst.Node {
	ln := p.line()
	pos := ln[0].Pos
	p.matchWords("STORE")

	// "STORE QUOTE" lines are special-cased by internal/scanner/lex.go:
	// Lex appends the captured multiline body as a TEXT token right after
	// the "QUOTE IN <var>" tokens, so the shape here is
	// QUOTE IN <var> <TEXT-body>, not the usual <expr> IN <var>.
	if p.matchWords("QUOTE") {
		if !p.matchWords("IN") {
			p.errf(pos, ldplerr.KindParse, "expected IN after STORE QUOTE")
		}
		target := p.expectOnlyVarRef(pos)
		body := p.expectExpr(pos, "the captured quote body")
		p.li++
		return &cst.Node{Kind: cst.KindStore, Span: posSpan(pos), Children: []*cst.Node{body, target}}
	}

	src := p.expectExpr(pos, "a value expression after STORE")
	if !p.matchWords("IN") {
		p.errf(pos, ldplerr.KindParse, "expected IN after STORE <expr>")
	}
	target := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindStore, Span: posSpan(pos), Children: []*cst.Node{src, target}}
}

// expectOnlyVarRef parses a variable reference / lookup in assignment-
// target position.
func (p *Parser) expectOnlyVarRef(pos token.Position) *cst.Node {
	n, ok := p.parseExpr()
	if !ok || (n.Kind != cst.KindVarRef && n.Kind != cst.KindLookup) {
		p.errf(pos, ldplerr.KindParse, "expected a variable reference")
		return &cst.Node{Kind: cst.KindInvalid, Span: posSpan(pos)}
	}
	return n
}

func (p *Parser) parseSolveStmt() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("IN")
	target := p.expectOnlyVarRef(pos)
	if !p.matchWords("SOLVE") {
		p.errf(pos, ldplerr.KindParse, "expected SOLVE after IN <var>")
		p.li++
		return &cst.Node{Kind: cst.KindSolve, Span: posSpan(pos), Children: []*cst.Node{target}}
	}
	tree, ok := p.collectSolveItems()
	p.li++
	if !ok {
		p.errf(pos, ldplerr.KindParse, "malformed arithmetic expression")
		return &cst.Node{Kind: cst.KindSolve, Span: posSpan(pos), Children: []*cst.Node{target}}
	}
	return &cst.Node{Kind: cst.KindSolve, Span: posSpan(pos), Children: []*cst.Node{target, tree}}
}

func (p *Parser) parseFloor() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("FLOOR")
	e := p.expectExpr(pos, "an expression after FLOOR")
	n := &cst.Node{Kind: cst.KindFloor, Span: posSpan(pos), Children: []*cst.Node{e}}
	if p.matchWords("IN") {
		n.Children = append(n.Children, p.expectOnlyVarRef(pos))
	}
	p.li++
	return n
}

func (p *Parser) parseLabelRef(kind cst.Kind, word string) *cst.Node {
	ln := p.line()
	pos := ln[0].Pos
	p.matchWords(word)
	ln = p.line()
	var name string
	if len(ln) > 0 && ln[0].Kind == token.IDENT {
		name = ln[0].Text
		p.lines[p.li] = ln[1:]
	} else {
		p.errf(pos, ldplerr.KindParse, "expected a label name after %s", word)
	}
	p.li++
	return &cst.Node{Kind: kind, Span: posSpan(pos), Text: name}
}

func (p *Parser) parseWait() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("WAIT")
	n := p.expectExpr(pos, "a duration after WAIT")
	p.matchWords("MILLISECONDS")
	p.li++
	return &cst.Node{Kind: cst.KindWait, Span: posSpan(pos), Children: []*cst.Node{n}}
}

func (p *Parser) parseCall() *cst.Node {
	ln := p.line()
	pos := ln[0].Pos
	p.matchWords("CALL")

	external := p.matchWords("EXTERNAL")
	ln = p.line()
	if len(ln) == 0 || ln[0].Kind != token.IDENT {
		p.errf(pos, ldplerr.KindParse, "expected a sub-procedure name after CALL")
		p.li++
		return &cst.Node{Kind: cst.KindCall, Span: posSpan(pos)}
	}
	name := ln[0].Text
	p.lines[p.li] = ln[1:]

	kind := cst.KindCall
	if external {
		kind = cst.KindCallExternal
	}
	n := &cst.Node{Kind: kind, Span: posSpan(pos), Text: name}
	if p.matchWords("WITH") {
		n.Children = p.parseExprList()
	}
	p.li++
	return n
}

func (p *Parser) parseDisplay() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("DISPLAY")
	args := p.parseExprList()
	p.li++
	return &cst.Node{Kind: cst.KindDisplay, Span: posSpan(pos), Children: args}
}

func (p *Parser) parseAccept() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("ACCEPT")
	target := p.expectOnlyVarRef(pos)
	n := &cst.Node{Kind: cst.KindAccept, Span: posSpan(pos), Children: []*cst.Node{target}}
	if p.matchWords("UNTIL", "EOF") {
		n.Text = "UNTIL-EOF"
	}
	p.li++
	return n
}

func (p *Parser) parseLoadFile() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("LOAD", "FILE")
	path := p.expectExpr(pos, "a file path after LOAD FILE")
	p.matchWords("IN")
	target := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindLoadFile, Span: posSpan(pos), Children: []*cst.Node{path, target}}
}

// parseFileIO handles "WRITE <expr> TO FILE <expr>" and
// "APPEND <expr> TO FILE <expr>".
func (p *Parser) parseFileIO(kind cst.Kind, word string) *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords(word)
	data := p.expectExpr(pos, "a value expression after "+word)
	p.matchWords("TO", "FILE")
	path := p.expectExpr(pos, "a file path")
	p.li++
	return &cst.Node{Kind: kind, Span: posSpan(pos), Children: []*cst.Node{data, path}}
}

func (p *Parser) parseExecute() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("EXECUTE")
	cmd := p.expectExpr(pos, "a command expression after EXECUTE")
	n := &cst.Node{Kind: cst.KindExecute, Span: posSpan(pos), Children: []*cst.Node{cmd}}
	if p.matchWords("AND", "STORE") {
		switch {
		case p.matchWords("OUTPUT"):
			n.Text = "OUTPUT"
		case p.matchWords("EXIT", "CODE"):
			n.Text = "EXIT-CODE"
		default:
			p.errf(pos, ldplerr.KindParse, "expected OUTPUT or EXIT CODE after AND STORE")
		}
		p.matchWords("IN")
		n.Children = append(n.Children, p.expectOnlyVarRef(pos))
	}
	p.li++
	return n
}

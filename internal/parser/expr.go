// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/ldplerr"
	"github.com/mdhender/ldplc/internal/solve"
	"github.com/mdhender/ldplc/internal/token"
)

// parseExpr recognizes one value expression from the front of the current
// line and advances past it: a number literal, a text literal, the LF/CRLF
// linefeed literal, or a variable reference optionally followed by one or
// more ':'-separated lookups (spec.md §3's value-expression grammar).
// Returns nil, false if the line doesn't start with a value expression.
func (p *Parser) parseExpr() (*cst.Node, bool) {
	ln := p.line()
	if len(ln) == 0 {
		return nil, false
	}
	t := ln[0]

	switch t.Kind {
	case token.NUMBER:
		p.lines[p.li] = ln[1:]
		return &cst.Node{Kind: cst.KindNumberLit, Span: leafSpan(t), Text: t.Text}, true

	case token.TEXT:
		p.lines[p.li] = ln[1:]
		return &cst.Node{Kind: cst.KindTextLit, Span: leafSpan(t), Text: t.Text}, true

	case token.MINUS:
		// A bare leading '-' only ever appears as SOLVE's unary sign; a
		// plain value-expression position never starts with one.
		return nil, false

	case token.IDENT:
		if token.EqualFold(t.Text, "LF") {
			p.lines[p.li] = ln[1:]
			return &cst.Node{Kind: cst.KindLinefeedLit, Span: leafSpan(t), Text: "\n"}, true
		}
		if token.EqualFold(t.Text, "CRLF") {
			p.lines[p.li] = ln[1:]
			return &cst.Node{Kind: cst.KindLinefeedLit, Span: leafSpan(t), Text: "\r\n"}, true
		}
		return p.parseVarRefOrLookup()
	}
	return nil, false
}

func leafSpan(t token.Token) cst.Span {
	return cst.Span{File: t.Pos.File, StartLine: t.Pos.Line, StartColumn: t.Pos.Column, EndLine: t.Pos.Line}
}

// parseVarRefOrLookup consumes "<ident>" or "<ident>(:<index>)+", where
// each index is itself a value expression (spec.md §3 restricts index
// expressions to NUMBER or TEXT, enforced later by internal/sema).
func (p *Parser) parseVarRefOrLookup() (*cst.Node, bool) {
	ln := p.line()
	name := ln[0].Text
	pos := ln[0].Pos
	p.lines[p.li] = ln[1:]

	base := &cst.Node{Kind: cst.KindVarRef, Span: leafSpan(ln[0]), Text: name}
	if !p.peekColon() {
		return base, true
	}

	lookup := &cst.Node{Kind: cst.KindLookup, Span: cst.Span{File: pos.File, StartLine: pos.Line, StartColumn: pos.Column}, Children: []*cst.Node{base}}
	for p.peekColon() {
		p.lines[p.li] = p.line()[1:] // consume ':'
		if ix := p.line(); len(ix) > 0 && ix[0].Kind == token.IDENT &&
			!token.EqualFold(ix[0].Text, "LF") && !token.EqualFold(ix[0].Text, "CRLF") {
			// A variable index is a plain reference: a following ':' starts
			// the next lookup segment instead of indexing that variable.
			lookup.Children = append(lookup.Children, &cst.Node{Kind: cst.KindVarRef, Span: leafSpan(ix[0]), Text: ix[0].Text})
			p.lines[p.li] = ix[1:]
			continue
		}
		idx, ok := p.parseExpr()
		if !ok {
			p.errf(pos, ldplerr.KindParse, "expected an index expression after ':'")
			break
		}
		lookup.Children = append(lookup.Children, idx)
	}
	return lookup, true
}

func (p *Parser) peekColon() bool {
	ln := p.line()
	return len(ln) > 0 && ln[0].Kind == token.COLON
}

// parseExprList consumes a run of value expressions with no separator
// between them, used by DISPLAY (spec.md §4.4: "sequential writes to
// stdout without separator").
func (p *Parser) parseExprList() []*cst.Node {
	var out []*cst.Node
	for {
		n, ok := p.parseExpr()
		if !ok {
			break
		}
		out = append(out, n)
	}
	return out
}

// collectSolveItems consumes the remainder of the current line as a flat
// shunting-yard token stream for IN v SOLVE <expr> and builds the
// arithmetic tree via internal/solve, per spec.md §4.4's isolation note.
func (p *Parser) collectSolveItems() (*cst.Node, bool) {
	var items []solve.Item
	for p.more() && len(p.line()) > 0 {
		ln := p.line()
		t := ln[0]
		switch t.Kind {
		case token.PLUS:
			items = append(items, solve.Item{Kind: solve.ItemPlus, Pos: t.Pos})
			p.lines[p.li] = ln[1:]
		case token.MINUS:
			items = append(items, solve.Item{Kind: solve.ItemMinus, Pos: t.Pos})
			p.lines[p.li] = ln[1:]
		case token.STAR:
			items = append(items, solve.Item{Kind: solve.ItemStar, Pos: t.Pos})
			p.lines[p.li] = ln[1:]
		case token.SLASH:
			items = append(items, solve.Item{Kind: solve.ItemSlash, Pos: t.Pos})
			p.lines[p.li] = ln[1:]
		case token.CARET:
			items = append(items, solve.Item{Kind: solve.ItemCaret, Pos: t.Pos})
			p.lines[p.li] = ln[1:]
		case token.LPAREN:
			items = append(items, solve.Item{Kind: solve.ItemLParen, Pos: t.Pos})
			p.lines[p.li] = ln[1:]
		case token.RPAREN:
			items = append(items, solve.Item{Kind: solve.ItemRParen, Pos: t.Pos})
			p.lines[p.li] = ln[1:]
		default:
			// The scanner folds a sign into a NUMBER ("x-1" lexes as x, -1);
			// after an operand that sign is really a binary operator.
			if n := len(items); t.Kind == token.NUMBER && len(t.Text) > 1 && (t.Text[0] == '-' || t.Text[0] == '+') &&
				n > 0 && (items[n-1].Kind == solve.ItemOperand || items[n-1].Kind == solve.ItemRParen) {
				sign := solve.Item{Kind: solve.ItemMinus, Pos: t.Pos}
				if t.Text[0] == '+' {
					sign.Kind = solve.ItemPlus
				}
				items = append(items, sign)
				t.Text = t.Text[1:]
				ln[0] = t
			}
			operand, ok := p.parseExpr()
			if !ok {
				p.errf(t.Pos, ldplerr.KindParse, "unexpected token %s in arithmetic expression", t)
				return nil, false
			}
			items = append(items, solve.Item{Kind: solve.ItemOperand, Operand: operand, Pos: t.Pos})
		}
	}
	if len(items) == 0 {
		return nil, false
	}
	tree, err := solve.Build(items)
	if err != nil {
		p.errf(items[0].Pos, ldplerr.KindParse, "%s", err)
		return nil, false
	}
	return tree, true
}

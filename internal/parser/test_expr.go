// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/ldplerr"
)

// parseTestExpr recognizes a left-associative chain of AND/OR over
// relational comparisons, AND binding tighter than OR (spec.md §4.1),
// returning a tree of cst.KindTestAnd/KindTestOr/KindTestRel nodes.
func (p *Parser) parseTestExpr() (*cst.Node, bool) {
	left, ok := p.parseTestAndChain()
	if !ok {
		return nil, false
	}
	for p.matchWords("OR") {
		right, ok := p.parseTestAndChain()
		if !ok {
			p.errf(left.Span.Start(), ldplerr.KindParse, "expected a test expression after OR")
			return left, true
		}
		left = &cst.Node{Kind: cst.KindTestOr, Span: left.Span, Children: []*cst.Node{left, right}}
	}
	return left, true
}

func (p *Parser) parseTestAndChain() (*cst.Node, bool) {
	left, ok := p.parseRel()
	if !ok {
		return nil, false
	}
	for p.matchWords("AND") {
		right, ok := p.parseRel()
		if !ok {
			p.errf(left.Span.Start(), ldplerr.KindParse, "expected a test expression after AND")
			return left, true
		}
		left = &cst.Node{Kind: cst.KindTestAnd, Span: left.Span, Children: []*cst.Node{left, right}}
	}
	return left, true
}

// parseRel recognizes "<expr> IS [NOT] EQUAL TO <expr>", "<expr> IS
// GREATER THAN [OR EQUAL TO] <expr>", or "<expr> IS LESS THAN [OR EQUAL
// TO] <expr>".
func (p *Parser) parseRel() (*cst.Node, bool) {
	lhs, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.matchWords("IS") {
		p.errf(lhs.Span.Start(), ldplerr.KindParse, "expected IS in a test expression")
		return nil, false
	}

	var op string
	switch {
	case p.matchWords("NOT", "EQUAL", "TO"):
		op = "NE"
	case p.matchWords("EQUAL", "TO"):
		op = "EQ"
	case p.matchWords("GREATER", "THAN", "OR", "EQUAL", "TO"):
		op = "GE"
	case p.matchWords("GREATER", "THAN"):
		op = "GT"
	case p.matchWords("LESS", "THAN", "OR", "EQUAL", "TO"):
		op = "LE"
	case p.matchWords("LESS", "THAN"):
		op = "LT"
	default:
		p.errf(lhs.Span.Start(), ldplerr.KindParse, "expected a relational operator after IS")
		return nil, false
	}

	rhs, ok := p.parseExpr()
	if !ok {
		p.errf(lhs.Span.Start(), ldplerr.KindParse, "expected an expression after the relational operator")
		return nil, false
	}
	return &cst.Node{Kind: cst.KindTestRel, Span: lhs.Span, Text: op, Children: []*cst.Node{lhs, rhs}}, true
}

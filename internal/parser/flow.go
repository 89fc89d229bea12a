// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/ldplerr"
	"github.com/mdhender/ldplc/internal/token"
)

// parseBlock parses statements until the current line matches one of the
// given terminator word sequences (each checked in order), consuming the
// matched terminator. Sub-procedure definitions are recognized only by
// parseProcedureSection and parseSubDef, never inside a block, so no
// SUB-PROCEDURE/SUB check is made here.
func (p *Parser) parseBlock(terminators ...[]string) ([]*cst.Node, []string, bool) {
	var body []*cst.Node
	for p.more() {
		if words, ok := p.matchAnyWords(terminators...); ok {
			return body, words, true
		}
		if n := p.parseStmt(); n != nil {
			body = append(body, n)
		}
	}
	return body, nil, false
}

// matchAnyWords tries each candidate word sequence against the current
// line (without disturbing it on failure) and advances past the first one
// that matches.
func (p *Parser) matchAnyWords(candidates ...[]string) ([]string, bool) {
	for _, words := range candidates {
		save := p.line()
		if p.matchWords(words...) {
			return words, true
		}
		p.lines[p.li] = save
	}
	return nil, false
}

// IF <test> THEN <body> (ELSE IF <test> THEN <body>)* (ELSE <body>)? END IF
func (p *Parser) parseIf() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("IF")
	n := &cst.Node{Kind: cst.KindIf, Span: posSpan(pos)}

	for {
		test, ok := p.parseTestExpr()
		if !ok {
			p.errf(pos, ldplerr.KindParse, "expected a test expression in IF")
			test = &cst.Node{Kind: cst.KindInvalid, Span: posSpan(pos)}
		}
		if !p.matchWords("THEN") {
			p.errf(pos, ldplerr.KindParse, "expected THEN after IF <test>")
		}
		p.li++

		body, words, ok := p.parseBlock(
			[]string{"ELSE", "IF"},
			[]string{"ELSE"},
			[]string{"END", "IF"},
		)
		clause := &cst.Node{Kind: cst.KindCondClause, Span: posSpan(pos), Children: append([]*cst.Node{test}, body...)}
		n.Children = append(n.Children, clause)
		if !ok {
			p.errf(pos, ldplerr.KindParse, "unterminated IF")
			return n
		}
		if len(words) == 2 && words[0] == "ELSE" && words[1] == "IF" {
			continue
		}
		if len(words) == 1 && words[0] == "ELSE" {
			body, _, ok := p.parseBlock([]string{"END", "IF"})
			elseClause := &cst.Node{Kind: cst.KindCondClause, Span: posSpan(pos), Children: body}
			n.Children = append(n.Children, elseClause)
			if !ok {
				p.errf(pos, ldplerr.KindParse, "unterminated IF/ELSE")
			}
			return n
		}
		return n // matched END IF
	}
}

// WHILE <test> DO <body> REPEAT
func (p *Parser) parseWhile() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("WHILE")
	test, ok := p.parseTestExpr()
	if !ok {
		p.errf(pos, ldplerr.KindParse, "expected a test expression in WHILE")
		test = &cst.Node{Kind: cst.KindInvalid, Span: posSpan(pos)}
	}
	if !p.matchWords("DO") {
		p.errf(pos, ldplerr.KindParse, "expected DO after WHILE <test>")
	}
	p.li++
	body, _, ok := p.parseBlock([]string{"REPEAT"})
	if !ok {
		p.errf(pos, ldplerr.KindParse, "unterminated WHILE")
	}
	return &cst.Node{Kind: cst.KindWhile, Span: posSpan(pos), Children: append([]*cst.Node{test}, body...)}
}

// FOR <var> FROM <expr> TO <expr> [STEP <expr>] DO <body> REPEAT
// FOR EACH <var> IN <expr> DO <body> REPEAT
func (p *Parser) parseForOrForEach() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("FOR")
	if p.matchWords("EACH") {
		return p.finishForEach(pos)
	}
	return p.finishFor(pos)
}

func (p *Parser) finishFor(pos token.Position) *cst.Node {
	ln := p.line()
	var varName string
	if len(ln) > 0 && ln[0].Kind == token.IDENT {
		varName = ln[0].Text
		p.lines[p.li] = ln[1:]
	} else {
		p.errf(pos, ldplerr.KindParse, "expected a variable name after FOR")
	}
	if !p.matchWords("FROM") {
		p.errf(pos, ldplerr.KindParse, "expected FROM after FOR <var>")
	}
	from := p.expectExpr(pos, "a start expression")
	if !p.matchWords("TO") {
		p.errf(pos, ldplerr.KindParse, "expected TO after FOR <var> FROM <expr>")
	}
	to := p.expectExpr(pos, "an end expression")
	var step *cst.Node
	if p.matchWords("STEP") {
		step = p.expectExpr(pos, "a step expression")
	}
	if !p.matchWords("DO") {
		p.errf(pos, ldplerr.KindParse, "expected DO")
	}
	p.li++
	body, _, ok := p.parseBlock([]string{"REPEAT"})
	if !ok {
		p.errf(pos, ldplerr.KindParse, "unterminated FOR")
	}
	n := &cst.Node{Kind: cst.KindFor, Span: posSpan(pos), Text: varName, Children: []*cst.Node{from, to}}
	if step != nil {
		n.Children = append(n.Children, step)
	}
	n.Children = append(n.Children, body...)
	return n
}

func (p *Parser) finishForEach(pos token.Position) *cst.Node {
	ln := p.line()
	var varName string
	if len(ln) > 0 && ln[0].Kind == token.IDENT {
		varName = ln[0].Text
		p.lines[p.li] = ln[1:]
	} else {
		p.errf(pos, ldplerr.KindParse, "expected a variable name after FOR EACH")
	}
	if !p.matchWords("IN") {
		p.errf(pos, ldplerr.KindParse, "expected IN after FOR EACH <var>")
	}
	coll := p.expectExpr(pos, "a collection expression")
	if !p.matchWords("DO") {
		p.errf(pos, ldplerr.KindParse, "expected DO")
	}
	p.li++
	body, _, ok := p.parseBlock([]string{"REPEAT"})
	if !ok {
		p.errf(pos, ldplerr.KindParse, "unterminated FOR EACH")
	}
	return &cst.Node{Kind: cst.KindForEach, Span: posSpan(pos), Text: varName, Children: append([]*cst.Node{coll}, body...)}
}

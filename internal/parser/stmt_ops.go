// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/ldplerr"
	"github.com/mdhender/ldplc/internal/token"
)

// JOIN <expr> AND <expr> IN <var>
func (p *Parser) parseJoin() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("JOIN")
	a := p.expectExpr(pos, "a value expression after JOIN")
	p.matchWords("AND")
	b := p.expectExpr(pos, "a second value expression after JOIN ... AND")
	p.matchWords("IN")
	target := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindJoin, Span: posSpan(pos), Children: []*cst.Node{a, b, target}}
}

// REPLACE <expr> FROM <expr> WITH <expr> IN <var>
func (p *Parser) parseReplace() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("REPLACE")
	subject := p.expectExpr(pos, "a value expression after REPLACE")
	p.matchWords("FROM")
	from := p.expectExpr(pos, "the text to replace after FROM")
	p.matchWords("WITH")
	with := p.expectExpr(pos, "the replacement text after WITH")
	p.matchWords("IN")
	target := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindReplace, Span: posSpan(pos), Children: []*cst.Node{subject, from, with, target}}
}

// SPLIT <expr> BY <expr> IN <var>
func (p *Parser) parseSplit() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("SPLIT")
	subject := p.expectExpr(pos, "a value expression after SPLIT")
	p.matchWords("BY")
	sep := p.expectExpr(pos, "a separator after BY")
	p.matchWords("IN")
	target := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindSplit, Span: posSpan(pos), Children: []*cst.Node{subject, sep, target}}
}

// GET dispatches on its second+ keyword(s):
//
//	GET CHARACTER AT <expr> <expr> IN <var>
//	GET CHARACTER CODE OF <expr> IN <var>
//	GET ASCII CHARACTER <expr> IN <var>
//	GET INDEX OF <expr> IN <expr> IN <var>
//	GET LENGTH OF <expr> IN <var>
//	GET KEY COUNT OF <var> IN <var>
//	GET KEYS OF <var> IN <var>
func (p *Parser) parseGet() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("GET")

	switch {
	case p.matchWords("CHARACTER", "AT"):
		text := p.expectExpr(pos, "a text expression after GET CHARACTER AT")
		idx := p.expectExpr(pos, "a character index")
		p.matchWords("IN")
		target := p.expectOnlyVarRef(pos)
		p.li++
		return &cst.Node{Kind: cst.KindGetCharAt, Span: posSpan(pos), Children: []*cst.Node{text, idx, target}}

	case p.matchWords("CHARACTER", "CODE", "OF"):
		text := p.expectExpr(pos, "a one-character text expression")
		p.matchWords("IN")
		target := p.expectOnlyVarRef(pos)
		p.li++
		return &cst.Node{Kind: cst.KindGetCharCodeOf, Span: posSpan(pos), Children: []*cst.Node{text, target}}

	case p.matchWords("ASCII", "CHARACTER"):
		code := p.expectExpr(pos, "a character code after GET ASCII CHARACTER")
		p.matchWords("IN")
		target := p.expectOnlyVarRef(pos)
		p.li++
		return &cst.Node{Kind: cst.KindGetAsciiChar, Span: posSpan(pos), Children: []*cst.Node{code, target}}

	case p.matchWords("INDEX", "OF"):
		needle := p.expectExpr(pos, "the text to search for")
		p.matchWords("IN")
		haystack := p.expectExpr(pos, "the text to search within")
		p.matchWords("IN")
		target := p.expectOnlyVarRef(pos)
		p.li++
		return &cst.Node{Kind: cst.KindGetIndexOf, Span: posSpan(pos), Children: []*cst.Node{needle, haystack, target}}

	case p.matchWords("LENGTH", "OF"):
		e := p.expectExpr(pos, "a TEXT or LIST value after GET LENGTH OF")
		p.matchWords("IN")
		target := p.expectOnlyVarRef(pos)
		p.li++
		return &cst.Node{Kind: cst.KindGetLengthOf, Span: posSpan(pos), Children: []*cst.Node{e, target}}

	case p.matchWords("KEY", "COUNT", "OF"):
		e := p.expectOnlyVarRef(pos)
		p.matchWords("IN")
		target := p.expectOnlyVarRef(pos)
		p.li++
		return &cst.Node{Kind: cst.KindGetKeyCountOf, Span: posSpan(pos), Children: []*cst.Node{e, target}}

	case p.matchWords("KEYS", "OF"):
		e := p.expectOnlyVarRef(pos)
		p.matchWords("IN")
		target := p.expectOnlyVarRef(pos)
		p.li++
		return &cst.Node{Kind: cst.KindGetKeysOf, Span: posSpan(pos), Children: []*cst.Node{e, target}}
	}

	p.errf(pos, ldplerr.KindParse, "unrecognized GET statement")
	p.li++
	return nil
}

// COUNT <expr> IN <expr> IN <var>
func (p *Parser) parseCount() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("COUNT")
	needle := p.expectExpr(pos, "the value to count")
	p.matchWords("IN")
	haystack := p.expectExpr(pos, "the value to search within")
	p.matchWords("IN")
	target := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindCount, Span: posSpan(pos), Children: []*cst.Node{needle, haystack, target}}
}

// SUBSTRING <expr> <expr> <expr> IN <var>  (text, start, length)
func (p *Parser) parseSubstring() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("SUBSTRING")
	text := p.expectExpr(pos, "a text expression after SUBSTRING")
	start := p.expectExpr(pos, "a start index")
	length := p.expectExpr(pos, "a length")
	p.matchWords("IN")
	target := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindSubstring, Span: posSpan(pos), Children: []*cst.Node{text, start, length, target}}
}

// TRIM <expr> IN <var>
func (p *Parser) parseTrim() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("TRIM")
	text := p.expectExpr(pos, "a text expression after TRIM")
	p.matchWords("IN")
	target := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindTrim, Span: posSpan(pos), Children: []*cst.Node{text, target}}
}

// PUSH <expr> TO <var>
func (p *Parser) parsePush() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("PUSH")
	e := p.expectExpr(pos, "a value expression after PUSH")
	p.matchWords("TO")
	target := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindPush, Span: posSpan(pos), Children: []*cst.Node{e, target}}
}

// DELETE LAST ELEMENT OF <var>
func (p *Parser) parseDeleteLast() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("DELETE", "LAST", "ELEMENT", "OF")
	target := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindDeleteLast, Span: posSpan(pos), Children: []*cst.Node{target}}
}

// CLEAR <var>
func (p *Parser) parseClear() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("CLEAR")
	target := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindClear, Span: posSpan(pos), Children: []*cst.Node{target}}
}

// COPY <var> TO <var>
func (p *Parser) parseCopy() *cst.Node {
	pos := p.line()[0].Pos
	p.matchWords("COPY")
	src := p.expectOnlyVarRef(pos)
	p.matchWords("TO")
	dst := p.expectOnlyVarRef(pos)
	p.li++
	return &cst.Node{Kind: cst.KindCopy, Span: posSpan(pos), Children: []*cst.Node{src, dst}}
}

// CREATE STATEMENT "<pattern>" EXECUTING <sub>
//
// The pattern string is tokenized by splitting on whitespace; each word is
// either a literal or the sigil '$' denoting a slot (spec.md §4.2).
func (p *Parser) parseCreateStatement() *cst.Node {
	ln := p.line()
	pos := ln[0].Pos
	p.matchWords("CREATE", "STATEMENT")
	ln = p.line()
	if len(ln) == 0 || ln[0].Kind != token.TEXT {
		p.errf(pos, ldplerr.KindParse, "expected a quoted pattern after CREATE STATEMENT")
		p.li++
		return nil
	}
	pattern := ln[0].Text
	p.lines[p.li] = ln[1:]

	if !p.matchWords("EXECUTING") {
		p.errf(pos, ldplerr.KindParse, "expected EXECUTING after CREATE STATEMENT \"...\"")
		p.li++
		return nil
	}
	ln = p.line()
	var sub string
	if len(ln) > 0 && ln[0].Kind == token.IDENT {
		sub = ln[0].Text
	} else {
		p.errf(pos, ldplerr.KindParse, "expected a sub-procedure name after EXECUTING")
	}
	p.li++

	parts := tokenizePattern(pattern)
	p.Templates = append(p.Templates, Template{Pattern: parts, Sub: sub, DeclaredAt: pos})

	return &cst.Node{Kind: cst.KindCreateStatement, Span: posSpan(pos), Text: sub}
}

func tokenizePattern(pattern string) []TemplatePart {
	var parts []TemplatePart
	var word []byte
	flush := func() {
		if len(word) > 0 {
			parts = append(parts, TemplatePart{Literal: string(word)})
			word = word[:0]
		}
	}
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == ' ' || c == '\t':
			flush()
		case c == '$':
			flush()
			parts = append(parts, TemplatePart{Slot: true})
		default:
			word = append(word, c)
		}
	}
	flush()
	return parts
}

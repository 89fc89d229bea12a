// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/token"
)

// protectedWords are the leading tokens tryTemplate must never consume
// into a user-defined statement match.
var protectedWords = map[string]bool{"END": true, "END-IF": true, "REPEAT": true}

// tryTemplate attempts to match the current line against each registered
// CREATE STATEMENT template, longest literal-prefix first (spec.md §4.2),
// and on a match consumes the matched tokens and reparses each slot as an
// expression, rewriting the statement to a cst.KindUserCall equivalent to
// "CALL <sub> WITH <slot1> ... <slotN>".
func (p *Parser) tryTemplate() (*cst.Node, bool) {
	ln := p.line()
	if len(ln) > 0 && ln[0].Kind == token.IDENT && protectedWords[token.Upper(ln[0].Text)] {
		return nil, false
	}

	best := -1
	bestLiteralLen := -1
	for i, t := range p.Templates {
		n, litLen, ok := p.matchTemplate(t)
		if ok && litLen > bestLiteralLen {
			best, bestLiteralLen = i, litLen
			_ = n
		}
	}
	if best < 0 {
		return nil, false
	}

	t := p.Templates[best]
	pos := ln[0].Pos
	slots, ok := p.consumeTemplate(t)
	p.li++
	if !ok {
		return &cst.Node{Kind: cst.KindUserCall, Span: posSpan(pos), Text: t.Sub}, true
	}
	return &cst.Node{Kind: cst.KindUserCall, Span: posSpan(pos), Text: t.Sub, Children: slots}, true
}

// matchTemplate reports whether t's literal parts match the current line
// as a prefix pattern (without consuming), and returns the number of
// literal (non-slot) parts matched, used to break ties among templates
// per the longest-match rule.
func (p *Parser) matchTemplate(t Template) (*cst.Node, int, bool) {
	ln := p.line()
	li := 0
	litCount := 0
	for _, part := range t.Pattern {
		if part.Slot {
			// A slot consumes exactly one value expression; we don't fully
			// reparse here (that happens in consumeTemplate), just skip a
			// conservative single token so literal parts further on can
			// still be located. Multi-token operands (lookups) are handled
			// precisely during consumeTemplate's real parse.
			if li >= len(ln) {
				return nil, 0, false
			}
			li++
			continue
		}
		if li >= len(ln) || ln[li].Kind != token.IDENT || !token.EqualFold(ln[li].Text, part.Literal) {
			return nil, 0, false
		}
		li++
		litCount++
	}
	return nil, litCount, true
}

// consumeTemplate re-walks t's pattern against the current line for real,
// advancing the cursor and collecting one parsed expression per slot.
func (p *Parser) consumeTemplate(t Template) ([]*cst.Node, bool) {
	var slots []*cst.Node
	for _, part := range t.Pattern {
		if part.Slot {
			n, ok := p.parseExpr()
			if !ok {
				return slots, false
			}
			slots = append(slots, n)
			continue
		}
		if !p.matchWords(part.Literal) {
			return slots, false
		}
	}
	return slots, true
}

// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package scanner

import (
	"strings"

	"github.com/mdhender/ldplc/internal/token"
)

// Lex tokenizes a whole source buffer into a flat token stream terminated
// by a single token.EOF. EOL tokens mark statement boundaries; blank
// lines (a line that produced no non-EOL tokens) do not emit an EOL of
// their own, so "blank lines are allowed anywhere a statement boundary
// is" (spec.md §4.1) without the parser having to special-case runs of
// empty lines.
//
// Lex also implements the "STORE QUOTE IN <var>" multiline literal
// (spec.md §4.1): once it recognizes that exact four-token opening on a
// line, it switches to raw-line capture until a line whose trimmed
// content is exactly "END QUOTE", and splices the captured text back in
// as a single TEXT token in place of that block.
func Lex(filename string, src []byte) ([]token.Token, []error) {
	s := New(filename, src)
	var errs []error
	s.Error = func(pos token.Position, msg string) {
		errs = append(errs, &lexError{pos: pos, msg: msg})
	}

	var out []token.Token
	var line []token.Token // tokens seen so far on the current logical line

	flushLine := func() {
		if len(line) > 0 {
			out = append(out, line...)
			out = append(out, token.Token{Kind: token.EOL, Pos: line[len(line)-1].Pos})
			line = line[:0]
		}
	}

	for {
		tok := s.NextToken()
		switch tok.Kind {
		case token.EOF:
			flushLine()
			out = append(out, tok)
			return out, errs
		case token.EOL:
			if isStoreQuoteOpen(line) {
				body := scanQuoteBody(s)
				out = append(out, line...)
				out = append(out, token.Token{Kind: token.TEXT, Text: body, Pos: line[len(line)-1].Pos})
				out = append(out, token.Token{Kind: token.EOL, Pos: line[len(line)-1].Pos})
				line = line[:0]
				continue
			}
			flushLine()
		default:
			line = append(line, tok)
		}
	}
}

// isStoreQuoteOpen reports whether the tokens collected so far on the
// current line are exactly "STORE QUOTE IN <ident>".
func isStoreQuoteOpen(line []token.Token) bool {
	if len(line) != 4 {
		return false
	}
	return line[0].IsKeyword("STORE") && line[1].IsKeyword("QUOTE") &&
		line[2].IsKeyword("IN") && line[3].Kind == token.IDENT
}

// scanQuoteBody reads raw lines directly from the scanner's source buffer
// (bypassing tokenization) until a line whose trimmed content is exactly
// "END QUOTE", per spec.md §4.1: "the interior is captured verbatim minus
// the leading newline."
func scanQuoteBody(s *Scanner) string {
	var lines []string
	for {
		if s.AtEOF() {
			s.error("unterminated STORE QUOTE block: missing END QUOTE")
			break
		}
		raw := s.RestOfLine()
		if s.Peek() == '\n' {
			s.advance()
		}
		if strings.TrimSpace(raw) == "END QUOTE" {
			break
		}
		lines = append(lines, raw)
	}
	return strings.Join(lines, "\n")
}

type lexError struct {
	pos token.Position
	msg string
}

func (e *lexError) Error() string { return e.pos.String() + ": " + e.msg }

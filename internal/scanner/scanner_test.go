// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package scanner

import (
	"testing"

	"github.com/mdhender/ldplc/internal/token"
)

func kindsOf(t *testing.T, toks []token.Token) []token.Kind {
	t.Helper()
	var out []token.Kind
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLex_SimpleStatement(t *testing.T) {
	src := "STORE 42 IN x\nDISPLAY x CRLF\n"
	toks, errs := Lex("<test>", []byte(src))
	if len(errs) != 0 {
		t.Fatalf("Lex: unexpected errors: %v", errs)
	}
	want := []token.Kind{
		token.IDENT, token.NUMBER, token.IDENT, token.IDENT, token.EOL,
		token.IDENT, token.IDENT, token.IDENT, token.EOL,
		token.EOF,
	}
	got := kindsOf(t, toks)
	if len(got) != len(want) {
		t.Fatalf("Lex: want %d tokens, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lex: token %d: want %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLex_BlankLinesSuppressed(t *testing.T) {
	src := "STORE 1 IN x\n\n\nSTORE 2 IN y\n"
	toks, errs := Lex("<test>", []byte(src))
	if len(errs) != 0 {
		t.Fatalf("Lex: unexpected errors: %v", errs)
	}
	eols := 0
	for _, tok := range toks {
		if tok.Kind == token.EOL {
			eols++
		}
	}
	if eols != 2 {
		t.Fatalf("Lex: want exactly 2 EOLs across blank lines, got %d", eols)
	}
}

func TestLex_StringEscapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "newline escape", src: `"a\nb"`, want: "a\nb"},
		{name: "tab escape", src: `"a\tb"`, want: "a\tb"},
		{name: "quote escape", src: `"a\"b"`, want: `a"b`},
		{name: "unicode escape", src: `"\` + `u00e9"`, want: "é"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			toks, errs := Lex("<test>", []byte(tc.src+"\n"))
			if len(errs) != 0 {
				t.Fatalf("Lex: unexpected errors: %v", errs)
			}
			if len(toks) < 1 || toks[0].Kind != token.TEXT {
				t.Fatalf("Lex: expected a leading TEXT token, got %v", toks)
			}
			if toks[0].Text != tc.want {
				t.Fatalf("Lex: want %q, got %q", tc.want, toks[0].Text)
			}
		})
	}
}

func TestLex_StoreQuoteBlock(t *testing.T) {
	src := "STORE QUOTE IN s\nline one\nline two\nEND QUOTE\n"
	toks, errs := Lex("<test>", []byte(src))
	if len(errs) != 0 {
		t.Fatalf("Lex: unexpected errors: %v", errs)
	}
	var bodyTok token.Token
	found := false
	for _, tok := range toks {
		if tok.Kind == token.TEXT {
			bodyTok = tok
			found = true
		}
	}
	if !found {
		t.Fatalf("Lex: expected a spliced TEXT token for the STORE QUOTE body")
	}
	if want := "line one\nline two"; bodyTok.Text != want {
		t.Fatalf("Lex: want body %q, got %q", want, bodyTok.Text)
	}
}

func TestLex_IdentifierStopRunes(t *testing.T) {
	toks, errs := Lex("<test>", []byte("foo:bar(baz)\n"))
	if len(errs) != 0 {
		t.Fatalf("Lex: unexpected errors: %v", errs)
	}
	want := []token.Kind{token.IDENT, token.COLON, token.IDENT, token.LPAREN, token.IDENT, token.RPAREN, token.EOL, token.EOF}
	got := kindsOf(t, toks)
	if len(got) != len(want) {
		t.Fatalf("Lex: want %d tokens, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lex: token %d: want %v, got %v", i, want[i], got[i])
		}
	}
}

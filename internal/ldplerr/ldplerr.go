// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package ldplerr defines the stable diagnostic-kind taxonomy described in
// spec.md §7: every front-end error carries one of these kinds so that
// tooling (and tests) can assert on failure class without parsing message
// text.
package ldplerr

// Kind is a stable diagnostic-kind prefix.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindLex
	KindParse
	KindInclude
	KindName
	KindType
	KindShape
	KindUserStmt
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex"
	case KindParse:
		return "parse"
	case KindInclude:
		return "include"
	case KindName:
		return "name"
	case KindType:
		return "type"
	case KindShape:
		return "shape"
	case KindUserStmt:
		return "user-stmt"
	default:
		return "unknown"
	}
}

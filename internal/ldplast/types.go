// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package ldplast is the annotated AST that internal/sema lowers the CST
// into: resolved identifiers, classified LDPL types, and scopes, per
// spec.md §3's data model. Its shape (an interned-ish table of
// declarations plus an ordered list of rules/subs) mirrors the teacher's
// grammar.Grammar (internal/grammar/grammar.go: Symbols/SymbolsByName,
// Rules), generalized from "one flat symbol table for a Lemon grammar" to
// "a scope stack of variable tables plus a sub table" for LDPL.
package ldplast

import "github.com/mdhender/ldplc/internal/runtime"

// Type is the closed set of LDPL types, per spec.md §3. NUMBER VECTOR /
// TEXT VECTOR are deprecated aliases resolved to the List variants at
// declaration time; they never appear as a distinct Type value here.
type Type int

const (
	TypeInvalid Type = iota
	Number
	Text
	NumberList
	TextList
	NumberMap
	TextMap
)

func (t Type) String() string {
	switch t {
	case Number:
		return "NUMBER"
	case Text:
		return "TEXT"
	case NumberList:
		return "NUMBER LIST"
	case TextList:
		return "TEXT LIST"
	case NumberMap:
		return "NUMBER MAP"
	case TextMap:
		return "TEXT MAP"
	default:
		return "INVALID"
	}
}

// IsCollection reports whether t is a LIST or MAP type.
func (t Type) IsCollection() bool {
	switch t {
	case NumberList, TextList, NumberMap, TextMap:
		return true
	default:
		return false
	}
}

// IsMap reports whether t is one of the MAP types.
func (t Type) IsMap() bool { return t == NumberMap || t == TextMap }

// IsList reports whether t is one of the LIST types.
func (t Type) IsList() bool { return t == NumberList || t == TextList }

// ElementType returns the value type a lookup into a collection of type t
// produces (spec.md §4.3: "Collection lookups yield the element type").
func (t Type) ElementType() (Type, bool) {
	switch t {
	case NumberList, NumberMap:
		return Number, true
	case TextList, TextMap:
		return Text, true
	default:
		return TypeInvalid, false
	}
}

// IndexAssignable reports whether a value of type idx may be used to
// index a collection of type t, per spec.md §3's invariant: "NUMBER for
// LIST, indexed by integer; TEXT or NUMBER for MAP per its declaration."
func (t Type) IndexAssignable(idx Type) bool {
	switch {
	case t.IsList():
		return idx == Number
	case t == NumberMap:
		return idx == Number
	case t == TextMap:
		return idx == Text || idx == Number
	default:
		return false
	}
}

// Assignable reports whether a value of type src may be stored into a
// destination of type dst, per spec.md §4.3's coercion table: NUMBER and
// TEXT coerce freely; LIST/MAP types never coerce and must match exactly.
func Assignable(dst, src Type) bool {
	if dst == src {
		return true
	}
	if (dst == Number || dst == Text) && (src == Number || src == Text) {
		return true
	}
	return false
}

// CXXType returns the C++ value-type name internal/emit declares for a
// scalar LDPL type (collections are rendered by internal/emit directly
// via runtime.ListType/MapType, since they need an element type argument).
func (t Type) CXXType() string {
	switch t {
	case Number:
		return runtime.TypeNumber
	case Text:
		return runtime.TypeText
	default:
		return ""
	}
}

// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package emit

import (
	"strconv"
	"strings"
)

// Mangle maps an LDPL identifier to a deterministic, reversible C++
// identifier: an "LPVAR_" prefix, '.' and ':' encoded as "_P_"/"_C_" so
// the mapping stays injective, and an extra prefix for names that would
// otherwise start with a digit.
func Mangle(name string) string {
	var b strings.Builder
	b.WriteString("LPVAR_")
	if len(name) > 0 && name[0] >= '0' && name[0] <= '9' {
		b.WriteString("N_")
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '.':
			b.WriteString("_P_")
		case c == ':':
			b.WriteString("_C_")
		case c == '_':
			b.WriteString("_U_")
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'):
			b.WriteByte(c)
		default:
			b.WriteString("_X" + strconv.Itoa(int(c)) + "_")
		}
	}
	return b.String()
}

// MangleSub mangles a sub-procedure name to a "ldpl_"-prefixed, uppercased
// C++ identifier. It escapes '.', ':', and literal '_' the same way Mangle
// does ("_P_"/"_C_"/"_U_") so the mapping stays injective (testable
// property 2) instead of collapsing both separators to a bare '_'.
func MangleSub(name string) string {
	var b strings.Builder
	b.WriteString("ldpl_")
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '.':
			b.WriteString("_P_")
		case c == ':':
			b.WriteString("_C_")
		case c == '_':
			b.WriteString("_U_")
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		case (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'):
			b.WriteByte(c)
		default:
			b.WriteString("_X" + strconv.Itoa(int(c)) + "_")
		}
	}
	return b.String()
}

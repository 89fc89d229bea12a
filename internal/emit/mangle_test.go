// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package emit

import (
	"strings"
	"testing"
)

func TestMangle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain identifier", in: "counter", want: "LPVAR_counter"},
		{name: "digit-leading identifier", in: "1st", want: "LPVAR_N_1st"},
		{name: "dotted path", in: "person.name", want: "LPVAR_person_P_name"},
		{name: "colon lookup key", in: "m:foo", want: "LPVAR_m_C_foo"},
		{name: "literal underscore", in: "a_b", want: "LPVAR_a_U_b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Mangle(tc.in); got != tc.want {
				t.Fatalf("Mangle(%q): want %q, got %q", tc.in, tc.want, got)
			}
		})
	}
}

func TestMangle_Injective(t *testing.T) {
	inputs := []string{"a.b", "a_P_b", "a:b", "a_C_b", "foo", "FOO", "a_b"}
	seen := map[string]string{}
	for _, in := range inputs {
		m := Mangle(in)
		if prior, ok := seen[m]; ok && prior != in {
			t.Fatalf("Mangle collision: %q and %q both map to %q", prior, in, m)
		}
		seen[m] = in
	}
}

func TestMangleSub(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase name uppercased", in: "greet", want: "ldpl_GREET"},
		{name: "dotted sub name", in: "math.add", want: "ldpl_MATH_P_ADD"},
		{name: "already uppercase", in: "GREET", want: "ldpl_GREET"},
		{name: "colon lookup key", in: "m:foo", want: "ldpl_M_C_FOO"},
		{name: "literal underscore", in: "a_b", want: "ldpl_A_U_B"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MangleSub(tc.in); got != tc.want {
				t.Fatalf("MangleSub(%q): want %q, got %q", tc.in, tc.want, got)
			}
		})
	}
}

func TestMangleSub_Injective(t *testing.T) {
	inputs := []string{"a.b", "a_P_b", "a:b", "a_C_b", "foo", "FOO", "a_b", "a.b_c", "a_b.c"}
	seen := map[string]string{}
	for _, in := range inputs {
		m := MangleSub(in)
		// Sub names are case-insensitive, so only names that differ other
		// than by case must map to distinct identifiers.
		if prior, ok := seen[m]; ok && !strings.EqualFold(prior, in) {
			t.Fatalf("MangleSub collision: %q and %q both map to %q", prior, in, m)
		}
		seen[m] = in
	}
}

// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package ldplast

import "testing"

func TestAssignable(t *testing.T) {
	tests := []struct {
		name     string
		dst, src Type
		want     bool
	}{
		{name: "number to number", dst: Number, src: Number, want: true},
		{name: "text to text", dst: Text, src: Text, want: true},
		{name: "number to text coerces", dst: Text, src: Number, want: true},
		{name: "text to number coerces", dst: Number, src: Text, want: true},
		{name: "number list to number list", dst: NumberList, src: NumberList, want: true},
		{name: "number list to text list never coerces", dst: TextList, src: NumberList, want: false},
		{name: "number to number list never coerces", dst: NumberList, src: Number, want: false},
		{name: "number map to number map", dst: NumberMap, src: NumberMap, want: true},
		{name: "number list to number map never coerces", dst: NumberMap, src: NumberList, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Assignable(tc.dst, tc.src); got != tc.want {
				t.Fatalf("Assignable(%s, %s): want %v, got %v", tc.dst, tc.src, tc.want, got)
			}
		})
	}
}

func TestIndexAssignable(t *testing.T) {
	tests := []struct {
		name string
		coll Type
		idx  Type
		want bool
	}{
		{name: "number list indexed by number", coll: NumberList, idx: Number, want: true},
		{name: "number list indexed by text rejected", coll: NumberList, idx: Text, want: false},
		{name: "text map indexed by text", coll: TextMap, idx: Text, want: true},
		{name: "text map indexed by number", coll: TextMap, idx: Number, want: true},
		{name: "number map indexed by text rejected", coll: NumberMap, idx: Text, want: false},
		{name: "number map indexed by number", coll: NumberMap, idx: Number, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.coll.IndexAssignable(tc.idx); got != tc.want {
				t.Fatalf("%s.IndexAssignable(%s): want %v, got %v", tc.coll, tc.idx, tc.want, got)
			}
		})
	}
}

func TestElementType(t *testing.T) {
	tests := []struct {
		name string
		coll Type
		want Type
		ok   bool
	}{
		{name: "number list", coll: NumberList, want: Number, ok: true},
		{name: "text list", coll: TextList, want: Text, ok: true},
		{name: "number map", coll: NumberMap, want: Number, ok: true},
		{name: "text map", coll: TextMap, want: Text, ok: true},
		{name: "scalar has no element type", coll: Number, want: TypeInvalid, ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.coll.ElementType()
			if ok != tc.ok || got != tc.want {
				t.Fatalf("%s.ElementType(): want (%s, %v), got (%s, %v)", tc.coll, tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestNewProgram_PredeclaredGlobals(t *testing.T) {
	p := NewProgram()
	for _, tc := range []struct {
		name string
		want Type
	}{
		{name: "ARGV", want: TextList},
		{name: "ERRORTEXT", want: Text},
		{name: "ERRORCODE", want: Number},
	} {
		v, ok := p.LookupGlobal(tc.name)
		if !ok {
			t.Fatalf("LookupGlobal(%q): not found", tc.name)
		}
		if v.Type != tc.want {
			t.Fatalf("LookupGlobal(%q).Type: want %s, got %s", tc.name, tc.want, v.Type)
		}
	}
}

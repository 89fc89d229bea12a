// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package solve

import (
	"testing"

	"github.com/mdhender/ldplc/internal/cst"
)

func operand(name string) Item {
	return Item{Kind: ItemOperand, Operand: &cst.Node{Kind: cst.KindVarRef, Text: name}}
}

func op(k ItemKind) Item { return Item{Kind: k} }

// walk renders the resulting tree back to a fully-parenthesized infix
// string so test cases can assert shape without hand-building cst.Node
// trees to compare against.
func walk(n *cst.Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.Kind != cst.KindArith {
		return n.Text
	}
	if n.Text == "neg" {
		return "(neg " + walk(n.Children[0]) + ")"
	}
	return "(" + walk(n.Children[0]) + " " + n.Text + " " + walk(n.Children[1]) + ")"
}

func TestBuild_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  string
	}{
		{
			name:  "a + b * c binds * tighter",
			items: []Item{operand("a"), op(ItemPlus), operand("b"), op(ItemStar), operand("c")},
			want:  "(a + (b * c))",
		},
		{
			name:  "a * b + c binds * tighter on the left",
			items: []Item{operand("a"), op(ItemStar), operand("b"), op(ItemPlus), operand("c")},
			want:  "((a * b) + c)",
		},
		{
			name:  "a - b - c is left associative",
			items: []Item{operand("a"), op(ItemMinus), operand("b"), op(ItemMinus), operand("c")},
			want:  "((a - b) - c)",
		},
		{
			name:  "a ^ b ^ c is right associative",
			items: []Item{operand("a"), op(ItemCaret), operand("b"), op(ItemCaret), operand("c")},
			want:  "(a ^ (b ^ c))",
		},
		{
			name:  "parens override precedence",
			items: []Item{op(ItemLParen), operand("a"), op(ItemPlus), operand("b"), op(ItemRParen), op(ItemStar), operand("c")},
			want:  "((a + b) * c)",
		},
		{
			name:  "leading unary minus",
			items: []Item{op(ItemMinus), operand("a")},
			want:  "(neg a)",
		},
		{
			name:  "unary minus after an operator",
			items: []Item{operand("a"), op(ItemPlus), op(ItemMinus), operand("b")},
			want:  "(a + (neg b))",
		},
		{
			name:  "unary minus on a parenthesized group",
			items: []Item{op(ItemMinus), op(ItemLParen), operand("a"), op(ItemPlus), operand("b"), op(ItemRParen)},
			want:  "(neg (a + b))",
		},
		{
			name:  "leading unary plus is a no-op",
			items: []Item{op(ItemPlus), operand("a")},
			want:  "a",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Build(tc.items)
			if err != nil {
				t.Fatalf("Build: unexpected error: %v", err)
			}
			if s := walk(got); s != tc.want {
				t.Fatalf("Build: want %q, got %q", tc.want, s)
			}
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{name: "unmatched close paren", items: []Item{operand("a"), op(ItemRParen)}},
		{name: "unmatched open paren", items: []Item{op(ItemLParen), operand("a")}},
		{name: "dangling operator", items: []Item{operand("a"), op(ItemPlus)}},
		{name: "star used as prefix", items: []Item{op(ItemStar), operand("a")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Build(tc.items); err == nil {
				t.Fatalf("Build: expected an error, got none")
			}
		})
	}
}

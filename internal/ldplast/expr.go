// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package ldplast

import "github.com/mdhender/ldplc/internal/token"

// ExprKind tags an Expr node, per spec.md §3's value-expression grammar:
// number-literal, text-literal, linefeed-literal, variable-reference, or
// collection-lookup.
type ExprKind int

const (
	ExprInvalid ExprKind = iota
	ExprNumber
	ExprText
	ExprLinefeed
	ExprVar
	ExprLookup
	ExprArith // result of internal/solve, embedded where a SOLVE result flows into context expecting a value
)

// Expr is a value expression. Which fields are meaningful depends on Kind:
//
//	ExprNumber:   NumberValue
//	ExprText:     TextValue
//	ExprLinefeed: TextValue ("\n" or "\r\n")
//	ExprVar:      Var
//	ExprLookup:   Var (base) + Index (one per ':' segment, left-associative)
//	ExprArith:    Arith
type Expr struct {
	Kind ExprKind
	Pos  token.Position
	Type Type // resolved by internal/sema

	NumberValue float64
	TextValue   string

	Var   *Variable
	Index []*Expr

	Arith *ArithExpr
}

// ArithOp is an operator in a SOLVE expression tree.
type ArithOp int

const (
	ArithLeaf ArithOp = iota // this node just wraps a value Expr
	ArithAdd
	ArithSub
	ArithMul
	ArithDiv
	ArithPow
	ArithNeg // unary minus
)

// ArithExpr is the shunting-yard output for IN v SOLVE <expr>, per
// spec.md §4.4: '(' ')' grouping, unary '-' above '*','/', '^'
// right-associative above '*','/', above '+','-'.
type ArithExpr struct {
	Op    ArithOp
	Left  *ArithExpr // operand (unary -) or left operand (binary)
	Right *ArithExpr // right operand (binary only)
	Leaf  *Expr      // valid when Op == ArithLeaf
	Pos   token.Position
}

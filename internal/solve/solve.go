// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package solve implements the shunting-yard expression builder for
// LDPL's SOLVE statement, kept deliberately separate from internal/parser
// per spec.md §4.4's design note: "isolate it from the main grammar to
// avoid precedence pollution." It consumes a flat, already-tokenized
// slice of operators/parens/operands — the parser has already recognized
// each operand as a value-expression cst.Node (number/text literal,
// variable reference, or lookup); solve only ever sees '+','-','*','/',
// '^','(',')' plus those operand nodes — and produces a single
// cst.Node of Kind KindArith whose Text names the root operator ("+",
// "-", "*", "/", "^", or "neg" for unary minus) and whose Children are
// its operands. internal/sema lowers this into an ldplast.ArithExpr,
// resolving variable names as it walks.
package solve

import (
	"fmt"

	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/token"
)

// ItemKind classifies one element of the flat SOLVE token slice.
type ItemKind int

const (
	ItemOperand ItemKind = iota
	ItemPlus
	ItemMinus
	ItemStar
	ItemSlash
	ItemCaret
	ItemLParen
	ItemRParen
)

// Item is one element of the flat slice handed to Build.
type Item struct {
	Kind    ItemKind
	Operand *cst.Node // valid when Kind == ItemOperand
	Pos     token.Position
}

func precedence(k ItemKind) int {
	switch k {
	case ItemCaret:
		return 3
	case ItemStar, ItemSlash:
		return 2
	case ItemPlus, ItemMinus:
		return 1
	default:
		return 0
	}
}

func rightAssoc(k ItemKind) bool { return k == ItemCaret }

func opText(k ItemKind) string {
	switch k {
	case ItemPlus:
		return "+"
	case ItemMinus:
		return "-"
	case ItemStar:
		return "*"
	case ItemSlash:
		return "/"
	case ItemCaret:
		return "^"
	default:
		return "?"
	}
}

type opFrame struct {
	isParen bool
	kind    ItemKind
	pos     token.Position
}

func arithNode(text string, pos token.Position, children ...*cst.Node) *cst.Node {
	return &cst.Node{
		Kind:     cst.KindArith,
		Text:     text,
		Span:     cst.Span{File: pos.File, StartLine: pos.Line, StartColumn: pos.Column},
		Children: children,
	}
}

// Build runs the shunting-yard algorithm over items and returns the
// resulting expression tree as a cst.Node. Unary minus (and the
// semantically-identical unary plus) is recognized positionally: an
// operator item is unary when it is the first item, or immediately
// follows another operator or '('.
func Build(items []Item) (*cst.Node, error) {
	var values []*cst.Node
	var ops []opFrame
	expectOperand := true

	popOp := func() error {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if len(values) < 2 {
			return fmt.Errorf("%s: malformed arithmetic expression", top.pos)
		}
		right := values[len(values)-1]
		left := values[len(values)-2]
		values = values[:len(values)-2]
		values = append(values, arithNode(opText(top.kind), top.pos, left, right))
		return nil
	}

	resolveUnary := func() {
		for len(ops) > 0 && isUnaryMarker(ops[len(ops)-1].kind) && !expectOperand {
			top := ops[len(ops)-1]
			ops = ops[:len(ops)-1]
			operand := values[len(values)-1]
			values = values[:len(values)-1]
			if top.kind == unaryMinusMarker {
				values = append(values, arithNode("neg", top.pos, operand))
			} else {
				values = append(values, operand) // unary '+' is a no-op
			}
		}
	}

	for _, it := range items {
		switch it.Kind {
		case ItemOperand:
			values = append(values, it.Operand)
			expectOperand = false
			resolveUnary()

		case ItemLParen:
			ops = append(ops, opFrame{isParen: true, pos: it.Pos})
			expectOperand = true

		case ItemRParen:
			for len(ops) > 0 && !ops[len(ops)-1].isParen {
				if err := popOp(); err != nil {
					return nil, err
				}
			}
			if len(ops) == 0 {
				return nil, fmt.Errorf("%s: unmatched ')'", it.Pos)
			}
			ops = ops[:len(ops)-1]
			expectOperand = false
			resolveUnary()

		case ItemPlus, ItemMinus:
			if expectOperand {
				ops = append(ops, opFrame{kind: unaryMarker(it.Kind), pos: it.Pos})
				expectOperand = true
				continue
			}
			if err := reduceWhile(&ops, it.Kind, popOp); err != nil {
				return nil, err
			}
			ops = append(ops, opFrame{kind: it.Kind, pos: it.Pos})
			expectOperand = true

		case ItemStar, ItemSlash, ItemCaret:
			if expectOperand {
				return nil, fmt.Errorf("%s: operator %v used as a prefix", it.Pos, it.Kind)
			}
			if err := reduceWhile(&ops, it.Kind, popOp); err != nil {
				return nil, err
			}
			ops = append(ops, opFrame{kind: it.Kind, pos: it.Pos})
			expectOperand = true
		}
	}

	if expectOperand {
		return nil, fmt.Errorf("arithmetic expression ends with a dangling operator")
	}

	for len(ops) > 0 {
		if ops[len(ops)-1].isParen {
			return nil, fmt.Errorf("%s: unmatched '('", ops[len(ops)-1].pos)
		}
		if err := popOp(); err != nil {
			return nil, err
		}
	}

	if len(values) != 1 {
		return nil, fmt.Errorf("malformed arithmetic expression")
	}
	return values[0], nil
}

// Synthetic operator kinds used only on the operator stack to represent a
// pending unary sign, distinct from the real ItemKind space.
const (
	unaryMinusMarker ItemKind = 100 + iota
	unaryPlusMarker
)

func unaryMarker(k ItemKind) ItemKind {
	if k == ItemMinus {
		return unaryMinusMarker
	}
	return unaryPlusMarker
}

func isUnaryMarker(k ItemKind) bool { return k == unaryMinusMarker || k == unaryPlusMarker }

// reduceWhile pops and applies operators with precedence >= the incoming
// operator's (or strictly greater, for the right-associative '^'), per
// the standard shunting-yard rule. Unary markers are never popped here:
// they must wait for their single operand.
func reduceWhile(ops *[]opFrame, incoming ItemKind, popOp func() error) error {
	incomingPrec := precedence(incoming)
	for len(*ops) > 0 {
		top := (*ops)[len(*ops)-1]
		if top.isParen || isUnaryMarker(top.kind) {
			break
		}
		topPrec := precedence(top.kind)
		if topPrec > incomingPrec || (topPrec == incomingPrec && !rightAssoc(incoming)) {
			if err := popOp(); err != nil {
				return err
			}
			continue
		}
		break
	}
	return nil
}

func (k ItemKind) String() string {
	switch k {
	case ItemOperand:
		return "operand"
	case ItemLParen:
		return "("
	case ItemRParen:
		return ")"
	default:
		return opText(k)
	}
}

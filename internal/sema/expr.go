// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package sema

import (
	"strconv"

	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/diag"
	"github.com/mdhender/ldplc/internal/ldplast"
	"github.com/mdhender/ldplc/internal/ldplerr"
	"github.com/mdhender/ldplc/internal/token"
)

// lowerExpr resolves a cst value-expression node into an ldplast.Expr,
// binding variable references against sc (spec.md §4.3's scope stack) and
// reporting undeclared identifiers as ldplerr.KindName.
func lowerExpr(n *cst.Node, sc *scope, bag *diag.Bag) *ldplast.Expr {
	if n == nil {
		return &ldplast.Expr{Kind: ldplast.ExprInvalid, Type: ldplast.TypeInvalid}
	}
	pos := n.Span.Start()

	switch n.Kind {
	case cst.KindNumberLit:
		v, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			bag.Errorf(diag.PhaseSema, ldplerr.KindType, pos, "malformed number literal %q", n.Text)
		}
		return &ldplast.Expr{Kind: ldplast.ExprNumber, Pos: pos, Type: ldplast.Number, NumberValue: v}

	case cst.KindTextLit:
		return &ldplast.Expr{Kind: ldplast.ExprText, Pos: pos, Type: ldplast.Text, TextValue: n.Text}

	case cst.KindLinefeedLit:
		return &ldplast.Expr{Kind: ldplast.ExprLinefeed, Pos: pos, Type: ldplast.Text, TextValue: n.Text}

	case cst.KindVarRef:
		v, ok := sc.lookup(n.Text)
		if !ok {
			bag.Errorf(diag.PhaseSema, ldplerr.KindName, pos, "undeclared identifier %q", n.Text)
			return &ldplast.Expr{Kind: ldplast.ExprVar, Pos: pos, Type: ldplast.TypeInvalid}
		}
		return &ldplast.Expr{Kind: ldplast.ExprVar, Pos: pos, Type: v.Type, Var: v}

	case cst.KindLookup:
		base := lowerExpr(n.Children[0], sc, bag)
		var idx []*ldplast.Expr
		elemType := ldplast.TypeInvalid
		if base.Var != nil {
			if !base.Var.Type.IsCollection() {
				bag.Errorf(diag.PhaseSema, ldplerr.KindType, pos, "%q is not a LIST or MAP", base.Var.Name)
			} else {
				elemType, _ = base.Var.Type.ElementType()
			}
		}
		for _, c := range n.Children[1:] {
			ix := lowerExpr(c, sc, bag)
			if base.Var != nil && base.Var.Type.IsCollection() && !base.Var.Type.IndexAssignable(ix.Type) {
				bag.Errorf(diag.PhaseSema, ldplerr.KindType, ix.Pos, "index type %s is not valid for %s", ix.Type, base.Var.Type)
			}
			idx = append(idx, ix)
		}
		return &ldplast.Expr{Kind: ldplast.ExprLookup, Pos: pos, Type: elemType, Var: base.Var, Index: idx}

	case cst.KindArith:
		tree := lowerArith(n, sc, bag)
		return &ldplast.Expr{Kind: ldplast.ExprArith, Pos: pos, Type: ldplast.Number, Arith: tree}

	default:
		bag.Errorf(diag.PhaseSema, ldplerr.KindType, pos, "expected a value expression")
		return &ldplast.Expr{Kind: ldplast.ExprInvalid, Pos: pos, Type: ldplast.TypeInvalid}
	}
}

// lowerArith converts a solve-produced cst.KindArith tree (Text names the
// operator: "+","-","*","/","^","neg") into an ldplast.ArithExpr,
// resolving any variable leaves against sc. Operands coerce TEXT->NUMBER
// at evaluation time per spec.md §4.4, so no type error is raised here for
// a TEXT leaf; internal/emit inserts the coercion.
func lowerArith(n *cst.Node, sc *scope, bag *diag.Bag) *ldplast.ArithExpr {
	pos := n.Span.Start()
	if n.Kind != cst.KindArith {
		leaf := lowerExpr(n, sc, bag)
		return &ldplast.ArithExpr{Op: ldplast.ArithLeaf, Leaf: leaf, Pos: pos}
	}
	switch n.Text {
	case "neg":
		return &ldplast.ArithExpr{Op: ldplast.ArithNeg, Left: lowerArith(n.Children[0], sc, bag), Pos: pos}
	case "+":
		return &ldplast.ArithExpr{Op: ldplast.ArithAdd, Left: lowerArith(n.Children[0], sc, bag), Right: lowerArith(n.Children[1], sc, bag), Pos: pos}
	case "-":
		return &ldplast.ArithExpr{Op: ldplast.ArithSub, Left: lowerArith(n.Children[0], sc, bag), Right: lowerArith(n.Children[1], sc, bag), Pos: pos}
	case "*":
		return &ldplast.ArithExpr{Op: ldplast.ArithMul, Left: lowerArith(n.Children[0], sc, bag), Right: lowerArith(n.Children[1], sc, bag), Pos: pos}
	case "/":
		return &ldplast.ArithExpr{Op: ldplast.ArithDiv, Left: lowerArith(n.Children[0], sc, bag), Right: lowerArith(n.Children[1], sc, bag), Pos: pos}
	case "^":
		return &ldplast.ArithExpr{Op: ldplast.ArithPow, Left: lowerArith(n.Children[0], sc, bag), Right: lowerArith(n.Children[1], sc, bag), Pos: pos}
	default:
		leaf := lowerExpr(n, sc, bag)
		return &ldplast.ArithExpr{Op: ldplast.ArithLeaf, Leaf: leaf, Pos: pos}
	}
}

// checkAssignable reports a type error unless src may flow into a
// destination of type dst, per spec.md §4.3's coercion table.
func checkAssignable(bag *diag.Bag, pos token.Position, dst, src ldplast.Type, context string) {
	if !ldplast.Assignable(dst, src) {
		bag.Errorf(diag.PhaseSema, ldplerr.KindType, pos, "%s: cannot use %s where %s is expected", context, src, dst)
	}
}

// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package sema

import (
	"github.com/mdhender/ldplc/internal/cst"
	"github.com/mdhender/ldplc/internal/diag"
	"github.com/mdhender/ldplc/internal/ldplast"
	"github.com/mdhender/ldplc/internal/ldplerr"
)

// The loop depth (lowerStmtDepth's and lowerBody's depth parameter) is
// carried through recursive lowerStmtDepth calls (not the scope,
// which is per-sub) to validate spec.md §3's "BREAK/CONTINUE only inside a
// loop body" invariant. A package-level counter would race across subs if
// this were ever made concurrent (it isn't, per spec.md §5), so it rides
// along as an explicit parameter instead.
func lowerStmt(n *cst.Node, sc *scope, bag *diag.Bag) *ldplast.Stmt {
	return lowerStmtDepth(n, sc, bag, 0)
}

func lowerBody(nodes []*cst.Node, sc *scope, bag *diag.Bag, depth int) []*ldplast.Stmt {
	var out []*ldplast.Stmt
	for _, n := range nodes {
		if st := lowerStmtDepth(n, sc, bag, depth); st != nil {
			out = append(out, st)
		}
	}
	return out
}

func lowerStmtDepth(n *cst.Node, sc *scope, bag *diag.Bag, depth int) *ldplast.Stmt {
	if n == nil {
		return nil
	}
	pos := n.Span.Start()

	switch n.Kind {
	case cst.KindInvalid:
		return nil

	case cst.KindStore:
		src := lowerExpr(n.Children[0], sc, bag)
		target := lowerExpr(n.Children[1], sc, bag)
		checkAssignable(bag, pos, target.Type, src.Type, "STORE")
		return &ldplast.Stmt{Kind: ldplast.StmtStore, Pos: pos, Source: src, Target: target}

	case cst.KindSolve:
		target := lowerExpr(n.Children[0], sc, bag)
		if target.Type != ldplast.TypeInvalid && target.Type != ldplast.Number {
			bag.Errorf(diag.PhaseSema, ldplerr.KindType, pos, "SOLVE target must be NUMBER")
		}
		var arith *ldplast.ArithExpr
		if len(n.Children) > 1 {
			arith = lowerArith(n.Children[1], sc, bag)
		}
		return &ldplast.Stmt{Kind: ldplast.StmtSolve, Pos: pos, Target: target, Arith: arith}

	case cst.KindFloor:
		e := lowerExpr(n.Children[0], sc, bag)
		st := &ldplast.Stmt{Kind: ldplast.StmtFloor, Pos: pos, Source: e}
		if len(n.Children) > 1 {
			st.Target = lowerExpr(n.Children[1], sc, bag)
		}
		return st

	case cst.KindIf:
		st := &ldplast.Stmt{Kind: ldplast.StmtIf, Pos: pos}
		for i, clause := range n.Children {
			isElse := i == len(n.Children)-1 && len(clause.Children) > 0 && clause.Children[0].Kind != cst.KindTestRel && clause.Children[0].Kind != cst.KindTestAnd && clause.Children[0].Kind != cst.KindTestOr
			cc := &ldplast.CondClause{}
			bodyNodes := clause.Children
			if !isElse && len(clause.Children) > 0 {
				cc.Test = lowerTest(clause.Children[0], sc, bag)
				bodyNodes = clause.Children[1:]
			}
			cc.Body = lowerBody(bodyNodes, sc, bag, depth)
			st.Conds = append(st.Conds, cc)
		}
		return st

	case cst.KindWhile:
		test := lowerTest(n.Children[0], sc, bag)
		body := lowerBody(n.Children[1:], sc, bag, depth+1)
		return &ldplast.Stmt{Kind: ldplast.StmtWhile, Pos: pos, Conds: []*ldplast.CondClause{{Test: test, Body: body}}}

	case cst.KindFor:
		v, ok := sc.lookup(n.Text)
		if !ok {
			bag.Errorf(diag.PhaseSema, ldplerr.KindName, pos, "undeclared identifier %q", n.Text)
		}
		from := lowerExpr(n.Children[0], sc, bag)
		to := lowerExpr(n.Children[1], sc, bag)
		var step *ldplast.Expr
		bodyStart := 2
		if hasStep(n) {
			step = lowerExpr(n.Children[2], sc, bag)
			bodyStart = 3
		}
		body := lowerBody(n.Children[bodyStart:], sc, bag, depth+1)
		return &ldplast.Stmt{Kind: ldplast.StmtFor, Pos: pos, ForVar: v, From: from, To: to, Step: step, Body: body}

	case cst.KindForEach:
		v, ok := sc.lookup(n.Text)
		if !ok {
			bag.Errorf(diag.PhaseSema, ldplerr.KindName, pos, "undeclared identifier %q", n.Text)
		}
		coll := lowerExpr(n.Children[0], sc, bag)
		body := lowerBody(n.Children[1:], sc, bag, depth+1)
		return &ldplast.Stmt{Kind: ldplast.StmtForEach, Pos: pos, EachVar: v, EachColl: coll, Body: body}

	case cst.KindBreak:
		if depth == 0 {
			bag.Errorf(diag.PhaseSema, ldplerr.KindShape, pos, "BREAK outside a loop")
		}
		return &ldplast.Stmt{Kind: ldplast.StmtBreak, Pos: pos}

	case cst.KindContinue:
		if depth == 0 {
			bag.Errorf(diag.PhaseSema, ldplerr.KindShape, pos, "CONTINUE outside a loop")
		}
		return &ldplast.Stmt{Kind: ldplast.StmtContinue, Pos: pos}

	case cst.KindReturn:
		return &ldplast.Stmt{Kind: ldplast.StmtReturn, Pos: pos}

	case cst.KindExit:
		return &ldplast.Stmt{Kind: ldplast.StmtExit, Pos: pos}

	case cst.KindGoto:
		return &ldplast.Stmt{Kind: ldplast.StmtGoto, Pos: pos, Label: n.Text}

	case cst.KindLabel:
		return &ldplast.Stmt{Kind: ldplast.StmtLabel, Pos: pos, Label: n.Text}

	case cst.KindWait:
		return &ldplast.Stmt{Kind: ldplast.StmtWait, Pos: pos, Millis: lowerExpr(n.Children[0], sc, bag)}

	case cst.KindCall, cst.KindCallExternal:
		st := &ldplast.Stmt{Kind: ldplast.StmtCall, Pos: pos, SubName: n.Text, External: n.Kind == cst.KindCallExternal}
		if n.Kind == cst.KindCallExternal {
			st.Kind = ldplast.StmtCallExternal
		}
		sub, ok := sc.prog.LookupSub(n.Text)
		if !ok && !st.External {
			bag.Errorf(diag.PhaseSema, ldplerr.KindName, pos, "call to undeclared sub-procedure %q", n.Text)
		} else {
			st.Sub = sub
		}
		for _, a := range n.Children {
			st.Args = append(st.Args, lowerExpr(a, sc, bag))
		}
		if ok && sub.Arity() != len(st.Args) {
			bag.Errorf(diag.PhaseSema, ldplerr.KindType, pos, "%q expects %d argument(s), got %d", n.Text, sub.Arity(), len(st.Args))
		}
		return st

	case cst.KindDisplay:
		st := &ldplast.Stmt{Kind: ldplast.StmtDisplay, Pos: pos}
		for _, a := range n.Children {
			st.Args = append(st.Args, lowerExpr(a, sc, bag))
		}
		return st

	case cst.KindAccept:
		target := lowerExpr(n.Children[0], sc, bag)
		return &ldplast.Stmt{Kind: ldplast.StmtAccept, Pos: pos, Target: target, UntilEOF: n.Text == "UNTIL-EOF"}

	case cst.KindLoadFile:
		path := lowerExpr(n.Children[0], sc, bag)
		target := lowerExpr(n.Children[1], sc, bag)
		return &ldplast.Stmt{Kind: ldplast.StmtLoadFile, Pos: pos, Source: path, Target: target}

	case cst.KindWriteFile:
		return &ldplast.Stmt{Kind: ldplast.StmtWriteFile, Pos: pos, Args: lowerAll(n.Children[:2], sc, bag)}

	case cst.KindAppendFile:
		return &ldplast.Stmt{Kind: ldplast.StmtAppendFile, Pos: pos, Args: lowerAll(n.Children[:2], sc, bag)}

	case cst.KindExecute:
		st := &ldplast.Stmt{Kind: ldplast.StmtExecute, Pos: pos, Command: lowerExpr(n.Children[0], sc, bag)}
		switch n.Text {
		case "OUTPUT":
			st.AndStoreKind = ldplast.AndStoreOutput
		case "EXIT-CODE":
			st.AndStoreKind = ldplast.AndStoreExitCode
		}
		if len(n.Children) > 1 {
			st.AndStoreVar = lowerExpr(n.Children[1], sc, bag)
		}
		return st

	case cst.KindJoin:
		return &ldplast.Stmt{Kind: ldplast.StmtJoin, Pos: pos, Args: lowerAll(n.Children[:2], sc, bag), Target: lowerExpr(n.Children[2], sc, bag)}

	case cst.KindReplace:
		return &ldplast.Stmt{Kind: ldplast.StmtReplace, Pos: pos, Args: lowerAll(n.Children[:3], sc, bag), Target: lowerExpr(n.Children[3], sc, bag)}

	case cst.KindSplit:
		return &ldplast.Stmt{Kind: ldplast.StmtSplit, Pos: pos, Args: lowerAll(n.Children[:2], sc, bag), Target: lowerExpr(n.Children[2], sc, bag)}

	case cst.KindGetCharAt:
		return &ldplast.Stmt{Kind: ldplast.StmtGetCharAt, Pos: pos, Args: lowerAll(n.Children[:2], sc, bag), Target: lowerExpr(n.Children[2], sc, bag)}

	case cst.KindGetCharCodeOf:
		return &ldplast.Stmt{Kind: ldplast.StmtGetCharCodeOf, Pos: pos, Args: lowerAll(n.Children[:1], sc, bag), Target: lowerExpr(n.Children[1], sc, bag)}

	case cst.KindGetAsciiChar:
		return &ldplast.Stmt{Kind: ldplast.StmtGetAsciiChar, Pos: pos, Args: lowerAll(n.Children[:1], sc, bag), Target: lowerExpr(n.Children[1], sc, bag)}

	case cst.KindGetIndexOf:
		return &ldplast.Stmt{Kind: ldplast.StmtGetIndexOf, Pos: pos, Args: lowerAll(n.Children[:2], sc, bag), Target: lowerExpr(n.Children[2], sc, bag)}

	case cst.KindCount:
		return &ldplast.Stmt{Kind: ldplast.StmtCount, Pos: pos, Args: lowerAll(n.Children[:2], sc, bag), Target: lowerExpr(n.Children[2], sc, bag)}

	case cst.KindSubstring:
		return &ldplast.Stmt{Kind: ldplast.StmtSubstring, Pos: pos, Args: lowerAll(n.Children[:3], sc, bag), Target: lowerExpr(n.Children[3], sc, bag)}

	case cst.KindTrim:
		return &ldplast.Stmt{Kind: ldplast.StmtTrim, Pos: pos, Args: lowerAll(n.Children[:1], sc, bag), Target: lowerExpr(n.Children[1], sc, bag)}

	case cst.KindPush:
		e := lowerExpr(n.Children[0], sc, bag)
		target := lowerExpr(n.Children[1], sc, bag)
		if target.Type.IsCollection() {
			if elem, ok := target.Type.ElementType(); ok {
				checkAssignable(bag, pos, elem, e.Type, "PUSH")
			}
		}
		return &ldplast.Stmt{Kind: ldplast.StmtPush, Pos: pos, Source: e, Target: target}

	case cst.KindDeleteLast:
		return &ldplast.Stmt{Kind: ldplast.StmtDeleteLast, Pos: pos, Target: lowerExpr(n.Children[0], sc, bag)}

	case cst.KindClear:
		return &ldplast.Stmt{Kind: ldplast.StmtClear, Pos: pos, Target: lowerExpr(n.Children[0], sc, bag)}

	case cst.KindCopy:
		src := lowerExpr(n.Children[0], sc, bag)
		target := lowerExpr(n.Children[1], sc, bag)
		checkAssignable(bag, pos, target.Type, src.Type, "COPY")
		return &ldplast.Stmt{Kind: ldplast.StmtCopy, Pos: pos, Source: src, Target: target}

	case cst.KindGetLengthOf:
		return &ldplast.Stmt{Kind: ldplast.StmtGetLengthOf, Pos: pos, Args: lowerAll(n.Children[:1], sc, bag), Target: lowerExpr(n.Children[1], sc, bag)}

	case cst.KindGetKeyCountOf:
		return &ldplast.Stmt{Kind: ldplast.StmtGetKeyCountOf, Pos: pos, Args: lowerAll(n.Children[:1], sc, bag), Target: lowerExpr(n.Children[1], sc, bag)}

	case cst.KindGetKeysOf:
		return &ldplast.Stmt{Kind: ldplast.StmtGetKeysOf, Pos: pos, Args: lowerAll(n.Children[:1], sc, bag), Target: lowerExpr(n.Children[1], sc, bag)}

	case cst.KindCreateStatement:
		return nil // fully handled by lowerTemplates; no runtime statement of its own

	case cst.KindUserCall:
		sub, ok := sc.prog.LookupSub(n.Text)
		st := &ldplast.Stmt{Kind: ldplast.StmtCall, Pos: pos, SubName: n.Text, Sub: sub}
		if !ok {
			bag.Errorf(diag.PhaseSema, ldplerr.KindUserStmt, pos, "user statement executes undeclared sub-procedure %q", n.Text)
		}
		st.Args = lowerAll(n.Children, sc, bag)
		return st

	default:
		bag.Errorf(diag.PhaseSema, ldplerr.KindParse, pos, "unsupported statement")
		return nil
	}
}

func lowerAll(nodes []*cst.Node, sc *scope, bag *diag.Bag) []*ldplast.Expr {
	out := make([]*ldplast.Expr, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, lowerExpr(n, sc, bag))
	}
	return out
}

func lowerTest(n *cst.Node, sc *scope, bag *diag.Bag) *ldplast.TestExpr {
	pos := n.Span.Start()
	switch n.Kind {
	case cst.KindTestAnd:
		return &ldplast.TestExpr{Op: ldplast.TestAnd, Left: lowerTest(n.Children[0], sc, bag), Right: lowerTest(n.Children[1], sc, bag), Pos: pos}
	case cst.KindTestOr:
		return &ldplast.TestExpr{Op: ldplast.TestOr, Left: lowerTest(n.Children[0], sc, bag), Right: lowerTest(n.Children[1], sc, bag), Pos: pos}
	case cst.KindTestRel:
		a := lowerExpr(n.Children[0], sc, bag)
		b := lowerExpr(n.Children[1], sc, bag)
		rel := relOpFor(n.Text)
		return &ldplast.TestExpr{Op: ldplast.TestRel, Rel: rel, A: a, B: b, Pos: pos}
	default:
		bag.Errorf(diag.PhaseSema, ldplerr.KindParse, pos, "expected a test expression")
		return &ldplast.TestExpr{Op: ldplast.TestRel, Pos: pos}
	}
}

func relOpFor(text string) ldplast.RelOp {
	switch text {
	case "NE":
		return ldplast.RelNe
	case "GT":
		return ldplast.RelGt
	case "GE":
		return ldplast.RelGe
	case "LT":
		return ldplast.RelLt
	case "LE":
		return ldplast.RelLe
	default:
		return ldplast.RelEq
	}
}

// hasStep reports whether a KindFor node's shape includes the optional
// STEP expression: internal/parser appends [from, to, (step), body...],
// so a STEP is present whenever there are at least 3 children left that
// aren't themselves statement nodes. Since step is always a value
// expression (never a statement), and the parser only ever adds it right
// after to, we detect it structurally: node count beyond from/to that
// isn't a recognizable statement Kind is treated as the step expression.
// internal/parser always places exactly 0 or 1 such node, immediately
// after To, before the first body statement.
func hasStep(n *cst.Node) bool {
	if len(n.Children) < 3 {
		return false
	}
	third := n.Children[2]
	switch third.Kind {
	case cst.KindNumberLit, cst.KindTextLit, cst.KindLinefeedLit, cst.KindVarRef, cst.KindLookup, cst.KindArith:
		return true
	default:
		return false
	}
}

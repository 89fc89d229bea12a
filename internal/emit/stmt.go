// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package emit

import (
	"strconv"

	"github.com/mdhender/ldplc/internal/ldplast"
	"github.com/mdhender/ldplc/internal/runtime"
)

// stmt lowers one ldplast.Stmt to C++, one row of spec.md §4.4's statement
// table per case, matching the teacher's habit (internal/grammar/builder.go)
// of a single large dispatch switch over a Kind enum.
func (e *emitter) stmt(s *ldplast.Stmt, depth int) {
	if s == nil {
		return
	}
	ind := indent(depth)
	switch s.Kind {
	case ldplast.StmtStore:
		e.printf("%s%s = %s;\n", ind, e.lvalue(s.Target), e.rvalueFor(s.Target, s.Source))

	case ldplast.StmtSolve:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncCoerceToNumber, e.arith(s.Arith))

	case ldplast.StmtFloor:
		target := s.Target
		if target == nil {
			target = s.Source // FLOOR v with no IN clause floors v in place
		}
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(target), runtime.FuncFloor, e.expr(s.Source))

	case ldplast.StmtIf:
		e.ifStmt(s, depth)

	case ldplast.StmtWhile:
		e.printf("%swhile (%s) {\n", ind, e.test(s.Conds[0].Test))
		for _, b := range s.Conds[0].Body {
			e.stmt(b, depth+1)
		}
		e.printf("%s}\n", ind)

	case ldplast.StmtFor:
		e.forStmt(s, depth)

	case ldplast.StmtForEach:
		e.forEachStmt(s, depth)

	case ldplast.StmtBreak:
		e.printf("%sbreak;\n", ind)

	case ldplast.StmtContinue:
		e.printf("%scontinue;\n", ind)

	case ldplast.StmtReturn:
		e.printf("%sreturn;\n", ind)

	case ldplast.StmtExit:
		e.printf("%sstd::exit((int)%s);\n", ind, e.globalRef(runtime.GlobalErrorCode))

	case ldplast.StmtGoto:
		e.printf("%sgoto %s;\n", ind, s.Label)

	case ldplast.StmtLabel:
		e.printf("%s:;\n", s.Label)

	case ldplast.StmtWait:
		e.printf("%s%s(%s);\n", ind, runtime.FuncSleepMillis, e.expr(s.Millis))

	case ldplast.StmtCall, ldplast.StmtCallExternal:
		e.printf("%s%s(%s);\n", ind, e.callTarget(s), e.argList(s.Args))

	case ldplast.StmtDisplay:
		for _, a := range s.Args {
			e.printf("%s%s(%s);\n", ind, runtime.FuncDisplay, e.expr(a))
		}

	case ldplast.StmtAccept:
		if s.UntilEOF {
			e.printf("%s%s(%s);\n", ind, runtime.FuncAcceptUntilEOF, e.lvalue(s.Target))
		} else {
			e.printf("%s%s(%s);\n", ind, runtime.FuncAcceptLine, e.lvalue(s.Target))
		}

	case ldplast.StmtLoadFile:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncLoadFile, e.expr(s.Source))

	case ldplast.StmtWriteFile:
		e.printf("%s%s(%s, %s);\n", ind, runtime.FuncWriteFile, e.expr(s.Args[0]), e.expr(s.Args[1]))

	case ldplast.StmtAppendFile:
		e.printf("%s%s(%s, %s);\n", ind, runtime.FuncAppendFile, e.expr(s.Args[0]), e.expr(s.Args[1]))

	case ldplast.StmtExecute:
		e.executeStmt(s, depth)

	case ldplast.StmtJoin:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncJoin, e.argList(s.Args))

	case ldplast.StmtReplace:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncReplace, e.argList(s.Args))

	case ldplast.StmtSplit:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncSplit, e.argList(s.Args))

	case ldplast.StmtGetCharAt:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncCharAt, e.argList(s.Args))

	case ldplast.StmtGetCharCodeOf:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncCharCodeOf, e.argList(s.Args))

	case ldplast.StmtGetAsciiChar:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncAsciiChar, e.argList(s.Args))

	case ldplast.StmtGetIndexOf:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncIndexOf, e.argList(s.Args))

	case ldplast.StmtCount:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncCount, e.argList(s.Args))

	case ldplast.StmtSubstring:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncSubstring, e.argList(s.Args))

	case ldplast.StmtTrim:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncTrim, e.argList(s.Args))

	case ldplast.StmtPush:
		e.printf("%s%s(%s, %s);\n", ind, runtime.FuncPushBack, e.lvalue(s.Target), e.expr(s.Source))

	case ldplast.StmtDeleteLast:
		e.printf("%s%s(%s);\n", ind, runtime.FuncDeleteLast, e.lvalue(s.Target))

	case ldplast.StmtClear:
		e.printf("%s%s(%s);\n", ind, runtime.FuncClear, e.lvalue(s.Target))

	case ldplast.StmtCopy:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncCopy, e.expr(s.Source))

	case ldplast.StmtGetLengthOf:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncLengthOf, e.argList(s.Args))

	case ldplast.StmtGetKeyCountOf:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncKeyCountOf, e.argList(s.Args))

	case ldplast.StmtGetKeysOf:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.Target), runtime.FuncKeysOf, e.argList(s.Args))

	default:
		e.printf("%s// unhandled statement kind %d\n", ind, s.Kind)
	}
}

func (e *emitter) ifStmt(s *ldplast.Stmt, depth int) {
	ind := indent(depth)
	for i, c := range s.Conds {
		switch {
		case i == 0:
			e.printf("%sif (%s) {\n", ind, e.test(c.Test))
		case c.Test != nil:
			e.printf("%s} else if (%s) {\n", ind, e.test(c.Test))
		default:
			e.printf("%s} else {\n", ind)
		}
		for _, b := range c.Body {
			e.stmt(b, depth+1)
		}
	}
	e.printf("%s}\n", ind)
}

// forStmt emits a sign-aware FOR loop: step is an arbitrary expression,
// not necessarily a compile-time literal, so the termination test and its
// direction are both decided at runtime from step's sign (the loop runs
// while i <= b for a non-negative step and while i >= b for a negative
// one, so the end bound b is inclusive). step is
// evaluated into a local once so a non-trivial step expression isn't
// recomputed on every iteration or termination check.
func (e *emitter) forStmt(s *ldplast.Stmt, depth int) {
	ind := indent(depth)
	v := e.lvalue(&ldplast.Expr{Kind: ldplast.ExprVar, Var: s.ForVar})
	step := "1"
	if s.Step != nil {
		step = e.expr(s.Step)
	}
	e.printf("%s{\n", ind)
	e.printf("%s  %s __ldpl_step = %s;\n", ind, runtime.TypeNumber, step)
	e.printf("%s  for (%s = %s; __ldpl_step >= 0 ? (%s <= %s) : (%s >= %s); %s += __ldpl_step) {\n",
		ind, v, e.expr(s.From), v, e.expr(s.To), v, e.expr(s.To), v)
	for _, b := range s.Body {
		e.stmt(b, depth+2)
	}
	e.printf("%s  }\n", ind)
	e.printf("%s}\n", ind)
}

func (e *emitter) forEachStmt(s *ldplast.Stmt, depth int) {
	ind := indent(depth)
	v := e.lvalue(&ldplast.Expr{Kind: ldplast.ExprVar, Var: s.EachVar})
	e.printf("%sfor (auto &__ldpl_it : %s) {\n", ind, e.expr(s.EachColl))
	e.printf("%s  %s = __ldpl_it;\n", ind, v)
	for _, b := range s.Body {
		e.stmt(b, depth+1)
	}
	e.printf("%s}\n", ind)
}

func (e *emitter) executeStmt(s *ldplast.Stmt, depth int) {
	ind := indent(depth)
	switch s.AndStoreKind {
	case ldplast.AndStoreOutput:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.AndStoreVar), runtime.FuncExecute, e.expr(s.Command))
	case ldplast.AndStoreExitCode:
		e.printf("%s%s = %s(%s);\n", ind, e.lvalue(s.AndStoreVar), runtime.FuncExecute, e.expr(s.Command))
	default:
		e.printf("%s%s(%s);\n", ind, runtime.FuncExecute, e.expr(s.Command))
	}
}

func (e *emitter) callTarget(s *ldplast.Stmt) string {
	if s.Sub != nil {
		return subName(s.Sub)
	}
	return s.SubName
}

func (e *emitter) argList(args []*ldplast.Expr) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += e.expr(a)
	}
	return out
}

func (e *emitter) globalRef(name string) string {
	return Mangle(name)
}

// lvalue renders a Target expression (always ExprVar or ExprLookup) as a
// C++ assignable reference.
func (e *emitter) lvalue(x *ldplast.Expr) string {
	return e.expr(x)
}

// rvalueFor coerces src to dst's C++ type when the STORE crosses
// NUMBER/TEXT (spec.md §4.3's coercion table); collection/collection
// stores never need coercion since they must already match exactly.
func (e *emitter) rvalueFor(dst, src *ldplast.Expr) string {
	if dst.Type == ldplast.Text && src.Type == ldplast.Number {
		return runtime.FuncCoerceToText + "(" + e.expr(src) + ")"
	}
	if dst.Type == ldplast.Number && src.Type == ldplast.Text {
		return runtime.FuncCoerceToNumber + "(" + e.expr(src) + ")"
	}
	return e.expr(src)
}

// expr renders a value expression as a C++ expression string.
func (e *emitter) expr(x *ldplast.Expr) string {
	if x == nil {
		return ""
	}
	switch x.Kind {
	case ldplast.ExprNumber:
		return strconv.FormatFloat(x.NumberValue, 'g', -1, 64)
	case ldplast.ExprText, ldplast.ExprLinefeed:
		return strconv.Quote(x.TextValue)
	case ldplast.ExprVar:
		return varName(x.Var)
	case ldplast.ExprLookup:
		out := varName(x.Var)
		for _, ix := range x.Index {
			out += "[" + e.expr(ix) + "]"
		}
		return out
	case ldplast.ExprArith:
		return e.arith(x.Arith)
	default:
		return "/* invalid expr */"
	}
}

func (e *emitter) arith(a *ldplast.ArithExpr) string {
	if a == nil {
		return "0"
	}
	switch a.Op {
	case ldplast.ArithLeaf:
		if a.Leaf != nil && a.Leaf.Type == ldplast.Text {
			return runtime.FuncCoerceToNumber + "(" + e.expr(a.Leaf) + ")"
		}
		return e.expr(a.Leaf)
	case ldplast.ArithNeg:
		return "(-" + e.arith(a.Left) + ")"
	case ldplast.ArithAdd:
		return "(" + e.arith(a.Left) + " + " + e.arith(a.Right) + ")"
	case ldplast.ArithSub:
		return "(" + e.arith(a.Left) + " - " + e.arith(a.Right) + ")"
	case ldplast.ArithMul:
		return "(" + e.arith(a.Left) + " * " + e.arith(a.Right) + ")"
	case ldplast.ArithDiv:
		return "(" + e.arith(a.Left) + " / " + e.arith(a.Right) + ")"
	case ldplast.ArithPow:
		return runtime.FuncPow + "(" + e.arith(a.Left) + ", " + e.arith(a.Right) + ")"
	default:
		return "0"
	}
}

// test renders an IF/WHILE test expression, short-circuit && and ||
// mirroring LDPL's AND/OR per spec.md §4.1.
func (e *emitter) test(t *ldplast.TestExpr) string {
	if t == nil {
		return "true"
	}
	switch t.Op {
	case ldplast.TestAnd:
		return "(" + e.test(t.Left) + " && " + e.test(t.Right) + ")"
	case ldplast.TestOr:
		return "(" + e.test(t.Left) + " || " + e.test(t.Right) + ")"
	default:
		return "(" + e.expr(t.A) + " " + relOpCxx(t.Rel) + " " + e.expr(t.B) + ")"
	}
}

func relOpCxx(op ldplast.RelOp) string {
	switch op {
	case ldplast.RelEq:
		return "=="
	case ldplast.RelNe:
		return "!="
	case ldplast.RelGt:
		return ">"
	case ldplast.RelGe:
		return ">="
	case ldplast.RelLt:
		return "<"
	case ldplast.RelLe:
		return "<="
	default:
		return "=="
	}
}

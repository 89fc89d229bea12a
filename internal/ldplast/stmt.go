// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package ldplast

import "github.com/mdhender/ldplc/internal/token"

// StmtKind tags a lowered statement, one per row of the statement table
// in spec.md §4.4.
type StmtKind int

const (
	StmtInvalid StmtKind = iota
	StmtStore
	StmtSolve
	StmtFloor
	StmtIf
	StmtWhile
	StmtFor
	StmtForEach
	StmtBreak
	StmtContinue
	StmtReturn
	StmtExit
	StmtGoto
	StmtLabel
	StmtWait
	StmtCall
	StmtCallExternal
	StmtDisplay
	StmtAccept
	StmtLoadFile
	StmtWriteFile
	StmtAppendFile
	StmtExecute
	StmtJoin
	StmtReplace
	StmtSplit
	StmtGetCharAt
	StmtGetCharCodeOf
	StmtGetAsciiChar
	StmtGetIndexOf
	StmtCount
	StmtSubstring
	StmtTrim
	StmtPush
	StmtDeleteLast
	StmtClear
	StmtCopy
	StmtGetLengthOf
	StmtGetKeyCountOf
	StmtGetKeysOf
)

// RelOp is a relational comparison inside a TestExpr leaf.
type RelOp int

const (
	RelEq RelOp = iota
	RelNe
	RelGt
	RelGe
	RelLt
	RelLe
)

// TestOp distinguishes a TestExpr's shape.
type TestOp int

const (
	TestRel TestOp = iota // leaf: A <Rel> B
	TestAnd
	TestOr
)

// TestExpr is a test expression used by IF/WHILE, per spec.md §4.1: a
// left-associative chain of AND/OR over relational comparisons, AND
// binding tighter than OR, both short-circuit.
type TestExpr struct {
	Op          TestOp
	Left, Right *TestExpr // And/Or
	Rel         RelOp     // Rel leaf
	A, B        *Expr     // Rel leaf operands
	Pos         token.Position
}

// CondClause is one arm of an IF/ELSE IF/ELSE chain.
type CondClause struct {
	Test *TestExpr // nil for a trailing plain ELSE
	Body []*Stmt
}

// AndStoreKind distinguishes EXECUTE's optional result-capture clause.
type AndStoreKind int

const (
	AndStoreNone AndStoreKind = iota
	AndStoreOutput
	AndStoreExitCode
)

// Stmt is one lowered statement. Only the fields relevant to Kind are
// populated; this mirrors the teacher's Directive/Alt structs (§api.go)
// of "one generic payload struct per event, interpreted by Kind" rather
// than one Go type per statement, which would balloon the sum type.
type Stmt struct {
	Kind StmtKind
	Pos  token.Position

	// STORE e IN v / GET ... IN v style assignment target + source.
	Target *Expr
	Source *Expr

	// Generic operand/argument list (DISPLAY e..., CALL ... WITH args...,
	// JOIN/REPLACE/SPLIT/SUBSTRING/TRIM/COUNT/GET INDEX OF arguments).
	Args []*Expr

	// IN v SOLVE <arith>
	Arith *ArithExpr

	// IF / WHILE
	Conds []*CondClause // IF: one per ELSE IF + optional trailing else (Test==nil); WHILE: exactly one

	// FOR i FROM a TO b STEP s DO ... REPEAT
	ForVar        *Variable
	From, To      *Expr
	Step          *Expr
	Body          []*Stmt

	// FOR EACH x IN c DO ... REPEAT
	EachVar  *Variable
	EachColl *Expr

	// CALL / CALL EXTERNAL
	SubName string
	Sub     *Sub
	External bool

	// GOTO / LABEL
	Label string

	// ACCEPT v [UNTIL EOF]
	UntilEOF bool

	// EXECUTE e [AND STORE (OUTPUT|EXIT CODE) IN v]
	Command      *Expr
	AndStoreKind AndStoreKind
	AndStoreVar  *Expr

	// WAIT n MILLISECONDS
	Millis *Expr
}

// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package emit walks an internal/ldplast.Program and writes a single C++
// translation unit to an io.Writer acquired once at the top of emission
// (spec.md §5's resource model), using direct fmt.Fprintf calls to build
// strings procedurally rather than a templating engine — the teacher
// never reaches for text/template either, even in the structured
// commentary builder_example.go produces; neither does this emitter.
package emit

import (
	"fmt"
	"io"

	"github.com/mdhender/ldplc/internal/ldplast"
	"github.com/mdhender/ldplc/internal/runtime"
)

// Emit writes prog as a complete C++ translation unit to w. Emission
// assumes prog carries no unresolved (sema-reported) errors; callers are
// expected to check diag.Bag.HasErrors() before calling Emit, per spec.md
// §7's "compilation halts after emitting all errors of the current phase"
// policy.
func Emit(w io.Writer, prog *ldplast.Program) error {
	e := &emitter{w: w}
	e.header()
	e.globals(prog)
	e.forwardDecls(prog)
	for _, s := range prog.Subs {
		if s.IsMain || s.External {
			continue
		}
		e.subDef(s)
	}
	e.mainFunc(prog)
	return e.err
}

type emitter struct {
	w   io.Writer
	err error
}

func (e *emitter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, err := fmt.Fprintf(e.w, format, args...)
	if err != nil {
		e.err = err
	}
}

func (e *emitter) header() {
	e.printf("#include \"%s\"\n\n", runtime.HeaderPath)
}

func cxxType(t ldplast.Type) string {
	switch t {
	case ldplast.Number, ldplast.Text:
		return t.CXXType()
	case ldplast.NumberList:
		return runtime.ListType(runtime.TypeNumber)
	case ldplast.TextList:
		return runtime.ListType(runtime.TypeText)
	case ldplast.NumberMap:
		return runtime.MapType(runtime.TypeNumber)
	case ldplast.TextMap:
		return runtime.MapType(runtime.TypeText)
	default:
		return runtime.TypeNumber
	}
}

// globals emits a C++ declaration for every global, predeclared globals
// unconditionally, per spec.md §4.4 item 2.
func (e *emitter) globals(prog *ldplast.Program) {
	for _, v := range prog.Globals {
		e.printf("%s %s;\n", cxxType(v.Type), varName(v))
	}
	e.printf("\n")
}

func varName(v *ldplast.Variable) string {
	if v == nil {
		return "/* unresolved */"
	}
	if v.External {
		return v.Name
	}
	return Mangle(v.Name)
}

func subName(s *ldplast.Sub) string {
	if s == nil {
		return "/* unresolved */"
	}
	if s.External {
		return s.Name
	}
	if s.IsMain {
		return "ldpl_main"
	}
	return MangleSub(s.Name)
}

func (e *emitter) forwardDecls(prog *ldplast.Program) {
	for _, s := range prog.Subs {
		if s.IsMain || s.External {
			continue
		}
		e.printf("void %s(%s);\n", subName(s), paramList(s))
	}
	e.printf("\n")
}

func paramList(s *ldplast.Sub) string {
	out := ""
	for i, p := range s.Params {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %s", cxxType(p.Type), varName(p))
	}
	return out
}

func (e *emitter) subDef(s *ldplast.Sub) {
	e.printf("void %s(%s) {\n", subName(s), paramList(s))
	for _, v := range s.Locals {
		e.printf("  %s %s;\n", cxxType(v.Type), varName(v))
	}
	for _, st := range s.Body {
		e.stmt(st, 1)
	}
	e.printf("}\n\n")
}

// mainFunc synthesizes main(): ARGV from argc/argv, the top-level
// PROCEDURE: body wrapped in a try/catch for ldpl_error, returning 0
// normally or propagating ERRORCODE, per spec.md §4.4 item 5.
func (e *emitter) mainFunc(prog *ldplast.Program) {
	main, _ := prog.LookupSub("main")
	argv, _ := prog.LookupGlobal(runtime.GlobalARGV)
	errcode, _ := prog.LookupGlobal(runtime.GlobalErrorCode)

	e.printf("int main(int argc, char **argv) {\n")
	if argv != nil {
		e.printf("  for (int i = 0; i < argc; i++) { %s.push_back(%s(argv[i])); }\n", varName(argv), cxxType(ldplast.Text))
	}
	e.printf("  try {\n")
	if main != nil {
		for _, st := range main.Body {
			e.stmt(st, 2)
		}
	}
	e.printf("  } catch (const %s &e) {\n", runtime.ErrorType)
	e.printf("    fprintf(stderr, \"%%s\\n\", e.what());\n")
	e.printf("    return 1;\n")
	e.printf("  }\n")
	if errcode != nil {
		e.printf("  return (int)%s;\n", varName(errcode))
	} else {
		e.printf("  return 0;\n")
	}
	e.printf("}\n")
}

func indent(depth int) string {
	out := ""
	for i := 0; i < depth; i++ {
		out += "  "
	}
	return out
}

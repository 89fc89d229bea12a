// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mdhender/ldplc/internal/diag"
	"github.com/mdhender/ldplc/internal/emit"
	"github.com/mdhender/ldplc/internal/parser"
	"github.com/mdhender/ldplc/internal/scanner"
	"github.com/mdhender/ldplc/internal/sema"
	"github.com/mdhender/ldplc/internal/source"
)

var (
	outPath     string
	includeDirs []string
	cxxFlags    []string
	runAfter    bool
)

func main() {
	root := &cobra.Command{
		Use:   "ldplc <source.ldpl>",
		Short: "Translate LDPL 4.4 source to C++",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	root.Flags().StringVarP(&outPath, "o", "o", "", "output C++ file (default: replace .ldpl with .cpp)")
	root.Flags().StringArrayVarP(&includeDirs, "i", "i", nil, "directory searched for INCLUDE files")
	root.Flags().StringArrayVarP(&cxxFlags, "f", "f", nil, "flag passed through to the C++ toolchain driver")
	root.Flags().BoolVarP(&runAfter, "r", "r", false, "compile to a temporary file and run it")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCompile(cmd *cobra.Command, args []string) error {
	srcPath := args[0]

	res, err := source.NewResolver(includeDirs).Resolve(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", srcPath, err)
		os.Exit(1)
	}

	tokens, lexErrs := scanner.Lex(srcPath, res.Text)
	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(1)
	}
	for i := range tokens {
		o := res.OriginFor(tokens[i].Pos.Line)
		tokens[i].Pos.File, tokens[i].Pos.Line = o.File, o.Line
	}

	file, templates, parseBag := parser.Parse(srcPath, tokens)
	if reportAndHalt(parseBag) {
		os.Exit(1)
	}

	prog, semaBag := sema.Lower(file, templates)
	allBag := &diag.Bag{}
	allBag.Merge(parseBag)
	allBag.Merge(semaBag)
	if reportAndHalt(allBag) {
		os.Exit(1)
	}

	out := outPath
	if out == "" {
		out = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".cpp"
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := emit.Emit(f, prog); err != nil {
		return err
	}

	if !runAfter {
		return nil
	}
	return compileAndRun(out)
}

func reportAndHalt(bag *diag.Bag) bool {
	halt := bag.HasErrors()
	for _, d := range bag.All() {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	return halt
}

func compileAndRun(cppPath string) error {
	dir, err := os.MkdirTemp("", "ldplc-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	binPath := filepath.Join(dir, strings.TrimSuffix(filepath.Base(cppPath), filepath.Ext(cppPath)))
	args := append([]string{cppPath, "-o", binPath}, cxxFlags...)
	build := exec.Command("c++", args...)
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return err
	}

	run := exec.Command(binPath)
	run.Stdout = os.Stdout
	run.Stderr = os.Stderr
	run.Stdin = os.Stdin
	if err := run.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.RemoveAll(dir)
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	return nil
}

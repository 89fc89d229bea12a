// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package source resolves LDPL's textual INCLUDE directive before
// lexing, per spec.md §4.2: included files are spliced in depth-first,
// de-duplicated by canonical path, and include cycles are rejected.
package source

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdhender/ldplc/internal/ldplerr"
)

// Origin records which physical file and line a spliced output line came
// from, so that token.Position values (computed against line numbers in
// the spliced buffer) can be translated back to where the user actually
// wrote that line.
type Origin struct {
	File string
	Line int
}

// Unit is one source file that contributed text to a compilation,
// in first-occurrence order.
type Unit struct {
	ID   int
	Path string
}

// Result is the outcome of resolving INCLUDE directives for one entry
// file: the fully spliced text, and a line-indexed origin table the
// lexer/parser use to report diagnostics against the original files.
type Result struct {
	Text    []byte
	Origins []Origin // Origins[i] is the origin of spliced line i+1 (1-based lines)
	Units   []Unit
}

// IncludeError reports an include-resolution failure (missing file or a
// cycle), tagged with ldplerr.KindInclude.
type IncludeError struct {
	Kind ldplerr.Kind
	Path string
	Msg  string
}

func (e *IncludeError) Error() string { return fmt.Sprintf("%s: %s", e.Path, e.Msg) }

// Resolver splices INCLUDE directives, searching IncludeDirs (in order)
// in addition to the including file's own directory.
type Resolver struct {
	IncludeDirs []string

	seen    map[string]bool // canonical path -> already spliced once
	onStack map[string]bool // canonical path -> currently being spliced (cycle detection)
	units   []Unit
	nextID  int
}

// NewResolver creates a Resolver that searches the given include directories.
func NewResolver(includeDirs []string) *Resolver {
	return &Resolver{
		IncludeDirs: includeDirs,
		seen:        map[string]bool{},
		onStack:     map[string]bool{},
	}
}

// Resolve reads path and recursively splices its INCLUDE directives,
// returning the combined text and per-line origin table.
func (r *Resolver) Resolve(path string) (*Result, error) {
	var outLines []string
	var origins []Origin

	err := r.splice(path, &outLines, &origins)
	if err != nil {
		return nil, err
	}
	return &Result{
		Text:    []byte(strings.Join(outLines, "\n")),
		Origins: origins,
		Units:   r.units,
	}, nil
}

func (r *Resolver) splice(path string, outLines *[]string, origins *[]Origin) error {
	canon, err := canonical(path)
	if err != nil {
		return &IncludeError{Kind: ldplerr.KindInclude, Path: path, Msg: err.Error()}
	}

	if r.onStack[canon] {
		return &IncludeError{Kind: ldplerr.KindInclude, Path: path, Msg: "include cycle detected"}
	}
	if r.seen[canon] {
		// "A file is included at most once per compilation; re-includes
		// are silently ignored." (spec.md §4.2)
		return nil
	}
	r.seen[canon] = true
	r.onStack[canon] = true
	defer delete(r.onStack, canon)

	data, err := os.ReadFile(path)
	if err != nil {
		return &IncludeError{Kind: ldplerr.KindInclude, Path: path, Msg: "file not found"}
	}
	r.nextID++
	r.units = append(r.units, Unit{ID: r.nextID, Path: path})

	dir := filepath.Dir(path)
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if incPath, ok := parseIncludeDirective(line); ok {
			resolved, err := r.findInclude(incPath, dir)
			if err != nil {
				return &IncludeError{Kind: ldplerr.KindInclude, Path: incPath, Msg: "file not found"}
			}
			if err := r.splice(resolved, outLines, origins); err != nil {
				return err
			}
			continue
		}
		*outLines = append(*outLines, line)
		*origins = append(*origins, Origin{File: path, Line: lineNo})
	}
	if err := sc.Err(); err != nil {
		return &IncludeError{Kind: ldplerr.KindInclude, Path: path, Msg: err.Error()}
	}
	return nil
}

func (r *Resolver) findInclude(incPath, fromDir string) (string, error) {
	candidates := []string{filepath.Join(fromDir, incPath)}
	for _, dir := range r.IncludeDirs {
		candidates = append(candidates, filepath.Join(dir, incPath))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("not found in any include path")
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// parseIncludeDirective recognizes a line of the form
// `INCLUDE "path"` (case-insensitive keyword, surrounding whitespace
// allowed) and returns the quoted path.
func parseIncludeDirective(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if len(t) < 7 || !strings.EqualFold(t[:7], "INCLUDE") {
		return "", false
	}
	rest := strings.TrimSpace(t[7:])
	if len(rest) < 2 || rest[0] != '"' {
		return "", false
	}
	end := strings.IndexByte(rest[1:], '"')
	if end < 0 {
		return "", false
	}
	return rest[1 : 1+end], true
}

// OriginFor translates a spliced-buffer line number (1-based) into the
// file/line it came from. Lines past the end of the table (shouldn't
// normally happen) fall back to the entry file name.
func (res *Result) OriginFor(line int) Origin {
	if line >= 1 && line <= len(res.Origins) {
		return res.Origins[line-1]
	}
	if len(res.Units) > 0 {
		return Origin{File: res.Units[0].Path, Line: line}
	}
	return Origin{File: "<input>", Line: line}
}

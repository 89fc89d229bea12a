// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package runtime names the C++ runtime ABI that generated translation
// units depend on. It does not implement the runtime library — that is
// explicitly out of scope per spec.md §1 ("the runtime library embedded
// into generated programs ... treated as a fixed header that the emitter
// references by name") — it is the single source of truth for the symbol
// names internal/emit writes into generated C++, so the emitter and any
// future runtime implementation cannot drift silently out of sync.
package runtime

// HeaderPath is the `#include` argument the emitter writes at the top of
// every generated translation unit.
const HeaderPath = "ldpl_runtime.hpp"

// Value-type names, per spec.md §6.
const (
	TypeNumber   = "ldpl_number"
	TypeText     = "ldpl_text"
	TypeListTmpl = "ldpl_list"
	TypeMapTmpl  = "ldpl_map"
	ErrorType    = "ldpl_error"
)

// Predeclared globals, per spec.md §3.
const (
	GlobalARGV      = "ARGV"
	GlobalErrorText = "ERRORTEXT"
	GlobalErrorCode = "ERRORCODE"
)

// Helper function names called by internal/emit, one per row of the
// statement-lowering table in spec.md §4.4 that is not a bare C++ operator
// or control-flow construct.
const (
	FuncCoerceToNumber = "ldpl_to_number"
	FuncCoerceToText   = "ldpl_to_text"
	FuncFloor          = "ldpl_floor"
	FuncPow            = "ldpl_pow" // wraps std::pow for SOLVE's '^'
	FuncSleepMillis    = "ldpl_sleep_millis"
	FuncDisplay        = "ldpl_display"
	FuncAcceptLine     = "ldpl_accept_line"
	FuncAcceptUntilEOF = "ldpl_accept_until_eof"
	FuncLoadFile       = "ldpl_load_file"
	FuncWriteFile      = "ldpl_write_file"
	FuncAppendFile     = "ldpl_append_file"
	FuncExecute        = "ldpl_execute"
	FuncJoin           = "ldpl_join"
	FuncReplace        = "ldpl_replace"
	FuncSplit          = "ldpl_split"
	FuncCharAt         = "ldpl_char_at"
	FuncCharCodeOf     = "ldpl_char_code_of"
	FuncAsciiChar      = "ldpl_ascii_char"
	FuncIndexOf        = "ldpl_index_of"
	FuncCount          = "ldpl_count"
	FuncSubstring      = "ldpl_substring"
	FuncTrim           = "ldpl_trim"
	FuncLengthOf       = "ldpl_length_of"
	FuncKeyCountOf     = "ldpl_key_count_of"
	FuncKeysOf         = "ldpl_keys_of"
	FuncPushBack       = "ldpl_push_back"
	FuncDeleteLast     = "ldpl_delete_last"
	FuncClear          = "ldpl_clear"
	FuncCopy           = "ldpl_copy"
)

// ListType returns the mapped C++ container type for an LDPL element type.
func ListType(elem string) string { return TypeListTmpl + "<" + elem + ">" }

// MapType returns the mapped C++ container type for an LDPL value type.
func MapType(elem string) string { return TypeMapTmpl + "<" + elem + ">" }

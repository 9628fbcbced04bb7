// Package asm implements the μISA assembler.
//
// Sources are either a JSON array of instruction records:
//
//	[{"op": "load", "const": 8}, {"op": "read", "offset": 25},
//	 {"op": "store", "addr": 218}, {"op": "sqrt", "addr": 697, "offset": 24}]
//
// or one instruction per line of text:
//
//	; comment
//	load 8
//	read 25
//	store $(200 + 18)
//	sqrt 697, 24
//
// $(...) operands are evaluated at assembly time as starlark expressions,
// with MEMORY_SIZE and LINENO predeclared.
//
// Operands wider than their field are masked, never rejected.
package asm

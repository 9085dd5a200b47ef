// Package x86 translates a Brainfuck AST into i386 machine code and
// wraps it for inclusion in an ELF32 executable.
//
// The data tape lives on the process stack: ESP is the data pointer,
// and every cell access is a displacement-free `[esp]` memory operand
// (mod=00, rm=100, SIB=0x24 -- "no index, base=ESP"). This package has
// no dependency on the ast package's optimisation passes; it only
// requires a well-formed tree with every mergeable node's count in
// 1..255.
package x86

import "encoding/binary"

// writeLE32 writes a signed 32-bit value in little-endian order.
func writeLE32(buf []byte, v int32) {
	binary.LittleEndian.PutUint32(buf, uint32(v))
}

// sibEsp is the SIB byte used by every `[esp]`-addressed instruction
// in this generator: scale=1, index=none, base=ESP. Combined with a
// ModRM mod=00 rm=100 it selects the displacement-free `[esp]` form.
const sibEsp = 0x24

package x86

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Disassemble renders code as AT&T-flavored assembly text, one line
// per instruction, prefixed with its byte offset. It is a closed-table
// decoder, not a general i386 disassembler: every opcode sequence this
// generator ever emits is fixed and known (see instructions.go), so
// decoding never needs to guess an operand size or addressing mode.
//
// This is developer-facing output only -- `cmd/bfdump asm` is its only
// caller -- and has no bearing on the bytes a compiled executable
// actually contains.
func Disassemble(code []byte) string {
	var out strings.Builder

	for i := 0; i < len(code); {
		n := disasmOne(&out, code, i)
		if n <= 0 {
			fmt.Fprintf(&out, "%08x:\t%02x\t\t.byte 0x%02x\n", i, code[i], code[i])
			n = 1
		}
		i += n
	}

	return out.String()
}

// disasmOne decodes and prints the single instruction starting at
// code[i], returning its length in bytes (0 if code[i:] doesn't match
// any known shape).
func disasmOne(out *strings.Builder, code []byte, i int) int {
	b := code[i:]

	switch {
	case match(b, 0x4C):
		line(out, i, b[:1], "dec    %%esp")
		return 1
	case match(b, 0x44):
		line(out, i, b[:1], "inc    %%esp")
		return 1
	case match(b, 0x83, 0xEC):
		line(out, i, b[:3], "sub    $0x%x,%%esp", b[2])
		return 3
	case match(b, 0x83, 0xC4):
		line(out, i, b[:3], "add    $0x%x,%%esp", b[2])
		return 3
	case match(b, 0xFE, 0x04, sibEsp):
		line(out, i, b[:3], "incb   (%%esp)")
		return 3
	case match(b, 0xFE, 0x0C, sibEsp):
		line(out, i, b[:3], "decb   (%%esp)")
		return 3
	case match(b, 0x80, 0x04, sibEsp):
		line(out, i, b[:4], "addb   $0x%x,(%%esp)", b[3])
		return 4
	case match(b, 0x80, 0x2C, sibEsp):
		line(out, i, b[:4], "subb   $0x%x,(%%esp)", b[3])
		return 4
	case match(b, 0xC6, 0x04, sibEsp, 0x00):
		line(out, i, b[:4], "movb   $0x0,(%%esp)")
		return 4
	case match(b, 0x80, 0x3C, sibEsp, 0x00):
		line(out, i, b[:4], "cmpb   $0x0,(%%esp)")
		return 4
	case match(b, 0xB8):
		line(out, i, b[:5], "mov    $0x%x,%%eax", imm32(b[1:]))
		return 5
	case match(b, 0xBB):
		line(out, i, b[:5], "mov    $0x%x,%%ebx", imm32(b[1:]))
		return 5
	case match(b, 0xB9):
		line(out, i, b[:5], "mov    $0x%x,%%ecx", imm32(b[1:]))
		return 5
	case match(b, 0xBA):
		line(out, i, b[:5], "mov    $0x%x,%%edx", imm32(b[1:]))
		return 5
	case match(b, 0x89, 0xE1):
		line(out, i, b[:2], "mov    %%esp,%%ecx")
		return 2
	case match(b, 0x89, 0xE7):
		line(out, i, b[:2], "mov    %%esp,%%edi")
		return 2
	case match(b, 0x31, 0xC0):
		line(out, i, b[:2], "xor    %%eax,%%eax")
		return 2
	case match(b, 0x31, 0xDB):
		line(out, i, b[:2], "xor    %%ebx,%%ebx")
		return 2
	case match(b, 0x40):
		line(out, i, b[:1], "inc    %%eax")
		return 1
	case match(b, 0xFD):
		line(out, i, b[:1], "std")
		return 1
	case match(b, 0xF3, 0xAB):
		line(out, i, b[:2], "rep stos %%eax,%%es:(%%edi)")
		return 2
	case match(b, 0xCD, 0x80):
		line(out, i, b[:2], "int    $0x80")
		return 2
	case match(b, 0x0F, 0x84):
		rel := int32(imm32(b[2:]))
		line(out, i, b[:6], "je     0x%x", int(i)+6+int(rel))
		return 6
	case match(b, 0xE9):
		rel := int32(imm32(b[1:]))
		line(out, i, b[:5], "jmp    0x%x", int(i)+5+int(rel))
		return 5
	default:
		return 0
	}
}

func match(b []byte, prefix ...byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if b[i] != p {
			return false
		}
	}
	return true
}

func imm32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b[:4])
}

func line(out *strings.Builder, offset int, raw []byte, mnemonic string, args ...any) {
	fmt.Fprintf(out, "%8x:\t%s\t%s\n", offset, hexBytes(raw), fmt.Sprintf(mnemonic, args...))
}

func hexBytes(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", v)
	}
	return sb.String()
}

package x86

import (
	"errors"
	"math"

	"github.com/lcox74/bf386/internal/ast"
)

// Linux i386 syscall numbers used by the emitted program. These are
// the only three system calls the generated code ever issues.
const (
	sysExit  = 1
	sysRead  = 3
	sysWrite = 4
)

// tapeZeroDwords is the number of doublewords the prologue zeroes
// below the initial ESP: 0x40000 dwords * 4 bytes = 1 MiB of tape.
const tapeZeroDwords = 0x40000

// ErrDisplacementOverflow is returned when a loop body is too large
// for the signed 32-bit relative displacement used by `je`/`jmp`.
// This is unreachable for any realistic Brainfuck program but is
// checked explicitly rather than left to silently truncate.
var ErrDisplacementOverflow = errors.New("x86: loop body too large for a 32-bit relative jump")

// Generate walks prog and returns a self-contained i386 machine code
// stream: a prologue that zeroes the tape, the translation of every
// node in prog.Body, and an exit(0) epilogue. All intra-program jumps
// are already resolved to concrete displacements; the result needs no
// further patching before being handed to the ELF writer.
func Generate(prog *ast.Program) ([]byte, error) {
	body, err := emitBody(prog.Body)
	if err != nil {
		return nil, err
	}

	code := make([]byte, 0, len(body)+32)
	code = append(code, prologue()...)
	code = append(code, body...)
	code = append(code, epilogue()...)
	return code, nil
}

// prologue zeroes a 1 MiB region of stack below the entry ESP, which
// becomes the Brainfuck tape.
func prologue() []byte {
	var out []byte
	out = append(out, xorEAXEAX()...)                 // xor eax, eax      ; fill value
	out = append(out, movECXImm32(tapeZeroDwords)...) // mov ecx, 0x40000  ; dword count
	out = append(out, movEDIFromESP()...)             // mov edi, esp      ; destination
	out = append(out, std()...)                       // std               ; decrement EDI
	out = append(out, repStosd()...)                  // rep stosd
	return out
}

// epilogue issues sys_exit(0).
func epilogue() []byte {
	var out []byte
	out = append(out, xorEAXEAX()...) // xor eax, eax
	out = append(out, incEAX()...)    // inc eax       ; eax = 1 (sys_exit)
	out = append(out, xorEBXEBX()...) // xor ebx, ebx  ; status 0
	out = append(out, int80()...)     // int 0x80
	return out
}

// emitBody emits every node of body in order into one flat buffer.
func emitBody(body []ast.Node) ([]byte, error) {
	var out []byte
	for _, n := range body {
		b, err := emitNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// emitNode emits the fixed instruction schema for a single AST node.
// Loop is the only node that recurses, and it does so into a fresh
// local buffer whose length drives the jump displacements -- there is
// no patch list anywhere in this generator.
func emitNode(n ast.Node) ([]byte, error) {
	switch v := n.(type) {
	case ast.IncPtr:
		return emitCountedESP(subESPImm8, decESP, v.Count), nil
	case ast.DecPtr:
		return emitCountedESP(addESPImm8, incESP, v.Count), nil
	case ast.IncByte:
		return emitCountedByte(addByteMemImm8, incByteMem, v.Count), nil
	case ast.DecByte:
		return emitCountedByte(subByteMemImm8, decByteMem, v.Count), nil
	case ast.Zero:
		return movByteMemZero(), nil
	case ast.Output:
		return emitSyscall(sysWrite, 1), nil
	case ast.Input:
		return emitSyscall(sysRead, 0), nil
	case ast.Loop:
		return emitLoop(v)
	default:
		panic("x86: unknown AST node variant")
	}
}

// emitCountedESP picks the N=1 single-byte opcode or the three-byte
// imm8 form for an ESP pointer move, per the generator's table.
func emitCountedESP(wide func(uint8) []byte, single func() []byte, count byte) []byte {
	if count == 1 {
		return single()
	}
	return wide(count)
}

// emitCountedByte picks the N=1 three-byte opcode or the four-byte
// imm8 form for a byte-at-[esp] arithmetic op.
func emitCountedByte(wide func(uint8) []byte, single func() []byte, count byte) []byte {
	if count == 1 {
		return single()
	}
	return wide(count)
}

// emitSyscall emits the shared Output/Input sequence:
//
//	mov eax, call   ; syscall number
//	mov ebx, fd     ; file descriptor
//	mov ecx, esp    ; buffer = the current cell
//	mov edx, 1      ; length
//	int 0x80
func emitSyscall(call int32, fd int32) []byte {
	var out []byte
	out = append(out, movEAXImm32(call)...)
	out = append(out, movEBXImm32(fd)...)
	out = append(out, movECXFromESP()...)
	out = append(out, movEDXImm32(1)...)
	out = append(out, int80()...)
	return out
}

// emitLoop compositionally emits a Loop node:
//
//	cmp byte [esp], 0
//	je   L_end
//	<body>
//	jmp  L_start
//	L_end:
//
// The body is emitted first into its own buffer; its length B is then
// used to compute both displacements directly, with no label table
// and no two-pass fixup.
func emitLoop(l ast.Loop) ([]byte, error) {
	bodyBytes, err := emitBody(l.Body)
	if err != nil {
		return nil, err
	}
	b := len(bodyBytes)

	if b > math.MaxInt32-15 {
		return nil, ErrDisplacementOverflow
	}

	out := make([]byte, 0, b+15)
	out = append(out, cmpByteMemZero()...)       // 4 bytes
	out = append(out, jeRel32(int32(b+5))...)    // 6 bytes: past body + trailing jmp
	out = append(out, bodyBytes...)              // B bytes
	out = append(out, jmpRel32(-int32(b+15))...) // 5 bytes: back to cmp
	return out, nil
}

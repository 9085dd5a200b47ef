package x86

// This file contains i386 instruction encoders. Each function returns
// the machine code bytes for a specific instruction, fixed to the
// exact operands this compiler ever needs -- there is no general
// operand encoder here, since the AST only ever drives these shapes.

// decESP encodes: dec esp (4C)
func decESP() []byte { return []byte{0x4C} }

// incESP encodes: inc esp (44)
func incESP() []byte { return []byte{0x44} }

// subESPImm8 encodes: sub esp, imm8 (83 EC ii)
// ModRM: mod=11 /5 rm=100 (esp) = 0xEC
func subESPImm8(imm8 uint8) []byte {
	return []byte{0x83, 0xEC, imm8}
}

// addESPImm8 encodes: add esp, imm8 (83 C4 ii)
// ModRM: mod=11 /0 rm=100 (esp) = 0xC4
func addESPImm8(imm8 uint8) []byte {
	return []byte{0x83, 0xC4, imm8}
}

// incByteMem encodes: inc byte [esp] (FE 04 24)
func incByteMem() []byte { return []byte{0xFE, 0x04, sibEsp} }

// decByteMem encodes: dec byte [esp] (FE 0C 24)
func decByteMem() []byte { return []byte{0xFE, 0x0C, sibEsp} }

// addByteMemImm8 encodes: add byte [esp], imm8 (80 04 24 ii)
func addByteMemImm8(imm8 uint8) []byte {
	return []byte{0x80, 0x04, sibEsp, imm8}
}

// subByteMemImm8 encodes: sub byte [esp], imm8 (80 2C 24 ii)
func subByteMemImm8(imm8 uint8) []byte {
	return []byte{0x80, 0x2C, sibEsp, imm8}
}

// movByteMemZero encodes: mov byte [esp], 0 (C6 04 24 00)
// Used for the `[-]`/`[+]` clear-cell idiom (ast.Zero).
func movByteMemZero() []byte {
	return []byte{0xC6, 0x04, sibEsp, 0x00}
}

// cmpByteMemZero encodes: cmp byte [esp], 0 (80 3C 24 00)
func cmpByteMemZero() []byte {
	return []byte{0x80, 0x3C, sibEsp, 0x00}
}

// movEAXImm32 encodes: mov eax, imm32 (B8 <imm32>)
func movEAXImm32(imm32 int32) []byte {
	buf := make([]byte, 5)
	buf[0] = 0xB8
	writeLE32(buf[1:], imm32)
	return buf
}

// movEBXImm32 encodes: mov ebx, imm32 (BB <imm32>)
func movEBXImm32(imm32 int32) []byte {
	buf := make([]byte, 5)
	buf[0] = 0xBB
	writeLE32(buf[1:], imm32)
	return buf
}

// movECXImm32 encodes: mov ecx, imm32 (B9 <imm32>)
func movECXImm32(imm32 int32) []byte {
	buf := make([]byte, 5)
	buf[0] = 0xB9
	writeLE32(buf[1:], imm32)
	return buf
}

// movEDXImm32 encodes: mov edx, imm32 (BA <imm32>)
func movEDXImm32(imm32 int32) []byte {
	buf := make([]byte, 5)
	buf[0] = 0xBA
	writeLE32(buf[1:], imm32)
	return buf
}

// movECXFromESP encodes: mov ecx, esp (89 E1)
// ModRM: mod=11 reg=100 (esp) rm=001 (ecx) = 0xE1
func movECXFromESP() []byte { return []byte{0x89, 0xE1} }

// movEDIFromESP encodes: mov edi, esp (89 E7)
// ModRM: mod=11 reg=100 (esp) rm=111 (edi) = 0xE7
func movEDIFromESP() []byte { return []byte{0x89, 0xE7} }

// xorEAXEAX encodes: xor eax, eax (31 C0)
func xorEAXEAX() []byte { return []byte{0x31, 0xC0} }

// xorEBXEBX encodes: xor ebx, ebx (31 DB)
func xorEBXEBX() []byte { return []byte{0x31, 0xDB} }

// incEAX encodes: inc eax (40)
func incEAX() []byte { return []byte{0x40} }

// std encodes: std -- set the direction flag (FD)
func std() []byte { return []byte{0xFD} }

// repStosd encodes: rep stosd (F3 AB)
func repStosd() []byte { return []byte{0xF3, 0xAB} }

// int80 encodes: int 0x80 (CD 80)
func int80() []byte { return []byte{0xCD, 0x80} }

// jeRel32 encodes: je rel32 (0F 84 <rel32>), relative to the byte
// following this 6-byte instruction.
func jeRel32(rel32 int32) []byte {
	buf := make([]byte, 6)
	buf[0] = 0x0F
	buf[1] = 0x84
	writeLE32(buf[2:], rel32)
	return buf
}

// jmpRel32 encodes: jmp rel32 (E9 <rel32>), relative to the byte
// following this 5-byte instruction.
func jmpRel32(rel32 int32) []byte {
	buf := make([]byte, 5)
	buf[0] = 0xE9
	writeLE32(buf[1:], rel32)
	return buf
}

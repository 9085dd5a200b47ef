// Package elf builds and writes the minimal ELF32 (i386) executable
// this compiler produces: one 52-byte header, one 32-byte program
// header, then the code buffer -- no sections, no dynamic linking, no
// symbol or string tables.
package elf

import (
	"encoding/binary"
	"os"

	"golang.org/x/sys/unix"
)

// ELF32 identification and header constants.
const (
	elfMag0     = 0x7F
	elfMag1     = 'E'
	elfMag2     = 'L'
	elfMag3     = 'F'
	elfClass32  = 1
	elfData2LSB = 1 // little-endian
	evCurrent   = 1
	elfOSABINoe = 0 // System V

	etExec  = 2 // executable file
	emI386  = 3 // Intel 80386

	ptLoad = 1

	pfX = 0x1
	pfR = 0x4

	// HeaderSize is the combined size of the ELF header (52 bytes)
	// and the single program header (32 bytes).
	HeaderSize = ehSize + phSize
	ehSize     = 52
	phSize     = 32

	// LoadBase is the virtual address the segment is mapped at.
	LoadBase = 0x08048000

	// Entry is the first byte of user code: immediately after the
	// two fixed-size headers.
	Entry = LoadBase + HeaderSize

	pageAlign = 0x1000
)

// Build returns the complete ELF32 executable image for the given
// code buffer: HeaderSize bytes of headers followed by code itself,
// unmodified.
func Build(code []byte) []byte {
	out := make([]byte, 0, HeaderSize+len(code))
	out = appendHeader(out)
	out = appendProgramHeader(out, len(code))
	out = append(out, code...)
	return out
}

// appendHeader appends the 52-byte ELF32 header.
func appendHeader(out []byte) []byte {
	var ident [16]byte
	ident[0], ident[1], ident[2], ident[3] = elfMag0, elfMag1, elfMag2, elfMag3
	ident[4] = elfClass32
	ident[5] = elfData2LSB
	ident[6] = evCurrent
	ident[7] = elfOSABINoe
	// ident[8:16] stays zero padding.

	out = append(out, ident[:]...)
	out = appendLE16(out, etExec)
	out = appendLE16(out, emI386)
	out = appendLE32(out, evCurrent)
	out = appendLE32(out, Entry)
	out = appendLE32(out, ehSize) // e_phoff
	out = appendLE32(out, 0)      // e_shoff
	out = appendLE32(out, 0)      // e_flags
	out = appendLE16(out, ehSize)
	out = appendLE16(out, phSize)
	out = appendLE16(out, 1) // e_phnum
	out = appendLE16(out, 0) // e_shentsize
	out = appendLE16(out, 0) // e_shnum
	out = appendLE16(out, 0) // e_shstrndx
	return out
}

// appendProgramHeader appends the single 32-byte PT_LOAD program
// header covering the whole file (headers + codeSize bytes of code).
func appendProgramHeader(out []byte, codeSize int) []byte {
	fileSize := uint32(HeaderSize + codeSize)

	out = appendLE32(out, ptLoad)
	out = appendLE32(out, 0) // p_offset
	out = appendLE32(out, LoadBase)
	out = appendLE32(out, LoadBase) // p_paddr
	out = appendLE32(out, fileSize) // p_filesz
	out = appendLE32(out, fileSize) // p_memsz
	out = appendLE32(out, pfR|pfX)
	out = appendLE32(out, pageAlign)
	return out
}

func appendLE16(out []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(out, buf[:]...)
}

func appendLE32(out []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(out, buf[:]...)
}

// WriteExecutable writes the ELF image for code to path, creating the
// file if absent and truncating it if present, then adds the
// user/group/other execute bits to whatever mode the file ended up
// with -- it never replaces the mode outright, matching `chmod +x`
// semantics for a file that may already exist with caller-chosen
// permissions.
func WriteExecutable(path string, code []byte) error {
	image := Build(code)

	if err := os.WriteFile(path, image, 0644); err != nil {
		return err
	}

	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return err
	}

	return unix.Chmod(path, st.Mode|0111)
}

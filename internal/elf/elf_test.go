package elf

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHeaderLayout(t *testing.T) {
	code := []byte{0xCD, 0x80}
	image := Build(code)

	require.Len(t, image, HeaderSize+len(code))

	assert.Equal(t, []byte{0x7F, 'E', 'L', 'F'}, image[0:4])
	assert.Equal(t, byte(1), image[4], "EI_CLASS must be ELFCLASS32")
	assert.Equal(t, byte(1), image[5], "EI_DATA must be ELFDATA2LSB")

	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(image[16:18]), "e_type must be ET_EXEC")
	assert.Equal(t, uint16(3), binary.LittleEndian.Uint16(image[18:20]), "e_machine must be EM_386")
	assert.Equal(t, uint32(Entry), binary.LittleEndian.Uint32(image[24:28]), "e_entry")
	assert.Equal(t, uint32(ehSize), binary.LittleEndian.Uint32(image[28:32]), "e_phoff")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(image[44:46]), "e_phnum")
}

func TestBuildEntryPointIsExact(t *testing.T) {
	assert.Equal(t, uint32(0x08048054), uint32(Entry))
}

func TestBuildProgramHeaderSizes(t *testing.T) {
	code := make([]byte, 123)
	image := Build(code)
	ph := image[ehSize:]

	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(ph[0:4]), "p_type must be PT_LOAD")
	assert.Equal(t, uint32(LoadBase), binary.LittleEndian.Uint32(ph[8:12]), "p_vaddr")
	assert.Equal(t, uint32(LoadBase), binary.LittleEndian.Uint32(ph[12:16]), "p_paddr")

	fileSize := binary.LittleEndian.Uint32(ph[16:20])
	memSize := binary.LittleEndian.Uint32(ph[20:24])
	assert.Equal(t, uint32(HeaderSize+len(code)), fileSize, "p_filesz")
	assert.Equal(t, fileSize, memSize, "p_memsz must equal p_filesz")
	assert.Equal(t, uint32(84), fileSize-uint32(len(code)), "84 fixed header bytes precede the code")

	assert.Equal(t, uint32(0x5), binary.LittleEndian.Uint32(ph[24:28]), "p_flags must be PF_R|PF_X")
	assert.Equal(t, uint32(0x1000), binary.LittleEndian.Uint32(ph[28:32]), "p_align")
}

func TestBuildEmptyCode(t *testing.T) {
	image := Build(nil)
	assert.Len(t, image, HeaderSize)
}

func TestWriteExecutableSetsExecuteBits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out")

	require.NoError(t, WriteExecutable(path, []byte{0xCD, 0x80}))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, st.Mode()&0111, "file must be executable by user/group/other")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Build([]byte{0xCD, 0x80}), data)
}

func TestWriteExecutablePreservesOtherModeBitsWhileAddingExecute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out")

	require.NoError(t, os.WriteFile(path, nil, 0640))
	require.NoError(t, WriteExecutable(path, []byte{0xCD, 0x80}))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640|0111), st.Mode().Perm())
}

func TestWriteExecutableTruncatesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out")

	require.NoError(t, os.WriteFile(path, make([]byte, 10_000), 0644))
	require.NoError(t, WriteExecutable(path, []byte{0xCD, 0x80}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, HeaderSize+2)
}

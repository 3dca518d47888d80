package arm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/agbe/arch"
)

func TestDecodeBranch(t *testing.T) {
	assert := assert.New(t)

	in, err := Decode(0xEA0000FF)
	require.NoError(t, err)

	b, ok := in.(Branch)
	require.True(t, ok, "want Branch, have %T", in)
	assert.Equal(arch.Al, b.Cond)
	assert.False(b.Link)
	assert.Equal(uint32(0xFF), b.Nn)
}

func TestDecodeBranchLink(t *testing.T) {
	in, err := Decode(0xEB000001)
	require.NoError(t, err)

	b, ok := in.(Branch)
	require.True(t, ok, "want Branch, have %T", in)
	assert.True(t, b.Link)
}

// Any word with bits [27:25] == 101 classifies as Branch, whatever the
// remaining bits hold.
func TestDecodeBranchClassification(t *testing.T) {
	words := []uint32{
		0x0A000000, // EQ condition.
		0xFBFFFFFF, // NV condition, link, all offset bits.
		0xEA123456,
		0x1B800001,
	}

	for _, w := range words {
		in, err := Decode(w)
		require.NoError(t, err, "word %08x", w)
		assert.IsType(t, Branch{}, in, "word %08x", w)
	}
}

func TestDecodeBranchExchange(t *testing.T) {
	assert := assert.New(t)

	in, err := Decode(0xE12FFF13)
	require.NoError(t, err)

	bx, ok := in.(BranchExchange)
	require.True(t, ok, "want BranchExchange, have %T", in)
	assert.Equal(arch.R3, bx.Rn)
}

func TestDecodeAluMovImmediate(t *testing.T) {
	assert := assert.New(t)

	// MOV R2, #5
	in, err := Decode(0xE3A02005)
	require.NoError(t, err)

	alu, ok := in.(Alu)
	require.True(t, ok, "want Alu, have %T", in)
	assert.Equal(arch.OpMov, alu.Op)
	assert.True(alu.Immediate)
	assert.False(alu.SetFlags)
	assert.Equal(arch.R2, alu.Rd)
	assert.Equal(uint32(5), alu.Imm())
}

func TestDecodeAluRotatedImmediate(t *testing.T) {
	// ADD R0, R0, #0xFF000000: immediate 0xFF, rotate count 4.
	in, err := Decode(0xE28004FF)
	require.NoError(t, err)

	alu, ok := in.(Alu)
	require.True(t, ok, "want Alu, have %T", in)
	assert.Equal(t, arch.OpAdd, alu.Op)
	assert.Equal(t, uint32(0xFF000000), alu.Imm())
}

// A compare-family opcode without the set-flags bit is the status
// register transfer encoding, not an ALU instruction.
func TestDecodePsrOverlap(t *testing.T) {
	// CMP encoding with S clear.
	in, err := Decode(0xE1400000)
	require.NoError(t, err)
	assert.IsType(t, Psr{}, in)

	// The same opcode with S set decodes as Alu.
	in, err = Decode(0xE1500000)
	require.NoError(t, err)

	alu, ok := in.(Alu)
	require.True(t, ok, "want Alu, have %T", in)
	assert.Equal(t, arch.OpCmp, alu.Op)
	assert.True(t, alu.SetFlags)
}

func TestDecodeSdt(t *testing.T) {
	assert := assert.New(t)

	// LDR R1, [R2, #0x10]
	in, err := Decode(0xE5921010)
	require.NoError(t, err)

	sdt, ok := in.(Sdt)
	require.True(t, ok, "want Sdt, have %T", in)
	assert.True(sdt.Load)
	assert.True(sdt.Immediate, "I bit clear means immediate offset")
	assert.True(sdt.Pre)
	assert.True(sdt.Up)
	assert.False(sdt.Byte)
	assert.False(sdt.WriteBack)
	assert.Equal(arch.R2, sdt.Rn)
	assert.Equal(arch.R1, sdt.Rd)
	assert.Equal(uint32(0x10), sdt.Offset)
}

func TestDecodeSdtStore(t *testing.T) {
	// STR R0, [R4, #4]
	in, err := Decode(0xE5840004)
	require.NoError(t, err)

	sdt, ok := in.(Sdt)
	require.True(t, ok, "want Sdt, have %T", in)
	assert.False(t, sdt.Load)
	assert.Equal(t, arch.R4, sdt.Rn)
}

func TestDecodeUnknown(t *testing.T) {
	// Bits [27:26] == 10 without the branch pattern: no rule matches.
	_, err := Decode(0xE8000000)
	require.Error(t, err)

	uerr, ok := err.(UnknownInstrError)
	require.True(t, ok, "want UnknownInstrError, have %T", err)
	assert.Equal(t, uint32(0xE8000000), uint32(uerr))
}

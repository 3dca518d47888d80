package thumb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/agbe/arch"
)

func TestDecodePCRelativeLoad(t *testing.T) {
	assert := assert.New(t)

	// LDR R3, [PC, #0x20]
	in, err := Decode(0x4B08)
	require.NoError(t, err)

	mls, ok := in.(Mls)
	require.True(t, ok, "want Mls, have %T", in)
	assert.Equal(Ldr, mls.Op)
	assert.Equal(arch.R3, mls.Rd)
	assert.Equal(arch.PC, mls.Rb)
	// Word offset 8, scaled by 4, plus the prefetch compensation.
	assert.Equal(uint16(8*4+4), mls.Nn)
}

func TestDecodeAlu(t *testing.T) {
	// BIC R1, R2
	in, err := Decode(0x4391)
	require.NoError(t, err)

	alu, ok := in.(Alu)
	require.True(t, ok, "want Alu, have %T", in)
	assert.Equal(t, arch.TOpBic, alu.Op)
	assert.Equal(t, arch.R2, alu.Rs)
	assert.Equal(t, arch.R1, alu.Rd)
}

func TestDecodeHiRegBx(t *testing.T) {
	// BX LR
	in, err := Decode(0x4770)
	require.NoError(t, err)

	hi, ok := in.(HiReg)
	require.True(t, ok, "want HiReg, have %T", in)
	assert.Equal(t, HiBx, hi.Op)
	assert.Equal(t, arch.LR, hi.Rs)
}

func TestDecodeAddSub(t *testing.T) {
	cases := []struct {
		half uint16
		op   AddSubOp
	}{
		{0x18D1, AddReg}, // ADD R1, R2, R3
		{0x1AD1, SubReg}, // SUB R1, R2, R3
		{0x1CD1, AddImm}, // ADD R1, R2, #3
		{0x1ED1, SubImm}, // SUB R1, R2, #3
	}

	for _, c := range cases {
		in, err := Decode(c.half)
		require.NoError(t, err, "halfword %04x", c.half)

		as, ok := in.(AddSub)
		require.True(t, ok, "halfword %04x: want AddSub, have %T", c.half, in)
		assert.Equal(t, c.op, as.Op)
		assert.Equal(t, arch.R1, as.Rd)
		assert.Equal(t, arch.R2, as.Rs)
		assert.Equal(t, arch.R3, as.Rn)
		assert.Equal(t, uint16(3), as.Nn)
	}
}

func TestDecodeRegShift(t *testing.T) {
	// LSL R0, R1, #12
	in, err := Decode(0x0308)
	require.NoError(t, err)

	rs, ok := in.(RegShift)
	require.True(t, ok, "want RegShift, have %T", in)
	assert.Equal(t, Lsl, rs.Op)
	assert.Equal(t, uint16(12), rs.Nn)
	assert.Equal(t, arch.R1, rs.Rs)
	assert.Equal(t, arch.R0, rs.Rd)
}

func TestDecodeMcas(t *testing.T) {
	// MOV R4, #0x2A
	in, err := Decode(0x242A)
	require.NoError(t, err)

	m, ok := in.(Mcas)
	require.True(t, ok, "want Mcas, have %T", in)
	assert.Equal(t, McasMov, m.Op)
	assert.Equal(t, arch.R4, m.Rd)
	assert.Equal(t, uint16(0x2A), m.Nn)

	// SUB R4, #1
	in, err = Decode(0x3C01)
	require.NoError(t, err)

	m, ok = in.(Mcas)
	require.True(t, ok, "want Mcas, have %T", in)
	assert.Equal(t, McasSub, m.Op)
}

func TestDecodeWordLoadStore(t *testing.T) {
	// STR R1, [R2, #0x14]
	in, err := Decode(0x6151)
	require.NoError(t, err)

	mls, ok := in.(Mls)
	require.True(t, ok, "want Mls, have %T", in)
	assert.Equal(t, Str, mls.Op)
	assert.Equal(t, arch.R1, mls.Rd)
	assert.Equal(t, arch.R2, mls.Rb)
	assert.Equal(t, uint16(0x14), mls.Nn)

	// LDR R1, [R2, #0x14]
	in, err = Decode(0x6951)
	require.NoError(t, err)

	mls, ok = in.(Mls)
	require.True(t, ok, "want Mls, have %T", in)
	assert.Equal(t, Ldr, mls.Op)
}

func TestDecodePushPop(t *testing.T) {
	in, err := Decode(0xB406) // PUSH {R1,R2}
	require.NoError(t, err)

	pp, ok := in.(PushPop)
	require.True(t, ok, "want PushPop, have %T", in)
	assert.False(t, pp.Pop)
	assert.False(t, pp.PCLR)
	assert.Equal(t, []arch.Register{arch.R1, arch.R2}, pp.Rlist.Registers())

	in, err = Decode(0xBC06) // POP {R1,R2}
	require.NoError(t, err)

	pp, ok = in.(PushPop)
	require.True(t, ok, "want PushPop, have %T", in)
	assert.True(t, pp.Pop)
}

func TestDecodeBranch(t *testing.T) {
	// BEQ with a backward offset.
	in, err := Decode(0xD0FE)
	require.NoError(t, err)

	b, ok := in.(Branch)
	require.True(t, ok, "want Branch, have %T", in)
	assert.Equal(t, arch.Eq, b.Cond)
	assert.Equal(t, int16(-2), b.Offset)

	// BCS with a forward offset.
	in, err = Decode(0xD210)
	require.NoError(t, err)

	b, ok = in.(Branch)
	require.True(t, ok, "want Branch, have %T", in)
	assert.Equal(t, arch.Cs, b.Cond)
	assert.Equal(t, int16(0x10), b.Offset)
}

func TestDecodeMultLS(t *testing.T) {
	in, err := Decode(0xC107) // STMIA R1!, {R0,R1,R2}
	require.NoError(t, err)

	m, ok := in.(MultLS)
	require.True(t, ok, "want MultLS, have %T", in)
	assert.Equal(t, Stmia, m.Op)
	assert.Equal(t, arch.R1, m.Rb)
	assert.Equal(t, 3, m.Rlist.Len())

	in, err = Decode(0xC907) // LDMIA R1!, {R0,R1,R2}
	require.NoError(t, err)

	m, ok = in.(MultLS)
	require.True(t, ok, "want MultLS, have %T", in)
	assert.Equal(t, Ldmia, m.Op)
}

// The first halfword of a long branch cannot be decoded alone; the
// caller must fetch the second halfword and use DecodeLong.
func TestDecodeLongBranchContinuation(t *testing.T) {
	_, err := Decode(0xF000)
	require.Equal(t, ErrIncomplete, err)

	in, err := DecodeLong(0xF000, 0xF801)
	require.NoError(t, err)

	lb, ok := in.(LongBranch)
	require.True(t, ok, "want LongBranch, have %T", in)
	assert.Equal(t, uint32(2), lb.Target)
}

func TestDecodeLongBranchTarget(t *testing.T) {
	// Upper field 0x123, lower field 0x456.
	in, err := DecodeLong(0xF123, 0xFC56)
	require.NoError(t, err)

	lb := in.(LongBranch)
	assert.Equal(t, uint32(0x123)<<12|uint32(0x456)<<1, lb.Target)
}

// A second halfword without the BL low-half signature is an internal
// decode inconsistency, distinct from an unknown instruction.
func TestDecodeLongBranchInconsistent(t *testing.T) {
	_, err := DecodeLong(0xF000, 0x2000)
	require.Error(t, err)

	ierr, ok := err.(InconsistentPairError)
	require.True(t, ok, "want InconsistentPairError, have %T", err)
	assert.Equal(t, uint16(0xF000), ierr.First)
	assert.Equal(t, uint16(0x2000), ierr.Second)
}

func TestDecodeUnknown(t *testing.T) {
	// SP-relative load/store space is not part of the decoded surface.
	_, err := Decode(0x9000)
	require.Error(t, err)

	uerr, ok := err.(UnknownInstrError)
	require.True(t, ok, "want UnknownInstrError, have %T", err)
	assert.Equal(t, uint16(0x9000), uint16(uerr))
}

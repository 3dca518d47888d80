package arm

import (
	"fmt"

	"github.com/hexaflex/agbe/arch"
)

// bxMask is the fixed bit pattern occupying bits [27:8] of a branch
// exchange instruction.
const bxMask = 0b0001_0010_1111_1111_1111

// UnknownInstrError is returned when no decode rule matches a word.
// It carries the offending word for diagnostics.
type UnknownInstrError uint32

func (e UnknownInstrError) Error() string {
	return fmt.Sprintf("unknown instruction word %08x", uint32(e))
}

// Decode decodes a single 32-bit word. Dispatch goes from the most
// specific bit pattern to the least, mirroring the encoding's own
// disambiguation order.
func Decode(word uint32) (Instr, error) {
	cond := arch.Condition(word >> 28)

	switch {
	case (word>>25)&0b111 == 0b101:
		return Branch{
			Cond: cond,
			Link: (word>>24)&1 == 1,
			Nn:   word & 0xffffff,
		}, nil

	case (word>>8)&0xfffff == bxMask:
		return BranchExchange{
			Cond: cond,
			Rn:   arch.Register(word & 0xf),
		}, nil

	case (word>>26)&0b11 == 0b00:
		op := arch.AluOp((word >> 21) & 0xf)
		setFlags := (word>>20)&1 == 1

		// A compare opcode that does not write flags is really the
		// status register transfer encoding.
		if !setFlags && op.IsCompare() {
			return Psr{Cond: cond}, nil
		}

		return Alu{
			Cond:      cond,
			Op:        op,
			Immediate: (word>>25)&1 == 1,
			SetFlags:  setFlags,
			Rn:        arch.Register((word >> 16) & 0xf),
			Rd:        arch.Register((word >> 12) & 0xf),
			Operand:   word & 0xfff,
		}, nil

	case (word>>26)&0b11 == 0b01:
		return Sdt{
			Cond:      cond,
			Immediate: (word>>25)&1 == 0,
			Pre:       (word>>24)&1 == 1,
			Up:        (word>>23)&1 == 1,
			Byte:      (word>>22)&1 == 1,
			WriteBack: (word>>21)&1 == 1,
			Load:      (word>>20)&1 == 1,
			Rn:        arch.Register((word >> 16) & 0xf),
			Rd:        arch.Register((word >> 12) & 0xf),
			Offset:    word & 0xfff,
		}, nil
	}

	return nil, UnknownInstrError(word)
}

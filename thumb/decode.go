package thumb

import (
	"errors"
	"fmt"

	"github.com/hexaflex/agbe/arch"
)

// ErrIncomplete is returned by Decode when the halfword is the first
// half of a long branch. The caller must fetch the following halfword
// and resolve the pair with DecodeLong.
var ErrIncomplete = errors.New("halfword is the first half of a long branch")

// UnknownInstrError is returned when no decode rule matches a
// halfword. It carries the offending halfword for diagnostics.
type UnknownInstrError uint16

func (e UnknownInstrError) Error() string {
	return fmt.Sprintf("unknown instruction halfword %04x", uint16(e))
}

// InconsistentPairError is returned by DecodeLong when the first
// halfword announced a long branch but the pair does not form one.
type InconsistentPairError struct {
	First, Second uint16
}

func (e InconsistentPairError) Error() string {
	return fmt.Sprintf("halfword pair %04x %04x is not a long branch", e.First, e.Second)
}

// Decode decodes a single 16-bit halfword, dispatching on the top bit
// patterns from most specific to least.
func Decode(half uint16) (Instr, error) {
	switch {
	case half>>11 == 0b01001:
		// PC-relative literal load. The offset is word granular and
		// includes the +4 the prefetch adds to the PC operand.
		return Mls{
			Op: Ldr,
			Rd: arch.Register((half >> 8) & 0b111),
			Rb: arch.PC,
			Nn: (half&0xff)*4 + 4,
		}, nil

	case half>>10 == 0b010000:
		return Alu{
			Op: arch.ThumbAluOp((half >> 6) & 0xf),
			Rs: arch.Register((half >> 3) & 0b111),
			Rd: arch.Register(half & 0b111),
		}, nil

	case half>>10 == 0b010001:
		return HiReg{
			Op: HiRegOp((half >> 8) & 0b11),
			Rs: arch.Register((half >> 3) & 0xf),
			Rd: arch.Register(half & 0b111),
		}, nil

	case half>>11 == 0b00011:
		nn := (half >> 6) & 0b111
		return AddSub{
			Op: AddSubOp((half >> 9) & 0b11),
			Rd: arch.Register(half & 0b111),
			Rs: arch.Register((half >> 3) & 0b111),
			Rn: arch.Register(nn),
			Nn: nn,
		}, nil

	case half>>13 == 0b000:
		return RegShift{
			Op: ShiftOp((half >> 11) & 0b11),
			Nn: (half >> 6) & 0b11111,
			Rs: arch.Register((half >> 3) & 0b111),
			Rd: arch.Register(half & 0b111),
		}, nil

	case half>>13 == 0b001:
		return Mcas{
			Op: McasOp((half >> 11) & 0b11),
			Rd: arch.Register((half >> 8) & 0b111),
			Nn: half & 0xff,
		}, nil

	case half>>12 == 0b0110:
		// Word load/store with base + immediate offset. The 5-bit
		// offset field counts words.
		op := Str
		if (half>>11)&1 == 1 {
			op = Ldr
		}
		return Mls{
			Op: op,
			Rd: arch.Register(half & 0b111),
			Rb: arch.Register((half >> 3) & 0b111),
			Nn: ((half >> 6) & 0b11111) * 4,
		}, nil

	case half>>12 == 0b1011 && (half>>9)&0b11 == 0b10:
		return PushPop{
			Pop:   (half>>11)&1 == 1,
			PCLR:  (half>>8)&1 == 1,
			Rlist: arch.RegisterList(half & 0xff),
		}, nil

	case half>>12 == 0b1101:
		return Branch{
			Cond:   arch.Condition((half >> 8) & 0xf),
			Offset: int16(int8(half & 0xff)),
		}, nil

	case half>>12 == 0b1100:
		op := Stmia
		if (half>>11)&1 == 1 {
			op = Ldmia
		}
		return MultLS{
			Op:    op,
			Rb:    arch.Register((half >> 8) & 0b111),
			Rlist: arch.RegisterList(half & 0xff),
		}, nil

	case half>>11 == 0b11110:
		return nil, ErrIncomplete
	}

	return nil, UnknownInstrError(half)
}

// DecodeLong resolves a halfword pair announced by ErrIncomplete into
// a long branch with link. The second halfword must carry the BL
// low-half signature.
func DecodeLong(first, second uint16) (Instr, error) {
	if first>>11 != 0b11110 || second>>11 != 0b11111 {
		return nil, InconsistentPairError{First: first, Second: second}
	}

	target := uint32(first&0x7ff)<<12 | uint32(second&0x7ff)<<1
	return LongBranch{Target: target}, nil
}

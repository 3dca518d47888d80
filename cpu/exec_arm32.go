package cpu

import (
	"github.com/hexaflex/agbe/arch"
	"github.com/hexaflex/agbe/arm"
)

// Pipeline offsets added to R15 when it is read as an operand in
// 32-bit mode. The fetch loop keeps R15 at the next fetch address, so
// the value an instruction observes is ahead of it by two or three
// instruction slots depending on the addressing form.
const (
	pipelineImmediate = 8  // Immediate or immediate-shift operand forms.
	pipelineRegShift  = 12 // Register-shifted operand forms.
)

// operand returns the value register r presents as an operand, with
// the pipeline offset applied when r is the program counter.
func (c *CPU) operand(r arch.Register, pipeline uint32) uint32 {
	v := c.regs[r]
	if r == arch.PC {
		v += pipeline
	}
	return v
}

// execArm dispatches one decoded 32-bit instruction to its semantic
// handler. Every handler is gated on the instruction's condition; a
// failed condition falls through to the next instruction.
func (c *CPU) execArm(in arm.Instr) error {
	if !in.Condition().Passes(c.n, c.z, c.c, c.v) {
		c.regs[arch.PC] += 4
		return nil
	}

	switch in := in.(type) {
	case arm.Branch:
		return c.armBranch(in)
	case arm.BranchExchange:
		c.branchExchange(c.regs[in.Rn])
		return nil
	case arm.Alu:
		return c.armAlu(in)
	case arm.Sdt:
		return c.armSdt(in)
	case arm.Psr:
		// Intentional no-op; status register transfers are decoded
		// only so the dispatch stays total.
		c.regs[arch.PC] += 4
		return nil
	}

	return Unimplemented("%s", in)
}

// armBranch implements B. The 24-bit offset is word granular and
// taken as unsigned. BL is not part of the supported surface.
func (c *CPU) armBranch(in arm.Branch) error {
	if in.Link {
		return Unimplemented("branch with link")
	}

	c.regs[arch.PC] += pipelineImmediate + in.Nn*4
	return nil
}

// branchExchange jumps to the given target and selects the
// instruction set from its bit 0, which is then cleared to form the
// next fetch address. Shared by the 32-bit BX and the 16-bit
// hi-register BX.
func (c *CPU) branchExchange(target uint32) {
	c.thumb = target&1 == 1
	c.regs[arch.PC] = (target | 1) - 1
}

func (c *CPU) armAlu(in arm.Alu) error {
	switch in.Op {
	case arch.OpAdd:
		if !in.Immediate {
			return Unimplemented("ADD with register operand")
		}

		src := c.operand(in.Rn, pipelineImmediate)
		c.regs[in.Rd] = src + in.Imm()
		c.regs[arch.PC] += 4
		return nil

	case arch.OpMov:
		if !in.Immediate {
			return Unimplemented("MOV with register operand")
		}

		c.regs[in.Rd] = in.Imm()
		c.regs[arch.PC] += 4
		return nil
	}

	return Unimplemented("ALU op %s", in.Op)
}

// armSdt implements the immediate-offset load/store forms. The store
// path transfers R0 regardless of the encoded source register; other
// sources are outside the supported surface.
func (c *CPU) armSdt(in arm.Sdt) error {
	if !in.Immediate {
		return Unimplemented("data transfer with register offset")
	}

	if in.Load {
		addr := c.operand(in.Rn, pipelineImmediate) + in.Offset
		c.regs[in.Rd] = c.mem.U32(addr)
	} else {
		c.mem.SetU32(c.regs[in.Rn]+in.Offset, c.regs[arch.R0])
	}

	c.regs[arch.PC] += 4
	return nil
}

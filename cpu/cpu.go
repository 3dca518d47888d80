// Package cpu implements the execution engine: the register and flag
// state, the flat memory model and the fetch-decode-execute loop over
// the two instruction encodings.
package cpu

import (
	"fmt"
	"strings"

	"github.com/hexaflex/agbe/arch"
	"github.com/hexaflex/agbe/arm"
	"github.com/hexaflex/agbe/thumb"
)

// TraceFunc represents a callback handler for per-instruction
// diagnostic output. It receives the address the instruction was
// fetched from and the decoded instruction.
type TraceFunc func(addr uint32, instr fmt.Stringer)

// CPU is the machine state: the 16 register values, the four
// condition flags, the active instruction set and the memory. There is
// exactly one owner of a CPU at a time; Step is not safe for
// concurrent use.
type CPU struct {
	regs  [arch.NumRegisters]uint32
	n     bool // Sign flag.
	z     bool // Zero flag.
	c     bool // Carry flag.
	v     bool // Overflow flag.
	thumb bool // 16-bit encoding active.
	diag  bool // Per-instruction diagnostics enabled.
	trace TraceFunc
	mem   Memory
}

// New creates a new CPU with a zeroed flat memory.
// Optionally with the given diagnostic trace handler.
func New(trace TraceFunc) *CPU {
	if trace == nil {
		trace = func(uint32, fmt.Stringer) { /* nop */ }
	}
	return &CPU{
		trace: trace,
		mem:   NewFlatMemory(),
	}
}

// Initialize resets all machine state and copies the program bytes
// into memory at the fixed load address, where execution begins in
// 32-bit mode.
func (c *CPU) Initialize(program []byte) {
	c.regs = [arch.NumRegisters]uint32{}
	c.n, c.z, c.c, c.v = false, false, false, false
	c.thumb = false
	c.mem.Write(ROMBase, program)
	c.regs[arch.PC] = ROMBase
}

// Memory returns the cpu's memory.
func (c *CPU) Memory() Memory {
	return c.mem
}

// Reg returns the value of the given register.
func (c *CPU) Reg(r arch.Register) uint32 {
	return c.regs[r]
}

// SetReg sets the value of the given register.
func (c *CPU) SetReg(r arch.Register, v uint32) {
	c.regs[r] = v
}

// PC returns the address of the next instruction to fetch.
func (c *CPU) PC() uint32 {
	return c.regs[arch.PC]
}

// Thumb reports whether the 16-bit encoding is active.
func (c *CPU) Thumb() bool {
	return c.thumb
}

// Flags returns the sign, zero, carry and overflow flags.
func (c *CPU) Flags() (n, z, cf, v bool) {
	return c.n, c.z, c.c, c.v
}

// SetDiagnostics enables or disables per-instruction trace output.
func (c *CPU) SetDiagnostics(on bool) {
	c.diag = on
}

// Diagnostics reports whether per-instruction trace output is enabled.
func (c *CPU) Diagnostics() bool {
	return c.diag
}

// ReadWord reads the 32-bit word at the given address. It exists for
// state inspection by the debugger and the renderer.
func (c *CPU) ReadWord(addr uint32) uint32 {
	return c.mem.U32(addr)
}

// Step fetches, decodes and executes exactly one instruction. A
// decode or execution failure is returned as-is and leaves the machine
// state as the failing instruction found it; there is no recovery or
// retry at this level.
func (c *CPU) Step() error {
	pc := c.regs[arch.PC]

	if c.thumb {
		half := c.mem.U16(pc)
		in, err := thumb.Decode(half)
		if err == thumb.ErrIncomplete {
			// First half of a long branch: fetch the second halfword
			// and resolve the pair.
			in, err = thumb.DecodeLong(half, c.mem.U16(pc+2))
		}
		if err != nil {
			return err
		}

		if c.diag {
			c.trace(pc, in)
		}
		return c.execThumb(in)
	}

	word := c.mem.U32(pc)
	in, err := arm.Decode(word)
	if err != nil {
		return err
	}

	if c.diag {
		c.trace(pc, in)
	}
	return c.execArm(in)
}

// String renders the full register and flag state, one register per
// line, the way the debugger's print command shows it.
func (c *CPU) String() string {
	var sb strings.Builder
	for i, v := range c.regs {
		fmt.Fprintf(&sb, "%-3s %08x\n", arch.Register(i), v)
	}
	fmt.Fprintf(&sb, "N=%d Z=%d C=%d V=%d thumb=%t",
		flagBit(c.n), flagBit(c.z), flagBit(c.c), flagBit(c.v), c.thumb)
	return sb.String()
}

func flagBit(v bool) int {
	if v {
		return 1
	}
	return 0
}

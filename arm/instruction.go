// Package arm implements the decoder for the 32-bit instruction
// encoding. Decoding is a pure function from a fetched word to one of a
// closed set of instruction variants; it performs no execution and
// touches no machine state.
package arm

import (
	"fmt"

	"github.com/hexaflex/agbe/arch"
)

// Instr is a decoded 32-bit instruction. The concrete types form a
// closed set: Branch, BranchExchange, Alu, Sdt and Psr.
type Instr interface {
	// Condition returns the condition selector the instruction was
	// decoded with. Execution must evaluate it against the flags
	// before applying any effect.
	Condition() arch.Condition

	fmt.Stringer
}

// Branch is the B/BL pair. The 24-bit offset field is word granular
// and taken as unsigned; sign extension of backward targets is a known
// gap carried over from the systems this core is validated against.
type Branch struct {
	Cond arch.Condition
	Link bool   // True for BL.
	Nn   uint32 // Low 24 bits of the word.
}

func (b Branch) Condition() arch.Condition { return b.Cond }

func (b Branch) String() string {
	if b.Link {
		return fmt.Sprintf("BL%s #%06x", suffix(b.Cond), b.Nn)
	}
	return fmt.Sprintf("B%s #%06x", suffix(b.Cond), b.Nn)
}

// BranchExchange is BX only; BXJ and BLX are not part of this set.
// Bit 0 of the target register's value selects the instruction set the
// processor continues in.
type BranchExchange struct {
	Cond arch.Condition
	Rn   arch.Register
}

func (b BranchExchange) Condition() arch.Condition { return b.Cond }

func (b BranchExchange) String() string {
	return fmt.Sprintf("BX%s %s", suffix(b.Cond), b.Rn)
}

// Alu is a data processing instruction. When Immediate is set, Operand
// holds an 8-bit value with a 4-bit rotate count; otherwise it carries
// the register operand encoding.
type Alu struct {
	Cond      arch.Condition
	Op        arch.AluOp
	Immediate bool
	SetFlags  bool
	Rn        arch.Register
	Rd        arch.Register
	Operand   uint32
}

func (a Alu) Condition() arch.Condition { return a.Cond }

// Imm returns the rotated immediate second operand. Only meaningful
// when Immediate is set.
func (a Alu) Imm() uint32 {
	ror := (a.Operand >> 8) & 0xf
	nn := a.Operand & 0xff
	return ror32(nn, ror*2)
}

func (a Alu) String() string {
	return fmt.Sprintf("%s%s %s, %s, #%06x", a.Op, suffix(a.Cond), a.Rd, a.Rn, a.Operand)
}

// Sdt is a single data transfer (LDR/STR). Note the immediate flag has
// the opposite polarity of the Alu one: the encoding's I bit clear
// means immediate offset here.
type Sdt struct {
	Cond      arch.Condition
	Immediate bool // Offset is an immediate value, not a shifted register.
	Pre       bool // Add offset before the transfer.
	Up        bool // Add offset rather than subtract.
	Byte      bool // Transfer a single byte rather than a word.
	WriteBack bool // Write the computed address back to Rn.
	Load      bool // Load from memory rather than store to it.
	Rn        arch.Register
	Rd        arch.Register
	Offset    uint32 // 12-bit offset field.
}

func (s Sdt) Condition() arch.Condition { return s.Cond }

func (s Sdt) String() string {
	op := "STR"
	if s.Load {
		op = "LDR"
	}
	return fmt.Sprintf("%s%s %s, [%s, #%03x]", op, suffix(s.Cond), s.Rd, s.Rn, s.Offset)
}

// Psr is the status register transfer stub (MRS/MSR). It is decoded to
// keep the dispatch total but executes as a deliberate no-op.
type Psr struct {
	Cond arch.Condition
}

func (p Psr) Condition() arch.Condition { return p.Cond }

func (p Psr) String() string { return "PSR" + suffix(p.Cond) }

// suffix renders a condition as an instruction suffix, hiding AL the
// way an assembler listing would.
func suffix(c arch.Condition) string {
	if c == arch.Al {
		return ""
	}
	return c.String()
}

// ror32 rotates v right by n bits.
func ror32(v, n uint32) uint32 {
	n &= 31
	if n == 0 {
		return v
	}
	return v>>n | v<<(32-n)
}

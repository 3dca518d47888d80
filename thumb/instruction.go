// Package thumb implements the decoder for the 16-bit instruction
// encoding, including the two-halfword long branch form. Like package
// arm it is purely a bit-layout concern: one halfword in, one tagged
// instruction out.
package thumb

import (
	"fmt"

	"github.com/hexaflex/agbe/arch"
)

// Instr is a decoded 16-bit instruction. The concrete types form a
// closed set.
type Instr interface {
	thumbInstr()

	fmt.Stringer
}

// MlsOp selects the transfer direction of a memory load/store.
type MlsOp uint8

// Memory load/store directions.
const (
	Ldr MlsOp = iota
	Str
)

// Mls is a memory load/store with a base register and an immediate
// byte offset. The PC-relative literal load decodes to this form with
// Rb = PC and the pipeline compensation already folded into Nn.
type Mls struct {
	Op MlsOp
	Rd arch.Register
	Rb arch.Register
	Nn uint16
}

func (Mls) thumbInstr() {}

func (m Mls) String() string {
	op := "STR"
	if m.Op == Ldr {
		op = "LDR"
	}
	return fmt.Sprintf("%s %s, [%s, #%x]", op, m.Rd, m.Rb, m.Nn)
}

// Alu is the two-register ALU form operating on low registers.
type Alu struct {
	Op arch.ThumbAluOp
	Rd arch.Register
	Rs arch.Register
}

func (Alu) thumbInstr() {}

func (a Alu) String() string {
	return fmt.Sprintf("%s %s, %s", a.Op, a.Rd, a.Rs)
}

// HiRegOp selects the hi-register operation.
type HiRegOp uint8

// Hi register operations.
const (
	HiAdd HiRegOp = iota
	HiCmp
	HiMov
	HiBx
)

func (op HiRegOp) String() string {
	names := [...]string{"ADD", "CMP", "MOV", "BX"}
	if int(op) < len(names) {
		return names[op]
	}
	return "???"
}

// HiReg is the hi register operation / branch exchange form. For BX
// the source register field spans bits [6:3] so any of the 16
// registers may supply the jump target.
type HiReg struct {
	Op HiRegOp
	Rs arch.Register
	Rd arch.Register
}

func (HiReg) thumbInstr() {}

func (h HiReg) String() string {
	if h.Op == HiBx {
		return fmt.Sprintf("BX %s", h.Rs)
	}
	return fmt.Sprintf("%s %s, %s", h.Op, h.Rd, h.Rs)
}

// AddSubOp selects the add/subtract variant.
type AddSubOp uint8

// Add/subtract variants. Register forms take Rn as the second operand,
// immediate forms reuse the same bit field as a 3-bit immediate.
const (
	AddReg AddSubOp = iota
	SubReg
	AddImm
	SubImm
)

// AddSub is the three-operand add/subtract form.
type AddSub struct {
	Op AddSubOp
	Rd arch.Register
	Rs arch.Register
	Rn arch.Register // Second operand register for the register forms.
	Nn uint16        // 3-bit immediate for the immediate forms.
}

func (AddSub) thumbInstr() {}

func (a AddSub) String() string {
	switch a.Op {
	case AddReg:
		return fmt.Sprintf("ADD %s, %s, %s", a.Rd, a.Rs, a.Rn)
	case SubReg:
		return fmt.Sprintf("SUB %s, %s, %s", a.Rd, a.Rs, a.Rn)
	case AddImm:
		return fmt.Sprintf("ADD %s, %s, #%x", a.Rd, a.Rs, a.Nn)
	}
	return fmt.Sprintf("SUB %s, %s, #%x", a.Rd, a.Rs, a.Nn)
}

// ShiftOp selects the move-shifted-register operation.
type ShiftOp uint8

// Shift operations.
const (
	Lsl ShiftOp = iota
	Lsr
	Asr
)

func (op ShiftOp) String() string {
	names := [...]string{"LSL", "LSR", "ASR"}
	if int(op) < len(names) {
		return names[op]
	}
	return "???"
}

// RegShift is the move shifted register form with a 5-bit shift count.
type RegShift struct {
	Op ShiftOp
	Rd arch.Register
	Rs arch.Register
	Nn uint16
}

func (RegShift) thumbInstr() {}

func (r RegShift) String() string {
	return fmt.Sprintf("%s %s, %s, #%d", r.Op, r.Rd, r.Rs, r.Nn)
}

// McasOp selects the move/compare/add/subtract immediate operation.
type McasOp uint8

// Move/compare/add/subtract immediate operations.
const (
	McasMov McasOp = iota
	McasCmp
	McasAdd
	McasSub
)

func (op McasOp) String() string {
	names := [...]string{"MOV", "CMP", "ADD", "SUB"}
	if int(op) < len(names) {
		return names[op]
	}
	return "???"
}

// Mcas is the 8-bit immediate form operating on a single low register.
type Mcas struct {
	Op McasOp
	Rd arch.Register
	Nn uint16
}

func (Mcas) thumbInstr() {}

func (m Mcas) String() string {
	return fmt.Sprintf("%s %s, #%x", m.Op, m.Rd, m.Nn)
}

// MultLSOp selects the multiple load/store direction.
type MultLSOp uint8

// Multiple load/store directions.
const (
	Stmia MultLSOp = iota // Store to memory, incrementing the base.
	Ldmia                 // Load from memory, incrementing the base.
)

// MultLS is the multiple load/store form with an auto-incrementing
// base register.
type MultLS struct {
	Op    MultLSOp
	Rb    arch.Register
	Rlist arch.RegisterList
}

func (MultLS) thumbInstr() {}

func (m MultLS) String() string {
	op := "STMIA"
	if m.Op == Ldmia {
		op = "LDMIA"
	}
	return fmt.Sprintf("%s %s!, %s", op, m.Rb, m.Rlist)
}

// PushPop is the stack form of multiple load/store, implicitly based
// on the stack pointer. The PC/LR list bit of the encoding is exposed
// but not part of the supported surface.
type PushPop struct {
	Pop   bool // Pop rather than push.
	PCLR  bool // List additionally includes LR (push) or PC (pop).
	Rlist arch.RegisterList
}

func (PushPop) thumbInstr() {}

func (p PushPop) String() string {
	op := "PUSH"
	if p.Pop {
		op = "POP"
	}
	return fmt.Sprintf("%s %s", op, p.Rlist)
}

// Branch is the conditional branch form with a signed step-2 offset.
type Branch struct {
	Cond   arch.Condition
	Offset int16 // Sign-extended 8-bit offset, in halfword steps.
}

func (Branch) thumbInstr() {}

func (b Branch) String() string {
	return fmt.Sprintf("B%s #%d", b.Cond, b.Offset)
}

// LongBranch is the branch-with-link assembled from two consecutive
// halfwords. Target is the concatenation of the two 11-bit fields,
// halfword granular.
type LongBranch struct {
	Target uint32
}

func (LongBranch) thumbInstr() {}

func (l LongBranch) String() string {
	return fmt.Sprintf("BL #%06x", l.Target)
}

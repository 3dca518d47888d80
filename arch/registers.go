// Package arch defines the architectural constants shared by the
// 32-bit and 16-bit instruction decoders: the register file layout,
// condition codes and ALU opcode tables.
package arch

import (
	"fmt"
	"strings"
)

// Register identifies one of the 16 general purpose registers.
// It names a register, it does not hold its value.
type Register uint8

// The 16 architectural registers. R13-R15 have dedicated roles.
const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	SP // R13: stack pointer.
	LR // R14: link register.
	PC // R15: program counter.
)

// NumRegisters is the size of the register file.
const NumRegisters = 16

func (r Register) String() string {
	switch r {
	case SP:
		return "SP"
	case LR:
		return "LR"
	case PC:
		return "PC"
	}
	return fmt.Sprintf("R%d", uint8(r))
}

// RegisterList is the 8-bit mask used by the multiple load/store and
// push/pop encodings. Bit i selects register Ri. Transfers always
// process the list in ascending register order.
type RegisterList uint8

// Registers expands the mask into registers, R0 first through R7 last.
func (l RegisterList) Registers() []Register {
	out := make([]Register, 0, 8)
	for i := Register(0); i <= R7; i++ {
		if l&(1<<i) != 0 {
			out = append(out, i)
		}
	}
	return out
}

// Len returns the number of registers selected by the mask.
func (l RegisterList) Len() int {
	n := 0
	for i := 0; i < 8; i++ {
		if l&(1<<i) != 0 {
			n++
		}
	}
	return n
}

func (l RegisterList) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, r := range l.Registers() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(r.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

package arch

// AluOp is the 4-bit data processing opcode of the 32-bit encoding.
type AluOp uint8

// The 16 data processing opcodes, in encoding order.
const (
	OpAnd AluOp = iota
	OpEor
	OpSub
	OpRsb
	OpAdd
	OpAdc
	OpSbc
	OpRsc
	OpTst
	OpTeq
	OpCmp
	OpCmn
	OpOrr
	OpMov
	OpBic
	OpMvn
)

// IsCompare reports whether the opcode belongs to the compare-only
// family, which writes flags but no destination register. An encoding
// carrying one of these with the set-flags bit clear is not a data
// processing instruction at all but a status register transfer.
func (op AluOp) IsCompare() bool {
	switch op {
	case OpTst, OpTeq, OpCmp, OpCmn:
		return true
	}
	return false
}

func (op AluOp) String() string {
	names := [...]string{
		"AND", "EOR", "SUB", "RSB", "ADD", "ADC", "SBC", "RSC",
		"TST", "TEQ", "CMP", "CMN", "ORR", "MOV", "BIC", "MVN",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return "???"
}

// ThumbAluOp is the 4-bit opcode of the 16-bit two-register ALU form.
// The table differs from the 32-bit one: shifts and multiply take the
// places of the operand-shifted variants.
type ThumbAluOp uint8

// The 16 two-register ALU opcodes, in encoding order.
const (
	TOpAnd ThumbAluOp = iota
	TOpEor
	TOpLsl
	TOpLsr
	TOpAsr
	TOpAdc
	TOpSbc
	TOpRor
	TOpTst
	TOpNeg
	TOpCmp
	TOpCmn
	TOpOrr
	TOpMul
	TOpBic
	TOpMvn
)

func (op ThumbAluOp) String() string {
	names := [...]string{
		"AND", "EOR", "LSL", "LSR", "ASR", "ADC", "SBC", "ROR",
		"TST", "NEG", "CMP", "CMN", "ORR", "MUL", "BIC", "MVN",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return "???"
}

package arch

// Condition is the 4-bit condition selector carried in the top bits of
// every 32-bit instruction and in the conditional branch forms of the
// 16-bit encoding.
type Condition uint8

// The 16 condition codes.
const (
	Eq Condition = iota // Z set: equal.
	Ne                  // Z clear: not equal.
	Cs                  // C set: unsigned higher or same.
	Cc                  // C clear: unsigned lower.
	Mi                  // N set: negative.
	Pl                  // N clear: positive or zero.
	Vs                  // V set: overflow.
	Vc                  // V clear: no overflow.
	Hi                  // C set and Z clear: unsigned higher.
	Ls                  // C clear or Z set: unsigned lower or same.
	Ge                  // N equals V: signed greater or equal.
	Lt                  // N differs from V: signed less than.
	Gt                  // Z clear and N equals V: signed greater than.
	Le                  // Z set or N differs from V: signed less or equal.
	Al                  // Always.
	Nv                  // Never.
)

// Passes reports whether the condition holds for the given flag state.
func (c Condition) Passes(n, z, cf, v bool) bool {
	switch c {
	case Eq:
		return z
	case Ne:
		return !z
	case Cs:
		return cf
	case Cc:
		return !cf
	case Mi:
		return n
	case Pl:
		return !n
	case Vs:
		return v
	case Vc:
		return !v
	case Hi:
		return cf && !z
	case Ls:
		return !cf || z
	case Ge:
		return n == v
	case Lt:
		return n != v
	case Gt:
		return !z && n == v
	case Le:
		return z || n != v
	case Al:
		return true
	case Nv:
		return false
	}
	return false
}

func (c Condition) String() string {
	names := [...]string{
		"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
		"HI", "LS", "GE", "LT", "GT", "LE", "AL", "NV",
	}
	if int(c) < len(names) {
		return names[c]
	}
	return "??"
}

package cpu

// Fixed addresses of the memory map. Program bytes are copied to
// ROMBase at initialization; the display collaborator reads the
// control register and framebuffer regions.
const (
	DisplayControl = 0x04000000 // 16-bit video mode control register.
	Framebuffer    = 0x06000000 // Row-major 240x160 15-bit pixel surface.
	ROMBase        = 0x08000000 // Program load address.
)

// MemoryCapacity is the extent of the flat address space. It covers
// every region the supported programs touch: the control registers,
// the framebuffer and the ROM area with its working data.
const MemoryCapacity = 0x10000000

// Memory is the system's byte-addressed memory. All multi-byte access
// is aligned and little-endian. The interface exists so a mapped
// region implementation can replace the flat backing store without
// touching the decoders or the execution engine.
type Memory interface {
	// U16 defines the 16-bit value at the given address.
	U16(addr uint32) uint16
	SetU16(addr uint32, v uint16)

	// U32 defines the 32-bit value at the given address.
	U32(addr uint32) uint32
	SetU32(addr uint32, v uint32)

	// Write writes len(p) bytes from p into memory, starting at the
	// given address.
	Write(addr uint32, p []byte)

	// Read reads len(p) bytes from memory into p, starting at the
	// given address.
	Read(addr uint32, p []byte)
}

// FlatMemory is a Memory backed by a single contiguous buffer.
type FlatMemory []byte

// NewFlatMemory allocates a flat buffer covering the full address
// space.
func NewFlatMemory() FlatMemory {
	return make(FlatMemory, MemoryCapacity)
}

// U16 returns the 16-bit value at the given address.
func (m FlatMemory) U16(addr uint32) uint16 {
	return uint16(m[addr]) | uint16(m[addr+1])<<8
}

// SetU16 sets the 16-bit value at the given address.
func (m FlatMemory) SetU16(addr uint32, v uint16) {
	m[addr] = byte(v)
	m[addr+1] = byte(v >> 8)
}

// U32 returns the 32-bit value at the given address.
func (m FlatMemory) U32(addr uint32) uint32 {
	return uint32(m[addr]) | uint32(m[addr+1])<<8 |
		uint32(m[addr+2])<<16 | uint32(m[addr+3])<<24
}

// SetU32 sets the 32-bit value at the given address.
func (m FlatMemory) SetU32(addr uint32, v uint32) {
	m[addr] = byte(v)
	m[addr+1] = byte(v >> 8)
	m[addr+2] = byte(v >> 16)
	m[addr+3] = byte(v >> 24)
}

// Write writes len(p) bytes from p into memory, starting at the given
// address.
func (m FlatMemory) Write(addr uint32, p []byte) {
	copy(m[addr:], p)
}

// Read reads len(p) bytes from memory into p, starting at the given
// address.
func (m FlatMemory) Read(addr uint32, p []byte) {
	copy(p, m[addr:])
}

// Package rom implements loading and validation of cartridge images.
// The fixed-layout metadata header occupies the first 192 bytes of an
// image; the engine itself never interprets it, but the entry points
// and title are useful to report before a run.
package rom

import (
	"os"

	"github.com/pkg/errors"
)

// HeaderSize is the size of the cartridge header in bytes.
const HeaderSize = 0xC0

// fixedValue is the mandatory check byte at offset 0xB2.
const fixedValue = 0x96

// Header is the cartridge metadata header.
type Header struct {
	// EntryPoint holds a single 32-bit opcode redirecting to the
	// actual start address, usually an unconditional branch.
	EntryPoint uint32

	// Logo is the 156-byte compressed boot logo bitmap.
	Logo []byte

	Title     string // Game title, up to 12 characters.
	GameCode  string // Game code, 4 characters.
	MakerCode string // Maker code, 2 characters.

	UnitCode        byte // Main unit code, 0 for current models.
	DeviceType      byte // Usually 0; may carry debugging hardware bits.
	SoftwareVersion byte
	ComplementCheck byte

	// RAMEntryPoint and JoyEntryPoint are the multiboot entry points,
	// used only when the unit was booted over the link port.
	RAMEntryPoint uint32
	JoyEntryPoint uint32

	BootMode byte // Overwritten by the multiboot transfer mode.
	SlaveID  byte // Overwritten by the multiboot slave number.
}

// ParseHeader reads the metadata header from the start of a cartridge
// image.
func ParseHeader(image []byte) (*Header, error) {
	if len(image) < HeaderSize+0x24 {
		return nil, errors.Errorf("image of %d bytes is too small to hold a header", len(image))
	}

	if image[0xB2] != fixedValue {
		return nil, errors.Errorf("header check byte is %02x, want %02x", image[0xB2], fixedValue)
	}

	h := &Header{
		EntryPoint:      u32(image[0x00:]),
		Logo:            append([]byte(nil), image[0x04:0x04+0x9C]...),
		Title:           trim(image[0xA0 : 0xA0+12]),
		GameCode:        trim(image[0xAC : 0xAC+4]),
		MakerCode:       trim(image[0xB0 : 0xB0+2]),
		UnitCode:        image[0xB3],
		DeviceType:      image[0xB4],
		SoftwareVersion: image[0xBC],
		ComplementCheck: image[0xBD],
		RAMEntryPoint:   u32(image[0xC0:]),
		BootMode:        image[0xC4],
		SlaveID:         image[0xC5],
		JoyEntryPoint:   u32(image[0xE0:]),
	}

	return h, nil
}

// Load reads a cartridge image from disk and parses its header. The
// returned bytes are the whole image, header included, ready to be
// copied to the load address.
func Load(file string) (*Header, []byte, error) {
	image, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read image %q", file)
	}

	h, err := ParseHeader(image)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid image %q", file)
	}

	return h, image, nil
}

// u32 reads a little-endian 32-bit value.
func u32(p []byte) uint32 {
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24
}

// trim interprets a fixed-size header field as a string, dropping
// trailing zero padding.
func trim(p []byte) string {
	end := len(p)
	for end > 0 && p[end-1] == 0 {
		end--
	}
	return string(p[:end])
}

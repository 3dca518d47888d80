// Package display implements the framebuffer renderer. It reads the
// fixed video memory region of an engine and draws it as a textured
// screen quad. Only bitmap mode 3 with background 2 enabled is
// supported; the mode is validated against the display control
// register before the first frame.
package display

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/agbe/cpu"
)

// Screen dimensions in pixels.
const (
	Width  = 240
	Height = 160
)

// ControlMode3 is the display control value the renderer requires:
// BG mode 3 with screen display BG2.
const ControlMode3 = 0x0403

// Display renders the framebuffer region of a CPU's memory.
type Display struct {
	cpu         *cpu.CPU
	pixels      [Width * Height * 3]byte
	shader      uint32
	vao         uint32
	vbo         uint32
	tex         uint32
	initialized bool
}

// New creates a renderer reading from the given CPU.
func New(c *cpu.CPU) *Display {
	return &Display{cpu: c}
}

// Startup validates the video mode and initializes GL resources. It
// requires a current GL context on the calling thread.
func (d *Display) Startup() error {
	ctrl := d.cpu.Memory().U16(cpu.DisplayControl)
	if ctrl != ControlMode3 {
		return errors.Errorf("display control is %04x; only BG mode 3 with BG2 (%04x) is supported", ctrl, ControlMode3)
	}

	var err error
	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.tex = makeTexture()
	d.initialized = true
	return nil
}

// Shutdown cleans up GL resources.
func (d *Display) Shutdown() error {
	d.initialized = false
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Draw converts the current framebuffer contents and renders them.
func (d *Display) Draw() {
	if !d.initialized {
		return
	}

	d.convert()
	uploadTexture(d.tex, Width, Height, d.pixels[:])

	gl.UseProgram(d.shader)
	gl.BindVertexArray(d.vao)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)

	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// convert expands the 15-bit framebuffer pixels into the 8-bit RGB
// texture buffer. Pixels hold 5 bits each for red, green and blue from
// the low bit up; the top bit is unused.
func (d *Display) convert() {
	mem := d.cpu.Memory()

	for i := 0; i < Width*Height; i++ {
		v := mem.U16(cpu.Framebuffer + uint32(i)*2)

		d.pixels[i*3+0] = expand5(v)
		d.pixels[i*3+1] = expand5(v >> 5)
		d.pixels[i*3+2] = expand5(v >> 10)
	}
}

// expand5 scales a 5-bit color channel to the full 8-bit range.
func expand5(v uint16) byte {
	return byte((uint32(v&0x1f)*255 + 15) / 31)
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}

package debugger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/agbe/arch"
	"github.com/hexaflex/agbe/cpu"
)

// testProgram is MOV R0, #1; MOV R0, #2; followed by an undecodable
// word so a free run always terminates.
func testProgram() []byte {
	return []byte{
		0x01, 0x00, 0xA0, 0xE3, // MOV R0, #1
		0x02, 0x00, 0xA0, 0xE3, // MOV R0, #2
		0x00, 0x00, 0x00, 0xE8,
	}
}

func newTestDebugger() (*Debugger, *cpu.CPU, *strings.Builder) {
	var out strings.Builder
	c := cpu.New(nil)
	d := New(c, &out)
	d.Initialize(testProgram())
	return d, c, &out
}

func TestCommandQuit(t *testing.T) {
	d, _, _ := newTestDebugger()

	for _, cmd := range []string{"q", "quit", "exit"} {
		assert.Equal(t, ErrQuit, d.Command(cmd), "command %q", cmd)
	}
}

func TestCommandNext(t *testing.T) {
	d, c, _ := newTestDebugger()

	require.NoError(t, d.Command("n"))
	assert.Equal(t, uint32(1), c.Reg(arch.R0))
	assert.Equal(t, uint32(cpu.ROMBase+4), c.PC())
}

func TestCommandPrint(t *testing.T) {
	d, _, out := newTestDebugger()

	require.NoError(t, d.Command("p"))
	assert.Contains(t, out.String(), "PC  08000000")
	assert.Contains(t, out.String(), "thumb=false")
}

func TestCommandValue(t *testing.T) {
	d, _, out := newTestDebugger()

	require.NoError(t, d.Command("v 0x8000000"))
	assert.Contains(t, out.String(), "value found e3a00001")
}

func TestCommandLog(t *testing.T) {
	d, c, _ := newTestDebugger()

	require.NoError(t, d.Command("logon"))
	assert.True(t, c.Diagnostics())
	require.NoError(t, d.Command("logoff"))
	assert.False(t, c.Diagnostics())
}

func TestCommandUnknown(t *testing.T) {
	d, _, out := newTestDebugger()

	require.NoError(t, d.Command("frobnicate"))
	assert.Contains(t, out.String(), `unknown command "frobnicate"`)
}

func TestCommandBadAddress(t *testing.T) {
	d, _, _ := newTestDebugger()

	assert.Error(t, d.Command("b"))
	assert.Error(t, d.Command("b zzz"))
}

// rb registers a breakpoint relative to the program load address; a
// run stops there without executing the break instruction.
func TestRunBreakpoint(t *testing.T) {
	d, c, out := newTestDebugger()

	require.NoError(t, d.Command("rb 4"))
	require.NoError(t, d.Command("r"))

	assert.Equal(t, uint32(1), c.Reg(arch.R0))
	assert.Equal(t, uint32(cpu.ROMBase+4), c.PC())
	assert.Contains(t, out.String(), "break on addr 08000004")

	// Resuming executes the break address once, then fails on the
	// undecodable word.
	assert.Error(t, d.Command("r"))
	assert.Equal(t, uint32(2), c.Reg(arch.R0))
}

func TestRunBreakpointAbsolute(t *testing.T) {
	d, c, _ := newTestDebugger()

	require.NoError(t, d.Command("b 0x8000008"))
	require.NoError(t, d.Command("r"))
	assert.Equal(t, uint32(cpu.ROMBase+8), c.PC())
}

func TestRunScript(t *testing.T) {
	d, c, out := newTestDebugger()

	err := d.RunScript(`
# stop before the second instruction
rb 4
r
p
q
r
`)
	require.NoError(t, err)

	// The quit command ends the script; the second run never happens.
	assert.Equal(t, uint32(cpu.ROMBase+4), c.PC())
	assert.Contains(t, out.String(), "R0  00000001")
}

func TestReplQuit(t *testing.T) {
	d, c, out := newTestDebugger()

	err := d.Repl(strings.NewReader("n\nq\n"), true)
	require.NoError(t, err)
	assert.Equal(t, uint32(cpu.ROMBase+4), c.PC())
	assert.Contains(t, out.String(), "> ")
}

// Step failures inside the repl are reported on the output stream but
// leave the session running.
func TestReplReportsErrors(t *testing.T) {
	d, _, out := newTestDebugger()

	err := d.Repl(strings.NewReader("r\np\nq\n"), false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "unknown instruction")
	assert.Contains(t, out.String(), "R0  00000002")
}

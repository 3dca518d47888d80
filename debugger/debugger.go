// Package debugger implements the line-command debugger. It owns an
// execution engine instance and drives it one step at a time, checking
// breakpoints between steps and exposing state inspection commands.
package debugger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/agbe/cpu"
)

// ErrQuit is returned by Run when a quit command is read.
var ErrQuit = errors.New("quit")

// Debugger drives a CPU interactively or from a command script.
type Debugger struct {
	cpu    *cpu.CPU
	breaks []uint32
	out    io.Writer
}

// New creates a debugger owning the given CPU. Command output is
// written to out.
func New(c *cpu.CPU, out io.Writer) *Debugger {
	return &Debugger{
		cpu: c,
		out: out,
	}
}

// Initialize loads the given program bytes into the CPU, resetting
// all machine state.
func (d *Debugger) Initialize(program []byte) {
	d.cpu.Initialize(program)
}

// Repl reads commands from in, one per line, until a quit command or
// end of input. When prompt is set a prompt is written before each
// read, for interactive use.
func (d *Debugger) Repl(in io.Reader, prompt bool) error {
	sc := bufio.NewScanner(in)

	for {
		if prompt {
			fmt.Fprint(d.out, "> ")
		}
		if !sc.Scan() {
			return sc.Err()
		}

		if err := d.Command(sc.Text()); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			// Decode and execution failures are reported, not fatal
			// to the session: state stays inspectable.
			fmt.Fprintln(d.out, err)
		}
	}
}

// RunScript executes the commands in the given script text. Blank
// lines and lines starting with # are ignored.
func (d *Debugger) RunScript(script string) error {
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := d.Command(line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Command executes a single debugger command.
func (d *Debugger) Command(cmd string) error {
	cmd = strings.TrimSpace(cmd)

	switch cmd {
	case "q", "quit", "exit":
		return ErrQuit
	case "p", "print":
		fmt.Fprintln(d.out, d.cpu)
		return nil
	case "r", "run":
		return d.run()
	case "n", "next":
		return d.cpu.Step()
	case "logon":
		d.cpu.SetDiagnostics(true)
		return nil
	case "logoff":
		d.cpu.SetDiagnostics(false)
		return nil
	}

	switch {
	case strings.HasPrefix(cmd, "v ") || strings.HasPrefix(cmd, "value "):
		return d.printValue(cmd)
	case strings.HasPrefix(cmd, "b ") || strings.HasPrefix(cmd, "break "):
		return d.addBreak(cmd, 0)
	case strings.HasPrefix(cmd, "rb ") || strings.HasPrefix(cmd, "rbreak "):
		return d.addBreak(cmd, cpu.ROMBase)
	}

	fmt.Fprintf(d.out, "unknown command %q\n", cmd)
	return nil
}

// run steps the CPU until the program counter hits a breakpoint or a
// step fails. Breakpoints are checked before each step, so resuming
// from a break address executes it once before it can hit again.
func (d *Debugger) run() error {
	for first := true; ; first = false {
		if !first && d.atBreak() {
			fmt.Fprintf(d.out, "break on addr %08x\n", d.cpu.PC())
			return nil
		}
		if err := d.cpu.Step(); err != nil {
			return err
		}
	}
}

func (d *Debugger) atBreak() bool {
	pc := d.cpu.PC()
	for _, b := range d.breaks {
		if b == pc {
			return true
		}
	}
	return false
}

// addBreak parses the address argument and registers a breakpoint at
// base + address.
func (d *Debugger) addBreak(cmd string, base uint32) error {
	addr, err := hexArg(cmd)
	if err != nil {
		return err
	}
	d.breaks = append(d.breaks, base+addr)
	return nil
}

// printValue reads and prints the 32-bit word at the given address.
func (d *Debugger) printValue(cmd string) error {
	addr, err := hexArg(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "value found %08x\n", d.cpu.ReadWord(addr))
	return nil
}

// hexArg parses the first argument of a command as a hex address.
func hexArg(cmd string) (uint32, error) {
	fields := strings.Fields(cmd)
	if len(fields) < 2 {
		return 0, errors.Errorf("%s: missing address argument", fields[0])
	}

	addr, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "%s: bad address %q", fields[0], fields[1])
	}
	return uint32(addr), nil
}

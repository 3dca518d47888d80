package cpu

import "fmt"

// UnimplementedError is returned when an instruction decoded cleanly
// but no semantic handler covers the opcode or operand mode. It is
// deliberately distinct from the decoders' unknown-instruction errors:
// the instruction is recognized, its effect is not.
type UnimplementedError string

// Unimplemented creates a new, formatted UnimplementedError.
func Unimplemented(f string, argv ...interface{}) UnimplementedError {
	return UnimplementedError(fmt.Sprintf(f, argv...))
}

func (e UnimplementedError) Error() string {
	return "unimplemented instruction: " + string(e)
}

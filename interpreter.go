// interpreter.go — the public façade (SPEC_FULL.md §6.2).
//
// Grounded on the teacher's interpreter.go: a small, public-API-only file
// that wires the lexer, parser, and evaluator together and is the one
// legitimate place a runtimeError panic gets converted into a returned Go
// error (mirroring the teacher's own top-level EvalSource boundary).
package mython

import (
	"fmt"
	"io"
	"os"
)

// Interpreter owns a global closure and runs Mython source against it.
// It is not safe for concurrent use by multiple goroutines (spec §5): a
// caller needing parallel runs should construct one Interpreter per run.
type Interpreter struct {
	Global *Closure
}

func NewInterpreter() *Interpreter {
	return &Interpreter{Global: NewClosure()}
}

// Run lexes, parses, and executes src against ip's global closure,
// writing `print` output to out. Any lex/parse/runtime failure comes back
// as an error already rendered with a caret-style source snippet (§7).
func (ip *Interpreter) Run(src string, out io.Writer) error {
	prog, err := ParseSource(src)
	if err != nil {
		return WrapErrorWithSource(err, src)
	}

	ctx := NewContext(out)
	var runErr error
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			switch sig := r.(type) {
			case runtimeError:
				runErr = sig.asError()
			case returnSignal:
				runErr = fmt.Errorf("internal error: a return statement escaped its method body")
			default:
				panic(r)
			}
		}()
		prog.Execute(ip.Global, ctx)
	}()
	if runErr != nil {
		return WrapErrorWithSource(runErr, src)
	}
	return nil
}

// RunFile reads path and runs it exactly as Run would.
func (ip *Interpreter) RunFile(path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return ip.Run(string(data), out)
}

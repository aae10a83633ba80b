package vecsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Step is one gate of a circuit and the qubits it acts on.
type Step struct {
	Gate   Gate
	Qubits []int
}

/*
Circuit is an ordered list of gate steps that is applied to a register as a
unit. Every step is checked against the register before the first one runs,
so a circuit with a bad step leaves the register untouched.
*/
type Circuit struct {
	Steps []Step
}

func NewCircuit() *Circuit {
	return &Circuit{Steps: make([]Step, 0)}
}

// Add appends a step and returns the circuit for chaining.
func (c *Circuit) Add(g Gate, qubits ...int) *Circuit {
	c.Steps = append(c.Steps, Step{Gate: g, Qubits: qubits})
	return c
}

/*
ParseCircuit reads one step per line or per ';'-separated statement, written
as a gate name followed by its qubit indices:

	H 0
	CNOT 0 1; CZ 1 2

Blank statements and text after '#' are ignored.
*/
func ParseCircuit(src string) (*Circuit, error) {
	c := NewCircuit()

	for lineNo, line := range strings.Split(src, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		for _, stmt := range strings.Split(line, ";") {
			fields := strings.Fields(stmt)
			if len(fields) == 0 {
				continue
			}

			g, err := ParseGate(fields[0])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo+1)
			}

			qubits := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				q, err := strconv.Atoi(f)
				if err != nil {
					return nil, errors.Wrapf(
						ErrInvalidQubitToken, "line %d: %v", lineNo+1, err,
					)
				}
				qubits = append(qubits, q)
			}

			c.Add(g, qubits...)
		}
	}

	return c, nil
}

// Validate checks every step against a register of the given width.
func (c *Circuit) Validate(qubits int) error {
	for i, step := range c.Steps {
		if err := step.validate(qubits); err != nil {
			return errors.Wrapf(err, "step %d (%s)", i, step.Gate)
		}
	}
	return nil
}

func (s Step) validate(qubits int) error {
	if s.Gate.Arity() == 0 {
		return ErrUnknownGate
	}
	if len(s.Qubits) != s.Gate.Arity() {
		return errors.Wrapf(
			ErrGateArity, "takes %d qubits, got %d", s.Gate.Arity(), len(s.Qubits),
		)
	}

	for _, q := range s.Qubits {
		if q < 0 || q >= qubits {
			return errors.Wrapf(
				ErrQubitIndexOutOfRange, "qubit %d, register has %d", q, qubits,
			)
		}
	}

	if len(s.Qubits) == 2 && s.Qubits[0] == s.Qubits[1] {
		return errors.Wrapf(ErrInvalidQubitIndex, "both operands are qubit %d", s.Qubits[0])
	}
	return nil
}

// Run validates the whole circuit, then applies its steps to r in order.
func (c *Circuit) Run(e *Engine, r *Register) error {
	if err := c.Validate(r.Qubits()); err != nil {
		return err
	}

	for i, step := range c.Steps {
		if err := e.Apply(r, step.Gate, step.Qubits...); err != nil {
			return errors.Wrapf(err, "step %d (%s)", i, step.Gate)
		}
	}
	return nil
}

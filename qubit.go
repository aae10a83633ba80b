package vecsim

import (
	"github.com/pkg/errors"
)

// Qubit is the single-qubit state a description symbol stands for.
type Qubit struct {
	alpha complex128 // |0⟩ amplitude
	beta  complex128 // |1⟩ amplitude
}

var symbols = map[rune]Qubit{
	'0': {alpha: 1, beta: 0},
	'1': {alpha: 0, beta: 1},
	'+': {alpha: invSqrt2, beta: invSqrt2},
	'-': {alpha: invSqrt2, beta: -invSqrt2},
}

/*
Construct builds a register from a compact description such as "01+".
Each character is one qubit: '0' and '1' are basis states, '+' and '-' the
equal superpositions (|0⟩ ± |1⟩)/√2. The description reads like a binary
basis label: the first character is the highest qubit and the last character
is qubit 0, so Construct("01") is basis state 1.
*/
func Construct(description string) (*Register, error) {
	return construct(description, governor())
}

// construct admits the register against mg before allocating it.
func construct(description string, mg *MemoryGovernor) (*Register, error) {
	if description == "" {
		return nil, ErrEmptyDescription
	}

	qubits := make([]Qubit, 0, len(description))
	for pos, ch := range description {
		q, ok := symbols[ch]
		if !ok {
			return nil, errors.Wrapf(
				ErrInvalidSymbol, "%q at position %d, expected one of 0, 1, +, -", ch, pos,
			)
		}
		qubits = append(qubits, q)
	}

	if err := mg.Admit(len(qubits)); err != nil {
		return nil, err
	}

	// Fold from the last symbol (qubit 0) upwards; each step puts the new
	// qubit in front as the new high bit.
	amps := make([]complex128, 1<<len(qubits))
	amps[0] = 1
	size := 1
	for i := len(qubits) - 1; i >= 0; i-- {
		q := qubits[i]
		for j := 0; j < size; j++ {
			v := amps[j]
			amps[j] = q.alpha * v
			amps[j+size] = q.beta * v
		}
		size <<= 1
	}

	return fromAmplitudes(amps)
}

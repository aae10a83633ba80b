package vecsim

import "github.com/pkg/errors"

var (
	// Construction.
	ErrInvalidSymbol    = errors.New("invalid basis symbol")
	ErrEmptyDescription = errors.New("empty register description")
	ErrInvalidLength    = errors.New("amplitude count must be a non-zero power of two")
	ErrZeroNorm         = errors.New("cannot normalize a zero vector")

	// Algebra.
	ErrDimensionMismatch = errors.New("registers have different qubit counts")
	ErrInvalidSign       = errors.New("superposition sign must be +1 or -1")

	// Gates and measurement.
	ErrQubitIndexOutOfRange = errors.New("qubit index out of range")
	ErrInvalidQubitIndex    = errors.New("two-qubit gate needs distinct qubits")
	ErrUnknownGate          = errors.New("unknown gate")
	ErrGateArity            = errors.New("wrong number of qubits for gate")
	ErrInvalidCount         = errors.New("measurement count must not be negative")

	// Circuit text.
	ErrInvalidQubitToken = errors.New("qubit operand is not an integer")

	/*
		ErrZeroProbabilityCollapse means a sampled outcome had no probability
		mass left to renormalize. A register that only ever went through
		unitary gates cannot reach this, so seeing it means the state was
		corrupted somewhere upstream.
	*/
	ErrZeroProbabilityCollapse = errors.New("collapse onto zero-probability outcome")

	// Resources.
	ErrInsufficientMemory = errors.New("register does not fit in the memory budget")
	ErrPoolClosed         = errors.New("worker pool is closed")
)

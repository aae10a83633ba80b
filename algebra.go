package vecsim

import (
	"github.com/pkg/errors"
)

/*
Tensor composes two registers into one of a.Qubits()+b.Qubits() qubits. The
left operand occupies the high-order qubits:

	out[i] = a[i >> nb] * b[i & (2^nb - 1)]

Neither input is modified.
*/
func Tensor(a, b *Register) (*Register, error) {
	return tensor(a, b, governor())
}

func tensor(a, b *Register, mg *MemoryGovernor) (*Register, error) {
	if err := mg.Admit(a.qubits + b.qubits); err != nil {
		return nil, err
	}

	lb := len(b.amplitudes)
	amps := make([]complex128, len(a.amplitudes)*lb)
	for i, x := range a.amplitudes {
		row := amps[i*lb : (i+1)*lb]
		for j, y := range b.amplitudes {
			row[j] = x * y
		}
	}

	return fromAmplitudes(amps)
}

// Add returns the normalized superposition a + b.
func Add(a, b *Register) (*Register, error) {
	return Superpose(a, b, 1)
}

// Subtract returns the normalized superposition a - b.
func Subtract(a, b *Register) (*Register, error) {
	return Superpose(a, b, -1)
}

/*
Superpose adds (sign = +1) or subtracts (sign = -1) two registers of equal
width elementwise and renormalizes the sum. Opposite states cancel to the
zero vector, which cannot be normalized and yields ErrZeroNorm.
*/
func Superpose(a, b *Register, sign int) (*Register, error) {
	if sign != 1 && sign != -1 {
		return nil, errors.Wrapf(ErrInvalidSign, "got %d", sign)
	}
	if a.qubits != b.qubits {
		return nil, errors.Wrapf(
			ErrDimensionMismatch, "%d qubits vs %d qubits", a.qubits, b.qubits,
		)
	}

	s := complex(float64(sign), 0)
	amps := make([]complex128, len(a.amplitudes))
	for i := range amps {
		amps[i] = a.amplitudes[i] + s*b.amplitudes[i]
	}

	r, err := fromAmplitudes(amps)
	if err != nil {
		return nil, errors.Wrap(err, "superpose")
	}
	return r, nil
}

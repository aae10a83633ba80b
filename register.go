package vecsim

import (
	"math"
	"math/bits"
	"math/cmplx"

	"github.com/pkg/errors"
)

// Epsilon is the magnitude below which an amplitude compares as zero.
const Epsilon = 1e-8

// Vectors shorter than this are treated as the zero vector by normalize.
const minNorm = 1e-10

/*
Register is the full state of n qubits as 2^n complex amplitudes. Bit b of a
basis index holds the value of qubit b, so qubit 0 is the least significant
bit. The amplitudes are kept at unit norm: construction, algebra and
measurement renormalize explicitly, gates preserve it because they are
unitary.

A Register is owned by whoever holds it. Gates and measurement update it in
place, algebra returns a new Register. Callers that hand a register to
another goroutine should pass a Clone.
*/
type Register struct {
	amplitudes []complex128
	qubits     int
}

/*
NewRegister builds a register from raw amplitudes. The slice is copied, its
length must be a non-zero power of two, and the result is normalized.
*/
func NewRegister(amplitudes []complex128) (*Register, error) {
	n := len(amplitudes)
	if n == 0 || n&(n-1) != 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "got %d amplitudes", n)
	}

	qubits := bits.TrailingZeros(uint(n))
	if err := governor().Admit(qubits); err != nil {
		return nil, err
	}

	amps := make([]complex128, n)
	copy(amps, amplitudes)

	return fromAmplitudes(amps)
}

// fromAmplitudes takes ownership of amps, which must already have a
// power-of-two length.
func fromAmplitudes(amps []complex128) (*Register, error) {
	r := &Register{
		amplitudes: amps,
		qubits:     bits.TrailingZeros(uint(len(amps))),
	}

	if err := r.normalize(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Register) Qubits() int {
	return r.qubits
}

// Len is the number of amplitudes, 2^Qubits().
func (r *Register) Len() int {
	return len(r.amplitudes)
}

// Norm is the L2 norm of the amplitude vector.
func (r *Register) Norm() float64 {
	return math.Sqrt(sumSquares(r.amplitudes))
}

// Amplitudes returns a copy of the state vector.
func (r *Register) Amplitudes() []complex128 {
	out := make([]complex128, len(r.amplitudes))
	copy(out, r.amplitudes)
	return out
}

func (r *Register) Amplitude(index int) complex128 {
	return r.amplitudes[index]
}

// Support lists the basis indices whose amplitude is not negligible.
func (r *Register) Support() []int {
	var out []int
	for i, a := range r.amplitudes {
		if cmplx.Abs(a) > Epsilon {
			out = append(out, i)
		}
	}
	return out
}

// Clone returns an independent copy of the register.
func (r *Register) Clone() *Register {
	amps := make([]complex128, len(r.amplitudes))
	copy(amps, r.amplitudes)
	return &Register{amplitudes: amps, qubits: r.qubits}
}

// ApproxEqual compares the amplitudes elementwise against values.
func (r *Register) ApproxEqual(values []complex128) bool {
	if len(values) != len(r.amplitudes) {
		return false
	}

	for i, v := range values {
		if cmplx.Abs(r.amplitudes[i]-v) >= Epsilon {
			return false
		}
	}
	return true
}

// ApproxEqualReal is ApproxEqual for purely real expectations.
func (r *Register) ApproxEqualReal(values []float64) bool {
	if len(values) != len(r.amplitudes) {
		return false
	}

	for i, v := range values {
		if cmplx.Abs(r.amplitudes[i]-complex(v, 0)) >= Epsilon {
			return false
		}
	}
	return true
}

// IsClose reports whether two registers hold the same state within Epsilon.
func (r *Register) IsClose(other *Register) bool {
	if other == nil {
		return false
	}
	return r.ApproxEqual(other.amplitudes)
}

func (r *Register) normalize() error {
	norm := math.Sqrt(sumSquares(r.amplitudes))
	if norm < minNorm || math.IsNaN(norm) {
		return ErrZeroNorm
	}

	scale := complex(1/norm, 0)
	for i := range r.amplitudes {
		r.amplitudes[i] *= scale
	}
	return nil
}

func (r *Register) checkQubit(q int) error {
	if q < 0 || q >= r.qubits {
		return errors.Wrapf(
			ErrQubitIndexOutOfRange, "qubit %d, register has %d", q, r.qubits,
		)
	}
	return nil
}

func sumSquares(amps []complex128) float64 {
	var total float64
	for _, a := range amps {
		total += real(a)*real(a) + imag(a)*imag(a)
	}
	return total
}

package vecsim

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

/*
Measure samples qubit target of r count times, collapsing the register after
every sample. Samples are taken strictly one after the other: each one sees
the state the previous collapse left behind, so once a qubit has been
measured, measuring it again without an intervening gate repeats the same
outcome.

For every sample:
 1. p0 and p1 are the probability masses of target = 0 and target = 1
 2. the outcome is 1 when u·(p0+p1) < p1 for a draw u from rng, else 0,
    so a draw exactly on the boundary belongs to 0; when one side has no
    mass the other outcome is certain and no draw is consumed
 3. amplitudes disagreeing with the outcome are zeroed
 4. the survivors are divided by the square root of their mass
*/
func (e *Engine) Measure(r *Register, target, count int, rng RandomSource) ([]int, error) {
	if err := r.checkQubit(target); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, errors.Wrapf(ErrInvalidCount, "got %d", count)
	}

	outcomes := make([]int, 0, count)
	for i := 0; i < count; i++ {
		outcome, err := measureOnce(r, target, rng)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}

	e.metrics.recordMeasurements(outcomes)
	return outcomes, nil
}

// MeasureSeeded is Measure with a math/rand source seeded from seed.
func (e *Engine) MeasureSeeded(r *Register, target, count int, seed int64) ([]int, error) {
	return e.Measure(r, target, count, rand.New(rand.NewSource(seed)))
}

// Measure runs Engine.Measure on the default engine.
func Measure(r *Register, target, count int, rng RandomSource) ([]int, error) {
	return DefaultEngine().Measure(r, target, count, rng)
}

// Probability returns the probability that measuring target yields 1,
// without touching the register.
func Probability(r *Register, target int) (float64, error) {
	if err := r.checkQubit(target); err != nil {
		return 0, err
	}

	p0, p1 := masses(r.amplitudes, target)
	if p0+p1 == 0 {
		return 0, errors.Wrapf(ErrZeroProbabilityCollapse, "qubit %d", target)
	}
	return p1 / (p0 + p1), nil
}

func measureOnce(r *Register, target int, rng RandomSource) (int, error) {
	p0, p1 := masses(r.amplitudes, target)

	var outcome int
	switch {
	case p0 == 0:
		outcome = 1
	case p1 == 0:
		outcome = 0
	case rng.Float64()*(p0+p1) < p1:
		outcome = 1
	}

	mass := p0
	if outcome == 1 {
		mass = p1
	}
	if mass == 0 {
		return 0, errors.Wrapf(
			ErrZeroProbabilityCollapse, "qubit %d outcome %d", target, outcome,
		)
	}

	bit := 1 << target
	scale := complex(1/math.Sqrt(mass), 0)
	for i := range r.amplitudes {
		if (i&bit != 0) == (outcome == 1) {
			r.amplitudes[i] *= scale
		} else {
			r.amplitudes[i] = 0
		}
	}

	return outcome, nil
}

// masses returns the summed squared magnitudes with the target bit clear
// and set.
func masses(amps []complex128, target int) (p0, p1 float64) {
	bit := 1 << target
	for i, a := range amps {
		m := real(a)*real(a) + imag(a)*imag(a)
		if i&bit == 0 {
			p0 += m
		} else {
			p1 += m
		}
	}
	return p0, p1
}

package vecsim

import (
	"sync"

	"github.com/pbnjay/memory"
	"github.com/pkg/errors"
)

// MaxQubits caps register width regardless of how much memory is installed.
const MaxQubits = 40

const amplitudeBytes = 16

/*
MemoryGovernor decides whether a register of a given width may be allocated.
A dense register of n qubits needs 2^n * 16 bytes, so one extra qubit doubles
the footprint; the governor turns what would be an out-of-memory crash into
ErrInsufficientMemory before the allocation is attempted.

The budget is a fraction of physical memory as reported by the OS. When the
platform does not report it, only MaxQubits applies.
*/
type MemoryGovernor struct {
	mu sync.RWMutex

	maxMemoryFraction float64
	totalMemory       uint64
}

/*
NewMemoryGovernor creates a governor that lets a single register use at most
maxMemoryFraction of physical memory.

Parameters:
  - maxMemoryFraction: share of total memory (0.0-1.0) one register may take

Returns:
  - *MemoryGovernor: a governor sized against the current machine
*/
func NewMemoryGovernor(maxMemoryFraction float64) *MemoryGovernor {
	if maxMemoryFraction <= 0 || maxMemoryFraction > 1 {
		maxMemoryFraction = defaultMaxMemoryFraction
	}

	return &MemoryGovernor{
		maxMemoryFraction: maxMemoryFraction,
		totalMemory:       memory.TotalMemory(),
	}
}

// Budget returns the byte budget for one register, or 0 when unlimited.
func (mg *MemoryGovernor) Budget() uint64 {
	mg.mu.RLock()
	defer mg.mu.RUnlock()

	return uint64(float64(mg.totalMemory) * mg.maxMemoryFraction)
}

// Admit returns nil when an n-qubit register fits the budget.
func (mg *MemoryGovernor) Admit(qubits int) error {
	if qubits > MaxQubits {
		return errors.Wrapf(
			ErrInsufficientMemory, "%d qubits exceeds the %d qubit cap", qubits, MaxQubits,
		)
	}

	need := RegisterBytes(qubits)
	if budget := mg.Budget(); budget > 0 && need > budget {
		return errors.Wrapf(
			ErrInsufficientMemory, "%d qubits need %d bytes, budget is %d", qubits, need, budget,
		)
	}

	return nil
}

// RegisterBytes is the size of the amplitude array of an n-qubit register.
func RegisterBytes(qubits int) uint64 {
	return uint64(amplitudeBytes) << uint(qubits)
}

var (
	defaultGovernorOnce sync.Once
	defaultGovernor     *MemoryGovernor
)

func governor() *MemoryGovernor {
	defaultGovernorOnce.Do(func() {
		defaultGovernor = NewMemoryGovernor(defaultMaxMemoryFraction)
	})
	return defaultGovernor
}

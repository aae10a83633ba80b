package vecsim

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
	"go.uber.org/zap"
)

/*
Engine applies gates and measurements to registers. It owns the worker pool
used for gate application and is safe to share between goroutines, as long
as no two of them operate on the same Register at the same time.
*/
type Engine struct {
	config   Config
	pool     *Pool
	metrics  *Metrics
	logger   *zap.Logger
	governor *MemoryGovernor
	kets     *KetCache
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used by the engine and its pool.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics lets several engines report into one Metrics.
func WithMetrics(metrics *Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

/*
NewEngine creates an engine from cfg, or from the defaults when cfg is nil.
With a single worker no pool is started and every gate runs on the caller's
goroutine.
*/
func NewEngine(cfg *Config, opts ...EngineOption) *Engine {
	if cfg == nil {
		cfg = NewConfig()
	}

	e := &Engine{
		config:  cfg.WithDefaults(),
		metrics: NewMetrics(),
	}
	e.governor = NewMemoryGovernor(e.config.MaxMemoryFraction)
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = newLogger(e.config.Debug)
	}

	e.logger.Info(
		"started engine",
		zap.Int("workers", e.config.Workers),
		zap.Int("grainSize", e.config.GrainSize),
		zap.Float64("maxMemoryFraction", e.config.MaxMemoryFraction),
	)
	if e.config.Debug {
		errnie.Info(
			"NewEngine - workers %v, grainSize %v",
			e.config.Workers,
			e.config.GrainSize,
		)
	}

	kets, err := NewKetCache(e.config.KetCacheSize)
	if err != nil {
		// Only reachable with a non-positive size, which WithDefaults rules out.
		panic(err)
	}
	kets.governor = e.governor
	e.kets = kets

	if e.config.Workers > 1 {
		e.pool = NewPool(context.Background(), e.config.Workers, e.logger)
	}

	return e
}

func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func (e *Engine) Config() Config {
	return e.config
}

func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

/*
Construct builds a register like the package-level Construct, but checks the
width against this engine's memory budget and serves repeated descriptions
from the engine's ket cache.
*/
func (e *Engine) Construct(description string) (*Register, error) {
	return e.kets.Construct(description)
}

// Tensor is the package-level Tensor checked against this engine's budget.
func (e *Engine) Tensor(a, b *Register) (*Register, error) {
	return tensor(a, b, e.governor)
}

// Close stops the engine's worker pool.
func (e *Engine) Close() {
	e.pool.Close()
}

/*
ApplyOneQubitGate applies m to qubit target of r, in place. The 2^n
amplitudes form 2^(n-1) independent pairs {i, i | 1<<target}; the pairs are
spread over the pool in disjoint spans.
*/
func (e *Engine) ApplyOneQubitGate(r *Register, m Matrix2, target int) error {
	return e.applyOne(r, "custom", m, target)
}

/*
ApplyTwoQubitGate applies m to qubits (q0, q1) of r, in place, with q0 as the
high bit of the matrix basis. The amplitudes form 2^(n-2) independent
quadruples, one for every setting of the other qubits.
*/
func (e *Engine) ApplyTwoQubitGate(r *Register, m Matrix4, q0, q1 int) error {
	return e.applyTwo(r, "custom", m, q0, q1)
}

// Apply looks g up in the catalog and applies it to the given qubits.
func (e *Engine) Apply(r *Register, g Gate, qubits ...int) error {
	if g.Arity() == 0 {
		return errors.Wrapf(ErrUnknownGate, "%s", g)
	}
	if len(qubits) != g.Arity() {
		return errors.Wrapf(
			ErrGateArity, "%s takes %d qubits, got %d", g, g.Arity(), len(qubits),
		)
	}

	if m, ok := g.OneQubit(); ok {
		return e.applyOne(r, g.String(), m, qubits[0])
	}

	m, _ := g.TwoQubit()
	return e.applyTwo(r, g.String(), m, qubits[0], qubits[1])
}

func (e *Engine) X(r *Register, target int) error { return e.Apply(r, GateX, target) }
func (e *Engine) Y(r *Register, target int) error { return e.Apply(r, GateY, target) }
func (e *Engine) Z(r *Register, target int) error { return e.Apply(r, GateZ, target) }
func (e *Engine) H(r *Register, target int) error { return e.Apply(r, GateH, target) }
func (e *Engine) S(r *Register, target int) error { return e.Apply(r, GateS, target) }

func (e *Engine) CNOT(r *Register, control, target int) error {
	return e.Apply(r, GateCNOT, control, target)
}

func (e *Engine) CPHASE(r *Register, control, target int) error {
	return e.Apply(r, GateCPHASE, control, target)
}

func (e *Engine) applyOne(r *Register, name string, m Matrix2, target int) error {
	if err := r.checkQubit(target); err != nil {
		e.logger.Debug("rejected gate", zap.String("gate", name), zap.Error(err))
		return err
	}

	return e.run(r, name, oneQubitOperator(m), []uint{uint(target)})
}

func (e *Engine) applyTwo(r *Register, name string, m Matrix4, q0, q1 int) error {
	err := r.checkQubit(q0)
	if err == nil {
		err = r.checkQubit(q1)
	}
	if err == nil && q0 == q1 {
		err = errors.Wrapf(ErrInvalidQubitIndex, "both operands are qubit %d", q0)
	}
	if err != nil {
		e.logger.Debug("rejected gate", zap.String("gate", name), zap.Error(err))
		return err
	}

	// The span walk resolves bits highest first, so the matrix has to be
	// expressed with the higher qubit as its high index bit.
	hi, lo := q0, q1
	if q0 < q1 {
		hi, lo = q1, q0
		m = m.swapOperands()
	}

	return e.run(r, name, twoQubitOperator(m), []uint{uint(hi), uint(lo)})
}

func (e *Engine) run(r *Register, name string, op *operator, gateBits []uint) error {
	startTime := time.Now()

	spans := planSpans(r.amplitudes, gateBits, e.config.GrainSize)
	parallel := e.pool != nil && len(spans) > 1

	if parallel {
		if err := e.pool.Run(spanJobs(spans, op)...); err != nil {
			return errors.Wrapf(err, "apply %s", name)
		}
	} else {
		for _, s := range spans {
			s.transform(op)
		}
	}

	e.metrics.recordGate(name, startTime, len(spans), parallel)
	return nil
}

var (
	defaultEngineOnce sync.Once
	defaultEngine     *Engine
)

// DefaultEngine is the process-wide engine behind the Register gate methods.
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine(nil)
	})
	return defaultEngine
}

func (r *Register) Apply(g Gate, qubits ...int) error {
	return DefaultEngine().Apply(r, g, qubits...)
}

func (r *Register) X(target int) error { return DefaultEngine().X(r, target) }
func (r *Register) Y(target int) error { return DefaultEngine().Y(r, target) }
func (r *Register) Z(target int) error { return DefaultEngine().Z(r, target) }
func (r *Register) H(target int) error { return DefaultEngine().H(r, target) }
func (r *Register) S(target int) error { return DefaultEngine().S(r, target) }

func (r *Register) CNOT(control, target int) error {
	return DefaultEngine().CNOT(r, control, target)
}

func (r *Register) CPHASE(control, target int) error {
	return DefaultEngine().CPHASE(r, control, target)
}

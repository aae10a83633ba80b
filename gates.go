package vecsim

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Matrix2 is a single-qubit operator acting on the basis (|0⟩, |1⟩).
type Matrix2 [2][2]complex128

/*
Matrix4 is a two-qubit operator. For a gate applied to qubits (q0, q1) the
row and column index is 2*bit(q0) + bit(q1), so q0 (the control of CNOT and
CPHASE) is the high bit of the matrix index.
*/
type Matrix4 [4][4]complex128

const invSqrt2 = math.Sqrt2 / 2

// The catalog is only ever handed out by value, so nothing outside this file
// can write to it.
var (
	identityMatrix = Matrix2{
		{1, 0},
		{0, 1},
	}
	pauliXMatrix = Matrix2{
		{0, 1},
		{1, 0},
	}
	pauliYMatrix = Matrix2{
		{0, -1i},
		{1i, 0},
	}
	pauliZMatrix = Matrix2{
		{1, 0},
		{0, -1},
	}
	hadamardMatrix = Matrix2{
		{invSqrt2, invSqrt2},
		{invSqrt2, -invSqrt2},
	}
	phaseMatrix = Matrix2{
		{1, 0},
		{0, 1i},
	}
	cnotMatrix = Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}
	cphaseMatrix = Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	}
)

// Gate names an entry of the matrix catalog.
type Gate uint8

const (
	GateI Gate = iota
	GateX
	GateY
	GateZ
	GateH
	GateS
	GateCNOT
	GateCPHASE
)

var gateNames = [...]string{
	GateI:      "I",
	GateX:      "X",
	GateY:      "Y",
	GateZ:      "Z",
	GateH:      "H",
	GateS:      "S",
	GateCNOT:   "CNOT",
	GateCPHASE: "CPHASE",
}

var gateAliases = map[string]Gate{
	"I":      GateI,
	"ID":     GateI,
	"X":      GateX,
	"NOT":    GateX,
	"Y":      GateY,
	"Z":      GateZ,
	"H":      GateH,
	"S":      GateS,
	"CNOT":   GateCNOT,
	"CX":     GateCNOT,
	"CPHASE": GateCPHASE,
	"CZ":     GateCPHASE,
}

// ParseGate resolves a gate name, case-insensitively, to its catalog entry.
func ParseGate(name string) (Gate, error) {
	if g, ok := gateAliases[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return g, nil
	}

	return 0, errors.Wrapf(ErrUnknownGate, "%q", name)
}

func (g Gate) String() string {
	if int(g) < len(gateNames) {
		return gateNames[g]
	}
	return "Gate(" + strconv.Itoa(int(g)) + ")"
}

// Arity is the number of qubits the gate acts on, or 0 for an unknown gate.
func (g Gate) Arity() int {
	switch g {
	case GateI, GateX, GateY, GateZ, GateH, GateS:
		return 1
	case GateCNOT, GateCPHASE:
		return 2
	default:
		return 0
	}
}

// OneQubit returns the 2×2 matrix of a single-qubit gate.
func (g Gate) OneQubit() (Matrix2, bool) {
	switch g {
	case GateI:
		return identityMatrix, true
	case GateX:
		return pauliXMatrix, true
	case GateY:
		return pauliYMatrix, true
	case GateZ:
		return pauliZMatrix, true
	case GateH:
		return hadamardMatrix, true
	case GateS:
		return phaseMatrix, true
	default:
		return Matrix2{}, false
	}
}

// TwoQubit returns the 4×4 matrix of a two-qubit gate.
func (g Gate) TwoQubit() (Matrix4, bool) {
	switch g {
	case GateCNOT:
		return cnotMatrix, true
	case GateCPHASE:
		return cphaseMatrix, true
	default:
		return Matrix4{}, false
	}
}

// swapOperands reorders a two-qubit matrix so that the qubit roles of its
// index bits are exchanged, i.e. rows and columns 1 and 2 trade places.
func (m Matrix4) swapOperands() Matrix4 {
	perm := [4]int{0, 2, 1, 3}
	var out Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r][c] = m[perm[r]][perm[c]]
		}
	}
	return out
}

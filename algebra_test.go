package vecsim

import (
	"math/cmplx"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTensor(t *testing.T) {
	Convey("Given two registers", t, func() {
		Convey("Basis states should compose into the joint label", func() {
			for _, pair := range [][2]string{{"0", "0"}, {"0", "1"}, {"1", "0"}, {"1", "1"}} {
				r, err := Tensor(mustConstruct(pair[0]), mustConstruct(pair[1]))
				So(err, ShouldBeNil)
				So(r.IsClose(mustConstruct(pair[0]+pair[1])), ShouldBeTrue)
			}
		})

		Convey("Every amplitude should be the Kronecker product entry", func() {
			a := mustConstruct("+1")
			So(a.S(0), ShouldBeNil)
			b := mustConstruct("-+0")
			So(b.H(2), ShouldBeNil)
			So(b.Y(1), ShouldBeNil)

			r, err := Tensor(a, b)
			So(err, ShouldBeNil)
			So(r.Qubits(), ShouldEqual, a.Qubits()+b.Qubits())

			nb := b.Qubits()
			mask := 1<<nb - 1
			for i := 0; i < r.Len(); i++ {
				want := a.Amplitude(i>>nb) * b.Amplitude(i&mask)
				So(cmplx.Abs(r.Amplitude(i)-want), ShouldBeLessThan, Epsilon)
			}
		})

		Convey("The inputs should be left alone", func() {
			a, b := mustConstruct("+"), mustConstruct("1")
			_, err := Tensor(a, b)
			So(err, ShouldBeNil)
			So(a.IsClose(mustConstruct("+")), ShouldBeTrue)
			So(b.IsClose(mustConstruct("1")), ShouldBeTrue)
		})
	})
}

func TestSuperpose(t *testing.T) {
	Convey("Given registers of equal width", t, func() {
		Convey("Adding the basis states should give |+>", func() {
			r, err := Add(mustConstruct("0"), mustConstruct("1"))
			So(err, ShouldBeNil)
			So(r.IsClose(mustConstruct("+")), ShouldBeTrue)
		})

		Convey("Subtracting them should give |->", func() {
			r, err := Subtract(mustConstruct("0"), mustConstruct("1"))
			So(err, ShouldBeNil)
			So(r.IsClose(mustConstruct("-")), ShouldBeTrue)
		})

		Convey("The result should be renormalized", func() {
			r, err := Add(mustConstruct("00"), mustConstruct("++"))
			So(err, ShouldBeNil)
			So(r.Norm(), ShouldAlmostEqual, 1, Epsilon)
		})

		Convey("A state minus itself should fail to normalize", func() {
			_, err := Subtract(mustConstruct("+"), mustConstruct("+"))
			So(errors.Is(err, ErrZeroNorm), ShouldBeTrue)
		})

		Convey("Any sign other than ±1 should be rejected", func() {
			_, err := Superpose(mustConstruct("0"), mustConstruct("1"), 2)
			So(errors.Is(err, ErrInvalidSign), ShouldBeTrue)
		})
	})

	Convey("Given registers of different width", t, func() {
		_, err := Add(mustConstruct("0"), mustConstruct("00"))
		So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
	})
}

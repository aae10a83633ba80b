package vecsim

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// indexedAmplitudes stores each basis index in its own amplitude so spans
// can be traced back to positions of the original array.
func indexedAmplitudes(qubits int) []complex128 {
	amps := make([]complex128, 1<<qubits)
	for i := range amps {
		amps[i] = complex(float64(i), 0)
	}
	return amps
}

// collectGroups walks the groups of every span exactly like transform does
// and returns the basis indices of each group in matrix order.
func collectGroups(spans []span) [][]int {
	var groups [][]int
	for _, s := range spans {
		var (
			mask    int
			offsets [4]int
		)
		inner := 1 << len(s.bits)
		for c := 0; c < inner; c++ {
			for b, bit := range s.bits {
				if c&(1<<(len(s.bits)-1-b)) != 0 {
					offsets[c] |= 1 << bit
				}
			}
		}
		for _, bit := range s.bits {
			mask |= 1 << bit
		}

		for p := 0; p < s.width(); p = ((p | mask) + 1) &^ mask {
			var group []int
			for _, v := range s.views {
				for c := 0; c < inner; c++ {
					group = append(group, int(real(v[p|offsets[c]])))
				}
			}
			groups = append(groups, group)
		}
	}
	return groups
}

func TestPlanSpans(t *testing.T) {
	Convey("Given registers of several widths", t, func() {
		cases := []struct {
			qubits int
			bits   []uint
		}{
			{1, []uint{0}},
			{4, []uint{0}},
			{4, []uint{3}},
			{6, []uint{2}},
			{2, []uint{1, 0}},
			{5, []uint{4, 0}},
			{6, []uint{3, 2}},
			{7, []uint{6, 5}},
			{7, []uint{1, 0}},
		}

		for _, tc := range cases {
			for _, grain := range []int{1, 2, 3, 8, 1 << 20} {
				tc, grain := tc, grain
				name := fmt.Sprintf("n=%d bits=%v grain=%d", tc.qubits, tc.bits, grain)

				Convey(name, func() {
					amps := indexedAmplitudes(tc.qubits)
					spans := planSpans(amps, tc.bits, grain)
					groups := collectGroups(spans)

					Convey("Every index should belong to exactly one group", func() {
						seen := make([]int, len(amps))
						for _, g := range groups {
							for _, i := range g {
								seen[i]++
							}
						}
						for i := range seen {
							So(seen[i], ShouldEqual, 1)
						}
					})

					Convey("Each group should follow the highest-bit-first basis order", func() {
						size := 1 << len(tc.bits)
						So(len(groups), ShouldEqual, len(amps)/size)

						for _, g := range groups {
							So(len(g), ShouldEqual, size)
							base := g[0]
							for k, i := range g {
								want := base
								for b, bit := range tc.bits {
									if k&(1<<(len(tc.bits)-1-b)) != 0 {
										want |= 1 << bit
									}
								}
								So(i, ShouldEqual, want)
							}
						}
					})

					Convey("Views should never share memory", func() {
						// Writing through every view and re-reading catches
						// aliasing that the index check alone could miss.
						for _, s := range spans {
							for _, v := range s.views {
								for j := range v {
									v[j] += complex(0, 1)
								}
							}
						}
						for i := range amps {
							So(imag(amps[i]), ShouldEqual, 1)
						}
					})

					if grain < len(amps) && len(amps) > 1<<len(tc.bits) {
						Convey("The plan should actually split the work", func() {
							So(len(spans), ShouldBeGreaterThan, 1)
						})
					}
				})
			}
		}
	})
}

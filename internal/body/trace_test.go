package body

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rigidsim/internal/linalg"
)

var _ = Describe("Integrator", func() {
	var (
		integ *Integrator
		state State
	)

	BeforeEach(func() {
		integ = New(WithTerms(12))
		state = cube(4)
	})

	Describe("Step", func() {
		It("moves the centre with the updated velocity", func() {
			loads := Loads{}.Add([]linalg.Vec3{linalg.V(4, 0, 0)}, []linalg.Vec3{state.Centre})

			next, err := integ.Step(state, loads, 0.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Velocity.X).To(BeNumerically("~", 0.5, 1e-12))
			Expect(next.Centre.X).To(BeNumerically("~", 0.25, 1e-12))
			Expect(next.AngularVelocity).To(Equal(state.AngularVelocity))
		})

		It("pivots rotation about the centre before the step", func() {
			state.Velocity = linalg.V(10, 0, 0)
			// applied at the old centre: no torque even though the body moves
			loads := Loads{}.Add([]linalg.Vec3{linalg.V(0, 3, 0)}, []linalg.Vec3{state.Centre})

			next, err := integ.Step(state, loads, 0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.AngularVelocity).To(Equal(linalg.Zero()))
			Expect(next.Angle).To(Equal(linalg.Zero()))
		})

		It("relocates the inertia tensor to the new centre", func() {
			state.Velocity = linalg.V(0, 0, 1)

			next, err := integ.Step(state, Loads{}, 1)
			Expect(err).NotTo(HaveOccurred())
			before, _ := state.Inertia.At(0, 0)
			after, _ := next.Inertia.At(0, 0)
			Expect(after - before).To(BeNumerically("~", state.Mass*1, 1e-12))
			zz, _ := next.Inertia.At(2, 2)
			Expect(zz).To(BeNumerically("~", before, 1e-12))
		})

		It("rejects unbalanced load groups", func() {
			loads := Loads{
				Forces: [][]linalg.Vec3{{linalg.V(1, 0, 0)}, {linalg.V(0, 1, 0)}},
				Points: [][]linalg.Vec3{{linalg.V(1, 0, 0), linalg.V(0, 0, 1), linalg.V(0, 1, 1)}},
			}
			_, err := integ.Step(state, loads, 0.1)
			Expect(err).To(MatchError(ErrInvalidArgument))
		})

		It("rejects a state without an inertia tensor", func() {
			state.Inertia = nil
			next, err := integ.Step(state, Loads{}, 0.1)
			Expect(err).To(MatchError(ErrInvalidArgument))
			Expect(next.Cloud).To(BeNil())
		})
	})

	Describe("Trace", func() {
		It("returns one snapshot per step", func() {
			state.AngularVelocity = linalg.V(0.2, 0.1, 0)
			for _, n := range []int{1, 7, 40} {
				snaps, err := integ.Trace(state, Loads{}, 2, n)
				Expect(err).NotTo(HaveOccurred())
				Expect(snaps).To(HaveLen(n))
			}
		})

		It("matches a manual replay of Step", func() {
			state.AngularVelocity = linalg.V(0, 0.3, 0.1)
			loads := Loads{}.Add(
				[]linalg.Vec3{linalg.V(0, 0, -9.81), linalg.V(1, 0, 0)},
				[]linalg.Vec3{state.Centre, linalg.V(1, 1, 1)},
			)

			snaps, err := integ.Trace(state, loads, 1, 10)
			Expect(err).NotTo(HaveOccurred())

			s := state
			for i := 0; i < 10; i++ {
				s, err = integ.Step(s, loads, 0.1)
				Expect(err).NotTo(HaveOccurred())
				Expect(snaps[i].Equal(s.Cloud)).To(BeTrue(), "snapshot %d", i)
			}
		})

		It("keeps snapshots independent of later steps", func() {
			state.AngularVelocity = linalg.V(1, 0, 0)
			snaps, err := integ.Trace(state, Loads{}, 1, 3)
			Expect(err).NotTo(HaveOccurred())

			first := snaps[0].Clone()
			Expect(snaps[2].Set(0, 0, 99)).To(Succeed())
			Expect(snaps[0].Equal(first)).To(BeTrue())
		})
	})
})

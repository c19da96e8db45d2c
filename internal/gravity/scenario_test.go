package gravity_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ratgrav/internal/exact"
	"github.com/san-kum/ratgrav/internal/gravity"
)

var _ = Describe("Earth and Moon", func() {
	var (
		earth, moon *gravity.Body
		g           exact.Rational
	)

	BeforeEach(func() {
		var err error
		earth, err = gravity.NewBody("earth", 5.97e24, 1, 0, 0)
		Expect(err).NotTo(HaveOccurred())
		moon, err = gravity.NewBody("moon", 7.342e22, 362600000, 0, 0)
		Expect(err).NotTo(HaveOccurred())
		g = gravity.DefaultG()
	})

	It("attracts both bodies toward each other over three alternating ticks", func() {
		prevMoon := moon.Position().X
		prevEarth := earth.Position().X
		massBefore := earth.Mass()

		for tick := 0; tick < 3; tick++ {
			Expect(moon.Update([]*gravity.Body{earth}, g)).To(Succeed())
			Expect(earth.Update([]*gravity.Body{moon}, g)).To(Succeed())

			// Moon sits at +x, Earth near the origin: attraction means
			// the moon moves down and the earth moves up every tick.
			Expect(moon.Position().X.Cmp(prevMoon)).To(Equal(-1), "tick %d moon", tick)
			Expect(earth.Position().X.Cmp(prevEarth)).To(Equal(1), "tick %d earth", tick)
			Expect(moon.Position().X.Cmp(earth.Position().X)).To(Equal(1))

			prevMoon = moon.Position().X
			prevEarth = earth.Position().X
		}

		for _, b := range []*gravity.Body{earth, moon} {
			Expect(b.Position().Y.IsZero()).To(BeTrue())
			Expect(b.Position().Z.IsZero()).To(BeTrue())
		}
		Expect(earth.Mass().Equal(massBefore)).To(BeTrue())
	})

	It("reports whole-number distances from the origin", func() {
		Expect(moon.Distance().Int64()).To(Equal(int64(362600000)))
		Expect(earth.Distance().Int64()).To(Equal(int64(1)))

		Expect(moon.Update([]*gravity.Body{earth}, g)).To(Succeed())
		Expect(moon.Distance().Int64()).To(Equal(int64(362599999)))
	})

	It("keeps positions convertible to finite floats", func() {
		for tick := 0; tick < 3; tick++ {
			Expect(moon.Update([]*gravity.Body{earth}, g)).To(Succeed())
			Expect(earth.Update([]*gravity.Body{moon}, g)).To(Succeed())
		}
		Expect(moon.Position().Floats()[0]).To(BeNumerically("~", 362600000, 1))
		Expect(earth.Position().Floats()[0]).To(BeNumerically(">", 1))
	})
})

var _ = Describe("System", func() {
	build := func(policy gravity.Policy, workers int, positions ...[3]float64) *gravity.System {
		bodies := make([]*gravity.Body, len(positions))
		for i, p := range positions {
			b, err := gravity.NewBody(string(rune('a'+i)), 1e9, p[0], p[1], p[2])
			Expect(err).NotTo(HaveOccurred())
			bodies[i] = b
		}
		cfg := gravity.DefaultConfig()
		cfg.Policy = policy
		cfg.Workers = workers
		sys, err := gravity.NewSystem(bodies, cfg)
		Expect(err).NotTo(HaveOccurred())
		return sys
	}

	DescribeTable("surfaces division by zero for coincident bodies",
		func(policy gravity.Policy) {
			sys := build(policy, 4, [3]float64{0, 0, 0}, [3]float64{3, 4, 5}, [3]float64{3, 4, 5})
			err := sys.Step(context.Background())
			Expect(err).To(MatchError(exact.ErrDivisionByZero))

			var stepErr *gravity.StepError
			Expect(err).To(BeAssignableToTypeOf(stepErr))
		},
		Entry("sequential", gravity.PolicySequential),
		Entry("snapshot", gravity.PolicySnapshot),
	)

	DescribeTable("agrees across policies for the first body in order",
		func(workers int) {
			seq := build(gravity.PolicySequential, workers, [3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{0, 10, 0})
			snap := build(gravity.PolicySnapshot, workers, [3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{0, 10, 0})

			Expect(seq.Step(context.Background())).To(Succeed())
			Expect(snap.Step(context.Background())).To(Succeed())
			Expect(seq.Bodies()[0].Position().Equal(snap.Bodies()[0].Position())).To(BeTrue())
		},
		Entry("one worker", 1),
		Entry("unbounded", 0),
	)
})

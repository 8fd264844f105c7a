package ballistics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/golfsim/internal/ballistics"
)

var _ = Describe("Trajectory", func() {
	It("handles an empty flight", func() {
		tr := &ballistics.Trajectory{}
		Expect(tr.Len()).To(BeZero())
		Expect(tr.Landing()).To(Equal(ballistics.Sample{}))
		Expect(tr.GroundCrossing()).To(Equal(ballistics.Point{}))
		Expect(tr.Apex()).To(Equal(ballistics.Sample{}))
	})

	It("interpolates linearly to y = 0", func() {
		tr := &ballistics.Trajectory{Samples: []ballistics.Sample{
			{T: 0, X: 0, Y: 0},
			{T: 1, X: 10, Y: 3},
			{T: 2, X: 20, Y: -1},
		}}
		Expect(tr.GroundCrossing()).To(Equal(ballistics.Point{X: 17.5, Y: 0}))
		Expect(tr.GroundCrossingTime()).To(BeNumerically("~", 1.75, 1e-12))
		Expect(tr.Apex().X).To(Equal(10.0))
		Expect(tr.Range()).To(Equal(20.0))
		Expect(tr.FlightTime()).To(Equal(2.0))
	})

	It("returns the terminal point without a crossing", func() {
		tr := &ballistics.Trajectory{Samples: []ballistics.Sample{
			{T: 0, X: 0, Y: 0},
			{T: 1, X: 10, Y: 3},
		}}
		Expect(tr.GroundCrossing()).To(Equal(ballistics.Point{X: 10, Y: 3}))
		Expect(tr.GroundCrossingTime()).To(Equal(1.0))
	})

	It("reports speed from the velocity components", func() {
		Expect(ballistics.Sample{VX: 3, VY: 4}.Speed()).To(BeNumerically("~", 5, 1e-12))
	})
})

package ballistics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/dynamo"
)

var _ = Describe("Density", func() {
	c := ballistics.GolfBall()

	It("is the sea-level value for the constant model", func() {
		Expect(ballistics.Density(c, ballistics.DensityConstant, 0)).To(Equal(c.AirDensity))
		Expect(ballistics.Density(c, ballistics.DensityConstant, 5000)).To(Equal(c.AirDensity))
	})

	It("is zero in vacuum", func() {
		Expect(ballistics.Density(c, ballistics.DensityVacuum, 0)).To(BeZero())
	})

	It("falls with height under the barometric model", func() {
		Expect(ballistics.Density(c, ballistics.DensityBarometric, 0)).To(BeNumerically("~", c.AirDensity, 1e-12))
		low := ballistics.Density(c, ballistics.DensityBarometric, 100)
		high := ballistics.Density(c, ballistics.DensityBarometric, 1000)
		Expect(low).To(BeNumerically("<", c.AirDensity))
		Expect(high).To(BeNumerically("<", low))
	})

	It("clamps to zero at and above the ceiling", func() {
		ceiling := c.Ceiling()
		Expect(ceiling).To(BeNumerically("~", 44330.77, 0.01))
		Expect(ballistics.Density(c, ballistics.DensityBarometric, ceiling)).To(BeZero())
		rho := ballistics.Density(c, ballistics.DensityBarometric, 2*ceiling)
		Expect(rho).To(BeZero())
		Expect(math.IsNaN(rho)).To(BeFalse())
	})
})

var _ = Describe("ForceModel", func() {
	c := ballistics.GolfBall()

	It("round-trips drag law and density names", func() {
		for _, law := range []ballistics.DragLaw{
			ballistics.DragNone, ballistics.DragLinear, ballistics.DragQuadratic,
			ballistics.DragQuadraticUnsigned, ballistics.DragConstant,
		} {
			parsed, err := ballistics.ParseDragLaw(law.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(law))
		}
		for _, model := range []ballistics.DensityModel{
			ballistics.DensityConstant, ballistics.DensityBarometric, ballistics.DensityVacuum,
		} {
			parsed, err := ballistics.ParseDensityModel(model.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(model))
		}
	})

	It("rejects unknown names", func() {
		_, err := ballistics.ParseDragLaw("cubic")
		Expect(err).To(MatchError(ballistics.ErrInvalidForceModel))
		_, err = ballistics.ParseDensityModel("isothermal")
		Expect(err).To(MatchError(ballistics.ErrInvalidForceModel))
		Expect(ballistics.ForceModel{Drag: ballistics.DragLaw(42)}.Validate()).To(MatchError(ballistics.ErrInvalidForceModel))
	})

	It("opposes motion with linear drag", func() {
		fm := ballistics.ForceModel{Drag: ballistics.DragLinear, Density: ballistics.DensityConstant}
		fx, fy := fm.DragForce(c, 0, 10, -5)
		Expect(fx).To(BeNumerically("~", -c.DragCoefficient*c.AirDensity*c.Area*10, 1e-12))
		Expect(fy).To(BeNumerically(">", 0))
	})

	It("matches the signed and unsigned quadratic laws while ascending", func() {
		signed := ballistics.ForceModel{Drag: ballistics.DragQuadratic}
		unsigned := ballistics.ForceModel{Drag: ballistics.DragQuadraticUnsigned}
		sx, sy := signed.DragForce(c, 0, 30, 10)
		ux, uy := unsigned.DragForce(c, 0, 30, 10)
		Expect(sx).To(Equal(ux))
		Expect(sy).To(Equal(uy))
	})

	It("splits the quadratic laws once the ball descends", func() {
		signed := ballistics.ForceModel{Drag: ballistics.DragQuadratic}
		unsigned := ballistics.ForceModel{Drag: ballistics.DragQuadraticUnsigned}
		_, sy := signed.DragForce(c, 0, 30, -10)
		_, uy := unsigned.DragForce(c, 0, 30, -10)
		Expect(sy).To(BeNumerically(">", 0))
		Expect(uy).To(BeNumerically("<", 0))
		Expect(sy).To(BeNumerically("~", -uy, 1e-15))
	})

	It("applies the constant law regardless of density model", func() {
		fm := ballistics.ForceModel{Drag: ballistics.DragConstant, Density: ballistics.DensityVacuum}
		k := -c.DragCoefficient * c.AirDensity * c.Area / c.Mass
		ax, ay := fm.Acceleration(c, 1000, 20, 5)
		Expect(ax).To(BeNumerically("~", k*20, 1e-12))
		Expect(ay).To(BeNumerically("~", k*5-c.Gravity, 1e-12))
	})

	It("rotates velocity for Magnus lift", func() {
		fm := ballistics.ForceModel{Magnus: true}
		mx, my := fm.MagnusAcceleration(c, 40, 10)
		Expect(mx).To(Equal(-c.MagnusCoefficient * 10))
		Expect(my).To(Equal(c.MagnusCoefficient * 40))
		Expect(mx*40 + my*10).To(BeNumerically("~", 0, 1e-12))

		mx, my = ballistics.ForceModel{}.MagnusAcceleration(c, 40, 10)
		Expect(mx).To(BeZero())
		Expect(my).To(BeZero())
	})

	It("reduces to gravity with every term off", func() {
		ax, ay := ballistics.ForceModel{}.Acceleration(c, 10, 50, 20)
		Expect(ax).To(BeZero())
		Expect(ay).To(Equal(-c.Gravity))
	})
})

var _ = Describe("Constants", func() {
	It("accepts the golf ball", func() {
		Expect(ballistics.GolfBall().Validate()).To(Succeed())
	})

	DescribeTable("rejects unusable parameters",
		func(name string, value float64) {
			c := ballistics.GolfBall()
			Expect(c.SetParam(name, value)).To(Succeed())
			Expect(c.Validate()).To(MatchError(ballistics.ErrInvalidConstants))
		},
		Entry("zero mass", "mass", 0.0),
		Entry("negative area", "area", -1.0),
		Entry("negative density", "air_density", -0.1),
		Entry("zero temperature", "sea_level_temp", 0.0),
		Entry("nan magnus", "magnus_coefficient", math.NaN()),
		Entry("infinite gravity", "gravity", math.Inf(1)),
	)

	It("exposes and updates parameters by name", func() {
		c := ballistics.GolfBall()
		Expect(c.GetParams()).To(HaveKeyWithValue("mass", ballistics.DefaultMass))
		Expect(c.SetParam("gravity", 1.62)).To(Succeed())
		Expect(c.Gravity).To(Equal(1.62))
		Expect(c.SetParam("spin", 1)).To(HaveOccurred())
	})

	It("has no ceiling without a lapse rate", func() {
		c := ballistics.GolfBall()
		c.LapseRate = 0
		Expect(math.IsInf(c.Ceiling(), 1)).To(BeTrue())
	})
})

var _ = Describe("Flight", func() {
	c := ballistics.GolfBall()

	It("derives velocity then acceleration", func() {
		fm := ballistics.ForceModel{Drag: ballistics.DragLinear, Density: ballistics.DensityBarometric, Magnus: true}
		f := ballistics.NewFlight(c, fm)
		Expect(f.StateDim()).To(Equal(ballistics.StateDim))

		x := dynamo.State{12, 30, 60, -4}
		dx := f.Derive(x, 0)
		ax, ay := fm.Acceleration(c, 30, 60, -4)
		Expect(dx).To(Equal(dynamo.State{60, -4, ax, ay}))
	})

	It("reports specific mechanical energy", func() {
		f := ballistics.NewFlight(c, ballistics.ForceModel{Drag: ballistics.DragNone, Density: ballistics.DensityVacuum})
		Expect(f.Energy(dynamo.State{0, 10, 3, 4})).To(BeNumerically("~", 12.5+9.81*10, 1e-12))
		Expect(f.Energy(dynamo.State{5, 0, 0, 0})).To(BeZero())
	})
})

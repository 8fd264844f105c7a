package ballistics_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/integrators"
)

var (
	ideal    = ballistics.ForceModel{Drag: ballistics.DragNone, Density: ballistics.DensityVacuum}
	dimpled  = ballistics.ForceModel{Drag: ballistics.DragLinear, Density: ballistics.DensityConstant}
	smooth   = ballistics.ForceModel{Drag: ballistics.DragQuadratic, Density: ballistics.DensityConstant}
	spinning = ballistics.ForceModel{Drag: ballistics.DragNone, Density: ballistics.DensityVacuum, Magnus: true}
	drive    = ballistics.LaunchDegrees(70, 9)
)

func fly(launch ballistics.Launch, fm ballistics.ForceModel) *ballistics.Trajectory {
	tr, err := ballistics.Integrate(context.Background(), launch, ballistics.GolfBall(), fm, ballistics.DefaultOptions())
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return tr
}

var _ = Describe("Integrate", func() {
	Context("trajectory shape", func() {
		var tr *ballistics.Trajectory

		BeforeEach(func() {
			tr = fly(drive, dimpled)
		})

		It("starts at the origin with the launch velocity", func() {
			first := tr.Samples[0]
			Expect(first.X).To(BeZero())
			Expect(first.Y).To(BeZero())
			Expect(first.T).To(BeZero())
			Expect(first.VX).To(BeNumerically("~", 70*math.Cos(9*math.Pi/180), 1e-12))
			Expect(first.VY).To(BeNumerically("~", 70*math.Sin(9*math.Pi/180), 1e-12))
		})

		It("keeps every sample but the last at or above ground", func() {
			Expect(tr.Landed()).To(BeTrue())
			Expect(tr.Outcome).To(Equal(dynamo.OutcomeStopped))
			for i, s := range tr.Samples[:tr.Len()-1] {
				Expect(s.Y).To(BeNumerically(">=", 0), "sample %d", i)
			}
			Expect(tr.Landing().Y).To(BeNumerically("<", 0))
		})

		It("records strictly increasing times on the dt grid", func() {
			for i := 1; i < tr.Len(); i++ {
				Expect(tr.Samples[i].T).To(BeNumerically(">", tr.Samples[i-1].T))
				Expect(tr.Samples[i].T).To(BeNumerically("~", float64(i)*0.01, 1e-9))
			}
		})

		It("exposes the path as points", func() {
			pts := tr.Points()
			Expect(pts).To(HaveLen(tr.Len()))
			Expect(pts[0]).To(Equal(ballistics.Point{}))
			Expect(pts[len(pts)-1].X).To(Equal(tr.Range()))
		})

		It("interpolates the ground crossing between the last two samples", func() {
			cross := tr.GroundCrossing()
			prev := tr.Samples[tr.Len()-2]
			Expect(cross.Y).To(BeZero())
			Expect(cross.X).To(BeNumerically(">=", prev.X))
			Expect(cross.X).To(BeNumerically("<=", tr.Range()))
			Expect(tr.GroundCrossingTime()).To(BeNumerically("<=", tr.FlightTime()))
		})
	})

	It("matches the analytic range without air", func() {
		g := ballistics.DefaultGravity
		theta := 9 * math.Pi / 180
		analytic := 70 * 70 * math.Sin(2*theta) / g
		Expect(analytic).To(BeNumerically("~", 154.35, 0.01))

		tr := fly(drive, ideal)
		tolerance := 2 * tr.Samples[0].VX * 0.01
		Expect(tr.Range()).To(BeNumerically("~", analytic, tolerance))
		Expect(tr.GroundCrossing().X).To(BeNumerically("~", analytic, tolerance))
		Expect(tr.Apex().Y).To(BeNumerically("~", math.Pow(70*math.Sin(theta), 2)/(2*g), 0.1))
	})

	It("shortens and lowers the flight with drag", func() {
		free := fly(drive, ideal)
		for _, fm := range []ballistics.ForceModel{dimpled, smooth} {
			dragged := fly(drive, fm)
			Expect(dragged.Range()).To(BeNumerically("<", free.Range()), fm.String())
			Expect(dragged.Apex().Y).To(BeNumerically("<", free.Apex().Y), fm.String())
		}
	})

	It("extends the flight with Magnus lift", func() {
		free := fly(drive, ideal)
		lifted := fly(drive, spinning)
		Expect(lifted.Range()).To(BeNumerically(">", free.Range()))
		Expect(lifted.Apex().Y).To(BeNumerically(">", free.Apex().Y))
	})

	It("is bit-identical across runs", func() {
		a := fly(drive, dimpled)
		b := fly(drive, dimpled)
		Expect(a.Samples).To(Equal(b.Samples))
	})

	It("converges as dt shrinks", func() {
		c := ballistics.GolfBall()
		var ranges []float64
		for _, dt := range []float64{0.01, 0.005, 0.0025} {
			opts := ballistics.DefaultOptions()
			opts.Dt = dt
			tr, err := ballistics.Integrate(context.Background(), drive, c, ideal, opts)
			Expect(err).NotTo(HaveOccurred())
			ranges = append(ranges, tr.GroundCrossing().X)
		}
		d1 := math.Abs(ranges[1] - ranges[0])
		d2 := math.Abs(ranges[2] - ranges[1])
		Expect(d2).To(BeNumerically("<", d1))
		Expect(d1 / d2).To(BeNumerically("~", 2, 0.3))
	})

	It("reproduces the hand-written update order", func() {
		c := ballistics.GolfBall()
		tr := fly(drive, dimpled)

		x, y := 0.0, 0.0
		vx, vy := drive.Speed*math.Cos(drive.Angle), drive.Speed*math.Sin(drive.Angle)
		for i := 1; i <= 5; i++ {
			fx := -c.DragCoefficient * c.AirDensity * c.Area * vx
			fy := -c.DragCoefficient * c.AirDensity * c.Area * vy
			vx = vx + (fx/c.Mass+0)*0.01
			vy = vy + (fy/c.Mass+0-c.Gravity)*0.01
			x = x + vx*0.01
			y = y + vy*0.01
			Expect(tr.Samples[i].X).To(BeNumerically("~", x, 1e-12))
			Expect(tr.Samples[i].Y).To(BeNumerically("~", y, 1e-12))
		}
	})

	It("accepts an alternative integrator", func() {
		opts := ballistics.DefaultOptions()
		opts.Integrator = integrators.NewRK4()
		tr, err := ballistics.Integrate(context.Background(), drive, ballistics.GolfBall(), ideal, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.GroundCrossing().X).To(BeNumerically("~", 154.35, 0.05))
	})

	Context("failures", func() {
		DescribeTable("rejects bad launches",
			func(launch ballistics.Launch) {
				_, err := ballistics.Integrate(context.Background(), launch, ballistics.GolfBall(), ideal, ballistics.DefaultOptions())
				Expect(err).To(MatchError(ballistics.ErrInvalidLaunch))
			},
			Entry("zero speed", ballistics.LaunchDegrees(0, 9)),
			Entry("negative speed", ballistics.LaunchDegrees(-5, 9)),
			Entry("nan speed", ballistics.Launch{Speed: math.NaN(), Angle: 0.2}),
			Entry("flat", ballistics.LaunchDegrees(70, 0)),
			Entry("vertical", ballistics.Launch{Speed: 70, Angle: math.Pi / 2}),
			Entry("backwards", ballistics.LaunchDegrees(70, 120)),
		)

		It("rejects a non-positive dt", func() {
			opts := ballistics.DefaultOptions()
			opts.Dt = 0
			_, err := ballistics.Integrate(context.Background(), drive, ballistics.GolfBall(), ideal, opts)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("rejects invalid constants and force models", func() {
			c := ballistics.GolfBall()
			c.Mass = 0
			_, err := ballistics.Integrate(context.Background(), drive, c, ideal, ballistics.DefaultOptions())
			Expect(err).To(MatchError(ballistics.ErrInvalidConstants))

			_, err = ballistics.Integrate(context.Background(), drive, ballistics.GolfBall(),
				ballistics.ForceModel{Density: ballistics.DensityModel(9)}, ballistics.DefaultOptions())
			Expect(err).To(MatchError(ballistics.ErrInvalidForceModel))
		})

		It("returns the partial flight when the step budget runs out", func() {
			c := ballistics.GolfBall()
			c.Gravity = 0
			opts := ballistics.DefaultOptions()
			opts.MaxSteps = 100

			tr, err := ballistics.Integrate(context.Background(), drive, c, ideal, opts)
			Expect(err).To(MatchError(ballistics.ErrNoLanding))
			Expect(err).To(MatchError(dynamo.ErrStepBudget))
			Expect(tr).NotTo(BeNil())
			Expect(tr.Outcome).To(Equal(dynamo.OutcomeExhausted))
			Expect(tr.Landed()).To(BeFalse())
			Expect(tr.Samples).To(HaveLen(101))
			Expect(tr.Landing().Y).To(BeNumerically(">", 0))
		})

		It("fails above the barometric ceiling", func() {
			c := ballistics.GolfBall()
			c.Gravity = 0
			c.LapseRate = 0.65
			c.DragCoefficient = 0
			fm := ballistics.ForceModel{Drag: ballistics.DragLinear, Density: ballistics.DensityBarometric}

			tr, err := ballistics.Integrate(context.Background(), ballistics.LaunchDegrees(70, 60), c, fm, ballistics.DefaultOptions())
			Expect(err).To(MatchError(ballistics.ErrAboveCeiling))
			Expect(tr.Outcome).To(Equal(dynamo.OutcomeFailed))
			Expect(tr.Apex().Y).To(BeNumerically(">=", c.Ceiling()))
		})

		It("stops when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			tr, err := ballistics.Integrate(ctx, drive, ballistics.GolfBall(), ideal, ballistics.DefaultOptions())
			Expect(err).To(MatchError(context.Canceled))
			Expect(tr.Samples).To(HaveLen(1))
		})
	})
})

var _ = Describe("Integrate across force models", func() {
	var (
		vacuum       = ballistics.ForceModel{Drag: ballistics.DragNone, Density: ballistics.DensityVacuum}
		constantDrag = ballistics.ForceModel{Drag: ballistics.DragConstant, Density: ballistics.DensityConstant}
		linearBaro   = ballistics.ForceModel{Drag: ballistics.DragLinear, Density: ballistics.DensityBarometric}
		quadBaro     = ballistics.ForceModel{Drag: ballistics.DragQuadratic, Density: ballistics.DensityBarometric}
		unsignedBaro = ballistics.ForceModel{Drag: ballistics.DragQuadraticUnsigned, Density: ballistics.DensityBarometric}
		lift         = func(fm ballistics.ForceModel) ballistics.ForceModel { fm.Magnus = true; return fm }
		chip         = ballistics.LaunchDegrees(45, 30)
	)

	DescribeTable("keeps the trajectory invariants",
		func(launch ballistics.Launch, fm ballistics.ForceModel) {
			tr := fly(launch, fm)
			Expect(tr.Landed()).To(BeTrue())

			first := tr.Samples[0]
			Expect(first.X).To(BeZero())
			Expect(first.Y).To(BeZero())
			Expect(first.T).To(BeZero())
			Expect(first.VX).To(BeNumerically("~", launch.Speed*math.Cos(launch.Angle), 1e-12))
			Expect(first.VY).To(BeNumerically("~", launch.Speed*math.Sin(launch.Angle), 1e-12))

			for i, s := range tr.Samples[:tr.Len()-1] {
				Expect(s.Y).To(BeNumerically(">=", 0), "sample %d", i)
			}
			Expect(tr.Landing().Y).To(BeNumerically("<", 0))

			for i := 1; i < tr.Len(); i++ {
				Expect(tr.Samples[i].T).To(BeNumerically("~", float64(i)*0.01, 1e-9))
			}
		},
		Entry("ideal, drive", drive, vacuum),
		Entry("ideal, chip", chip, vacuum),
		Entry("drag, drive", drive, constantDrag),
		Entry("drag, chip", chip, constantDrag),
		Entry("height-drag, drive", drive, linearBaro),
		Entry("height-drag, chip", chip, linearBaro),
		Entry("magnus, drive", drive, lift(vacuum)),
		Entry("magnus, chip", chip, lift(vacuum)),
		Entry("dimpled, drive", drive, lift(linearBaro)),
		Entry("dimpled, chip", chip, lift(linearBaro)),
		Entry("smooth, drive", drive, lift(quadBaro)),
		Entry("smooth, chip", chip, lift(quadBaro)),
		Entry("smooth-unsigned, drive", drive, lift(unsignedBaro)),
		Entry("smooth-unsigned, chip", chip, lift(unsignedBaro)),
	)

	DescribeTable("shortens and lowers the flight with drag",
		func(launch ballistics.Launch, fm ballistics.ForceModel) {
			free := fly(launch, vacuum)
			dragged := fly(launch, fm)
			Expect(dragged.GroundCrossing().X).To(BeNumerically("<", free.GroundCrossing().X))
			Expect(dragged.Apex().Y).To(BeNumerically("<", free.Apex().Y))
		},
		Entry("constant, drive", drive, constantDrag),
		Entry("constant, chip", chip, constantDrag),
		Entry("linear barometric, drive", drive, linearBaro),
		Entry("linear barometric, chip", chip, linearBaro),
		Entry("quadratic barometric, drive", drive, quadBaro),
		Entry("quadratic barometric, chip", chip, quadBaro),
		Entry("unsigned quadratic barometric, drive", drive, unsignedBaro),
		Entry("unsigned quadratic barometric, chip", chip, unsignedBaro),
	)

	DescribeTable("extends the flight with Magnus lift",
		func(launch ballistics.Launch, fm ballistics.ForceModel) {
			plain := fly(launch, fm)
			lifted := fly(launch, lift(fm))
			Expect(lifted.GroundCrossing().X).To(BeNumerically(">", plain.GroundCrossing().X))
			Expect(lifted.Apex().Y).To(BeNumerically(">", plain.Apex().Y))
		},
		Entry("vacuum, drive", drive, vacuum),
		Entry("vacuum, chip", chip, vacuum),
		Entry("linear barometric, drive", drive, linearBaro),
		Entry("linear barometric, chip", chip, linearBaro),
		Entry("quadratic barometric, drive", drive, quadBaro),
		Entry("quadratic barometric, chip", chip, quadBaro),
	)
})

var _ = Describe("IntegrateAll", func() {
	It("keeps input order and matches single runs", func() {
		var shots []ballistics.Shot
		for _, deg := range []float64{5, 15, 30, 45} {
			shots = append(shots, ballistics.Shot{
				Name:      "angle",
				Launch:    ballistics.LaunchDegrees(70, deg),
				Constants: ballistics.GolfBall(),
				Model:     dimpled,
				Options:   ballistics.DefaultOptions(),
			})
		}

		trs, err := ballistics.IntegrateAll(context.Background(), shots, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(trs).To(HaveLen(len(shots)))
		for i, tr := range trs {
			Expect(tr.Launch).To(Equal(shots[i].Launch))
			Expect(tr.Samples).To(Equal(fly(shots[i].Launch, dimpled).Samples))
		}
	})

	It("names the failing shot", func() {
		shots := []ballistics.Shot{{
			Name:      "broken",
			Launch:    ballistics.LaunchDegrees(0, 9),
			Constants: ballistics.GolfBall(),
			Model:     ideal,
			Options:   ballistics.DefaultOptions(),
		}}
		_, err := ballistics.IntegrateAll(context.Background(), shots, 0)
		Expect(err).To(MatchError(ContainSubstring(`shot "broken"`)))
		Expect(err).To(MatchError(ballistics.ErrInvalidLaunch))
	})
})

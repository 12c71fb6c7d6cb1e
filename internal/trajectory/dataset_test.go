package trajectory_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BjoB/gros/internal/constants"
	"github.com/BjoB/gros/internal/integrators"
	"github.com/BjoB/gros/internal/metric"
	"github.com/BjoB/gros/internal/trajectory"
)

var _ = Describe("Dataset", func() {
	Describe("bulk construction", func() {
		It("keeps one point per row and converts positions to Cartesian", func() {
			rows := [][]float64{
				{0, 0, 1, math.Pi / 2, 0},
				{1, 1.1, 2, math.Pi / 2, math.Pi / 2},
			}

			d, err := trajectory.New(rows, 1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Size()).To(Equal(len(rows)))
			Expect(d.Rs()).To(Equal(1000.0))

			p := d.Points()
			Expect(p[0].X).To(BeNumerically("~", 1, 1e-12))
			Expect(p[0].Y).To(BeNumerically("~", 0, 1e-12))
			Expect(p[0].Z).To(BeNumerically("~", 0, 1e-12))
			Expect(p[1].Y).To(BeNumerically("~", 2, 1e-12))
			Expect(p[1].T).To(Equal(1.1))
		})

		It("rejects rows that are not 5 fields wide", func() {
			rows := [][]float64{{0, 0, 1, math.Pi / 2}}

			_, err := trajectory.New(rows, 1000)
			Expect(err).To(MatchError(metric.ErrValidation))
		})

		It("rejects decreasing proper time", func() {
			rows := [][]float64{
				{2, 0, 1, math.Pi / 2, 0},
				{1, 0, 1, math.Pi / 2, 0},
			}

			_, err := trajectory.New(rows, 1000)
			Expect(err).To(MatchError(metric.ErrValidation))
		})

		It("accepts an empty row set", func() {
			d, err := trajectory.New(nil, 1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Size()).To(BeZero())
		})
	})

	Describe("incremental construction", func() {
		var d *trajectory.Dataset

		BeforeEach(func() {
			d = trajectory.NewEmpty(2953)
		})

		It("counts appended states", func() {
			for k := 0; k < 4; k++ {
				s := metric.State{float64(k), 1e11, math.Pi / 2, 0, 1, 0, 0, 0}
				Expect(d.Append(float64(k), s)).To(Succeed())
			}
			Expect(d.Size()).To(Equal(4))
		})

		It("rejects state vectors that are not 8 components long", func() {
			err := d.Append(0, metric.State{1, 2, 3})
			Expect(err).To(MatchError(metric.ErrValidation))
			Expect(d.Size()).To(BeZero())
		})

		It("rejects proper time running backwards", func() {
			s := metric.State{0, 1e11, math.Pi / 2, 0, 1, 0, 0, 0}
			Expect(d.Append(1, s)).To(Succeed())
			Expect(d.Append(0.5, s)).To(MatchError(metric.ErrValidation))
		})
	})

	Describe("recording a full integration run", func() {
		It("produces an ordered dataset carrying the metric's rs", func() {
			m, err := metric.NewSchwarzschild(constants.SolarMass,
				[3]float64{1.4e11, math.Pi / 2, 0.3},
				[3]float64{1000, 0, 0})
			Expect(err).NotTo(HaveOccurred())

			d, err := trajectory.Record(m, 1.0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Rs()).To(Equal(m.Radius()))
			Expect(d.Size()).To(BeNumerically(">=", 2))

			points := d.Points()
			Expect(points[0].Tau).To(BeZero())
			for i := 1; i < len(points); i++ {
				Expect(points[i].Tau).To(BeNumerically(">=", points[i-1].Tau))
			}
			Expect(points[len(points)-1].Tau).To(BeNumerically(">=", 10))
		})

		It("collects from an explicitly constructed iterator", func() {
			m, err := metric.NewSchwarzschild(constants.SolarMass,
				[3]float64{1.4e11, math.Pi / 2, 0},
				[3]float64{0, 0, 0})
			Expect(err).NotTo(HaveOccurred())

			g, err := integrators.NewGeodesic(m, 1.0, integrators.WithProperTimeEnd(5))
			Expect(err).NotTo(HaveOccurred())

			d, err := trajectory.Collect(g)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Status()).To(Equal(integrators.EndReached))
			Expect(d.Size()).To(BeNumerically(">", 0))
		})
	})
})

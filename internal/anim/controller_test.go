package anim_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/patternlab/internal/anim"
	"github.com/san-kum/patternlab/internal/pattern"
	"github.com/san-kum/patternlab/internal/surface"
)

type counter struct {
	calls int
	times []float64
}

func (c *counter) render(t float64, s surface.Surface, w, h float64) {
	c.calls++
	c.times = append(c.times, t)
}

type tickLog struct {
	states []anim.State
}

func (l *tickLog) OnTick(st anim.State, took time.Duration) { l.states = append(l.states, st) }

var _ = Describe("Controller", func() {
	var (
		reg  *pattern.Registry
		rec  *surface.Recorder
		ctrl *anim.Controller
	)

	BeforeEach(func() {
		reg = pattern.NewRegistry()
		rec = surface.NewRecorder(800, 600)
		var err error
		ctrl, err = anim.New(reg, rec)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("defaults", func() {
		It("starts on orbit at 1.0x", func() {
			st := ctrl.State()
			Expect(st.Pattern).To(Equal("orbit"))
			Expect(st.Elapsed).To(BeZero())
			Expect(st.Speed).To(Equal(0.05))
			Expect(ctrl.SpeedLabel()).To(Equal("1.0x"))
		})

		It("relabels when the speed changes", func() {
			ctrl.SetSpeed(0.1)
			Expect(ctrl.SpeedLabel()).To(Equal("2.0x"))
			ctrl.SetSpeed(0)
			Expect(ctrl.SpeedLabel()).To(Equal("0.0x"))
			ctrl.SetSpeed(-0.05)
			Expect(ctrl.SpeedLabel()).To(Equal("-1.0x"))
		})

		It("rejects an unknown default pattern", func() {
			_, err := anim.New(reg, rec, anim.WithDefaultPattern("vortex"))
			Expect(err).To(MatchError(anim.ErrUnknownPattern))
		})

		It("rejects a zero baseline", func() {
			_, err := anim.New(reg, rec, anim.WithBaseline(0))
			Expect(err).To(MatchError(anim.ErrInvalidSpeed))
		})
	})

	Describe("SelectPattern", func() {
		It("resets elapsed time to exactly zero", func() {
			for i := 0; i < 37; i++ {
				ctrl.Tick()
			}
			Expect(ctrl.State().Elapsed).To(BeNumerically(">", 0))

			Expect(ctrl.SelectPattern("tunnel")).To(Succeed())
			Expect(ctrl.State().Elapsed).To(Equal(0.0))
			Expect(ctrl.State().Pattern).To(Equal("tunnel"))
		})

		It("resets when re-selecting the active pattern", func() {
			ctrl.Tick()
			ctrl.Tick()
			Expect(ctrl.SelectPattern("orbit")).To(Succeed())
			Expect(ctrl.State().Elapsed).To(Equal(0.0))
		})

		It("keeps the speed", func() {
			ctrl.SetSpeed(0.13)
			Expect(ctrl.SelectPattern("wave")).To(Succeed())
			Expect(ctrl.State().Speed).To(Equal(0.13))
		})

		It("leaves state untouched for unknown names", func() {
			Expect(ctrl.SelectPattern("spiral")).To(Succeed())
			for i := 0; i < 5; i++ {
				ctrl.Tick()
			}
			before := ctrl.State()

			err := ctrl.SelectPattern("vortex")
			Expect(err).To(MatchError(anim.ErrUnknownPattern))
			Expect(ctrl.State()).To(Equal(before))
			Expect(ctrl.Active().Name).To(Equal("spiral"))
		})
	})

	Describe("Tick", func() {
		It("accumulates N * speed", func() {
			for _, s := range []float64{0.01, 0.05, 0.137, 0.2} {
				Expect(ctrl.SelectPattern("orbit")).To(Succeed())
				ctrl.SetSpeed(s)
				const n = 500
				for i := 0; i < n; i++ {
					ctrl.Tick()
				}
				Expect(ctrl.State().Elapsed).To(BeNumerically("~", n*s, 1e-9))
			}
		})

		It("renders the active pattern once per tick", func() {
			rec.Reset()
			ctrl.Tick()
			Expect(rec.Count(surface.OpFillCircle)).To(Equal(1))
			Expect(rec.Count(surface.OpFillRect)).To(Equal(1))
		})

		It("renders at the elapsed time before advancing", func() {
			c := &counter{}
			r := pattern.NewEmptyRegistry()
			Expect(r.Register(pattern.Descriptor{Name: "probe", Render: c.render})).To(Succeed())
			probe, err := anim.New(r, rec, anim.WithDefaultPattern("probe"), anim.WithSpeed(0.5))
			Expect(err).NotTo(HaveOccurred())

			probe.Tick()
			probe.Tick()
			probe.Tick()
			Expect(c.times).To(Equal([]float64{0, 0.5, 1.0}))
		})

		It("keeps rendering at zero speed without moving time", func() {
			c := &counter{}
			r := pattern.NewEmptyRegistry()
			Expect(r.Register(pattern.Descriptor{Name: "probe", Render: c.render})).To(Succeed())
			probe, err := anim.New(r, rec, anim.WithDefaultPattern("probe"), anim.WithSpeed(0.3))
			Expect(err).NotTo(HaveOccurred())

			probe.Tick()
			probe.SetSpeed(0)
			frozen := probe.State().Elapsed
			for i := 0; i < 20; i++ {
				probe.Tick()
			}
			Expect(probe.State().Elapsed).To(Equal(frozen))
			Expect(c.calls).To(Equal(21))
		})

		It("runs time backwards at negative speed", func() {
			ctrl.SetSpeed(-0.1)
			ctrl.Tick()
			ctrl.Tick()
			Expect(ctrl.State().Elapsed).To(BeNumerically("~", -0.2, 1e-12))
		})

		It("survives a panicking pattern", func() {
			r := pattern.NewEmptyRegistry()
			Expect(r.Register(pattern.Descriptor{Name: "bad", Render: func(float64, surface.Surface, float64, float64) {
				panic("bad frame")
			}})).To(Succeed())
			bad, err := anim.New(r, rec, anim.WithDefaultPattern("bad"))
			Expect(err).NotTo(HaveOccurred())

			Expect(bad.Tick).NotTo(Panic())
			Expect(bad.State().Elapsed).To(Equal(anim.DefaultSpeed))
		})

		It("notifies observers with the rendered state", func() {
			log := &tickLog{}
			ctrl.AddObserver(log)
			ctrl.Tick()
			ctrl.Tick()
			Expect(log.states).To(HaveLen(2))
			Expect(log.states[0].Elapsed).To(Equal(0.0))
			Expect(log.states[1].Elapsed).To(Equal(0.05))
		})

		It("drives every registered pattern", func() {
			for _, name := range reg.Names() {
				Expect(ctrl.SelectPattern(name)).To(Succeed())
				rec.Reset()
				ctrl.Tick()
				Expect(rec.Ops()).NotTo(BeEmpty(), name)
				Expect(rec.Depth()).To(BeZero(), name)
			}
		})
	})

	Describe("speed input", func() {
		It("coerces non-finite speeds to zero", func() {
			for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				ctrl.SetSpeed(0.1)
				ctrl.SetSpeed(v)
				Expect(ctrl.State().Speed).To(Equal(0.0))
			}
		})

		It("parses slider text", func() {
			Expect(ctrl.SetSpeedValue("0.15")).To(Succeed())
			Expect(ctrl.State().Speed).To(Equal(0.15))
			Expect(ctrl.SpeedLabel()).To(Equal("3.0x"))

			Expect(ctrl.SetSpeedValue(" 0.1 ")).To(Succeed())
			Expect(ctrl.SpeedLabel()).To(Equal("2.0x"))
		})

		It("zeroes speed on unparseable text", func() {
			err := ctrl.SetSpeedValue("fast")
			Expect(err).To(MatchError(anim.ErrInvalidSpeed))
			Expect(ctrl.State().Speed).To(BeZero())

			Expect(ctrl.SetSpeedValue("NaN")).To(Succeed())
			Expect(ctrl.State().Speed).To(BeZero())
		})
	})
})

package anim_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/patternlab/internal/anim"
	"github.com/san-kum/patternlab/internal/pattern"
	"github.com/san-kum/patternlab/internal/surface"
)

var _ = Describe("Loop", func() {
	var (
		ctrl   *anim.Controller
		sched  *anim.ManualScheduler
		states chan anim.State
		failed chan error
		loop   *anim.Loop
		ctx    context.Context
		cancel context.CancelFunc
		done   chan error
	)

	BeforeEach(func() {
		var err error
		ctrl, err = anim.New(pattern.NewRegistry(), surface.NewRecorder(400, 300))
		Expect(err).NotTo(HaveOccurred())

		sched = anim.NewManualScheduler()
		states = make(chan anim.State, 16)
		failed = make(chan error, 16)
		loop = anim.NewLoop(ctrl, sched,
			anim.OnFrame(func(st anim.State) { states <- st }),
			anim.OnCommandError(func(_ anim.Command, err error) { failed <- err }),
		)
		ctx, cancel = context.WithCancel(context.Background())
		done = make(chan error, 1)
	})

	start := func() {
		go func() { done <- loop.Run(ctx) }()
	}

	AfterEach(func() {
		cancel()
	})

	It("ticks once per frame signal", func() {
		start()
		for i := 0; i < 3; i++ {
			sched.Fire()
			Eventually(states).Should(Receive())
		}
		Expect(loop.Frames()).To(Equal(uint64(3)))
	})

	It("applies commands before the next frame", func() {
		Expect(loop.Submit(anim.SelectCommand{Name: "mandala"})).To(Succeed())
		Expect(loop.Submit(anim.SpeedCommand{Value: 0.1})).To(Succeed())
		start()

		sched.Fire()
		var st anim.State
		Eventually(states).Should(Receive(&st))
		Expect(st.Pattern).To(Equal("mandala"))
		Expect(st.Speed).To(Equal(0.1))
		Expect(st.Elapsed).To(BeNumerically("~", 0.1, 1e-12))
	})

	It("reports failed commands and keeps running", func() {
		Expect(loop.Submit(anim.SelectCommand{Name: "vortex"})).To(Succeed())
		Expect(loop.Submit(anim.SpeedTextCommand{Raw: "abc"})).To(Succeed())
		start()

		sched.Fire()
		var st anim.State
		Eventually(states).Should(Receive(&st))
		Expect(st.Pattern).To(Equal("orbit"))
		Expect(st.Speed).To(BeZero())

		var err error
		Eventually(failed).Should(Receive(&err))
		Expect(err).To(MatchError(anim.ErrUnknownPattern))
		Eventually(failed).Should(Receive(&err))
		Expect(err).To(MatchError(anim.ErrInvalidSpeed))
	})

	It("stops cooperatively on cancel", func() {
		start()
		sched.Fire()
		Eventually(states).Should(Receive())

		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})

	It("stops on cancel even though the manual channel stays open", func() {
		frames := sched.Frames(ctx)
		start()
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
		Consistently(frames, 50*time.Millisecond).ShouldNot(BeClosed())
	})

	It("stops when the scheduler closes", func() {
		start()
		sched.Close()
		Eventually(done).Should(Receive(MatchError(anim.ErrLoopStopped)))
	})

	It("drops commands once the queue is full", func() {
		var err error
		for i := 0; i < 100 && err == nil; i++ {
			err = loop.Submit(anim.SpeedCommand{Value: float64(i)})
		}
		Expect(err).To(MatchError(anim.ErrQueueFull))
	})
})

var _ = Describe("TickerScheduler", func() {
	It("defaults to 60 fps", func() {
		Expect(anim.NewTickerScheduler(0).Interval()).To(Equal(time.Second / 60))
	})

	It("closes its channel when the context is done", func() {
		ctx, cancel := context.WithCancel(context.Background())
		frames := anim.NewTickerScheduler(200).Frames(ctx)
		Eventually(frames).Should(Receive())
		cancel()
		Eventually(frames).Should(BeClosed())
	})

	It("drives a loop until cancelled", func() {
		ctrl, err := anim.New(pattern.NewRegistry(), surface.NewRecorder(100, 100))
		Expect(err).NotTo(HaveOccurred())
		loop := anim.NewLoop(ctrl, anim.NewTickerScheduler(200))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- loop.Run(ctx) }()

		Eventually(loop.Frames).Should(BeNumerically(">=", 3))
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})
})

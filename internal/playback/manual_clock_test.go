package playback_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/playback"
)

var _ = Describe("ManualClock", func() {
	It("fires callbacks in deadline order", func() {
		var clock playback.ManualClock
		var order []string
		clock.AfterFunc(2*time.Second, func() { order = append(order, "late") })
		clock.AfterFunc(time.Second, func() { order = append(order, "early") })
		clock.AfterFunc(time.Second, func() { order = append(order, "early-second") })

		clock.Advance(1500 * time.Millisecond)
		Expect(order).To(Equal([]string{"early", "early-second"}))
		Expect(clock.Now()).To(Equal(1500 * time.Millisecond))

		clock.Advance(time.Second)
		Expect(order).To(HaveLen(3))
	})

	It("fires callbacks scheduled by callbacks within the window", func() {
		var clock playback.ManualClock
		n := 0
		var again func()
		again = func() {
			n++
			clock.AfterFunc(time.Second, again)
		}
		clock.AfterFunc(time.Second, again)
		clock.Advance(5 * time.Second)
		Expect(n).To(Equal(5))
	})

	It("never moves time backwards", func() {
		var clock playback.ManualClock
		fired := false
		clock.AfterFunc(time.Second, func() { fired = true })
		clock.Advance(500 * time.Millisecond)

		clock.Advance(-time.Hour)
		Expect(clock.Now()).To(Equal(500 * time.Millisecond))
		Expect(fired).To(BeFalse())

		clock.Advance(500 * time.Millisecond)
		Expect(fired).To(BeTrue())
	})

	It("does not fire stopped timers", func() {
		var clock playback.ManualClock
		fired := false
		t := clock.AfterFunc(time.Second, func() { fired = true })
		Expect(t.Stop()).To(BeTrue())
		Expect(t.Stop()).To(BeFalse())
		clock.Advance(time.Minute)
		Expect(fired).To(BeFalse())
	})

	It("runs a controller to completion", func() {
		var clock playback.ManualClock
		ctl := playback.New(playback.WithClock(&clock))
		Expect(ctl.Start(sequenceOf(4))).To(Succeed())
		Expect(clock.RunUntilIdle(100)).To(Equal(3))
		Expect(ctl.Phase()).To(Equal(playback.Complete))
		Expect(clock.Now()).To(Equal(3 * time.Second))
	})
})

var _ = Describe("RealClock", func() {
	It("schedules on the runtime timer", func() {
		done := make(chan struct{})
		playback.RealClock{}.AfterFunc(time.Millisecond, func() { close(done) })
		Eventually(done).Should(BeClosed())
	})
})

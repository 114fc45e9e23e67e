package playback_test

import (
	"bytes"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/classify"
	"github.com/san-kum/algoviz/internal/frames"
	"github.com/san-kum/algoviz/internal/playback"
)

func sequenceOf(n int) *frames.Sequence {
	fs := make([]frames.Frame, n)
	for i := range fs {
		fs[i] = frames.Frame{State: frames.GenericState{Line: i + 1}}
	}
	seq, err := frames.NewSequence(classify.Generic, fs)
	Expect(err).NotTo(HaveOccurred())
	return seq
}

var _ = Describe("Controller", func() {
	var (
		clock *playback.ManualClock
		ctl   *playback.Controller
		seq   *frames.Sequence
	)

	BeforeEach(func() {
		clock = &playback.ManualClock{}
		ctl = playback.New(playback.WithClock(clock))
		seq = sequenceOf(9)
	})

	Describe("Start", func() {
		It("begins at frame 0, running and unpaused", func() {
			for _, n := range []int{1, 2, 9, 40} {
				Expect(ctl.Start(sequenceOf(n))).To(Succeed())
				st := ctl.Status()
				Expect(st.Index).To(Equal(0))
				Expect(st.Running).To(BeTrue())
				Expect(st.Paused).To(BeFalse())
				Expect(st.Total()).To(Equal(n))
			}
		})

		It("rejects a nil sequence and leaves state untouched", func() {
			Expect(ctl.Start(seq)).To(Succeed())
			ctl.StepForward()

			Expect(ctl.Start(nil)).To(MatchError(playback.ErrInvalidSequence))
			st := ctl.Status()
			Expect(st.Index).To(Equal(1))
			Expect(st.Sequence).To(BeIdenticalTo(seq))
		})

		It("replaces the previous run and cancels its pending advance", func() {
			Expect(ctl.Start(seq)).To(Succeed())
			clock.Advance(2500 * time.Millisecond)
			Expect(ctl.Status().Index).To(Equal(2))

			other := sequenceOf(3)
			Expect(ctl.Start(other)).To(Succeed())
			Expect(clock.Pending()).To(Equal(1))
			Expect(ctl.Status().Index).To(Equal(0))

			clock.Advance(999 * time.Millisecond)
			Expect(ctl.Status().Index).To(Equal(0))
			clock.Advance(time.Millisecond)
			Expect(ctl.Status().Index).To(Equal(1))
		})

		It("treats a single frame run as already complete", func() {
			Expect(ctl.Start(sequenceOf(1))).To(Succeed())
			Expect(ctl.Phase()).To(Equal(playback.Complete))
			Expect(clock.Pending()).To(Equal(0))
		})
	})

	Describe("stepping", func() {
		BeforeEach(func() {
			Expect(ctl.Start(seq)).To(Succeed())
			ctl.Pause()
		})

		It("clamps forward steps at the last frame", func() {
			for i := 0; i < seq.Len()*2; i++ {
				ctl.StepForward()
				Expect(ctl.Status().Index).To(BeNumerically("<=", seq.Len()-1))
			}
			Expect(ctl.Status().Index).To(Equal(seq.Len() - 1))
		})

		It("clamps backward steps at frame 0", func() {
			Expect(ctl.Seek(6)).To(Succeed())
			for i := 0; i < 20; i++ {
				ctl.StepBackward()
				Expect(ctl.Status().Index).To(BeNumerically(">=", 0))
			}
			Expect(ctl.Status().Index).To(Equal(0))
		})

		It("does nothing without a sequence", func() {
			ctl.Teardown()
			ctl.StepForward()
			ctl.StepBackward()
			Expect(ctl.Status().Index).To(Equal(0))
		})

		It("reschedules a full delay after a manual step while playing", func() {
			ctl.Resume()
			clock.Advance(600 * time.Millisecond)
			ctl.StepForward()
			Expect(ctl.Status().Index).To(Equal(1))

			clock.Advance(600 * time.Millisecond)
			Expect(ctl.Status().Index).To(Equal(1))
			clock.Advance(400 * time.Millisecond)
			Expect(ctl.Status().Index).To(Equal(2))
		})
	})

	Describe("Seek", func() {
		It("rejects indices outside the sequence", func() {
			Expect(ctl.Seek(0)).To(MatchError(playback.ErrOutOfRangeIndex))
			Expect(ctl.Start(seq)).To(Succeed())
			Expect(ctl.Seek(-1)).To(MatchError(playback.ErrOutOfRangeIndex))
			Expect(ctl.Seek(9)).To(MatchError(playback.ErrOutOfRangeIndex))
			Expect(ctl.Seek(8)).To(Succeed())
			Expect(ctl.Phase()).To(Equal(playback.Complete))
		})
	})

	Describe("pause and resume", func() {
		It("round-trips to the same index", func() {
			Expect(ctl.Start(seq)).To(Succeed())
			clock.Advance(3 * time.Second)
			before := ctl.Status().Index

			ctl.Pause()
			ctl.Resume()
			Expect(ctl.Status().Index).To(Equal(before))
			Expect(ctl.Phase()).To(Equal(playback.Playing))
		})

		It("holds the index while paused", func() {
			Expect(ctl.Start(seq)).To(Succeed())
			ctl.Pause()
			ctl.Pause()
			clock.Advance(10 * time.Second)
			Expect(ctl.Status().Index).To(Equal(0))
			Expect(ctl.Phase()).To(Equal(playback.Paused))
		})

		It("ignores resume when nothing is running", func() {
			ctl.Resume()
			Expect(ctl.Phase()).To(Equal(playback.Idle))
			Expect(clock.Pending()).To(Equal(0))
		})

		It("toggles", func() {
			Expect(ctl.Start(seq)).To(Succeed())
			ctl.TogglePause()
			Expect(ctl.Status().Paused).To(BeTrue())
			ctl.TogglePause()
			Expect(ctl.Status().Paused).To(BeFalse())
		})
	})

	Describe("Teardown", func() {
		It("returns to idle from any state", func() {
			setups := map[string]func(){
				"idle":     func() {},
				"playing":  func() { Expect(ctl.Start(seq)).To(Succeed()) },
				"paused":   func() { Expect(ctl.Start(seq)).To(Succeed()); ctl.Pause() },
				"complete": func() { Expect(ctl.Start(seq)).To(Succeed()); clock.Advance(20 * time.Second) },
				"reset":    func() { Expect(ctl.Start(seq)).To(Succeed()); ctl.Reset() },
			}
			for name, setup := range setups {
				setup()
				ctl.Teardown()
				st := ctl.Status()
				Expect(st.Running).To(BeFalse(), name)
				Expect(st.Index).To(Equal(0), name)
				Expect(st.Sequence).To(BeNil(), name)
				Expect(ctl.Phase()).To(Equal(playback.Idle), name)
			}
		})

		It("cancels an advance scheduled by start", func() {
			Expect(ctl.Start(seq)).To(Succeed())
			ctl.Teardown()
			Expect(clock.Pending()).To(Equal(0))
			clock.Advance(5 * time.Second)
			Expect(ctl.Status().Index).To(Equal(0))
			Expect(ctl.Status().Running).To(BeFalse())
		})

		It("ignores a stale callback that fires after teardown", func() {
			cc := &capturingClock{}
			ctl = playback.New(playback.WithClock(cc))
			Expect(ctl.Start(seq)).To(Succeed())
			ctl.Teardown()
			Expect(ctl.Start(seq)).To(Succeed())
			ctl.Pause()

			for _, f := range cc.callbacks {
				f()
			}
			Expect(ctl.Status().Index).To(Equal(0))
		})
	})

	Describe("auto-advance", func() {
		It("reaches the last frame of nine after eight seconds and stops there", func() {
			bfs, err := frames.Materialize(classify.GraphBFS)
			Expect(err).NotTo(HaveOccurred())
			Expect(bfs.Len()).To(Equal(9))

			Expect(ctl.Start(bfs)).To(Succeed())
			clock.Advance(7999 * time.Millisecond)
			Expect(ctl.Status().Index).To(Equal(7))
			clock.Advance(time.Millisecond)
			Expect(ctl.Status().Index).To(Equal(8))
			Expect(ctl.Phase()).To(Equal(playback.Complete))

			clock.Advance(time.Second)
			st := ctl.Status()
			Expect(st.Index).To(Equal(8))
			Expect(st.Running).To(BeTrue())
			Expect(st.Scheduled).To(BeFalse())
		})

		It("halves the delay at double speed", func() {
			ctl.SetSpeed(2)
			Expect(ctl.Start(seq)).To(Succeed())
			clock.Advance(4 * time.Second)
			Expect(ctl.Status().Index).To(Equal(8))
		})

		It("applies a speed change to the pending advance", func() {
			Expect(ctl.Start(seq)).To(Succeed())
			clock.Advance(500 * time.Millisecond)
			ctl.SetSpeed(3)
			Expect(ctl.Interval()).To(Equal(time.Second / 3))
			clock.Advance(time.Second / 3)
			Expect(ctl.Status().Index).To(Equal(1))
		})

		It("honours a custom base interval", func() {
			ctl = playback.New(playback.WithClock(clock), playback.WithBaseInterval(200*time.Millisecond))
			Expect(ctl.Start(seq)).To(Succeed())
			clock.Advance(time.Second)
			Expect(ctl.Status().Index).To(Equal(5))
		})

		It("keeps at most one advance pending", func() {
			Expect(ctl.Start(seq)).To(Succeed())
			ctl.SetSpeed(1.5)
			ctl.Pause()
			ctl.Resume()
			ctl.StepForward()
			Expect(clock.Pending()).To(Equal(1))
		})
	})

	Describe("Reset", func() {
		It("rewinds to frame 0 paused and waits for resume", func() {
			Expect(ctl.Start(seq)).To(Succeed())
			clock.Advance(5 * time.Second)
			Expect(ctl.Status().Index).To(Equal(5))

			ctl.Reset()
			st := ctl.Status()
			Expect(st.Index).To(Equal(0))
			Expect(st.Paused).To(BeTrue())
			Expect(st.Running).To(BeTrue())
			Expect(st.Sequence).To(BeIdenticalTo(seq))

			clock.Advance(10 * time.Second)
			Expect(ctl.Status().Index).To(Equal(0))

			ctl.Resume()
			clock.Advance(time.Second)
			Expect(ctl.Status().Index).To(Equal(1))
		})
	})

	Describe("SetSpeed", func() {
		It("clamps out of range multipliers and logs a warning", func() {
			var buf bytes.Buffer
			ctl = playback.New(playback.WithClock(clock), playback.WithLogger(log.New(&buf)))

			ctl.SetSpeed(10)
			Expect(ctl.Speed()).To(Equal(playback.MaxSpeed))
			ctl.SetSpeed(0)
			Expect(ctl.Speed()).To(Equal(playback.MinSpeed))
			Expect(buf.String()).To(ContainSubstring("clamping"))
		})

		It("steps by half", func() {
			ctl.Faster()
			Expect(ctl.Speed()).To(Equal(1.5))
			for i := 0; i < 10; i++ {
				ctl.Slower()
			}
			Expect(ctl.Speed()).To(Equal(playback.MinSpeed))
		})
	})

	Describe("Subscribe", func() {
		It("delivers each change and stops after cancel", func() {
			var got []playback.Status
			cancel := ctl.Subscribe(func(st playback.Status) { got = append(got, st) })

			Expect(ctl.Start(seq)).To(Succeed())
			clock.Advance(time.Second)
			ctl.Pause()
			ctl.Pause()
			Expect(got).To(HaveLen(3))
			Expect(got[1].Index).To(Equal(1))
			Expect(got[2].Phase()).To(Equal(playback.Paused))

			cancel()
			cancel()
			ctl.StepForward()
			Expect(got).To(HaveLen(3))
		})

		It("lets a subscriber read the controller", func() {
			var phases []playback.Phase
			ctl.Subscribe(func(playback.Status) { phases = append(phases, ctl.Phase()) })
			Expect(ctl.Start(sequenceOf(2))).To(Succeed())
			clock.Advance(time.Second)
			Expect(phases).To(Equal([]playback.Phase{playback.Playing, playback.Complete}))
		})
	})

	It("exposes the current frame", func() {
		_, ok := ctl.Frame()
		Expect(ok).To(BeFalse())

		Expect(ctl.Start(seq)).To(Succeed())
		ctl.StepForward()
		f, ok := ctl.Frame()
		Expect(ok).To(BeTrue())
		Expect(f.Index).To(Equal(1))
		Expect(f.State).To(Equal(frames.GenericState{Line: 2}))
	})
})

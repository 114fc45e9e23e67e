package playback

import "github.com/san-kum/algoviz/internal/frames"

// Phase is the derived lifecycle state of a session.
type Phase int

const (
	Idle Phase = iota
	Playing
	Paused
	Complete
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// Status is a snapshot of the session.
type Status struct {
	Sequence  *frames.Sequence
	Index     int
	Running   bool
	Paused    bool
	Speed     float64
	Scheduled bool
}

// Total is the number of frames in the active sequence.
func (s Status) Total() int {
	return s.Sequence.Len()
}

// Last reports whether the index sits on the terminal frame.
func (s Status) Last() bool {
	return s.Sequence.Len() > 0 && s.Index == s.Sequence.Len()-1
}

func (s Status) Phase() Phase {
	switch {
	case !s.Running:
		return Idle
	case s.Paused:
		return Paused
	case s.Last():
		return Complete
	default:
		return Playing
	}
}

// Frame returns the frame at the current index.
func (s Status) Frame() (frames.Frame, bool) {
	return s.Sequence.At(s.Index)
}

package frames

import "github.com/san-kum/algoviz/internal/classify"

// Sequence is the ordered, read-only list of frames for one run.
type Sequence struct {
	category classify.Category
	frames   []Frame
}

// NewSequence copies frames, renumbers them 0..n-1 and wraps them in a
// Sequence. An empty list is rejected with ErrEmptySequence.
func NewSequence(category classify.Category, frames []Frame) (*Sequence, error) {
	if len(frames) == 0 {
		return nil, ErrEmptySequence
	}
	owned := make([]Frame, len(frames))
	copy(owned, frames)
	for i := range owned {
		owned[i].Index = i
	}
	return &Sequence{category: category, frames: owned}, nil
}

// Len is zero for a nil sequence.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

func (s *Sequence) Category() classify.Category {
	if s == nil {
		return ""
	}
	return s.category
}

// At returns frame i. ok is false when i is out of range.
func (s *Sequence) At(i int) (Frame, bool) {
	if i < 0 || i >= s.Len() {
		return Frame{}, false
	}
	return s.frames[i], true
}

// Last is the index of the terminal frame, or -1 for a nil sequence.
func (s *Sequence) Last() int { return s.Len() - 1 }

// Frames returns a copy of the frame list.
func (s *Sequence) Frames() []Frame {
	out := make([]Frame, s.Len())
	if s != nil {
		copy(out, s.frames)
	}
	return out
}

// Console returns the run's console output, which is attached to the
// terminal frame.
func (s *Sequence) Console() []string {
	f, ok := s.At(s.Last())
	if !ok {
		return nil
	}
	out := make([]string, len(f.ConsoleLines))
	copy(out, f.ConsoleLines)
	return out
}

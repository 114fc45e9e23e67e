package frames

import "errors"

var (
	// ErrEmptySequence indicates an attempt to build a sequence with no frames.
	ErrEmptySequence = errors.New("frames: sequence has no frames")

	// ErrUnknownCategory indicates no generator is registered for a category.
	ErrUnknownCategory = errors.New("frames: no generator for category")

	// ErrFrameState indicates a frame document without exactly one render state.
	ErrFrameState = errors.New("frames: frame must carry exactly one render state")

	// ErrFormat indicates an unsupported document format.
	ErrFormat = errors.New("frames: unsupported format")
)

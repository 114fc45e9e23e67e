package playback

import "errors"

var (
	ErrInvalidSequence = errors.New("playback: sequence is nil or empty")
	ErrOutOfRangeIndex = errors.New("playback: index out of range")
)

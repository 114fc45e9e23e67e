// Package playback drives a step-indexed animation over a frame sequence.
//
// A [Controller] owns one session: the active sequence, the current index,
// the running and paused flags and the speed multiplier. While playing it
// keeps at most one pending advance scheduled through a [Clock]. Every
// mutation bumps a generation counter and stops that advance, so a callback
// that fires late is discarded instead of moving the index.
//
// Key types:
//   - [Controller]: the session state machine
//   - [Status]: an immutable snapshot handed to renderers
//   - [Phase]: Idle, Playing, Paused or Complete
//   - [Clock], [Timer]: the scheduling seam; [RealClock] wraps the time package
package playback

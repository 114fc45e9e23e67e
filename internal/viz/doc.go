// Package viz provides the terminal front end for algorithm playback.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [NewInteractiveApp]: source editor with templates and live analysis
//   - [Model]: visualization screen driving a playback controller
//   - [Canvas]: Braille-based pixel canvas with text labels
//   - [Draw], [Details]: per-state renderers shared with image export
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	H/L   - Step backward/forward
//	R     - Reset to the first frame, paused
//	+/-   - Change speed between 0.5x and 3x
//	C     - Toggle console
//	T     - Cycle color themes
//	?     - Show help overlay
//	Esc   - Stop playback and return to the editor
//
// Playback ticks are scheduled as tea.Tick commands, so every advance is
// handled on the program's event loop alongside key presses.
package viz

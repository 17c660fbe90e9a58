// Package viz draws rigid-body runs in the terminal.
//
// Point clouds are projected through an orbiting [Camera] onto a braille
// [Canvas], giving 2×4 sub-pixels per character cell. [Player] is a Bubble
// Tea model that either steps a body live or replays a recorded run, and
// [Picker] lets the user choose a preset before launching it.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the initial state
//	[ ]   - Scrub through history
//	←→↑↓  - Orbit the camera
//	+ -   - Zoom
//	T     - Cycle color themes
//	?     - Toggle help
//	Q     - Quit
package viz

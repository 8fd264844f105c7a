// Package viz renders trajectories in the terminal.
//
//   - [Canvas]: Braille pixel canvas, 2x4 sub-pixels per cell
//   - [Overlay]: several trajectories on one asciigraph chart
//   - [Summary]: lipgloss table of a run's landing figures
//   - [Replay]: Bubble Tea model that animates a stored flight
//
// # Replay keys
//
//	Space - Pause/Resume
//	R     - Restart from the tee
//	[ ]   - Step back/forward one frame while paused
//	+ -   - Playback speed
//	T     - Cycle color themes
//	Q     - Quit
package viz

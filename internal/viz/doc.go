// Package viz renders simulation frames for the terminal.
//
//   - [RenderFrame]: a styled table of body positions and distances
//   - [PlotDisplacement]: an ASCII chart of one body's drift from its start
//   - [LiveModel]: a Bubble Tea program stepping a system on a timer
//
// # Key Bindings
//
//	Space - Pause/Resume
//	S     - Single step while paused
//	Q     - Quit
package viz

// Package viz renders a finished run in the terminal.
//
// Nothing here advances the simulation. Everything reads an [nbody.History]:
//
//   - [Canvas]: braille sub-pixel canvas
//   - [Projection]: world x-y plane to canvas sub-pixels
//   - [DrawFrame], [DrawLabels]: one frame with trails and markers
//   - [RadiusPlot], [EnergyPlot]: asciigraph line charts
//   - [Player]: Bubble Tea replay with playback controls
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	[ ]   - Seek back/forward
//	+ -   - Change playback speed
//	T     - Cycle trail length
//	C     - Cycle color themes
//	?     - Show help overlay
package viz

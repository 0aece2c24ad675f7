// Package ui hosts the tiling engine in a Bubble Tea program.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, mouse clicks, window resizes, loaded content).
//   - Key and mouse handlers call into the tiling.Engine. The engine returns
//     a list of effects and applyEffects (effects.go) is the only place pane
//     views are created, moved, destroyed or focused.
//   - Reading compose files happens off the update loop through the
//     internal/ui/command bus; the result comes back as a paneLoadedMsg and
//     is placed on the grid like any other pane.
//
// Rendering:
//   - view.go scales each pane's cell rectangle onto the terminal and stitches
//     the bordered boxes together line by line. Every box is padded to its
//     exact size so neighbouring panes stay aligned.
//   - The jump prompt (jump.go) filters panes by title with the helpers in
//     internal/ui/state; the debug view replays the layout log.
package ui

// Package ui contains the Bubble Tea program that drives a menu tree.
// The Model type focuses on message orchestration, while dedicated helpers own
// navigation and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window resizes, action results).
//   - Key presses are translated into navigation signals (navigate, move,
//     select, back, interrupt) by internal/ui/navigation.go. Keys outside the
//     key map are ignored.
//   - Selecting an action node raises a request that bubbles up to the root.
//     The model collects the configuration of the whole tree and hands the
//     action to the internal/ui/command bus, which runs it asynchronously and
//     reports a command.Result.
//
// State ownership:
//   - The tree itself lives in internal/menu. The model only holds a focus
//     reference to the menu currently on screen.
//   - Rendering is a pure projection of the focused menu into a frame string
//     (internal/ui/view.go). The frame is cached and frozen while an action
//     runs so its output is never overwritten by a redraw.
//
// Once an action completes or the user interrupts, the model quits the
// program and exposes the result through Model.Outcome.
package ui

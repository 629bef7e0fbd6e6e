// Package ui contains the Bubble Tea program that paints the virtual desktop
// in a terminal. The package is structured so the Model type focuses on
// message orchestration, while dedicated helpers own input, rendering and
// window bookkeeping.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses go to the open prompt or switcher first, then to the active
//     window's keyboard mode, then to dialog answers and shortcuts. Anything
//     left reaches wm.Manager.HandleKey.
//   - Mouse presses are counted for double clicks, checked against the title
//     bar buttons drawn by the host and otherwise handed to
//     wm.Manager.HandlePointer.
//
// State ownership:
//   - Window state, z-order, activation and dialogs live in internal/wm. The
//     model only keeps layout ids, close confirmations and overlays.
//   - The switcher list lives in internal/ui/state.List.
//   - Follow-up work such as dialog results and layout saves runs through the
//     internal/ui/command bus and comes back as messages.
//
// Backend interactions:
//   - A backend.Watcher polls the layout file; reloaded documents are merged
//     into the desktop by layout id.
//   - While any window animates, finishUpdate schedules frame ticks that feed
//     wm.Manager.Advance.
package ui

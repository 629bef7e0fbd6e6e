/*
Package wm implements the virtual window manager: managed windows that move,
resize, minimize, maximize and go full screen inside a single surface, modal
dialogs, z-order and activation.

The package is structured around two types:
  - Window is the state machine for one virtual window. It owns its geometry
    snapshots, its modal child and its owner back-reference.
  - Manager is the registry for one surface. It owns the attached windows,
    assigns z-indices, keeps activation exclusive, routes pointer and keyboard
    input, and drives animations through Advance.

Everything runs on the host's event loop; no method is safe for concurrent
use except the read side of Future.

Example usage:

	m := wm.NewManager(wm.Config{Width: 1000, Height: 800})
	w := wm.NewWindow("Editor",
		wm.WithSize(geometry.Size{Width: 400, Height: 300}),
		wm.WithStartupLocation(geometry.StartupCenterScreen))
	if err := m.ShowWindow(w); err != nil {
		// handle error
	}
	dlg := wm.NewWindow("Confirm")
	result, err := wm.ShowDialog[string](dlg, w)
	if err != nil {
		// handle error
	}
	result.Then(func(answer string, err error) { ... })
*/
package wm

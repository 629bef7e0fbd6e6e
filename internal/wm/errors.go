package wm

import "errors"

// ErrAlreadyShowingModal is returned when a second concurrent modal dialog is
// requested for an owner (or the surface) that already has one.
var ErrAlreadyShowingModal = errors.New("already showing a modal dialog")

// ErrNotAttached is returned for operations that need a Manager on a window
// that has none.
var ErrNotAttached = errors.New("window is not attached to a manager")

// ErrUnsupportedOperation is returned for transitions the window's
// capabilities exclude.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// ErrWindowClosed is returned when showing a window that has been closed.
var ErrWindowClosed = errors.New("window has been closed")

// ErrAlreadyShown is returned by ShowDialog for a window that is already open.
var ErrAlreadyShown = errors.New("window is already shown")

// ErrResultType is returned by a dialog future whose stored result does not
// have the requested type.
var ErrResultType = errors.New("dialog result has unexpected type")

// ErrCloseVetoed is reported by Manager.CloseAll for windows whose close was
// cancelled.
var ErrCloseVetoed = errors.New("close vetoed")

// ErrDialogPending is returned by Future.Result before the dialog has closed.
var ErrDialogPending = errors.New("dialog has not closed yet")

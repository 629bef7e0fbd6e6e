package wm

import (
	"context"
	"fmt"

	"github.com/atomicstack/vwm/internal/logging/events"
)

// Future is the pending result of a modal dialog. It is resolved on the
// event loop when the dialog closes; Done and Wait may be used from other
// goroutines.
type Future[T any] struct {
	done      chan struct{}
	value     T
	err       error
	callbacks []func(T, error)
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(v T, err error) {
	select {
	case <-f.done:
		return
	default:
	}
	f.value = v
	f.err = err
	close(f.done)
	callbacks := f.callbacks
	f.callbacks = nil
	for _, fn := range callbacks {
		fn(v, err)
	}
}

// Done is closed once the dialog has closed.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Resolved reports whether the dialog has closed.
func (f *Future[T]) Resolved() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result returns the dialog result. It is only meaningful once Resolved.
func (f *Future[T]) Result() (T, error) {
	if !f.Resolved() {
		var zero T
		return zero, ErrDialogPending
	}
	return f.value, f.err
}

// Wait blocks until the dialog closes or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then runs fn on the event loop when the dialog closes, or immediately if it
// already has.
func (f *Future[T]) Then(fn func(T, error)) {
	if f.Resolved() {
		fn(f.value, f.err)
		return
	}
	f.callbacks = append(f.callbacks, fn)
}

// ShowDialog shows dialog modally for owner and returns a future resolved
// with the value passed to CloseWithResult. A nil owner makes the dialog
// modal for the whole surface; the dialog must then already be adopted by a
// manager (see Manager.ShowDialog).
func ShowDialog[T any](dialog, owner *Window) (*Future[T], error) {
	if err := checkModalSlot(dialog, owner); err != nil {
		return nil, err
	}
	if !dialog.caps.ModalCapable {
		return nil, fmt.Errorf("show dialog %s: %w", dialog, ErrUnsupportedOperation)
	}
	switch dialog.lifecycle {
	case lifecycleShown:
		return nil, fmt.Errorf("show dialog %s: %w", dialog, ErrAlreadyShown)
	case lifecycleClosing, lifecycleClosed:
		return nil, fmt.Errorf("show dialog %s: %w", dialog, ErrWindowClosed)
	}
	m := dialog.manager
	if owner != nil {
		if owner.lifecycle != lifecycleShown {
			return nil, fmt.Errorf("show dialog %s: owner %s: %w", dialog, owner, ErrNotAttached)
		}
		m = owner.manager
	}
	if m == nil {
		return nil, fmt.Errorf("show dialog %s: %w", dialog, ErrNotAttached)
	}
	if err := m.adopt(dialog); err != nil {
		return nil, err
	}

	fut := newFuture[T]()
	unsubscribe := dialog.OnClosed(func(d *Window) {
		if owner != nil && owner.modalChild == d {
			owner.modalChild = nil
			if owner.lifecycle == lifecycleShown {
				_ = owner.Activate()
			}
		}
		value, err := dialogResultAs[T](d.result, d.hasResult)
		events.Dialog.Resolved(d.id, d.result, err)
		fut.resolve(value, err)
	})

	if owner != nil {
		owner.modalChild = dialog
		owner.endPointerSession()
		owner.kbMode = KeyboardNone
	} else {
		m.modal = dialog
	}
	var ownerID uint64
	if owner != nil {
		ownerID = owner.id
	}
	events.Dialog.Show(dialog.id, ownerID)

	if err := dialog.show(owner, true); err != nil {
		unsubscribe()
		if owner != nil {
			owner.modalChild = nil
		} else if m.modal == dialog {
			m.modal = nil
		}
		return nil, err
	}
	if owner == nil && m.captured != nil && m.captured != dialog {
		m.captured.endPointerSession()
		m.captured = nil
	}
	if owner != nil && owner.active {
		owner.Deactivate()
	}
	return fut, nil
}

// checkModalSlot rejects a dialog when its owner, or the surface for an
// ownerless dialog, already shows a modal. It runs before any other check.
func checkModalSlot(dialog, owner *Window) error {
	var err error
	switch {
	case owner != nil && owner.modalChild != nil:
		err = fmt.Errorf("show dialog %s: owner %s: %w", dialog, owner, ErrAlreadyShowingModal)
	case owner == nil && dialog.manager != nil && dialog.manager.modal != nil:
		err = fmt.Errorf("show dialog %s: surface: %w", dialog, ErrAlreadyShowingModal)
	}
	if err != nil {
		events.Dialog.Rejected(dialog.id, err)
	}
	return err
}

// ShowDialog shows w modally for owner with an untyped result.
func (w *Window) ShowDialog(owner *Window) (*Future[any], error) {
	return ShowDialog[any](w, owner)
}

// ShowDialog shows dialog as a surface-wide modal owned by no window.
func (m *Manager) ShowDialog(dialog *Window) (*Future[any], error) {
	if m.modal != nil {
		err := fmt.Errorf("show dialog %s: surface: %w", dialog, ErrAlreadyShowingModal)
		events.Dialog.Rejected(dialog.id, err)
		return nil, err
	}
	if err := m.adopt(dialog); err != nil {
		return nil, err
	}
	return ShowDialog[any](dialog, nil)
}

func dialogResultAs[T any](v any, ok bool) (T, error) {
	var zero T
	if !ok || v == nil {
		return zero, nil
	}
	typed, match := v.(T)
	if !match {
		return zero, fmt.Errorf("dialog result %T: %w", v, ErrResultType)
	}
	return typed, nil
}

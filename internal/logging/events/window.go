package events

import "github.com/atomicstack/vwm/internal/logging"

type WindowTracer struct{}

type DialogTracer struct{}

var (
	Window = WindowTracer{}
	Dialog = DialogTracer{}
)

func (WindowTracer) Opened(id uint64, title, bounds, state string) {
	logging.Trace("window.open", map[string]interface{}{
		"id":     id,
		"title":  title,
		"bounds": bounds,
		"state":  state,
	})
}

func (WindowTracer) Activated(id uint64) {
	logging.Trace("window.activate", map[string]interface{}{"id": id})
}

func (WindowTracer) Deactivated(id uint64) {
	logging.Trace("window.deactivate", map[string]interface{}{"id": id})
}

func (WindowTracer) State(id uint64, from, to string) {
	logging.Trace("window.state", map[string]interface{}{"id": id, "from": from, "to": to})
}

func (WindowTracer) Closing(id uint64, reason string, programmatic bool) {
	logging.Trace("window.closing", map[string]interface{}{
		"id":           id,
		"reason":       reason,
		"programmatic": programmatic,
	})
}

func (WindowTracer) CloseVetoed(id uint64) {
	logging.Trace("window.close.veto", map[string]interface{}{"id": id})
}

func (WindowTracer) Closed(id uint64) {
	logging.Trace("window.close", map[string]interface{}{"id": id})
}

func (WindowTracer) Moved(id uint64, x, y int) {
	logging.Trace("window.move", map[string]interface{}{"id": id, "x": x, "y": y})
}

func (WindowTracer) Resized(id uint64, width, height int, reason string) {
	logging.Trace("window.resize", map[string]interface{}{
		"id":     id,
		"width":  width,
		"height": height,
		"reason": reason,
	})
}

func (WindowTracer) Session(id uint64, kind string, active bool) {
	logging.Trace("window.session", map[string]interface{}{"id": id, "kind": kind, "active": active})
}

func (WindowTracer) AnimationFailed(id uint64, reason interface{}) {
	logging.Trace("window.animation.fail", map[string]interface{}{"id": id, "reason": reason})
}

func (DialogTracer) Show(id, owner uint64) {
	logging.Trace("dialog.show", map[string]interface{}{"id": id, "owner": owner})
}

func (DialogTracer) Rejected(id uint64, err error) {
	logging.Trace("dialog.reject", map[string]interface{}{"id": id, "error": err.Error()})
}

func (DialogTracer) Resolved(id uint64, result interface{}, err error) {
	payload := map[string]interface{}{"id": id, "result": result}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("dialog.resolve", payload)
}

func (DialogTracer) Blocked(id uint64) {
	logging.Trace("dialog.blocked", map[string]interface{}{"id": id})
}

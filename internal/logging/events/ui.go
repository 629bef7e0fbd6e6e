package events

import "github.com/atomicstack/vwm/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key string, handled bool) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "handled": handled})
}

func (UITracer) Mouse(action, button string, x, y, clicks int) {
	logging.Trace("ui.mouse", map[string]interface{}{
		"action": action,
		"button": button,
		"x":      x,
		"y":      y,
		"clicks": clicks,
	})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) SwitcherOpen(windows int) {
	logging.Trace("ui.switcher.open", map[string]interface{}{"windows": windows})
}

func (UITracer) SwitcherSelect(id uint64, title string) {
	logging.Trace("ui.switcher.select", map[string]interface{}{"id": id, "title": title})
}

func (UITracer) Prompt(kind string) {
	logging.Trace("ui.prompt", map[string]interface{}{"kind": kind})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared(scope string) {
	logging.Trace("filter.clear", map[string]interface{}{"scope": scope})
}

func (FilterTracer) Append(scope, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"scope": scope, "filter": filter})
}

func (FilterTracer) Backspace(scope, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"scope": scope, "filter": filter})
}

func (FilterTracer) Cursor(scope string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"scope": scope, "cursor": pos})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

package events

import "github.com/atomicstack/vwm/internal/logging"

type ManagerTracer struct{}

type LayoutTracer struct{}

var (
	Manager = ManagerTracer{}
	Layout  = LayoutTracer{}
)

func (ManagerTracer) ZOrder(ids []uint64) {
	logging.Trace("manager.zorder", map[string]interface{}{"order": ids})
}

func (ManagerTracer) Navigate(direction string, target uint64) {
	logging.Trace("manager.navigate", map[string]interface{}{"direction": direction, "target": target})
}

func (ManagerTracer) Surface(width, height int) {
	logging.Trace("manager.surface", map[string]interface{}{"width": width, "height": height})
}

func (ManagerTracer) CloseAll(windows, vetoed int) {
	logging.Trace("manager.close-all", map[string]interface{}{"windows": windows, "vetoed": vetoed})
}

func (LayoutTracer) Loaded(path string, windows int) {
	logging.Trace("layout.load", map[string]interface{}{"path": path, "windows": windows})
}

func (LayoutTracer) Changed(path string) {
	logging.Trace("layout.change", map[string]interface{}{"path": path})
}

func (LayoutTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("layout.error", map[string]interface{}{"path": path, "error": err.Error()})
}

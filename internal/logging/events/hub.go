package events

import "github.com/atomicstack/nvim-switcher/internal/logging"

type HubTracer struct{}

var Hub = HubTracer{}

func (HubTracer) Subscribe(name, id string) {
	logging.Trace("hub.subscribe", map[string]interface{}{"event": name, "id": id})
}

func (HubTracer) Dispose(name, id string) {
	logging.Trace("hub.dispose", map[string]interface{}{"event": name, "id": id})
}

func (HubTracer) Emit(name string, listeners int) {
	logging.Trace("hub.emit", map[string]interface{}{"event": name, "listeners": listeners})
}

func (HubTracer) CallbackFailed(name, id string, recovered interface{}) {
	logging.Warn("eventhub: listener %s for %s failed: %v", id, name, recovered)
	logging.Trace("hub.callback.failed", map[string]interface{}{"event": name, "id": id, "error": recovered})
}

package events

import "github.com/atomicstack/nvim-switcher/internal/logging"

type WatcherTracer struct{}

var Watcher = WatcherTracer{}

func (WatcherTracer) Poll(err error) {
	if err != nil {
		logging.Trace("watcher.poll", map[string]interface{}{"error": err.Error()})
		return
	}
	logging.Trace("watcher.poll", nil)
}

func (WatcherTracer) Publish(event string) {
	logging.Trace("watcher.publish", map[string]interface{}{"event": event})
}

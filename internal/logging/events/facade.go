package events

import "github.com/atomicstack/nvim-switcher/internal/logging"

type FacadeTracer struct{}

var Facade = FacadeTracer{}

// Unimplemented emits the single diagnostic recorded for a call into an
// unsupported window operation.
func (FacadeTracer) Unimplemented(name string, err error) {
	logging.Warn("%v", err)
	logging.Trace("facade.nyi", map[string]interface{}{"name": name})
}

func (FacadeTracer) Notify(op, severity string, modal bool, items int) {
	logging.Trace("facade.notify", map[string]interface{}{
		"op":       op,
		"severity": severity,
		"modal":    modal,
		"items":    items,
	})
}

func (FacadeTracer) StatusBar(text string) {
	logging.Info("status bar: %s", text)
	logging.Trace("facade.statusbar", map[string]interface{}{"text": text})
}

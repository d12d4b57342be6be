package events

import "github.com/atomicstack/nvim-switcher/internal/logging"

type PickerTracer struct{}

var Picker = PickerTracer{}

func (PickerTracer) Show(baseline, candidates int) {
	logging.Trace("picker.show", map[string]interface{}{"baseline": baseline, "candidates": candidates})
}

func (PickerTracer) Query(query string, candidates, selected int) {
	logging.Trace("picker.query", map[string]interface{}{"query": query, "candidates": candidates, "selected": selected})
}

func (PickerTracer) Move(direction string, selected int) {
	logging.Trace("picker.move", map[string]interface{}{"direction": direction, "selected": selected})
}

func (PickerTracer) Select(handle int, name string) {
	logging.Trace("picker.select", map[string]interface{}{"buffer": handle, "name": name})
}

func (PickerTracer) Hide() {
	logging.Trace("picker.hide", nil)
}

package dispatcher

import (
	"github.com/atomicstack/nvim-switcher/internal/backend"
	"github.com/atomicstack/nvim-switcher/internal/eventhub"
	"github.com/atomicstack/nvim-switcher/internal/facade"
	"github.com/atomicstack/nvim-switcher/internal/logging/events"
	"github.com/atomicstack/nvim-switcher/internal/nvim"
)

// Result lists the event names published for one backend event.
type Result struct {
	Published []string
}

// Dispatcher turns consecutive watcher snapshots into facade change events.
// Handle is not safe for concurrent use; Run owns it when used.
type Dispatcher struct {
	hub  *eventhub.Hub
	prev *nvim.Snapshot
}

func New(hub *eventhub.Hub) *Dispatcher {
	return &Dispatcher{hub: hub}
}

// Run handles events until the channel is closed.
func (d *Dispatcher) Run(in <-chan backend.Event) {
	for evt := range in {
		d.Handle(evt)
	}
}

// Handle compares evt with the previous snapshot and publishes the
// differences. The first snapshot only establishes the baseline; errors leave
// the baseline untouched.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	next := evt.Snapshot
	prev := d.prev
	d.prev = &next
	if prev == nil {
		return res
	}

	if next.Window != prev.Window {
		editor := facade.NewTextEditor(next.Window)
		eventhub.Publish(d.hub, facade.TopicActiveTextEditor, editor)
		eventhub.Publish(d.hub, facade.TopicVisibleTextEditors, []*facade.TextEditor{editor})
		res.add(facade.TopicActiveTextEditor.Name, facade.TopicVisibleTextEditors.Name)
	}

	if prevTerm, nextTerm := activeTerminal(*prev), activeTerminal(next); prevTerm != nextTerm {
		var term *facade.Terminal
		if nextTerm != 0 {
			term = facade.NewTerminal(nextTerm)
		}
		eventhub.Publish(d.hub, facade.TopicActiveTerminal, term)
		res.add(facade.TopicActiveTerminal.Name)
	}

	opened, closed := diffTerminals(prev.Terminals, next.Terminals)
	for _, buf := range opened {
		eventhub.Publish(d.hub, facade.TopicOpenTerminal, facade.NewTerminal(buf))
		res.add(facade.TopicOpenTerminal.Name)
	}
	for _, buf := range closed {
		eventhub.Publish(d.hub, facade.TopicCloseTerminal, facade.NewTerminal(buf))
		res.add(facade.TopicCloseTerminal.Name)
	}
	return res
}

func (r *Result) add(names ...string) {
	for _, name := range names {
		events.Watcher.Publish(name)
	}
	r.Published = append(r.Published, names...)
}

// activeTerminal returns the current buffer when it is a terminal, else 0.
// Buffer handles start at 1.
func activeTerminal(s nvim.Snapshot) nvim.BufferHandle {
	if !s.BufferIsTerminal {
		return 0
	}
	return s.Buffer
}

func diffTerminals(prev, next []nvim.BufferHandle) (opened, closed []nvim.BufferHandle) {
	before := make(map[nvim.BufferHandle]struct{}, len(prev))
	for _, b := range prev {
		before[b] = struct{}{}
	}
	after := make(map[nvim.BufferHandle]struct{}, len(next))
	for _, b := range next {
		after[b] = struct{}{}
		if _, ok := before[b]; !ok {
			opened = append(opened, b)
		}
	}
	for _, b := range prev {
		if _, ok := after[b]; !ok {
			closed = append(closed, b)
		}
	}
	return opened, closed
}
